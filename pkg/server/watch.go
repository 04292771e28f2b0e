package server

import (
	"context"

	"github.com/matzehuels/sunburst/pkg/hierarchy"
	"github.com/matzehuels/sunburst/pkg/session"
	"github.com/matzehuels/sunburst/pkg/watch"
)

// Watch loads the tree file at path as the default tree and reloads it, and
// every chart created from it, whenever the file changes. It returns after
// the first load; watching stops when ctx is done.
func (s *Server) Watch(ctx context.Context, path string) error {
	tree, err := hierarchy.ImportJSON(path)
	if err != nil {
		return err
	}
	if _, err := hierarchy.Build(tree); err != nil {
		return err
	}
	s.SetDefaultTree(tree)

	w, err := watch.New(path)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	s.logger.Info("watching tree file", "file", w.File)

	go func() {
		defer w.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case c, ok := <-w.Changes:
				if !ok {
					return
				}
				s.applyChange(ctx, c)
			}
		}
	}()
	return nil
}

func (s *Server) applyChange(ctx context.Context, c watch.Change) {
	if c.Err != nil {
		s.logger.Warn("tree reload failed", "file", c.File, "err", c.Err)
		return
	}
	if _, err := hierarchy.Build(c.Tree); err != nil {
		s.logger.Warn("tree reload rejected", "file", c.File, "err", err)
		return
	}
	s.SetDefaultTree(c.Tree)

	reloaded := 0
	s.store.Each(ctx, func(sess *session.Session) {
		s.mu.RLock()
		watched := s.watched[sess.ID]
		s.mu.RUnlock()
		if !watched {
			return
		}
		if err := sess.Reload(c.Tree); err != nil {
			s.logger.Warn("chart reload failed", "id", sess.ID, "err", err)
			return
		}
		reloaded++
	})
	s.logger.Info("reloaded tree", "file", c.File, "charts", reloaded)
}
