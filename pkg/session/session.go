// Package session holds the live charts of the HTTP host surface.
//
// A [Session] owns one chart: the tree it was built from, the partition, the
// zoom controller and the hover tracker. The controller is single-threaded,
// so every access goes through [Session.Do], which serializes callers.
//
// Sessions live in a [Store]. [MemoryStore] keeps them in process and drops
// those idle for longer than its TTL; charts are never persisted.
//
// # Usage
//
//	store := session.NewMemoryStore(session.DefaultTTL)
//	sess, err := session.New(tree, render.Options{Size: 932})
//	if err != nil {
//	    return err
//	}
//	store.Put(sess)
//
//	err = sess.Do(func(c *session.Chart) error {
//	    c.Controller.Click(id, time.Now())
//	    return nil
//	})
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/hierarchy"
	"github.com/matzehuels/sunburst/pkg/render"
	"github.com/matzehuels/sunburst/pkg/zoom"
)

// DefaultTTL is how long a chart may sit idle before cleanup removes it.
const DefaultTTL = 30 * time.Minute

// Chart is the mutable state of one session. It is only valid inside
// [Session.Do].
type Chart struct {
	Tree       *hierarchy.TreeNode
	Partition  *hierarchy.Partition
	Controller *zoom.Controller
	Hover      *render.Hover
	Options    render.Options
}

// Session is one interactive chart.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu         sync.Mutex
	chart      Chart
	zoomOpts   []zoom.Option
	lastAccess time.Time
}

// New builds a chart from tree and wraps it in a session with a fresh id.
func New(tree *hierarchy.TreeNode, opts render.Options, zoomOpts ...zoom.Option) (*Session, error) {
	if opts.Size != 0 {
		if err := errors.ValidateSize(opts.Size); err != nil {
			return nil, err
		}
	}
	now := time.Now()
	s := &Session{
		ID:         uuid.NewString(),
		CreatedAt:  now,
		zoomOpts:   zoomOpts,
		lastAccess: now,
	}
	if err := s.rebuild(tree, opts); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) rebuild(tree *hierarchy.TreeNode, opts render.Options) error {
	p, err := hierarchy.Build(tree)
	if err != nil {
		return err
	}
	s.chart = Chart{
		Tree:       tree,
		Partition:  p,
		Controller: zoom.New(p, s.zoomOpts...),
		Hover:      render.NewHover(p, opts.FieldFilter),
		Options:    opts,
	}
	return nil
}

// Do runs fn with exclusive access to the chart and marks the session used.
func (s *Session) Do(fn func(c *Chart) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAccess = time.Now()
	return fn(&s.chart)
}

// Resize rebuilds the partition and controller for a new viewport side. The
// zoom returns to the root.
func (s *Session) Resize(size float64) error {
	if err := errors.ValidateSize(size); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAccess = time.Now()
	opts := s.chart.Options
	opts.Size = size
	return s.rebuild(s.chart.Tree, opts)
}

// Reload replaces the dataset. On error the previous chart stays in place.
func (s *Session) Reload(tree *hierarchy.TreeNode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rebuild(tree, s.chart.Options)
}

// LastAccess returns when the session was last used.
func (s *Session) LastAccess() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAccess
}

// Store is the interface for session storage.
type Store interface {
	// Get returns the session with id, or an error with code
	// SESSION_NOT_FOUND.
	Get(ctx context.Context, id string) (*Session, error)

	// Put stores a session.
	Put(ctx context.Context, s *Session) error

	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error

	// Each calls fn for every stored session.
	Each(ctx context.Context, fn func(*Session))

	// Cleanup removes idle sessions and reports how many it removed.
	Cleanup(ctx context.Context) (int, error)
}
