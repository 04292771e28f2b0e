package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/sunburst/pkg/buildinfo"
	"github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/hierarchy"
	"github.com/matzehuels/sunburst/pkg/observability"
	"github.com/matzehuels/sunburst/pkg/pipeline"
	"github.com/matzehuels/sunburst/pkg/render"
	"github.com/matzehuels/sunburst/pkg/session"
)

type createResponse struct {
	ID    string  `json:"id"`
	Nodes int     `json:"nodes"`
	Size  float64 `json:"size"`
}

type stateResponse struct {
	ID        string           `json:"id"`
	Size      float64          `json:"size"`
	Nodes     int              `json:"nodes"`
	Focus     hierarchy.NodeID `json:"focus"`
	FocusPath []string         `json:"focus_path"`
	Done      bool             `json:"done"`
	Progress  float64          `json:"progress"`
	CreatedAt time.Time        `json:"created_at"`
}

type clickRequest struct {
	Node *hierarchy.NodeID `json:"node,omitempty"`
	Path *string           `json:"path,omitempty"`
	X    *float64          `json:"x,omitempty"`
	Y    *float64          `json:"y,omitempty"`
}

type clickResponse struct {
	Clicked   bool             `json:"clicked"`
	Focus     hierarchy.NodeID `json:"focus"`
	FocusPath []string         `json:"focus_path"`
}

type resizeRequest struct {
	Size float64 `json:"size"`
}

type hoverResponse struct {
	Node    hierarchy.NodeID `json:"node"`
	X       float64          `json:"x"`
	Y       float64          `json:"y"`
	Tooltip render.Tooltip   `json:"tooltip"`
}

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatDOT:  "text/vnd.graphviz",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{
		"status":  "ok",
		"charts":  s.store.Len(),
		"version": buildinfo.Get().Version,
	}
	if s.cfg.Stats != nil {
		body["stats"] = s.cfg.Stats.Snapshot()
	}
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	size := s.cfg.Size
	if v := r.URL.Query().Get("size"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, errors.New(errors.ErrCodeInvalidSize, "size must be a number, got %q", v))
			return
		}
		size = f
	}
	if err := errors.ValidateSize(size); err != nil {
		writeError(w, err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body"))
		return
	}

	ctx := r.Context()
	hooks := observability.Chart()
	hooks.OnBuildStart(ctx, len(body))
	start := time.Now()

	var tree *hierarchy.TreeNode
	fromFile := len(bytes.TrimSpace(body)) == 0
	if fromFile {
		if tree = s.getDefaultTree(); tree == nil {
			err := errors.New(errors.ErrCodeInvalidInput, "request body is empty and no tree file is being watched")
			hooks.OnBuildComplete(ctx, 0, time.Since(start), err)
			writeError(w, err)
			return
		}
	} else if tree, _, err = pipeline.Parse(body); err != nil {
		hooks.OnBuildComplete(ctx, 0, time.Since(start), err)
		writeError(w, err)
		return
	}

	sess, err := session.New(tree, s.renderOptions(size), s.zoomOpts...)
	if err != nil {
		hooks.OnBuildComplete(ctx, 0, time.Since(start), err)
		writeError(w, err)
		return
	}
	var nodes int
	_ = sess.Do(func(c *session.Chart) error {
		nodes = c.Partition.Len()
		return nil
	})
	hooks.OnBuildComplete(ctx, nodes, time.Since(start), nil)

	if err := s.store.Put(ctx, sess); err != nil {
		writeError(w, err)
		return
	}
	if fromFile {
		s.mu.Lock()
		s.watched[sess.ID] = true
		s.mu.Unlock()
	}
	s.logger.Info("created chart", "id", sess.ID, "nodes", nodes, "size", size)
	writeJSON(w, http.StatusCreated, createResponse{ID: sess.ID, Nodes: nodes, Size: size})
}

// lookup returns the session named in the URL or writes a 404.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	return sess, true
}

func (s *Server) state(sess *session.Session, c *session.Chart) stateResponse {
	f := c.Controller.Frame(s.now())
	return stateResponse{
		ID:        sess.ID,
		Size:      c.Options.Size,
		Nodes:     c.Partition.Len(),
		Focus:     f.Focus,
		FocusPath: c.Partition.Path(f.Focus),
		Done:      f.Done,
		Progress:  f.Progress,
		CreatedAt: sess.CreatedAt,
	}
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var resp stateResponse
	_ = sess.Do(func(c *session.Chart) error {
		resp = s.state(sess, c)
		return nil
	})
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := s.lookup(w, r); !ok {
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) snapshot(sess *session.Session) render.Scene {
	var scene render.Scene
	_ = sess.Do(func(c *session.Chart) error {
		scene = render.Snapshot(c.Controller, s.now(), c.Options)
		return nil
	})
	return scene
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.snapshot(sess))
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", contentTypes[pipeline.FormatSVG])
	w.Write(render.RenderSVG(s.snapshot(sess)))
}

// pipelineChart captures the immutable parts of a session's chart.
func pipelineChart(sess *session.Session) (*pipeline.Chart, render.Options) {
	var pc *pipeline.Chart
	var ro render.Options
	_ = sess.Do(func(c *session.Chart) error {
		pc = &pipeline.Chart{Tree: c.Tree, Partition: c.Partition}
		ro = c.Options
		return nil
	})
	pc.Hash = pipeline.TreeHash(pc.Tree)
	return pc, ro
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	chart, ro := pipelineChart(sess)
	opts := pipeline.Options{
		VizType:        q.Get("type"),
		Size:           ro.Size,
		Focus:          q.Get("focus"),
		MaxLabelLength: ro.MaxLabelLength,
		Tooltips:       ro.Tooltips,
		Fields:         s.cfg.Fields,
		Formats:        []string{format},
		Detailed:       q.Get("detailed") == "true",
		Logger:         s.logger,
	}

	artifacts, hit, err := s.runner.RenderWithCacheInfo(r.Context(), chart, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	if hit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	w.Write(artifacts[format])
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	chart, _ := pipelineChart(sess)
	data, _, err := s.runner.LayoutWithCacheInfo(r.Context(), chart, pipeline.Options{Focus: r.URL.Query().Get("focus")})
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var req clickRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode click"))
		return
	}

	var resp clickResponse
	err := sess.Do(func(c *session.Chart) error {
		id, hit, err := resolveClick(c, req)
		if err != nil {
			return err
		}
		if hit {
			resp.Clicked = c.Controller.Click(id, s.now())
		}
		resp.Focus = c.Controller.Focus()
		resp.FocusPath = c.Partition.Path(resp.Focus)
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	if resp.Clicked {
		observability.Chart().OnZoom(r.Context(), sess.ID, strings.Join(resp.FocusPath, "/"))
	}
	writeJSON(w, http.StatusOK, resp)
}

// resolveClick finds the clicked node. A pointer position that hits nothing
// reports hit false without error.
func resolveClick(c *session.Chart, req clickRequest) (hierarchy.NodeID, bool, error) {
	switch {
	case req.Node != nil:
		if _, ok := c.Partition.Node(*req.Node); !ok {
			return hierarchy.NoParent, false, errors.New(errors.ErrCodeNodeNotFound, "no node with id %d", *req.Node)
		}
		return *req.Node, true, nil
	case req.Path != nil:
		names, err := pipeline.SplitPath(*req.Path)
		if err != nil {
			return hierarchy.NoParent, false, err
		}
		id, err := c.Partition.Find(names...)
		return id, err == nil, err
	case req.X != nil && req.Y != nil:
		id, ok := c.Controller.HitTest(*req.X, *req.Y, c.Options.Radius())
		return id, ok, nil
	default:
		return hierarchy.NoParent, false, errors.New(errors.ErrCodeInvalidInput, "click needs node, path or x and y")
	}
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var resp clickResponse
	_ = sess.Do(func(c *session.Chart) error {
		resp.Clicked = c.Controller.Reset(s.now())
		resp.Focus = c.Controller.Focus()
		resp.FocusPath = c.Partition.Path(resp.Focus)
		return nil
	})
	observability.Chart().OnZoom(r.Context(), sess.ID, "")
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleResize(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var req resizeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<10)).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode resize"))
		return
	}
	if err := sess.Resize(req.Size); err != nil {
		writeError(w, err)
		return
	}
	var resp stateResponse
	_ = sess.Do(func(c *session.Chart) error {
		resp = s.state(sess, c)
		return nil
	})
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHover(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	x, errX := strconv.ParseFloat(r.URL.Query().Get("x"), 64)
	y, errY := strconv.ParseFloat(r.URL.Query().Get("y"), 64)
	if errX != nil || errY != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "hover needs numeric x and y"))
		return
	}

	var resp *hoverResponse
	_ = sess.Do(func(c *session.Chart) error {
		c.Controller.Frame(s.now())
		id, hit := c.Controller.HitTest(x, y, c.Options.Radius())
		if !hit || id == hierarchy.RootID || !c.Hover.Enter(id, true, x, y) {
			c.Hover.Leave()
			return nil
		}
		tip, _ := c.Hover.Tooltip()
		px, py := c.Hover.Position()
		resp = &hoverResponse{Node: id, X: px, Y: py, Tooltip: tip}
		return nil
	})
	if resp == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
