package session

import (
	"context"
	"testing"
	"time"

	"github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/hierarchy"
	"github.com/matzehuels/sunburst/pkg/render"
	"github.com/matzehuels/sunburst/pkg/zoom"
)

func sampleTree() *hierarchy.TreeNode {
	return hierarchy.Branch("root",
		hierarchy.Branch("A", hierarchy.Leaf("a1", 30), hierarchy.Leaf("a2", 10)),
		hierarchy.Leaf("B", 60),
	)
}

func TestNew(t *testing.T) {
	s, err := New(sampleTree(), render.Options{Size: 600})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if s.ID == "" {
		t.Error("session id should not be empty")
	}
	other, _ := New(sampleTree(), render.Options{})
	if other.ID == s.ID {
		t.Error("session ids should be unique")
	}

	err = s.Do(func(c *Chart) error {
		if c.Partition.Len() != 5 {
			t.Errorf("partition has %d nodes, want 5", c.Partition.Len())
		}
		if c.Controller.Focus() != hierarchy.RootID {
			t.Error("new chart should focus the root")
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name string
		tree *hierarchy.TreeNode
		opts render.Options
		code errors.Code
	}{
		{"invalid tree", hierarchy.Branch("root", hierarchy.Leaf("x", -1)), render.Options{}, errors.ErrCodeInvalidTree},
		{"invalid size", sampleTree(), render.Options{Size: 5}, errors.ErrCodeInvalidSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.tree, tt.opts)
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestResizeResetsZoom(t *testing.T) {
	s, err := New(sampleTree(), render.Options{Size: 600}, zoom.WithDuration(0))
	if err != nil {
		t.Fatal(err)
	}
	now := time.Now()
	_ = s.Do(func(c *Chart) error {
		id, err := c.Partition.Find("A")
		if err != nil {
			t.Fatal(err)
		}
		if !c.Controller.Click(id, now) {
			t.Fatal("click on A should start a transition")
		}
		return nil
	})

	if err := s.Resize(800); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	_ = s.Do(func(c *Chart) error {
		if c.Options.Size != 800 {
			t.Errorf("size = %g, want 800", c.Options.Size)
		}
		if c.Controller.Focus() != hierarchy.RootID {
			t.Error("resize should return the zoom to the root")
		}
		return nil
	})

	if err := s.Resize(-1); !errors.Is(err, errors.ErrCodeInvalidSize) {
		t.Errorf("Resize(-1) err = %v", err)
	}
}

func TestReloadKeepsChartOnError(t *testing.T) {
	s, err := New(sampleTree(), render.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Reload(hierarchy.Branch("root")); err == nil {
		t.Fatal("reload with empty tree should fail")
	}
	_ = s.Do(func(c *Chart) error {
		if c.Partition.Len() != 5 {
			t.Error("failed reload should keep the previous chart")
		}
		return nil
	})

	if err := s.Reload(hierarchy.Branch("root", hierarchy.Leaf("only", 1))); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	_ = s.Do(func(c *Chart) error {
		if c.Partition.Len() != 2 {
			t.Errorf("reloaded partition has %d nodes, want 2", c.Partition.Len())
		}
		return nil
	})
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)
	s, _ := New(sampleTree(), render.Options{})

	if _, err := store.Get(ctx, s.ID); !errors.Is(err, errors.ErrCodeSessionNotFound) {
		t.Errorf("Get before Put: err = %v", err)
	}
	if err := store.Put(ctx, s); err != nil {
		t.Fatal(err)
	}
	got, err := store.Get(ctx, s.ID)
	if err != nil || got != s {
		t.Fatalf("Get = %v, %v", got, err)
	}

	count := 0
	store.Each(ctx, func(*Session) { count++ })
	if count != 1 {
		t.Errorf("Each visited %d sessions, want 1", count)
	}

	if err := store.Delete(ctx, s.ID); err != nil {
		t.Fatal(err)
	}
	if store.Len() != 0 {
		t.Errorf("Len after Delete = %d", store.Len())
	}
}

func TestMemoryStoreCleanup(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)
	clock := time.Now()
	store.now = func() time.Time { return clock }
	var removed []string
	store.OnRemove(func(id string) { removed = append(removed, id) })

	idle, _ := New(sampleTree(), render.Options{})
	store.Put(ctx, idle)

	clock = clock.Add(2 * time.Minute)
	fresh, _ := New(sampleTree(), render.Options{})
	fresh.lastAccess = clock
	store.Put(ctx, fresh)

	if _, err := store.Get(ctx, idle.ID); !errors.Is(err, errors.ErrCodeSessionNotFound) {
		t.Error("idle session should not be returned")
	}
	n, err := store.Cleanup(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 || store.Len() != 1 {
		t.Errorf("Cleanup removed %d, %d left; want 1, 1", n, store.Len())
	}
	if _, err := store.Get(ctx, fresh.ID); err != nil {
		t.Errorf("fresh session: %v", err)
	}
	if len(removed) != 1 || removed[0] != idle.ID {
		t.Errorf("OnRemove saw %v, want [%s]", removed, idle.ID)
	}

	store.Delete(ctx, fresh.ID)
	store.Delete(ctx, fresh.ID)
	if len(removed) != 2 || removed[1] != fresh.ID {
		t.Errorf("OnRemove after Delete saw %v", removed)
	}
}
