package pipeline

import (
	"encoding/json"
	"time"

	"github.com/matzehuels/sunburst/pkg/hierarchy"
	"github.com/matzehuels/sunburst/pkg/render"
	"github.com/matzehuels/sunburst/pkg/zoom"
)

// FrameSequence is the recorded playback of a click path.
type FrameSequence struct {
	FPS      int           `json:"fps"`
	Duration time.Duration `json:"duration"`
	Easing   string        `json:"easing"`
	Clicks   []Click       `json:"clicks"`
	Frames   []TimedScene  `json:"frames"`
}

// Click records one step of the click path.
type Click struct {
	Path    string           `json:"path"`
	Node    hierarchy.NodeID `json:"node"`
	Clicked bool             `json:"clicked"`
	Frame   int              `json:"frame"` // Index of the first frame after the click
}

// TimedScene is a scene with its offset from the start of playback.
type TimedScene struct {
	At    time.Duration `json:"at"`
	Scene render.Scene  `json:"scene"`
}

// playbackEpoch anchors the simulated clock so output is reproducible.
var playbackEpoch = time.Unix(0, 0).UTC()

// Frames plays the click path in opts.Clicks against a fresh controller and
// samples a scene every 1/FPS seconds until each transition settles. Clicks
// the controller ignores are recorded with Clicked false and add no frames.
func Frames(c *Chart, opts Options) (*FrameSequence, error) {
	zopts, err := opts.ZoomOptions()
	if err != nil {
		return nil, err
	}
	ctrl := zoom.New(c.Partition, zopts...)
	ropts := opts.RenderOptions()
	step := time.Second / time.Duration(opts.FPS)

	seq := &FrameSequence{
		FPS:      opts.FPS,
		Duration: opts.Duration,
		Easing:   opts.Easing,
	}
	now := playbackEpoch
	sample := func() {
		seq.Frames = append(seq.Frames, TimedScene{
			At:    now.Sub(playbackEpoch),
			Scene: render.Snapshot(ctrl, now, ropts),
		})
	}

	sample()
	for _, path := range opts.Clicks {
		id, err := c.Resolve(path)
		if err != nil {
			return nil, err
		}
		clicked := ctrl.Click(id, now)
		seq.Clicks = append(seq.Clicks, Click{Path: path, Node: id, Clicked: clicked, Frame: len(seq.Frames)})
		if !clicked {
			continue
		}
		for {
			if !ctrl.Done() {
				now = now.Add(step)
			}
			sample()
			if ctrl.Done() {
				break
			}
		}
	}
	return seq, nil
}

// MarshalFrames encodes a frame sequence as JSON.
func MarshalFrames(seq *FrameSequence) ([]byte, error) {
	return json.Marshal(seq)
}
