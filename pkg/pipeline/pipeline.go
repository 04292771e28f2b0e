// Package pipeline provides the decode → build → render pipeline for sunburst.
//
// The CLI and the HTTP server both go through this package so a chart renders
// identically from every entry point.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: decode tree JSON and compute its content hash
//  2. Build: partition the tree (see [hierarchy.Build])
//  3. Render: produce artifacts (SVG, PNG, PDF, JSON, DOT) or frame sequences
//
// The [Runner] wraps the stages with a [cache.Cache] keyed by the tree hash
// and the options that change the output.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	chart, err := runner.Build(ctx, data)
//	if err != nil {
//	    return err
//	}
//	artifacts, hit, err := runner.RenderWithCacheInfo(ctx, chart, pipeline.Options{
//	    Formats: []string{"svg"},
//	    Focus:   "Energy/Solar",
//	})
package pipeline

import (
	"fmt"
	"io"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sunburst/pkg/cache"
	"github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/render"
	"github.com/matzehuels/sunburst/pkg/zoom"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultSize is the default viewport side in pixels.
	DefaultSize = render.DefaultSize

	// DefaultFPS is the default frame rate of rendered transitions.
	DefaultFPS = 30

	// MaxFPS bounds the frame rate so a single request cannot ask for an
	// unbounded number of frames.
	MaxFPS = 120

	// MaxFrames bounds the scenes one frame sequence may hold, across all
	// of its clicks.
	MaxFrames = 3600

	// DefaultPNGScale is the resolution multiplier for PNG output.
	DefaultPNGScale = 2.0
)

// Visualization types.
const (
	VizTypeSunburst = "sunburst"
	VizTypeNodelink = "nodelink"
)

// DefaultVizType is the default visualization type.
const DefaultVizType = VizTypeSunburst

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatDOT:  true,
}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	VizTypeSunburst: true,
	VizTypeNodelink: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Chart options
	VizType        string   `json:"viz_type,omitempty"`
	Size           float64  `json:"size,omitempty"`
	Focus          string   `json:"focus,omitempty"` // Slash-separated names below the root
	MaxLabelLength int      `json:"max_label_length,omitempty"`
	Tooltips       bool     `json:"tooltips,omitempty"`
	Fields         []string `json:"fields,omitempty"` // Tooltip fields; empty means all non-empty

	// Node-link options
	Detailed bool `json:"detailed,omitempty"`
	MaxDepth int  `json:"max_depth,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`

	// Transition options
	Duration time.Duration `json:"duration,omitempty"`
	Easing   string        `json:"easing,omitempty"`
	FPS      int           `json:"fps,omitempty"`
	Clicks   []string      `json:"clicks,omitempty"` // Focus paths clicked in order; "" is the reset circle

	// Refresh bypasses cache reads.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	Height     int
	BuildTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Chart     *Chart
	Artifacts map[string][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if !ValidVizTypes[vizType] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid viz_type: %q (must be one of: sunburst, nodelink)", vizType)
	}
	return nil
}

// ParseFormats splits a comma-separated format list, dropping blanks and
// duplicates.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills zero-valued fields.
func (o *Options) SetDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if o.Size == 0 {
		o.Size = DefaultSize
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Duration == 0 {
		o.Duration = zoom.DefaultDuration
	}
	if o.Easing == "" {
		o.Easing = zoom.DefaultEasing
	}
	if o.FPS == 0 {
		o.FPS = DefaultFPS
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate sets defaults and checks every option.
func (o *Options) Validate() error {
	o.SetDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.VizType == VizTypeSunburst && slices.Contains(o.Formats, FormatDOT) {
		return errors.New(errors.ErrCodeInvalidFormat, "format dot is only available for nodelink diagrams")
	}
	if err := errors.ValidateSize(o.Size); err != nil {
		return err
	}
	if o.MaxLabelLength < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max label length cannot be negative")
	}
	if o.FPS < 1 || o.FPS > MaxFPS {
		return errors.New(errors.ErrCodeInvalidInput, "fps %d out of range [1, %d]", o.FPS, MaxFPS)
	}
	if o.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "duration cannot be negative")
	}
	if n := o.frameCount(); n > MaxFrames {
		return errors.New(errors.ErrCodeInvalidInput,
			"%d clicks of %s at %d fps need %d frames, more than %d", len(o.Clicks), o.Duration, o.FPS, n, MaxFrames)
	}
	if _, err := zoom.ParseEasing(o.Easing); err != nil {
		return err
	}
	if _, err := SplitPath(o.Focus); err != nil {
		return err
	}
	for _, c := range o.Clicks {
		if _, err := SplitPath(c); err != nil {
			return err
		}
	}
	return nil
}

// IsNodelink returns true if this is a nodelink visualization.
func (o *Options) IsNodelink() bool {
	return o.VizType == VizTypeNodelink
}

// RenderOptions returns the scene options.
func (o *Options) RenderOptions() render.Options {
	ro := render.Options{
		Size:           o.Size,
		MaxLabelLength: o.MaxLabelLength,
		Tooltips:       o.Tooltips,
	}
	if len(o.Fields) > 0 {
		ro.FieldFilter = render.OnlyFields(o.Fields...)
	}
	return ro
}

// ZoomOptions returns the controller options for transitions.
func (o *Options) ZoomOptions() ([]zoom.Option, error) {
	fn, err := zoom.ParseEasing(o.Easing)
	if err != nil {
		return nil, err
	}
	return []zoom.Option{zoom.WithDuration(o.Duration), zoom.WithEasing(fn)}, nil
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		VizType:        o.VizType,
		Format:         format,
		Size:           o.Size,
		Focus:          o.Focus,
		MaxLabelLength: o.MaxLabelLength,
		Tooltips:       o.Tooltips,
		Fields:         o.Fields,
		Detailed:       o.Detailed,
	}
}

// LayoutKeyOpts returns cache key options for layout documents.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{Focus: o.Focus}
}

// FramesKeyOpts returns cache key options for frame sequences.
func (o *Options) FramesKeyOpts() cache.FramesKeyOpts {
	return cache.FramesKeyOpts{
		Clicks:   o.Clicks,
		FPS:      o.FPS,
		Duration: o.Duration,
		Easing:   o.Easing,
		Size:     o.Size,
	}
}

// String summarizes the options for log output.
func (o Options) String() string {
	return fmt.Sprintf("%s %v size=%g focus=%q", o.VizType, o.Formats, o.Size, o.Focus)
}

// frameCount is the most scenes Frames can sample for these options: the
// opening scene plus, per click, one per 1/FPS step and the settled one.
func (o *Options) frameCount() int {
	perClick := int(math.Ceil(o.Duration.Seconds()*float64(o.FPS))) + 1
	return 1 + len(o.Clicks)*perClick
}
