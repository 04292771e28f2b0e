package render

import (
	"github.com/matzehuels/sunburst/pkg/hierarchy"
)

// Tooltip offset from the pointer, in pixels.
const (
	TooltipOffsetX = 10
	TooltipOffsetY = -10
)

// Field keys in display order.
const (
	FieldCategory      = "category"
	FieldName          = "name"
	FieldMaturity      = "maturity"
	FieldDescription   = "description"
	FieldOpportunities = "opportunities"
	FieldTensions      = "tensions"
)

// Field is one labelled line of a tooltip.
type Field struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// FieldFilter reports whether a field is shown.
type FieldFilter func(Field) bool

// NonEmpty keeps fields with a value. It is the default filter.
func NonEmpty(f Field) bool { return f.Value != "" }

// AllFields keeps every field, rendering missing metadata as blanks.
func AllFields(Field) bool { return true }

// OnlyFields returns a filter that keeps the listed keys when they have a
// value.
func OnlyFields(keys ...string) FieldFilter {
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return func(f Field) bool { return set[f.Key] && f.Value != "" }
}

// Tooltip is the metadata bundle shown for a hovered node.
type Tooltip struct {
	Node   hierarchy.NodeID `json:"node"`
	Path   []string         `json:"path"`
	Fields []Field          `json:"fields"`
}

// NewTooltip collects the metadata of id. A nil filter means [NonEmpty].
func NewTooltip(p *hierarchy.Partition, id hierarchy.NodeID, filter FieldFilter) (Tooltip, bool) {
	n, ok := p.Node(id)
	if !ok || n.Data == nil {
		return Tooltip{}, false
	}
	if filter == nil {
		filter = NonEmpty
	}
	d := n.Data
	all := []Field{
		{FieldCategory, "Category", d.Category},
		{FieldName, "Name", d.Name},
		{FieldMaturity, "TRL", d.Maturity},
		{FieldDescription, "Description", d.Description},
		{FieldOpportunities, "Opportunities", d.Opportunities},
		{FieldTensions, "Tensions", d.Tensions},
	}
	t := Tooltip{Node: id, Path: p.Path(id)}
	for _, f := range all {
		if filter(f) {
			t.Fields = append(t.Fields, f)
		}
	}
	return t, true
}

// Hover tracks the tooltip of one chart as the pointer moves.
type Hover struct {
	p      *hierarchy.Partition
	filter FieldFilter

	tip     Tooltip
	visible bool
	x, y    float64
}

// NewHover returns a hidden tooltip tracker.
func NewHover(p *hierarchy.Partition, filter FieldFilter) *Hover {
	return &Hover{p: p, filter: filter}
}

// Enter shows the tooltip for id at the pointer position (x, y). Pointers
// over arcs that do not receive events are ignored.
func (h *Hover) Enter(id hierarchy.NodeID, interactive bool, x, y float64) bool {
	if !interactive {
		return false
	}
	tip, ok := NewTooltip(h.p, id, h.filter)
	if !ok {
		return false
	}
	h.tip = tip
	h.visible = true
	h.Move(x, y)
	return true
}

// Move follows the pointer.
func (h *Hover) Move(x, y float64) {
	h.x = x + TooltipOffsetX
	h.y = y + TooltipOffsetY
}

// Leave hides the tooltip.
func (h *Hover) Leave() { h.visible = false }

// Visible reports whether the tooltip is showing.
func (h *Hover) Visible() bool { return h.visible }

// Tooltip returns the current bundle and whether it is showing.
func (h *Hover) Tooltip() (Tooltip, bool) { return h.tip, h.visible }

// Position returns the tooltip's top-left corner.
func (h *Hover) Position() (x, y float64) { return h.x, h.y }
