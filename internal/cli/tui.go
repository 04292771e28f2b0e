package cli

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/sunburst/pkg/geometry"
	"github.com/matzehuels/sunburst/pkg/hierarchy"
	"github.com/matzehuels/sunburst/pkg/observability"
	"github.com/matzehuels/sunburst/pkg/render"
	"github.com/matzehuels/sunburst/pkg/zoom"
)

// frameInterval paces redraws while a transition runs.
const frameInterval = time.Second / 30

const (
	nameWidth    = 22
	minBarWidth  = 10
	defaultWidth = 80
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorBright)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorFaint)
	tooltipStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorFaint).Padding(0, 1)
	fieldLabelStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorMuted)
)

// =============================================================================
// ExploreModel - Interactive zooming
// =============================================================================

// frameMsg asks the model to advance the running transition.
type frameMsg time.Time

// ExploreModel is the bubbletea model of the explore command. The rows are
// the innermost ring: the children of the focused node. Their bars are the
// arcs' angular spans, so they animate with the zoom.
type ExploreModel struct {
	ctx    context.Context
	p      *hierarchy.Partition
	ctrl   *zoom.Controller
	pal    *render.Palette
	filter render.FieldFilter
	maxLen int
	now    func() time.Time

	Cursor int
	Width  int
	Status string
}

// NewExploreModel creates a model showing the whole tree.
func NewExploreModel(ctx context.Context, p *hierarchy.Partition, opts render.Options, zoomOpts ...zoom.Option) ExploreModel {
	return ExploreModel{
		ctx:    ctx,
		p:      p,
		ctrl:   zoom.New(p, zoomOpts...),
		pal:    render.NewPalette(p),
		filter: opts.FieldFilter,
		maxLen: opts.MaxLabelLength,
		now:    time.Now,
		Width:  defaultWidth,
	}
}

// Focus returns the node the chart is zoomed to.
func (m ExploreModel) Focus() hierarchy.NodeID { return m.ctrl.Focus() }

func (m ExploreModel) Init() tea.Cmd {
	return nil
}

func (m ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
			m.Status = ""
		case "down", "j":
			if m.Cursor < len(m.rows())-1 {
				m.Cursor++
			}
			m.Status = ""
		case "enter", "right", "l":
			rows := m.rows()
			if len(rows) == 0 {
				return m, nil
			}
			return m.click(rows[m.Cursor])
		case "backspace", "left", "h", "esc":
			if m.ctrl.Focus() == hierarchy.RootID {
				return m, nil
			}
			return m.click(hierarchy.RootID)
		}
	case frameMsg:
		m.ctrl.Frame(m.now())
		if !m.ctrl.Done() {
			return m, tick()
		}
	case tea.WindowSizeMsg:
		m.Width = msg.Width
	}
	return m, nil
}

func (m ExploreModel) click(id hierarchy.NodeID) (tea.Model, tea.Cmd) {
	if !m.ctrl.Click(id, m.now()) {
		m.Status = fmt.Sprintf("%s has nothing to zoom into", m.name(id))
		return m, nil
	}
	observability.Chart().OnZoom(m.ctx, "explore", strings.Join(m.p.Path(id), "/"))
	m.Cursor = 0
	m.Status = ""
	return m, tick()
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// rows returns the children of the focused node, heaviest first.
func (m ExploreModel) rows() []hierarchy.NodeID {
	n, ok := m.p.Node(m.ctrl.Focus())
	if !ok {
		return nil
	}
	return n.Children
}

func (m ExploreModel) name(id hierarchy.NodeID) string {
	n, ok := m.p.Node(id)
	if !ok {
		return ""
	}
	return n.Name()
}

func (m ExploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.breadcrumb()))
	if !m.ctrl.Done() {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  zooming %3.0f%%", m.ctrl.Progress()*100)))
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ zoom in  ⌫ zoom out  q quit"))
	b.WriteString("\n\n")

	focus, _ := m.p.Node(m.ctrl.Focus())
	barWidth := max(m.Width-nameWidth-12, minBarWidth)
	layout := m.ctrl.Current()
	for i, id := range m.rows() {
		n, _ := m.p.Node(id)
		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}

		name := geometry.Truncate(n.Name(), m.maxLen)
		if !n.IsLeaf() {
			name += " ›"
		}
		bar := spanBar(layout.Rect(id), barWidth)
		share := 0.0
		if focus.Weight > 0 {
			share = n.Weight / focus.Weight * 100
		}

		b.WriteString(cursor)
		b.WriteString(style.Width(nameWidth).MaxWidth(nameWidth).Render(name))
		b.WriteString(" ")
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(m.pal.Color(id))).Render(bar))
		b.WriteString(listDimStyle.Render(fmt.Sprintf(" %5.1f%%", share)))
		b.WriteString("\n")
	}

	if rows := m.rows(); m.Cursor < len(rows) {
		if tip := m.tooltip(rows[m.Cursor]); tip != "" {
			b.WriteString("\n")
			b.WriteString(tip)
			b.WriteString("\n")
		}
	}
	if m.Status != "" {
		b.WriteString("\n")
		b.WriteString(StyleWarning.Render(m.Status))
		b.WriteString("\n")
	}
	return b.String()
}

func (m ExploreModel) breadcrumb() string {
	root := m.name(hierarchy.RootID)
	if root == "" {
		root = "root"
	}
	return strings.Join(append([]string{root}, m.p.Path(m.ctrl.Focus())...), " / ")
}

func (m ExploreModel) tooltip(id hierarchy.NodeID) string {
	tip, ok := render.NewTooltip(m.p, id, m.filter)
	if !ok || len(tip.Fields) == 0 {
		return ""
	}
	lines := make([]string, len(tip.Fields))
	for i, f := range tip.Fields {
		lines[i] = fieldLabelStyle.Render(f.Label+":") + " " + f.Value
	}
	return tooltipStyle.Width(max(m.Width-4, minBarWidth)).Render(strings.Join(lines, "\n"))
}

// spanBar draws the angular span of r as a share of width cells.
func spanBar(r geometry.Rect, width int) string {
	cells := int(math.Round(r.Span() / (2 * math.Pi) * float64(width)))
	cells = min(max(cells, 0), width)
	return strings.Repeat("█", cells) + strings.Repeat(" ", width-cells)
}
