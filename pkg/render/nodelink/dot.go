package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/sunburst/pkg/hierarchy"
	"github.com/matzehuels/sunburst/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds weight, share of the total and category to labels.
	Detailed bool
	// MaxDepth leaves out nodes deeper than this. Zero keeps every node.
	MaxDepth int
}

// graph defaults, written once at the top of every diagram.
var preamble = []string{
	`rankdir=LR`,
	`bgcolor="transparent"`,
	`ranksep=0.6`,
	`nodesep=0.2`,
	`node [shape=box, style="rounded,filled", fillcolor=white, fontsize=14, margin="0.2,0.1"]`,
	`edge [arrowsize=0.6, color="#888888"]`,
}

// ToDOT writes p as a Graphviz digraph with the root on the left. Nodes
// share their sunburst colour, and nodes on the same ring share a rank.
func ToDOT(p *hierarchy.Partition, opts Options) string {
	pal := render.NewPalette(p)
	keep := func(n *hierarchy.Node) bool {
		return opts.MaxDepth <= 0 || n.Depth <= opts.MaxDepth
	}

	var nodes, edges bytes.Buffer
	ranks := make(map[int][]string)
	for i := range p.Nodes() {
		n := &p.Nodes()[i]
		if !keep(n) {
			continue
		}
		id := nodeID(n.ID)
		fmt.Fprintf(&nodes, "  %q [%s];\n", id, strings.Join(attrs(p, n, pal, opts.Detailed), ", "))
		if n.Parent != hierarchy.NoParent {
			fmt.Fprintf(&edges, "  %q -> %q;\n", nodeID(n.Parent), id)
		}
		ranks[n.Depth] = append(ranks[n.Depth], strconv.Quote(id))
	}

	var b strings.Builder
	b.WriteString("digraph G {\n")
	for _, line := range preamble {
		b.WriteString("  " + line + ";\n")
	}
	b.WriteString("\n")
	b.Write(nodes.Bytes())
	b.WriteString("\n")
	b.Write(edges.Bytes())
	for depth := 1; depth <= p.Height(); depth++ {
		if ids := ranks[depth]; len(ids) > 1 {
			fmt.Fprintf(&b, "  { rank=same; %s; }\n", strings.Join(ids, "; "))
		}
	}
	b.WriteString("}\n")
	return b.String()
}

func nodeID(id hierarchy.NodeID) string { return "n" + strconv.Itoa(int(id)) }

func attrs(p *hierarchy.Partition, n *hierarchy.Node, pal *render.Palette, detailed bool) []string {
	out := []string{fmt.Sprintf("label=%q", label(p, n, detailed))}
	if n.Data != nil && n.Data.Description != "" {
		out = append(out, fmt.Sprintf("tooltip=%q", n.Data.Description))
	}
	switch {
	case n.ID == hierarchy.RootID:
		return append(out, "fillcolor=white", "penwidth=2")
	case n.Weight == 0:
		// No arc in the sunburst.
		return append(out, `style="rounded,filled,dashed"`, "fillcolor=lightgrey")
	default:
		return append(out, fmt.Sprintf("fillcolor=%q", pal.Color(n.ID)))
	}
}

func label(p *hierarchy.Partition, n *hierarchy.Node, detailed bool) string {
	if !detailed {
		return n.Name()
	}
	var share float64
	if total := p.TotalWeight(); total > 0 {
		share = 100 * n.Weight / total
	}
	lines := []string{n.Name(), fmt.Sprintf("weight: %g (%.1f%%)", n.Weight, share)}
	if n.Data != nil && n.Data.Category != "" {
		lines = append(lines, "category: "+n.Data.Category)
	}
	return strings.Join(lines, "\n")
}

// SVG lays out a DOT graph with Graphviz and returns it as SVG scaled to
// its viewBox.
func SVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse dot: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("graphviz render: %w", err)
	}
	return fitViewBox(buf.Bytes()), nil
}

var (
	svgOpenRe = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="[0-9.]+\s+[0-9.]+\s+([0-9.]+)\s+([0-9.]+)"`)
)

// fitViewBox replaces Graphviz's point-sized root element with one whose
// pixel size equals its viewBox, so the diagram scales like the sunburst.
func fitViewBox(svg []byte) []byte {
	m := viewBoxRe.FindSubmatch(svg)
	if m == nil {
		return svg
	}
	w, errW := strconv.ParseFloat(string(m[1]), 64)
	h, errH := strconv.ParseFloat(string(m[2]), 64)
	if errW != nil || errH != nil || w == 0 || h == 0 {
		return svg
	}
	open := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%.0f" height="%.0f">`,
		m[1], m[2], w, h)
	return svgOpenRe.ReplaceAllLiteral(svg, []byte(open))
}
