package render

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/sunburst/pkg/geometry"
	"github.com/matzehuels/sunburst/pkg/hierarchy"
)

const arcCSS = `
    .arc { transition: stroke-width 0.2s ease; }
    .arc.clickable { cursor: pointer; }
    .arc.hover { stroke: #fff; stroke-width: 1.5; }`

const (
	tooltipCSS = `
    .tooltip { pointer-events: none; transition: opacity 0.15s ease; }
    .tooltip[visibility="hidden"] { opacity: 0; }
    .tooltip[visibility="visible"] { opacity: 1; }
    .tooltip rect { fill: #fff; stroke: #000; rx: 5; }
    .tooltip .key { font-weight: bold; }`

	tooltipJS = `
    const svg = document.querySelector('svg');
    const toSVG = (ev) => {
      const pt = svg.createSVGPoint();
      pt.x = ev.clientX; pt.y = ev.clientY;
      return pt.matrixTransform(svg.getScreenCTM().inverse());
    };
    document.querySelectorAll('.arc[data-tooltip]').forEach(el => {
      const tip = document.querySelector('.tooltip[data-for="' + el.dataset.tooltip + '"]');
      if (!tip) return;
      const place = (ev) => {
        const p = toSVG(ev);
        tip.setAttribute('transform', 'translate(' + (p.x + %d).toFixed(1) + ',' + (p.y + %d).toFixed(1) + ')');
      };
      el.addEventListener('mouseover', (ev) => { el.classList.add('hover'); place(ev); tip.setAttribute('visibility', 'visible'); });
      el.addEventListener('mousemove', place);
      el.addEventListener('mouseout', () => { el.classList.remove('hover'); tip.setAttribute('visibility', 'hidden'); });
    });`
)

// RenderSVG writes the scene as a standalone SVG document centred on the
// origin.
func RenderSVG(s Scene) []byte {
	var buf bytes.Buffer
	half := s.Size / 2
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s" width="%.0f" height="%.0f" style="font: %spx sans-serif">`+"\n",
		geometry.FormatNumber(-half), geometry.FormatNumber(-half), geometry.FormatNumber(s.Size), geometry.FormatNumber(s.Size), s.Size, s.Size, geometry.FormatNumber(s.FontSize))

	renderArcs(&buf, s.Arcs)
	renderLabels(&buf, s.Labels)
	fmt.Fprintf(&buf, `  <circle class="reset" data-node="%d" r="%s" fill="none" pointer-events="all"/>`+"\n",
		s.Reset.Node, geometry.FormatNumber(s.Reset.Radius))
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", arcCSS)

	if hasTooltips(s.Arcs) {
		for _, a := range s.Arcs {
			if a.Tooltip != nil {
				renderTooltip(&buf, a.ID, *a.Tooltip, s.FontSize)
			}
		}
		renderTooltipScript(&buf)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderArcs(buf *bytes.Buffer, arcs []Arc) {
	buf.WriteString("  <g>\n")
	for _, a := range arcs {
		class := "arc"
		if a.Clickable {
			class += " clickable"
		}
		events := "none"
		if a.Interactive {
			events = "auto"
		}
		fmt.Fprintf(buf, `    <path class="%s" data-node="%d" fill="%s" fill-opacity="%s" pointer-events="%s" d="%s"`,
			class, a.ID, a.Fill, geometry.FormatNumber(a.FillOpacity), events, a.Path)
		if a.Tooltip != nil {
			fmt.Fprintf(buf, ` data-tooltip="%d"`, a.ID)
		}
		fmt.Fprintf(buf, "><title>%s</title></path>\n", escapeXML(a.Name))
	}
	buf.WriteString("  </g>\n")
}

func renderLabels(buf *bytes.Buffer, labels []Label) {
	buf.WriteString(`  <g pointer-events="none" text-anchor="middle" style="user-select: none">` + "\n")
	for _, l := range labels {
		fmt.Fprintf(buf, `    <text data-node="%d" dy="0.35em" fill-opacity="%s" transform="%s">%s</text>`+"\n",
			l.ID, geometry.FormatNumber(l.Opacity), l.Transform, escapeXML(l.Text))
	}
	buf.WriteString("  </g>\n")
}

// renderTooltip writes a hidden tooltip box. Lines are laid out at a fixed
// pitch; the box is sized from the longest line.
func renderTooltip(buf *bytes.Buffer, id hierarchy.NodeID, t Tooltip, fontSize float64) {
	const pad = 8
	pitch := fontSize * 1.4
	longest := 0
	for _, f := range t.Fields {
		longest = max(longest, len([]rune(f.Label))+len([]rune(f.Value))+2)
	}
	w := float64(longest)*fontSize*0.55 + 2*pad
	h := float64(len(t.Fields))*pitch + 2*pad

	fmt.Fprintf(buf, `  <g class="tooltip" data-for="%d" visibility="hidden">`+"\n", id)
	fmt.Fprintf(buf, `    <rect width="%s" height="%s"/>`+"\n", geometry.FormatNumber(w), geometry.FormatNumber(h))
	for i, f := range t.Fields {
		y := pad + float64(i)*pitch + fontSize
		fmt.Fprintf(buf, `    <text class="%s" x="%d" y="%s"><tspan class="key">%s:</tspan> %s</text>`+"\n",
			escapeXML(f.Key), pad, geometry.FormatNumber(y), escapeXML(f.Label), escapeXML(f.Value))
	}
	buf.WriteString("  </g>\n")
}

func renderTooltipScript(buf *bytes.Buffer) {
	fmt.Fprintf(buf, "  <style>%s\n  </style>\n", tooltipCSS)
	fmt.Fprintf(buf, "  <script type=\"text/javascript\"><![CDATA["+tooltipJS+"\n  ]]></script>\n", TooltipOffsetX, TooltipOffsetY)
}

func hasTooltips(arcs []Arc) bool {
	for _, a := range arcs {
		if a.Tooltip != nil {
			return true
		}
	}
	return false
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
