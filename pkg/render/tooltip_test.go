package render

import (
	"testing"

	"github.com/matzehuels/sunburst/pkg/hierarchy"
)

func tooltipPartition(t *testing.T) (*hierarchy.Partition, hierarchy.NodeID) {
	t.Helper()
	leaf := hierarchy.Leaf("Hydrogen", 10)
	leaf.Category = "Energy"
	leaf.Maturity = "6"
	leaf.Tensions = "Water use"
	p, err := hierarchy.Build(hierarchy.Branch("root", leaf, hierarchy.Leaf("Other", 5)))
	if err != nil {
		t.Fatal(err)
	}
	id, _ := p.Find("Hydrogen")
	return p, id
}

func keys(fields []Field) []string {
	var out []string
	for _, f := range fields {
		out = append(out, f.Key)
	}
	return out
}

func TestNewTooltip(t *testing.T) {
	p, id := tooltipPartition(t)

	tests := []struct {
		name   string
		filter FieldFilter
		want   []string
	}{
		{"default", nil, []string{FieldCategory, FieldName, FieldMaturity, FieldTensions}},
		{"all", AllFields, []string{FieldCategory, FieldName, FieldMaturity, FieldDescription, FieldOpportunities, FieldTensions}},
		{"only", OnlyFields(FieldName, FieldDescription), []string{FieldName}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tip, ok := NewTooltip(p, id, tt.filter)
			if !ok {
				t.Fatal("NewTooltip failed")
			}
			got := keys(tip.Fields)
			if len(got) != len(tt.want) {
				t.Fatalf("fields = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("fields = %v, want %v", got, tt.want)
				}
			}
		})
	}

	tip, _ := NewTooltip(p, id, nil)
	if tip.Fields[2].Label != "TRL" || tip.Fields[2].Value != "6" {
		t.Errorf("maturity field = %+v", tip.Fields[2])
	}
	if len(tip.Path) != 1 || tip.Path[0] != "Hydrogen" {
		t.Errorf("path = %v", tip.Path)
	}

	if _, ok := NewTooltip(p, hierarchy.NodeID(99), nil); ok {
		t.Error("unknown node should have no tooltip")
	}
}

func TestHover(t *testing.T) {
	p, id := tooltipPartition(t)
	h := NewHover(p, nil)

	if h.Enter(id, false, 5, 5) || h.Visible() {
		t.Fatal("non-interactive arc must not show a tooltip")
	}
	if !h.Enter(id, true, 100, 200) {
		t.Fatal("enter refused")
	}
	if x, y := h.Position(); x != 110 || y != 190 {
		t.Errorf("position = (%v, %v), want (110, 190)", x, y)
	}
	h.Move(50, 60)
	if x, y := h.Position(); x != 60 || y != 50 {
		t.Errorf("after move = (%v, %v), want (60, 50)", x, y)
	}
	if tip, ok := h.Tooltip(); !ok || tip.Node != id {
		t.Errorf("tooltip = %+v, %v", tip, ok)
	}
	h.Leave()
	if h.Visible() {
		t.Error("leave should hide the tooltip")
	}
}
