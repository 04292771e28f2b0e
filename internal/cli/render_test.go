package cli

import (
	"reflect"
	"testing"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,pdf,png", []string{"svg", "pdf", "png"}},
		{"spaces and case", " SVG , json ", []string{"svg", "json"}},
		{"duplicates dropped", "svg,svg", []string{"svg"}},
		{"only commas", ",,", []string{"svg"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseFormats(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "data/tree.json", "data/tree"},
		{"", "tree", "tree"},
		{"out/chart.svg", "tree.json", "out/chart"},
		{"out/chart.pdf", "tree.json", "out/chart"},
		{"out/chart", "tree.json", "out/chart"},
		{"out/chart.v2", "tree.json", "out/chart.v2"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		output  string
		formats []string
		want    map[string]string
	}{
		{
			name:    "derived from input",
			input:   "tree.json",
			formats: []string{"svg"},
			want:    map[string]string{"svg": "tree.svg"},
		},
		{
			name:    "single format keeps output as given",
			input:   "tree.json",
			output:  "chart.image",
			formats: []string{"png"},
			want:    map[string]string{"png": "chart.image"},
		},
		{
			name:    "json does not clobber the input",
			input:   "tree.json",
			formats: []string{"svg", "json"},
			want:    map[string]string{"svg": "tree.svg", "json": "tree.chart.json"},
		},
		{
			name:    "multiple formats share a base",
			input:   "tree.json",
			output:  "out/chart.svg",
			formats: []string{"svg", "pdf"},
			want:    map[string]string{"svg": "out/chart.svg", "pdf": "out/chart.pdf"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPaths(tt.input, tt.output, tt.formats)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("outputPaths() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{3 << 20, "3.0 MB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
