package cli

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Palette. Numbers are ANSI 256 colours.
var (
	colorAccent = lipgloss.Color("36")
	colorOK     = lipgloss.Color("35")
	colorWarn   = lipgloss.Color("220")
	colorFail   = lipgloss.Color("167")
	colorCmd    = lipgloss.Color("75")
	colorBright = lipgloss.Color("255")
	colorMuted  = lipgloss.Color("245")
	colorFaint  = lipgloss.Color("240")
)

// Styles shared with the explore screen.
var (
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	StyleDim     = lipgloss.NewStyle().Foreground(colorFaint)
	StyleValue   = lipgloss.NewStyle().Foreground(colorBright)
	StyleWarning = lipgloss.NewStyle().Foreground(colorWarn)
)

var (
	styleCommand = lipgloss.NewStyle().Foreground(colorCmd)
	styleHeader  = lipgloss.NewStyle().Bold(true).Foreground(colorMuted).Padding(0, 1)
	styleCell    = lipgloss.NewStyle().Padding(0, 1)
	styleSize    = styleCell.Foreground(colorAccent)
)

// out is where status lines go. Tests swap it.
var out io.Writer = os.Stdout

// tone selects the leading mark of a status line.
type tone int

const (
	toneOK tone = iota
	toneFail
	toneWarn
	toneNote
)

var marks = map[tone]string{
	toneOK:   lipgloss.NewStyle().Foreground(colorOK).Render("✓"),
	toneFail: lipgloss.NewStyle().Foreground(colorFail).Render("✗"),
	toneWarn: lipgloss.NewStyle().Foreground(colorWarn).Render("!"),
	toneNote: lipgloss.NewStyle().Foreground(colorMuted).Render("›"),
}

func say(t tone, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if t == toneWarn {
		msg = StyleWarning.Render(msg)
	}
	fmt.Fprintln(out, marks[t]+" "+msg)
}

func printSuccess(format string, args ...any) { say(toneOK, format, args...) }
func printError(format string, args ...any)   { say(toneFail, format, args...) }
func printWarning(format string, args ...any) { say(toneWarn, format, args...) }
func printInfo(format string, args ...any)    { say(toneNote, format, args...) }

// printDetail prints an indented dim line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(out, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(path string) {
	fmt.Fprintln(out, "  "+StyleDim.Render("→")+" "+StyleValue.Render(path))
}

// printStats prints the size of the partition and where it came from.
func printStats(nodes, rings int, cached bool) {
	origin := lipgloss.NewStyle().Foreground(colorMuted).Render("fresh")
	if cached {
		origin = lipgloss.NewStyle().Foreground(colorOK).Render("cached")
	}
	sep := StyleDim.Render(" · ")
	fmt.Fprintln(out, "  "+strings.Join([]string{
		StyleDim.Render(fmt.Sprintf("%d nodes", nodes)),
		StyleDim.Render(fmt.Sprintf("%d rings", rings)),
		origin,
	}, sep))
}

// artifactTable lays out one row per written file, sorted by format.
func artifactTable(paths map[string]string, sizes map[string]int) string {
	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("FORMAT", "SIZE", "FILE").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styleHeader
			case col == 1:
				return styleSize
			}
			return styleCell
		})
	for _, f := range slices.Sorted(maps.Keys(paths)) {
		t.Row(f, formatBytes(sizes[f]), paths[f])
	}
	return t.Render()
}

func formatBytes(n int) string {
	const kb, mb = 1 << 10, 1 << 20
	switch {
	case n >= mb:
		return fmt.Sprintf("%.1f MB", float64(n)/mb)
	case n >= kb:
		return fmt.Sprintf("%.1f KB", float64(n)/kb)
	}
	return fmt.Sprintf("%d B", n)
}

// printNextStep suggests a follow-up command.
func printNextStep(label, cmd string) {
	fmt.Fprintln(out, StyleDim.Render(label+":")+" "+styleCommand.Render(cmd))
}

func printNewline() { fmt.Fprintln(out) }
