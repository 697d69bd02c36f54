// Package chart renders category totals as a proportional chart for the terminal.
package chart

import (
	"fmt"
	"strings"

	"github.com/Veraticus/pennywise/internal/report"
	"github.com/charmbracelet/lipgloss"
)

// Title heads every rendered chart.
const Title = "Expenses by Category"

const (
	minBarWidth = 10
	labelWidth  = 14
)

// Palette colors slices in order; it wraps for more categories.
var Palette = []lipgloss.Color{
	lipgloss.Color("#7c3aed"),
	lipgloss.Color("#10b981"),
	lipgloss.Color("#f59e0b"),
	lipgloss.Color("#3b82f6"),
	lipgloss.Color("#ef4444"),
	lipgloss.Color("#ec4899"),
	lipgloss.Color("#14b8a6"),
	lipgloss.Color("#a3a3a3"),
}

// Pie is a proportional chart over category shares. Each category gets a bar
// whose length is its share of the whole, so the bars together read like the
// slices of a pie laid end to end.
type Pie struct {
	Shares []report.CategoryShare
	Width  int
}

// NewPie builds a chart for the given category totals.
func NewPie(totals map[string]float64, width int) Pie {
	return Pie{
		Shares: report.Shares(totals),
		Width:  width,
	}
}

// Render draws the chart. An empty chart renders a placeholder line.
func (p Pie) Render() string {
	if len(p.Shares) == 0 {
		return "No expenses to display"
	}

	barWidth := p.Width - labelWidth - 20
	if barWidth < minBarWidth {
		barWidth = minBarWidth
	}

	lines := make([]string, 0, len(p.Shares)+2)
	lines = append(lines, lipgloss.NewStyle().Bold(true).Render(Title))

	// Stacked strip of every slice, then one line per category.
	var strip strings.Builder
	for i, share := range p.Shares {
		n := int(share.Percent / 100 * float64(barWidth))
		if n == 0 && share.Percent > 0 {
			n = 1
		}
		strip.WriteString(sliceStyle(i).Render(strings.Repeat("█", n)))
	}
	lines = append(lines, strip.String())

	for i, share := range p.Shares {
		n := int(share.Percent / 100 * float64(barWidth))
		bar := sliceStyle(i).Render(strings.Repeat("█", n))
		pad := strings.Repeat(" ", barWidth-n)
		lines = append(lines, fmt.Sprintf("%-*s %s%s %5.1f%% %10.2f",
			labelWidth, truncate(share.Category, labelWidth), bar, pad, share.Percent, share.Amount))
	}

	return strings.Join(lines, "\n")
}

func sliceStyle(i int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Palette[i%len(Palette)])
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}
