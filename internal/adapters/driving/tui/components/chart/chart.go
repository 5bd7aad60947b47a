// Package chart draws the analysis series as text charts.
package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/etis-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/etis-cli/internal/core/domain"
)

const (
	barGlyph     = "█"
	maxLabelCols = 18
	minBarCols   = 10
)

// sparkGlyphs are ordered from lowest to highest.
var sparkGlyphs = []rune("▁▂▃▄▅▆▇█")

// Bars renders one horizontal bar per row, scaled to the largest value.
// Negative values draw an empty bar.
func Bars(s *styles.Styles, rows []domain.ChartRow, width int) string {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if len(rows) == 0 {
		return s.Muted.Render("No data")
	}

	labelCols := 0
	for _, r := range rows {
		labelCols = max(labelCols, lipgloss.Width(truncate(r.Category.String(), maxLabelCols)))
	}

	// label, space, bar, space, value
	barCols := max(width-labelCols-9, minBarCols)
	peak := 0.0
	for _, r := range rows {
		peak = math.Max(peak, r.Value)
	}

	lines := make([]string, len(rows))
	for i, r := range rows {
		n := 0
		if peak > 0 && r.Value > 0 {
			n = int(math.Round(r.Value / peak * float64(barCols)))
		}
		label := fmt.Sprintf("%-*s", labelCols, truncate(r.Category.String(), maxLabelCols))
		lines[i] = s.Normal.Render(label) + " " +
			s.Bar.Render(strings.Repeat(barGlyph, n)) +
			strings.Repeat(" ", barCols-n) + " " +
			s.Muted.Render(formatValue(r.Value))
	}
	return strings.Join(lines, "\n")
}

// Sparkline renders the rows as a one-line trend followed by the labelled values.
func Sparkline(s *styles.Styles, rows []domain.ChartRow) string {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if len(rows) == 0 {
		return s.Muted.Render("No data")
	}

	lo, hi := rows[0].Value, rows[0].Value
	for _, r := range rows[1:] {
		lo = math.Min(lo, r.Value)
		hi = math.Max(hi, r.Value)
	}

	var spark strings.Builder
	for _, r := range rows {
		spark.WriteRune(sparkGlyph(r.Value, lo, hi))
	}

	points := make([]string, len(rows))
	for i, r := range rows {
		points[i] = fmt.Sprintf("%s: %s", r.Category, formatValue(r.Value))
	}

	return s.Line.Render(spark.String()) + "\n" + s.Muted.Render(strings.Join(points, "  "))
}

func sparkGlyph(v, lo, hi float64) rune {
	if hi == lo {
		return sparkGlyphs[len(sparkGlyphs)/2]
	}
	idx := int(math.Round((v - lo) / (hi - lo) * float64(len(sparkGlyphs)-1)))
	return sparkGlyphs[idx]
}

func formatValue(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
