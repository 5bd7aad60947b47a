// Package render draws chart rows as PNG images with go-chart.
package render

import (
	"errors"
	"fmt"
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/custodia-labs/etis-cli/internal/core/domain"
	"github.com/custodia-labs/etis-cli/internal/core/ports/driven"
)

// Ensure Renderer implements the interface.
var _ driven.ChartRenderer = (*Renderer)(nil)

// ErrNoRows is returned when there is nothing to draw.
var ErrNoRows = errors.New("render: no rows")

// Default image geometry.
const (
	DefaultWidth  = 1024
	DefaultHeight = 512

	barWidth   = 48
	barSpacing = 24
)

// Renderer draws bar and line charts.
type Renderer struct {
	Width  int
	Height int
}

// NewRenderer creates a renderer with the default geometry.
func NewRenderer() *Renderer {
	return &Renderer{Width: DefaultWidth, Height: DefaultHeight}
}

// RenderBar draws rows as one bar per category.
func (r *Renderer) RenderBar(w io.Writer, title string, rows []domain.ChartRow) error {
	if len(rows) == 0 {
		return ErrNoRows
	}

	bars := make([]chart.Value, len(rows))
	values := make([]float64, len(rows))
	for i, row := range rows {
		bars[i] = chart.Value{
			Label: row.Category.String(),
			Value: row.Value,
			Style: chart.Style{
				FillColor:   barColor(i),
				StrokeColor: barColor(i),
				StrokeWidth: 1,
			},
		}
		values[i] = row.Value
	}

	// Every bar needs room for its label
	width := max(r.width(), len(rows)*(barWidth+barSpacing)+2*barSpacing)

	graph := chart.BarChart{
		Title:      title,
		Background: chart.Style{Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16}},
		Width:      width,
		Height:     r.height(),
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		YAxis: chart.YAxis{
			Range: valueRange(values, true),
		},
		Bars: bars,
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render bar chart: %w", err)
	}
	return nil
}

// RenderLine draws rows as a line with one point per category, in order.
func (r *Renderer) RenderLine(w io.Writer, title string, rows []domain.ChartRow) error {
	if len(rows) == 0 {
		return ErrNoRows
	}

	xs := make([]float64, len(rows))
	ys := make([]float64, len(rows))
	ticks := make([]chart.Tick, len(rows))
	for i, row := range rows {
		xs[i] = float64(i + 1)
		ys[i] = row.Value
		ticks[i] = chart.Tick{Value: xs[i], Label: row.Category.String()}
	}

	graph := chart.Chart{
		Title:      title,
		Background: chart.Style{Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16}},
		Width:      r.width(),
		Height:     r.height(),
		XAxis: chart.XAxis{
			Range: &chart.ContinuousRange{Min: 0.5, Max: float64(len(rows)) + 0.5},
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Range: valueRange(ys, false),
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeWidth: 2,
					StrokeColor: chart.ColorBlue,
					DotWidth:    5,
					DotColor:    chart.ColorBlue,
				},
			},
		},
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render line chart: %w", err)
	}
	return nil
}

func (r *Renderer) width() int {
	if r.Width <= 0 {
		return DefaultWidth
	}
	return r.Width
}

func (r *Renderer) height() int {
	if r.Height <= 0 {
		return DefaultHeight
	}
	return r.Height
}

// valueRange pads the value extent so flat or single-point data still has
// a non-empty axis. Bars always start from zero.
func valueRange(values []float64, fromZero bool) *chart.ContinuousRange {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if fromZero {
		lo = math.Min(lo, 0)
		hi = math.Max(hi, 0)
	}

	pad := (hi - lo) * 0.1
	if pad == 0 {
		pad = math.Max(math.Abs(hi)*0.1, 1)
	}
	if !fromZero || lo < 0 {
		lo -= pad
	}
	return &chart.ContinuousRange{Min: lo, Max: hi + pad}
}

var palette = []drawing.Color{
	chart.ColorBlue,
	chart.ColorCyan,
	chart.ColorGreen,
	chart.ColorOrange,
	chart.ColorRed,
	chart.ColorYellow,
}

func barColor(i int) drawing.Color {
	return palette[i%len(palette)]
}
