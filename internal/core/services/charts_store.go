package services

import (
	"sync"

	"github.com/custodia-labs/etis-cli/internal/core/domain"
	"github.com/custodia-labs/etis-cli/internal/core/ports/driving"
)

// Ensure ChartsStore implements the interface.
var _ driving.ChartsStore = (*ChartsStore)(nil)

// ChartsStore holds the bar and line series of the last analysis and the
// loading flag. Series are replaced wholesale, never merged.
type ChartsStore struct {
	mu      sync.RWMutex
	bar     *domain.ChartSeries
	line    *domain.ChartSeries
	loading bool
}

// NewChartsStore creates an empty charts store.
func NewChartsStore() *ChartsStore {
	return &ChartsStore{}
}

// BarData returns a copy of the bar series, or nil if none is set.
func (c *ChartsStore) BarData() *domain.ChartSeries {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneSeries(c.bar)
}

// LineData returns a copy of the line series, or nil if none is set.
func (c *ChartsStore) LineData() *domain.ChartSeries {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneSeries(c.line)
}

// SetBarData replaces the bar series.
func (c *ChartsStore) SetBarData(series domain.ChartSeries) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bar = cloneSeries(&series)
}

// SetLineData replaces the line series.
func (c *ChartsStore) SetLineData(series domain.ChartSeries) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.line = cloneSeries(&series)
}

// Loading returns true while an analysis is in flight.
func (c *ChartsStore) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// SetLoading toggles the busy indicator.
func (c *ChartsStore) SetLoading(loading bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = loading
}

// HasData returns true once either series is set.
func (c *ChartsStore) HasData() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.bar != nil || c.line != nil
}

// FormattedBarData zips the bar series into rows.
func (c *ChartsStore) FormattedBarData() []domain.ChartRow {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.bar.Rows()
}

// FormattedLineData zips the line series into rows.
func (c *ChartsStore) FormattedLineData() []domain.ChartRow {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.line.Rows()
}

// Reset drops both series and clears the loading flag.
func (c *ChartsStore) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bar = nil
	c.line = nil
	c.loading = false
}

func cloneSeries(s *domain.ChartSeries) *domain.ChartSeries {
	if s == nil {
		return nil
	}
	return &domain.ChartSeries{
		Labels: append([]domain.Label(nil), s.Labels...),
		Values: append([]float64(nil), s.Values...),
	}
}
