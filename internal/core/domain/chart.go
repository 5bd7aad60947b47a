package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Label is a chart category. The grading service sends subject names for the
// bar chart and term numbers for the line chart, so a Label decodes from
// either a JSON string or a JSON number.
type Label string

// UnmarshalJSON accepts both string and numeric labels.
func (l *Label) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*l = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = Label(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("label: %w", err)
	}
	*l = Label(n.String())
	return nil
}

// MarshalJSON writes numeric labels back as numbers.
func (l Label) MarshalJSON() ([]byte, error) {
	if isNumeric(string(l)) {
		return []byte(l), nil
	}
	return json.Marshal(string(l))
}

func isNumeric(s string) bool {
	if s == "" || !(s[0] == '-' || (s[0] >= '0' && s[0] <= '9')) {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil && json.Valid([]byte(s))
}

// String returns the label text.
func (l Label) String() string {
	return string(l)
}

// ChartSeries is a paired label/value sequence backing one chart.
// Labels and Values are positionally paired.
type ChartSeries struct {
	Labels []Label   `json:"labels"`
	Values []float64 `json:"values"`
}

// Len returns the number of points, driven by the label count.
func (c *ChartSeries) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Labels)
}

// Validate reports a series whose labels and values differ in length.
func (c *ChartSeries) Validate() error {
	if c == nil {
		return nil
	}
	if len(c.Labels) != len(c.Values) {
		return fmt.Errorf("%w: %d labels, %d values", ErrInvalidInput, len(c.Labels), len(c.Values))
	}
	return nil
}

// Rows zips labels and values into chart rows. A missing value is 0.
// A nil series yields an empty slice.
func (c *ChartSeries) Rows() []ChartRow {
	if c == nil {
		return []ChartRow{}
	}
	rows := make([]ChartRow, len(c.Labels))
	for i, label := range c.Labels {
		var value float64
		if i < len(c.Values) {
			value = c.Values[i]
		}
		rows[i] = ChartRow{Category: label, Value: value}
	}
	return rows
}

// ChartRow is one zipped point ready for a charting component.
type ChartRow struct {
	Category Label   `json:"category"`
	Value    float64 `json:"value"`
}

// AnalysisResult is the payload of one analysis call.
// It is transient: consumed immediately into the analysis store.
type AnalysisResult struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Bar     ChartSeries `json:"bar_data"`
	Line    ChartSeries `json:"line_data"`
}
