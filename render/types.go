// Package render turns query-engine output into render-ready structures for
// the dashboard. There is exactly one query engine; the only thing that
// varies between chart stacks is the thin ChartBuilder adapter.
package render

import "github.com/epigraph-tools/lapis/engine"

// ChartPoint is a single labelled value.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ChartSeries is a named sequence of points.
type ChartSeries struct {
	Name  string       `json:"name"`
	Data  []ChartPoint `json:"data"`
	Color string       `json:"color,omitempty"`
}

// ChartConfig describes a renderable chart.
type ChartConfig struct {
	ChartType  string        `json:"chartType"`
	Title      string        `json:"title"`
	XAxis      string        `json:"xAxis,omitempty"`
	YAxis      string        `json:"yAxis,omitempty"`
	Series     []ChartSeries `json:"series"`
	Colors     []string      `json:"colors,omitempty"`
	ShowLegend bool          `json:"showLegend"`
	ShowGrid   bool          `json:"showGrid"`
}

// ColumnSpec describes one table column.
type ColumnSpec struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Align string `json:"align"`
}

// TableData describes a renderable table of records.
type TableData struct {
	Title   string       `json:"title"`
	Columns []ColumnSpec `json:"columns"`
	Rows    [][]string   `json:"rows"`
	Total   int          `json:"total"`
}

// MetricCard is one summary card on the overview page.
type MetricCard struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ChartBuilder adapts engine aggregates to one chart stack. Implementations
// must stay thin: no filtering or counting happens here.
type ChartBuilder interface {
	// Breakdown charts a categorical aggregate.
	Breakdown(title string, buckets []engine.Bucket) *ChartConfig
	// Timeline charts records-per-year counts.
	Timeline(title string, series []engine.YearCount) *ChartConfig
}

// Default color palette for chart series.
var defaultColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

func assignColors(count int) []string {
	colors := make([]string, count)
	for i := 0; i < count; i++ {
		colors[i] = defaultColors[i%len(defaultColors)]
	}
	return colors
}
