package render

import (
	"strconv"

	"github.com/epigraph-tools/lapis/engine"
)

// ============================================================================
// CHART ADAPTERS — Plotly-style vs Native
// ============================================================================
// Two interchangeable front ends for the same aggregates: Plotly emits pie
// breakdowns and histogram timelines, Native emits plain bar data for the
// built-in chart. Selected by name from configuration.
// ============================================================================

// Plotly builds pie/histogram chart configs for a plotting-library frontend.
type Plotly struct{}

// Native builds plain bar-chart configs for the built-in chart frontend.
type Native struct{}

// ForName resolves a builder by configuration name. Unknown names fall back
// to Plotly.
func ForName(name string) ChartBuilder {
	if name == "native" {
		return Native{}
	}
	return Plotly{}
}

func (Plotly) Breakdown(title string, buckets []engine.Bucket) *ChartConfig {
	cfg := breakdownChart("pie", title, buckets)
	if cfg != nil {
		cfg.ShowGrid = false
	}
	return cfg
}

func (Plotly) Timeline(title string, series []engine.YearCount) *ChartConfig {
	return timelineChart("histogram", title, series)
}

func (Native) Breakdown(title string, buckets []engine.Bucket) *ChartConfig {
	return breakdownChart("bar", title, buckets)
}

func (Native) Timeline(title string, series []engine.YearCount) *ChartConfig {
	return timelineChart("bar", title, series)
}

// ============================================================================
// SHARED BUILDERS
// ============================================================================

func breakdownChart(chartType, title string, buckets []engine.Bucket) *ChartConfig {
	if len(buckets) == 0 {
		return nil
	}

	points := make([]ChartPoint, 0, len(buckets))
	for _, b := range buckets {
		points = append(points, ChartPoint{Label: b.Value, Value: float64(b.Count)})
	}

	return &ChartConfig{
		ChartType:  chartType,
		Title:      title,
		YAxis:      "Count",
		Series:     []ChartSeries{{Name: title, Data: points}},
		Colors:     assignColors(len(points)),
		ShowLegend: chartType == "pie",
		ShowGrid:   chartType != "pie",
	}
}

func timelineChart(chartType, title string, series []engine.YearCount) *ChartConfig {
	if len(series) == 0 {
		return nil
	}

	points := make([]ChartPoint, 0, len(series))
	for _, yc := range series {
		points = append(points, ChartPoint{Label: strconv.Itoa(yc.Year), Value: float64(yc.Count)})
	}

	return &ChartConfig{
		ChartType:  chartType,
		Title:      title,
		XAxis:      "Year",
		YAxis:      "Inscriptions",
		Series:     []ChartSeries{{Name: title, Data: points, Color: defaultColors[0]}},
		Colors:     assignColors(1),
		ShowLegend: false,
		ShowGrid:   true,
	}
}
