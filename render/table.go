package render

import (
	"github.com/epigraph-tools/lapis/engine"
	"github.com/epigraph-tools/lapis/schema"
)

// Table builds a row-per-record table from a view, columns in the view's
// existing order. Numeric columns (per the profile) align right.
func Table(title string, v engine.View, p schema.Profile) *TableData {
	cols := v.Columns()
	columns := make([]ColumnSpec, 0, len(cols))
	for _, key := range cols {
		align := "left"
		label := key
		if c, ok := p.Column(key); ok {
			label = c.DisplayName
			if c.Kind == schema.KindNumeric || c.Kind == schema.KindIdentifier {
				align = "right"
			}
		}
		columns = append(columns, ColumnSpec{Key: key, Label: label, Align: align})
	}

	return &TableData{
		Title:   title,
		Columns: columns,
		Rows:    engine.Rows(v),
		Total:   v.Len(),
	}
}

// Metrics builds the overview metric cards, substituting the engine's
// "not available" placeholder where a backing column is absent.
func Metrics(s engine.Summary) []MetricCard {
	m := s.Map()
	cards := []MetricCard{
		{Label: "Total Inscriptions", Value: m["total_records"]},
		{Label: "Unique People", Value: m["unique_people"]},
		{Label: "Earliest Year", Value: m["year_min"]},
		{Label: "Latest Year", Value: m["year_max"]},
		{Label: "Most Common Gender", Value: m["common_gender"]},
	}
	return cards
}
