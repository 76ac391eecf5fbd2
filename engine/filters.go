package engine

import (
	"strings"
)

// ============================================================================
// FILTERS — Text Search and Exact Field Match
// ============================================================================
// All filters are conjunctive (AND) and order-preserving. Each returns a
// zero-copy subview of its input; the input is never mutated.
// ============================================================================

// All is the sentinel field-filter value meaning "no restriction".
// UI dropdowns prepend it via FilterOptions.
const All = "All"

// FilterByText returns the rows where at least one column's value contains
// query as a case-insensitive substring. An empty query returns the view
// unchanged. Missing cells never match.
func FilterByText(v View, query string) View {
	if query == "" {
		return v
	}

	q := strings.ToLower(query)
	indices := make([]int, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		for _, cell := range v.Row(i) {
			if cell == Missing {
				continue
			}
			if strings.Contains(strings.ToLower(cell), q) {
				indices = append(indices, i)
				break
			}
		}
	}
	return newSubView(v, indices)
}

// FilterByField returns the rows whose field value equals value exactly.
// When the field is absent from the view's columns, or value is the All
// sentinel, the view is returned unchanged. No substring semantics here.
func FilterByField(v View, field, value string) View {
	if value == All || !HasColumn(v, field) {
		return v
	}

	indices := make([]int, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		if v.Cell(i, field) == value {
			indices = append(indices, i)
		}
	}
	return newSubView(v, indices)
}

// ApplyFilters composes the text search with a set of exact field filters:
// text first, then each field filter. Field filters commute, so map
// iteration order does not affect the result.
func ApplyFilters(v View, textQuery string, fieldFilters map[string]string) View {
	out := FilterByText(v, textQuery)
	for field, value := range fieldFilters {
		out = FilterByField(out, field, value)
	}
	return out
}

// Select returns the rows for which keep reports true. It is the hook for
// external predicates (expression search) that cannot be phrased as a text
// or equality filter.
func Select(v View, keep func(row int) bool) View {
	indices := make([]int, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		if keep(i) {
			indices = append(indices, i)
		}
	}
	return newSubView(v, indices)
}
