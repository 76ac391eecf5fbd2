package engine

import (
	"strconv"
	"strings"
)

// ============================================================================
// SUMMARY METRICS — Overview Page Numbers
// ============================================================================
// Pure functions of a dataset snapshot. Metrics backed by an absent column
// report "not available" instead of failing.
// ============================================================================

// NotAvailable is the rendered value for metrics whose backing column is
// absent from the loaded dataset.
const NotAvailable = "not available"

// Column names the summary metrics are built from. Datasets lacking any of
// them still summarize; the affected metric degrades.
const (
	ColPersonID = "person_id"
	ColName     = "name"
	ColGender   = "gender"
	ColAge      = "age_category"
	ColYear     = "year"
	ColCase     = "case"
	ColType     = "inscription_type"
)

// Summary holds the overview metrics for one view. Nil pointer fields mean
// the backing column was absent (or held no usable values).
type Summary struct {
	TotalRecords int
	UniquePeople *int
	YearMin      *int
	YearMax      *int
	// CommonGender is the most frequent gender value; ties resolve to the
	// value first encountered in row order. Empty when unavailable.
	CommonGender string
}

// SummaryMetrics computes the Summary for a view. No side effects.
func SummaryMetrics(v View) Summary {
	s := Summary{TotalRecords: v.Len()}

	if HasColumn(v, ColPersonID) {
		n := countDistinct(v, ColPersonID)
		s.UniquePeople = &n
	}

	if HasColumn(v, ColYear) {
		if lo, hi, ok := numericRange(v, ColYear); ok {
			s.YearMin, s.YearMax = &lo, &hi
		}
	}

	if HasColumn(v, ColGender) {
		s.CommonGender = mostFrequent(v, ColGender)
	}

	return s
}

// Map renders the summary as metric name → value, substituting NotAvailable
// for metrics without a backing column.
func (s Summary) Map() map[string]string {
	m := map[string]string{
		"total_records": strconv.Itoa(s.TotalRecords),
		"unique_people": NotAvailable,
		"year_min":      NotAvailable,
		"year_max":      NotAvailable,
		"common_gender": NotAvailable,
	}
	if s.UniquePeople != nil {
		m["unique_people"] = strconv.Itoa(*s.UniquePeople)
	}
	if s.YearMin != nil {
		m["year_min"] = strconv.Itoa(*s.YearMin)
	}
	if s.YearMax != nil {
		m["year_max"] = strconv.Itoa(*s.YearMax)
	}
	if s.CommonGender != "" {
		m["common_gender"] = s.CommonGender
	}
	return m
}

// YearSpan returns max-min when both bounds exist.
func (s Summary) YearSpan() (int, bool) {
	if s.YearMin == nil || s.YearMax == nil {
		return 0, false
	}
	return *s.YearMax - *s.YearMin, true
}

func countDistinct(v View, field string) int {
	seen := make(map[string]bool)
	for i := 0; i < v.Len(); i++ {
		if val := v.Cell(i, field); val != Missing {
			seen[val] = true
		}
	}
	return len(seen)
}

// numericRange scans a column for integer values and returns min/max.
// Non-numeric and missing cells are skipped; ok is false when no cell parsed.
func numericRange(v View, field string) (lo, hi int, ok bool) {
	for i := 0; i < v.Len(); i++ {
		n, err := strconv.Atoi(strings.TrimSpace(v.Cell(i, field)))
		if err != nil {
			continue
		}
		if !ok {
			lo, hi, ok = n, n, true
			continue
		}
		if n < lo {
			lo = n
		}
		if n > hi {
			hi = n
		}
	}
	return lo, hi, ok
}

// mostFrequent returns the most common non-missing value of a field.
// Ties break toward the value first encountered in row order.
func mostFrequent(v View, field string) string {
	counts := make(map[string]int)
	var order []string
	for i := 0; i < v.Len(); i++ {
		val := v.Cell(i, field)
		if val == Missing {
			continue
		}
		if _, seen := counts[val]; !seen {
			order = append(order, val)
		}
		counts[val]++
	}

	best := ""
	bestCount := 0
	for _, val := range order {
		if counts[val] > bestCount {
			best, bestCount = val, counts[val]
		}
	}
	return best
}
