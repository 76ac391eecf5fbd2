package engine

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// ============================================================================
// AGGREGATES — Categorical Breakdowns, Timelines, Ordering
// ============================================================================
// Counts over a categorical field sum to the number of non-missing values in
// the aggregated view. An absent field yields an empty result, never an
// error; so does an empty view.
// ============================================================================

// Bucket is one row of a categorical aggregate: a distinct field value with
// its count and its share of the view's total row count.
type Bucket struct {
	Value   string  `json:"value"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// CategoricalAggregate counts rows per distinct non-missing value of field.
// Percent is count / total view rows × 100, rounded to 2 decimal places.
// Buckets are ordered by descending count; ties keep the order in which the
// value was first encountered in the view.
func CategoricalAggregate(v View, field string) []Bucket {
	if v.Len() == 0 || !HasColumn(v, field) {
		return nil
	}

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

	total := float64(v.Len())
	buckets := make([]Bucket, 0, len(order))
	for _, val := range order {
		buckets = append(buckets, Bucket{
			Value:   val,
			Count:   counts[val],
			Percent: RoundTo2(float64(counts[val]) / total * 100),
		})
	}

	// Stable sort preserves first-encountered order among equal counts.
	sort.SliceStable(buckets, func(i, j int) bool { return buckets[i].Count > buckets[j].Count })
	return buckets
}

// DistinctValuesSorted returns the distinct non-missing values of a field,
// sorted lexicographically on their text form. Empty when the field is
// absent.
func DistinctValuesSorted(v View, field string) []string {
	if !HasColumn(v, field) {
		return nil
	}
	seen := make(map[string]bool)
	var values []string
	for i := 0; i < v.Len(); i++ {
		val := v.Cell(i, field)
		if val != Missing && !seen[val] {
			seen[val] = true
			values = append(values, val)
		}
	}
	sort.Strings(values)
	return values
}

// FilterOptions returns DistinctValuesSorted prefixed with the All sentinel,
// ready for a filter dropdown.
func FilterOptions(v View, field string) []string {
	return append([]string{All}, DistinctValuesSorted(v, field)...)
}

// CountWhere counts the rows whose field value equals value exactly.
func CountWhere(v View, field, value string) int {
	if !HasColumn(v, field) {
		return 0
	}
	n := 0
	for i := 0; i < v.Len(); i++ {
		if v.Cell(i, field) == value {
			n++
		}
	}
	return n
}

// ============================================================================
// TIMELINE
// ============================================================================

// YearCount is one point of the inscriptions-over-time series.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// TimeSeriesCounts counts records per distinct year, in ascending numeric
// order. Cells that do not parse as integers are skipped; an absent field
// yields an empty result.
func TimeSeriesCounts(v View, yearField string) []YearCount {
	if !HasColumn(v, yearField) {
		return nil
	}

	counts := make(map[int]int)
	for i := 0; i < v.Len(); i++ {
		year, err := strconv.Atoi(strings.TrimSpace(v.Cell(i, yearField)))
		if err != nil {
			continue
		}
		counts[year]++
	}

	years := make([]int, 0, len(counts))
	for y := range counts {
		years = append(years, y)
	}
	sort.Ints(years)

	series := make([]YearCount, 0, len(years))
	for _, y := range years {
		series = append(series, YearCount{Year: y, Count: counts[y]})
	}
	return series
}

// ============================================================================
// ORDERING
// ============================================================================

// SortByNumericDesc returns a view ordered by a numeric field, largest
// first. Rows whose cell does not parse sort after all numeric rows; the
// sort is stable, so row order within equal keys is preserved. An absent
// field returns the view unchanged.
func SortByNumericDesc(v View, field string) View {
	if !HasColumn(v, field) {
		return v
	}

	type keyed struct {
		row int
		val float64
		ok  bool
	}
	keys := make([]keyed, v.Len())
	for i := 0; i < v.Len(); i++ {
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Cell(i, field)), 64)
		keys[i] = keyed{row: i, val: f, ok: err == nil}
	}

	sort.SliceStable(keys, func(i, j int) bool {
		if keys[i].ok != keys[j].ok {
			return keys[i].ok
		}
		return keys[i].val > keys[j].val
	})

	indices := make([]int, len(keys))
	for i, k := range keys {
		indices[i] = k.row
	}
	return newSubView(v, indices)
}

// Window returns the half-open row range [start, end) of a view.
// Out-of-range bounds are clamped.
func Window(v View, start, end int) View {
	if start < 0 {
		start = 0
	}
	if end > v.Len() {
		end = v.Len()
	}
	if start >= end {
		return newSubView(v, nil)
	}
	indices := make([]int, end-start)
	for i := range indices {
		indices[i] = start + i
	}
	return newSubView(v, indices)
}

// Head returns the first n rows of a view (all rows when n exceeds Len).
func Head(v View, n int) View {
	if n >= v.Len() {
		return v
	}
	if n < 0 {
		n = 0
	}
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	return newSubView(v, indices)
}

// RoundTo2 rounds to 2 decimal places.
func RoundTo2(f float64) float64 {
	return math.Round(f*100) / 100
}
