package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryMetricsSample(t *testing.T) {
	s := SummaryMetrics(sampleDataset())

	assert.Equal(t, 10, s.TotalRecords)
	require.NotNil(t, s.UniquePeople)
	assert.Equal(t, 10, *s.UniquePeople)
	require.NotNil(t, s.YearMin)
	require.NotNil(t, s.YearMax)
	assert.Equal(t, 80, *s.YearMin)
	assert.Equal(t, 200, *s.YearMax)

	// 5 Male vs 5 Female: the tie resolves to the value first encountered
	// in row order.
	assert.Equal(t, "Male", s.CommonGender)

	span, ok := s.YearSpan()
	assert.True(t, ok)
	assert.Equal(t, 120, span)
}

func TestSummaryMetricsDegradesOnAbsentColumns(t *testing.T) {
	ds := NewDataset([]string{"text"}, [][]string{{"Dis Manibus"}})
	s := SummaryMetrics(ds)

	assert.Equal(t, 1, s.TotalRecords)
	assert.Nil(t, s.UniquePeople)
	assert.Nil(t, s.YearMin)
	assert.Empty(t, s.CommonGender)

	m := s.Map()
	assert.Equal(t, "1", m["total_records"])
	assert.Equal(t, NotAvailable, m["unique_people"])
	assert.Equal(t, NotAvailable, m["year_min"])
	assert.Equal(t, NotAvailable, m["common_gender"])
}

func TestCategoricalAggregateCountsAndPercents(t *testing.T) {
	buckets := CategoricalAggregate(sampleDataset(), "inscription_type")
	require.Len(t, buckets, 5)

	// Descending count; ties keep first-encountered order (Honorary at
	// row 2 before Votive at row 3, Building at row 5 before Military).
	assert.Equal(t, Bucket{Value: "Funerary", Count: 4, Percent: 40}, buckets[0])
	assert.Equal(t, Bucket{Value: "Honorary", Count: 2, Percent: 20}, buckets[1])
	assert.Equal(t, Bucket{Value: "Votive", Count: 2, Percent: 20}, buckets[2])
	assert.Equal(t, Bucket{Value: "Building", Count: 1, Percent: 10}, buckets[3])
	assert.Equal(t, Bucket{Value: "Military", Count: 1, Percent: 10}, buckets[4])

	var pct float64
	var count int
	for _, b := range buckets {
		pct += b.Percent
		count += b.Count
	}
	assert.InDelta(t, 100, pct, 0.05)
	assert.Equal(t, 10, count)
}

func TestCategoricalAggregateWithMissingValues(t *testing.T) {
	ds := NewDataset([]string{"gender"}, [][]string{
		{"Male"}, {""}, {"Female"}, {"Male"}, {""},
	})
	buckets := CategoricalAggregate(ds, "gender")
	require.Len(t, buckets, 2)

	// Counts sum to the non-missing values; percents use the view's
	// total row count, so they do not reach 100 here.
	total := 0
	pct := 0.0
	for _, b := range buckets {
		total += b.Count
		pct += b.Percent
	}
	assert.Equal(t, 3, total)
	assert.True(t, pct < 100)
	assert.InDelta(t, 60, pct, 0.05)
}

func TestCategoricalAggregateDegrades(t *testing.T) {
	ds := sampleDataset()
	assert.Nil(t, CategoricalAggregate(ds, "location"))

	empty := NewDataset([]string{"gender"}, nil)
	assert.Nil(t, CategoricalAggregate(empty, "gender"))
}

func TestDistinctValuesSorted(t *testing.T) {
	ds := sampleDataset()
	got := DistinctValuesSorted(ds, "case")
	assert.Equal(t, []string{"Ablative", "Accusative", "Dative", "Genitive", "Nominative"}, got)

	assert.Nil(t, DistinctValuesSorted(ds, "location"))

	opts := FilterOptions(ds, "gender")
	assert.Equal(t, []string{All, "Female", "Male"}, opts)

	// Absent field still yields a usable dropdown: just the sentinel.
	assert.Equal(t, []string{All}, FilterOptions(ds, "location"))
}

func TestTimeSeriesCountsAscending(t *testing.T) {
	ds := NewDataset([]string{"year"}, [][]string{
		{"150"}, {"80"}, {"150"}, {"not-a-year"}, {""}, {"-44"},
	})
	got := TimeSeriesCounts(ds, "year")
	assert.Equal(t, []YearCount{{Year: -44, Count: 1}, {Year: 80, Count: 1}, {Year: 150, Count: 2}}, got)

	assert.Nil(t, TimeSeriesCounts(ds, "date"))
	assert.Empty(t, TimeSeriesCounts(NewDataset([]string{"year"}, nil), "year"))
}

func TestCountWhere(t *testing.T) {
	ds := sampleDataset()
	assert.Equal(t, 5, CountWhere(ds, "gender", "Male"))
	assert.Equal(t, 5, CountWhere(ds, "gender", "Female"))
	assert.Equal(t, 0, CountWhere(ds, "location", "Rome"))
}

func TestSortByNumericDescAndHead(t *testing.T) {
	ds := sampleDataset()
	recent := Head(SortByNumericDesc(ds, "year"), 3)
	assert.Equal(t, []string{"4", "8", "5"}, ids(recent)) // years 200, 180, 170

	// Non-numeric rows sort after numeric ones, original order kept.
	mixed := NewDataset([]string{"person_id", "year"}, [][]string{
		{"a", ""}, {"b", "100"}, {"c", "oops"}, {"d", "300"},
	})
	sorted := SortByNumericDesc(mixed, "year")
	assert.Equal(t, []string{"d", "b", "a", "c"}, ids(sorted))

	// Absent sort field is identity.
	assert.Equal(t, ids(ds), ids(SortByNumericDesc(ds, "location")))
}

func TestWindow(t *testing.T) {
	ds := sampleDataset()
	assert.Equal(t, []string{"3", "4", "5"}, ids(Window(ds, 2, 5)))
	assert.Equal(t, 0, Window(ds, 8, 8).Len())
	assert.Equal(t, []string{"9", "10"}, ids(Window(ds, 8, 99)))
}

func TestRoundTo2(t *testing.T) {
	assert.Equal(t, 33.33, RoundTo2(100.0/3))
	assert.Equal(t, 50.0, RoundTo2(50))
	assert.False(t, math.Signbit(RoundTo2(0)))
}
