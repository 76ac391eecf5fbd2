package schema

import (
	"sort"
	"strconv"
	"strings"

	"github.com/epigraph-tools/lapis/engine"
)

// ============================================================================
// COLUMN PROFILING — Heuristic Classification
// ============================================================================
// Inspects the loaded dataset and classifies each column so the dashboard
// can build itself from whatever columns are actually present: categorical
// columns get filter dropdowns and statistics breakdowns, numeric columns
// get range metrics, identifiers and free text are listed but not charted.
//
// Classification per column:
//   1. Sample values → numeric ratio, distinct count
//   2. Mostly numeric + near-unique integers (or an *_id key) → identifier
//   3. Mostly numeric otherwise → numeric
//   4. Low cardinality → categorical
//   5. Everything else → free text
// ============================================================================

// Kind is a column's classified role.
type Kind string

const (
	KindIdentifier  Kind = "identifier"
	KindNumeric     Kind = "numeric"
	KindCategorical Kind = "categorical"
	KindText        Kind = "text"
)

// Column describes one profiled column.
type Column struct {
	Key         string   `json:"key"`
	DisplayName string   `json:"displayName"`
	Kind        Kind     `json:"kind"`
	Distinct    int      `json:"distinct"`
	NonMissing  int      `json:"nonMissing"`
	Samples     []string `json:"samples,omitempty"`
}

// Profile is the classified shape of a dataset.
type Profile struct {
	RowCount int      `json:"rowCount"`
	Columns  []Column `json:"columns"`
}

// maxSampleRows caps how many rows Discover inspects per column.
const maxSampleRows = 1000

// maxSampleValues caps the sample values kept per column.
const maxSampleValues = 5

// Discover profiles a view by sampling its rows. It never fails: an empty
// view produces a profile with zero-valued columns.
func Discover(v engine.View) Profile {
	p := Profile{RowCount: v.Len()}

	limit := v.Len()
	if limit > maxSampleRows {
		limit = maxSampleRows
	}

	for _, key := range v.Columns() {
		seen := make(map[string]bool)
		numeric := 0
		integers := 0
		nonMissing := 0
		var samples []string

		for i := 0; i < limit; i++ {
			val := v.Cell(i, key)
			if val == engine.Missing {
				continue
			}
			nonMissing++
			if !seen[val] {
				seen[val] = true
				if len(samples) < maxSampleValues {
					samples = append(samples, val)
				}
			}
			if _, err := strconv.ParseFloat(val, 64); err == nil {
				numeric++
				if _, err := strconv.Atoi(val); err == nil {
					integers++
				}
			}
		}

		p.Columns = append(p.Columns, Column{
			Key:         key,
			DisplayName: toDisplayName(key),
			Kind:        classify(key, nonMissing, numeric, integers, len(seen)),
			Distinct:    len(seen),
			NonMissing:  nonMissing,
			Samples:     samples,
		})
	}

	return p
}

// categoricalMax is the distinct-value ceiling for a categorical column.
const categoricalMax = 25

func classify(key string, nonMissing, numeric, integers, distinct int) Kind {
	if nonMissing == 0 {
		return KindText
	}

	// Mostly numeric column
	if float64(numeric)/float64(nonMissing) >= 0.9 {
		nearUnique := distinct*10 >= nonMissing*9
		if integers == numeric && (strings.HasSuffix(key, "_id") || key == "id") && nearUnique {
			return KindIdentifier
		}
		return KindNumeric
	}

	// Low-cardinality text → categorical
	if distinct <= categoricalMax && distinct*2 <= nonMissing+1 {
		return KindCategorical
	}

	return KindText
}

// Column looks a profiled column up by key.
func (p Profile) Column(key string) (Column, bool) {
	for _, c := range p.Columns {
		if c.Key == key {
			return c, true
		}
	}
	return Column{}, false
}

// Filterable returns the columns that should get exact-match filter
// dropdowns, in dataset column order.
func (p Profile) Filterable() []Column {
	var out []Column
	for _, c := range p.Columns {
		if c.Kind == KindCategorical {
			out = append(out, c)
		}
	}
	return out
}

// Breakdowns returns the columns worth a categorical statistics chart,
// largest audience first (more distinct values last).
func (p Profile) Breakdowns() []Column {
	out := p.Filterable()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Distinct < out[j].Distinct })
	return out
}

// toDisplayName converts "age_category" → "Age Category".
func toDisplayName(key string) string {
	parts := strings.FieldsFunc(key, func(r rune) bool { return r == '_' || r == '-' || r == ' ' })
	for i, part := range parts {
		if part == "" {
			continue
		}
		if strings.EqualFold(part, "id") {
			parts[i] = "ID"
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}
