// Package lapis provides a query engine and dashboard for tabular datasets
// of Latin inscriptions.
//
// Usage:
//
//	import "github.com/epigraph-tools/lapis/engine"
//
//	ds, _ := dataset.LoadFile("inscriptions_data.csv")
//	view := engine.ApplyFilters(ds, "julia", map[string]string{"gender": "Female"})
//	buckets := engine.CategoricalAggregate(view, "inscription_type")
//
// The engine holds one immutable dataset per session and answers filter,
// aggregation, and summary queries against it with order-preserving,
// zero-copy views. Operations referencing columns the dataset does not have
// degrade to empty or "not available" results instead of failing.
//
// CSV loading and export live in the dataset package, column profiling in
// schema, expression search in search, chart/table building in render, and
// the HTTP dashboard in server. The engine itself never performs I/O.
package lapis
