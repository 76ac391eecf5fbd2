// Package search filters dataset views with boolean expressions, e.g.
//
//	gender == "Male" and year > 100
//
// Expressions are compiled once and evaluated per row against a map of
// column → value. Numeric-looking cells are exposed as numbers so ordering
// comparisons work.
package search

import (
	"fmt"
	"strconv"

	"github.com/hashicorp/go-bexpr"

	"github.com/epigraph-tools/lapis/engine"
)

// Evaluator is a compiled row expression.
type Evaluator struct {
	expr      string
	evaluator *bexpr.Evaluator
}

// New compiles an expression. A parse failure is a user error, reported
// once at compile time.
func New(expr string) (*Evaluator, error) {
	ev, err := bexpr.CreateEvaluator(expr)
	if err != nil {
		return nil, fmt.Errorf("search: error parsing expression %q: %w", expr, err)
	}
	return &Evaluator{expr: expr, evaluator: ev}, nil
}

// String returns the source expression.
func (e *Evaluator) String() string { return e.expr }

// Filter returns the order-preserving subview of rows the expression
// matches. Rows that fail to evaluate (e.g. a type mismatch) are excluded
// rather than aborting the query.
func (e *Evaluator) Filter(v engine.View) engine.View {
	return engine.Select(v, func(row int) bool {
		match, err := e.evaluator.Evaluate(rowValues(v, row))
		return err == nil && match
	})
}

// rowValues builds the evaluation scope for one row. Missing cells are
// omitted so "is empty" style checks behave, and numeric cells are parsed so
// the expression language can compare them as numbers.
func rowValues(v engine.View, row int) map[string]any {
	values := make(map[string]any, len(v.Columns()))
	for _, col := range v.Columns() {
		cell := v.Cell(row, col)
		if cell == engine.Missing {
			continue
		}
		if n, err := strconv.ParseFloat(cell, 64); err == nil {
			values[col] = n
			continue
		}
		values[col] = cell
	}
	return values
}
