// Package engine implements the three leaf testers of the expression
// comparison pipeline: the confidence-interval overlap test, the
// two-sample z-test with optional multiple-comparisons correction, and
// the mean-difference calculator. The testers are stateless; all inputs
// arrive as explicit arguments and all outputs are returned in gene
// order.
package engine

import (
	"exprdiff/domain/expr"
	"exprdiff/internal/errors"
)

// Group names used in degenerate-sample diagnostics.
const (
	groupFirst  = "first"
	groupSecond = "second"
)

// ConfidenceLevel is the fixed level for the CI tester.
const ConfidenceLevel = 0.95

// Alpha is the significance threshold for the z-test.
const Alpha = 0.05

// Engine runs the per-gene statistical tests.
type Engine struct {
	dist *Distributions
}

// New creates a test engine.
func New() *Engine {
	return &Engine{dist: NewDistributions()}
}

// geneColumns fetches the numeric column for gene from both tables.
func geneColumns(first, second *expr.Table, gene expr.GeneName) ([]float64, []float64, error) {
	a, ok := first.Column(string(gene))
	if !ok {
		return nil, nil, errors.InvalidInput("first table has no numeric column " + string(gene))
	}
	b, ok := second.Column(string(gene))
	if !ok {
		return nil, nil, errors.InvalidInput("second table has no numeric column " + string(gene))
	}
	return a, b, nil
}
