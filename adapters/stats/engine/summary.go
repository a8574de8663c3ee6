package engine

import (
	"github.com/montanaflynn/stats"

	"exprdiff/domain/expr"
	"exprdiff/internal/errors"
)

// groupSummary holds the descriptive statistics one tester pass needs
// for a single gene/group column.
type groupSummary struct {
	Mean   float64
	StdDev float64 // sample standard deviation (n-1)
	N      int
}

// summarize computes descriptive statistics for one column. Columns
// with fewer than 2 samples are rejected here so the t-interval and
// pooled-variance paths never see zero degrees of freedom.
func summarize(gene expr.GeneName, group string, values []float64) (groupSummary, error) {
	if len(values) < 2 {
		return groupSummary{}, errors.DegenerateSample(string(gene), group, len(values))
	}

	mean, err := stats.Mean(values)
	if err != nil {
		return groupSummary{}, errors.Wrapf(err, "computing mean for gene %q", gene)
	}
	stdDev, err := stats.StandardDeviationSample(values)
	if err != nil {
		return groupSummary{}, errors.Wrapf(err, "computing standard deviation for gene %q", gene)
	}

	return groupSummary{Mean: mean, StdDev: stdDev, N: len(values)}, nil
}
