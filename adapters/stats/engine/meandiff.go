package engine

import (
	"context"

	"github.com/montanaflynn/stats"

	"exprdiff/domain/expr"
	"exprdiff/internal/errors"
)

// MeanDiff computes the signed difference of group means per gene,
// first minus second, rounded to 3 decimals. Results follow the order
// of genes.
func (e *Engine) MeanDiff(ctx context.Context, first, second *expr.Table, genes []expr.GeneName) ([]float64, error) {
	diffs := make([]float64, 0, len(genes))
	for _, gene := range genes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		a, b, err := geneColumns(first, second, gene)
		if err != nil {
			return nil, err
		}
		if len(a) == 0 || len(b) == 0 {
			return nil, errors.InvalidInput("empty expression column for gene " + string(gene))
		}

		meanA, err := stats.Mean(a)
		if err != nil {
			return nil, errors.Wrapf(err, "computing mean for gene %q", gene)
		}
		meanB, err := stats.Mean(b)
		if err != nil {
			return nil, errors.Wrapf(err, "computing mean for gene %q", gene)
		}

		diffs = append(diffs, expr.Round3(meanA-meanB))
	}
	return diffs, nil
}
