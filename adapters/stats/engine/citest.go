package engine

import (
	"context"

	"exprdiff/domain/expr"
)

// CITest checks differential expression per gene via confidence-interval
// overlap. For each group it builds the 95% t-interval for the mean and
// declares a difference iff the two intervals do not intersect. Results
// follow the order of genes. A gene/group column with fewer than 2
// samples fails the whole call with a DEGENERATE_SAMPLE error.
func (e *Engine) CITest(ctx context.Context, first, second *expr.Table, genes []expr.GeneName) ([]bool, error) {
	results := make([]bool, 0, len(genes))
	for _, gene := range genes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		a, b, err := geneColumns(first, second, gene)
		if err != nil {
			return nil, err
		}

		sumA, err := summarize(gene, groupFirst, a)
		if err != nil {
			return nil, err
		}
		sumB, err := summarize(gene, groupSecond, b)
		if err != nil {
			return nil, err
		}

		ciA := e.dist.ConfidenceIntervalMean(sumA.Mean, sumA.StdDev, sumA.N, ConfidenceLevel)
		ciB := e.dist.ConfidenceIntervalMean(sumB.Mean, sumB.StdDev, sumB.N, ConfidenceLevel)

		results = append(results, !ciA.Overlaps(ciB))
	}
	return results, nil
}
