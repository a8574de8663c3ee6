package engine

import (
	"context"
	"math"

	"exprdiff/adapters/stats/correction"
	"exprdiff/domain/expr"
)

// ZTest checks differential expression per gene via a two-sample z-test
// with pooled variance. When method names a recognized correction it is
// applied across the entire p-value vector before the significance
// decision; gene order is preserved through the adjustment. The caller
// owns the fail-soft policy for unrecognized methods and must pass
// correction.None here after warning.
//
// Returned p-values are the (possibly adjusted) UNROUNDED values;
// rounding to 3 decimals happens only at result-table assembly, after
// the significance decision.
func (e *Engine) ZTest(ctx context.Context, first, second *expr.Table, genes []expr.GeneName, method correction.Method) ([]bool, []float64, error) {
	pvals := make([]float64, 0, len(genes))
	for _, gene := range genes {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		a, b, err := geneColumns(first, second, gene)
		if err != nil {
			return nil, nil, err
		}

		sumA, err := summarize(gene, groupFirst, a)
		if err != nil {
			return nil, nil, err
		}
		sumB, err := summarize(gene, groupSecond, b)
		if err != nil {
			return nil, nil, err
		}

		pvals = append(pvals, e.twoSampleZPValue(sumA, sumB))
	}

	if method != correction.None {
		adjusted, err := correction.Adjust(pvals, method, Alpha)
		if err != nil {
			return nil, nil, err
		}
		pvals = adjusted
	}

	results := make([]bool, len(pvals))
	for i, p := range pvals {
		results[i] = p < Alpha
	}
	return results, pvals, nil
}

// twoSampleZPValue computes the two-tailed p-value for the difference of
// means under the standard pooled-variance z formula (large-sample
// approximation, unequal n tolerated).
func (e *Engine) twoSampleZPValue(a, b groupSummary) float64 {
	n1 := float64(a.N)
	n2 := float64(b.N)
	pooledVar := ((n1-1)*a.StdDev*a.StdDev + (n2-1)*b.StdDev*b.StdDev) / (n1 + n2 - 2)
	se := math.Sqrt(pooledVar * (1/n1 + 1/n2))

	diff := a.Mean - b.Mean
	if se == 0 {
		// Two constant columns: no evidence of a difference unless the
		// constants differ.
		if diff == 0 {
			return 1.0
		}
		return 0.0
	}

	return e.dist.TwoSidedZPValue(diff / se)
}
