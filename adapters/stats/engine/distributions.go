package engine

import (
	"math"

	"exprdiff/domain/expr"

	"gonum.org/v1/gonum/stat/distuv"
)

// Distributions provides unified access to the statistical distributions
// the testers need, so CDF/quantile calculations live in one place.
type Distributions struct{}

// NewDistributions creates a new distributions utility
func NewDistributions() *Distributions {
	return &Distributions{}
}

// TCritical returns the two-sided Student's-t critical value for the
// given degrees of freedom and confidence level.
func (d *Distributions) TCritical(degreesOfFreedom int, confidenceLevel float64) float64 {
	if degreesOfFreedom <= 0 {
		return math.NaN()
	}
	alpha := 1.0 - confidenceLevel
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(degreesOfFreedom)}
	return tDist.Quantile(1.0 - alpha/2.0)
}

// NormalCDF computes the cumulative distribution function for the
// standard normal.
func (d *Distributions) NormalCDF(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}

// TwoSidedZPValue computes the two-tailed p-value for a z statistic.
func (d *Distributions) TwoSidedZPValue(z float64) float64 {
	return 2 * (1 - d.NormalCDF(math.Abs(z)))
}

// ConfidenceIntervalMean computes the t-interval for a population mean
// from the sample mean, sample standard deviation and sample size.
// sampleSize must be at least 2; with fewer samples the interval is
// undefined (zero degrees of freedom) and the caller must reject the
// input before getting here.
func (d *Distributions) ConfidenceIntervalMean(sampleMean, sampleStd float64, sampleSize int, confidenceLevel float64) expr.Interval {
	se := sampleStd / math.Sqrt(float64(sampleSize))
	margin := d.TCritical(sampleSize-1, confidenceLevel) * se
	return expr.Interval{Lower: sampleMean - margin, Upper: sampleMean + margin}
}
