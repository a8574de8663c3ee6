// Package correction adjusts batches of p-values for multiple
// comparisons. The recognized methods and their semantics follow the
// statsmodels multipletests family so adjusted values are comparable
// with the usual bioinformatics tooling.
package correction

import (
	"math"
	"sort"

	"exprdiff/internal/errors"
)

// Method names a multiple-comparisons correction.
type Method string

const (
	None          Method = ""
	Bonferroni    Method = "bonferroni"
	Sidak         Method = "sidak"
	HolmSidak     Method = "holm-sidak"
	Holm          Method = "holm"
	SimesHochberg Method = "simes-hochberg"
	Hommel        Method = "hommel"
	FDRBH         Method = "fdr_bh"
	FDRBY         Method = "fdr_by"
	FDRTSBH       Method = "fdr_tsbh"
	FDRTSBKY      Method = "fdr_tsbky"
)

// Methods lists every recognized correction method.
func Methods() []Method {
	return []Method{
		Bonferroni, Sidak, HolmSidak, Holm, SimesHochberg,
		Hommel, FDRBH, FDRBY, FDRTSBH, FDRTSBKY,
	}
}

// Known reports whether method is a recognized correction identifier.
// The empty method means "no correction" and is not considered known.
func Known(method Method) bool {
	for _, m := range Methods() {
		if m == method {
			return true
		}
	}
	return false
}

// Adjust applies the named correction across the whole p-value vector
// and returns adjusted p-values in the ORIGINAL input order, regardless
// of any sorting the method performs internally. alpha only drives the
// rejection thresholds of the two-stage FDR methods; all other methods
// ignore it. Unrecognized methods return an INVALID_INPUT error so the
// caller can decide the fail-soft policy.
func Adjust(pvals []float64, method Method, alpha float64) ([]float64, error) {
	if len(pvals) == 0 {
		return []float64{}, nil
	}

	switch method {
	case Bonferroni:
		return bonferroni(pvals), nil
	case Sidak:
		return sidak(pvals), nil
	case Holm, HolmSidak, SimesHochberg, Hommel, FDRBH, FDRBY, FDRTSBH, FDRTSBKY:
		// Order-dependent methods: work on a sorted copy, map back.
		sorted, order := sortWithIndex(pvals)
		var adjusted []float64
		switch method {
		case Holm:
			adjusted = holm(sorted)
		case HolmSidak:
			adjusted = holmSidak(sorted)
		case SimesHochberg:
			adjusted = simesHochberg(sorted)
		case Hommel:
			adjusted = hommel(sorted)
		case FDRBH:
			adjusted = fdrBH(sorted)
		case FDRBY:
			adjusted = fdrBY(sorted)
		case FDRTSBH:
			adjusted = fdrTwoStage(sorted, alpha, false)
		case FDRTSBKY:
			adjusted = fdrTwoStage(sorted, alpha, true)
		}
		return restoreOrder(adjusted, order), nil
	default:
		return nil, errors.InvalidInput("unknown correction method: " + string(method))
	}
}

// sortWithIndex returns p-values sorted ascending plus the original
// index of each sorted element.
func sortWithIndex(pvals []float64) ([]float64, []int) {
	order := make([]int, len(pvals))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return pvals[order[i]] < pvals[order[j]]
	})
	sorted := make([]float64, len(pvals))
	for i, idx := range order {
		sorted[i] = pvals[idx]
	}
	return sorted, order
}

func restoreOrder(adjusted []float64, order []int) []float64 {
	out := make([]float64, len(adjusted))
	for i, idx := range order {
		out[idx] = adjusted[i]
	}
	return out
}

func clip(p float64) float64 {
	if p > 1 {
		return 1
	}
	return p
}

func bonferroni(pvals []float64) []float64 {
	m := float64(len(pvals))
	out := make([]float64, len(pvals))
	for i, p := range pvals {
		out[i] = clip(p * m)
	}
	return out
}

// sidak: 1 - (1-p)^m, computed via expm1/log1p for small p stability.
func sidak(pvals []float64) []float64 {
	m := float64(len(pvals))
	out := make([]float64, len(pvals))
	for i, p := range pvals {
		out[i] = clip(-math.Expm1(m * math.Log1p(-p)))
	}
	return out
}

// holm: step-down, raw_i = (m-i) * p_i over ascending p, then a running
// maximum keeps the adjusted sequence monotone.
func holm(sorted []float64) []float64 {
	m := len(sorted)
	out := make([]float64, m)
	running := 0.0
	for i, p := range sorted {
		raw := float64(m-i) * p
		if raw > running {
			running = raw
		}
		out[i] = clip(running)
	}
	return out
}

// holmSidak: step-down Sidak, raw_i = 1 - (1-p_i)^(m-i).
func holmSidak(sorted []float64) []float64 {
	m := len(sorted)
	out := make([]float64, m)
	running := 0.0
	for i, p := range sorted {
		raw := -math.Expm1(float64(m-i) * math.Log1p(-p))
		if raw > running {
			running = raw
		}
		out[i] = clip(running)
	}
	return out
}

// simesHochberg: step-up, same raw values as holm but a running minimum
// taken from the largest p-value downward.
func simesHochberg(sorted []float64) []float64 {
	m := len(sorted)
	out := make([]float64, m)
	running := math.Inf(1)
	for i := m - 1; i >= 0; i-- {
		raw := float64(m-i) * sorted[i]
		if raw < running {
			running = raw
		}
		out[i] = clip(running)
	}
	return out
}

// hommel implements the closed-testing adjustment of Hommel (1988) over
// ascending p-values, mirroring the statsmodels recursion.
func hommel(sorted []float64) []float64 {
	n := len(sorted)
	a := make([]float64, n)
	copy(a, sorted)
	for m := n; m > 1; m-- {
		// cim = min over the top m values of m * p / rank
		cim := math.Inf(1)
		for k := 0; k < m; k++ {
			v := float64(m) * sorted[n-m+k] / float64(k+1)
			if v < cim {
				cim = v
			}
		}
		for i := n - m; i < n; i++ {
			if cim > a[i] {
				a[i] = cim
			}
		}
		for i := 0; i < n-m; i++ {
			v := float64(m) * sorted[i]
			if cim < v {
				v = cim
			}
			if v > a[i] {
				a[i] = v
			}
		}
	}
	for i := range a {
		a[i] = clip(a[i])
	}
	return a
}

// fdrBH: Benjamini-Hochberg step-up, raw_i = p_i * m / rank, running
// minimum from the largest p-value downward.
func fdrBH(sorted []float64) []float64 {
	return fdrStepUp(sorted, 1.0)
}

// fdrBY: Benjamini-Yekutieli, BH with the harmonic-sum factor
// c(m) = sum_{k=1..m} 1/k for arbitrary dependence.
func fdrBY(sorted []float64) []float64 {
	cm := 0.0
	for k := 1; k <= len(sorted); k++ {
		cm += 1.0 / float64(k)
	}
	return fdrStepUp(sorted, cm)
}

func fdrStepUp(sorted []float64, factor float64) []float64 {
	m := len(sorted)
	out := make([]float64, m)
	running := math.Inf(1)
	for i := m - 1; i >= 0; i-- {
		raw := sorted[i] * factor * float64(m) / float64(i+1)
		if raw < running {
			running = raw
		}
		out[i] = clip(running)
	}
	return out
}

// fdrTwoStage implements the two-stage FDR estimate (statsmodels
// fdrcorrection_twostage with one refinement iteration). The first BH
// pass estimates the number of true nulls m0; adjusted values are the
// BH q-values scaled by m0/m. bky selects the Benjamini-Krieger-Yekutieli
// variant with its (1+alpha) factor.
func fdrTwoStage(sorted []float64, alpha float64, bky bool) []float64 {
	m := len(sorted)
	fact := 1.0
	alphaPrime := alpha
	if bky {
		fact = 1 + alpha
		alphaPrime = alpha / fact
	}

	q := fdrBH(sorted)
	r1 := 0
	for _, v := range q {
		if v <= alphaPrime {
			r1++
		}
	}

	out := make([]float64, m)
	if r1 == 0 || r1 == m {
		for i, v := range q {
			out[i] = clip(v * fact)
		}
		return out
	}

	m0 := float64(m - r1)
	scale := m0 / float64(m)
	if bky {
		scale *= fact
	}
	for i, v := range q {
		out[i] = clip(v * scale)
	}
	return out
}
