package correction

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exprdiff/internal/errors"
)

// Fixtures cross-checked against statsmodels multipletests.
func TestAdjustKnownValues(t *testing.T) {
	pvals := []float64{0.01, 0.04, 0.03, 0.005}

	tests := []struct {
		method Method
		want   []float64
	}{
		{Bonferroni, []float64{0.04, 0.16, 0.12, 0.02}},
		{Holm, []float64{0.03, 0.06, 0.06, 0.02}},
		{SimesHochberg, []float64{0.03, 0.04, 0.04, 0.02}},
		{FDRBH, []float64{0.02, 0.04, 0.04, 0.02}},
		{Sidak, []float64{0.039403990, 0.150653440, 0.114707190, 0.019850499}},
		{FDRBY, []float64{0.041666667, 0.083333333, 0.083333333, 0.041666667}},
	}

	for _, tt := range tests {
		t.Run(string(tt.method), func(t *testing.T) {
			got, err := Adjust(pvals, tt.method, 0.05)
			require.NoError(t, err)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.InDelta(t, tt.want[i], got[i], 1e-8, "position %d", i)
			}
		})
	}
}

func TestAdjustHolmSidak(t *testing.T) {
	got, err := Adjust([]float64{0.01, 0.02, 0.03, 0.04}, HolmSidak, 0.05)
	require.NoError(t, err)

	want := []float64{0.039403990, 0.058808000, 0.059100000, 0.059100000}
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-8, "position %d", i)
	}
}

func TestAdjustHommel(t *testing.T) {
	got, err := Adjust([]float64{0.001, 0.01, 0.02, 0.05, 0.3}, Hommel, 0.05)
	require.NoError(t, err)

	want := []float64{0.005, 0.04, 0.06, 0.1, 0.3}
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-12, "position %d", i)
	}
}

func TestAdjustTwoStageFDR(t *testing.T) {
	pvals := []float64{0.001, 0.002, 0.003, 0.5}

	t.Run("fdr_tsbh scales by estimated true nulls", func(t *testing.T) {
		got, err := Adjust(pvals, FDRTSBH, 0.05)
		require.NoError(t, err)
		// First BH pass rejects 3 of 4, so m0 = 1 and q-values shrink
		// by 1/4.
		want := []float64{0.001, 0.001, 0.001, 0.125}
		for i := range want {
			assert.InDelta(t, want[i], got[i], 1e-12, "position %d", i)
		}
	})

	t.Run("fdr_tsbky carries the 1+alpha factor", func(t *testing.T) {
		got, err := Adjust(pvals, FDRTSBKY, 0.05)
		require.NoError(t, err)
		want := []float64{0.00105, 0.00105, 0.00105, 0.13125}
		for i := range want {
			assert.InDelta(t, want[i], got[i], 1e-12, "position %d", i)
		}
	})

	t.Run("no rejections leaves BH values", func(t *testing.T) {
		flat := []float64{0.4, 0.5, 0.6, 0.7}
		got, err := Adjust(flat, FDRTSBH, 0.05)
		require.NoError(t, err)
		bh, err := Adjust(flat, FDRBH, 0.05)
		require.NoError(t, err)
		assert.Equal(t, bh, got)
	})
}

// Single-stage corrections only ever tighten: adjusted >= unadjusted.
func TestAdjustMonotonicTightening(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	pvals := make([]float64, 40)
	for i := range pvals {
		pvals[i] = rng.Float64()
	}

	for _, method := range []Method{Bonferroni, Sidak, HolmSidak, Holm, SimesHochberg, Hommel, FDRBH, FDRBY} {
		t.Run(string(method), func(t *testing.T) {
			got, err := Adjust(pvals, method, 0.05)
			require.NoError(t, err)
			for i, q := range got {
				assert.GreaterOrEqual(t, q, pvals[i], "position %d", i)
				assert.LessOrEqual(t, q, 1.0, "position %d", i)
			}
		})
	}
}

// Every method maps each input position to its own adjusted value, no
// matter how the input is ordered.
func TestAdjustPreservesPositions(t *testing.T) {
	pvals := []float64{0.2, 0.001, 0.04, 0.9, 0.01, 0.3}
	perm := []int{3, 0, 5, 1, 4, 2}

	permuted := make([]float64, len(pvals))
	for i, idx := range perm {
		permuted[i] = pvals[idx]
	}

	for _, method := range Methods() {
		t.Run(string(method), func(t *testing.T) {
			direct, err := Adjust(pvals, method, 0.05)
			require.NoError(t, err)
			shuffled, err := Adjust(permuted, method, 0.05)
			require.NoError(t, err)

			for i, idx := range perm {
				assert.InDelta(t, direct[idx], shuffled[i], 1e-12, "position %d", i)
			}
		})
	}
}

func TestAdjustEdgeCases(t *testing.T) {
	t.Run("empty vector", func(t *testing.T) {
		got, err := Adjust(nil, Bonferroni, 0.05)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("single p-value", func(t *testing.T) {
		for _, method := range Methods() {
			got, err := Adjust([]float64{0.03}, method, 0.05)
			require.NoError(t, err, string(method))
			require.Len(t, got, 1, string(method))

			want := 0.03
			if method == FDRTSBKY {
				// BKY keeps its (1+alpha) factor even for one test.
				want = 0.03 * 1.05
			}
			assert.InDelta(t, want, got[0], 1e-12, string(method))
		}
	})

	t.Run("unknown method", func(t *testing.T) {
		_, err := Adjust([]float64{0.03}, Method("bogus"), 0.05)
		require.Error(t, err)
		assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
	})

	t.Run("clipped at one", func(t *testing.T) {
		got, err := Adjust([]float64{0.6, 0.7, 0.8}, Bonferroni, 0.05)
		require.NoError(t, err)
		assert.Equal(t, []float64{1.0, 1.0, 1.0}, got)
	})
}

func TestKnown(t *testing.T) {
	for _, method := range Methods() {
		assert.True(t, Known(method), string(method))
	}
	assert.False(t, Known(None))
	assert.False(t, Known(Method("bogus")))
}
