// Package testkit generates deterministic synthetic expression tables
// for tests.
package testkit

import (
	"math/rand"

	"exprdiff/domain/expr"
)

// TableSpec describes a synthetic expression table.
type TableSpec struct {
	Genes       []string
	Samples     int
	Means       map[string]float64 // per-gene center, 0 when absent
	Noise       float64            // stddev of gaussian noise around the center
	LabelColumn string             // optional label column name
	Label       string             // group label written to every row
	Seed        int64
}

// GenerateTable builds a synthetic table. The same spec always produces
// the same values.
func GenerateTable(spec TableSpec) *expr.Table {
	rng := rand.New(rand.NewSource(spec.Seed))
	table := expr.NewTable()

	for _, gene := range spec.Genes {
		center := spec.Means[gene]
		values := make([]float64, spec.Samples)
		for i := range values {
			values[i] = center + rng.NormFloat64()*spec.Noise
		}
		table.AddNumericColumn(gene, values)
	}

	if spec.LabelColumn != "" {
		labels := make([]string, spec.Samples)
		for i := range labels {
			labels[i] = spec.Label
		}
		table.AddLabelColumn(spec.LabelColumn, labels)
	}
	return table
}

// TableFromColumns builds a table directly from explicit gene columns,
// preserving the given gene order.
func TableFromColumns(genes []string, columns map[string][]float64) *expr.Table {
	table := expr.NewTable()
	for _, gene := range genes {
		table.AddNumericColumn(gene, columns[gene])
	}
	return table
}
