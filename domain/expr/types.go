package expr

import (
	"strings"
)

// GeneName identifies one numeric expression column.
type GeneName string

// Table is an ordered set of named columns over the same sample rows.
// Numeric columns hold per-sample expression values; at most one label
// column (e.g. "Cell_type") holds free-text group labels and is excluded
// from statistical processing. Column order is the header order of the
// source file and is significant for schema validation.
type Table struct {
	Columns []string             `json:"columns"` // header order, label column included
	Numeric map[string][]float64 `json:"numeric"`
	Labels  map[string][]string  `json:"labels,omitempty"`
}

// NewTable creates an empty expression table.
func NewTable() *Table {
	return &Table{
		Numeric: make(map[string][]float64),
		Labels:  make(map[string][]string),
	}
}

// AddNumericColumn appends a numeric column in header order.
func (t *Table) AddNumericColumn(name string, values []float64) {
	t.Columns = append(t.Columns, name)
	t.Numeric[name] = values
}

// AddLabelColumn appends a non-numeric column in header order.
func (t *Table) AddLabelColumn(name string, values []string) {
	t.Columns = append(t.Columns, name)
	t.Labels[name] = values
}

// Column returns the numeric values for name, if name is a numeric column.
func (t *Table) Column(name string) ([]float64, bool) {
	values, ok := t.Numeric[name]
	return values, ok
}

// RowCount returns the number of sample rows.
func (t *Table) RowCount() int {
	for _, values := range t.Numeric {
		return len(values)
	}
	for _, values := range t.Labels {
		return len(values)
	}
	return 0
}

// Genes derives the ordered gene list: all columns except the group
// label column. The label match is exact by default; foldCase makes it
// case-insensitive.
func (t *Table) Genes(labelColumn string, foldCase bool) []GeneName {
	genes := make([]GeneName, 0, len(t.Columns))
	for _, col := range t.Columns {
		if matchesLabel(col, labelColumn, foldCase) {
			continue
		}
		genes = append(genes, GeneName(col))
	}
	return genes
}

func matchesLabel(column, labelColumn string, foldCase bool) bool {
	if labelColumn == "" {
		return false
	}
	if foldCase {
		return strings.EqualFold(column, labelColumn)
	}
	return column == labelColumn
}

// GeneResult is the per-gene comparison outcome. Computed once during
// the orchestration pass, immutable thereafter.
type GeneResult struct {
	CIDifference bool    `json:"ci_test_results"`
	ZDifference  bool    `json:"z_test_results"`
	ZPValue      float64 `json:"z_test_p_values"` // rounded to 3 decimals
	MeanDiff     float64 `json:"mean_diff"`       // rounded to 3 decimals
}

// ResultTable maps genes to their comparison results, preserving the
// validated gene-list order.
type ResultTable struct {
	Genes   []GeneName              `json:"genes"`
	Results map[GeneName]GeneResult `json:"results"`
}

// NewResultTable creates a result table for the given gene order.
func NewResultTable(genes []GeneName) *ResultTable {
	return &ResultTable{
		Genes:   genes,
		Results: make(map[GeneName]GeneResult, len(genes)),
	}
}
