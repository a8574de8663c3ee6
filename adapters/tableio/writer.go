package tableio

import (
	"context"
	"encoding/csv"
	"log"
	"os"
	"strconv"

	"exprdiff/domain/expr"
	"exprdiff/internal/errors"
)

// ResultCSVWriter serializes a result table to CSV, one row per gene in
// gene-list order. The first header cell is empty: the gene name is the
// row index, matching the historical output shape.
type ResultCSVWriter struct{}

// NewResultCSVWriter creates a result writer.
func NewResultCSVWriter() *ResultCSVWriter {
	return &ResultCSVWriter{}
}

var resultHeader = []string{"", "ci_test_results", "z_test_results", "z_test_p_values", "mean_diff"}

// Write writes the result table to path.
func (w *ResultCSVWriter) Write(ctx context.Context, path string, table *expr.ResultTable) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating results file %s", path)
	}
	defer file.Close()

	cw := csv.NewWriter(file)
	if err := cw.Write(resultHeader); err != nil {
		return errors.Wrap(err, "writing results header")
	}
	for _, gene := range table.Genes {
		result := table.Results[gene]
		record := []string{
			string(gene),
			strconv.FormatBool(result.CIDifference),
			strconv.FormatBool(result.ZDifference),
			strconv.FormatFloat(result.ZPValue, 'f', 3, 64),
			strconv.FormatFloat(result.MeanDiff, 'f', 3, 64),
		}
		if err := cw.Write(record); err != nil {
			return errors.Wrapf(err, "writing result row for gene %q", gene)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Wrap(err, "flushing results file")
	}

	log.Printf("[ResultWriter] wrote %d gene rows to %s", len(table.Genes), path)
	return nil
}
