// Package tableio reads and writes expression tables. CSV and xlsx
// inputs share the same shape: first column is the sample index
// (ignored), the header row names the gene columns, and one optional
// non-numeric column carries group labels.
package tableio

import (
	"context"
	"encoding/csv"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"exprdiff/domain/expr"
	"exprdiff/internal/errors"
)

// DataReader handles reading Excel and CSV expression tables.
type DataReader struct{}

// NewDataReader creates a reader that dispatches on file extension.
func NewDataReader() *DataReader {
	return &DataReader{}
}

// Read loads the table at path.
func (r *DataReader) Read(ctx context.Context, path string) (*expr.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.IOError("expression table not found: " + path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".xlsx":
		return r.readExcel(path)
	default:
		return r.readCSV(path)
	}
}

func (r *DataReader) readCSV(path string) (*expr.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening CSV file %s", path)
	}
	defer file.Close()

	readStart := time.Now()
	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "reading CSV file %s", path)
	}
	log.Printf("[DataReader] CSV file read in %.2fms (%d rows)",
		float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	return buildTable(rows)
}

func (r *DataReader) readExcel(path string) (*expr.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening Excel file %s", path)
	}
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	if err != nil {
		return nil, errors.Wrapf(err, "reading Sheet1 of %s", path)
	}
	log.Printf("[DataReader] Excel file read (%d rows)", len(rows))

	return buildTable(rows)
}

// buildTable transposes raw rows into columns. A column whose cells all
// parse as floats becomes a numeric (gene) column; any other column is
// kept as a label column. The first column is the sample index and is
// dropped.
func buildTable(rows [][]string) (*expr.Table, error) {
	if len(rows) < 2 {
		return nil, errors.InvalidInput("expression table needs a header row and at least one data row")
	}

	header := rows[0]
	if len(header) < 2 {
		return nil, errors.InvalidInput("expression table needs at least one column besides the sample index")
	}

	table := expr.NewTable()
	for col := 1; col < len(header); col++ {
		name := strings.TrimSpace(header[col])
		if name == "" {
			return nil, errors.InvalidInput("empty column name at position " + strconv.Itoa(col))
		}

		raw := make([]string, 0, len(rows)-1)
		for rowIdx := 1; rowIdx < len(rows); rowIdx++ {
			row := rows[rowIdx]
			if col >= len(row) {
				return nil, errors.InvalidInput("row " + strconv.Itoa(rowIdx) + " is shorter than the header")
			}
			raw = append(raw, strings.TrimSpace(row[col]))
		}

		values, numeric := parseNumericColumn(raw)
		if numeric {
			table.AddNumericColumn(name, values)
		} else {
			table.AddLabelColumn(name, raw)
		}
	}
	return table, nil
}

func parseNumericColumn(raw []string) ([]float64, bool) {
	values := make([]float64, len(raw))
	for i, cell := range raw {
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, false
		}
		values[i] = v
	}
	return values, true
}
