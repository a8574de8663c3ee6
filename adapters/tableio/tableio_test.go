package tableio

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exprdiff/domain/expr"
	"exprdiff/internal/errors"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDataReaderCSV(t *testing.T) {
	reader := NewDataReader()
	ctx := context.Background()

	t.Run("parses genes and label column", func(t *testing.T) {
		path := writeFixture(t, "expressions.csv",
			",g1,g2,Cell_type\n"+
				"sample_0,1.5,0.25,B_cell\n"+
				"sample_1,2.5,0.75,B_cell\n")

		table, err := reader.Read(ctx, path)
		require.NoError(t, err)

		assert.Equal(t, []string{"g1", "g2", "Cell_type"}, table.Columns)
		g1, ok := table.Column("g1")
		require.True(t, ok)
		assert.Equal(t, []float64{1.5, 2.5}, g1)
		assert.Equal(t, []string{"B_cell", "B_cell"}, table.Labels["Cell_type"])
		assert.Equal(t, 2, table.RowCount())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := reader.Read(ctx, filepath.Join(t.TempDir(), "nope.csv"))
		require.Error(t, err)
		assert.Equal(t, errors.CodeIOError, errors.GetCode(err))
	})

	t.Run("header only", func(t *testing.T) {
		path := writeFixture(t, "empty.csv", ",g1,g2\n")
		_, err := reader.Read(ctx, path)
		require.Error(t, err)
		assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
	})

	t.Run("blank column name", func(t *testing.T) {
		path := writeFixture(t, "blank.csv", ",g1,\nsample_0,1,2\n")
		_, err := reader.Read(ctx, path)
		require.Error(t, err)
		assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
	})
}

func TestResultCSVWriter(t *testing.T) {
	table := expr.NewResultTable([]expr.GeneName{"g1", "g2"})
	table.Results["g1"] = expr.GeneResult{
		CIDifference: true, ZDifference: true, ZPValue: 0.0, MeanDiff: -9.0,
	}
	table.Results["g2"] = expr.GeneResult{
		CIDifference: false, ZDifference: false, ZPValue: 0.731, MeanDiff: 0.042,
	}

	path := filepath.Join(t.TempDir(), "results.csv")
	writer := NewResultCSVWriter()
	require.NoError(t, writer.Write(context.Background(), path, table))

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	want := ",ci_test_results,z_test_results,z_test_p_values,mean_diff\n" +
		"g1,true,true,0.000,-9.000\n" +
		"g2,false,false,0.731,0.042\n"
	assert.Equal(t, want, string(content))
}
