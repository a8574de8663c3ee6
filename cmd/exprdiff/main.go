package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"exprdiff/adapters/stats/correction"
	"exprdiff/adapters/stats/engine"
	"exprdiff/adapters/tableio"
	"exprdiff/app"
	"exprdiff/internal/config"
	"exprdiff/ports"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		firstPath        string
		secondPath       string
		outPath          string
		correctionMethod string
		labelColumn      string
		labelFoldCase    bool
	)

	cmd := &cobra.Command{
		Use:   "exprdiff",
		Short: "Compare per-gene expression between two groups of samples",
		Long: `Generates the expression difference table for two cell types.
The input tables must include expressions of the same genes in the same
column order; one optional group-label column is excluded from analysis.

Per gene the output reports a confidence-interval overlap test, a
two-sample z-test (optionally corrected for multiple comparisons) and
the difference of group means.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("out") {
				outPath = cfg.Output.Path
			}
			if !cmd.Flags().Changed("label-column") {
				labelColumn = cfg.Labels.Column
			}
			if !cmd.Flags().Changed("label-fold-case") {
				labelFoldCase = cfg.Labels.FoldCase
			}

			return runCompare(cmd, firstPath, secondPath, outPath,
				correction.Method(correctionMethod), labelColumn, labelFoldCase)
		},
	}

	cmd.Flags().StringVar(&firstPath, "first-expressions", "",
		"Path to the table (csv or xlsx) with gene expressions of the first cell type")
	cmd.Flags().StringVar(&secondPath, "second-expressions", "",
		"Path to the table with gene expressions of the second cell type")
	cmd.Flags().StringVar(&outPath, "out", "expression_comparison_results.csv",
		"Path to the output table with gene expression comparison results")
	cmd.Flags().StringVar(&correctionMethod, "correction-method", "",
		"Multiple comparisons correction method (bonferroni, sidak, holm-sidak, holm, simes-hochberg, hommel, fdr_bh, fdr_by, fdr_tsbh, fdr_tsbky)")
	cmd.Flags().StringVar(&labelColumn, "label-column", "Cell_type",
		"Name of the group-label column excluded from analysis")
	cmd.Flags().BoolVar(&labelFoldCase, "label-fold-case", false,
		"Match the label column name case-insensitively")
	_ = cmd.MarkFlagRequired("first-expressions")
	_ = cmd.MarkFlagRequired("second-expressions")

	return cmd
}

func runCompare(cmd *cobra.Command, firstPath, secondPath, outPath string, method correction.Method, labelColumn string, labelFoldCase bool) error {
	ctx := cmd.Context()
	var reader ports.TableReader = tableio.NewDataReader()

	first, err := reader.Read(ctx, firstPath)
	if err != nil {
		return err
	}
	second, err := reader.Read(ctx, secondPath)
	if err != nil {
		return err
	}

	service := app.NewCompareService(engine.New())
	result, err := service.Compare(ctx, first, second, app.CompareOptions{
		Correction:    method,
		LabelColumn:   labelColumn,
		FoldLabelCase: labelFoldCase,
	})
	if err != nil {
		return err
	}

	for _, warning := range result.Warnings {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning:", warning)
	}

	var writer ports.ResultWriter = tableio.NewResultCSVWriter()
	if err := writer.Write(ctx, outPath, result.Table); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "compared %d genes, results written to %s\n",
		len(result.Table.Genes), outPath)
	return nil
}
