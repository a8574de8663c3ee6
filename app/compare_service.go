package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"exprdiff/adapters/stats/correction"
	"exprdiff/adapters/stats/engine"
	"exprdiff/domain/expr"
	"exprdiff/internal/errors"
)

// CompareService orchestrates the per-gene comparison of two expression
// tables: schema validation, the three leaf testers, and result-table
// assembly.
type CompareService struct {
	engine *engine.Engine
}

// CompareOptions carries the caller-supplied parameters of one run.
type CompareOptions struct {
	// Correction names the multiple-comparisons method for the z-test
	// p-values. Empty means no correction. An unrecognized name is
	// reported as a warning and the run proceeds uncorrected.
	Correction correction.Method

	// LabelColumn is the name of the group-label column excluded from
	// analysis (default "Cell_type"). FoldLabelCase makes the match
	// case-insensitive.
	LabelColumn   string
	FoldLabelCase bool
}

// DefaultLabelColumn matches the label column of the historical input
// tables.
const DefaultLabelColumn = "Cell_type"

// CompareResult contains the complete output of one comparison run.
type CompareResult struct {
	RunID     string            `json:"run_id"`
	Table     *expr.ResultTable `json:"table"`
	Warnings  []string          `json:"warnings,omitempty"`
	RuntimeMs int64             `json:"runtime_ms"`
}

// NewCompareService creates a comparison service.
func NewCompareService(eng *engine.Engine) *CompareService {
	return &CompareService{engine: eng}
}

// Compare validates the two tables and runs all three testers over the
// shared gene list. On schema mismatch or a degenerate sample nothing
// is returned; partial result tables are not a supported output shape.
func (s *CompareService) Compare(ctx context.Context, first, second *expr.Table, opts CompareOptions) (*CompareResult, error) {
	startTime := time.Now()

	if opts.LabelColumn == "" {
		opts.LabelColumn = DefaultLabelColumn
	}

	genes, err := s.validateSchemas(first, second, opts)
	if err != nil {
		return nil, err
	}

	result := &CompareResult{RunID: uuid.NewString()}

	method := opts.Correction
	if method != correction.None && !correction.Known(method) {
		warning := fmt.Sprintf("unknown multiple comparisons correction method %q, no correction will be carried out", method)
		log.Printf("[CompareService] %s", warning)
		result.Warnings = append(result.Warnings, warning)
		method = correction.None
	}

	// The three testers are independent and read-only over the inputs,
	// so they run concurrently. Each returns results in gene order.
	var (
		ciResults []bool
		zResults  []bool
		pValues   []float64
		meanDiffs []float64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ciResults, err = s.engine.CITest(gctx, first, second, genes)
		return err
	})
	g.Go(func() error {
		var err error
		zResults, pValues, err = s.engine.ZTest(gctx, first, second, genes, method)
		return err
	})
	g.Go(func() error {
		var err error
		meanDiffs, err = s.engine.MeanDiff(gctx, first, second, genes)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	table := expr.NewResultTable(genes)
	for i, gene := range genes {
		table.Results[gene] = expr.GeneResult{
			CIDifference: ciResults[i],
			ZDifference:  zResults[i],
			ZPValue:      expr.Round3(pValues[i]),
			MeanDiff:     meanDiffs[i],
		}
	}

	result.Table = table
	result.RuntimeMs = time.Since(startTime).Milliseconds()
	log.Printf("[CompareService] run %s compared %d genes in %dms", result.RunID, len(genes), result.RuntimeMs)
	return result, nil
}

// validateSchemas derives both gene lists and requires exact,
// order-sensitive equality before any statistics run.
func (s *CompareService) validateSchemas(first, second *expr.Table, opts CompareOptions) ([]expr.GeneName, error) {
	genesA := first.Genes(opts.LabelColumn, opts.FoldLabelCase)
	genesB := second.Genes(opts.LabelColumn, opts.FoldLabelCase)

	if len(genesA) != len(genesB) {
		return nil, errors.SchemaMismatch(fmt.Sprintf(
			"tables carry different gene counts: %d vs %d", len(genesA), len(genesB)))
	}
	for i := range genesA {
		if genesA[i] != genesB[i] {
			return nil, errors.SchemaMismatch(fmt.Sprintf(
				"gene lists diverge at position %d: %q vs %q", i, genesA[i], genesB[i]))
		}
	}
	if len(genesA) == 0 {
		return nil, errors.InvalidInput("tables contain no gene columns")
	}
	return genesA, nil
}
