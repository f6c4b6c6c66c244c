// =============================================================================
// Deterioro Report - Converter Module
// =============================================================================
//
// This module orchestrates the whole report pipeline for one input file.
//
// CONVERSION PIPELINE:
//   1. Load the accounting export (xlsx, xls or csv)
//   2. Check the header row for the required columns
//   3. Detect the year columns
//   4. Split rows into income (1A) and outflow (2F, 2J, 2L) subsets
//   5. Aggregate outflow rows per item
//   6. Build the unified report (income rows first)
//   7. Write the report workbook
//   8. Format the written workbook in place
//
// Every error is fatal: the pipeline stops at the first failing step and
// returns it classified under one of the types.Err* kinds.
//
// =============================================================================

package converter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ginjaninja78/deterioro-report/internal/analysis"
	"github.com/ginjaninja78/deterioro-report/internal/config"
	"github.com/ginjaninja78/deterioro-report/internal/csvparser"
	"github.com/ginjaninja78/deterioro-report/internal/formatter"
	"github.com/ginjaninja78/deterioro-report/internal/types"
	"github.com/ginjaninja78/deterioro-report/internal/validation"
	"github.com/ginjaninja78/deterioro-report/internal/xlsxparser"
	"github.com/ginjaninja78/deterioro-report/internal/xlsxwriter"
	"github.com/ginjaninja78/deterioro-report/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of processing the input file.
type Result struct {
	// InputFile is the path to the input file that was processed.
	InputFile string

	// OutputFile is the path to the generated report.
	// This is empty if processing failed or on a dry run.
	OutputFile string

	// Success indicates whether the processing was successful.
	Success bool

	// Error contains the error if processing failed.
	Error error

	// Report is the unified table that was (or would have been) written.
	Report *types.Report

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	// SourceRows is the number of non-empty data rows in the input.
	SourceRows int

	// IncomeRows is the number of income rows in the report.
	IncomeRows int

	// OutflowRows is the number of outflow source rows that were aggregated.
	OutflowRows int

	// OutflowGroups is the number of aggregated outflow rows in the report.
	OutflowGroups int

	// DroppedRows is the number of input rows absent from the report.
	DroppedRows int

	// Years are the year columns found in the input, in source order.
	Years []string

	// ProcessingTime is the time taken to process the file.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter runs the report pipeline.
type Converter struct {
	cfg *config.Config

	// dryRun skips writing and formatting the report.
	dryRun bool

	logger Logger
}

// Logger is an interface for structured logging. *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// =============================================================================
// CONSTRUCTOR
// =============================================================================

// New creates a new Converter. A nil logger uses slog.Default().
func New(cfg *config.Config, logger Logger) *Converter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Converter{
		cfg:    cfg,
		logger: logger,
	}
}

// SetDryRun makes Run stop before writing the report.
func (c *Converter) SetDryRun(dryRun bool) {
	c.dryRun = dryRun
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the report pipeline.
func (c *Converter) Run() Result {
	startTime := time.Now()
	result := Result{
		InputFile: c.cfg.InputFile,
		Success:   false,
	}

	// =========================================================================
	// STEP 1: LOAD INPUT
	// =========================================================================

	c.logger.Info("loading input", "file", c.cfg.InputFile)

	table, err := c.load()
	if err != nil {
		result.Error = fmt.Errorf("failed to load input: %w", err)
		return result
	}

	result.Stats.SourceRows = len(table.Rows)
	c.logger.Debug("loaded input", "rows", len(table.Rows), "columns", len(table.Headers))

	// =========================================================================
	// STEP 2: CHECK SCHEMA
	// =========================================================================

	if err := validation.CheckSchema(table); err != nil {
		result.Error = fmt.Errorf("invalid input: %w", err)
		return result
	}

	// =========================================================================
	// STEP 3: DETECT YEAR COLUMNS
	// =========================================================================

	years := analysis.YearColumns(table.Headers)
	result.Stats.Years = analysis.YearNames(years)
	if len(years) == 0 {
		c.logger.Warn("no year columns found; every total will be 0")
	} else {
		c.logger.Debug("detected year columns", "years", result.Stats.Years)
	}

	// =========================================================================
	// STEP 4: SPLIT INCOME AND OUTFLOW ROWS
	// =========================================================================

	opts := c.analysisOptions()

	partition, err := analysis.Split(table, years, opts)
	if err != nil {
		result.Error = fmt.Errorf("failed to classify rows: %w", err)
		return result
	}

	// =========================================================================
	// STEP 5: AGGREGATE OUTFLOW ROWS
	// =========================================================================

	groups, unkeyed := analysis.Aggregate(partition.Outflow, len(years), opts.GroupOrder)
	dropped := append(partition.Dropped, unkeyed...)

	result.Stats.IncomeRows = len(partition.Income)
	result.Stats.OutflowRows = len(partition.Outflow) - len(unkeyed)
	result.Stats.OutflowGroups = len(groups)
	result.Stats.DroppedRows = len(dropped)

	c.logDropped(dropped)
	c.logger.Info("classified rows",
		"income", result.Stats.IncomeRows,
		"outflow", result.Stats.OutflowRows,
		"outflow_groups", result.Stats.OutflowGroups,
		"dropped", result.Stats.DroppedRows,
	)

	// =========================================================================
	// STEP 6: BUILD REPORT
	// =========================================================================

	result.Report = analysis.BuildReport(partition.Income, groups, result.Stats.Years, opts)

	if c.dryRun {
		c.logger.Info("dry run: report not written", "rows", len(result.Report.Rows))
		result.Success = true
		result.Stats.ProcessingTime = time.Since(startTime)
		return result
	}

	// =========================================================================
	// STEP 7: WRITE REPORT
	// =========================================================================

	if utils.FileExists(c.cfg.OutputFile) {
		c.logger.Info("replacing existing report", "file", c.cfg.OutputFile)
	}

	if err := xlsxwriter.Write(result.Report, c.cfg.OutputFile); err != nil {
		result.Error = fmt.Errorf("failed to write report: %w", err)
		return result
	}

	c.logger.Debug("wrote report", "file", c.cfg.OutputFile, "rows", len(result.Report.Rows))

	// =========================================================================
	// STEP 8: FORMAT REPORT
	// =========================================================================

	if err := formatter.Format(c.cfg.OutputFile, c.formatOptions()); err != nil {
		result.Error = fmt.Errorf("failed to format report: %w", err)
		return result
	}

	// =========================================================================
	// COMPLETE
	// =========================================================================

	result.OutputFile = c.cfg.OutputFile
	result.Success = true
	result.Stats.ProcessingTime = time.Since(startTime)

	c.logger.Info("report complete", "file", result.OutputFile, "elapsed", result.Stats.ProcessingTime)

	return result
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// load reads the input with the loader matching its extension.
func (c *Converter) load() (*types.Table, error) {
	path := c.cfg.InputFile

	if _, err := os.Stat(path); err != nil {
		return nil, types.NewError(types.ErrFileAccess, path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xls":
		return xlsxparser.Parse(path, c.cfg.SheetName)
	case ".csv", ".txt":
		return csvparser.Parse(path, c.cfg.CSVSettings)
	default:
		return nil, types.Errorf(types.ErrFormat, path, "unsupported input format %q", filepath.Ext(path))
	}
}

// analysisOptions maps the configuration onto the analysis options.
func (c *Converter) analysisOptions() analysis.Options {
	cl := c.cfg.Classification

	order := analysis.OrderStable
	if cl.GroupOrder == config.GroupOrderSorted {
		order = analysis.OrderSorted
	}

	ext := strings.ToLower(filepath.Ext(c.cfg.InputFile))

	return analysis.Options{
		IncomeCodes:   cl.IncomeCodes,
		OutflowCodes:  cl.OutflowCodes,
		OutflowLabel:  cl.OutflowLabel,
		MovementLabel: cl.MovementLabel,
		GroupOrder:    order,
		// Workbook cells are read raw and always use '.'.
		DecimalComma: (ext == ".csv" || ext == ".txt") && c.cfg.CSVSettings.DecimalSeparator == ",",
	}
}

// formatOptions maps the configuration onto the formatter options.
func (c *Converter) formatOptions() formatter.Options {
	return formatter.Options{
		TableName:    c.cfg.Report.TableName,
		TableStyle:   c.cfg.Report.TableStyle,
		HeaderFill:   c.cfg.Report.HeaderFill,
		WidthPadding: c.cfg.Report.Padding(),
	}
}

// logDropped reports the rows that will not appear in the report, with the
// distinct voucher codes involved.
func (c *Converter) logDropped(dropped []analysis.DroppedRow) {
	if len(dropped) == 0 {
		return
	}

	seen := make(map[string]bool)
	var codes []string
	for _, d := range dropped {
		if !seen[d.Voucher] {
			seen[d.Voucher] = true
			codes = append(codes, d.Voucher)
		}
		c.logger.Debug("dropped row", "line", d.Line, "voucher", d.Voucher, "reason", d.Reason)
	}
	sort.Strings(codes)

	c.logger.Warn("rows left out of the report", "count", len(dropped), "vouchers", codes)
}
