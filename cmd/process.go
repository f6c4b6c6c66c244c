// =============================================================================
// Deterioro Report - Process Command
// =============================================================================
//
// This file defines the 'process' command, which builds the impairment
// report from one accounting export.
//
// COMMAND USAGE:
//   deterioro process [flags]
//
// FLAGS:
//   --input    : The accounting export to analyze (overrides input_file)
//   --output   : The report workbook to write (overrides output_file)
//   --sheet    : The input sheet to read (overrides sheet_name)
//   --dry-run  : Analyze the input without writing the report
//
// OUTPUT:
//   On success, two lines are printed: the report file, and the columns the
//   report adds together with the year range they cover.
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"

	"github.com/ginjaninja78/deterioro-report/internal/converter"
	"github.com/ginjaninja78/deterioro-report/internal/types"
	"github.com/spf13/cobra"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// inputFile overrides the configured input file.
var inputFile string

// outputFile overrides the configured output file.
var outputFile string

// sheetName overrides the configured input sheet.
var sheetName string

// dryRun analyzes the input without writing the report.
var dryRun bool

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

// processCmd represents the 'process' command.
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Build the impairment report from an accounting export",
	Long: `The process command reads the accounting export, keeps the income rows
(voucher 1A), aggregates the outflow rows (vouchers 2F, 2J, 2L) per item,
adds the Conteo_Salidas and Total columns and writes a formatted workbook.

Rows with any other voucher code are left out of the report and reported in
the log. An existing report file is overwritten.`,

	Args: cobra.NoArgs,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(cmd.OutOrStdout())
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVar(&inputFile, "input", "", "Accounting export to analyze (.xlsx, .xlsm, .xls or .csv)")
	processCmd.Flags().StringVar(&outputFile, "output", "", "Report workbook to write")
	processCmd.Flags().StringVar(&sheetName, "sheet", "", "Input sheet to read (default: the first sheet)")
	processCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Analyze the input without writing the report")
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runProcess applies the flag overrides, runs the pipeline and prints the
// confirmation lines.
func runProcess(out io.Writer) error {
	cfg := *appConfig
	if inputFile != "" {
		cfg.InputFile = inputFile
	}
	if outputFile != "" {
		cfg.OutputFile = outputFile
	}
	if sheetName != "" {
		cfg.SheetName = sheetName
	}

	conv := converter.New(&cfg, logger)
	conv.SetDryRun(dryRun)

	result := conv.Run()
	if result.Error != nil {
		return result.Error
	}

	if dryRun {
		fmt.Fprintf(out, "Dry run: %d row(s) would be written to %s\n", len(result.Report.Rows), cfg.OutputFile)
	} else {
		fmt.Fprintf(out, "Report created with formatting: %s\n", result.OutputFile)
	}
	fmt.Fprintln(out, summaryLine(result.Report))

	return nil
}

// summaryLine describes the columns added to the report and the years the
// Total column covers.
func summaryLine(report *types.Report) string {
	first, last, ok := report.YearRange()
	switch {
	case !ok:
		return fmt.Sprintf("Includes columns '%s' and '%s' (no year columns found).",
			types.ColumnOutflowCount, types.ColumnTotal)
	case first == last:
		return fmt.Sprintf("Includes columns '%s' and '%s' (total of year %s).",
			types.ColumnOutflowCount, types.ColumnTotal, first)
	default:
		return fmt.Sprintf("Includes columns '%s' and '%s' (total of years %s-%s).",
			types.ColumnOutflowCount, types.ColumnTotal, first, last)
	}
}
