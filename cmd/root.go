// =============================================================================
// Deterioro Report - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (deterioro)
//   ├── processCmd (deterioro process)
//   └── versionCmd (deterioro version)
//
// CONFIGURATION:
//   Before any subcommand runs, the root command:
//   1. Loads the configuration file (optional at its default path)
//   2. Sets up structured logging on stderr
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ginjaninja78/deterioro-report/internal/config"
	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// appConfig is the configuration loaded before a subcommand runs.
var appConfig *config.Config

// logger is the structured logger shared by the subcommands.
var logger *slog.Logger

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "deterioro",
	Short: "Impairment analysis report builder",
	Long: `deterioro turns an accounting export into the impairment analysis report.

Income rows (voucher 1A) are kept as they are. Outflow rows (vouchers 2F, 2J
and 2L) are aggregated per item code and description. Every year column is
totaled, and the result is written to a formatted Excel workbook with a
filterable table.

Example Usage:
  deterioro process                              # Use the default input and output files
  deterioro process --input export.xlsx          # Analyze a specific export
  deterioro process --config ./deterioro.yaml    # Use a custom configuration file`,

	// Execute prints the error itself.
	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initialize(cmd)
	},

	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is provided, print the help message.
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	// --config flag: path to the YAML configuration file. The default path
	// may be absent, in which case every setting takes its default.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file",
	)

	// --verbose flag: enables debug logging.
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// initialize loads the configuration and sets up logging.
func initialize(cmd *cobra.Command) error {
	cfg, err := config.Load(cfgFile, !cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}
	appConfig = cfg

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	} else if err := level.UnmarshalText([]byte(strings.ToUpper(cfg.LogLevel))); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", cfg.LogLevel, err)
	}

	logger = newLogger(cmd.ErrOrStderr(), level)
	slog.SetDefault(logger)

	return nil
}

// newLogger builds the text logger used by every command.
func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}
