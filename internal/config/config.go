// =============================================================================
// Deterioro Report - Configuration Module
// =============================================================================
//
// This module loads the optional YAML configuration file. Every setting has a
// default that reproduces the historical behavior of the report, so running
// without a configuration file is the normal case.
//
// CONFIGURATION FILE (config.yaml):
//   input_file:  "ANALISIS DETERIORO 2025.xlsx"
//   output_file: "ANALISIS_DETERIORO_2025_modificado.xlsx"
//   classification:
//     income_codes:  ["1A"]
//     outflow_codes: ["2F", "2J", "2L"]
//     group_order:   stable
//   report:
//     table_name:  Tabla_Deterioro
//     table_style: TableStyleMedium9
//
// Command line flags override the values loaded from the file.
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// DEFAULTS
// =============================================================================

const (
	DefaultInputFile     = "ANALISIS DETERIORO 2025.xlsx"
	DefaultOutputFile    = "ANALISIS_DETERIORO_2025_modificado.xlsx"
	DefaultLogLevel      = "info"
	DefaultOutflowLabel  = "2F_2J_2L"
	DefaultMovementLabel = "SALIDAS"
	DefaultTableName     = "Tabla_Deterioro"
	DefaultTableStyle    = "TableStyleMedium9"
	DefaultHeaderFill    = "79CCB3"
	DefaultWidthPadding  = 2
)

// Group orders for aggregated outflow rows.
const (
	// GroupOrderStable keeps groups in first-occurrence order.
	GroupOrderStable = "stable"

	// GroupOrderSorted sorts groups by item code, then description.
	GroupOrderSorted = "sorted"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration.
type Config struct {
	// InputFile is the accounting export to analyze (.xlsx, .xlsm, .xls or .csv).
	InputFile string `yaml:"input_file"`

	// OutputFile is the report workbook. It is overwritten on every run.
	OutputFile string `yaml:"output_file"`

	// SheetName selects the input sheet. Empty means the first sheet.
	SheetName string `yaml:"sheet_name"`

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	LogLevel string `yaml:"log_level"`

	CSVSettings    CSVSettings    `yaml:"csv_settings"`
	Classification Classification `yaml:"classification"`
	Report         ReportSettings `yaml:"report"`
}

// CSVSettings contains settings for reading .csv exports.
type CSVSettings struct {
	// Delimiter separates fields. Default: ","
	Delimiter string `yaml:"delimiter"`

	// Encoding of the file: "UTF-8", "Windows-1252" or "ISO-8859-1".
	// Default: "UTF-8"
	Encoding string `yaml:"encoding"`

	// DecimalSeparator used by numeric cells: "." or ",". Default: "."
	// With ",", "." is treated as a thousands separator.
	DecimalSeparator string `yaml:"decimal_separator"`
}

// Classification defines how voucher codes split the rows.
type Classification struct {
	// IncomeCodes are the voucher codes of income rows. Default: ["1A"]
	IncomeCodes []string `yaml:"income_codes"`

	// OutflowCodes are the voucher codes of outflow rows.
	// Default: ["2F", "2J", "2L"]
	OutflowCodes []string `yaml:"outflow_codes"`

	// OutflowLabel is written in the Comprobante column of aggregated rows.
	OutflowLabel string `yaml:"outflow_label"`

	// MovementLabel is written in the Movimiento column of aggregated rows.
	MovementLabel string `yaml:"movement_label"`

	// GroupOrder is "stable" (first occurrence) or "sorted".
	GroupOrder string `yaml:"group_order"`
}

// ReportSettings controls the presentation of the output workbook.
type ReportSettings struct {
	// TableName is the name of the registered table object.
	TableName string `yaml:"table_name"`

	// TableStyle is a built-in Excel table style name.
	TableStyle string `yaml:"table_style"`

	// HeaderFill is the RGB hex color of the header cells, without "#".
	HeaderFill string `yaml:"header_fill"`

	// WidthPadding is added to the widest value of each column. It is a
	// pointer so that an explicit 0 is kept while an absent key gets the
	// default.
	WidthPadding *int `yaml:"width_padding"`
}

// Padding returns WidthPadding, or DefaultWidthPadding when it is unset.
func (r ReportSettings) Padding() int {
	if r.WidthPadding == nil {
		return DefaultWidthPadding
	}
	return *r.WidthPadding
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads the configuration from a YAML file.
//
// When optional is true and the file does not exist, the defaults are returned
// instead of an error. This is how the default --config path behaves.
func Load(configPath string, optional bool) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.InputFile == "" {
		cfg.InputFile = DefaultInputFile
	}
	if cfg.OutputFile == "" {
		cfg.OutputFile = DefaultOutputFile
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}

	// CSV settings defaults.
	if cfg.CSVSettings.Delimiter == "" {
		cfg.CSVSettings.Delimiter = ","
	}
	if cfg.CSVSettings.Encoding == "" {
		cfg.CSVSettings.Encoding = "UTF-8"
	}
	if cfg.CSVSettings.DecimalSeparator == "" {
		cfg.CSVSettings.DecimalSeparator = "."
	}

	// Classification defaults.
	if len(cfg.Classification.IncomeCodes) == 0 {
		cfg.Classification.IncomeCodes = []string{"1A"}
	}
	if len(cfg.Classification.OutflowCodes) == 0 {
		cfg.Classification.OutflowCodes = []string{"2F", "2J", "2L"}
	}
	if cfg.Classification.OutflowLabel == "" {
		cfg.Classification.OutflowLabel = DefaultOutflowLabel
	}
	if cfg.Classification.MovementLabel == "" {
		cfg.Classification.MovementLabel = DefaultMovementLabel
	}
	if cfg.Classification.GroupOrder == "" {
		cfg.Classification.GroupOrder = GroupOrderStable
	}

	// Report defaults.
	if cfg.Report.TableName == "" {
		cfg.Report.TableName = DefaultTableName
	}
	if cfg.Report.TableStyle == "" {
		cfg.Report.TableStyle = DefaultTableStyle
	}
	if cfg.Report.HeaderFill == "" {
		cfg.Report.HeaderFill = DefaultHeaderFill
	}
	cfg.Report.HeaderFill = strings.TrimPrefix(cfg.Report.HeaderFill, "#")
	if cfg.Report.WidthPadding == nil {
		padding := DefaultWidthPadding
		cfg.Report.WidthPadding = &padding
	}
}

var (
	hexColor  = regexp.MustCompile(`^[0-9A-Fa-f]{6}$`)
	tableName = regexp.MustCompile(`^[A-Za-z_\\][A-Za-z0-9_.]*$`)
)

// Validate checks the settings that would otherwise fail late, after the
// input has been read.
func (c *Config) Validate() error {
	switch c.Classification.GroupOrder {
	case GroupOrderStable, GroupOrderSorted:
	default:
		return fmt.Errorf("group_order must be %q or %q, got %q",
			GroupOrderStable, GroupOrderSorted, c.Classification.GroupOrder)
	}

	// A code in both sets would make the split ambiguous.
	income := make(map[string]bool, len(c.Classification.IncomeCodes))
	for _, code := range c.Classification.IncomeCodes {
		income[strings.ToUpper(code)] = true
	}
	for _, code := range c.Classification.OutflowCodes {
		if income[strings.ToUpper(code)] {
			return fmt.Errorf("voucher code %q is both an income and an outflow code", code)
		}
	}

	switch strings.ToUpper(c.CSVSettings.Encoding) {
	case "UTF-8", "UTF8", "WINDOWS-1252", "CP1252", "ISO-8859-1", "LATIN1":
	default:
		return fmt.Errorf("unsupported csv encoding %q", c.CSVSettings.Encoding)
	}

	if len([]rune(c.CSVSettings.Delimiter)) != 1 {
		return fmt.Errorf("csv delimiter must be a single character, got %q", c.CSVSettings.Delimiter)
	}

	switch c.CSVSettings.DecimalSeparator {
	case ".", ",":
	default:
		return fmt.Errorf("decimal_separator must be \".\" or \",\", got %q", c.CSVSettings.DecimalSeparator)
	}

	if !hexColor.MatchString(c.Report.HeaderFill) {
		return fmt.Errorf("header_fill must be a 6-digit hex color, got %q", c.Report.HeaderFill)
	}

	if !tableName.MatchString(c.Report.TableName) {
		return fmt.Errorf("invalid table_name %q", c.Report.TableName)
	}

	if c.Report.Padding() < 0 {
		return fmt.Errorf("width_padding must not be negative")
	}

	return nil
}
