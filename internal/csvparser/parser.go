// =============================================================================
// Deterioro Report - CSV Loader
// =============================================================================
//
// This module reads accounting exports that were saved as CSV instead of a
// workbook. Exports produced on Spanish-locale desktops commonly differ from
// the RFC 4180 defaults, so the reader handles:
//   - Different delimiters (comma, semicolon, tab, pipe)
//   - Legacy single-byte encodings (Windows-1252, ISO-8859-1)
//   - A UTF-8 byte order mark in front of the first header
//   - Rows with fewer or more fields than the header
//
// The first non-empty record is the header row.
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ginjaninja78/deterioro-report/internal/config"
	"github.com/ginjaninja78/deterioro-report/internal/types"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

const utf8BOM = "\uFEFF"

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads a CSV file into a Table.
//
// PARAMETERS:
//   - filePath: The path to the CSV file.
//   - settings: The CSV settings from the configuration.
//
// RETURNS:
//   - The loaded table.
//   - A types.ErrFileAccess error if the file cannot be opened.
//   - A types.ErrFormat error if the content is not valid CSV or has no header.
func Parse(filePath string, settings config.CSVSettings) (*types.Table, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, types.NewError(types.ErrFileAccess, filePath, err)
	}
	defer file.Close()

	return Read(file, filePath, settings)
}

// Read parses CSV content from r. source names the input in errors and in
// the resulting table.
func Read(r io.Reader, source string, settings config.CSVSettings) (*types.Table, error) {
	reader, err := decode(bufio.NewReader(r), settings.Encoding)
	if err != nil {
		return nil, types.NewError(types.ErrFormat, source, err)
	}

	csvReader := csv.NewReader(reader)
	configureReader(csvReader, settings)

	allRows, err := csvReader.ReadAll()
	if err != nil {
		return nil, types.NewError(types.ErrFormat, source, fmt.Errorf("failed to read CSV: %w", err))
	}

	for i, row := range allRows {
		if types.IsRowEmpty(row) {
			continue
		}
		if i == 0 && len(row) > 0 {
			row[0] = strings.TrimPrefix(row[0], utf8BOM)
		}
		return types.NewTable(source, row, allRows[i+1:], i+1), nil
	}

	return nil, types.Errorf(types.ErrFormat, source, "CSV file has no header row")
}

// decode wraps r with a decoder for the configured source encoding.
func decode(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToUpper(encoding) {
	case "", "UTF-8", "UTF8":
		return r, nil
	case "WINDOWS-1252", "CP1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	case "ISO-8859-1", "LATIN1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", encoding)
	}
}

// configureReader configures the CSV reader based on the settings.
func configureReader(reader *csv.Reader, settings config.CSVSettings) {
	// Handle special cases for common delimiters.
	switch settings.Delimiter {
	case "\\t", "tab", "TAB":
		reader.Comma = '\t'
	case "|", "pipe", "PIPE":
		reader.Comma = '|'
	case ";", "semicolon":
		reader.Comma = ';'
	default:
		if r := []rune(settings.Delimiter); len(r) > 0 {
			reader.Comma = r[0]
		} else {
			reader.Comma = ','
		}
	}

	// Exports pad short rows inconsistently.
	reader.FieldsPerRecord = -1

	reader.LazyQuotes = true
}
