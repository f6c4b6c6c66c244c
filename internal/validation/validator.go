// =============================================================================
// Deterioro Report - Schema Checks
// =============================================================================
//
// This module checks that a loaded table has the shape the analysis needs
// before any row is classified:
//   - The required columns exist (Comprobante, Codigo, Descripcion de elementos)
//
// Repeated headers are not an error. types.NormalizeHeaders has already
// renamed them ("Obs", "Obs.1"), so every column lookup is unambiguous.
//
// Cell contents are not validated here. Year values are parsed by the
// analysis stage, which reports the offending row and column itself.
//
// =============================================================================

package validation

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/deterioro-report/internal/types"
)

// RequiredColumns are the source columns every input must carry.
var RequiredColumns = []string{
	types.ColumnVoucher,
	types.ColumnCode,
	types.ColumnDescription,
}

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

// SchemaError lists the problems found in a table's header row.
type SchemaError struct {
	// Missing are the required columns that were not found.
	Missing []string
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required column(s): %s", quoteAll(e.Missing))
}

// =============================================================================
// VALIDATOR
// =============================================================================

// CheckSchema verifies the header row of a table.
//
// RETURNS:
//   - nil if the table can be analyzed.
//   - A types.ErrSchema error wrapping a *SchemaError when required columns
//     are missing.
func CheckSchema(table *types.Table) error {
	schemaErr := &SchemaError{}

	for _, name := range RequiredColumns {
		if _, ok := table.Column(name); !ok {
			schemaErr.Missing = append(schemaErr.Missing, name)
		}
	}

	if len(schemaErr.Missing) > 0 {
		return types.NewError(types.ErrSchema, table.Source, schemaErr)
	}
	return nil
}

func quoteAll(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	return strings.Join(quoted, ", ")
}
