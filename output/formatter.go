// Package output provides formatters for rendering query result sets.
//
// Currently supported formats:
//   - JSON Lines: One JSON object per line
//   - CSV: Comma-separated values with header row
//   - Table: Aligned text table
//
// Example usage:
//
//	formatter := output.NewJSONFormatter(os.Stdout)
//	if err := formatter.Format(resultSet); err != nil {
//	    log.Fatal(err)
//	}
package output

import (
	"io"

	"github.com/vegasq/parqprof/query"
)

// Formatter defines the interface for output formatters.
//
// Implementers must provide Format to render a result set in the target
// format and SetOutput to change the output destination.
type Formatter interface {
	// Format writes the result set in the formatter's specific format
	Format(rs *query.ResultSet) error

	// SetOutput changes the output writer
	SetOutput(w io.Writer)
}
