package output

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/vegasq/parqprof/query"
)

// CSVFormatter outputs result rows as CSV format
type CSVFormatter struct {
	writer io.Writer
}

// NewCSVFormatter creates a new CSV formatter
func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{writer: w}
}

// SetOutput sets the output writer
func (c *CSVFormatter) SetOutput(w io.Writer) {
	c.writer = w
}

// Format writes the result set as CSV with the matched columns as the
// header row. Keys a record does not carry render as empty cells.
func (c *CSVFormatter) Format(rs *query.ResultSet) error {
	csvWriter := csv.NewWriter(c.writer)

	if len(rs.Columns) > 0 {
		if err := csvWriter.Write(rs.Columns); err != nil {
			return fmt.Errorf("failed to write CSV header: %w", err)
		}
	}

	for _, rec := range rs.Records {
		row := make([]string, len(rs.Columns))
		for i, col := range rs.Columns {
			v, _ := rec.Get(col)
			row[i] = v
		}
		if err := csvWriter.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV writer: %w", err)
	}
	return nil
}
