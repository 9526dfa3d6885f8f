package output

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/vegasq/parqprof/query"
)

// TableFormatter outputs result rows as an aligned text table
type TableFormatter struct {
	writer io.Writer
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

// SetOutput sets the output writer
func (t *TableFormatter) SetOutput(w io.Writer) {
	t.writer = w
}

// Format renders the result set with the matched columns as the header
func (t *TableFormatter) Format(rs *query.ResultSet) error {
	table := tablewriter.NewWriter(t.writer)
	table.Header(rs.Columns)

	rows := make([][]string, 0, len(rs.Records))
	for _, rec := range rs.Records {
		row := make([]string, len(rs.Columns))
		for i, col := range rs.Columns {
			v, _ := rec.Get(col)
			row[i] = v
		}
		rows = append(rows, row)
	}

	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}
