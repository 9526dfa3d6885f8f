package output

import (
	"encoding/json"
	"io"

	"github.com/vegasq/parqprof/query"
)

// JSONFormatter outputs result rows as JSON Lines format
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a new JSON Lines formatter
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// SetOutput sets the output writer
func (j *JSONFormatter) SetOutput(w io.Writer) {
	j.writer = w
}

// Format writes each record as one JSON object per line
func (j *JSONFormatter) Format(rs *query.ResultSet) error {
	encoder := json.NewEncoder(j.writer)
	for _, rec := range rs.Records {
		row := make(map[string]string, len(rec.Fields))
		for _, f := range rec.Fields {
			row[f.Key] = f.Value
		}
		if err := encoder.Encode(row); err != nil {
			return err
		}
	}
	return nil
}
