package query

import (
	"fmt"
	"strings"

	"github.com/vegasq/parqprof/internal/metrics"
	"github.com/vegasq/parqprof/meta"
)

// TableName is the engine's single supported table identifier.
const TableName = "metadata"

// ResultSet is the outcome of one query: the matched column list and the
// matching records, each restricted to the selected columns.
type ResultSet struct {
	Columns []string
	Records []meta.QueryableRecord
}

// Engine evaluates queries over a set of queryable records built from
// loaded metadata trees. The record set is immutable after construction,
// so an Engine is safe for concurrent readers without locking.
type Engine struct {
	records []meta.QueryableRecord
}

// NewEngine creates an engine over the given records.
func NewEngine(records []meta.QueryableRecord) *Engine {
	return &Engine{records: records}
}

// Execute parses and runs one query. A malformed query or unknown table
// returns a structured error and touches no state; queries never
// partially execute.
func (e *Engine) Execute(input string) (*ResultSet, error) {
	rs, err := e.execute(input)
	if err != nil {
		metrics.QueriesTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.QueriesTotal.WithLabelValues("ok").Inc()
	return rs, nil
}

func (e *Engine) execute(input string) (*ResultSet, error) {
	q, err := Parse(input)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(q.Table, TableName) {
		return nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnknownTable, q.Table, TableName)
	}

	var matched []meta.QueryableRecord
	for _, rec := range e.records {
		if q.Match(rec) {
			matched = append(matched, rec)
		}
	}

	columns := q.Columns
	if q.Star {
		// SELECT * takes its column list from the first matching record.
		if len(matched) > 0 {
			columns = matched[0].Keys()
		}
	}

	rs := &ResultSet{Columns: columns}
	for _, rec := range matched {
		rs.Records = append(rs.Records, project(rec, columns))
	}
	return rs, nil
}

// project copies the selected keys of a record, in column order. Keys the
// record does not carry are omitted.
func project(rec meta.QueryableRecord, columns []string) meta.QueryableRecord {
	out := meta.QueryableRecord{}
	for _, col := range columns {
		if v, ok := rec.Get(col); ok {
			out.Fields = append(out.Fields, meta.Field{Key: col, Value: v})
		}
	}
	return out
}
