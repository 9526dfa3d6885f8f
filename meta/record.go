package meta

import (
	"strconv"
	"time"

	"github.com/vegasq/parqprof/profile"
)

// Field is one (key, value) pair of a queryable record. Values are
// stringified so the query engine can compare them uniformly.
type Field struct {
	Key   string
	Value string
}

// QueryableRecord is a flat ordered view of one file's metadata, built on
// demand for the query engine and disposable per query. It owns copies of
// its keys and values; mutating a record never touches the tree.
type QueryableRecord struct {
	Fields []Field
}

// Get returns the value stored under key.
func (r QueryableRecord) Get(key string) (string, bool) {
	for _, f := range r.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// Keys returns the record's keys in order.
func (r QueryableRecord) Keys() []string {
	keys := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		keys[i] = f.Key
	}
	return keys
}

// Record flattens a file's descriptive fields into a queryable record.
func Record(f *FileNode) QueryableRecord {
	r := QueryableRecord{}
	add := func(key, value string) {
		r.Fields = append(r.Fields, Field{Key: key, Value: value})
	}

	add("name", f.Name)
	add("generation_id", f.GenerationID.String())
	add("created_at", f.CreatedAt.Format(time.RFC3339))
	add("row_groups", strconv.Itoa(len(f.RowGroups)))
	add("columns", strconv.Itoa(f.ColumnCount()))
	add("total_values", strconv.FormatUint(f.TotalValues(), 10))
	add("null_count", strconv.FormatUint(f.TotalNulls(), 10))
	add("summary_kind", f.Summary.Kind().String())

	switch f.Summary.Kind() {
	case profile.KindTimestamp:
		s := f.Summary.Timestamp
		add("min", strconv.FormatInt(s.Min, 10))
		add("max", strconv.FormatInt(s.Max, 10))
	case profile.KindNumeric:
		s := f.Summary.Numeric
		add("min", formatFloat(s.Min))
		add("max", formatFloat(s.Max))
		add("mean", formatFloat(s.Mean))
	case profile.KindString:
		s := f.Summary.String
		add("min_len", strconv.FormatUint(s.MinLen, 10))
		add("max_len", strconv.FormatUint(s.MaxLen, 10))
		if len(s.TopFrequent) > 0 {
			add("top_value", s.TopFrequent[0].Value)
		}
	case profile.KindCategorical:
		s := f.Summary.Categorical
		add("distinct_categories", strconv.FormatUint(s.DistinctCategories, 10))
		if len(s.TopCategories) > 0 {
			add("top_category", s.TopCategories[0].Value)
		}
	}

	for _, item := range f.Custom {
		add("custom:"+item.Name, item.Result.String())
	}

	return r
}

// Records flattens several trees, one record per file.
func Records(files []*FileNode) []QueryableRecord {
	records := make([]QueryableRecord, 0, len(files))
	for _, f := range files {
		records = append(records, Record(f))
	}
	return records
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
