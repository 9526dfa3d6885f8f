// Package profile computes bounded statistical summaries of columnar data.
//
// A ColumnProfile is a tagged union over four variants, selected by the
// column's value type: timestamps, numerics, strings, and categoricals.
// Profiles are bounded in size regardless of input length; frequent-value
// tracking uses fixed-capacity top-K lists.
package profile

// Kind identifies which variant of a ColumnProfile is populated.
type Kind int

const (
	KindNone Kind = iota
	KindTimestamp
	KindNumeric
	KindString
	KindCategorical
)

// String returns the variant name.
func (k Kind) String() string {
	switch k {
	case KindTimestamp:
		return "timestamp"
	case KindNumeric:
		return "numeric"
	case KindString:
		return "string"
	case KindCategorical:
		return "categorical"
	default:
		return "none"
	}
}

// Limits configures the capacities of the bounded top-K lists.
type Limits struct {
	TopFrequent   int // most frequent exact string values
	TopSpecial    int // keyword-bearing string values
	TopCategories int // most frequent category keys
}

// DefaultLimits returns the standard capacities.
func DefaultLimits() Limits {
	return Limits{
		TopFrequent:   10,
		TopSpecial:    20,
		TopCategories: 20,
	}
}

// ColumnProfile is a tagged union over the four profile variants. Exactly
// one variant pointer is non-nil; the others stay nil so the union encodes
// to JSON with a single populated field, the same way parquet logical
// types are represented.
type ColumnProfile struct {
	Timestamp   *TimestampStats   `json:"timestamp,omitempty"`
	Numeric     *NumericStats     `json:"numeric,omitempty"`
	String      *StringStats      `json:"string,omitempty"`
	Categorical *CategoricalStats `json:"categorical,omitempty"`
}

// Kind returns which variant the profile holds.
func (p ColumnProfile) Kind() Kind {
	switch {
	case p.Timestamp != nil:
		return KindTimestamp
	case p.Numeric != nil:
		return KindNumeric
	case p.String != nil:
		return KindString
	case p.Categorical != nil:
		return KindCategorical
	default:
		return KindNone
	}
}

// ValueCount returns the populated variant's non-null value count.
func (p ColumnProfile) ValueCount() uint64 {
	switch p.Kind() {
	case KindTimestamp:
		return p.Timestamp.ValueCount
	case KindNumeric:
		return p.Numeric.ValueCount
	case KindString:
		return p.String.TotalCount
	case KindCategorical:
		return p.Categorical.TotalCount
	default:
		return 0
	}
}

// NullCount returns the populated variant's null count. Categorical
// profiles track no nulls and report zero.
func (p ColumnProfile) NullCount() uint64 {
	switch p.Kind() {
	case KindTimestamp:
		return p.Timestamp.NullCount
	case KindNumeric:
		return p.Numeric.NullCount
	case KindString:
		return p.String.NullCount
	default:
		return 0
	}
}

// TimestampStats summarizes a timestamp column.
type TimestampStats struct {
	Min        int64  `json:"min"`
	Max        int64  `json:"max"`
	HasData    bool   `json:"has_data"`
	ValueCount uint64 `json:"value_count"`
	NullCount  uint64 `json:"null_count"`
}

// NumericStats summarizes an integer or floating-point column.
//
// ModeValue and ModeCount are only meaningful on column-level profiles;
// aggregated profiles leave them zero because merging modes from bounded
// child summaries is not statistically sound.
type NumericStats struct {
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	Mean       float64 `json:"mean"`
	ModeValue  float64 `json:"mode_value"`
	ModeCount  uint64  `json:"mode_count"`
	ValueCount uint64  `json:"value_count"`
	NullCount  uint64  `json:"null_count"`
}

// StringStats summarizes a variable-length string column.
type StringStats struct {
	TopFrequent []Entry `json:"top_frequent"`
	TopSpecial  []Entry `json:"top_special"`
	MinLen      uint64  `json:"min_len"`
	MaxLen      uint64  `json:"max_len"`
	TotalLen    uint64  `json:"total_len"`
	TotalCount  uint64  `json:"total_count"`
	NullCount   uint64  `json:"null_count"`
}

// CategoricalStats summarizes a low-cardinality column (booleans,
// fixed-length byte values, INT96). Values are mapped to canonical string
// keys before counting. DistinctCategories counts every distinct key
// observed and is not bounded by the top-K capacity.
type CategoricalStats struct {
	TopCategories      []Entry `json:"top_categories"`
	DistinctCategories uint64  `json:"distinct_categories"`
	TotalCount         uint64  `json:"total_count"`
}
