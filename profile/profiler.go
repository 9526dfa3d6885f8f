package profile

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/vegasq/parqprof/reader"
)

// ErrUnsupportedType is returned when a column's value type maps to no
// statistical family.
var ErrUnsupportedType = errors.New("unsupported column value type")

// specialKeywords is the built-in list of substrings that qualify a string
// value for the top-special list. Matching is case-insensitive.
var specialKeywords = []string{
	"error", "exception", "fail", "bug", "crash",
	"invalid", "fatal", "critical", "warning", "issue",
}

// Profile computes a bounded statistical summary of one column's values.
//
// Type routing: booleans, fixed-length byte values, and INT96 profile as
// categoricals (booleans are always categorical here; "true"/"false" is a
// two-value category), 32/64-bit integers and floats as numerics, byte
// arrays as strings, and timestamp columns as timestamps. An empty value
// sequence yields a well-formed zero profile of the routed variant so the
// metadata tree keeps its shape.
func Profile(data *reader.ColumnData, limits Limits) (ColumnProfile, error) {
	switch data.Type {
	case reader.TypeTimestamp:
		return ColumnProfile{Timestamp: profileTimestamp(data)}, nil
	case reader.TypeInt32, reader.TypeInt64, reader.TypeFloat, reader.TypeDouble:
		return ColumnProfile{Numeric: profileNumeric(data)}, nil
	case reader.TypeByteArray:
		return ColumnProfile{String: profileString(data, limits)}, nil
	case reader.TypeBoolean, reader.TypeInt96, reader.TypeFixedLenByteArray:
		return ColumnProfile{Categorical: profileCategorical(data, limits)}, nil
	default:
		return ColumnProfile{}, fmt.Errorf("%w: %s", ErrUnsupportedType, data.Type)
	}
}

// ZeroProfile returns an all-zero profile of the variant a column type
// routes to. Used when profiling a column fails and the tree shape must
// stay stable.
func ZeroProfile(t reader.ValueType) ColumnProfile {
	switch t {
	case reader.TypeTimestamp:
		return ColumnProfile{Timestamp: &TimestampStats{}}
	case reader.TypeInt32, reader.TypeInt64, reader.TypeFloat, reader.TypeDouble:
		return ColumnProfile{Numeric: &NumericStats{}}
	case reader.TypeByteArray:
		return ColumnProfile{String: &StringStats{}}
	default:
		return ColumnProfile{Categorical: &CategoricalStats{}}
	}
}

func profileTimestamp(data *reader.ColumnData) *TimestampStats {
	stats := &TimestampStats{}
	for i, v := range data.Ints {
		if data.IsNull(i) {
			stats.NullCount++
			continue
		}
		if !stats.HasData || v < stats.Min {
			stats.Min = v
		}
		if !stats.HasData || v > stats.Max {
			stats.Max = v
		}
		stats.HasData = true
		stats.ValueCount++
	}
	return stats
}

func profileNumeric(data *reader.ColumnData) *NumericStats {
	stats := &NumericStats{}
	var sum float64
	counts := make(map[float64]uint64)

	record := func(v float64) {
		if stats.ValueCount == 0 || v < stats.Min {
			stats.Min = v
		}
		if stats.ValueCount == 0 || v > stats.Max {
			stats.Max = v
		}
		stats.ValueCount++
		sum += v

		// Incremental mode: the first value to reach the maximum count
		// wins, matching scan order.
		counts[v]++
		if counts[v] > stats.ModeCount {
			stats.ModeCount = counts[v]
			stats.ModeValue = v
		}
	}

	switch data.Type {
	case reader.TypeInt32, reader.TypeInt64:
		for i, v := range data.Ints {
			if data.IsNull(i) {
				stats.NullCount++
				continue
			}
			record(float64(v))
		}
	default:
		for i, v := range data.Floats {
			if data.IsNull(i) {
				stats.NullCount++
				continue
			}
			record(v)
		}
	}

	if stats.ValueCount > 0 {
		stats.Mean = sum / float64(stats.ValueCount)
	}
	return stats
}

func profileString(data *reader.ColumnData, limits Limits) *StringStats {
	stats := &StringStats{}
	counts := make(map[string]uint64)
	var order []string

	for i, v := range data.Strings {
		if data.IsNull(i) {
			stats.NullCount++
			continue
		}
		n := uint64(len(v))
		if stats.TotalCount == 0 || n < stats.MinLen {
			stats.MinLen = n
		}
		if n > stats.MaxLen {
			stats.MaxLen = n
		}
		stats.TotalLen += n
		stats.TotalCount++

		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}

	stats.TopFrequent = topEntries(order, counts, limits.TopFrequent)

	var specialOrder []string
	for _, v := range order {
		if isSpecial(v) {
			specialOrder = append(specialOrder, v)
		}
	}
	stats.TopSpecial = topEntries(specialOrder, counts, limits.TopSpecial)

	return stats
}

func profileCategorical(data *reader.ColumnData, limits Limits) *CategoricalStats {
	stats := &CategoricalStats{}
	counts := make(map[string]uint64)
	var order []string

	count := func(key string) {
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
		stats.TotalCount++
	}

	switch data.Type {
	case reader.TypeBoolean:
		for _, v := range data.Bools {
			count(boolKey(v))
		}
	default:
		for _, v := range data.Bytes {
			count(hex.EncodeToString(v))
		}
	}

	stats.DistinctCategories = uint64(len(order))
	stats.TopCategories = topEntries(order, counts, limits.TopCategories)
	return stats
}

// isSpecial reports whether a value contains any built-in keyword,
// case-insensitively.
func isSpecial(v string) bool {
	lower := strings.ToLower(v)
	for _, kw := range specialKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func boolKey(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
