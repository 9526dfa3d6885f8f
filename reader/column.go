package reader

import (
	"math"
)

// ValueType identifies the statistical family a column's values belong to.
type ValueType int

const (
	TypeBoolean ValueType = iota
	TypeInt32
	TypeInt64
	TypeInt96
	TypeFloat
	TypeDouble
	TypeByteArray
	TypeFixedLenByteArray
	TypeTimestamp
)

// String returns the parquet-style name of the value type.
func (t ValueType) String() string {
	switch t {
	case TypeBoolean:
		return "BOOLEAN"
	case TypeInt32:
		return "INT32"
	case TypeInt64:
		return "INT64"
	case TypeInt96:
		return "INT96"
	case TypeFloat:
		return "FLOAT"
	case TypeDouble:
		return "DOUBLE"
	case TypeByteArray:
		return "BYTE_ARRAY"
	case TypeFixedLenByteArray:
		return "FIXED_LEN_BYTE_ARRAY"
	case TypeTimestamp:
		return "TIMESTAMP"
	default:
		return "UNKNOWN"
	}
}

// ColumnData holds the decoded values of one column of one row group.
//
// Only the slice matching Type is populated. Missing values are stored
// using the format's sentinel convention rather than a null bitmap:
// the minimum representable value for integers, NaN for floating point,
// the empty string for byte arrays, and all-zero bytes for fixed-length
// byte arrays. This convention is part of the on-disk contract and is
// preserved on read.
type ColumnData struct {
	Name string
	Type ValueType

	Bools   []bool
	Ints    []int64 // INT32 values widened; INT64 and timestamp values as-is
	Floats  []float64
	Strings []string
	Bytes   [][]byte // FIXED_LEN_BYTE_ARRAY and INT96 raw values
}

// Len returns the number of values in the column, nulls included.
func (c *ColumnData) Len() int {
	switch c.Type {
	case TypeBoolean:
		return len(c.Bools)
	case TypeInt32, TypeInt64, TypeTimestamp:
		return len(c.Ints)
	case TypeFloat, TypeDouble:
		return len(c.Floats)
	case TypeByteArray:
		return len(c.Strings)
	case TypeInt96, TypeFixedLenByteArray:
		return len(c.Bytes)
	default:
		return 0
	}
}

// IsNull reports whether the value at index i matches the sentinel null
// convention for the column's type. Booleans are never null.
func (c *ColumnData) IsNull(i int) bool {
	switch c.Type {
	case TypeInt32:
		return c.Ints[i] == math.MinInt32
	case TypeInt64, TypeTimestamp:
		return c.Ints[i] == math.MinInt64
	case TypeFloat, TypeDouble:
		return math.IsNaN(c.Floats[i])
	case TypeByteArray:
		return len(c.Strings[i]) == 0
	case TypeInt96, TypeFixedLenByteArray:
		return allZero(c.Bytes[i])
	default:
		return false
	}
}

func allZero(b []byte) bool {
	if len(b) == 0 {
		return true
	}
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
