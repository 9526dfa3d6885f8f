package reader

import (
	"math"
	"testing"
)

func TestColumnData_Len(t *testing.T) {
	tests := []struct {
		name string
		data ColumnData
		want int
	}{
		{"boolean", ColumnData{Type: TypeBoolean, Bools: []bool{true, false}}, 2},
		{"int32", ColumnData{Type: TypeInt32, Ints: []int64{1, 2, 3}}, 3},
		{"int64", ColumnData{Type: TypeInt64, Ints: []int64{1}}, 1},
		{"timestamp", ColumnData{Type: TypeTimestamp, Ints: []int64{1, 2}}, 2},
		{"double", ColumnData{Type: TypeDouble, Floats: []float64{1.5}}, 1},
		{"byte array", ColumnData{Type: TypeByteArray, Strings: []string{"a", "b"}}, 2},
		{"fixed", ColumnData{Type: TypeFixedLenByteArray, Bytes: [][]byte{{1}}}, 1},
		{"empty", ColumnData{Type: TypeInt64}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.data.Len(); got != tt.want {
				t.Errorf("Len() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestColumnData_IsNull(t *testing.T) {
	tests := []struct {
		name string
		data ColumnData
		idx  int
		want bool
	}{
		{"int32 sentinel", ColumnData{Type: TypeInt32, Ints: []int64{math.MinInt32}}, 0, true},
		{"int32 value", ColumnData{Type: TypeInt32, Ints: []int64{-5}}, 0, false},
		{"int64 sentinel", ColumnData{Type: TypeInt64, Ints: []int64{math.MinInt64}}, 0, true},
		{"int64 min32 is a value", ColumnData{Type: TypeInt64, Ints: []int64{math.MinInt32}}, 0, false},
		{"timestamp sentinel", ColumnData{Type: TypeTimestamp, Ints: []int64{math.MinInt64}}, 0, true},
		{"float NaN", ColumnData{Type: TypeFloat, Floats: []float64{math.NaN()}}, 0, true},
		{"double value", ColumnData{Type: TypeDouble, Floats: []float64{0}}, 0, false},
		{"empty string", ColumnData{Type: TypeByteArray, Strings: []string{""}}, 0, true},
		{"nonempty string", ColumnData{Type: TypeByteArray, Strings: []string{"x"}}, 0, false},
		{"all-zero fixed", ColumnData{Type: TypeFixedLenByteArray, Bytes: [][]byte{{0, 0, 0}}}, 0, true},
		{"nil fixed", ColumnData{Type: TypeFixedLenByteArray, Bytes: [][]byte{nil}}, 0, true},
		{"nonzero fixed", ColumnData{Type: TypeFixedLenByteArray, Bytes: [][]byte{{0, 1}}}, 0, false},
		{"all-zero int96", ColumnData{Type: TypeInt96, Bytes: [][]byte{make([]byte, 12)}}, 0, true},
		{"boolean never null", ColumnData{Type: TypeBoolean, Bools: []bool{false}}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.data.IsNull(tt.idx); got != tt.want {
				t.Errorf("IsNull(%d) = %v, want %v", tt.idx, got, tt.want)
			}
		})
	}
}

func TestValueType_String(t *testing.T) {
	tests := []struct {
		typ  ValueType
		want string
	}{
		{TypeBoolean, "BOOLEAN"},
		{TypeInt32, "INT32"},
		{TypeInt64, "INT64"},
		{TypeInt96, "INT96"},
		{TypeFloat, "FLOAT"},
		{TypeDouble, "DOUBLE"},
		{TypeByteArray, "BYTE_ARRAY"},
		{TypeFixedLenByteArray, "FIXED_LEN_BYTE_ARRAY"},
		{TypeTimestamp, "TIMESTAMP"},
		{ValueType(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("ValueType(%d).String() = %s, want %s", tt.typ, got, tt.want)
		}
	}
}
