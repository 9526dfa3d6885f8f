package predicate

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCapacity is returned when a matrix would exceed the allocation
	// bound. The predicate pass is all-or-nothing per file, so callers
	// discard any matrices already built for the same generation.
	ErrCapacity = errors.New("matrix exceeds capacity limit")

	// ErrBadMatrix is returned when serialized matrix text is malformed.
	ErrBadMatrix = errors.New("malformed matrix encoding")
)

// maxMatrixCells bounds a single predicate matrix allocation.
const maxMatrixCells = 1 << 26

// Matrix is a fixed-size boolean matrix of predicate results, one row per
// row group and one column per file column.
type Matrix struct {
	rows, cols int
	bits       []bool
}

// NewMatrix allocates a rows x cols matrix with all cells false.
func NewMatrix(rows, cols int) (*Matrix, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadMatrix, rows, cols)
	}
	if rows > 0 && cols > maxMatrixCells/rows {
		return nil, fmt.Errorf("%w: %dx%d", ErrCapacity, rows, cols)
	}
	return &Matrix{rows: rows, cols: cols, bits: make([]bool, rows*cols)}, nil
}

// Rows returns the row group dimension.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the column dimension.
func (m *Matrix) Cols() int { return m.cols }

// Set writes one cell. Out-of-range indexes are ignored.
func (m *Matrix) Set(row, col int, v bool) {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		return
	}
	m.bits[row*m.cols+col] = v
}

// Get reads one cell. Out-of-range indexes read false.
func (m *Matrix) Get(row, col int) bool {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		return false
	}
	return m.bits[row*m.cols+col]
}

// String encodes the matrix in its persisted form: one outer brace group
// wrapping one brace group per row group, cells as '0'/'1' separated by
// commas. A 2x3 matrix with rows [1,1,0] and [0,0,1] encodes as
// {{1,1,0},{0,0,1}}.
func (m *Matrix) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for row := 0; row < m.rows; row++ {
		if row > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('{')
		for col := 0; col < m.cols; col++ {
			if col > 0 {
				b.WriteByte(',')
			}
			if m.Get(row, col) {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
		}
		b.WriteByte('}')
	}
	b.WriteByte('}')
	return b.String()
}

// ParseMatrix decodes the brace encoding produced by String. The decoded
// matrix compares cell-for-cell equal to the original.
func ParseMatrix(s string) (*Matrix, error) {
	if len(s) < 2 || s[0] != '{' || s[len(s)-1] != '}' {
		return nil, fmt.Errorf("%w: missing outer braces", ErrBadMatrix)
	}

	inner := s[1 : len(s)-1]
	if inner == "" {
		return NewMatrix(0, 0)
	}

	var rows [][]bool
	cols := -1
	for len(inner) > 0 {
		if inner[0] != '{' {
			return nil, fmt.Errorf("%w: expected '{' at %q", ErrBadMatrix, inner)
		}
		end := strings.IndexByte(inner, '}')
		if end < 0 {
			return nil, fmt.Errorf("%w: unterminated row group", ErrBadMatrix)
		}

		row, err := parseRow(inner[1:end])
		if err != nil {
			return nil, err
		}
		if cols == -1 {
			cols = len(row)
		} else if len(row) != cols {
			return nil, fmt.Errorf("%w: ragged row of %d cells, expected %d", ErrBadMatrix, len(row), cols)
		}
		rows = append(rows, row)

		inner = inner[end+1:]
		if len(inner) > 0 {
			if inner[0] != ',' {
				return nil, fmt.Errorf("%w: expected ',' between row groups", ErrBadMatrix)
			}
			inner = inner[1:]
		}
	}

	m, err := NewMatrix(len(rows), cols)
	if err != nil {
		return nil, err
	}
	for r, row := range rows {
		for c, v := range row {
			m.Set(r, c, v)
		}
	}
	return m, nil
}

func parseRow(s string) ([]bool, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	row := make([]bool, len(parts))
	for i, p := range parts {
		switch p {
		case "0":
			row[i] = false
		case "1":
			row[i] = true
		default:
			return nil, fmt.Errorf("%w: cell %q", ErrBadMatrix, p)
		}
	}
	return row, nil
}

// MarshalJSON persists the matrix as its brace-encoded string so the
// on-disk form stays bit-exact across JSON round trips.
func (m *Matrix) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON decodes the brace-encoded string form.
func (m *Matrix) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("%w: expected JSON string", ErrBadMatrix)
	}
	parsed, err := ParseMatrix(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	*m = *parsed
	return nil
}
