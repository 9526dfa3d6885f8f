package reader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
)

type fixtureRow struct {
	ID       int64     `parquet:"id"`
	Name     string    `parquet:"name"`
	Age      int32     `parquet:"age"`
	Score    float64   `parquet:"score"`
	Active   bool      `parquet:"active"`
	Optional *string   `parquet:"optional,optional"`
	Created  time.Time `parquet:"created"`
}

// writeFixture writes rows to a temporary parquet file and returns its path.
func writeFixture(t *testing.T, rows []fixtureRow) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.parquet")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	writer := parquet.NewGenericWriter[fixtureRow](f)
	if _, err := writer.Write(rows); err != nil {
		t.Fatalf("failed to write test data: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("failed to close file: %v", err)
	}
	return path
}

// findColumn returns the index of the named column, schema order aside.
func findColumn(t *testing.T, r *Reader, name string) int {
	t.Helper()
	for col := 0; col < r.ColumnCount(0); col++ {
		if r.ColumnName(0, col) == name {
			return col
		}
	}
	t.Fatalf("column %q not found", name)
	return -1
}

func TestReadColumn_Types(t *testing.T) {
	opt := "present"
	path := writeFixture(t, []fixtureRow{
		{ID: 1, Name: "alice", Age: 30, Score: 95.5, Active: true, Optional: &opt, Created: time.Unix(100, 0).UTC()},
		{ID: 2, Name: "bob", Age: 25, Score: 87.25, Active: false, Optional: nil, Created: time.Unix(200, 0).UTC()},
	})

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	defer func() { _ = r.Close() }()

	if got := r.RowGroupCount(); got != 1 {
		t.Fatalf("RowGroupCount() = %d, want 1", got)
	}
	if got := r.ColumnCount(0); got != 7 {
		t.Fatalf("ColumnCount(0) = %d, want 7", got)
	}

	tests := []struct {
		column   string
		wantType ValueType
	}{
		{"id", TypeInt64},
		{"name", TypeByteArray},
		{"age", TypeInt32},
		{"score", TypeDouble},
		{"active", TypeBoolean},
		{"optional", TypeByteArray},
		{"created", TypeTimestamp},
	}

	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			data, err := r.ReadColumn(0, findColumn(t, r, tt.column))
			if err != nil {
				t.Fatalf("ReadColumn() error = %v", err)
			}
			if data.Type != tt.wantType {
				t.Errorf("type = %s, want %s", data.Type, tt.wantType)
			}
			if data.Len() != 2 {
				t.Errorf("Len() = %d, want 2", data.Len())
			}
		})
	}
}

func TestReadColumn_Values(t *testing.T) {
	path := writeFixture(t, []fixtureRow{
		{ID: 7, Name: "alice", Age: 30, Score: 1.5},
		{ID: 9, Name: "bob", Age: 25, Score: 2.5},
	})

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	defer func() { _ = r.Close() }()

	ids, err := r.ReadColumn(0, findColumn(t, r, "id"))
	if err != nil {
		t.Fatalf("ReadColumn(id) error = %v", err)
	}
	if ids.Ints[0] != 7 || ids.Ints[1] != 9 {
		t.Errorf("id values = %v, want [7 9]", ids.Ints)
	}

	names, err := r.ReadColumn(0, findColumn(t, r, "name"))
	if err != nil {
		t.Fatalf("ReadColumn(name) error = %v", err)
	}
	if names.Strings[0] != "alice" || names.Strings[1] != "bob" {
		t.Errorf("name values = %v, want [alice bob]", names.Strings)
	}

	scores, err := r.ReadColumn(0, findColumn(t, r, "score"))
	if err != nil {
		t.Fatalf("ReadColumn(score) error = %v", err)
	}
	if scores.Floats[0] != 1.5 || scores.Floats[1] != 2.5 {
		t.Errorf("score values = %v, want [1.5 2.5]", scores.Floats)
	}
}

func TestReadColumn_NullMapping(t *testing.T) {
	opt := "x"
	path := writeFixture(t, []fixtureRow{
		{ID: 1, Name: "a", Optional: &opt},
		{ID: 2, Name: "b", Optional: nil},
	})

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	defer func() { _ = r.Close() }()

	data, err := r.ReadColumn(0, findColumn(t, r, "optional"))
	if err != nil {
		t.Fatalf("ReadColumn(optional) error = %v", err)
	}

	if data.IsNull(0) {
		t.Errorf("row 0 should not be null")
	}
	if !data.IsNull(1) {
		t.Errorf("row 1 should map to the empty-string sentinel")
	}
}

// ColumnType reports the routed type without decoding values.
func TestColumnType(t *testing.T) {
	path := writeFixture(t, []fixtureRow{{ID: 1, Name: "a", Created: time.Unix(100, 0).UTC()}})

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	defer func() { _ = r.Close() }()

	tests := []struct {
		column string
		want   ValueType
	}{
		{"id", TypeInt64},
		{"name", TypeByteArray},
		{"score", TypeDouble},
		{"created", TypeTimestamp},
	}
	for _, tt := range tests {
		if got := r.ColumnType(0, findColumn(t, r, tt.column)); got != tt.want {
			t.Errorf("ColumnType(%s) = %s, want %s", tt.column, got, tt.want)
		}
	}

	if got := r.ColumnType(9, 0); got != TypeByteArray {
		t.Errorf("ColumnType out of range = %s, want BYTE_ARRAY", got)
	}
}

func TestReadColumn_OutOfRange(t *testing.T) {
	path := writeFixture(t, []fixtureRow{{ID: 1, Name: "a"}})

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	defer func() { _ = r.Close() }()

	if _, err := r.ReadColumn(5, 0); !errors.Is(err, ErrColumnOutOfRange) {
		t.Errorf("ReadColumn(5, 0) error = %v, want ErrColumnOutOfRange", err)
	}
	if _, err := r.ReadColumn(0, 99); !errors.Is(err, ErrColumnOutOfRange) {
		t.Errorf("ReadColumn(0, 99) error = %v, want ErrColumnOutOfRange", err)
	}
}

func TestNewReader_Errors(t *testing.T) {
	if _, err := NewReader("does-not-exist.parquet"); err == nil {
		t.Errorf("NewReader() on missing file should fail")
	}

	bad := filepath.Join(t.TempDir(), "bad.parquet")
	if err := os.WriteFile(bad, []byte("not a parquet file"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if _, err := NewReader(bad); err == nil {
		t.Errorf("NewReader() on malformed file should fail")
	}
}

func TestReader_CloseTwice(t *testing.T) {
	path := writeFixture(t, []fixtureRow{{ID: 1, Name: "a"}})

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("first Close() error = %v", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
