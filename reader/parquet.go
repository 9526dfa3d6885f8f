// Package reader provides column-oriented access to Apache Parquet files.
//
// It uses the parquet-go library to open files and decode one column of
// one row group at a time into a typed value buffer, which is the unit
// the profiler consumes.
package reader

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// ErrColumnOutOfRange is returned when a row group or column index does not
// exist in the file.
var ErrColumnOutOfRange = errors.New("row group or column index out of range")

// Reader reads parquet files column by column.
//
// It maintains both an OS file handle and a parquet file handle to enable
// proper resource cleanup.
type Reader struct {
	file   *os.File
	pqFile *parquet.File
	names  []string
}

// NewReader creates a new parquet reader for the specified file path.
//
// The file is opened and validated as a parquet file. Returns an error if
// the file doesn't exist or is not a valid parquet file.
func NewReader(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pqFile, err := parquet.OpenFile(file, stat.Size())
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	names := make([]string, 0, len(pqFile.Schema().Columns()))
	for _, path := range pqFile.Schema().Columns() {
		names = append(names, strings.Join(path, "."))
	}

	return &Reader{
		file:   file,
		pqFile: pqFile,
		names:  names,
	}, nil
}

// RowGroupCount returns the number of row groups in the file.
func (r *Reader) RowGroupCount() int {
	return len(r.pqFile.RowGroups())
}

// ColumnCount returns the number of column chunks in the given row group.
func (r *Reader) ColumnCount(rowGroup int) int {
	groups := r.pqFile.RowGroups()
	if rowGroup < 0 || rowGroup >= len(groups) {
		return 0
	}
	return len(groups[rowGroup].ColumnChunks())
}

// ColumnName returns the dotted leaf path of a column. Nested fields use
// dot notation (e.g., "address.street").
func (r *Reader) ColumnName(rowGroup, column int) string {
	if column < 0 || column >= len(r.names) {
		return ""
	}
	return r.names[column]
}

// ColumnType returns a column's value type tag without decoding any
// values. Out-of-range indexes report TypeByteArray.
func (r *Reader) ColumnType(rowGroup, column int) ValueType {
	groups := r.pqFile.RowGroups()
	if rowGroup < 0 || rowGroup >= len(groups) {
		return TypeByteArray
	}
	chunks := groups[rowGroup].ColumnChunks()
	if column < 0 || column >= len(chunks) {
		return TypeByteArray
	}
	return columnValueType(chunks[column].Type())
}

// ReadColumn decodes all values of one column of one row group into a
// typed ColumnData buffer.
//
// Parquet-level nulls are mapped onto the sentinel convention described
// on ColumnData so that files written with either representation profile
// identically.
func (r *Reader) ReadColumn(rowGroup, column int) (*ColumnData, error) {
	groups := r.pqFile.RowGroups()
	if rowGroup < 0 || rowGroup >= len(groups) {
		return nil, fmt.Errorf("%w: row group %d", ErrColumnOutOfRange, rowGroup)
	}
	chunks := groups[rowGroup].ColumnChunks()
	if column < 0 || column >= len(chunks) {
		return nil, fmt.Errorf("%w: column %d in row group %d", ErrColumnOutOfRange, column, rowGroup)
	}

	chunk := chunks[column]
	data := &ColumnData{
		Name: r.ColumnName(rowGroup, column),
		Type: columnValueType(chunk.Type()),
	}

	pages := chunk.Pages()
	defer func() { _ = pages.Close() }()

	buf := make([]parquet.Value, 256)
	for {
		page, err := pages.ReadPage()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read page: %w", err)
		}

		values := page.Values()
		for {
			n, err := values.ReadValues(buf)
			for _, v := range buf[:n] {
				appendValue(data, v)
			}
			if err != nil {
				if errors.Is(err, io.EOF) {
					break
				}
				return nil, fmt.Errorf("failed to read values: %w", err)
			}
		}
	}

	return data, nil
}

// Close closes the parquet reader and releases associated resources.
//
// Should be called when done reading to avoid resource leaks. It is safe
// to call Close multiple times.
func (r *Reader) Close() error {
	if r.file != nil {
		err := r.file.Close()
		r.file = nil
		return err
	}
	return nil
}

// columnValueType maps a parquet physical type, refined by its logical
// type, onto the profiler's value-type tag. INT64 columns with a
// timestamp logical type profile as timestamps; everything else follows
// the physical type.
func columnValueType(typ parquet.Type) ValueType {
	if lt := typ.LogicalType(); lt != nil && lt.Timestamp != nil {
		return TypeTimestamp
	}

	switch typ.Kind() {
	case parquet.Boolean:
		return TypeBoolean
	case parquet.Int32:
		return TypeInt32
	case parquet.Int64:
		return TypeInt64
	case parquet.Int96:
		return TypeInt96
	case parquet.Float:
		return TypeFloat
	case parquet.Double:
		return TypeDouble
	case parquet.ByteArray:
		return TypeByteArray
	default:
		return TypeFixedLenByteArray
	}
}

// appendValue decodes one parquet value into the typed buffer, translating
// parquet nulls into the sentinel convention.
func appendValue(data *ColumnData, v parquet.Value) {
	switch data.Type {
	case TypeBoolean:
		data.Bools = append(data.Bools, !v.IsNull() && v.Boolean())
	case TypeInt32:
		if v.IsNull() {
			data.Ints = append(data.Ints, math.MinInt32)
		} else {
			data.Ints = append(data.Ints, int64(v.Int32()))
		}
	case TypeInt64, TypeTimestamp:
		if v.IsNull() {
			data.Ints = append(data.Ints, math.MinInt64)
		} else {
			data.Ints = append(data.Ints, v.Int64())
		}
	case TypeFloat:
		if v.IsNull() {
			data.Floats = append(data.Floats, math.NaN())
		} else {
			data.Floats = append(data.Floats, float64(v.Float()))
		}
	case TypeDouble:
		if v.IsNull() {
			data.Floats = append(data.Floats, math.NaN())
		} else {
			data.Floats = append(data.Floats, v.Double())
		}
	case TypeByteArray:
		if v.IsNull() {
			data.Strings = append(data.Strings, "")
		} else {
			data.Strings = append(data.Strings, string(v.ByteArray()))
		}
	case TypeInt96:
		if v.IsNull() {
			data.Bytes = append(data.Bytes, make([]byte, 12))
		} else {
			data.Bytes = append(data.Bytes, int96Bytes(v))
		}
	case TypeFixedLenByteArray:
		if v.IsNull() {
			data.Bytes = append(data.Bytes, nil)
		} else {
			data.Bytes = append(data.Bytes, append([]byte(nil), v.ByteArray()...))
		}
	}
}

// int96Bytes encodes an INT96 value as its 12 raw little-endian bytes.
func int96Bytes(v parquet.Value) []byte {
	i96 := v.Int96()
	b := make([]byte, 12)
	binary.LittleEndian.PutUint32(b[0:4], uint32(i96[0]))
	binary.LittleEndian.PutUint32(b[4:8], uint32(i96[1]))
	binary.LittleEndian.PutUint32(b[8:12], uint32(i96[2]))
	return b
}
