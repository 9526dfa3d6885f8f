// Package predicate evaluates named boolean predicates against every
// (row group, column) cell of a columnar file and records the results in
// a bit matrix.
package predicate

import (
	"fmt"
	"sort"

	"github.com/vegasq/parqprof/reader"
)

// Func is a predicate over one column's decoded values. It must be pure:
// the same buffer always yields the same result.
type Func func(data *reader.ColumnData) bool

// registry holds the built-in predicates. Currently only has_null ships;
// the registry exists so further predicates slot in without new plumbing.
var registry = map[string]Func{
	"has_null": hasNull,
}

// Names returns the registered predicate names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the predicate registered under name.
func Lookup(name string) (Func, bool) {
	fn, ok := registry[name]
	return fn, ok
}

// ColumnSource is the slice of the reader a predicate pass needs.
type ColumnSource interface {
	RowGroupCount() int
	ColumnCount(rowGroup int) int
	ReadColumn(rowGroup, column int) (*reader.ColumnData, error)
}

// Evaluate runs one predicate over every cell of the source, outer loop
// over row groups and inner loop over columns, both in index order. The
// matrix is sized (rowGroupCount, max column count across row groups);
// cells beyond a row group's own column count stay false. An unreadable
// column counts as true for has_null-style predicates, so read errors are
// passed to the predicate as a nil buffer.
func Evaluate(src ColumnSource, fn Func) (*Matrix, error) {
	rowGroups := src.RowGroupCount()
	maxColumns := 0
	for rg := 0; rg < rowGroups; rg++ {
		if n := src.ColumnCount(rg); n > maxColumns {
			maxColumns = n
		}
	}

	matrix, err := NewMatrix(rowGroups, maxColumns)
	if err != nil {
		return nil, fmt.Errorf("predicate matrix: %w", err)
	}

	for rg := 0; rg < rowGroups; rg++ {
		for col := 0; col < src.ColumnCount(rg); col++ {
			data, err := src.ReadColumn(rg, col)
			if err != nil {
				data = nil
			}
			matrix.Set(rg, col, fn(data))
		}
	}

	return matrix, nil
}

// hasNull reports whether a column contains any value matching its type's
// null convention. An empty or unreadable buffer counts as having nulls.
func hasNull(data *reader.ColumnData) bool {
	if data == nil || data.Len() == 0 {
		return true
	}
	for i := 0; i < data.Len(); i++ {
		if data.IsNull(i) {
			return true
		}
	}
	return false
}
