// Package meta builds, persists, and exposes the hierarchical metadata
// tree describing a profiled columnar file: file, row group, and column
// nodes each carry a bounded statistical profile, and files additionally
// carry custom predicate result matrices.
package meta

import (
	"time"

	"github.com/google/uuid"

	"github.com/vegasq/parqprof/predicate"
	"github.com/vegasq/parqprof/profile"
)

// FileNode is the root of one file's metadata tree. It owns its row
// groups, its aggregated summary, and the custom predicate matrices;
// children never point back at parents.
type FileNode struct {
	Name         string                `json:"name"`
	GenerationID uuid.UUID             `json:"generation_id"`
	CreatedAt    time.Time             `json:"created_at"`
	RowGroups    []*RowGroupNode       `json:"row_groups"`
	Summary      profile.ColumnProfile `json:"summary"`
	Custom       []*CustomItem         `json:"custom,omitempty"`
}

// RowGroupNode summarizes one row group and owns its column nodes.
type RowGroupNode struct {
	Index   int                   `json:"index"`
	Columns []*ColumnNode         `json:"columns"`
	Summary profile.ColumnProfile `json:"summary"`
}

// ColumnNode is a leaf: one column of one row group.
type ColumnNode struct {
	Name    string                `json:"name"`
	Profile profile.ColumnProfile `json:"profile"`
}

// CustomItem is the result of one named predicate evaluated over every
// (row group, column) cell of the file. The matrix is filled during
// generation and immutable afterwards.
type CustomItem struct {
	Name   string            `json:"name"`
	Result *predicate.Matrix `json:"result"`
}

// ColumnCount returns the widest column count across row groups.
func (f *FileNode) ColumnCount() int {
	max := 0
	for _, rg := range f.RowGroups {
		if n := len(rg.Columns); n > max {
			max = n
		}
	}
	return max
}

// TotalValues sums the non-null value counts of all column profiles.
func (f *FileNode) TotalValues() uint64 {
	var total uint64
	for _, rg := range f.RowGroups {
		for _, col := range rg.Columns {
			total += col.Profile.ValueCount()
		}
	}
	return total
}

// TotalNulls sums the null counts of all column profiles. Categorical
// profiles carry no null count and contribute zero.
func (f *FileNode) TotalNulls() uint64 {
	var total uint64
	for _, rg := range f.RowGroups {
		for _, col := range rg.Columns {
			total += col.Profile.NullCount()
		}
	}
	return total
}
