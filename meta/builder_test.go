package meta

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vegasq/parqprof/profile"
	"github.com/vegasq/parqprof/reader"
)

// fakeSource serves in-memory row groups of named columns.
type fakeSource struct {
	groups [][]fakeColumn
	broken map[[2]int]bool
}

type fakeColumn struct {
	name string
	data *reader.ColumnData
}

func (f *fakeSource) RowGroupCount() int { return len(f.groups) }

func (f *fakeSource) ColumnCount(rg int) int { return len(f.groups[rg]) }

func (f *fakeSource) ColumnName(rg, col int) string { return f.groups[rg][col].name }

func (f *fakeSource) ColumnType(rg, col int) reader.ValueType { return f.groups[rg][col].data.Type }

func (f *fakeSource) ReadColumn(rg, col int) (*reader.ColumnData, error) {
	if f.broken[[2]int{rg, col}] {
		return nil, errors.New("read failed")
	}
	return f.groups[rg][col].data, nil
}

func newTestSource() *fakeSource {
	return &fakeSource{groups: [][]fakeColumn{
		{
			{name: "v", data: &reader.ColumnData{
				Name: "v", Type: reader.TypeInt64, Ints: []int64{1, 2, 3},
			}},
			{name: "s", data: &reader.ColumnData{
				Name: "s", Type: reader.TypeByteArray, Strings: []string{"a", ""},
			}},
		},
		{
			{name: "v", data: &reader.ColumnData{
				Name: "v", Type: reader.TypeInt64, Ints: []int64{4, 5},
			}},
			{name: "s", data: &reader.ColumnData{
				Name: "s", Type: reader.TypeByteArray, Strings: []string{"b"},
			}},
		},
	}}
}

func TestBuilder_Build(t *testing.T) {
	b := NewBuilder(profile.DefaultLimits(), zerolog.Nop())

	file, err := b.Build(newTestSource(), "events.parquet")
	require.NoError(t, err)

	assert.Equal(t, "events.parquet", file.Name)
	assert.NotEqual(t, uuid.Nil, file.GenerationID)
	assert.False(t, file.CreatedAt.IsZero())
	require.Len(t, file.RowGroups, 2)

	rg0 := file.RowGroups[0]
	require.Len(t, rg0.Columns, 2)
	assert.Equal(t, "v", rg0.Columns[0].Name)
	assert.Equal(t, "s", rg0.Columns[1].Name)

	// Per-column leaves.
	v0 := rg0.Columns[0].Profile
	require.Equal(t, profile.KindNumeric, v0.Kind())
	assert.Equal(t, float64(1), v0.Numeric.Min)
	assert.Equal(t, float64(3), v0.Numeric.Max)
	assert.Equal(t, float64(2), v0.Numeric.Mean)

	s0 := rg0.Columns[1].Profile
	require.Equal(t, profile.KindString, s0.Kind())
	assert.Equal(t, uint64(1), s0.String.TotalCount)
	assert.Equal(t, uint64(1), s0.String.NullCount)

	// Row group summaries adopt the first column's variant.
	require.Equal(t, profile.KindNumeric, rg0.Summary.Kind())
	assert.Equal(t, float64(2), rg0.Summary.Numeric.Mean)
	require.Equal(t, profile.KindNumeric, file.RowGroups[1].Summary.Kind())
	assert.Equal(t, float64(4.5), file.RowGroups[1].Summary.Numeric.Mean)

	// File summary: min/max across row groups, unweighted mean of means.
	require.Equal(t, profile.KindNumeric, file.Summary.Kind())
	assert.Equal(t, float64(1), file.Summary.Numeric.Min)
	assert.Equal(t, float64(5), file.Summary.Numeric.Max)
	assert.Equal(t, float64(3.25), file.Summary.Numeric.Mean)

	assert.Equal(t, 2, file.ColumnCount())
	assert.Equal(t, uint64(7), file.TotalValues())
	assert.Equal(t, uint64(1), file.TotalNulls())
}

func TestBuilder_PredicateMatrices(t *testing.T) {
	b := NewBuilder(profile.DefaultLimits(), zerolog.Nop())

	file, err := b.Build(newTestSource(), "events.parquet")
	require.NoError(t, err)

	require.Len(t, file.Custom, 1)
	assert.Equal(t, "has_null", file.Custom[0].Name)
	assert.Equal(t, "{{0,1},{0,0}}", file.Custom[0].Result.String())
}

// An unreadable column degrades to a zero profile of its own routed
// variant without failing the build or shifting sibling columns. The
// broken column here is the leading INT64 one, so the row group summary
// must stay numeric rather than adopt the string sibling's variant.
func TestBuilder_UnreadableColumn(t *testing.T) {
	src := newTestSource()
	src.broken = map[[2]int]bool{{0, 0}: true}

	b := NewBuilder(profile.DefaultLimits(), zerolog.Nop())
	file, err := b.Build(src, "events.parquet")
	require.NoError(t, err)

	rg0 := file.RowGroups[0]
	require.Len(t, rg0.Columns, 2)
	require.Equal(t, profile.KindNumeric, rg0.Columns[0].Profile.Kind())
	assert.Equal(t, uint64(0), rg0.Columns[0].Profile.Numeric.ValueCount)

	// The sibling column is untouched.
	require.Equal(t, profile.KindString, rg0.Columns[1].Profile.Kind())
	assert.Equal(t, uint64(1), rg0.Columns[1].Profile.String.TotalCount)

	// Row group and file summaries keep the column's variant: the other
	// row group's numeric data still aggregates through.
	require.Equal(t, profile.KindNumeric, rg0.Summary.Kind())
	require.Equal(t, profile.KindNumeric, file.Summary.Kind())
	assert.Equal(t, float64(4), file.Summary.Numeric.Min)
	assert.Equal(t, float64(5), file.Summary.Numeric.Max)
}

func TestBuilder_EmptySource(t *testing.T) {
	b := NewBuilder(profile.DefaultLimits(), zerolog.Nop())

	file, err := b.Build(&fakeSource{}, "empty.parquet")
	require.NoError(t, err)

	assert.Empty(t, file.RowGroups)
	assert.Equal(t, profile.KindNone, file.Summary.Kind())
	assert.Equal(t, uint64(0), file.TotalValues())
}
