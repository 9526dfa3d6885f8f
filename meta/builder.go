package meta

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vegasq/parqprof/internal/metrics"
	"github.com/vegasq/parqprof/predicate"
	"github.com/vegasq/parqprof/profile"
	"github.com/vegasq/parqprof/reader"
)

// Source is the file access the builder needs: counts, names, column
// types, and typed column buffers.
type Source interface {
	RowGroupCount() int
	ColumnCount(rowGroup int) int
	ColumnName(rowGroup, column int) string
	ColumnType(rowGroup, column int) reader.ValueType
	ReadColumn(rowGroup, column int) (*reader.ColumnData, error)
}

// Builder generates a metadata tree for one file at a time.
//
// Generation is strictly bottom-up: every column of a row group is
// profiled before the row group's summary is merged, and every row group
// is finalized before the file summary. A column that fails to read or
// profile degrades to a zero profile instead of aborting the file.
type Builder struct {
	limits profile.Limits
	log    zerolog.Logger
}

// NewBuilder creates a builder with the given top-K limits.
func NewBuilder(limits profile.Limits, log zerolog.Logger) *Builder {
	return &Builder{limits: limits, log: log}
}

// Build profiles every column of every row group, aggregates bottom-up,
// and runs all registered predicates. The returned tree is complete and
// immutable.
func (b *Builder) Build(src Source, name string) (*FileNode, error) {
	start := time.Now()

	file := &FileNode{
		Name:         name,
		GenerationID: uuid.New(),
		CreatedAt:    time.Now().UTC(),
	}

	for rg := 0; rg < src.RowGroupCount(); rg++ {
		node := &RowGroupNode{Index: rg}
		profiles := make([]profile.ColumnProfile, 0, src.ColumnCount(rg))

		for col := 0; col < src.ColumnCount(rg); col++ {
			p := b.profileColumn(src, rg, col)
			node.Columns = append(node.Columns, &ColumnNode{
				Name:    src.ColumnName(rg, col),
				Profile: p,
			})
			profiles = append(profiles, p)
		}

		node.Summary = profile.MergeWithLimits(profiles, b.limits)
		file.RowGroups = append(file.RowGroups, node)
	}

	summaries := make([]profile.ColumnProfile, 0, len(file.RowGroups))
	for _, rg := range file.RowGroups {
		summaries = append(summaries, rg.Summary)
	}
	file.Summary = profile.MergeWithLimits(summaries, b.limits)

	if err := b.evaluatePredicates(src, file); err != nil {
		return nil, err
	}

	metrics.ProfilesGenerated.Inc()
	metrics.ProfileDuration.Observe(time.Since(start).Seconds())
	b.log.Info().
		Str("file", name).
		Str("generation_id", file.GenerationID.String()).
		Int("row_groups", len(file.RowGroups)).
		Int("columns", file.ColumnCount()).
		Dur("elapsed", time.Since(start)).
		Msg("metadata generated")

	return file, nil
}

// profileColumn reads and profiles one column, degrading to a zero
// profile of the column's routed variant on any failure so sibling
// columns and the tree shape are unaffected.
func (b *Builder) profileColumn(src Source, rg, col int) profile.ColumnProfile {
	data, err := src.ReadColumn(rg, col)
	if err != nil {
		b.log.Warn().Err(err).Int("row_group", rg).Int("column", col).
			Msg("column unreadable, recording zero profile")
		return profile.ZeroProfile(src.ColumnType(rg, col))
	}

	p, err := profile.Profile(data, b.limits)
	if err != nil {
		b.log.Warn().Err(err).Int("row_group", rg).Int("column", col).
			Str("type", data.Type.String()).
			Msg("column unprofilable, recording zero profile")
		return profile.ZeroProfile(data.Type)
	}
	return p
}

// evaluatePredicates runs every registered predicate over the file. The
// pass is all-or-nothing: a matrix allocation failure discards all
// matrices built for this generation.
func (b *Builder) evaluatePredicates(src Source, file *FileNode) error {
	for _, name := range predicate.Names() {
		fn, _ := predicate.Lookup(name)
		matrix, err := predicate.Evaluate(src, fn)
		if err != nil {
			file.Custom = nil
			return fmt.Errorf("predicate %q: %w", name, err)
		}
		file.Custom = append(file.Custom, &CustomItem{Name: name, Result: matrix})
	}
	return nil
}
