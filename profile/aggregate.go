package profile

// Merge folds child profiles into one parent profile using only the
// children's bounded summaries. It never re-reads raw data, which is a
// deliberate accuracy trade-off:
//
//   - the parent numeric mean is the unweighted arithmetic mean of the
//     children's means, not re-weighted by value counts;
//   - modes are not aggregated at all;
//   - parent top-K lists are merged from the children's bounded lists, so
//     a value below every child's cutoff can be missing from the parent
//     even when its true global count would qualify.
//
// The parent adopts the variant of the first non-empty child; children of
// a different variant are skipped. An empty child list yields the zero
// ColumnProfile.
func Merge(children []ColumnProfile) ColumnProfile {
	return MergeWithLimits(children, DefaultLimits())
}

// MergeWithLimits is Merge with explicit top-K capacities for the parent.
func MergeWithLimits(children []ColumnProfile, limits Limits) ColumnProfile {
	kind := KindNone
	for _, c := range children {
		if k := c.Kind(); k != KindNone {
			kind = k
			break
		}
	}

	switch kind {
	case KindTimestamp:
		return ColumnProfile{Timestamp: mergeTimestamps(children)}
	case KindNumeric:
		return ColumnProfile{Numeric: mergeNumerics(children)}
	case KindString:
		return ColumnProfile{String: mergeStrings(children, limits)}
	case KindCategorical:
		return ColumnProfile{Categorical: mergeCategoricals(children, limits)}
	default:
		return ColumnProfile{}
	}
}

func mergeTimestamps(children []ColumnProfile) *TimestampStats {
	merged := &TimestampStats{}
	for _, c := range children {
		child := c.Timestamp
		if child == nil {
			continue
		}
		merged.ValueCount += child.ValueCount
		merged.NullCount += child.NullCount
		if !child.HasData {
			continue
		}
		if !merged.HasData || child.Min < merged.Min {
			merged.Min = child.Min
		}
		if !merged.HasData || child.Max > merged.Max {
			merged.Max = child.Max
		}
		merged.HasData = true
	}
	return merged
}

func mergeNumerics(children []ColumnProfile) *NumericStats {
	merged := &NumericStats{}
	var meanSum float64
	var withData uint64

	for _, c := range children {
		child := c.Numeric
		if child == nil {
			continue
		}
		merged.NullCount += child.NullCount
		if child.ValueCount == 0 {
			continue
		}
		if withData == 0 || child.Min < merged.Min {
			merged.Min = child.Min
		}
		if withData == 0 || child.Max > merged.Max {
			merged.Max = child.Max
		}
		merged.ValueCount += child.ValueCount
		meanSum += child.Mean
		withData++
	}

	if withData > 0 {
		merged.Mean = meanSum / float64(withData)
	}
	// ModeValue/ModeCount stay zero: bounded child summaries cannot be
	// combined into a sound parent mode.
	return merged
}

func mergeStrings(children []ColumnProfile, limits Limits) *StringStats {
	merged := &StringStats{}
	frequent := newCountMerger()
	special := newCountMerger()

	for _, c := range children {
		child := c.String
		if child == nil {
			continue
		}
		merged.NullCount += child.NullCount
		frequent.addAll(child.TopFrequent)
		special.addAll(child.TopSpecial)
		if child.TotalCount == 0 {
			continue
		}
		if merged.TotalCount == 0 || child.MinLen < merged.MinLen {
			merged.MinLen = child.MinLen
		}
		if child.MaxLen > merged.MaxLen {
			merged.MaxLen = child.MaxLen
		}
		merged.TotalLen += child.TotalLen
		merged.TotalCount += child.TotalCount
	}

	merged.TopFrequent = frequent.top(limits.TopFrequent)
	merged.TopSpecial = special.top(limits.TopSpecial)
	return merged
}

func mergeCategoricals(children []ColumnProfile, limits Limits) *CategoricalStats {
	merged := &CategoricalStats{}
	categories := newCountMerger()

	for _, c := range children {
		child := c.Categorical
		if child == nil {
			continue
		}
		categories.addAll(child.TopCategories)
		merged.TotalCount += child.TotalCount
	}

	// Distinct count at aggregate level only sees what the children's
	// bounded lists expose.
	merged.DistinctCategories = uint64(len(categories.order))
	merged.TopCategories = categories.top(limits.TopCategories)
	return merged
}

// countMerger accumulates (value, count) pairs from child top-K lists,
// preserving first-encountered order for deterministic tie-breaking.
type countMerger struct {
	counts map[string]uint64
	order  []string
}

func newCountMerger() *countMerger {
	return &countMerger{counts: make(map[string]uint64)}
}

func (m *countMerger) addAll(entries []Entry) {
	for _, e := range entries {
		if _, seen := m.counts[e.Value]; !seen {
			m.order = append(m.order, e.Value)
		}
		m.counts[e.Value] += e.Count
	}
}

func (m *countMerger) top(k int) []Entry {
	return topEntries(m.order, m.counts, k)
}
