package profile

import "sort"

// Entry is one value in a top-K list.
type Entry struct {
	Value string `json:"value"`
	Count uint64 `json:"count"`
}

// topK is a fixed-capacity list of the highest-count values offered to it.
//
// Replacement policy: once full, an incoming value evicts the current
// minimum-count entry only if its count is strictly greater; on a tie the
// incumbent stays. Offering values in first-seen order therefore makes
// earliest-seen values win ties.
type topK struct {
	k       int
	entries []Entry
}

func newTopK(k int) *topK {
	return &topK{k: k}
}

// offer inserts or rejects a value according to the replacement policy.
func (t *topK) offer(value string, count uint64) {
	if t.k <= 0 {
		return
	}
	if len(t.entries) < t.k {
		t.entries = append(t.entries, Entry{Value: value, Count: count})
		return
	}

	// Locate the entry to displace: the minimum count, preferring the
	// latest-seen among equals so earlier entries survive longer.
	minIdx := 0
	for i := 1; i < len(t.entries); i++ {
		if t.entries[i].Count <= t.entries[minIdx].Count {
			minIdx = i
		}
	}
	if count > t.entries[minIdx].Count {
		t.entries[minIdx] = Entry{Value: value, Count: count}
	}
}

// sorted returns the entries in descending count order. The sort is stable
// so equal counts keep their offer (first-seen) order.
func (t *topK) sorted() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// topEntries folds a counted value set, visited in first-seen order, into
// a bounded descending-count list.
func topEntries(order []string, counts map[string]uint64, k int) []Entry {
	t := newTopK(k)
	for _, v := range order {
		t.offer(v, counts[v])
	}
	return t.sorted()
}
