package itemset

// PowerSet enumerates every subset of items, the empty set included, by
// repeated doubling: each item is added to a copy of every subset collected
// so far. The result has 2^len(items) entries in doubling order; callers
// that need the size/lexicographic order should Sort it.
//
// items must be distinct. Callers bound len(items) with SubsetCount first.
func PowerSet(items []int32) []Itemset {
	sets := make([]Itemset, 1, 1<<uint(len(items)))
	for _, item := range items {
		cur := len(sets)
		for i := 0; i < cur; i++ {
			sets = append(sets, sets[i].Add(item))
		}
	}
	return sets
}

// Subsets is the power set of s.
func (s Itemset) Subsets() []Itemset {
	return PowerSet(s.items)
}

// ProperSubsets is every non-empty subset of s other than s itself.
func (s Itemset) ProperSubsets() []Itemset {
	all := s.Subsets()
	subs := make([]Itemset, 0, len(all))
	for _, sub := range all {
		if sub.Len() > 0 && sub.Len() < s.Len() {
			subs = append(subs, sub)
		}
	}
	return subs
}

// SubsetCount is 2^n, with ok false when that does not fit in an int64.
func SubsetCount(n int) (count int64, ok bool) {
	if n < 0 || n > 62 {
		return 0, false
	}
	return int64(1) << uint(n), true
}
