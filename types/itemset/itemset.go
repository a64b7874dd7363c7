package itemset

import (
	"encoding/binary"
	"hash/fnv"
	"sort"
)

import (
	"github.com/timtadh/data-structures/types"
)

// Itemset is a sorted, duplicate free set of items. Values are immutable:
// every operation that would change the set returns a new Itemset. The zero
// value is the empty itemset, the root of the lattice.
//
// Itemset implements types.Hashable so it can be stored in the
// data-structures sets and hash tables. The ordering is by size first and
// then lexicographic by contents.
type Itemset struct {
	items []int32
}

// New builds an itemset from items in any order. Repeated items collapse.
func New(items ...int32) Itemset {
	if len(items) == 0 {
		return Itemset{}
	}
	cp := make([]int32, len(items))
	copy(cp, items)
	sort.Slice(cp, func(i, j int) bool { return cp[i] < cp[j] })
	return Itemset{items: dedupe(cp)}
}

func dedupe(sorted []int32) []int32 {
	j := 0
	for i := 1; i < len(sorted); i++ {
		if sorted[i] != sorted[j] {
			j++
			sorted[j] = sorted[i]
		}
	}
	return sorted[:j+1]
}

func (s Itemset) Len() int {
	return len(s.items)
}

func (s Itemset) Empty() bool {
	return len(s.items) == 0
}

func (s Itemset) At(i int) int32 {
	return s.items[i]
}

// Last is the largest item. It panics on the empty itemset.
func (s Itemset) Last() int32 {
	return s.items[len(s.items)-1]
}

// Items returns a copy of the members in ascending order.
func (s Itemset) Items() []int32 {
	cp := make([]int32, len(s.items))
	copy(cp, s.items)
	return cp
}

func (s Itemset) Has(item int32) bool {
	i := sort.Search(len(s.items), func(i int) bool { return s.items[i] >= item })
	return i < len(s.items) && s.items[i] == item
}

// Add returns s with item inserted at its sorted position.
func (s Itemset) Add(item int32) Itemset {
	i := sort.Search(len(s.items), func(i int) bool { return s.items[i] >= item })
	if i < len(s.items) && s.items[i] == item {
		return s
	}
	items := make([]int32, 0, len(s.items)+1)
	items = append(items, s.items[:i]...)
	items = append(items, item)
	items = append(items, s.items[i:]...)
	return Itemset{items: items}
}

// Without returns s minus the item at position i.
func (s Itemset) Without(i int) Itemset {
	if len(s.items) == 1 {
		return Itemset{}
	}
	items := make([]int32, 0, len(s.items)-1)
	items = append(items, s.items[:i]...)
	items = append(items, s.items[i+1:]...)
	return Itemset{items: items}
}

// Parents are the itemsets exactly one item smaller than s.
func (s Itemset) Parents() []Itemset {
	parents := make([]Itemset, 0, len(s.items))
	for i := range s.items {
		parents = append(parents, s.Without(i))
	}
	return parents
}

// SharesPrefix reports whether the first n items of s and o are equal.
func (s Itemset) SharesPrefix(o Itemset, n int) bool {
	if n > len(s.items) || n > len(o.items) {
		return false
	}
	for i := 0; i < n; i++ {
		if s.items[i] != o.items[i] {
			return false
		}
	}
	return true
}

// SubsetOf reports whether every item of s is in o. Both sides are sorted so
// this is a single merge scan, O(|s| + |o|).
func (s Itemset) SubsetOf(o Itemset) bool {
	return containsSorted(o.items, s.items)
}

func (s Itemset) ProperSubsetOf(o Itemset) bool {
	return len(s.items) < len(o.items) && s.SubsetOf(o)
}

func containsSorted(tx, items []int32) bool {
	if len(items) > len(tx) {
		return false
	}
	i, j := 0, 0
	for i < len(tx) && j < len(items) {
		if tx[i] == items[j] {
			i++
			j++
		} else if tx[i] < items[j] {
			i++
		} else {
			return false
		}
	}
	return j == len(items)
}

// Label is the binary encoding of s: a big endian uint32 size followed by
// each item as a big endian uint32.
func (s Itemset) Label() []byte {
	bytes := make([]byte, 4*(len(s.items)+1))
	binary.BigEndian.PutUint32(bytes[0:4], uint32(len(s.items)))
	off := 4
	for _, item := range s.items {
		binary.BigEndian.PutUint32(bytes[off:off+4], uint32(item))
		off += 4
	}
	return bytes
}

// FromLabel decodes a Label. The label is trusted to be well formed.
func FromLabel(label []byte) Itemset {
	size := int(binary.BigEndian.Uint32(label[0:4]))
	if size == 0 {
		return Itemset{}
	}
	items := make([]int32, 0, size)
	off := 4
	for i := 0; i < size; i++ {
		items = append(items, int32(binary.BigEndian.Uint32(label[off:off+4])))
		off += 4
	}
	return Itemset{items: items}
}

// Key is Label as a string, suitable as a Go map key.
func (s Itemset) Key() string {
	return string(s.Label())
}

// Compare orders by size and then lexicographically.
func Compare(a, b Itemset) int {
	if len(a.items) != len(b.items) {
		if len(a.items) < len(b.items) {
			return -1
		}
		return 1
	}
	for i := range a.items {
		if a.items[i] < b.items[i] {
			return -1
		} else if a.items[i] > b.items[i] {
			return 1
		}
	}
	return 0
}

// Sort orders sets in place by Compare.
func Sort(sets []Itemset) {
	sort.Slice(sets, func(i, j int) bool { return Compare(sets[i], sets[j]) < 0 })
}

func (s Itemset) Equals(o types.Equatable) bool {
	b, ok := o.(Itemset)
	if !ok {
		return false
	}
	return Compare(s, b) == 0
}

func (s Itemset) Less(o types.Sortable) bool {
	b, ok := o.(Itemset)
	if !ok {
		return false
	}
	return Compare(s, b) < 0
}

func (s Itemset) Hash() int {
	h := fnv.New64a()
	h.Write(s.Label())
	return int(h.Sum64())
}
