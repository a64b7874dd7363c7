package itemset

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/armine/stores/intint"
)

// Index is the vertical form of a database: for every item the set of
// transaction ids containing it. The support of an itemset is the size of
// the intersection of its items' tid-sets.
type Index struct {
	db   *Database
	tids map[int32]*bitset.BitSet
}

// NewIndex fills inverted with item -> transaction id pairs and then reads
// it back into one bitset per item. inverted should be empty; the caller
// owns it and may Delete it once NewIndex returns.
func NewIndex(inverted intint.MultiMap, db *Database) (*Index, error) {
	for tx, t := range db.transactions {
		for _, item := range t.items {
			if err := inverted.Add(item, int32(tx)); err != nil {
				return nil, err
			}
		}
	}
	idx := &Index{
		db:   db,
		tids: make(map[int32]*bitset.BitSet),
	}
	err := intint.Do(inverted.Iterate, func(item, tx int32) error {
		b, has := idx.tids[item]
		if !has {
			b = bitset.New(uint(db.Len()))
			idx.tids[item] = b
		}
		b.Set(uint(tx))
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("could not read the inverted index: %v", err)
	}
	errors.Logf("DEBUG", "indexed %d items over %d transactions from %d pairs", len(idx.tids), db.Len(), inverted.Size())
	return idx, nil
}

// Support intersects the tid-sets of the items of s.
func (idx *Index) Support(s Itemset) int {
	if s.Len() == 0 {
		return idx.db.Len()
	}
	first, has := idx.tids[s.items[0]]
	if !has {
		return 0
	}
	if s.Len() == 1 {
		return int(first.Count())
	}
	acc := first.Clone()
	for _, item := range s.items[1:] {
		b, has := idx.tids[item]
		if !has {
			return 0
		}
		acc.InPlaceIntersection(b)
	}
	return int(acc.Count())
}
