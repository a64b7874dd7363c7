// Package supports holds support tables: itemset -> support count maps built
// fresh for each mining run.
package supports

import (
	"sync"
)

import (
	"github.com/timtadh/data-structures/errors"
	"github.com/timtadh/fs2/bptree"
	"github.com/timtadh/fs2/fmap"
)

import (
	"github.com/timtadh/armine/stores/intint"
	"github.com/timtadh/armine/types/itemset"
)

type Table interface {
	Put(s itemset.Itemset, support int) error
	Get(s itemset.Itemset) (support int, has bool, err error)
	Has(s itemset.Itemset) (bool, error)
	// Do visits every entry ordered by size then by contents.
	Do(do func(s itemset.Itemset, support int) error) error
	Size() int
	Close() error
	Delete() error
}

// Memory is a Table kept in a Go map.
type Memory struct {
	supports map[string]int
}

func NewMemory() *Memory {
	return &Memory{supports: make(map[string]int)}
}

func (m *Memory) Put(s itemset.Itemset, support int) error {
	m.supports[s.Key()] = support
	return nil
}

func (m *Memory) Get(s itemset.Itemset) (int, bool, error) {
	support, has := m.supports[s.Key()]
	return support, has, nil
}

func (m *Memory) Has(s itemset.Itemset) (bool, error) {
	_, has := m.supports[s.Key()]
	return has, nil
}

func (m *Memory) Do(do func(itemset.Itemset, int) error) error {
	sets := make([]itemset.Itemset, 0, len(m.supports))
	for key := range m.supports {
		sets = append(sets, itemset.FromLabel([]byte(key)))
	}
	itemset.Sort(sets)
	for _, s := range sets {
		if err := do(s, m.supports[s.Key()]); err != nil {
			return err
		}
	}
	return nil
}

func (m *Memory) Size() int {
	return len(m.supports)
}

func (m *Memory) Close() error {
	return nil
}

func (m *Memory) Delete() error {
	m.supports = make(map[string]int)
	return nil
}

// BpTree is a Table stored in an fs2 B+tree keyed by itemset.Label. Labels
// start with the big endian size, so for positive items the tree's byte
// order is the same size-then-contents order Do promises.
type BpTree struct {
	bf    *fmap.BlockFile
	bpt   *bptree.BpTree
	mutex sync.Mutex
}

func AnonBpTree() (*BpTree, error) {
	bf, err := fmap.Anonymous(fmap.BLOCKSIZE)
	if err != nil {
		return nil, err
	}
	return newBpTree(bf)
}

func NewBpTree(path string) (*BpTree, error) {
	bf, err := fmap.CreateBlockFile(path)
	if err != nil {
		return nil, err
	}
	return newBpTree(bf)
}

func newBpTree(bf *fmap.BlockFile) (*BpTree, error) {
	bpt, err := bptree.New(bf, -1, 4)
	if err != nil {
		return nil, err
	}
	b := &BpTree{
		bf:  bf,
		bpt: bpt,
	}
	return b, nil
}

func (b *BpTree) Put(s itemset.Itemset, support int) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	key := s.Label()
	if has, err := b.bpt.Has(key); err != nil {
		return err
	} else if has {
		err := b.bpt.Remove(key, func([]byte) bool { return true })
		if err != nil {
			return err
		}
	}
	return b.bpt.Add(key, intint.SerializeInt32(int32(support)))
}

func (b *BpTree) Get(s itemset.Itemset) (support int, has bool, err error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	kvi, err := b.bpt.Find(s.Label())
	if err != nil {
		return 0, false, err
	}
	var v []byte
	_, v, err, kvi = kvi()
	if err != nil {
		return 0, false, err
	}
	if kvi == nil {
		return 0, false, nil
	}
	return int(intint.DeserializeInt32(v)), true, nil
}

func (b *BpTree) Has(s itemset.Itemset) (bool, error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.bpt.Has(s.Label())
}

func (b *BpTree) Do(do func(itemset.Itemset, int) error) error {
	b.mutex.Lock()
	kvi, err := b.bpt.Iterate()
	if err != nil {
		b.mutex.Unlock()
		return err
	}
	type entry struct {
		s       itemset.Itemset
		support int
	}
	entries := make([]entry, 0, b.bpt.Size())
	var k, v []byte
	for k, v, err, kvi = kvi(); kvi != nil; k, v, err, kvi = kvi() {
		entries = append(entries, entry{itemset.FromLabel(k), int(intint.DeserializeInt32(v))})
	}
	b.mutex.Unlock()
	if err != nil {
		return errors.Errorf("could not iterate the support table: %v", err)
	}
	for _, e := range entries {
		if err := do(e.s, e.support); err != nil {
			return err
		}
	}
	return nil
}

func (b *BpTree) Size() int {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.bpt.Size()
}

func (b *BpTree) Close() error {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.bf.Close()
}

func (b *BpTree) Delete() error {
	err := b.Close()
	if err != nil {
		return err
	}
	if b.bf.Path() != "" {
		return b.bf.Remove()
	}
	return nil
}
