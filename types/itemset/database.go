package itemset

import (
	"github.com/timtadh/data-structures/errors"
	"github.com/timtadh/data-structures/set"
	"github.com/timtadh/data-structures/types"
)

// Database is an immutable, ordered list of transactions. It is built once
// per run and shared read only by every miner.
type Database struct {
	Name         string
	transactions []Itemset
	universe     *set.SortedSet
	frequencies  map[int32]int
}

func NewDatabase(name string, transactions []Itemset) *Database {
	txs := make([]Itemset, len(transactions))
	copy(txs, transactions)
	db := &Database{
		Name:         name,
		transactions: txs,
		universe:     set.NewSortedSet(10),
		frequencies:  make(map[int32]int),
	}
	for _, tx := range txs {
		for _, item := range tx.items {
			db.frequencies[item]++
			if !db.universe.Has(types.Int32(item)) {
				if err := db.universe.Add(types.Int32(item)); err != nil {
					errors.Logf("ERROR", "could not add item %v to the universe: %v", item, err)
				}
			}
		}
	}
	return db
}

// FromInts builds a database from raw transactions.
func FromInts(name string, transactions [][]int32) *Database {
	txs := make([]Itemset, 0, len(transactions))
	for _, tx := range transactions {
		txs = append(txs, New(tx...))
	}
	return NewDatabase(name, txs)
}

// Len is N, the number of transactions.
func (db *Database) Len() int {
	return len(db.transactions)
}

func (db *Database) Transaction(i int) Itemset {
	return db.transactions[i]
}

func (db *Database) Transactions() []Itemset {
	txs := make([]Itemset, len(db.transactions))
	copy(txs, db.transactions)
	return txs
}

// Items is the distinct item universe in ascending order.
func (db *Database) Items() []int32 {
	items := make([]int32, 0, db.universe.Size())
	for item, next := db.universe.Items()(); next != nil; item, next = next() {
		items = append(items, int32(item.(types.Int32)))
	}
	return items
}

// Frequency is the number of transactions containing item.
func (db *Database) Frequency(item int32) int {
	return db.frequencies[item]
}

// Frequencies returns a copy of the per item frequencies.
func (db *Database) Frequencies() map[int32]int {
	freqs := make(map[int32]int, len(db.frequencies))
	for item, count := range db.frequencies {
		freqs[item] = count
	}
	return freqs
}

func (db *Database) Support(s Itemset) int {
	return Support(db, s)
}
