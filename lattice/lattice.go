// Package lattice builds the complete subset lattice of a transaction
// database. Every itemset over the observed items is enumerated, its exact
// support counted, and the frequent ones classified as closed and/or
// maximal. It is exponential in the number of distinct items and serves as
// the reference the pruned miners are checked against.
package lattice

import (
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/armine/config"
	"github.com/timtadh/armine/miners"
	"github.com/timtadh/armine/types/itemset"
)

// Lattice is the subset lattice. V holds every itemset ordered by size then
// contents (V[0] is the empty root). Supports and Classes are parallel to V.
// E is the covering relation: an edge from each itemset to each of its one
// item extensions, as indices into V.
type Lattice struct {
	V            []itemset.Itemset
	E            []Edge
	Supports     []int
	Classes      []miners.Class
	Transactions int
	MinSupport   float64
	index        map[string]int
	kids         [][]int
}

type Edge struct {
	Src, Targ int
}

// Build enumerates the lattice of db and classifies it against minSupport,
// a fraction of the transactions in (0, 1].
func Build(conf *config.Config, db *itemset.Database, minSupport float64) (*Lattice, error) {
	if err := miners.ValidateSupport(minSupport); err != nil {
		return nil, err
	}
	items := db.Items()
	limit := conf.SubsetLimit()
	count, ok := itemset.SubsetCount(len(items))
	if !ok || count > limit {
		return nil, &LatticeTooLargeError{Items: len(items), Subsets: count, Limit: limit}
	}
	counter, err := miners.NewCounter(conf, db)
	if err != nil {
		return nil, err
	}
	errors.Logf("DEBUG", "enumerating %d itemsets over %d items", count, len(items))
	V := itemset.PowerSet(items)
	itemset.Sort(V)
	l := &Lattice{
		V:            V,
		Supports:     make([]int, len(V)),
		Classes:      make([]miners.Class, len(V)),
		Transactions: db.Len(),
		MinSupport:   minSupport,
		index:        make(map[string]int, len(V)),
	}
	for i, s := range V {
		l.index[s.Key()] = i
		l.Supports[i] = counter.Support(s)
	}
	l.cover(items)
	l.classify()
	errors.Logf("INFO", "lattice: %d itemsets, %d edges, %d frequent, %d closed, %d maximal",
		len(l.V), len(l.E), len(l.Frequent()), len(l.Closed()), len(l.Maximal()))
	return l, nil
}

func (l *Lattice) cover(items []int32) {
	l.kids = make([][]int, len(l.V))
	for i, s := range l.V {
		for _, item := range items {
			if s.Has(item) {
				continue
			}
			j := l.index[s.Add(item).Key()]
			l.kids[i] = append(l.kids[i], j)
			l.E = append(l.E, Edge{Src: i, Targ: j})
		}
	}
}

func (l *Lattice) frequent(i int) bool {
	if l.Transactions == 0 {
		return false
	}
	return float64(l.Supports[i])/float64(l.Transactions) >= l.MinSupport
}

// classify only looks at one item extensions. A frequent superset implies a
// frequent child, and a superset with equal support implies a child with
// equal support, so this matches the definitions over all supersets.
func (l *Lattice) classify() {
	for i := range l.V {
		if !l.frequent(i) {
			l.Classes[i] = miners.Rare
			continue
		}
		closed, maximal := true, true
		for _, j := range l.kids[i] {
			if !l.frequent(j) {
				continue
			}
			maximal = false
			if l.Supports[j] == l.Supports[i] {
				closed = false
			}
		}
		switch {
		case closed && maximal:
			l.Classes[i] = miners.ClosedAndMaximal
		case maximal:
			l.Classes[i] = miners.Maximal
		case closed:
			l.Classes[i] = miners.Closed
		default:
			l.Classes[i] = miners.Frequent
		}
	}
}

func (l *Lattice) Index(s itemset.Itemset) (int, bool) {
	i, has := l.index[s.Key()]
	return i, has
}

func (l *Lattice) Support(s itemset.Itemset) (int, bool) {
	i, has := l.index[s.Key()]
	if !has {
		return 0, false
	}
	return l.Supports[i], true
}

func (l *Lattice) Class(s itemset.Itemset) (miners.Class, bool) {
	i, has := l.index[s.Key()]
	if !has {
		return miners.Rare, false
	}
	return l.Classes[i], true
}

// Children are the one item extensions of s.
func (l *Lattice) Children(s itemset.Itemset) []itemset.Itemset {
	i, has := l.index[s.Key()]
	if !has {
		return nil
	}
	kids := make([]itemset.Itemset, 0, len(l.kids[i]))
	for _, j := range l.kids[i] {
		kids = append(kids, l.V[j])
	}
	return kids
}

// Level is every itemset with k items.
func (l *Lattice) Level(k int) []itemset.Itemset {
	level := make([]itemset.Itemset, 0, 10)
	for _, s := range l.V {
		if s.Len() == k {
			level = append(level, s)
		} else if s.Len() > k {
			break
		}
	}
	return level
}

// Levels is the largest itemset size, the number of levels below the root.
func (l *Lattice) Levels() int {
	if len(l.V) == 0 {
		return 0
	}
	return l.V[len(l.V)-1].Len()
}

func (l *Lattice) collect(keep func(miners.Class) bool) []itemset.Itemset {
	sets := make([]itemset.Itemset, 0, 10)
	for i, s := range l.V {
		if s.Len() > 0 && keep(l.Classes[i]) {
			sets = append(sets, s)
		}
	}
	return sets
}

// Frequent lists the non-empty frequent itemsets.
func (l *Lattice) Frequent() []itemset.Itemset {
	return l.collect(miners.Class.IsFrequent)
}

func (l *Lattice) Closed() []itemset.Itemset {
	return l.collect(miners.Class.IsClosed)
}

func (l *Lattice) Maximal() []itemset.Itemset {
	return l.collect(miners.Class.IsMaximal)
}

func (l *Lattice) ClosedAndMaximal() []itemset.Itemset {
	return l.collect(func(c miners.Class) bool { return c == miners.ClosedAndMaximal })
}

// Results are the report records for the non-empty frequent itemsets.
func (l *Lattice) Results() []miners.Result {
	results := make([]miners.Result, 0, 10)
	for i, s := range l.V {
		if s.Len() == 0 || !l.Classes[i].IsFrequent() {
			continue
		}
		results = append(results, miners.Result{
			Items:        s,
			Support:      l.Supports[i],
			Transactions: l.Transactions,
			Class:        l.Classes[i],
		})
	}
	return results
}
