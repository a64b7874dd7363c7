// Package apriori finds the minimal rare itemsets of a database with a level
// wise search. Frequent k-itemsets are joined into (k+1)-candidates, the
// candidates are counted in one pass over the transactions, and those below
// the minimum support are sunk into a rare candidate table instead of being
// extended. The minimal rare itemsets are the table entries with no proper
// subset in the table.
package apriori

import (
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/armine/config"
	"github.com/timtadh/armine/miners"
	"github.com/timtadh/armine/types/itemset"
)

type RareSet struct {
	// Itemsets are the minimal rare itemsets ordered by size then contents.
	Itemsets     []miners.Result
	Threshold    int
	Transactions int
	// Levels is the number of levels the search visited.
	Levels     int
	candidates []miners.Result
	frequent   []miners.Result
}

// Candidates is the whole rare candidate table, minimal or not.
func (r *RareSet) Candidates() []miners.Result {
	return append([]miners.Result(nil), r.candidates...)
}

// Frequent lists every frequent itemset the search confirmed on its way.
func (r *RareSet) Frequent() []miners.Result {
	return append([]miners.Result(nil), r.frequent...)
}

// Mine runs the level wise search with the absolute threshold
// ceil(minSupport * N).
func Mine(conf *config.Config, db *itemset.Database, minSupport float64) (r *RareSet, err error) {
	if err := miners.ValidateSupport(minSupport); err != nil {
		return nil, err
	}
	table, err := conf.SupportTable("rare-candidates")
	if err != nil {
		return nil, err
	}
	defer func() {
		if derr := table.Delete(); derr != nil && err == nil {
			err = derr
		}
	}()
	n := db.Len()
	r = &RareSet{
		Threshold:    miners.AbsoluteSupport(minSupport, n),
		Transactions: n,
	}

	level := make([]itemset.Itemset, 0, 10)
	for _, item := range db.Items() {
		s := itemset.New(item)
		support := db.Frequency(item)
		if support >= r.Threshold {
			level = append(level, s)
			r.frequent = append(r.frequent, r.result(s, support, miners.Frequent))
		} else if err := table.Put(s, support); err != nil {
			return nil, err
		}
	}
	r.Levels = 1
	errors.Logf("DEBUG", "level 1: %d items, %d frequent, threshold %d", len(db.Items()), len(level), r.Threshold)

	for k := 1; ; k++ {
		candidates := join(level, k)
		if len(candidates) == 0 {
			break
		}
		r.Levels = k + 1
		counts := count(db, candidates)
		level = make([]itemset.Itemset, 0, len(candidates))
		for i, c := range candidates {
			if counts[i] >= r.Threshold {
				level = append(level, c)
				r.frequent = append(r.frequent, r.result(c, counts[i], miners.Frequent))
			} else if err := table.Put(c, counts[i]); err != nil {
				return nil, err
			}
		}
		errors.Logf("DEBUG", "level %d: %d candidates, %d frequent", k+1, len(candidates), len(level))
	}

	err = table.Do(func(s itemset.Itemset, support int) error {
		rare := r.result(s, support, miners.Rare)
		r.candidates = append(r.candidates, rare)
		for _, sub := range s.ProperSubsets() {
			if has, err := table.Has(sub); err != nil {
				return err
			} else if has {
				return nil
			}
		}
		r.Itemsets = append(r.Itemsets, rare)
		return nil
	})
	if err != nil {
		return nil, err
	}
	miners.SortResults(r.frequent)
	errors.Logf("INFO", "rare: %d candidates, %d minimal rare itemsets below support %d",
		len(r.candidates), len(r.Itemsets), r.Threshold)
	return r, nil
}

func (r *RareSet) result(s itemset.Itemset, support int, class miners.Class) miners.Result {
	return miners.Result{Items: s, Support: support, Transactions: r.Transactions, Class: class}
}

// join builds the (k+1)-candidates from the sorted frequent k-itemsets. Two
// itemsets sharing their first k-1 items are joined, and the join is kept
// only when every k-subset of it is frequent. For k = 1 the shared prefix is
// empty so this is every pair of frequent items.
func join(level []itemset.Itemset, k int) []itemset.Itemset {
	frequent := make(map[string]bool, len(level))
	for _, s := range level {
		frequent[s.Key()] = true
	}
	candidates := make([]itemset.Itemset, 0, 10)
	for i := 0; i < len(level); i++ {
		for j := i + 1; j < len(level); j++ {
			a, b := level[i], level[j]
			if !a.SharesPrefix(b, k-1) {
				break
			}
			c := a.Add(b.Last())
			if allFrequent(c, frequent) {
				candidates = append(candidates, c)
			}
		}
	}
	return candidates
}

func allFrequent(c itemset.Itemset, frequent map[string]bool) bool {
	for _, p := range c.Parents() {
		if !frequent[p.Key()] {
			return false
		}
	}
	return true
}

// count makes one pass over the transactions, testing every candidate
// against each with a merge scan.
func count(db *itemset.Database, candidates []itemset.Itemset) []int {
	counts := make([]int, len(candidates))
	for t := 0; t < db.Len(); t++ {
		tx := db.Transaction(t)
		for i, c := range candidates {
			if c.SubsetOf(tx) {
				counts[i]++
			}
		}
	}
	return counts
}
