package apriori

import "testing"
import "github.com/stretchr/testify/assert"

import (
	"errors"
	"io/ioutil"
	"os"
)

import (
	"github.com/timtadh/armine/config"
	"github.com/timtadh/armine/lattice"
	"github.com/timtadh/armine/miners"
	"github.com/timtadh/armine/reporters"
	"github.com/timtadh/armine/types/itemset"
)

var pairs = [][]int32{{1, 2}, {1, 3}, {2, 3}, {1, 2, 3}}

var small = [][]int32{{1, 2, 3}, {1, 2}, {1, 3}, {2, 3}, {1}}

var shop = [][]int32{
	{1, 2, 5},
	{2, 4},
	{2, 3},
	{1, 2, 4},
	{1, 3},
	{2, 3},
	{1, 3},
	{1, 2, 3, 5},
	{1, 2, 3},
}

func mine(t *assert.Assertions, conf *config.Config, txs [][]int32, minSupport float64) *RareSet {
	r, err := Mine(conf, itemset.FromInts("test", txs), minSupport)
	t.Nil(err)
	t.NotNil(r)
	return r
}

func labels(results []miners.Result) []string {
	s := make([]string, 0, len(results))
	for _, r := range results {
		s = append(s, r.Items.Spaced())
	}
	return s
}

func TestNoRareBelowTheTriple(x *testing.T) {
	t := assert.New(x)
	r := mine(t, &config.Config{}, pairs, .5)
	t.Equal(2, r.Threshold)
	t.Equal(4, r.Transactions)
	t.Equal(3, r.Levels)
	t.Equal([]string{"1", "2", "3", "1 2", "1 3", "2 3"}, labels(r.Frequent()))
	// {1,2,3} is rare with every proper subset frequent
	t.Equal([]string{"1 2 3"}, labels(r.Itemsets))
	t.Equal(1, r.Itemsets[0].Support)
	t.Equal(miners.Rare, r.Itemsets[0].Class)
}

func TestRarePairs(x *testing.T) {
	t := assert.New(x)
	r := mine(t, &config.Config{}, small, .6)
	t.Equal(3, r.Threshold)
	t.Equal([]string{"1 2", "1 3", "2 3"}, labels(r.Itemsets))
	for _, rare := range r.Itemsets {
		t.Equal(2, rare.Support)
	}
	t.Equal([]string{"1", "2", "3"}, labels(r.Frequent()))
}

func TestRareSingletons(x *testing.T) {
	t := assert.New(x)
	r := mine(t, &config.Config{}, shop, .3)
	t.Equal(3, r.Threshold)
	t.Equal([]string{"4", "5", "1 2 3"}, labels(r.Itemsets))
	t.Equal([]int{2, 2, 2}, []int{r.Itemsets[0].Support, r.Itemsets[1].Support, r.Itemsets[2].Support})
	t.Equal(labels(r.Itemsets), labels(r.Candidates()))
}

func TestMinimality(x *testing.T) {
	t := assert.New(x)
	for _, minSupport := range []float64{.1, .2, .3, .5, .7, 1} {
		r := mine(t, &config.Config{}, shop, minSupport)
		table := make(map[string]bool)
		for _, c := range r.Candidates() {
			table[c.Items.Key()] = true
			t.True(c.Support < r.Threshold)
		}
		for _, rare := range r.Itemsets {
			t.True(table[rare.Items.Key()])
			for _, sub := range rare.Items.ProperSubsets() {
				t.False(table[sub.Key()], "%v has rare subset %v", rare.Items, sub)
			}
		}
	}
}

func TestAgreesWithLattice(x *testing.T) {
	t := assert.New(x)
	for _, txs := range [][][]int32{pairs, small, shop} {
		db := itemset.FromInts("test", txs)
		for _, minSupport := range []float64{.1, .2, .3, .5, .6, .7, 1} {
			r, err := Mine(&config.Config{}, db, minSupport)
			t.Nil(err)
			l, err := lattice.Build(&config.Config{}, db, minSupport)
			t.Nil(err)

			frequent := make([]string, 0, 10)
			for _, s := range l.Frequent() {
				frequent = append(frequent, s.Spaced())
			}
			t.Equal(frequent, labels(r.Frequent()), "support %v", minSupport)

			minimal := make([]string, 0, 10)
			for i, s := range l.V {
				if s.Empty() || l.Classes[i].IsFrequent() {
					continue
				}
				all := true
				for _, p := range s.Parents() {
					if c, _ := l.Class(p); !p.Empty() && !c.IsFrequent() {
						all = false
					}
				}
				if all {
					minimal = append(minimal, s.Spaced())
				}
			}
			t.Equal(minimal, labels(r.Itemsets), "support %v", minSupport)
		}
	}
}

func TestCachedTable(x *testing.T) {
	t := assert.New(x)
	dir, err := ioutil.TempDir("", "apriori-cache")
	t.Nil(err)
	defer os.RemoveAll(dir)
	cached := mine(t, &config.Config{Cache: dir}, shop, .3)
	memory := mine(t, &config.Config{}, shop, .3)
	t.Equal(labels(memory.Itemsets), labels(cached.Itemsets))
	t.Equal(labels(memory.Candidates()), labels(cached.Candidates()))
	files, err := ioutil.ReadDir(dir)
	t.Nil(err)
	t.Len(files, 0, "the candidate table should be removed")
}

func TestInvalidSupport(x *testing.T) {
	t := assert.New(x)
	_, err := Mine(&config.Config{}, itemset.FromInts("test", small), 1.5)
	var invalid *miners.InvalidSupportFraction
	t.True(errors.As(err, &invalid))
}

func TestEmptyDatabase(x *testing.T) {
	t := assert.New(x)
	r := mine(t, &config.Config{}, nil, .5)
	t.Len(r.Itemsets, 0)
	t.Len(r.Frequent(), 0)
}

func TestMiner(x *testing.T) {
	t := assert.New(x)
	m := NewMiner(&config.Config{Support: .6})
	rptr := &reporters.Collector{}
	t.Nil(m.Mine(itemset.FromInts("small", small), rptr))
	t.Equal([]string{"1 2", "1 3", "2 3"}, labels(rptr.Results))
	t.True(m.LoadOptions().SkipComments)
	t.Equal("rare.txt", m.Formatter().FileName())
	t.Nil(m.Close())
}
