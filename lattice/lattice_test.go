package lattice

import "testing"
import "github.com/stretchr/testify/assert"

import (
	"errors"
)

import (
	"github.com/timtadh/armine/config"
	"github.com/timtadh/armine/miners"
	"github.com/timtadh/armine/reporters"
	"github.com/timtadh/armine/types/itemset"
)

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

func build(t *assert.Assertions, conf *config.Config, txs [][]int32, minSupport float64) *Lattice {
	l, err := Build(conf, itemset.FromInts("test", txs), minSupport)
	t.Nil(err)
	t.NotNil(l)
	return l
}

func strs(sets []itemset.Itemset) []string {
	s := make([]string, 0, len(sets))
	for _, set := range sets {
		s = append(s, set.String())
	}
	return s
}

func TestSingletonsOnly(x *testing.T) {
	t := assert.New(x)
	l := build(t, &config.Config{}, small, .6)
	t.Len(l.V, 8)
	t.Equal([]string{"{1}", "{2}", "{3}"}, strs(l.Frequent()))
	t.Equal([]string{"{1}", "{2}", "{3}"}, strs(l.Closed()))
	t.Equal([]string{"{1}", "{2}", "{3}"}, strs(l.Maximal()))
	t.Equal([]string{"{1}", "{2}", "{3}"}, strs(l.ClosedAndMaximal()))
	for _, c := range []struct {
		s       itemset.Itemset
		support int
	}{
		{itemset.New(1), 4},
		{itemset.New(2), 3},
		{itemset.New(3), 3},
		{itemset.New(1, 2), 2},
		{itemset.New(1, 3), 2},
		{itemset.New(2, 3), 2},
		{itemset.New(1, 2, 3), 1},
		{itemset.New(), 5},
	} {
		support, has := l.Support(c.s)
		t.True(has)
		t.Equal(c.support, support, "%v", c.s)
	}
	class, _ := l.Class(itemset.New(1, 2))
	t.Equal(miners.Rare, class)
	class, _ = l.Class(itemset.New(2))
	t.Equal(miners.ClosedAndMaximal, class)

	results := l.Results()
	t.Len(results, 3)
	t.Equal(4, results[0].Support)
	t.Equal(5, results[0].Transactions)
}

func TestLevelsAndCover(x *testing.T) {
	t := assert.New(x)
	l := build(t, &config.Config{}, small, .6)
	t.Equal(3, l.Levels())
	t.Equal([]string{"{}"}, strs(l.Level(0)))
	t.Equal([]string{"{1, 2}", "{1, 3}", "{2, 3}"}, strs(l.Level(2)))
	t.Equal(12, len(l.E))
	t.Equal([]string{"{1, 2}", "{1, 3}"}, strs(l.Children(itemset.New(1))))
	t.Len(l.Children(itemset.New(1, 2, 3)), 0)
	t.Nil(l.Children(itemset.New(9)))
	for _, e := range l.E {
		src, targ := l.V[e.Src], l.V[e.Targ]
		t.Equal(src.Len()+1, targ.Len())
		t.True(src.ProperSubsetOf(targ))
	}
}

func bruteSupport(txs [][]int32, s itemset.Itemset) int {
	count := 0
	for _, tx := range txs {
		if s.SubsetOf(itemset.New(tx...)) {
			count++
		}
	}
	return count
}

func TestSupportsMatchBruteForce(x *testing.T) {
	t := assert.New(x)
	for _, vertical := range []bool{false, true} {
		l := build(t, &config.Config{Vertical: vertical}, shop, .2)
		t.Len(l.V, 32)
		for i, s := range l.V {
			t.Equal(bruteSupport(shop, s), l.Supports[i], "%v vertical=%v", s, vertical)
		}
	}
}

func TestClassificationDefinitions(x *testing.T) {
	t := assert.New(x)
	for _, minSupport := range []float64{.1, .2, .3, .5, .7, 1} {
		l := build(t, &config.Config{}, shop, minSupport)
		for i, s := range l.V {
			frequent := float64(l.Supports[i])/float64(l.Transactions) >= minSupport
			t.Equal(frequent, l.Classes[i].IsFrequent(), "%v", s)
			if !frequent {
				continue
			}
			closed, maximal := true, true
			for j, sup := range l.V {
				if !s.ProperSubsetOf(sup) || !l.Classes[j].IsFrequent() {
					continue
				}
				maximal = false
				if l.Supports[j] == l.Supports[i] {
					closed = false
				}
			}
			t.Equal(closed, l.Classes[i].IsClosed(), "closed %v at %v", s, minSupport)
			t.Equal(maximal, l.Classes[i].IsMaximal(), "maximal %v at %v", s, minSupport)
		}
		cm := make(map[string]bool)
		for _, s := range l.ClosedAndMaximal() {
			cm[s.Key()] = true
		}
		closed := make(map[string]bool)
		for _, s := range l.Closed() {
			closed[s.Key()] = true
		}
		for _, s := range l.Maximal() {
			t.Equal(closed[s.Key()], cm[s.Key()], "%v", s)
		}
		for key := range cm {
			t.True(closed[key])
		}
	}
}

func TestShopClasses(x *testing.T) {
	t := assert.New(x)
	l := build(t, &config.Config{}, shop, 2.0/9.0)
	t.Equal([]string{
		"{1}", "{2}", "{3}", "{4}", "{5}",
		"{1, 2}", "{1, 3}", "{1, 5}", "{2, 3}", "{2, 4}", "{2, 5}",
		"{1, 2, 3}", "{1, 2, 5}",
	}, strs(l.Frequent()))
	t.Equal([]string{"{2, 4}", "{1, 2, 3}", "{1, 2, 5}"}, strs(l.Maximal()))
	t.Equal([]string{"{2, 4}", "{1, 2, 3}", "{1, 2, 5}"}, strs(l.ClosedAndMaximal()))
	class, _ := l.Class(itemset.New(2))
	t.Equal(miners.Closed, class)
	class, _ = l.Class(itemset.New(5))
	t.Equal(miners.Frequent, class)
}

func TestTooLarge(x *testing.T) {
	t := assert.New(x)
	wide := [][]int32{make([]int32, 0, 21)}
	for i := int32(1); i <= 21; i++ {
		wide[0] = append(wide[0], i)
	}
	l, err := Build(&config.Config{}, itemset.FromInts("wide", wide), .5)
	t.Nil(l)
	var tooLarge *LatticeTooLargeError
	t.True(errors.As(err, &tooLarge))
	t.Equal(21, tooLarge.Items)
	t.Equal(int64(1<<21), tooLarge.Subsets)
	t.Equal(int64(config.DefaultMaxSubsets), tooLarge.Limit)

	_, err = Build(&config.Config{MaxSubsets: 4}, itemset.FromInts("small", small), .5)
	t.True(errors.As(err, &tooLarge))
	t.Equal(int64(8), tooLarge.Subsets)
}

func TestInvalidSupport(x *testing.T) {
	t := assert.New(x)
	_, err := Build(&config.Config{}, itemset.FromInts("small", small), 0)
	var invalid *miners.InvalidSupportFraction
	t.True(errors.As(err, &invalid))
}

func TestEmptyDatabase(x *testing.T) {
	t := assert.New(x)
	l := build(t, &config.Config{}, nil, .5)
	t.Len(l.V, 1)
	t.Len(l.Frequent(), 0)
	t.Len(l.Results(), 0)
}

func TestMiner(x *testing.T) {
	t := assert.New(x)
	m := NewMiner(&config.Config{Support: .6})
	rptr := &reporters.Collector{}
	t.Nil(m.Mine(itemset.FromInts("small", small), rptr))
	t.Len(rptr.Results, 3)
	t.Equal(miners.ClosedAndMaximal, rptr.Results[2].Class)
	t.NotNil(m.Lattice)
	t.Equal("lattice.txt", m.Formatter().FileName())
	t.False(m.LoadOptions().SkipComments)
	t.Nil(m.Close())
}
