package reporters

import "testing"
import "github.com/stretchr/testify/assert"

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
)

import (
	"github.com/timtadh/armine/config"
	"github.com/timtadh/armine/miners"
	"github.com/timtadh/armine/types/itemset"
)

var results = []miners.Result{
	{Items: itemset.New(1), Support: 4, Transactions: 5, Class: miners.Closed},
	{Items: itemset.New(2), Support: 3, Transactions: 5, Class: miners.Frequent},
	{Items: itemset.New(1, 2), Support: 3, Transactions: 5, Class: miners.ClosedAndMaximal},
	{Items: itemset.New(3), Support: 3, Transactions: 5, Class: miners.Maximal},
}

func report(t *assert.Assertions, rptr miners.Reporter, rs []miners.Result) {
	for _, r := range rs {
		t.Nil(rptr.Report(r))
	}
	t.Nil(rptr.Close())
}

func outputDir(t *assert.Assertions) (*config.Config, func()) {
	dir, err := ioutil.TempDir("", "reporters")
	t.Nil(err)
	return &config.Config{Output: dir}, func() { os.RemoveAll(dir) }
}

func TestChain(x *testing.T) {
	t := assert.New(x)
	a, b := &Collector{}, &Collector{}
	report(t, &Chain{Reporters: []miners.Reporter{a, b}}, results)
	t.Len(a.Results, 4)
	t.Len(b.Results, 4)
	t.True(a.Closed)
	t.True(b.Closed)
}

func TestMaxAndClosed(x *testing.T) {
	t := assert.New(x)
	maxes := &Collector{}
	m, err := NewMax(maxes)
	t.Nil(err)
	report(t, m, results)
	t.Len(maxes.Results, 2)
	t.Equal("{1, 2}", maxes.Results[0].Items.String())
	t.Equal("{3}", maxes.Results[1].Items.String())
	t.True(maxes.Closed)

	closed := &Collector{}
	c, err := NewClosed(closed)
	t.Nil(err)
	report(t, c, results)
	t.Len(closed.Results, 2)
	t.Equal("{1}", closed.Results[0].Items.String())
}

func TestUnique(x *testing.T) {
	t := assert.New(x)
	inner := &Collector{}
	u := NewUnique(inner)
	report(t, u, append(append([]miners.Result{}, results...), results...))
	t.Len(inner.Results, 4)
}

func TestFile(x *testing.T) {
	t := assert.New(x)
	conf, clean := outputDir(t)
	defer clean()
	f, err := NewFile(conf, miners.RareFormat{}, "")
	t.Nil(err)
	report(t, f, results)
	content, err := ioutil.ReadFile(filepath.Join(conf.Output, "rare.txt"))
	t.Nil(err)
	t.Equal("1 #SUP: 4\n2 #SUP: 3\n1 2 #SUP: 3\n3 #SUP: 3\n", string(content))

	f, err = NewFile(conf, miners.GridFormat{}, "grid.txt")
	t.Nil(err)
	report(t, f, results[2:3])
	grid, err := ioutil.ReadFile(filepath.Join(conf.Output, "grid.txt"))
	t.Nil(err)
	t.True(strings.HasPrefix(string(grid), "{1, 2}              #SUP: 3 (60%)"))
}

func TestCount(x *testing.T) {
	t := assert.New(x)
	conf, clean := outputDir(t)
	defer clean()
	c, err := NewCount(conf, "count")
	t.Nil(err)
	report(t, c, results)
	t.Equal(4, c.Count())
	content, err := ioutil.ReadFile(filepath.Join(conf.Output, "count"))
	t.Nil(err)
	t.Equal("4\n", string(content))
}

func TestLog(x *testing.T) {
	t := assert.New(x)
	l := NewLog(miners.FrequentFormat{}, "", "test")
	report(t, l, results)
	t.Equal(4, l.count)
	t.Equal("INFO", l.level)
	t.Nil(l.Report(miners.Result{Items: itemset.New()}))
	t.Equal(4, l.count)
}

func TestTable(x *testing.T) {
	t := assert.New(x)
	var buf bytes.Buffer
	tbl := newTable(&buf, nil, "frequent itemsets")
	report(t, tbl, results)
	out := buf.String()
	t.Contains(out, "{1, 2}")
	t.Contains(out, "60%")
	t.Contains(out, "Closed and Maximal")
	t.Contains(out, "frequent itemsets")
	t.Equal(4, tbl.count)
}

func TestTableFile(x *testing.T) {
	t := assert.New(x)
	conf, clean := outputDir(t)
	defer clean()
	tbl, err := NewTable(conf, "", "table.txt")
	t.Nil(err)
	report(t, tbl, results)
	content, err := ioutil.ReadFile(filepath.Join(conf.Output, "table.txt"))
	t.Nil(err)
	t.Contains(string(content), "{3}")
}

func TestHeapProfile(x *testing.T) {
	t := assert.New(x)
	conf, clean := outputDir(t)
	defer clean()
	path := conf.OutputFile("heap.prof")
	hp, err := NewHeapProfile(path, 2, 1)
	t.Nil(err)
	t.Nil(hp.Report(results[0]))
	t.Nil(hp.Report(results[1]))
	info, err := os.Stat(path)
	t.Nil(err)
	t.Equal(int64(0), info.Size())
	report(t, hp, results[2:])
	info, err = os.Stat(path)
	t.Nil(err)
	t.True(info.Size() > 0)
}
