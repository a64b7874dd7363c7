package miners

import (
	"io"
	"sort"
)

import (
	"github.com/timtadh/armine/types/itemset"
)

// Class labels an itemset. Closed and Maximal refine Frequent independently;
// ClosedAndMaximal is both.
type Class int

const (
	Rare Class = iota
	Frequent
	Closed
	Maximal
	ClosedAndMaximal
)

func (c Class) String() string {
	switch c {
	case Rare:
		return "Rare"
	case Frequent:
		return "Frequent"
	case Closed:
		return "Closed"
	case Maximal:
		return "Maximal"
	case ClosedAndMaximal:
		return "Closed and Maximal"
	}
	return "Unknown"
}

func (c Class) IsFrequent() bool {
	return c != Rare
}

func (c Class) IsClosed() bool {
	return c == Closed || c == ClosedAndMaximal
}

func (c Class) IsMaximal() bool {
	return c == Maximal || c == ClosedAndMaximal
}

// Result is one structured result record handed to reporters.
type Result struct {
	Items        itemset.Itemset
	Support      int
	Transactions int
	Class        Class
}

// Percent is the support as a percentage of the transactions.
func (r Result) Percent() float64 {
	if r.Transactions == 0 {
		return 0
	}
	return float64(r.Support) / float64(r.Transactions) * 100
}

func (r Result) String() string {
	return r.Items.String() + " " + r.Class.String()
}

// SortResults orders by itemset size and then contents.
func SortResults(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		return itemset.Compare(results[i].Items, results[j].Items) < 0
	})
}

type Reporter interface {
	Report(Result) error
	Close() error
}

// Miner is one mining mode. It loads with its own options, mines the
// database and hands every result to the reporter.
type Miner interface {
	LoadOptions() itemset.LoadOptions
	Mine(*itemset.Database, Reporter) error
	Formatter() Formatter
	Close() error
}

// Formatter writes one result as one report line.
type Formatter interface {
	FileName() string
	Format(w io.Writer, r Result) error
}
