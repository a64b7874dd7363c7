// Package fptree mines frequent itemsets by taking a prefix tree apart one
// item at a time. Transactions are reordered by descending item frequency,
// stripped of infrequent items and merged into a prefix tree. Each
// elimination step picks the deepest, least frequent leaf item, counts every
// itemset that removing those leaves could have hidden and then detaches
// the leaves. A step is staged in two calls (Mark then Commit) so a caller
// can show the doomed nodes before the tree changes.
//
// A Tree is owned by one caller. Calls into the same Tree must be
// serialized.
package fptree

import (
	"fmt"
	"sort"
	"strings"
)

import (
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/armine/config"
	"github.com/timtadh/armine/miners"
	"github.com/timtadh/armine/stores/supports"
	"github.com/timtadh/armine/types/itemset"
)

// Epsilon is the tolerance used when comparing a support count against the
// fractional minimum support.
const Epsilon = 0.001

type State int

const (
	Built State = iota
	Mark
	Commit
	Finalized
)

func (s State) String() string {
	switch s {
	case Built:
		return "Built"
	case Mark:
		return "Mark"
	case Commit:
		return "Commit"
	case Finalized:
		return "Finalized"
	}
	return "Unknown"
}

type Tree struct {
	root         *Node
	nodes        map[string]*Node
	frequencies  map[int32]int
	counter      itemset.Counter
	memo         supports.Table
	accepted     map[string]miners.Result
	marked       []*Node
	state        State
	minSupport   float64
	maxSubsets   int64
	transactions int
	steps        int
	final        *Step
}

// Path is a removed (or about to be removed) node as shown in a trace.
type Path struct {
	Items   []int32
	Support int
}

// Step is what one ForwardStep call did. Paths are the nodes marked (Mark)
// or detached (Commit). Candidates and Frequent are only filled on Mark:
// every candidate counted and the ones newly accepted. Report is the final
// sorted frequent itemset list and is only set once Finalized.
type Step struct {
	State      State
	Trace      string
	Paths      []Path
	Candidates []miners.Result
	Frequent   []miners.Result
	Report     []miners.Result
}

// Build reorders and prunes the transactions of db and loads them into a new
// tree. The returned tree is in the Built state.
func Build(conf *config.Config, db *itemset.Database, minSupport float64) (*Tree, error) {
	if err := miners.ValidateSupport(minSupport); err != nil {
		return nil, err
	}
	counter, err := miners.NewCounter(conf, db)
	if err != nil {
		return nil, err
	}
	memo, err := conf.SupportTable("tree-candidates")
	if err != nil {
		return nil, err
	}
	t := &Tree{
		root:         &Node{path: []int32{}},
		nodes:        make(map[string]*Node),
		frequencies:  db.Frequencies(),
		counter:      counter,
		memo:         memo,
		accepted:     make(map[string]miners.Result),
		state:        Built,
		minSupport:   minSupport * float64(db.Len()),
		maxSubsets:   conf.SubsetLimit(),
		transactions: db.Len(),
	}
	for _, tx := range db.Transactions() {
		t.insert(t.reorder(tx))
	}
	t.root.support = db.Len()
	errors.Logf("INFO", "prefix tree: %d transactions, %d nodes, min support %v",
		db.Len(), len(t.nodes), t.minSupport)
	return t, nil
}

func (t *Tree) frequent(support int) bool {
	return t.minSupport-float64(support) <= Epsilon
}

// reorder sorts the items of tx by descending global frequency and drops
// the infrequent ones. Equal frequencies keep ascending item order.
func (t *Tree) reorder(tx itemset.Itemset) []int32 {
	items := tx.Items()
	sort.SliceStable(items, func(i, j int) bool {
		return t.frequencies[items[i]] > t.frequencies[items[j]]
	})
	path := items[:0]
	for _, item := range items {
		if t.frequent(t.frequencies[item]) {
			path = append(path, item)
		}
	}
	return path
}

func (t *Tree) insert(path []int32) {
	cur := t.root
	for i := range path {
		key := pathKey(path[:i+1])
		n, has := t.nodes[key]
		if !has {
			n = &Node{
				path:   append([]int32(nil), path[:i+1]...),
				parent: cur,
			}
			cur.children = append(cur.children, n)
			t.nodes[key] = n
		}
		n.support++
		cur = n
	}
}

func (t *Tree) State() State {
	return t.state
}

// Root is the empty path. Its support is the number of transactions.
func (t *Tree) Root() *Node {
	return t.root
}

// Node looks up the node at the given path.
func (t *Tree) Node(path []int32) (*Node, bool) {
	n, has := t.nodes[pathKey(path)]
	return n, has
}

// Nodes lists the nodes still in the tree ordered by depth then path.
func (t *Tree) Nodes() []*Node {
	nodes := make([]*Node, 0, len(t.nodes))
	for _, n := range t.nodes {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].Depth() != nodes[j].Depth() {
			return nodes[i].Depth() < nodes[j].Depth()
		}
		return pathLess(nodes[i].path, nodes[j].path)
	})
	return nodes
}

// Marked lists the nodes a Mark step doomed and the next Commit will detach.
func (t *Tree) Marked() []*Node {
	return append([]*Node(nil), t.marked...)
}

// Frequent lists the itemsets accepted so far in size then content order.
func (t *Tree) Frequent() []miners.Result {
	results := make([]miners.Result, 0, len(t.accepted))
	for _, r := range t.accepted {
		results = append(results, r)
	}
	miners.SortResults(results)
	return results
}

// Steps counts the ForwardStep calls that changed the state.
func (t *Tree) Steps() int {
	return t.steps
}

// Close releases the candidate support table.
func (t *Tree) Close() error {
	if t.memo == nil {
		return nil
	}
	err := t.memo.Delete()
	t.memo = nil
	return err
}

// ForwardStep advances the state machine by one call:
//
//	Built -> Mark -> Commit -> Mark -> ... -> Finalized
//
// Once the tree is empty the next call finalizes. Calls after that return
// the same final report again.
func (t *Tree) ForwardStep() (*Step, error) {
	switch {
	case t.state == Finalized:
		return t.final.copy(), nil
	case t.state == Mark:
		t.steps++
		return t.commit(), nil
	case len(t.nodes) == 0:
		t.steps++
		return t.finalize()
	default:
		step, err := t.mark()
		if err != nil {
			return nil, err
		}
		t.steps++
		return step, nil
	}
}

// victim picks the node whose item goes next: the deepest nodes are
// considered, the one with the least frequent item wins and ties go to the
// smaller item and then the smaller path.
func (t *Tree) victim() *Node {
	maxDepth := 0
	for _, n := range t.nodes {
		if n.Depth() > maxDepth {
			maxDepth = n.Depth()
		}
	}
	var victim *Node
	for _, n := range t.nodes {
		if n.Depth() != maxDepth {
			continue
		}
		if victim == nil || t.before(n, victim) {
			victim = n
		}
	}
	return victim
}

func (t *Tree) before(a, b *Node) bool {
	fa, fb := t.frequencies[a.Item()], t.frequencies[b.Item()]
	if fa != fb {
		return fa < fb
	}
	if a.Item() != b.Item() {
		return a.Item() < b.Item()
	}
	return pathLess(a.path, b.path)
}

func (t *Tree) mark() (*Step, error) {
	item := t.victim().Item()
	doomed := make([]*Node, 0, 10)
	for _, n := range t.nodes {
		if n.Item() == item && len(n.children) == 0 {
			doomed = append(doomed, n)
		}
	}
	sort.Slice(doomed, func(i, j int) bool {
		return pathLess(doomed[i].path, doomed[j].path)
	})
	for _, n := range doomed {
		prefix := len(n.path) - 1
		if count, ok := itemset.SubsetCount(prefix); !ok || count > t.maxSubsets {
			return nil, &PrefixTooLongError{Item: item, Prefix: prefix, Limit: t.maxSubsets}
		}
	}
	step := &Step{State: Mark}
	seen := make(map[string]bool)
	accepted := make(map[string]miners.Result)
	for _, n := range doomed {
		step.Paths = append(step.Paths, Path{Items: n.Path(), Support: n.support})
		for _, sub := range itemset.PowerSet(n.path[:len(n.path)-1]) {
			candidate := sub.Add(item)
			if seen[candidate.Key()] {
				continue
			}
			seen[candidate.Key()] = true
			support, err := t.support(candidate)
			if err != nil {
				return nil, err
			}
			r := miners.Result{
				Items:        candidate,
				Support:      support,
				Transactions: t.transactions,
				Class:        miners.Rare,
			}
			if t.frequent(support) {
				r.Class = miners.Frequent
				if _, has := t.accepted[candidate.Key()]; !has {
					accepted[candidate.Key()] = r
					step.Frequent = append(step.Frequent, r)
				}
			}
			step.Candidates = append(step.Candidates, r)
		}
	}
	for key, r := range accepted {
		t.accepted[key] = r
	}
	for _, n := range doomed {
		n.marked = true
	}
	miners.SortResults(step.Candidates)
	miners.SortResults(step.Frequent)
	step.Trace = markTrace(step)
	t.marked = doomed
	t.state = Mark
	errors.Logf("DEBUG", "mark item %d: %d nodes, %d candidates, %d new frequent",
		item, len(doomed), len(step.Candidates), len(step.Frequent))
	return step, nil
}

func (t *Tree) support(s itemset.Itemset) (int, error) {
	if support, has, err := t.memo.Get(s); err != nil {
		return 0, err
	} else if has {
		return support, nil
	}
	support := t.counter.Support(s)
	if err := t.memo.Put(s, support); err != nil {
		return 0, err
	}
	return support, nil
}

func (t *Tree) commit() *Step {
	step := &Step{State: Commit}
	for _, n := range t.marked {
		step.Paths = append(step.Paths, Path{Items: n.Path(), Support: n.support})
		n.detach()
		n.marked = false
		delete(t.nodes, pathKey(n.path))
	}
	t.marked = nil
	t.state = Commit
	var b strings.Builder
	b.WriteString("Removed:\n")
	for _, p := range step.Paths {
		fmt.Fprintf(&b, "%v\n", itemset.FormatPath(p.Items))
	}
	step.Trace = b.String()
	errors.Logf("DEBUG", "commit: %d nodes removed, %d left", len(step.Paths), len(t.nodes))
	return step
}

func (t *Tree) finalize() (*Step, error) {
	report := t.Frequent()
	var b strings.Builder
	b.WriteString("Frequent itemsets:\n")
	for _, r := range report {
		fmt.Fprintf(&b, "%v #SUP: %d\n", r.Items, r.Support)
	}
	t.final = &Step{
		State:  Finalized,
		Trace:  b.String(),
		Report: report,
	}
	t.state = Finalized
	errors.Logf("INFO", "prefix tree finalized after %d steps: %d frequent itemsets", t.steps, len(report))
	return t.final.copy(), t.Close()
}

func markTrace(step *Step) string {
	var b strings.Builder
	b.WriteString("Paths:\n")
	for _, p := range step.Paths {
		fmt.Fprintf(&b, "%v #SUP: %d\n", itemset.FormatPath(p.Items), p.Support)
	}
	b.WriteString("Candidates:\n")
	for _, r := range step.Candidates {
		fmt.Fprintf(&b, "%v #SUP: %d\n", r.Items, r.Support)
	}
	b.WriteString("Frequent itemsets:\n")
	for _, r := range step.Frequent {
		fmt.Fprintf(&b, "%v #SUP: %d\n", r.Items, r.Support)
	}
	return b.String()
}

func (s *Step) copy() *Step {
	cp := *s
	cp.Report = append([]miners.Result(nil), s.Report...)
	return &cp
}
