package fptree

import (
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/armine/config"
	"github.com/timtadh/armine/miners"
	"github.com/timtadh/armine/types/itemset"
)

// Miner drives a prefix tree to its final state and reports the frequent
// itemsets. MaxSteps bounds the ForwardStep calls, zero is unbounded.
type Miner struct {
	config   *config.Config
	MaxSteps int
	Tree     *Tree
}

func NewMiner(conf *config.Config, maxSteps int) *Miner {
	return &Miner{config: conf, MaxSteps: maxSteps}
}

func (m *Miner) LoadOptions() itemset.LoadOptions {
	return itemset.LoadOptions{}
}

func (m *Miner) Formatter() miners.Formatter {
	return miners.FrequentFormat{}
}

func (m *Miner) Mine(db *itemset.Database, rptr miners.Reporter) error {
	t, err := Build(m.config, db, m.config.Support)
	if err != nil {
		return err
	}
	m.Tree = t
	var results []miners.Result
	for t.State() != Finalized {
		if m.MaxSteps > 0 && t.Steps() >= m.MaxSteps {
			errors.Logf("WARN", "stopped after %d steps, %d nodes left", t.Steps(), len(t.nodes))
			results = t.Frequent()
			break
		}
		step, err := t.ForwardStep()
		if err != nil {
			return err
		}
		errors.Logf("DEBUG", "step %d %v\n%v", t.Steps(), step.State, step.Trace)
		results = step.Report
	}
	for _, r := range results {
		if err := rptr.Report(r); err != nil {
			return err
		}
	}
	return nil
}

func (m *Miner) Close() error {
	if m.Tree == nil {
		return nil
	}
	return m.Tree.Close()
}
