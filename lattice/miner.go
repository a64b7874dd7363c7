package lattice

import (
	"github.com/timtadh/armine/config"
	"github.com/timtadh/armine/miners"
	"github.com/timtadh/armine/types/itemset"
)

// Miner reports the classified frequent itemsets of the lattice.
type Miner struct {
	config  *config.Config
	Lattice *Lattice
}

func NewMiner(conf *config.Config) *Miner {
	return &Miner{config: conf}
}

func (m *Miner) LoadOptions() itemset.LoadOptions {
	return itemset.LoadOptions{}
}

func (m *Miner) Formatter() miners.Formatter {
	return miners.GridFormat{}
}

func (m *Miner) Mine(db *itemset.Database, rptr miners.Reporter) error {
	l, err := Build(m.config, db, m.config.Support)
	if err != nil {
		return err
	}
	m.Lattice = l
	for _, r := range l.Results() {
		if err := rptr.Report(r); err != nil {
			return err
		}
	}
	return nil
}

func (m *Miner) Close() error {
	return nil
}
