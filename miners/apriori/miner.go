package apriori

import (
	"github.com/timtadh/armine/config"
	"github.com/timtadh/armine/miners"
	"github.com/timtadh/armine/types/itemset"
)

// Miner reports the minimal rare itemsets.
type Miner struct {
	config *config.Config
	Rare   *RareSet
}

func NewMiner(conf *config.Config) *Miner {
	return &Miner{config: conf}
}

// LoadOptions skips comment lines. Rare itemset inputs commonly carry them.
func (m *Miner) LoadOptions() itemset.LoadOptions {
	return itemset.LoadOptions{SkipComments: true}
}

func (m *Miner) Formatter() miners.Formatter {
	return miners.RareFormat{}
}

func (m *Miner) Mine(db *itemset.Database, rptr miners.Reporter) error {
	r, err := Mine(m.config, db, m.config.Support)
	if err != nil {
		return err
	}
	m.Rare = r
	for _, rare := range r.Itemsets {
		if err := rptr.Report(rare); err != nil {
			return err
		}
	}
	return nil
}

func (m *Miner) Close() error {
	return nil
}
