package config

import (
	"math/rand"
	"path/filepath"
)

import (
	"github.com/timtadh/armine/stores/intint"
	"github.com/timtadh/armine/stores/supports"
)

// DefaultMaxSubsets bounds the powerset lattice at 2^20 itemsets.
const DefaultMaxSubsets = 1 << 20

type Config struct {
	Cache  string
	Output string
	// Support is the minimum support as a fraction of the transactions.
	Support float64
	// MaxSubsets is the largest lattice the powerset builder will enumerate.
	// Zero means DefaultMaxSubsets.
	MaxSubsets int64
	// Vertical counts supports with the tid-set index instead of scanning
	// transactions.
	Vertical bool
}

func (c *Config) SubsetLimit() int64 {
	if c.MaxSubsets <= 0 {
		return DefaultMaxSubsets
	}
	return c.MaxSubsets
}

func (c *Config) Randstr() string {
	runes := make([]rune, 0, 10)
	for i := 0; i < 10; i++ {
		runes = append(runes, rune(97+rand.Intn(26)))
	}
	return string(runes)
}

func (c *Config) CacheFile(name string) string {
	return filepath.Join(c.Cache, name)
}

func (c *Config) OutputFile(name string) string {
	return filepath.Join(c.Output, name)
}

func (c *Config) IntIntMultiMap(name string) (intint.MultiMap, error) {
	if c.Cache == "" {
		return intint.AnonBpTree()
	} else {
		return intint.NewBpTree(c.CacheFile(name + "-" + c.Randstr() + ".bptree"))
	}
}

// SupportTable is kept in memory unless a cache directory is configured.
func (c *Config) SupportTable(name string) (supports.Table, error) {
	if c.Cache == "" {
		return supports.NewMemory(), nil
	} else {
		return supports.NewBpTree(c.CacheFile(name + "-" + c.Randstr() + ".bptree"))
	}
}
