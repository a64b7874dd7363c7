package miners

import (
	"fmt"
	"math"
)

import (
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/armine/config"
	"github.com/timtadh/armine/types/itemset"
)

// Epsilon absorbs floating point error when a support fraction is turned
// into a transaction count.
const Epsilon = 1e-9

// InvalidSupportFraction is returned for a minimum support outside (0, 1].
type InvalidSupportFraction struct {
	Value float64
}

func (e *InvalidSupportFraction) Error() string {
	return fmt.Sprintf("minimum support %v must be in (0, 1]", e.Value)
}

func ValidateSupport(minSupport float64) error {
	if math.IsNaN(minSupport) || minSupport <= 0 || minSupport > 1 {
		return &InvalidSupportFraction{Value: minSupport}
	}
	return nil
}

// AbsoluteSupport is ceil(minSupport * n).
func AbsoluteSupport(minSupport float64, n int) int {
	return int(math.Ceil(minSupport*float64(n) - Epsilon))
}

// NewCounter picks the support counter for a run: a merge scan over the
// transactions, or with conf.Vertical a tid-set index built through a
// temporary inverted index store.
func NewCounter(conf *config.Config, db *itemset.Database) (itemset.Counter, error) {
	if !conf.Vertical {
		return db, nil
	}
	inverted, err := conf.IntIntMultiMap("inverted-index")
	if err != nil {
		return nil, err
	}
	idx, err := itemset.NewIndex(inverted, db)
	if derr := inverted.Delete(); derr != nil {
		errors.Logf("WARN", "could not delete the inverted index: %v", derr)
	}
	if err != nil {
		return nil, err
	}
	return idx, nil
}
