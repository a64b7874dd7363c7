package lattice

import (
	"fmt"
)

// LatticeTooLargeError is returned before enumeration starts when the item
// universe has more subsets than the configured limit.
type LatticeTooLargeError struct {
	Items   int
	Subsets int64
	Limit   int64
}

func (e *LatticeTooLargeError) Error() string {
	if e.Subsets <= 0 {
		return fmt.Sprintf("lattice over %d items is too large to enumerate (limit %d itemsets)", e.Items, e.Limit)
	}
	return fmt.Sprintf("lattice over %d items has %d itemsets, more than the limit of %d", e.Items, e.Subsets, e.Limit)
}
