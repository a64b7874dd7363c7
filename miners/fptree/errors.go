package fptree

import (
	"fmt"
)

// PrefixTooLongError is returned by a Mark step when a doomed node's prefix
// has more subsets than the configured limit. The tree is left unchanged.
type PrefixTooLongError struct {
	Item   int32
	Prefix int
	Limit  int64
}

func (e *PrefixTooLongError) Error() string {
	return fmt.Sprintf("removing item %d needs the subsets of a %d item prefix, more than the limit of %d",
		e.Item, e.Prefix, e.Limit)
}
