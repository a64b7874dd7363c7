package fptree

import (
	"encoding/binary"
	"fmt"
)

import (
	"github.com/timtadh/armine/types/itemset"
)

// Node is one prefix of one or more reordered transactions. The path runs
// from the child of the root down to this node, so the node's item is the
// last element of the path.
type Node struct {
	path     []int32
	support  int
	parent   *Node
	children []*Node
	marked   bool
}

// Path returns a copy of the items from the root to this node.
func (n *Node) Path() []int32 {
	cp := make([]int32, len(n.path))
	copy(cp, n.path)
	return cp
}

// Item panics on the root.
func (n *Node) Item() int32 {
	return n.path[len(n.path)-1]
}

func (n *Node) Depth() int {
	return len(n.path)
}

// Support is the number of transactions whose reordered prefix reaches
// this node.
func (n *Node) Support() int {
	return n.support
}

func (n *Node) Parent() *Node {
	return n.parent
}

func (n *Node) Children() []*Node {
	return append([]*Node(nil), n.children...)
}

func (n *Node) Marked() bool {
	return n.marked
}

func (n *Node) Itemset() itemset.Itemset {
	return itemset.New(n.path...)
}

// Label is the display text of a node, "item: support".
func (n *Node) Label() string {
	if len(n.path) == 0 {
		return fmt.Sprintf("root: %d", n.support)
	}
	return fmt.Sprintf("%d: %d", n.Item(), n.support)
}

func (n *Node) String() string {
	return fmt.Sprintf("<Node %v support: %d>", itemset.FormatPath(n.path), n.support)
}

func (n *Node) detach() {
	if n.parent == nil {
		return
	}
	kids := n.parent.children
	for i, kid := range kids {
		if kid == n {
			copy(kids[i:], kids[i+1:])
			kids[len(kids)-1] = nil
			n.parent.children = kids[:len(kids)-1]
			break
		}
	}
	n.parent = nil
}

func pathKey(path []int32) string {
	key := make([]byte, 4*len(path))
	for i, item := range path {
		binary.BigEndian.PutUint32(key[i*4:], uint32(item))
	}
	return string(key)
}

func pathLess(a, b []int32) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
