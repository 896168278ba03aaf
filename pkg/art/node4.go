package art

import "github.com/flier/termidx/internal/debug"

// Node4 is the smallest internal node layout, holding up to 4 children in
// two parallel arrays kept in ascending key-byte order. It is the entry
// point for every internal split: a Node4 is what a single leaf turns into
// the moment a second key diverges from it.
type Node4 struct {
	base

	Keys     [4]byte
	Children [4]Node
}

var _ Node = (*Node4)(nil)

func (n *Node4) Type() Type { return TypeNode4 }

func (n *Node4) Full() bool { return n.count == 4 }

func (n *Node4) Minimum() *Leaf {
	if n.count == 0 {
		return nil
	}

	return n.Children[0].Minimum()
}

func (n *Node4) Maximum() *Leaf {
	if n.count == 0 {
		return nil
	}

	return n.Children[n.count-1].Maximum()
}

// FindChild does a linear scan — at four elements or fewer this beats any
// vectorized or indexed lookup on cache-miss cost alone.
func (n *Node4) FindChild(b byte) *Node {
	for i := 0; i < n.count; i++ {
		if n.Keys[i] == b {
			return &n.Children[i]
		}
	}

	return nil
}

// AddChild inserts in sorted position, shifting the tail right. The caller
// guarantees n is not Full().
func (n *Node4) AddChild(b byte, child Node) {
	i := 0
	for ; i < n.count; i++ {
		if b < n.Keys[i] {
			break
		}
	}

	copy(n.Keys[i+1:], n.Keys[i:n.count])
	copy(n.Children[i+1:], n.Children[i:n.count])

	n.Keys[i] = b
	n.Children[i] = child
	n.count++
}

func (n *Node4) RemoveChild(slot *Node) {
	pos := childSlotIndex(n.Children[:], slot)

	copy(n.Keys[pos:], n.Keys[pos+1:n.count])
	copy(n.Children[pos:], n.Children[pos+1:n.count])
	n.Children[n.count-1] = nil
	n.count--
}

func (n *Node4) EachChild(fn func(b byte, child Node) bool) bool {
	for i := 0; i < n.count; i++ {
		if fn(n.Keys[i], n.Children[i]) {
			return true
		}
	}

	return false
}

// Grow converts to a Node16 once a 5th child arrives.
func (n *Node4) Grow() Node {
	nn := &Node16{base: n.base}

	copy(nn.Keys[:], n.Keys[:n.count])
	copy(nn.Children[:], n.Children[:n.count])

	return nn
}

// Shrink either collapses a single-child Node4 directly into that child
// (absorbing the splitting byte into the child's prefix when the child is
// itself internal), or returns the receiver unchanged when it still has
// more than one child.
func (n *Node4) Shrink() Node {
	if n.count > 1 {
		return n
	}

	child := n.Children[0]

	if child.Type() != TypeLeaf {
		child.absorbPrefix(n.Prefix(), n.PartialLen(), n.Keys[0])
	}

	return child
}

// childSlotIndex recovers a child's array position from the pointer
// FindChild handed back, without resorting to unsafe pointer arithmetic —
// the arrays here are small enough (4/16/48/256 entries) that a linear scan
// over addresses is cheap and keeps the package entirely safe Go.
//
// slot not occurring anywhere in children is structural corruption (a
// RemoveChild call against a slot pointer FindChild never actually
// returned) — exactly the InvariantViolation class of fault §7 reserves
// for debug.Assert, never a recoverable outcome.
func childSlotIndex(children []Node, slot *Node) int {
	for i := range children {
		if &children[i] == slot {
			return i
		}
	}

	debug.Assert(false, "art: RemoveChild slot not found among %d children", len(children))

	return -1
}
