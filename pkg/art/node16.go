package art

import "github.com/flier/termidx/pkg/art/simd"

// Node16 holds up to 16 children in the same sorted-array shape as Node4,
// but looks a key byte up via simd.FindKeyIndex — a linear
// scalar scan on every architecture (see package simd).
type Node16 struct {
	base

	Keys     [16]byte
	Children [16]Node
}

var _ Node = (*Node16)(nil)

func (n *Node16) Type() Type { return TypeNode16 }

func (n *Node16) Full() bool { return n.count == 16 }

func (n *Node16) Minimum() *Leaf {
	if n.count == 0 {
		return nil
	}

	return n.Children[0].Minimum()
}

func (n *Node16) Maximum() *Leaf {
	if n.count == 0 {
		return nil
	}

	return n.Children[n.count-1].Maximum()
}

func (n *Node16) FindChild(b byte) *Node {
	i := simd.FindKeyIndex(&n.Keys, n.count, b)
	if i < 0 {
		return nil
	}

	return &n.Children[i]
}

func (n *Node16) AddChild(b byte, child Node) {
	i := simd.FindInsertPosition(&n.Keys, n.count, b)

	copy(n.Keys[i+1:], n.Keys[i:n.count])
	copy(n.Children[i+1:], n.Children[i:n.count])

	n.Keys[i] = b
	n.Children[i] = child
	n.count++
}

func (n *Node16) RemoveChild(slot *Node) {
	pos := childSlotIndex(n.Children[:], slot)

	copy(n.Keys[pos:], n.Keys[pos+1:n.count])
	copy(n.Children[pos:], n.Children[pos+1:n.count])
	n.Children[n.count-1] = nil
	n.count--
}

func (n *Node16) EachChild(fn func(b byte, child Node) bool) bool {
	for i := 0; i < n.count; i++ {
		if fn(n.Keys[i], n.Children[i]) {
			return true
		}
	}

	return false
}

// Grow converts to a Node48 once a 17th child arrives. The sparse
// byte->index table is rebuilt from the sorted arrays being replaced.
func (n *Node16) Grow() Node {
	nn := &Node48{base: n.base}

	for i := 0; i < n.count; i++ {
		nn.Children[i] = n.Children[i]
		nn.Keys[n.Keys[i]] = byte(i + 1)
	}

	return nn
}

// Shrink converts back to a Node4 once the child count drops to 3 or
// fewer — the hysteresis versus the 17-child growth threshold avoids
// thrashing between layouts at the boundary.
func (n *Node16) Shrink() Node {
	if n.count > 3 {
		return n
	}

	nn := &Node4{base: n.base}

	copy(nn.Keys[:], n.Keys[:n.count])
	copy(nn.Children[:], n.Children[:n.count])

	return nn
}
