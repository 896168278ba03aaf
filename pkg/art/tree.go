package art

// Tree is an Adaptive Radix Trie mapping byte-string keys to posting lists.
// The zero value is an empty, ready-to-use tree.
type Tree struct {
	root Node
	size int
}

// Len reports the number of distinct keys in the tree.
func (t *Tree) Len() int { return t.size }

// Minimum returns the leaf with the lexicographically smallest key, or nil
// if the tree is empty.
func (t *Tree) Minimum() *Leaf {
	if t.root == nil {
		return nil
	}

	return t.root.Minimum()
}

// Maximum returns the leaf with the lexicographically largest key, or nil
// if the tree is empty.
func (t *Tree) Maximum() *Leaf {
	if t.root == nil {
		return nil
	}

	return t.root.Maximum()
}
