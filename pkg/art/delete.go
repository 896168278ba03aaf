package art

import "github.com/flier/termidx/pkg/postings"

// Delete removes key and its entire posting list from the tree. Partial
// deletion of a single document id is not supported here — the source
// only ever removes whole keys, and postings.List has no method for
// removing a single document either.
//
// It returns the removed posting list, or nil if key was not present.
func (t *Tree) Delete(key []byte) *postings.List {
	old := remove(&t.root, key, 0)
	if old != nil {
		t.size--
	}

	return old
}

func remove(ref *Node, key []byte, depth int) *postings.List {
	n := *ref
	if n == nil {
		return nil
	}

	if l, ok := n.(*Leaf); ok {
		if !l.Matches(key) {
			return nil
		}

		*ref = nil

		return &l.Values
	}

	if n.PartialLen() > 0 {
		if checkPrefix(n, key, depth) != len(n.Prefix()) {
			return nil
		}

		depth += n.PartialLen()
	}

	slot := n.FindChild(byteAt(key, depth))
	if slot == nil {
		return nil
	}

	if l, ok := (*slot).(*Leaf); ok {
		if !l.Matches(key) {
			return nil
		}

		n.RemoveChild(slot)
		recomputeStats(n)
		*ref = n.Shrink()

		return &l.Values
	}

	old := remove(slot, key, depth+1)
	if old != nil {
		recomputeStats(n)
		*ref = n.Shrink()
	}

	return old
}
