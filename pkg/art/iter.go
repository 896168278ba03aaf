package art

import "github.com/flier/termidx/pkg/postings"

// Visit walks every leaf in the tree in ascending key order, calling cb for
// each. It stops early and returns true the moment cb returns true;
// otherwise it returns false once every leaf has been visited.
func (t *Tree) Visit(cb func(key []byte, values *postings.List) bool) bool {
	return visit(t.root, cb)
}

func visit(n Node, cb func(key []byte, values *postings.List) bool) bool {
	if n == nil {
		return false
	}

	if l, ok := n.(*Leaf); ok {
		return cb(l.Key, &l.Values)
	}

	return n.EachChild(func(_ byte, child Node) bool {
		return visit(child, cb)
	})
}

// VisitPrefix walks every leaf whose key starts with prefix, in ascending
// key order, calling cb for each. It stops early and returns true the
// moment cb returns true.
func (t *Tree) VisitPrefix(prefix []byte, cb func(key []byte, values *postings.List) bool) bool {
	return visitPrefix(t.root, prefix, 0, cb)
}

func visitPrefix(n Node, prefix []byte, depth int, cb func(key []byte, values *postings.List) bool) bool {
	for n != nil {
		if l, ok := n.(*Leaf); ok {
			if hasPrefix(l.Key, prefix) {
				return cb(l.Key, &l.Values)
			}

			return false
		}

		if depth == len(prefix) {
			if l := n.Minimum(); l != nil && hasPrefix(l.Key, prefix) {
				return visit(n, cb)
			}

			return false
		}

		if p := n.Prefix(); len(p) > 0 {
			pl := prefixMismatch(n, prefix, depth)
			if pl > len(p) {
				pl = len(p)
			}

			switch {
			case pl == 0:
				return false
			case depth+pl == len(prefix):
				return visit(n, cb)
			}

			depth += n.PartialLen()
		}

		slot := n.FindChild(byteAt(prefix, depth))
		if slot == nil {
			return false
		}

		n = *slot
		depth++
	}

	return false
}

func hasPrefix(key, prefix []byte) bool {
	if len(key) < len(prefix) {
		return false
	}

	for i := range prefix {
		if key[i] != prefix[i] {
			return false
		}
	}

	return true
}
