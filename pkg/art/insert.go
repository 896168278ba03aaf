package art

import "github.com/flier/termidx/pkg/postings"

// Insert adds doc's occurrence under key, creating the key's leaf and
// posting list if this is the first time key has been seen.
//
// It returns the key's existing posting list (the live list, which now
// includes doc), or nil if key was not present in the tree before this
// call — this mirrors the source's "previous posting list, or null if new
// key" return convention, which callers use to tell a brand-new term from
// one they are merely adding another document to.
func (t *Tree) Insert(key []byte, doc postings.Document) *postings.List {
	wasNew := false

	existing := insert(&t.root, key, doc, 0, &wasNew)
	if wasNew {
		t.size++
	}

	return existing
}

func insert(ref *Node, key []byte, doc postings.Document, depth int, wasNew *bool) *postings.List {
	if *ref == nil {
		leaf := newLeaf(key, doc)
		*ref = leaf
		*wasNew = true

		return nil
	}

	if l, ok := (*ref).(*Leaf); ok {
		return insertIntoLeaf(ref, l, key, doc, depth, wasNew)
	}

	return insertIntoNode(ref, key, doc, depth, wasNew)
}

func newLeaf(key []byte, doc postings.Document) *Leaf {
	l := &Leaf{Key: append([]byte(nil), key...)}
	l.Values.Add(doc)

	return l
}

func insertIntoLeaf(ref *Node, l *Leaf, key []byte, doc postings.Document, depth int, wasNew *bool) *postings.List {
	if l.Matches(key) {
		l.Values.Add(doc)

		return &l.Values
	}

	newNode := &Node4{}

	if i := longestCommonPrefix(l.Key, key, depth); i > depth {
		newNode.SetPrefix(key[depth:i])
		depth = i
	}

	newLf := newLeaf(key, doc)
	*wasNew = true

	newNode.AddChild(byteAt(newLf.Key, depth), newLf)
	newNode.AddChild(byteAt(l.Key, depth), l)
	recomputeStats(newNode)

	*ref = newNode

	return nil
}

func insertIntoNode(ref *Node, key []byte, doc postings.Document, depth int, wasNew *bool) *postings.List {
	n := *ref

	if n.PartialLen() > 0 {
		diff := prefixMismatch(n, key, depth)

		if diff >= n.PartialLen() {
			depth += n.PartialLen()
		} else {
			splitPrefix(ref, n, key, doc, depth, diff)
			*wasNew = true

			return nil
		}
	}

	b := byteAt(key, depth)

	if child := n.FindChild(b); child != nil {
		old := insert(child, key, doc, depth+1, wasNew)
		recomputeStats(n)

		return old
	}

	newLf := newLeaf(key, doc)
	*wasNew = true

	addChild(ref, b, newLf)
	recomputeStats(*ref)

	return nil
}

// splitPrefix handles the case where key diverges from n's shared prefix
// partway through: a new Node4 is inserted above n, carrying the common
// portion of the prefix, with n (its own prefix trimmed past the split
// point) and a fresh leaf for key as its two children.
func splitPrefix(ref *Node, n Node, key []byte, doc postings.Document, depth, diff int) {
	newNode := &Node4{}
	newNode.SetPrefix(prefixSlice(n, depth, 0, diff))

	splitByte := prefixByte(n, depth, diff)
	n.SetPrefix(prefixSlice(n, depth, diff+1, n.PartialLen()))
	newNode.AddChild(splitByte, n)

	newLf := newLeaf(key, doc)
	newNode.AddChild(byteAt(key, depth+diff), newLf)

	recomputeStats(newNode)

	*ref = newNode
}

// addChild installs child under b on n, growing n to the next layout first
// if it is already full.
func addChild(ref *Node, b byte, child Node) {
	n := *ref

	if n.Full() {
		n = n.Grow()
		*ref = n
	}

	n.AddChild(b, child)
}

// byteAt returns key[pos], or the implicit terminating zero byte if pos is
// at or past the end of key — this is what lets a key be a proper prefix
// of another without one leaf ending up nested inside the other's path.
func byteAt(key []byte, pos int) byte {
	if pos < len(key) {
		return key[pos]
	}

	return 0
}

func longestCommonPrefix(a, b []byte, depth int) int {
	n := min(len(a), len(b))

	i := depth
	for i < n && a[i] == b[i] {
		i++
	}

	return i
}

// prefixByte returns the byte at position idx of n's conceptual shared
// prefix (n currently sits at absolute depth depth). For idx within the
// inline MaxPrefixLen window this comes straight from n.Prefix(); beyond
// that it is recovered from any descendant leaf, per the "hidden prefix"
// rule in §4.3/§4.4.
func prefixByte(n Node, depth, idx int) byte {
	if p := n.Prefix(); idx < len(p) {
		return p[idx]
	}

	if l := n.Minimum(); l != nil && depth+idx < len(l.Key) {
		return l.Key[depth+idx]
	}

	return 0
}

// prefixSlice materializes n's conceptual prefix bytes in [lo, hi).
func prefixSlice(n Node, depth, lo, hi int) []byte {
	if hi <= lo {
		return nil
	}

	out := make([]byte, 0, hi-lo)
	for i := lo; i < hi; i++ {
		out = append(out, prefixByte(n, depth, i))
	}

	return out
}

// prefixMismatch returns how many leading bytes of n's prefix match key
// starting at depth, extending the inline comparison with a descendant
// leaf's key when n's true prefix length exceeds MaxPrefixLen.
func prefixMismatch(n Node, key []byte, depth int) int {
	p := n.Prefix()
	maxCmp := min(len(p), len(key)-depth)

	i := 0
	for ; i < maxCmp; i++ {
		if p[i] != key[depth+i] {
			return i
		}
	}

	if n.PartialLen() > MaxPrefixLen {
		if l := n.Minimum(); l != nil {
			limit := min(min(len(l.Key), len(key))-depth, n.PartialLen())
			for ; i < limit; i++ {
				if l.Key[depth+i] != key[depth+i] {
					return i
				}
			}
		}
	}

	return i
}
