package art

import "github.com/flier/termidx/pkg/postings"

// Leaf is a terminal node: the full key plus the posting list of every
// document inserted under it.
//
// A leaf is created on the first insert of a new key and removed entirely
// when its key is deleted — there is no such thing as an empty leaf
// sitting in the tree.
type Leaf struct {
	Key    []byte
	Values postings.List
}

var _ Node = (*Leaf)(nil)

func (l *Leaf) Type() Type { return TypeLeaf }

// Prefix returns the leaf's full key — a leaf has no separate "prefix",
// its entire key stands in for one when compared against an internal
// node's partial during insertion (see prefixMismatch in insert.go).
func (l *Leaf) Prefix() []byte { return l.Key }

func (l *Leaf) PartialLen() int { return len(l.Key) }

func (l *Leaf) SetPrefix(full []byte) { l.Key = full }

func (l *Leaf) MaxScore() int64 { return l.Values.MaxScore() }

func (l *Leaf) MaxFreq() uint32 { return l.Values.Freq() }

func (l *Leaf) Minimum() *Leaf { return l }

func (l *Leaf) Maximum() *Leaf { return l }

func (l *Leaf) FindChild(byte) *Node { panic("art: leaf cannot have children") }

func (l *Leaf) AddChild(byte, Node) { panic("art: leaf cannot have children") }

func (l *Leaf) RemoveChild(*Node) { panic("art: leaf cannot have children") }

func (l *Leaf) EachChild(func(byte, Node) bool) bool { return false }

func (l *Leaf) Full() bool { return true }

func (l *Leaf) Grow() Node { panic("art: leaf cannot grow") }

func (l *Leaf) Shrink() Node { panic("art: leaf cannot shrink") }

func (l *Leaf) numChildren() int { return 0 }

func (l *Leaf) setStats(int64, uint32) {}

func (l *Leaf) absorbPrefix([]byte, int, byte) { panic("art: leaf has no prefix to absorb into") }

// Matches reports whether this leaf's key is exactly key.
func (l *Leaf) Matches(key []byte) bool {
	if len(l.Key) != len(key) {
		return false
	}

	for i := range key {
		if l.Key[i] != key[i] {
			return false
		}
	}

	return true
}
