package art

import "math"

// Comparator selects the relational operator a range search evaluates
// against the encoded target value.
type Comparator int

const (
	LT Comparator = iota
	LE
	EQ
	GE
	GT
)

// EncodeInt32 produces an 8-byte order-preserving key for n: each of the 4
// big-endian bytes is expanded into two output bytes, one per nibble, so
// every output byte only ever carries 4 bits of information. This matches
// unsigned byte ordering of the underlying bit pattern; it does not invert
// the sign bit, so negative values do not sort before positive ones (see
// the design notes on range queries over i32).
func EncodeInt32(n int32) []byte {
	var bytes [4]byte

	bytes[0] = byte(n >> 24)
	bytes[1] = byte(n >> 16)
	bytes[2] = byte(n >> 8)
	bytes[3] = byte(n)

	out := make([]byte, 8)
	for i, b := range bytes {
		out[2*i] = (b >> 4) & 0x0F
		out[2*i+1] = b & 0x0F
	}

	return out
}

// EncodeInt64 produces an 8-byte big-endian key for n. Unlike EncodeInt32
// it is not nibble-expanded: 8 input bytes map directly to 8 output bytes.
func EncodeInt64(n int64) []byte {
	out := make([]byte, 8)
	for i := 0; i < 8; i++ {
		out[i] = byte(n >> (56 - 8*i))
	}

	return out
}

// EncodeFloat32 produces an order-preserving 8-byte key for n by
// reinterpreting its IEEE-754 bits as an int32, flipping the sign bit (and,
// for negative values, every other bit) so ascending byte order matches
// ascending float order, then delegating to EncodeInt32.
func EncodeFloat32(n float32) []byte {
	i := int32(math.Float32bits(n))
	i ^= (i >> 31) | math.MinInt32

	return EncodeInt32(i)
}

type progress int

const (
	progressRecurse progress = iota
	progressIterate
	progressAbort
)

// matchesByte decides, for one trie-edge byte a compared against the
// corresponding target byte b, whether the search should recurse further
// (a == b), accept the entire subtree without further comparison (a is
// already known to satisfy comparator regardless of the rest of the key),
// or abort the subtree outright.
func matchesByte(a, b byte, cmp Comparator) progress {
	switch cmp {
	case LT, LE:
		switch {
		case a == b:
			return progressRecurse
		case a < b:
			return progressIterate
		default:
			return progressAbort
		}
	case EQ:
		if a == b {
			return progressRecurse
		}

		return progressAbort
	case GE, GT:
		switch {
		case a == b:
			return progressRecurse
		case a > b:
			return progressIterate
		default:
			return progressAbort
		}
	default:
		return progressAbort
	}
}

// RangeSearch returns every leaf whose key, compared bytewise against
// target under cmp, satisfies the comparator.
func (t *Tree) RangeSearch(target []byte, cmp Comparator) []*Leaf {
	var out []*Leaf

	rangeRecurse(t.root, 0, target, cmp, &out)

	return out
}

// Int32Search returns every leaf whose EncodeInt32 key satisfies
// comparator(decode(key), value).
func (t *Tree) Int32Search(value int32, cmp Comparator) []*Leaf {
	return t.RangeSearch(EncodeInt32(value), cmp)
}

// Int64Search returns every leaf whose EncodeInt64 key satisfies
// comparator(decode(key), value).
func (t *Tree) Int64Search(value int64, cmp Comparator) []*Leaf {
	return t.RangeSearch(EncodeInt64(value), cmp)
}

// FloatSearch returns every leaf whose EncodeFloat32 key satisfies
// comparator(decode(key), value).
func (t *Tree) FloatSearch(value float32, cmp Comparator) []*Leaf {
	return t.RangeSearch(EncodeFloat32(value), cmp)
}

func rangeRecurse(n Node, depth int, target []byte, cmp Comparator, out *[]*Leaf) {
	if n == nil {
		return
	}

	if l, ok := n.(*Leaf); ok {
		for depth < len(target) {
			p := matchesByte(byteAt(l.Key, depth), target[depth], cmp)
			if p == progressAbort {
				return
			}

			if p == progressIterate {
				break
			}

			depth++
		}

		compareAndMatchLeaf(target, cmp, l, out)

		return
	}

	partial := n.Prefix()
	endIdx := min(len(partial), len(target)-depth)

	for idx := 0; idx < endIdx; idx++ {
		switch matchesByte(partial[idx], target[depth+idx], cmp) {
		case progressAbort:
			return
		case progressIterate:
			rangeIter(n, target, cmp, out)

			return
		}
	}

	depth += n.PartialLen()

	n.EachChild(func(b byte, child Node) bool {
		switch matchesByte(b, byteAt(target, depth), cmp) {
		case progressRecurse:
			rangeRecurse(child, depth+1, target, cmp, out)
		case progressIterate:
			rangeIter(child, target, cmp, out)
		}

		return false
	})
}

// rangeIter collects every leaf in n's subtree unconditionally: reached
// once matchesByte has already determined the whole subtree satisfies the
// comparator.
func rangeIter(n Node, target []byte, cmp Comparator, out *[]*Leaf) {
	if n == nil {
		return
	}

	if l, ok := n.(*Leaf); ok {
		compareAndMatchLeaf(target, cmp, l, out)

		return
	}

	n.EachChild(func(_ byte, child Node) bool {
		rangeIter(child, target, cmp, out)

		return false
	})
}

// compareAndMatchLeaf applies the final exactness check: strict LT/GT
// exclude an exact match (descent having reached here only proves the
// comparator held at every byte, which for a strict operator includes the
// equal case that must now be ruled out).
func compareAndMatchLeaf(target []byte, cmp Comparator, l *Leaf, out *[]*Leaf) {
	if cmp == LT || cmp == GT {
		n := min(len(target), len(l.Key))

		for i := 0; i < n; i++ {
			if target[i] != l.Key[i] {
				*out = append(*out, l)

				return
			}
		}

		if len(target) != len(l.Key) {
			*out = append(*out, l)
		}

		return
	}

	*out = append(*out, l)
}
