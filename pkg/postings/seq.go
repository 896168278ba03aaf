// Package postings implements the sorted id sequence and the per-key
// posting list that sit at the leaves of the term index.
package postings

import "sort"

// Seq is a mutable sorted-unique sequence of uint32 values with O(log n)
// random access and membership testing.
//
// The contract only requires stable id ordering and O(log n)-or-better
// lookup; it deliberately says nothing about the storage layout. A sorted
// slice with binary search already satisfies that contract, so that is the
// representation used here — the packed-delta layout of the source
// implementation is a memory optimization, not a semantic requirement (see
// DESIGN.md for the tradeoff).
//
// Seq also backs the non-sorted "offsets" and "offset index" arrays of a
// posting list, which only use the positional methods (InsertAt, At,
// IncrementFrom, Raw, Len); Append and Contains are meaningless there and
// simply go unused.
type Seq struct {
	vals []uint32
}

// Len returns the number of elements in the sequence.
func (s *Seq) Len() int { return len(s.vals) }

// At returns the value at position i.
//
// i must be within [0, Len()); out-of-range access is a programming fault.
func (s *Seq) At(i int) uint32 { return s.vals[i] }

// Raw exposes the backing slice for read-only iteration.
func (s *Seq) Raw() []uint32 { return s.vals }

// search returns the position at which x is, or would be, inserted to keep
// the sequence sorted, along with whether it is already present there.
func (s *Seq) search(x uint32) (pos int, found bool) {
	pos = sort.Search(len(s.vals), func(i int) bool { return s.vals[i] >= x })

	return pos, pos < len(s.vals) && s.vals[pos] == x
}

// Contains reports whether x is present in the sequence.
//
// Contains on an empty sequence returns false.
func (s *Seq) Contains(x uint32) bool {
	_, found := s.search(x)

	return found
}

// Append inserts x at the position that keeps the sequence sorted and
// unique, returning the position it now occupies and whether it was newly
// inserted. If x is already present, the sequence is left unchanged and
// created is false.
func (s *Seq) Append(x uint32) (pos int, created bool) {
	pos, found := s.search(x)
	if found {
		return pos, false
	}

	s.vals = append(s.vals, 0)
	copy(s.vals[pos+1:], s.vals[pos:])
	s.vals[pos] = x

	return pos, true
}

// InsertAt splices raw values into the sequence at pos, shifting the tail
// to the right. Unlike Append, it does not preserve sortedness — it is used
// to splice a run of offsets (or a single offset-index entry) into place,
// where the sequence as a whole is not required to stay sorted.
func (s *Seq) InsertAt(pos int, vals ...uint32) {
	if len(vals) == 0 {
		return
	}

	s.vals = append(s.vals, make([]uint32, len(vals))...)
	copy(s.vals[pos+len(vals):], s.vals[pos:len(s.vals)-len(vals)])
	copy(s.vals[pos:], vals)
}

// IncrementFrom adds delta to every element from pos to the end of the
// sequence. Used to keep offsetIndex entries consistent after a run is
// spliced into the middle of the shared offsets array: every run that
// starts after the splice point shifts right by the spliced run's length.
func (s *Seq) IncrementFrom(pos int, delta uint32) {
	for i := pos; i < len(s.vals); i++ {
		s.vals[i] += delta
	}
}

// NumFoundOf returns the size of the intersection between this sequence and
// an externally-supplied sorted array, via a linear merge.
func (s *Seq) NumFoundOf(needle []uint32) int {
	i, j, n := 0, 0, 0

	for i < len(s.vals) && j < len(needle) {
		switch {
		case s.vals[i] == needle[j]:
			n++
			i++
			j++
		case s.vals[i] < needle[j]:
			i++
		default:
			j++
		}
	}

	return n
}
