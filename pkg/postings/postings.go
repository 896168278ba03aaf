package postings

// Document is the input to a single posting-list insertion: one document's
// occurrence of the key it is being added under.
//
// Offsets must be monotonically non-decreasing term positions within the
// source document. ID is assumed globally unique per document within one
// index; overflow or id reuse across documents is a caller error, not
// something this package detects.
type Document struct {
	ID      uint32
	Score   int64
	Offsets []uint32
}

// List is the posting list attached to every leaf: the set of documents
// that contain the leaf's key, together with their score and per-document
// term-position offsets.
//
// Invariant (I1): ids is strictly ascending, and for every index k the run
// for ids[k] occupies offsets[offsetIndex[k] .. offsetIndex[k+1]) (the last
// run ending at len(offsets)). A given id never repeats.
type List struct {
	ids         Seq
	offsetIndex Seq
	offsets     Seq
	maxScore    int64
}

// Add records doc's occurrence under this list's key.
//
// If doc.ID is new, its offsets are stored as a new run placed in id order
// (appended when doc.ID is the largest id so far, spliced in before the
// next larger id's run otherwise) and offsetIndex gains the starting
// position of that run. If doc.ID already exists, the
// add is idempotent at the id level: nothing about the stored offsets
// changes, only maxScore is folded in.
//
// This resolves an ambiguity in the source: re-inserting an already-present
// id there splices a second offset run in at the old run's start position,
// which would silently duplicate offsets rather than update them. The safe
// contract — at most one entry per id — is what every higher-layer call
// site actually relies on, so that is what Add enforces directly instead of
// pushing the check onto callers.
func (p *List) Add(doc Document) {
	pos, created := p.ids.Append(doc.ID)

	if created {
		if pos == p.ids.Len()-1 {
			// Appended past every existing id: its run goes on the end of the
			// shared offsets array, same as every other run before it.
			start := uint32(p.offsets.Len())
			p.offsetIndex.InsertAt(pos, start)
			p.offsets.InsertAt(int(start), doc.Offsets...)
		} else {
			// Inserted before an existing id: its run must be spliced in
			// contiguously at that neighbor's current start, not appended —
			// otherwise offsetIndex stops being monotonic. Every run that
			// starts after the splice point shifts right by the new run's
			// length.
			start := p.offsetIndex.At(pos)
			p.offsetIndex.InsertAt(pos, start)
			p.offsetIndex.IncrementFrom(pos+1, uint32(len(doc.Offsets)))
			p.offsets.InsertAt(int(start), doc.Offsets...)
		}
	}

	if doc.Score > p.maxScore || (created && p.ids.Len() == 1) {
		p.maxScore = doc.Score
	}
}

// IDs returns the sorted-unique document ids under this key.
func (p *List) IDs() *Seq { return &p.ids }

// MaxScore returns the highest score ever recorded among documents inserted
// under this key.
func (p *List) MaxScore() int64 { return p.maxScore }

// Freq returns the document frequency of this key — the number of distinct
// documents it occurs in.
func (p *List) Freq() uint32 { return uint32(p.ids.Len()) }

// OffsetsAt returns the term-position offsets recorded for the document at
// position pos in IDs(). pos must be within [0, IDs().Len()).
func (p *List) OffsetsAt(pos int) []uint32 {
	start := p.offsetIndex.At(pos)

	var end uint32
	if pos+1 < p.offsetIndex.Len() {
		end = p.offsetIndex.At(pos + 1)
	} else {
		end = uint32(p.offsets.Len())
	}

	return p.offsets.Raw()[start:end]
}
