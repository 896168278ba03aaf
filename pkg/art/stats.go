package art

// recomputeStats refreshes n's cached max score and max frequency from its
// immediate children, restoring invariant I3 (every internal node's cached
// max score equals the maximum over its descendant leaves) after a child
// was added, removed, or replaced.
//
// The source only maintains this cache for score, leaving frequency-order
// top-k to treat every internal node as contributing 0 (flagged in the
// spec as a known weakness). Recomputing both here on every insert and
// delete — not just score — is the fix the spec calls for, and doing it by
// re-scanning immediate children (at most 256 of them) rather than
// re-walking the whole subtree keeps it cheap enough to run unconditionally
// on every mutation, including deletes, where the source doesn't bother at
// all.
func recomputeStats(n Node) {
	var score int64

	var freq uint32

	first := true

	n.EachChild(func(_ byte, child Node) bool {
		if s := child.MaxScore(); first || s > score {
			score = s
		}

		first = false

		if f := child.MaxFreq(); f > freq {
			freq = f
		}

		return false
	})

	n.setStats(score, freq)
}
