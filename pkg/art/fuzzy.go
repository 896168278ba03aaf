package art

import "github.com/flier/termidx/pkg/postings"

// fuzzySlack is the multiplier the source applies to max_cost while
// walking a leaf's tail: once the running cost exceeds max_cost the
// subtree is pruned outright (no recovery possible), but a little extra
// slack during the final leaf comparison keeps "front-loaded" typos like
// a transposed first letter from being pruned before the full Damerau-
// Levenshtein distance is known.
const fuzzySlack = 2

// FuzzyOptions configures FuzzySearch.
type FuzzyOptions struct {
	MinCost, MaxCost int
	// MaxWords caps the number of leaves returned. Zero means unbounded.
	MaxWords int
	Order    Order
	// Prefix restricts matching to the first len(term) bytes of each
	// candidate key, leaving the remainder of the key free.
	Prefix    bool
	FilterIDs []uint32
}

// FuzzySearch returns up to opts.MaxWords leaves whose key is within
// Damerau-Levenshtein distance [MinCost, MaxCost] of term (or, in prefix
// mode, whose first len(term) bytes are), ranked by opts.Order.
func (t *Tree) FuzzySearch(term []byte, opts FuzzyOptions) []Result {
	if t.root == nil {
		return nil
	}

	columns := len(term) + 1
	row0 := make([]int, columns)

	for i := range row0 {
		row0[i] = i
	}

	row1 := append([]int(nil), row0...)

	var matched []Node

	// depth -1 is the "initial" marker: the root has no incoming byte to
	// charge a transition cost against, so the first real work is either
	// walking its own partial prefix or, if the root is itself a leaf,
	// walking its key — both handled uniformly starting at depth 0.
	fuzzyRecurse(0, 0, t.root, -1, term, opts.MinCost, opts.MaxCost, opts.Prefix, row0, row1, &matched)

	maxWords := opts.MaxWords
	if maxWords <= 0 {
		// Unbounded: a prefix-mode match can be a whole subtrie, so count
		// the leaves under every match rather than the matches themselves.
		maxWords = 0
		for _, n := range matched {
			visit(n, func([]byte, *postings.List) bool {
				maxWords++

				return false
			})
		}
	}

	return TopK(matched, opts.Order, maxWords, opts.FilterIDs)
}

// levenshteinDist computes one row of the incremental Damerau-Levenshtein
// matrix: outRow[col] from curRow (one step back) and prevRow (two steps
// back, needed only for the adjacent-transposition case).
func levenshteinDist(depth int, p, c byte, term []byte, prevRow, curRow, outRow []int) int {
	rowMin := curRow[0] + 1
	outRow[0] = rowMin

	for col := 1; col <= len(term); col++ {
		cost := 1
		if c == term[col-1] {
			cost = 0
		}

		deleteCost := curRow[col] + 1
		insertCost := outRow[col-1] + 1
		substCost := curRow[col-1] + cost

		v := min(insertCost, deleteCost, substCost)

		if depth > 1 && col > 1 && c == term[col-2] && p == term[col-1] {
			v = min(v, prevRow[col-2]+1)
		}

		outRow[col] = v

		if v < rowMin {
			rowMin = v
		}
	}

	return rowMin
}

// fuzzyRecurse descends one node, charging a Damerau-Levenshtein step for
// the byte that led into it (c, compared against p, the byte that led
// into its parent) and then for every byte of its own stored prefix,
// before either accepting it (prefix mode, once depth has reached
// len(term)), descending into its children, or handing off to
// fuzzyLeaf.
func fuzzyRecurse(
	p, c byte, n Node, depth int, term []byte,
	minCost, maxCost int, prefixMode bool,
	irow, jrow []int, out *[]Node,
) {
	if n == nil {
		return
	}

	columns := len(term) + 1
	rows := [3][]int{append([]int(nil), irow...), append([]int(nil), jrow...), make([]int, columns)}
	i, j, k := 0, 1, 2

	tempCost := 0

	if depth == -1 {
		depth = 0
	} else if !(c == 0 && depth == len(term)) {
		tempCost = levenshteinDist(depth, p, c, term, rows[i], rows[j], rows[k])
		i, j, k = j, k, i
		p = c
		depth++

		if tempCost > maxCost {
			return
		}
	}

	if l, ok := n.(*Leaf); ok {
		fuzzyLeaf(l, p, depth, term, tempCost, minCost, maxCost, prefixMode, rows, i, j, out)

		return
	}

	if prefixMode && depth >= len(term) {
		*out = append(*out, n)

		return
	}

	partial := n.Prefix()
	endIdx := min(len(partial), len(term)+maxCost)

	for idx := 0; idx < endIdx; idx++ {
		c = partial[idx]
		tempCost = levenshteinDist(depth+idx, p, c, term, rows[i], rows[j], rows[k])
		i, j, k = j, k, i
		p = c

		if prefixMode && depth+idx+1 >= len(term) && tempCost <= maxCost {
			*out = append(*out, n)

			return
		}
	}

	depth += len(partial)

	if n.PartialLen() > MaxPrefixLen {
		for pl := len(partial); pl < n.PartialLen() && depth < len(term); pl++ {
			c = term[depth]
			tempCost = levenshteinDist(depth, p, c, term, rows[i], rows[j], rows[k])
			i, j, k = j, k, i
			p = c
			depth++
		}
	}

	if tempCost > maxCost {
		return
	}

	n.EachChild(func(b byte, child Node) bool {
		fuzzyRecurse(p, b, child, depth, term, minCost, maxCost, prefixMode, rows[i], rows[j], out)

		return false
	})
}

// fuzzyLeaf walks the remainder of a leaf's key against the query,
// applying the prefix-mode or exact-mode acceptance rule once the walk
// ends.
func fuzzyLeaf(
	l *Leaf, p byte, depth int, term []byte, tempCost int,
	minCost, maxCost int, prefixMode bool,
	rows [3][]int, i, j int, out *[]Node,
) {
	columns := len(term) + 1

	iterLen := len(l.Key)
	if prefixMode {
		iterLen = min(len(l.Key), len(term))
	}

	k := 3 - i - j

	for depth < iterLen && tempCost <= fuzzySlack*maxCost {
		c := l.Key[depth]
		tempCost = levenshteinDist(depth, p, c, term, rows[i], rows[j], rows[k])
		i, j, k = j, k, i
		p = c
		depth++
	}

	finalCost := rows[j][columns-1]

	switch {
	case prefixMode && len(term) < len(l.Key) && tempCost >= minCost && tempCost <= maxCost:
		*out = append(*out, l)
	case prefixMode && len(term) >= len(l.Key) && finalCost >= minCost && finalCost <= maxCost:
		*out = append(*out, l)
	case !prefixMode && finalCost >= minCost && finalCost <= maxCost:
		*out = append(*out, l)
	}
}
