// Package debug provides internal invariant checking for the index.
//
// Structural corruption inside the trie (an unknown node type, a
// num_children count that no longer matches the populated slots) is not a
// recoverable condition: continuing to operate on a corrupted tree would
// silently return wrong search results. Assert turns those cases into an
// immediate, loud failure instead.
package debug

import "fmt"

// Assert panics with a formatted message if cond is false.
//
// Reserved for invariant violations (I2-I5 in the node layout, unknown node
// types reached during a type switch) rather than ordinary control flow —
// callers should treat a failed assertion as a programming error, not as a
// value to recover from.
func Assert(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Errorf("termidx: internal assertion failed: "+format, args...))
	}
}
