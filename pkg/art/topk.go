package art

import (
	"container/heap"

	"github.com/flier/termidx/pkg/postings"
)

// Order selects the metric top-k ranking sorts by.
type Order int

const (
	// OrderScore ranks by cached max score, descending. Exact: every
	// internal node's cached max score equals the true maximum over its
	// descendant leaves (I3), so the best-first walk never has to revisit
	// a decision.
	OrderScore Order = iota
	// OrderFrequency ranks by document frequency, descending, using the
	// max-frequency cache recomputed in stats.go.
	OrderFrequency
)

// Result is one ranked leaf returned from a top-k query.
type Result struct {
	Key    []byte
	Values *postings.List
}

// TopK ranks this tree's own leaves by order, a convenience wrapper
// around the package-level TopK for the common single-tree case.
func (t *Tree) TopK(order Order, maxResults int, filterIDs []uint32) []Result {
	if t.root == nil {
		return nil
	}

	return TopK([]Node{t.root}, order, maxResults, filterIDs)
}

// TopK performs a best-first walk over the subtries rooted at roots,
// returning up to maxResults leaves ordered by order (descending).
//
// When filterIDs is non-empty, a leaf is only eligible if its posting
// list's id sequence shares at least one id with filterIDs (checked via
// postings.Seq.NumFoundOf) — this is the external sorted-id-array
// intersection the source performs alongside ranking rather than as a
// separate pass.
func TopK(roots []Node, order Order, maxResults int, filterIDs []uint32) []Result {
	if maxResults <= 0 || len(roots) == 0 {
		return nil
	}

	pq := make(pqueue, 0, len(roots))

	for _, r := range roots {
		if r != nil {
			heap.Push(&pq, pqItem{node: r, metric: metricOf(r, order)})
		}
	}

	results := make([]Result, 0, maxResults)

	for pq.Len() > 0 && len(results) < maxResults {
		item := heap.Pop(&pq).(pqItem)

		if l, ok := item.node.(*Leaf); ok {
			if len(filterIDs) > 0 && l.Values.IDs().NumFoundOf(filterIDs) == 0 {
				continue
			}

			results = append(results, Result{Key: l.Key, Values: &l.Values})

			continue
		}

		item.node.EachChild(func(_ byte, child Node) bool {
			heap.Push(&pq, pqItem{node: child, metric: metricOf(child, order)})

			return false
		})
	}

	sortResults(results, order)

	return results
}

func metricOf(n Node, order Order) int64 {
	if order == OrderFrequency {
		return int64(n.MaxFreq())
	}

	return n.MaxScore()
}

func sortResults(results []Result, order Order) {
	// Insertion sort: result sets from a top-k query are small by
	// construction (bounded by maxResults), so this avoids pulling in
	// sort.Slice's reflection overhead for what is usually a handful of
	// elements.
	for i := 1; i < len(results); i++ {
		for j := i; j > 0 && resultMetric(results[j], order) > resultMetric(results[j-1], order); j-- {
			results[j], results[j-1] = results[j-1], results[j]
		}
	}
}

func resultMetric(r Result, order Order) int64 {
	if order == OrderFrequency {
		return int64(r.Values.Freq())
	}

	return r.Values.MaxScore()
}

type pqItem struct {
	node   Node
	metric int64
}

// pqueue is a max-heap over pqItem.metric.
type pqueue []pqItem

func (q pqueue) Len() int            { return len(q) }
func (q pqueue) Less(i, j int) bool  { return q[i].metric > q[j].metric }
func (q pqueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *pqueue) Push(x interface{}) { *q = append(*q, x.(pqItem)) }

func (q *pqueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]

	return item
}
