// Package shard partitions a term index across N independent tries keyed
// by a hash of the term, so that inserts and queries against different
// terms never contend on the same lock and top-k queries run one goroutine
// per shard. Fuzzy and range queries are not exposed at this level.
//
// This mirrors how a real search engine splits an inverted index across
// shards rather than keeping one giant trie: the source's art_tree is
// deliberately single-writer/multi-reader per §5 of the index's
// concurrency model, and sharding is the natural way to get more
// concurrency out of that model without changing the core trie at all.
package shard

import (
	"context"
	"sync"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	"github.com/flier/termidx/pkg/art"
	"github.com/flier/termidx/pkg/postings"
)

// Index is a sharded term index. The zero value is not usable; construct
// with New.
type Index struct {
	shards []shardEntry
}

type shardEntry struct {
	mu   sync.RWMutex
	tree art.Tree
}

// New returns an Index with n shards. n must be at least 1.
func New(n int) *Index {
	if n < 1 {
		n = 1
	}

	return &Index{shards: make([]shardEntry, n)}
}

// NumShards reports how many shards the index was built with.
func (idx *Index) NumShards() int { return len(idx.shards) }

func (idx *Index) shardFor(key []byte) *shardEntry {
	h := xxhash.Sum64(key)

	return &idx.shards[h%uint64(len(idx.shards))]
}

// Insert routes key to its shard and inserts doc under it, returning the
// key's existing posting list, now including doc (nil if new).
func (idx *Index) Insert(key []byte, doc postings.Document) *postings.List {
	s := idx.shardFor(key)

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.tree.Insert(key, doc)
}

// Delete routes key to its shard and removes it, returning its posting
// list (nil if absent).
func (idx *Index) Delete(key []byte) *postings.List {
	s := idx.shardFor(key)

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.tree.Delete(key)
}

// Search routes key to its shard and looks it up.
func (idx *Index) Search(key []byte) *art.Leaf {
	s := idx.shardFor(key)

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.tree.Search(key)
}

// Len returns the total number of keys across every shard.
func (idx *Index) Len() int {
	total := 0

	for i := range idx.shards {
		idx.shards[i].mu.RLock()
		total += idx.shards[i].tree.Len()
		idx.shards[i].mu.RUnlock()
	}

	return total
}

// TopK fans the same top-k query out to every shard concurrently and
// merges the per-shard results back down to maxResults, re-ranked by
// order. A shard's cached max-score/max-freq root statistics make each
// shard's own walk exact (see art.TopK); merging exact per-shard rankings
// still yields the exact global top-k.
func (idx *Index) TopK(ctx context.Context, order art.Order, maxResults int, filterIDs []uint32) ([]art.Result, error) {
	partials := make([][]art.Result, len(idx.shards))

	g, gctx := errgroup.WithContext(ctx)

	for i := range idx.shards {
		i := i

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			idx.shards[i].mu.RLock()
			defer idx.shards[i].mu.RUnlock()

			partials[i] = idx.shards[i].tree.TopK(order, maxResults, filterIDs)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := make([]art.Result, 0, maxResults)
	for _, p := range partials {
		merged = append(merged, p...)
	}

	return mergeTopK(merged, order, maxResults), nil
}

func mergeTopK(results []art.Result, order art.Order, maxResults int) []art.Result {
	for i := 1; i < len(results); i++ {
		for j := i; j > 0 && metric(results[j], order) > metric(results[j-1], order); j-- {
			results[j], results[j-1] = results[j-1], results[j]
		}
	}

	if len(results) > maxResults {
		results = results[:maxResults]
	}

	return results
}

func metric(r art.Result, order art.Order) int64 {
	if order == art.OrderFrequency {
		return int64(r.Values.Freq())
	}

	return r.Values.MaxScore()
}
