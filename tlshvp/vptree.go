// Package tlshvp implements a vantage-point tree over fuzzy hashes,
// giving approximate nearest-neighbour search under any integer metric
// supplied by the caller (normally tlsh.Compare).
package tlshvp

import (
	"container/heap"
	"math/rand"

	"github.com/dgryski/go-tlsh"
)

// Item pairs a fuzzy hash with a caller-assigned document ID.
type Item struct {
	Hash *tlsh.FuzzyHash
	ID   uint64
}

// Metric measures the distance between two hashes. Smaller is closer.
// tlsh.Compare returns uint32, so it fits this signature once wrapped to
// return int, as NewTLSH does.
type Metric func(a, b *tlsh.FuzzyHash) int

type node struct {
	Item      Item
	Threshold int
	Left      *node
	Right     *node
}

// neighbor is one candidate result collected during Search.
type neighbor struct {
	item Item
	dist int
}

// nearestHeap is a max-heap over the k best candidates seen so far: the
// worst of them sits at the root, ready to be evicted when a closer
// hash turns up.
type nearestHeap []neighbor

func (h nearestHeap) Len() int            { return len(h) }
func (h nearestHeap) Less(i, j int) bool  { return h[i].dist > h[j].dist }
func (h nearestHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *nearestHeap) Push(x interface{}) { *h = append(*h, x.(neighbor)) }

func (h *nearestHeap) Pop() interface{} {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}

// VPTree is a vantage-point tree for approximate nearest-neighbour search
// over fuzzy hashes.
type VPTree struct {
	root   *node
	metric Metric
}

// New builds a VP-tree over items using the given metric. items is
// partitioned in place; callers that need the original order preserved
// should pass a copy.
func New(items []Item, metric Metric) (t *VPTree) {
	t = &VPTree{metric: metric}
	t.root = t.buildFromPoints(items)
	return
}

// NewTLSH builds a VP-tree using tlsh.Compare with default comparison
// options as the metric.
func NewTLSH(items []Item) *VPTree {
	return New(items, func(a, b *tlsh.FuzzyHash) int {
		return int(tlsh.Compare(a, b))
	})
}

// Search returns the up to k nearest neighbours of target, nearest first,
// along with their distances.
func (vp *VPTree) Search(target *tlsh.FuzzyHash, k int) (results []Item, distances []int) {
	if k < 1 {
		return
	}

	h := make(nearestHeap, 0, k)

	tau := int(^uint(0) >> 1) // math.MaxInt
	vp.search(vp.root, &tau, target, k, &h)

	// The heap pops worst-first, so fill the result slices back to front.
	results = make([]Item, h.Len())
	distances = make([]int, h.Len())
	for i := len(results) - 1; i >= 0; i-- {
		nb := heap.Pop(&h).(neighbor)
		results[i] = nb.item
		distances[i] = nb.dist
	}

	return
}

func (vp *VPTree) buildFromPoints(items []Item) (n *node) {
	if len(items) == 0 {
		return nil
	}

	n = &node{}

	// Take a random item out of the items slice and make it this node's item
	idx := rand.Intn(len(items))
	n.Item = items[idx]
	items[idx], items = items[len(items)-1], items[:len(items)-1]

	if len(items) > 0 {
		// Now partition the items into two equal-sized sets, one
		// closer to the node's item than the median, and one farther
		// away.
		median := len(items) / 2
		pivotDist := vp.metric(items[median].Hash, n.Item.Hash)
		items[median], items[len(items)-1] = items[len(items)-1], items[median]

		storeIndex := 0
		for i := 0; i < len(items)-1; i++ {
			if vp.metric(items[i].Hash, n.Item.Hash) <= pivotDist {
				items[storeIndex], items[i] = items[i], items[storeIndex]
				storeIndex++
			}
		}
		items[len(items)-1], items[storeIndex] = items[storeIndex], items[len(items)-1]
		median = storeIndex

		n.Threshold = vp.metric(items[median].Hash, n.Item.Hash)
		n.Left = vp.buildFromPoints(items[:median])
		n.Right = vp.buildFromPoints(items[median:])
	}
	return
}

func (vp *VPTree) search(n *node, tau *int, target *tlsh.FuzzyHash, k int, h *nearestHeap) {
	if n == nil {
		return
	}

	dist := vp.metric(n.Item.Hash, target)

	if dist < *tau {
		if h.Len() == k {
			heap.Pop(h)
		}
		heap.Push(h, neighbor{n.Item, dist})
		if h.Len() == k {
			*tau = (*h)[0].dist
		}
	}

	if n.Left == nil && n.Right == nil {
		return
	}

	// The prune tests are written in subtraction form so that a fresh
	// tau of MaxInt cannot overflow an addition.
	if dist < n.Threshold {
		if dist-*tau <= n.Threshold {
			vp.search(n.Left, tau, target, k, h)
		}

		if *tau >= n.Threshold-dist {
			vp.search(n.Right, tau, target, k, h)
		}
	} else {
		if *tau >= n.Threshold-dist {
			vp.search(n.Right, tau, target, k, h)
		}

		if dist-*tau <= n.Threshold {
			vp.search(n.Left, tau, target, k, h)
		}
	}
}
