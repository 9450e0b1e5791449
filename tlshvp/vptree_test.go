package tlshvp

import (
	"container/heap"
	"testing"

	"github.com/dgryski/go-tlsh"
)

func mustHash(t *testing.T, seed byte, n int) *tlsh.FuzzyHash {
	t.Helper()
	buf := make([]byte, n)
	x := seed
	for i := range buf {
		x = x*31 + byte(i)
		buf[i] = x
	}
	h, err := tlsh.Oneshot(buf)
	if err != nil {
		t.Fatalf("Oneshot: %v", err)
	}
	return h
}

var metric = func(a, b *tlsh.FuzzyHash) int { return int(tlsh.Compare(a, b)) }

// nearestNeighbours finds the k nearest neighbours of target in items by
// brute force. It's slower than the VPTree, but its correctness is easy
// to verify, so we can test the VPTree against it.
func nearestNeighbours(target *tlsh.FuzzyHash, items []Item, k int) (coords []Item, distances []int) {
	h := &nearestHeap{}

	for _, v := range items {
		heap.Push(h, neighbor{v, metric(v.Hash, target)})
	}

	for h.Len() > k {
		heap.Pop(h)
	}

	coords = make([]Item, h.Len())
	distances = make([]int, h.Len())
	for i := len(coords) - 1; i >= 0; i-- {
		nb := heap.Pop(h).(neighbor)
		coords[i] = nb.item
		distances[i] = nb.dist
	}

	return
}

func TestEmpty(t *testing.T) {
	vp := NewTLSH(nil)
	target := mustHash(t, 1, 64)

	coords, distances := vp.Search(target, 3)

	if len(coords) != 0 {
		t.Error("coords should have been of length 0")
	}
	if len(distances) != 0 {
		t.Error("distances should have been of length 0")
	}
}

func TestSmallMatchesBruteForce(t *testing.T) {
	var items []Item
	for i := 0; i < 20; i++ {
		items = append(items, Item{Hash: mustHash(t, byte(i*7+1), 80+i), ID: uint64(i)})
	}

	target := mustHash(t, 99, 90)

	itemsCopy := make([]Item, len(items))
	copy(itemsCopy, items)

	vp := NewTLSH(itemsCopy)

	coords1, distances1 := vp.Search(target, 5)
	coords2, distances2 := nearestNeighbours(target, items, 5)

	if len(coords1) != len(coords2) {
		t.Fatalf("got %d results, want %d", len(coords1), len(coords2))
	}
	for i := range distances1 {
		if distances1[i] != distances2[i] {
			t.Fatalf("distances[%d] = %d, want %d", i, distances1[i], distances2[i])
		}
	}
}

func TestSearchOrderedByDistance(t *testing.T) {
	var items []Item
	for i := 0; i < 12; i++ {
		items = append(items, Item{Hash: mustHash(t, byte(i*13+3), 70+i*3), ID: uint64(i)})
	}

	vp := NewTLSH(items)
	target := mustHash(t, 42, 75)

	_, distances := vp.Search(target, len(items))
	for i := 1; i < len(distances); i++ {
		if distances[i] < distances[i-1] {
			t.Fatalf("distances not sorted ascending: %v", distances)
		}
	}
}
