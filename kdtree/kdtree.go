// Package kdtree is a fixed-dimension, mutable k-d tree over float32 points
// keyed by an opaque uint64 payload. It knows nothing about documents,
// fingerprints or similarity scores — those live one layer up, in the root
// kdvec package. This package's only job is: store points, find the k
// nearest to a query point, and remove points on an exact (point, payload)
// match.
//
// The split axis cycles round-robin by tree depth (depth % Dim), the same
// choice a plain, unbalanced k-d tree makes when it has no reason to prefer
// one axis over another. Leaves hold up to bucketSize points before they
// split, which keeps small trees flat and avoids one-point-per-node
// overhead — the same bucketing idea as a B-tree's leaf page.
package kdtree

import (
	"container/heap"
	"sort"
)

// Dim is the fixed point dimensionality this package is built for.
const Dim = 768

// bucketSize is the maximum number of points a leaf holds before it splits
// into two child leaves under a new internal node.
const bucketSize = 32

// maxNodes bounds the arena so every child reference fits in a uint16. It is
// a tuning constant, not a documented capacity guarantee: a tree that hits
// this ceiling keeps working, it just stops splitting and lets its deepest
// leaves grow past bucketSize.
const maxNodes = 1<<16 - 1

// Point is a fixed-Dim coordinate.
type Point [Dim]float32

// Entry is one stored (point, payload) pair, as returned by Entries.
type Entry struct {
	Point   Point
	Payload uint64
}

// Neighbor is one result of a NearestN query.
type Neighbor struct {
	Payload  uint64
	Distance float64 // squared Euclidean distance to the query point
}

type node struct {
	leaf    bool
	entries []Entry // populated when leaf

	axis  int     // split axis, populated when internal
	split float32 // split value: point[axis] <= split goes left
	left  uint16
	right uint16
}

// Tree is a mutable k-d tree over fixed-Dim points. The zero value is not
// usable; construct one with New. A Tree is not safe for concurrent use —
// callers needing that guarantee provide their own locking one layer up.
type Tree struct {
	nodes []node
	size  int
}

// New returns an empty Tree.
func New() *Tree {
	return &Tree{nodes: []node{{leaf: true}}}
}

// Size reports the number of (point, payload) entries currently stored,
// counting duplicates.
func (t *Tree) Size() int { return t.size }

// Add inserts point with the given payload. Duplicate points, and duplicate
// (point, payload) pairs, are both permitted — the tree does not deduplicate
// on insert.
func (t *Tree) Add(point Point, payload uint64) {
	t.insert(0, 0, point, payload)
	t.size++
}

func (t *Tree) insert(idx uint16, depth int, point Point, payload uint64) {
	n := t.nodes[idx]
	if n.leaf {
		n.entries = append(n.entries, Entry{Point: point, Payload: payload})
		t.nodes[idx] = n
		if len(n.entries) > bucketSize && len(t.nodes) < maxNodes-2 {
			t.split(idx, depth)
		}
		return
	}
	if point[n.axis] <= n.split {
		t.insert(n.left, depth+1, point, payload)
	} else {
		t.insert(n.right, depth+1, point, payload)
	}
}

// split converts the leaf at idx into an internal node, partitioning its
// entries by the median value along the depth's split axis.
//
// Every entry with point[axis] <= splitVal must land in the left child and
// every entry with point[axis] > splitVal in the right child — that is the
// same rule insert and Remove use to route a point past this node, and the
// partition has to agree with it exactly, not just approximate it by
// index. So after picking the median as splitVal, mid is pushed past any
// further entries equal to it: sorted order alone would otherwise leave
// the median entry (and any ties after it) on the right, where the routing
// rule would never look for them.
//
// If every entry shares the same value on this axis there is no way to
// split consistent with the routing rule; split leaves the node as an
// oversized leaf rather than build an internal node either branch of
// which would be unreachable for some of its own entries.
func (t *Tree) split(idx uint16, depth int) {
	entries := t.nodes[idx].entries
	axis := depth % Dim

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Point[axis] < entries[j].Point[axis]
	})
	mid := len(entries) / 2
	splitVal := entries[mid].Point[axis]
	for mid < len(entries) && entries[mid].Point[axis] == splitVal {
		mid++
	}
	if mid == len(entries) {
		return
	}

	left := append([]Entry(nil), entries[:mid]...)
	right := append([]Entry(nil), entries[mid:]...)

	leftIdx := t.newLeaf(left)
	rightIdx := t.newLeaf(right)

	t.nodes[idx] = node{
		axis:  axis,
		split: splitVal,
		left:  leftIdx,
		right: rightIdx,
	}
}

func (t *Tree) newLeaf(entries []Entry) uint16 {
	t.nodes = append(t.nodes, node{leaf: true, entries: entries})
	return uint16(len(t.nodes) - 1)
}

// Remove deletes every stored entry whose point and payload both exactly
// match the arguments, and returns how many were deleted. It is a no-op,
// returning 0, if no such entry exists.
//
// Because every insert routes a point down the same axis/split decisions,
// an exact point always lands in exactly one leaf — Remove walks a single
// root-to-leaf path rather than searching the whole tree.
func (t *Tree) Remove(point Point, payload uint64) int {
	idx := uint16(0)
	for {
		n := t.nodes[idx]
		if n.leaf {
			kept := n.entries[:0]
			removed := 0
			for _, e := range n.entries {
				if e.Point == point && e.Payload == payload {
					removed++
					continue
				}
				kept = append(kept, e)
			}
			t.nodes[idx].entries = kept
			t.size -= removed
			return removed
		}
		if point[n.axis] <= n.split {
			idx = n.left
		} else {
			idx = n.right
		}
	}
}

// Entries returns every stored (point, payload) pair, in unspecified order.
// It exists for serialization: flattening the tree to a list and rebuilding
// it with repeated Add calls is far simpler, and no less correct, than
// serializing the internal node structure.
func (t *Tree) Entries() []Entry {
	out := make([]Entry, 0, t.size)
	for _, n := range t.nodes {
		if n.leaf {
			out = append(out, n.entries...)
		}
	}
	return out
}

// NearestN returns up to k entries nearest to point under squared Euclidean
// distance, ordered nearest-first. It returns fewer than k if the tree
// holds fewer than k points, and nil if k <= 0.
func (t *Tree) NearestN(point Point, k int) []Neighbor {
	if k <= 0 {
		return nil
	}
	h := &neighborHeap{}
	t.search(0, point, k, h)

	out := make([]Neighbor, h.Len())
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = heap.Pop(h).(Neighbor)
	}
	return out
}

func (t *Tree) search(idx uint16, point Point, k int, h *neighborHeap) {
	n := t.nodes[idx]
	if n.leaf {
		for _, e := range n.entries {
			d := squaredDistance(point, e.Point)
			if h.Len() < k {
				heap.Push(h, Neighbor{Payload: e.Payload, Distance: d})
			} else if d < (*h)[0].Distance {
				heap.Pop(h)
				heap.Push(h, Neighbor{Payload: e.Payload, Distance: d})
			}
		}
		return
	}

	diff := float64(point[n.axis] - n.split)
	near, far := n.left, n.right
	if diff > 0 {
		near, far = far, near
	}
	t.search(near, point, k, h)

	planeDistSq := diff * diff
	if h.Len() < k || planeDistSq < (*h)[0].Distance {
		t.search(far, point, k, h)
	}
}

func squaredDistance(a, b Point) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}

// neighborHeap is a max-heap on Distance: the root is always the current
// worst of the up-to-k neighbors retained so far, so NearestN can pop one
// candidate in exchange for a closer one in O(log k).
type neighborHeap []Neighbor

func (h neighborHeap) Len() int            { return len(h) }
func (h neighborHeap) Less(i, j int) bool  { return h[i].Distance > h[j].Distance }
func (h neighborHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *neighborHeap) Push(x interface{}) { *h = append(*h, x.(Neighbor)) }
func (h *neighborHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
