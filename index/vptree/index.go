package vptree

import (
	"container/heap"
	"math"
	"sort"

	"github.com/viant/vec/search"

	"github.com/viant/knn-digits/index"
	"github.com/viant/knn-digits/vector"
)

// slack widens pruning bounds to absorb float32 rounding in distances.
const slack = 1e-4

// Index implements exact kNN search using a vantage-point tree.
type Index struct {
	samples []vector.Sample
	dim     int
	root    *node
}

type node struct {
	pos   int // position of the vantage point in samples
	thr   float64
	left  *node // distance to vantage point <= thr
	right *node // distance to vantage point >= thr
}

// New returns an empty vantage-point tree index.
func New() index.Index { return &Index{} }

// Build constructs the tree. The samples slice is retained, not copied.
func (i *Index) Build(samples []vector.Sample) error {
	dim, err := index.CheckSamples(samples)
	if err != nil {
		return err
	}
	i.samples = samples
	i.dim = dim
	i.root = nil
	if len(samples) == 0 {
		return nil
	}
	positions := make([]int, len(samples))
	for k := range positions {
		positions[k] = k
	}
	i.root = i.build(positions)
	return nil
}

func (i *Index) build(positions []int) *node {
	if len(positions) == 0 {
		return nil
	}
	// pick last as vantage point to avoid extra randomness
	vp := positions[len(positions)-1]
	rest := positions[:len(positions)-1]
	if len(rest) == 0 {
		return &node{pos: vp}
	}
	center := search.Float32s(i.samples[vp].Features)
	dists := make([]float64, len(rest))
	for k, p := range rest {
		dists[k] = float64(center.EuclideanDistance(search.Float32s(i.samples[p].Features)))
	}
	order := make([]int, len(rest))
	for k := range order {
		order[k] = k
	}
	sort.Slice(order, func(a, b int) bool { return dists[order[a]] < dists[order[b]] })
	mid := len(order) / 2
	thr := dists[order[mid]]
	left := make([]int, 0, mid+1)
	right := make([]int, 0, len(order)-mid-1)
	for rank, k := range order {
		if rank <= mid {
			left = append(left, rest[k])
		} else {
			right = append(right, rest[k])
		}
	}
	return &node{
		pos:   vp,
		thr:   thr,
		left:  i.build(left),
		right: i.build(right),
	}
}

// Search returns the k nearest samples ordered by distance, then position.
func (i *Index) Search(query []float32, k int) ([]index.Neighbor, error) {
	if err := index.CheckQuery(query, k, len(i.samples), i.dim); err != nil {
		return nil, err
	}
	s := &searcher{
		q:       search.Float32s(query),
		k:       k,
		samples: i.samples,
		best:    make(candidates, 0, k),
	}
	s.visit(i.root)

	out := make([]index.Neighbor, len(s.best))
	copy(out, s.best)
	sort.Slice(out, func(a, b int) bool { return closer(out[a], out[b]) })
	return out, nil
}

// Len returns the number of indexed samples.
func (i *Index) Len() int { return len(i.samples) }

// Dim returns the feature dimensionality.
func (i *Index) Dim() int { return i.dim }

type searcher struct {
	q       search.Float32s
	k       int
	samples []vector.Sample
	best    candidates
}

// tau is the distance a sample must not exceed to enter the result set.
func (s *searcher) tau() float64 {
	if len(s.best) < s.k {
		return math.Inf(1)
	}
	return s.best[0].Distance
}

func (s *searcher) offer(n index.Neighbor) {
	if len(s.best) < s.k {
		heap.Push(&s.best, n)
		return
	}
	if closer(n, s.best[0]) {
		s.best[0] = n
		heap.Fix(&s.best, 0)
	}
}

func (s *searcher) visit(n *node) {
	if n == nil {
		return
	}
	smp := s.samples[n.pos]
	d := float64(s.q.EuclideanDistance(search.Float32s(smp.Features)))
	s.offer(index.Neighbor{Position: n.pos, Label: smp.Label, Distance: d})

	// Descend into the side the query falls in first to tighten tau sooner.
	if d <= n.thr {
		if s.reachable(d-n.thr) {
			s.visit(n.left)
		}
		if s.reachable(n.thr - d) {
			s.visit(n.right)
		}
		return
	}
	if s.reachable(n.thr - d) {
		s.visit(n.right)
	}
	if s.reachable(d - n.thr) {
		s.visit(n.left)
	}
}

// reachable reports whether a subtree whose samples are at least bound away
// from the query may still hold a sample at distance <= tau.
func (s *searcher) reachable(bound float64) bool {
	tau := s.tau()
	return bound <= tau+slack*(1+tau)
}

// closer is the total order used for ranking: distance, then position.
func closer(a, b index.Neighbor) bool {
	if a.Distance != b.Distance {
		return a.Distance < b.Distance
	}
	return a.Position < b.Position
}

// candidates is a max-heap on the closer order; the root is the current
// k-th nearest neighbor.
type candidates []index.Neighbor

func (h candidates) Len() int           { return len(h) }
func (h candidates) Less(i, j int) bool { return closer(h[j], h[i]) }
func (h candidates) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *candidates) Push(x any) {
	*h = append(*h, x.(index.Neighbor))
}

func (h *candidates) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
