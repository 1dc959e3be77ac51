package geometry

import (
	"sync"
	"time"

	"github.com/df07/go-medium-tracer/pkg/core"
	"github.com/df07/go-medium-tracer/pkg/log"
)

// BoxPadding is added around every triangle when computing the root bounds so
// that flat geometry never produces a zero-volume box.
const BoxPadding = 0.01

// Candidate sets smaller than this are scored on the calling goroutine
const parallelScoreThreshold = 256

var logger = log.New("bvh")

// BVHNode represents a node in the Bounding Volume Hierarchy.
// Leaves hold triangle indices; internal nodes own exactly two children.
type BVHNode struct {
	BoundingBox core.AABB
	Left        *BVHNode
	Right       *BVHNode
	Triangles   []int // Triangle indices for leaf nodes (nil for internal nodes)
}

// IsLeaf reports whether the node has no children
func (n *BVHNode) IsLeaf() bool {
	return n.Left == nil
}

// BuildOptions controls BVH construction
type BuildOptions struct {
	SplitCandidates int // Evenly spaced split planes tried along the longest axis
	LeafSize        int // Sets this small become leaves without trying to split
	MaxDepth        int // Hard recursion limit
}

// DefaultBuildOptions returns sensible default values
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{
		SplitCandidates: 16,
		LeafSize:        2,
		MaxDepth:        48,
	}
}

// BVH represents a Bounding Volume Hierarchy over the triangles of a mesh.
// It is immutable once built and safe for concurrent queries.
type BVH struct {
	Root *BVHNode
	mesh Mesh
}

// NewBVH constructs a BVH over every triangle in mesh
func NewBVH(mesh Mesh, opts BuildOptions) *BVH {
	opts = opts.withDefaults()
	start := time.Now()

	count := mesh.TriangleCount()
	triangles := make([]int, count)
	bounds := core.EmptyAABB()
	for i := range triangles {
		triangles[i] = i
		bounds = bounds.Merge(TriangleBounds(mesh, i))
	}

	b := &builder{mesh: mesh, opts: opts}
	bvh := &BVH{
		Root: b.build(triangles, bounds.Pad(BoxPadding), 0),
		mesh: mesh,
	}

	stats := bvh.Stats()
	logger.Debugf(
		"BVH build time: %d ms, triangles: %d, nodes: %d, leafs: %d, maxDepth: %d",
		time.Since(start).Milliseconds(), count, stats.TotalNodes, stats.LeafNodes, stats.MaxDepth,
	)
	return bvh
}

func (o BuildOptions) withDefaults() BuildOptions {
	d := DefaultBuildOptions()
	if o.SplitCandidates <= 0 {
		o.SplitCandidates = d.SplitCandidates
	}
	if o.LeafSize <= 0 {
		o.LeafSize = d.LeafSize
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = d.MaxDepth
	}
	return o
}

type builder struct {
	mesh Mesh
	opts BuildOptions
}

// splitScore is the outcome of scoring one candidate plane
type splitScore struct {
	index                 int
	leftBox, rightBox     core.AABB
	leftCount, rightCount int
	cost                  float64
}

// build recursively partitions triangles inside box.
//
// Partitioning is overlap-tolerant: a triangle goes to every half-box it is
// not entirely outside of, so straddling triangles appear in both children.
// Child boxes are the half-boxes themselves rather than tight bounds, which
// keeps siblings disjoint apart from the shared split plane.
func (b *builder) build(triangles []int, box core.AABB, depth int) *BVHNode {
	if len(triangles) == 0 {
		return &BVHNode{BoundingBox: core.EmptyAABB()}
	}

	leaf := &BVHNode{BoundingBox: box, Triangles: triangles}
	if len(triangles) <= b.opts.LeafSize || depth >= b.opts.MaxDepth {
		return leaf
	}

	axis := box.LongestAxis()
	if box.Size().Axis(axis) <= 0 {
		return leaf
	}

	best := b.bestSplit(triangles, box, axis)
	if best.cost >= box.Cost(len(triangles)) {
		return leaf
	}

	leftSet := make([]int, 0, best.leftCount)
	rightSet := make([]int, 0, best.rightCount)
	for _, tri := range triangles {
		v0, v1, v2 := b.mesh.TriangleVertices(tri)
		if best.leftBox.OverlapsTriangle(v0, v1, v2) {
			leftSet = append(leftSet, tri)
		}
		if best.rightBox.OverlapsTriangle(v0, v1, v2) {
			rightSet = append(rightSet, tri)
		}
	}

	return &BVHNode{
		BoundingBox: box,
		Left:        b.build(leftSet, best.leftBox, depth+1),
		Right:       b.build(rightSet, best.rightBox, depth+1),
	}
}

// bestSplit scores every candidate plane and returns the cheapest one.
// Ties go to the candidate with the lowest index.
func (b *builder) bestSplit(triangles []int, box core.AABB, axis int) splitScore {
	n := b.opts.SplitCandidates
	length := box.Size().Axis(axis)
	scores := make([]splitScore, n)

	score := func(i int) {
		offset := length * float64(i+1) / float64(n+1)
		leftBox, rightBox := box.SplitAt(axis, offset)
		scores[i] = b.scoreSplit(triangles, i, leftBox, rightBox)
	}

	if len(triangles) < parallelScoreThreshold {
		for i := 0; i < n; i++ {
			score(i)
		}
	} else {
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				score(i)
			}(i)
		}
		wg.Wait()
	}

	best := scores[0]
	for _, candidate := range scores[1:] {
		if candidate.cost < best.cost {
			best = candidate
		}
	}
	return best
}

// scoreSplit computes SA(left)*|left| + SA(right)*|right| for one candidate
func (b *builder) scoreSplit(triangles []int, index int, leftBox, rightBox core.AABB) splitScore {
	s := splitScore{index: index, leftBox: leftBox, rightBox: rightBox}
	for _, tri := range triangles {
		v0, v1, v2 := b.mesh.TriangleVertices(tri)
		if leftBox.OverlapsTriangle(v0, v1, v2) {
			s.leftCount++
		}
		if rightBox.OverlapsTriangle(v0, v1, v2) {
			s.rightCount++
		}
	}
	s.cost = leftBox.Cost(s.leftCount) + rightBox.Cost(s.rightCount)
	return s
}

// NearestHit returns the closest triangle hit along the ray
func (bvh *BVH) NearestHit(ray core.Ray) (Intersection, bool) {
	if bvh.Root == nil {
		return Intersection{}, false
	}
	return bvh.intersectNode(bvh.Root, ray)
}

// intersectNode returns a hit no farther than any triangle hit lying inside
// node's box. Children are visited near-first; a near hit is accepted only if
// the hit point really lies in the near box, since overlap-tolerant leaves
// can report hits on the far side of the split plane.
func (bvh *BVH) intersectNode(node *BVHNode, ray core.Ray) (Intersection, bool) {
	if node.IsLeaf() {
		return bvh.intersectLeaf(node, ray)
	}

	tLeft, hitLeft := IntersectBox(node.Left.BoundingBox, ray)
	tRight, hitRight := IntersectBox(node.Right.BoundingBox, ray)

	switch {
	case !hitLeft && !hitRight:
		return Intersection{}, false
	case hitLeft && !hitRight:
		return bvh.intersectNode(node.Left, ray)
	case !hitLeft && hitRight:
		return bvh.intersectNode(node.Right, ray)
	}

	near, far := node.Left, node.Right
	if tRight < tLeft {
		near, far = far, near
	}

	nearHit, nearOK := bvh.intersectNode(near, ray)
	if nearOK && near.BoundingBox.ContainsPoint(nearHit.Point()) {
		return nearHit, true
	}

	farHit, farOK := bvh.intersectNode(far, ray)
	return closer(nearHit, nearOK, farHit, farOK)
}

// intersectLeaf box-tests the leaf and then brute-forces its triangles
func (bvh *BVH) intersectLeaf(node *BVHNode, ray core.Ray) (Intersection, bool) {
	if _, ok := IntersectBox(node.BoundingBox, ray); !ok {
		return Intersection{}, false
	}

	var closest Intersection
	hitAnything := false
	for _, tri := range node.Triangles {
		if hit, ok := IntersectMeshTriangle(bvh.mesh, ray, tri); ok {
			if !hitAnything || hit.T < closest.T {
				closest = hit
				hitAnything = true
			}
		}
	}
	return closest, hitAnything
}

// BoundingBox returns the overall bounding box of the BVH
func (bvh *BVH) BoundingBox() core.AABB {
	if bvh.Root == nil {
		return core.EmptyAABB()
	}
	return bvh.Root.BoundingBox
}

// BVHStats contains statistics about the BVH structure
type BVHStats struct {
	TotalNodes      int
	LeafNodes       int
	MaxDepth        int
	AvgLeafDepth    float64
	TriangleRefs    int // Triangle references across all leaves, counting duplicates
	UniqueTriangles int // Distinct triangles reachable from some leaf
}

// Stats returns statistics about the BVH structure
func (bvh *BVH) Stats() BVHStats {
	if bvh.Root == nil {
		return BVHStats{}
	}

	stats := BVHStats{}
	seen := make(map[int]struct{})
	bvh.collectStats(bvh.Root, 0, &stats, seen)

	if stats.LeafNodes > 0 {
		stats.AvgLeafDepth = stats.AvgLeafDepth / float64(stats.LeafNodes)
	}
	stats.UniqueTriangles = len(seen)

	return stats
}

// collectStats recursively collects statistics about the BVH
func (bvh *BVH) collectStats(node *BVHNode, depth int, stats *BVHStats, seen map[int]struct{}) {
	stats.TotalNodes++

	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	if node.IsLeaf() {
		stats.LeafNodes++
		stats.TriangleRefs += len(node.Triangles)
		stats.AvgLeafDepth += float64(depth)
		for _, tri := range node.Triangles {
			seen[tri] = struct{}{}
		}
		return
	}

	bvh.collectStats(node.Left, depth+1, stats, seen)
	bvh.collectStats(node.Right, depth+1, stats, seen)
}
