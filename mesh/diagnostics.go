package mesh

import (
	"strconv"

	"github.com/dhconnelly/rtreego"
	"github.com/katalvlaran/lvlath/bfs"
	"github.com/katalvlaran/lvlath/core"
	"gonum.org/v1/gonum/stat"
)

// ConnectedShellCount reports the number of connected components of the
// finalised vertex-adjacency graph, i.e. the number of separate
// surfaces ("shells") the mesh is made of, via lvlath's core.Graph and
// bfs.BFS. Two nested, disjoint surfaces report a count of 2.
func (m *IndexedMesh) ConnectedShellCount() (int, error) {
	if !m.finalized {
		return 0, ErrNotFinalized
	}
	if len(m.vertices) == 0 {
		return 0, nil
	}

	g := core.NewGraph(core.WithDirected(false))
	for i := range m.vertices {
		if err := g.AddVertex(strconv.Itoa(i)); err != nil {
			return 0, err
		}
	}
	for i, neighbours := range m.vertexToVertices {
		for _, j := range neighbours {
			if j <= i {
				continue
			}
			if _, err := g.AddEdge(strconv.Itoa(i), strconv.Itoa(j), 0); err != nil {
				return 0, err
			}
		}
	}

	visited := make(map[string]bool, len(m.vertices))
	shells := 0
	for i := range m.vertices {
		id := strconv.Itoa(i)
		if visited[id] {
			continue
		}
		shells++
		result, err := bfs.BFS(g, id)
		if err != nil {
			return 0, err
		}
		for _, v := range result.Order {
			visited[v] = true
		}
	}
	return shells, nil
}

// AreaStats returns the mean and sample standard deviation of
// per-triangle area, a supplementary quality metric alongside the
// mesh's total Area(), computed with gonum.org/v1/gonum/stat.
func (m *IndexedMesh) AreaStats() (mean, stddev float64) {
	if len(m.triangles) == 0 {
		return 0, 0
	}
	areas := make([]float64, len(m.triangles))
	for i := range m.triangles {
		areas[i] = float64(m.TriangleArea(i))
	}
	mean = stat.Mean(areas, nil)
	stddev = stat.StdDev(areas, mean, nil)
	return mean, stddev
}

// triangleBounds is an rtreego.Spatial wrapping one triangle's index
// and axis-aligned bounding box, padded by a small epsilon so that
// axis-aligned triangles still produce a valid (non-degenerate) Rect.
type triangleBounds struct {
	index int
	rect  rtreego.Rect
}

func (t *triangleBounds) Bounds() rtreego.Rect { return t.rect }

const boundsEpsilon = 1e-6

func triangleRect(v0, v1, v2 [3]float32) (rtreego.Rect, error) {
	minV, maxV := v0, v0
	for _, v := range [][3]float32{v1, v2} {
		for axis := 0; axis < 3; axis++ {
			if v[axis] < minV[axis] {
				minV[axis] = v[axis]
			}
			if v[axis] > maxV[axis] {
				maxV[axis] = v[axis]
			}
		}
	}
	p := rtreego.Point{float64(minV[0]), float64(minV[1]), float64(minV[2])}
	lengths := []float64{
		float64(maxV[0]-minV[0]) + boundsEpsilon,
		float64(maxV[1]-minV[1]) + boundsEpsilon,
		float64(maxV[2]-minV[2]) + boundsEpsilon,
	}
	return rtreego.NewRect(p, lengths)
}

func sharesVertex(a, b IndexedTriangle) bool {
	for _, ai := range a.V {
		for _, bi := range b.V {
			if ai == bi {
				return true
			}
		}
	}
	return false
}

// SelfOverlapCount is a best-effort self-intersection diagnostic: the
// number of non-adjacent triangle pairs whose axis-aligned bounding
// boxes intersect, via an R-tree (github.com/dhconnelly/rtreego). It
// supplements the problem-edge and degenerate-triangle checks with a
// coarse but cheap overlap signal.
func (m *IndexedMesh) SelfOverlapCount() (int, error) {
	if !m.finalized {
		return 0, ErrNotFinalized
	}
	if len(m.triangles) == 0 {
		return 0, nil
	}

	tree := rtreego.NewTree(3, 25, 50)
	boxes := make([]*triangleBounds, len(m.triangles))
	for i := range m.triangles {
		v0, v1, v2 := m.triangleVerts(i)
		rect, err := triangleRect(
			[3]float32{v0.X, v0.Y, v0.Z},
			[3]float32{v1.X, v1.Y, v1.Z},
			[3]float32{v2.X, v2.Y, v2.Z},
		)
		if err != nil {
			return 0, err
		}
		b := &triangleBounds{index: i, rect: rect}
		boxes[i] = b
		tree.Insert(b)
	}

	count := 0
	for i, b := range boxes {
		for _, hit := range tree.SearchIntersect(b.rect) {
			other := hit.(*triangleBounds)
			if other.index <= i {
				continue
			}
			if sharesVertex(m.triangles[i], m.triangles[other.index]) {
				continue
			}
			count++
		}
	}
	return count, nil
}
