// Package mesh implements the shared-vertex IndexedMesh: triangle
// insertion with exact-coordinate vertex deduplication, adjacency
// finalisation, topological diagnostics, and the binary STL emitter.
// Insert, WriteSTL and the diagnostics in diagnostics.go return an error
// when called in the wrong state; the area, volume, extent and count
// queries do not check the state.
package mesh

import (
	"errors"
	"sort"

	"github.com/chewxy/math32"
	"github.com/sjhalayka-port/qjuliamesh/vec3"
)

// ErrNotOpen is returned by Insert when the mesh is not accepting
// triangles (it was never opened, or it has already been finalised).
var ErrNotOpen = errors.New("mesh: not open for insertion; call InitInsertion first")

// IndexedTriangle is a triangle recorded as three vertex indices, in
// winding order v0,v1,v2.
type IndexedTriangle struct {
	V [3]int
}

// IndexedMesh is a shared-vertex triangle mesh built by repeated Insert
// calls, then Finalize'd into a queryable form: an Empty -> Open ->
// Finalised lifecycle, where InitInsertion reopens from any state.
type IndexedMesh struct {
	vertices          []vec3.Vec
	triangles         []IndexedTriangle
	vertexToTriangles [][]int
	vertexToVertices  [][]int

	finalized   bool
	vertexDedup map[vec3.Vec]int
}

// New returns an empty, open mesh ready for Insert calls.
func New() *IndexedMesh {
	m := &IndexedMesh{}
	m.InitInsertion()
	return m
}

// InitInsertion clears the mesh and reopens it for triangle insertion,
// from any prior state.
func (m *IndexedMesh) InitInsertion() {
	m.vertices = nil
	m.triangles = nil
	m.vertexToTriangles = nil
	m.vertexToVertices = nil
	m.vertexDedup = make(map[vec3.Vec]int)
	m.finalized = false
}

// Insert appends one triangle, deduplicating its three corners against
// the exact-coordinate vertex set built up so far.
func (m *IndexedMesh) Insert(v0, v1, v2 vec3.Vec) error {
	if m.finalized || m.vertexDedup == nil {
		return ErrNotOpen
	}

	triIndex := len(m.triangles)
	var idx [3]int
	for j, v := range [3]vec3.Vec{v0, v1, v2} {
		if existing, ok := m.vertexDedup[v]; ok {
			idx[j] = existing
			m.vertexToTriangles[existing] = append(m.vertexToTriangles[existing], triIndex)
			continue
		}
		newIndex := len(m.vertices)
		m.vertexDedup[v] = newIndex
		m.vertices = append(m.vertices, v)
		m.vertexToTriangles = append(m.vertexToTriangles, []int{triIndex})
		idx[j] = newIndex
	}
	m.triangles = append(m.triangles, IndexedTriangle{V: idx})
	return nil
}

// Finalize builds each vertex's neighbour list from the union of other
// corners across its incident triangles, then drops the dedup set. A
// triangle-less mesh finalises trivially. Idempotent.
func (m *IndexedMesh) Finalize() {
	if m.finalized {
		return
	}
	if len(m.triangles) == 0 {
		m.finalized = true
		return
	}

	m.vertexToVertices = make([][]int, len(m.vertices))
	for i, incident := range m.vertexToTriangles {
		seen := make(map[int]bool)
		var neighbours []int
		for _, triIndex := range incident {
			for _, vi := range m.triangles[triIndex].V {
				if vi == i || seen[vi] {
					continue
				}
				seen[vi] = true
				neighbours = append(neighbours, vi)
			}
		}
		sort.Ints(neighbours)
		m.vertexToVertices[i] = neighbours
	}

	m.finalized = true
	m.vertexDedup = nil
}

// Finalized reports whether the mesh has been finalised.
func (m *IndexedMesh) Finalized() bool { return m.finalized }

// TriangleCount returns the number of triangles inserted.
func (m *IndexedMesh) TriangleCount() int { return len(m.triangles) }

// VertexCount returns the number of distinct vertices.
func (m *IndexedMesh) VertexCount() int { return len(m.vertices) }

func (m *IndexedMesh) triangleVerts(i int) (vec3.Vec, vec3.Vec, vec3.Vec) {
	t := m.triangles[i]
	return m.vertices[t.V[0]], m.vertices[t.V[1]], m.vertices[t.V[2]]
}

// TriangleArea returns triangle i's area, or 0 if i is out of range.
func (m *IndexedMesh) TriangleArea(i int) float32 {
	if i < 0 || i >= len(m.triangles) {
		return 0
	}
	v0, v1, v2 := m.triangleVerts(i)
	return 0.5 * v1.Sub(v0).Cross(v2.Sub(v0)).Length()
}

// Area returns the sum of every triangle's area.
func (m *IndexedMesh) Area() float32 {
	var total float32
	for i := range m.triangles {
		total += m.TriangleArea(i)
	}
	return total
}

// TriangleVolume returns triangle i's signed contribution to the
// enclosed volume (the divergence-theorem tetrahedron-to-origin term),
// or 0 if i is out of range. Callers rely on the polygoniser's winding
// to make this meaningful across the whole mesh.
func (m *IndexedMesh) TriangleVolume(i int) float32 {
	if i < 0 || i >= len(m.triangles) {
		return 0
	}
	v0, v1, v2 := m.triangleVerts(i)
	return v0.Dot(v1.Cross(v2)) / 6
}

// Volume returns the sum of every triangle's signed volume.
func (m *IndexedMesh) Volume() float32 {
	var total float32
	for i := range m.triangles {
		total += m.TriangleVolume(i)
	}
	return total
}

func (m *IndexedMesh) extent(component func(vec3.Vec) float32) float32 {
	if len(m.vertices) == 0 {
		return 0
	}
	min := component(m.vertices[0])
	max := min
	for _, v := range m.vertices[1:] {
		c := component(v)
		if c < min {
			min = c
		}
		if c > max {
			max = c
		}
	}
	return math32.Abs(min - max)
}

// XExtent returns |max-min| of the x coordinate over all vertices.
func (m *IndexedMesh) XExtent() float32 { return m.extent(func(v vec3.Vec) float32 { return v.X }) }

// YExtent returns |max-min| of the y coordinate over all vertices.
func (m *IndexedMesh) YExtent() float32 { return m.extent(func(v vec3.Vec) float32 { return v.Y }) }

// ZExtent returns |max-min| of the z coordinate over all vertices.
func (m *IndexedMesh) ZExtent() float32 { return m.extent(func(v vec3.Vec) float32 { return v.Z }) }

// DegenerateTriangleCount counts triangles with any two coincident
// vertex positions.
func (m *IndexedMesh) DegenerateTriangleCount() int {
	count := 0
	for i := range m.triangles {
		v0, v1, v2 := m.triangleVerts(i)
		if v0.Equal(v1) || v0.Equal(v2) || v1.Equal(v2) {
			count++
		}
	}
	return count
}

func (m *IndexedMesh) trianglesSharedByVertexPair(a, b int) int {
	count := 0
	for _, ta := range m.vertexToTriangles[a] {
		for _, tb := range m.vertexToTriangles[b] {
			if ta == tb {
				count++
				break
			}
		}
	}
	return count
}

// ProblemEdgeCount counts unordered edges whose incident-triangle count
// is not exactly 2 (boundary or non-manifold edges), found by walking
// each vertex's finalised neighbour list.
func (m *IndexedMesh) ProblemEdgeCount() int {
	seen := make(map[[2]int]bool)
	count := 0
	for i, neighbours := range m.vertexToVertices {
		for _, j := range neighbours {
			key := [2]int{i, j}
			if i > j {
				key = [2]int{j, i}
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			if m.trianglesSharedByVertexPair(i, j) != 2 {
				count++
			}
		}
	}
	return count
}
