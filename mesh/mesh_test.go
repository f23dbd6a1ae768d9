package mesh

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sjhalayka-port/qjuliamesh/vec3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func insertTetrahedron(t *testing.T, m *IndexedMesh) {
	t.Helper()
	o := vec3.New(0, 0, 0)
	a := vec3.New(1, 0, 0)
	b := vec3.New(0, 1, 0)
	c := vec3.New(0, 0, 1)

	require.NoError(t, m.Insert(o, b, a))
	require.NoError(t, m.Insert(o, a, c))
	require.NoError(t, m.Insert(o, c, b))
	require.NoError(t, m.Insert(a, b, c))
}

func TestInsertDeduplicatesVertices(t *testing.T) {
	m := New()
	insertTetrahedron(t, m)
	assert.Equal(t, 4, m.TriangleCount())
	assert.Equal(t, 4, m.VertexCount())
}

func TestInsertAfterFinalizeFails(t *testing.T) {
	m := New()
	insertTetrahedron(t, m)
	m.Finalize()
	err := m.Insert(vec3.New(0, 0, 0), vec3.New(1, 0, 0), vec3.New(0, 1, 0))
	assert.ErrorIs(t, err, ErrNotOpen)
}

func TestInitInsertionReopensFromFinalized(t *testing.T) {
	m := New()
	insertTetrahedron(t, m)
	m.Finalize()
	m.InitInsertion()
	assert.False(t, m.Finalized())
	assert.Equal(t, 0, m.TriangleCount())
	require.NoError(t, m.Insert(vec3.New(0, 0, 0), vec3.New(1, 0, 0), vec3.New(0, 1, 0)))
	assert.Equal(t, 1, m.TriangleCount())
}

func TestFinalizeEmptyMeshIsNotAnError(t *testing.T) {
	m := New()
	m.Finalize()
	assert.True(t, m.Finalized())
	assert.Equal(t, 0, m.TriangleCount())
}

func TestTetrahedronTopologyIsClean(t *testing.T) {
	m := New()
	insertTetrahedron(t, m)
	m.Finalize()

	assert.Equal(t, 0, m.DegenerateTriangleCount())
	assert.Equal(t, 0, m.ProblemEdgeCount())
	assert.InDelta(t, float32(1.0/6.0), m.Volume(), 1e-5)
	assert.Greater(t, m.Area(), float32(0))
	assert.InDelta(t, float32(1), m.XExtent(), 1e-6)
	assert.InDelta(t, float32(1), m.YExtent(), 1e-6)
	assert.InDelta(t, float32(1), m.ZExtent(), 1e-6)
}

func TestDegenerateTriangleIsDetected(t *testing.T) {
	m := New()
	v := vec3.New(1, 2, 3)
	require.NoError(t, m.Insert(v, v, vec3.New(4, 5, 6)))
	m.Finalize()
	assert.Equal(t, 1, m.DegenerateTriangleCount())
}

func TestConnectedShellCountOnTetrahedron(t *testing.T) {
	m := New()
	insertTetrahedron(t, m)
	m.Finalize()
	shells, err := m.ConnectedShellCount()
	require.NoError(t, err)
	assert.Equal(t, 1, shells)
}

func TestConnectedShellCountOnTwoDisjointTetrahedra(t *testing.T) {
	m := New()
	insertTetrahedron(t, m)
	offset := vec3.New(100, 100, 100)
	o := vec3.New(0, 0, 0).Add(offset)
	a := vec3.New(1, 0, 0).Add(offset)
	b := vec3.New(0, 1, 0).Add(offset)
	c := vec3.New(0, 0, 1).Add(offset)
	require.NoError(t, m.Insert(o, b, a))
	require.NoError(t, m.Insert(o, a, c))
	require.NoError(t, m.Insert(o, c, b))
	require.NoError(t, m.Insert(a, b, c))
	m.Finalize()

	shells, err := m.ConnectedShellCount()
	require.NoError(t, err)
	assert.Equal(t, 2, shells)
}

func TestSelfOverlapCountOnTetrahedronIsZero(t *testing.T) {
	m := New()
	insertTetrahedron(t, m)
	m.Finalize()
	overlaps, err := m.SelfOverlapCount()
	require.NoError(t, err)
	assert.Equal(t, 0, overlaps)
}

func TestAreaStats(t *testing.T) {
	m := New()
	insertTetrahedron(t, m)
	m.Finalize()
	mean, stddev := m.AreaStats()
	assert.Greater(t, mean, 0.0)
	assert.GreaterOrEqual(t, stddev, 0.0)
}

func TestWriteSTLRejectsUnfinalizedMesh(t *testing.T) {
	m := New()
	insertTetrahedron(t, m)
	err := m.WriteSTL(filepath.Join(t.TempDir(), "out.stl"), 0)
	assert.ErrorIs(t, err, ErrNotFinalized)
}

func TestWriteSTLRejectsEmptyMesh(t *testing.T) {
	m := New()
	m.Finalize()
	err := m.WriteSTL(filepath.Join(t.TempDir(), "out.stl"), 0)
	assert.ErrorIs(t, err, ErrNotFinalized)
}

func TestWriteSTLProducesExpectedByteLayout(t *testing.T) {
	m := New()
	insertTetrahedron(t, m)
	m.Finalize()

	path := filepath.Join(t.TempDir(), "out.stl")
	require.NoError(t, m.WriteSTL(path, 0))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	const headerSize = 80
	const perTriangle = 12*4 + 2
	require.Len(t, data, headerSize+4+perTriangle*4)

	for _, b := range data[:headerSize] {
		assert.Equal(t, byte(0), b)
	}
}
