package field

import (
	"testing"

	"github.com/sjhalayka-port/qjuliamesh/accel"
	"github.com/sjhalayka-port/qjuliamesh/expr"
	"github.com/sjhalayka-port/qjuliamesh/quat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundaryAlwaysFalse(t *testing.T) {
	ast, err := expr.Compile("Z = Z")
	require.NoError(t, err)
	ref := accel.NewReference(ast, quat.New(0, 0, 0, 0), 1, 1e9)
	g := Sample(ref, Params{Resolution: 8, GridMin: -1.5, GridMax: 1.5, ZW: 0, Threshold: 1e9})
	assert.NoError(t, g.VerifyBoundary())
}

func TestEmptySetProducesAllFalseInterior(t *testing.T) {
	ast, err := expr.Compile("Z = Z*Z + C")
	require.NoError(t, err)
	c := quat.New(10, 10, 10, 10)
	ref := accel.NewReference(ast, c, 2, 0.01)
	g := Sample(ref, Params{Resolution: 8, GridMin: -1.5, GridMax: 1.5, ZW: 0, Threshold: 0.01})
	for x := 1; x < 7; x++ {
		for y := 1; y < 7; y++ {
			for z := 1; z < 7; z++ {
				assert.False(t, g.Get(x, y, z))
			}
		}
	}
}

func TestFullInteriorForIdentityEquation(t *testing.T) {
	ast, err := expr.Compile("Z = Z")
	require.NoError(t, err)
	ref := accel.NewReference(ast, quat.New(1, 2, 3, 4), 1, 1e9)
	g := Sample(ref, Params{Resolution: 8, GridMin: -1.5, GridMax: 1.5, ZW: 0, Threshold: 1e9})
	for x := 1; x < 7; x++ {
		for y := 1; y < 7; y++ {
			for z := 1; z < 7; z++ {
				assert.True(t, g.Get(x, y, z))
			}
		}
	}
}

func TestIntervalCollapseAndSwap(t *testing.T) {
	assert.Equal(t, float32(-1.5), func() float32 { a, _ := resolveInterval(1, 1); return a }())
	lo, hi := resolveInterval(2, -2)
	assert.Equal(t, float32(-2), lo)
	assert.Equal(t, float32(2), hi)
}

func TestParallelMatchesReference(t *testing.T) {
	ast, err := expr.Compile("Z = sin(Z) + C * sin(Z)")
	require.NoError(t, err)
	c := quat.New(0.3, 0.5, 0.4, 0.2)
	ref := accel.NewReference(ast, c, 6, 4.0)
	par := accel.NewParallel(ref, 4)

	g1 := Sample(ref, Params{Resolution: 10, GridMin: -1.5, GridMax: 1.5, ZW: 0, Threshold: 4.0})
	g2 := Sample(par, Params{Resolution: 10, GridMin: -1.5, GridMax: 1.5, ZW: 0, Threshold: 4.0})

	for i := range g1.voxel {
		assert.Equal(t, g1.voxel[i], g2.voxel[i])
	}
}
