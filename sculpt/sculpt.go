// Package sculpt implements the grid-sculpting operators applied, in a
// fixed order, to the occupancy grid before polygonisation: optional
// shell extraction plus dilation, then ordered block add/subtract.
package sculpt

import (
	"math"

	"github.com/sjhalayka-port/qjuliamesh/field"
)

// Config bundles the sculptor's tunables.
type Config struct {
	ShellThickness float32 // in [0,1]; 0 disables shell extraction entirely
	Blocks         []Block // applied in order after shelling
}

// Apply runs shell extraction + dilation (if enabled) followed by the
// ordered block add/subtract passes, all in place on g.
func Apply(g *field.Grid, cfg Config) {
	if cfg.ShellThickness > 0 {
		extractAndThickenShell(g, cfg.ShellThickness)
	}
	for _, b := range cfg.Blocks {
		if b.Additive {
			addBlock(g, b)
		} else {
			subtractBlock(g, b)
		}
	}
}

// surfaceSet returns the set of voxels that are true and have at least
// one false 26-neighbour, skipping outer-face voxels (which are always
// false already).
func surfaceSet(g *field.Grid) *field.Grid {
	r := g.R
	surface := field.NewGrid(r)
	for x := 1; x < r-1; x++ {
		for y := 1; y < r-1; y++ {
			for z := 1; z < r-1; z++ {
				if !g.Get(x, y, z) {
					continue
				}
				if hasNeighbourWith(g, x, y, z, false) {
					surface.Set(x, y, z, true)
				}
			}
		}
	}
	return surface
}

func hasNeighbourWith(g *field.Grid, x, y, z int, want bool) bool {
	for i := -1; i <= 1; i++ {
		for j := -1; j <= 1; j++ {
			for k := -1; k <= 1; k++ {
				if i == 0 && j == 0 && k == 0 {
					continue
				}
				if g.Get(x+i, y+j, z+k) == want {
					return true
				}
			}
		}
	}
	return false
}

// extractAndThickenShell converts shellThickness in [0,1] to an integer
// thickness t = max(2, round(R*shellThickness)), extracts the one-voxel
// surface set, dilates it t-1 passes (each pass reading the pre-pass
// snapshot so dilation is geometrically uniform), then replaces g with
// the resulting shell.
func extractAndThickenShell(g *field.Grid, shellThickness float32) {
	r := g.R
	surface := surfaceSet(g)

	t := int(math.Round(float64(r) * float64(shellThickness)))
	if t < 2 {
		t = 2
	}

	shell := surface
	for pass := 0; pass < t-1; pass++ {
		snapshot := shell
		next := snapshot.Clone()
		for x := 1; x < r-1; x++ {
			for y := 1; y < r-1; y++ {
				for z := 1; z < r-1; z++ {
					if snapshot.Get(x, y, z) || !g.Get(x, y, z) {
						continue
					}
					if hasNeighbourWith(snapshot, x, y, z, true) {
						next.Set(x, y, z, true)
					}
				}
			}
		}
		shell = next
	}

	*g = *shell
}

// voxelRange maps a block's normalised axis range to an inclusive
// integer voxel range [round((R-1)*start), round((R-1)*end)].
func voxelRange(r int, start, end float32) (int, int) {
	lo := int(math.Round(float64(r-1) * float64(start)))
	hi := int(math.Round(float64(r-1) * float64(end)))
	return lo, hi
}

// addBlock sets every voxel in the block's range to true, except those
// on the outer boundary on any axis: the full outer boundary is
// excluded symmetrically on x, y and z.
func addBlock(g *field.Grid, b Block) {
	r := g.R
	x0, x1 := voxelRange(r, b.StartX, b.EndX)
	y0, y1 := voxelRange(r, b.StartY, b.EndY)
	z0, z1 := voxelRange(r, b.StartZ, b.EndZ)

	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			for z := z0; z <= z1; z++ {
				if g.IsBoundary(x, y, z) {
					continue
				}
				g.Set(x, y, z, true)
			}
		}
	}
}

// subtractBlock clears every voxel in the block's range unconditionally.
func subtractBlock(g *field.Grid, b Block) {
	r := g.R
	x0, x1 := voxelRange(r, b.StartX, b.EndX)
	y0, y1 := voxelRange(r, b.StartY, b.EndY)
	z0, z1 := voxelRange(r, b.StartZ, b.EndZ)

	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			for z := z0; z <= z1; z++ {
				g.Set(x, y, z, false)
			}
		}
	}
}
