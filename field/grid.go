// Package field samples a compiled equation over a dense grid, producing
// the boolean occupancy grid the sculptor and polygoniser operate on.
package field

import "fmt"

// Grid is a dense R x R x R boolean occupancy grid, linearised so index
// i = x*R^2 + y*R + z. The six outer faces are always false.
type Grid struct {
	R     int
	voxel []bool
}

// NewGrid allocates an all-false R x R x R grid.
func NewGrid(r int) *Grid {
	if r < 1 {
		r = 1
	}
	return &Grid{R: r, voxel: make([]bool, r*r*r)}
}

func (g *Grid) index(x, y, z int) int {
	return x*g.R*g.R + y*g.R + z
}

// Get reports whether voxel (x,y,z) is set.
func (g *Grid) Get(x, y, z int) bool {
	return g.voxel[g.index(x, y, z)]
}

// Set assigns voxel (x,y,z).
func (g *Grid) Set(x, y, z int, v bool) {
	g.voxel[g.index(x, y, z)] = v
}

// Clone returns an independent deep copy.
func (g *Grid) Clone() *Grid {
	cp := &Grid{R: g.R, voxel: make([]bool, len(g.voxel))}
	copy(cp.voxel, g.voxel)
	return cp
}

// IsBoundary reports whether (x,y,z) lies on one of the six outer faces.
func (g *Grid) IsBoundary(x, y, z int) bool {
	last := g.R - 1
	return x == 0 || x == last || y == 0 || y == last || z == 0 || z == last
}

// ForceBoundaryFalse clears every outer-face voxel, establishing the
// always-empty boundary invariant every Grid maintains.
func (g *Grid) ForceBoundaryFalse() {
	r := g.R
	for x := 0; x < r; x++ {
		for y := 0; y < r; y++ {
			for z := 0; z < r; z++ {
				if g.IsBoundary(x, y, z) {
					g.Set(x, y, z, false)
				}
			}
		}
	}
}

// VerifyBoundary reports an error describing the first boundary voxel
// found set, or nil if the boundary invariant holds. Exposed for tests
// that want to assert the universal invariant directly.
func (g *Grid) VerifyBoundary() error {
	r := g.R
	for x := 0; x < r; x++ {
		for y := 0; y < r; y++ {
			for z := 0; z < r; z++ {
				if g.IsBoundary(x, y, z) && g.Get(x, y, z) {
					return fmt.Errorf("boundary voxel (%d,%d,%d) is set", x, y, z)
				}
			}
		}
	}
	return nil
}
