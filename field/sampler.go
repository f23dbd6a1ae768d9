package field

import (
	"github.com/sjhalayka-port/qjuliamesh/accel"
	"github.com/sjhalayka-port/qjuliamesh/quat"
)

// Params configures a sampling pass.
type Params struct {
	Resolution int
	GridMin    float32
	GridMax    float32
	ZW         float32
	Threshold  float32
}

// resolveInterval normalises [gmin, gmax]: swap if reversed, collapse to
// the default [-1.5, 1.5] if equal.
func resolveInterval(gmin, gmax float32) (float32, float32) {
	if gmin == gmax {
		return -1.5, 1.5
	}
	if gmin > gmax {
		return gmax, gmin
	}
	return gmin, gmax
}

// Step returns the grid spacing h = (gmax-gmin)/(R-1) for the resolved
// interval.
func Step(p Params) float32 {
	gmin, gmax := resolveInterval(p.GridMin, p.GridMax)
	r := p.Resolution
	if r < 2 {
		return gmax - gmin
	}
	return (gmax - gmin) / float32(r-1)
}

// Point returns the world-space sample location of voxel (x,y,z) under p,
// using the same gmin/h mapping as Sample. Exposed so the polygoniser can
// place cube corners at exactly the coordinates the sampler used.
func Point(p Params, x, y, z int) quat.Quaternion {
	gmin, gmax := resolveInterval(p.GridMin, p.GridMax)
	h := Step(Params{Resolution: p.Resolution, GridMin: gmin, GridMax: gmax})
	return quat.New(gmin+float32(x)*h, gmin+float32(y)*h, gmin+float32(z)*h, p.ZW)
}

// Sample fills an OccupancyGrid by batched-evaluating every voxel centre
// one x-slice (the yz-plane at fixed x) at a time, then forces the six
// outer faces back to false.
func Sample(eval accel.Evaluator, p Params) *Grid {
	gmin, gmax := resolveInterval(p.GridMin, p.GridMax)
	r := p.Resolution
	g := NewGrid(r)
	h := Step(Params{Resolution: r, GridMin: gmin, GridMax: gmax})

	points := make([]quat.Quaternion, 0, r*r)
	for x := 0; x < r; x++ {
		points = points[:0]
		px := gmin + float32(x)*h
		for y := 0; y < r; y++ {
			py := gmin + float32(y)*h
			for z := 0; z < r; z++ {
				pz := gmin + float32(z)*h
				points = append(points, quat.New(px, py, pz, p.ZW))
			}
		}
		results := eval.EvaluateBatch(points)
		idx := 0
		for y := 0; y < r; y++ {
			for z := 0; z < r; z++ {
				g.Set(x, y, z, results[idx] < p.Threshold)
				idx++
			}
		}
	}

	g.ForceBoundaryFalse()
	return g
}
