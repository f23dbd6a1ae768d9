// Package render implements the Marching Cubes polygoniser: it walks
// every unit cube of the post-sculpt occupancy grid, looks up which
// edges the isosurface crosses, and places a vertex on each crossed
// edge by bisection refinement against the scalar field rather than
// linear interpolation.
package render

import (
	"github.com/sjhalayka-port/qjuliamesh/accel"
	"github.com/sjhalayka-port/qjuliamesh/field"
	"github.com/sjhalayka-port/qjuliamesh/quat"
	"github.com/sjhalayka-port/qjuliamesh/vec3"
)

// Triangle is one polygonised triangle, ephemeral until handed to the
// mesh's insert operation.
type Triangle struct {
	V0, V1, V2 vec3.Vec
}

// Params configures polygonisation.
type Params struct {
	Field                 field.Params
	VertexRefinementSteps int
}

// Polygonise runs Marching Cubes over every unit cube of g, refining
// each intersected edge's vertex against eval, and returns the
// generated triangles in no particular order.
func Polygonise(g *field.Grid, eval accel.Evaluator, p Params) []Triangle {
	r := g.R
	var triangles []Triangle

	var corner [8]bool
	var coord [8]vec3.Vec

	for x := 0; x < r-1; x++ {
		for y := 0; y < r-1; y++ {
			for z := 0; z < r-1; z++ {
				for c := 0; c < 8; c++ {
					cx := x + cubeCornerOffset[c][0]
					cy := y + cubeCornerOffset[c][1]
					cz := z + cubeCornerOffset[c][2]
					corner[c] = g.Get(cx, cy, cz)
					q := field.Point(p.Field, cx, cy, cz)
					coord[c] = vec3.New(q.X, q.Y, q.Z)
				}

				index := caseIndex(corner)
				if mcEdgeTable[index] == 0 {
					continue
				}

				var edgeVertex [12]vec3.Vec
				for e := 0; e < 12; e++ {
					if mcEdgeTable[index]&(1<<uint(e)) == 0 {
						continue
					}
					a := mcPairTable[e][0]
					b := mcPairTable[e][1]
					edgeVertex[e] = refineEdge(eval, p, coord[a], coord[b], corner[a], corner[b])
				}

				table := mcTriangleTable[index]
				for i := 0; i < len(table)/3; i++ {
					v2 := edgeVertex[table[i*3+0]]
					v1 := edgeVertex[table[i*3+1]]
					v0 := edgeVertex[table[i*3+2]]
					if degenerate(v0, v1, v2) {
						continue
					}
					triangles = append(triangles, Triangle{V0: v0, V1: v1, V2: v2})
				}
			}
		}
	}

	return triangles
}

// caseIndex sets bit c when corner c is inside the isosurface, i.e. its
// grid voxel is false.
func caseIndex(corner [8]bool) int {
	index := 0
	for c := 0; c < 8; c++ {
		if !corner[c] {
			index |= 1 << uint(c)
		}
	}
	return index
}

func degenerate(a, b, c vec3.Vec) bool {
	return a.Equal(b) || b.Equal(c) || a.Equal(c)
}

// refineEdge places the vertex on the edge (a,b). insideA and insideB
// are the corners' grid voxel values, so true marks a corner outside
// the isosurface (see caseIndex). It orders the endpoints by the Vec3 total order
// first so that the same unordered edge always refines to the same
// point regardless of which neighbouring cube visits it first. The
// initial estimate is the midpoint; each subsequent step evaluates the
// field at the current estimate and halves the remaining distance
// toward a fixed cube-corner endpoint: the outside corner (voxel true)
// if the probe is inside, the inside corner (voxel false) otherwise.
func refineEdge(eval accel.Evaluator, p Params, a, b vec3.Vec, insideA, insideB bool) vec3.Vec {
	lo, hi := a, b
	loInside, hiInside := insideA, insideB
	if hi.Less(lo) {
		lo, hi = hi, lo
		loInside, hiInside = hiInside, loInside
	}

	estimate := lo.Add(hi).Scale(0.5)
	if p.VertexRefinementSteps <= 0 || loInside == hiInside {
		return estimate
	}

	outside, inside := hi, lo
	if loInside {
		outside, inside = lo, hi
	}

	for step := 0; step < p.VertexRefinementSteps; step++ {
		probe := quat.New(estimate.X, estimate.Y, estimate.Z, p.Field.ZW)
		value := eval.EvaluateBatch([]quat.Quaternion{probe})[0]
		if value < p.Field.Threshold {
			estimate = estimate.Add(outside).Scale(0.5)
		} else {
			estimate = estimate.Add(inside).Scale(0.5)
		}
	}
	return estimate
}
