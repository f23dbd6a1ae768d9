// Package vec3 implements the single-precision 3-vector used throughout
// the mesh pipeline: grid coordinates, triangle vertices, and normals.
package vec3

import "github.com/chewxy/math32"

// Vec is a single-precision 3D vector.
type Vec struct {
	X, Y, Z float32
}

// New builds a Vec from its three components.
func New(x, y, z float32) Vec {
	return Vec{X: x, Y: y, Z: z}
}

// Add returns v+w.
func (v Vec) Add(w Vec) Vec {
	return Vec{v.X + w.X, v.Y + w.Y, v.Z + w.Z}
}

// Sub returns v-w.
func (v Vec) Sub(w Vec) Vec {
	return Vec{v.X - w.X, v.Y - w.Y, v.Z - w.Z}
}

// Scale returns v scaled by s.
func (v Vec) Scale(s float32) Vec {
	return Vec{v.X * s, v.Y * s, v.Z * s}
}

// Cross returns v x w.
func (v Vec) Cross(w Vec) Vec {
	return Vec{
		v.Y*w.Z - v.Z*w.Y,
		v.Z*w.X - v.X*w.Z,
		v.X*w.Y - v.Y*w.X,
	}
}

// Dot returns v . w.
func (v Vec) Dot(w Vec) float32 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// SelfDot returns |v|^2.
func (v Vec) SelfDot() float32 {
	return v.Dot(v)
}

// Length returns |v|.
func (v Vec) Length() float32 {
	return math32.Sqrt(v.SelfDot())
}

// Normalize returns v scaled to unit length, or the zero vector if v is
// itself zero-length (matching the STL writer's degenerate-normal rule).
func (v Vec) Normalize() Vec {
	l := v.Length()
	if l == 0 {
		return Vec{}
	}
	return v.Scale(1 / l)
}

// Less implements the total (x,y,z) lexicographic order used to give
// edge-refinement a deterministic endpoint order.
func (v Vec) Less(w Vec) bool {
	if v.X != w.X {
		return v.X < w.X
	}
	if v.Y != w.Y {
		return v.Y < w.Y
	}
	return v.Z < w.Z
}

// Equal reports exact componentwise equality, the key used by the mesh's
// vertex-deduplication set.
func (v Vec) Equal(w Vec) bool {
	return v.X == w.X && v.Y == w.Y && v.Z == w.Z
}
