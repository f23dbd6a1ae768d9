// Package quat implements quaternion arithmetic for the Julia-set
// evaluator: Hamilton product, conjugate, norm, and the componentwise
// transcendental lift used by the equation evaluator.
package quat

import "github.com/chewxy/math32"

// Quaternion is a single-precision Hamilton quaternion (x, y, z, w).
type Quaternion struct {
	X, Y, Z, W float32
}

// New builds a Quaternion from its four components.
func New(x, y, z, w float32) Quaternion {
	return Quaternion{X: x, Y: y, Z: z, W: w}
}

// Add returns q+r.
func (q Quaternion) Add(r Quaternion) Quaternion {
	return Quaternion{q.X + r.X, q.Y + r.Y, q.Z + r.Z, q.W + r.W}
}

// Sub returns q-r.
func (q Quaternion) Sub(r Quaternion) Quaternion {
	return Quaternion{q.X - r.X, q.Y - r.Y, q.Z - r.Z, q.W - r.W}
}

// Neg returns -q.
func (q Quaternion) Neg() Quaternion {
	return Quaternion{-q.X, -q.Y, -q.Z, -q.W}
}

// Scale returns q scaled by a real factor.
func (q Quaternion) Scale(s float32) Quaternion {
	return Quaternion{q.X * s, q.Y * s, q.Z * s, q.W * s}
}

// Mul returns the Hamilton product q*r.
func (q Quaternion) Mul(r Quaternion) Quaternion {
	return Quaternion{
		X: q.W*r.X + q.X*r.W + q.Y*r.Z - q.Z*r.Y,
		Y: q.W*r.Y - q.X*r.Z + q.Y*r.W + q.Z*r.X,
		Z: q.W*r.Z + q.X*r.Y - q.Y*r.X + q.Z*r.W,
		W: q.W*r.W - q.X*r.X - q.Y*r.Y - q.Z*r.Z,
	}
}

// Conj returns the conjugate of q.
func (q Quaternion) Conj() Quaternion {
	return Quaternion{-q.X, -q.Y, -q.Z, q.W}
}

// SelfDot returns the squared norm |q|^2 = x^2+y^2+z^2+w^2.
func (q Quaternion) SelfDot() float32 {
	return q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W
}

// Norm returns |q|.
func (q Quaternion) Norm() float32 {
	return math32.Sqrt(q.SelfDot())
}

// Div returns q/r = q * conj(r) / |r|^2.
// ok is false when |r|^2 == 0, in which case the result is the zero
// quaternion and the caller must treat the sample as escaped.
func (q Quaternion) Div(r Quaternion) (result Quaternion, ok bool) {
	n := r.SelfDot()
	if n == 0 {
		return Quaternion{}, false
	}
	return q.Mul(r.Conj()).Scale(1 / n), true
}

// unaryLift applies a real-valued unary transcendental to each of q's four
// components independently, following the convention used by the
// reference evaluator: componentwise lift, not a true quaternion-analytic
// extension.
func unaryLift(q Quaternion, f func(float32) float32) Quaternion {
	return Quaternion{f(q.X), f(q.Y), f(q.Z), f(q.W)}
}

// Sin applies sin componentwise.
func Sin(q Quaternion) Quaternion { return unaryLift(q, math32.Sin) }

// Cos applies cos componentwise.
func Cos(q Quaternion) Quaternion { return unaryLift(q, math32.Cos) }

// Tan applies tan componentwise.
func Tan(q Quaternion) Quaternion { return unaryLift(q, math32.Tan) }

// Exp applies exp componentwise.
func Exp(q Quaternion) Quaternion { return unaryLift(q, math32.Exp) }

// Log applies log componentwise.
func Log(q Quaternion) Quaternion { return unaryLift(q, math32.Log) }

// Sqrt applies sqrt componentwise.
func Sqrt(q Quaternion) Quaternion { return unaryLift(q, math32.Sqrt) }
