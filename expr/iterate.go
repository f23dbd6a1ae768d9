package expr

import "github.com/sjhalayka-port/qjuliamesh/quat"

// Iterate runs the compiled equation's escape test starting from z0,
// iterating Z := eval(AST, Z, C) up to n times. It halts early and
// returns the escape value the first time |Z|^2 exceeds threshold, or
// returns the final |Z|^2 if all n steps stay within threshold. A
// division-by-zero-norm evaluation failure is treated as an immediate
// escape: it returns threshold itself, which classifies as "not inside"
// since callers test strictly less-than.
func Iterate(ast *AST, z0, c quat.Quaternion, n int, threshold float32) float32 {
	z := z0
	for step := 0; step < n; step++ {
		next, ok := ast.Eval(z, c)
		if !ok {
			return threshold
		}
		z = next
		sq := z.SelfDot()
		if sq > threshold {
			return sq
		}
	}
	return z.SelfDot()
}

// Inside reports whether the escape value classifies as inside the set.
func Inside(escapeValue, threshold float32) bool {
	return escapeValue < threshold
}
