package expr

import "github.com/sjhalayka-port/qjuliamesh/quat"

// node is the common interface for every expression-tree element. The
// tree is built once by Compile and never mutated afterwards.
type node interface {
	eval(z, c quat.Quaternion) (quat.Quaternion, bool)
}

type literalNode struct {
	value float32
}

func (n *literalNode) eval(z, c quat.Quaternion) (quat.Quaternion, bool) {
	return quat.New(0, 0, 0, n.value), true
}

type varNode struct {
	name string // "Z" or "C"
}

func (n *varNode) eval(z, c quat.Quaternion) (quat.Quaternion, bool) {
	if n.name == "Z" {
		return z, true
	}
	return c, true
}

type unaryNegNode struct {
	operand node
}

func (n *unaryNegNode) eval(z, c quat.Quaternion) (quat.Quaternion, bool) {
	v, ok := n.operand.eval(z, c)
	if !ok {
		return quat.Quaternion{}, false
	}
	return v.Neg(), true
}

type binaryNode struct {
	op          byte // '+', '-', '*', '/'
	left, right node
}

func (n *binaryNode) eval(z, c quat.Quaternion) (quat.Quaternion, bool) {
	l, ok := n.left.eval(z, c)
	if !ok {
		return quat.Quaternion{}, false
	}
	r, ok := n.right.eval(z, c)
	if !ok {
		return quat.Quaternion{}, false
	}
	switch n.op {
	case '+':
		return l.Add(r), true
	case '-':
		return l.Sub(r), true
	case '*':
		return l.Mul(r), true
	case '/':
		return l.Div(r)
	}
	return quat.Quaternion{}, false
}

type callNode struct {
	name string // sin, cos, tan, exp, log, sqrt
	arg  node
}

var unaryFuncs = map[string]func(quat.Quaternion) quat.Quaternion{
	"sin":  quat.Sin,
	"cos":  quat.Cos,
	"tan":  quat.Tan,
	"exp":  quat.Exp,
	"log":  quat.Log,
	"sqrt": quat.Sqrt,
}

func (n *callNode) eval(z, c quat.Quaternion) (quat.Quaternion, bool) {
	v, ok := n.arg.eval(z, c)
	if !ok {
		return quat.Quaternion{}, false
	}
	f, known := unaryFuncs[n.name]
	if !known {
		return quat.Quaternion{}, false
	}
	return f(v), true
}

// AST is a compiled equation, immutable after Compile returns it.
type AST struct {
	root node
}

// Eval evaluates the compiled equation for the given Z and C operands.
// ok is false when the evaluation hit a division by a zero-norm
// quaternion; the caller must treat the sample as escaped.
func (a *AST) Eval(z, c quat.Quaternion) (quat.Quaternion, bool) {
	return a.root.eval(z, c)
}
