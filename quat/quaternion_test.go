package quat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMulIdentity(t *testing.T) {
	one := New(0, 0, 0, 1)
	q := New(1, 2, 3, 4)
	assert.Equal(t, q, q.Mul(one))
	assert.Equal(t, q, one.Mul(q))
}

func TestMulNonCommutative(t *testing.T) {
	i := New(1, 0, 0, 0)
	j := New(0, 1, 0, 0)
	k := New(0, 0, 1, 0)
	assert.Equal(t, k, i.Mul(j))
	assert.Equal(t, k.Neg(), j.Mul(i))
}

func TestDivZeroEscapes(t *testing.T) {
	q := New(1, 2, 3, 4)
	_, ok := q.Div(New(0, 0, 0, 0))
	assert.False(t, ok)
}

func TestDivRoundTrip(t *testing.T) {
	q := New(1, 2, 3, 4)
	r := New(0.5, -0.25, 0.1, 2)
	quotient, ok := q.Div(r)
	require.True(t, ok)
	back := quotient.Mul(r)
	assert.InDelta(t, q.X, back.X, 1e-3)
	assert.InDelta(t, q.Y, back.Y, 1e-3)
	assert.InDelta(t, q.Z, back.Z, 1e-3)
	assert.InDelta(t, q.W, back.W, 1e-3)
}

func TestSelfDot(t *testing.T) {
	q := New(1, 2, 3, 4)
	assert.Equal(t, float32(30), q.SelfDot())
}
