package vec3

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCrossDot(t *testing.T) {
	x := New(1, 0, 0)
	y := New(0, 1, 0)
	z := New(0, 0, 1)
	assert.Equal(t, z, x.Cross(y))
	assert.Equal(t, float32(0), x.Dot(y))
}

func TestNormalizeZero(t *testing.T) {
	assert.Equal(t, Vec{}, Vec{}.Normalize())
}

func TestLexicographicOrderStable(t *testing.T) {
	vs := []Vec{New(1, 2, 3), New(0, 9, 9), New(1, 1, 5), New(1, 2, 1)}
	sort.Slice(vs, func(i, j int) bool { return vs[i].Less(vs[j]) })
	want := []Vec{New(0, 9, 9), New(1, 1, 5), New(1, 2, 1), New(1, 2, 3)}
	assert.Equal(t, want, vs)
}

func TestEqualIsExact(t *testing.T) {
	a := New(1, 2, 3)
	b := New(1, 2, 3)
	c := New(1, 2, 3.0000003)
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}
