package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `100     // Grid resolution (an unsigned integer)
8       // Vertex refinement steps (an unsigned integer)
0.001   // Shell thickness (a real number [0, 1]) -- Use 0 to make solid object
-1.5    // Grid minimum extent (a real number)
1.5     // Grid maximum extent (a real number)
8       // Maximum iterations (an unsigned integer)
4.0     // Threshold (a real number)
0.0     // Z.w (a real number)
0.3     // C.x (a real number)
0.5     // C.y (a real number)
0.4     // C.z (a real number)
0.2     // C.w (a real number)
Z = sin(Z) + C * sin(Z)  // Iterative equation
addblock, 0.93, 0.97, 0.01, 0.15, 0.2,  0.8 // Add a block, x start, x end, ...
addblock, 0.03, 0.07, 0.01, 0.15, 0.2,  0.8
subblock, 0.95, 1,    0.3,  0.33, 0.3,  0.33 // Subtract a block: ...
subblock, 0,    0.05, 0.67, 0.7,  0.67, 0.7`

func TestParseSampleConfig(t *testing.T) {
	c, err := Parse(strings.NewReader(sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 100, c.Resolution)
	assert.Equal(t, 8, c.VertexRefinementSteps)
	assert.InDelta(t, float32(0.001), c.ShellThickness, 1e-6)
	assert.Equal(t, float32(-1.5), c.GridMin)
	assert.Equal(t, float32(1.5), c.GridMax)
	assert.Equal(t, 8, c.MaxIterations)
	assert.Equal(t, float32(4.0), c.Threshold)
	assert.Equal(t, float32(0.0), c.ZW)
	assert.InDelta(t, float32(0.3), c.Cx, 1e-6)
	assert.InDelta(t, float32(0.5), c.Cy, 1e-6)
	assert.InDelta(t, float32(0.4), c.Cz, 1e-6)
	assert.InDelta(t, float32(0.2), c.Cw, 1e-6)
	assert.Equal(t, "Z = sin(Z) + C * sin(Z)", c.Equation)
	require.Len(t, c.Blocks, 4)
	assert.True(t, c.Blocks[0].Additive)
	assert.True(t, c.Blocks[1].Additive)
	assert.False(t, c.Blocks[2].Additive)
	assert.False(t, c.Blocks[3].Additive)
}

func TestParseClampsOutOfRangeResolution(t *testing.T) {
	cfg := strings.Replace(sampleConfig, "100     // Grid resolution", "200000  // Grid resolution", 1)
	c, err := Parse(strings.NewReader(cfg))
	require.NoError(t, err)
	assert.Equal(t, 100, c.Resolution)
}

func TestParseClampsOutOfRangeVertexRefinementSteps(t *testing.T) {
	cfg := strings.Replace(sampleConfig, "8       // Vertex refinement steps", "5000    // Vertex refinement steps", 1)
	c, err := Parse(strings.NewReader(cfg))
	require.NoError(t, err)
	assert.Equal(t, 1000, c.VertexRefinementSteps)
}

func TestParseClampsShellThicknessAboveOne(t *testing.T) {
	cfg := strings.Replace(sampleConfig, "0.001   // Shell thickness", "4       // Shell thickness", 1)
	c, err := Parse(strings.NewReader(cfg))
	require.NoError(t, err)
	assert.Equal(t, float32(1), c.ShellThickness)
}

func TestParseCollapsesEqualGridExtents(t *testing.T) {
	cfg := strings.Replace(sampleConfig, "-1.5    // Grid minimum extent", "2       // Grid minimum extent", 1)
	cfg = strings.Replace(cfg, "1.5     // Grid maximum extent", "2       // Grid maximum extent", 1)
	c, err := Parse(strings.NewReader(cfg))
	require.NoError(t, err)
	assert.Equal(t, float32(-1.5), c.GridMin)
	assert.Equal(t, float32(1.5), c.GridMax)
}

func TestParseSwapsReversedGridExtents(t *testing.T) {
	cfg := strings.Replace(sampleConfig, "-1.5    // Grid minimum extent", "3       // Grid minimum extent", 1)
	cfg = strings.Replace(cfg, "1.5     // Grid maximum extent", "1       // Grid maximum extent", 1)
	c, err := Parse(strings.NewReader(cfg))
	require.NoError(t, err)
	assert.Equal(t, float32(1), c.GridMin)
	assert.Equal(t, float32(3), c.GridMax)
}

func TestParseRejectsBlankHeaderLine(t *testing.T) {
	cfg := strings.Replace(sampleConfig, "100     // Grid resolution (an unsigned integer)\n", "\n", 1)
	_, err := Parse(strings.NewReader(cfg))
	assert.Error(t, err)
}

func TestParseRejectsCommentOnlyHeaderLine(t *testing.T) {
	cfg := strings.Replace(sampleConfig, "100     // Grid resolution (an unsigned integer)", "// nothing here", 1)
	_, err := Parse(strings.NewReader(cfg))
	assert.Error(t, err)
}

func TestParseSkipsBlankAndCommentOnlyBlockLines(t *testing.T) {
	cfg := sampleConfig + "\n\n// just a comment\n"
	c, err := Parse(strings.NewReader(cfg))
	require.NoError(t, err)
	assert.Len(t, c.Blocks, 4)
}

func TestParseRejectsMalformedBlockLine(t *testing.T) {
	cfg := sampleConfig + "\naddblock, 0.1, 0.2, 0.3\n"
	_, err := Parse(strings.NewReader(cfg))
	assert.Error(t, err)
}

func TestParseRejectsUnrecognizedBlockToken(t *testing.T) {
	cfg := sampleConfig + "\nfrobblock, 0, 1, 0, 1, 0, 1\n"
	_, err := Parse(strings.NewReader(cfg))
	assert.Error(t, err)
}

func TestParseSortsReversedBlockRange(t *testing.T) {
	cfg := sampleConfig + "\naddblock, 0.8, 0.2, 0, 1, 0, 1\n"
	c, err := Parse(strings.NewReader(cfg))
	require.NoError(t, err)
	last := c.Blocks[len(c.Blocks)-1]
	assert.InDelta(t, float32(0.2), last.StartX, 1e-6)
	assert.InDelta(t, float32(0.8), last.EndX, 1e-6)
}

func TestParseWithNoBlocksProducesEmptySlice(t *testing.T) {
	lines := strings.Split(sampleConfig, "\n")
	cfg := strings.Join(lines[:13], "\n")
	c, err := Parse(strings.NewReader(cfg))
	require.NoError(t, err)
	assert.Empty(t, c.Blocks)
}
