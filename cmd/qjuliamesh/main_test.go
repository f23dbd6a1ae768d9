package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgsRequiresTwoOrThreeArgs(t *testing.T) {
	_, _, _, ok := parseArgs([]string{"qjuliamesh"})
	assert.False(t, ok)
}

func TestParseArgsAcceptsConfigAndOutputPath(t *testing.T) {
	configPath, stlPath, forceCPU, ok := parseArgs([]string{"qjuliamesh", "c.txt", "out.stl"})
	require.True(t, ok)
	assert.Equal(t, "c.txt", configPath)
	assert.Equal(t, "out.stl", stlPath)
	assert.False(t, forceCPU)
}

func TestParseArgsAcceptsCPUSwitchInAnySpelling(t *testing.T) {
	for _, switchArg := range []string{"-cpu", "/cpu", "CPU"} {
		_, _, forceCPU, ok := parseArgs([]string{"qjuliamesh", "c.txt", "out.stl", switchArg})
		require.True(t, ok)
		assert.True(t, forceCPU)
	}
}

func TestParseArgsRejectsUnrecognizedFourthArg(t *testing.T) {
	_, _, _, ok := parseArgs([]string{"qjuliamesh", "c.txt", "out.stl", "-gpu"})
	assert.False(t, ok)
}

func TestRunWithMissingConfigReturnsExitCodeOne(t *testing.T) {
	dir := t.TempDir()
	code := run([]string{"qjuliamesh", filepath.Join(dir, "missing.txt"), filepath.Join(dir, "out.stl")})
	assert.Equal(t, 1, code)
}

func TestRunWithBadUsageReturnsExitCodeZero(t *testing.T) {
	code := run([]string{"qjuliamesh"})
	assert.Equal(t, 0, code)
}

func TestRunWithMalformedEquationReturnsExitCodeOne(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "c.txt")
	badConfig := strings.Replace(sphereConfigText, "Z = Z  // Iterative equation", "Z = (  // Iterative equation", 1)
	require.NoError(t, os.WriteFile(configPath, []byte(badConfig), 0o644))
	stlPath := filepath.Join(dir, "out.stl")

	code := run([]string{"qjuliamesh", configPath, stlPath, "-cpu"})
	assert.Equal(t, 1, code)
}

func TestRunEndToEndWritesStlAndReturnsExitCodeZero(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "c.txt")
	require.NoError(t, os.WriteFile(configPath, []byte(sphereConfigText), 0o644))
	stlPath := filepath.Join(dir, "out.stl")

	code := run([]string{"qjuliamesh", configPath, stlPath, "-cpu"})
	assert.Equal(t, 0, code)

	info, err := os.Stat(stlPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(84))
}

const sphereConfigText = `24      // Grid resolution
4       // Vertex refinement steps
0       // Shell thickness
-1.5    // Grid minimum extent
1.5     // Grid maximum extent
1       // Maximum iterations
1.0     // Threshold
0.0     // Z.w
0.0     // C.x
0.0     // C.y
0.0     // C.z
0.0     // C.w
Z = Z  // Iterative equation
`
