// Package config reads a line-oriented configuration file format: a
// fixed header of numbered, "//"-commented fields followed by zero or
// more addblock/subblock directive lines. Load returns a value or an
// error rather than a bool success flag plus an out-parameter status
// string.
package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sjhalayka-port/qjuliamesh/sculpt"
)

// Config is a fully parsed, clamped configuration.
type Config struct {
	Resolution            int
	VertexRefinementSteps int
	ShellThickness        float32
	GridMin               float32
	GridMax               float32
	MaxIterations         int
	Threshold             float32
	ZW                    float32
	Cx, Cy, Cz, Cw        float32
	Equation              string
	Blocks                []sculpt.Block
}

// String renders the resolved configuration as a banner echoed back to
// the user before generating.
func (c *Config) String() string {
	var b strings.Builder
	fmt.Fprintln(&b, "Configuration:")
	fmt.Fprintln(&b, "==========================================================")
	fmt.Fprintln(&b, "Grid resolution:", c.Resolution)
	fmt.Fprintln(&b, "Vertex refinement steps:", c.VertexRefinementSteps)
	fmt.Fprintln(&b, "Shell thickness:", c.ShellThickness)
	fmt.Fprintln(&b, "Grid minimum extent:", c.GridMin)
	fmt.Fprintln(&b, "Grid maximum extent:", c.GridMax)
	fmt.Fprintln(&b, "Maximum iterations:", c.MaxIterations)
	fmt.Fprintln(&b, "Threshold:", c.Threshold)
	fmt.Fprintln(&b, "Z.w:", c.ZW)
	fmt.Fprintln(&b, "C.x:", c.Cx)
	fmt.Fprintln(&b, "C.y:", c.Cy)
	fmt.Fprintln(&b, "C.z:", c.Cz)
	fmt.Fprintln(&b, "C.w:", c.Cw)
	fmt.Fprintln(&b, "Equation:", c.Equation)
	fmt.Fprintf(&b, "Add / subtract blocks: %d\n", len(c.Blocks))
	fmt.Fprintln(&b, "==========================================================")
	return b.String()
}

// Sample is the sample configuration text printed alongside a parse
// error, as a usage banner showing the expected file layout.
const Sample = `100     // Grid resolution (an unsigned integer)
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

// Load reads and parses a configuration file from path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// lineReader pulls consecutive header lines, stripping "//" comments
// and surrounding whitespace, failing on any blank or comment-only
// line: the header section never tolerates blank lines.
type lineReader struct {
	scanner *bufio.Scanner
	lineNum int
}

func (r *lineReader) headerLine() (string, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", fmt.Errorf("config: unexpected end of file at line %d", r.lineNum+1)
	}
	r.lineNum++
	raw := r.scanner.Text()
	if raw == "" {
		return "", fmt.Errorf("config: blank line at %d", r.lineNum)
	}
	line := stripComment(raw)
	line = strings.TrimSpace(line)
	if line == "" {
		return "", fmt.Errorf("config: empty field at line %d", r.lineNum)
	}
	return line, nil
}

func stripComment(s string) string {
	if i := strings.Index(s, "//"); i >= 0 {
		return s[:i]
	}
	return s
}

// Parse parses a configuration from r.
func Parse(r io.Reader) (*Config, error) {
	lr := &lineReader{scanner: bufio.NewScanner(r)}
	lr.scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var c Config

	res, err := lr.headerInt()
	if err != nil {
		return nil, err
	}
	c.Resolution = res
	if c.Resolution < 1 || c.Resolution > 100000 {
		c.Resolution = 100
	}

	steps, err := lr.headerInt()
	if err != nil {
		return nil, err
	}
	c.VertexRefinementSteps = steps
	if c.VertexRefinementSteps < 0 {
		c.VertexRefinementSteps = 0
	} else if c.VertexRefinementSteps > 1000 {
		c.VertexRefinementSteps = 1000
	}

	thickness, err := lr.headerFloat()
	if err != nil {
		return nil, err
	}
	c.ShellThickness = clamp01(thickness)

	gmin, err := lr.headerFloat()
	if err != nil {
		return nil, err
	}
	gmax, err := lr.headerFloat()
	if err != nil {
		return nil, err
	}
	if gmin == gmax {
		gmin, gmax = -1.5, 1.5
	} else if gmin > gmax {
		gmin, gmax = gmax, gmin
	}
	c.GridMin, c.GridMax = gmin, gmax

	maxIter, err := lr.headerInt()
	if err != nil {
		return nil, err
	}
	c.MaxIterations = maxIter

	threshold, err := lr.headerFloat()
	if err != nil {
		return nil, err
	}
	c.Threshold = threshold

	zw, err := lr.headerFloat()
	if err != nil {
		return nil, err
	}
	c.ZW = zw

	cx, err := lr.headerFloat()
	if err != nil {
		return nil, err
	}
	cy, err := lr.headerFloat()
	if err != nil {
		return nil, err
	}
	cz, err := lr.headerFloat()
	if err != nil {
		return nil, err
	}
	cw, err := lr.headerFloat()
	if err != nil {
		return nil, err
	}
	c.Cx, c.Cy, c.Cz, c.Cw = cx, cy, cz, cw

	eqLine, err := lr.headerLine()
	if err != nil {
		return nil, err
	}
	c.Equation = strings.TrimSpace(eqLine)

	blocks, err := parseBlocks(lr.scanner)
	if err != nil {
		return nil, err
	}
	c.Blocks = blocks

	return &c, nil
}

func (r *lineReader) headerInt() (int, error) {
	line, err := r.headerLine()
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(strings.Fields(line)[0])
	if err != nil {
		return 0, fmt.Errorf("config: not an integer at line %d: %q", r.lineNum, line)
	}
	return v, nil
}

func (r *lineReader) headerFloat() (float32, error) {
	line, err := r.headerLine()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(strings.Fields(line)[0], 32)
	if err != nil {
		return 0, fmt.Errorf("config: not a number at line %d: %q", r.lineNum, line)
	}
	return float32(v), nil
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// parseBlocks reads the remaining lines as addblock/subblock directives.
// Unlike the header, blank and comment-only lines here are simply
// skipped rather than treated as errors.
func parseBlocks(scanner *bufio.Scanner) ([]sculpt.Block, error) {
	var blocks []sculpt.Block
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		line = strings.TrimSpace(stripComment(line))
		if line == "" {
			continue
		}

		fields := strings.Split(line, ",")
		if len(fields) != 7 {
			return nil, fmt.Errorf("config: addblock/subblock format error at block line %d", lineNum)
		}
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}

		var additive bool
		switch strings.ToLower(fields[0]) {
		case "addblock":
			additive = true
		case "subblock":
			additive = false
		default:
			return nil, fmt.Errorf("config: unrecognized block token %q at line %d", fields[0], lineNum)
		}

		values := make([]float32, 6)
		for i, field := range fields[1:] {
			v, err := strconv.ParseFloat(field, 32)
			if err != nil {
				return nil, fmt.Errorf("config: malformed block coordinate %q at line %d", field, lineNum)
			}
			values[i] = float32(v)
		}

		blocks = append(blocks, sculpt.NewBlock(additive, values[0], values[1], values[2], values[3], values[4], values[5]))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return blocks, nil
}
