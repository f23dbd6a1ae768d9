// Package pipeline orchestrates the four pipeline stages -- sample,
// sculpt, polygonise, write -- gated by a single Config, logging each
// stage's outcome with github.com/rs/zerolog through a Caller()'d
// console logger, and falling back from the parallel evaluator to the
// reference evaluator when ForceCPU is set or GOMAXPROCS reports at most
// one worker.
package pipeline

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"

	"github.com/sjhalayka-port/qjuliamesh/accel"
	"github.com/sjhalayka-port/qjuliamesh/config"
	"github.com/sjhalayka-port/qjuliamesh/expr"
	"github.com/sjhalayka-port/qjuliamesh/field"
	"github.com/sjhalayka-port/qjuliamesh/mesh"
	"github.com/sjhalayka-port/qjuliamesh/quat"
	"github.com/sjhalayka-port/qjuliamesh/render"
	"github.com/sjhalayka-port/qjuliamesh/sculpt"
)

// Log is the package-wide logger, a Caller()'d console writer over
// stderr.
var Log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Caller().Logger()

// Error reports which stage of the pipeline failed, wrapping the
// underlying cause.
type Error struct {
	Stage string
	Err   error
}

func (e *Error) Error() string { return fmt.Sprintf("pipeline: %s stage failed: %v", e.Stage, e.Err) }

func (e *Error) Unwrap() error { return e.Err }

// Options controls how the pipeline runs, independent of the fractal's
// own Config. ForceCPU mirrors the command line's "-cpu" switch.
type Options struct {
	ForceCPU       bool
	STLBufferWidth int
}

// Result carries the generated mesh plus whatever non-fatal status the
// run wants to surface (e.g. an accelerator fallback notice).
type Result struct {
	Mesh   *mesh.IndexedMesh
	Status string
}

// Run executes the full sample -> sculpt -> polygonise -> write
// pipeline for cfg, writing the resulting mesh to stlPath.
func Run(cfg *config.Config, opts Options, stlPath string) (*Result, error) {
	start := time.Now()

	ast, err := expr.Compile(cfg.Equation)
	if err != nil {
		return nil, &Error{Stage: "compile", Err: err}
	}

	eval, status := newEvaluator(ast, cfg, opts)
	Log.Info().Str("status", status).Msg("evaluator selected")

	fieldParams := field.Params{
		Resolution: cfg.Resolution,
		GridMin:    cfg.GridMin,
		GridMax:    cfg.GridMax,
		ZW:         cfg.ZW,
		Threshold:  cfg.Threshold,
	}

	Log.Info().Int("resolution", cfg.Resolution).Msg("sampling scalar field")
	grid := field.Sample(eval, fieldParams)
	if err := grid.VerifyBoundary(); err != nil {
		return nil, &Error{Stage: "sample", Err: err}
	}

	Log.Info().Int("blocks", len(cfg.Blocks)).Float32("shell_thickness", cfg.ShellThickness).Msg("sculpting occupancy grid")
	sculpt.Apply(grid, sculpt.Config{ShellThickness: cfg.ShellThickness, Blocks: cfg.Blocks})

	renderParams := render.Params{Field: fieldParams, VertexRefinementSteps: cfg.VertexRefinementSteps}
	Log.Info().Msg("polygonising isosurface")
	triangles := render.Polygonise(grid, eval, renderParams)
	if len(triangles) == 0 {
		Log.Info().Msg("isosurface produced no triangles, nothing to write")
		return &Result{Mesh: mesh.New(), Status: "empty mesh, no output file written"}, nil
	}

	m := mesh.New()
	for _, tri := range triangles {
		if err := m.Insert(tri.V0, tri.V1, tri.V2); err != nil {
			return nil, &Error{Stage: "polygonise", Err: err}
		}
	}
	m.Finalize()

	if problems, degenerate := m.ProblemEdgeCount(), m.DegenerateTriangleCount(); problems > 0 || degenerate > 0 {
		Log.Warn().Int("problem_edges", problems).Int("degenerate_triangles", degenerate).
			Msg("mesh has topological defects; writing it anyway")
	}

	bufferWidth := opts.STLBufferWidth
	if bufferWidth <= 0 {
		bufferWidth = mesh.DefaultSTLBufferWidth
	}
	bufferMB := float64(bufferWidth*mesh.PerTriangleSize) / (1024 * 1024)
	Log.Info().Int("triangles", m.TriangleCount()).Int("vertices", m.VertexCount()).
		Float64("write_buffer_mb", bufferMB).Msg("writing stl")
	if err := m.WriteSTL(stlPath, opts.STLBufferWidth); err != nil {
		return nil, &Error{Stage: "write", Err: err}
	}

	Log.Info().Dur("elapsed", time.Since(start)).Msg("pipeline complete")
	return &Result{Mesh: m, Status: status}, nil
}

// newEvaluator picks the parallel evaluator unless the caller forced
// CPU-single-threaded mode or the runtime reports no usable
// parallelism, falling back to the reference evaluator and reporting a
// non-fatal status message either way.
func newEvaluator(ast *expr.AST, cfg *config.Config, opts Options) (accel.Evaluator, string) {
	ref := accel.NewReference(ast, quat.New(cfg.Cx, cfg.Cy, cfg.Cz, cfg.Cw), cfg.MaxIterations, cfg.Threshold)

	if opts.ForceCPU {
		return ref, "running single-threaded (forced by caller)"
	}

	workers := runtime.GOMAXPROCS(0)
	if workers <= 1 {
		return ref, "no usable parallelism available, falling back to the reference evaluator"
	}

	return accel.NewParallel(ref, workers), fmt.Sprintf("running parallel across %d workers", workers)
}
