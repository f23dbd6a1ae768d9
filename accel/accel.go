// Package accel defines the batched scalar-field evaluation capability
// shared by the sampler and the polygoniser's edge refinement, and a
// reference (single-threaded) implementation that every other back-end
// must match bit-for-bit.
package accel

import (
	"github.com/sjhalayka-port/qjuliamesh/expr"
	"github.com/sjhalayka-port/qjuliamesh/quat"
)

// Evaluator answers batched escape-test queries. Implementations may
// fan queries out across goroutines, GPU kernels, or other hardware, but
// must return, for every query, a value numerically identical to calling
// the reference evaluator on that query alone. The pipeline drains the
// back-end fully before moving to the next stage; no mid-stage
// cancellation is supported.
type Evaluator interface {
	// EvaluateBatch returns, for each sample point z0 (with the
	// evaluator's configured Z.w already folded in by the caller), the
	// escape value as defined by expr.Iterate.
	EvaluateBatch(points []quat.Quaternion) []float32
}

// Reference is the single-threaded evaluator every back-end is defined
// against.
type Reference struct {
	AST       *expr.AST
	C         quat.Quaternion
	MaxIter   int
	Threshold float32
}

// NewReference builds the reference evaluator.
func NewReference(ast *expr.AST, c quat.Quaternion, maxIter int, threshold float32) *Reference {
	return &Reference{AST: ast, C: c, MaxIter: maxIter, Threshold: threshold}
}

// EvaluateBatch evaluates every point sequentially, query by query.
func (r *Reference) EvaluateBatch(points []quat.Quaternion) []float32 {
	out := make([]float32, len(points))
	for i, p := range points {
		out[i] = expr.Iterate(r.AST, p, r.C, r.MaxIter, r.Threshold)
	}
	return out
}

// EvaluateOne is a convenience for call sites that only need a single
// sample (e.g. the polygoniser's bisection probe).
func (r *Reference) EvaluateOne(p quat.Quaternion) float32 {
	return r.EvaluateBatch([]quat.Quaternion{p})[0]
}

// Parallel fans EvaluateBatch's work out across goroutines, matching the
// reference result exactly for every query (each query is independent)
// while letting the sampler scale across cores.
type Parallel struct {
	Ref     *Reference
	Workers int
}

// NewParallel builds a worker-parallel evaluator wrapping ref.
func NewParallel(ref *Reference, workers int) *Parallel {
	if workers < 1 {
		workers = 1
	}
	return &Parallel{Ref: ref, Workers: workers}
}

// EvaluateBatch partitions points across p.Workers goroutines. Because
// expr.AST evaluation and expr.Iterate have no shared mutable state,
// results are identical to Reference.EvaluateBatch run query by query.
func (p *Parallel) EvaluateBatch(points []quat.Quaternion) []float32 {
	out := make([]float32, len(points))
	if len(points) == 0 {
		return out
	}
	workers := p.Workers
	if workers > len(points) {
		workers = len(points)
	}
	chunk := (len(points) + workers - 1) / workers

	done := make(chan struct{}, workers)
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if start >= len(points) {
			done <- struct{}{}
			continue
		}
		if end > len(points) {
			end = len(points)
		}
		go func(start, end int) {
			for i := start; i < end; i++ {
				out[i] = expr.Iterate(p.Ref.AST, points[i], p.Ref.C, p.Ref.MaxIter, p.Ref.Threshold)
			}
			done <- struct{}{}
		}(start, end)
	}
	for w := 0; w < workers; w++ {
		<-done
	}
	return out
}
