package hydro

import (
	"math"

	"github.com/talgya/hydronet/internal/network"
	"github.com/talgya/hydronet/internal/units"
)

// Fixed solver budget and the length bracket, in meters. The budget is a
// hard iteration count, not a convergence tolerance: the solver always
// runs all iterations and returns the best candidate it saw, so repeated
// runs reproduce historical results bit for bit.
const (
	SolverIterations = 50
	LengthSolverMin  = 0.001
	LengthSolverMax  = 1_000_000.0
)

// BisectResult is the outcome of a fixed-budget bisection.
type BisectResult struct {
	X          float64 // best candidate
	Residual   float64 // residual at X; may be nonzero
	Iterations int
}

// Bisect runs a fixed-iteration bisection over [lo, hi] on a monotonic
// residual function, tracking the minimum-|residual| candidate. It never
// exits early.
func Bisect(lo, hi float64, iters int, residual func(float64) float64) BisectResult {
	rLo, rHi := residual(lo), residual(hi)
	best := BisectResult{X: lo, Residual: rLo, Iterations: iters}
	if math.Abs(rHi) < math.Abs(rLo) {
		best.X, best.Residual = hi, rHi
	}
	increasing := rHi > rLo

	for i := 0; i < iters; i++ {
		mid := (lo + hi) / 2
		r := residual(mid)
		if math.Abs(r) < math.Abs(best.Residual) {
			best.X, best.Residual = mid, r
		}
		if (r < 0) == increasing {
			lo = mid
		} else {
			hi = mid
		}
	}
	return best
}

// SolveLengthForDrop back-solves the pipe length that produces a target
// total pressure drop, evaluating the full per-segment solver (friction,
// fittings, elevation, section, phase-appropriate) at each midpoint.
// Returns the minimum-error length even when the residual is nonzero.
func (e *Engine) SolveLengthForDrop(p *network.Pipe, boundary *network.Node, target units.Quantity) (BisectResult, error) {
	targetPa, err := target.Base()
	if err != nil {
		return BisectResult{}, err
	}

	probe := p.Clone()
	if _, err := BuildContext(probe, boundary); err != nil {
		return BisectResult{}, err
	}

	res := Bisect(LengthSolverMin, LengthSolverMax, SolverIterations, func(length float64) float64 {
		probe.Geometry.Length = units.Q(length, units.Meter, units.Length)
		r, _, err := e.RecalculateSegment(probe, boundary)
		if err != nil {
			return math.Inf(1)
		}
		return r.TotalDrop - targetPa
	})
	return res, nil
}
