package hydro

import "math"

// Orifice beta-ratio bracket for the back-solve.
const (
	orificeBetaMin = 0.1
	orificeBetaMax = 0.9
)

// DischargeCoefficient is the flange-tap correlation keyed to beta ratio.
func DischargeCoefficient(beta float64) float64 {
	return 0.5959 + 0.0312*math.Pow(beta, 2.1) - 0.184*math.Pow(beta, 8)
}

// OrificeDrop returns the pressure drop (Pa) across a restriction orifice
// of the given beta ratio at the context's mass flow and inlet density:
//
//	ṁ = Cd/√(1−β⁴) · (π/4)·d² · √(2·ρ·ΔP),  d = β·D
func OrificeDrop(ctx *Context, beta float64) float64 {
	if beta <= 0 || beta >= 1 || ctx.Density <= 0 || ctx.Diameter <= 0 {
		return 0
	}
	d := beta * ctx.Diameter
	bore := math.Pi / 4 * d * d
	cd := DischargeCoefficient(beta)
	q := ctx.MassFlow * math.Sqrt(1-beta*beta*beta*beta) / (cd * bore)
	return q * q / (2 * ctx.Density)
}

// OrificeBeta back-solves the beta ratio producing a target pressure drop.
// The discharge coefficient's beta dependence makes the relation
// non-invertible in closed form, so this uses the fixed-budget bisection.
// Drop decreases monotonically with beta, hence the negated residual.
func OrificeBeta(ctx *Context, targetDropPa float64) float64 {
	r := Bisect(orificeBetaMin, orificeBetaMax, SolverIterations, func(beta float64) float64 {
		return targetDropPa - OrificeDrop(ctx, beta)
	})
	return r.X
}
