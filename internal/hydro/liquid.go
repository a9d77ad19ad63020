package hydro

import "math"

// liquidResult holds the incompressible solver outputs, Pa and m/s.
type liquidResult struct {
	frictionalDrop float64
	elevationDrop  float64
	velocity       float64
	erosional      float64
}

// solveLiquid computes the Darcy–Weisbach frictional drop and the signed
// hydrostatic elevation term for an incompressible segment.
func solveLiquid(ctx *Context, totalK float64, opts Options) liquidResult {
	v := ctx.Velocity()
	return liquidResult{
		frictionalDrop: totalK * ctx.Density * v * v / 2,
		elevationDrop:  ctx.Density * gravity * ctx.Elevation,
		velocity:       v,
		erosional:      ErosionalVelocity(ctx.Density, opts.ErosionalConstant),
	}
}

// ErosionalVelocity returns C/√ρ, the API RP 14E style velocity limit.
func ErosionalVelocity(density, c float64) float64 {
	if density <= 0 {
		return 0
	}
	return c / math.Sqrt(density)
}
