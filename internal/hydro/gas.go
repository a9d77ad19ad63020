package hydro

import "math"

// Fixed successive-substitution budget for the compressible solver. The
// recurrence contracts quickly; a fixed count keeps results reproducible.
const gasSolverIterations = 30

// Downstream Mach number above which results carry a cautionary flag.
const machCautionLimit = 0.5

// gasResult holds the compressible solver outputs in base SI units.
type gasResult struct {
	frictionalDrop    float64
	elevationDrop     float64
	outletPressure    float64
	outletTemperature float64
	outletDensity     float64
	velocity          float64 // at the outlet state
	mach              float64
	criticalPressure  float64
	choked            bool
	caution           bool
	erosional         float64
}

// solveGas computes the compressible pressure drop for a segment from the
// upstream state, the accumulated resistance coefficient, and the gas
// properties. Isothermal holds T constant; adiabatic re-estimates the
// downstream temperature isentropically each pass.
//
// Governing relation (mass flux G, specific gas constant Rs·Z):
//
//	P1² − P2² = G²·Rs·Z·T · (K + 2·ln(P1/P2))
//
// A downstream pressure at or below the critical pressure implied by γ
// means the segment is choked; the result is flagged, never hidden.
func solveGas(ctx *Context, totalK float64, opts Options) gasResult {
	g := ctx.MassFlow / ctx.Area()
	p1 := ctx.Pressure
	t1 := ctx.Temperature
	rs := gasConstant / ctx.MolecularWeight * ctx.Z

	res := gasResult{
		criticalPressure: p1 * math.Pow(2/(ctx.Gamma+1), ctx.Gamma/(ctx.Gamma-1)),
	}

	p2, t2 := p1, t1
	for i := 0; i < gasSolverIterations; i++ {
		tm := (t1 + t2) / 2
		rhs := p1*p1 - g*g*rs*tm*(totalK+2*math.Log(p1/p2))
		if rhs <= res.criticalPressure*res.criticalPressure {
			p2 = res.criticalPressure
			res.choked = true
		} else {
			p2 = math.Sqrt(rhs)
			res.choked = false
		}
		if opts.GasModel == Adiabatic {
			t2 = t1 * math.Pow(p2/p1, (ctx.Gamma-1)/ctx.Gamma)
		}
	}

	res.outletPressure = p2
	res.outletTemperature = t2
	res.outletDensity = p2 * ctx.MolecularWeight / (ctx.Z * gasConstant * t2)
	res.velocity = g / res.outletDensity
	res.frictionalDrop = p1 - p2
	res.elevationDrop = ctx.Density * gravity * ctx.Elevation
	res.erosional = ErosionalVelocity(res.outletDensity, opts.ErosionalConstant)

	speedOfSound := math.Sqrt(ctx.Gamma * rs * t2)
	if speedOfSound > 0 {
		res.mach = res.velocity / speedOfSound
	}
	if res.choked && res.mach < 1 {
		// The pressure ratio already hit the critical ratio: the segment
		// is sonic at the outlet regardless of the back-computed value.
		res.mach = 1
	}
	res.caution = res.mach > machCautionLimit

	return res
}
