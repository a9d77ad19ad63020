package hydro

import (
	"math"

	"github.com/talgya/hydronet/internal/network"
)

// Regime boundaries. Between the two the friction factor is blended
// linearly so there is no jump at the laminar limit.
const (
	reLaminarLimit   = 2300.0
	reTurbulentLimit = 4000.0
)

// Reynolds computes Re = 4·ṁ / (π·D·μ).
func Reynolds(massFlow, diameter, viscosity float64) float64 {
	if diameter <= 0 || viscosity <= 0 {
		return 0
	}
	return 4 * massFlow / (math.Pi * diameter * viscosity)
}

// swameeJain is the explicit turbulent friction-factor correlation.
func swameeJain(re, relRough float64) float64 {
	arg := relRough/3.7 + 5.74/math.Pow(re, 0.9)
	l := math.Log10(arg)
	return 0.25 / (l * l)
}

// FrictionFactor returns the Darcy friction factor and flow regime.
// Laminar below 2300 (f = 64/Re), Swamee–Jain above 4000, and a linear
// blend across the transitional band keeping the factor continuous at
// both boundaries.
func FrictionFactor(re, relRough float64) (float64, network.FlowRegime) {
	if re <= 0 {
		return 0, network.RegimeLaminar
	}
	if re < reLaminarLimit {
		return 64 / re, network.RegimeLaminar
	}
	if re >= reTurbulentLimit {
		return swameeJain(re, relRough), network.RegimeTurbulent
	}
	fLam := 64 / reLaminarLimit
	fTurb := swameeJain(reTurbulentLimit, relRough)
	t := (re - reLaminarLimit) / (reTurbulentLimit - reLaminarLimit)
	return fLam + t*(fTurb-fLam), network.RegimeTransitional
}

// kBreakdown is the accumulated resistance coefficient of a segment.
type kBreakdown struct {
	pipe    float64
	fitting float64
	user    float64
	total   float64
}

// swageBeta returns the small-to-large ratio of a swage diameter against
// the main bore, or 0 when the end diameter is unset.
func swageBeta(end, main float64) float64 {
	if end <= 0 || main <= 0 {
		return 0
	}
	if end < main {
		return end / main
	}
	return main / end
}

// accumulateK sums pipe-length, fitting, and user resistance:
//
//	K_total = safety·(K_pipe + K_fittings) + K_user
//
// where the safety factor scales only the pipe+fitting subtotal.
func accumulateK(ctx *Context, p *network.Pipe, frictionFactor float64) (kBreakdown, error) {
	var k kBreakdown

	if ctx.Length > 0 && ctx.Diameter > 0 {
		k.pipe = frictionFactor * ctx.Length / ctx.Diameter
	}

	inlet, err := baseOrZero(p.Geometry.InletDiameter)
	if err != nil {
		return k, err
	}
	outlet, err := baseOrZero(p.Geometry.OutletDiameter)
	if err != nil {
		return k, err
	}

	for _, f := range p.Fittings {
		if f.Count <= 0 {
			continue
		}
		beta := 0.0
		switch f.Type {
		case network.SwageReducer:
			beta = swageBeta(inlet, ctx.Diameter)
		case network.SwageExpander:
			beta = swageBeta(outlet, ctx.Diameter)
		}
		k.fitting += f.K(beta)
	}

	safety := 1 + p.SafetyFactorPct/100
	k.user = p.UserK
	k.total = safety*(k.pipe+k.fitting) + k.user
	return k, nil
}
