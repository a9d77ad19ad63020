package hydro

import "math"

// Liquid valve equation constant: Cv = 11.56·Q(m³/h)·√(SG/ΔP(kPa)).
const liquidValveConst = 11.56

// Universal gas sizing constants.
const (
	gasSizingAngleConst = 59.64  // degrees-equivalent factor in the sine argument
	gasSizingC1Factor   = 39.76  // C1 = 39.76·√xT when not overridden
	defaultXT           = 0.72   // pressure-drop ratio factor fallback
	standardMolarVolume = 379.49 // scf per lbmol at 60 °F, 14.696 psia
	standardTempRankine = 520.0  // 60 °F
)

const lbPerKg = 1 / 0.45359237

// LiquidValveCv sizes a liquid control valve:
// Cv = 11.56·Q(m³/h)·√(SG/ΔP(kPa)).
func LiquidValveCv(flowM3H, sg, dropKPa float64) float64 {
	if dropKPa <= 0 {
		return 0
	}
	return liquidValveConst * flowM3H * math.Sqrt(sg/dropKPa)
}

// LiquidValveDrop inverts LiquidValveCv: the drop (kPa) a valve of the
// given Cv takes at the given flow.
func LiquidValveDrop(flowM3H, sg, cv float64) float64 {
	if cv <= 0 {
		return 0
	}
	r := liquidValveConst * flowM3H / cv
	return sg * r * r
}

// gasValveC1 resolves the valve recovery constant, deriving it from xT
// when the user has not supplied one.
func gasValveC1(c1, xt float64) float64 {
	if c1 > 0 {
		return c1
	}
	if xt <= 0 {
		xt = defaultXT
	}
	return gasSizingC1Factor * math.Sqrt(xt)
}

// standardFlowSCFH converts a mass flow (kg/s) of a gas with the given
// molar mass into standard cubic feet per hour.
func standardFlowSCFH(massFlowKgS, molecularWeight float64) float64 {
	if molecularWeight <= 0 {
		return 0
	}
	lbPerHour := massFlowKgS * lbPerKg * 3600
	return lbPerHour / molecularWeight * standardMolarVolume
}

// GasValveCg sizes a gas valve with the universal gas sizing equation:
//
//	Q = Cg·P1·√(520/(G·T))·sin((59.64/C1)·√(ΔP/P1))
//
// with the sine argument (radians) capped at π/2 — critical flow.
// Pressures in psia, temperature in Rankine, Q in SCFH.
func GasValveCg(flowSCFH, p1Psia, dropPsi, tRankine, sg, c1 float64) float64 {
	if p1Psia <= 0 || dropPsi <= 0 || tRankine <= 0 || sg <= 0 {
		return 0
	}
	arg := gasSizingAngleConst / c1 * math.Sqrt(dropPsi/p1Psia)
	if arg > math.Pi/2 {
		arg = math.Pi / 2
	}
	denom := p1Psia * math.Sqrt(standardTempRankine/(sg*tRankine)) * math.Sin(arg)
	if denom <= 0 {
		return 0
	}
	return flowSCFH / denom
}

// GasValveDrop inverts GasValveCg, returning the pressure drop (psi) a
// valve of the given Cg takes. Flows beyond the valve's critical capacity
// return the critical drop (sine argument pinned at π/2).
func GasValveDrop(flowSCFH, p1Psia, tRankine, sg, c1, cg float64) float64 {
	if cg <= 0 || p1Psia <= 0 {
		return 0
	}
	sinArg := flowSCFH / (cg * p1Psia * math.Sqrt(standardTempRankine/(sg*tRankine)))
	if sinArg >= 1 {
		sinArg = 1
	}
	arg := math.Asin(sinArg)
	r := arg * c1 / gasSizingAngleConst
	return p1Psia * r * r
}
