package hydro

import (
	"github.com/talgya/hydronet/internal/fluid"
	"github.com/talgya/hydronet/internal/network"
	"github.com/talgya/hydronet/internal/units"
)

// Engine evaluates segments and propagates network state. It holds only
// configuration; every call is a pure transformation of its inputs, so a
// single Engine is safe to share across goroutines.
type Engine struct {
	opts Options
}

// New creates an engine with the given options.
func New(opts Options) *Engine {
	if opts.ErosionalConstant <= 0 {
		opts.ErosionalConstant = DefaultOptions().ErosionalConstant
	}
	return &Engine{opts: opts}
}

// RecalculateSegment recomputes a pipe's pressure-drop breakdown and
// result summary from its inputs and the upstream boundary node. On an
// incomplete context the pipe's previous results are left in place and
// the error is returned.
func (e *Engine) RecalculateSegment(p *network.Pipe, boundary *network.Node) (*network.PressureDropResults, *network.ResultSummary, error) {
	ctx, err := BuildContext(p, boundary)
	if err != nil {
		return nil, nil, err
	}

	re := Reynolds(ctx.MassFlow, ctx.Diameter, ctx.Viscosity)
	f, regime := FrictionFactor(re, ctx.RelativeRoughness())

	k, err := accumulateK(ctx, p, f)
	if err != nil {
		return nil, nil, err
	}

	results := &network.PressureDropResults{
		PipeLengthK:    k.pipe,
		FittingK:       k.fitting,
		UserK:          k.user,
		TotalK:         k.total,
		ReynoldsNumber: re,
		FrictionFactor: f,
		Regime:         regime,
	}
	summary := &network.ResultSummary{
		InletPressure:    ctx.Pressure,
		InletTemperature: ctx.Temperature,
		Density:          ctx.Density,
	}

	if err := e.applySection(ctx, p, results); err != nil {
		return nil, nil, err
	}

	userDrop, err := baseOrZero(p.UserDrop)
	if err != nil {
		return nil, nil, err
	}
	results.UserDrop = userDrop

	switch ctx.Phase {
	case fluid.Liquid:
		liq := solveLiquid(ctx, k.total, e.opts)
		results.FrictionalDrop = liq.frictionalDrop
		results.ElevationDrop = liq.elevationDrop

		summary.Velocity = liq.velocity
		summary.ErosionalVelocity = liq.erosional
		summary.OutletTemperature = ctx.Temperature

	case fluid.Gas:
		gas := solveGas(ctx, k.total, e.opts)
		results.FrictionalDrop = gas.frictionalDrop
		results.ElevationDrop = gas.elevationDrop
		results.GasCriticalPressure = gas.criticalPressure
		results.Choked = gas.choked

		summary.Velocity = gas.velocity
		summary.ErosionalVelocity = gas.erosional
		summary.OutletTemperature = gas.outletTemperature
		summary.MachNumber = gas.mach
		summary.MachCaution = gas.caution
	}

	results.TotalDrop = results.FrictionalDrop + results.ElevationDrop +
		results.SectionDrop + results.UserDrop
	if ctx.Length > 0 {
		results.DropPerLength = results.TotalDrop / ctx.Length
	}

	summary.OutletPressure = ctx.Pressure - results.TotalDrop
	summary.FlowMomentum = summary.Density * summary.Velocity * summary.Velocity
	summary.ErosionalExceeded = summary.ErosionalVelocity > 0 &&
		summary.Velocity > summary.ErosionalVelocity

	p.Results = results
	p.Summary = summary
	return results, summary, nil
}

// applySection computes the section-specific drop and the complementary
// sizing coefficient for the active variant.
func (e *Engine) applySection(ctx *Context, p *network.Pipe, results *network.PressureDropResults) error {
	switch p.Section.Type {
	case network.SectionControlValve:
		v := p.Section.ControlValve
		if v == nil {
			return nil
		}
		return e.applyControlValve(ctx, v, results)

	case network.SectionOrifice:
		o := p.Section.Orifice
		if o == nil {
			return nil
		}
		return e.applyOrifice(ctx, o, results)
	}
	return nil
}

func (e *Engine) applyControlValve(ctx *Context, v *network.ControlValve, results *network.PressureDropResults) error {
	switch ctx.Phase {
	case fluid.Liquid:
		flowM3H := ctx.MassFlow / ctx.Density * 3600
		sg := ctx.Density / 1000

		switch v.Mode {
		case network.InputCoefficient:
			dropKPa := LiquidValveDrop(flowM3H, sg, v.Coefficient)
			results.SectionDrop = dropKPa * 1000
			results.Cv = v.Coefficient
		case network.InputPressureDrop:
			dropPa, err := v.Drop.Base()
			if err != nil {
				return err
			}
			results.SectionDrop = dropPa
			results.Cv = LiquidValveCv(flowM3H, sg, dropPa/1000)
		}

	case fluid.Gas:
		scfh := standardFlowSCFH(ctx.MassFlow, ctx.MolecularWeight)
		sg := ctx.MolecularWeight / airMolarMass
		c1 := gasValveC1(v.C1, v.XT)
		p1Psia, err := units.Convert(ctx.Pressure, units.Pa, units.Psi, units.Pressure)
		if err != nil {
			return err
		}
		tRankine, err := units.Convert(ctx.Temperature, units.Kelvin, units.Rankine, units.Temperature)
		if err != nil {
			return err
		}

		switch v.Mode {
		case network.InputCoefficient:
			dropPsi := GasValveDrop(scfh, p1Psia, tRankine, sg, c1, v.Coefficient)
			drop, err := units.Convert(dropPsi, units.Psi, units.Pa, units.Pressure)
			if err != nil {
				return err
			}
			results.SectionDrop = drop
			results.Cg = v.Coefficient
		case network.InputPressureDrop:
			dropPa, err := v.Drop.Base()
			if err != nil {
				return err
			}
			dropPsi, err := units.Convert(dropPa, units.Pa, units.Psi, units.Pressure)
			if err != nil {
				return err
			}
			results.SectionDrop = dropPa
			results.Cg = GasValveCg(scfh, p1Psia, dropPsi, tRankine, sg, c1)
		}
	}
	return nil
}

func (e *Engine) applyOrifice(ctx *Context, o *network.Orifice, results *network.PressureDropResults) error {
	switch o.Mode {
	case network.InputCoefficient:
		results.SectionDrop = OrificeDrop(ctx, o.BetaRatio)
		results.BetaRatio = o.BetaRatio
	case network.InputPressureDrop:
		dropPa, err := o.Drop.Base()
		if err != nil {
			return err
		}
		results.SectionDrop = dropPa
		results.BetaRatio = OrificeBeta(ctx, dropPa)
	}
	return nil
}
