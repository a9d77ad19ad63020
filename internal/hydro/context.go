// Package hydro implements the hydraulic solvers: friction and resistance
// accumulation, incompressible and compressible pressure drop, control
// valve and orifice sizing, the fixed-budget length solver, and network
// pressure propagation. Everything works in base SI units on a normalized
// Context; unit handling stops at the package boundary.
package hydro

import (
	"math"

	"github.com/talgya/hydronet/internal/fluid"
	"github.com/talgya/hydronet/internal/network"
	"github.com/talgya/hydronet/internal/units"
)

// Physical constants.
const (
	gravity      = 9.80665     // m/s²
	gasConstant  = 8314.462618 // J/(kmol·K)
	airMolarMass = 28.96       // kg/kmol, gas specific-gravity reference
)

// GasModel selects the compressible-flow treatment.
type GasModel uint8

const (
	Isothermal GasModel = iota
	Adiabatic
)

// Options carry the engine constants a site may tune.
type Options struct {
	// ErosionalConstant is C in v_e = C/√ρ (API RP 14E style).
	ErosionalConstant float64
	// GasModel picks isothermal or adiabatic compressible flow.
	GasModel GasModel
}

// DefaultOptions returns the stock engine constants.
func DefaultOptions() Options {
	return Options{
		ErosionalConstant: 100,
		GasModel:          Isothermal,
	}
}

// Context is a pipe segment normalized into base SI units, ready for the
// solvers. Pressure is absolute.
type Context struct {
	Phase fluid.Phase

	MassFlow  float64 // kg/s
	Diameter  float64 // m
	Length    float64 // m
	Roughness float64 // m
	Elevation float64 // m, signed

	Density   float64 // kg/m³ (liquid: given; gas: derived at inlet)
	Viscosity float64 // Pa·s

	Pressure    float64 // Pa absolute, upstream
	Temperature float64 // K, upstream

	// Gas-only.
	MolecularWeight float64 // kg/kmol
	Z               float64
	Gamma           float64
}

// Area returns the flow cross-section, m².
func (c *Context) Area() float64 {
	return math.Pi / 4 * c.Diameter * c.Diameter
}

// Velocity returns the bulk velocity at Density, m/s.
func (c *Context) Velocity() float64 {
	if c.Density <= 0 {
		return 0
	}
	return c.MassFlow / (c.Density * c.Area())
}

// RelativeRoughness returns ε/D.
func (c *Context) RelativeRoughness() float64 {
	if c.Diameter <= 0 {
		return 0
	}
	return c.Roughness / c.Diameter
}

// baseOrZero converts a quantity to its base unit, treating an unset
// quantity as zero. Conversion errors surface as-is.
func baseOrZero(q units.Quantity) (float64, error) {
	if q.Zero() {
		return 0, nil
	}
	return q.Base()
}

// BuildContext normalizes a pipe and its resolved fluid into a Context.
// The pipe's own fluid wins; otherwise the boundary node's fluid applies.
// Missing essentials yield an IncompleteContextError; a non-positive
// diameter yields an InvalidGeometryError.
func BuildContext(p *network.Pipe, boundary *network.Node) (*Context, error) {
	var missing []string

	f := p.Fluid
	if f == nil && boundary != nil {
		f = boundary.Fluid
	}
	if f == nil {
		missing = append(missing, "fluid")
	}

	ctx := &Context{}

	if bore := p.Geometry.Bore(); bore.Zero() {
		missing = append(missing, "diameter")
	} else {
		d, err := bore.Base()
		if err != nil {
			return nil, err
		}
		if d <= 0 {
			return nil, &InvalidGeometryError{Field: "diameter", Value: d}
		}
		ctx.Diameter = d
	}

	if p.MassFlow.Zero() {
		missing = append(missing, "mass flow")
	} else {
		m, err := p.MassFlow.Base()
		if err != nil {
			return nil, err
		}
		if m <= 0 {
			missing = append(missing, "mass flow")
		}
		ctx.MassFlow = m
	}

	var err error
	if ctx.Length, err = baseOrZero(p.Geometry.Length); err != nil {
		return nil, err
	}
	if ctx.Roughness, err = baseOrZero(p.Geometry.Roughness); err != nil {
		return nil, err
	}
	if ctx.Elevation, err = baseOrZero(p.Geometry.ElevationChange); err != nil {
		return nil, err
	}

	if boundary != nil {
		if !boundary.Pressure.Quantity.Zero() {
			if ctx.Pressure, err = boundary.Pressure.Quantity.Base(); err != nil {
				return nil, err
			}
		}
		if !boundary.Temperature.Quantity.Zero() {
			if ctx.Temperature, err = boundary.Temperature.Quantity.Base(); err != nil {
				return nil, err
			}
		}
	}

	if f != nil {
		ctx.Phase = f.Phase
		if ctx.Viscosity, err = baseOrZero(f.Viscosity); err != nil {
			return nil, err
		}
		if ctx.Viscosity <= 0 {
			missing = append(missing, "viscosity")
		}

		switch f.Phase {
		case fluid.Liquid:
			if ctx.Density, err = baseOrZero(f.Density); err != nil {
				return nil, err
			}
			if ctx.Density <= 0 {
				missing = append(missing, "density")
			}
		case fluid.Gas:
			ctx.MolecularWeight = f.MolecularWeight
			ctx.Z = f.Compressibility
			ctx.Gamma = f.SpecificHeatRatio
			if ctx.MolecularWeight <= 0 {
				missing = append(missing, "molecular weight")
			}
			if ctx.Z <= 0 {
				missing = append(missing, "compressibility factor")
			}
			if ctx.Gamma <= 1 {
				missing = append(missing, "specific heat ratio")
			}
			if ctx.Pressure <= 0 {
				missing = append(missing, "upstream pressure")
			}
			if ctx.Temperature <= 0 {
				missing = append(missing, "upstream temperature")
			}
			if len(missing) == 0 {
				// Inlet density from the real-gas law.
				ctx.Density = ctx.Pressure * ctx.MolecularWeight /
					(ctx.Z * gasConstant * ctx.Temperature)
			}
		}
	}

	if len(missing) > 0 {
		return nil, &IncompleteContextError{Missing: missing}
	}
	return ctx, nil
}
