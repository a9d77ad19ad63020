// Package fluid defines the fluids that flow through the network:
// liquids carry density and viscosity, gases carry molar mass,
// compressibility, and specific-heat ratio.
package fluid

import (
	"github.com/talgya/hydronet/internal/units"
)

// Phase distinguishes the two solver families.
type Phase uint8

const (
	Liquid Phase = iota
	Gas
)

func (p Phase) String() string {
	if p == Gas {
		return "gas"
	}
	return "liquid"
}

// Fluid holds phase-specific physical properties.
// Fluids are copied by value between nodes and pipes — never shared by
// reference — so an edit on one endpoint cannot alias another.
type Fluid struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Phase Phase  `json:"phase"`

	// Liquid properties.
	Density units.Quantity `json:"density,omitempty"`

	// Gas properties.
	MolecularWeight   float64 `json:"molecular_weight,omitempty"`    // kg/kmol
	Compressibility   float64 `json:"compressibility,omitempty"`     // Z factor
	SpecificHeatRatio float64 `json:"specific_heat_ratio,omitempty"` // k = cp/cv

	// Both phases.
	Viscosity units.Quantity `json:"viscosity"`
}

// Clone returns a value copy of the fluid.
func (f Fluid) Clone() Fluid {
	return f
}

// Water at 20 °C.
func Water() Fluid {
	return Fluid{
		Name:      "water",
		Phase:     Liquid,
		Density:   units.Q(998.2, units.KgM3, units.Density),
		Viscosity: units.Q(1.002, units.CP, units.Viscosity),
	}
}

// Air as an ideal-ish gas at ambient conditions.
func Air() Fluid {
	return Fluid{
		Name:              "air",
		Phase:             Gas,
		MolecularWeight:   28.96,
		Compressibility:   1.0,
		SpecificHeatRatio: 1.4,
		Viscosity:         units.Q(0.018, units.CP, units.Viscosity),
	}
}

// Methane at pipeline conditions.
func Methane() Fluid {
	return Fluid{
		Name:              "methane",
		Phase:             Gas,
		MolecularWeight:   16.04,
		Compressibility:   0.98,
		SpecificHeatRatio: 1.31,
		Viscosity:         units.Q(0.011, units.CP, units.Viscosity),
	}
}
