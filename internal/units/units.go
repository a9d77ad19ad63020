// Package units converts scalar engineering quantities between unit systems.
// Every conversion is routed through one canonical base unit per family
// (Pa, K, m, kg/m³, Pa·s, kg/s, m³/s, Pa/m), so adding a unit means adding
// one table entry, not N² pairings.
package units

import (
	"fmt"
)

// Family identifies a dimensional family of units.
type Family uint8

const (
	Pressure Family = iota
	Temperature
	Length
	Density
	Viscosity
	MassFlow
	VolumeFlow
	PressureGradient
	Dimensionless
)

// String returns a human-readable name for the family.
func (f Family) String() string {
	switch f {
	case Pressure:
		return "pressure"
	case Temperature:
		return "temperature"
	case Length:
		return "length"
	case Density:
		return "density"
	case Viscosity:
		return "viscosity"
	case MassFlow:
		return "mass flow rate"
	case VolumeFlow:
		return "volumetric flow rate"
	case PressureGradient:
		return "pressure gradient"
	case Dimensionless:
		return "dimensionless"
	}
	return "unknown"
}

// FamilyByName resolves a family from its string name (API query params).
func FamilyByName(name string) (Family, bool) {
	for f := Pressure; f <= Dimensionless; f++ {
		if f.String() == name {
			return f, true
		}
	}
	return 0, false
}

// Unit is a display identifier for a unit within a family.
type Unit string

// Base units per family.
const (
	Pa       Unit = "Pa"
	Kelvin   Unit = "K"
	Meter    Unit = "m"
	KgM3     Unit = "kg/m3"
	PaS      Unit = "Pa.s"
	KgS      Unit = "kg/s"
	M3S      Unit = "m3/s"
	PaPerM   Unit = "Pa/m"
	Unitless Unit = "-"
)

// Commonly used derived units.
const (
	KPa  Unit = "kPa"
	MPa  Unit = "MPa"
	Bar  Unit = "bar"
	Psi  Unit = "psi"
	Atm  Unit = "atm"
	KPaG Unit = "kPag"
	BarG Unit = "barg"
	PsiG Unit = "psig"
	Torr Unit = "mmHg"

	Celsius    Unit = "C"
	Fahrenheit Unit = "F"
	Rankine    Unit = "R"

	Millimeter Unit = "mm"
	Centimeter Unit = "cm"
	Kilometer  Unit = "km"
	Inch       Unit = "in"
	Foot       Unit = "ft"

	GCm3  Unit = "g/cm3"
	LbFt3 Unit = "lb/ft3"

	CP   Unit = "cP"
	MPaS Unit = "mPa.s"

	KgH  Unit = "kg/h"
	TonH Unit = "t/h"
	LbH  Unit = "lb/h"

	M3H  Unit = "m3/h"
	LMin Unit = "L/min"
	GPM  Unit = "gpm"

	KPaPerM     Unit = "kPa/m"
	PsiPer100Ft Unit = "psi/100ft"
)

// AtmosphericPressure is the fixed gauge↔absolute offset, Pa.
const AtmosphericPressure = 101325.0

// conv describes one unit's mapping into the family base:
//
//	base = (value + Offset) * Scale        (+ atmosphere if Gauge)
//
// Offset is nonzero only for temperature units; Gauge only for pressure.
type conv struct {
	Scale  float64
	Offset float64
	Gauge  bool
}

var tables = map[Family]map[Unit]conv{
	Pressure: {
		Pa:   {Scale: 1},
		KPa:  {Scale: 1e3},
		MPa:  {Scale: 1e6},
		Bar:  {Scale: 1e5},
		Psi:  {Scale: 6894.757293168361},
		Atm:  {Scale: 101325},
		Torr: {Scale: 133.322387415},
		KPaG: {Scale: 1e3, Gauge: true},
		BarG: {Scale: 1e5, Gauge: true},
		PsiG: {Scale: 6894.757293168361, Gauge: true},
	},
	Temperature: {
		Kelvin:     {Scale: 1},
		Celsius:    {Scale: 1, Offset: 273.15},
		Fahrenheit: {Scale: 5.0 / 9.0, Offset: 459.67},
		Rankine:    {Scale: 5.0 / 9.0},
	},
	Length: {
		Meter:      {Scale: 1},
		Millimeter: {Scale: 1e-3},
		Centimeter: {Scale: 1e-2},
		Kilometer:  {Scale: 1e3},
		Inch:       {Scale: 0.0254},
		Foot:       {Scale: 0.3048},
	},
	Density: {
		KgM3:  {Scale: 1},
		GCm3:  {Scale: 1e3},
		LbFt3: {Scale: 16.018463373960142},
	},
	Viscosity: {
		PaS:  {Scale: 1},
		CP:   {Scale: 1e-3},
		MPaS: {Scale: 1e-3},
	},
	MassFlow: {
		KgS:  {Scale: 1},
		KgH:  {Scale: 1.0 / 3600.0},
		TonH: {Scale: 1000.0 / 3600.0},
		LbH:  {Scale: 0.45359237 / 3600.0},
	},
	VolumeFlow: {
		M3S:  {Scale: 1},
		M3H:  {Scale: 1.0 / 3600.0},
		LMin: {Scale: 1e-3 / 60.0},
		GPM:  {Scale: 3.785411784e-3 / 60.0},
	},
	PressureGradient: {
		PaPerM:      {Scale: 1},
		KPaPerM:     {Scale: 1e3},
		PsiPer100Ft: {Scale: 6894.757293168361 / 30.48},
	},
	Dimensionless: {
		Unitless: {Scale: 1},
	},
}

// UnsupportedUnitError reports a unit not registered for a family.
type UnsupportedUnitError struct {
	Unit   Unit
	Family Family
}

func (e *UnsupportedUnitError) Error() string {
	return fmt.Sprintf("unsupported unit %q for family %s", string(e.Unit), e.Family)
}

// Convert converts value from one unit to another within a family.
// Gauge pressure offsets apply only when crossing the gauge↔absolute
// boundary; gauge-to-gauge and absolute-to-absolute skip them.
func Convert(value float64, from, to Unit, family Family) (float64, error) {
	tab, ok := tables[family]
	if !ok {
		return 0, &UnsupportedUnitError{Unit: from, Family: family}
	}
	cf, ok := tab[from]
	if !ok {
		return 0, &UnsupportedUnitError{Unit: from, Family: family}
	}
	ct, ok := tab[to]
	if !ok {
		return 0, &UnsupportedUnitError{Unit: to, Family: family}
	}

	base := (value + cf.Offset) * cf.Scale
	if cf.Gauge && !ct.Gauge {
		base += AtmosphericPressure
	} else if !cf.Gauge && ct.Gauge {
		base -= AtmosphericPressure
	}
	return base/ct.Scale - ct.Offset, nil
}

// ConvertScalar is the tolerant variant of Convert: it reports ok=false
// instead of failing, for display paths that render a blank on bad units.
func ConvertScalar(value float64, from, to Unit, family Family) (float64, bool) {
	v, err := Convert(value, from, to, family)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Units lists the registered units for a family in no particular order.
func Units(family Family) []Unit {
	out := make([]Unit, 0, len(tables[family]))
	for u := range tables[family] {
		out = append(out, u)
	}
	return out
}

// Base returns the canonical base unit for a family.
func Base(family Family) Unit {
	switch family {
	case Pressure:
		return Pa
	case Temperature:
		return Kelvin
	case Length:
		return Meter
	case Density:
		return KgM3
	case Viscosity:
		return PaS
	case MassFlow:
		return KgS
	case VolumeFlow:
		return M3S
	case PressureGradient:
		return PaPerM
	}
	return Unitless
}
