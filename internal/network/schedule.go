package network

import (
	"github.com/talgya/hydronet/internal/units"
)

// Schedule is a standard pipe wall-thickness class.
type Schedule string

const (
	Sch40 Schedule = "40"
	Sch80 Schedule = "80"
)

// Internal diameters in mm for carbon-steel pipe per ASME B36.10,
// keyed by nominal pipe size in inches.
var scheduleBores = map[Schedule]map[float64]float64{
	Sch40: {
		0.5: 15.80, 0.75: 20.93, 1: 26.64, 1.5: 40.89, 2: 52.50,
		3: 77.93, 4: 102.26, 6: 154.05, 8: 202.72, 10: 254.51,
		12: 303.23, 16: 381.00, 20: 477.82, 24: 574.65,
	},
	Sch80: {
		0.5: 13.87, 0.75: 18.85, 1: 24.31, 1.5: 38.10, 2: 49.25,
		3: 73.66, 4: 97.18, 6: 146.33, 8: 193.68, 10: 242.93,
		12: 288.90, 16: 363.52, 20: 455.62, 24: 547.69,
	},
}

// ScheduleBore looks up the internal diameter for a nominal size and
// schedule. The second return is false for sizes not in the catalog.
func ScheduleBore(nps float64, sch Schedule) (units.Quantity, bool) {
	bores, ok := scheduleBores[sch]
	if !ok {
		return units.Quantity{}, false
	}
	mm, ok := bores[nps]
	if !ok {
		return units.Quantity{}, false
	}
	return units.Q(mm, units.Millimeter, units.Length), true
}

// Bore resolves the pipe's internal diameter: an explicit diameter wins,
// otherwise the NPS + schedule catalog is consulted.
func (g Geometry) Bore() units.Quantity {
	if !g.Diameter.Zero() {
		return g.Diameter
	}
	if g.NPS > 0 && g.Schedule != "" {
		if d, ok := ScheduleBore(g.NPS, g.Schedule); ok {
			return d
		}
	}
	return units.Quantity{}
}
