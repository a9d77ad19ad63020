package network

// FittingType enumerates the resistance-coefficient catalog.
type FittingType uint8

const (
	Elbow90 FittingType = iota
	Elbow45
	TeeThrough
	TeeBranch
	GateValve
	GlobeValve
	CheckValve
	BallValve
	Entrance // boolean-toggled: count is 0 or 1
	Exit     // boolean-toggled: count is 0 or 1
	SwageReducer
	SwageExpander
)

func (t FittingType) String() string {
	switch t {
	case Elbow90:
		return "elbow-90"
	case Elbow45:
		return "elbow-45"
	case TeeThrough:
		return "tee-through"
	case TeeBranch:
		return "tee-branch"
	case GateValve:
		return "gate-valve"
	case GlobeValve:
		return "globe-valve"
	case CheckValve:
		return "check-valve"
	case BallValve:
		return "ball-valve"
	case Entrance:
		return "entrance"
	case Exit:
		return "exit"
	case SwageReducer:
		return "swage-reducer"
	case SwageExpander:
		return "swage-expander"
	}
	return "unknown"
}

// catalogK holds the fixed per-unit resistance coefficients. Swage types
// are absent: their K depends on the diameter ratio.
var catalogK = map[FittingType]float64{
	Elbow90:    0.75,
	Elbow45:    0.35,
	TeeThrough: 0.40,
	TeeBranch:  1.00,
	GateValve:  0.17,
	GlobeValve: 6.00,
	CheckValve: 2.00,
	BallValve:  0.05,
	Entrance:   0.50,
	Exit:       1.00,
}

// FittingK returns the per-unit resistance coefficient for a fitting type.
// beta is the small-to-large diameter ratio and is consulted only for the
// swage types: sudden contraction K = 0.5·(1−β²), sudden expansion
// (Borda–Carnot) K = (1−β²)².
func FittingK(t FittingType, beta float64) float64 {
	switch t {
	case SwageReducer:
		if beta <= 0 || beta >= 1 {
			return 0
		}
		return 0.5 * (1 - beta*beta)
	case SwageExpander:
		if beta <= 0 || beta >= 1 {
			return 0
		}
		d := 1 - beta*beta
		return d * d
	}
	return catalogK[t]
}

// Fitting is one catalog entry on a pipe with a count.
type Fitting struct {
	Type  FittingType `json:"type"`
	Count int         `json:"count"`
}

// K returns the fitting's total contribution: count × per-unit K.
// Zero-count fittings contribute nothing.
func (f Fitting) K(beta float64) float64 {
	if f.Count <= 0 {
		return 0
	}
	return float64(f.Count) * FittingK(f.Type, beta)
}
