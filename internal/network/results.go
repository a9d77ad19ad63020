package network

// FlowRegime classifies the Reynolds-number regime.
type FlowRegime string

const (
	RegimeLaminar      FlowRegime = "laminar"
	RegimeTransitional FlowRegime = "transitional"
	RegimeTurbulent    FlowRegime = "turbulent"
)

// PressureDropResults is the per-segment calculation breakdown.
// All values are in base SI units (Pa, Pa/m, dimensionless).
type PressureDropResults struct {
	PipeLengthK float64 `json:"pipe_length_k"`
	FittingK    float64 `json:"fitting_k"`
	UserK       float64 `json:"user_k"`
	TotalK      float64 `json:"total_k"`

	ReynoldsNumber float64    `json:"reynolds_number"`
	FrictionFactor float64    `json:"friction_factor"`
	Regime         FlowRegime `json:"regime"`

	FrictionalDrop float64 `json:"frictional_drop"`
	ElevationDrop  float64 `json:"elevation_drop"`
	SectionDrop    float64 `json:"section_drop"` // control valve or orifice
	UserDrop       float64 `json:"user_drop"`
	TotalDrop      float64 `json:"total_drop"`
	DropPerLength  float64 `json:"drop_per_length"`

	// Gas-only outputs.
	GasCriticalPressure float64 `json:"gas_critical_pressure,omitempty"`
	Choked              bool    `json:"choked,omitempty"`

	// Back-computed sizing coefficients for the active section variant.
	Cv        float64 `json:"cv,omitempty"`
	Cg        float64 `json:"cg,omitempty"`
	BetaRatio float64 `json:"beta_ratio,omitempty"`
}

// ResultSummary is the segment's inlet/outlet thermodynamic state.
// Recomputed in full on every recalculation, never patched field-wise.
type ResultSummary struct {
	InletPressure     float64 `json:"inlet_pressure"`  // Pa absolute
	OutletPressure    float64 `json:"outlet_pressure"` // Pa absolute
	InletTemperature  float64 `json:"inlet_temperature"`
	OutletTemperature float64 `json:"outlet_temperature"`

	Density           float64 `json:"density"`
	Velocity          float64 `json:"velocity"`
	ErosionalVelocity float64 `json:"erosional_velocity"`
	ErosionalExceeded bool    `json:"erosional_exceeded,omitempty"`

	MachNumber  float64 `json:"mach_number,omitempty"`
	MachCaution bool    `json:"mach_caution,omitempty"`

	// ρ·v² — pipe-support momentum criterion.
	FlowMomentum float64 `json:"flow_momentum"`
}
