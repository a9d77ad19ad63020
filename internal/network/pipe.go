package network

import (
	"github.com/talgya/hydronet/internal/fluid"
	"github.com/talgya/hydronet/internal/units"
)

// PipeID addresses a pipe in the network arena.
type PipeID uint64

// Direction selects which endpoint of a pipe is the upstream boundary.
type Direction uint8

const (
	Forward  Direction = iota // Start is upstream
	Backward                  // End is upstream
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// SectionType is the pipe's variant tag.
type SectionType uint8

const (
	SectionPipeline SectionType = iota
	SectionControlValve
	SectionOrifice
)

func (s SectionType) String() string {
	switch s {
	case SectionControlValve:
		return "control-valve"
	case SectionOrifice:
		return "orifice"
	}
	return "pipeline"
}

// InputMode selects the independent variable of a sizing element: the user
// enters either the flow coefficient (Cv/Cg, beta ratio) or the pressure
// drop, and the engine computes the other.
type InputMode uint8

const (
	InputCoefficient InputMode = iota
	InputPressureDrop
)

func (m InputMode) String() string {
	if m == InputPressureDrop {
		return "pressure-drop"
	}
	return "coefficient"
}

// ControlValve holds control-valve sizing data. Coefficient is Cv for
// liquid service and Cg for gas service.
type ControlValve struct {
	Mode        InputMode      `json:"mode"`
	Coefficient float64        `json:"coefficient,omitempty"`
	Drop        units.Quantity `json:"drop,omitempty"`

	// Gas valve constants. C1 of zero means "derive from XT".
	C1 float64 `json:"c1,omitempty"`
	XT float64 `json:"xt,omitempty"`
}

// SetCoefficient makes the coefficient the independent variable.
func (v *ControlValve) SetCoefficient(c float64) {
	v.Mode = InputCoefficient
	v.Coefficient = c
	v.Drop = units.Quantity{}
}

// SetDrop makes the pressure drop the independent variable.
func (v *ControlValve) SetDrop(q units.Quantity) {
	v.Mode = InputPressureDrop
	v.Drop = q
	v.Coefficient = 0
}

// Orifice holds restriction-orifice sizing data.
type Orifice struct {
	Mode      InputMode      `json:"mode"`
	BetaRatio float64        `json:"beta_ratio,omitempty"`
	Drop      units.Quantity `json:"drop,omitempty"`
}

// SetBeta makes the beta ratio the independent variable.
func (o *Orifice) SetBeta(beta float64) {
	o.Mode = InputCoefficient
	o.BetaRatio = beta
	o.Drop = units.Quantity{}
}

// SetDrop makes the pressure drop the independent variable.
func (o *Orifice) SetDrop(q units.Quantity) {
	o.Mode = InputPressureDrop
	o.Drop = q
	o.BetaRatio = 0
}

// Section is the tagged union of section variants. Only the payload
// matching Type is authoritative; the others are nil.
type Section struct {
	Type         SectionType   `json:"type"`
	ControlValve *ControlValve `json:"control_valve,omitempty"`
	Orifice      *Orifice      `json:"orifice,omitempty"`
}

// Pipeline returns a plain pipeline section.
func Pipeline() Section {
	return Section{Type: SectionPipeline}
}

// WithControlValve returns a control-valve section.
func WithControlValve(v ControlValve) Section {
	return Section{Type: SectionControlValve, ControlValve: &v}
}

// WithOrifice returns an orifice section.
func WithOrifice(o Orifice) Section {
	return Section{Type: SectionOrifice, Orifice: &o}
}

// Geometry holds the pipe's physical dimensions. Diameter may be given
// directly or as NPS + Schedule; Bore resolves the effective value.
type Geometry struct {
	Diameter        units.Quantity `json:"diameter"`
	NPS             float64        `json:"nps,omitempty"` // nominal pipe size, inches
	Schedule        Schedule       `json:"schedule,omitempty"`
	InletDiameter   units.Quantity `json:"inlet_diameter,omitempty"`
	OutletDiameter  units.Quantity `json:"outlet_diameter,omitempty"`
	Length          units.Quantity `json:"length"`
	ElevationChange units.Quantity `json:"elevation_change,omitempty"`
	Roughness       units.Quantity `json:"roughness,omitempty"`
}

// Pipe is one flow segment between two distinct nodes.
type Pipe struct {
	ID    PipeID `json:"id"`
	Label string `json:"label"`

	Start     NodeID    `json:"start"`
	End       NodeID    `json:"end"`
	Direction Direction `json:"direction"`

	Section  Section   `json:"section"`
	Geometry Geometry  `json:"geometry"`
	Fittings []Fitting `json:"fittings,omitempty"`

	MassFlow units.Quantity `json:"mass_flow"`

	// Fluid override; when nil the upstream node's fluid applies.
	Fluid *fluid.Fluid `json:"fluid,omitempty"`

	// Extra user-supplied resistance coefficient and fixed loss.
	UserK    float64        `json:"user_k,omitempty"`
	UserDrop units.Quantity `json:"user_drop,omitempty"`

	// Percentage safety margin applied to the pipe+fitting K subtotal.
	SafetyFactorPct float64 `json:"safety_factor_pct,omitempty"`

	// Outputs of the last successful recalculation.
	Results *PressureDropResults `json:"results,omitempty"`
	Summary *ResultSummary       `json:"summary,omitempty"`
}

// Upstream returns the node supplying the boundary state.
func (p *Pipe) Upstream() NodeID {
	if p.Direction == Backward {
		return p.End
	}
	return p.Start
}

// Downstream returns the node receiving propagated state.
func (p *Pipe) Downstream() NodeID {
	if p.Direction == Backward {
		return p.Start
	}
	return p.End
}

// InvalidateResults drops stale outputs after an input edit.
func (p *Pipe) InvalidateResults() {
	p.Results = nil
	p.Summary = nil
}

// Clone returns a deep copy of the pipe.
func (p *Pipe) Clone() *Pipe {
	c := *p
	if p.Fluid != nil {
		f := p.Fluid.Clone()
		c.Fluid = &f
	}
	if p.Fittings != nil {
		c.Fittings = append([]Fitting(nil), p.Fittings...)
	}
	if p.Section.ControlValve != nil {
		v := *p.Section.ControlValve
		c.Section.ControlValve = &v
	}
	if p.Section.Orifice != nil {
		o := *p.Section.Orifice
		c.Section.Orifice = &o
	}
	if p.Results != nil {
		r := *p.Results
		c.Results = &r
	}
	if p.Summary != nil {
		s := *p.Summary
		c.Summary = &s
	}
	return &c
}
