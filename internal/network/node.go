package network

import (
	"github.com/talgya/hydronet/internal/fluid"
)

// NodeID addresses a node in the network arena.
type NodeID uint64

// Node is a pressure/temperature boundary or junction point.
// Pressure and temperature carry provenance: propagation writes them only
// when they are tagged auto.
type Node struct {
	ID    NodeID `json:"id"`
	Label string `json:"label"`

	Pressure    Tracked `json:"pressure"`
	Temperature Tracked `json:"temperature"`

	// Fluid at this node, if known. FluidStatus tracks whether the user
	// assigned it or propagation copied it from upstream.
	Fluid       *fluid.Fluid `json:"fluid,omitempty"`
	FluidStatus UpdateStatus `json:"fluid_status"`
}

// SetFluidAuto copies a fluid onto the node unless the user assigned one.
func (n *Node) SetFluidAuto(f fluid.Fluid) bool {
	if n.Fluid != nil && n.FluidStatus == StatusManual {
		return false
	}
	c := f.Clone()
	n.Fluid = &c
	n.FluidStatus = StatusAuto
	return true
}

// SetFluidManual assigns a user-chosen fluid (copied by value).
func (n *Node) SetFluidManual(f fluid.Fluid) {
	c := f.Clone()
	n.Fluid = &c
	n.FluidStatus = StatusManual
}

// Clone returns a deep copy of the node.
func (n *Node) Clone() *Node {
	c := *n
	if n.Fluid != nil {
		f := n.Fluid.Clone()
		c.Fluid = &f
	}
	return &c
}
