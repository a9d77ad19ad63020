package network

import (
	"github.com/talgya/hydronet/internal/fluid"
	"github.com/talgya/hydronet/internal/units"
)

// Sample builds a small demonstration network: a water source feeding a
// header that splits into a plain branch and a control-valve branch.
// Used by the demo harness and as a fixture in tests.
func Sample() (*Network, NodeID) {
	net := New()

	source := &Node{Label: "supply"}
	source.Pressure.SetManual(units.Q(500, units.KPa, units.Pressure))
	source.Temperature.SetManual(units.Q(20, units.Celsius, units.Temperature))
	source.SetFluidManual(fluid.Water())
	srcID := net.AddNode(source)

	header := &Node{Label: "header"}
	headerID := net.AddNode(header)

	sinkA := &Node{Label: "sink-a"}
	sinkAID := net.AddNode(sinkA)

	sinkB := &Node{Label: "sink-b"}
	sinkBID := net.AddNode(sinkB)

	main := &Pipe{
		Label:     "main",
		Start:     srcID,
		End:       headerID,
		Direction: Forward,
		Section:   Pipeline(),
		Geometry: Geometry{
			Diameter:  units.Q(80, units.Millimeter, units.Length),
			Length:    units.Q(25, units.Meter, units.Length),
			Roughness: units.Q(0.045, units.Millimeter, units.Length),
		},
		Fittings: []Fitting{
			{Type: Entrance, Count: 1},
			{Type: Elbow90, Count: 2},
		},
		MassFlow: units.Q(7200, units.KgH, units.MassFlow),
	}
	net.AddPipe(main)

	branchA := &Pipe{
		Label:     "branch-a",
		Start:     headerID,
		End:       sinkAID,
		Direction: Forward,
		Section:   Pipeline(),
		Geometry: Geometry{
			Diameter:        units.Q(50, units.Millimeter, units.Length),
			Length:          units.Q(40, units.Meter, units.Length),
			ElevationChange: units.Q(3, units.Meter, units.Length),
			Roughness:       units.Q(0.045, units.Millimeter, units.Length),
		},
		Fittings: []Fitting{
			{Type: Elbow90, Count: 4},
			{Type: GateValve, Count: 1},
		},
		MassFlow: units.Q(3600, units.KgH, units.MassFlow),
	}
	net.AddPipe(branchA)

	valve := ControlValve{}
	valve.SetDrop(units.Q(50, units.KPa, units.Pressure))
	branchB := &Pipe{
		Label:     "branch-b",
		Start:     headerID,
		End:       sinkBID,
		Direction: Forward,
		Section:   WithControlValve(valve),
		Geometry: Geometry{
			Diameter:  units.Q(50, units.Millimeter, units.Length),
			Length:    units.Q(15, units.Meter, units.Length),
			Roughness: units.Q(0.045, units.Millimeter, units.Length),
		},
		MassFlow: units.Q(3600, units.KgH, units.MassFlow),
	}
	net.AddPipe(branchB)

	return net, srcID
}
