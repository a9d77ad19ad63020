package network

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/hydronet/internal/fluid"
	"github.com/talgya/hydronet/internal/units"
)

func TestTrackedManualNotOverwritten(t *testing.T) {
	var p Tracked
	ok := p.SetAuto(units.Q(100, units.KPa, units.Pressure))
	require.True(t, ok)

	p.SetManual(units.Q(250, units.KPa, units.Pressure))
	ok = p.SetAuto(units.Q(100, units.KPa, units.Pressure))
	assert.False(t, ok)
	assert.Equal(t, 250.0, p.Quantity.Value)
	assert.Equal(t, StatusManual, p.Status)

	p.Release()
	ok = p.SetAuto(units.Q(100, units.KPa, units.Pressure))
	assert.True(t, ok)
	assert.Equal(t, 100.0, p.Quantity.Value)
}

func TestNodeFluidProvenance(t *testing.T) {
	n := &Node{Label: "j1"}

	// Auto fluid can be replaced by another auto write.
	require.True(t, n.SetFluidAuto(fluid.Water()))
	require.True(t, n.SetFluidAuto(fluid.Air()))
	assert.Equal(t, "air", n.Fluid.Name)

	// Manual assignment pins it.
	n.SetFluidManual(fluid.Water())
	assert.False(t, n.SetFluidAuto(fluid.Air()))
	assert.Equal(t, "water", n.Fluid.Name)
}

func TestFittingKAccumulation(t *testing.T) {
	// Adding any fitting with count > 0 strictly increases K.
	base := Fitting{Type: Elbow90, Count: 2}.K(0)
	more := base + Fitting{Type: GateValve, Count: 1}.K(0)
	assert.Greater(t, more, base)

	// Count zero contributes nothing at all.
	assert.Zero(t, Fitting{Type: GlobeValve, Count: 0}.K(0))

	// Swage K derives from the diameter ratio.
	red := FittingK(SwageReducer, 0.5)
	assert.InDelta(t, 0.5*(1-0.25), red, 1e-12)
	exp := FittingK(SwageExpander, 0.5)
	assert.InDelta(t, 0.75*0.75, exp, 1e-12)

	// Degenerate ratios are ignored.
	assert.Zero(t, FittingK(SwageReducer, 0))
	assert.Zero(t, FittingK(SwageExpander, 1.2))
}

func TestScheduleBore(t *testing.T) {
	// 2" schedule 40 pipe has a 52.5 mm bore.
	g := Geometry{NPS: 2, Schedule: Sch40}
	bore := g.Bore()
	require.False(t, bore.Zero())
	assert.InDelta(t, 52.50, bore.Value, 1e-9)
	assert.Equal(t, units.Millimeter, bore.Unit)

	// An explicit diameter always wins over the catalog.
	g.Diameter = units.Q(60, units.Millimeter, units.Length)
	assert.Equal(t, 60.0, g.Bore().Value)

	// Unknown sizes resolve to nothing.
	assert.True(t, Geometry{NPS: 7, Schedule: Sch40}.Bore().Zero())
	assert.True(t, Geometry{NPS: 2, Schedule: "160"}.Bore().Zero())
	assert.True(t, Geometry{}.Bore().Zero())
}

func TestPipeEndpointsMustBeDistinct(t *testing.T) {
	net := New()
	id := net.AddNode(&Node{Label: "only"})

	_, err := net.AddPipe(&Pipe{Start: id, End: id})
	require.Error(t, err)

	_, err = net.AddPipe(&Pipe{Start: id, End: 999})
	require.Error(t, err)
}

func TestUpstreamDownstreamByDirection(t *testing.T) {
	p := &Pipe{Start: 1, End: 2, Direction: Forward}
	assert.Equal(t, NodeID(1), p.Upstream())
	assert.Equal(t, NodeID(2), p.Downstream())

	p.Direction = Backward
	assert.Equal(t, NodeID(2), p.Upstream())
	assert.Equal(t, NodeID(1), p.Downstream())
}

func TestIsSource(t *testing.T) {
	net, src := Sample()
	assert.True(t, net.IsSource(src))

	// The header has an incoming pipe, so it is not a source.
	assert.False(t, net.IsSource(2))

	// An isolated node is not a source either.
	iso := net.AddNode(&Node{Label: "isolated"})
	assert.False(t, net.IsSource(iso))
}

func TestCloneIsDeep(t *testing.T) {
	net, _ := Sample()
	c := net.Clone()

	c.Nodes[1].Pressure.SetManual(units.Q(900, units.KPa, units.Pressure))
	c.Pipes[1].Fittings[0].Count = 99

	assert.Equal(t, 500.0, net.Nodes[1].Pressure.Quantity.Value)
	assert.Equal(t, 1, net.Pipes[1].Fittings[0].Count)
}

func TestReindexAfterRoundTrip(t *testing.T) {
	net, _ := Sample()
	data, err := json.Marshal(net)
	require.NoError(t, err)

	var loaded Network
	require.NoError(t, json.Unmarshal(data, &loaded))
	loaded.Reindex()

	id := loaded.AddNode(&Node{Label: "new"})
	_, exists := net.Nodes[id]
	assert.False(t, exists, "fresh id must not collide with loaded ids")
	assert.Equal(t, NodeID(5), id)
}
