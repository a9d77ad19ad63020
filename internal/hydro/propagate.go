package hydro

import (
	"fmt"
	"math"
	"slices"

	"github.com/talgya/hydronet/internal/fluid"
	"github.com/talgya/hydronet/internal/network"
	"github.com/talgya/hydronet/internal/units"
)

// Two propagation paths into the same node agreeing within this relative
// tolerance are a clean reconvergence; anything wider is a conflict.
const conflictRelTolerance = 1e-6

// WarningKind classifies propagation warnings.
type WarningKind string

const (
	WarnConflict WarningKind = "conflict" // node reached with inconsistent upstream results
	WarnCycle    WarningKind = "cycle"    // pipe leads back to an already-finalized node
	WarnSkipped  WarningKind = "skipped"  // segment could not be computed
)

// Warning is a non-fatal propagation finding. Traversal always completes
// for the branches a warning does not touch.
type Warning struct {
	Kind    WarningKind    `json:"kind"`
	Node    network.NodeID `json:"node,omitempty"`
	Pipe    network.PipeID `json:"pipe,omitempty"`
	Message string         `json:"message"`
}

// PropagationResult is the outcome of one propagation run over a network
// snapshot. Network is the updated clone; the input network is untouched.
type PropagationResult struct {
	Network      *network.Network `json:"network"`
	UpdatedNodes []network.NodeID `json:"updated_nodes"`
	UpdatedPipes []network.PipeID `json:"updated_pipes"`
	Warnings     []Warning        `json:"warnings"`
}

// Propagate walks the network downstream from a source node, computing
// each pipe with its upstream node as boundary and writing the downstream
// node's pressure, temperature, and (when absent) fluid — all tagged auto.
// Manual fields are never overwritten. Conflicts and cycles become
// warnings; the walk still terminates and covers every reachable branch.
func (e *Engine) Propagate(net *network.Network, source network.NodeID) (*PropagationResult, error) {
	if _, ok := net.Node(source); !ok {
		return nil, fmt.Errorf("unknown source node %d", source)
	}
	if !net.IsSource(source) {
		return nil, fmt.Errorf("node %d is not a source: it is downstream of at least one connected pipe", source)
	}

	snap := net.Clone()
	result := &PropagationResult{Network: snap}

	finalized := map[network.NodeID]bool{source: true}
	visitedPipes := map[network.PipeID]bool{}
	updatedNodes := map[network.NodeID]bool{}
	updatedPipes := map[network.PipeID]bool{}

	frontier := []network.NodeID{source}
	for len(frontier) > 0 {
		nodeID := frontier[0]
		frontier = frontier[1:]

		node, _ := snap.Node(nodeID)
		for _, pipeID := range snap.Outgoing(nodeID) {
			if visitedPipes[pipeID] {
				continue
			}
			visitedPipes[pipeID] = true

			pipe, _ := snap.Pipe(pipeID)
			_, summary, err := e.RecalculateSegment(pipe, node)
			if err != nil {
				result.Warnings = append(result.Warnings, Warning{
					Kind:    WarnSkipped,
					Pipe:    pipeID,
					Message: fmt.Sprintf("segment not computed: %v", err),
				})
				continue
			}
			updatedPipes[pipeID] = true

			downID := pipe.Downstream()
			down, _ := snap.Node(downID)

			if finalized[downID] {
				e.checkReconvergence(result, down, pipeID, summary)
				continue
			}

			wroteP := down.Pressure.SetAuto(units.Q(summary.OutletPressure, units.Pa, units.Pressure))
			wroteT := down.Temperature.SetAuto(units.Q(summary.OutletTemperature, units.Kelvin, units.Temperature))
			wroteF := false
			if down.Fluid == nil {
				if f := resolveFluid(pipe, node); f != nil {
					wroteF = down.SetFluidAuto(*f)
				}
			}
			if wroteP || wroteT || wroteF {
				updatedNodes[downID] = true
			}

			finalized[downID] = true
			frontier = append(frontier, downID)
		}
	}

	for id := range updatedNodes {
		result.UpdatedNodes = append(result.UpdatedNodes, id)
	}
	for id := range updatedPipes {
		result.UpdatedPipes = append(result.UpdatedPipes, id)
	}
	slices.Sort(result.UpdatedNodes)
	slices.Sort(result.UpdatedPipes)
	return result, nil
}

// checkReconvergence compares a second arrival at a finalized node with
// the state already written there. The first arrival always wins.
func (e *Engine) checkReconvergence(result *PropagationResult, down *network.Node, pipeID network.PipeID, summary *network.ResultSummary) {
	existing, ok := units.ConvertScalar(
		down.Pressure.Quantity.Value, down.Pressure.Quantity.Unit, units.Pa, units.Pressure)
	if !ok {
		existing = 0
	}
	diff := math.Abs(existing - summary.OutletPressure)
	scale := math.Max(math.Abs(existing), 1)

	if diff > conflictRelTolerance*scale {
		result.Warnings = append(result.Warnings, Warning{
			Kind: WarnConflict,
			Node: down.ID,
			Pipe: pipeID,
			Message: fmt.Sprintf("node %q reached with inconsistent pressures: kept %.6g Pa, discarded %.6g Pa",
				down.Label, existing, summary.OutletPressure),
		})
		return
	}
	result.Warnings = append(result.Warnings, Warning{
		Kind:    WarnCycle,
		Node:    down.ID,
		Pipe:    pipeID,
		Message: fmt.Sprintf("node %q revisited; keeping first result", down.Label),
	})
}

// resolveFluid returns the fluid a pipe carries: its own override, else
// the upstream node's.
func resolveFluid(p *network.Pipe, boundary *network.Node) *fluid.Fluid {
	if p.Fluid != nil {
		return p.Fluid
	}
	if boundary != nil {
		return boundary.Fluid
	}
	return nil
}
