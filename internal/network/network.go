// Package network holds the pipe/node arena the solvers operate on.
// Nodes and pipes are addressed by integer ids; traversal code takes a
// cloned snapshot rather than mutating the live arena mid-walk.
package network

import (
	"fmt"
	"slices"
)

// Network is an arena of nodes and pipes.
type Network struct {
	Nodes map[NodeID]*Node `json:"nodes"`
	Pipes map[PipeID]*Pipe `json:"pipes"`

	nextNode NodeID
	nextPipe PipeID
}

// New returns an empty network.
func New() *Network {
	return &Network{
		Nodes: make(map[NodeID]*Node),
		Pipes: make(map[PipeID]*Pipe),
	}
}

// AddNode inserts a node and assigns its id.
func (n *Network) AddNode(node *Node) NodeID {
	n.nextNode++
	node.ID = n.nextNode
	n.Nodes[node.ID] = node
	return node.ID
}

// AddPipe inserts a pipe and assigns its id. The endpoints must exist and
// be distinct.
func (n *Network) AddPipe(pipe *Pipe) (PipeID, error) {
	if pipe.Start == pipe.End {
		return 0, fmt.Errorf("pipe endpoints must be distinct (node %d)", pipe.Start)
	}
	if _, ok := n.Nodes[pipe.Start]; !ok {
		return 0, fmt.Errorf("unknown start node %d", pipe.Start)
	}
	if _, ok := n.Nodes[pipe.End]; !ok {
		return 0, fmt.Errorf("unknown end node %d", pipe.End)
	}
	n.nextPipe++
	pipe.ID = n.nextPipe
	n.Pipes[pipe.ID] = pipe
	return pipe.ID, nil
}

// Node returns a node by id.
func (n *Network) Node(id NodeID) (*Node, bool) {
	nd, ok := n.Nodes[id]
	return nd, ok
}

// Pipe returns a pipe by id.
func (n *Network) Pipe(id PipeID) (*Pipe, bool) {
	p, ok := n.Pipes[id]
	return p, ok
}

// Outgoing lists the pipes whose upstream endpoint is the given node,
// sorted by id so traversal order is deterministic.
func (n *Network) Outgoing(id NodeID) []PipeID {
	var out []PipeID
	for pid, p := range n.Pipes {
		if p.Upstream() == id {
			out = append(out, pid)
		}
	}
	slices.Sort(out)
	return out
}

// Incoming lists the pipes whose downstream endpoint is the given node.
func (n *Network) Incoming(id NodeID) []PipeID {
	var in []PipeID
	for pid, p := range n.Pipes {
		if p.Downstream() == id {
			in = append(in, pid)
		}
	}
	slices.Sort(in)
	return in
}

// IsSource reports whether the node is upstream of every pipe touching it.
// A node with no pipes is not a source.
func (n *Network) IsSource(id NodeID) bool {
	touched := false
	for _, p := range n.Pipes {
		if p.Start != id && p.End != id {
			continue
		}
		touched = true
		if p.Upstream() != id {
			return false
		}
	}
	return touched
}

// NodeIDs returns all node ids in ascending order.
func (n *Network) NodeIDs() []NodeID {
	ids := make([]NodeID, 0, len(n.Nodes))
	for id := range n.Nodes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// PipeIDs returns all pipe ids in ascending order.
func (n *Network) PipeIDs() []PipeID {
	ids := make([]PipeID, 0, len(n.Pipes))
	for id := range n.Pipes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Reindex restores the id counters after deserialization, so ids handed
// out later never collide with loaded ones.
func (n *Network) Reindex() {
	n.nextNode, n.nextPipe = 0, 0
	for id := range n.Nodes {
		if id > n.nextNode {
			n.nextNode = id
		}
	}
	for id := range n.Pipes {
		if id > n.nextPipe {
			n.nextPipe = id
		}
	}
}

// Clone returns a deep copy of the whole arena.
func (n *Network) Clone() *Network {
	c := &Network{
		Nodes:    make(map[NodeID]*Node, len(n.Nodes)),
		Pipes:    make(map[PipeID]*Pipe, len(n.Pipes)),
		nextNode: n.nextNode,
		nextPipe: n.nextPipe,
	}
	for id, nd := range n.Nodes {
		c.Nodes[id] = nd.Clone()
	}
	for id, p := range n.Pipes {
		c.Pipes[id] = p.Clone()
	}
	return c
}
