package dag

import (
	"errors"
	"maps"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by AddNode when the node ID is empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by AddNode when a node with the same
	// ID already exists.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by AddEdge when the From node does
	// not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by AddEdge when the To node does
	// not exist.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrInvalidEdgeEndpoint is returned by Validate when an edge
	// references a node that doesn't exist.
	ErrInvalidEdgeEndpoint = errors.New("invalid edge endpoint")

	// ErrNonConsecutiveRanks is returned by Validate when an edge connects
	// nodes that are not in adjacent ranks.
	ErrNonConsecutiveRanks = errors.New("edges must connect consecutive ranks")

	// ErrGraphHasCycle is returned by Validate when a cycle is detected.
	ErrGraphHasCycle = errors.New("graph contains a cycle")
)

// Metadata stores arbitrary key-value pairs attached to nodes, edges, or the
// graph. Maps are never nil once returned from AddNode/AddEdge.
type Metadata map[string]any

// NodeKind distinguishes original actors from nodes synthesized during
// transformation.
type NodeKind int

const (
	// NodeKindRegular is an actor lane, one per participant in the diagram.
	NodeKindRegular NodeKind = iota
	// NodeKindVirtual is a synthetic node inserted to subdivide an edge
	// that spans more than one rank.
	NodeKindVirtual
	// NodeKindAuxiliary is a helper node inserted to resolve an
	// unavoidable tangle of crossings (a shared separator beam).
	NodeKindAuxiliary
)

// Node is a vertex assigned to a rank (horizontal layer). Regular nodes are
// actor lanes; Virtual and Auxiliary nodes are synthesized by the transform
// package.
type Node struct {
	ID   string
	Rank int
	Meta Metadata

	Kind     NodeKind
	MasterID string // for Virtual nodes, the actor lane they subdivide
}

// IsVirtual reports whether the node was inserted to carry a long edge
// across intermediate ranks.
func (n Node) IsVirtual() bool { return n.Kind == NodeKindVirtual }

// IsAuxiliary reports whether the node is a separator beam inserted by
// ResolveSpanOverlaps.
func (n Node) IsAuxiliary() bool { return n.Kind == NodeKindAuxiliary }

// IsSynthetic reports whether the node was created during transformation.
func (n Node) IsSynthetic() bool { return n.Kind != NodeKindRegular }

// EffectiveID returns MasterID for Virtual nodes (so a subdivided edge's
// chain collapses back to a single logical lane), otherwise ID.
func (n Node) EffectiveID() string {
	if n.MasterID != "" {
		return n.MasterID
	}
	return n.ID
}

// Edge is a directed connection between two nodes. After Subdivide, From
// and To are in consecutive ranks; before that, an edge may span several
// ranks (spec.md's virtual-node preparation step has not run yet).
type Edge struct {
	From string
	To   string
	Meta Metadata
}

// DAG is a directed graph organized into ranks, with parallel edges allowed
// (multiple actions between the same pair of actors preserve one edge each,
// in declaration order).
//
// The zero value is not usable; use New. DAG is not safe for concurrent use.
type DAG struct {
	nodes       map[string]*Node
	edges       []Edge
	outgoing    map[string][]string
	incoming    map[string][]string
	ranks       map[int][]*Node
	meta        Metadata
	insertOrder []string
}

// New creates an empty DAG with optional graph-level metadata.
func New(meta Metadata) *DAG {
	if meta == nil {
		meta = Metadata{}
	}
	return &DAG{
		nodes:    make(map[string]*Node),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
		ranks:    make(map[int][]*Node),
		meta:     meta,
	}
}

// Meta returns the graph-level metadata map. Never nil.
func (d *DAG) Meta() Metadata { return d.meta }

// AddNode adds a node, indexed by its Rank. Meta is initialized to an empty
// map if nil.
func (d *DAG) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := d.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	if n.Meta == nil {
		n.Meta = Metadata{}
	}
	node := &n
	d.nodes[node.ID] = node
	d.ranks[node.Rank] = append(d.ranks[node.Rank], node)
	d.insertOrder = append(d.insertOrder, node.ID)
	return nil
}

// NodeOrder returns node IDs in the order they were added to the graph.
// Cycle breaking and ordering use this for deterministic tiebreaks, since
// [DAG.Nodes] does not guarantee an order.
func (d *DAG) NodeOrder() []string { return slices.Clone(d.insertOrder) }

// SetRanks updates rank assignments and rebuilds the rank index. Nodes not
// present in ranks retain their current assignment.
func (d *DAG) SetRanks(ranks map[string]int) {
	d.ranks = make(map[int][]*Node)
	for _, id := range d.insertOrder {
		n := d.nodes[id]
		if newRank, ok := ranks[n.ID]; ok {
			n.Rank = newRank
		}
		d.ranks[n.Rank] = append(d.ranks[n.Rank], n)
	}
}

// AddEdge adds a directed edge between two existing nodes. Multiple edges
// between the same pair are allowed (parallel actions between two actors).
func (d *DAG) AddEdge(e Edge) error {
	if _, ok := d.nodes[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := d.nodes[e.To]; !ok {
		return ErrUnknownTargetNode
	}
	if e.Meta == nil {
		e.Meta = Metadata{}
	}
	d.edges = append(d.edges, e)
	d.outgoing[e.From] = append(d.outgoing[e.From], e.To)
	d.incoming[e.To] = append(d.incoming[e.To], e.From)
	return nil
}

// RemoveEdge removes the first from→to edge found, if any. Other parallel
// edges between the same pair (distinct actions between the same two
// actors) are left untouched.
func (d *DAG) RemoveEdge(from, to string) {
	removed := false
	d.edges = slices.DeleteFunc(d.edges, func(e Edge) bool {
		if removed || e.From != from || e.To != to {
			return false
		}
		removed = true
		return true
	})
	removed = false
	d.outgoing[from] = slices.DeleteFunc(d.outgoing[from], func(s string) bool {
		if removed || s != to {
			return false
		}
		removed = true
		return true
	})
	removed = false
	d.incoming[to] = slices.DeleteFunc(d.incoming[to], func(s string) bool {
		if removed || s != from {
			return false
		}
		removed = true
		return true
	})
}

// Nodes returns all nodes. Order is not guaranteed.
func (d *DAG) Nodes() []*Node {
	nodes := make([]*Node, 0, len(d.nodes))
	for _, n := range d.nodes {
		nodes = append(nodes, n)
	}
	return nodes
}

// Edges returns a copy of all edges, in insertion order.
func (d *DAG) Edges() []Edge { return slices.Clone(d.edges) }

// NodeCount returns the number of nodes.
func (d *DAG) NodeCount() int { return len(d.nodes) }

// EdgeCount returns the number of edges.
func (d *DAG) EdgeCount() int { return len(d.edges) }

// Children returns the IDs this node has edges to, in insertion order.
func (d *DAG) Children(id string) []string { return d.outgoing[id] }

// Parents returns the IDs that have edges to this node, in insertion order.
func (d *DAG) Parents(id string) []string { return d.incoming[id] }

// OutDegree returns the number of outgoing edges.
func (d *DAG) OutDegree(id string) int { return len(d.outgoing[id]) }

// InDegree returns the number of incoming edges.
func (d *DAG) InDegree(id string) int { return len(d.incoming[id]) }

// Node looks up a node by ID.
func (d *DAG) Node(id string) (*Node, bool) {
	n, ok := d.nodes[id]
	return n, ok
}

// ChildrenInRank returns children of id that are in the given rank.
func (d *DAG) ChildrenInRank(id string, rank int) []string {
	var result []string
	for _, c := range d.outgoing[id] {
		if n, ok := d.nodes[c]; ok && n.Rank == rank {
			result = append(result, c)
		}
	}
	return result
}

// ParentsInRank returns parents of id that are in the given rank.
func (d *DAG) ParentsInRank(id string, rank int) []string {
	var result []string
	for _, p := range d.incoming[id] {
		if n, ok := d.nodes[p]; ok && n.Rank == rank {
			result = append(result, p)
		}
	}
	return result
}

// NodesInRank returns nodes assigned to rank, in insertion order.
func (d *DAG) NodesInRank(rank int) []*Node { return d.ranks[rank] }

// RankCount returns the number of distinct ranks.
func (d *DAG) RankCount() int { return len(d.ranks) }

// RankIDs returns all rank indices in ascending order.
func (d *DAG) RankIDs() []int {
	return slices.Sorted(maps.Keys(d.ranks))
}

// MaxRank returns the highest rank index, or 0 for an empty graph.
func (d *DAG) MaxRank() int {
	if len(d.ranks) == 0 {
		return 0
	}
	ids := d.RankIDs()
	return ids[len(ids)-1]
}

// Sources returns nodes with no incoming edges.
func (d *DAG) Sources() []*Node {
	var sources []*Node
	for _, n := range d.nodes {
		if len(d.incoming[n.ID]) == 0 {
			sources = append(sources, n)
		}
	}
	return sources
}

// Sinks returns nodes with no outgoing edges.
func (d *DAG) Sinks() []*Node {
	var sinks []*Node
	for _, n := range d.nodes {
		if len(d.outgoing[n.ID]) == 0 {
			sinks = append(sinks, n)
		}
	}
	return sinks
}

// Validate checks that every edge connects existing nodes in consecutive
// ranks and that the graph is acyclic.
func (d *DAG) Validate() error {
	if err := d.validateEdgeConsistency(); err != nil {
		return err
	}
	return d.detectCycles()
}

func (d *DAG) validateEdgeConsistency() error {
	for _, e := range d.edges {
		src, okS := d.nodes[e.From]
		dst, okD := d.nodes[e.To]
		if !okS || !okD {
			return ErrInvalidEdgeEndpoint
		}
		if dst.Rank != src.Rank+1 {
			return ErrNonConsecutiveRanks
		}
	}
	return nil
}

func (d *DAG) detectCycles() error {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(d.nodes))
	var hasCycle bool

	var dfs func(id string)
	dfs = func(id string) {
		color[id] = gray
		for _, child := range d.outgoing[id] {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				hasCycle = true
				return
			}
		}
		color[id] = black
	}

	for id := range d.nodes {
		if color[id] == white {
			dfs(id)
			if hasCycle {
				return ErrGraphHasCycle
			}
		}
	}
	return nil
}

// PosMap builds a position lookup from a slice of node IDs: each ID maps to
// its index.
func PosMap(ids []string) map[string]int {
	m := make(map[string]int, len(ids))
	for i, id := range ids {
		m[id] = i
	}
	return m
}

// NodePosMap is PosMap over a slice of nodes.
func NodePosMap(nodes []*Node) map[string]int {
	m := make(map[string]int, len(nodes))
	for i, n := range nodes {
		m[n.ID] = i
	}
	return m
}

// NodeIDs extracts IDs from a slice of nodes, preserving order.
func NodeIDs(nodes []*Node) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}
