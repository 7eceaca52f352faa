package chs

// NodeKind tags the boundary behavior of a node.
type NodeKind int

const (
	Junction       NodeKind = iota // plain junction, head solved from continuity
	InflowBoundary                 // fixed external inflow [m³/s], head solved
	LevelBoundary                  // fixed water-surface elevation [m]
)

// Node is a point in the network holding a water-surface elevation.
// H is the primary unknown for non-level-boundary nodes. Qin and Hb are
// the externally driven boundary values, mutated between steps by the
// driver; only the kind's own field is read.
type Node struct {
	Name     string
	Kind     NodeKind
	Z        float64 // bed elevation [m]
	Sa       float64 // storage surface area [m²]
	H        float64 // water-surface elevation (head) [m]
	Qin      float64 // boundary inflow [m³/s] (InflowBoundary)
	Hb       float64 // boundary level [m] (LevelBoundary)
	Lat, Lng float64 // optional georeference
}

// Depth returns the local water depth [m], clamped at zero.
func (n *Node) Depth() float64 {
	if d := n.H - n.Z; d > 0. {
		return d
	}
	return 0.
}

// Dry reports whether the node depth is below the wet/dry threshold.
// Level boundaries are never treated dry; their head is prescribed.
func (n *Node) Dry(hmin float64) bool {
	return n.Kind != LevelBoundary && n.H-n.Z < hmin
}
