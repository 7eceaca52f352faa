package chs

// NodeState is the per-node telemetry exported after a step.
type NodeState struct {
	Head   float64
	Inflow float64 // boundary inflow, zero for non-inflow nodes
}

// State is a named snapshot of the network's scalar state, for logging
// and for chained coupling (e.g. feeding a reach discharge to a
// downstream routing model).
type State struct {
	Nodes      map[string]NodeState
	Reaches    map[string]float64 // discharge [m³/s]
	Structures map[string]float64 // discharge [m³/s]
}

// State exports the current heads and discharges by element name.
func (net *Network) State() State {
	st := State{
		Nodes:      make(map[string]NodeState, len(net.Nodes)),
		Reaches:    make(map[string]float64, len(net.Reaches)),
		Structures: make(map[string]float64, len(net.Weirs)),
	}
	for _, n := range net.Nodes {
		st.Nodes[n.Name] = NodeState{Head: n.H, Inflow: n.Qin}
	}
	for _, r := range net.Reaches {
		st.Reaches[r.Name] = r.Q
	}
	for _, w := range net.Weirs {
		st.Structures[w.Name] = w.Q
	}
	return st
}
