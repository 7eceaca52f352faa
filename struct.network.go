package chs

import (
	"encoding/gob"
	"fmt"
	"os"
)

// Network aggregates the nodes, reaches and weirs of one channel
// system. Elements are held in dense slices; name→index maps provide
// lookup. Every edge's endpoints are checked against the node set at
// registration, so an assembled network is topologically closed.
type Network struct {
	Nodes   []Node
	Reaches []Reach
	Weirs   []Weir
	Nxr     map[string]int // node name to index
	Rxr     map[string]int // reach name to index
	Wxr     map[string]int // weir name to index
}

// NewNetwork returns an empty network.
func NewNetwork() *Network {
	return &Network{
		Nxr: map[string]int{},
		Rxr: map[string]int{},
		Wxr: map[string]int{},
	}
}

// AddNode registers a node. Re-registering a name is a no-op returning
// the existing index.
func (net *Network) AddNode(n Node) (int, error) {
	if n.Name == "" {
		return -1, ErrEmptyName
	}
	if i, ok := net.Nxr[n.Name]; ok {
		return i, nil
	}
	net.Nodes = append(net.Nodes, n)
	i := len(net.Nodes) - 1
	net.Nxr[n.Name] = i
	return i, nil
}

// AddReach registers a reach; both endpoint names must already resolve
// to registered nodes.
func (net *Network) AddReach(r Reach, us, ds string) (int, error) {
	if r.Name == "" {
		return -1, ErrEmptyName
	}
	if i, ok := net.Rxr[r.Name]; ok {
		return i, nil
	}
	iu, ok := net.Nxr[us]
	if !ok {
		return -1, fmt.Errorf("reach %s upstream %q: %w", r.Name, us, ErrNodeNotFound)
	}
	id, ok := net.Nxr[ds]
	if !ok {
		return -1, fmt.Errorf("reach %s downstream %q: %w", r.Name, ds, ErrNodeNotFound)
	}
	r.Us, r.Ds = iu, id
	net.Reaches = append(net.Reaches, r)
	i := len(net.Reaches) - 1
	net.Rxr[r.Name] = i
	return i, nil
}

// AddWeir registers a weir; both endpoint names must already resolve to
// registered nodes.
func (net *Network) AddWeir(w Weir, us, ds string) (int, error) {
	if w.Name == "" {
		return -1, ErrEmptyName
	}
	if i, ok := net.Wxr[w.Name]; ok {
		return i, nil
	}
	iu, ok := net.Nxr[us]
	if !ok {
		return -1, fmt.Errorf("weir %s upstream %q: %w", w.Name, us, ErrNodeNotFound)
	}
	id, ok := net.Nxr[ds]
	if !ok {
		return -1, fmt.Errorf("weir %s downstream %q: %w", w.Name, ds, ErrNodeNotFound)
	}
	w.Us, w.Ds = iu, id
	net.Weirs = append(net.Weirs, w)
	i := len(net.Weirs) - 1
	net.Wxr[w.Name] = i
	return i, nil
}

// Node returns the named node for boundary updates between steps.
func (net *Network) Node(name string) (*Node, error) {
	i, ok := net.Nxr[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrNodeNotFound)
	}
	return &net.Nodes[i], nil
}

// SaveGob writes a restart snapshot of the network.
func (net *Network) SaveGob(fp string) error {
	f, err := os.Create(fp)
	if err != nil {
		return fmt.Errorf(" network.SaveGob %v", err)
	}
	if err := gob.NewEncoder(f).Encode(net); err != nil {
		return fmt.Errorf(" network.SaveGob %v", err)
	}
	f.Close()
	return nil
}

// LoadGobNetwork reads a network snapshot written by SaveGob.
func LoadGobNetwork(fp string) (*Network, error) {
	var net Network
	f, err := os.Open(fp)
	if err != nil {
		return nil, err
	}
	if err := gob.NewDecoder(f).Decode(&net); err != nil {
		return nil, err
	}
	f.Close()
	return &net, nil
}
