package chs

import (
	"fmt"
	"math"

	"github.com/im7mortal/UTM"
	"github.com/leixiaohui-1974/CHS-sub001/section"
)

// NodeDesc describes a node to the builder. Kind is one of "junction",
// "inflow" or "level". Lat/Lng are optional and only used to derive
// reach lengths for georeferenced models.
type NodeDesc struct {
	Name          string
	Kind          string
	Z, H, Sa      float64
	Inflow, Level float64
	Lat, Lng      float64
}

// ReachDesc describes a channel reach. A non-positive Length is derived
// from the endpoint nodes' coordinates when both are georeferenced.
type ReachDesc struct {
	Name, From, To         string
	Length, N              float64
	BottomWidth, SideSlope float64
	BedSlope               float64
	Q                      float64
}

// WeirDesc describes a weir structure.
type WeirDesc struct {
	Name, From, To string
	Zc, Cw, B      float64
	Q              float64
}

// Build assembles a network from descriptor lists, the construction
// interface consumed from an external model builder. Topology errors
// (unknown endpoints, bad kinds, underivable lengths) fail fast.
func Build(nodes []NodeDesc, reaches []ReachDesc, weirs []WeirDesc) (*Network, error) {
	net := NewNetwork()
	for _, nd := range nodes {
		var k NodeKind
		switch nd.Kind {
		case "junction", "":
			k = Junction
		case "inflow":
			k = InflowBoundary
		case "level":
			k = LevelBoundary
		default:
			return nil, fmt.Errorf("node %s: unknown kind %q", nd.Name, nd.Kind)
		}
		if _, err := net.AddNode(Node{
			Name: nd.Name, Kind: k,
			Z: nd.Z, Sa: nd.Sa, H: nd.H,
			Qin: nd.Inflow, Hb: nd.Level,
			Lat: nd.Lat, Lng: nd.Lng,
		}); err != nil {
			return nil, err
		}
	}
	for _, rd := range reaches {
		length := rd.Length
		if length <= 0. {
			var err error
			if length, err = net.chainage(rd.From, rd.To); err != nil {
				return nil, fmt.Errorf("reach %s: %v", rd.Name, err)
			}
		}
		if _, err := net.AddReach(Reach{
			Name:   rd.Name,
			Length: length,
			N:      rd.N,
			S0:     rd.BedSlope,
			Sct:    section.Trapezoid{B: rd.BottomWidth, M: rd.SideSlope},
			Q:      rd.Q,
		}, rd.From, rd.To); err != nil {
			return nil, err
		}
	}
	for _, wd := range weirs {
		if _, err := net.AddWeir(Weir{
			Name: wd.Name, Zc: wd.Zc, Cw: wd.Cw, B: wd.B, Q: wd.Q,
		}, wd.From, wd.To); err != nil {
			return nil, err
		}
	}
	return net, nil
}

// chainage returns the straight-line UTM distance [m] between two
// georeferenced nodes.
func (net *Network) chainage(from, to string) (float64, error) {
	a, err := net.Node(from)
	if err != nil {
		return 0., err
	}
	b, err := net.Node(to)
	if err != nil {
		return 0., err
	}
	if (a.Lat == 0. && a.Lng == 0.) || (b.Lat == 0. && b.Lng == 0.) {
		return 0., fmt.Errorf("no length given and nodes %s-%s not georeferenced", from, to)
	}
	ea, na, _, _, err := UTM.FromLatLon(a.Lat, a.Lng, a.Lat >= 0.)
	if err != nil {
		return 0., err
	}
	eb, nb, _, _, err := UTM.FromLatLon(b.Lat, b.Lng, b.Lat >= 0.)
	if err != nil {
		return 0., err
	}
	return math.Hypot(eb-ea, nb-na), nil
}
