package sim

import (
	"github.com/maseology/goHydro/hru"

	chs "github.com/leixiaohui-1974/CHS-sub001"
)

// Reservoir is a level-pool downstream collaborator: it accumulates an
// upstream discharge, spills above its crest storage, and drives a
// LevelBoundary node's target elevation from its live storage. This is
// how a tidal/reservoir condition couples into the network between
// steps.
type Reservoir struct {
	Res  hru.Res // storage [m³]; Cap is the storage at the spill crest
	Area float64 // pool surface area [m²]
	Zb   float64 // pool bottom elevation [m]
	Node string  // LevelBoundary node to drive
}

// Level returns the pool's current surface elevation.
func (rv *Reservoir) Level() float64 { return rv.Zb + rv.Res.Sto/rv.Area }

// Update routes qin [m³/s] into the pool for dt seconds, applies the
// resulting level to the bound node, and returns the spill rate [m³/s].
func (rv *Reservoir) Update(net *chs.Network, qin, dt float64) (float64, error) {
	spill := rv.Res.Overflow(qin*dt) / dt
	nd, err := net.Node(rv.Node)
	if err != nil {
		return 0., err
	}
	nd.Hb = rv.Level()
	return spill, nil
}
