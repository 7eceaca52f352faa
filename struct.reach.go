package chs

import (
	"github.com/leixiaohui-1974/CHS-sub001/section"
)

// Reach is a prismatic channel segment between two registered nodes.
// Us and Ds are dense node indices assigned at registration. Q is the
// reach's discharge unknown [m³/s], positive from Us to Ds.
type Reach struct {
	Name   string
	Us, Ds int
	Length float64 // [m]
	N      float64 // Manning roughness
	S0     float64 // bed slope (informational; heads carry the gradient)
	Sct    section.Trapezoid
	Q      float64 // [m³/s]
}

// CriticalDepth returns the section's critical depth for the reach's
// current discharge.
func (r *Reach) CriticalDepth() float64 { return r.Sct.CriticalDepth(r.Q) }

// Froude returns the Froude number at depth h for the current discharge.
func (r *Reach) Froude(h float64) float64 { return r.Sct.Froude(r.Q, h) }
