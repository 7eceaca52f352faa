package chs

import "math"

// Weir is a free-flowing (unsubmerged) weir between two registered
// nodes. Tailwater submergence is not modeled: discharge depends on the
// upstream head only.
type Weir struct {
	Name   string
	Us, Ds int
	Zc     float64 // crest elevation [m]
	Cw     float64 // weir coefficient
	B      float64 // crest width [m]
	Q      float64 // [m³/s]
}

// Residual evaluates the weir's stage-discharge residual for upstream
// head hup and discharge q, returning the residual and its derivatives
// w.r.t. q and hup. Below the crest the weir forces zero flow.
func (w *Weir) Residual(hup, q float64) (res, dq, dh float64) {
	head := hup - w.Zc
	if head <= 0. {
		return q, 1., 0.
	}
	return q - w.Cw*w.B*math.Pow(head, 1.5), 1., -1.5 * w.Cw * w.B * math.Sqrt(head)
}
