// Package section provides prismatic open-channel cross-section
// geometry and the depth solvers (critical, normal) built on it.
package section

import "math"

const (
	g        = 9.80665 // standard gravity [m/s²]
	nearzero = 1e-12
	dtol     = 1e-8 // depth solver convergence [m]
	maxiter  = 100
)

// Trapezoid is a symmetric trapezoidal channel section: bottom width B
// [m] and side slope M [m horizontal per m vertical]. M=0 gives a
// rectangle.
type Trapezoid struct{ B, M float64 }

// Area returns the flow area [m²] at depth h. Negative depths clamp to
// zero (protects Newton iterations from transient sign changes).
func (t Trapezoid) Area(h float64) float64 {
	if h <= 0. {
		return 0.
	}
	return (t.B + t.M*h) * h
}

// Perimeter returns the wetted perimeter [m] at depth h.
func (t Trapezoid) Perimeter(h float64) float64 {
	if h <= 0. {
		return t.B
	}
	return t.B + 2.*h*math.Sqrt(1.+t.M*t.M)
}

// DPerimeter returns dP/dh, constant for a trapezoid.
func (t Trapezoid) DPerimeter() float64 { return 2. * math.Sqrt(1.+t.M*t.M) }

// TopWidth returns the free-surface width [m] at depth h; also dA/dh.
func (t Trapezoid) TopWidth(h float64) float64 {
	if h <= 0. {
		return t.B
	}
	return t.B + 2.*t.M*h
}

// HydraulicRadius returns A/P [m] at depth h, 0 when dry.
func (t Trapezoid) HydraulicRadius(h float64) float64 {
	if h <= 0. {
		return 0.
	}
	return t.Area(h) / t.Perimeter(h)
}

// DHydraulicRadius returns dRh/dh at depth h.
func (t Trapezoid) DHydraulicRadius(h float64) float64 {
	if h <= 0. {
		return 0.
	}
	a, p := t.Area(h), t.Perimeter(h)
	return (t.TopWidth(h)*p - a*t.DPerimeter()) / (p * p)
}

// Froude returns the Froude number for discharge q [m³/s] at depth h.
// Fr = v/√(g·D) with hydraulic depth D = A/T. Returns 0 when dry.
func (t Trapezoid) Froude(q, h float64) float64 {
	a := t.Area(h)
	if a < nearzero {
		return 0.
	}
	d := a / t.TopWidth(h)
	return math.Abs(q) / a / math.Sqrt(g*d)
}

// CriticalDepth solves A³/T = Q²/g for depth by Newton iteration on the
// section. Returns 0 for zero (or near-zero) discharge.
func (t Trapezoid) CriticalDepth(q float64) float64 {
	q = math.Abs(q)
	if q < nearzero {
		return 0.
	}
	c := q * q / g
	h := math.Pow(c/(t.B*t.B+nearzero), 1./3.) // rectangular first guess
	if h < dtol {
		h = dtol
	}
	for i := 0; i < maxiter; i++ {
		a, tw := t.Area(h), t.TopWidth(h)
		f := a*a*a/tw - c
		df := (3.*a*a*tw*tw - a*a*a*2.*t.M) / (tw * tw) // d(A³/T)/dh
		dh := f / df
		h -= dh
		if h <= 0. {
			h = dtol
		}
		if math.Abs(dh) < dtol {
			break
		}
	}
	return h
}

// NormalDepth solves Manning's equation Q = A·Rh^(2/3)·√S0/n for depth
// by Newton iteration with a numeric slope. Returns 0 for zero
// discharge; NaN-free for any positive n and S0.
func (t Trapezoid) NormalDepth(q, n, s0 float64) float64 {
	q = math.Abs(q)
	if q < nearzero || s0 <= 0. || n <= 0. {
		return 0.
	}
	conv := func(h float64) float64 { // Manning conveyance·√S0 − Q
		return t.Area(h)*math.Pow(t.HydraulicRadius(h), 2./3.)*math.Sqrt(s0)/n - q
	}
	h := 1.
	const eps = 1e-6
	for i := 0; i < maxiter; i++ {
		f := conv(h)
		df := (conv(h+eps) - f) / eps
		dh := f / df
		h -= dh
		if h <= 0. {
			h = dtol
		}
		if math.Abs(dh) < dtol {
			break
		}
	}
	return h
}
