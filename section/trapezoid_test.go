package section

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrapezoidGeometry(t *testing.T) {
	tr := Trapezoid{B: 20., M: 1.5}
	h := 2.

	assert.InDelta(t, (20.+1.5*2.)*2., tr.Area(h), 1e-12)
	assert.InDelta(t, 20.+2.*2.*math.Sqrt(1.+1.5*1.5), tr.Perimeter(h), 1e-12)
	assert.InDelta(t, 20.+2.*1.5*2., tr.TopWidth(h), 1e-12)
	assert.InDelta(t, tr.Area(h)/tr.Perimeter(h), tr.HydraulicRadius(h), 1e-12)

	// negative depths clamp, they never error
	assert.Zero(t, tr.Area(-1.))
	assert.Zero(t, tr.HydraulicRadius(-1.))
	assert.Equal(t, tr.B, tr.Perimeter(-1.))
}

func TestCriticalDepthRectangle(t *testing.T) {
	// rectangular channel has the analytic solution hc = (q²/g)^(1/3)
	tr := Trapezoid{B: 10., M: 0.}
	q := 40.
	hc := math.Pow(q*q/(10.*10.)/g, 1./3.)
	assert.InDelta(t, hc, tr.CriticalDepth(q), 1e-6)

	// Froude number is unity at critical depth
	assert.InDelta(t, 1., tr.Froude(q, tr.CriticalDepth(q)), 1e-6)

	assert.Zero(t, tr.CriticalDepth(0.))
}

func TestNormalDepthSatisfiesManning(t *testing.T) {
	tr := Trapezoid{B: 20., M: 1.5}
	q, n, s0 := 100., 0.03, 1e-3
	h := tr.NormalDepth(q, n, s0)
	assert.Greater(t, h, 0.)

	// back-substitute into Manning's equation
	qc := tr.Area(h) * math.Pow(tr.HydraulicRadius(h), 2./3.) * math.Sqrt(s0) / n
	assert.InDelta(t, q, qc, q*1e-6)
}

func TestDHydraulicRadius(t *testing.T) {
	// analytic derivative against a central difference
	tr := Trapezoid{B: 20., M: 1.5}
	h, eps := 2., 1e-6
	num := (tr.HydraulicRadius(h+eps) - tr.HydraulicRadius(h-eps)) / (2. * eps)
	assert.InDelta(t, num, tr.DHydraulicRadius(h), 1e-6)
}
