package sim

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chs "github.com/leixiaohui-1974/CHS-sub001"
	"github.com/leixiaohui-1974/CHS-sub001/section"
)

func testNetwork(t *testing.T) (*chs.Network, float64) {
	t.Helper()
	tr := section.Trapezoid{B: 20., M: 1.5}
	yn := tr.NormalDepth(100., 0.03, 1e-3)

	net, err := chs.Build(
		[]chs.NodeDesc{
			{Name: "up", Kind: "inflow", Z: 5., Sa: 1000., H: 5. + yn, Inflow: 100.},
			{Name: "dn", Kind: "level", Z: 0., Sa: 1000., H: yn, Level: yn},
		},
		[]chs.ReachDesc{
			{Name: "r0", From: "up", To: "dn", Length: 5000., N: 0.03,
				BottomWidth: 20., SideSlope: 1.5, BedSlope: 1e-3, Q: 100.},
		}, nil)
	require.NoError(t, err)
	return net, yn
}

func TestRunSteady(t *testing.T) {
	net, yn := testNetwork(t)
	slv, err := chs.NewSolver(net, chs.SolverConfig{})
	require.NoError(t, err)
	defer slv.Destroy()

	frc := ConstantForcing(50, 60., map[string]float64{"up": 100.}, map[string]float64{"dn": yn})
	hyd, err := Run(net, slv, frc, "r0", "")
	require.NoError(t, err)
	require.Len(t, hyd, 50)
	assert.InEpsilon(t, 100., hyd[49], 0.01)
}

func TestRunUnknownOutlet(t *testing.T) {
	net, yn := testNetwork(t)
	slv, err := chs.NewSolver(net, chs.SolverConfig{})
	require.NoError(t, err)
	defer slv.Destroy()

	frc := ConstantForcing(5, 60., nil, map[string]float64{"dn": yn})
	_, err = Run(net, slv, frc, "nope", "")
	assert.Error(t, err)
}

func TestRunReportsNonConvergence(t *testing.T) {
	net, yn := testNetwork(t)
	// a tolerance no step can meet: every step fails and Run aborts
	slv, err := chs.NewSolver(net, chs.SolverConfig{Tol: 1e-300, MaxIter: 5})
	require.NoError(t, err)
	defer slv.Destroy()

	frc := ConstantForcing(5, 60., map[string]float64{"up": 100.}, map[string]float64{"dn": yn})
	_, err = Run(net, slv, frc, "r0", "")
	assert.Error(t, err)
}

func TestMonitorRecords(t *testing.T) {
	net, yn := testNetwork(t)
	slv, err := chs.NewSolver(net, chs.SolverConfig{})
	require.NoError(t, err)
	defer slv.Destroy()

	mon, err := NewMonitor(net, "up", 10)
	require.NoError(t, err)
	_, err = NewMonitor(net, "ghost", 10)
	assert.Error(t, err)

	frc := ConstantForcing(10, 60., map[string]float64{"up": 100.}, map[string]float64{"dn": yn})
	_, err = Run(net, slv, frc, "r0", "", mon)
	require.NoError(t, err)
	assert.Len(t, mon.V, 10)
	assert.Greater(t, mon.V[9], 5.) // upstream head sits above the bed
}

func TestForcingGobRoundTrip(t *testing.T) {
	frc := ConstantForcing(8, 60., map[string]float64{"up": 100.}, map[string]float64{"dn": 2.5})
	fp := filepath.Join(t.TempDir(), "forcing.gob")
	require.NoError(t, frc.SaveGob(fp))

	frc2, err := LoadGobForcing(fp)
	require.NoError(t, err)
	assert.Equal(t, frc.Qin, frc2.Qin)
	assert.Equal(t, frc.Hdn, frc2.Hdn)
	assert.Equal(t, frc.IntervalSec, frc2.IntervalSec)
	assert.Len(t, frc2.T, 8)
}

func TestReservoirLevelCoupling(t *testing.T) {
	net, _ := testNetwork(t)
	rv := Reservoir{Area: 1e5, Zb: 0., Node: "dn"}
	rv.Res.Cap = 5e5 // spill crest at 5 m

	spill, err := rv.Update(net, 100., 600.)
	require.NoError(t, err)
	assert.Zero(t, spill, "below crest storage must not spill")
	assert.InDelta(t, 0.6, rv.Level(), 1e-9)

	dn, err := net.Node("dn")
	require.NoError(t, err)
	assert.InDelta(t, 0.6, dn.Hb, 1e-9)

	// fill to the crest, then overflow
	rv.Res.Sto = 5e5
	spill, err = rv.Update(net, 100., 600.)
	require.NoError(t, err)
	assert.InDelta(t, 100., spill, 1e-9, "everything above the crest spills")
}
