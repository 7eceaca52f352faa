package chs_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chs "github.com/leixiaohui-1974/CHS-sub001"
	"github.com/leixiaohui-1974/CHS-sub001/section"
)

func TestNetworkRegistration(t *testing.T) {
	net := chs.NewNetwork()

	i, err := net.AddNode(chs.Node{Name: "a", Z: 1., Sa: 100., H: 2.})
	require.NoError(t, err)
	assert.Equal(t, 0, i)

	// re-registration by name is a no-op
	j, err := net.AddNode(chs.Node{Name: "a", Z: 9.})
	require.NoError(t, err)
	assert.Equal(t, i, j)
	assert.Len(t, net.Nodes, 1)
	assert.Equal(t, 1., net.Nodes[0].Z)

	_, err = net.AddNode(chs.Node{})
	assert.ErrorIs(t, err, chs.ErrEmptyName)
}

func TestEdgeEndpointsMustExist(t *testing.T) {
	net := chs.NewNetwork()
	_, err := net.AddNode(chs.Node{Name: "a", Z: 0., Sa: 100., H: 1.})
	require.NoError(t, err)

	_, err = net.AddReach(chs.Reach{Name: "r", Length: 100., N: 0.03,
		Sct: section.Trapezoid{B: 5.}}, "a", "ghost")
	assert.ErrorIs(t, err, chs.ErrNodeNotFound)

	_, err = net.AddWeir(chs.Weir{Name: "w", Zc: 1., Cw: 1.7, B: 2.}, "ghost", "a")
	assert.ErrorIs(t, err, chs.ErrNodeNotFound)
}

func TestBuildRejectsBadKind(t *testing.T) {
	_, err := chs.Build([]chs.NodeDesc{{Name: "a", Kind: "wormhole"}}, nil, nil)
	assert.Error(t, err)
}

func TestBuildDerivesLengthFromCoordinates(t *testing.T) {
	net, err := chs.Build(
		[]chs.NodeDesc{
			{Name: "a", Kind: "inflow", Z: 10., Sa: 100., H: 11., Lat: 43.90, Lng: -79.50},
			{Name: "b", Kind: "level", Z: 9., Sa: 100., H: 10., Level: 10., Lat: 43.91, Lng: -79.50},
		},
		[]chs.ReachDesc{
			{Name: "r", From: "a", To: "b", N: 0.03, BottomWidth: 5., SideSlope: 1.},
		}, nil)
	require.NoError(t, err)
	// 0.01° of latitude is about 1.1 km
	assert.InDelta(t, 1110., net.Reaches[0].Length, 15.)
}

func TestBuildNoLengthNoCoordinates(t *testing.T) {
	_, err := chs.Build(
		[]chs.NodeDesc{
			{Name: "a", Kind: "inflow", Z: 10., Sa: 100., H: 11.},
			{Name: "b", Kind: "level", Z: 9., Sa: 100., H: 10., Level: 10.},
		},
		[]chs.ReachDesc{
			{Name: "r", From: "a", To: "b", N: 0.03, BottomWidth: 5., SideSlope: 1.},
		}, nil)
	assert.Error(t, err)
}

func TestWeirResidual(t *testing.T) {
	w := chs.Weir{Zc: 2., Cw: 1.7, B: 5.}

	// below crest: flow forced to zero
	res, dq, dh := w.Residual(1.5, 3.)
	assert.Equal(t, 3., res)
	assert.Equal(t, 1., dq)
	assert.Zero(t, dh)

	// above crest: free-flow law
	res, dq, dh = w.Residual(3., 8.5)
	assert.InDelta(t, 8.5-1.7*5., res, 1e-12)
	assert.Equal(t, 1., dq)
	assert.InDelta(t, -1.5*1.7*5., dh, 1e-12)
}

func TestReachSectionQueries(t *testing.T) {
	net, _ := singleReach(t, 2.0)
	r := &net.Reaches[0]
	hc := r.CriticalDepth()
	assert.Greater(t, hc, 0.)
	// Froude number is unity at the critical depth by definition
	assert.InDelta(t, 1., r.Froude(hc), 1e-6)
}

func TestStateExport(t *testing.T) {
	net, _ := singleReach(t, 2.0)
	st := net.State()
	assert.Equal(t, 100., st.Nodes["up"].Inflow)
	assert.Equal(t, 100., st.Reaches["r0"])
	assert.Empty(t, st.Structures)
}

func TestNetworkGobRoundTrip(t *testing.T) {
	net, _ := singleReach(t, 2.0)
	fp := filepath.Join(t.TempDir(), "network.gob")
	require.NoError(t, net.SaveGob(fp))

	net2, err := chs.LoadGobNetwork(fp)
	require.NoError(t, err)
	assert.Equal(t, net.Nodes, net2.Nodes)
	assert.Equal(t, net.Reaches, net2.Reaches)
	assert.Equal(t, net.Nxr, net2.Nxr)
}

func TestSolverRequiresUnknowns(t *testing.T) {
	_, err := chs.NewSolver(chs.NewNetwork(), chs.SolverConfig{})
	assert.ErrorIs(t, err, chs.ErrNoUnknowns)
}
