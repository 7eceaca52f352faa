package sim

import (
	"fmt"

	"github.com/gosuri/uiprogress"
	"github.com/maseology/mmio"

	chs "github.com/leixiaohui-1974/CHS-sub001"
)

// maxhalvings bounds the step-subdivision retry on a failed solve.
const maxhalvings = 4

// Run advances net over the forcing set, returning the discharge
// hydrograph at the named outlet element (reach or weir). Boundary
// values are applied before every step; a failed step is retried by
// recursive dt halving (the solver reverts cleanly, so each retry sees
// the pre-step state). When outdirprfx is non-empty a progress bar is
// shown and the hydrograph and monitor series are written there.
func Run(net *chs.Network, slv *chs.Solver, frc *Forcing, outlet, outdirprfx string, mons ...*Monitor) ([]float64, error) {
	nt := len(frc.T)
	grab, err := outflow(net, outlet)
	if err != nil {
		return nil, err
	}

	print := len(outdirprfx) > 0
	var bar *uiprogress.Bar
	if print {
		tt := mmio.NewTimer()
		defer tt.Print("run complete")
		uiprogress.Start()
		bar = uiprogress.AddBar(nt).AppendCompleted().PrependElapsed()
		defer uiprogress.Stop()
	}

	hyd := make([]float64, nt)
	for j := range frc.T {
		for nam, s := range frc.Qin {
			nd, err := net.Node(nam)
			if err != nil {
				return nil, err
			}
			nd.Qin = s[j]
		}
		for nam, s := range frc.Hdn {
			nd, err := net.Node(nam)
			if err != nil {
				return nil, err
			}
			nd.Hb = s[j]
		}

		if !advance(slv, frc.IntervalSec, maxhalvings) {
			return hyd, fmt.Errorf("sim.Run: step %d (%v) failed to converge", j, frc.T[j])
		}

		hyd[j] = grab()
		for _, m := range mons {
			m.push()
		}
		if print {
			bar.Incr()
		}
	}

	if print {
		mmio.WriteCsvDateFloats(outdirprfx+"hdgrph.csv", "date,sim", frc.T, hyd)
		for _, m := range mons {
			m.Write(outdirprfx)
		}
	}
	return hyd, nil
}

// advance takes one dt step, recursively halving on failure. Committed
// half-steps are valid states, so only the remaining interval is
// re-attempted.
func advance(slv *chs.Solver, dt float64, depth int) bool {
	if slv.SolveStep(dt) {
		return true
	}
	if depth == 0 {
		return false
	}
	return advance(slv, dt/2., depth-1) && advance(slv, dt/2., depth-1)
}

func outflow(net *chs.Network, outlet string) (func() float64, error) {
	if i, ok := net.Rxr[outlet]; ok {
		return func() float64 { return net.Reaches[i].Q }, nil
	}
	if i, ok := net.Wxr[outlet]; ok {
		return func() float64 { return net.Weirs[i].Q }, nil
	}
	return nil, fmt.Errorf("sim.Run: outlet %q: no such reach or weir", outlet)
}
