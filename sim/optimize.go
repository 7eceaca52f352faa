package sim

import (
	"fmt"
	"math/rand"
	"runtime"
	"time"

	"github.com/maseology/glbopt"
	"github.com/maseology/objfunc"
	mrg63k3a "github.com/maseology/goRNG/MRG63k3a"

	chs "github.com/leixiaohui-1974/CHS-sub001"
)

// Calibrate fits the global roughness and weir-coefficient factors
// against an observed outlet hydrograph by shuffled complex evolution,
// scored as 1−KGE (minimized). build must return a fresh network and
// solver each call; factors are applied to the fresh copy so samples
// never compound.
func Calibrate(build func() (*chs.Network, *chs.Solver), frc *Forcing, obs []float64, outlet string, nsmpl int) (nfact, cwfact, kge float64) {
	rng := rand.New(mrg63k3a.New())
	rng.Seed(time.Now().UnixNano())

	gen := func(u []float64) float64 {
		nf, cwf := par2(u)
		net, slv := build()
		defer slv.Destroy()
		applyFactors(net, nf, cwf)
		sim, err := Run(net, slv, frc, outlet, "")
		if err != nil {
			return 9999. // divergent sample
		}
		return 1. - objfunc.KGE(obs, sim)
	}

	fmt.Println(" optimizing..")
	uFinal, _ := glbopt.SCE(runtime.GOMAXPROCS(0), nSmplDim, rng, gen, true)

	nfact, cwfact = par2(uFinal)
	net, slv := build()
	defer slv.Destroy()
	applyFactors(net, nfact, cwfact)
	sim, err := Run(net, slv, frc, outlet, "")
	if err != nil {
		return nfact, cwfact, -9999.
	}
	kge = objfunc.KGE(obs, sim)
	fmt.Printf("\nfinal parameters:\n\tnfact:=\t\t%v\n\tcwfact:=\t%v\n\tKGE:=\t\t%v\n\n", nfact, cwfact, kge)
	fmt.Printf(" NSE: %v  bias: %v\n", objfunc.NSE(obs, sim), objfunc.Bias(obs, sim))
	return
}
