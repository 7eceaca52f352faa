package sim

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/maseology/mmaths"
	"github.com/maseology/mmio"
	"github.com/maseology/montecarlo/smpln"
	mrg63k3a "github.com/maseology/goRNG/MRG63k3a"

	chs "github.com/leixiaohui-1974/CHS-sub001"
)

const nSmplDim = 2

// par2 maps a unit hypercube sample to the network's global factors:
// a Manning roughness multiplier and a weir coefficient multiplier.
func par2(u []float64) (nfact, cwfact float64) {
	nfact = mmaths.LogLinearTransform(.25, 4., u[0])
	cwfact = mmaths.LinearTransform(.8, 1.2, u[1])
	return
}

// applyFactors scales every reach roughness and weir coefficient in
// place.
func applyFactors(net *chs.Network, nfact, cwfact float64) {
	for i := range net.Reaches {
		net.Reaches[i].N *= nfact
	}
	for i := range net.Weirs {
		net.Weirs[i].Cw *= cwfact
	}
}

// GenerateSamples evaluates gen over a Latin-hypercube plan of n
// parameter sets and writes the sample space and scores to outdirprfx.
// gen receives the transformed (nfact, cwfact) pair.
func GenerateSamples(gen func(nfact, cwfact float64) float64, n int, outdirprfx string) {
	rng := rand.New(mrg63k3a.New())
	rng.Seed(time.Now().UnixNano())
	sp := smpln.NewLHC(rng, n, nSmplDim, false)

	lns := make([]string, n)
	ut := make([]float64, nSmplDim)
	for k := 0; k < n; k++ {
		for j := 0; j < nSmplDim; j++ {
			ut[j] = sp.U[j][k]
		}
		nfact, cwfact := par2(ut)
		of := gen(nfact, cwfact)
		lns[k] = fmt.Sprintf("%d,%f,%f,%f", k, nfact, cwfact, of)
	}
	mmio.WriteLines(outdirprfx+"samplespace.csv", lns)
}
