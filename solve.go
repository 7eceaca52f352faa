package chs

import (
	"fmt"
	"math"

	"github.com/edp1096/sparse"
)

// SolverConfig carries the numerical controls of a Solver; zero values
// take the package defaults.
type SolverConfig struct {
	Tol     float64 // convergence on the Newton step ∞-norm
	MaxIter int     // iteration cutoff per step
	Relax   float64 // under-relaxation on each update
	Hmin    float64 // wet/dry node threshold [m]
}

// Solver advances a Network one time step at a time by Newton-Raphson
// iteration on the coupled continuity/momentum/structure equations.
// The unknown vector [node heads ++ reach discharges ++ weir
// discharges] and the sparse system are built once at construction;
// topology is fixed for the Solver's lifetime.
//
// Relax may be retuned between calls for stiff transients (dam-break);
// smaller values damp harder.
type Solver struct {
	Tol     float64
	MaxIter int
	Relax   float64
	Hmin    float64

	net        *Network
	nn, nr, nw int
	n          int // total unknowns

	a       *sparse.Matrix
	rhs     []float64 // 1-based, -residual
	x, xold []float64 // working and start-of-step unknowns

	out, in [][]int // per node: unknown indices of outbound/inbound edges
}

// NewSolver builds the unknown ordering and the sparse system for a
// fixed network topology. Adding elements to the network afterwards is
// unsupported.
func NewSolver(net *Network, cfg SolverConfig) (*Solver, error) {
	s := &Solver{
		Tol:     cfg.Tol,
		MaxIter: cfg.MaxIter,
		Relax:   cfg.Relax,
		Hmin:    cfg.Hmin,
		net:     net,
		nn:      len(net.Nodes),
		nr:      len(net.Reaches),
		nw:      len(net.Weirs),
	}
	if s.Tol <= 0. {
		s.Tol = DefaultTol
	}
	if s.MaxIter <= 0 {
		s.MaxIter = DefaultMaxIter
	}
	if s.Relax <= 0. {
		s.Relax = DefaultRelax
	}
	if s.Hmin <= 0. {
		s.Hmin = DefaultHmin
	}
	s.n = s.nn + s.nr + s.nw
	if s.n == 0 {
		return nil, ErrNoUnknowns
	}

	s.out = make([][]int, s.nn)
	s.in = make([][]int, s.nn)
	for j, r := range net.Reaches {
		s.out[r.Us] = append(s.out[r.Us], s.nn+j)
		s.in[r.Ds] = append(s.in[r.Ds], s.nn+j)
	}
	for k, w := range net.Weirs {
		s.out[w.Us] = append(s.out[w.Us], s.nn+s.nr+k)
		s.in[w.Ds] = append(s.in[w.Ds], s.nn+s.nr+k)
	}

	a, err := sparse.Create(int64(s.n), &sparse.Configuration{
		Real:           true,
		Expandable:     true,
		Translate:      true,
		ModifiedNodal:  true,
		TiesMultiplier: 5,
	})
	if err != nil {
		return nil, fmt.Errorf("chs.NewSolver: %v", err)
	}
	s.a = a
	s.rhs = make([]float64, s.n+1)
	s.x = make([]float64, s.n)
	s.xold = make([]float64, s.n)
	return s, nil
}

// Destroy releases the sparse system. The Solver must not be used after.
func (s *Solver) Destroy() {
	if s.a != nil {
		s.a.Destroy()
		s.a = nil
	}
}

// SolveStep advances the network by dt seconds. It iterates on working
// arrays only: a converged solution is committed to the network in one
// pass and true is returned; on singular systems, non-finite residuals
// or the iteration cutoff, the network is left bit-identical to its
// pre-call state and false is returned. Retry policy (smaller dt, more
// damping) belongs to the caller.
func (s *Solver) SolveStep(dt float64) bool {
	if dt <= 0. || s.a == nil {
		return false
	}
	s.snapshot()

	for k := 0; k < s.MaxIter; k++ {
		if err := s.assemble(dt); err != nil {
			return false
		}
		if err := s.a.Factor(); err != nil {
			return false // singular system
		}
		dx, err := s.a.Solve(s.rhs)
		if err != nil {
			return false
		}
		norm := 0.
		for i := 0; i < s.n; i++ {
			d := dx[i+1]
			if math.IsNaN(d) || math.IsInf(d, 0) {
				return false
			}
			if a := math.Abs(d); a > norm {
				norm = a
			}
			s.x[i] += s.Relax * d
		}
		if norm < s.Tol {
			s.commit()
			return true
		}
	}
	return false
}

// snapshot loads the working unknowns from the network; xold holds the
// previous time level for the storage and friction linearizations and
// is fixed across the step's inner iterations.
func (s *Solver) snapshot() {
	for i := range s.net.Nodes {
		s.x[i] = s.net.Nodes[i].H
	}
	for j := range s.net.Reaches {
		s.x[s.nn+j] = s.net.Reaches[j].Q
	}
	for k := range s.net.Weirs {
		s.x[s.nn+s.nr+k] = s.net.Weirs[k].Q
	}
	copy(s.xold, s.x)
}

// commit writes the converged unknowns back to the network in one pass.
func (s *Solver) commit() {
	for i := range s.net.Nodes {
		s.net.Nodes[i].H = s.x[i]
	}
	for j := range s.net.Reaches {
		s.net.Reaches[j].Q = s.x[s.nn+j]
	}
	for k := range s.net.Weirs {
		s.net.Weirs[k].Q = s.x[s.nn+s.nr+k]
	}
}
