package chs

import (
	"fmt"
	"math"
)

// assemble stamps the residual vector and sparse Jacobian for the
// current working unknowns. Sign convention at a node: outbound edges
// add to the residual (+1 column coefficient), inbound subtract (−1).
// Returns an error only for non-finite residuals, which the step
// handler treats as a failed step.
func (s *Solver) assemble(dt float64) error {
	s.a.Clear()
	for i := range s.rhs {
		s.rhs[i] = 0.
	}

	for i := range s.net.Nodes {
		s.stampNode(i, dt)
	}
	for j := range s.net.Reaches {
		s.stampReach(j, dt)
	}
	for k := range s.net.Weirs {
		s.stampWeir(k)
	}

	for i := 1; i <= s.n; i++ {
		if math.IsNaN(s.rhs[i]) || math.IsInf(s.rhs[i], 0) {
			return fmt.Errorf("chs: non-finite residual at row %d", i)
		}
	}
	return nil
}

// stampNode assembles a continuity row: storage change balanced against
// attached reach/structure flows. Level boundaries override the row
// with the Dirichlet condition H = Hb; dry non-boundary nodes pin the
// head to the bed.
func (s *Solver) stampNode(i int, dt float64) {
	nd := &s.net.Nodes[i]
	row := i + 1
	switch {
	case nd.Kind == LevelBoundary:
		s.rhs[row] = -(s.x[i] - nd.Hb)
		s.a.GetElement(int64(row), int64(row)).Real += 1.
	case s.x[i]-nd.Z < s.Hmin: // dry: pin to bed
		s.rhs[row] = -(s.x[i] - nd.Z)
		s.a.GetElement(int64(row), int64(row)).Real += 1.
	default:
		res := nd.Sa / dt * (s.x[i] - s.xold[i])
		for _, c := range s.out[i] {
			res += s.x[c]
			s.a.GetElement(int64(row), int64(c+1)).Real += 1.
		}
		for _, c := range s.in[i] {
			res -= s.x[c]
			s.a.GetElement(int64(row), int64(c+1)).Real -= 1.
		}
		if nd.Kind == InflowBoundary {
			res -= nd.Qin // behaves as an extra inbound flow
		}
		s.a.GetElement(int64(row), int64(row)).Real += nd.Sa / dt
		s.rhs[row] = -res
	}
}

// stampReach assembles a momentum row: time derivative, convective and
// pressure terms, and a semi-implicit Manning friction term linearized
// with the previous time level's discharge magnitude (Q·|Q_old|). A
// supercritical upstream section caps the effective downstream depth at
// critical, decoupling the row from the downstream head. Dry ends pin
// the discharge row instead.
func (s *Solver) stampReach(j int, dt float64) {
	r := &s.net.Reaches[j]
	iq := s.nn + j
	row := iq + 1
	ucol, dcol := r.Us+1, r.Ds+1

	q, qold := s.x[iq], s.xold[iq]
	hu := s.x[r.Us] - s.net.Nodes[r.Us].Z
	hd := s.x[r.Ds] - s.net.Nodes[r.Ds].Z

	// supercritical correction: a supercritical reach's hydraulics are
	// not influenced by a subcritical downstream condition
	coupled := true
	if hu > 0. && r.Sct.Froude(q, hu) > 1. {
		if hc := r.Sct.CriticalDepth(q); hd > hc {
			hd = hc
			coupled = false
		}
	}

	if hu <= hdry || hd <= hdry { // dry segment: no momentum balance
		s.rhs[row] = -q
		s.a.GetElement(int64(row), int64(row)).Real += 1.
		return
	}

	au, ad := r.Sct.Area(hu), r.Sct.Area(hd)
	tu, td := r.Sct.TopWidth(hu), r.Sct.TopWidth(hd)
	am := .5 * (au + ad)
	rhm := .5 * (r.Sct.HydraulicRadius(hu) + r.Sct.HydraulicRadius(hd))
	rhm43 := math.Pow(rhm, 4./3.)
	hde := s.net.Nodes[r.Ds].Z + hd // effective downstream surface elevation
	dh := hde - s.x[r.Us]
	n2q := r.N * r.N * q * math.Abs(qold)
	sf := n2q / (am * am * rhm43)

	res := (q-qold)/dt +
		(q*q/ad-q*q/au)/r.Length +
		grav*am*dh/r.Length +
		grav*am*sf
	s.rhs[row] = -res

	// ∂/∂Q
	dq := 1./dt +
		2.*q*(1./ad-1./au)/r.Length +
		grav*r.N*r.N*math.Abs(qold)/(am*rhm43)
	s.a.GetElement(int64(row), int64(row)).Real += dq

	// ∂/∂H_up (upstream depth varies one-to-one with upstream head)
	dau, drhu := .5*tu, .5*r.Sct.DHydraulicRadius(hu)
	dsfu := n2q * (-2.*dau/(am*am*am*rhm43) - 4./3.*drhu/(am*am*rhm43*rhm))
	dhu := q*q*tu/(au*au)/r.Length +
		grav*(dau*dh-am)/r.Length +
		grav*(dau*sf+am*dsfu)
	s.a.GetElement(int64(row), int64(ucol)).Real += dhu

	if !coupled {
		return // downstream column zeroed under the critical-depth cap
	}

	// ∂/∂H_down
	dad, drhd := .5*td, .5*r.Sct.DHydraulicRadius(hd)
	dsfd := n2q * (-2.*dad/(am*am*am*rhm43) - 4./3.*drhd/(am*am*rhm43*rhm))
	dhd := -q*q*td/(ad*ad)/r.Length +
		grav*(dad*dh+am)/r.Length +
		grav*(dad*sf+am*dsfd)
	s.a.GetElement(int64(row), int64(dcol)).Real += dhd
}

// stampWeir inserts the structure's own residual and derivatives at its
// row.
func (s *Solver) stampWeir(k int) {
	w := &s.net.Weirs[k]
	iq := s.nn + s.nr + k
	row := iq + 1

	res, dq, dhu := w.Residual(s.x[w.Us], s.x[iq])
	s.rhs[row] = -res
	s.a.GetElement(int64(row), int64(row)).Real += dq
	if dhu != 0. {
		s.a.GetElement(int64(row), int64(w.Us+1)).Real += dhu
	}
}
