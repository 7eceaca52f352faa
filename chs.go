// Package chs simulates unsteady flow in networks of open channels
// connected by hydraulic control structures. Water levels and
// discharges are advanced in time by an implicit solve of the
// discretized Saint-Venant equations: mass balance at every node,
// momentum balance along every reach and a stage-discharge relation at
// every structure, assembled as one sparse nonlinear system and solved
// by Newton-Raphson iteration with under-relaxation.
//
// Boundary values (inflows, downstream levels) are set by an external
// driver between steps; see the sim sub-package for a reference driver.
package chs

import "errors"

const (
	grav     = 9.80665 // standard gravity [m/s²]
	nearzero = 1e-8
	hdry     = 1e-3 // reach end depth [m] below which the momentum row is pinned
)

// Solver defaults.
const (
	DefaultTol     = 1e-6
	DefaultMaxIter = 50
	DefaultRelax   = 0.75
	DefaultHmin    = 0.01 // wet/dry node threshold [m]
)

// Topology errors, surfaced at build/registration time. Numerical
// failure during a step is never an error; SolveStep reports it as a
// boolean and leaves the network untouched.
var (
	ErrNodeNotFound  = errors.New("chs: node not found in network")
	ErrEmptyName     = errors.New("chs: empty element name")
	ErrDuplicateName = errors.New("chs: duplicate element name")
	ErrNoUnknowns    = errors.New("chs: network has no unknowns")
)
