// Package sim drives chs networks through time: boundary forcing
// series, the step/retry loop, monitors, reservoir coupling and
// parameter sampling/calibration.
package sim

import (
	"encoding/gob"
	"fmt"
	"os"
	"time"
)

// Forcing holds the boundary time series applied to a network: Qin
// maps inflow-boundary node names to inflow series [m³/s], Hdn maps
// level-boundary node names to surface-elevation series [m]. All
// series share the T stamps.
type Forcing struct {
	T           []time.Time
	Qin         map[string][]float64
	Hdn         map[string][]float64
	IntervalSec float64
}

// SaveGob writes the forcing set for re-use across runs.
func (frc *Forcing) SaveGob(fp string) error {
	f, err := os.Create(fp)
	if err != nil {
		return fmt.Errorf(" forcing.SaveGob %v", err)
	}
	if err := gob.NewEncoder(f).Encode(frc); err != nil {
		return fmt.Errorf(" forcing.SaveGob %v", err)
	}
	f.Close()
	return nil
}

// LoadGobForcing reads a forcing set written by SaveGob.
func LoadGobForcing(fp string) (*Forcing, error) {
	var frc Forcing
	f, err := os.Open(fp)
	if err != nil {
		return nil, err
	}
	if err := gob.NewDecoder(f).Decode(&frc); err != nil {
		return nil, err
	}
	f.Close()
	return &frc, nil
}

// ConstantForcing builds an nt-step forcing at dt-second intervals with
// fixed boundary values, the common verification configuration.
func ConstantForcing(nt int, dt float64, qin, hdn map[string]float64) *Forcing {
	frc := Forcing{
		T:           make([]time.Time, nt),
		Qin:         map[string][]float64{},
		Hdn:         map[string][]float64{},
		IntervalSec: dt,
	}
	t0 := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	for j := range frc.T {
		frc.T[j] = t0.Add(time.Duration(float64(j) * dt * float64(time.Second)))
	}
	for nam, q := range qin {
		s := make([]float64, nt)
		for j := range s {
			s[j] = q
		}
		frc.Qin[nam] = s
	}
	for nam, h := range hdn {
		s := make([]float64, nt)
		for j := range s {
			s[j] = h
		}
		frc.Hdn[nam] = s
	}
	return &frc
}
