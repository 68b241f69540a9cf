// Package model holds the immutable simulation parameters shared by every
// other package: ring geometry, packet sizes, link rates, and the time
// unit all downstream components must agree on.
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package model

import (
	"errors"
	"math"
)

// TimeUnit fixes how durations and timestamps are interpreted across the
// simulator. Every ring, clock and distribution constructed against a given
// Constants value must use the same unit.
type TimeUnit int

const (
	// Nanoseconds is the default time unit.
	Nanoseconds TimeUnit = iota
	Seconds
)

// unitFactor converts a propagation-speed multiplication into the chosen
// time unit: 1e-9 when time is carried in nanoseconds, 1 in seconds.
func (u TimeUnit) unitFactor() float64 {
	if u == Nanoseconds {
		return 1e-9
	}
	return 1
}

var (
	// ErrInvalidTimeUnit is returned for a TimeUnit outside the enumeration.
	ErrInvalidTimeUnit = errors.New("model: invalid time unit")
	// ErrInvalidOccupancy is returned when a derived slot count is not a
	// positive even integer.
	ErrInvalidOccupancy = errors.New("model: max occupancy must be a positive even integer")
	// ErrInvalidGeometry is returned for non-positive ring length, speed,
	// node count, packet sizes or rates.
	ErrInvalidGeometry = errors.New("model: ring geometry and rates must be positive")
)

// Constants are the immutable parameters of one simulation run.
type Constants struct {
	Unit TimeUnit

	RingLengthMeters     float64 // L
	PropagationSpeed     float64 // v, meters per second
	NodeCount            int     // N
	DataPacketBytes      int     // S_d
	ControlPacketBytes   int     // S_c
	AverageRateBitsPerS  float64 // λ_a
	PeakRateBitsPerS     float64 // σ
	TuningTimeNanos      int64   // τ, always carried in nanoseconds
	AbstractMode         bool

	// MaxDataSlots and MaxControlSlots (M_d, M_c) bound how many packets may
	// be in flight on a data/control ring simultaneously. Both must be
	// positive even integers (spec.md §3 invariant).
	MaxDataSlots    int
	MaxControlSlots int
}

// Derived periods, computed once at construction time.
type derived struct {
	circulation  float64 // T = L / v, in Constants.Unit
	dataSlot     float64 // t_s = T / M_d
	controlSlot  float64 // t_c = T / M_c
}

// Model bundles Constants with their derived periods and is the value
// every other package is constructed against.
type Model struct {
	Constants
	derived
}

// New validates C and computes its derived periods.
func New(c Constants) (*Model, error) {
	if c.Unit != Nanoseconds && c.Unit != Seconds {
		return nil, ErrInvalidTimeUnit
	}
	if c.RingLengthMeters <= 0 || c.PropagationSpeed <= 0 || c.NodeCount <= 0 ||
		c.DataPacketBytes <= 0 || c.ControlPacketBytes <= 0 ||
		c.AverageRateBitsPerS <= 0 || c.PeakRateBitsPerS <= 0 {
		return nil, ErrInvalidGeometry
	}
	if !positiveEven(c.MaxDataSlots) || !positiveEven(c.MaxControlSlots) {
		return nil, ErrInvalidOccupancy
	}

	m := &Model{Constants: c}

	// Circulation time T = L / v, expressed in the model's time unit.
	circulationSeconds := c.RingLengthMeters / c.PropagationSpeed
	m.circulation = fromSeconds(circulationSeconds, c.Unit)
	m.dataSlot = m.circulation / float64(c.MaxDataSlots)
	m.controlSlot = m.circulation / float64(c.MaxControlSlots)
	return m, nil
}

func positiveEven(n int) bool {
	return n > 0 && n%2 == 0
}

func fromSeconds(seconds float64, unit TimeUnit) float64 {
	if unit == Nanoseconds {
		return seconds * 1e9
	}
	return seconds
}

// UnitFactor exposes the ring-position conversion factor for the model's
// time unit (see ring.Ring.Check).
func (m *Model) UnitFactor() float64 { return m.Unit.unitFactor() }

// SecondsToUnitScale is the reciprocal conversion: it scales a
// seconds-denominated quantity (e.g. distribution.Source's rate arithmetic)
// into the model's time unit.
func (m *Model) SecondsToUnitScale() float64 {
	if m.Unit == Nanoseconds {
		return 1e9
	}
	return 1
}

// CirculationTime returns T in the model's time unit.
func (m *Model) CirculationTime() float64 { return m.circulation }

// TuningTime returns τ (TuningTimeNanos, always stored in nanoseconds)
// converted into the model's configured time unit, rounded to the nearest
// integer. Every caller that sleeps for a retune delay (node.Transmitter,
// node.Receiver) must use this instead of the raw Constants field — passing
// TuningTimeNanos straight to a Seconds-unit scheduler would sleep a few
// nanoseconds' worth of delay as that many seconds.
func (m *Model) TuningTime() int64 {
	seconds := float64(m.TuningTimeNanos) / 1e9
	return int64(math.Round(seconds * m.SecondsToUnitScale()))
}

// NodePosition returns the fixed location of node k on the ring: L*k/N.
func (m *Model) NodePosition(k int) float64 {
	return m.RingLengthMeters * float64(k) / float64(m.NodeCount)
}
