// Package sim is the top-level façade: it validates a Config, wires every
// ring, node, transmitter and receiver the model calls for, and drives them
// all to completion on one sched.Scheduler (spec.md §4, §6).
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package sim

import (
	"github.com/hyang1996/ringsim/distribution"
	"github.com/hyang1996/ringsim/model"
	"github.com/hyang1996/ringsim/stats"
)

// Combination names which of the two valid transceiver pairings (spec.md
// §3 invariant) every node in the ring uses. A ring is homogeneous: either
// every node runs (FT, TR) or every node runs (TT, FR).
type Combination int

const (
	// FixedTransmitTunableReceive pairs a Fixed Transmitter with a
	// Tunable Receiver: each node always sends on its own wavelength, and
	// receivers retune to whichever source is currently addressing them.
	FixedTransmitTunableReceive Combination = iota
	// TunableTransmitFixedReceive pairs a Tunable Transmitter with a Fixed
	// Receiver: each node always listens on its own wavelength, and
	// transmitters retune to whichever destination they are sending to.
	TunableTransmitFixedReceive
)

// Config is the simulator's full set of construction parameters.
type Config struct {
	Constants   model.Constants
	Combination Combination
	TrafficKind distribution.Kind

	// Until is the virtual-time horizon Run stops at (spec.md §4.6).
	Until int64

	// Metrics enables Prometheus instrumentation on the ledger when
	// non-nil; leave nil to skip it entirely.
	Metrics *stats.Metrics
}

// DefaultConfig returns a modest eight-node abstract-mode ring, matching
// the scale spec.md §8's worked scenarios use.
func DefaultConfig() Config {
	return Config{
		Constants: model.Constants{
			Unit:                model.Nanoseconds,
			RingLengthMeters:    10_000,
			PropagationSpeed:    2e8,
			NodeCount:           8,
			DataPacketBytes:     1000,
			ControlPacketBytes:  50,
			AverageRateBitsPerS: 1e6,
			PeakRateBitsPerS:    1e7,
			TuningTimeNanos:     1000,
			AbstractMode:        true,
			MaxDataSlots:        8,
			MaxControlSlots:     8,
		},
		Combination: FixedTransmitTunableReceive,
		TrafficKind: distribution.Poisson,
		Until:       10_000_000,
	}
}
