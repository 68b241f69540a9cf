package sim

import "errors"

var (
	// ErrUnsupportedCombination is returned by New for a Combination value
	// outside the enumeration (spec.md §3: only (FT,TR) and (TT,FR) are
	// valid transceiver pairings).
	ErrUnsupportedCombination = errors.New("sim: unsupported transmitter/receiver combination")
	// ErrUnknownTrafficKind is returned by New for a distribution.Kind
	// value outside the enumeration.
	ErrUnknownTrafficKind = errors.New("sim: unknown traffic distribution kind")
	// ErrNonPositiveHorizon is returned by New when Config.Until is not
	// strictly positive.
	ErrNonPositiveHorizon = errors.New("sim: Until must be positive")
)
