// Package node implements the four transceiver MAC state machines (spec.md
// §4.4, §4.5): FT/TT transmitters and FR/TR receivers, each a pair of
// cooperative tasks coordinated by a two-phase handshake flag.
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package node

// Handshake is the two-phase flag pair shared by a transmitter's (or
// receiver's) control and data tasks. At every suspension point exactly one
// of ControlDone/DataDone holds (spec.md §8 flag invariant); both tasks run
// on the same cooperative scheduler so no lock is needed to share it.
type Handshake struct {
	ControlDone bool
	DataDone    bool
}

// NewHandshake returns the initial state (false, true) spec.md §3 requires.
func NewHandshake() Handshake {
	return Handshake{ControlDone: false, DataDone: true}
}
