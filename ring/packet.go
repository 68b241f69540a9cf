// Package ring implements the optical ring data structure: a list of
// in-flight packets whose position is computed analytically from time
// rather than shifted step by step (spec.md §4.1). One Ring exists per
// wavelength (one data ring per fixed/tunable wavelength, one control
// ring).
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package ring

// EventKind distinguishes entries in a Packet's append-only history.
type EventKind int

const (
	EventInjected EventKind = iota
	EventRemoved
)

// Event is one entry in a Packet's history trail.
type Event struct {
	Kind EventKind
	At   int64
	Node int // receiver node id for EventRemoved
}

// Payload is the packet's opaque body. In abstract mode only NodeID and Seq
// are meaningful (spec.md §3: "{node_id, seq} pair in abstract mode");
// otherwise Raw carries the wire-encoded bytes/string.
type Payload struct {
	Raw    string
	NodeID int
	Seq    int64
}

// Packet is the named record carried on a Ring, replacing the fixed
// six-field positional tuple the source model used (spec.md §9 redesign
// flag): the field order below is purely documentation, never positional
// access.
type Packet struct {
	Payload            Payload
	GenerationTime     int64 // ns or s, per the owning Ring's unit
	TransmissionTime   int64 // time injected on the ring
	EntryPosition      float64
	SourceNodeID       int
	DestinationNodeID  int

	History []Event
}

func (p *Packet) recordInjected(at int64) {
	p.History = append(p.History, Event{Kind: EventInjected, At: at})
}

func (p *Packet) recordRemoved(at int64, receiver int) {
	p.History = append(p.History, Event{Kind: EventRemoved, At: at, Node: receiver})
}
