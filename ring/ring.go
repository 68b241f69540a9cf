package ring

import (
	"errors"
	"math"

	"github.com/hyang1996/ringsim/model"
)

// snapEpsilon is the tolerance used both to snap a wrapped position back to
// zero and to decide whether a packet has reached a node (spec.md §4.1).
const snapEpsilon = 1e-2

var (
	// ErrNodeOutOfRange is returned by Add when src/dst names a node the
	// ring was not built for.
	ErrNodeOutOfRange = errors.New("ring: node id out of range")
	// ErrPacketNotFound is returned by Remove when the given packet is not
	// currently live on the ring.
	ErrPacketNotFound = errors.New("ring: packet not present")
)

// Ring holds the in-flight packets for one wavelength and answers
// "is a packet currently at node N?" by computing each live packet's
// position analytically rather than shifting elements every tick.
//
// A packet exists on at most one Ring at a time (spec.md §3 invariant);
// Ring itself does not enforce that across instances — the caller
// (node.Transmitter / node.Receiver) only ever adds to its own ring and
// removes from rings it has been granted access to, so no locking is
// required under the single-threaded cooperative scheduler (spec.md §5).
type Ring struct {
	ID       string
	Reversed bool
	MaxSlots int

	model *model.Model

	nodePositions []float64
	live          []*Packet
	pool          *packetPool

	addCount    uint64
	removeCount uint64
}

// New constructs a Ring of the given id over m's node geometry. maxSlots is
// M_d for a data ring or M_c for a control ring.
func New(id string, m *model.Model, reversed bool, maxSlots int) *Ring {
	positions := make([]float64, m.NodeCount)
	for i := range positions {
		positions[i] = m.NodePosition(i)
	}
	return &Ring{
		ID:            id,
		Reversed:      reversed,
		MaxSlots:      maxSlots,
		model:         m,
		nodePositions: positions,
		pool:          newPacketPool(),
	}
}

// Live returns the number of packets currently in flight.
func (r *Ring) Live() int { return len(r.live) }

// IsFull reports whether the ring is at its maximum occupancy (spec.md §9
// Open Question (a): defined as strict `< M_d`, so IsFull is `>= M_d`).
func (r *Ring) IsFull() bool { return len(r.live) >= r.MaxSlots }

// AddCount and RemoveCount expose the ring's monotonic counters.
func (r *Ring) AddCount() uint64    { return r.addCount }
func (r *Ring) RemoveCount() uint64 { return r.removeCount }

// Add appends a new packet entering the ring at src's position.
func (r *Ring) Add(src, dst int, payload Payload, genTime, txTime int64) (*Packet, error) {
	if src < 0 || src >= len(r.nodePositions) {
		return nil, ErrNodeOutOfRange
	}
	p := r.pool.get()
	p.Payload = payload
	p.GenerationTime = genTime
	p.TransmissionTime = txTime
	p.EntryPosition = r.nodePositions[src]
	p.SourceNodeID = src
	p.DestinationNodeID = dst
	p.recordInjected(txTime)

	r.live = append(r.live, p)
	r.addCount++
	return p, nil
}

// Remove takes p off the ring, appending a removal entry to its history.
func (r *Ring) Remove(dst int, p *Packet, rxTime int64) error {
	for i, candidate := range r.live {
		if candidate == p {
			r.live = append(r.live[:i], r.live[i+1:]...)
			p.recordRemoved(rxTime, dst)
			r.removeCount++
			return nil
		}
	}
	return ErrPacketNotFound
}

// Check scans live packets in insertion order for one currently located at
// node, returning the first match (spec.md §4.1 tie-break rule). Position is
// computed analytically:
//
//	pos      = entryPosition + (now - txTime) * speed * unitFactor
//	posRing  = pos mod L
//	if Reversed: posRing = (entryPosition - (posRing - entryPosition)) mod L
//
// A position within snapEpsilon of L is snapped to 0 before the node
// comparison, matching the source model's floating-point tie-break.
func (r *Ring) Check(now int64, node int) (*Packet, bool) {
	if node < 0 || node >= len(r.nodePositions) {
		return nil, false
	}
	target := r.nodePositions[node]
	length := r.model.RingLengthMeters

	for _, p := range r.live {
		posRing := r.positionAt(p, now)
		if math.Abs(posRing-length) < snapEpsilon {
			posRing = 0
		}
		if math.Abs(posRing-target) < snapEpsilon {
			return p, true
		}
	}
	return nil, false
}

func (r *Ring) positionAt(p *Packet, now int64) float64 {
	length := r.model.RingLengthMeters
	elapsed := float64(now - p.TransmissionTime)
	traveled := elapsed * r.model.PropagationSpeed * r.model.UnitFactor()
	pos := p.EntryPosition + traveled
	posRing := math.Mod(pos, length)
	if posRing < 0 {
		posRing += length
	}
	if r.Reversed {
		posRing = math.Mod(p.EntryPosition-(posRing-p.EntryPosition), length)
		if posRing < 0 {
			posRing += length
		}
	}
	return posRing
}

// Recycle returns p to the ring's packet pool for reuse. Callers must not
// touch p after calling Recycle; it is meant for use once a caller (e.g.
// the latency ledger) has copied out whatever fields it needs from a
// removed packet.
func (r *Ring) Recycle(p *Packet) {
	r.pool.put(p)
}
