package node

import (
	"github.com/hyang1996/ringsim/api"
	"github.com/hyang1996/ringsim/model"
	"github.com/hyang1996/ringsim/ring"
	"github.com/hyang1996/ringsim/sched"
	"github.com/hyang1996/ringsim/signal"
	"github.com/hyang1996/ringsim/stats"
	"github.com/hyang1996/ringsim/traffic"
)

// Transmitter is either a Fixed Transmitter (FT) or a Tunable Transmitter
// (TT), spec.md §4.4. An FT always injects onto FixedDataRing; a TT injects
// onto DataRings[destination] and must pay a retuning delay whenever the
// head-of-line destination changes. Both variants share one control ring
// and the same two-phase handshake with their paired Receiver.
type Transmitter struct {
	NodeID  int
	Tunable bool

	RAM         *traffic.RAM
	ControlRing *ring.Ring

	// FixedDataRing is used when Tunable is false; it is this node's own
	// wavelength, indexed identically to NodeID by the caller that built it.
	FixedDataRing *ring.Ring
	// DataRings is the full set of per-wavelength rings, used when Tunable
	// is true: wavelength index == destination node id.
	DataRings []*ring.Ring

	Codec api.ControlCodec

	Handshake Handshake
	Clock     model.Clock

	tuning  tuningTable
	tuned   bool
	current int

	Ledger *stats.Ledger
}

// NewTransmitter wires a Transmitter. dataRings is ignored for a fixed
// transmitter and fixedRing is ignored for a tunable one. tuningTime is τ
// already converted into clock's time unit (model.Model.TuningTime), not
// raw nanoseconds.
func NewTransmitter(nodeID int, tunable bool, ram *traffic.RAM, controlRing *ring.Ring,
	fixedRing *ring.Ring, dataRings []*ring.Ring, codec api.ControlCodec,
	clock model.Clock, tuningTime int64, ledger *stats.Ledger) *Transmitter {
	n := len(dataRings)
	if n == 0 {
		n = 1
	}
	return &Transmitter{
		NodeID:        nodeID,
		Tunable:       tunable,
		RAM:           ram,
		ControlRing:   controlRing,
		FixedDataRing: fixedRing,
		DataRings:     dataRings,
		Codec:         codec,
		Handshake:     NewHandshake(),
		Clock:         clock,
		tuning:        newTuningTable(n, tuningTime),
		tuned:         true,
		current:       nodeID,
		Ledger:        ledger,
	}
}

// dataRingFor returns the ring this transmitter would inject dest's packet
// onto: its own fixed wavelength, or the wavelength matching dest if
// tunable.
func (tx *Transmitter) dataRingFor(dest int) *ring.Ring {
	if !tx.Tunable {
		return tx.FixedDataRing
	}
	return tx.DataRings[dest]
}

// RunControl is the transmitter's control-plane cooperative task (spec.md
// §4.4): each control slot, if the handshake allows and the RAM is
// non-empty, it checks the target data ring has room and its own control
// slot is free, then announces the head-of-line packet.
func (tx *Transmitter) RunControl(t *sched.Task) {
	for {
		tx.tryAnnounce(t)
		t.Sleep(tx.Clock.ControlSlot)
	}
}

func (tx *Transmitter) tryAnnounce(t *sched.Task) {
	if !tx.Handshake.DataDone || tx.RAM.Len() == 0 {
		return
	}
	qp, ok := tx.RAM.Peek()
	if !ok {
		return
	}
	if tx.dataRingFor(qp.Dest).IsFull() {
		return
	}
	if _, occupied := tx.ControlRing.Check(t.Now(), tx.NodeID); occupied {
		tx.Ledger.RecordError(t.Now(), tx.NodeID, qp.Dest, stats.ErrorControlCollision)
		return
	}

	wire, err := tx.Codec.Encode(tx.NodeID, qp.Dest, signal.CodeNewDataAnnouncement)
	if err != nil {
		return
	}
	tx.ControlRing.Add(tx.NodeID, qp.Dest, ring.Payload{Raw: wire}, qp.GenTime, t.Now())
	tx.Handshake.ControlDone = true
	tx.Handshake.DataDone = false
}

// RunData is the transmitter's data-plane cooperative task (spec.md §4.4):
// once the control handshake has granted it, a TT first pays any retuning
// delay, then both variants wait for their own data-ring slot to be free
// before dequeuing and injecting the head-of-line packet.
func (tx *Transmitter) RunData(t *sched.Task) {
	for {
		tx.tryTransmit(t)
		t.Sleep(tx.Clock.DataSlot)
	}
}

func (tx *Transmitter) tryTransmit(t *sched.Task) {
	if !tx.Handshake.ControlDone {
		return
	}
	qp, ok := tx.RAM.Peek()
	if !ok {
		return
	}

	if tx.Tunable && tx.current != qp.Dest {
		t.Sleep(tx.tuning.at(tx.current, qp.Dest))
		tx.current = qp.Dest
	}

	dataRing := tx.dataRingFor(qp.Dest)
	if dataRing.IsFull() {
		tx.Ledger.RecordError(t.Now(), tx.NodeID, qp.Dest, stats.ErrorRingSaturated)
		return
	}
	if _, occupied := dataRing.Check(t.Now(), tx.NodeID); occupied {
		tx.Ledger.RecordError(t.Now(), tx.NodeID, qp.Dest, stats.ErrorRingSaturated)
		return
	}

	qp, _ = tx.RAM.Dequeue()
	dataRing.Add(tx.NodeID, qp.Dest, qp.Payload, qp.GenTime, t.Now())
	tx.Handshake.DataDone = true
	tx.Handshake.ControlDone = false
}
