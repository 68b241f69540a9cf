package node

import (
	"github.com/hyang1996/ringsim/api"
	"github.com/hyang1996/ringsim/model"
	"github.com/hyang1996/ringsim/ring"
	"github.com/hyang1996/ringsim/sched"
	"github.com/hyang1996/ringsim/signal"
	"github.com/hyang1996/ringsim/stats"
)

// Receiver is either a Fixed Receiver (FR) or a Tunable Receiver (TR),
// spec.md §4.5. Only (FT, TR) and (TT, FR) combinations are valid (sim.New
// enforces this): an FR always listens on its own fixed wavelength, where
// every TT in the network converges when sending to it; a TR instead
// retunes to whichever wavelength the announcing FT used, which is always
// that transmitter's own node id.
type Receiver struct {
	NodeID  int
	Tunable bool

	ControlRing *ring.Ring

	FixedDataRing *ring.Ring
	DataRings     []*ring.Ring

	Codec api.ControlCodec

	Handshake Handshake
	Clock     model.Clock

	tuning  tuningTable
	current int

	// MaxTransfer bounds how long a receiver waits for a data packet after
	// its control announcement before treating it as lost (spec.md §7:
	// "missing expected data after control reception").
	MaxTransfer int64

	pendingSource int
	pendingTx     int64

	Ledger *stats.Ledger
}

// NewReceiver wires a Receiver. maxTransfer should be the model's rounded
// circulation time: a packet can never legitimately take longer than one
// full lap to arrive. tuningTime is τ already converted into clock's time
// unit (model.Model.TuningTime), not raw nanoseconds.
func NewReceiver(nodeID int, tunable bool, controlRing *ring.Ring, fixedRing *ring.Ring,
	dataRings []*ring.Ring, codec api.ControlCodec, clock model.Clock,
	tuningTime, maxTransfer int64, ledger *stats.Ledger) *Receiver {
	n := len(dataRings)
	if n == 0 {
		n = 1
	}
	return &Receiver{
		NodeID:        nodeID,
		Tunable:       tunable,
		ControlRing:   controlRing,
		FixedDataRing: fixedRing,
		DataRings:     dataRings,
		Codec:         codec,
		Handshake:     NewHandshake(),
		Clock:         clock,
		tuning:        newTuningTable(n, tuningTime),
		current:       nodeID,
		MaxTransfer:   maxTransfer,
		Ledger:        ledger,
	}
}

func (rx *Receiver) dataRingFor(source int) *ring.Ring {
	if !rx.Tunable {
		return rx.FixedDataRing
	}
	return rx.DataRings[source]
}

// RunControl is the receiver's control-plane cooperative task (spec.md
// §4.5): each control slot, while idle, it checks whether the packet
// currently at its position on the control ring is an announcement
// addressed to it.
func (rx *Receiver) RunControl(t *sched.Task) {
	for {
		rx.tryAccept(t)
		t.Sleep(rx.Clock.ControlSlot)
	}
}

func (rx *Receiver) tryAccept(t *sched.Task) {
	if !rx.Handshake.DataDone {
		return
	}
	pkt, found := rx.ControlRing.Check(t.Now(), rx.NodeID)
	if !found {
		return
	}
	source, destination, code, err := rx.Codec.Decode(pkt.Payload.Raw)
	if err != nil || destination != rx.NodeID || code != signal.CodeNewDataAnnouncement {
		return
	}

	rx.ControlRing.Remove(rx.NodeID, pkt, t.Now())
	rx.pendingSource = source
	rx.pendingTx = pkt.TransmissionTime
	rx.ControlRing.Recycle(pkt)

	rx.Handshake.ControlDone = true
	rx.Handshake.DataDone = false
}

// RunData is the receiver's data-plane cooperative task (spec.md §4.5):
// once an announcement is pending, a TR first retunes to the announcing
// source's wavelength, then waits for the matching data packet to reach its
// position, removing it and recording its completed latency breakdown.
func (rx *Receiver) RunData(t *sched.Task) {
	for {
		rx.tryReceive(t)
		t.Sleep(rx.Clock.DataSlot)
	}
}

func (rx *Receiver) tryReceive(t *sched.Task) {
	if !rx.Handshake.ControlDone {
		return
	}

	if rx.Tunable && rx.current != rx.pendingSource {
		t.Sleep(rx.tuning.at(rx.current, rx.pendingSource))
		rx.current = rx.pendingSource
	}

	dataRing := rx.dataRingFor(rx.pendingSource)
	pkt, found := dataRing.Check(t.Now(), rx.NodeID)
	if !found {
		if t.Now()-rx.pendingTx > rx.MaxTransfer {
			rx.Ledger.RecordError(t.Now(), rx.NodeID, rx.pendingSource, stats.ErrorDataNotFound)
			rx.Handshake.DataDone = true
			rx.Handshake.ControlDone = false
		}
		return
	}

	dataRing.Remove(rx.NodeID, pkt, t.Now())
	queueingDelay := pkt.TransmissionTime - pkt.GenerationTime
	transferDelay := t.Now() - pkt.TransmissionTime
	// RecordLatency also derives the network's cumulative data rate at
	// this instant (spec.md §4.7): delivered packets so far * 8 *
	// dataPacketBytes / now.
	rx.Ledger.RecordLatency(t.Now(), pkt.SourceNodeID, rx.NodeID, queueingDelay, transferDelay)
	dataRing.Recycle(pkt)

	rx.Handshake.DataDone = true
	rx.Handshake.ControlDone = false
}
