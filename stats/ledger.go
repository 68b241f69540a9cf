// Package stats is the simulator's append-only bookkeeping layer (spec.md
// §4.7, §7): a latency ledger joining each packet's generation, transmission
// and reception timestamps, a runtime error ledger, and the façades
// (Info, Summary, CSV export) built over both.
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package stats

// ErrorKind enumerates the runtime transmission anomalies the MAC state
// machines can observe (spec.md §7). These are non-fatal: the simulation
// keeps running and the entry is simply appended to the ledger.
type ErrorKind int

const (
	// ErrorControlCollision is recorded when a transmitter's own position on
	// the control ring is already occupied at the moment it wants to
	// announce a new data packet.
	ErrorControlCollision ErrorKind = iota
	// ErrorDataNotFound is recorded when a receiver's control task grants a
	// reception window but the promised data packet never reaches the
	// receiver's position on the expected data ring.
	ErrorDataNotFound
	// ErrorRingSaturated is recorded when a transmitter, at the moment it is
	// ready to inject, finds its target data ring still at capacity despite
	// having already confirmed room for it during the control handshake (a
	// race between concurrent senders to the same ring), or finds its own
	// slot on that ring occupied by a passing packet.
	ErrorRingSaturated
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorControlCollision:
		return "control-collision"
	case ErrorDataNotFound:
		return "data-not-found"
	case ErrorRingSaturated:
		return "ring-saturated"
	default:
		return "unknown"
	}
}

// LatencyEntry is one row of the latency ledger Λ, joining a single
// packet's queueing delay (time spent in the sender's RAM) and transfer
// delay (time spent in flight on the ring) at the moment the receiver
// removes it (spec.md §4.7), alongside the network's cumulative data rate
// at that instant.
type LatencyEntry struct {
	Timestamp     int64
	Source        int
	Destination   int
	QueueingDelay int64
	TransferDelay int64

	// DataRate is cumulative_bits_received / Timestamp at the moment this
	// entry was recorded: bits = (packets delivered so far, including this
	// one) * 8 * dataPacketBytes (spec.md §4.7).
	DataRate float64
}

// ErrorEntry is one row of the runtime error ledger E.
type ErrorEntry struct {
	Timestamp int64
	Node      int
	Peer      int
	Kind      ErrorKind
}

// Ledger is the single source of truth for both append-only streams. It is
// never mutated concurrently: every producer runs as a cooperative task
// under the same sched.Scheduler, so at most one goroutine ever touches a
// Ledger at a time (spec.md §5).
type Ledger struct {
	Latency []LatencyEntry
	Errors  []ErrorEntry

	metrics         *Metrics
	dataPacketBytes int
	delivered       int64
}

// NewLedger returns an empty ledger. metrics may be nil to skip Prometheus
// instrumentation entirely. dataPacketBytes is S_d, the data packet size
// used to turn delivered-packet counts into the cumulative data rate
// reported on each LatencyEntry (spec.md §4.7).
func NewLedger(metrics *Metrics, dataPacketBytes int) *Ledger {
	return &Ledger{metrics: metrics, dataPacketBytes: dataPacketBytes}
}

// RecordLatency appends one completed packet's delay breakdown, along with
// the network's cumulative data rate at ts: (delivered so far * 8 *
// dataPacketBytes) / ts (spec.md §4.7). ts <= 0 reports a rate of 0 rather
// than dividing by zero.
func (l *Ledger) RecordLatency(ts int64, source, destination int, queueingDelay, transferDelay int64) {
	l.delivered++
	var rate float64
	if ts > 0 {
		rate = float64(l.delivered*8*int64(l.dataPacketBytes)) / float64(ts)
	}
	l.Latency = append(l.Latency, LatencyEntry{
		Timestamp:     ts,
		Source:        source,
		Destination:   destination,
		QueueingDelay: queueingDelay,
		TransferDelay: transferDelay,
		DataRate:      rate,
	})
	if l.metrics != nil {
		l.metrics.observeLatency(source, destination, queueingDelay, transferDelay, rate)
	}
}

// RecordError appends one runtime anomaly.
func (l *Ledger) RecordError(ts int64, node, peer int, kind ErrorKind) {
	l.Errors = append(l.Errors, ErrorEntry{Timestamp: ts, Node: node, Peer: peer, Kind: kind})
	if l.metrics != nil {
		l.metrics.observeError(kind)
	}
}
