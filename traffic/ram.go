// Package traffic implements the per-node RAM traffic source (spec.md
// §4.3): a cooperative task that samples inter-arrival times from a
// distribution.Source, generates a data packet to a uniformly random
// destination other than itself, and enqueues it for the node's
// transmitter.
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package traffic

import (
	"github.com/eapache/queue"

	"github.com/hyang1996/ringsim/distribution"
	"github.com/hyang1996/ringsim/ring"
	"github.com/hyang1996/ringsim/sched"
)

// QueuedPacket is one entry waiting in a RAM's FIFO for transmission.
type QueuedPacket struct {
	GenTime int64
	Payload ring.Payload
	Dest    int
}

// EventKind distinguishes RAM history entries.
type EventKind int

const (
	EventGenerated EventKind = iota
	EventDequeued
)

// Event is one entry in a RAM's append-only history, read by
// stats.Summarize to compute each RAM's queue-depth max and mean.
type Event struct {
	Kind     EventKind
	At       int64
	QueueLen int
}

// RAM is one node's traffic source.
type RAM struct {
	NodeID    int
	nodeCount int

	dist *distribution.Source
	q    *queue.Queue
	seq  int64

	History []Event
}

// New constructs a RAM for nodeID among nodeCount total nodes, sampling
// inter-arrivals from dist.
func New(nodeID, nodeCount int, dist *distribution.Source) *RAM {
	return &RAM{NodeID: nodeID, nodeCount: nodeCount, dist: dist, q: queue.New()}
}

// Len reports the current queue depth.
func (r *RAM) Len() int { return r.q.Length() }

// Peek returns the head of the FIFO without removing it.
func (r *RAM) Peek() (QueuedPacket, bool) {
	if r.q.Length() == 0 {
		return QueuedPacket{}, false
	}
	return r.q.Peek().(QueuedPacket), true
}

// Dequeue removes and returns the head of the FIFO.
func (r *RAM) Dequeue() (QueuedPacket, bool) {
	if r.q.Length() == 0 {
		return QueuedPacket{}, false
	}
	p := r.q.Remove().(QueuedPacket)
	r.History = append(r.History, Event{Kind: EventDequeued, At: p.GenTime, QueueLen: r.q.Length()})
	return p, true
}

// Run is the RAM's cooperative task loop (spec.md §4.3). It never returns;
// it is meant to be passed to sched.Scheduler.Spawn and runs for the whole
// simulation.
func (r *RAM) Run(t *sched.Task) {
	for {
		iat := r.dist.Sample()
		t.Sleep(iat)

		dest := r.destination()
		payload := ring.Payload{NodeID: r.NodeID, Seq: r.seq}
		r.seq++

		r.q.Add(QueuedPacket{GenTime: t.Now(), Payload: payload, Dest: dest})
		r.History = append(r.History, Event{Kind: EventGenerated, At: t.Now(), QueueLen: r.q.Length()})
	}
}

// destination picks a uniformly random node other than NodeID (spec.md
// §4.3 invariant: dest != self).
func (r *RAM) destination() int {
	d := r.dist.Uniform(r.nodeCount - 1)
	if d >= r.NodeID {
		d++
	}
	return d
}
