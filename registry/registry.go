// Package registry is the simulator's node directory: it owns every node's
// traffic source, transmitter and receiver, indexed by node id, and exposes
// Range for façades (stats.Info, stats.Summary) that need to walk every
// node without reaching into sim.Simulator's internals.
//
// Adapted from the teacher's internal/session sharded SessionManager
// (store.go): that store keys sessions by arbitrary string id and shards
// across a hash-masked slice to spread lock contention. Ring node ids are
// instead a dense 0..N-1 range fixed at construction time, so the sharding
// and hashing machinery has nothing to do here — the manager collapses to a
// single pre-sized slice keyed by id directly, keeping the Get/Range shape
// the teacher's Session store exposes.
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package registry

import (
	"errors"

	"github.com/hyang1996/ringsim/node"
	"github.com/hyang1996/ringsim/traffic"
)

// ErrNodeOutOfRange is returned by Get for an id outside [0, NodeCount).
var ErrNodeOutOfRange = errors.New("registry: node id out of range")

// Entry bundles one node's traffic source with its transmitter and
// receiver. Exactly one of Transmitter/Receiver's Tunable fields is true
// per the ring's (FT,TR) or (TT,FR) combination (sim.New enforces this).
type Entry struct {
	RAM         *traffic.RAM
	Transmitter *node.Transmitter
	Receiver    *node.Receiver
}

// Registry is the fixed-size node directory for one simulation run.
type Registry struct {
	entries []Entry
}

// New allocates an empty Registry for nodeCount nodes. Callers fill each
// slot with Set as the transmitters/receivers are wired.
func New(nodeCount int) *Registry {
	return &Registry{entries: make([]Entry, nodeCount)}
}

// Set installs the entry for node id.
func (r *Registry) Set(id int, e Entry) {
	r.entries[id] = e
}

// Get returns the entry for node id.
func (r *Registry) Get(id int) (Entry, error) {
	if id < 0 || id >= len(r.entries) {
		return Entry{}, ErrNodeOutOfRange
	}
	return r.entries[id], nil
}

// Len returns the number of nodes in the registry.
func (r *Registry) Len() int { return len(r.entries) }

// Range calls fn for every node id in ascending order.
func (r *Registry) Range(fn func(id int, e Entry)) {
	for id, e := range r.entries {
		fn(id, e)
	}
}
