package stats

import (
	"math"

	"github.com/hyang1996/ringsim/traffic"
)

// QueueDepth summarizes one RAM's queue-depth trace over a run (adapted
// from original_source/NetworkSim/simulation/tools/summary.py, which
// reports max/mean queue depth per RAM alongside the latency matrix).
type QueueDepth struct {
	Max  int
	Mean float64
}

// Summary is the post-run rollup over a Ledger (spec.md §6 external
// interface): delivered/error counts, per-node send/receive counts and
// shares, per-node queue-depth traces, and a source-by-destination average
// total-delay matrix. A matrix cell is NaN for a (source, destination) pair
// the ledger never recorded a delivery for, rather than a misleading zero.
type Summary struct {
	Delivered    int
	Errors       int
	ErrorsByKind map[ErrorKind]int

	PerNodeSent     []int
	PerNodeReceived []int

	// PerNodeSentShare[i] and PerNodeReceivedShare[i] are PerNodeSent[i]
	// and PerNodeReceived[i] as a fraction of Delivered (0 when Delivered
	// is 0).
	PerNodeSentShare     []float64
	PerNodeReceivedShare []float64

	// QueueDepths[i] is node i's RAM queue-depth trace, nil if no RAMs
	// were passed to Summarize.
	QueueDepths []QueueDepth

	// LatencyMatrix[i][j] is the mean QueueingDelay+TransferDelay over
	// every packet delivered from node i to node j.
	LatencyMatrix [][]float64

	// FinalDataRate is the last LatencyEntry's DataRate — the network's
	// cumulative data rate as of the final delivery (spec.md §4.7; mirrors
	// original_source/NetworkSim/simulation/tools/summary.py's "Final Data
	// Rate"). 0 if nothing was ever delivered.
	FinalDataRate float64
}

// Summarize rolls ledger (and, if supplied, every node's RAM history) up
// into a Summary over a ring of nodeCount nodes. rams may be nil, which
// leaves QueueDepths nil; otherwise QueueDepths has one entry per element of
// rams (so it is shorter than nodeCount when rams is), and a nil RAM yields
// a zero QueueDepth.
func Summarize(nodeCount int, ledger *Ledger, rams []*traffic.RAM) Summary {
	s := Summary{
		ErrorsByKind:         make(map[ErrorKind]int),
		PerNodeSent:          make([]int, nodeCount),
		PerNodeReceived:      make([]int, nodeCount),
		PerNodeSentShare:     make([]float64, nodeCount),
		PerNodeReceivedShare: make([]float64, nodeCount),
	}

	sums := make([][]float64, nodeCount)
	counts := make([][]int, nodeCount)
	for i := range sums {
		sums[i] = make([]float64, nodeCount)
		counts[i] = make([]int, nodeCount)
	}

	for _, e := range ledger.Latency {
		s.Delivered++
		s.PerNodeSent[e.Source]++
		s.PerNodeReceived[e.Destination]++
		sums[e.Source][e.Destination] += float64(e.QueueingDelay + e.TransferDelay)
		counts[e.Source][e.Destination]++
		s.FinalDataRate = e.DataRate
	}
	for _, e := range ledger.Errors {
		s.Errors++
		s.ErrorsByKind[e.Kind]++
	}

	if s.Delivered > 0 {
		for i := 0; i < nodeCount; i++ {
			s.PerNodeSentShare[i] = float64(s.PerNodeSent[i]) / float64(s.Delivered)
			s.PerNodeReceivedShare[i] = float64(s.PerNodeReceived[i]) / float64(s.Delivered)
		}
	}

	matrix := make([][]float64, nodeCount)
	for i := range matrix {
		matrix[i] = make([]float64, nodeCount)
		for j := range matrix[i] {
			if counts[i][j] == 0 {
				matrix[i][j] = math.NaN()
				continue
			}
			matrix[i][j] = sums[i][j] / float64(counts[i][j])
		}
	}
	s.LatencyMatrix = matrix

	if rams != nil {
		s.QueueDepths = make([]QueueDepth, len(rams))
		for i, ram := range rams {
			s.QueueDepths[i] = queueDepthOf(ram)
		}
	}
	return s
}

func queueDepthOf(ram *traffic.RAM) QueueDepth {
	var qd QueueDepth
	if ram == nil || len(ram.History) == 0 {
		return qd
	}
	var sum int
	for _, e := range ram.History {
		if e.QueueLen > qd.Max {
			qd.Max = e.QueueLen
		}
		sum += e.QueueLen
	}
	qd.Mean = float64(sum) / float64(len(ram.History))
	return qd
}
