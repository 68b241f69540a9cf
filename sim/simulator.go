package sim

import (
	"fmt"
	"math/bits"

	"github.com/hyang1996/ringsim/api"
	"github.com/hyang1996/ringsim/distribution"
	"github.com/hyang1996/ringsim/model"
	"github.com/hyang1996/ringsim/node"
	"github.com/hyang1996/ringsim/registry"
	"github.com/hyang1996/ringsim/ring"
	"github.com/hyang1996/ringsim/sched"
	"github.com/hyang1996/ringsim/signal"
	"github.com/hyang1996/ringsim/stats"
	"github.com/hyang1996/ringsim/traffic"
)

// Simulator is the wired, ready-to-run ring network.
type Simulator struct {
	cfg   Config
	model *model.Model

	controlRing *ring.Ring
	dataRings   []*ring.Ring
	codes       *signal.CodeRegistry

	Ledger   *stats.Ledger
	Info     *stats.Info
	Registry *registry.Registry

	scheduler *sched.Scheduler
}

// New validates cfg, builds the ring geometry, and wires one RAM,
// transmitter and receiver per node (spec.md §3, §4). It rejects any
// Combination other than the two the protocol supports.
func New(cfg Config) (*Simulator, error) {
	m, err := model.New(cfg.Constants)
	if err != nil {
		return nil, err
	}
	if cfg.Combination != FixedTransmitTunableReceive && cfg.Combination != TunableTransmitFixedReceive {
		return nil, ErrUnsupportedCombination
	}
	if cfg.TrafficKind != distribution.Poisson && cfg.TrafficKind != distribution.Pareto {
		return nil, ErrUnknownTrafficKind
	}
	if cfg.Until <= 0 {
		return nil, ErrNonPositiveHorizon
	}

	clock := m.DerivedClock()
	codes := signal.NewCodeRegistry()
	codec := buildCodec(m)
	ledger := stats.NewLedger(cfg.Metrics, m.DataPacketBytes)
	maxTransfer := int64(m.CirculationTime()) + 1

	controlRing := ring.New("control", m, false, m.MaxControlSlots)
	dataRings := make([]*ring.Ring, m.NodeCount)
	for i := range dataRings {
		dataRings[i] = ring.New(fmt.Sprintf("data-%d", i), m, false, m.MaxDataSlots)
	}

	reg := registry.New(m.NodeCount)
	info := stats.NewInfo()

	for id := 0; id < m.NodeCount; id++ {
		dist := distribution.New(cfg.TrafficKind, id, m.AverageRateBitsPerS, m.PeakRateBitsPerS, m.DataPacketBytes, m.SecondsToUnitScale())
		ram := traffic.New(id, m.NodeCount, dist)

		tunable := cfg.Combination == TunableTransmitFixedReceive
		tx := node.NewTransmitter(id, tunable, ram, controlRing, dataRings[id], dataRings, codec, clock, m.TuningTime(), ledger)
		rx := node.NewReceiver(id, !tunable, controlRing, dataRings[id], dataRings, codec, clock, m.TuningTime(), maxTransfer, ledger)

		reg.Set(id, registry.Entry{RAM: ram, Transmitter: tx, Receiver: rx})

		nodeID := id
		info.Register(fmt.Sprintf("node:%d:queue_depth", nodeID), func() any { return ram.Len() })
	}
	info.Register("ring:control:live", func() any { return controlRing.Live() })
	for i, r := range dataRings {
		ringIdx, dr := i, r
		info.Register(fmt.Sprintf("ring:data:%d:live", ringIdx), func() any { return dr.Live() })
	}

	return &Simulator{
		cfg:         cfg,
		model:       m,
		controlRing: controlRing,
		dataRings:   dataRings,
		codes:       codes,
		Ledger:      ledger,
		Info:        info,
		Registry:    reg,
		scheduler:   sched.New(cfg.Until),
	}, nil
}

// buildCodec returns the abstract decimal-triple codec when the model runs
// in abstract mode, or a fixed-width binary codec sized to the ring's node
// count otherwise.
func buildCodec(m *model.Model) api.ControlCodec {
	if m.AbstractMode {
		return signal.AbstractCodec{}
	}
	nodeBits := bitsFor(m.NodeCount)
	return signal.NewBinaryCodec(nodeBits, nodeBits, bitsFor(2))
}

func bitsFor(n int) int {
	if n <= 1 {
		return 1
	}
	return bits.Len(uint(n - 1))
}

// Model exposes the validated, derived simulation parameters.
func (s *Simulator) Model() *model.Model { return s.model }

// Codes exposes the control-code name registry.
func (s *Simulator) Codes() *signal.CodeRegistry { return s.codes }

// Run spawns every node's traffic/transmit/receive tasks and drains the
// scheduler to completion (spec.md §4.6). It returns a Summary over the
// ledger once the virtual-time horizon is reached.
func (s *Simulator) Run() stats.Summary {
	rams := make([]*traffic.RAM, s.model.NodeCount)
	s.Registry.Range(func(id int, e registry.Entry) {
		ram, tx, rx := e.RAM, e.Transmitter, e.Receiver
		rams[id] = ram
		s.scheduler.Spawn(func(t *sched.Task) { ram.Run(t) })
		s.scheduler.Spawn(func(t *sched.Task) { tx.RunControl(t) })
		s.scheduler.Spawn(func(t *sched.Task) { tx.RunData(t) })
		s.scheduler.Spawn(func(t *sched.Task) { rx.RunControl(t) })
		s.scheduler.Spawn(func(t *sched.Task) { rx.RunData(t) })
	})
	s.scheduler.Run()
	return stats.Summarize(s.model.NodeCount, s.Ledger, rams)
}
