package node_test

import (
	"testing"

	"github.com/hyang1996/ringsim/distribution"
	"github.com/hyang1996/ringsim/model"
	"github.com/hyang1996/ringsim/node"
	"github.com/hyang1996/ringsim/ring"
	"github.com/hyang1996/ringsim/sched"
	"github.com/hyang1996/ringsim/signal"
	"github.com/hyang1996/ringsim/stats"
	"github.com/hyang1996/ringsim/traffic"
)

func testModel(t *testing.T) *model.Model {
	t.Helper()
	m, err := model.New(model.Constants{
		Unit:                model.Nanoseconds,
		RingLengthMeters:    10_000,
		PropagationSpeed:    2e8,
		NodeCount:           2,
		DataPacketBytes:     1000,
		ControlPacketBytes:  50,
		AverageRateBitsPerS: 1e6,
		PeakRateBitsPerS:    1e7,
		TuningTimeNanos:     1000,
		AbstractMode:        true,
		MaxDataSlots:        8,
		MaxControlSlots:     8,
	})
	if err != nil {
		t.Fatal(err)
	}
	return m
}

// TestFixedTransmitterTunableReceiverDelivers reproduces spec.md §8
// Scenario 1: a two-node ring, one FT and one TR, in abstract mode. It
// drives the full stack (RAM -> Transmitter -> Ring -> Receiver) through
// the cooperative scheduler and checks at least one packet is delivered
// with a sane latency breakdown and no runtime errors.
func TestFixedTransmitterTunableReceiverDelivers(t *testing.T) {
	m := testModel(t)
	clock := m.DerivedClock()
	codec := signal.AbstractCodec{}

	controlRing := ring.New("control", m, false, m.MaxControlSlots)
	dataRing0 := ring.New("data-0", m, false, m.MaxDataSlots)
	dataRing1 := ring.New("data-1", m, false, m.MaxDataSlots)
	dataRings := []*ring.Ring{dataRing0, dataRing1}

	ledger := stats.NewLedger(nil, 1500)

	dist0 := distribution.New(distribution.Poisson, 0, m.AverageRateBitsPerS, m.PeakRateBitsPerS, m.DataPacketBytes, m.SecondsToUnitScale())
	ram0 := traffic.New(0, m.NodeCount, dist0)

	tx := node.NewTransmitter(0, false, ram0, controlRing, dataRing0, nil, codec, clock, m.TuningTime(), ledger)
	rx := node.NewReceiver(1, true, controlRing, nil, dataRings, codec, clock, m.TuningTime(), int64(m.CirculationTime())+1, ledger)

	s := sched.New(500_000_000)
	s.Spawn(func(task *sched.Task) { ram0.Run(task) })
	s.Spawn(func(task *sched.Task) { tx.RunControl(task) })
	s.Spawn(func(task *sched.Task) { tx.RunData(task) })
	s.Spawn(func(task *sched.Task) { rx.RunControl(task) })
	s.Spawn(func(task *sched.Task) { rx.RunData(task) })
	s.Run()

	if len(ledger.Latency) == 0 {
		t.Fatal("expected at least one delivered packet")
	}
	for _, e := range ledger.Latency {
		if e.Source != 0 || e.Destination != 1 {
			t.Fatalf("unexpected latency entry endpoints: %+v", e)
		}
		if e.QueueingDelay < 0 || e.TransferDelay < 0 {
			t.Fatalf("negative delay in entry: %+v", e)
		}
	}
	for _, e := range ledger.Errors {
		t.Fatalf("unexpected runtime error: %+v", e)
	}
}

// TestTunableTransmitterFixedReceiverDelivers exercises the other valid
// combination (TT, FR), where the transmitter retunes to the destination's
// wavelength and the receiver always listens on its own.
func TestTunableTransmitterFixedReceiverDelivers(t *testing.T) {
	m := testModel(t)
	clock := m.DerivedClock()
	codec := signal.AbstractCodec{}

	controlRing := ring.New("control", m, false, m.MaxControlSlots)
	dataRing0 := ring.New("data-0", m, false, m.MaxDataSlots)
	dataRing1 := ring.New("data-1", m, false, m.MaxDataSlots)
	dataRings := []*ring.Ring{dataRing0, dataRing1}

	ledger := stats.NewLedger(nil, 1500)

	dist0 := distribution.New(distribution.Poisson, 0, m.AverageRateBitsPerS, m.PeakRateBitsPerS, m.DataPacketBytes, m.SecondsToUnitScale())
	ram0 := traffic.New(0, m.NodeCount, dist0)

	tx := node.NewTransmitter(0, true, ram0, controlRing, nil, dataRings, codec, clock, m.TuningTime(), ledger)
	rx := node.NewReceiver(1, false, controlRing, dataRing1, dataRings, codec, clock, m.TuningTime(), int64(m.CirculationTime())+1, ledger)

	s := sched.New(500_000_000)
	s.Spawn(func(task *sched.Task) { ram0.Run(task) })
	s.Spawn(func(task *sched.Task) { tx.RunControl(task) })
	s.Spawn(func(task *sched.Task) { tx.RunData(task) })
	s.Spawn(func(task *sched.Task) { rx.RunControl(task) })
	s.Spawn(func(task *sched.Task) { rx.RunData(task) })
	s.Run()

	if len(ledger.Latency) == 0 {
		t.Fatal("expected at least one delivered packet")
	}
}

func TestHandshakeStartsWithDataDone(t *testing.T) {
	h := node.NewHandshake()
	if h.ControlDone {
		t.Fatal("ControlDone should start false")
	}
	if !h.DataDone {
		t.Fatal("DataDone should start true")
	}
}
