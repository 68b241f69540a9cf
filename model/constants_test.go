package model

import "testing"

func validConstants() Constants {
	return Constants{
		Unit:                Nanoseconds,
		RingLengthMeters:    10_000,
		PropagationSpeed:    2e8,
		NodeCount:           2,
		DataPacketBytes:     1000,
		ControlPacketBytes:  50,
		AverageRateBitsPerS: 1e6,
		PeakRateBitsPerS:    1e7,
		TuningTimeNanos:     1000,
		MaxDataSlots:        8,
		MaxControlSlots:     8,
	}
}

func TestNewRejectsOddOccupancy(t *testing.T) {
	c := validConstants()
	c.MaxDataSlots = 7
	if _, err := New(c); err != ErrInvalidOccupancy {
		t.Fatalf("expected ErrInvalidOccupancy, got %v", err)
	}
}

func TestNewRejectsZeroOccupancy(t *testing.T) {
	c := validConstants()
	c.MaxControlSlots = 0
	if _, err := New(c); err != ErrInvalidOccupancy {
		t.Fatalf("expected ErrInvalidOccupancy, got %v", err)
	}
}

func TestNewRejectsBadGeometry(t *testing.T) {
	c := validConstants()
	c.RingLengthMeters = 0
	if _, err := New(c); err != ErrInvalidGeometry {
		t.Fatalf("expected ErrInvalidGeometry, got %v", err)
	}
}

func TestNewRejectsBadTimeUnit(t *testing.T) {
	c := validConstants()
	c.Unit = TimeUnit(99)
	if _, err := New(c); err != ErrInvalidTimeUnit {
		t.Fatalf("expected ErrInvalidTimeUnit, got %v", err)
	}
}

func TestCirculationTime(t *testing.T) {
	m, err := New(validConstants())
	if err != nil {
		t.Fatal(err)
	}
	// T = L / v = 10000 / 2e8 = 5e-5 s = 50000 ns.
	if got, want := m.CirculationTime(), 50_000.0; got != want {
		t.Fatalf("CirculationTime = %v, want %v", got, want)
	}
	clk := m.DerivedClock()
	if clk.DataSlot != 6250 {
		t.Fatalf("DataSlot = %v, want 6250", clk.DataSlot)
	}
}

func TestNodePosition(t *testing.T) {
	m, err := New(validConstants())
	if err != nil {
		t.Fatal(err)
	}
	if got, want := m.NodePosition(1), 5000.0; got != want {
		t.Fatalf("NodePosition(1) = %v, want %v", got, want)
	}
}

func TestSecondsToUnitScale(t *testing.T) {
	c := validConstants()
	c.Unit = Nanoseconds
	m, err := New(c)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := m.SecondsToUnitScale(), 1e9; got != want {
		t.Fatalf("SecondsToUnitScale() = %v, want %v", got, want)
	}

	c.Unit = Seconds
	m, err = New(c)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := m.SecondsToUnitScale(), 1.0; got != want {
		t.Fatalf("SecondsToUnitScale() = %v, want %v", got, want)
	}
}

func TestTuningTimeConvertsNanosecondsToTheModelUnit(t *testing.T) {
	c := validConstants()
	c.TuningTimeNanos = 1000

	c.Unit = Nanoseconds
	m, err := New(c)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := m.TuningTime(), int64(1000); got != want {
		t.Fatalf("TuningTime() in Nanoseconds mode = %v, want %v", got, want)
	}

	c.Unit = Seconds
	m, err = New(c)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := m.TuningTime(), int64(0); got != want {
		t.Fatalf("TuningTime() in Seconds mode = %v, want %v (1000ns rounds to 0s)", got, want)
	}
}
