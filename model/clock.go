package model

// Clock exposes the two derived slot periods (data-slot and control-slot)
// that the scheduler and MAC state machines wake up on.
type Clock struct {
	DataSlot    int64
	ControlSlot int64
}

// DerivedClock rounds the model's continuous-time derived periods to the
// nearest integer tick in the model's time unit. Ring position checks stay
// in float64 (see ring.Ring.Check); only scheduler wake-ups need integer
// ticks.
func (m *Model) DerivedClock() Clock {
	return Clock{
		DataSlot:    int64(m.dataSlot + 0.5),
		ControlSlot: int64(m.controlSlot + 0.5),
	}
}
