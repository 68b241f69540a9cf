package sched

import "testing"

func TestScheduleRunsAtDelay(t *testing.T) {
	s := New(1000)
	var ranAt int64 = -1
	s.Schedule(100, func() { ranAt = s.Now() })
	s.Run()
	if ranAt != 100 {
		t.Fatalf("callback ran at %d, want 100", ranAt)
	}
}

func TestCancelPreventsCallback(t *testing.T) {
	s := New(1000)
	ran := false
	c, _ := s.Schedule(100, func() { ran = true })
	s.Cancel(c)
	s.Run()
	if ran {
		t.Fatal("canceled callback should not have run")
	}
}

func TestSameInstantFIFOOrder(t *testing.T) {
	s := New(1000)
	var order []int
	s.Schedule(50, func() { order = append(order, 1) })
	s.Schedule(50, func() { order = append(order, 2) })
	s.Schedule(50, func() { order = append(order, 3) })
	s.Run()
	want := []int{1, 2, 3}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestRunStopsAtUntil(t *testing.T) {
	s := New(100)
	ran := false
	s.Schedule(200, func() { ran = true })
	s.Run()
	if ran {
		t.Fatal("event past `until` should not run")
	}
}

func TestSpawnAndSleepCooperate(t *testing.T) {
	s := New(10_000)
	var wakeups []int64
	s.Spawn(func(task *Task) {
		for i := 0; i < 3; i++ {
			task.Sleep(100)
			wakeups = append(wakeups, task.Now())
		}
	})
	s.Run()
	want := []int64{100, 200, 300}
	if len(wakeups) != len(want) {
		t.Fatalf("wakeups = %v, want %v", wakeups, want)
	}
	for i := range want {
		if wakeups[i] != want[i] {
			t.Fatalf("wakeups = %v, want %v", wakeups, want)
		}
	}
}

func TestTwoTasksInterleaveByWakeTime(t *testing.T) {
	s := New(10_000)
	var order []string
	s.Spawn(func(task *Task) {
		task.Sleep(50)
		order = append(order, "a")
		task.Sleep(100)
		order = append(order, "a2")
	})
	s.Spawn(func(task *Task) {
		task.Sleep(75)
		order = append(order, "b")
	})
	s.Run()
	want := []string{"a", "b", "a2"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}
