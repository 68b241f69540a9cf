package sched

// event is one entry in the scheduler's virtual-time priority queue.
// Exactly one of start, resume or callback is set, depending on what kind
// of work the event represents.
type event struct {
	at  int64
	seq uint64

	start    func(*Task) // fresh task body to launch as a goroutine
	resume   chan struct{} // wakes a task blocked in Task.Sleep
	callback func()        // one-shot fire-and-forget work (api.Scheduler.Schedule)
	cancel   *cancelable
}

// eventHeap orders events by (at, seq) so that ties at the same virtual
// instant resolve in FIFO insertion order (spec.md §4.6), using
// container/heap exactly as the teacher's internal/concurrency/scheduler.go
// does for its timerQ.
type eventHeap []*event

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	if h[i].at != h[j].at {
		return h[i].at < h[j].at
	}
	return h[i].seq < h[j].seq
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(*event))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}
