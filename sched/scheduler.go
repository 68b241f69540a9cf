// Package sched implements the single-threaded cooperative virtual-time
// scheduler (spec.md §4.6, §5): a priority queue keyed by (wake_time,
// insertion order) that advances a virtual clock and resumes exactly one
// waiting task at a time.
//
// Real goroutines back each task, but they are never allowed to run
// concurrently: a task only executes between being resumed and its next
// call to Task.Sleep (or its return), and the scheduler blocks on a
// rendezvous channel for that exact window before looking at the queue
// again. This is the idiomatic Go substitute for the generator/coroutine
// control flow spec.md §9 calls out — container/heap plus a goroutine
// rendezvous, the same primitives the teacher's
// internal/concurrency/scheduler.go reaches for, generalized from a
// wall-clock timer queue to a virtual one.
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package sched

import (
	"container/heap"
	"errors"

	"github.com/hyang1996/ringsim/api"
)

var (
	// ErrNegativeDelay is returned by Schedule/Sleep for a negative delay.
	ErrNegativeDelay = errors.New("sched: delay must be non-negative")
	// ErrUnknownCancelable is returned by Cancel for a handle not issued by
	// this Scheduler.
	ErrUnknownCancelable = errors.New("sched: cancelable not issued by this scheduler")
)

// Scheduler is a virtual-time cooperative event loop. It implements
// api.Scheduler.
type Scheduler struct {
	now   int64
	until int64
	seq   uint64
	queue eventHeap

	settle chan struct{}
}

var _ api.Scheduler = (*Scheduler)(nil)

// New creates a Scheduler that will run until virtual time until (in the
// model's time unit).
func New(until int64) *Scheduler {
	return &Scheduler{until: until, settle: make(chan struct{})}
}

// Now returns the current virtual time.
func (s *Scheduler) Now() int64 { return s.now }

func (s *Scheduler) nextSeq() uint64 {
	s.seq++
	return s.seq
}

// Schedule queues fn as a one-shot callback run synchronously by Run once
// the virtual clock reaches now()+delay. It satisfies api.Scheduler for
// simple fire-and-forget work; long-running cooperative processes should
// use Spawn/Task.Sleep instead.
func (s *Scheduler) Schedule(delay int64, fn func()) (api.Cancelable, error) {
	if delay < 0 {
		return nil, ErrNegativeDelay
	}
	c := newCancelable()
	heap.Push(&s.queue, &event{at: s.now + delay, seq: s.nextSeq(), callback: fn, cancel: c})
	return c, nil
}

// Cancel aborts a callback scheduled via Schedule, if it has not yet run.
func (s *Scheduler) Cancel(c api.Cancelable) error {
	cc, ok := c.(*cancelable)
	if !ok {
		return ErrUnknownCancelable
	}
	return cc.Cancel()
}

// Task is the handle a cooperative process uses to suspend itself.
type Task struct {
	sched *Scheduler
}

// Now returns the scheduler's current virtual time. Safe to call at any
// point because at most one task runs at a time.
func (t *Task) Now() int64 { return t.sched.now }

// Sleep suspends the calling task until the virtual clock has advanced by
// d, then returns control to it. It must only be called from within a
// function passed to Spawn.
func (t *Task) Sleep(d int64) {
	if d < 0 {
		d = 0
	}
	resume := make(chan struct{})
	heap.Push(&t.sched.queue, &event{at: t.sched.now + d, seq: t.sched.nextSeq(), resume: resume})
	t.sched.settle <- struct{}{}
	<-resume
}

// Spawn registers fn to start running as soon as Run reaches the
// scheduler's current virtual time (typically time 0, before Run is
// called). Each task runs on its own goroutine but the scheduler never
// lets two tasks execute concurrently.
func (s *Scheduler) Spawn(fn func(t *Task)) {
	heap.Push(&s.queue, &event{at: s.now, seq: s.nextSeq(), start: fn})
}

// Run drains the event queue, advancing the virtual clock to each event's
// wake time in turn, until the queue empties or the clock would reach
// until (spec.md §4.6). Tasks still blocked in Sleep when Run returns stay
// parked on their own goroutine for the lifetime of the process; this
// matches spec.md §5 ("tasks terminate only when now >= until", no
// mid-run cancellation is required) at the cost of one leaked goroutine
// per never-resumed task.
func (s *Scheduler) Run() {
	for s.queue.Len() > 0 {
		if s.queue[0].at >= s.until {
			return
		}
		ev := heap.Pop(&s.queue).(*event)
		s.now = ev.at

		switch {
		case ev.start != nil:
			go func(fn func(*Task)) {
				fn(&Task{sched: s})
				s.settle <- struct{}{}
			}(ev.start)
			<-s.settle

		case ev.resume != nil:
			close(ev.resume)
			<-s.settle

		case ev.callback != nil:
			if ev.cancel == nil || !ev.cancel.isCanceled() {
				ev.callback()
			}
			if ev.cancel != nil {
				ev.cancel.finish()
			}
		}
	}
}

// Abort clears the event queue, ending the run at its current virtual time
// without running any more pending events (spec.md §5 cancellation).
func (s *Scheduler) Abort() {
	s.queue = s.queue[:0]
}
