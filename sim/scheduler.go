// sim/scheduler.go
package sim

import (
	"container/heap"
	"math"

	"github.com/sirupsen/logrus"
)

// Handle is an opaque reference to a scheduled event, usable only for
// Cancel and Reschedule. The zero Handle refers to no event; cancelling
// or rescheduling it is a no-op, as is using a handle whose event has
// already fired or been cancelled.
type Handle struct {
	slot int
	gen  uint64
}

// event is a pending entry in the scheduler's queue.
type event struct {
	time  float64
	seq   uint64 // insertion sequence, breaks ties at equal times
	act   Action
	index int // position in the heap, maintained by heap.Interface
	slot  int
	gen   uint64
}

// eventHeap orders pending events by time. Ties at equal times are broken
// by ascending insertion sequence, so among simultaneous events the one
// scheduled first fires first. This rule is fixed: simulated trajectories
// depend on it whenever two events share a timestamp.
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-PriorityQueue
type eventHeap []*event

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	if h[i].time != h[j].time {
		return h[i].time < h[j].time
	}
	return h[i].seq < h[j].seq
}

func (h eventHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *eventHeap) Push(x any) {
	ev := x.(*event)
	ev.index = len(*h)
	*h = append(*h, ev)
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	ev := old[n-1]
	old[n-1] = nil
	ev.index = -1
	*h = old[0 : n-1]
	return ev
}

// slot is one arena entry. gen increments every time the slot is
// released, invalidating any handle issued against the old generation.
type slot struct {
	gen uint64
	ev  *event // nil when the slot holds no pending event
}

// Scheduler owns the simulation clock and the pending-event set.
//
// Events fire in nondecreasing time order; each action runs to completion
// before the next is dequeued. Actions may freely schedule, cancel and
// reschedule other events, including events at times earlier than ones
// that already fired; the only ordering guarantee is queue order.
type Scheduler struct {
	clock  float64
	queue  eventHeap
	seq    uint64
	slots  []slot
	free   []int
	halted bool
}

// NewScheduler creates an empty scheduler with the clock at zero.
func NewScheduler() *Scheduler {
	return &Scheduler{queue: make(eventHeap, 0)}
}

// Now returns the current simulated time: the timestamp of the event
// being (or last) fired.
func (s *Scheduler) Now() float64 {
	return s.clock
}

// Pending returns the number of scheduled, not yet fired events.
func (s *Scheduler) Pending() int {
	return len(s.queue)
}

// Schedule inserts an event firing act at time t and returns its handle.
// There is no constraint that t be at or after the current clock; model
// setup schedules freely at time zero. t must be finite.
func (s *Scheduler) Schedule(t float64, act Action) Handle {
	if math.IsNaN(t) || math.IsInf(t, 0) {
		panic("sim: scheduled time must be finite")
	}

	var idx int
	if n := len(s.free); n > 0 {
		idx = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		// generation starts at 1 so the zero Handle never matches
		s.slots = append(s.slots, slot{gen: 1})
		idx = len(s.slots) - 1
	}

	s.seq++
	ev := &event{time: t, seq: s.seq, act: act, slot: idx, gen: s.slots[idx].gen}
	s.slots[idx].ev = ev
	heap.Push(&s.queue, ev)
	return Handle{slot: idx, gen: ev.gen}
}

// Cancel removes the referenced event if it is still pending. Handles to
// events that already fired, were already cancelled, or never existed are
// silently ignored.
func (s *Scheduler) Cancel(h Handle) {
	ev := s.lookup(h)
	if ev == nil {
		return
	}
	heap.Remove(&s.queue, ev.index)
	s.release(ev)
}

// Reschedule moves a still-pending event to time t, preserving its
// identity (it will fire exactly once, at the new time). A no-op for
// handles that are no longer pending.
func (s *Scheduler) Reschedule(h Handle, t float64) {
	ev := s.lookup(h)
	if ev == nil {
		return
	}
	if math.IsNaN(t) || math.IsInf(t, 0) {
		panic("sim: rescheduled time must be finite")
	}
	ev.time = t
	heap.Fix(&s.queue, ev.index)
}

// Halt makes Run return after the current action completes. Scheduled by
// the model's end-of-time event.
func (s *Scheduler) Halt() {
	s.halted = true
}

// Run drains the queue: repeatedly remove the pending event with the
// smallest time, advance the clock to it, and fire its action. Returns
// when the queue empties or an action calls Halt.
func (s *Scheduler) Run(sim *Simulator) {
	s.halted = false
	for len(s.queue) > 0 && !s.halted {
		ev := heap.Pop(&s.queue).(*event)
		s.release(ev)
		s.clock = ev.time
		logrus.Debugf("[t=%.0f] firing %T", ev.time, ev.act)
		ev.act.Execute(sim, ev.time)
	}
}

// lookup resolves a handle to its pending event, or nil.
func (s *Scheduler) lookup(h Handle) *event {
	if h.slot < 0 || h.slot >= len(s.slots) {
		return nil
	}
	sl := s.slots[h.slot]
	if sl.ev == nil || sl.gen != h.gen {
		return nil
	}
	return sl.ev
}

// release retires an event's arena slot, invalidating outstanding handles.
func (s *Scheduler) release(ev *event) {
	s.slots[ev.slot].ev = nil
	s.slots[ev.slot].gen++
	s.free = append(s.free, ev.slot)
}
