package sim

import (
	"fmt"
)

// Schedule is a recurring daily attendance window: go somewhere at
// startTime (day-relative), stay for duration, with the given likelihood
// of actually making the trip on any particular day. Immutable once
// constructed; one schedule is attached to exactly one (role, place kind)
// pairing.
type Schedule struct {
	startTime  float64 // seconds after midnight
	duration   float64 // length of the visit, seconds
	likelihood float64 // probability the trip happens on a given day
}

// NewSchedule builds a schedule from day-relative start and end times in
// hours. The window must lie within one day and the likelihood in [0, 1].
func NewSchedule(startHour, endHour, likelihood float64) (*Schedule, error) {
	if startHour < 0 {
		return nil, fmt.Errorf("schedule (%v-%v): start time is yesterday", startHour, endHour)
	}
	if startHour >= endHour {
		return nil, fmt.Errorf("schedule (%v-%v): times out of order", startHour, endHour)
	}
	if endHour > 24 {
		return nil, fmt.Errorf("schedule (%v-%v): end time is tomorrow", startHour, endHour)
	}
	if likelihood < 0 || likelihood > 1 {
		return nil, fmt.Errorf("schedule (%v-%v %v): likelihood must be in [0, 1]",
			startHour, endHour, likelihood)
	}
	return &Schedule{
		startTime:  startHour * Hour,
		duration:   (endHour - startHour) * Hour,
		likelihood: likelihood,
	}, nil
}

// Overlap reports whether the two daily windows intersect, comparing the
// closed intervals [start, start+duration]. Symmetric; false against nil.
// Used at setup to reject roles whose commitments contradict each other.
func (s *Schedule) Overlap(o *Schedule) bool {
	if o == nil {
		return false
	}
	if s.startTime <= o.startTime {
		return o.startTime <= s.startTime+s.duration
	}
	return s.startTime <= o.startTime+o.duration
}

// Apply starts the daily pattern: the first tick fires at the schedule's
// start time on day zero.
func (s *Schedule) Apply(sim *Simulator, person *Person, place *Place) {
	sim.Scheduler.Schedule(s.startTime, scheduleTickAction{schedule: s, person: person, place: place})
}

// tick is the daily service routine. It re-arms itself for tomorrow
// before anything else, so the pattern persists whether or not today's
// trip happens; then it flips the likelihood coin, and on success travels
// now and books the trip home at the end of the window.
func (s *Schedule) tick(sim *Simulator, t float64, person *Person, place *Place) {
	sim.Scheduler.Schedule(t+Day, scheduleTickAction{schedule: s, person: person, place: place})

	if sim.Rand.Float64() < s.likelihood {
		person.TravelTo(sim, t, place)
		sim.Scheduler.Schedule(t+s.duration, goHomeAction{person: person})
	}
}

// String renders the schedule in (start-end likelihood) hour notation.
func (s *Schedule) String() string {
	return fmt.Sprintf("(%g-%g %g)", s.startTime/Hour, (s.startTime+s.duration)/Hour, s.likelihood)
}
