// sim/person.go
package sim

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// PlaceSchedule links a person to one place they are committed to visit
// and the schedule governing the visits.
type PlaceSchedule struct {
	Place    *Place
	Schedule *Schedule
}

// Person is an agent in the simulation. Role, home and commitments are
// fixed at setup; disease state and location mutate in place as events
// fire. A person's disease state only ever moves forward, and once
// recovered or dead it never changes again.
type Person struct {
	ID   int
	Role *Role

	home        *Place
	location    *Place
	commitments []PlaceSchedule

	state DiseaseState

	// at most one outstanding infection event, live only while uninfected
	infection        Handle
	infectionPending bool
}

// NewPerson constructs an uninfected person with the given role and
// counts them in the census. Emplacement happens separately so the set of
// people can be shuffled across places first.
func NewPerson(sim *Simulator, role *Role) *Person {
	p := &Person{ID: len(sim.People), Role: role}
	sim.People = append(sim.People, p)
	sim.Census.Add(Uninfected)
	return p
}

// State returns the person's current disease state.
func (p *Person) State() DiseaseState {
	return p.state
}

// Contagious reports whether this person currently infects others.
func (p *Person) Contagious() bool {
	return p.state.Contagious()
}

// Home returns the person's home place.
func (p *Person) Home() *Place {
	return p.home
}

// Location returns the place the person currently occupies.
func (p *Person) Location() *Place {
	return p.location
}

// InfectionPending reports whether an infection event is outstanding.
func (p *Person) InfectionPending() bool {
	return p.infectionPending
}

// Emplace commits this person to a place. A nil schedule marks the place
// as home: the person starts there, and arrival is announced at time
// zero. A non-nil schedule records a recurring commitment and starts the
// daily pattern.
func (p *Person) Emplace(sim *Simulator, place *Place, s *Schedule) {
	if s != nil {
		p.commitments = append(p.commitments, PlaceSchedule{Place: place, Schedule: s})
		s.Apply(sim, p, place)
		return
	}
	if p.home != nil {
		panic(fmt.Sprintf("sim: person %d emplaced with a second home", p.ID))
	}
	p.home = place
	p.location = place
	place.Arrive(sim, 0, p)
}

// ScheduleInfect arms, re-arms or disarms this person's infection event
// in response to the infection pressure at their current place. meanDelay
// is the expected wait until infection; a non-finite mean (no contagious
// occupants, or zero transmissivity) cancels any pending event instead of
// computing a time for it. Only uninfected people carry infection events.
func (p *Person) ScheduleInfect(sim *Simulator, t, meanDelay float64) {
	if p.state != Uninfected {
		return
	}
	if math.IsInf(meanDelay, 0) || math.IsNaN(meanDelay) {
		if p.infectionPending {
			sim.Scheduler.Cancel(p.infection)
			p.infectionPending = false
		}
		return
	}
	goTime := t + sim.Rand.Exponential(meanDelay)
	if p.infectionPending {
		sim.Scheduler.Reschedule(p.infection, goTime)
	} else {
		p.infection = sim.Scheduler.Schedule(goTime, infectAction{person: p})
		p.infectionPending = true
	}
}

// Infect moves an uninfected person into the latent stage and schedules
// the stage's end. Safe to call on a person in any state: reinfection and
// stale infection events are no-ops. Also used directly at time zero to
// seed the initial infections.
func (p *Person) Infect(sim *Simulator, t float64) {
	if p.state != Uninfected {
		return
	}
	p.infectionPending = false

	duration := sim.Rules.Latent.Duration(sim.Rand)
	p.setState(sim, t, Latent)

	if sim.Rules.Latent.Recover(sim.Rand) {
		sim.Scheduler.Schedule(t+duration, progressAction{person: p, to: Recovered})
	} else {
		sim.Scheduler.Schedule(t+duration, progressAction{person: p, to: Asymptomatic})
	}
}

// BeContagious ends the latent stage: the person becomes asymptomatic and
// starts infecting others, so the current place is told.
func (p *Person) BeContagious(sim *Simulator, t float64) {
	p.mustBe(Latent, "BeContagious")
	duration := sim.Rules.Asymptomatic.Duration(sim.Rand)
	p.setState(sim, t, Asymptomatic)

	if p.location != nil {
		p.location.Contagion(sim, t, +1)
	}

	if sim.Rules.Asymptomatic.Recover(sim.Rand) {
		sim.Scheduler.Schedule(t+duration, progressAction{person: p, to: Recovered})
	} else {
		sim.Scheduler.Schedule(t+duration, progressAction{person: p, to: Symptomatic})
	}
}

// FeelSick ends the asymptomatic stage: the person turns symptomatic.
// Contagiousness is unchanged.
func (p *Person) FeelSick(sim *Simulator, t float64) {
	p.mustBe(Asymptomatic, "FeelSick")
	duration := sim.Rules.Symptomatic.Duration(sim.Rand)
	p.setState(sim, t, Symptomatic)

	if sim.Rules.Symptomatic.Recover(sim.Rand) {
		sim.Scheduler.Schedule(t+duration, progressAction{person: p, to: Recovered})
	} else {
		sim.Scheduler.Schedule(t+duration, progressAction{person: p, to: Bedridden})
	}
}

// GoToBed ends the symptomatic stage: the person is now bedridden.
//
// The recovery branch below consults the symptomatic rule again, not the
// bedridden rule; the bedridden rule's recovery probability is never
// read. This reproduces the reference trajectory exactly (see the open
// question notes in DESIGN.md).
func (p *Person) GoToBed(sim *Simulator, t float64) {
	p.mustBe(Symptomatic, "GoToBed")
	duration := sim.Rules.Bedridden.Duration(sim.Rand)
	p.setState(sim, t, Bedridden)

	if sim.Rules.Symptomatic.Recover(sim.Rand) {
		sim.Scheduler.Schedule(t+duration, progressAction{person: p, to: Recovered})
	} else {
		sim.Scheduler.Schedule(t+duration, progressAction{person: p, to: Dead})
	}
}

// Recover ends the illness: callable from any live stage, leaves the
// person recovered and immune. Leaving the contagious range notifies the
// current place exactly once; recovery straight out of latency was never
// contagious and notifies nobody.
func (p *Person) Recover(sim *Simulator, t float64) {
	wasContagious := p.state.Contagious()
	p.setState(sim, t, Recovered)

	if wasContagious && p.location != nil {
		p.location.Contagion(sim, t, -1)
	}
}

// Die ends a bedridden person's illness the other way. The death removes
// them from the contagious count and departs them from their current
// place; no further events concern them.
func (p *Person) Die(sim *Simulator, t float64) {
	p.mustBe(Bedridden, "Die")
	p.setState(sim, t, Dead)

	if p.location != nil {
		p.location.Contagion(sim, t, -1)
		p.location.Depart(sim, t, p)
	}
}

// GoHome sends the person home at the end of a scheduled visit.
func (p *Person) GoHome(sim *Simulator, t float64) {
	p.TravelTo(sim, t, p.home)
}

// TravelTo departs the current location and arrives at place. Two trips
// are suppressed without error: a bedridden person may only travel home,
// and the dead do not travel at all (death already departed them).
func (p *Person) TravelTo(sim *Simulator, t float64, place *Place) {
	if p.state == Dead {
		return
	}
	if p.state == Bedridden && place != p.home {
		return
	}
	p.location.Depart(sim, t, p)
	p.location = place
	place.Arrive(sim, t, p)
}

// setState transfers the person between census buckets and logs the
// transition.
func (p *Person) setState(sim *Simulator, t float64, to DiseaseState) {
	sim.Census.Transfer(p.state, to)
	logrus.Debugf("[t=%.0f] person %d: %s -> %s", t, p.ID, p.state, to)
	p.state = to
}

// mustBe asserts the expected prior stage for a progression routine.
// Firing one of these on a person in the wrong state is a programming
// error, not a recoverable condition.
func (p *Person) mustBe(s DiseaseState, routine string) {
	if p.state != s {
		panic(fmt.Sprintf("sim: %s on person %d in state %s, want %s", routine, p.ID, p.state, s))
	}
}
