// sim/simulator.go
package sim

import (
	"github.com/sirupsen/logrus"
)

// Simulator is the core object: it owns the scheduler, the shared random
// source, the census, the disease rules, and the population graph. All
// entity methods receive it explicitly; there is no package-level
// mutable state.
type Simulator struct {
	Scheduler *Scheduler
	Rand      *Rand
	Census    *Census
	Rules     DiseaseRules

	People []*Person
	Kinds  []*PlaceKind
	Roles  []*Role
}

// NewSimulator wires an empty simulation around the given disease rules
// and random source. Population and places are added during model build.
func NewSimulator(rules DiseaseRules, rng *Rand) *Simulator {
	return &Simulator{
		Scheduler: NewScheduler(),
		Rand:      rng,
		Census:    &Census{},
		Rules:     rules,
	}
}

// ScheduleEnd arranges for the run loop to halt at time t.
func (sim *Simulator) ScheduleEnd(t float64) {
	sim.Scheduler.Schedule(t, endAction{})
}

// Run drives the simulation to completion: the scheduler drains the
// event queue until the end-of-time action halts it or no events remain.
func (sim *Simulator) Run() {
	logrus.Infof("starting simulation: population=%d, places=%d kinds",
		sim.Census.Total(), len(sim.Kinds))
	sim.Scheduler.Run(sim)
	logrus.Infof("simulation ended at t=%.2f days", sim.Scheduler.Now()/Day)
}
