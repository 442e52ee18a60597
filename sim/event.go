package sim

// Action is the behavior bound to a scheduled event. The concrete types
// below form a closed set of event kinds; each names the entity it acts
// on explicitly, so a pending queue can be inspected during tests and
// nothing is captured implicitly.
type Action interface {
	// Execute advances simulation state. t is the event's fire time,
	// which is also the scheduler clock at the moment of the call.
	Execute(sim *Simulator, t float64)
}

// infectAction fires a person's pending infection. A no-op unless the
// person is still uninfected when it fires.
type infectAction struct {
	person *Person
}

func (a infectAction) Execute(sim *Simulator, t float64) {
	a.person.Infect(sim, t)
}

// progressAction moves a person into the next disease stage. The target
// state selects the service routine; the routines themselves assert the
// expected prior state.
type progressAction struct {
	person *Person
	to     DiseaseState
}

func (a progressAction) Execute(sim *Simulator, t float64) {
	switch a.to {
	case Asymptomatic:
		a.person.BeContagious(sim, t)
	case Symptomatic:
		a.person.FeelSick(sim, t)
	case Bedridden:
		a.person.GoToBed(sim, t)
	case Recovered:
		a.person.Recover(sim, t)
	case Dead:
		a.person.Die(sim, t)
	default:
		panic("sim: no progression routine for state " + a.to.String())
	}
}

// scheduleTickAction is one day's firing of a recurring schedule for one
// person and place.
type scheduleTickAction struct {
	schedule *Schedule
	person   *Person
	place    *Place
}

func (a scheduleTickAction) Execute(sim *Simulator, t float64) {
	a.schedule.tick(sim, t, a.person, a.place)
}

// goHomeAction sends a person home at the end of a scheduled visit.
type goHomeAction struct {
	person *Person
}

func (a goHomeAction) Execute(sim *Simulator, t float64) {
	a.person.GoHome(sim, t)
}

// reportAction emits one daily census row and re-arms itself.
type reportAction struct {
	reporter *Reporter
}

func (a reportAction) Execute(sim *Simulator, t float64) {
	a.reporter.report(sim, t)
}

// endAction terminates the run loop at the model's configured end time.
type endAction struct{}

func (endAction) Execute(sim *Simulator, _ float64) {
	sim.Scheduler.Halt()
}
