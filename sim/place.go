package sim

// Place is a concrete location people occupy. Its transmissivity (already
// converted to expected infections per internal time unit per contagious
// occupant) and its contagious-occupant count together set the infection
// pressure felt by everyone currently there.
type Place struct {
	Kind *PlaceKind

	transmissivity float64
	contagiousN    int
	occupants      []*Person
	arrivals       int
}

// NewPlace constructs a place of the given kind. transmissivity is in
// expected infections per internal time unit per contagious occupant.
func NewPlace(kind *PlaceKind, transmissivity float64) *Place {
	return &Place{Kind: kind, transmissivity: transmissivity}
}

// ContagiousCount returns the number of current occupants in the
// contagious range. Invariant: always exactly equal to counting them.
func (pl *Place) ContagiousCount() int {
	return pl.contagiousN
}

// OccupantCount returns the number of people currently here.
func (pl *Place) OccupantCount() int {
	return len(pl.occupants)
}

// ArrivalCount returns the cumulative number of arrivals at this place,
// including the time-zero emplacements.
func (pl *Place) ArrivalCount() int {
	return pl.arrivals
}

// Arrive adds a person to the occupant set. A contagious arriver raises
// the infection pressure, which re-arms everyone's infection waits,
// including the arriver's.
func (pl *Place) Arrive(sim *Simulator, t float64, p *Person) {
	pl.occupants = append(pl.occupants, p)
	pl.arrivals++
	if p.Contagious() {
		pl.Contagion(sim, t, +1)
	}
}

// Depart removes a person from the occupant set, lowering the infection
// pressure if they were contagious. Departing a place the person does not
// occupy is a no-op; death has already removed them.
func (pl *Place) Depart(sim *Simulator, t float64, p *Person) {
	for i, o := range pl.occupants {
		if o == p {
			pl.occupants = append(pl.occupants[:i], pl.occupants[i+1:]...)
			if p.Contagious() {
				pl.Contagion(sim, t, -1)
			}
			return
		}
	}
}

// Contagion adjusts the contagious-occupant count by delta and broadcasts
// the new infection pressure to every current occupant: each uninfected
// occupant's infection wait is redrawn with mean 1/(count *
// transmissivity). When that mean is not finite the waits are cancelled
// instead. Called from Arrive and Depart, and directly by disease-state
// transitions of a resident whose contagiousness changed in place.
func (pl *Place) Contagion(sim *Simulator, t float64, delta int) {
	pl.contagiousN += delta
	if pl.contagiousN < 0 {
		panic("sim: negative contagious count at place " + pl.Kind.Name)
	}

	meanDelay := 1 / (float64(pl.contagiousN) * pl.transmissivity)
	for _, o := range pl.occupants {
		o.ScheduleInfect(sim, t, meanDelay)
	}
}
