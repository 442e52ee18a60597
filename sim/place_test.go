package sim

import (
	"testing"
)

// contagiousOccupants counts occupants in the contagious range directly,
// to check the cached counter against ground truth.
func contagiousOccupants(pl *Place) int {
	n := 0
	for _, o := range pl.occupants {
		if o.Contagious() {
			n++
		}
	}
	return n
}

func checkCounter(t *testing.T, pl *Place) {
	t.Helper()
	if got, want := pl.ContagiousCount(), contagiousOccupants(pl); got != want {
		t.Fatalf("contagious counter = %d, occupants say %d", got, want)
	}
}

func TestPlace_CounterTracksArrivalsAndDepartures(t *testing.T) {
	// GIVEN a home full of people, one of whom becomes contagious
	s := newTestSim(t, 0)
	home := newTestPlace(t, "home", 1)
	other := newTestPlace(t, "work", 1)
	var people []*Person
	for i := 0; i < 4; i++ {
		p := NewPerson(s, nil)
		p.Emplace(s, home, nil)
		people = append(people, p)
	}
	sick := people[0]
	sick.Infect(s, 0)
	sick.BeContagious(s, 0)
	checkCounter(t, home)

	// WHEN the contagious person moves between places
	sick.TravelTo(s, 1*Hour, other)

	// THEN both counters stay exact
	checkCounter(t, home)
	checkCounter(t, other)
	if home.ContagiousCount() != 0 {
		t.Errorf("home contagious count = %d, want 0", home.ContagiousCount())
	}
	if other.ContagiousCount() != 1 {
		t.Errorf("destination contagious count = %d, want 1", other.ContagiousCount())
	}

	// AND WHEN they come back and recover
	sick.TravelTo(s, 2*Hour, home)
	sick.Recover(s, 3*Hour)
	checkCounter(t, home)
	checkCounter(t, other)
}

func TestPlace_InfectionPressureScenario(t *testing.T) {
	// GIVEN one susceptible person in a place with transmissivity 1/hour
	s := newTestSim(t, 0)
	place := newTestPlace(t, "home", 1)
	exposed := NewPerson(s, nil)
	exposed.Emplace(s, place, nil)
	carrier := NewPerson(s, nil)
	carrier.Emplace(s, place, nil)

	if exposed.InfectionPending() {
		t.Fatal("infection event pending with no contagious occupants")
	}

	// WHEN another occupant becomes contagious
	carrier.Infect(s, 0)
	carrier.BeContagious(s, 0)

	// THEN the exposed person's infection wait is armed at a finite time
	if !exposed.InfectionPending() {
		t.Fatal("no infection event pending with contagious count 1")
	}

	// AND WHEN the contagious count returns to zero
	carrier.Recover(s, 1*Hour)

	// THEN the pending infection is cancelled, not rescheduled
	if exposed.InfectionPending() {
		t.Fatal("infection event still pending with contagious count 0")
	}
}

func TestPlace_ZeroTransmissivity_NeverArmsInfection(t *testing.T) {
	// GIVEN a perfectly safe place with a contagious occupant
	s := newTestSim(t, 0)
	place := newTestPlace(t, "outdoors", 0)
	exposed := NewPerson(s, nil)
	exposed.Emplace(s, place, nil)
	carrier := NewPerson(s, nil)
	carrier.Emplace(s, place, nil)

	carrier.Infect(s, 0)
	carrier.BeContagious(s, 0)

	// THEN the infinite mean wait cancels rather than schedules
	if exposed.InfectionPending() {
		t.Fatal("infection pending despite zero transmissivity")
	}
}

func TestPlace_ContagiousArriverRearmsOccupants(t *testing.T) {
	// GIVEN a susceptible person at home and a contagious visitor elsewhere
	s := newTestSim(t, 0)
	home := newTestPlace(t, "home", 1)
	away := newTestPlace(t, "away", 1)
	exposed := NewPerson(s, nil)
	exposed.Emplace(s, home, nil)
	visitor := NewPerson(s, nil)
	visitor.Emplace(s, away, nil)
	visitor.Infect(s, 0)
	visitor.BeContagious(s, 0)

	// WHEN the visitor arrives
	visitor.TravelTo(s, 1*Hour, home)

	// THEN the resident's infection wait is armed by the arrival
	if !exposed.InfectionPending() {
		t.Fatal("arrival of a contagious person did not arm infection waits")
	}
	checkCounter(t, home)

	// AND WHEN the visitor leaves again
	visitor.TravelTo(s, 2*Hour, away)
	if exposed.InfectionPending() {
		t.Fatal("departure of the only contagious person left infection armed")
	}
	checkCounter(t, home)
}

func TestPlace_DepartNonOccupant_NoOp(t *testing.T) {
	s := newTestSim(t, 0)
	place := newTestPlace(t, "home", 1)
	elsewhere := newTestPlace(t, "work", 1)
	p := NewPerson(s, nil)
	p.Emplace(s, place, nil)

	elsewhere.Depart(s, 0, p)

	if place.OccupantCount() != 1 {
		t.Errorf("occupant count = %d, want 1", place.OccupantCount())
	}
	if elsewhere.OccupantCount() != 0 {
		t.Errorf("non-occupied place count = %d, want 0", elsewhere.OccupantCount())
	}
}
