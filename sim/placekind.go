package sim

import (
	"fmt"
	"math"
)

// personSchedule holds a person awaiting assignment to a concrete place
// of this kind, with the schedule that will govern their visits (nil for
// home).
type personSchedule struct {
	person   *Person
	schedule *Schedule
}

// PlaceKind is a category of place: every concrete Place is an instance
// of some kind, sized from the kind's log-normal size distribution and
// sharing the kind's transmissivity.
type PlaceKind struct {
	Name string

	median         float64 // median place size, occupants
	sigma          float64 // log-scale scatter of the size distribution
	transmissivity float64 // per internal time unit per contagious occupant

	places []*Place

	// model-elaboration state: people waiting to be dealt into places
	pending          []personSchedule
	unfilled         *Place
	unfilledCapacity int
}

// NewPlaceKind builds a place category. median and scatter describe the
// size distribution in occupants; transmissivity is given per hour per
// contagious occupant and converted to the internal time unit here, once.
func NewPlaceKind(name string, median, scatter, transmissivityPerHour float64) (*PlaceKind, error) {
	if name == "" {
		return nil, fmt.Errorf("place kind with no name")
	}
	if median <= 0 {
		return nil, fmt.Errorf("place %s: non-positive median %v", name, median)
	}
	if scatter < 0 {
		return nil, fmt.Errorf("place %s: negative scatter %v", name, scatter)
	}
	if transmissivityPerHour < 0 {
		return nil, fmt.Errorf("place %s: negative transmissivity %v", name, transmissivityPerHour)
	}
	return &PlaceKind{
		Name:           name,
		median:         median,
		sigma:          math.Log((scatter + median) / median),
		transmissivity: transmissivityPerHour / Hour,
	}, nil
}

// Places returns the concrete places created for this kind.
func (pk *PlaceKind) Places() []*Place {
	return pk.places
}

// Enroll queues a person for assignment to some place of this kind. The
// whole population of the kind must be enrolled before Distribute deals
// people into concrete places.
func (pk *PlaceKind) Enroll(p *Person, s *Schedule) {
	pk.pending = append(pk.pending, personSchedule{person: p, schedule: s})
}

// Distribute deals every enrolled person into a concrete place. The
// pending list is shuffled first to break the correlation between person
// construction order and place assignment; places are created on demand
// with capacities drawn from the kind's size distribution.
func (pk *PlaceKind) Distribute(sim *Simulator) {
	sim.Rand.Shuffle(len(pk.pending), func(i, j int) {
		pk.pending[i], pk.pending[j] = pk.pending[j], pk.pending[i]
	})
	for _, ps := range pk.pending {
		ps.person.Emplace(sim, pk.findPlace(sim), ps.schedule)
	}
	pk.pending = nil
}

// findPlace returns the place currently being filled, creating a new one
// with a freshly drawn capacity whenever the previous one fills up.
func (pk *PlaceKind) findPlace(sim *Simulator) *Place {
	if pk.unfilledCapacity <= 0 {
		pk.unfilledCapacity = int(math.Round(sim.Rand.LogNormal(pk.median, pk.sigma)))
		pk.unfilled = NewPlace(pk, pk.transmissivity)
		pk.places = append(pk.places, pk.unfilled)
	}
	pk.unfilledCapacity--
	return pk.unfilled
}
