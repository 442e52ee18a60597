package sim

import "testing"

// testRules builds deterministic disease rules: every stage lasts its
// median exactly (zero scatter) and recovers with the given probability.
func testRules(t *testing.T, medianDays, recovery float64) DiseaseRules {
	t.Helper()
	rule, err := NewInfectionRule(medianDays*Day, 0, recovery)
	if err != nil {
		t.Fatalf("NewInfectionRule: %v", err)
	}
	return DiseaseRules{
		Latent:       rule,
		Asymptomatic: rule,
		Symptomatic:  rule,
		Bedridden:    rule,
	}
}

// newTestSim wires a simulator with deterministic rules and a fixed seed.
func newTestSim(t *testing.T, recovery float64) *Simulator {
	t.Helper()
	return NewSimulator(testRules(t, 1, recovery), NewRand(42))
}

// newTestPlace creates a standalone place with the given transmissivity
// in infections per hour per contagious occupant.
func newTestPlace(t *testing.T, name string, perHour float64) *Place {
	t.Helper()
	kind, err := NewPlaceKind(name, 10, 0, perHour)
	if err != nil {
		t.Fatalf("NewPlaceKind: %v", err)
	}
	return NewPlace(kind, perHour/Hour)
}

// recordAction appends its fire time to a shared log.
type recordAction struct {
	log *[]float64
}

func (a recordAction) Execute(_ *Simulator, t float64) {
	*a.log = append(*a.log, t)
}

// labelAction appends its label to a shared log, for ordering tests.
type labelAction struct {
	label string
	log   *[]string
}

func (a labelAction) Execute(_ *Simulator, _ float64) {
	*a.log = append(*a.log, a.label)
}
