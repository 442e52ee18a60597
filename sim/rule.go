package sim

import (
	"fmt"
	"math"
)

// InfectionRule is the statistical description of one disease stage: how
// long the stage lasts and how likely the person is to recover instead of
// progressing when it ends. One rule exists per stage (latent,
// asymptomatic, symptomatic, bedridden); rules are immutable after
// construction.
type InfectionRule struct {
	median   float64 // median stage duration, internal time units
	sigma    float64 // log-scale scatter, reduced once at construction
	recovery float64 // probability of recovery when the stage ends
}

// NewInfectionRule builds a rule from a median duration, a scatter in the
// same unit, and a recovery probability. The scatter is reduced to the
// sigma of the underlying normal distribution up front:
// sigma = ln((scatter+median)/median).
func NewInfectionRule(median, scatter, recovery float64) (*InfectionRule, error) {
	if median <= 0 || math.IsNaN(median) || math.IsInf(median, 0) {
		return nil, fmt.Errorf("infection rule: median %v must be positive and finite", median)
	}
	if scatter < 0 || math.IsNaN(scatter) || math.IsInf(scatter, 0) {
		return nil, fmt.Errorf("infection rule: scatter %v must be non-negative and finite", scatter)
	}
	if recovery < 0 || recovery > 1 || math.IsNaN(recovery) {
		return nil, fmt.Errorf("infection rule: recovery probability %v must be in [0, 1]", recovery)
	}
	return &InfectionRule{
		median:   median,
		sigma:    math.Log((scatter + median) / median),
		recovery: recovery,
	}, nil
}

// Duration draws how long the stage lasts this time, log-normally
// distributed around the rule's median.
func (r *InfectionRule) Duration(rng *Rand) float64 {
	return rng.LogNormal(r.median, r.sigma)
}

// Recover tosses the rule's recovery coin.
func (r *InfectionRule) Recover(rng *Rand) bool {
	return rng.Float64() <= r.recovery
}

// DiseaseRules bundles the four per-stage rules consumed by the person
// state machine.
type DiseaseRules struct {
	Latent       *InfectionRule
	Asymptomatic *InfectionRule
	Symptomatic  *InfectionRule
	Bedridden    *InfectionRule
}
