package sim

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Rand is the single source of randomness for a simulation run.
//
// Every stochastic decision in the model (stage durations, recovery rolls,
// infection waits, trip coins, the setup shuffle) draws from this one
// source, so a fixed seed reproduces the full trajectory bit for bit.
// Two runs with the same seed and the same model MUST produce identical
// output.
//
// Thread-safety: NOT thread-safe. The simulation is single-threaded and
// the scheduler's call thread is the only consumer.
type Rand struct {
	src *rand.Rand
}

// NewRand creates a Rand seeded deterministically from seed.
func NewRand(seed uint64) *Rand {
	return &Rand{src: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Float64 returns a uniform draw in [0, 1).
func (r *Rand) Float64() float64 {
	return r.src.Float64()
}

// Exponential returns an exponentially distributed draw with the given
// mean. A zero mean returns zero. Callers must not pass a non-finite
// mean; infection scheduling cancels instead of drawing when the hazard
// rate vanishes.
func (r *Rand) Exponential(mean float64) float64 {
	if mean == 0 {
		return 0
	}
	return distuv.Exponential{Rate: 1 / mean, Src: r.src}.Rand()
}

// LogNormal returns a log-normally distributed draw with the given median
// and log-scale sigma: median * exp(sigma * Z). Sigma zero degenerates to
// the median exactly.
func (r *Rand) LogNormal(median, sigma float64) float64 {
	if sigma == 0 {
		return median
	}
	return distuv.LogNormal{Mu: math.Log(median), Sigma: sigma, Src: r.src}.Rand()
}

// Shuffle randomizes element order via swap, consuming draws from the
// shared source. Used once at setup to break the correlation between
// person construction order and place assignment.
func (r *Rand) Shuffle(n int, swap func(i, j int)) {
	r.src.Shuffle(n, swap)
}
