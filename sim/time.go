package sim

// The internal time unit is one second, represented as a float64. Model
// parameters arrive in days and hours and are converted once at load
// time; nothing downstream ever re-reads a wall-clock unit.
const (
	Second = 1.0
	Minute = 60 * Second
	Hour   = 60 * Minute
	Day    = 24 * Hour
)
