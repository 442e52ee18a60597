// Package sim is a discrete-event simulator of an infectious disease
// spreading through a synthetic population. People move between places
// according to per-role daily schedules; each place aggregates its
// contagious occupants into an infection pressure that drives stochastic
// infection events; infected people progress through a fixed sequence of
// disease stages with log-normally distributed stage durations.
//
// Execution is single-threaded and strictly event-driven: the Scheduler
// drains a time-ordered queue, each fired action runs to completion, and
// all stochastic timing is drawn from one shared seeded source so a run
// is reproducible bit for bit.
package sim
