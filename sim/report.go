package sim

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// Reporter emits the population census as CSV, one row per simulated
// day: the time in days followed by the live count for each disease
// state, columns in disease-state order.
type Reporter struct {
	w   *csv.Writer
	err error
}

// NewReporter creates a reporter writing CSV to out.
func NewReporter(out io.Writer) *Reporter {
	return &Reporter{w: csv.NewWriter(out)}
}

// Start registers the daily report with the simulation, beginning at
// time zero, and optionally writes the headline row naming the columns.
// Must be called before Run.
func (r *Reporter) Start(sim *Simulator, headline bool) error {
	if headline {
		row := make([]string, 0, NumDiseaseStates+1)
		row = append(row, "time")
		for s := Uninfected; s <= Dead; s++ {
			row = append(row, s.String())
		}
		if err := r.w.Write(row); err != nil {
			return fmt.Errorf("writing report headline: %w", err)
		}
		r.w.Flush()
	}
	sim.Scheduler.Schedule(0, reportAction{reporter: r})
	return nil
}

// Err returns the first write error encountered, if any.
func (r *Reporter) Err() error {
	if r.err != nil {
		return r.err
	}
	return r.w.Error()
}

// report is the daily service routine: write one census row, flush, and
// re-arm for the same time tomorrow.
func (r *Reporter) report(sim *Simulator, t float64) {
	row := make([]string, 0, NumDiseaseStates+1)
	row = append(row, strconv.FormatFloat(t/Day, 'g', -1, 64))
	for s := Uninfected; s <= Dead; s++ {
		row = append(row, strconv.Itoa(sim.Census.Count(s)))
	}
	if err := r.w.Write(row); err != nil && r.err == nil {
		r.err = err
	}
	r.w.Flush()

	sim.Scheduler.Schedule(t+Day, reportAction{reporter: r})
}
