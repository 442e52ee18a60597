package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSchedule_RejectsBadWindows(t *testing.T) {
	cases := []struct {
		name           string
		start, end, lh float64
	}{
		{"start yesterday", -1, 8, 1},
		{"times out of order", 10, 8, 1},
		{"empty window", 8, 8, 1},
		{"end tomorrow", 20, 25, 1},
		{"negative likelihood", 8, 10, -0.1},
		{"likelihood above one", 8, 10, 1.5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewSchedule(tc.start, tc.end, tc.lh)
			assert.Error(t, err)
		})
	}
}

func mustSchedule(t *testing.T, start, end, lh float64) *Schedule {
	t.Helper()
	s, err := NewSchedule(start, end, lh)
	if err != nil {
		t.Fatalf("NewSchedule(%v, %v, %v): %v", start, end, lh, err)
	}
	return s
}

func TestSchedule_Overlap(t *testing.T) {
	morning := mustSchedule(t, 8, 12, 1)
	midday := mustSchedule(t, 11, 14, 1)
	evening := mustSchedule(t, 18, 22, 1)
	touching := mustSchedule(t, 12, 13, 1)

	// GIVEN overlapping, touching and disjoint windows
	// THEN intersection of the closed intervals decides, symmetrically
	assert.True(t, morning.Overlap(midday))
	assert.True(t, midday.Overlap(morning))
	assert.False(t, morning.Overlap(evening))
	assert.False(t, evening.Overlap(morning))
	// shared endpoint counts as overlap
	assert.True(t, morning.Overlap(touching))
	assert.True(t, touching.Overlap(morning))
	// nil never overlaps
	assert.False(t, morning.Overlap(nil))
}

func TestSchedule_String(t *testing.T) {
	s := mustSchedule(t, 9, 17, 0.5)
	assert.Equal(t, "(9-17 0.5)", s.String())
}

// setupCommuter wires a home and a workplace with zero transmissivity and
// one healthy person committed to the given attendance window.
func setupCommuter(t *testing.T, likelihood float64) (*Simulator, *Person, *Place, *Place) {
	t.Helper()
	s := newTestSim(t, 0)
	home := newTestPlace(t, "home", 0)
	work := newTestPlace(t, "work", 0)
	p := NewPerson(s, nil)
	p.Emplace(s, home, nil)
	p.Emplace(s, work, mustSchedule(t, 9, 17, likelihood))
	return s, p, home, work
}

func TestSchedule_LikelihoodZero_NeverTravels(t *testing.T) {
	// GIVEN a commuter whose schedule never triggers
	s, p, home, work := setupCommuter(t, 0)
	s.ScheduleEnd(1000 * Day)

	// WHEN 1000 simulated days pass
	s.Run()

	// THEN not a single trip happened
	assert.Equal(t, 0, work.ArrivalCount())
	assert.Same(t, home, p.Location())
}

func TestSchedule_LikelihoodOne_TravelsEveryDay(t *testing.T) {
	// GIVEN a commuter whose schedule always triggers
	s, p, home, work := setupCommuter(t, 1)
	s.ScheduleEnd(1000 * Day)

	// WHEN 1000 simulated days pass
	s.Run()

	// THEN there was exactly one trip out per day, and each came home
	assert.Equal(t, 1000, work.ArrivalCount())
	// time-zero emplacement plus one return per day
	assert.Equal(t, 1001, home.ArrivalCount())
	assert.Same(t, home, p.Location())
}

func TestSchedule_TickPersistsAcrossSkippedDays(t *testing.T) {
	// even with likelihood zero the daily tick must stay armed
	s, _, _, _ := setupCommuter(t, 0)
	s.ScheduleEnd(10 * Day)
	s.Run()

	// the queue still holds tomorrow's tick (plus the skipped remainder)
	assert.Greater(t, s.Scheduler.Pending(), 0)
}
