package sim

import "fmt"

// RoleVisit pairs a place kind a role's people visit with the schedule
// governing those visits. The home kind carries a nil schedule.
type RoleVisit struct {
	Kind     *PlaceKind
	Schedule *Schedule
}

// Role is a category of person. It defines the fraction of the
// population in the role and the place kinds (with schedules) its people
// are committed to. Exactly one of the visits, the home, has no schedule.
type Role struct {
	Name     string
	Fraction float64

	home   *PlaceKind
	visits []RoleVisit
}

// NewRole builds a role with its home place kind. Visits are added with
// AddVisit; schedule consistency is checked there.
func NewRole(name string, fraction float64, home *PlaceKind) (*Role, error) {
	if name == "" {
		return nil, fmt.Errorf("role with no name")
	}
	if fraction <= 0 {
		return nil, fmt.Errorf("role %s: non-positive population fraction %v", name, fraction)
	}
	if home == nil {
		return nil, fmt.Errorf("role %s: no home specified", name)
	}
	r := &Role{Name: name, Fraction: fraction, home: home}
	r.visits = append(r.visits, RoleVisit{Kind: home, Schedule: nil})
	return r, nil
}

// Home returns the role's home place kind.
func (r *Role) Home() *PlaceKind {
	return r.home
}

// Visits returns all of the role's place-kind commitments, home included.
func (r *Role) Visits() []RoleVisit {
	return r.visits
}

// AddVisit commits the role's people to visiting a place kind on a
// schedule. A kind may appear at most once per role, and the schedule
// must not overlap any schedule already attached to the role: a person
// cannot be in two places at once.
func (r *Role) AddVisit(kind *PlaceKind, s *Schedule) error {
	if kind == nil {
		return fmt.Errorf("role %s: visit to undefined place", r.Name)
	}
	if s == nil {
		return fmt.Errorf("role %s %s: a second home?", r.Name, kind.Name)
	}
	for _, v := range r.visits {
		if v.Kind == kind {
			return fmt.Errorf("role %s %s: place name reused", r.Name, kind.Name)
		}
		if v.Schedule != nil && v.Schedule.Overlap(s) {
			return fmt.Errorf("role %s %s: schedule %s overlaps %s",
				r.Name, kind.Name, s, v.Schedule)
		}
	}
	r.visits = append(r.visits, RoleVisit{Kind: kind, Schedule: s})
	return nil
}
