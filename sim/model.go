package sim

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// RuleConfig describes one disease stage in the model file. Median and
// scatter are in days; recovery defaults to 0 when omitted.
type RuleConfig struct {
	Median   float64 `yaml:"median"`
	Scatter  float64 `yaml:"scatter"`
	Recovery float64 `yaml:"recovery"`
}

// ScheduleConfig describes a daily attendance window in the model file.
// Start and End are hours after midnight; Likelihood defaults to 1 when
// omitted.
type ScheduleConfig struct {
	Start      float64  `yaml:"start"`
	End        float64  `yaml:"end"`
	Likelihood *float64 `yaml:"likelihood"`
}

// VisitConfig attaches a schedule to a place kind within a role.
type VisitConfig struct {
	Place    string         `yaml:"place"`
	Schedule ScheduleConfig `yaml:"schedule"`
}

// RoleConfig describes one category of person in the model file.
type RoleConfig struct {
	Name     string        `yaml:"name"`
	Fraction float64       `yaml:"fraction"`
	Home     string        `yaml:"home"`
	Visits   []VisitConfig `yaml:"visits"`
}

// PlaceConfig describes one category of place in the model file. Median
// and Scatter size the log-normal occupancy distribution;
// Transmissivity is in expected infections per hour per contagious
// occupant.
type PlaceConfig struct {
	Name           string  `yaml:"name"`
	Median         float64 `yaml:"median"`
	Scatter        float64 `yaml:"scatter"`
	Transmissivity float64 `yaml:"transmissivity"`
}

// ModelConfig is the full model description: the population, the four
// stage rules, the end of simulated time in days, and the place and role
// definitions. Loaded from YAML and validated before Build constructs
// the simulation from it.
type ModelConfig struct {
	Population int     `yaml:"population"`
	Infected   int     `yaml:"infected"`
	End        float64 `yaml:"end"` // days

	Latent       RuleConfig `yaml:"latent"`
	Asymptomatic RuleConfig `yaml:"asymptomatic"`
	Symptomatic  RuleConfig `yaml:"symptomatic"`
	Bedridden    RuleConfig `yaml:"bedridden"`

	Places []PlaceConfig `yaml:"places"`
	Roles  []RoleConfig  `yaml:"roles"`
}

// LoadModel reads and validates a model description file.
func LoadModel(path string) (*ModelConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model file: %w", err)
	}
	var cfg ModelConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing model file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("model file %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks every field of the model description. Unlike the
// entity constructors, which it relies on for the detailed checks, it
// also verifies cross-references: visit place names must be defined,
// role and place names must be unique.
func (c *ModelConfig) Validate() error {
	if c.Population <= 0 {
		return fmt.Errorf("population %d must be positive", c.Population)
	}
	if c.Infected < 0 || c.Infected > c.Population {
		return fmt.Errorf("infected %d must be in [0, population]", c.Infected)
	}
	if c.End <= 0 || math.IsNaN(c.End) || math.IsInf(c.End, 0) {
		return fmt.Errorf("end %v must be a positive number of days", c.End)
	}
	for _, rc := range []struct {
		name string
		cfg  RuleConfig
	}{
		{"latent", c.Latent},
		{"asymptomatic", c.Asymptomatic},
		{"symptomatic", c.Symptomatic},
		{"bedridden", c.Bedridden},
	} {
		if _, err := rc.cfg.rule(); err != nil {
			return fmt.Errorf("%s: %w", rc.name, err)
		}
	}

	if len(c.Places) == 0 {
		return fmt.Errorf("no places specified")
	}
	placeNames := make(map[string]bool, len(c.Places))
	for _, pc := range c.Places {
		if placeNames[pc.Name] {
			return fmt.Errorf("place %s: duplicate name", pc.Name)
		}
		placeNames[pc.Name] = true
		if _, err := NewPlaceKind(pc.Name, pc.Median, pc.Scatter, pc.Transmissivity); err != nil {
			return err
		}
	}

	if len(c.Roles) == 0 {
		return fmt.Errorf("no roles specified")
	}
	roleNames := make(map[string]bool, len(c.Roles))
	for _, rc := range c.Roles {
		if roleNames[rc.Name] {
			return fmt.Errorf("role %s: duplicate name", rc.Name)
		}
		roleNames[rc.Name] = true
		if !placeNames[rc.Home] {
			return fmt.Errorf("role %s: undefined home place %q", rc.Name, rc.Home)
		}
	}

	// visit cross-references, schedule windows and overlap rejection are
	// all enforced by the entity constructors; rehearse construction so
	// Validate alone catches everything Build would
	_, err := c.build(nil)
	return err
}

// rule converts a RuleConfig (days) to an InfectionRule (internal units).
func (rc RuleConfig) rule() (*InfectionRule, error) {
	return NewInfectionRule(rc.Median*Day, rc.Scatter*Day, rc.Recovery)
}

// schedule converts a ScheduleConfig to a Schedule.
func (sc ScheduleConfig) schedule() (*Schedule, error) {
	likelihood := 1.0
	if sc.Likelihood != nil {
		likelihood = *sc.Likelihood
	}
	return NewSchedule(sc.Start, sc.End, likelihood)
}

// role builds the Role and its visit list against the given kind table.
func (rc RoleConfig) role(kinds map[string]*PlaceKind) (*Role, error) {
	role, err := NewRole(rc.Name, rc.Fraction, kinds[rc.Home])
	if err != nil {
		return nil, err
	}
	for _, vc := range rc.Visits {
		kind, ok := kinds[vc.Place]
		if !ok {
			return nil, fmt.Errorf("role %s: undefined place %q", rc.Name, vc.Place)
		}
		s, err := vc.Schedule.schedule()
		if err != nil {
			return nil, fmt.Errorf("role %s %s: %w", rc.Name, vc.Place, err)
		}
		if err := role.AddVisit(kind, s); err != nil {
			return nil, err
		}
	}
	return role, nil
}

// Build constructs a populated, ready-to-run simulation from the model:
// rules, place kinds and roles, then the population with its initial
// infections, then the distribution of people into concrete places, and
// finally the end-of-time event. All randomness flows from the seed.
func (c *ModelConfig) Build(seed uint64) (*Simulator, error) {
	return c.build(NewRand(seed))
}

// build does the work of Build. With a nil rng it stops after entity
// construction, which is how Validate rehearses the cross-reference
// checks without consuming randomness.
func (c *ModelConfig) build(rng *Rand) (*Simulator, error) {
	latent, err := c.Latent.rule()
	if err != nil {
		return nil, fmt.Errorf("latent: %w", err)
	}
	asymptomatic, err := c.Asymptomatic.rule()
	if err != nil {
		return nil, fmt.Errorf("asymptomatic: %w", err)
	}
	symptomatic, err := c.Symptomatic.rule()
	if err != nil {
		return nil, fmt.Errorf("symptomatic: %w", err)
	}
	bedridden, err := c.Bedridden.rule()
	if err != nil {
		return nil, fmt.Errorf("bedridden: %w", err)
	}
	rules := DiseaseRules{
		Latent:       latent,
		Asymptomatic: asymptomatic,
		Symptomatic:  symptomatic,
		Bedridden:    bedridden,
	}

	kinds := make(map[string]*PlaceKind, len(c.Places))
	kindList := make([]*PlaceKind, 0, len(c.Places))
	for _, pc := range c.Places {
		kind, err := NewPlaceKind(pc.Name, pc.Median, pc.Scatter, pc.Transmissivity)
		if err != nil {
			return nil, err
		}
		if _, dup := kinds[pc.Name]; dup {
			return nil, fmt.Errorf("place %s: duplicate name", pc.Name)
		}
		kinds[pc.Name] = kind
		kindList = append(kindList, kind)
	}

	roles := make([]*Role, 0, len(c.Roles))
	var fractionSum float64
	for _, rc := range c.Roles {
		role, err := rc.role(kinds)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
		fractionSum += role.Fraction
	}

	if rng == nil { // validation rehearsal, stop before randomness
		return nil, nil
	}

	sim := NewSimulator(rules, rng)
	sim.Kinds = kindList
	sim.Roles = roles

	sim.ScheduleEnd(c.End * Day)

	// create the population role by role, seeding initial infections
	// with a streaming inf/pop probability walk so exactly the right
	// number is expected regardless of role interleaving
	pop := c.Population
	inf := c.Infected
	for _, role := range roles {
		count := int(math.Round(role.Fraction / fractionSum * float64(c.Population)))
		for i := 0; i < count; i++ {
			p := NewPerson(sim, role)
			if rng.Float64() < float64(inf)/float64(pop) {
				p.Infect(sim, 0)
				inf--
			}
			pop--
			for _, v := range role.Visits() {
				v.Kind.Enroll(p, v.Schedule)
			}
		}
	}

	// deal people into concrete places; this emplaces everyone, announces
	// the time-zero home arrivals, and starts every schedule's pattern
	for _, kind := range kindList {
		kind.Distribute(sim)
	}

	return sim, nil
}
