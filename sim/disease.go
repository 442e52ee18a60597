package sim

// DiseaseState is one stage in the progression of the disease. The order
// matters: states only ever advance, the contagious range is defined by
// position, and the census report emits columns in this order.
type DiseaseState int

const (
	Uninfected DiseaseState = iota
	Latent
	Asymptomatic // these three states
	Symptomatic  //   are defined as
	Bedridden    //     contagious
	Recovered
	Dead

	NumDiseaseStates = int(Dead) + 1
)

var diseaseStateNames = [NumDiseaseStates]string{
	"uninfected",
	"latent",
	"asymptomatic",
	"symptomatic",
	"bedridden",
	"recovered",
	"dead",
}

func (s DiseaseState) String() string {
	if s < 0 || int(s) >= NumDiseaseStates {
		return "invalid"
	}
	return diseaseStateNames[s]
}

// Contagious reports whether a person in this state can infect others.
func (s DiseaseState) Contagious() bool {
	return s >= Asymptomatic && s <= Bedridden
}

// Census is the simulation-wide population count per disease state.
// Every state transition moves exactly one person between buckets, so at
// any instant the bucket sum equals the total population.
type Census struct {
	counts [NumDiseaseStates]int
}

// Add records a newly constructed person in state s.
func (c *Census) Add(s DiseaseState) {
	c.counts[s]++
}

// Transfer moves one person from state `from` to state `to`.
func (c *Census) Transfer(from, to DiseaseState) {
	if c.counts[from] <= 0 {
		panic("sim: census underflow for state " + from.String())
	}
	c.counts[from]--
	c.counts[to]++
}

// Count returns the live population in state s.
func (c *Census) Count(s DiseaseState) int {
	return c.counts[s]
}

// Total returns the total population across all states.
func (c *Census) Total() int {
	total := 0
	for _, n := range c.counts {
		total += n
	}
	return total
}
