package espgo

import (
	"fmt"
	"sort"
)

// SubPopulation is the fixed-size pool of neuron genomes for one
// hidden-unit slot. ESP evolves one of these per slot in parallel; whole
// networks are later assembled by drawing one neuron from each.
type SubPopulation struct {
	Individuals    []*Neuron
	NumBreed       int
	BestIndividual *Neuron
	MaxID          int64
	Evolvable      bool
}

// NewSubPopulation allocates capacity fresh neuron genomes of the given
// gene size. NumBreed is fixed at capacity/4 (the top quartile).
func NewSubPopulation(capacity, geneSize int, evolvable bool, rng *RNG) *SubPopulation {
	p := &SubPopulation{
		Individuals: make([]*Neuron, capacity),
		NumBreed:    capacity / 4,
		Evolvable:   evolvable,
	}
	for i := range p.Individuals {
		p.Individuals[i] = NewNeuron(geneSize, rng)
	}
	if capacity > 0 {
		p.MaxID = p.Individuals[capacity-1].ID
		p.BestIndividual = p.Individuals[0]
	}
	return p
}

// SelectRndIndividual returns a uniformly random individual from
// [0, upper). upper <= 0 or greater than the pool size selects over the
// whole pool.
func (p *SubPopulation) SelectRndIndividual(upper int, rng *RNG) *Neuron {
	if upper <= 0 || upper > len(p.Individuals) {
		upper = len(p.Individuals)
	}
	return p.Individuals[rng.Intn(upper)]
}

// Sort orders individuals descending by effective fitness and refreshes
// BestIndividual. Post-condition: for all i<j, EffectiveFitness(i) >=
// EffectiveFitness(j).
func (p *SubPopulation) Sort() {
	sort.SliceStable(p.Individuals, func(i, j int) bool {
		return p.Individuals[i].EffectiveFitness() > p.Individuals[j].EffectiveFitness()
	})
	if len(p.Individuals) > 0 {
		p.BestIndividual = p.Individuals[0]
	}
}

// Mutate applies Neuron.Mutate, independently with probability mutrate, to
// every individual from index 2*NumBreed to the end of the pool.
func (p *SubPopulation) Mutate(mutrate float64, rng *RNG) {
	for i := 2 * p.NumBreed; i < len(p.Individuals); i++ {
		if rng.Float64() < mutrate {
			p.Individuals[i].Mutate(rng)
		}
	}
}

// Deltify restarts the whole pool as Cauchy(0.3) perturbations of best,
// the burst-mutation "delta coding" step. Two successive calls each
// perturb fresh from best, not from the intervening state.
func (p *SubPopulation) Deltify(best *Neuron, rng *RNG) {
	for _, ind := range p.Individuals {
		ind.PerturbFrom(best, 0.3, rng)
	}
}

// EvalReset zeros fitness and trial counts on every individual, run at the
// start of each generation.
func (p *SubPopulation) EvalReset() {
	for _, ind := range p.Individuals {
		ind.ResetFitness()
	}
}

// PopIndividual removes and returns the last individual in the pool.
func (p *SubPopulation) PopIndividual() *Neuron {
	if len(p.Individuals) == 0 {
		return nil
	}
	last := p.Individuals[len(p.Individuals)-1]
	p.Individuals = p.Individuals[:len(p.Individuals)-1]
	return last
}

// PushIndividual appends n to the pool, maintaining MaxID.
func (p *SubPopulation) PushIndividual(n *Neuron) {
	if n.ID > p.MaxID {
		p.MaxID = n.ID
	}
	p.Individuals = append(p.Individuals, n)
}

// AverageFitness returns the mean effective fitness across the pool.
func (p *SubPopulation) AverageFitness() float64 {
	if len(p.Individuals) == 0 {
		return 0
	}
	sum := 0.0
	for _, ind := range p.Individuals {
		sum += ind.EffectiveFitness()
	}
	return sum / float64(len(p.Individuals))
}

// StaleCount reports how many individuals carry an ID below MaxID. MaxID is
// set when the pool is built and raised only by PushIndividual, while
// Breed, Mutate and Deltify give every neuron they write a fresh, higher
// ID; so this counts the individuals that no breeding, mutation or
// burst-mutation pass has replaced or changed since then (the individual
// holding MaxID itself is not counted). Surfaced for telemetry only.
func (p *SubPopulation) StaleCount() int {
	stale := 0
	for _, ind := range p.Individuals {
		if ind.ID < p.MaxID {
			stale++
		}
	}
	return stale
}

// Breed applies crossover across the top quartile, writing two offspring
// per mating into the pool at positions NumBreed+2i and NumBreed+2i+1, for
// i ranging over [0, NumBreed) (spec.md §4.6 step 4). Parent A is the
// quartile member at rank i (deterministic); parent B is drawn uniformly
// at random from the same quartile.
func (p *SubPopulation) Breed(crossover CrossoverFunc, mutrate float64, rng *RNG) {
	if p.NumBreed == 0 {
		return
	}
	for i := 0; i < p.NumBreed; i++ {
		parentA := p.Individuals[i]
		j := rng.Intn(p.NumBreed)
		parentB := p.Individuals[j]
		child1, child2 := crossover(parentA, parentB, mutrate, rng)
		dst1 := p.NumBreed + 2*i
		dst2 := p.NumBreed + 2*i + 1
		if dst1 < len(p.Individuals) {
			p.Individuals[dst1] = child1
		}
		if dst2 < len(p.Individuals) {
			p.Individuals[dst2] = child2
		}
	}
}

// Neuron panics with a diagnostic on an out-of-range rank; a bounds
// violation inside the core is a programmer error.
func (p *SubPopulation) Neuron(rank int) *Neuron {
	if rank < 0 || rank >= len(p.Individuals) {
		panic(fmt.Sprintf("espgo: SubPopulation.Neuron: rank %d out of range [0,%d): %v", rank, len(p.Individuals), ErrBoundsViolation))
	}
	return p.Individuals[rank]
}
