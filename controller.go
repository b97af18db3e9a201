package espgo

import (
	"fmt"
	"runtime"
	"sync/atomic"
)

// Controller owns the sub-populations, the task, and the generation loop
// (spec.md §3's "Evolution controller", §4.6). It is the single-threaded
// orchestrator: only RunTrialPhase's inner loop runs concurrently: sort,
// breed, mutate, burst, and topology changes all happen on the caller's
// goroutine between trial phases.
type Controller struct {
	SubPopulations []*SubPopulation
	Variant        Variant
	NumInputs      int
	NumOutputs     int
	PoolSize       int
	Task           Task
	Minimize       bool
	MutationRate   float64
	BurstThreshold int
	NumWorkers     int
	Crossover      CrossoverFunc
	ActivateFn     ActivationFunc

	Evaluations atomic.Int64
	Budget      int64
	stop        atomic.Bool

	BestEver        *Network
	BestEverFitness float64

	StagnationCounter    int
	BurstStagnationCount int

	seed int64
	rng  *RNG
	Debug bool
}

// ControllerConfig collects the tunables NewController needs; it mirrors
// internal/config's run configuration one level down from TOML.
type ControllerConfig struct {
	HiddenUnits    int
	PoolSize       int
	NumInputs      int
	NumOutputs     int
	Variant        Variant
	Task           Task
	Minimize       bool
	MutationRate   float64
	BurstThreshold int
	Budget         int64
	NumWorkers     int
	Seed           int64
	Crossover      CrossoverFunc
	ActivateFn     ActivationFunc // optional override; nil defaults to Tanh
}

// NewController allocates HiddenUnits sub-populations of PoolSize neurons
// each, sized for the variant's gene layout, and seeds the controller's
// single RNG once from cfg.Seed — per spec.md §9's reproducibility fix,
// this RNG (and every worker RNG derived from it) is never reseeded from
// wall-clock time afterward.
func NewController(cfg ControllerConfig) *Controller {
	rng := NewRNG(cfg.Seed)
	geneSize := cfg.NumInputs + cfg.Variant.FeedbackWidth(cfg.HiddenUnits)
	pools := make([]*SubPopulation, cfg.HiddenUnits)
	for k := range pools {
		pools[k] = NewSubPopulation(cfg.PoolSize, geneSize, true, rng)
	}
	crossover := cfg.Crossover
	if crossover == nil {
		crossover = OnePointNeuronCrossover
	}
	activateFn := cfg.ActivateFn
	if activateFn == nil {
		activateFn = Tanh
	}
	c := &Controller{
		SubPopulations: pools,
		Variant:        cfg.Variant,
		NumInputs:      cfg.NumInputs,
		NumOutputs:     cfg.NumOutputs,
		PoolSize:       cfg.PoolSize,
		Task:           cfg.Task,
		Minimize:       cfg.Minimize,
		MutationRate:   cfg.MutationRate,
		BurstThreshold: cfg.BurstThreshold,
		NumWorkers:     cfg.NumWorkers,
		Crossover:      crossover,
		ActivateFn:     activateFn,
		Budget:         cfg.Budget,
		seed:           cfg.Seed,
		rng:            rng,
		BestEverFitness: negInf,
	}
	return c
}

// Stop sets the atomic cancellation flag, checked between trials and
// between generations (spec.md §5). Mid-trial cancellation is not
// supported.
func (c *Controller) Stop() {
	c.stop.Store(true)
}

// Done reports whether the evaluation budget has been exhausted or Stop
// has been called.
func (c *Controller) Done() bool {
	return c.stop.Load() || c.Evaluations.Load() >= c.Budget
}

// workerRNGs derives one RNG per worker from the controller's seed by a
// fixed offset, so a given seed always reproduces the same sequence for a
// given worker count (spec.md §9). NumWorkers <= 0 yields runtime.NumCPU()
// RNGs, matching RunTrialPhase's default worker count.
func (c *Controller) workerRNGs() []*RNG {
	n := c.NumWorkers
	if n <= 0 {
		n = runtime.NumCPU()
	}
	rngs := make([]*RNG, n)
	for i := range rngs {
		rngs[i] = Derive(c.seed, i+1)
	}
	return rngs
}

// RunGeneration executes one full generation (spec.md §4.6): reset
// fitness, run the trial phase, sort, breed, mutate, and handle
// stagnation/burst mutation and incremental task progression. It returns
// the raw fitness of the best network assembled this generation.
func (c *Controller) RunGeneration(numTrials int) (float64, error) {
	for _, p := range c.SubPopulations {
		p.EvalReset()
	}

	bestNet, bestRaw, taskErr := RunTrialPhase(
		c.SubPopulations, c.Variant, c.NumInputs, c.NumOutputs,
		numTrials, c.NumWorkers, c.Task, c.Minimize, c.ActivateFn,
		&c.Evaluations, &c.stop, c.workerRNGs(),
	)

	improved := bestNet != nil && bestNet.FitnessSum > c.BestEverFitness
	if improved {
		c.BestEverFitness = bestNet.FitnessSum
		c.BestEver = bestNet
		c.StagnationCounter = 0
		c.BurstStagnationCount = 0
	} else {
		c.StagnationCounter++
	}

	for _, p := range c.SubPopulations {
		p.Sort()
	}

	for _, p := range c.SubPopulations {
		p.Breed(c.Crossover, c.MutationRate, c.rng)
	}
	for _, p := range c.SubPopulations {
		p.Mutate(c.MutationRate, c.rng)
	}

	if c.BurstThreshold > 0 && c.StagnationCounter >= c.BurstThreshold {
		c.burstMutate()
	}

	if c.Task.Incremental() && c.BestEver != nil && bestRaw >= c.Task.Tolerance() {
		if c.Debug {
			fmt.Printf("espgo: task %s tolerance reached, advancing\n", c.Task.Name())
		}
		c.Task.NextTask()
	}

	return bestRaw, taskErr
}

// burstMutate first tracks whether burst mutation itself has stagnated
// twice in a row, triggering adaptive topology change while the pools
// still carry this generation's fitness (so the worst-ranked slot can be
// told apart), then reinitializes every sub-population as Cauchy
// perturbations of the matching slot in the champion network (spec.md
// §4.6 step 6).
func (c *Controller) burstMutate() {
	if c.BestEver == nil {
		c.StagnationCounter = 0
		return
	}
	c.BurstStagnationCount++
	if c.BurstStagnationCount >= 2 {
		c.adaptiveTopologyChange()
		c.BurstStagnationCount = 0
	}
	for k, p := range c.SubPopulations {
		champion, err := c.BestEver.Neuron(k)
		if err != nil || champion == nil {
			continue
		}
		p.Deltify(champion, c.rng)
	}
	c.StagnationCounter = 0
}

// adaptiveTopologyChange either grows a new hidden-unit sub-population or
// removes the worst-ranked one, respecting the variant's MinUnits floor
// (spec.md §4.6 step 6's "adaptive topology change").
func (c *Controller) adaptiveTopologyChange() {
	if len(c.SubPopulations) > c.Variant.MinUnits() && c.rng.Float64() < 0.5 {
		c.removeWorstHiddenUnit()
		return
	}
	c.addHiddenUnit()
}

// addHiddenUnit grows every pre-existing sub-population's individuals by
// one gene (mirroring Network.AddNeuron's per-neuron growth, network.go)
// before appending the new slot's pool, so the live populations that
// RunTrialPhase actually assembles and breeds from stay at the new gene
// size, not just c.BestEver's snapshot.
func (c *Controller) addHiddenUnit() {
	oldH := len(c.SubPopulations)
	oldFeedback := c.Variant.FeedbackWidth(oldH)
	newFeedback := c.Variant.FeedbackWidth(oldH + 1)
	if newFeedback > oldFeedback {
		locus := c.NumInputs + oldH
		for _, p := range c.SubPopulations {
			for _, ind := range p.Individuals {
				ind.AddConnection(locus)
			}
		}
	}
	geneSize := c.NumInputs + newFeedback
	newPool := NewSubPopulation(c.PoolSize, geneSize, true, c.rng)
	c.SubPopulations = append(c.SubPopulations, newPool)
	if c.BestEver != nil {
		c.BestEver.AddNeuron(newPool.Individuals[0].Clone(), true)
	}
}

// removeWorstHiddenUnit drops the worst-ranked sub-population and, for
// recurrent variants, erases the matching feedback gene from every
// remaining individual in every other pool (symmetric with addHiddenUnit
// and Network.RemoveNeuron's shrink path, network.go).
func (c *Controller) removeWorstHiddenUnit() {
	worst := 0
	worstFit := c.SubPopulations[0].AverageFitness()
	for k, p := range c.SubPopulations {
		if f := p.AverageFitness(); f < worstFit {
			worstFit = f
			worst = k
		}
	}
	oldH := len(c.SubPopulations)
	oldFeedback := c.Variant.FeedbackWidth(oldH)
	newFeedback := c.Variant.FeedbackWidth(oldH - 1)
	c.SubPopulations = append(c.SubPopulations[:worst], c.SubPopulations[worst+1:]...)
	if newFeedback < oldFeedback {
		locus := c.NumInputs + worst
		for _, p := range c.SubPopulations {
			for _, ind := range p.Individuals {
				ind.RemoveConnection(locus)
			}
		}
	}
	if c.BestEver != nil && worst < len(c.BestEver.HiddenUnits) {
		c.BestEver.RemoveNeuron(worst)
	}
}

// Run drives generations of numTrials each until the evaluation budget is
// exhausted or Stop is called, returning the final champion.
func (c *Controller) Run(numTrials int) (*Network, error) {
	var lastErr error
	for !c.Done() {
		if _, err := c.RunGeneration(numTrials); err != nil {
			lastErr = err
		}
	}
	return c.BestEver, lastErr
}

// RunGeneralizationTest evaluates the current champion on the task's
// held-out generalization set, once evolution has converged or terminated
// (SPEC_FULL §6 item 1, supplemented from the original implementation).
func (c *Controller) RunGeneralizationTest() (float64, error) {
	if c.BestEver == nil {
		return 0, fmt.Errorf("espgo: RunGeneralizationTest: no champion network yet")
	}
	return c.Task.GeneralizationTest(c.BestEver)
}
