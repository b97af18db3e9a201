package espgo

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// creditEntry buffers one neuron's pending fitness credit from a single
// trial, deferred until the rendezvous point so concurrent workers never
// write to a shared neuron directly (spec.md §5's preferred option: a
// per-worker local buffer reduced after all workers join, which removes
// contention and preserves determinism given a seeded RNG).
type creditEntry struct {
	neuron *Neuron
	delta  float64
}

// trialResult is one worker's verdict across its share of trials: the
// buffered credit to apply at rendezvous, the best network it assembled
// (an owned clone, so it outlives the trial's borrowed neurons) and that
// network's stored (post-transform) fitness, and the first task error it
// hit, if any.
type trialResult struct {
	credits  []creditEntry
	best     *Network
	bestRaw  float64
	bestStored float64
	taskErr  error
}

const negInf = -1e308

// RunTrialPhase runs numTrials independent assemble-evaluate-credit cycles
// (spec.md §4.6 step 2) across numWorkers goroutines, each with its own
// *RNG (never shared, per spec.md §9's reproducibility fix). It returns
// the best-scoring network assembled across all trials, ranked by its
// stored (post-minimize-transform) fitness as the generation's own sort
// order ranks neurons — along with that network's raw fitness and the
// first task error encountered, if any.
//
// Each worker builds its own network per trial from the shared
// sub-populations; neuron weight reads are concurrent and lock-free since
// no writes occur to weights during this phase. The evaluation counter is
// an atomic increment; credit assignment is buffered locally per worker
// and applied single-threaded after every worker has returned, so
// rendezvous is the only serialization point.
func RunTrialPhase(
	pools []*SubPopulation,
	variant Variant,
	numInputs, numOutputs, numTrials, numWorkers int,
	task Task,
	minimize bool,
	activateFn ActivationFunc,
	evaluations *atomic.Int64,
	stop *atomic.Bool,
	rngs []*RNG,
) (bestNet *Network, bestRaw float64, taskErr error) {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers > numTrials {
		numWorkers = numTrials
	}
	if numWorkers < 1 {
		numWorkers = 1
	}
	numHidden := len(pools)

	var nextTrial atomic.Int64
	results := make([]trialResult, numWorkers)
	var wg sync.WaitGroup
	wg.Add(numWorkers)

	for w := 0; w < numWorkers; w++ {
		go func(worker int) {
			defer wg.Done()
			rng := rngs[worker]
			res := &results[worker]
			res.bestStored = negInf
			for {
				if stop.Load() {
					return
				}
				trial := nextTrial.Add(1) - 1
				if trial >= int64(numTrials) {
					return
				}

				net := NewNetwork(variant, numInputs, numHidden, numOutputs)
				if activateFn != nil {
					net.ActivateFn = activateFn
				}
				net.AssembleFrom(pools, rng)

				raw, err := EvaluateNetwork(net, task, minimize, evaluations)
				if err != nil && res.taskErr == nil {
					res.taskErr = err
				}
				for _, n := range net.HiddenUnits {
					res.credits = append(res.credits, creditEntry{neuron: n, delta: net.FitnessSum})
				}
				if net.FitnessSum > res.bestStored {
					res.bestStored = net.FitnessSum
					res.bestRaw = raw
					res.best = net.Clone()
				}
			}
		}(w)
	}
	wg.Wait()

	bestScore := negInf
	for _, res := range results {
		for _, c := range res.credits {
			c.neuron.AddFitness(c.delta)
		}
		if res.taskErr != nil && taskErr == nil {
			taskErr = res.taskErr
		}
		if res.best != nil && res.bestStored > bestScore {
			bestScore = res.bestStored
			bestNet = res.best
			bestRaw = res.bestRaw
		}
	}
	return bestNet, bestRaw, taskErr
}
