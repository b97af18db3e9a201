package espgo

import (
	"fmt"
	"sync/atomic"
)

// EvaluateNetwork is the bridge between a trial and the fitness model
// (spec.md §4.5): it increments the shared evaluation counter, resets the
// network's activation state, delegates to the task for a raw fitness,
// applies the minimize transform to the stored fitness, and returns the
// raw, untransformed value to the caller. A task error yields a raw
// fitness of zero (§7's "task failure … surfaced as a fitness of zero") and
// a wrapped error for the caller to log; it does not abort the trial.
func EvaluateNetwork(net *Network, task Task, minimize bool, evaluations *atomic.Int64) (float64, error) {
	evaluations.Add(1)
	net.ResetActivation()

	raw, evalErr := task.EvalNet(net)
	if evalErr != nil {
		raw = 0
		evalErr = fmt.Errorf("evaluate network: %w: %v", ErrTaskFailure, evalErr)
	}

	f := raw
	if minimize {
		f = 1.0 / (raw + 1.0)
	}
	net.FitnessSum += f
	net.Trials++

	return raw, evalErr
}
