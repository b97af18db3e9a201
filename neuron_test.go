package espgo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNeuronCreateRange(t *testing.T) {
	rng := NewRNG(1)
	n := NewNeuron(8, rng)
	require.Len(t, n.Weight, 8)
	for _, w := range n.Weight {
		assert.GreaterOrEqual(t, w, -6.0)
		assert.Less(t, w, 6.0)
	}
	assert.Equal(t, 0, n.Trials)
	assert.Equal(t, noParent, n.Parent1)
}

func TestNeuronEffectiveFitness(t *testing.T) {
	n := &Neuron{}
	n.AddFitness(4)
	assert.Equal(t, 4.0, n.EffectiveFitness())
	n.AddFitness(6)
	assert.InDelta(t, 5.0, n.EffectiveFitness(), 1e-9)
}

func TestNeuronSetWeightRegeneratesID(t *testing.T) {
	rng := NewRNG(2)
	n := NewNeuron(4, rng)
	before := n.ID
	n.SetWeight(0, 3.0)
	assert.NotEqual(t, before, n.ID)
	assert.Equal(t, 3.0, n.Weight[0])
}

func TestNeuronSetWeightOutOfRangePanics(t *testing.T) {
	rng := NewRNG(3)
	n := NewNeuron(2, rng)
	assert.Panics(t, func() { n.SetWeight(5, 1.0) })
}

func TestNeuronAddRemoveConnection(t *testing.T) {
	rng := NewRNG(4)
	n := NewNeuron(3, rng)
	n.AddConnection(1)
	require.Len(t, n.Weight, 4)
	assert.Equal(t, 1.0, n.Weight[1])
	n.RemoveConnection(1)
	require.Len(t, n.Weight, 3)
}

func TestNeuronPerturbFromResetsFitness(t *testing.T) {
	rng := NewRNG(5)
	champion := NewNeuron(4, rng)
	target := NewNeuron(4, rng)
	target.AddFitness(10)
	target.PerturbFrom(champion, 0.3, rng)
	assert.Equal(t, 0.0, target.FitnessSum)
	assert.Equal(t, 0, target.Trials)
	for i := range target.Weight {
		assert.NotEqual(t, champion.Weight[i], target.Weight[i])
	}
}

func TestNeuronEqual(t *testing.T) {
	a := &Neuron{Weight: []float64{1, 2, 3}}
	b := &Neuron{Weight: []float64{1, 2, 3}}
	c := &Neuron{Weight: []float64{1, 2, 4}}
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestCauchyRejectsBeyondTen(t *testing.T) {
	rng := NewRNG(6)
	for i := 0; i < 1000; i++ {
		v := rng.Cauchy(0.3)
		assert.LessOrEqual(t, v, 10.0)
		assert.GreaterOrEqual(t, v, -10.0)
	}
}
