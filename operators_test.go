package espgo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOnePointNeuronCrossoverS3(t *testing.T) {
	p1 := &Neuron{Weight: []float64{1, 2, 3, 4}, ID: 1}
	p2 := &Neuron{Weight: []float64{10, 20, 30, 40}, ID: 2}
	rng := NewRNG(25)

	// Drive the actual crossover via the pinned-cut seam to pin c=2,
	// matching spec.md §8 scenario S3, rather than recomputing its
	// expected output independently of the function under test.
	child1, child2 := onePointNeuronCrossoverAt(p1, p2, 2, 0, rng)

	assert.Equal(t, []float64{1, 2, 30, 40}, child1.Weight)
	assert.Equal(t, []float64{10, 20, 3, 4}, child2.Weight)
}

func TestOnePointNeuronCrossoverLengthLaw(t *testing.T) {
	rng := NewRNG(20)
	p1 := &Neuron{Weight: []float64{1, 2, 3, 4, 5}, ID: 1}
	p2 := &Neuron{Weight: []float64{6, 7, 8}, ID: 2}
	c1, c2 := OnePointNeuronCrossover(p1, p2, 0, rng)
	assert.Equal(t, len(p1.Weight)+len(p2.Weight), len(c1.Weight)+len(c2.Weight))
}

func TestArithmeticNeuronCrossoverS4(t *testing.T) {
	p1 := &Neuron{Weight: []float64{0, 0, 0}, ID: 1}
	p2 := &Neuron{Weight: []float64{1, 1, 1}, ID: 2}
	rng := NewRNG(21)
	c1, c2 := ArithmeticNeuronCrossover(p1, p2, 0, rng)
	assert.InDeltaSlice(t, []float64{0.75, 0.75, 0.75}, c1.Weight, 1e-9)
	assert.InDeltaSlice(t, []float64{0.25, 0.25, 0.25}, c2.Weight, 1e-9)
}

func TestArithmeticCrossoverSymmetry(t *testing.T) {
	p1 := &Neuron{Weight: []float64{2, -1, 5}, ID: 1}
	p2 := &Neuron{Weight: []float64{-3, 4, 1}, ID: 2}
	rng := NewRNG(22)
	c1, c2 := ArithmeticNeuronCrossover(p1, p2, 0, rng)
	for i := range p1.Weight {
		assert.InDelta(t, p1.Weight[i]+p2.Weight[i], c1.Weight[i]+c2.Weight[i], 1e-9)
	}
}

func TestEirCrossoverPreservesLength(t *testing.T) {
	p1 := &Neuron{Weight: []float64{1, 2, 3}, ID: 1}
	p2 := &Neuron{Weight: []float64{4, 5, 6}, ID: 2}
	rng := NewRNG(23)
	c1, c2 := EirNeuronCrossover(p1, p2, 0, rng)
	assert.Len(t, c1.Weight, 3)
	assert.Len(t, c2.Weight, 3)
}

func TestCrossoverResetsFitnessAndRecordsParents(t *testing.T) {
	p1 := &Neuron{Weight: []float64{1, 2}, ID: 7}
	p1.AddFitness(100)
	p2 := &Neuron{Weight: []float64{3, 4}, ID: 9}
	rng := NewRNG(24)
	c1, c2 := OnePointNeuronCrossover(p1, p2, 0, rng)
	assert.Equal(t, 0.0, c1.FitnessSum)
	assert.Equal(t, 0, c1.Trials)
	assert.Equal(t, int64(7), c1.Parent1)
	assert.Equal(t, int64(9), c1.Parent2)
	assert.Equal(t, int64(9), c2.Parent1)
	assert.Equal(t, int64(7), c2.Parent2)
}
