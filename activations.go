package espgo

import "math"

// ActivationFunc is a scalar nonlinearity applied to a hidden unit's
// weighted input sum. Spec.md §1 places concrete activation functions out
// of scope for the core ("a black-box activate(inputs)->outputs
// primitive"); Network.ActivateFn is the seam a caller plugs one into.
// Tanh is the only one the core itself supplies, since it is ESP's
// traditional hidden-unit nonlinearity and the only one any
// SPEC_FULL.md component reaches by default.
type ActivationFunc func(float64) float64

// Tanh is the hyperbolic tangent activation, ESP's traditional default for
// hidden-unit nonlinearity.
func Tanh(x float64) float64 {
	return math.Tanh(x)
}
