package espgo

import (
	"math"
	"sync"

	"golang.org/x/exp/rand"
)

// RNG wraps a single seeded PRNG. The reference ESP implementation reseeds
// a distribution from wall-clock time at every call site, which correlates
// sequences drawn within the same second (spec.md §9's flagged bug). This
// type is instead seeded exactly once, either by the caller or by the
// controller at construction, and never reseeded.
type RNG struct {
	mu  sync.Mutex
	src *rand.Rand
}

// NewRNG returns an RNG seeded deterministically from seed.
func NewRNG(seed int64) *RNG {
	return &RNG{src: rand.New(rand.NewSource(uint64(seed)))}
}

// Float64 returns a uniform draw in [0,1).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.Float64()
}

// Intn returns a uniform draw in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.Intn(n)
}

// Uniform returns a uniform draw in [lo,hi).
func (r *RNG) Uniform(lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// Cauchy draws from a zero-centered Cauchy distribution with the given
// scale, rejecting and redrawing any sample whose magnitude exceeds 10
// (spec.md §4.1): u ~ Uniform(0,1) \ {0.5}, v = scale*tan(pi*u).
func (r *RNG) Cauchy(scale float64) float64 {
	for {
		u := r.Float64()
		if u == 0.5 {
			continue
		}
		v := scale * math.Tan(math.Pi*u)
		if math.Abs(v) <= 10 {
			return v
		}
	}
}

// Derive returns a new RNG deterministically seeded with seed plus an
// integer offset, used to hand each worker goroutine its own
// stream without correlating sequences (spec.md §5, §9).
func Derive(seed int64, offset int) *RNG {
	return NewRNG(seed + int64(offset))
}
