// Package weightgen generates synthetic weight distributions for demos and tests.
package weightgen

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
)

// ErrUnknownDistribution is returned by ByName for unrecognized distribution names.
var ErrUnknownDistribution = errors.New("unknown weight distribution")

// Generator generates item weights based on a distribution pattern.
type Generator interface {
	// Generate returns weights for the specified number of items.
	Generate(n int) []int64
}

// ByName returns the generator registered under name.
//
// Parameters:
//   - name: "parabola", "harmonic", "poisson", "uniform" or "exponential"
//   - seed: Seed for randomized distributions (ignored by deterministic ones)
//
// Returns:
//   - Generator: Generator with default parameters
//   - error: ErrUnknownDistribution for any other name
func ByName(name string, seed uint64) (Generator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "parabola":
		return NewParabola(), nil
	case "harmonic":
		return NewHarmonic(), nil
	case "poisson":
		return NewPoisson(8, seed), nil
	case "uniform":
		return NewUniform(100), nil
	case "exponential":
		return NewExponential(0.05, 100, 1), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDistribution, name)
	}
}

// Parabola generates weights i²-8i+113, a shallow parabola with its minimum at i=4.
type Parabola struct{}

// NewParabola creates a parabola generator.
func NewParabola() *Parabola {
	return &Parabola{}
}

// Generate returns n parabola weights.
func (g *Parabola) Generate(n int) []int64 {
	weights := make([]int64, n)
	for i := range n {
		x := int64(i)
		weights[i] = x*x - 8*x + 113
	}

	return weights
}

// Harmonic generates weights |10000/(i²-10.5)|: a few heavy items around
// i=3 and a long tail of light ones.
type Harmonic struct{}

// NewHarmonic creates a harmonic generator.
func NewHarmonic() *Harmonic {
	return &Harmonic{}
}

// Generate returns n harmonic weights.
func (g *Harmonic) Generate(n int) []int64 {
	weights := make([]int64, n)
	for i := range n {
		x := float64(i)
		weights[i] = int64(math.Abs(10000 / (x*x - 10.5)))
	}

	return weights
}

// Poisson generates Poisson-distributed weights from a seeded PCG source,
// so the same seed always yields the same weights.
type Poisson struct {
	lambda float64
	seed   uint64
}

// NewPoisson creates a Poisson generator.
//
// Parameters:
//   - lambda: Mean of the distribution (defaults to 8 if not positive)
//   - seed: PCG seed
func NewPoisson(lambda float64, seed uint64) *Poisson {
	if lambda <= 0 {
		lambda = 8
	}

	return &Poisson{lambda: lambda, seed: seed}
}

// Generate returns n Poisson-distributed weights.
func (g *Poisson) Generate(n int) []int64 {
	rng := rand.New(rand.NewPCG(g.seed, g.seed^0x9e3779b97f4a7c15))
	limit := math.Exp(-g.lambda)

	weights := make([]int64, n)
	for i := range n {
		// Knuth: count uniform draws until their product drops below e^-lambda.
		k := int64(0)
		p := rng.Float64()
		for p > limit {
			k++
			p *= rng.Float64()
		}
		weights[i] = k
	}

	return weights
}

// Uniform generates identical weights.
type Uniform struct {
	weight int64
}

// NewUniform creates a uniform generator.
//
// Parameters:
//   - weight: Weight assigned to all items (defaults to 1 if not positive)
func NewUniform(weight int64) *Uniform {
	if weight <= 0 {
		weight = 1
	}

	return &Uniform{weight: weight}
}

// Generate returns n equal weights.
func (g *Uniform) Generate(n int) []int64 {
	weights := make([]int64, n)
	for i := range n {
		weights[i] = g.weight
	}

	return weights
}

// Exponential gives a small share of the items an extreme weight and the rest
// a normal weight.
type Exponential struct {
	extremePercent float64 // 0.05 = 5% of items
	extremeWeight  int64
	normalWeight   int64
}

// NewExponential creates an exponential generator.
//
// Parameters:
//   - extremePercent: Share of items that are extreme (0.0-1.0, defaults to 0.05)
//   - extremeWeight: Weight for extreme items (defaults to 100)
//   - normalWeight: Weight for normal items (defaults to 1)
func NewExponential(extremePercent float64, extremeWeight, normalWeight int64) *Exponential {
	if extremePercent <= 0 || extremePercent >= 1 {
		extremePercent = 0.05
	}
	if extremeWeight <= 0 {
		extremeWeight = 100
	}
	if normalWeight <= 0 {
		normalWeight = 1
	}

	return &Exponential{
		extremePercent: extremePercent,
		extremeWeight:  extremeWeight,
		normalWeight:   normalWeight,
	}
}

// Generate returns n weights; the first extremePercent of them are extreme.
func (g *Exponential) Generate(n int) []int64 {
	weights := make([]int64, n)
	extremeCount := int(float64(n) * g.extremePercent)

	for i := range n {
		if i < extremeCount {
			weights[i] = g.extremeWeight
		} else {
			weights[i] = g.normalWeight
		}
	}

	return weights
}
