package regions

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Prior describes the generative distribution over candidate regions.
// Centres are uniform on [-Range, Range] per axis. Widths and heights are
// independent gamma variates in shape/rate form (mean = Shape/Rate).
type Prior struct {
	Range       float64
	WidthShape  float64
	WidthRate   float64
	HeightShape float64
	HeightRate  float64
}

// Validate checks that every hyperparameter is finite and positive.
func (p Prior) Validate() error {
	checks := []struct {
		name string
		v    float64
	}{
		{"range", p.Range},
		{"width shape", p.WidthShape},
		{"width rate", p.WidthRate},
		{"height shape", p.HeightShape},
		{"height rate", p.HeightRate},
	}
	for _, c := range checks {
		if math.IsNaN(c.v) || math.IsInf(c.v, 0) || c.v <= 0 {
			return fmt.Errorf("prior %s must be a positive finite number, got %v", c.name, c.v)
		}
	}
	return nil
}

// Sampler draws candidate regions from a Prior using a single seeded
// pseudorandom source, so a given seed always yields the same regions.
type Sampler struct {
	prior Prior

	midX, midY distuv.Uniform
	lenX, lenY distuv.Gamma
	drawnSoFar int
}

// NewSampler returns a Sampler for prior seeded with seed.
func NewSampler(prior Prior, seed uint64) (*Sampler, error) {
	if err := prior.Validate(); err != nil {
		return nil, err
	}

	// gonum's Gamma takes Alpha as the shape and Beta as the rate, which is
	// the parameterisation Prior uses.
	src := rand.NewPCG(seed, seed)
	return &Sampler{
		prior: prior,
		midX:  distuv.Uniform{Min: -prior.Range, Max: prior.Range, Src: src},
		midY:  distuv.Uniform{Min: -prior.Range, Max: prior.Range, Src: src},
		lenX:  distuv.Gamma{Alpha: prior.WidthShape, Beta: prior.WidthRate, Src: src},
		lenY:  distuv.Gamma{Alpha: prior.HeightShape, Beta: prior.HeightRate, Src: src},
	}, nil
}

// Prior returns the prior the sampler was built with.
func (s *Sampler) Prior() Prior { return s.prior }

// Drawn returns the number of regions produced by this sampler so far.
func (s *Sampler) Drawn() int { return s.drawnSoFar }

// Sample draws n regions. Parameters are drawn column by column: all n
// x-centres, then all y-centres, then widths, then heights.
func (s *Sampler) Sample(n int) ([]Region, error) {
	if n < 0 {
		return nil, errors.New("sample count must be non-negative")
	}

	midX := drawN(s.midX, n)
	midY := drawN(s.midY, n)
	lenX := drawN(s.lenX, n)
	lenY := drawN(s.lenY, n)

	out := make([]Region, n)
	for i := range out {
		out[i] = NewRegion(midX[i], midY[i], lenX[i], lenY[i])
	}
	s.drawnSoFar += n
	return out, nil
}

type rander interface {
	Rand() float64
}

func drawN(d rander, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = d.Rand()
	}
	return out
}
