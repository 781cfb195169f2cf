// Package simulation runs the consequential-region Monte Carlo: draw
// candidate regions from the prior, keep those consistent with the
// observation, and estimate the marginal generalization gradients.
package simulation

import (
	"fmt"

	"github.com/banshee-data/consequential-regions/internal/config"
	"github.com/banshee-data/consequential-regions/internal/gradient"
	"github.com/banshee-data/consequential-regions/internal/monitoring"
	"github.com/banshee-data/consequential-regions/internal/regions"
)

// Params fully determines a run. Two runs with equal Params produce
// identical Results.
type Params struct {
	Samples     int
	Seed        uint64
	GridPoints  int
	Prior       regions.Prior
	Observation regions.Point
}

// ParamsFromConfig builds Params from a SimConfig, observing at the origin.
func ParamsFromConfig(cfg *config.SimConfig) Params {
	return Params{
		Samples:     cfg.GetSamples(),
		Seed:        cfg.GetSeed(),
		GridPoints:  cfg.GetGridPoints(),
		Prior:       cfg.Prior(),
		Observation: regions.Origin,
	}
}

// Result is everything the renderer needs.
type Result struct {
	Params     Params
	Hypotheses []regions.Region
	Stats      regions.Stats
	PX, PY     gradient.Curve
	Summary    gradient.Summary
}

// Range is the half-width of the plotted stimulus space.
func (r *Result) Range() float64 { return r.Params.Prior.Range }

// Run executes sample → filter → estimate.
func Run(p Params) (*Result, error) {
	monitoring.Logf("simulation: samples=%d seed=%d range=%.3g width~Gamma(%.3g, rate %.3g) height~Gamma(%.3g, rate %.3g)",
		p.Samples, p.Seed, p.Prior.Range,
		p.Prior.WidthShape, p.Prior.WidthRate, p.Prior.HeightShape, p.Prior.HeightRate)

	grid, err := gradient.NewGrid(p.Prior.Range, p.GridPoints)
	if err != nil {
		return nil, fmt.Errorf("evaluation grid: %w", err)
	}

	sampler, err := regions.NewSampler(p.Prior, p.Seed)
	if err != nil {
		return nil, fmt.Errorf("region prior: %w", err)
	}

	done := monitoring.Stage("sample")
	sample, err := sampler.Sample(p.Samples)
	done()
	if err != nil {
		return nil, fmt.Errorf("sampling regions: %w", err)
	}

	done = monitoring.Stage("filter")
	hyps, stats := regions.PosteriorWithStats(sample, p.Observation, p.Prior.Range)
	done()
	monitoring.Logf("simulation: %d/%d contain the observation, %d/%d in bounds, %d retained",
		stats.Consistent, stats.Sampled, stats.InBounds, stats.Sampled, stats.Retained)
	if len(hyps) == 0 {
		monitoring.Logf("simulation: warning: no hypotheses survived; gradients will be zero")
	}

	done = monitoring.Stage("estimate")
	px, py := gradient.Estimate(hyps, grid)
	done()

	summary := gradient.Summarize(len(sample), hyps)
	monitoring.Logf("simulation: %s", summary)

	return &Result{
		Params:     p,
		Hypotheses: hyps,
		Stats:      stats,
		PX:         px,
		PY:         py,
		Summary:    summary,
	}, nil
}
