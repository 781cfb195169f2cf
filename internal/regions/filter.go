package regions

// Stats breaks down how a sample fared against the posterior filter.
type Stats struct {
	Sampled    int
	Consistent int // contains the observation
	InBounds   int // lies strictly inside the plotting range
	Retained   int // both of the above
}

// AcceptanceRate is Retained/Sampled, or 0 for an empty sample.
func (s Stats) AcceptanceRate() float64 {
	if s.Sampled == 0 {
		return 0
	}
	return float64(s.Retained) / float64(s.Sampled)
}

// Posterior returns the regions that contain obs strictly on both axes and
// whose edges all lie strictly inside (-bound, bound). Under weak sampling
// every surviving region is equally probable, so filtering is the whole
// Bayesian update. Input order is preserved.
func Posterior(sample []Region, obs Point, bound float64) []Region {
	hyps, _ := PosteriorWithStats(sample, obs, bound)
	return hyps
}

// PosteriorWithStats is Posterior plus a rejection breakdown.
func PosteriorWithStats(sample []Region, obs Point, bound float64) ([]Region, Stats) {
	st := Stats{Sampled: len(sample)}
	hyps := make([]Region, 0, len(sample)/4)
	for _, r := range sample {
		consistent := r.Contains(obs)
		inBounds := r.Within(bound)
		if consistent {
			st.Consistent++
		}
		if inBounds {
			st.InBounds++
		}
		if consistent && inBounds {
			hyps = append(hyps, r)
		}
	}
	st.Retained = len(hyps)
	return hyps, st
}
