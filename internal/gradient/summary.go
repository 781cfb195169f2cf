package gradient

import (
	"fmt"

	"github.com/banshee-data/consequential-regions/internal/regions"
	"gonum.org/v1/gonum/stat"
)

// Summary describes the retained hypothesis population.
type Summary struct {
	Sampled  int
	Retained int

	MeanWidth, StdWidth   float64
	MeanHeight, StdHeight float64
}

// AcceptanceRate is Retained/Sampled, or 0 when nothing was sampled.
func (s Summary) AcceptanceRate() float64 {
	if s.Sampled == 0 {
		return 0
	}
	return float64(s.Retained) / float64(s.Sampled)
}

func (s Summary) String() string {
	return fmt.Sprintf("retained=%d/%d (%.2f%%) width=%.3f±%.3f height=%.3f±%.3f",
		s.Retained, s.Sampled, 100*s.AcceptanceRate(),
		s.MeanWidth, s.StdWidth, s.MeanHeight, s.StdHeight)
}

// Summarize computes population statistics for hyps, out of sampled draws.
// Statistics are left at zero for an empty set.
func Summarize(sampled int, hyps []regions.Region) Summary {
	s := Summary{Sampled: sampled, Retained: len(hyps)}
	if len(hyps) == 0 {
		return s
	}

	w := make([]float64, len(hyps))
	h := make([]float64, len(hyps))
	for i, r := range hyps {
		w[i] = r.LenX
		h[i] = r.LenY
	}
	s.MeanWidth, s.StdWidth = meanStd(w)
	s.MeanHeight, s.StdHeight = meanStd(h)
	return s
}

// meanStd wraps stat.MeanStdDev, which is NaN for a single value.
func meanStd(x []float64) (mean, std float64) {
	if len(x) == 1 {
		return x[0], 0
	}
	return stat.MeanStdDev(x, nil)
}
