package workload

import (
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"
)

// ArrivalSpec configures the inter-arrival process.
type ArrivalSpec struct {
	Process string   `yaml:"process" json:"process"`
	CV      *float64 `yaml:"cv,omitempty" json:"cv,omitempty"`
}

// ArrivalSampler generates gaps between consecutive arrivals.
type ArrivalSampler interface {
	// SampleIAT returns the next inter-arrival time in ticks (>= 0).
	// A zero gap means the next process arrives together with the previous one.
	SampleIAT(rng *rand.Rand) int64
}

func wholeTicks(v float64) int64 {
	if math.IsInf(v, 0) || math.IsNaN(v) || v < 0 {
		return 0
	}
	return int64(math.Round(v))
}

// PoissonSampler generates exponentially distributed gaps (CV=1).
type PoissonSampler struct {
	rate float64 // arrivals per tick
}

func (s *PoissonSampler) SampleIAT(rng *rand.Rand) int64 {
	return wholeTicks(rng.ExpFloat64() / s.rate)
}

// GammaSampler generates Gamma-distributed gaps. CV > 1 produces bursts.
// Uses Marsaglia-Tsang for shape >= 1 and a boost for shape < 1.
type GammaSampler struct {
	shape float64 // 1/CV²
	scale float64 // CV²/rate in ticks
}

func (s *GammaSampler) SampleIAT(rng *rand.Rand) int64 {
	return wholeTicks(gammaRand(rng, s.shape, s.scale))
}

// gammaRand samples from Gamma(shape, scale).
// For shape < 1: Gamma(shape) = Gamma(shape+1) * U^(1/shape).
func gammaRand(rng *rand.Rand, shape, scale float64) float64 {
	if shape < 1.0 {
		u := rng.Float64()
		return gammaRand(rng, shape+1.0, scale) * math.Pow(u, 1.0/shape)
	}

	d := shape - 1.0/3.0
	c := 1.0 / math.Sqrt(9.0*d)
	for {
		var x, v float64
		for {
			x = rng.NormFloat64()
			v = 1.0 + c*x
			if v > 0 {
				break
			}
		}
		v = v * v * v
		u := rng.Float64()

		// Squeeze test
		if u < 1.0-0.0331*(x*x)*(x*x) {
			return d * v * scale
		}
		if math.Log(u) < 0.5*x*x+d*(1.0-v+math.Log(v)) {
			return d * v * scale
		}
	}
}

// WeibullSampler generates Weibull-distributed gaps.
type WeibullSampler struct {
	shape float64 // k
	scale float64 // λ in ticks
}

func (s *WeibullSampler) SampleIAT(rng *rand.Rand) int64 {
	// Inverse CDF: scale * (-ln(U))^(1/shape)
	u := rng.Float64()
	if u == 0 {
		u = math.SmallestNonzeroFloat64
	}
	return wholeTicks(s.scale * math.Pow(-math.Log(u), 1.0/s.shape))
}

// ConstantArrivalSampler spaces arrivals evenly at 1/rate ticks.
type ConstantArrivalSampler struct {
	gap int64
}

func (s *ConstantArrivalSampler) SampleIAT(_ *rand.Rand) int64 {
	return s.gap
}

// NewArrivalSampler creates an ArrivalSampler for the given mean rate in
// arrivals per tick. Unknown processes fall back to Poisson.
func NewArrivalSampler(spec ArrivalSpec, ratePerTick float64) ArrivalSampler {
	if ratePerTick < 1e-15 {
		ratePerTick = 1e-15
	}
	cv := 1.0
	if spec.CV != nil && *spec.CV > 0 {
		cv = *spec.CV
	}
	mean := 1.0 / ratePerTick

	switch spec.Process {
	case "poisson", "":
		return &PoissonSampler{rate: ratePerTick}

	case "constant":
		return &ConstantArrivalSampler{gap: wholeTicks(mean)}

	case "gamma":
		// shape = 1/CV², scale = mean * CV²
		shape := 1.0 / (cv * cv)
		if shape < 0.01 {
			logrus.Warnf("Gamma shape %.4f (CV=%.1f) is very small; falling back to Poisson", shape, cv)
			return &PoissonSampler{rate: ratePerTick}
		}
		return &GammaSampler{shape: shape, scale: mean * cv * cv}

	case "weibull":
		k := weibullShapeFromCV(cv)
		// scale = mean / Γ(1 + 1/k)
		return &WeibullSampler{shape: k, scale: mean / math.Gamma(1.0+1.0/k)}

	default:
		logrus.Warnf("Unknown arrival process %q; using Poisson", spec.Process)
		return &PoissonSampler{rate: ratePerTick}
	}
}

// weibullShapeFromCV finds k such that CV² = Γ(1+2/k)/Γ(1+1/k)² - 1 by bisection
// over k ∈ [0.1, 100].
func weibullShapeFromCV(targetCV float64) float64 {
	lo, hi := 0.1, 100.0
	for i := 0; i < 100; i++ {
		mid := (lo + hi) / 2.0
		cv := weibullCV(mid)
		if math.Abs(cv-targetCV) < 0.001 {
			return mid
		}
		// CV is monotonically decreasing in k
		if cv > targetCV {
			lo = mid
		} else {
			hi = mid
		}
	}
	logrus.Warnf("weibullShapeFromCV: bisection did not converge for CV=%.3f; using k=%.3f", targetCV, (lo+hi)/2.0)
	return (lo + hi) / 2.0
}

func weibullCV(k float64) float64 {
	g1 := math.Gamma(1.0 + 1.0/k)
	g2 := math.Gamma(1.0 + 2.0/k)
	return math.Sqrt(g2/(g1*g1) - 1.0)
}
