package workload

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strconv"
)

// DistSpec parameterizes a service-time distribution.
type DistSpec struct {
	Type   string             `yaml:"type" json:"type"`
	Params map[string]float64 `yaml:"params,omitempty" json:"params,omitempty"`
}

// ServiceSampler draws CPU service times.
type ServiceSampler interface {
	// Sample returns a service time in ticks (>= 1).
	Sample(rng *rand.Rand) int64
}

// atLeastOneTick rounds v to whole ticks, mapping non-finite or tiny values to 1.
func atLeastOneTick(v float64) int64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 1
	}
	result := int64(math.Round(v))
	if result < 1 {
		return 1
	}
	return result
}

// GaussianSampler produces clamped Gaussian service times.
type GaussianSampler struct {
	mean, stdDev float64
	min, max     int64
}

func (s *GaussianSampler) Sample(rng *rand.Rand) int64 {
	if s.min == s.max {
		return atLeastOneTick(float64(s.min))
	}
	val := rng.NormFloat64()*s.stdDev + s.mean
	return atLeastOneTick(math.Min(float64(s.max), math.Max(float64(s.min), val)))
}

// ExponentialSampler produces exponentially distributed service times,
// the classic model for CPU bursts.
type ExponentialSampler struct {
	mean float64
}

func (s *ExponentialSampler) Sample(rng *rand.Rand) int64 {
	return atLeastOneTick(rng.ExpFloat64() * s.mean)
}

// UniformSampler draws whole ticks uniformly from [min, max].
type UniformSampler struct {
	min, max int64
}

func (s *UniformSampler) Sample(rng *rand.Rand) int64 {
	if s.max <= s.min {
		return atLeastOneTick(float64(s.min))
	}
	return atLeastOneTick(float64(s.min + rng.Int63n(s.max-s.min+1)))
}

// ParetoLogNormalSampler mixes a heavy Pareto tail with a LogNormal body.
// With probability mixWeight, draw from Pareto(alpha, xm); otherwise LogNormal(mu, sigma).
type ParetoLogNormalSampler struct {
	alpha     float64 // Pareto shape
	xm        float64 // Pareto scale (minimum)
	mu        float64 // LogNormal mean of ln(X)
	sigma     float64 // LogNormal std dev of ln(X)
	mixWeight float64 // Probability of drawing from Pareto
}

func (s *ParetoLogNormalSampler) Sample(rng *rand.Rand) int64 {
	var val float64
	if rng.Float64() < s.mixWeight {
		// Pareto: X = xm / U^(1/alpha)
		u := rng.Float64()
		if u == 0 {
			u = math.SmallestNonzeroFloat64
		}
		val = s.xm / math.Pow(u, 1.0/s.alpha)
	} else {
		val = math.Exp(s.mu + s.sigma*rng.NormFloat64())
	}
	return atLeastOneTick(val)
}

// EmpiricalSampler samples from a discrete service-time histogram using
// inverse CDF via binary search.
type EmpiricalSampler struct {
	values []int64   // sorted service times
	cdf    []float64 // cumulative probabilities, same length as values
}

// NewEmpiricalSampler creates a sampler from a PDF map (service ticks → weight).
// Weights are normalized; non-positive weights are dropped.
func NewEmpiricalSampler(pdf map[int64]float64) *EmpiricalSampler {
	keys := make([]int64, 0, len(pdf))
	for k := range pdf {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	totalProb := 0.0
	for _, k := range keys {
		if pdf[k] > 0 {
			totalProb += pdf[k]
		}
	}

	values := make([]int64, 0, len(keys))
	cdf := make([]float64, 0, len(keys))
	cumulative := 0.0
	for _, k := range keys {
		p := pdf[k]
		if p <= 0 {
			continue
		}
		cumulative += p / totalProb
		values = append(values, k)
		cdf = append(cdf, cumulative)
	}
	if len(cdf) > 0 {
		cdf[len(cdf)-1] = 1.0
	}
	return &EmpiricalSampler{values: values, cdf: cdf}
}

func (s *EmpiricalSampler) Sample(rng *rand.Rand) int64 {
	if len(s.values) == 0 {
		return 1
	}
	if len(s.values) == 1 {
		return atLeastOneTick(float64(s.values[0]))
	}
	idx := sort.SearchFloat64s(s.cdf, rng.Float64())
	if idx >= len(s.values) {
		idx = len(s.values) - 1
	}
	return atLeastOneTick(float64(s.values[idx]))
}

// ConstantSampler always returns the same service time.
type ConstantSampler struct {
	value int64
}

func (s *ConstantSampler) Sample(_ *rand.Rand) int64 {
	return atLeastOneTick(float64(s.value))
}

func requireParam(params map[string]float64, keys ...string) error {
	for _, k := range keys {
		if _, ok := params[k]; !ok {
			return fmt.Errorf("distribution requires parameter %q", k)
		}
	}
	return nil
}

// NewServiceSampler creates a ServiceSampler from a DistSpec.
func NewServiceSampler(spec DistSpec) (ServiceSampler, error) {
	switch spec.Type {
	case "gaussian":
		if err := requireParam(spec.Params, "mean", "std_dev", "min", "max"); err != nil {
			return nil, err
		}
		return &GaussianSampler{
			mean:   spec.Params["mean"],
			stdDev: spec.Params["std_dev"],
			min:    int64(spec.Params["min"]),
			max:    int64(spec.Params["max"]),
		}, nil

	case "exponential":
		if err := requireParam(spec.Params, "mean"); err != nil {
			return nil, err
		}
		if spec.Params["mean"] <= 0 {
			return nil, fmt.Errorf("exponential mean must be > 0, got %v", spec.Params["mean"])
		}
		return &ExponentialSampler{mean: spec.Params["mean"]}, nil

	case "uniform":
		if err := requireParam(spec.Params, "min", "max"); err != nil {
			return nil, err
		}
		lo, hi := int64(spec.Params["min"]), int64(spec.Params["max"])
		if hi < lo {
			return nil, fmt.Errorf("uniform max %d is below min %d", hi, lo)
		}
		return &UniformSampler{min: lo, max: hi}, nil

	case "pareto_lognormal":
		if err := requireParam(spec.Params, "alpha", "xm", "mu", "sigma", "mix_weight"); err != nil {
			return nil, err
		}
		return &ParetoLogNormalSampler{
			alpha:     spec.Params["alpha"],
			xm:        spec.Params["xm"],
			mu:        spec.Params["mu"],
			sigma:     spec.Params["sigma"],
			mixWeight: spec.Params["mix_weight"],
		}, nil

	case "constant":
		if err := requireParam(spec.Params, "value"); err != nil {
			return nil, err
		}
		return &ConstantSampler{value: int64(spec.Params["value"])}, nil

	case "empirical":
		// Params keys are service times, values their weights.
		pdf := make(map[int64]float64, len(spec.Params))
		for k, v := range spec.Params {
			ticks, err := strconv.ParseInt(k, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("empirical key %q is not an integer: %w", k, err)
			}
			pdf[ticks] = v
		}
		sampler := NewEmpiricalSampler(pdf)
		if len(sampler.values) == 0 {
			return nil, fmt.Errorf("empirical distribution has no valid bins")
		}
		return sampler, nil

	default:
		return nil, fmt.Errorf("unknown distribution type %q", spec.Type)
	}
}
