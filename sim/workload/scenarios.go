package workload

import (
	"fmt"
	"sort"
)

// Built-in generator presets for classic scheduling workloads.
// Each returns a valid GeneratorSpec ready for use with Generate.

// ScenarioInteractive creates many short CPU bursts arriving as a Poisson stream.
func ScenarioInteractive(seed int64, count int) GeneratorSpec {
	return GeneratorSpec{
		Seed: seed, Count: count, Rate: 0.2, FirstID: 1,
		Arrival: ArrivalSpec{Process: "poisson"},
		Service: DistSpec{Type: "exponential", Params: map[string]float64{"mean": 3}},
	}
}

// ScenarioCPUBound creates long jobs with moderate variance arriving slowly.
func ScenarioCPUBound(seed int64, count int) GeneratorSpec {
	return GeneratorSpec{
		Seed: seed, Count: count, Rate: 0.01, FirstID: 1,
		Arrival: ArrivalSpec{Process: "poisson"},
		Service: DistSpec{Type: "gaussian", Params: map[string]float64{"mean": 80, "std_dev": 20, "min": 20, "max": 200}},
	}
}

// ScenarioBursty creates Gamma-distributed bursty arrivals.
func ScenarioBursty(seed int64, count int) GeneratorSpec {
	cv := 3.5
	return GeneratorSpec{
		Seed: seed, Count: count, Rate: 0.05, FirstID: 1,
		Arrival: ArrivalSpec{Process: "gamma", CV: &cv},
		Service: DistSpec{Type: "exponential", Params: map[string]float64{"mean": 15}},
	}
}

// ScenarioConvoy mixes mostly 2-tick jobs with occasional 60-tick ones, so
// short jobs pile up behind long ones under FCFS.
func ScenarioConvoy(seed int64, count int) GeneratorSpec {
	return GeneratorSpec{
		Seed: seed, Count: count, Rate: 0.1, FirstID: 1,
		Arrival: ArrivalSpec{Process: "constant"},
		Service: DistSpec{Type: "empirical", Params: map[string]float64{"2": 0.9, "60": 0.1}},
	}
}

// ScenarioHeavyTail draws service times from a Pareto/LogNormal mixture.
func ScenarioHeavyTail(seed int64, count int) GeneratorSpec {
	return GeneratorSpec{
		Seed: seed, Count: count, Rate: 0.05, FirstID: 1,
		Arrival: ArrivalSpec{Process: "poisson"},
		Service: DistSpec{Type: "pareto_lognormal", Params: map[string]float64{
			"alpha": 1.5, "xm": 20, "mu": 1.5, "sigma": 0.6, "mix_weight": 0.2,
		}},
	}
}

var scenarios = map[string]func(seed int64, count int) GeneratorSpec{
	"interactive": ScenarioInteractive,
	"cpu-bound":   ScenarioCPUBound,
	"bursty":      ScenarioBursty,
	"convoy":      ScenarioConvoy,
	"heavy-tail":  ScenarioHeavyTail,
}

// ScenarioNames lists the built-in presets in sorted order.
func ScenarioNames() []string {
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Scenario returns the named preset.
func Scenario(name string, seed int64, count int) (GeneratorSpec, error) {
	build, ok := scenarios[name]
	if !ok {
		return GeneratorSpec{}, fmt.Errorf("unknown scenario %q; valid: %v", name, ScenarioNames())
	}
	return build(seed, count), nil
}
