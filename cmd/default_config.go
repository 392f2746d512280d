package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// RunConfig is the YAML defaults file accepted by `run --config`.
// All keys must be listed to satisfy KnownFields(true) strict parsing.
type RunConfig struct {
	Workload   string   `yaml:"workload"`
	Algorithms []string `yaml:"algorithms"`
	Quantum    *int64   `yaml:"quantum"`
	SwitchTime *int64   `yaml:"switch_time"`
	Format     string   `yaml:"format"`
	Trace      string   `yaml:"trace"`
	Log        string   `yaml:"log"`
}

// loadRunConfig parses a defaults file with strict field checking, so typos
// cause errors instead of being ignored.
func loadRunConfig(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	var cfg RunConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return &cfg, nil
}

// applyRunConfig copies file values into the flag variables for every flag the
// user did not set explicitly on the command line.
func applyRunConfig(flags *pflag.FlagSet, cfg *RunConfig) {
	if cfg.Workload != "" && !flags.Changed("workload") {
		workloadPath = cfg.Workload
	}
	if len(cfg.Algorithms) > 0 && !flags.Changed("algorithms") {
		algorithms = cfg.Algorithms
	}
	if cfg.Quantum != nil && !flags.Changed("quantum") {
		quantum = *cfg.Quantum
	}
	if cfg.SwitchTime != nil && !flags.Changed("switch-time") {
		switchTime = *cfg.SwitchTime
	}
	if cfg.Format != "" && !flags.Changed("format") {
		outputFormat = cfg.Format
	}
	if cfg.Trace != "" && !flags.Changed("trace") {
		traceLevel = cfg.Trace
	}
	if cfg.Log != "" && !flags.Changed("log") {
		setLogLevel(cfg.Log)
	}
	logrus.Debugf("Applied config: workload=%s algorithms=%v quantum=%d switch=%d format=%s trace=%s",
		workloadPath, algorithms, quantum, switchTime, outputFormat, traceLevel)
}
