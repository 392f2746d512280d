package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/schedsim/schedsim/sim"
	"github.com/schedsim/schedsim/sim/report"
	"github.com/schedsim/schedsim/sim/trace"
	"github.com/schedsim/schedsim/sim/workload"
)

var (
	// CLI flags for the run command
	workloadPath string   // Workload descriptor file (text, .csv or .yaml)
	algorithms   []string // Disciplines to run, in order
	quantum      int64    // Round-robin time quantum (in ticks)
	switchTime   int64    // Context-switch cost (in ticks)
	outputFormat string   // Report format
	traceLevel   string   // Event trace level
	configPath   string   // Optional YAML defaults file
	logLevel     string   // Log verbosity level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "schedsim",
	Short: "Discrete-event simulator for CPU scheduling disciplines",
}

// runOptions is the fully resolved input of one simulation run.
type runOptions struct {
	WorkloadPath string
	Algorithms   []string
	Format       report.Format
	Config       sim.Config
}

// runCmd executes the simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run every selected scheduling discipline over a workload and report the results",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel(logLevel)

		if configPath != "" {
			fileCfg, err := loadRunConfig(configPath)
			if err != nil {
				logrus.Fatalf("Failed to load config: %v", err)
			}
			applyRunConfig(cmd.Flags(), fileCfg)
		}

		opts := runOptions{
			WorkloadPath: workloadPath,
			Algorithms:   algorithms,
			Format:       report.Format(outputFormat),
			Config: sim.Config{
				SwitchTime: switchTime,
				Quantum:    quantum,
				Trace:      trace.TraceLevel(traceLevel),
			},
		}
		if err := validateRunOptions(opts); err != nil {
			logrus.Fatalf("%v", err)
		}

		logrus.Infof("Starting simulation of %s with algorithms=%v, quantum=%d, switch=%d",
			opts.WorkloadPath, opts.Algorithms, opts.Config.Quantum, opts.Config.SwitchTime)
		if err := runSimulation(os.Stdout, opts); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

func setLogLevel(name string) {
	level, err := logrus.ParseLevel(name)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", name)
	}
	logrus.SetLevel(level)
}

// validateRunOptions rejects option values the simulator cannot use.
func validateRunOptions(opts runOptions) error {
	if opts.WorkloadPath == "" {
		return fmt.Errorf("workload file not provided; use --workload")
	}
	if len(opts.Algorithms) == 0 {
		return fmt.Errorf("no algorithms selected; valid: %s", strings.Join(sim.ValidSchedulerNames(), ", "))
	}
	for _, name := range opts.Algorithms {
		if !sim.IsValidScheduler(name) {
			return fmt.Errorf("unknown algorithm %q; valid: %s", name, strings.Join(sim.ValidSchedulerNames(), ", "))
		}
	}
	if !report.IsValidFormat(string(opts.Format)) {
		return fmt.Errorf("unknown output format %q; valid: text, table, json, yaml", opts.Format)
	}
	if !trace.IsValidTraceLevel(string(opts.Config.Trace)) {
		return fmt.Errorf("unknown trace level %q; valid: none, events", opts.Config.Trace)
	}
	return nil
}

// runSimulation loads the workload, runs every discipline and writes the reports.
func runSimulation(w io.Writer, opts runOptions) error {
	procs, err := workload.LoadFile(opts.WorkloadPath)
	if err != nil {
		return err
	}
	reports, err := sim.RunDisciplines(procs, opts.Algorithms, opts.Config)
	if err != nil {
		return err
	}
	if err := report.Write(w, opts.Format, reports); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	if opts.Format == report.FormatText || opts.Format == report.FormatTable {
		for _, r := range reports {
			if err := report.WriteTrace(w, r.Result); err != nil {
				return fmt.Errorf("writing trace: %w", err)
			}
		}
	}
	return nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

	runCmd.Flags().StringVar(&workloadPath, "workload", "", "Workload file: text (count then id/arrival/service triples), .csv or .yaml")
	runCmd.Flags().StringSliceVar(&algorithms, "algorithms", []string{sim.NameFCFS, sim.NameRoundRobin}, "Comma-separated scheduling disciplines to run, in order (fcfs, rr)")
	runCmd.Flags().Int64Var(&quantum, "quantum", sim.DefaultQuantum, "Round-robin time quantum (in ticks)")
	runCmd.Flags().Int64Var(&switchTime, "switch-time", sim.DefaultSwitchTime, "Context-switch cost (in ticks)")
	runCmd.Flags().StringVar(&outputFormat, "format", string(report.FormatText), "Report format (text, table, json, yaml)")
	runCmd.Flags().StringVar(&traceLevel, "trace", string(trace.TraceLevelNone), "Event trace level (none, events)")
	runCmd.Flags().StringVar(&configPath, "config", "", "YAML file with run defaults; explicitly set flags take precedence")

	// Attach subcommands to `root`
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(serveCmd)
}
