package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/schedsim/schedsim/api"
	"github.com/schedsim/schedsim/sim"
)

var (
	serveAddr       string
	serveQuantum    int64
	serveSwitchTime int64
)

// serveCmd exposes the simulator over HTTP
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the scheduling endpoints over HTTP",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel(logLevel)
		if serveQuantum <= 0 {
			logrus.Fatalf("Invalid --quantum %d: must be > 0", serveQuantum)
		}
		if serveSwitchTime < 0 {
			logrus.Fatalf("Invalid --switch-time %d: must be >= 0", serveSwitchTime)
		}
		cfg := sim.DefaultConfig()
		cfg.Quantum = serveQuantum
		cfg.SwitchTime = serveSwitchTime

		app := api.NewApp(cfg)
		logrus.Infof("Listening on %s", serveAddr)
		if err := app.Listen(serveAddr); err != nil {
			logrus.Fatalf("Server stopped: %v", err)
		}
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":9095", "Listen address")
	serveCmd.Flags().Int64Var(&serveQuantum, "quantum", sim.DefaultQuantum, "Default round-robin quantum for requests that omit one")
	serveCmd.Flags().Int64Var(&serveSwitchTime, "switch-time", sim.DefaultSwitchTime, "Default context-switch cost for requests that omit one")
}
