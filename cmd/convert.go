package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/schedsim/schedsim/sim/workload"
)

var (
	convertInput string
	convertFrom  string
	convertTo    string
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a workload file between text, CSV and YAML",
	Long:  "Convert a workload file between the text (count then id/arrival/service triples), CSV and YAML encodings. Output is written to stdout for piping.",
	Run: func(cmd *cobra.Command, args []string) {
		if err := convertWorkload(os.Stdout, convertInput, workload.Format(convertFrom), workload.Format(convertTo)); err != nil {
			logrus.Fatalf("Workload conversion failed: %v", err)
		}
	},
}

// convertWorkload reads path in the given format (inferred from the extension
// when empty), validates it, and writes it to w in the target format.
func convertWorkload(w io.Writer, path string, from, to workload.Format) error {
	if from == "" {
		from = workload.FormatForPath(path)
	}
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening workload: %w", err)
	}
	defer func() { _ = file.Close() }()

	ds, err := workload.Parse(file, from)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if _, err := workload.ToProcesses(ds); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	logrus.Debugf("Converting %d processes from %s to %s", len(ds), from, to)
	return workload.Write(w, to, ds)
}

func init() {
	convertCmd.Flags().StringVar(&convertInput, "file", "", "Path to the workload file")
	convertCmd.Flags().StringVar(&convertFrom, "from", "", "Input format (text, csv, yaml); inferred from the extension when empty")
	convertCmd.Flags().StringVar(&convertTo, "to", string(workload.FormatYAML), "Output format (text, csv, yaml)")
	_ = convertCmd.MarkFlagRequired("file")
}
