package workload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/schedsim/schedsim/sim"
)

// Format names a workload encoding.
type Format string

const (
	FormatText Format = "text"
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the workload format from a file extension.
// Anything that is not .csv, .yaml or .yml is read as text.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatText
	}
}

// Parse decodes descriptors in the given format.
func Parse(r io.Reader, format Format) ([]Descriptor, error) {
	switch format {
	case FormatText, "":
		return ParseText(r)
	case FormatCSV:
		return ParseCSV(r)
	case FormatYAML:
		spec, err := ParseSpec(r)
		if err != nil {
			return nil, err
		}
		return spec.Processes, nil
	default:
		return nil, fmt.Errorf("unknown workload format %q", format)
	}
}

// Write encodes descriptors in the given format.
func Write(w io.Writer, format Format, ds []Descriptor) error {
	switch format {
	case FormatText, "":
		return WriteText(w, ds)
	case FormatCSV:
		return WriteCSV(w, ds)
	case FormatYAML:
		return WriteSpec(w, ds)
	default:
		return fmt.Errorf("unknown workload format %q", format)
	}
}

// Load parses r in the given format and returns validated process records.
func Load(r io.Reader, format Format) ([]*sim.Process, error) {
	ds, err := Parse(r, format)
	if err != nil {
		return nil, err
	}
	return ToProcesses(ds)
}

// LoadFile reads a workload file, choosing the format from its extension.
func LoadFile(path string) ([]*sim.Process, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening workload: %w", err)
	}
	defer func() { _ = file.Close() }()

	format := FormatForPath(path)
	procs, err := Load(file, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logrus.Infof("Loaded %d processes from %s (%s)", len(procs), path, format)
	return procs, nil
}
