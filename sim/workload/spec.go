package workload

import (
	"bytes"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/schedsim/schedsim/sim"
)

// WorkloadSpec is the YAML workload format.
//
//	version: "1"
//	processes:
//	  - {id: 1, arrival: 0, service: 10}
type WorkloadSpec struct {
	Version   string       `yaml:"version"`
	Processes []Descriptor `yaml:"processes"`
}

// ParseSpec reads a YAML workload specification.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func ParseSpec(r io.Reader) (*WorkloadSpec, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading workload spec: %w", err)
	}
	var spec WorkloadSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		if err == io.EOF {
			return &spec, nil
		}
		return nil, fmt.Errorf("%w: parsing workload spec: %v", sim.ErrMalformedWorkload, err)
	}
	if spec.Version == "" {
		spec.Version = "1"
	}
	if spec.Version != "1" {
		logrus.Warnf("workload spec version %q is newer than supported version \"1\"; reading it as version 1", spec.Version)
	}
	return &spec, nil
}

// WriteSpec writes descriptors as a YAML workload specification.
func WriteSpec(w io.Writer, ds []Descriptor) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(&WorkloadSpec{Version: "1", Processes: ds}); err != nil {
		return err
	}
	return encoder.Close()
}
