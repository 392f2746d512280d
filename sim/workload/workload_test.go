package workload

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedsim/schedsim/sim"
)

func TestParseText_CountThenTriples(t *testing.T) {
	// GIVEN the descriptor format with irregular whitespace
	input := "3\n1 0 10\n2   4 5.0\n\t7 2 3\n"

	// WHEN parsed
	ds, err := ParseText(strings.NewReader(input))

	// THEN every triple is read in order
	require.NoError(t, err)
	assert.Equal(t, []Descriptor{
		{ID: 1, Arrival: 0, Service: 10},
		{ID: 2, Arrival: 4, Service: 5},
		{ID: 7, Arrival: 2, Service: 3},
	}, ds)
}

func TestParseText_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"count not a number", "x 1 0 1"},
		{"negative count", "-1"},
		{"short input", "2\n1 0 10\n2 4"},
		{"bad arrival", "1\n1 zero 10"},
		{"bad service", "1\n1 0 ten"},
		{"trailing tokens", "1\n1 0 10\n2 0 3"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseText(strings.NewReader(tc.input))
			assert.ErrorIs(t, err, sim.ErrMalformedWorkload)
		})
	}
}

func TestParseText_ZeroCount_IsEmptyWorkload(t *testing.T) {
	ds, err := ParseText(strings.NewReader("0"))
	require.NoError(t, err)
	assert.Empty(t, ds)

	_, err = ToProcesses(ds)
	assert.ErrorIs(t, err, sim.ErrEmptyWorkload)
}

func TestDescriptor_FractionalService_Rejected(t *testing.T) {
	_, err := Descriptor{ID: 1, Arrival: 0, Service: 2.5}.Process()
	assert.ErrorIs(t, err, sim.ErrMalformedWorkload)
	assert.Contains(t, err.Error(), "process 1")
}

func TestToProcesses_ValidatesWorkload(t *testing.T) {
	_, err := ToProcesses([]Descriptor{{ID: 1, Service: 2}, {ID: 1, Service: 3}})
	assert.ErrorIs(t, err, sim.ErrMalformedWorkload)

	_, err = ToProcesses([]Descriptor{{ID: 1, Service: 0}})
	assert.ErrorIs(t, err, sim.ErrMalformedWorkload)

	procs, err := ToProcesses([]Descriptor{{ID: 3, Arrival: 5, Service: 8}})
	require.NoError(t, err)
	require.Len(t, procs, 1)
	assert.Equal(t, int64(3), procs[0].ID())
	assert.Equal(t, int64(5), procs[0].ArrivalTime())
	assert.Equal(t, int64(8), procs[0].ServiceTime())
}

func TestParseCSV_WithHeaderAndComments(t *testing.T) {
	input := "id,arrival,service\n# warm-up job\n1, 0, 10\n2,4,5\n"

	ds, err := ParseCSV(strings.NewReader(input))

	require.NoError(t, err)
	assert.Equal(t, []Descriptor{{ID: 1, Arrival: 0, Service: 10}, {ID: 2, Arrival: 4, Service: 5}}, ds)
}

func TestParseCSV_Malformed(t *testing.T) {
	for _, input := range []string{"1,0\n", "1,0,10,4\n", "a,0,1\n", "1,b,1\n", "1,0,c\n"} {
		_, err := ParseCSV(strings.NewReader(input))
		assert.ErrorIs(t, err, sim.ErrMalformedWorkload, "input %q", input)
	}
}

func TestParseSpec_StrictFields(t *testing.T) {
	good := "version: \"1\"\nprocesses:\n  - {id: 1, arrival: 0, service: 10}\n  - {id: 2, arrival: 3, service: 4}\n"
	spec, err := ParseSpec(strings.NewReader(good))
	require.NoError(t, err)
	assert.Equal(t, "1", spec.Version)
	assert.Len(t, spec.Processes, 2)

	typo := "processes:\n  - {id: 1, arival: 0, service: 10}\n"
	_, err = ParseSpec(strings.NewReader(typo))
	assert.ErrorIs(t, err, sim.ErrMalformedWorkload)
}

func TestParseSpec_Empty(t *testing.T) {
	spec, err := ParseSpec(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, spec.Processes)
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, FormatCSV, FormatForPath("jobs.CSV"))
	assert.Equal(t, FormatYAML, FormatForPath("jobs.yaml"))
	assert.Equal(t, FormatYAML, FormatForPath("jobs.yml"))
	assert.Equal(t, FormatText, FormatForPath("processes.txt"))
	assert.Equal(t, FormatText, FormatForPath("processes"))
}

func TestWrite_ThenParse_PreservesDescriptors(t *testing.T) {
	ds := []Descriptor{{ID: 4, Arrival: 0, Service: 12}, {ID: 9, Arrival: 30, Service: 1}}
	for _, format := range []Format{FormatText, FormatCSV, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, format, ds))

			got, err := Parse(&buf, format)
			require.NoError(t, err)
			assert.Equal(t, ds, got)
		})
	}
}

func TestLoadFile_PicksFormatByExtension(t *testing.T) {
	dir := t.TempDir()
	text := filepath.Join(dir, "processes.txt")
	yml := filepath.Join(dir, "processes.yaml")
	require.NoError(t, os.WriteFile(text, []byte("2\n1 0 5\n2 0 3\n"), 0o644))
	require.NoError(t, os.WriteFile(yml, []byte("processes:\n  - {id: 1, arrival: 0, service: 5}\n"), 0o644))

	procs, err := LoadFile(text)
	require.NoError(t, err)
	assert.Len(t, procs, 2)

	procs, err = LoadFile(yml)
	require.NoError(t, err)
	assert.Len(t, procs, 1)

	_, err = LoadFile(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}

func TestFromProcesses(t *testing.T) {
	procs := []*sim.Process{sim.NewProcess(2, 6, 9)}
	assert.Equal(t, []Descriptor{{ID: 2, Arrival: 6, Service: 9}}, FromProcesses(procs))
}
