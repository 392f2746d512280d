package workload

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/schedsim/schedsim/sim"
)

// csvColumns is the column order of CSV workloads. A header row naming these
// columns is optional.
var csvColumns = []string{"id", "arrival", "service"}

// ParseCSV reads one descriptor per row as "id,arrival,service".
// Lines starting with '#' are comments.
func ParseCSV(r io.Reader) ([]Descriptor, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = len(csvColumns)

	var ds []Descriptor
	for line := 1; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: reading CSV row: %v", sim.ErrMalformedWorkload, err)
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(row[0]), csvColumns[0]) {
			continue
		}
		d, err := parseCSVRow(row)
		if err != nil {
			return nil, fmt.Errorf("CSV row %d: %w", line, err)
		}
		ds = append(ds, d)
	}
	return ds, nil
}

func parseCSVRow(row []string) (Descriptor, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(row[0]), 10, 64)
	if err != nil {
		return Descriptor{}, fmt.Errorf("%w: id %q is not an integer", sim.ErrMalformedWorkload, row[0])
	}
	arrival, err := strconv.ParseInt(strings.TrimSpace(row[1]), 10, 64)
	if err != nil {
		return Descriptor{}, fmt.Errorf("%w: arrival %q is not an integer", sim.ErrMalformedWorkload, row[1])
	}
	service, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
	if err != nil {
		return Descriptor{}, fmt.Errorf("%w: service %q is not a number", sim.ErrMalformedWorkload, row[2])
	}
	return Descriptor{ID: id, Arrival: arrival, Service: service}, nil
}

// WriteCSV writes descriptors with a header row in the format read by ParseCSV.
func WriteCSV(w io.Writer, ds []Descriptor) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvColumns); err != nil {
		return err
	}
	for _, d := range ds {
		row := []string{
			strconv.FormatInt(d.ID, 10),
			strconv.FormatInt(d.Arrival, 10),
			strconv.FormatFloat(d.Service, 'f', -1, 64),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
