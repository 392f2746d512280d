package workload

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/schedsim/schedsim/sim"
)

// ParseText reads the whitespace-separated descriptor format: a process count N
// followed by N triples of (process number, arrival time, service time).
// Short input, unparsable tokens and trailing tokens are ErrMalformedWorkload.
func ParseText(r io.Reader) ([]Descriptor, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	pos := 0
	next := func(what string) (string, error) {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", fmt.Errorf("reading workload: %w", err)
			}
			return "", fmt.Errorf("%w: unexpected end of input, expected %s (token %d)", sim.ErrMalformedWorkload, what, pos+1)
		}
		pos++
		return scanner.Text(), nil
	}
	nextInt := func(what string) (int64, error) {
		tok, err := next(what)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %s %q is not an integer (token %d)", sim.ErrMalformedWorkload, what, tok, pos)
		}
		return v, nil
	}

	count, err := nextInt("process count")
	if err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: negative process count %d", sim.ErrMalformedWorkload, count)
	}

	ds := make([]Descriptor, 0, min(count, 1024))
	for i := int64(0); i < count; i++ {
		id, err := nextInt("process number")
		if err != nil {
			return nil, err
		}
		arrival, err := nextInt("arrival time")
		if err != nil {
			return nil, err
		}
		tok, err := next("service time")
		if err != nil {
			return nil, err
		}
		service, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: service time %q is not a number (token %d)", sim.ErrMalformedWorkload, tok, pos)
		}
		ds = append(ds, Descriptor{ID: id, Arrival: arrival, Service: service})
	}

	if scanner.Scan() {
		return nil, fmt.Errorf("%w: %d descriptors declared but input continues with %q", sim.ErrMalformedWorkload, count, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading workload: %w", err)
	}
	return ds, nil
}

// WriteText writes descriptors in the format read by ParseText.
func WriteText(w io.Writer, ds []Descriptor) error {
	if _, err := fmt.Fprintln(w, len(ds)); err != nil {
		return err
	}
	for _, d := range ds {
		if _, err := fmt.Fprintf(w, "%d %d %s\n", d.ID, d.Arrival, strconv.FormatFloat(d.Service, 'f', -1, 64)); err != nil {
			return err
		}
	}
	return nil
}
