// Package measure computes summary statistics over csv files exported from
// the Logic software.
//
// Exports carry a header row with a time column followed by one column per
// channel, then one row per sample. Digital channels only ever carry 0 and 1
// and additionally get an edge count and duty cycle.
package measure

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// A Summary describes one exported channel.
type Summary struct {
	// Channel is the column header from the export.
	Channel string

	// Samples is the number of rows.
	Samples int

	Mean   float64
	StdDev float64
	Min    float64
	Max    float64

	// Digital is set when the channel only carries 0 and 1 values. Edges and
	// Duty are only meaningful for digital channels.
	Digital bool

	// Edges counts value transitions.
	Edges int

	// Duty is the fraction of samples at 1.
	Duty float64
}

// A Report is the result of analyzing one export.
type Report struct {
	// File is the analyzed file path, empty for reports read from a stream.
	File string

	// Duration is the time in seconds spanned by the export.
	Duration float64

	Channels []Summary
}

// File analyzes a single export file.
func File(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open export")
	}
	defer f.Close()

	r, err := Read(f)
	if err != nil {
		return nil, errors.Wrapf(err, "analyze %s", path)
	}
	r.File = path
	return r, nil
}

// Files analyzes several export files concurrently. Reports are returned in
// input order.
func Files(paths []string) ([]*Report, error) {
	reports := make([]*Report, len(paths))
	var g errgroup.Group
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			r, err := File(path)
			if err != nil {
				return err
			}
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// Read analyzes an export read from r.
func Read(r io.Reader) (*Report, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, errors.Wrap(err, "read header")
	}
	if len(header) < 2 {
		return nil, errors.New("export has no channel columns")
	}

	names := header[1:]
	values := make([][]float64, len(names))
	var firstTime, lastTime float64
	rows := 0

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "read row")
		}
		ts, err := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "parse time %q", rec[0])
		}
		if rows == 0 {
			firstTime = ts
		}
		lastTime = ts
		for i, field := range rec[1:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, errors.Wrapf(err, "parse %s value %q", names[i], field)
			}
			values[i] = append(values[i], v)
		}
		rows++
	}
	if rows == 0 {
		return nil, errors.New("export has no samples")
	}

	report := &Report{
		Duration: lastTime - firstTime,
		Channels: make([]Summary, len(names)),
	}
	for i, name := range names {
		report.Channels[i] = summarize(name, values[i])
	}
	return report, nil
}

func summarize(name string, vals []float64) Summary {
	s := Summary{
		Channel: name,
		Samples: len(vals),
		Mean:    stat.Mean(vals, nil),
		Min:     floats.Min(vals),
		Max:     floats.Max(vals),
	}
	if len(vals) > 1 {
		s.StdDev = stat.StdDev(vals, nil)
	}

	s.Digital = true
	high := 0
	for i, v := range vals {
		if v != 0 && v != 1 {
			s.Digital = false
			break
		}
		if v == 1 {
			high++
		}
		if i > 0 && vals[i-1] != v {
			s.Edges++
		}
	}
	if s.Digital {
		s.Duty = float64(high) / float64(len(vals))
	} else {
		s.Edges = 0
		s.Duty = 0
	}
	return s
}
