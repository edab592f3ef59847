package normalize

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"MacroSim/internal/domain/models"
	"MacroSim/pkg/util"
)

// SourceSpec describes one raw per-source CSV: where it lives, which
// indicator it feeds, its native frequency, and how to read its rows.
type SourceSpec struct {
	Name            string
	Path            string
	Indicator       models.Indicator
	Frequency       models.Frequency
	TimestampColumn string
	ValueColumn     string
	TimestampLayout string
	Downsample      Rule
}

// ReadCSV ingests one raw source file into an observation series. The file
// must have a header row naming at least the timestamp and value columns.
// A row whose date cannot be parsed aborts the whole source with
// ErrMalformedTimestamp; nothing is substituted.
func ReadCSV(spec SourceSpec) (models.ObservationSeries, error) {
	f, err := os.Open(spec.Path)
	if err != nil {
		return models.ObservationSeries{}, fmt.Errorf("open source %s: %w", spec.Name, err)
	}
	defer f.Close()
	return readCSV(f, spec)
}

func readCSV(r io.Reader, spec SourceSpec) (models.ObservationSeries, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return models.ObservationSeries{}, fmt.Errorf("source %s: read header: %w", spec.Name, err)
	}
	tsCol, valCol := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case strings.ToLower(spec.TimestampColumn):
			tsCol = i
		case strings.ToLower(spec.ValueColumn):
			valCol = i
		}
	}
	if tsCol < 0 || valCol < 0 {
		return models.ObservationSeries{}, fmt.Errorf("source %s: columns %q/%q not found in header %v",
			spec.Name, spec.TimestampColumn, spec.ValueColumn, header)
	}

	out := models.ObservationSeries{
		Source:    spec.Name,
		Indicator: spec.Indicator,
		Frequency: spec.Frequency,
	}
	row := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return models.ObservationSeries{}, fmt.Errorf("source %s row %d: %w", spec.Name, row+1, err)
		}
		row++

		raw := strings.TrimSpace(rec[tsCol])
		t, ok := util.ParseTime(raw, spec.TimestampLayout)
		if !ok {
			return models.ObservationSeries{}, fmt.Errorf("%w: source %s row %d: %q",
				ErrMalformedTimestamp, spec.Name, row, raw)
		}

		vs := strings.TrimSpace(rec[valCol])
		if vs == "" {
			// Empty cells are gaps, not zeros.
			continue
		}
		v, err := strconv.ParseFloat(vs, 64)
		if err != nil {
			return models.ObservationSeries{}, fmt.Errorf("source %s row %d: parse value %q: %w",
				spec.Name, row, vs, err)
		}
		out.Points = append(out.Points, models.Observation{Time: t, Value: v})
	}
	return out, nil
}
