package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/memsim/internal/sim"
)

var csvHeader = []string{"time", "voltage", "current", "state"}

// CSV writes one row per sample with full float precision.
func CSV(w io.Writer, res *sim.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	row := make([]string, len(csvHeader))
	for k := range res.Time {
		row[0] = strconv.FormatFloat(res.Time[k], 'g', -1, 64)
		row[1] = strconv.FormatFloat(res.Voltage[k], 'g', -1, 64)
		row[2] = strconv.FormatFloat(res.Current[k], 'g', -1, 64)
		row[3] = strconv.FormatFloat(res.State[k], 'g', -1, 64)
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV parses traces written by CSV. Stats and metrics are not part of
// the file and are left empty.
func ReadCSV(r io.Reader) (*sim.Result, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("export: missing csv header")
	}

	n := len(records) - 1
	var cols [4][]float64
	for c := range cols {
		cols[c] = make([]float64, n)
	}

	for k, record := range records[1:] {
		for c := range cols {
			val, err := strconv.ParseFloat(record[c], 64)
			if err != nil {
				return nil, fmt.Errorf("export: csv row %d: %w", k+1, err)
			}
			cols[c][k] = val
		}
	}

	return &sim.Result{Time: cols[0], Voltage: cols[1], Current: cols[2], State: cols[3]}, nil
}
