// Package dataset bundles the penguin bill-measurement table that every fit
// and chart in this repository is computed from. The table is embedded at
// build time and parsed once; rows missing either bill measurement are kept
// for row accounting but excluded from the valid set used for fitting and
// plotting. Missing numeric cells are represented as NaN, never as zero.
package dataset

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
)

//go:embed penguins.csv
var rawTable []byte

// ErrMalformed signals a missing or structurally invalid source table.
var ErrMalformed = errors.New("dataset: malformed table")

var expectedHeader = []string{
	"species", "island", "bill_length_mm", "bill_depth_mm",
	"flipper_length_mm", "body_mass_g", "sex",
}

// Observation is a single measured penguin. Numeric fields are NaN when the
// measurement is absent in the source table.
type Observation struct {
	Species         string
	Island          string
	BillLengthMm    float64
	BillDepthMm     float64
	FlipperLengthMm float64
	BodyMassG       float64
	Sex             string
}

// HasBill reports whether both bill measurements are present.
func (o Observation) HasBill() bool {
	return !math.IsNaN(o.BillLengthMm) && !math.IsNaN(o.BillDepthMm)
}

// Dataset is the immutable, ordered observation table.
type Dataset struct {
	obs []Observation
}

// Load parses the embedded table. Deterministic; the only failure mode is a
// malformed bundled file, which is a build defect rather than a runtime
// condition.
func Load() (*Dataset, error) {
	return Parse(bytes.NewReader(rawTable))
}

// Parse reads a CSV table with the penguin schema from r.
func Parse(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", ErrMalformed, err)
	}
	if len(header) != len(expectedHeader) {
		return nil, fmt.Errorf("%w: expected %d columns, got %d", ErrMalformed, len(expectedHeader), len(header))
	}
	for i, name := range expectedHeader {
		if strings.TrimSpace(header[i]) != name {
			return nil, fmt.Errorf("%w: column %d is %q, want %q", ErrMalformed, i, header[i], name)
		}
	}
	var obs []Observation
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, line, err)
		}
		o := Observation{
			Species: strings.TrimSpace(rec[0]),
			Island:  strings.TrimSpace(rec[1]),
			Sex:     strings.TrimSpace(rec[6]),
		}
		if o.BillLengthMm, err = parseCell(rec[2]); err != nil {
			return nil, fmt.Errorf("%w: line %d bill_length_mm: %v", ErrMalformed, line, err)
		}
		if o.BillDepthMm, err = parseCell(rec[3]); err != nil {
			return nil, fmt.Errorf("%w: line %d bill_depth_mm: %v", ErrMalformed, line, err)
		}
		if o.FlipperLengthMm, err = parseCell(rec[4]); err != nil {
			return nil, fmt.Errorf("%w: line %d flipper_length_mm: %v", ErrMalformed, line, err)
		}
		if o.BodyMassG, err = parseCell(rec[5]); err != nil {
			return nil, fmt.Errorf("%w: line %d body_mass_g: %v", ErrMalformed, line, err)
		}
		// A measured row without a species label cannot be partitioned.
		if o.HasBill() && o.Species == "" {
			return nil, fmt.Errorf("%w: line %d has measurements but no species", ErrMalformed, line)
		}
		obs = append(obs, o)
	}
	if len(obs) == 0 {
		return nil, fmt.Errorf("%w: no data rows", ErrMalformed)
	}
	return &Dataset{obs: obs}, nil
}

// parseCell converts a numeric cell; empty or NA cells become NaN.
func parseCell(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "NA" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}

// Len returns the total row count, including rows with missing measurements.
func (d *Dataset) Len() int { return len(d.obs) }

// All returns a copy of every observation in table order.
func (d *Dataset) All() []Observation {
	return append([]Observation(nil), d.obs...)
}

// Valid returns the observations with both bill measurements present, in
// table order.
func (d *Dataset) Valid() []Observation {
	var out []Observation
	for _, o := range d.obs {
		if o.HasBill() {
			out = append(out, o)
		}
	}
	return out
}

// Species returns the sorted distinct species labels among valid rows.
func (d *Dataset) Species() []string {
	seen := map[string]bool{}
	for _, o := range d.Valid() {
		seen[o.Species] = true
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// BySpecies partitions the valid observations by species label.
func (d *Dataset) BySpecies() map[string][]Observation {
	out := map[string][]Observation{}
	for _, o := range d.Valid() {
		out[o.Species] = append(out[o.Species], o)
	}
	return out
}
