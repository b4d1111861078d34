package niel

import (
	"sort"

	"github.com/carbocation/srniel/grid"
)

// Sample is one (energy, NIEL) point. Energy is in MeV and NIEL in
// MeV cm^2 g^-1.
type Sample struct {
	Energy float64
	NIEL   float64
}

// Series is a set of samples with unique energies, ordered by ascending
// energy. The zero Series is empty, meaning no usable data was found.
type Series struct {
	samples []Sample
}

// BuildSeries keeps the first sample seen for each energy value, in input
// order, and sorts the survivors by energy.
func BuildSeries(samples []Sample) Series {
	if len(samples) == 0 {
		return Series{}
	}

	seen := make(map[float64]struct{}, len(samples))
	out := make([]Sample, 0, len(samples))
	for _, s := range samples {
		if _, exists := seen[s.Energy]; exists {
			continue
		}
		seen[s.Energy] = struct{}{}
		out = append(out, s)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Energy < out[j].Energy })

	return Series{samples: out}
}

// Len is the number of samples.
func (s Series) Len() int {
	return len(s.samples)
}

// Empty is true when the series holds no samples.
func (s Series) Empty() bool {
	return len(s.samples) == 0
}

// At returns the i-th sample in energy order.
func (s Series) At(i int) Sample {
	return s.samples[i]
}

// Samples returns a copy of the samples in energy order.
func (s Series) Samples() []Sample {
	out := make([]Sample, len(s.samples))
	copy(out, s.samples)
	return out
}

// Energies returns the energy column.
func (s Series) Energies() []float64 {
	out := make([]float64, 0, len(s.samples))
	for _, v := range s.samples {
		out = append(out, v.Energy)
	}
	return out
}

// Values returns the NIEL column.
func (s Series) Values() []float64 {
	out := make([]float64, 0, len(s.samples))
	for _, v := range s.samples {
		out = append(out, v.NIEL)
	}
	return out
}

// Result bundles everything learned while turning one document into a
// series.
type Result struct {
	Series     Series
	Assignment Assignment
	Tally      Tally
}

// Extract runs both passes over the document (column location, then row
// extraction) and builds the canonical series.
func Extract(doc grid.Document) Result {
	a := Locate(doc)
	samples, tally := ExtractRows(doc, a)

	return Result{
		Series:     BuildSeries(samples),
		Assignment: a,
		Tally:      tally,
	}
}
