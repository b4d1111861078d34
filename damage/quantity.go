package damage

import (
	"fmt"
	"math"
)

// Quantity names one per-energy column of a derived series.
type Quantity int

const (
	QuantityNIEL Quantity = iota
	QuantityDose
	QuantityDefectDensity
	QuantityGenerationRate
)

// EnergyColumn is the header used for the energy axis in every output.
const EnergyColumn = "Energy (MeV)"

type quantityInfo struct {
	stem   string
	column string
	value  func(Sample) float64
}

var quantities = map[Quantity]quantityInfo{
	QuantityNIEL:           {"niel", "NIEL (MeV cm^2 g^-1)", func(v Sample) float64 { return v.NIEL }},
	QuantityDose:           {"ddd", "DDD (MeV/g)", func(v Sample) float64 { return v.Dose }},
	QuantityDefectDensity:  {"defect_density", "Defect Density (cm^-3)", func(v Sample) float64 { return v.DefectDensity }},
	QuantityGenerationRate: {"defect_generation_rate", "Defect Generation Rate (cm^-1)", func(v Sample) float64 { return v.GenerationRate }},
}

// Valid reports whether q is one of the declared quantities.
func (q Quantity) Valid() bool {
	_, exists := quantities[q]
	return exists
}

// info falls back to a placeholder for undeclared values: a stem and
// column naming the number, and NaN for every sample.
func (q Quantity) info() quantityInfo {
	if v, exists := quantities[q]; exists {
		return v
	}
	return quantityInfo{
		stem:   fmt.Sprintf("quantity_%d", int(q)),
		column: q.String(),
		value:  func(Sample) float64 { return math.NaN() },
	}
}

// Stem is the file name prefix for outputs of this quantity, e.g.
// "defect_density" for defect_density_proton.csv.
func (q Quantity) Stem() string {
	return q.info().stem
}

// Column is the header, including units.
func (q Quantity) Column() string {
	return q.info().column
}

// Value extracts this quantity from a sample.
func (q Quantity) Value(v Sample) float64 {
	return q.info().value(v)
}

func (q Quantity) String() string {
	if v, exists := quantities[q]; exists {
		return v.stem
	}
	return fmt.Sprintf("Quantity(%d)", int(q))
}

// Values extracts this quantity's column from a series.
func (s Series) Values(q Quantity) []float64 {
	return s.column(q.Value)
}
