// Package damage derives displacement damage quantities from a NIEL series:
// displacement damage dose, NRT defect density, and defect generation rate.
package damage

import (
	"github.com/carbocation/srniel/niel"
)

// EVToMeV converts electron-volts to mega-electron-volts.
const EVToMeV = 1e-6

// Sample carries every quantity computed for one energy. Fields for stages
// that have not run yet are zero.
type Sample struct {
	Energy         float64 // MeV
	NIEL           float64 // MeV cm^2 g^-1
	Dose           float64 // MeV g^-1
	DefectDensity  float64 // cm^-3
	GenerationRate float64 // cm^-1
}

// Series is a derived series in ascending energy order.
type Series []Sample

// Empty is true when there is nothing to write or plot.
func (s Series) Empty() bool {
	return len(s) == 0
}

// Energies returns the energy column.
func (s Series) Energies() []float64 {
	return s.column(func(v Sample) float64 { return v.Energy })
}

// Doses returns the dose column.
func (s Series) Doses() []float64 {
	return s.column(func(v Sample) float64 { return v.Dose })
}

// DefectDensities returns the defect density column.
func (s Series) DefectDensities() []float64 {
	return s.column(func(v Sample) float64 { return v.DefectDensity })
}

// GenerationRates returns the generation rate column.
func (s Series) GenerationRates() []float64 {
	return s.column(func(v Sample) float64 { return v.GenerationRate })
}

func (s Series) column(f func(Sample) float64) []float64 {
	out := make([]float64, 0, len(s))
	for _, v := range s {
		out = append(out, f(v))
	}
	return out
}

func (s Series) mapped(f func(*Sample)) Series {
	if len(s) == 0 {
		return nil
	}
	out := make(Series, len(s))
	copy(out, s)
	for i := range out {
		f(&out[i])
	}
	return out
}

// Dose computes the displacement damage dose, NIEL x fluence, for every
// sample.
func Dose(s niel.Series, c Constants) Series {
	if s.Empty() {
		return nil
	}

	out := make(Series, 0, s.Len())
	for _, v := range s.Samples() {
		out = append(out, Sample{
			Energy: v.Energy,
			NIEL:   v.NIEL,
			Dose:   v.NIEL * c.Fluence,
		})
	}
	return out
}

// DefectDensity applies the NRT relation
//
//	N = (dose x density x efficiency) / (2 x Ed)
//
// with the threshold energy Ed converted from eV to MeV.
func DefectDensity(s Series, c Constants) Series {
	ed := c.ThresholdEV * EVToMeV
	return s.mapped(func(v *Sample) {
		v.DefectDensity = (v.Dose * c.Density * c.Efficiency) / (2.0 * ed)
	})
}

// GenerationRate divides the defect density by the fluence.
func GenerationRate(s Series, c Constants) Series {
	return s.mapped(func(v *Sample) {
		v.GenerationRate = v.DefectDensity / c.Fluence
	})
}

// Run chains all three stages.
func Run(s niel.Series, c Constants) Series {
	return GenerationRate(DefectDensity(Dose(s, c), c), c)
}
