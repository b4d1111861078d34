package plot

import (
	"fmt"
	"strings"

	"github.com/carbocation/srniel/damage"
)

// FileName is the image name for a quantity, e.g. niel_plot.png.
func FileName(q damage.Quantity) string {
	return q.Stem() + "_plot.png"
}

// QuantityFigure returns the title and axis names used when plotting q
// against energy.
func QuantityFigure(q damage.Quantity, c damage.Constants, g Geometry) Figure {
	f := Figure{
		XName:    damage.EnergyColumn,
		YName:    q.Column(),
		Geometry: g,
	}

	switch q {
	case damage.QuantityNIEL:
		f.Title = "SR-NIEL: Non-Ionizing Energy Loss for Silicon"
	case damage.QuantityDefectDensity:
		f.Title = fmt.Sprintf("Defect Density vs Energy (Fluence: %.2e cm^-2)", c.Fluence)
	case damage.QuantityGenerationRate:
		f.Title = "Defect Generation Rate vs Energy"
	default:
		f.Title = fmt.Sprintf("%s vs Energy", q.Column())
	}

	return f
}

// SpeciesLine is one species' quantity against energy, labelled and styled
// for that species.
func SpeciesLine(species string, s damage.Series, q damage.Quantity) Line {
	label := species
	if len(label) > 0 {
		label = strings.ToUpper(label[:1]) + label[1:]
	}

	return Line{
		Label: label,
		X:     s.Energies(),
		Y:     s.Values(q),
		Style: SpeciesStyle(species),
	}
}
