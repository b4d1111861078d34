package damage

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/carbocation/pfx"
	"github.com/carbocation/srniel"
)

// Constants are the run-wide inputs shared by every species. They must be
// identical across species for the derived outputs to be comparable.
type Constants struct {
	Fluence     float64 `json:"fluence"`      // cm^-2
	Density     float64 `json:"density"`      // g cm^-3
	Efficiency  float64 `json:"efficiency"`   // dimensionless NRT displacement efficiency
	ThresholdEV float64 `json:"threshold_ev"` // eV
}

// DefaultConstants describes silicon at a fluence of 1e14 cm^-2.
func DefaultConstants() Constants {
	return Constants{
		Fluence:     1e14,
		Density:     2.33,
		Efficiency:  0.8,
		ThresholdEV: 25.0,
	}
}

// Validate requires every constant to be strictly positive.
func (c Constants) Validate() error {
	checks := []struct {
		name  string
		value float64
	}{
		{"fluence", c.Fluence},
		{"density", c.Density},
		{"efficiency", c.Efficiency},
		{"threshold_ev", c.ThresholdEV},
	}

	for _, v := range checks {
		if !(v.value > 0) {
			return fmt.Errorf("%s must be positive, got %g", v.name, v.value)
		}
	}

	return nil
}

func (c Constants) String() string {
	return fmt.Sprintf("fluence %.2e cm^-2, density %g g/cm^3, efficiency %g, threshold %g eV", c.Fluence, c.Density, c.Efficiency, c.ThresholdEV)
}

// ParseConstantsFromPath reads a JSON file of constants. Keys missing from the
// file keep their DefaultConstants value.
func ParseConstantsFromPath(path string) (Constants, error) {
	out := DefaultConstants()

	f, err := os.Open(srniel.ExpandHome(path))
	if err != nil {
		return out, pfx.Err(err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(&out); err != nil {
		if e, ok := err.(*json.SyntaxError); ok {
			log.Printf("syntax error at byte offset %d", e.Offset)
		}
		return out, pfx.Err(err)
	}

	return out, pfx.Err(out.Validate())
}
