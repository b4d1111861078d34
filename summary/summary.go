// Package summary computes the describe block logged for every written series.
package summary

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// Description holds count, mean, sample standard deviation, the extrema and
// the quartiles of a column.
type Description struct {
	Count int
	Mean  float64
	Std   float64
	Min   float64
	Q25   float64
	Q50   float64
	Q75   float64
	Max   float64
}

// Describe summarizes values. The standard deviation of a single value is NaN.
// An empty input is an error.
func Describe(values []float64) (Description, error) {
	out := Description{Count: len(values)}

	data := stats.LoadRawData(values)
	if data.Len() < 1 {
		return out, fmt.Errorf("cannot describe an empty column")
	}

	var err error
	if out.Mean, err = data.Mean(); err != nil {
		return out, err
	}
	if out.Min, err = data.Min(); err != nil {
		return out, err
	}
	if out.Max, err = data.Max(); err != nil {
		return out, err
	}

	out.Std = math.NaN()
	if data.Len() > 1 {
		if out.Std, err = data.StandardDeviationSample(); err != nil {
			return out, err
		}
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	out.Q25 = stat.Quantile(0.25, stat.LinInterp, sorted, nil)
	out.Q50 = stat.Quantile(0.50, stat.LinInterp, sorted, nil)
	out.Q75 = stat.Quantile(0.75, stat.LinInterp, sorted, nil)

	return out, nil
}

func (d Description) String() string {
	rows := []struct {
		label string
		value string
	}{
		{"count", fmt.Sprintf("%d", d.Count)},
		{"mean", fmt.Sprintf("%.6e", d.Mean)},
		{"std", fmt.Sprintf("%.6e", d.Std)},
		{"min", fmt.Sprintf("%.6e", d.Min)},
		{"25%", fmt.Sprintf("%.6e", d.Q25)},
		{"50%", fmt.Sprintf("%.6e", d.Q50)},
		{"75%", fmt.Sprintf("%.6e", d.Q75)},
		{"max", fmt.Sprintf("%.6e", d.Max)},
	}

	out := make([]string, 0, len(rows))
	for _, v := range rows {
		out = append(out, fmt.Sprintf("%-6s%s", v.label, v.value))
	}

	return strings.Join(out, "\n")
}

// Table describes each named column, in order, and renders one block per
// column under its name. Empty columns are reported as such.
func Table(names []string, columns [][]float64) string {
	blocks := make([]string, 0, len(names))
	for i, name := range names {
		if i >= len(columns) || len(columns[i]) == 0 {
			blocks = append(blocks, name+"\n(empty)")
			continue
		}

		d, err := Describe(columns[i])
		if err != nil {
			blocks = append(blocks, fmt.Sprintf("%s\n(%v)", name, err))
			continue
		}
		blocks = append(blocks, name+"\n"+d.String())
	}

	return strings.Join(blocks, "\n\n")
}
