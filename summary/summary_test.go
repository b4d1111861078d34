package summary

import (
	"math"
	"strings"
	"testing"
)

func TestDescribe(t *testing.T) {
	d, err := Describe([]float64{4, 1, 3, 2})
	if err != nil {
		t.Fatal(err)
	}

	if d.Count != 4 || d.Mean != 2.5 || d.Min != 1 || d.Max != 4 {
		t.Errorf("Unexpected description %+v", d)
	}
	if math.Abs(d.Std-math.Sqrt(5.0/3.0)) > 1e-12 {
		t.Errorf("Expected sample standard deviation %g, got %g", math.Sqrt(5.0/3.0), d.Std)
	}
	if d.Q25 > d.Q50 || d.Q50 > d.Q75 || d.Q25 < d.Min || d.Q75 > d.Max {
		t.Errorf("Quartiles out of order: %+v", d)
	}
}

func TestDescribeDoesNotSortInput(t *testing.T) {
	values := []float64{3, 1, 2}
	if _, err := Describe(values); err != nil {
		t.Fatal(err)
	}
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("Input was reordered: %v", values)
	}
}

func TestDescribeSingleValue(t *testing.T) {
	d, err := Describe([]float64{7})
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsNaN(d.Std) {
		t.Errorf("Expected NaN std for one value, got %g", d.Std)
	}
	if d.Q25 != 7 || d.Q50 != 7 || d.Q75 != 7 {
		t.Errorf("Unexpected quartiles %+v", d)
	}
}

func TestDescribeEmpty(t *testing.T) {
	if _, err := Describe(nil); err == nil {
		t.Error("Expected an error for an empty column")
	}
}

func TestTable(t *testing.T) {
	out := Table([]string{"Energy (MeV)", "NIEL (MeV cm^2 g^-1)"}, [][]float64{{1, 10, 100}, nil})

	if !strings.Contains(out, "Energy (MeV)\ncount 3") {
		t.Errorf("Missing energy block in %q", out)
	}
	if !strings.Contains(out, "NIEL (MeV cm^2 g^-1)\n(empty)") {
		t.Errorf("Missing empty marker in %q", out)
	}
}
