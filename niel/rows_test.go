package niel

import (
	"testing"

	"github.com/carbocation/srniel/grid"
)

func TestParseRow(t *testing.T) {
	a := DefaultAssignment()

	cases := []struct {
		Name string
		Row  grid.Row
		Skip SkipReason
		Want Sample
	}{
		{"data with unit", grid.NewRow("12.5 MeV", "3.21e-2"), NotSkipped, Sample{12.5, 0.0321}},
		{"header", grid.NewRow("Energy (MeV)", "NIEL (MeV cm^2/g)"), SkipNoNumber, Sample{}},
		{"missing energy", grid.NewRow("", "1.0"), SkipMissingCell, Sample{}},
		{"blank niel", grid.NewRow("1.0", "   "), SkipMissingCell, Sample{}},
		{"absent cell", grid.Row{grid.Text("1.0"), grid.Absent()}, SkipMissingCell, Sample{}},
		{"short row", grid.NewRow("1.0"), SkipShortRow, Sample{}},
		{"zero energy", grid.NewRow("0", "1.0"), SkipOutOfRange, Sample{}},
		{"zero niel", grid.NewRow("1.0", "0.000"), NotSkipped, Sample{1.0, 0}},
		{"lone dot", grid.NewRow(".", "1.0"), SkipUnparsable, Sample{}},
		{"two dots", grid.NewRow("1.2.3", "1.0"), SkipUnparsable, Sample{}},
		{"overflow", grid.NewRow("1e999", "1.0"), SkipUnparsable, Sample{}},
		{"overflow niel", grid.NewRow("1.0", "1e400"), SkipUnparsable, Sample{}},
		{"fullwidth digits", grid.NewRow("１２", "1.0"), SkipNoNumber, Sample{}},
		{"sign is not part of the token", grid.NewRow("-5", "-1.5E+03"), NotSkipped, Sample{5, 1500}},
		{"footnote marker", grid.NewRow("2.0a", "b4.5e-1"), NotSkipped, Sample{2.0, 0.45}},
		{"extra columns", grid.NewRow("1.5", "2.5", "ignored"), NotSkipped, Sample{1.5, 2.5}},
		{"leading dot", grid.NewRow(".5", "5."), NotSkipped, Sample{0.5, 5}},
	}

	for _, c := range cases {
		res := ParseRow(c.Row, a)
		if res.Skip != c.Skip {
			t.Errorf("%s: expected skip %v, got %v", c.Name, c.Skip, res.Skip)
			continue
		}
		if res.OK() != (c.Skip == NotSkipped) {
			t.Errorf("%s: OK() disagrees with skip reason", c.Name)
		}
		if res.Sample != c.Want {
			t.Errorf("%s: expected %+v, got %+v", c.Name, c.Want, res.Sample)
		}
	}
}

func TestParseRowUsesAssignment(t *testing.T) {
	a := Assignment{Energy: 2, NIEL: 0, EnergyFound: true, NIELFound: true}

	res := ParseRow(grid.NewRow("7e-3", "junk", "100"), a)
	if !res.OK() {
		t.Fatalf("Expected a sample, got skip %v", res.Skip)
	}
	if res.Sample.Energy != 100 || res.Sample.NIEL != 7e-3 {
		t.Errorf("Unexpected sample %+v", res.Sample)
	}

	// Rows must be longer than the largest assigned index.
	if res := ParseRow(grid.NewRow("7e-3", "junk"), a); res.Skip != SkipShortRow {
		t.Errorf("Expected short row skip, got %v", res.Skip)
	}
}

func TestFirstNumber(t *testing.T) {
	cases := map[string]string{
		"12.5 MeV":   "12.5",
		"3.21e-2":    "3.21e-2",
		"E = 4E+05":  "4E+05",
		"1.0e":       "1.0",
		"x9.9e-1y2":  "9.9e-1",
		"(1)":        "1",
		"no numbers": "",
	}

	for in, want := range cases {
		got, ok := FirstNumber(in)
		if got != want || ok != (want != "") {
			t.Errorf("FirstNumber(%q): expected %q, got %q (%v)", in, want, got, ok)
		}
	}
}

func TestExtractRowsTally(t *testing.T) {
	doc := grid.Document{Pages: []grid.Page{
		{Number: 1, Grids: []grid.Grid{{
			grid.NewRow("Energy (MeV)", "NIEL (MeV cm2/g)"),
			grid.NewRow("1.0", "0.5"),
			grid.NewRow("2.0"),
		}}},
		{Number: 2, Grids: []grid.Grid{{
			grid.NewRow("Energy (MeV)", "NIEL (MeV cm2/g)"),
			grid.NewRow("3.0", "0.25"),
			grid.NewRow("", "1"),
		}}},
	}}

	samples, tally := ExtractRows(doc, DefaultAssignment())
	if len(samples) != 2 {
		t.Fatalf("Expected 2 samples, got %d", len(samples))
	}
	if samples[0] != (Sample{1.0, 0.5}) || samples[1] != (Sample{3.0, 0.25}) {
		t.Errorf("Unexpected samples %+v", samples)
	}

	if tally.Accepted() != 2 || tally.Skipped() != 4 {
		t.Errorf("Unexpected tally %s", tally)
	}
	if tally[SkipNoNumber] != 2 || tally[SkipShortRow] != 1 || tally[SkipMissingCell] != 1 {
		t.Errorf("Unexpected tally breakdown %s", tally)
	}
}
