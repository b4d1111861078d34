package pdfgrid

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/carbocation/srniel/niel"
	"github.com/tsawler/tabula/format"
	"github.com/tsawler/tabula/model"
)

func TestFromTables(t *testing.T) {
	found := []*model.Table{
		{Rows: [][]model.Cell{
			{{Text: "Energy (MeV)"}, {Text: "NIEL (MeV cm2/g)"}},
			{{Text: "1.0"}, {Text: ""}, {Text: "x"}},
		}},
		nil,
		{Rows: [][]model.Cell{{{Text: "2.0"}}}},
	}

	grids := FromTables(found)
	if len(grids) != 2 {
		t.Fatalf("Expected 2 grids, got %d", len(grids))
	}

	g := grids[0]
	if len(g) != 2 || len(g[0]) != 2 || len(g[1]) != 3 {
		t.Fatalf("Row shapes not kept: %v", g)
	}
	if g[0][0].String != "Energy (MeV)" || !g[0][0].Valid {
		t.Errorf("Unexpected header cell %+v", g[0][0])
	}
	if g[1][1].Valid {
		t.Error("Expected an empty cell to be absent")
	}
	if grids[1][0][0].String != "2.0" {
		t.Errorf("Unexpected cell %+v", grids[1][0][0])
	}
}

func TestUnsupportedFormat(t *testing.T) {
	doc, err := New().Document("table.xlsx")
	if err == nil {
		t.Error("Expected an error for an unsupported format")
	}
	if !doc.Empty() || doc.Path != "table.xlsx" {
		t.Errorf("Unexpected document %+v", doc)
	}
}

func TestMissingPDF(t *testing.T) {
	var s Source
	if _, err := s.Document(filepath.Join(t.TempDir(), "missing.pdf")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}

func TestFormatByContent(t *testing.T) {
	p := filepath.Join(t.TempDir(), "proton-niel")
	if err := os.WriteFile(p, []byte("%PDF-1.4\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := Format(p)
	if err != nil {
		t.Fatal(err)
	}
	if f != format.PDF {
		t.Errorf("Expected PDF, got %s", f)
	}

	if f, _ := Format("table.docx"); f != format.DOCX {
		t.Errorf("Expected DOCX from the extension, got %s", f)
	}
}

func TestRuledPDF(t *testing.T) {
	doc, err := New().Document(filepath.Join("testdata", "ruled.pdf"))
	if err != nil {
		t.Fatal(err)
	}
	if doc.GridCount() != 1 {
		t.Fatalf("Expected 1 grid, got %d", doc.GridCount())
	}

	res := niel.Extract(doc)
	if !res.Assignment.Resolved() || res.Assignment.Energy != 0 || res.Assignment.NIEL != 1 {
		t.Errorf("Unexpected assignment %s", res.Assignment)
	}

	want := []niel.Sample{{Energy: 1, NIEL: 0.5}, {Energy: 10, NIEL: 0.05}, {Energy: 100, NIEL: 0.005}}
	got := res.Series.Samples()
	if len(got) != len(want) {
		t.Fatalf("Expected %d samples, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Sample %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}
