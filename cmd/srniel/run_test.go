package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/carbocation/srniel/damage"
	"github.com/carbocation/srniel/grid"
	"github.com/carbocation/srniel/plot"
	"github.com/carbocation/srniel/seriesio"
)

func fakeSource(t *testing.T) grid.Source {
	return grid.SourceFunc(func(path string) (grid.Document, error) {
		switch filepath.Base(path) {
		case "proton.pdf":
			return grid.Document{Path: path, Pages: []grid.Page{{Number: 1, Grids: []grid.Grid{{
				grid.NewRow("Energy (MeV)", "NIEL (MeV cm2/g)"),
				grid.NewRow("1.0", "0.5"),
				grid.NewRow("10", "0.05"),
				grid.NewRow("100 MeV", "5e-3"),
			}}}}}, nil
		case "electron.pdf":
			return grid.Document{Path: path}, fmt.Errorf("unreadable")
		}
		t.Fatalf("Unexpected document %s", path)
		return grid.Document{}, nil
	})
}

func touch(t *testing.T, dir, name string) string {
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestRunOneSpeciesMissingData(t *testing.T) {
	dir := t.TempDir()
	docs := []document{
		{Species: "proton", Path: touch(t, dir, "proton.pdf")},
		{Species: "electron", Path: touch(t, dir, "electron.pdf")},
	}
	out := filepath.Join(dir, "out")
	opts := options{
		OutDir:    out,
		Constants: damage.DefaultConstants(),
		Geometry:  plot.Geometry{Width: 600, Height: 360, DPI: 72},
		Derived:   true,
	}

	if err := run(context.Background(), fakeSource(t), docs, opts); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{
		"niel_proton.csv",
		"defect_density_proton.csv",
		"defect_generation_rate_proton.csv",
		"derived_proton.csv",
		"niel_plot.png",
		"defect_density_plot.png",
		"defect_generation_rate_plot.png",
	} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("Expected %s: %v", name, err)
		}
	}

	if _, err := os.Stat(filepath.Join(out, "niel_electron.csv")); !os.IsNotExist(err) {
		t.Error("Expected no electron output")
	}

	s, err := seriesio.ReadNIELFile(filepath.Join(out, "niel_proton.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != 3 || s.At(2).Energy != 100 || s.At(2).NIEL != 5e-3 {
		t.Errorf("Unexpected series %+v", s.Samples())
	}
}

func TestRunMissingDocuments(t *testing.T) {
	dir := t.TempDir()
	docs := []document{
		{Species: "proton", Path: filepath.Join(dir, "proton.pdf")},
		{Species: "electron", Path: filepath.Join(dir, "electron.pdf")},
	}

	err := run(context.Background(), fakeSource(t), docs, options{OutDir: dir, Constants: damage.DefaultConstants()})
	if err == nil {
		t.Fatal("Expected an error for missing documents")
	}
	if !strings.Contains(err.Error(), "proton.pdf") || !strings.Contains(err.Error(), "electron.pdf") {
		t.Errorf("Expected every missing document to be named: %v", err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("Expected no outputs, found %d entries", len(entries))
	}
}

func TestDefaultOutputDir(t *testing.T) {
	if got := defaultOutputDir("gs://bucket/niel/proton.pdf"); got != "." {
		t.Errorf("Expected the working directory for a Google Storage document, got %s", got)
	}

	dir := t.TempDir()
	if got := defaultOutputDir(filepath.Join(dir, "proton.pdf")); got != dir {
		t.Errorf("Expected %s, got %s", dir, got)
	}
}
