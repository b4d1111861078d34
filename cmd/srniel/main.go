// srniel recovers (energy, NIEL) tables for protons and electrons in silicon
// from two reference documents, writes the recovered series, derives
// displacement damage dose, defect density and defect generation rate from
// them, and plots each quantity for both species on log-log axes.
//
// Documents may be PDF, DOCX or ODT files, either local or on Google Storage
// (gs://bucket/path).
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"cloud.google.com/go/storage"
	"github.com/carbocation/srniel"
	_ "github.com/carbocation/srniel/compileinfoprint"
	"github.com/carbocation/srniel/damage"
	"github.com/carbocation/srniel/pdfgrid"
	"github.com/carbocation/srniel/plot"
)

// Safe for concurrent use by multiple goroutines so we'll make this a global
var client *storage.Client

func main() {
	var outDir, configPath string
	var derived, debug bool
	var fluence, density, efficiency, thresholdEV float64
	geometry := plot.DefaultGeometry()

	flag.StringVar(&outDir, "out", "", "Directory for the output files. Defaults to the directory of the proton document.")
	flag.StringVar(&configPath, "config", "", "(Optional) JSON file with material constants: fluence, density, efficiency, threshold_ev.")
	flag.Float64Var(&fluence, "fluence", 0, "Particle fluence in cm^-2. Overrides -config. (Default 1e14)")
	flag.Float64Var(&density, "density", 0, "Material density in g/cm^3. Overrides -config. (Default 2.33, silicon)")
	flag.Float64Var(&efficiency, "efficiency", 0, "Displacement efficiency. Overrides -config. (Default 0.8)")
	flag.Float64Var(&thresholdEV, "threshold_ev", 0, "Displacement threshold energy in eV. Overrides -config. (Default 25)")
	flag.BoolVar(&derived, "derived", false, "Also write every derived column for each species to derived_<species>.csv")
	flag.BoolVar(&debug, "debug", false, "Log why rows were skipped for each document.")
	flag.IntVar(&geometry.Width, "width", geometry.Width, "Chart width in pixels.")
	flag.IntVar(&geometry.Height, "height", geometry.Height, "Chart height in pixels.")
	flag.Float64Var(&geometry.DPI, "dpi", geometry.DPI, "Chart resolution in dots per inch.")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] proton-document electron-document\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}

	constants := damage.DefaultConstants()
	if configPath != "" {
		var err error
		constants, err = damage.ParseConstantsFromPath(configPath)
		if err != nil {
			log.Fatalln(err)
		}
	}

	// Only flags the user actually passed override the config.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "fluence":
			constants.Fluence = fluence
		case "density":
			constants.Density = density
		case "efficiency":
			constants.Efficiency = efficiency
		case "threshold_ev":
			constants.ThresholdEV = thresholdEV
		}
	})
	if err := constants.Validate(); err != nil {
		log.Fatalln(err)
	}

	if geometry.Width <= 0 || geometry.Height <= 0 || geometry.DPI <= 0 {
		log.Fatalf("Chart geometry must be positive, got %dx%d at %v DPI\n", geometry.Width, geometry.Height, geometry.DPI)
	}

	docs := []document{
		{Species: "proton", Path: flag.Arg(0)},
		{Species: "electron", Path: flag.Arg(1)},
	}

	// Initialize the Google Storage client, but only if one of our documents
	// is a Google Storage path.
	for _, d := range docs {
		if srniel.IsGoogleStoragePath(d.Path) {
			var err error
			client, err = storage.NewClient(context.Background())
			if err != nil {
				log.Fatalln(err)
			}
			break
		}
	}

	if outDir == "" {
		outDir = defaultOutputDir(docs[0].Path)
	}

	opts := options{
		OutDir:    outDir,
		Constants: constants,
		Geometry:  geometry,
		Derived:   derived,
		Debug:     debug,
	}

	if err := run(context.Background(), pdfgrid.New(), docs, opts); err != nil {
		log.Fatalln(err)
	}

	log.Println("Quitting")
}

// defaultOutputDir is the directory of a local document, or the working
// directory for a Google Storage document.
func defaultOutputDir(p string) string {
	if srniel.IsGoogleStoragePath(p) {
		return "."
	}

	abs, err := srniel.AbsPath(p)
	if err != nil {
		return filepath.Dir(srniel.ExpandHome(p))
	}

	return filepath.Dir(abs)
}
