package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	"github.com/carbocation/srniel"
	"github.com/carbocation/srniel/damage"
	"github.com/carbocation/srniel/grid"
	"github.com/carbocation/srniel/niel"
	"github.com/carbocation/srniel/plot"
	"github.com/carbocation/srniel/seriesio"
	"github.com/carbocation/srniel/summary"
)

type document struct {
	Species string
	Path    string
}

type options struct {
	OutDir    string
	Constants damage.Constants
	Geometry  plot.Geometry
	Derived   bool
	Debug     bool
}

// speciesResult is everything computed for one document.
type speciesResult struct {
	Species string
	NIEL    niel.Series
	Derived damage.Series
}

// quantityOutputs are written in this order, for both species.
var quantityOutputs = []damage.Quantity{
	damage.QuantityNIEL,
	damage.QuantityDefectDensity,
	damage.QuantityGenerationRate,
}

func run(ctx context.Context, src grid.Source, docs []document, opts options) error {
	paths := make([]string, 0, len(docs))
	for _, d := range docs {
		paths = append(paths, d.Path)
	}

	missing, err := srniel.MissingDocuments(ctx, paths, client)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		for _, p := range missing {
			log.Printf("Input document not found: %s\n", p)
		}
		return fmt.Errorf("%d of %d input documents not found: %s", len(missing), len(paths), strings.Join(missing, ", "))
	}

	log.Println("Using", opts.Constants)

	results := make([]speciesResult, 0, len(docs))
	for _, d := range docs {
		s := extractSpecies(ctx, src, d, opts.Debug)
		results = append(results, speciesResult{
			Species: d.Species,
			NIEL:    s,
			Derived: damage.Run(s, opts.Constants),
		})
	}

	if err := writeSeries(results, opts); err != nil {
		return err
	}

	return writePlots(results, opts)
}

// extractSpecies stages and reads one document. A document that cannot be
// read yields an empty series so the other species can still be processed.
func extractSpecies(ctx context.Context, src grid.Source, d document, debug bool) niel.Series {
	f, err := srniel.DocumentFormat(ctx, d.Path, client)
	if err != nil {
		log.Printf("Could not identify %s: %v\n", d.Path, err)
		return niel.Series{}
	} else if !srniel.Supported(f) {
		log.Printf("%s: cannot read tables from a document of format %s\n", d.Path, f)
		return niel.Series{}
	}

	log.Printf("Extracting %s NIEL data from %s (%s)\n", d.Species, d.Path, f)

	local, cleanup, err := srniel.Stage(ctx, d.Path, client)
	defer cleanup()
	if err != nil {
		log.Printf("Could not stage %s: %v\n", d.Path, err)
		return niel.Series{}
	}

	doc, err := src.Document(local)
	if err != nil {
		log.Printf("Could not extract tables from %s: %v\n", d.Path, err)
		return niel.Series{}
	}

	res := niel.Extract(doc)

	log.Printf("%s: %d grids on %d pages; %s\n", d.Species, doc.GridCount(), len(doc.Pages), res.Assignment)
	if roles := res.Assignment.Unresolved(); len(roles) > 0 {
		names := make([]string, 0, len(roles))
		for _, r := range roles {
			names = append(names, r.String())
		}
		log.Printf("%s: no header found for %s; using the default column position\n", d.Species, strings.Join(names, " and "))
	}
	if debug {
		log.Printf("%s: rows %s\n", d.Species, res.Tally)
	}
	log.Printf("%s: %d samples\n", d.Species, res.Series.Len())

	return res.Series
}

func writeSeries(results []speciesResult, opts options) error {
	for _, q := range quantityOutputs {
		for _, r := range results {
			if r.Derived.Empty() {
				log.Printf("No %s data; skipping %s\n", r.Species, seriesio.FileName(q, r.Species))
				continue
			}

			path := filepath.Join(opts.OutDir, seriesio.FileName(q, r.Species))
			if err := seriesio.WriteFile(path, func(w io.Writer) error {
				return seriesio.WriteQuantity(w, r.Derived, q)
			}); err != nil {
				return err
			}

			log.Printf("Wrote %s\n%s\n", path, summary.Table(
				[]string{damage.EnergyColumn, q.Column()},
				[][]float64{r.Derived.Energies(), r.Derived.Values(q)},
			))
		}
	}

	if !opts.Derived {
		return nil
	}

	for _, r := range results {
		if r.Derived.Empty() {
			continue
		}

		path := filepath.Join(opts.OutDir, seriesio.DerivedFileName(r.Species))
		if err := seriesio.WriteFile(path, func(w io.Writer) error {
			return seriesio.WriteDerived(w, r.Derived)
		}); err != nil {
			return err
		}
		log.Println("Wrote", path)
	}

	return nil
}

func writePlots(results []speciesResult, opts options) error {
	for _, q := range quantityOutputs {
		lines := make([]plot.Line, 0, len(results))
		for _, r := range results {
			if r.Derived.Empty() {
				continue
			}
			lines = append(lines, plot.SpeciesLine(r.Species, r.Derived, q))
		}

		path := filepath.Join(opts.OutDir, plot.FileName(q))
		if len(lines) == 0 {
			log.Printf("No data for any species; skipping %s\n", path)
			continue
		}

		err := plot.WriteFile(path, plot.QuantityFigure(q, opts.Constants, opts.Geometry), lines)
		if err == plot.ErrNothingToPlot {
			log.Printf("No positive %s values; skipping %s\n", q, path)
			continue
		} else if err != nil {
			return err
		}

		log.Println("Wrote", path)
	}

	return nil
}
