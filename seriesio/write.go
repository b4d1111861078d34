// Package seriesio persists NIEL and derived series as delimited text and
// reads them back.
package seriesio

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/carbocation/srniel/damage"
	"github.com/gocarina/gocsv"
)

// utf8BOM is written at the start of every file so spreadsheet programs
// detect the encoding.
const utf8BOM = "\uFEFF"

// Float is written in the shortest form that reads back to the same value,
// switching to an exponent for very large or small magnitudes, e.g.
// 1.196688e+17 rather than 119668800000000000.
type Float float64

func (f Float) MarshalCSV() (string, error) {
	return strconv.FormatFloat(float64(f), 'g', -1, 64), nil
}

func (f *Float) UnmarshalCSV(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return err
	}
	*f = Float(v)
	return nil
}

type pairRow struct {
	X Float `csv:"x"`
	Y Float `csv:"y"`
}

type derivedRow struct {
	Energy         Float `csv:"Energy (MeV)"`
	NIEL           Float `csv:"NIEL (MeV cm^2 g^-1)"`
	Dose           Float `csv:"DDD (MeV/g)"`
	DefectDensity  Float `csv:"Defect Density (cm^-3)"`
	GenerationRate Float `csv:"Defect Generation Rate (cm^-1)"`
}

func newWriter(w io.Writer) *gocsv.SafeCSVWriter {
	return gocsv.NewSafeCSVWriter(csv.NewWriter(w))
}

// WritePairs writes a two-column table: a header row naming both columns, then
// one row per (x, y) pair in the given order.
func WritePairs(w io.Writer, xName, yName string, xs, ys []float64) error {
	if len(xs) != len(ys) {
		return fmt.Errorf("column length mismatch: %d %s values, %d %s values", len(xs), xName, len(ys), yName)
	}

	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return err
	}

	out := newWriter(w)
	if err := out.Write([]string{xName, yName}); err != nil {
		return err
	}

	rows := make([]pairRow, 0, len(xs))
	for i := range xs {
		rows = append(rows, pairRow{X: Float(xs[i]), Y: Float(ys[i])})
	}

	if len(rows) == 0 {
		out.Flush()
		return out.Error()
	}

	return gocsv.MarshalCSVWithoutHeaders(&rows, out)
}

// WriteQuantity writes energy against one quantity of a derived series.
func WriteQuantity(w io.Writer, s damage.Series, q damage.Quantity) error {
	return WritePairs(w, damage.EnergyColumn, q.Column(), s.Energies(), s.Values(q))
}

// WriteDerived writes every column of a derived series.
func WriteDerived(w io.Writer, s damage.Series) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return err
	}

	rows := make([]derivedRow, 0, len(s))
	for _, v := range s {
		rows = append(rows, derivedRow{
			Energy:         Float(v.Energy),
			NIEL:           Float(v.NIEL),
			Dose:           Float(v.Dose),
			DefectDensity:  Float(v.DefectDensity),
			GenerationRate: Float(v.GenerationRate),
		})
	}

	return gocsv.MarshalCSV(&rows, newWriter(w))
}

// FileName is the output name for one species and quantity, for example
// defect_density_proton.csv.
func FileName(q damage.Quantity, species string) string {
	return fmt.Sprintf("%s_%s.csv", q.Stem(), species)
}

// DerivedFileName is the output name for the full derived table.
func DerivedFileName(species string) string {
	return fmt.Sprintf("derived_%s.csv", species)
}

// WriteFile creates (or truncates) path and hands a buffered writer to fill.
func WriteFile(path string, fill func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return pfx.Err(err)
	}

	f, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}

	buf := bufio.NewWriter(f)
	if err := fill(buf); err != nil {
		f.Close()
		return pfx.Err(fmt.Errorf("%s: %w", path, err))
	}
	if err := buf.Flush(); err != nil {
		f.Close()
		return pfx.Err(err)
	}

	return pfx.Err(f.Close())
}
