package seriesio

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/carbocation/pfx"
	"github.com/carbocation/srniel/damage"
	"github.com/carbocation/srniel/niel"
	"github.com/csimplestring/go-csv/detector"
	"github.com/gocarina/gocsv"
)

// Table is a two-column file read back from disk. The header row is kept as
// metadata.
type Table struct {
	Header [2]string
	X      []float64
	Y      []float64
}

// Len is the number of data rows.
func (t Table) Len() int {
	return len(t.X)
}

type nielRow struct {
	Energy Float `csv:"Energy (MeV)"`
	NIEL   Float `csv:"NIEL (MeV cm^2 g^-1)"`
}

// DetermineDelimiter returns the single most likely rune that would delimit the
// values in the reader, assuming a CSV-like file.
func DetermineDelimiter(r io.Reader) rune {
	d := detector.New()
	delimiters := d.DetectDelimiter(r, '"')

	for _, v := range delimiters {
		if len(v) == 0 {
			continue
		}
		c := rune(v[0])
		if unicode.IsLetter(c) || unicode.IsDigit(c) || c == '.' || c == '+' || c == '-' || c == '"' || c == '\n' || c == '\r' {
			continue
		}
		return c
	}

	return ','
}

// newReader strips a leading byte order mark and configures a csv.Reader with
// the detected delimiter.
func newReader(data []byte) *csv.Reader {
	data = bytes.TrimPrefix(data, []byte(utf8BOM))

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = DetermineDelimiter(bytes.NewReader(data))
	r.TrimLeadingSpace = true
	return r
}

// ReadPairs reads a two-column file written by WritePairs.
func ReadPairs(in io.Reader) (Table, error) {
	out := Table{}

	data, err := io.ReadAll(in)
	if err != nil {
		return out, pfx.Err(err)
	}

	r := newReader(data)
	header, err := r.Read()
	if err == io.EOF {
		return out, fmt.Errorf("empty file: no header row")
	} else if err != nil {
		return out, pfx.Err(err)
	}
	if len(header) != 2 {
		return out, fmt.Errorf("expected 2 columns, header has %d: %v", len(header), header)
	}
	out.Header = [2]string{strings.TrimSpace(header[0]), strings.TrimSpace(header[1])}

	rows := []*pairRow{}
	if err := gocsv.UnmarshalCSVWithoutHeaders(r, &rows); err == gocsv.ErrEmptyCSVFile {
		return out, nil
	} else if err != nil {
		return out, pfx.Err(err)
	}

	for _, row := range rows {
		out.X = append(out.X, float64(row.X))
		out.Y = append(out.Y, float64(row.Y))
	}

	return out, nil
}

// ReadNIEL reads a file written for damage.QuantityNIEL back into a series.
// Columns are matched by header name, so their order does not matter.
func ReadNIEL(in io.Reader) (niel.Series, error) {
	data, err := io.ReadAll(in)
	if err != nil {
		return niel.Series{}, pfx.Err(err)
	}

	rows := []*nielRow{}
	if err := gocsv.UnmarshalCSV(newReader(data), &rows); err == gocsv.ErrEmptyCSVFile {
		return niel.Series{}, nil
	} else if err != nil {
		return niel.Series{}, pfx.Err(err)
	}

	samples := make([]niel.Sample, 0, len(rows))
	for _, row := range rows {
		samples = append(samples, niel.Sample{Energy: float64(row.Energy), NIEL: float64(row.NIEL)})
	}

	return niel.BuildSeries(samples), nil
}

// ReadNIELFile opens path and reads it with ReadNIEL.
func ReadNIELFile(path string) (niel.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return niel.Series{}, pfx.Err(err)
	}
	defer f.Close()

	return ReadNIEL(f)
}

// WriteNIEL writes a NIEL series in the same layout as WriteQuantity with
// damage.QuantityNIEL.
func WriteNIEL(w io.Writer, s niel.Series) error {
	return WritePairs(w, damage.EnergyColumn, damage.QuantityNIEL.Column(), s.Energies(), s.Values())
}
