// Package pdfgrid reads the tables of PDF, DOCX and ODT documents into
// grid.Document values.
//
// PDF pages carry no table structure. Ruled tables are rebuilt from the
// lines drawn on the page; pages without rulings go to tabula's geometric
// detector, which works from text positions alone. DOCX and ODT tables are
// read as authored.
package pdfgrid

import (
	"fmt"
	"os"

	"github.com/carbocation/pfx"
	"github.com/carbocation/srniel/grid"
	"github.com/tsawler/tabula/core"
	"github.com/tsawler/tabula/docx"
	"github.com/tsawler/tabula/format"
	"github.com/tsawler/tabula/graphicsstate"
	"github.com/tsawler/tabula/model"
	"github.com/tsawler/tabula/odt"
	"github.com/tsawler/tabula/pages"
	"github.com/tsawler/tabula/reader"
	"github.com/tsawler/tabula/tables"
	"github.com/tsawler/tabula/text"
)

// Source implements grid.Source.
type Source struct {
	// Detector finds tables on PDF pages that have no ruled table. Nil
	// means tabula's geometric detector.
	Detector tables.Detector
}

var _ grid.Source = (*Source)(nil)

// New returns a Source using the geometric detector.
func New() *Source {
	return &Source{Detector: tables.NewGeometricDetector()}
}

func (s *Source) detector() tables.Detector {
	if s == nil || s.Detector == nil {
		return tables.NewGeometricDetector()
	}
	return s.Detector
}

// Document reads every table in the file at path. The format is chosen by
// extension, or by content when the extension is not recognized.
func (s *Source) Document(path string) (grid.Document, error) {
	f, err := Format(path)
	if err != nil {
		return grid.Document{Path: path}, err
	}

	switch f {
	case format.PDF:
		return s.pdf(path)
	case format.DOCX, format.ODT:
		return office(path, f)
	default:
		return grid.Document{Path: path}, fmt.Errorf("%s: unsupported document format %s", path, f)
	}
}

// Format returns the document format of a local file.
func Format(path string) (format.Format, error) {
	if f := format.Detect(path); f != format.Unknown {
		return f, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return format.Unknown, pfx.Err(err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return format.Unknown, pfx.Err(err)
	}

	return format.DetectFromReader(file, info.Size())
}

func (s *Source) pdf(path string) (grid.Document, error) {
	out := grid.Document{Path: path}

	r, err := reader.Open(path)
	if err != nil {
		return out, pfx.Err(err)
	}
	defer r.Close()

	n, err := r.PageCount()
	if err != nil {
		return out, pfx.Err(err)
	}

	det := s.detector()
	for i := 0; i < n; i++ {
		page, err := r.GetPage(i)
		if err != nil {
			return out, fmt.Errorf("page %d: %w", i+1, err)
		}

		fragments, err := r.ExtractTextFragments(page)
		if err != nil {
			return out, fmt.Errorf("page %d: %w", i+1, err)
		}

		mp := modelPage(page, fragments)
		mp.Number = i + 1

		found := Lattice(mp)
		if len(found) == 0 {
			if found, err = det.Detect(mp); err != nil {
				return out, fmt.Errorf("page %d: %w", i+1, err)
			}
		}

		out.Pages = append(out.Pages, grid.Page{Number: i + 1, Grids: FromTables(found)})
	}

	return out, nil
}

// modelPage lays out one PDF page for table detection: its text fragments
// and whatever rules and boxes the content streams draw. Pages whose
// drawing operators cannot be read are detected from text alone.
func modelPage(page *pages.Page, fragments []text.TextFragment) *model.Page {
	w, _ := page.Width()
	h, _ := page.Height()
	mp := model.NewPage(w, h)

	for _, f := range fragments {
		mp.RawText = append(mp.RawText, model.TextFragment{
			Text:     f.Text,
			BBox:     model.BBox{X: f.X, Y: f.Y, Width: f.Width, Height: f.Height},
			FontSize: f.FontSize,
			FontName: f.FontName,
		})
	}

	contents, err := page.Contents()
	if err != nil {
		return mp
	}

	ge := graphicsstate.NewGraphicsExtractor()
	for _, obj := range contents {
		stream, ok := obj.(*core.Stream)
		if !ok {
			continue
		}
		data, err := stream.Decode()
		if err != nil {
			continue
		}
		if err := ge.ExtractFromBytes(data); err != nil {
			continue
		}
	}
	mp.RawLines = append(mp.RawLines, ge.ToModelLines()...)
	mp.RawLines = append(mp.RawLines, ge.ToModelRectangles()...)

	return mp
}

func office(path string, f format.Format) (grid.Document, error) {
	out := grid.Document{Path: path}

	var doc *model.Document
	switch f {
	case format.DOCX:
		r, err := docx.Open(path)
		if err != nil {
			return out, pfx.Err(err)
		}
		defer r.Close()
		if doc, err = r.Document(); err != nil {
			return out, pfx.Err(err)
		}
	case format.ODT:
		r, err := odt.Open(path)
		if err != nil {
			return out, pfx.Err(err)
		}
		defer r.Close()
		if doc, err = r.Document(); err != nil {
			return out, pfx.Err(err)
		}
	default:
		return out, fmt.Errorf("%s: %s is not an office format", path, f)
	}

	for i, page := range doc.Pages {
		if page == nil {
			continue
		}
		out.Pages = append(out.Pages, grid.Page{Number: i + 1, Grids: FromTables(page.ExtractTables())})
	}

	return out, nil
}

// FromTables converts detected tables to grids, keeping row and cell order.
// A cell with no text is absent.
func FromTables(found []*model.Table) []grid.Grid {
	out := make([]grid.Grid, 0, len(found))
	for _, t := range found {
		if t == nil {
			continue
		}

		g := make(grid.Grid, 0, len(t.Rows))
		for _, cells := range t.Rows {
			row := make(grid.Row, len(cells))
			for j, c := range cells {
				if c.Text == "" {
					row[j] = grid.Absent()
					continue
				}
				row[j] = grid.Text(c.Text)
			}
			g = append(g, row)
		}
		out = append(out, g)
	}

	return out
}
