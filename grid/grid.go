// Package grid holds the table grids recovered from a document's pages. Cells
// carry optional text only; any numeric meaning is recovered downstream.
package grid

import (
	null "gopkg.in/guregu/null.v3"
)

// Cell is the optional text found at one (row, column) position of a grid. An
// invalid Cell means the extractor reported no cell there at all, which is
// distinct from a cell holding the empty string.
type Cell = null.String

// Text returns a present cell.
func Text(s string) Cell {
	return null.StringFrom(s)
}

// Absent returns a cell with no value.
func Absent() Cell {
	return null.String{}
}

// Row is an ordered sequence of cells. Rows within one grid may have
// different lengths.
type Row []Cell

// Get returns the cell at col, or an absent cell if the row is too short.
func (r Row) Get(col int) Cell {
	if col < 0 || col >= len(r) {
		return Absent()
	}
	return r[col]
}

// NewRow is a convenience for building rows from literal strings.
func NewRow(cells ...string) Row {
	out := make(Row, 0, len(cells))
	for _, c := range cells {
		out = append(out, Text(c))
	}
	return out
}

// Grid is one table: an ordered sequence of rows.
type Grid []Row

// Page holds every grid found on a single page, in detection order.
type Page struct {
	Number int
	Grids  []Grid
}

// Document is the full set of grids extracted from one input file.
type Document struct {
	Path  string
	Pages []Page
}

// Grids flattens the document into page order, then grid order within each
// page.
func (d Document) Grids() []Grid {
	var out []Grid
	for _, p := range d.Pages {
		out = append(out, p.Grids...)
	}
	return out
}

// GridCount returns the number of grids across all pages.
func (d Document) GridCount() int {
	n := 0
	for _, p := range d.Pages {
		n += len(p.Grids)
	}
	return n
}

// Empty is true when no page yielded any grid.
func (d Document) Empty() bool {
	return d.GridCount() == 0
}

// Source produces the grids for a document. Implementations must release any
// file handle before returning, whether or not they succeed.
type Source interface {
	Document(path string) (Document, error)
}

// SourceFunc adapts an ordinary function to the Source interface.
type SourceFunc func(path string) (Document, error)

func (f SourceFunc) Document(path string) (Document, error) {
	return f(path)
}
