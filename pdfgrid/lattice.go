package pdfgrid

import (
	"math"
	"sort"
	"strings"

	"github.com/theodesp/unionfind"
	"github.com/tsawler/tabula/model"
)

// snap is the distance in points within which two ruling positions are the
// same boundary, and below which a segment counts as flat.
const snap = 2.0

// segment is one horizontal or vertical ruling. For a horizontal segment
// pos is its y and lo..hi its x extent; for a vertical one the reverse.
type segment struct {
	horizontal bool
	pos        float64
	lo, hi     float64
}

func (s segment) box() model.BBox {
	if s.horizontal {
		return model.BBox{X: s.lo - snap, Y: s.pos - snap, Width: s.hi - s.lo + 2*snap, Height: 2 * snap}
	}
	return model.BBox{X: s.pos - snap, Y: s.lo - snap, Width: 2 * snap, Height: s.hi - s.lo + 2*snap}
}

// Lattice builds tables from the ruled lines of a page. Segments that touch
// form one table; its distinct horizontal and vertical positions are the row
// and column boundaries, and each text fragment lands in the cell containing
// its centre. Rulings that enclose fewer than two cells, or no text, are not
// tables.
func Lattice(page *model.Page) []*model.Table {
	segs := segments(page)
	if len(segs) == 0 {
		return nil
	}

	uf := unionfind.New(len(segs))
	for i := range segs {
		bi := segs[i].box()
		for j := i + 1; j < len(segs); j++ {
			if bi.Intersects(segs[j].box()) {
				uf.Union(i, j)
			}
		}
	}

	groups := make(map[int][]segment)
	var roots []int
	for i, s := range segs {
		r := uf.Root(i)
		if _, seen := groups[r]; !seen {
			roots = append(roots, r)
		}
		groups[r] = append(groups[r], s)
	}

	var out []*model.Table
	for _, r := range roots {
		if t := latticeTable(groups[r], page.RawText); t != nil {
			out = append(out, t)
		}
	}

	// Top of the page first.
	sort.SliceStable(out, func(i, j int) bool { return out[i].BBox.Top() > out[j].BBox.Top() })

	return out
}

// segments splits a page's lines and rectangle outlines into flat rulings.
// Filled rectangles covering most of the page are backgrounds, not rules.
func segments(page *model.Page) []segment {
	var out []segment
	pageArea := page.Width * page.Height

	for _, l := range page.RawLines {
		x0, x1 := math.Min(l.Start.X, l.End.X), math.Max(l.Start.X, l.End.X)
		y0, y1 := math.Min(l.Start.Y, l.End.Y), math.Max(l.Start.Y, l.End.Y)

		if !l.IsRect {
			switch {
			case y1-y0 <= snap && x1-x0 > snap:
				out = append(out, segment{horizontal: true, pos: (y0 + y1) / 2, lo: x0, hi: x1})
			case x1-x0 <= snap && y1-y0 > snap:
				out = append(out, segment{pos: (x0 + x1) / 2, lo: y0, hi: y1})
			}
			continue
		}

		w, h := x1-x0, y1-y0
		switch {
		case l.RectFill && pageArea > 0 && w*h > pageArea/2:
		case h <= snap && w > snap:
			out = append(out, segment{horizontal: true, pos: (y0 + y1) / 2, lo: x0, hi: x1})
		case w <= snap && h > snap:
			out = append(out, segment{pos: (x0 + x1) / 2, lo: y0, hi: y1})
		case w > snap && h > snap:
			out = append(out,
				segment{horizontal: true, pos: y0, lo: x0, hi: x1},
				segment{horizontal: true, pos: y1, lo: x0, hi: x1},
				segment{pos: x0, lo: y0, hi: y1},
				segment{pos: x1, lo: y0, hi: y1},
			)
		}
	}

	return out
}

func latticeTable(segs []segment, fragments []model.TextFragment) *model.Table {
	var xs, ys []float64
	bounds := segs[0].box()
	for _, s := range segs {
		bounds = bounds.Union(s.box())
		if s.horizontal {
			ys = append(ys, s.pos)
		} else {
			xs = append(xs, s.pos)
		}
	}

	// Close tables drawn without an outer border.
	xs = append(xs, bounds.Left()+snap, bounds.Right()-snap)
	ys = append(ys, bounds.Bottom()+snap, bounds.Top()-snap)

	cols := boundaries(xs)
	rows := boundaries(ys)
	if len(cols) < 2 || len(rows) < 2 || (len(cols)-1)*(len(rows)-1) < 2 {
		return nil
	}

	// Rows run top down.
	sort.Sort(sort.Reverse(sort.Float64Slice(rows)))

	cells := make([][][]model.TextFragment, len(rows)-1)
	for i := range cells {
		cells[i] = make([][]model.TextFragment, len(cols)-1)
	}

	found := false
	for _, f := range fragments {
		c := f.BBox.Center()
		i := sort.Search(len(rows), func(k int) bool { return rows[k] < c.Y }) - 1
		j := sort.Search(len(cols), func(k int) bool { return cols[k] > c.X }) - 1
		if i < 0 || i >= len(rows)-1 || j < 0 || j >= len(cols)-1 {
			continue
		}
		cells[i][j] = append(cells[i][j], f)
		found = true
	}
	if !found {
		return nil
	}

	t := model.NewTable(len(rows)-1, len(cols)-1)
	t.HasGrid = true
	t.BBox = model.BBox{
		X:      cols[0],
		Y:      rows[len(rows)-1],
		Width:  cols[len(cols)-1] - cols[0],
		Height: rows[0] - rows[len(rows)-1],
	}
	for i := range cells {
		for j, frags := range cells[i] {
			t.Rows[i][j].Text = cellText(frags)
			t.Rows[i][j].BBox = model.BBox{
				X:      cols[j],
				Y:      rows[i+1],
				Width:  cols[j+1] - cols[j],
				Height: rows[i] - rows[i+1],
			}
		}
	}

	return t
}

// boundaries sorts positions ascending and merges those within snap of
// each other.
func boundaries(pos []float64) []float64 {
	sort.Float64s(pos)

	var out []float64
	for _, p := range pos {
		if len(out) > 0 && p-out[len(out)-1] <= snap {
			continue
		}
		out = append(out, p)
	}

	return out
}

// cellText joins a cell's fragments in reading order. Fragments on one
// baseline are joined with a space when there is a visible gap, and lines
// are joined with a newline.
func cellText(frags []model.TextFragment) string {
	if len(frags) == 0 {
		return ""
	}

	sort.SliceStable(frags, func(a, b int) bool {
		fa, fb := frags[a].BBox, frags[b].BBox
		if math.Abs(fa.Y-fb.Y) > fa.Height/2 {
			return fa.Y > fb.Y
		}
		return fa.X < fb.X
	})

	var sb strings.Builder
	prev := frags[0]
	sb.WriteString(strings.TrimSpace(prev.Text))
	for _, f := range frags[1:] {
		switch {
		case math.Abs(f.BBox.Y-prev.BBox.Y) > prev.BBox.Height/2:
			sb.WriteByte('\n')
		case f.BBox.X-prev.BBox.Right() > f.FontSize/4:
			sb.WriteByte(' ')
		}
		sb.WriteString(strings.TrimSpace(f.Text))
		prev = f
	}

	return sb.String()
}
