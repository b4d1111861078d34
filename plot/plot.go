// Package plot renders log-log charts of per-species series.
//
// go-chart has no usable logarithmic range for values below one, so points
// are plotted as log10 values on a continuous range and the axes carry
// explicit decade ticks and gridlines.
package plot

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/carbocation/pfx"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNothingToPlot is returned when no line has a point that can be placed
// on log axes.
var ErrNothingToPlot = errors.New("no positive values to plot")

// Geometry is the output image size in pixels and its resolution.
type Geometry struct {
	Width  int
	Height int
	DPI    float64
}

// DefaultGeometry is a 10x6 inch figure at 300 DPI.
func DefaultGeometry() Geometry {
	return Geometry{Width: 3000, Height: 1800, DPI: 300}
}

// Figure describes one chart.
type Figure struct {
	Title string
	XName string
	YName string
	Geometry
}

// Line is one labelled series. X and Y are in linear units.
type Line struct {
	Label string
	X     []float64
	Y     []float64
	Style chart.Style
}

var gridColor = drawing.Color{R: 128, G: 128, B: 128, A: 255}

// SpeciesStyle returns the line style used for a particle species: red solid
// for protons, blue dashed for electrons, and black otherwise.
func SpeciesStyle(species string) chart.Style {
	s := chart.Style{
		StrokeWidth: 1.5,
		DotWidth:    2,
		StrokeColor: drawing.ColorBlack,
		DotColor:    drawing.ColorBlack,
	}

	switch species {
	case "proton":
		s.StrokeColor = drawing.ColorRed
		s.DotColor = drawing.ColorRed
	case "electron":
		s.StrokeColor = drawing.ColorBlue
		s.DotColor = drawing.ColorBlue
		s.StrokeDashArray = []float64{5, 3}
	}

	return s
}

// logPoints keeps the pairs where both values are positive and finite, and
// returns their log10.
func logPoints(xs, ys []float64) (lx, ly []float64) {
	for i := range xs {
		if i >= len(ys) {
			break
		}
		x, y := xs[i], ys[i]
		if !(x > 0) || !(y > 0) || math.IsInf(x, 0) || math.IsInf(y, 0) {
			continue
		}
		lx = append(lx, math.Log10(x))
		ly = append(ly, math.Log10(y))
	}

	return lx, ly
}

// decadeBounds returns the whole decades enclosing values, which are already
// log10. The bounds always differ by at least one decade.
func decadeBounds(values ...[]float64) (lo, hi int) {
	min, max := math.Inf(1), math.Inf(-1)
	for _, vs := range values {
		for _, v := range vs {
			min = math.Min(min, v)
			max = math.Max(max, v)
		}
	}

	lo, hi = int(math.Floor(min)), int(math.Ceil(max))
	if hi <= lo {
		hi = lo + 1
	}

	return lo, hi
}

// DecadeTicks labels every whole decade from 10^lo to 10^hi.
func DecadeTicks(lo, hi int) []chart.Tick {
	out := make([]chart.Tick, 0, hi-lo+1)
	for k := lo; k <= hi; k++ {
		out = append(out, chart.Tick{Value: float64(k), Label: fmt.Sprintf("1e%d", k)})
	}

	return out
}

// DecadeGridLines places a major line at every decade and minor lines at 2..9
// times each decade below hi.
func DecadeGridLines(lo, hi int) []chart.GridLine {
	out := make([]chart.GridLine, 0, 9*(hi-lo)+1)
	for k := lo; k <= hi; k++ {
		out = append(out, chart.GridLine{Value: float64(k)})
		if k == hi {
			break
		}
		for m := 2; m <= 9; m++ {
			out = append(out, chart.GridLine{IsMinor: true, Value: float64(k) + math.Log10(float64(m))})
		}
	}

	return out
}

func gridStyles() (major, minor chart.Style) {
	major = chart.Style{
		StrokeColor:     gridColor.WithAlpha(102),
		StrokeWidth:     0.8,
		StrokeDashArray: []float64{1, 2},
	}
	minor = chart.Style{
		StrokeColor:     gridColor.WithAlpha(51),
		StrokeWidth:     0.5,
		StrokeDashArray: []float64{1, 2},
	}

	return major, minor
}

// Chart builds the chart for a figure. Lines with no plottable point are
// left out. ErrNothingToPlot is returned if that leaves nothing.
func Chart(f Figure, lines []Line) (chart.Chart, error) {
	series := []chart.Series{}
	xsAll, ysAll := [][]float64{}, [][]float64{}

	for _, line := range lines {
		lx, ly := logPoints(line.X, line.Y)
		if len(lx) == 0 {
			continue
		}
		xsAll = append(xsAll, lx)
		ysAll = append(ysAll, ly)

		series = append(series, chart.ContinuousSeries{
			Name:    line.Label,
			Style:   line.Style,
			XValues: lx,
			YValues: ly,
		})
	}

	if len(series) == 0 {
		return chart.Chart{}, ErrNothingToPlot
	}

	xlo, xhi := decadeBounds(xsAll...)
	ylo, yhi := decadeBounds(ysAll...)
	major, minor := gridStyles()

	graph := chart.Chart{
		Title:  f.Title,
		Width:  f.Width,
		Height: f.Height,
		DPI:    f.DPI,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:           f.XName,
			Style:          chart.Shown(),
			Range:          &chart.ContinuousRange{},
			Ticks:          DecadeTicks(xlo, xhi),
			GridLines:      DecadeGridLines(xlo, xhi),
			GridMajorStyle: major,
			GridMinorStyle: minor,
		},
		YAxis: chart.YAxis{
			Name:           f.YName,
			Style:          chart.Shown(),
			Range:          &chart.ContinuousRange{},
			Ticks:          DecadeTicks(ylo, yhi),
			GridLines:      DecadeGridLines(ylo, yhi),
			GridMajorStyle: major,
			GridMinorStyle: minor,
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return graph, nil
}

// Render draws the figure as a PNG.
func Render(w io.Writer, f Figure, lines []Line) error {
	graph, err := Chart(f, lines)
	if err != nil {
		return err
	}

	return graph.Render(chart.PNG, w)
}

// WriteFile renders the figure into path. Nothing is created when there is
// nothing to plot.
func WriteFile(path string, f Figure, lines []Line) error {
	buffer := bytes.NewBuffer([]byte{})
	if err := Render(buffer, f, lines); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return pfx.Err(err)
	}

	outFile, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}
	if _, err := buffer.WriteTo(outFile); err != nil {
		outFile.Close()
		return pfx.Err(err)
	}

	return pfx.Err(outFile.Close())
}
