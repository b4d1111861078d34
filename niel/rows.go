package niel

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/carbocation/srniel/grid"
)

// numberPattern finds the first unsigned decimal, optionally with an
// exponent. Header text such as "Energy (MeV)" has no match.
var numberPattern = regexp.MustCompile(`[\d.]+(?:[eE][+-]?\d+)?`)

// SkipReason records why a row produced no sample. Skips are expected noise
// from scanning heuristically, not errors.
type SkipReason int

const (
	NotSkipped SkipReason = iota
	SkipShortRow
	SkipMissingCell
	SkipNoNumber
	SkipUnparsable
	SkipOutOfRange
)

var skipReasonNames = map[SkipReason]string{
	NotSkipped:      "accepted",
	SkipShortRow:    "short row",
	SkipMissingCell: "missing cell",
	SkipNoNumber:    "no number",
	SkipUnparsable:  "unparsable number",
	SkipOutOfRange:  "out of range",
}

func (s SkipReason) String() string {
	if name, exists := skipReasonNames[s]; exists {
		return name
	}
	return fmt.Sprintf("SkipReason(%d)", int(s))
}

// RowResult is the outcome of parsing one row: either a Sample, or the reason
// the row was dropped.
type RowResult struct {
	Sample Sample
	Skip   SkipReason
}

// OK is true when the row yielded a sample.
func (r RowResult) OK() bool {
	return r.Skip == NotSkipped
}

func skip(reason SkipReason) RowResult {
	return RowResult{Skip: reason}
}

// FirstNumber returns the first numeric token in s.
func FirstNumber(s string) (string, bool) {
	m := numberPattern.FindString(s)
	return m, m != ""
}

// ParseRow applies the column assignment to a single row.
func ParseRow(row grid.Row, a Assignment) RowResult {
	if len(row) <= a.maxIndex() {
		return skip(SkipShortRow)
	}

	energyCell, nielCell := row.Get(a.Energy), row.Get(a.NIEL)
	if !energyCell.Valid || !nielCell.Valid {
		return skip(SkipMissingCell)
	}

	energyText := strings.TrimSpace(energyCell.String)
	nielText := strings.TrimSpace(nielCell.String)
	if energyText == "" || nielText == "" {
		return skip(SkipMissingCell)
	}

	energyToken, ok := FirstNumber(energyText)
	if !ok {
		return skip(SkipNoNumber)
	}
	nielToken, ok := FirstNumber(nielText)
	if !ok {
		return skip(SkipNoNumber)
	}

	energy, err := strconv.ParseFloat(energyToken, 64)
	if err != nil {
		return skip(SkipUnparsable)
	}
	niel, err := strconv.ParseFloat(nielToken, 64)
	if err != nil {
		return skip(SkipUnparsable)
	}

	if !(energy > 0) || !(niel >= 0) {
		return skip(SkipOutOfRange)
	}

	return RowResult{Sample: Sample{Energy: energy, NIEL: niel}}
}

// Tally counts row outcomes across a document.
type Tally map[SkipReason]int

// Accepted is the number of rows that produced a sample.
func (t Tally) Accepted() int {
	return t[NotSkipped]
}

// Skipped is the number of rows dropped for any reason.
func (t Tally) Skipped() int {
	n := 0
	for reason, count := range t {
		if reason != NotSkipped {
			n += count
		}
	}
	return n
}

func (t Tally) String() string {
	b := strings.Builder{}
	for reason := NotSkipped; reason <= SkipOutOfRange; reason++ {
		if reason != NotSkipped {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%d", reason, t[reason])
	}
	return b.String()
}

// ExtractRows runs every row of every grid through ParseRow and returns the
// accepted samples in traversal order, along with a tally of outcomes.
func ExtractRows(doc grid.Document, a Assignment) ([]Sample, Tally) {
	var samples []Sample
	tally := make(Tally)

	for _, g := range doc.Grids() {
		for _, row := range g {
			res := ParseRow(row, a)
			tally[res.Skip]++
			if res.OK() {
				samples = append(samples, res.Sample)
			}
		}
	}

	return samples, tally
}
