package niel

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/carbocation/srniel/grid"
	"golang.org/x/text/unicode/norm"
)

const (
	// DefaultEnergyColumn is used when no header cell names the energy column.
	DefaultEnergyColumn = 0

	// DefaultNIELColumn is used when no header cell names the NIEL column.
	DefaultNIELColumn = 1
)

// Role is the quantity a column holds.
type Role int

const (
	RoleEnergy Role = iota
	RoleNIEL
)

func (r Role) String() string {
	switch r {
	case RoleEnergy:
		return "energy"
	case RoleNIEL:
		return "niel"
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

// Assignment says which column index holds each quantity for one document.
type Assignment struct {
	Energy int
	NIEL   int

	// Set when a header cell matched; false means the default was used.
	EnergyFound bool
	NIELFound   bool
}

// DefaultAssignment is the positional fallback (0, 1).
func DefaultAssignment() Assignment {
	return Assignment{Energy: DefaultEnergyColumn, NIEL: DefaultNIELColumn}
}

// Resolved reports whether both columns came from a header match.
func (a Assignment) Resolved() bool {
	return a.EnergyFound && a.NIELFound
}

// Unresolved lists the roles that fell back to their default column.
func (a Assignment) Unresolved() []Role {
	var out []Role
	if !a.EnergyFound {
		out = append(out, RoleEnergy)
	}
	if !a.NIELFound {
		out = append(out, RoleNIEL)
	}
	return out
}

func (a Assignment) maxIndex() int {
	if a.Energy > a.NIEL {
		return a.Energy
	}
	return a.NIEL
}

func (a Assignment) String() string {
	mark := func(found bool) string {
		if found {
			return "header"
		}
		return "default"
	}
	return fmt.Sprintf("energy column %d (%s), niel column %d (%s)", a.Energy, mark(a.EnergyFound), a.NIEL, mark(a.NIELFound))
}

func (a *Assignment) set(role Role, col int) {
	switch role {
	case RoleEnergy:
		if !a.EnergyFound {
			a.Energy, a.EnergyFound = col, true
		}
	case RoleNIEL:
		if !a.NIELFound {
			a.NIEL, a.NIELFound = col, true
		}
	}
}

type headerRule struct {
	Name  string
	Role  Role
	Match func(normalized string) bool
}

// headerRules are evaluated in order against every present cell. A cell may
// satisfy more than one rule.
var headerRules = []headerRule{
	{
		Name: "energy",
		Role: RoleEnergy,
		Match: func(s string) bool {
			return strings.Contains(s, "energy") ||
				(strings.Contains(s, "mev") && !strings.Contains(s, "niel"))
		},
	},
	{
		// "NIEL Dose" columns share the unit prefix and must be rejected.
		Name: "niel",
		Role: RoleNIEL,
		Match: func(s string) bool {
			return strings.Contains(s, "niel") &&
				!strings.Contains(s, "dose") &&
				strings.Contains(s, "mevcm")
		},
	},
}

// NormalizeHeader folds compatibility characters (cm² becomes cm2), lower-cases,
// and drops all whitespace including line breaks.
func NormalizeHeader(s string) string {
	s = strings.ToLower(norm.NFKC.String(s))
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// MatchRoles returns the roles a single cell's text qualifies for, in rule
// order.
func MatchRoles(text string) []Role {
	s := NormalizeHeader(text)
	var out []Role
	for _, rule := range headerRules {
		if rule.Match(s) {
			out = append(out, rule.Role)
		}
	}
	return out
}

// Locate scans every grid of the document, in order, for header cells naming
// the energy and NIEL columns. The first match for each role wins. Scanning
// stops at the end of the row in which both roles have been found. Roles that
// are never found keep their default column.
func Locate(doc grid.Document) Assignment {
	a := DefaultAssignment()

	for _, g := range doc.Grids() {
		for _, row := range g {
			for col, cell := range row {
				if !cell.Valid || cell.String == "" {
					continue
				}
				for _, role := range MatchRoles(cell.String) {
					a.set(role, col)
				}
			}

			if a.Resolved() {
				return a
			}
		}
	}

	return a
}
