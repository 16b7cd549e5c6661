// Package plss holds the domain model for Public Land Survey System
// land descriptions: township/range/section identifiers, parsed tracts,
// and the boundary to the description parser.
package plss

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// TRS identifies a section on the PLSS grid, e.g. 154n97w14 for
// Section 14 of Township 154 North, Range 97 West.
type TRS struct {
	Township int
	NS       byte // 'n' or 's'
	Range    int
	EW       byte // 'e' or 'w'
	Section  int
}

func NewTRS(twp int, ns byte, rge int, ew byte, sec int) TRS {
	return TRS{Township: twp, NS: lowerDir(ns), Range: rge, EW: lowerDir(ew), Section: sec}
}

func lowerDir(d byte) byte {
	if d >= 'A' && d <= 'Z' {
		return d + ('a' - 'A')
	}
	return d
}

// IsZero reports whether the TRS is entirely unset (the value used for
// tract-only parses with no township/range context).
func (t TRS) IsZero() bool {
	return t == TRS{}
}

// String renders the compact lowercase token form with a two-digit
// section, e.g. "154n97w01". A zero TRS renders as "".
func (t TRS) String() string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%d%c%d%c%02d", t.Township, t.NS, t.Range, t.EW, t.Section)
}

var trsTokenRe = regexp.MustCompile(`^(\d{1,3})([ns])(\d{1,3})([ew])(\d{1,2})?$`)

// ErrBadTRS is returned by ParseTRS for strings that are not TRS tokens.
var ErrBadTRS = errors.New("not a township/range/section token")

// ParseTRS parses a compact token such as "154n97w14" or "154N97W14".
// The section part is optional ("154n97w" leaves Section at 0).
func ParseTRS(s string) (TRS, error) {
	m := trsTokenRe.FindStringSubmatch(strings.ToLower(strings.TrimSpace(s)))
	if m == nil {
		return TRS{}, fmt.Errorf("%w: %q", ErrBadTRS, s)
	}
	twp, _ := strconv.Atoi(m[1])
	rge, _ := strconv.Atoi(m[3])
	sec := 0
	if m[5] != "" {
		sec, _ = strconv.Atoi(m[5])
	}
	return TRS{Township: twp, NS: m[2][0], Range: rge, EW: m[4][0], Section: sec}, nil
}

// Tract is one parsed land unit: a section identifier plus the cleaned
// description text and the lot / quarter-quarter labels derived from it.
type Tract struct {
	TRS         TRS
	Description string
	Lots        []string // "L1", "L2", ...
	QQs         []string // "NENE", "S2NE", ...
}

// Parser extracts tracts from a full legal description. Implementations
// must treat malformed input as data, not as a reason to panic: return
// zero tracts and an error instead.
type Parser interface {
	Parse(text string, cfg Config) ([]Tract, error)
}

// TractParser parses a pre-isolated tract description (no
// township/range/section context) into its lot and quarter-quarter
// labels.
type TractParser interface {
	ParseTract(text string, cfg Config) (Tract, error)
}
