// Package tabulate maps parsed land descriptions onto tables: it
// expands description cells into one row per tract, derives lot and
// quarter-quarter columns for pre-isolated tract cells, and filters
// rows by TRS tokens.
package tabulate

import (
	"fmt"
	"strings"

	"github.com/tliron/commonlog"

	"landtab/plss"
	"landtab/table"
)

var log = commonlog.GetLogger("landtab.tabulate")

// Column names appended by the transformations.
const (
	ColTRS       = "trs"
	ColTractDesc = "tract_description"
	ColLots      = "lots"
	ColQQs       = "qqs"
)

// ListSep joins multi-valued cells (lots, qqs).
const ListSep = ","

// ExpandDescriptions produces a new table in which every source row is
// replaced by one row per tract parsed from its description cell, with
// trs / tract_description / lots / qqs columns appended and all other
// columns copied through. Rows whose cell yields no tracts are dropped.
func ExpandDescriptions(t *table.Table, col, config string, p plss.Parser) (*table.Table, error) {
	if err := t.CheckColumn(col); err != nil {
		return nil, err
	}
	derived := []string{ColTRS, ColTractDesc, ColLots, ColQQs}
	for _, d := range derived {
		if t.HasColumn(d) {
			return nil, fmt.Errorf("%w: %q", table.ErrColumnExists, d)
		}
	}
	cfg := plss.ParseConfig(config)

	out := table.New(append(t.Columns(), derived...)...)
	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		tracts, err := p.Parse(row[col], cfg)
		if err != nil || len(tracts) == 0 {
			log.Debugf("row %d: no tracts in %q, dropping", i, row[col])
			continue
		}
		for _, tract := range tracts {
			dup := make(table.Row, len(row)+len(derived))
			for k, v := range row {
				dup[k] = v
			}
			dup[ColTRS] = tract.TRS.String()
			dup[ColTractDesc] = tract.Description
			dup[ColLots] = strings.Join(tract.Lots, ListSep)
			dup[ColQQs] = strings.Join(tract.QQs, ListSep)
			out.Append(dup)
		}
	}
	return out, nil
}

// ParseTracts parses a column of pre-isolated tract text in place,
// appending lots and qqs columns. The row count and order never change;
// a cell that fails to parse leaves its derived cells empty.
func ParseTracts(t *table.Table, col, config string, p plss.TractParser) error {
	if err := t.CheckColumn(col); err != nil {
		return err
	}
	derived := []string{ColLots, ColQQs}
	for _, d := range derived {
		if t.HasColumn(d) {
			return fmt.Errorf("%w: %q", table.ErrColumnExists, d)
		}
	}
	for _, d := range derived {
		if err := t.AddColumn(d); err != nil {
			return err
		}
	}
	cfg := plss.ParseConfig(config)
	cfg.CleanQQ = true

	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		tract, err := p.ParseTract(row[col], cfg)
		if err != nil {
			log.Debugf("row %d: tract %q did not parse: %s", i, row[col], err.Error())
			continue
		}
		row[ColLots] = strings.Join(tract.Lots, ListSep)
		row[ColQQs] = strings.Join(tract.QQs, ListSep)
	}
	return nil
}

// FilterTRS returns a mask over the table's rows. A row hits when its
// text cell contains at least one of the tokens; include selects the
// hits, exclude (include=false) selects the rows with no hit.
func FilterTRS(t *table.Table, col string, tokens []string, include bool) ([]bool, error) {
	if err := t.CheckColumn(col); err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("no TRS tokens given")
	}
	normalized := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		// A sectionless token ("154n97w") must stay a raw prefix: its
		// String() form would gain a "00" section no text contains.
		if trs, err := plss.ParseTRS(tok); err == nil && trs.Section > 0 {
			normalized = append(normalized, trs.String())
		} else {
			normalized = append(normalized, strings.ToLower(strings.TrimSpace(tok)))
		}
	}

	mask := make([]bool, t.Len())
	for i := 0; i < t.Len(); i++ {
		text := strings.ToLower(t.Row(i)[col])
		hit := false
		for _, tok := range normalized {
			if strings.Contains(text, tok) {
				hit = true
				break
			}
		}
		mask[i] = hit == include
	}
	return mask, nil
}
