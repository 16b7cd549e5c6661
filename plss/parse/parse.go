// Package parse is the reference parser for PLSS legal descriptions.
// It sits behind the plss.Parser boundary so the table adapters can be
// tested against a stub, and covers the description forms that show up
// in county and commission records: TRS-first ("T154N-R97W Sec 14:
// NE/4") and description-first ("NE/4 of Section 14, T154N-R97W")
// layouts, multi-section lists, lot lists and ranges, and aliquot parts
// written with slashes, fractions, or spelled out.
package parse

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"landtab/plss"
)

// ErrNoTract is returned when no tract can be recovered from the text.
var ErrNoTract = errors.New("no tract found")

type Parser struct{}

func New() *Parser {
	return &Parser{}
}

var _ plss.Parser = (*Parser)(nil)
var _ plss.TractParser = (*Parser)(nil)

// Parse extracts every tract it can from a full legal description.
// Unparseable residue is skipped; if nothing parses, ErrNoTract is
// returned. With cfg.CleanQQ set, text with no township/range context
// is treated as a single bare tract.
func (p *Parser) Parse(text string, cfg plss.Config) ([]plss.Tract, error) {
	pre := preprocess(text)
	trsMatches := findTRS(pre, cfg)
	if len(trsMatches) == 0 {
		if cfg.CleanQQ {
			tract, _ := p.ParseTract(text, cfg)
			if tract.Description == "" {
				return nil, ErrNoTract
			}
			return []plss.Tract{tract}, nil
		}
		return nil, ErrNoTract
	}
	secMatches := findSections(pre)

	trsFirst := len(secMatches) == 0 || trsMatches[0].start < secMatches[0].start

	var tracts []plss.Tract
	if trsFirst {
		tracts = splitTRSFirst(pre, trsMatches, secMatches)
	} else {
		tracts = splitDescFirst(pre, trsMatches, secMatches)
	}
	for i := range tracts {
		tracts[i].Lots, tracts[i].QQs = parseLotsQQs(tracts[i].Description)
	}
	if len(tracts) == 0 {
		return nil, ErrNoTract
	}
	return tracts, nil
}

// ParseTract parses a pre-isolated tract description (no TRS context)
// into lot and quarter-quarter labels.
func (p *Parser) ParseTract(text string, cfg plss.Config) (plss.Tract, error) {
	pre := preprocess(text)
	lots, qqs := parseLotsQQs(pre)
	return plss.Tract{
		Description: cleanDesc(pre),
		Lots:        lots,
		QQs:         qqs,
	}, nil
}

// splitTRSFirst handles the layout where each township/range block is
// followed by its sections and their contents.
func splitTRSFirst(text string, trsMatches []trsMatch, secMatches []secMatch) []plss.Tract {
	var tracts []plss.Tract
	for i, tm := range trsMatches {
		blockEnd := len(text)
		if i+1 < len(trsMatches) {
			blockEnd = trsMatches[i+1].start
		}
		secs := sectionsWithin(secMatches, tm.end, blockEnd)
		if len(secs) == 0 {
			// A compact token like 154n97w14 carries its own section.
			if tm.trs.Section > 0 {
				tracts = append(tracts, plss.Tract{
					TRS:         tm.trs,
					Description: cleanDesc(text[tm.end:blockEnd]),
				})
			}
			continue
		}
		for j, sm := range secs {
			contentEnd := blockEnd
			if j+1 < len(secs) {
				contentEnd = secs[j+1].start
			}
			desc := cleanDesc(text[sm.end:contentEnd])
			for _, sec := range sm.sections {
				trs := tm.trs
				trs.Section = sec
				tracts = append(tracts, plss.Tract{TRS: trs, Description: desc})
			}
		}
	}
	return tracts
}

// splitDescFirst handles the layout where tract text precedes its
// section, and the township/range closes the segment.
func splitDescFirst(text string, trsMatches []trsMatch, secMatches []secMatch) []plss.Tract {
	var tracts []plss.Tract
	segStart := 0
	for _, tm := range trsMatches {
		secs := sectionsWithin(secMatches, segStart, tm.start)
		if len(secs) == 0 {
			if tm.trs.Section > 0 {
				tracts = append(tracts, plss.Tract{
					TRS:         tm.trs,
					Description: cleanDesc(text[segStart:tm.start]),
				})
			}
			segStart = tm.end
			continue
		}
		prevEnd := segStart
		for _, sm := range secs {
			desc := cleanDesc(text[prevEnd:sm.start])
			for _, sec := range sm.sections {
				trs := tm.trs
				trs.Section = sec
				tracts = append(tracts, plss.Tract{TRS: trs, Description: desc})
			}
			prevEnd = sm.end
		}
		segStart = tm.end
	}
	return tracts
}

func sectionsWithin(secMatches []secMatch, start, end int) []secMatch {
	var out []secMatch
	for _, sm := range secMatches {
		if sm.start >= start && sm.end <= end {
			out = append(out, sm)
		}
	}
	return out
}

type trsMatch struct {
	start, end int
	trs        plss.TRS
}

// trsRe matches township-range pairs with explicit directions, with or
// without T/R prefixes, including compact tokens like 154n97w01 (whose
// trailing digits are the section).
var trsRe = regexp.MustCompile(
	`(?i)\b(?:t(?:wp|ownship)?\.?\s*)?(\d{1,3})\s*[-.,]?\s*(n|s)\.?[-.,\s]*` +
		`(?:r(?:ge|ange)?\.?\s*)?(\d{1,3})\s*[-.,]?\s*(e|w)(?:\.|(\d{1,2}))?\b`)

// trsPrefixedRe matches T/R pairs where the directions are missing and
// must come from the parser config, e.g. "T154-R97".
var trsPrefixedRe = regexp.MustCompile(
	`(?i)\bt(?:wp|ownship)?\.?\s*(\d{1,3})\s*[-.,]?\s*(n|s)?\b\.?[-.,\s]*` +
		`r(?:ge|ange)?\.?\s*(\d{1,3})\s*[-.,]?\s*(e|w)?\b\.?`)

func findTRS(text string, cfg plss.Config) []trsMatch {
	var out []trsMatch
	for _, m := range trsRe.FindAllStringSubmatchIndex(text, -1) {
		out = append(out, trsMatch{
			start: m[0],
			end:   m[1],
			trs:   buildTRS(text, m, cfg),
		})
	}
	for _, m := range trsPrefixedRe.FindAllStringSubmatchIndex(text, -1) {
		if overlapsAny(out, m[0], m[1]) {
			continue
		}
		out = append(out, trsMatch{
			start: m[0],
			end:   m[1],
			trs:   buildTRS(text, m, cfg),
		})
	}
	sortByStart(out)
	return out
}

func buildTRS(text string, m []int, cfg plss.Config) plss.TRS {
	group := func(i int) string {
		if m[2*i] < 0 {
			return ""
		}
		return text[m[2*i]:m[2*i+1]]
	}
	twp, _ := strconv.Atoi(group(1))
	rge, _ := strconv.Atoi(group(3))
	ns := cfg.DefaultNS
	if d := group(2); d != "" {
		ns = d[0]
	}
	ew := cfg.DefaultEW
	if d := group(4); d != "" {
		ew = d[0]
	}
	sec := 0
	if len(m) > 10 {
		if s := group(5); s != "" {
			sec, _ = strconv.Atoi(s)
		}
	}
	return plss.NewTRS(twp, ns, rge, ew, sec)
}

func overlapsAny(matches []trsMatch, start, end int) bool {
	for _, m := range matches {
		if start < m.end && end > m.start {
			return true
		}
	}
	return false
}

func sortByStart(matches []trsMatch) {
	for i := 1; i < len(matches); i++ {
		for j := i; j > 0 && matches[j].start < matches[j-1].start; j-- {
			matches[j], matches[j-1] = matches[j-1], matches[j]
		}
	}
}

type secMatch struct {
	start, end int
	sections   []int
}

var secRe = regexp.MustCompile(
	`(?i)\bsec(?:tion)?s?\.?\s*(\d{1,3}(?:\s*(?:,|and|&|-|through|thru)\s*\d{1,3})*)`)

func findSections(text string) []secMatch {
	var out []secMatch
	for _, m := range secRe.FindAllStringSubmatchIndex(text, -1) {
		out = append(out, secMatch{
			start:    m[0],
			end:      m[1],
			sections: expandNumberList(text[m[2]:m[3]]),
		})
	}
	return out
}

var (
	rangeWordRe = regexp.MustCompile(`(?i)\bthrough\b|\bthru\b`)
	listSepRe   = regexp.MustCompile(`(?i)\band\b|&`)
)

// expandNumberList expands "1, 2, 3", "13 and 14", and "1 - 3" into the
// numbers they name.
func expandNumberList(s string) []int {
	s = rangeWordRe.ReplaceAllString(s, "-")
	s = listSepRe.ReplaceAllString(s, ",")
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if lo, hi, ok := splitRange(part); ok {
			for n := lo; n <= hi; n++ {
				out = append(out, n)
			}
			continue
		}
		if n, err := strconv.Atoi(part); err == nil {
			out = append(out, n)
		}
	}
	return out
}

func splitRange(s string) (lo, hi int, ok bool) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	lo, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	hi, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil || hi < lo {
		return 0, 0, false
	}
	return lo, hi, true
}
