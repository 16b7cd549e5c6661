package parse

import (
	"regexp"
	"strconv"
	"strings"
)

// preprocess normalizes a description before scanning: unicode
// fractions and spelled-out directions become their symbol forms so the
// TRS and aliquot scanners only deal with one spelling.
func preprocess(text string) string {
	for _, sub := range preSubs {
		text = sub.re.ReplaceAllString(text, sub.repl)
	}
	// Re-attach fraction markers split off by the word substitutions,
	// e.g. "NE /4" from "Northeast Quarter".
	text = fracGlueRe.ReplaceAllString(text, "$1$2")
	return text
}

var preSubs = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`½`), "/2"},
	{regexp.MustCompile(`¼`), "/4"},
	{regexp.MustCompile(`§+`), " Sec "},
	{regexp.MustCompile(`(?i)\bnorth\s?east\b`), "NE"},
	{regexp.MustCompile(`(?i)\bnorth\s?west\b`), "NW"},
	{regexp.MustCompile(`(?i)\bsouth\s?east\b`), "SE"},
	{regexp.MustCompile(`(?i)\bsouth\s?west\b`), "SW"},
	{regexp.MustCompile(`(?i)\bnorth\b`), "N"},
	{regexp.MustCompile(`(?i)\bsouth\b`), "S"},
	{regexp.MustCompile(`(?i)\beast\b`), "E"},
	{regexp.MustCompile(`(?i)\bwest\b`), "W"},
	{regexp.MustCompile(`(?i)\bone[-\s]half\b`), "/2"},
	{regexp.MustCompile(`(?i)\bone[-\s]quarter\b`), "/4"},
	{regexp.MustCompile(`(?i)\bhalf\b`), "/2"},
	{regexp.MustCompile(`(?i)\bquarter\b`), "/4"},
}

var fracGlueRe = regexp.MustCompile(`\b(NE|NW|SE|SW|N|S|E|W)\s+(/[24])`)

var (
	wsRe          = regexp.MustCompile(`\s+`)
	leadingConnRe = regexp.MustCompile(`(?i)^(?:of|the|and|in|all)[\s,:]+`)
	trailConnRe   = regexp.MustCompile(`(?i)[\s,]+(?:of|the|and|in|all)$`)
)

// cleanDesc collapses whitespace and strips the connector words and
// punctuation left dangling at tract boundaries.
func cleanDesc(s string) string {
	s = strings.Trim(wsRe.ReplaceAllString(s, " "), " :;,.-")
	for {
		t := leadingConnRe.ReplaceAllString(s, "")
		t = trailConnRe.ReplaceAllString(t, "")
		t = strings.Trim(t, " :;,.-")
		if t == s {
			return s
		}
		s = t
	}
}

var lotRe = regexp.MustCompile(
	`(?i)\blots?\s+(\d{1,3}(?:\s*(?:,|and|&|-|through|thru)\s*\d{1,3})*)`)

var tokenRe = regexp.MustCompile(`[A-Za-z0-9/]+`)

// parseLotsQQs pulls lot labels and quarter-quarter labels out of a
// (preprocessed) tract description.
func parseLotsQQs(desc string) (lots, qqs []string) {
	for _, m := range lotRe.FindAllStringSubmatch(desc, -1) {
		for _, n := range expandNumberList(m[1]) {
			lots = append(lots, "L"+strconv.Itoa(n))
		}
	}

	// Aliquot chains: adjacent aliquot tokens merge into one label
	// ("S/2 of the NE/4" is the south half of the northeast quarter,
	// S2NE), while commas and unrelated words break the chain.
	chain := ""
	flush := func() {
		if chain != "" {
			qqs = append(qqs, chain)
			chain = ""
		}
	}
	prevEnd := 0
	for _, span := range tokenRe.FindAllStringIndex(desc, -1) {
		tok := desc[span[0]:span[1]]
		sep := desc[prevEnd:span[0]]
		prevEnd = span[1]
		switch strings.ToLower(tok) {
		case "of", "the":
			continue
		}
		label, ok := aliquotLabel(tok)
		if !ok {
			flush()
			continue
		}
		if chain != "" && strings.ContainsAny(sep, ",;:") {
			flush()
		}
		chain += label
	}
	flush()
	return lots, qqs
}

// aliquotLabel normalizes one aliquot token ("S/2NE/4", "S2NE4", "N2",
// "SENE", "NE/4") into its label form ("S2NE", "NENE", ...). Quarter
// markers drop out; half markers keep their digit. Tokens with any
// non-aliquot content are rejected.
func aliquotLabel(tok string) (string, bool) {
	s := strings.ToUpper(strings.ReplaceAll(tok, "/", ""))
	var b strings.Builder
	i := 0
	for i < len(s) {
		c := s[i]
		if c != 'N' && c != 'S' && c != 'E' && c != 'W' {
			return "", false
		}
		// Two-letter quarter call (NE, NW, SE, SW), optional '4'.
		if (c == 'N' || c == 'S') && i+1 < len(s) && (s[i+1] == 'E' || s[i+1] == 'W') {
			b.WriteByte(c)
			b.WriteByte(s[i+1])
			i += 2
			if i < len(s) && s[i] == '4' {
				i++
			}
			continue
		}
		// Half call: a direction letter followed by '2'.
		if i+1 < len(s) && s[i+1] == '2' {
			b.WriteByte(c)
			b.WriteByte('2')
			i += 2
			continue
		}
		// A bare single direction is only valid as the entire token's
		// final quarter if it is a two-letter call, handled above.
		return "", false
	}
	if b.Len() == 0 {
		return "", false
	}
	return b.String(), true
}
