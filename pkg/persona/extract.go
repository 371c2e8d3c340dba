package persona

import (
	"regexp"
	"strings"
)

// Compiled patterns for citation extraction.
var (
	// First parenthesized URL within a bullet line.
	bulletLinkRegex = regexp.MustCompile(`\((https?://[^)]+)\)`)

	// Per-section header patterns, built once from the catalogue. Each
	// pattern anchors on the full "## <name>" line so that one section
	// name being a prefix of another can never cause a false match, and
	// captures the contiguous bullet run that directly follows.
	sectionRegex = func() map[string]*regexp.Regexp {
		m := make(map[string]*regexp.Regexp, len(Sections))
		for _, name := range Sections {
			m[name] = regexp.MustCompile(`(?m)^## ` + regexp.QuoteMeta(name) + `\n((?:- .+\n)+)`)
		}
		return m
	}()
)

// CitationKind discriminates the value stored for a section.
type CitationKind int

const (
	// NoEvidence means no citation was recoverable for the section.
	NoEvidence CitationKind = iota
	// Single means exactly one permalink was cited.
	Single
	// Multiple means two or more permalinks were cited, in bullet order.
	Multiple
)

// Citation is the tagged citation value for one persona section. The
// scalar-vs-list distinction is deliberate: downstream rendering depends
// on which variant is present.
type Citation struct {
	Links []string
	Kind  CitationKind
}

// String renders the citation the way the persisted document shows it.
func (c Citation) String() string {
	switch c.Kind {
	case Single:
		return c.Links[0]
	case Multiple:
		return "[" + strings.Join(c.Links, ", ") + "]"
	default:
		return NoEvidenceSentinel
	}
}

// CitationMap maps every catalogue section to its citation value.
type CitationMap map[string]Citation

// ExtractCitations parses raw persona text into a CitationMap covering
// exactly the section catalogue. Sections may appear in any order in the
// text, or not at all; a header with no bullet run directly beneath it
// yields the no-evidence sentinel. At most one citation is taken per
// bullet (the first parenthesized URL on the line).
func ExtractCitations(raw string) CitationMap {
	if !strings.HasSuffix(raw, "\n") {
		raw += "\n"
	}

	citations := make(CitationMap, len(Sections))
	for _, name := range Sections {
		match := sectionRegex[name].FindStringSubmatch(raw)
		var links []string
		if match != nil {
			for _, bullet := range strings.Split(strings.TrimSpace(match[1]), "\n") {
				if link := bulletLinkRegex.FindStringSubmatch(bullet); link != nil {
					links = append(links, link[1])
				}
			}
		}
		switch len(links) {
		case 0:
			citations[name] = Citation{Kind: NoEvidence}
		case 1:
			citations[name] = Citation{Kind: Single, Links: links}
		default:
			citations[name] = Citation{Kind: Multiple, Links: links}
		}
	}
	return citations
}
