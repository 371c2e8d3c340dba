package persona

import (
	"regexp"
	"strings"
)

// Patterns for stripping citation artifacts left behind once URLs are
// removed from the displayed body.
var (
	rawURLRegex        = regexp.MustCompile(`https?://\S+`)
	emptyParensRegex   = regexp.MustCompile(`\(\s*\)`)
	emptyBracketsRegex = regexp.MustCompile(`\[\s*\]`)
	danglingParenPunct = regexp.MustCompile(`(?m)(:|\*|-)\s*\($`)
	danglingParenRegex = regexp.MustCompile(`(?m)\(\s*$`)
)

// Patterns for the spacing passes.
var (
	asteriskRunRegex = regexp.MustCompile(`\*+`)
	labelLineRegex   = regexp.MustCompile(`(?m)^([^\n]+:)$`)
	labelAfterText   = regexp.MustCompile(`([^\n])\n([^\n]+:)`)
	starBulletRegex  = regexp.MustCompile(`(?m)^(\* .+)$`)
	blankRunRegex    = regexp.MustCompile(`\n{3,}`)
)

// normalizePass is one pure text-to-text rewrite. The passes run in a
// fixed order and each assumes the normal form established by the ones
// before it, so they are kept as an explicit ordered list rather than
// fused into a single expression.
type normalizePass struct {
	fn   func(string) string
	name string
}

var normalizePasses = []normalizePass{
	{name: "strip_emphasis", fn: stripEmphasis},
	{name: "blank_after_label", fn: func(s string) string {
		return labelLineRegex.ReplaceAllString(s, "$1\n")
	}},
	{name: "blank_before_label", fn: func(s string) string {
		return labelAfterText.ReplaceAllString(s, "$1\n\n$2")
	}},
	{name: "blank_after_bullet", fn: func(s string) string {
		return starBulletRegex.ReplaceAllString(s, "$1\n")
	}},
	{name: "collapse_blank_runs", fn: func(s string) string {
		return blankRunRegex.ReplaceAllString(s, "\n\n")
	}},
	{name: "trim", fn: func(s string) string {
		return strings.TrimSpace(s) + "\n"
	}},
}

// stripEmphasis removes asterisk runs everywhere except at the very start
// of the text. RE2 has no lookbehind, so the leading run is carved off and
// reattached instead.
func stripEmphasis(s string) string {
	lead := 0
	for lead < len(s) && s[lead] == '*' {
		lead++
	}
	return s[:lead] + asteriskRunRegex.ReplaceAllString(s[lead:], "")
}

// Normalize rewrites raw persona text into the display-ready document
// body: model preamble and trailing chatter are discarded, every raw URL
// is stripped (citations live only in the appended Citations section),
// leftover punctuation artifacts are cleaned up, and the spacing passes
// produce a consistently paragraphed result with exactly one trailing
// newline.
func Normalize(raw string) string {
	text := trimToPersona(raw)
	text = rawURLRegex.ReplaceAllString(text, "")
	text = emptyParensRegex.ReplaceAllString(text, "")
	text = emptyBracketsRegex.ReplaceAllString(text, "")
	text = danglingParenPunct.ReplaceAllString(text, "$1")
	text = danglingParenRegex.ReplaceAllString(text, "")
	for _, pass := range normalizePasses {
		text = pass.fn(text)
	}
	return text
}

// trimToPersona locates the real persona region: content before the first
// "Name:" label or "# Reddit User Persona" title is preamble, and content
// after the last "Online Behavior" marker line is trailing chatter.
func trimToPersona(raw string) string {
	lines := strings.Split(raw, "\n")
	start := 0
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "Name:") || strings.HasPrefix(trimmed, "# Reddit User Persona") {
			start = i
			break
		}
	}
	text := strings.Join(lines[start:], "\n")

	for _, marker := range []string{"Online Behavior:", "Online Behavior"} {
		idx := strings.LastIndex(text, marker)
		if idx == -1 {
			continue
		}
		if eol := strings.Index(text[idx:], "\n"); eol != -1 {
			text = text[:idx+eol]
		}
		break
	}
	return strings.TrimSpace(text)
}
