package persona

import (
	"strings"
	"testing"
)

const sampleRaw = `Sure! Here is the persona you asked for:

# Reddit User Persona
## Name
- throwaway_dev (https://www.reddit.com/r/golang/comments/abc/)

## Interests
- Enjoys hiking (https://reddit.com/r/hiking/abc)
- Enjoys coding (https://reddit.com/r/programming/xyz)

## Online Behavior
- Posts late at night (https://reddit.com/r/night/1)

Let me know if you'd like any adjustments!`

func TestNormalizeDiscardsPreamble(t *testing.T) {
	out := Normalize(sampleRaw)

	if !strings.HasPrefix(out, "# Reddit User Persona") {
		t.Errorf("output does not start at the persona title:\n%s", out)
	}
	if strings.Contains(out, "Sure! Here is") {
		t.Error("model preamble survived normalization")
	}
}

func TestNormalizeTruncatesAfterOnlineBehavior(t *testing.T) {
	out := Normalize(sampleRaw)

	if strings.Contains(out, "Let me know") {
		t.Error("trailing model chatter survived normalization")
	}
	if !strings.Contains(out, "## Online Behavior") {
		t.Error("Online Behavior marker line was lost")
	}
}

func TestNormalizeStripsURLs(t *testing.T) {
	out := Normalize(sampleRaw)

	if strings.Contains(out, "http://") || strings.Contains(out, "https://") {
		t.Errorf("output still contains a raw URL:\n%s", out)
	}
	if strings.Contains(out, "()") {
		t.Errorf("output contains empty parens left by URL stripping:\n%s", out)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	once := Normalize(sampleRaw)
	twice := Normalize(once)

	if once != twice {
		t.Errorf("normalizer is not idempotent:\nonce:\n%q\ntwice:\n%q", once, twice)
	}
}

func TestNormalizeNeverLeavesBlankRuns(t *testing.T) {
	inputs := []string{
		sampleRaw,
		"a\n\n\n\n\nb",
		"# Reddit User Persona\n\n\n\n## Name\n\n\n\n\n- x\n",
		"",
	}
	for _, in := range inputs {
		if out := Normalize(in); strings.Contains(out, "\n\n\n") {
			t.Errorf("Normalize(%q) left 3+ consecutive newlines:\n%q", in, out)
		}
	}
}

func TestNormalizeLabelSpacing(t *testing.T) {
	out := Normalize("Name: someuser\nSummary:\ndetail line\n")

	// A bare "label:" line gets a blank line after it.
	if !strings.Contains(out, "Summary:\n\ndetail line") {
		t.Errorf("no paragraph break after bare label line:\n%q", out)
	}
	// A label-ish line directly after text gets a blank line before it.
	if !strings.Contains(out, "Name: someuser\n\nSummary:") {
		t.Errorf("no paragraph break before label line:\n%q", out)
	}
}

func TestNormalizeStripEmphasis(t *testing.T) {
	out := Normalize("**Bold claim** and *emphasis*\n")

	// Asterisks at the very start of the text are preserved; all others go.
	if !strings.HasPrefix(out, "**Bold claim") {
		t.Errorf("leading asterisk run was stripped:\n%q", out)
	}
	if strings.Contains(out[2:], "*") {
		t.Errorf("non-leading asterisks survived:\n%q", out)
	}
}

func TestNormalizeDanglingParens(t *testing.T) {
	out := Normalize("Location: (https://reddit.com/r/x/1)\nnext\n")

	if strings.Contains(out, "(") {
		t.Errorf("dangling paren artifact survived:\n%q", out)
	}
	if !strings.Contains(out, "Location:") {
		t.Errorf("label was damaged by artifact cleanup:\n%q", out)
	}
}

func TestNormalizeTrailingNewline(t *testing.T) {
	out := Normalize("some text")

	if !strings.HasSuffix(out, "\n") || strings.HasSuffix(out, "\n\n") {
		t.Errorf("output must end with exactly one newline, got %q", out)
	}
}
