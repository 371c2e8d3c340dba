package persona

import (
	"reflect"
	"testing"
)

func TestExtractCitationsCoversAllSections(t *testing.T) {
	citations := ExtractCitations("no persona here at all")

	if len(citations) != len(Sections) {
		t.Fatalf("citation map has %d entries, want %d", len(citations), len(Sections))
	}
	for _, name := range Sections {
		c, ok := citations[name]
		if !ok {
			t.Errorf("section %q missing from citation map", name)
			continue
		}
		if c.Kind != NoEvidence {
			t.Errorf("section %q = %v, want no-evidence sentinel", name, c)
		}
		if c.String() != NoEvidenceSentinel {
			t.Errorf("section %q renders %q, want %q", name, c.String(), NoEvidenceSentinel)
		}
	}
}

func TestExtractCitationsSingle(t *testing.T) {
	raw := "## Occupation\n- Works as a nurse (https://www.reddit.com/r/nursing/comments/abc/)\n"

	c := ExtractCitations(raw)["Occupation"]
	if c.Kind != Single {
		t.Fatalf("kind = %v, want Single", c.Kind)
	}
	want := "https://www.reddit.com/r/nursing/comments/abc/"
	if c.String() != want {
		t.Errorf("String() = %q, want bare URL %q", c.String(), want)
	}
}

func TestExtractCitationsMultiple(t *testing.T) {
	raw := "## Interests\n- Enjoys hiking (https://reddit.com/r/hiking/abc)\n- Enjoys coding (https://reddit.com/r/programming/xyz)\n"

	c := ExtractCitations(raw)["Interests"]
	if c.Kind != Multiple {
		t.Fatalf("kind = %v, want Multiple", c.Kind)
	}
	want := []string{"https://reddit.com/r/hiking/abc", "https://reddit.com/r/programming/xyz"}
	if !reflect.DeepEqual(c.Links, want) {
		t.Errorf("links = %v, want %v", c.Links, want)
	}
}

func TestExtractCitationsHeaderWithoutBulletRun(t *testing.T) {
	// A plain line directly under the header means there is no bullet run,
	// even though a bullet appears further down.
	raw := "## Values\nThe user seems principled.\n- A bullet too far away (https://reddit.com/r/x/1)\n"

	c := ExtractCitations(raw)["Values"]
	if c.Kind != NoEvidence {
		t.Errorf("kind = %v, want NoEvidence when no bullet run follows the header", c.Kind)
	}
}

func TestExtractCitationsSectionOrderIrrelevant(t *testing.T) {
	raw := "## Writing Style\n- Terse (https://reddit.com/r/a/1)\n\n## Name\n- someuser (https://reddit.com/r/b/2)\n"

	citations := ExtractCitations(raw)
	if got := citations["Name"].String(); got != "https://reddit.com/r/b/2" {
		t.Errorf("Name = %q", got)
	}
	if got := citations["Writing Style"].String(); got != "https://reddit.com/r/a/1" {
		t.Errorf("Writing Style = %q", got)
	}
}

func TestExtractCitationsAnchorsFullHeaderLine(t *testing.T) {
	// A header that merely starts with a known section name must not match.
	raw := "## Interests Abroad\n- Travels often (https://reddit.com/r/travel/1)\n"

	if c := ExtractCitations(raw)["Interests"]; c.Kind != NoEvidence {
		t.Errorf("Interests = %v, want NoEvidence for prefix-only header", c)
	}
}

func TestExtractCitationsOneCitationPerBullet(t *testing.T) {
	raw := "## Motivations\n- Cares (https://reddit.com/r/a/1) and also (https://reddit.com/r/a/2)\n"

	c := ExtractCitations(raw)["Motivations"]
	if c.Kind != Single {
		t.Fatalf("kind = %v, want Single", c.Kind)
	}
	if c.Links[0] != "https://reddit.com/r/a/1" {
		t.Errorf("link = %q, want the first parenthesized URL", c.Links[0])
	}
}

func TestExtractCitationsFinalBulletWithoutNewline(t *testing.T) {
	raw := "## Goals & Needs\n- Wants stability (https://reddit.com/r/jobs/9)"

	c := ExtractCitations(raw)["Goals & Needs"]
	if c.Kind != Single {
		t.Errorf("kind = %v, want Single even without a trailing newline", c.Kind)
	}
}
