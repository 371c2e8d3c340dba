package persona

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Document is the final persona artifact: the normalized body plus the
// citation mapping, keyed by the username it was generated for.
type Document struct {
	Username  string
	Body      string
	Citations CitationMap
}

// Render produces the full document text: the body, a blank line, then a
// "## Citations" block listing every catalogue section in order. Sections
// without a recovered citation render the no-evidence sentinel.
func (d *Document) Render() string {
	var b strings.Builder
	b.WriteString(d.Body)
	b.WriteString("\n## Citations\n")
	for _, name := range Sections {
		fmt.Fprintf(&b, "- %s: %s\n", name, d.Citations[name])
	}
	return b.String()
}

// Save writes the rendered document to <dir>/<username>_persona.txt,
// creating the directory if needed and overwriting any previous run's
// file. It returns the path written.
func (d *Document) Save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	path := filepath.Join(dir, d.Username+"_persona.txt")
	if err := os.WriteFile(path, []byte(d.Render()), 0o644); err != nil {
		return "", fmt.Errorf("writing persona file: %w", err)
	}
	return path, nil
}
