package persona

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/codeGROOVE-dev/ruPersona/pkg/reddit"
)

// promptSampleLimit caps how many posts and comments are embedded in the
// prompt; the bundle is already newest-first so truncation keeps the most
// recent items.
const promptSampleLimit = 10

const promptInstructions = "You are an expert in user research and persona creation. " +
	"Given the following Reddit posts and comments, generate a comprehensive, professional, and nuanced user persona. " +
	"For each characteristic, cite the specific post or comment (by permalink) that supports it. " +
	"If no evidence is found, state '" + NoEvidenceSentinel + "'. " +
	"The persona should be detailed and insightful, capturing not only basic demographics but also motivations, " +
	"personality traits, behavioral patterns, frustrations, goals, interests, values, writing style, and online behavior. " +
	"Use clear, structured formatting: each section should have a header (e.g., '## Motivations'), and details should be " +
	"presented as bullet points, each with a supporting permalink in parentheses. " +
	"Do not include any reasoning, instructions, or explanations—output only the persona content.\n\n"

// sectionHints describe the expected bullet shape for the sections whose
// skeleton differs from the generic one.
var sectionHints = map[string]string{
	"Name":       "- (Reddit Username) (permalink)",
	"Age":        "- (if available, else 'Unknown') (permalink)",
	"Occupation": "- (if available, else 'Unknown') (permalink)",
	"Location":   "- (if available, else 'Unknown') (permalink)",
}

// BuildPrompt renders the complete generation prompt: the fixed
// instruction block, the output-format skeleton derived from the section
// catalogue, and a JSON sample of the most recent activity. The skeleton
// is what makes citation extraction tractable later, so it must name
// every catalogue section as a level-2 header in order.
func BuildPrompt(bundle reddit.Bundle) (string, error) {
	posts := bundle.Posts
	if len(posts) > promptSampleLimit {
		posts = posts[:promptSampleLimit]
	}
	comments := bundle.Comments
	if len(comments) > promptSampleLimit {
		comments = comments[:promptSampleLimit]
	}

	postsJSON, err := json.MarshalIndent(posts, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling post sample: %w", err)
	}
	commentsJSON, err := json.MarshalIndent(comments, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling comment sample: %w", err)
	}

	var b strings.Builder
	b.WriteString(promptInstructions)
	b.WriteString("---\n")
	b.WriteString("# Reddit User Persona\n")
	for _, name := range Sections {
		hint, ok := sectionHints[name]
		if !ok {
			hint = "- (detailed, with citation)"
		}
		fmt.Fprintf(&b, "## %s\n%s\n", name, hint)
	}
	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "POSTS: %s\n\nCOMMENTS: %s\n\n", postsJSON, commentsJSON)
	b.WriteString("Output the persona in the above format. For each bullet point, include the supporting permalink " +
		"in parentheses immediately after the trait. Ensure the output is easy to parse for extracting each trait " +
		"and its citation.")
	return b.String(), nil
}
