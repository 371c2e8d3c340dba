// Package persona builds cited user-persona documents from Reddit activity.
package persona

// Sections is the closed, ordered catalogue of persona characteristics.
// The prompt builder generates its output skeleton from this list and the
// citation extractor searches for exactly these headers; both sides must
// agree on it, so it lives here and nowhere else.
var Sections = []string{
	"Name",
	"Age",
	"Occupation",
	"Location",
	"Motivations",
	"Personality Traits",
	"Behavioral Patterns",
	"Frustrations",
	"Goals & Needs",
	"Interests",
	"Values",
	"Writing Style",
	"Online Behavior",
}

// NoEvidenceSentinel is the literal value the model is instructed to emit,
// and the extractor records, when a section has no supporting citation.
const NoEvidenceSentinel = "No evidence found"
