package persona

import "github.com/codeGROOVE-dev/ruPersona/pkg/reddit"

// Option configures a Generator.
type Option func(*OptionHolder)

// WithRedditCredentials sets the Reddit script-app credentials.
func WithRedditCredentials(creds reddit.Credentials) Option {
	return func(o *OptionHolder) {
		o.redditCreds = creds
	}
}

// WithGeminiAPIKey sets the Gemini API key used for persona generation.
func WithGeminiAPIKey(key string) Option {
	return func(o *OptionHolder) {
		o.geminiAPIKey = key
	}
}

// WithGeminiModel sets the Gemini model to use.
func WithGeminiModel(model string) Option {
	return func(o *OptionHolder) {
		o.geminiModel = model
	}
}

// WithLimit bounds how many recent posts and comments are fetched.
func WithLimit(limit int) Option {
	return func(o *OptionHolder) {
		o.limit = limit
	}
}

// WithNoCache disables the in-memory response cache.
func WithNoCache() Option {
	return func(o *OptionHolder) {
		o.noCache = true
	}
}

// WithSource overrides the activity source. Used by tests.
func WithSource(source Source) Option {
	return func(o *OptionHolder) {
		o.source = source
	}
}

// WithCompleter overrides the LLM completer. Used by tests.
func WithCompleter(completer Completer) Option {
	return func(o *OptionHolder) {
		o.completer = completer
	}
}

// OptionHolder holds configuration options.
type OptionHolder struct {
	source       Source
	completer    Completer
	geminiAPIKey string
	geminiModel  string
	redditCreds  reddit.Credentials
	limit        int
	noCache      bool
}
