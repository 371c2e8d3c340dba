package persona

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/codeGROOVE-dev/ruPersona/pkg/gemini"
	"github.com/codeGROOVE-dev/ruPersona/pkg/httpcache"
	"github.com/codeGROOVE-dev/ruPersona/pkg/reddit"
)

// ErrNoActivity is returned when the user resolved but has no posts and
// no comments; no persona can be generated and no file is written.
var ErrNoActivity = errors.New("no posts or comments found")

// Source supplies a user's recent activity.
type Source interface {
	UserActivity(ctx context.Context, username string, limit int) (reddit.Bundle, error)
}

// Completer turns a prompt into generated text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Generator runs the persona pipeline for one username at a time:
// fetch activity, build the prompt, request the persona, then extract
// citations and normalize the text into a Document.
type Generator struct {
	logger       *slog.Logger
	cache        *httpcache.Cache
	source       Source
	completer    Completer
	redditClient *reddit.Client
	limit        int
}

// New creates a Generator with the default logger.
func New(ctx context.Context, opts ...Option) *Generator {
	return NewWithLogger(ctx, slog.Default(), opts...)
}

// NewWithLogger creates a Generator with a custom logger.
func NewWithLogger(_ context.Context, logger *slog.Logger, opts ...Option) *Generator {
	optHolder := &OptionHolder{}
	for _, opt := range opts {
		opt(optHolder)
	}

	var cache *httpcache.Cache
	if optHolder.noCache {
		logger.Info("caching disabled")
	} else {
		cache = httpcache.New(12*time.Hour, logger)
	}

	g := &Generator{
		logger: logger,
		cache:  cache,
		limit:  optHolder.limit,
	}
	if g.limit <= 0 {
		g.limit = 100
	}

	g.source = optHolder.source
	if g.source == nil {
		httpClient := &http.Client{Timeout: 30 * time.Second}
		var do func(context.Context, *http.Request) (*http.Response, error)
		if cache != nil {
			cached := httpcache.NewCachedHTTPClient(cache, httpClient, logger)
			do = func(ctx context.Context, req *http.Request) (*http.Response, error) {
				return cached.Do(req.WithContext(ctx))
			}
		}
		g.redditClient = reddit.NewClient(logger, httpClient, optHolder.redditCreds, do)
		g.source = g.redditClient
	}

	g.completer = optHolder.completer
	if g.completer == nil {
		g.completer = &geminiCompleter{
			client: gemini.NewClient(optHolder.geminiAPIKey, optHolder.geminiModel),
			cache:  cache,
			logger: logger,
		}
	}

	return g
}

// Close releases the resources the Generator allocated.
func (g *Generator) Close() error {
	if g.redditClient != nil {
		g.redditClient.Close()
	}
	return nil
}

// Generate runs the pipeline for one username and returns the finished
// Document. It stops before contacting the LLM when the user has no
// activity, and nothing is written to disk on any failure path; saving
// is the caller's separate, final step.
func (g *Generator) Generate(ctx context.Context, username string) (*Document, error) {
	bundle, err := g.source.UserActivity(ctx, username, g.limit)
	if err != nil {
		return nil, fmt.Errorf("fetching activity: %w", err)
	}
	if bundle.Empty() {
		return nil, fmt.Errorf("%w: %s", ErrNoActivity, username)
	}
	g.logger.Debug("fetched activity", "username", username,
		"posts", len(bundle.Posts), "comments", len(bundle.Comments))

	prompt, err := BuildPrompt(bundle)
	if err != nil {
		return nil, fmt.Errorf("building prompt: %w", err)
	}

	raw, err := g.completer.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generating persona: %w", err)
	}

	return &Document{
		Username:  username,
		Body:      Normalize(raw),
		Citations: ExtractCitations(raw),
	}, nil
}

// geminiCompleter adapts the gemini client to the Completer interface,
// binding in the cache and logger.
type geminiCompleter struct {
	client *gemini.Client
	cache  *httpcache.Cache
	logger *slog.Logger
}

func (c *geminiCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	var cache gemini.CacheInterface
	if c.cache != nil {
		cache = c.cache
	}
	return c.client.Complete(ctx, prompt, cache, c.logger)
}
