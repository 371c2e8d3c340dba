// Package main implements the rupersona CLI tool for generating Reddit
// user personas.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"github.com/codeGROOVE-dev/ruPersona/pkg/gemini"
	"github.com/codeGROOVE-dev/ruPersona/pkg/persona"
	"github.com/codeGROOVE-dev/ruPersona/pkg/reddit"
)

var (
	outputDir     = flag.String("output", "personas", "Output directory for persona files")
	limit         = flag.Int("limit", 100, "Maximum recent posts and comments to fetch")
	redditID      = flag.String("reddit-client-id", "", "Reddit app client ID (or set REDDIT_CLIENT_ID)")
	redditSecret  = flag.String("reddit-client-secret", "", "Reddit app client secret (or set REDDIT_CLIENT_SECRET)")
	redditAgent   = flag.String("reddit-user-agent", "", "Reddit API user agent (or set REDDIT_USER_AGENT)")
	geminiAPIKey  = flag.String("gemini-key", "", "Gemini API key (or set GEMINI_API_KEY)")
	geminiModel   = flag.String("gemini-model", gemini.DefaultModel, "Gemini model to use (or set GEMINI_MODEL)")
	noCache       = flag.Bool("no-cache", false, "Disable response caching")
	verbose       = flag.Bool("verbose", false, "Enable verbose logging")
	version       = flag.Bool("version", false, "Show version")
)

func main() {
	os.Exit(run())
}

func run() int {
	flag.Parse()

	if *version {
		fmt.Println("ruPersona CLI v1.0.0")
		return 0
	}

	// Credentials may live in a .env file next to the binary.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "warning: could not load .env: %v\n", err)
	}

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <reddit-profile-url>\n", os.Args[0])
		flag.PrintDefaults()
		return 1
	}

	profileURL := args[0]

	level := slog.LevelError
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	// Fall back to environment for anything not passed as a flag.
	if *redditID == "" {
		*redditID = os.Getenv("REDDIT_CLIENT_ID")
	}
	if *redditSecret == "" {
		*redditSecret = os.Getenv("REDDIT_CLIENT_SECRET")
	}
	if *redditAgent == "" {
		*redditAgent = os.Getenv("REDDIT_USER_AGENT")
	}
	if *geminiAPIKey == "" {
		*geminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	if *geminiModel == gemini.DefaultModel && os.Getenv("GEMINI_MODEL") != "" {
		*geminiModel = os.Getenv("GEMINI_MODEL")
	}

	// Validate the profile URL before touching the network.
	if !strings.Contains(profileURL, "/user/") {
		color.Red("Error: not a Reddit user profile URL: %s", profileURL)
		fmt.Fprintln(os.Stderr, "Expected something like https://www.reddit.com/user/username/")
		return 1
	}
	username, ok := reddit.ExtractUsername(profileURL)
	if !ok {
		color.Red("Error: could not extract a username from URL: %s", profileURL)
		return 1
	}

	fmt.Printf("Processing user: %s\n", username)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	opts := []persona.Option{
		persona.WithRedditCredentials(reddit.Credentials{
			ClientID:     *redditID,
			ClientSecret: *redditSecret,
			UserAgent:    *redditAgent,
		}),
		persona.WithGeminiAPIKey(*geminiAPIKey),
		persona.WithGeminiModel(*geminiModel),
		persona.WithLimit(*limit),
	}
	if *noCache {
		opts = append(opts, persona.WithNoCache())
	}

	generator := persona.NewWithLogger(ctx, logger, opts...)
	defer func() {
		if err := generator.Close(); err != nil {
			logger.Error("failed to close generator", "error", err)
		}
	}()

	doc, err := generator.Generate(ctx, username)
	if err != nil {
		if errors.Is(err, persona.ErrNoActivity) {
			color.Yellow("Warning: no posts or comments found for user %s. Skipping persona generation.", username)
			return 0
		}
		color.Red("Error processing user %s: %v", username, err)
		return 1
	}

	path, err := doc.Save(*outputDir)
	if err != nil {
		color.Red("Error saving persona for %s: %v", username, err)
		return 1
	}

	color.Green("Persona saved to %s", path)
	return 0
}
