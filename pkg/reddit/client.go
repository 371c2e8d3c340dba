// Package reddit fetches a user's recent public activity via the Reddit
// OAuth API using app-only (client credentials) authentication.
package reddit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// ErrUserNotFound is returned when the username does not resolve.
var ErrUserNotFound = errors.New("reddit user not found")

const (
	tokenURL = "https://www.reddit.com/api/v1/access_token" //nolint:gosec // OAuth endpoint, not a credential
	apiBase  = "https://oauth.reddit.com"
	siteBase = "https://www.reddit.com"

	// Reddit caps a single listing page at 100 items.
	maxPageSize = 100
)

// Credentials holds the Reddit script-app credentials. UserAgent is
// required by Reddit's API rules and identifies this tool.
type Credentials struct {
	ClientID     string
	ClientSecret string
	UserAgent    string
}

// Client talks to the Reddit API. Requests go through the injected do
// func so a caching HTTP layer can back it.
type Client struct {
	logger      *slog.Logger
	httpClient  *http.Client
	do          func(context.Context, *http.Request) (*http.Response, error)
	creds       Credentials
	tokenURL    string
	apiBase     string
	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

// NewClient creates a Reddit API client. If do is nil the client's own
// HTTP client is used directly.
func NewClient(logger *slog.Logger, httpClient *http.Client, creds Credentials, do func(context.Context, *http.Request) (*http.Response, error)) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	c := &Client{
		logger:     logger,
		httpClient: httpClient,
		creds:      creds,
		tokenURL:   tokenURL,
		apiBase:    apiBase,
	}
	if do == nil {
		do = func(ctx context.Context, req *http.Request) (*http.Response, error) {
			return c.httpClient.Do(req.WithContext(ctx))
		}
	}
	c.do = do
	return c
}

// Close releases the connections the client holds open. It is safe to
// call on every exit path.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// accessToken returns a valid app-only bearer token, requesting a fresh
// one when none is held or the held one has expired.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExpiry) {
		return c.token, nil
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("creating token request: %w", err)
	}
	req.SetBasicAuth(c.creds.ClientID, c.creds.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.creds.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("requesting access token: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Debug("failed to close response body", "error", err)
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1024*1024))
	if err != nil {
		return "", fmt.Errorf("reading token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("reddit token endpoint returned status %d: %s", resp.StatusCode, string(body))
	}

	var tok struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &tok); err != nil {
		return "", fmt.Errorf("decoding token response: %w", err)
	}
	if tok.AccessToken == "" {
		return "", errors.New("reddit token endpoint returned no token")
	}

	c.token = tok.AccessToken
	// Refresh a minute early so an in-flight run never uses a stale token.
	c.tokenExpiry = time.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - time.Minute)
	c.logger.Debug("obtained reddit access token", "expires_in", tok.ExpiresIn)
	return c.token, nil
}

// get performs an authenticated GET against the Reddit API and returns
// the response. The caller must close the body.
func (c *Client) get(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	apiURL := c.apiBase + path
	if len(query) > 0 {
		apiURL += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "bearer "+token)
	req.Header.Set("User-Agent", c.creds.UserAgent)

	return c.do(ctx, req)
}

// About resolves a username. An unknown user maps to ErrUserNotFound;
// any other non-200 status is a fetch error.
func (c *Client) About(ctx context.Context, username string) error {
	resp, err := c.get(ctx, "/user/"+url.PathEscape(username)+"/about", url.Values{"raw_json": {"1"}})
	if err != nil {
		return fmt.Errorf("resolving user %s: %w", username, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Debug("failed to close response body", "error", err)
		}
	}()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrUserNotFound, username)
	case resp.StatusCode != http.StatusOK:
		body, readErr := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
		if readErr != nil {
			return fmt.Errorf("reddit API returned status %d (failed to read response)", resp.StatusCode)
		}
		return fmt.Errorf("reddit API returned status %d: %s", resp.StatusCode, string(body))
	}
	c.logger.Debug("resolved reddit user", "username", username)
	return nil
}

// listingChild is the envelope Reddit wraps every listing item in.
type listingChild struct {
	Data struct {
		ID           string  `json:"id"`
		Title        string  `json:"title"`
		SelfText     string  `json:"selftext"`
		SelfTextHTML string  `json:"selftext_html"`
		Body         string  `json:"body"`
		BodyHTML     string  `json:"body_html"`
		Subreddit    string  `json:"subreddit"`
		LinkTitle    string  `json:"link_title"`
		URL          string  `json:"url"`
		CreatedUTC   float64 `json:"created_utc"`
		Permalink    string  `json:"permalink"`
	} `json:"data"`
}

// fetchListing walks a user listing newest-first, following the "after"
// cursor until limit items are collected or the listing ends.
func (c *Client) fetchListing(ctx context.Context, username, kind string, limit int) ([]listingChild, error) {
	var children []listingChild
	after := ""

	for len(children) < limit {
		pageSize := limit - len(children)
		if pageSize > maxPageSize {
			pageSize = maxPageSize
		}
		query := url.Values{
			"sort":     {"new"},
			"limit":    {strconv.Itoa(pageSize)},
			"raw_json": {"1"},
		}
		if after != "" {
			query.Set("after", after)
		}

		resp, err := c.get(ctx, "/user/"+url.PathEscape(username)+"/"+kind, query)
		if err != nil {
			return nil, fmt.Errorf("fetching %s for %s: %w", kind, username, err)
		}

		page, next, err := c.decodeListing(resp)
		if err != nil {
			return nil, fmt.Errorf("decoding %s listing: %w", kind, err)
		}
		children = append(children, page...)
		if next == "" || len(page) == 0 {
			break
		}
		after = next
	}

	if len(children) > limit {
		children = children[:limit]
	}
	c.logger.Debug("fetched listing", "username", username, "kind", kind, "count", len(children))
	return children, nil
}

func (c *Client) decodeListing(resp *http.Response) ([]listingChild, string, error) {
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Debug("failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		body, readErr := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
		if readErr != nil {
			return nil, "", fmt.Errorf("reddit API returned status %d (failed to read response)", resp.StatusCode)
		}
		return nil, "", fmt.Errorf("reddit API returned status %d: %s", resp.StatusCode, string(body))
	}

	var listing struct {
		Data struct {
			After    string         `json:"after"`
			Children []listingChild `json:"children"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, "", err
	}
	return listing.Data.Children, listing.Data.After, nil
}

// markdownBody returns plain when present, otherwise converts the HTML
// variant some listings carry instead.
func (c *Client) markdownBody(plain, htmlBody string) string {
	if plain != "" || htmlBody == "" {
		return plain
	}
	converted, err := md.ConvertString(htmlBody)
	if err != nil {
		c.logger.Debug("html-to-markdown conversion failed", "error", err)
		return plain
	}
	return strings.TrimSpace(converted)
}

// Submitted fetches up to limit of the user's newest posts.
func (c *Client) Submitted(ctx context.Context, username string, limit int) ([]Post, error) {
	children, err := c.fetchListing(ctx, username, "submitted", limit)
	if err != nil {
		return nil, err
	}
	posts := make([]Post, 0, len(children))
	for _, child := range children {
		posts = append(posts, Post{
			ID:         child.Data.ID,
			Title:      child.Data.Title,
			SelfText:   c.markdownBody(child.Data.SelfText, child.Data.SelfTextHTML),
			Subreddit:  child.Data.Subreddit,
			URL:        child.Data.URL,
			CreatedUTC: child.Data.CreatedUTC,
			Permalink:  siteBase + child.Data.Permalink,
		})
	}
	return posts, nil
}

// Comments fetches up to limit of the user's newest comments.
func (c *Client) Comments(ctx context.Context, username string, limit int) ([]Comment, error) {
	children, err := c.fetchListing(ctx, username, "comments", limit)
	if err != nil {
		return nil, err
	}
	comments := make([]Comment, 0, len(children))
	for _, child := range children {
		comments = append(comments, Comment{
			ID:         child.Data.ID,
			Body:       c.markdownBody(child.Data.Body, child.Data.BodyHTML),
			Subreddit:  child.Data.Subreddit,
			LinkTitle:  child.Data.LinkTitle,
			CreatedUTC: child.Data.CreatedUTC,
			Permalink:  siteBase + child.Data.Permalink,
		})
	}
	return comments, nil
}

// UserActivity resolves the user and fetches their recent posts and
// comments as one bundle.
func (c *Client) UserActivity(ctx context.Context, username string, limit int) (Bundle, error) {
	if err := c.About(ctx, username); err != nil {
		return Bundle{}, err
	}
	posts, err := c.Submitted(ctx, username, limit)
	if err != nil {
		return Bundle{}, err
	}
	comments, err := c.Comments(ctx, username, limit)
	if err != nil {
		return Bundle{}, err
	}
	return Bundle{Posts: posts, Comments: comments}, nil
}
