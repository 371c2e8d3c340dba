// Package httpcache provides an in-memory response cache for the Reddit
// and Gemini calls a run makes. Nothing is persisted: the persona file is
// the only artifact this tool writes to disk.
package httpcache

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/maypok86/otter/v2"
)

// Entry is one cached response body.
type Entry struct {
	ExpiresAt time.Time
	ETag      string
	Data      []byte
}

// Cache is a bounded in-memory cache keyed by request URL (GETs) or
// URL+payload (API calls).
type Cache struct {
	cache  otter.Cache[string, Entry]
	logger *slog.Logger
	ttl    time.Duration
}

// New creates an in-memory cache with the given entry TTL.
func New(ttl time.Duration, logger *slog.Logger) *Cache {
	cache := otter.Must(&otter.Options[string, Entry]{
		MaximumSize:      10_000,
		InitialCapacity:  1_000,
		ExpiryCalculator: otter.ExpiryWriting[string, Entry](ttl),
	})

	return &Cache{
		cache:  *cache,
		ttl:    ttl,
		logger: logger,
	}
}

func cacheKey(parts ...[]byte) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write(p)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached body and ETag for a URL.
func (c *Cache) Get(url string) ([]byte, string, bool) {
	entry, found := c.cache.GetIfPresent(cacheKey([]byte(url)))
	if !found {
		c.logger.Debug("cache miss", "url", url)
		return nil, "", false
	}
	// otter expires on its own, but guard against a stale read anyway.
	if time.Now().After(entry.ExpiresAt) {
		c.cache.Invalidate(cacheKey([]byte(url)))
		return nil, "", false
	}
	return entry.Data, entry.ETag, true
}

// Set stores a response body for a URL.
func (c *Cache) Set(url string, data []byte, etag string) error {
	c.cache.Set(cacheKey([]byte(url)), Entry{
		Data:      data,
		ExpiresAt: time.Now().Add(c.ttl),
		ETag:      etag,
	})
	c.logger.Debug("cache set", "url", url, "size", len(data))
	return nil
}

// APICall returns the cached response for a key+payload pair.
func (c *Cache) APICall(key string, requestPayload []byte) ([]byte, bool) {
	entry, found := c.cache.GetIfPresent(cacheKey([]byte(key), requestPayload))
	if !found {
		c.logger.Debug("API cache miss", "key", key)
		return nil, false
	}
	if time.Now().After(entry.ExpiresAt) {
		c.cache.Invalidate(cacheKey([]byte(key), requestPayload))
		return nil, false
	}
	return entry.Data, true
}

// SetAPICall stores a response for a key+payload pair.
func (c *Cache) SetAPICall(key string, requestPayload, data []byte) error {
	c.cache.Set(cacheKey([]byte(key), requestPayload), Entry{
		Data:      data,
		ExpiresAt: time.Now().Add(c.ttl),
	})
	c.logger.Debug("API cache set", "key", key, "size", len(data))
	return nil
}

// HTTPClient is the piece of http.Client the cached wrapper needs.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// CachedHTTPClient wraps an HTTP client with response caching for GET
// requests. Other methods pass through untouched.
type CachedHTTPClient struct {
	cache      *Cache
	httpClient HTTPClient
	logger     *slog.Logger
}

// NewCachedHTTPClient creates a caching wrapper around httpClient.
func NewCachedHTTPClient(cache *Cache, httpClient HTTPClient, logger *slog.Logger) *CachedHTTPClient {
	return &CachedHTTPClient{
		cache:      cache,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Do performs an HTTP request, serving and filling the cache for GETs.
func (c *CachedHTTPClient) Do(req *http.Request) (*http.Response, error) {
	if c.cache == nil || req.Method != http.MethodGet {
		return c.httpClient.Do(req)
	}

	url := req.URL.String()
	if data, etag, found := c.cache.Get(url); found {
		resp := &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(bytes.NewReader(data)),
			Header:     make(http.Header),
			Request:    req,
		}
		resp.Header.Set("X-From-Cache", "true")
		if etag != "" {
			resp.Header.Set("ETag", etag)
		}
		return resp, nil
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Debug("failed to close response body", "error", closeErr)
		}
		if err != nil {
			return nil, err
		}
		if err := c.cache.Set(url, body, resp.Header.Get("ETag")); err != nil {
			c.logger.Debug("cache set failed", "url", url, "error", err)
		}
		resp.Body = io.NopCloser(bytes.NewReader(body))
	}

	return resp, nil
}
