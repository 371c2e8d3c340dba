package httpcache

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGetSetRoundTrip(t *testing.T) {
	c := New(time.Hour, slog.Default())

	if _, _, found := c.Get("https://example.com/a"); found {
		t.Fatal("Get() on empty cache reported a hit")
	}

	if err := c.Set("https://example.com/a", []byte("payload"), `"etag-1"`); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	data, etag, found := c.Get("https://example.com/a")
	if !found {
		t.Fatal("Get() after Set() missed")
	}
	if string(data) != "payload" || etag != `"etag-1"` {
		t.Errorf("Get() = %q, %q; want payload, etag-1", data, etag)
	}

	if _, _, found := c.Get("https://example.com/b"); found {
		t.Error("Get() for a different URL reported a hit")
	}
}

func TestAPICallKeyedByPayload(t *testing.T) {
	c := New(time.Hour, slog.Default())

	if err := c.SetAPICall("genai:model", []byte("prompt one"), []byte("answer one")); err != nil {
		t.Fatalf("SetAPICall() error: %v", err)
	}

	data, found := c.APICall("genai:model", []byte("prompt one"))
	if !found || string(data) != "answer one" {
		t.Fatalf("APICall() = %q, %v; want answer one, true", data, found)
	}

	// Same key with a different payload is a distinct entry.
	if _, found := c.APICall("genai:model", []byte("prompt two")); found {
		t.Error("APICall() with a different payload reported a hit")
	}
	if _, found := c.APICall("other", []byte("prompt one")); found {
		t.Error("APICall() with a different key reported a hit")
	}
}

func TestCachedHTTPClientServesRepeatGets(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.Header().Set("ETag", `"v1"`)
		if _, err := w.Write([]byte("upstream body")); err != nil {
			t.Errorf("write: %v", err)
		}
	}))
	defer server.Close()

	client := NewCachedHTTPClient(New(time.Hour, slog.Default()), server.Client(), slog.Default())

	for i := range 2 {
		req, err := http.NewRequest(http.MethodGet, server.URL+"/resource", http.NoBody)
		if err != nil {
			t.Fatalf("NewRequest: %v", err)
		}
		resp, err := client.Do(req)
		if err != nil {
			t.Fatalf("Do() error on request %d: %v", i, err)
		}
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			t.Fatalf("reading body: %v", err)
		}
		if err := resp.Body.Close(); err != nil {
			t.Fatalf("closing body: %v", err)
		}
		if string(body) != "upstream body" {
			t.Errorf("request %d body = %q", i, body)
		}
		fromCache := resp.Header.Get("X-From-Cache") == "true"
		if fromCache != (i == 1) {
			t.Errorf("request %d X-From-Cache = %v", i, fromCache)
		}
	}

	if hits != 1 {
		t.Errorf("upstream served %d requests, want 1", hits)
	}
}

func TestCachedHTTPClientPassesThroughPosts(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		if _, err := w.Write([]byte("ok")); err != nil {
			t.Errorf("write: %v", err)
		}
	}))
	defer server.Close()

	client := NewCachedHTTPClient(New(time.Hour, slog.Default()), server.Client(), slog.Default())

	for range 2 {
		req, err := http.NewRequest(http.MethodPost, server.URL, bytes.NewReader([]byte("data")))
		if err != nil {
			t.Fatalf("NewRequest: %v", err)
		}
		resp, err := client.Do(req)
		if err != nil {
			t.Fatalf("Do() error: %v", err)
		}
		if err := resp.Body.Close(); err != nil {
			t.Fatalf("closing body: %v", err)
		}
	}

	if hits != 2 {
		t.Errorf("upstream served %d POST requests, want 2", hits)
	}
}

func TestCachedHTTPClientNilCachePassthrough(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
	}))
	defer server.Close()

	client := NewCachedHTTPClient(nil, server.Client(), slog.Default())

	for range 2 {
		req, err := http.NewRequest(http.MethodGet, server.URL, http.NoBody)
		if err != nil {
			t.Fatalf("NewRequest: %v", err)
		}
		resp, err := client.Do(req)
		if err != nil {
			t.Fatalf("Do() error: %v", err)
		}
		if err := resp.Body.Close(); err != nil {
			t.Fatalf("closing body: %v", err)
		}
	}

	if hits != 2 {
		t.Errorf("upstream served %d requests with nil cache, want 2", hits)
	}
}
