package listing_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"aniharvest/internal/listing"
)

func TestNewClientRequiresBaseURL(t *testing.T) {
	if _, err := listing.NewClient("  ", time.Second); err == nil {
		t.Fatal("expected error when base url missing")
	}
}

func TestClientURL(t *testing.T) {
	client, err := listing.NewClient("https://example.com/ajax/episode/list/", time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if got := client.URL(123); got != "https://example.com/ajax/episode/list/123" {
		t.Fatalf("unexpected url %q", got)
	}
}

func TestFetchSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/77" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		markup := `<li class=\"ep-item\" data-id=\"7\"><a href=\"/watch/demo-show?ep=7\">7</a></li><li class=\"ep-item\" data-id=\"9\"></li>`
		fmt.Fprintf(w, `{"html": "%s"}`, markup)
	}))
	t.Cleanup(server.Close)

	client, err := listing.NewClient(server.URL, time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	result, err := client.Fetch(context.Background(), 77)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if result.FirstEpisode != 7 || result.LastEpisode != 9 {
		t.Fatalf("unexpected range %d..%d", result.FirstEpisode, result.LastEpisode)
	}
	if result.NameToken != "demo-show?" {
		t.Fatalf("unexpected name token %q", result.NameToken)
	}
}

func TestFetchHTTPStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	client, err := listing.NewClient(server.URL, time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := client.Fetch(context.Background(), 1); !errors.Is(err, listing.ErrHTTPStatus) {
		t.Fatalf("expected ErrHTTPStatus, got %v", err)
	}
}

func TestFetchTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	client, err := listing.NewClient(server.URL, time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := client.Fetch(context.Background(), 1); !errors.Is(err, listing.ErrHTTPStatus) {
		t.Fatalf("expected ErrHTTPStatus for transport failure, got %v", err)
	}
}

func TestFetchEmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"html": "  "}`))
	}))
	t.Cleanup(server.Close)

	client, err := listing.NewClient(server.URL, time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := client.Fetch(context.Background(), 1); !errors.Is(err, listing.ErrEmptyBody) {
		t.Fatalf("expected ErrEmptyBody, got %v", err)
	}
}

func TestFetchNoEpisodeItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"html": "<div>maintenance</div>"}`))
	}))
	t.Cleanup(server.Close)

	client, err := listing.NewClient(server.URL, time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := client.Fetch(context.Background(), 1); !errors.Is(err, listing.ErrNoEpisodeItems) {
		t.Fatalf("expected ErrNoEpisodeItems, got %v", err)
	}
}
