package tmdb_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"moviestats/internal/tmdb"
)

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := tmdb.New("", "https://example.com", "en-US"); err == nil {
		t.Fatal("expected error when api key missing")
	}
	if _, err := tmdb.New("key", " ", "en-US"); err == nil {
		t.Fatal("expected error when base url missing")
	}
}

func TestSearchMovieSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/movie" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("api_key") != "key" {
			t.Errorf("expected api_key query parameter, got %q", r.URL.RawQuery)
		}
		if r.URL.Query().Get("query") != "Jaws" {
			t.Errorf("expected raw title query, got %q", r.URL.Query().Get("query"))
		}
		if r.URL.Query().Get("language") != "en-US" {
			t.Errorf("expected language parameter, got %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"page":1,"results":[{"id":578,"title":"Jaws"},{"id":579,"title":"Jaws 2"}]}`))
	}))
	t.Cleanup(server.Close)

	client, err := tmdb.New("key", server.URL, "en-US")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	resp, err := client.SearchMovie(context.Background(), "Jaws")
	if err != nil {
		t.Fatalf("SearchMovie returned error: %v", err)
	}
	if len(resp.Results) != 2 || resp.Results[0].ID != 578 {
		t.Fatalf("unexpected response: %#v", resp)
	}
}

func TestSearchMovieHTTPErrorCarriesStatusMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status_code":7,"status_message":"Invalid API key: You must be granted a valid key."}`))
	}))
	t.Cleanup(server.Close)

	client, err := tmdb.New("key", server.URL, "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	_, err = client.SearchMovie(context.Background(), "fail")
	if err == nil {
		t.Fatal("expected error when TMDB returns non-200")
	}
	var statusErr *tmdb.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %T", err)
	}
	if statusErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unexpected status code %d", statusErr.StatusCode)
	}
	if !strings.Contains(err.Error(), "Invalid API key") {
		t.Fatalf("expected provider message in error, got %q", err)
	}
}

func TestSearchMovieEmptyQuery(t *testing.T) {
	client, err := tmdb.New("key", "https://example.com", "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.SearchMovie(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty query")
	}
}

func TestMovieDetailsAndCredits(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/movie/578":
			_, _ = w.Write([]byte(`{"id":578,"title":"Jaws","release_date":"1975-06-20","runtime":124,"vote_average":7.7,"vote_count":9000,"poster_path":"/jaws.jpg","genres":[{"id":27,"name":"Horror"},{"id":53,"name":"Thriller"}]}`))
		case "/movie/578/credits":
			_, _ = w.Write([]byte(`{"id":578,"cast":[{"name":"Roy Scheider"}],"crew":[{"name":"Steven Spielberg","job":"Director"},{"name":"John Williams","job":"Original Music Composer"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)

	client, err := tmdb.New("key", server.URL, "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	details, err := client.MovieDetails(context.Background(), 578)
	if err != nil {
		t.Fatalf("MovieDetails returned error: %v", err)
	}
	if details.Runtime != 124 || details.VoteCount != 9000 || len(details.Genres) != 2 {
		t.Fatalf("unexpected details: %#v", details)
	}

	credits, err := client.MovieCredits(context.Background(), 578)
	if err != nil {
		t.Fatalf("MovieCredits returned error: %v", err)
	}
	if len(credits.Cast) != 1 || len(credits.Crew) != 2 || credits.Crew[0].Job != "Director" {
		t.Fatalf("unexpected credits: %#v", credits)
	}
}

func TestMovieDetailsRejectsInvalidPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":578,"title":"Jaws","vote_average":42,"vote_count":1}`))
	}))
	t.Cleanup(server.Close)

	client, err := tmdb.New("key", server.URL, "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.MovieDetails(context.Background(), 578); err == nil {
		t.Fatal("expected validation error for out-of-range rating")
	}
}

func TestPosterURLUsesConfigurationOnce(t *testing.T) {
	var configCalls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/configuration" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		configCalls.Add(1)
		_, _ = w.Write([]byte(`{"images":{"base_url":"http://image.tmdb.org/t/p/","secure_base_url":"https://image.tmdb.org/t/p/","poster_sizes":["w92","w154","original"]}}`))
	}))
	t.Cleanup(server.Close)

	client, err := tmdb.New("key", server.URL, "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	got, err := client.PosterURL(context.Background(), "/jaws.jpg", "w92")
	if err != nil {
		t.Fatalf("PosterURL returned error: %v", err)
	}
	if got != "https://image.tmdb.org/t/p/w92/jaws.jpg" {
		t.Fatalf("unexpected poster url %q", got)
	}
	if _, err := client.PosterURL(context.Background(), "/et.jpg", "w92"); err != nil {
		t.Fatalf("second PosterURL returned error: %v", err)
	}
	if configCalls.Load() != 1 {
		t.Fatalf("expected configuration to be fetched once, got %d", configCalls.Load())
	}
	if _, err := client.PosterURL(context.Background(), "/et.jpg", "w9000"); err == nil {
		t.Fatal("expected error for unknown poster size")
	}
	if empty, err := client.PosterURL(context.Background(), "", "w92"); err != nil || empty != "" {
		t.Fatalf("expected empty url for empty path, got %q err=%v", empty, err)
	}
}

func TestPosterURLWithFixedImageBase(t *testing.T) {
	client, err := tmdb.New("key", "http://127.0.0.1:1", "", tmdb.WithImageBaseURL("https://img.example/t/p/"))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	got, err := client.PosterURL(context.Background(), "/poster.jpg", "w92")
	if err != nil {
		t.Fatalf("PosterURL returned error: %v", err)
	}
	if got != "https://img.example/t/p/w92/poster.jpg" {
		t.Fatalf("unexpected poster url %q", got)
	}
}

func TestRateLimiterHonoursCancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	t.Cleanup(server.Close)

	client, err := tmdb.New("key", server.URL, "", tmdb.WithRequestsPerSecond(0.001))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.SearchMovie(context.Background(), "first"); err != nil {
		t.Fatalf("first request should use the initial token: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := client.SearchMovie(ctx, "second"); err == nil {
		t.Fatal("expected throttled request to fail on cancelled context")
	}
}

func TestWithTimeoutLeavesSharedHTTPClientUntouched(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"page":1,"results":[{"id":578,"title":"Jaws"}]}`))
	}))
	defer srv.Close()

	shared := &http.Client{Timeout: 30 * time.Second}
	client, err := tmdb.New("key", srv.URL, "en-US",
		tmdb.WithHTTPClient(shared),
		tmdb.WithTimeout(2*time.Second),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if shared.Timeout != 30*time.Second {
		t.Fatalf("shared client timeout changed to %v", shared.Timeout)
	}
	resp, err := client.SearchMovie(context.Background(), "Jaws")
	if err != nil {
		t.Fatalf("SearchMovie: %v", err)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("expected one result, got %d", len(resp.Results))
	}
}
