package tmdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"moviestats/internal/validation"
)

// Client provides access to the TMDB API.
type Client struct {
	apiKey       string
	baseURL      string
	language     string
	imageBaseURL string
	httpClient   *http.Client
	limiter      *rate.Limiter

	imagesMu sync.Mutex
	images   *ImageConfiguration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the per-request timeout. A client supplied through
// WithHTTPClient is copied first so the caller's instance is left untouched.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			copied := *c.httpClient
			copied.Timeout = timeout
			c.httpClient = &copied
		}
	}
}

// WithRequestsPerSecond throttles outgoing requests. Zero or negative disables throttling.
func WithRequestsPerSecond(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithImageBaseURL skips the /configuration lookup and builds poster URLs
// from the given host prefix (e.g. https://image.tmdb.org/t/p/).
func WithImageBaseURL(base string) Option {
	return func(c *Client) {
		c.imageBaseURL = strings.TrimSpace(base)
	}
}

// New creates a TMDB client.
func New(apiKey, baseURL, language string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("tmdb api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("tmdb base url required")
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		language:   strings.TrimSpace(language),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// SearchMovie searches TMDB for the supplied title. Results keep TMDB's ranking.
func (c *Client) SearchMovie(ctx context.Context, query string) (*Response, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}
	params := url.Values{}
	params.Set("query", query)

	var payload Response
	if err := c.get(ctx, "search", "/search/movie", params, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// MovieDetails fetches the full movie record by TMDB ID.
func (c *Client) MovieDetails(ctx context.Context, movieID int64) (*MovieDetails, error) {
	if movieID <= 0 {
		return nil, errors.New("movie id must be positive")
	}
	var payload MovieDetails
	if err := c.get(ctx, "movie details", fmt.Sprintf("/movie/%d", movieID), nil, &payload); err != nil {
		return nil, err
	}
	if err := validation.Struct(payload); err != nil {
		return nil, fmt.Errorf("tmdb movie %d: %w", movieID, err)
	}
	return &payload, nil
}

// MovieCredits fetches cast and crew for a movie.
func (c *Client) MovieCredits(ctx context.Context, movieID int64) (*Credits, error) {
	if movieID <= 0 {
		return nil, errors.New("movie id must be positive")
	}
	var payload Credits
	if err := c.get(ctx, "movie credits", fmt.Sprintf("/movie/%d/credits", movieID), nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Configuration fetches the image hosting configuration.
func (c *Client) Configuration(ctx context.Context) (*ImageConfiguration, error) {
	var payload configurationResponse
	if err := c.get(ctx, "configuration", "/configuration", nil, &payload); err != nil {
		return nil, err
	}
	return &payload.Images, nil
}

// PosterURL turns a poster_path into a displayable URL for the given size
// token (w92, w185, original, ...). An empty path yields an empty URL.
func (c *Client) PosterURL(ctx context.Context, posterPath, size string) (string, error) {
	posterPath = strings.TrimSpace(posterPath)
	if posterPath == "" {
		return "", nil
	}
	size = strings.TrimSpace(size)
	if size == "" {
		size = "original"
	}

	base := c.imageBaseURL
	if base == "" {
		images, err := c.imageConfiguration(ctx)
		if err != nil {
			return "", err
		}
		if len(images.PosterSizes) > 0 && !contains(images.PosterSizes, size) {
			return "", fmt.Errorf("tmdb poster size %q not offered (have %s)", size, strings.Join(images.PosterSizes, ", "))
		}
		base = images.SecureBaseURL
		if base == "" {
			base = images.BaseURL
		}
	}
	if base == "" {
		return "", errors.New("tmdb image base url unavailable")
	}
	return strings.TrimRight(base, "/") + "/" + size + "/" + strings.TrimLeft(posterPath, "/"), nil
}

func (c *Client) imageConfiguration(ctx context.Context) (*ImageConfiguration, error) {
	c.imagesMu.Lock()
	defer c.imagesMu.Unlock()
	if c.images != nil {
		return c.images, nil
	}
	images, err := c.Configuration(ctx)
	if err != nil {
		return nil, err
	}
	c.images = images
	return images, nil
}

func (c *Client) get(ctx context.Context, operation, path string, params url.Values, out any) error {
	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("parse tmdb url: %w", err)
	}
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}
	endpoint.RawQuery = params.Encode()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("tmdb %s: %w", operation, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return newStatusError(operation, resp, latency)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode tmdb %s response: %w", operation, err)
	}
	return nil
}

// StatusError reports a non-200 TMDB response.
type StatusError struct {
	Operation  string
	StatusCode int
	Message    string
	Latency    time.Duration
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("tmdb %s returned %d: %s (latency=%v)", e.Operation, e.StatusCode, e.Message, e.Latency)
	}
	return fmt.Sprintf("tmdb %s returned %d (latency=%v)", e.Operation, e.StatusCode, e.Latency)
}

func newStatusError(operation string, resp *http.Response, latency time.Duration) error {
	statusErr := &StatusError{Operation: operation, StatusCode: resp.StatusCode, Latency: latency}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err == nil && len(body) > 0 {
		var payload struct {
			StatusMessage string `json:"status_message"`
		}
		if json.Unmarshal(body, &payload) == nil {
			statusErr.Message = strings.TrimSpace(payload.StatusMessage)
		}
	}
	return statusErr
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
