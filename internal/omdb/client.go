package omdb

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
	"time"

	"github.com/mmcdole/reel/internal/domain"
)

const (
	defaultBaseURL   = "https://www.omdbapi.com/"
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "Reel/1.0"

	// maxBodySize caps how much of a response is read
	maxBodySize = 4 << 20
)

// Ensure Client implements domain.MovieRepository at compile time.
var _ domain.MovieRepository = (*Client)(nil)

// RequestError carries a user-facing message. The wrapped error keeps the
// cause for errors.Is checks and logging.
type RequestError struct {
	Message string
	Err     error
}

func (e *RequestError) Error() string { return e.Message }

func (e *RequestError) Unwrap() error { return e.Err }

// Options configures a Client
type Options struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	UserAgent  string
	HTTPClient *http.Client // Overrides Timeout when set
}

// Client implements domain.MovieRepository for the OMDb API
type Client struct {
	baseURL    string
	apiKey     string
	userAgent  string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new OMDb API client
func NewClient(opts Options, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{
		baseURL:    opts.BaseURL,
		apiKey:     opts.APIKey,
		userAgent:  opts.UserAgent,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Search returns one page of title matches. The query is sent as-is;
// length filtering is the caller's job. A "no results" answer comes back
// as a page with Response=false and the service's message.
func (c *Client) Search(ctx context.Context, query string, page int) (*domain.SearchPage, error) {
	if page < 1 {
		page = 1
	}
	params := url.Values{}
	params.Set("s", query)
	params.Set("page", strconv.Itoa(page))

	var resp SearchResponse
	if err := c.get(ctx, params, &resp, "Failed to fetch movies"); err != nil {
		return nil, err
	}

	result := MapSearch(&resp)
	c.logger.Debug("omdb search complete", "query", query, "page", page,
		"ok", result.Response, "results", len(result.Movies), "total", result.TotalResults)
	return result, nil
}

// GetDetails returns the full-plot record for id
func (c *Client) GetDetails(ctx context.Context, id string) (*domain.MovieDetails, error) {
	params := url.Values{}
	params.Set("i", id)
	params.Set("plot", "full")

	var resp TitleResponse
	if err := c.get(ctx, params, &resp, "Failed to fetch movie details"); err != nil {
		return nil, err
	}

	if !isTrue(resp.Response) {
		c.logger.Debug("omdb title not found", "id", id, "error", resp.Error)
		return nil, domain.ErrMovieNotFound
	}

	return MapDetails(&resp), nil
}

// get performs an authenticated GET and decodes the JSON body into dest.
// failMsg is the user-facing message for transport and status failures.
func (c *Client) get(ctx context.Context, params url.Values, dest any, failMsg string) error {
	params.Set("apikey", c.apiKey)
	reqURL := c.baseURL
	if strings.Contains(reqURL, "?") {
		reqURL += "&" + params.Encode()
	} else {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return &RequestError{Message: failMsg, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.Debug("omdb request", "url", redact(reqURL, c.apiKey))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() == nil {
			c.logger.Error("omdb request failed", "error", redactErr(err, c.apiKey))
		}
		return &RequestError{Message: failMsg, Err: errors.Join(domain.ErrServiceUnavailable, err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return &RequestError{Message: failMsg, Err: errors.Join(domain.ErrServiceUnavailable, err)}
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("omdb request error", "status", resp.StatusCode, "body", truncate(string(body), 200))
		// OMDb answers a bad key with 401 and a JSON message worth showing
		if msg := errorMessage(body); msg != "" && resp.StatusCode == http.StatusUnauthorized {
			return &RequestError{Message: msg, Err: domain.ErrServiceUnavailable}
		}
		return &RequestError{
			Message: failMsg,
			Err:     fmt.Errorf("%w: unexpected status code %d", domain.ErrServiceUnavailable, resp.StatusCode),
		}
	}

	if err := json.Unmarshal(body, dest); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return &RequestError{Message: "Failed to parse response", Err: err}
	}
	return nil
}

// errorMessage extracts the Error field from an OMDb body, if any
func errorMessage(body []byte) string {
	var envelope struct {
		Error string `json:"Error"`
	}
	if json.Unmarshal(body, &envelope) != nil {
		return ""
	}
	return strings.TrimSpace(envelope.Error)
}

func redact(s, secret string) string {
	if secret == "" {
		return s
	}
	s = strings.ReplaceAll(s, url.QueryEscape(secret), "REDACTED")
	return strings.ReplaceAll(s, secret, "REDACTED")
}

func redactErr(err error, secret string) string {
	return redact(err.Error(), secret)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
