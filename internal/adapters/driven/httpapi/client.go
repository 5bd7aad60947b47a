// Package httpapi implements the grading service client.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/etis-cli/internal/core/domain"
	"github.com/custodia-labs/etis-cli/internal/core/ports/driven"
	"github.com/custodia-labs/etis-cli/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.GradingAPI = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL   = domain.DefaultAPIBaseURL
	DefaultTimeout   = domain.DefaultAPITimeout
	DefaultRateLimit = domain.DefaultRateLimit
	DefaultBurst     = 2

	// RequestIDHeader carries a per-request identifier for server-side logs.
	RequestIDHeader = "X-Request-ID"

	maxErrorBody = 64 << 10
)

// Config holds configuration for the grading service client.
type Config struct {
	// BaseURL is the service root (default: http://localhost:8000).
	BaseURL string

	// Timeout bounds each request (default: 120s).
	Timeout time.Duration

	// Token, when set, is sent as a bearer token.
	Token string

	// RateLimit is the sustained requests per second (default: 2).
	RateLimit float64
}

// ConfigFromSettings maps stored settings onto a client config.
func ConfigFromSettings(s domain.APISettings) Config {
	return Config{
		BaseURL:   s.BaseURL,
		Timeout:   s.Timeout,
		Token:     s.Token,
		RateLimit: s.RateLimit,
	}
}

// Client talks to the grading service over HTTP. It never retries.
type Client struct {
	client  *http.Client
	baseURL string
	limiter *rate.Limiter
}

// loginResponse is the /api/login response format.
type loginResponse struct {
	Success bool  `json:"success"`
	Terms   []int `json:"terms"`
}

// NewClient creates a new grading service client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = DefaultRateLimit
	}

	var client *http.Client
	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		client = oauth2.NewClient(context.Background(), ts)
	} else {
		client = &http.Client{}
	}
	client.Timeout = cfg.Timeout

	return &Client{
		client:  client,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), DefaultBurst),
	}
}

// BaseURL returns the service root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Login authenticates the credentials and returns the available terms.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) ([]int, error) {
	var resp loginResponse
	if err := c.postJSON(ctx, "/api/login", creds, &resp); err != nil {
		return nil, err
	}
	if resp.Terms == nil {
		return []int{}, nil
	}
	return resp.Terms, nil
}

// Analyze requests an analysis. success=false responses are returned as-is.
func (c *Client) Analyze(ctx context.Context, req driven.AnalyzeRequest) (*domain.AnalysisResult, error) {
	var result domain.AnalysisResult
	if err := c.postJSON(ctx, "/api/analyze", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Download fetches the named export of the last analysis.
func (c *Client) Download(
	ctx context.Context,
	fileType domain.FileType,
	username, term string,
) ([]byte, error) {
	query := url.Values{}
	query.Set("username", username)
	query.Set("term", term)

	endpoint := c.baseURL + "/download/" + url.PathEscape(fileType.String()) + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return data, nil
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// do throttles, sends and converts non-2xx responses into *APIError.
// On success the caller owns the response body.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	logger.Debug("%s %s [%s]", req.Method, req.URL.Path, requestID)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Detail:     parseDetail(body),
			URL:        req.URL.Redacted(),
		}
	}

	return resp, nil
}
