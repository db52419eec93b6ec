package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/learnquest/internal/common"
	"github.com/dmitrijs2005/learnquest/internal/logging"
)

// Client talks to one backend project.
type Client struct {
	baseURL     string
	apiKey      string
	serviceKey  string
	accessToken string
	httpClient  *http.Client
	logger      logging.Logger
	now         func() time.Time
}

type Option func(*Client)

// WithServiceRoleKey enables admin calls (see Admin).
func WithServiceRoleKey(key string) Option {
	return func(c *Client) { c.serviceKey = key }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New returns a client for the project at baseURL authenticated with the
// public anon key.
func New(baseURL, anonKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     anonKey,
		httpClient: http.DefaultClient,
		logger:     logging.Discard(),
		now:        time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	c.logger = c.logger.With("module", "backend")
	return c
}

// Admin returns a copy of the client that authenticates with the
// service-role key instead of the caller's token.
func (c *Client) Admin() (*Client, error) {
	if c.serviceKey == "" {
		return nil, fmt.Errorf("%w: service role key not configured", common.ErrUnauthorized)
	}
	admin := *c
	admin.apiKey = c.serviceKey
	admin.accessToken = c.serviceKey
	return &admin, nil
}

// SetAccessToken installs the bearer token used for subsequent calls.
func (c *Client) SetAccessToken(token string) {
	c.accessToken = token
}

func (c *Client) AccessToken() string {
	return c.accessToken
}

func (c *Client) bearer() string {
	if c.accessToken != "" {
		return c.accessToken
	}
	return c.apiKey
}

// do performs one JSON request. body and out may be nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, header http.Header, out any) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if len(query) > 0 {
		req.URL.RawQuery = query.Encode()
	}

	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.bearer())
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", common.ErrUnavailable, err)
	}

	c.logger.Debug(ctx, "backend call", "method", method, "path", path, "status", resp.StatusCode)

	if resp.StatusCode >= http.StatusBadRequest {
		return newAPIError(resp.StatusCode, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func asAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}
