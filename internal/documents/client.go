package documents

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

const documentsPath = "/api/v1/documents"

// Client talks to the backend documents API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds every request made by the client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithToken sends the given bearer token with every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithTokenSource authorizes every request with tokens from ts, refreshing
// them as they expire.
func WithTokenSource(ts oauth2.TokenSource) Option {
	return func(c *Client) {
		c.httpClient.Transport = &oauth2.Transport{Source: ts, Base: c.httpClient.Transport}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a documents API client rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search runs a documents search with the given parameters. A non-200
// response yields a *SearchRequestFailedError.
func (c *Client) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	endpoint := c.baseURL + documentsPath
	if q := params.Values().Encode(); q != "" {
		endpoint += "?" + q
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("searching documents: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &SearchRequestFailedError{StatusCode: resp.StatusCode, StatusText: statusText(resp)}
	}

	var result SearchResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}
	return &result, nil
}

// Create asks the backend for a new, empty document of the given type.
func (c *Client) Create(ctx context.Context, t Type) (*Document, error) {
	form := url.Values{"type": {string(t)}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+documentsPath, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("creating document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, &SearchRequestFailedError{StatusCode: resp.StatusCode, StatusText: statusText(resp)}
	}

	var doc Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding created document: %w", err)
	}
	if doc.UUID == "" {
		return nil, fmt.Errorf("created document has no uuid")
	}
	if doc.Type == "" {
		doc.Type = t
	}
	return &doc, nil
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

// statusText returns the reason phrase of resp, e.g. "Not Found".
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}
