package quandl

import (
	"errors"
	"net/http"
	"strings"
)

// baseURL is the Nasdaq Data Link (formerly Quandl) v3 API root.
const baseURL = "https://data.nasdaq.com/api/v3"

// apiKeyHeader carries the API key. The key is kept out of the URL so that
// transport errors, which quote the URL, never expose it.
const apiKeyHeader = "X-Api-Token"

// ErrMissingAPIKey is returned by NewClient when no API key is given.
var ErrMissingAPIKey = errors.New("quandl: missing api key")

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=quandl_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a client for the Quandl datasets API.
type Client struct {
	// baseURL is the base URL for the API.
	baseURL string
	// httpClient performs the requests.
	httpClient HTTPClient
	// header contains additional headers to be sent with each request.
	header http.Header
}

// ClientOption is a configuration option for the Quandl client.
type ClientOption func(*Client)

// WithBaseURL sets the base URL for the API. An empty value keeps the default.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		if baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/"); baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithHTTPClient sets the HTTP client for the API.
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithHeader sets additional headers to be sent with each request.
func WithHeader(header http.Header) ClientOption {
	return func(c *Client) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

// NewClient creates a new Quandl client authenticated with key.
func NewClient(key string, options ...ClientOption) (*Client, error) {
	if key == "" {
		return nil, ErrMissingAPIKey
	}
	var client = &Client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		header:     http.Header{},
	}
	// https://docs.data.nasdaq.com/docs/getting-started
	client.header.Set(apiKeyHeader, key)
	for _, option := range options {
		option(client)
	}
	return client, nil
}
