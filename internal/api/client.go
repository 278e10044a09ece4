// Package api implements the client for the Uplyft chat backend.
package api

import (
	"context"
	"fmt"
	"sync"
	"time"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"

	"github.com/diogo/uplyft/internal/models"
)

// ChatClient sends one message and returns the backend's reply
type ChatClient interface {
	SendMessage(ctx context.Context, text string) (string, error)
}

// HTTPDoer is the subset of tls_client.HttpClient the client needs
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the backend chat endpoint
type Client struct {
	httpClient HTTPDoer
	endpoint   string
	timeout    time.Duration
	profile    string
	mu         sync.RWMutex
	closed     bool
}

// Ensure Client implements ChatClient
var _ ChatClient = (*Client)(nil)

// ClientOption is a function that configures the client
type ClientOption func(*Client)

// WithEndpoint sets the chat endpoint URL
func WithEndpoint(endpoint string) ClientOption {
	return func(c *Client) {
		if endpoint != "" {
			c.endpoint = endpoint
		}
	}
}

// WithTimeout bounds each request. Zero keeps the transport default.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithClientProfile selects the tls-client browser profile by name
func WithClientProfile(name string) ClientOption {
	return func(c *Client) {
		c.profile = name
	}
}

// WithHTTPClient injects the transport (used by tests)
func WithHTTPClient(doer HTTPDoer) ClientOption {
	return func(c *Client) {
		c.httpClient = doer
	}
}

// NewClient creates a new Client
func NewClient(opts ...ClientOption) (*Client, error) {
	client := &Client{
		endpoint: models.DefaultEndpoint,
		profile:  "chrome_120",
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		options := []tls_client.HttpClientOption{
			tls_client.WithClientProfile(resolveProfile(client.profile)),
			tls_client.WithNotFollowRedirects(),
		}
		if client.timeout > 0 {
			options = append(options, tls_client.WithTimeoutSeconds(int(client.timeout.Seconds())))
		}

		httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		client.httpClient = httpClient
	}

	return client, nil
}

// resolveProfile maps a profile name to a tls-client profile, defaulting to Chrome 120
func resolveProfile(name string) profiles.ClientProfile {
	if p, ok := profiles.MappedTLSClients[name]; ok {
		return p
	}
	return profiles.Chrome_120
}

// Endpoint returns the configured chat endpoint
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Timeout returns the per-request timeout (zero means transport default)
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Close releases idle connections. Further sends fail.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true

	if closer, ok := c.httpClient.(interface{ CloseIdleConnections() }); ok {
		closer.CloseIdleConnections()
	}
}

// IsClosed returns whether the client is closed
func (c *Client) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// requestContext applies the client timeout to ctx when one is configured
func (c *Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if c.timeout > 0 {
		return context.WithTimeout(ctx, c.timeout)
	}
	return context.WithCancel(ctx)
}
