package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	dklog "github.com/nao1215/deckkit/internal/log"
)

const (
	// DefaultEndpoint is the Google Fonts Developer API family list.
	DefaultEndpoint = "https://www.googleapis.com/webfonts/v1/webfonts"

	// DefaultTimeout bounds each request.
	DefaultTimeout = 10 * time.Second

	// DefaultMaxBodySize limits catalog and font downloads.
	DefaultMaxBodySize int64 = 50 * 1024 * 1024

	userAgent = "deckkit (+https://github.com/nao1215/deckkit)"
)

var (
	// ErrNoAPIKey is returned when the client has no API key.
	ErrNoAPIKey = errors.New("google fonts api key is not set")

	// ErrUnavailable is returned when the family list could not be fetched.
	ErrUnavailable = errors.New("google fonts catalog unavailable")

	// ErrDownload is returned when a font file could not be fetched.
	ErrDownload = errors.New("font download failed")

	errBodyTooLarge = errors.New("response body too large")
)

// Client queries the Google Fonts catalog. It is safe for concurrent use.
type Client struct {
	apiKey      string
	endpoint    string
	client      *http.Client
	timeout     time.Duration
	maxBodySize int64
	logger      *slog.Logger

	once     sync.Once
	families []Family
	loadErr  error
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for every request.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.client = c
	}
}

// WithEndpoint overrides the family list URL.
func WithEndpoint(endpoint string) Option {
	return func(cl *Client) {
		cl.endpoint = endpoint
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		if d > 0 {
			cl.timeout = d
		}
	}
}

// WithMaxBodySize limits how much of a response is read.
func WithMaxBodySize(n int64) Option {
	return func(cl *Client) {
		if n > 0 {
			cl.maxBodySize = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(cl *Client) {
		cl.logger = logger
	}
}

// New creates a client for apiKey. An empty key is allowed; such a client
// finds nothing.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:      strings.TrimSpace(apiKey),
		endpoint:    DefaultEndpoint,
		client:      http.DefaultClient,
		timeout:     DefaultTimeout,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Enabled reports whether the client has an API key.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

// Families returns the family list, fetching it on first use. The outcome
// of the first fetch, success or failure, is kept for the client's
// lifetime.
func (c *Client) Families(ctx context.Context) ([]Family, error) {
	if !c.Enabled() {
		return nil, ErrNoAPIKey
	}
	c.once.Do(func() {
		c.families, c.loadErr = c.fetchFamilies(ctx)
		if c.loadErr != nil {
			c.logger.Warn("google fonts catalog unavailable", "error", c.loadErr)
		} else {
			c.logger.Debug("google fonts catalog loaded", "families", len(c.families))
		}
	})
	return c.families, c.loadErr
}

func (c *Client) fetchFamilies(ctx context.Context) ([]Family, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid endpoint: %s", ErrUnavailable, dklog.Redact(err.Error()))
	}
	q := u.Query()
	q.Set("key", c.apiKey)
	u.RawQuery = q.Encode()

	body, status, err := c.get(ctx, u.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, err.Error())
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, status)
	}

	var list webfontList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, err.Error())
	}
	return list.Items, nil
}

// Matches returns families whose lowercased name equals name or contains
// it, in catalog order. Families without files are left out. A catalog
// failure yields no matches.
func (c *Client) Matches(ctx context.Context, name string) []Family {
	families, err := c.Families(ctx)
	if err != nil {
		return nil
	}
	needle := strings.ToLower(name)
	var out []Family
	for _, f := range families {
		if len(f.Files) == 0 {
			continue
		}
		family := strings.ToLower(f.Family)
		if family == needle || strings.Contains(family, needle) {
			out = append(out, f)
		}
	}
	return out
}

// Download fetches a font file.
func (c *Client) Download(ctx context.Context, fileURL string) ([]byte, error) {
	body, status, err := c.get(ctx, fileURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDownload, err.Error())
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrDownload, status)
	}
	return body, nil
}

// get performs one GET. Error messages are redacted because transport
// errors quote the URL, key included.
func (c *Client) get(ctx context.Context, target string) ([]byte, int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, 0, errors.New(dklog.Redact(err.Error()))
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, errors.New(dklog.Redact(err.Error()))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, resp.StatusCode, nil
	}

	// One byte past the limit tells a full body from an oversized one.
	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize+1))
	if err != nil {
		return nil, resp.StatusCode, errors.New(dklog.Redact(err.Error()))
	}
	if int64(len(body)) > c.maxBodySize {
		return nil, resp.StatusCode, fmt.Errorf("%w: limit is %d bytes", errBodyTooLarge, c.maxBodySize)
	}
	return body, resp.StatusCode, nil
}

// SpecimenURL returns the family's page on fonts.google.com.
func SpecimenURL(family string) string {
	return "https://fonts.google.com/specimen/" + url.QueryEscape(family)
}
