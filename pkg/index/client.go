package index

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pthscan/pkg/cache"
	"github.com/matzehuels/pthscan/pkg/errors"
	"github.com/matzehuels/pthscan/pkg/httputil"
	"github.com/matzehuels/pthscan/pkg/observability"
)

const (
	// DefaultBaseURL is the public Python Package Index.
	DefaultBaseURL = "https://pypi.org"

	// DefaultRootPath is the path of the simple index catalog.
	DefaultRootPath = "/simple"

	defaultTimeout    = 5 * time.Minute
	defaultRetryDelay = time.Second
)

var (
	// ErrNotFound is returned when the index answers 404.
	ErrNotFound = stderrors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, bad statuses).
	ErrNetwork = stderrors.New("network error")
)

// Options configures a [Client]. Zero values select defaults.
type Options struct {
	BaseURL    string            // index origin without trailing slash (default DefaultBaseURL)
	RootPath   string            // catalog path (default DefaultRootPath)
	Timeout    time.Duration     // per-request timeout (default 5m)
	Retries    int               // attempts per fetch, 1 disables retrying
	RetryDelay time.Duration     // first backoff delay (default 1s)
	Cache      cache.Cache       // listing cache (default no caching)
	CacheTTL   time.Duration     // lifetime of cached listings, 0 = no expiry
	Headers    map[string]string // headers applied to every request
	Logger     *log.Logger       // debug logging (default log.Default())
	HTTPClient *http.Client      // overrides Timeout when set
}

// Client fetches listings and artifacts from one index.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	http       *http.Client
	baseURL    string
	rootPath   string
	cache      cache.Cache
	cacheTTL   time.Duration
	retries    int
	retryDelay time.Duration
	headers    map[string]string
	logger     *log.Logger
}

// NewClient creates a Client from opts.
func NewClient(opts Options) *Client {
	c := &Client{
		http:       opts.HTTPClient,
		baseURL:    opts.BaseURL,
		rootPath:   opts.RootPath,
		cache:      opts.Cache,
		cacheTTL:   opts.CacheTTL,
		retries:    max(opts.Retries, 1),
		retryDelay: opts.RetryDelay,
		headers:    opts.Headers,
		logger:     opts.Logger,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.rootPath == "" {
		c.rootPath = DefaultRootPath
	}
	if c.http == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		c.http = &http.Client{Timeout: timeout}
	}
	if c.cache == nil {
		c.cache = cache.NewNullCache()
	}
	if c.retryDelay <= 0 {
		c.retryDelay = defaultRetryDelay
	}
	if c.logger == nil {
		c.logger = log.Default()
	}
	return c
}

// RootURL returns the URL of the catalog listing.
func (c *Client) RootURL() string {
	return c.baseURL + c.rootPath
}

// ListingURL returns the URL of the release listing for a package link.
// The link is appended to the base URL verbatim.
func (c *Client) ListingURL(link string) string {
	return c.baseURL + link
}

// FetchRoot returns the catalog listing page.
func (c *Client) FetchRoot(ctx context.Context) ([]byte, error) {
	return c.cached(ctx, c.RootURL())
}

// FetchListing returns the release listing page of the package at link.
func (c *Client) FetchListing(ctx context.Context, link string) ([]byte, error) {
	return c.cached(ctx, c.ListingURL(link))
}

// Fetch downloads rawURL into memory, bypassing the cache.
func (c *Client) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	var body []byte
	err := httputil.Retry(ctx, c.retries, c.retryDelay, func() error {
		b, err := c.get(ctx, rawURL)
		if err != nil {
			return err
		}
		body = b
		return nil
	})
	if err != nil {
		return nil, classify(err, rawURL)
	}
	return body, nil
}

func (c *Client) cached(ctx context.Context, rawURL string) ([]byte, error) {
	if data, ok, err := c.cache.Get(ctx, rawURL); err != nil {
		c.logger.Debug("listing cache read failed", "url", rawURL, "err", err)
	} else if ok {
		observability.Cache().OnCacheHit(ctx, rawURL)
		return data, nil
	}
	observability.Cache().OnCacheMiss(ctx, rawURL)

	data, err := c.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if err := c.cache.Set(ctx, rawURL, data, c.cacheTTL); err != nil {
		c.logger.Debug("listing cache write failed", "url", rawURL, "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, rawURL, len(data))
	}
	return data, nil
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	host, path := hostPath(req.URL)
	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
		}
		return nil, &httputil.RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode); err != nil {
		hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, 0, time.Since(start))
		return nil, err
	}

	var buf bytes.Buffer
	if resp.ContentLength > 0 {
		buf.Grow(int(resp.ContentLength))
	}
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		return nil, &httputil.RetryableError{Err: fmt.Errorf("%w: read body: %v", ErrNetwork, err)}
	}
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, int64(buf.Len()), time.Since(start))
	return buf.Bytes(), nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code >= 500:
		return &httputil.RetryableError{Err: fmt.Errorf("%w: status %d", ErrNetwork, code)}
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}

func classify(err error, rawURL string) error {
	if stderrors.Is(err, ErrNotFound) {
		return errors.Wrap(errors.ErrCodeNotFound, err, "fetch %s", rawURL)
	}
	return errors.Wrap(errors.ErrCodeTransport, err, "fetch %s", rawURL)
}

func hostPath(u *url.URL) (string, string) {
	if u == nil {
		return "", ""
	}
	return u.Host, u.Path
}
