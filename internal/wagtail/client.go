package wagtail

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/arclebanon/arccms/internal/model"
)

const (
	// apiPrefix is the path of the Wagtail v2 API below the CMS origin.
	apiPrefix = "/api/v2"

	// defaultTimeout bounds a single request when no timeout is configured.
	defaultTimeout = 15 * time.Second

	// defaultPageType is the content type of the site's home page.
	defaultPageType = "cms_app.HomePage"

	// defaultMaxBodySize caps how much of a response body is read.
	defaultMaxBodySize = 10 * 1024 * 1024

	// defaultUserAgent is sent when no User-Agent is configured.
	defaultUserAgent = "arccms/1.0"
)

// Client reads content from a Wagtail v2 API.
// A Client is safe for concurrent use and holds no per-request state,
// so two identical calls against an unchanged CMS return equal values.
type Client struct {
	// baseURL is the CMS origin, e.g. "https://api.arc.pingtech.dev".
	baseURL string

	// apiBase is baseURL + "/api/v2".
	apiBase string

	// pageType is the content type HomePage lists.
	pageType string

	// httpClient performs the requests.
	httpClient *http.Client

	// timeout overrides httpClient.Timeout when positive.
	timeout time.Duration

	// headers are injected into every request by the transport.
	headers map[string]string

	userAgent   string
	maxBodySize int64

	// healthTimeout and apiCheckTimeout bound the two health probes.
	healthTimeout   time.Duration
	apiCheckTimeout time.Duration

	logger *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client. The client is copied,
// never modified; WithTimeout overrides its Timeout when both are given.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithPageType sets the content type of the home page.
func WithPageType(pageType string) Option {
	return func(c *Client) {
		if pageType != "" {
			c.pageType = pageType
		}
	}
}

// WithHeaders sets extra headers sent with every request,
// e.g. an Authorization header for draft previews.
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) {
		c.headers = headers
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithMaxBodySize caps the number of response bytes read.
func WithMaxBodySize(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxBodySize = n
		}
	}
}

// WithHealthTimeouts sets the timeouts of the health endpoint probe and of
// the pages endpoint probe.
func WithHealthTimeouts(health, apiCheck time.Duration) Option {
	return func(c *Client) {
		if health > 0 {
			c.healthTimeout = health
		}
		if apiCheck > 0 {
			c.apiCheckTimeout = apiCheck
		}
	}
}

// WithLogger sets the logger for the client.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a client for the CMS at baseURL, the origin without the
// /api/v2 suffix. A trailing slash or a trailing /api/v2 is tolerated.
//
// Design decision: We don't contact the CMS in the constructor. Creating a
// client never fails because the backend is still starting; use CheckHealth
// or WaitForReady for that.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base := strings.TrimSuffix(strings.TrimRight(strings.TrimSpace(baseURL), "/"), apiPrefix)
	u, err := url.Parse(base)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}

	c := &Client{
		baseURL:         base,
		apiBase:         base + apiPrefix,
		pageType:        defaultPageType,
		httpClient:      &http.Client{},
		timeout:         defaultTimeout,
		userAgent:       defaultUserAgent,
		maxBodySize:     defaultMaxBodySize,
		healthTimeout:   5 * time.Second,
		apiCheckTimeout: 10 * time.Second,
		logger:          slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	hc := *c.httpClient
	if c.timeout > 0 {
		hc.Timeout = c.timeout
	}
	if len(c.headers) > 0 {
		transport := hc.Transport
		if transport == nil {
			transport = http.DefaultTransport
		}
		hc.Transport = &headerInjectingTransport{base: transport, headers: c.headers}
	}
	c.httpClient = &hc

	c.logger.Debug("cms client configured",
		"api", c.apiBase,
		"timeout", c.timeout,
		"headers", c.headers,
	)
	return c, nil
}

// BaseURL returns the CMS origin. Relative media paths resolve against it.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// APIBase returns the API root, e.g. "https://api.arc.pingtech.dev/api/v2".
func (c *Client) APIBase() string {
	return c.apiBase
}

// PageType returns the content type HomePage lists.
func (c *Client) PageType() string {
	return c.pageType
}

// HTTPClient returns the HTTP client used for requests, including any
// header injection. Media probes reuse it.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// ListPages calls the page listing endpoint with the given query parameters.
func (c *Client) ListPages(ctx context.Context, params url.Values) (*model.PageList, error) {
	var list model.PageList
	if err := c.getJSON(ctx, "/pages/", params, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// PageByID fetches the detail document of a page.
func (c *Client) PageByID(ctx context.Context, id int) (*model.Page, error) {
	var page model.Page
	if err := c.getJSON(ctx, "/pages/"+strconv.Itoa(id)+"/", nil, &page); err != nil {
		return nil, err
	}
	if page.ID == 0 {
		return nil, fmt.Errorf("%w: page %d detail has no id", ErrMalformed, id)
	}
	return &page, nil
}

// PageBySlug returns the first listed page with the given slug.
// Like every listing item it carries metadata but no body.
func (c *Client) PageBySlug(ctx context.Context, slug string) (*model.Page, error) {
	list, err := c.ListPages(ctx, url.Values{"slug": {slug}})
	if err != nil {
		return nil, err
	}
	if len(list.Items) == 0 {
		return nil, fmt.Errorf("%w: slug %q", ErrPageNotFound, slug)
	}
	page := list.Items[0]
	return &page, nil
}

// PagesByType returns the listed pages of a content type.
// An empty result is not an error.
func (c *Client) PagesByType(ctx context.Context, pageType string) ([]model.Page, error) {
	list, err := c.ListPages(ctx, url.Values{"type": {pageType}})
	if err != nil {
		return nil, err
	}
	return list.Items, nil
}

// HomePage resolves the site's home page: it lists pages of the configured
// type, takes the first item in list order and fetches its detail document.
// It issues exactly two requests on success and one when the listing fails
// or is empty.
func (c *Client) HomePage(ctx context.Context) (*model.Page, error) {
	list, err := c.ListPages(ctx, url.Values{"type": {c.pageType}})
	if err != nil {
		return nil, err
	}
	if len(list.Items) == 0 {
		return nil, fmt.Errorf("%w: no page of type %s", ErrPageNotFound, c.pageType)
	}
	if len(list.Items) > 1 {
		c.logger.Debug("multiple home pages listed, using the first",
			"type", c.pageType, "count", len(list.Items))
	}

	id := list.Items[0].ID
	if id == 0 {
		return nil, fmt.Errorf("%w: listed %s has no id", ErrMalformed, c.pageType)
	}
	return c.PageByID(ctx, id)
}

// Settings fetches the site-wide settings document.
func (c *Client) Settings(ctx context.Context) (*model.Settings, error) {
	var settings model.Settings
	if err := c.getJSON(ctx, "/settings/", nil, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Document fetches the metadata of a downloadable document.
func (c *Client) Document(ctx context.Context, id int) (*model.DocumentRef, error) {
	var raw map[string]any
	if err := c.getJSON(ctx, "/documents/"+strconv.Itoa(id)+"/", nil, &raw); err != nil {
		return nil, err
	}
	doc := model.NewDocumentRef(raw)
	if doc.ID == 0 {
		return nil, fmt.Errorf("%w: document %d has no id", ErrMalformed, id)
	}
	if doc.FileExtension == "" {
		doc.FileExtension = "pdf"
	}
	return &doc, nil
}

// Image is an entry of the image listing.
type Image struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Meta  struct {
		Type        string `json:"type"`
		DetailURL   string `json:"detail_url"`
		DownloadURL string `json:"download_url"`
	} `json:"meta"`
}

// ImageList is the response of the image listing endpoint.
type ImageList struct {
	Meta  model.ListMeta `json:"meta"`
	Items []Image        `json:"items"`
}

// Images fetches the image listing.
func (c *Client) Images(ctx context.Context) (*ImageList, error) {
	var list ImageList
	if err := c.getJSON(ctx, "/images/", nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// getJSON performs a GET on apiBase+path and decodes the JSON body into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.apiBase + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	body, err := c.get(ctx, endpoint, nil)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		c.logger.Warn("cms response is not valid JSON", "url", endpoint, "error", err)
		return fmt.Errorf("%w: %s: %w", ErrMalformed, endpoint, err)
	}
	return nil
}

// get performs a GET request and returns the body of a 2xx response.
func (c *Client) get(ctx context.Context, endpoint string, header http.Header) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("cms request failed", "url", endpoint, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("cms response",
		"url", endpoint,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096)) //nolint:errcheck // best effort
		return nil, &StatusError{Code: resp.StatusCode, URL: endpoint}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrTransport, endpoint, err)
	}
	if int64(len(body)) > c.maxBodySize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrMalformed, endpoint, c.maxBodySize)
	}
	return body, nil
}
