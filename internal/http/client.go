package http

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

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"

	"github.com/fivetwenty-io/activecampaign/internal/constants"
	"github.com/fivetwenty-io/activecampaign/pkg/activecampaign"
)

// Client is the authenticated request executor shared by every resource
// client. It adds the default headers, encodes bodies, applies the optional
// rate limit and retry policy, and returns the last attempt's response
// whatever its status.
type Client struct {
	baseURL      string
	apiToken     string
	userAgent    string
	headers      map[string]string
	formDefaults url.Values
	timeout      time.Duration
	baseClient   *http.Client
	retryPolicy  activecampaign.RetryPolicy
	limiter      *rate.Limiter
	logger       activecampaign.Logger
	debug        bool
	httpClient   *retryablehttp.Client
}

// Request represents an HTTP request.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	// Envelope wraps Body as {"<Envelope>": Body} when set.
	Envelope string
	// Body is encoded as JSON.
	Body interface{}
	// Form is sent url-encoded instead of Body, merged over the client's
	// form defaults.
	Form    url.Values
	Headers map[string]string
}

// Response represents an HTTP response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	// Attempts is the number of attempts made, including the first.
	Attempts int
}

// Option configures the client.
type Option func(*Client)

// WithAPIToken sets the token sent in the Api-Token header.
func WithAPIToken(token string) Option {
	return func(c *Client) {
		c.apiToken = token
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithHeader adds a header to every request.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers[key] = value
	}
}

// WithFormDefaults sets form fields merged into every form post.
func WithFormDefaults(values url.Values) Option {
	return func(c *Client) {
		for key, vals := range values {
			c.formDefaults[key] = append([]string(nil), vals...)
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger activecampaign.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDebug enables request and response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithRetryPolicy retries failed attempts according to policy. A nil policy
// sends every request once.
func WithRetryPolicy(policy activecampaign.RetryPolicy) Option {
	return func(c *Client) {
		c.retryPolicy = policy
	}
}

// WithRateLimit caps requests per second. Retries of one call share the
// call's token.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

// WithHTTPClient sets the underlying HTTP client. Its timeout is left as is.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.baseClient = httpClient
	}
}

// WithTimeout bounds each attempt.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// NewClient creates a new HTTP client for baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	client := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		userAgent:    constants.DefaultUserAgent,
		headers:      make(map[string]string),
		formDefaults: url.Values{},
		timeout:      constants.DefaultHTTPTimeout,
		logger:       activecampaign.NoopLogger{},
	}

	for _, opt := range opts {
		opt(client)
	}

	retryClient := retryablehttp.NewClient()
	retryClient.Logger = nil

	if client.baseClient != nil {
		retryClient.HTTPClient = client.baseClient
	} else {
		retryClient.HTTPClient.Timeout = client.timeout
	}

	retryClient.RetryMax = 0
	if client.retryPolicy != nil {
		retryClient.RetryMax = client.retryPolicy.MaxRetries()
	}

	retryClient.CheckRetry = client.checkRetry
	retryClient.Backoff = client.backoff
	retryClient.RequestLogHook = client.trackAttempt
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	client.httpClient = retryClient

	return client
}

// Do sends req and returns the final response. An error is returned only
// when no response was received or the request could not be built.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	payload, contentType, err := c.encodeBody(req)
	if err != nil {
		return nil, err
	}

	fullURL := c.buildURL(req.Path, req.Query)

	if c.limiter != nil {
		err = c.limiter.Wait(ctx)
		if err != nil {
			return nil, fmt.Errorf("waiting for rate limiter: %w", err)
		}
	}

	state := &retryState{}
	ctx = context.WithValue(ctx, retryStateKey{}, state)

	var body interface{}
	if payload != nil {
		body = payload
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	c.setHeaders(httpReq.Header, req.Headers, contentType)

	if c.debug {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    fullURL,
			"body":   redactForm(payload, contentType),
		})
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if resp != nil {
			_ = resp.Body.Close()
		}

		return nil, &activecampaign.TransportError{Method: req.Method, URL: fullURL, Err: err}
	}

	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &activecampaign.TransportError{
			Method: req.Method,
			URL:    fullURL,
			Err:    fmt.Errorf("reading response body: %w", err),
		}
	}

	if c.debug {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status":   resp.StatusCode,
			"url":      fullURL,
			"attempts": state.attempt,
			"body":     string(respBody),
		})
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       respBody,
		Attempts:   state.attempt,
	}, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  query,
	})
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodPost,
		Path:   path,
		Body:   body,
	})
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodPut,
		Path:   path,
		Body:   body,
	})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodDelete,
		Path:   path,
		Query:  query,
	})
}

// PostForm performs a url-encoded POST request.
func (c *Client) PostForm(ctx context.Context, path string, form url.Values) (*Response, error) {
	if form == nil {
		form = url.Values{}
	}

	return c.Do(ctx, &Request{
		Method: http.MethodPost,
		Path:   path,
		Form:   form,
	})
}

// CheckResponse returns an *activecampaign.HTTPError for a non-2xx response.
func CheckResponse(resp *Response) error {
	if resp == nil {
		return activecampaign.ErrUnexpectedResponse
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}

	return activecampaign.NewHTTPError(resp.StatusCode, resp.Body)
}

func (c *Client) buildURL(path string, query url.Values) string {
	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	return fullURL
}

func (c *Client) encodeBody(req *Request) ([]byte, string, error) {
	if req.Form != nil {
		form := url.Values{}
		for key, vals := range c.formDefaults {
			form[key] = append([]string(nil), vals...)
		}

		for key, vals := range req.Form {
			form[key] = append([]string(nil), vals...)
		}

		return []byte(form.Encode()), constants.ContentTypeForm, nil
	}

	if req.Body == nil {
		return nil, "", nil
	}

	body := req.Body
	if req.Envelope != "" {
		body = map[string]interface{}{req.Envelope: req.Body}
	}

	var buf bytes.Buffer

	err := json.NewEncoder(&buf).Encode(body)
	if err != nil {
		return nil, "", fmt.Errorf("encoding request body: %w", err)
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), constants.ContentTypeJSON, nil
}

func (c *Client) setHeaders(header http.Header, extra map[string]string, contentType string) {
	header.Set("Accept", constants.ContentTypeJSON)
	header.Set("User-Agent", c.userAgent)

	if c.apiToken != "" {
		header.Set(constants.HeaderAPIToken, c.apiToken)
	}

	if contentType != "" {
		header.Set("Content-Type", contentType)
	}

	for key, value := range c.headers {
		header.Set(key, value)
	}

	for key, value := range extra {
		header.Set(key, value)
	}
}

// redactForm masks the tracking key of form bodies before they are logged.
func redactForm(payload []byte, contentType string) string {
	if contentType != constants.ContentTypeForm {
		return string(payload)
	}

	form, err := url.ParseQuery(string(payload))
	if err != nil {
		return constants.MaskedSecret
	}

	if form.Has("key") {
		form.Set("key", constants.MaskedSecret)
	}

	return form.Encode()
}
