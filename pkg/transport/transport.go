// Package transport performs Nativ API calls over HTTP.
//
// A Transport sends exactly one request per call with the API key and
// User-Agent headers attached, returns the decoded JSON object on 2xx and
// maps every other status to a member of the errors taxonomy. It never
// retries.
package transport

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/usenativ/nativ-go/internal/observability"
	"github.com/usenativ/nativ-go/pkg/api"
	"github.com/usenativ/nativ-go/pkg/codec"
	"github.com/usenativ/nativ-go/pkg/errors"
)

// DefaultTimeout is the per-request timeout used when Config.Timeout is zero.
const DefaultTimeout = 120 * time.Second

// Config holds the settings fixed at construction.
type Config struct {
	// BaseURL is the API root. A trailing slash is stripped.
	BaseURL string

	// APIKey is sent as the X-API-Key header.
	APIKey string

	// UserAgent defaults to api.UserAgent().
	UserAgent string

	// Timeout bounds each request, including reading the body.
	Timeout time.Duration

	// RoundTripper replaces the default HTTP transport, mainly for tests.
	RoundTripper http.RoundTripper

	// Logger receives one event per request. Defaults to a no-op logger.
	Logger *zerolog.Logger
}

// Request describes one API call.
type Request struct {
	Method string
	Path   string

	// JSON is marshaled as the request body when non-nil.
	JSON any

	// Query is appended to the URL.
	Query url.Values

	// Form fields are sent as multipart fields alongside File.
	Form map[string]string

	// File is sent as the multipart "file" field.
	File *codec.File
}

// Error is a failure that happened before any response could be
// classified: connection errors, timeouts and cancellations.
type Error struct {
	Method string
	URL    string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Timeout reports whether the request failed because it took too long.
func (e *Error) Timeout() bool {
	if stderrors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return stderrors.As(e.Err, &ne) && ne.Timeout()
}

// Transport is the blocking adapter. It is safe for concurrent use.
type Transport struct {
	baseURL string
	client  *resty.Client
	logger  zerolog.Logger
}

// New creates a Transport with its own connection pool.
func New(cfg Config) *Transport {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = api.UserAgent()
	}

	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	logger = logger.With().Str("component", "transport").Logger()

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader(api.HeaderAPIKey, cfg.APIKey).
		SetHeader(api.HeaderUserAgent, userAgent).
		SetLogger(observability.NewRestyLogger(logger))
	if cfg.RoundTripper != nil {
		client.SetTransport(cfg.RoundTripper)
	}

	return &Transport{
		baseURL: baseURL,
		client:  client,
		logger:  logger,
	}
}

// BaseURL returns the resolved API root.
func (t *Transport) BaseURL() string {
	return t.baseURL
}

// Do performs req and returns the decoded response object.
func (t *Transport) Do(ctx context.Context, req Request) (codec.Object, error) {
	r := t.client.R().SetContext(ctx)
	if req.JSON != nil {
		r.SetHeader(api.HeaderContentType, api.ContentTypeJSON).SetBody(req.JSON)
	}
	if len(req.Query) > 0 {
		r.SetQueryParamsFromValues(req.Query)
	}
	if req.File != nil {
		r.SetMultipartField(codec.FileField, req.File.Name, req.File.ContentType, bytes.NewReader(req.File.Data))
	}
	if len(req.Form) > 0 {
		r.SetMultipartFormData(req.Form)
	}

	start := time.Now()
	resp, err := r.Execute(req.Method, req.Path)
	elapsed := time.Since(start)
	if err != nil {
		t.logger.Debug().
			Str("method", req.Method).
			Str("path", req.Path).
			Dur("duration", elapsed).
			Err(err).
			Msg("request failed")
		return nil, &Error{Method: req.Method, URL: t.baseURL + req.Path, Err: err}
	}

	status := resp.StatusCode()
	t.logger.Debug().
		Str("method", req.Method).
		Str("path", req.Path).
		Int("status", status).
		Dur("duration", elapsed).
		Msg("request completed")

	if !resp.IsSuccess() {
		return nil, statusError(status, resp.Body())
	}
	return codec.Parse(resp.Body())
}

// Close releases idle pooled connections.
func (t *Transport) Close() error {
	t.client.GetClient().CloseIdleConnections()
	return nil
}

// statusError builds the taxonomy member for a non-2xx response.
// Bodies that are not JSON objects are wrapped as {"detail": text}.
func statusError(status int, raw []byte) error {
	text := strings.TrimSpace(string(raw))

	var body map[string]any
	if obj, err := codec.Parse(raw); err == nil {
		body = obj.Raw()
	} else {
		body = map[string]any{"detail": text}
	}

	detail, ok := body["detail"]
	if !ok {
		detail = text
	}

	message := fmt.Sprintf("HTTP %d", status)
	if truthy(detail) {
		message = fmt.Sprint(detail)
	}
	return errors.FromResponse(status, body, message)
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case int64:
		return t != 0
	case float64:
		return t != 0
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}
