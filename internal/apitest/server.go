// Package apitest runs an in-process fake of the Nativ API for tests. It
// records every request and answers with canned responses registered per
// method and path.
package apitest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/labstack/echo/v4"
)

// APIKey is a key accepted by the fake server.
const APIKey = "nativ_test_key"

// Request is a recorded API call.
type Request struct {
	Method string
	Path   string
	Header http.Header
	Query  url.Values

	// JSON is the decoded body of application/json requests.
	JSON map[string]any

	// Form and the File fields are set for multipart requests.
	Form            map[string]string
	FileName        string
	FileContentType string
	FileData        []byte
}

// HandlerFunc computes a response for a recorded request. A string body is
// written verbatim as text/plain; anything else is encoded as JSON.
type HandlerFunc func(Request) (status int, body any)

// Server is a fake Nativ API.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	routes   map[string]HandlerFunc
	requests []Request
}

// NewServer starts a fake API that is closed when the test ends.
func NewServer(t testing.TB) *Server {
	t.Helper()

	s := &Server{routes: map[string]HandlerFunc{}}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Any("/*", s.dispatch)

	s.Server = httptest.NewServer(e)
	t.Cleanup(s.Close)
	return s
}

// Handle registers a fixed response for method and path.
func (s *Server) Handle(method, path string, status int, body any) {
	s.HandleFunc(method, path, func(Request) (int, any) { return status, body })
}

// HandleFunc registers fn for method and path.
func (s *Server) HandleFunc(method, path string, fn HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[method+" "+path] = fn
}

// Requests returns the recorded requests in arrival order.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Last returns the most recent request. It fails the test if none was made.
func (s *Server) Last(t testing.TB) Request {
	t.Helper()
	reqs := s.Requests()
	if len(reqs) == 0 {
		t.Fatal("expected at least one request, got none")
	}
	return reqs[len(reqs)-1]
}

func (s *Server) dispatch(c echo.Context) error {
	rec, err := record(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"detail": err.Error()})
	}

	s.mu.Lock()
	s.requests = append(s.requests, rec)
	fn, ok := s.routes[rec.Method+" "+rec.Path]
	s.mu.Unlock()

	if !ok {
		return c.JSON(http.StatusNotFound, map[string]any{"detail": "Not Found"})
	}

	status, body := fn(rec)
	if raw, ok := body.(string); ok {
		return c.Blob(status, echo.MIMETextPlainCharsetUTF8, []byte(raw))
	}
	return c.JSON(status, body)
}

func record(c echo.Context) (Request, error) {
	r := c.Request()
	rec := Request{
		Method: r.Method,
		Path:   r.URL.Path,
		Header: r.Header.Clone(),
		Query:  r.URL.Query(),
	}

	contentType := r.Header.Get(echo.HeaderContentType)
	switch {
	case strings.HasPrefix(contentType, echo.MIMEApplicationJSON):
		data, err := io.ReadAll(r.Body)
		if err != nil {
			return rec, err
		}
		if len(data) > 0 {
			if err := json.Unmarshal(data, &rec.JSON); err != nil {
				return rec, err
			}
		}

	case strings.HasPrefix(contentType, echo.MIMEMultipartForm):
		form, err := c.MultipartForm()
		if err != nil {
			return rec, err
		}
		rec.Form = map[string]string{}
		for k, v := range form.Value {
			if len(v) > 0 {
				rec.Form[k] = v[0]
			}
		}
		if files := form.File["file"]; len(files) > 0 {
			fh := files[0]
			rec.FileName = fh.Filename
			rec.FileContentType = fh.Header.Get(echo.HeaderContentType)
			f, err := fh.Open()
			if err != nil {
				return rec, err
			}
			defer f.Close()
			if rec.FileData, err = io.ReadAll(f); err != nil {
				return rec, err
			}
		}
	}
	return rec, nil
}

// CountingTransport is an http.RoundTripper that counts the requests it
// forwards. A nil Next uses http.DefaultTransport.
type CountingTransport struct {
	Next  http.RoundTripper
	calls atomic.Int64
}

// RoundTrip implements http.RoundTripper.
func (t *CountingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.calls.Add(1)
	next := t.Next
	if next == nil {
		next = http.DefaultTransport
	}
	return next.RoundTrip(req)
}

// Calls returns the number of requests seen.
func (t *CountingTransport) Calls() int {
	return int(t.calls.Load())
}
