package nativ

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"

	"github.com/usenativ/nativ-go/pkg/api"
	"github.com/usenativ/nativ-go/pkg/errors"
	"github.com/usenativ/nativ-go/pkg/transport"
)

// Options configures a client. Zero values fall back to the environment
// and then to built-in defaults.
type Options struct {
	// APIKey overrides NATIV_API_KEY.
	APIKey string

	// BaseURL overrides NATIV_API_URL and the default https://api.usenativ.com.
	BaseURL string

	// Timeout bounds each request. Defaults to 120 seconds.
	Timeout time.Duration

	// HTTPTransport replaces the default round tripper.
	HTTPTransport http.RoundTripper

	// Logger receives per-request debug events.
	Logger *zerolog.Logger
}

// environment is read once per client construction.
type environment struct {
	APIKey string `envconfig:"NATIV_API_KEY"`
	APIURL string `envconfig:"NATIV_API_URL"`
}

// resolve turns opts into a transport configuration. A missing API key is
// an AuthenticationError, reported before any request is attempted.
func resolve(opts Options) (transport.Config, error) {
	var env environment
	if err := envconfig.Process("", &env); err != nil {
		return transport.Config{}, fmt.Errorf("failed to read environment: %w", err)
	}

	key := strings.TrimSpace(opts.APIKey)
	if key == "" {
		key = strings.TrimSpace(env.APIKey)
	}
	if key == "" {
		return transport.Config{}, errors.NewAuthentication(
			"no API key provided: pass Options.APIKey or set the " + api.EnvAPIKey +
				" environment variable; create one at https://dashboard.usenativ.com -> Settings -> API Keys")
	}

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = env.APIURL
	}
	if baseURL == "" {
		baseURL = api.DefaultBaseURL
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = transport.DefaultTimeout
	}

	return transport.Config{
		BaseURL:      strings.TrimRight(baseURL, "/"),
		APIKey:       key,
		UserAgent:    api.UserAgent(),
		Timeout:      timeout,
		RoundTripper: opts.HTTPTransport,
		Logger:       opts.Logger,
	}, nil
}
