package githubapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"

	kerrors "github.com/PolarWolf314/kowhai/internal/errors"
)

// Client wraps the GitHub REST API operations Kōwhai needs. All methods
// surface failures as ErrAPIRequestFailed so callers can dispatch on one
// sentinel; none of them ever place token or secret values in errors.
type Client struct {
	gh *github.Client
}

type clientOptions struct {
	baseURL string
}

// Option configures a Client.
type Option func(*clientOptions)

// WithBaseURL points the client at a different API server. Pass a test
// server URL in tests.
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		o.baseURL = baseURL
	}
}

// NewClient creates a GitHub API client authenticated with token.
func NewClient(ctx context.Context, token string, opts ...Option) (*Client, error) {
	o := &clientOptions{}
	for _, opt := range opts {
		opt(o)
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(ctx, ts)
	gh := github.NewClient(tc)

	if o.baseURL != "" {
		base := o.baseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		parsed, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("invalid base URL: %w", err)
		}
		gh.BaseURL = parsed
	}

	return &Client{gh: gh}, nil
}

// IdentityProbe returns a lookup function that validates a token by
// resolving the login it belongs to. The result plugs straight into
// auth.AcquireOptions.Identity.
func IdentityProbe(opts ...Option) func(ctx context.Context, token string) (string, error) {
	return func(ctx context.Context, token string) (string, error) {
		client, err := NewClient(ctx, token, opts...)
		if err != nil {
			return "", err
		}
		return client.Identity(ctx)
	}
}

// apiError classifies a go-github failure. A 401 means the token itself
// was rejected, which callers treat differently from any other API
// failure.
func apiError(resp *github.Response, err error) error {
	if resp != nil && resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: %v", kerrors.ErrBadCredentials, err)
	}
	return fmt.Errorf("%w: %v", kerrors.ErrAPIRequestFailed, err)
}
