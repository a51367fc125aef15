package auth

import (
	"context"
	"fmt"
	"net/http"

	kerrors "github.com/PolarWolf314/kowhai/internal/errors"
)

// IdentityFunc looks up the login a token belongs to, proving the token
// works. The githubapi package supplies the real one; tests supply fakes.
type IdentityFunc func(ctx context.Context, token string) (string, error)

// AcquireOptions configures credential acquisition.
type AcquireOptions struct {
	// Token is a pre-obtained access token. When set, the device flow is
	// skipped and the token is validated with a single identity lookup.
	Token string

	// ClientID identifies the OAuth app for the device flow.
	ClientID string

	// Scopes are the OAuth scopes requested during the device flow.
	Scopes []string

	// BaseURL overrides the authorization server, for tests.
	BaseURL string

	// HTTPClient overrides the device flow's HTTP client.
	HTTPClient *http.Client

	// Identity validates a token and resolves the login behind it.
	Identity IdentityFunc

	// Notify receives the device authorization so the caller can show
	// the user code and verification URL before polling starts.
	Notify func(*DeviceAuthorization)

	// Sleep overrides the wait between polls, for tests.
	Sleep SleepFunc
}

// Session is an authenticated GitHub session. The token lives only in
// memory; nothing here is ever written to disk.
type Session struct {
	Token string
	Login string
}

// Acquire produces an authenticated session, either by validating a
// pre-supplied token or by running the device flow. Every failure is
// wrapped in ErrAuthenticationFailed with the cause still matchable via
// errors.Is and errors.As; no retries happen at this level.
func Acquire(ctx context.Context, opts AcquireOptions) (*Session, error) {
	if opts.Identity == nil {
		return nil, fmt.Errorf("%w: no identity lookup configured", kerrors.ErrAuthenticationFailed)
	}

	if opts.Token != "" {
		login, err := opts.Identity(ctx, opts.Token)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", kerrors.ErrAuthenticationFailed, err)
		}
		return &Session{Token: opts.Token, Login: login}, nil
	}

	flowOpts := []Option{
		WithBaseURL(opts.BaseURL),
		WithHTTPClient(opts.HTTPClient),
		WithSleep(opts.Sleep),
	}
	if len(opts.Scopes) > 0 {
		flowOpts = append(flowOpts, WithScopes(opts.Scopes...))
	}

	flow := NewDeviceFlow(opts.ClientID, flowOpts...)
	token, err := flow.Authenticate(ctx, opts.Notify)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", kerrors.ErrAuthenticationFailed, err)
	}

	login, err := opts.Identity(ctx, token.Value)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", kerrors.ErrAuthenticationFailed, err)
	}

	return &Session{Token: token.Value, Login: login}, nil
}
