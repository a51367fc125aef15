package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	kerrors "github.com/PolarWolf314/kowhai/internal/errors"
)

// DefaultBaseURL is the authorization server used outside of tests.
const DefaultBaseURL = "https://github.com"

const grantTypeDeviceCode = "urn:ietf:params:oauth:grant-type:device_code"

// slowDownIncrement is how much a slow_down response adds to the wait
// between polls. The increase is cumulative and never reverts within an
// attempt.
const slowDownIncrement = 5 * time.Second

// State tracks where a device-flow attempt is in its lifecycle.
type State int

const (
	StateNotStarted State = iota
	StateCodeRequested
	StatePolling
	StateSucceeded
	StateExpired
	StateDenied
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not started"
	case StateCodeRequested:
		return "code requested"
	case StatePolling:
		return "polling"
	case StateSucceeded:
		return "succeeded"
	case StateExpired:
		return "expired"
	case StateDenied:
		return "denied"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// DeviceAuthorization holds the response to a device code request: the
// code to show the user and the parameters that drive polling. It is
// immutable once issued and owned by a single polling attempt.
type DeviceAuthorization struct {
	DeviceCode      string `json:"device_code"`
	UserCode        string `json:"user_code"`
	VerificationURI string `json:"verification_uri"`
	ExpiresIn       int    `json:"expires_in"` // seconds until the device code expires
	Interval        int    `json:"interval"`   // minimum polling interval in seconds
}

// Token is an access token granted at the end of the device flow.
type Token struct {
	Value string
	Scope []string
}

// ProviderError reports a terminal error code from the authorization
// server that is not part of the device-flow protocol. The raw code is
// preserved so it can be shown to the user.
type ProviderError struct {
	Code string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("authorization server returned error code %q", e.Code)
}

// SleepFunc waits for d or until ctx is cancelled, returning ctx.Err()
// in the latter case. Tests inject a recording implementation to observe
// backoff without real waits.
type SleepFunc func(ctx context.Context, d time.Duration) error

// ContextSleep is the SleepFunc used outside of tests.
func ContextSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// DeviceFlow implements the OAuth 2.0 Device Authorization Flow against
// GitHub. See https://docs.github.com/en/apps/oauth-apps/building-oauth-apps/authorizing-oauth-apps#device-flow
//
// A DeviceFlow drives a single authentication attempt and is not safe
// for concurrent use; create one per attempt.
type DeviceFlow struct {
	clientID string
	scopes   []string
	baseURL  string
	client   *http.Client
	sleep    SleepFunc
	state    State
}

// Option configures a DeviceFlow.
type Option func(*DeviceFlow)

// WithBaseURL points the flow at a different authorization server.
// Pass a test server URL in tests.
func WithBaseURL(baseURL string) Option {
	return func(f *DeviceFlow) {
		if baseURL != "" {
			f.baseURL = baseURL
		}
	}
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(f *DeviceFlow) {
		if client != nil {
			f.client = client
		}
	}
}

// WithScopes sets the OAuth scopes requested from the user.
func WithScopes(scopes ...string) Option {
	return func(f *DeviceFlow) {
		if len(scopes) > 0 {
			f.scopes = scopes
		}
	}
}

// WithSleep replaces the wait between polls. Tests use this to run the
// polling loop without real wall-clock delays.
func WithSleep(sleep SleepFunc) Option {
	return func(f *DeviceFlow) {
		if sleep != nil {
			f.sleep = sleep
		}
	}
}

// NewDeviceFlow creates a DeviceFlow for one authentication attempt.
func NewDeviceFlow(clientID string, opts ...Option) *DeviceFlow {
	f := &DeviceFlow{
		clientID: clientID,
		scopes:   []string{"repo"},
		baseURL:  DefaultBaseURL,
		client:   &http.Client{Timeout: 15 * time.Second},
		sleep:    ContextSleep,
		state:    StateNotStarted,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// State reports where the attempt currently is.
func (f *DeviceFlow) State() State {
	return f.state
}

type deviceCodeRequest struct {
	ClientID string `json:"client_id"`
	Scope    string `json:"scope,omitempty"`
}

type tokenRequest struct {
	ClientID   string `json:"client_id"`
	DeviceCode string `json:"device_code"`
	GrantType  string `json:"grant_type"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Scope       string `json:"scope"`
	Error       string `json:"error"`
}

// RequestCode asks GitHub for a device/user code pair. The returned
// UserCode must be shown to the user along with VerificationURI. On
// failure the attempt is left unstarted, so the caller may retry by
// calling RequestCode again.
func (f *DeviceFlow) RequestCode(ctx context.Context) (*DeviceAuthorization, error) {
	endpoint, err := url.JoinPath(f.baseURL, "/login/device/code")
	if err != nil {
		return nil, fmt.Errorf("building URL: %w", err)
	}

	body := deviceCodeRequest{
		ClientID: f.clientID,
		Scope:    strings.Join(f.scopes, " "),
	}

	var raw struct {
		DeviceAuthorization
		Error string `json:"error"`
	}
	if err := f.postJSON(ctx, endpoint, body, &raw); err != nil {
		return nil, err
	}

	if raw.Error != "" {
		return nil, &ProviderError{Code: truncateCode(raw.Error)}
	}
	if raw.DeviceCode == "" {
		return nil, fmt.Errorf("%w: device code response is missing device_code", kerrors.ErrTransport)
	}

	f.state = StateCodeRequested
	authorization := raw.DeviceAuthorization
	return &authorization, nil
}

// PollToken polls the token endpoint until GitHub grants an access token
// or the attempt reaches a terminal outcome. The first poll is issued
// immediately; after each pending response the flow waits the current
// interval, and every slow_down instruction adds five seconds to all
// later waits. interval is in seconds, as issued by RequestCode.
//
// Expired codes return ErrDeviceCodeExpired, user denial returns
// ErrAuthorizationDenied, and unrecognized codes return *ProviderError.
// A transport failure ends the attempt immediately and is not retried
// here. Cancelling ctx abandons the attempt at the next wait boundary.
func (f *DeviceFlow) PollToken(ctx context.Context, deviceCode string, interval int) (*Token, error) {
	endpoint, err := url.JoinPath(f.baseURL, "/login/oauth/access_token")
	if err != nil {
		return nil, fmt.Errorf("building URL: %w", err)
	}

	if interval <= 0 {
		interval = 5 // provider default when unspecified
	}

	f.state = StatePolling
	wait := time.Duration(interval) * time.Second

	for {
		var raw tokenResponse
		err := f.postJSON(ctx, endpoint, tokenRequest{
			ClientID:   f.clientID,
			DeviceCode: deviceCode,
			GrantType:  grantTypeDeviceCode,
		}, &raw)
		if err != nil {
			f.state = StateFailed
			return nil, err
		}

		switch classify(raw) {
		case outcomeToken:
			f.state = StateSucceeded
			return &Token{Value: raw.AccessToken, Scope: splitScope(raw.Scope)}, nil
		case outcomeExpired:
			f.state = StateExpired
			return nil, kerrors.ErrDeviceCodeExpired
		case outcomeDenied:
			f.state = StateDenied
			return nil, kerrors.ErrAuthorizationDenied
		case outcomeProvider:
			f.state = StateFailed
			return nil, &ProviderError{Code: truncateCode(raw.Error)}
		case outcomeSlowDown:
			wait += slowDownIncrement
		case outcomePending:
			// Keep polling.
		}

		if err := f.sleep(ctx, wait); err != nil {
			f.state = StateFailed
			return nil, err
		}
	}
}

// Authenticate runs the whole flow: request a code, hand it to notify so
// the caller can show it to the user, then poll with the server-provided
// interval until a terminal outcome. Errors from either phase propagate
// unchanged.
func (f *DeviceFlow) Authenticate(ctx context.Context, notify func(*DeviceAuthorization)) (*Token, error) {
	authorization, err := f.RequestCode(ctx)
	if err != nil {
		return nil, err
	}

	if notify != nil {
		notify(authorization)
	}

	return f.PollToken(ctx, authorization.DeviceCode, authorization.Interval)
}

// pollOutcome is the closed set of things one token-endpoint response
// can mean. Responses are classified exactly once, in classify; the
// polling loop acts only on the outcome.
type pollOutcome int

const (
	outcomePending pollOutcome = iota
	outcomeSlowDown
	outcomeToken
	outcomeExpired
	outcomeDenied
	outcomeProvider
)

func classify(resp tokenResponse) pollOutcome {
	switch resp.Error {
	case "":
		if resp.AccessToken != "" {
			return outcomeToken
		}
		// Neither a token nor an error. Deliberately treated as pending
		// so a transient provider quirk cannot abort a flow the user may
		// already have approved.
		return outcomePending
	case "authorization_pending":
		return outcomePending
	case "slow_down":
		return outcomeSlowDown
	case "expired_token":
		return outcomeExpired
	case "access_denied":
		return outcomeDenied
	default:
		return outcomeProvider
	}
}

// splitScope parses the comma-separated scope list GitHub returns with
// a granted token.
func splitScope(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// truncateCode keeps unrecognized provider codes to a sane display length.
func truncateCode(code string) string {
	if len(code) > 100 {
		return code[:100]
	}
	return code
}

func (f *DeviceFlow) postJSON(ctx context.Context, endpoint string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", kerrors.ErrTransport, err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", kerrors.ErrTransport, err)
	}

	return nil
}
