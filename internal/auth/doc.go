// Package auth implements GitHub authentication for Kōwhai: the OAuth
// 2.0 Device Authorization Flow and the session orchestration around it.
//
// # Device Flow
//
// DeviceFlow drives one authentication attempt as an explicit state
// machine:
//
//	NotStarted → CodeRequested → Polling → {Succeeded | Expired | Denied | Failed}
//
// RequestCode asks GitHub for a device/user code pair. The user enters
// the code in a browser while PollToken polls the token endpoint. Each
// response is classified exactly once into a closed set of outcomes:
// pending and slow_down keep the loop alive (slow_down permanently adds
// five seconds to the wait), while expired_token, access_denied, an
// unrecognized error code, or a transport failure end the attempt. A
// response carrying neither a token nor an error keeps the loop alive
// on purpose; see classify.
//
// The wait between polls is injectable (WithSleep), so tests can walk
// the loop through pending and slow_down responses and assert the exact
// backoff sequence without real delays. Cancellation is honored at every
// wait boundary.
//
// # Sessions
//
// Acquire turns either a pre-supplied token or a fresh device flow into
// a Session. A static token is validated with one identity lookup; a
// device-flow token is obtained interactively. All failures wrap
// ErrAuthenticationFailed while keeping the underlying cause visible to
// errors.Is and errors.As, so callers can still distinguish an expired
// code from a denial.
//
// Tokens exist only in process memory. They are never logged, never
// placed in error messages, and never written to disk.
package auth
