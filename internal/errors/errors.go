package errors

import "errors"

// Authentication errors cover the device-authorization flow and the
// orchestration around it.
var (
	// ErrTransport indicates a network or HTTP-level failure talking to GitHub.
	// It is never retried internally; the caller decides whether to start over.
	ErrTransport = errors.New("network request failed")

	// ErrDeviceCodeExpired indicates the device code lapsed before the user
	// approved it. The whole flow must be restarted to recover.
	ErrDeviceCodeExpired = errors.New("device code expired")

	// ErrAuthorizationDenied indicates the user explicitly denied the
	// authorization request in their browser.
	ErrAuthorizationDenied = errors.New("authorization denied by user")

	// ErrAuthenticationFailed indicates a session could not be established.
	// It wraps the underlying cause, which remains matchable with errors.Is.
	ErrAuthenticationFailed = errors.New("authentication failed")
)

// Cryptographic errors indicate failures preparing a secret for upload.
var (
	// ErrKeyDecode indicates the repository public key was not valid base64
	// or had the wrong length for sealed-box encryption.
	ErrKeyDecode = errors.New("invalid public key encoding")

	// ErrEncryptFailed indicates sealed-box encryption itself failed.
	ErrEncryptFailed = errors.New("failed to encrypt secret")
)

// Input errors indicate problems with what the user asked for.
var (
	// ErrInvalidSecretName indicates a secret name GitHub Actions would reject.
	ErrInvalidSecretName = errors.New("invalid secret name")

	// ErrNoFilesFound indicates no files matched: environment file patterns
	// with no matches, or a missing audit log.
	ErrNoFilesFound = errors.New("no matching files found")

	// ErrNoSecretsFound indicates the environment files contained no usable entries.
	ErrNoSecretsFound = errors.New("no secrets found in environment files")

	// ErrRepoNotSpecified indicates no target repository was given by flag or config.
	ErrRepoNotSpecified = errors.New("target repository not specified")

	// ErrNoSecretValue indicates no value was supplied by flag or stdin.
	ErrNoSecretValue = errors.New("no secret value provided")

	// ErrInvalidDateFormat indicates a date filter that is not YYYY-MM-DD.
	ErrInvalidDateFormat = errors.New("invalid date format")
)

// API errors indicate failures from the GitHub REST API after authentication.
var (
	// ErrAPIRequestFailed indicates a GitHub API call returned an error.
	ErrAPIRequestFailed = errors.New("GitHub API request failed")

	// ErrBadCredentials indicates GitHub rejected the access token. The caller
	// should re-authenticate rather than retry the same request.
	ErrBadCredentials = errors.New("GitHub rejected the credentials")

	// ErrSecretNotFound indicates the named secret does not exist in the repository.
	ErrSecretNotFound = errors.New("secret not found")
)
