// Package errors provides typed error values for the Kōwhai application.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. This makes
// error handling more robust and refactoring-safe.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Authentication errors: device-flow and session failures
//     (ErrDeviceCodeExpired, ErrAuthorizationDenied, ErrAuthenticationFailed)
//   - Crypto errors: sealed-box preparation failures (ErrKeyDecode)
//   - Input errors: bad names, missing files or targets (ErrInvalidSecretName)
//   - API errors: GitHub REST failures after authentication (ErrAPIRequestFailed)
//
// # Usage
//
// Return errors from internal packages:
//
//	if resp.StatusCode == http.StatusNotFound {
//	    return errors.ErrSecretNotFound
//	}
//
// Handle errors in the CLI layer:
//
//	result, err := workflows.Sync(ctx, opts)
//	if errors.Is(err, kerrors.ErrNoFilesFound) {
//	    // Show user-friendly message
//	}
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("%w: requesting device code: %v", errors.ErrTransport, err)
//
// The device-flow provider can also return error codes outside the fixed
// taxonomy; those surface as *auth.ProviderError and are matched with
// errors.As rather than a sentinel.
package errors
