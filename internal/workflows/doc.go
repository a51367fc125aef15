// Package workflows provides high-level orchestration for Kōwhai commands.
//
// Workflows coordinate multiple operations across packages (secrets,
// githubapi, audit) to implement complete user-facing features. Each
// workflow handles a single command's business logic, independent of CLI
// concerns like flag parsing, spinners, and output formatting.
//
// # Design Philosophy
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Authenticates and builds the API gateway
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// Workflows handle everything else:
//   - Resolving and parsing environment files
//   - Validating secret names
//   - Sealing values and driving the API calls
//   - Recording audit trail entries
//
// Workflows never log, echo, or persist secret values or tokens; values
// exist transiently between parse and seal, and only ciphertext goes to
// the gateway.
//
// # Available Workflows
//
// Each command has a corresponding workflow:
//
//   - Set: uploads a single secret
//   - Sync: uploads every entry of the local environment files
//   - List: lists the secrets stored in a repository
//   - Remove: deletes a secret
//   - Status: compares local entries against stored secrets by name
//   - Log: reads and filters the local audit trail
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package,
// allowing the CLI layer to provide appropriate user-facing messages
// without string matching. Use errors.Is() to check for specific error
// conditions:
//
//	result, err := workflows.Sync(ctx, opts)
//	if errors.Is(err, kerrors.ErrNoFilesFound) {
//	    // Show user-friendly guidance
//	}
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first
// parameter. This enables cancellation, timeouts, and passing
// request-scoped values.
package workflows
