package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/kowhai/internal/audit"
	kerrors "github.com/PolarWolf314/kowhai/internal/errors"
	"github.com/PolarWolf314/kowhai/internal/secrets"
)

// RemoveOptions configures the remove workflow.
type RemoveOptions struct {
	// Gateway performs the GitHub API calls.
	Gateway SecretsGateway

	// Login is the authenticated user, recorded in the audit trail.
	Login string

	// Owner and Repo identify the target repository.
	Owner string
	Repo  string

	// Name is the secret to delete.
	Name string
}

// RemoveResult contains the outcome of a remove operation.
type RemoveResult struct {
	// Repo is the owner/name form of the target repository.
	Repo string

	// Name is the secret that was deleted.
	Name string
}

// Remove deletes a repository secret.
//
// Returns ErrRepoNotSpecified if no target repository was resolved.
// Returns ErrInvalidSecretName if the name could never exist on GitHub.
// Returns ErrSecretNotFound if the secret does not exist.
func Remove(ctx context.Context, opts RemoveOptions) (*RemoveResult, error) {
	if opts.Owner == "" || opts.Repo == "" {
		return nil, kerrors.ErrRepoNotSpecified
	}

	if err := secrets.ValidateName(opts.Name); err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidSecretName, err)
	}

	if err := opts.Gateway.DeleteSecret(ctx, opts.Owner, opts.Repo, opts.Name); err != nil {
		return nil, err
	}

	result := &RemoveResult{
		Repo: opts.Owner + "/" + opts.Repo,
		Name: opts.Name,
	}

	entry := audit.ForOperation("remove", opts.Login)
	entry.Repo = result.Repo
	entry.Secrets = []string{opts.Name}
	audit.Log(entry)

	return result, nil
}
