package workflows

import (
	"context"

	kerrors "github.com/PolarWolf314/kowhai/internal/errors"
	"github.com/PolarWolf314/kowhai/internal/githubapi"
)

// ListOptions configures the list workflow.
type ListOptions struct {
	// Gateway performs the GitHub API calls.
	Gateway SecretsGateway

	// Owner and Repo identify the target repository.
	Owner string
	Repo  string
}

// ListResult contains the outcome of a list operation.
type ListResult struct {
	// Repo is the owner/name form of the target repository.
	Repo string

	// Secrets are the existing Actions secrets, as GitHub returns them.
	// Values are never included; GitHub does not expose them.
	Secrets []githubapi.SecretInfo
}

// List returns the Actions secrets currently stored in the repository.
//
// Returns ErrRepoNotSpecified if no target repository was resolved.
func List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	if opts.Owner == "" || opts.Repo == "" {
		return nil, kerrors.ErrRepoNotSpecified
	}

	infos, err := opts.Gateway.ListSecrets(ctx, opts.Owner, opts.Repo)
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Repo:    opts.Owner + "/" + opts.Repo,
		Secrets: infos,
	}, nil
}
