package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/kowhai/internal/audit"
	kerrors "github.com/PolarWolf314/kowhai/internal/errors"
	"github.com/PolarWolf314/kowhai/internal/secrets"
)

// SetOptions configures the set workflow.
type SetOptions struct {
	// Gateway performs the GitHub API calls.
	Gateway SecretsGateway

	// Login is the authenticated user, recorded in the audit trail.
	Login string

	// Owner and Repo identify the target repository.
	Owner string
	Repo  string

	// Name is the secret name; it is validated before any network call.
	Name string

	// Value is the plaintext secret. It is sealed before upload and never
	// leaves the process unencrypted.
	Value string

	// DryRun exercises validation, key fetch, and encryption without
	// uploading anything.
	DryRun bool
}

// SetResult contains the outcome of a set operation.
type SetResult struct {
	// Repo is the owner/name form of the target repository.
	Repo string

	// Name is the secret that was created or updated.
	Name string

	// DryRun indicates whether this was a preview (nothing uploaded).
	DryRun bool
}

// Set creates or updates a single repository secret.
//
// The name is validated locally, the value is sealed against the
// repository's public key, and only the ciphertext plus key ID are
// uploaded. A failed encryption aborts the upload. DryRun runs the
// whole pipeline, including key fetch and encryption, and skips only
// the upload itself.
//
// Returns ErrRepoNotSpecified if no target repository was resolved.
// Returns ErrInvalidSecretName if GitHub would reject the name.
// Returns ErrNoSecretValue if the value is empty.
// Returns ErrKeyDecode if the repository public key is unusable.
// Returns ErrEncryptFailed if sealing the value fails.
func Set(ctx context.Context, opts SetOptions) (*SetResult, error) {
	if opts.Owner == "" || opts.Repo == "" {
		return nil, kerrors.ErrRepoNotSpecified
	}

	if err := secrets.ValidateName(opts.Name); err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidSecretName, err)
	}

	if opts.Value == "" {
		return nil, kerrors.ErrNoSecretValue
	}

	result := &SetResult{
		Repo:   opts.Owner + "/" + opts.Repo,
		Name:   opts.Name,
		DryRun: opts.DryRun,
	}

	key, err := opts.Gateway.RepoPublicKey(ctx, opts.Owner, opts.Repo)
	if err != nil {
		return nil, err
	}

	publicKey, err := secrets.DecodePublicKey(key.Key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrKeyDecode, err)
	}

	ciphertext, err := secrets.SealSecret(publicKey, opts.Value)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrEncryptFailed, err)
	}

	if opts.DryRun {
		return result, nil
	}

	if err := opts.Gateway.PutSecret(ctx, opts.Owner, opts.Repo, opts.Name, ciphertext, key.KeyID); err != nil {
		return nil, err
	}

	entry := audit.ForOperation("set", opts.Login)
	entry.Repo = result.Repo
	entry.Secrets = []string{opts.Name}
	audit.Log(entry)

	return result, nil
}
