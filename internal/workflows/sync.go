package workflows

import (
	"context"
	"fmt"
	"os"

	"github.com/PolarWolf314/kowhai/internal/audit"
	kerrors "github.com/PolarWolf314/kowhai/internal/errors"
	"github.com/PolarWolf314/kowhai/internal/secrets"
)

// SyncOptions configures the sync workflow.
type SyncOptions struct {
	// Gateway performs the GitHub API calls.
	Gateway SecretsGateway

	// Login is the authenticated user, recorded in the audit trail.
	Login string

	// Owner and Repo identify the target repository.
	Owner string
	Repo  string

	// FilePatterns specifies environment files to upload. If empty, the
	// root is searched for .env* files.
	FilePatterns []string

	// Root is the directory patterns resolve against. Defaults to the
	// working directory.
	Root string

	// DryRun previews which secrets would be uploaded without making
	// any changes.
	DryRun bool
}

// SyncResult contains the outcome of a sync operation.
type SyncResult struct {
	// Repo is the owner/name form of the target repository.
	Repo string

	// SourceFiles lists the environment files that were read.
	SourceFiles []string

	// Uploaded lists the secret names that were created or updated, in
	// file order.
	Uploaded []string

	// Invalid lists the names GitHub would reject, in file order. They
	// are reported, never uploaded.
	Invalid []string

	// DryRun indicates whether this was a preview (nothing uploaded).
	DryRun bool
}

// Sync uploads every entry of the resolved environment files as a
// repository secret.
//
// Entries are merged across files in resolution order (later files
// win), partitioned into valid and invalid names, sealed one by one
// against the repository public key, and uploaded. Invalid names are
// skipped and reported in their original order. Any encryption failure
// aborts the sync before the affected entry is uploaded.
//
// Returns ErrRepoNotSpecified if no target repository was resolved.
// Returns ErrNoFilesFound if no environment files match.
// Returns ErrNoSecretsFound if the files contain no entries.
func Sync(ctx context.Context, opts SyncOptions) (*SyncResult, error) {
	if opts.Owner == "" || opts.Repo == "" {
		return nil, kerrors.ErrRepoNotSpecified
	}

	files, entries, err := loadEntries(opts.FilePatterns, opts.Root)
	if err != nil {
		return nil, err
	}

	valid, invalid := secrets.Partition(entries)
	if len(valid) == 0 && len(invalid) == 0 {
		return nil, kerrors.ErrNoSecretsFound
	}

	result := &SyncResult{
		Repo:        opts.Owner + "/" + opts.Repo,
		SourceFiles: files,
		Invalid:     invalid,
		DryRun:      opts.DryRun,
	}

	for _, entry := range valid {
		result.Uploaded = append(result.Uploaded, entry.Name)
	}

	if opts.DryRun {
		return result, nil
	}

	key, err := opts.Gateway.RepoPublicKey(ctx, opts.Owner, opts.Repo)
	if err != nil {
		return nil, err
	}

	publicKey, err := secrets.DecodePublicKey(key.Key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrKeyDecode, err)
	}

	for _, entry := range valid {
		ciphertext, err := secrets.SealSecret(publicKey, entry.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: sealing %s: %v", kerrors.ErrEncryptFailed, entry.Name, err)
		}

		if err := opts.Gateway.PutSecret(ctx, opts.Owner, opts.Repo, entry.Name, ciphertext, key.KeyID); err != nil {
			return nil, fmt.Errorf("uploading %s: %w", entry.Name, err)
		}
	}

	auditEntry := audit.ForOperation("sync", opts.Login)
	auditEntry.Repo = result.Repo
	auditEntry.Secrets = result.Uploaded
	auditEntry.FilesCount = len(files)
	auditEntry.SkippedCount = len(invalid)
	audit.Log(auditEntry)

	return result, nil
}

// loadEntries resolves environment files and merges their entries in
// resolution order.
func loadEntries(patterns []string, root string) ([]string, []secrets.Entry, error) {
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		root = wd
	}

	files, err := secrets.ResolveEnvFiles(patterns, root)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", kerrors.ErrNoFilesFound, err)
	}
	if len(files) == 0 {
		return nil, nil, kerrors.ErrNoFilesFound
	}

	lists := make([][]secrets.Entry, 0, len(files))
	for _, file := range files {
		entries, err := secrets.ParseEnvFile(file)
		if err != nil {
			return nil, nil, fmt.Errorf("parsing environment files: %w", err)
		}
		lists = append(lists, entries)
	}

	return files, secrets.MergeEntries(lists...), nil
}
