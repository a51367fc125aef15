package workflows

import (
	"context"

	kerrors "github.com/PolarWolf314/kowhai/internal/errors"
	"github.com/PolarWolf314/kowhai/internal/secrets"
)

// StatusOptions configures the status workflow.
type StatusOptions struct {
	// Gateway performs the GitHub API calls.
	Gateway SecretsGateway

	// Owner and Repo identify the target repository.
	Owner string
	Repo  string

	// FilePatterns specifies environment files to compare. If empty, the
	// root is searched for .env* files.
	FilePatterns []string

	// Root is the directory patterns resolve against. Defaults to the
	// working directory.
	Root string
}

// StatusResult compares local environment files against the secrets
// currently stored in the repository. Only names are compared; values
// cannot be read back from GitHub.
type StatusResult struct {
	// Repo is the owner/name form of the target repository.
	Repo string

	// SourceFiles lists the environment files that were read.
	SourceFiles []string

	// InSync lists names present both locally and on GitHub.
	InSync []string

	// LocalOnly lists valid local names not yet uploaded.
	LocalOnly []string

	// RemoteOnly lists names on GitHub with no local counterpart.
	RemoteOnly []string

	// Invalid lists local names GitHub would reject.
	Invalid []string
}

// Status reports which local entries already exist as repository
// secrets, which are missing, and which exist remotely but not locally.
//
// Returns ErrRepoNotSpecified if no target repository was resolved.
// Returns ErrNoFilesFound if no environment files match.
func Status(ctx context.Context, opts StatusOptions) (*StatusResult, error) {
	if opts.Owner == "" || opts.Repo == "" {
		return nil, kerrors.ErrRepoNotSpecified
	}

	files, entries, err := loadEntries(opts.FilePatterns, opts.Root)
	if err != nil {
		return nil, err
	}

	valid, invalid := secrets.Partition(entries)

	remote, err := opts.Gateway.ListSecrets(ctx, opts.Owner, opts.Repo)
	if err != nil {
		return nil, err
	}

	remoteNames := make(map[string]bool, len(remote))
	for _, info := range remote {
		remoteNames[info.Name] = true
	}

	result := &StatusResult{
		Repo:        opts.Owner + "/" + opts.Repo,
		SourceFiles: files,
		Invalid:     invalid,
	}

	localNames := make(map[string]bool, len(valid))
	for _, entry := range valid {
		localNames[entry.Name] = true
		if remoteNames[entry.Name] {
			result.InSync = append(result.InSync, entry.Name)
		} else {
			result.LocalOnly = append(result.LocalOnly, entry.Name)
		}
	}

	for _, info := range remote {
		if !localNames[info.Name] {
			result.RemoteOnly = append(result.RemoteOnly, info.Name)
		}
	}

	return result, nil
}
