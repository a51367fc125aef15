package workflows

import (
	"context"

	"github.com/PolarWolf314/kowhai/internal/githubapi"
)

// SecretsGateway is the slice of the GitHub API the workflows need.
// *githubapi.Client satisfies it; tests supply fakes.
type SecretsGateway interface {
	RepoPublicKey(ctx context.Context, owner, repo string) (*githubapi.PublicKey, error)
	PutSecret(ctx context.Context, owner, repo, name, ciphertext, keyID string) error
	ListSecrets(ctx context.Context, owner, repo string) ([]githubapi.SecretInfo, error)
	DeleteSecret(ctx context.Context, owner, repo, name string) error
}
