package githubapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/go-github/v57/github"

	kerrors "github.com/PolarWolf314/kowhai/internal/errors"
)

// PublicKey is a repository's sealed-box public key. Every secret upload
// must be encrypted against Key and reference KeyID.
type PublicKey struct {
	KeyID string
	Key   string // base64-encoded Curve25519 public key
}

// SecretInfo describes an existing secret. GitHub never returns secret
// values, so there is nothing more to expose.
type SecretInfo struct {
	Name      string
	UpdatedAt time.Time
}

// RepoPublicKey fetches the key used to seal secrets for a repository.
func (c *Client) RepoPublicKey(ctx context.Context, owner, repo string) (*PublicKey, error) {
	key, resp, err := c.gh.Actions.GetRepoPublicKey(ctx, owner, repo)
	if err != nil {
		return nil, apiError(resp, err)
	}
	return &PublicKey{KeyID: key.GetKeyID(), Key: key.GetKey()}, nil
}

// PutSecret creates or updates a repository secret. It accepts only
// sealed ciphertext and the ID of the key it was sealed against; there
// is no code path that transmits a plaintext value.
func (c *Client) PutSecret(ctx context.Context, owner, repo, name, ciphertext, keyID string) error {
	secret := &github.EncryptedSecret{
		Name:           name,
		KeyID:          keyID,
		EncryptedValue: ciphertext,
	}
	if resp, err := c.gh.Actions.CreateOrUpdateRepoSecret(ctx, owner, repo, secret); err != nil {
		return apiError(resp, err)
	}
	return nil
}

// ListSecrets returns every Actions secret in the repository, following
// pagination.
func (c *Client) ListSecrets(ctx context.Context, owner, repo string) ([]SecretInfo, error) {
	opts := &github.ListOptions{PerPage: 100}

	var out []SecretInfo
	for {
		secrets, resp, err := c.gh.Actions.ListRepoSecrets(ctx, owner, repo, opts)
		if err != nil {
			return nil, apiError(resp, err)
		}
		for _, s := range secrets.Secrets {
			out = append(out, SecretInfo{Name: s.Name, UpdatedAt: s.UpdatedAt.Time})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return out, nil
}

// DeleteSecret removes a repository secret. Deleting a secret that does
// not exist returns ErrSecretNotFound.
func (c *Client) DeleteSecret(ctx context.Context, owner, repo, name string) error {
	resp, err := c.gh.Actions.DeleteRepoSecret(ctx, owner, repo, name)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: %s", kerrors.ErrSecretNotFound, name)
		}
		return apiError(resp, err)
	}
	return nil
}
