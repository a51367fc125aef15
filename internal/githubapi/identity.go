package githubapi

import (
	"context"
)

// Identity returns the login of the user the client's token belongs to.
// A failure here means the token is unusable (revoked, expired, or the
// API is unreachable).
func (c *Client) Identity(ctx context.Context) (string, error) {
	user, resp, err := c.gh.Users.Get(ctx, "")
	if err != nil {
		return "", apiError(resp, err)
	}
	return user.GetLogin(), nil
}
