package githubapi

import (
	"context"

	"github.com/google/go-github/v57/github"
)

// Repo identifies a repository the authenticated user can see.
type Repo struct {
	Owner   string
	Name    string
	Private bool
}

// FullName returns the owner/name form used everywhere in output.
func (r Repo) FullName() string {
	return r.Owner + "/" + r.Name
}

// ListRepos returns the repositories accessible to the authenticated
// user, most recently updated first, following pagination.
func (c *Client) ListRepos(ctx context.Context) ([]Repo, error) {
	opts := &github.RepositoryListOptions{
		Sort:        "updated",
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var out []Repo
	for {
		repos, resp, err := c.gh.Repositories.List(ctx, "", opts)
		if err != nil {
			return nil, apiError(resp, err)
		}
		for _, r := range repos {
			out = append(out, Repo{
				Owner:   r.GetOwner().GetLogin(),
				Name:    r.GetName(),
				Private: r.GetPrivate(),
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return out, nil
}

// ListOrgs returns the logins of the organizations the authenticated
// user belongs to.
func (c *Client) ListOrgs(ctx context.Context) ([]string, error) {
	opts := &github.ListOptions{PerPage: 100}

	var out []string
	for {
		orgs, resp, err := c.gh.Organizations.List(ctx, "", opts)
		if err != nil {
			return nil, apiError(resp, err)
		}
		for _, o := range orgs {
			out = append(out, o.GetLogin())
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return out, nil
}
