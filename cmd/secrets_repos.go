package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/kowhai/internal/configs"
	"github.com/PolarWolf314/kowhai/internal/ui"

	"github.com/spf13/cobra"
)

var (
	reposOrgs  bool
	reposLimit int
)

func init() {
	reposCmd.Flags().BoolVar(&reposOrgs, "orgs", false, "list organizations instead of repositories")
	reposCmd.Flags().IntVarP(&reposLimit, "number", "n", 30, "limit the number of repositories shown (0 for all)")
}

// resetReposCommandState resets the repos command's global state for testing.
func resetReposCommandState() {
	reposOrgs = false
	reposLimit = 30
}

var reposCmd = &cobra.Command{
	Use:   "repos",
	Short: "List repositories you can push secrets to",
	Long: `Lists the repositories accessible with the current credentials, most
recently updated first, to help pick a --owner/--repo target. With
--orgs, lists your organizations instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting repos command")
		spinner, cleanup := startSpinner("Fetching repositories...", verbose)
		defer cleanup()

		Logger.Debugf("Loading user config")
		config, err := configs.LoadUserConfig()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load user config: %v", err)
		}

		session, err := connectForWorkflow(spinner, config)
		if err != nil {
			spinner.FinalMSG = formatAuthenticationError(err)
			return nil
		}

		if reposOrgs {
			orgs, err := session.client.ListOrgs(context.Background())
			if err != nil {
				Logger.Errorf("Listing organizations failed: %v", err)
				spinner.FinalMSG = formatAPIError(err)
				return nil
			}

			Logger.Infof("Repos command completed: %d organizations", len(orgs))
			if len(orgs) == 0 {
				spinner.FinalMSG = ui.Info.Sprint("ℹ") + " " + ui.Highlight.Sprint(session.login) + " belongs to no organizations"
				return nil
			}

			spinner.FinalMSG = ""
			fmt.Printf("%s Organizations for %s:\n\n", ui.Success.Sprint("✓"), ui.Highlight.Sprint(session.login))
			for _, org := range orgs {
				fmt.Printf("    %s\n", ui.Path.Sprint(org))
			}
			return nil
		}

		repos, err := session.client.ListRepos(context.Background())
		if err != nil {
			Logger.Errorf("Listing repositories failed: %v", err)
			spinner.FinalMSG = formatAPIError(err)
			return nil
		}

		total := len(repos)
		if reposLimit > 0 && len(repos) > reposLimit {
			repos = repos[:reposLimit]
		}

		Logger.Infof("Repos command completed: showing %d of %d repositories", len(repos), total)
		if total == 0 {
			spinner.FinalMSG = ui.Info.Sprint("ℹ") + " No repositories accessible with these credentials"
			return nil
		}

		spinner.FinalMSG = ""
		fmt.Printf("%s Repositories for %s (most recently updated first):\n\n", ui.Success.Sprint("✓"), ui.Highlight.Sprint(session.login))
		for _, r := range repos {
			visibility := ""
			if r.Private {
				visibility = ui.Muted.Sprint("private")
			}
			fmt.Printf("    %-48s  %s\n", ui.Path.Sprint(r.FullName()), visibility)
		}
		if total > len(repos) {
			fmt.Printf("\n%s Showing %d of %d; use %s to see more\n", ui.Info.Sprint("→"), len(repos), total, ui.Code.Sprint("-n 0"))
		}
		return nil
	},
}
