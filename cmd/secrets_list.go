package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/kowhai/internal/configs"
	"github.com/PolarWolf314/kowhai/internal/ui"
	"github.com/PolarWolf314/kowhai/internal/workflows"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the secrets stored in the repository",
	Long: `Lists the GitHub Actions secrets currently stored in the target
repository, with their last-updated dates. GitHub never exposes secret
values, so only names are shown.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting list command")
		spinner, cleanup := startSpinner("Fetching secrets...", verbose)
		defer cleanup()

		Logger.Debugf("Loading user config")
		config, err := configs.LoadUserConfig()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load user config: %v", err)
		}

		targetOwner, targetRepo := config.ResolveTarget(owner, repo)
		Logger.Debugf("Target repository: %s/%s", targetOwner, targetRepo)
		if targetOwner == "" || targetRepo == "" {
			spinner.FinalMSG = missingTargetMessage()
			return nil
		}

		session, err := connectForWorkflow(spinner, config)
		if err != nil {
			spinner.FinalMSG = formatAuthenticationError(err)
			return nil
		}

		result, err := workflows.List(context.Background(), workflows.ListOptions{
			Gateway: session.client,
			Owner:   targetOwner,
			Repo:    targetRepo,
		})
		if err != nil {
			Logger.Errorf("List failed: %v", err)
			spinner.FinalMSG = formatAPIError(err)
			return nil
		}

		Logger.Infof("List command completed: %d secrets in %s", len(result.Secrets), result.Repo)

		if len(result.Secrets) == 0 {
			spinner.FinalMSG = ui.Info.Sprint("ℹ") + " No secrets in " + ui.Highlight.Sprint(result.Repo) + "\n" +
				ui.Info.Sprint("→") + " Add one with " + ui.Code.Sprint("kowhai secrets set NAME")
			return nil
		}

		spinner.FinalMSG = ""
		fmt.Printf("%s %d %s in %s\n\n", ui.Success.Sprint("✓"), len(result.Secrets), pluralizeSecret(len(result.Secrets)), ui.Highlight.Sprint(result.Repo))
		for _, s := range result.Secrets {
			updated := ""
			if !s.UpdatedAt.IsZero() {
				updated = ui.Muted.Sprint("updated " + s.UpdatedAt.Format("2006-01-02"))
			}
			fmt.Printf("    %-32s  %s\n", ui.Path.Sprint(s.Name), updated)
		}
		return nil
	},
}
