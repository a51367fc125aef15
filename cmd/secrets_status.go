package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/PolarWolf314/kowhai/internal/configs"
	kerrors "github.com/PolarWolf314/kowhai/internal/errors"
	"github.com/PolarWolf314/kowhai/internal/ui"
	"github.com/PolarWolf314/kowhai/internal/utils"
	"github.com/PolarWolf314/kowhai/internal/workflows"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status [patterns...]",
	Short: "Show who you are and how local files compare to the repository",
	Long: `Verifies the credentials, reports the authenticated GitHub login, and
compares local environment file entries against the secrets already
stored in the target repository.

Examples:
  kowhai secrets status                  # Identity plus .env comparison
  kowhai secrets status .env.production  # Compare a specific file`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting status command")
		spinner, cleanup := startSpinner("Checking status...", verbose)
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

		identityLine := ui.Success.Sprint("✓") + " Authenticated as " + ui.Highlight.Sprint(session.login)

		targetOwner, targetRepo := config.ResolveTarget(owner, repo)
		Logger.Debugf("Target repository: %s/%s", targetOwner, targetRepo)
		if targetOwner == "" || targetRepo == "" {
			spinner.FinalMSG = identityLine + "\n" +
				ui.Info.Sprint("→") + " No target repository configured; pass " + ui.Code.Sprint("--owner") + " and " + ui.Code.Sprint("--repo") + " to compare local files"
			return nil
		}

		result, err := workflows.Status(context.Background(), workflows.StatusOptions{
			Gateway:      session.client,
			Owner:        targetOwner,
			Repo:         targetRepo,
			FilePatterns: args,
		})
		if err != nil {
			switch {
			case errors.Is(err, kerrors.ErrNoFilesFound):
				spinner.FinalMSG = identityLine + "\n" +
					ui.Info.Sprint("ℹ") + " No local environment files to compare against " + ui.Highlight.Sprint(targetOwner+"/"+targetRepo)
				return nil
			default:
				Logger.Errorf("Status failed: %v", err)
				spinner.FinalMSG = identityLine + "\n" + formatAPIError(err)
				return nil
			}
		}

		Logger.Infof("Status command completed: %d in sync, %d local-only, %d remote-only",
			len(result.InSync), len(result.LocalOnly), len(result.RemoteOnly))

		spinner.FinalMSG = ""
		fmt.Println(identityLine)
		fmt.Printf("%s Comparing %s against %s\n", ui.Info.Sprint("→"), ui.Path.Sprint(fmt.Sprintf("%d local files", len(result.SourceFiles))), ui.Highlight.Sprint(result.Repo))

		if len(result.InSync) > 0 {
			fmt.Printf("\n%s In sync (%d):%s", ui.Success.Sprint("✓"), len(result.InSync), utils.FormatNames(result.InSync))
		}
		if len(result.LocalOnly) > 0 {
			fmt.Printf("\n%s Local only (%d), not yet uploaded:%s", ui.Warning.Sprint("!"), len(result.LocalOnly), utils.FormatNames(result.LocalOnly))
		}
		if len(result.RemoteOnly) > 0 {
			fmt.Printf("\n%s Remote only (%d), no local counterpart:%s", ui.Info.Sprint("ℹ"), len(result.RemoteOnly), utils.FormatNames(result.RemoteOnly))
		}
		if len(result.Invalid) > 0 {
			fmt.Printf("\n%s Invalid names (%d), can never be uploaded:%s", ui.Error.Sprint("✗"), len(result.Invalid), utils.FormatNames(result.Invalid))
		}

		if len(result.LocalOnly) > 0 {
			fmt.Printf("\n%s Run %s to upload the local-only entries\n", ui.Info.Sprint("→"), ui.Code.Sprint("kowhai secrets sync"))
		}
		return nil
	},
}
