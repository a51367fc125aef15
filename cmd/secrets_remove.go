package cmd

import (
	"context"
	"errors"

	"github.com/PolarWolf314/kowhai/internal/configs"
	kerrors "github.com/PolarWolf314/kowhai/internal/errors"
	"github.com/PolarWolf314/kowhai/internal/workflows"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Delete a secret from the repository",
	Long: `Deletes a GitHub Actions secret from the target repository. The
deletion is immediate; workflows referencing the secret will see an
empty value on their next run.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting remove command")
		name := args[0]
		spinner, cleanup := startSpinner("Removing secret...", verbose)
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

		result, err := workflows.Remove(context.Background(), workflows.RemoveOptions{
			Gateway: session.client,
			Login:   session.login,
			Owner:   targetOwner,
			Repo:    targetRepo,
			Name:    name,
		})
		if err != nil {
			switch {
			case errors.Is(err, kerrors.ErrInvalidSecretName):
				finalMessage := color.RedString("✗") + " " + color.YellowString(name) + " is not a valid secret name, so it cannot exist on GitHub"
				spinner.FinalMSG = finalMessage
				return nil
			case errors.Is(err, kerrors.ErrSecretNotFound):
				finalMessage := color.RedString("✗") + " No secret named " + color.YellowString(name) + " in " + color.CyanString(targetOwner+"/"+targetRepo) + "\n" +
					color.CyanString("→") + " Run " + color.YellowString("kowhai secrets list") + " to see what exists"
				spinner.FinalMSG = finalMessage
				return nil
			default:
				Logger.Errorf("Remove failed: %v", err)
				spinner.FinalMSG = formatAPIError(err)
				return nil
			}
		}

		Logger.Infof("Remove command completed successfully for %s", name)
		finalMessage := color.GreenString("✓") + " Secret " + color.YellowString(name) + " removed from " + color.CyanString(result.Repo)
		spinner.FinalMSG = finalMessage
		return nil
	},
}
