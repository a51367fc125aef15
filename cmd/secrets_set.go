package cmd

import (
	"context"
	"errors"

	"github.com/PolarWolf314/kowhai/internal/configs"
	kerrors "github.com/PolarWolf314/kowhai/internal/errors"
	"github.com/PolarWolf314/kowhai/internal/utils"
	"github.com/PolarWolf314/kowhai/internal/workflows"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	setValue        string
	setDryRun       bool
	setSaveDefaults bool
)

func init() {
	setCmd.Flags().StringVar(&setValue, "value", "", "secret value (prefer piping via stdin to keep it out of shell history)")
	setCmd.Flags().BoolVar(&setDryRun, "dry-run", false, "validate and encrypt without uploading")
	setCmd.Flags().BoolVar(&setSaveDefaults, "save-defaults", false, "remember --owner/--repo as the default target")
}

// resetSetCommandState resets the set command's global state for testing.
func resetSetCommandState() {
	setValue = ""
	setDryRun = false
	setSaveDefaults = false
}

var setCmd = &cobra.Command{
	Use:   "set <name>",
	Short: "Create or update a repository secret",
	Long: `Creates or updates a single GitHub Actions repository secret.

The value is read from --value, from piped stdin, or from a hidden
interactive prompt. It is sealed against the repository's public key
before upload; the plaintext never leaves this machine.

Examples:
  kowhai secrets set API_KEY                        # Prompt for the value (hidden input)
  printf '%s' "$VALUE" | kowhai secrets set API_KEY # Pipe the value
  kowhai secrets set API_KEY --dry-run              # Validate and encrypt, upload nothing`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting set command")
		name := args[0]
		spinner, cleanup := startSpinner("Uploading secret...", verbose)
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

		value := setValue
		if value == "" {
			if utils.StdinIsPiped() {
				Logger.Debugf("Reading secret value from stdin")
				value, err = utils.ReadStdin()
				if err != nil {
					return Logger.ErrorfAndReturn("Failed to read value from stdin: %v", err)
				}
			} else {
				spinner.Stop()
				value, err = utils.ReadSecretPrompt("Value for " + name + ": ")
				if err != nil {
					return Logger.ErrorfAndReturn("Failed to read value: %v", err)
				}
				spinner.Restart()
			}
		}
		if value == "" {
			finalMessage := color.RedString("✗") + " No value provided for " + color.YellowString(name) + "\n" +
				color.CyanString("→") + " Pass " + color.YellowString("--value") + ", pipe the value on stdin, or type it at the prompt"
			spinner.FinalMSG = finalMessage
			return nil
		}

		Logger.Debugf("Authenticating with GitHub")
		session, err := connectForWorkflow(spinner, config)
		if err != nil {
			spinner.FinalMSG = formatAuthenticationError(err)
			return nil
		}

		result, err := workflows.Set(context.Background(), workflows.SetOptions{
			Gateway: session.client,
			Login:   session.login,
			Owner:   targetOwner,
			Repo:    targetRepo,
			Name:    name,
			Value:   value,
			DryRun:  setDryRun,
		})
		if err != nil {
			switch {
			case errors.Is(err, kerrors.ErrInvalidSecretName):
				finalMessage := color.RedString("✗") + " " + color.YellowString(name) + " is not a valid secret name\n" +
					color.CyanString("→") + " Names must start with a letter or underscore, use only letters, digits, and underscores,\n" +
					color.CyanString("→") + " and must not start with the reserved " + color.YellowString("GITHUB_") + " prefix"
				spinner.FinalMSG = finalMessage
				return nil
			case errors.Is(err, kerrors.ErrKeyDecode), errors.Is(err, kerrors.ErrEncryptFailed):
				Logger.Errorf("Encryption failed: %v", err)
				finalMessage := color.RedString("✗") + " Failed to encrypt the secret; nothing was uploaded\n" +
					color.RedString("Error: ") + err.Error()
				spinner.FinalMSG = finalMessage
				return nil
			default:
				Logger.Errorf("Set failed: %v", err)
				spinner.FinalMSG = formatAPIError(err)
				return nil
			}
		}

		if setSaveDefaults {
			Logger.Debugf("Saving %s as the default target", result.Repo)
			if err := saveTargetDefaults(config, targetOwner, targetRepo); err != nil {
				Logger.WarnfAlways("Failed to save default target: %v", err)
			}
		}

		Logger.Infof("Set command completed successfully for %s", name)
		if result.DryRun {
			finalMessage := color.GreenString("✓") + " Dry run: " + color.YellowString(name) + " validated and encrypted for " + color.CyanString(result.Repo) + "\n" +
				color.CyanString("→") + " Re-run without " + color.YellowString("--dry-run") + " to upload"
			spinner.FinalMSG = finalMessage
			return nil
		}

		finalMessage := color.GreenString("✓") + " Secret " + color.YellowString(name) + " uploaded to " + color.CyanString(result.Repo) + "\n" +
			color.CyanString("→") + " Available to workflows as " + color.YellowString("${{ secrets."+name+" }}")
		spinner.FinalMSG = finalMessage
		return nil
	},
}
