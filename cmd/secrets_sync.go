package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/PolarWolf314/kowhai/internal/configs"
	kerrors "github.com/PolarWolf314/kowhai/internal/errors"
	"github.com/PolarWolf314/kowhai/internal/utils"
	"github.com/PolarWolf314/kowhai/internal/workflows"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	syncDryRun       bool
	syncSaveDefaults bool
)

func init() {
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "show what would be uploaded without uploading")
	syncCmd.Flags().BoolVar(&syncSaveDefaults, "save-defaults", false, "remember --owner/--repo as the default target")
}

// resetSyncCommandState resets the sync command's global state for testing.
func resetSyncCommandState() {
	syncDryRun = false
	syncSaveDefaults = false
}

var syncCmd = &cobra.Command{
	Use:   "sync [patterns...]",
	Short: "Upload .env entries as repository secrets",
	Long: `Uploads every entry of the matched environment files as GitHub Actions
repository secrets. Without arguments, .env files in the current
directory are used. Entries with names GitHub would reject are skipped
and reported, never silently dropped.

Each value is sealed against the repository's public key before upload.

Examples:
  kowhai secrets sync                        # All .env files in the current directory
  kowhai secrets sync .env.production        # A specific file
  kowhai secrets sync 'config/**/*.env'      # A glob pattern
  kowhai secrets sync --dry-run              # Preview without uploading`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting sync command")
		spinner, cleanup := startSpinner("Syncing environment files...", verbose)
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

		var session *workflowSession
		if !syncDryRun {
			session, err = connectForWorkflow(spinner, config)
			if err != nil {
				spinner.FinalMSG = formatAuthenticationError(err)
				return nil
			}
		}

		opts := workflows.SyncOptions{
			Owner:        targetOwner,
			Repo:         targetRepo,
			FilePatterns: args,
			DryRun:       syncDryRun,
		}
		if session != nil {
			opts.Gateway = session.client
			opts.Login = session.login
		}

		result, err := workflows.Sync(context.Background(), opts)
		if err != nil {
			switch {
			case errors.Is(err, kerrors.ErrNoFilesFound):
				finalMessage := color.RedString("✗") + " No environment files found\n" +
					color.CyanString("→") + " Create a " + color.YellowString(".env") + " file or pass explicit paths"
				spinner.FinalMSG = finalMessage
				return nil
			case errors.Is(err, kerrors.ErrNoSecretsFound):
				finalMessage := color.RedString("✗") + " The environment files contain no entries"
				spinner.FinalMSG = finalMessage
				return nil
			case errors.Is(err, kerrors.ErrKeyDecode), errors.Is(err, kerrors.ErrEncryptFailed):
				Logger.Errorf("Encryption failed: %v", err)
				finalMessage := color.RedString("✗") + " Failed to encrypt a secret; the sync was aborted\n" +
					color.RedString("Error: ") + err.Error()
				spinner.FinalMSG = finalMessage
				return nil
			default:
				Logger.Errorf("Sync failed: %v", err)
				spinner.FinalMSG = formatAPIError(err)
				return nil
			}
		}

		if syncSaveDefaults {
			Logger.Debugf("Saving %s as the default target", result.Repo)
			if err := saveTargetDefaults(config, targetOwner, targetRepo); err != nil {
				Logger.WarnfAlways("Failed to save default target: %v", err)
			}
		}

		Logger.Infof("Sync command completed: %d uploaded, %d skipped from %d files",
			len(result.Uploaded), len(result.Invalid), len(result.SourceFiles))

		verb := "uploaded to"
		glyph := color.GreenString("✓")
		if result.DryRun {
			verb = "would be uploaded to"
		}

		finalMessage := fmt.Sprintf("%s %d %s %s %s",
			glyph, len(result.Uploaded), pluralizeSecret(len(result.Uploaded)), verb, color.CyanString(result.Repo))
		if len(result.Uploaded) > 0 {
			finalMessage += utils.FormatNames(result.Uploaded)
		} else {
			finalMessage += "\n"
		}

		if len(result.Invalid) > 0 {
			finalMessage += color.YellowString("!") + fmt.Sprintf(" Skipped %d invalid %s:", len(result.Invalid), pluralizeName(len(result.Invalid))) +
				utils.FormatNames(result.Invalid) +
				color.CyanString("→") + " Names must match " + color.YellowString("[A-Za-z_][A-Za-z0-9_]*") + " and must not start with " + color.YellowString("GITHUB_")
		}

		if result.DryRun {
			finalMessage += color.CyanString("→") + " Re-run without " + color.YellowString("--dry-run") + " to upload"
		}

		spinner.FinalMSG = finalMessage
		return nil
	},
}

func pluralizeSecret(n int) string {
	if n == 1 {
		return "secret"
	}
	return "secrets"
}

func pluralizeName(n int) string {
	if n == 1 {
		return "name"
	}
	return "names"
}
