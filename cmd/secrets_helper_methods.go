package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/PolarWolf314/kowhai/internal/auth"
	"github.com/PolarWolf314/kowhai/internal/configs"
	kerrors "github.com/PolarWolf314/kowhai/internal/errors"
	"github.com/PolarWolf314/kowhai/internal/githubapi"
	"github.com/PolarWolf314/kowhai/internal/ui"
	"github.com/briandowns/spinner"
	"github.com/common-nighthawk/go-figure"
	"github.com/fatih/color"
)

// startSpinner creates and starts a spinner with the given message when not in verbose or debug mode.
// Returns the spinner and a function that should be deferred to clean up.
// Uses the global debug flag from the secrets command.
//
// IMPORTANT: spinner.FinalMSG values do NOT need trailing newlines. The cleanup function
// automatically calls ui.EnsureNewline() on the final message before printing it.
// This ensures consistent output formatting across all commands.
func startSpinner(message string, verbose bool) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	err := s.Color("cyan")
	if err != nil {
		// If we can't set spinner color, just continue without it.
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	if !verbose && !debug {
		Logger.Debugf("Starting spinner in non-verbose mode")
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		// Restore log output first.
		if !verbose && !debug {
			Logger.Debugf("Restoring log output")
			log.SetOutput(os.Stdout)
		}

		// Ensure final message ends with a newline.
		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		// Stop the spinner first to clear the spinner line.
		if !verbose && !debug {
			Logger.Debugf("Stopping spinner")
			s.Stop()
		}

		// Print final message to stdout (for tests to capture).
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// acquireSession resolves an authenticated GitHub session. A token given
// via --token or GITHUB_TOKEN is validated directly; otherwise the
// browser-based device sign-in runs, pausing the spinner to show the
// user code. The token stays in memory only.
func acquireSession(ctx context.Context, s *spinner.Spinner, config *configs.UserConfig) (*auth.Session, error) {
	resolvedToken := token
	if resolvedToken == "" {
		resolvedToken = os.Getenv("GITHUB_TOKEN")
	}
	if resolvedToken != "" {
		Logger.Debugf("Validating pre-supplied access token")
	} else {
		Logger.Debugf("No token supplied, starting device sign-in")
	}

	return auth.Acquire(ctx, auth.AcquireOptions{
		Token:    resolvedToken,
		ClientID: config.ResolveClientID(clientID),
		Scopes:   config.ResolveScopes(),
		Identity: githubapi.IdentityProbe(),
		Notify: func(authz *auth.DeviceAuthorization) {
			showDeviceAuthorization(s, authz)
		},
	})
}

// workflowSession bundles what a workflow needs from authentication:
// the login for the audit trail and the API gateway.
type workflowSession struct {
	login  string
	client *githubapi.Client
}

// connectForWorkflow authenticates and builds the API gateway used by
// the workflows.
func connectForWorkflow(s *spinner.Spinner, config *configs.UserConfig) (*workflowSession, error) {
	session, err := acquireSession(context.Background(), s, config)
	if err != nil {
		Logger.Errorf("Authentication failed: %v", err)
		return nil, err
	}
	Logger.Infof("Authenticated as %s", session.Login)

	client, err := githubapi.NewClient(context.Background(), session.Token)
	if err != nil {
		return nil, err
	}
	return &workflowSession{login: session.Login, client: client}, nil
}

// showDeviceAuthorization pauses the spinner and walks the user through
// the browser sign-in: where to go and which code to enter.
func showDeviceAuthorization(s *spinner.Spinner, authz *auth.DeviceAuthorization) {
	s.Stop()

	fmt.Println()
	figure.NewColorFigure("Kowhai", "alligator2", "yellow", true).Print()
	fmt.Println()

	fmt.Printf("%s Sign in to GitHub to continue\n", color.CyanString("→"))
	fmt.Printf("%s Open %s and enter this code:\n\n", color.CyanString("→"), color.BlueString(authz.VerificationURI))
	fmt.Printf("        %s\n\n", color.YellowString(authz.UserCode))
	if authz.ExpiresIn > 0 {
		fmt.Printf("%s The code expires in %d minutes\n\n", color.CyanString("→"), authz.ExpiresIn/60)
	}

	s.Suffix = " Waiting for approval in the browser..."
	s.Restart()
}

// saveTargetDefaults persists owner/repo as the configured default
// target for later runs.
func saveTargetDefaults(config *configs.UserConfig, targetOwner, targetRepo string) error {
	config.Defaults.Owner = targetOwner
	config.Defaults.Repo = targetRepo
	return configs.SaveUserConfig(config)
}

// formatAuthenticationError maps authentication failures onto the
// message the user should see. Messages name the failure kind; they
// never contain token material.
func formatAuthenticationError(err error) string {
	var providerErr *auth.ProviderError
	switch {
	case errors.Is(err, kerrors.ErrAuthorizationDenied):
		return ui.Error.Sprint("✗") + " Sign-in was denied in the browser\n" +
			ui.Info.Sprint("→") + " Run the command again to retry"

	case errors.Is(err, kerrors.ErrDeviceCodeExpired):
		return ui.Error.Sprint("✗") + " The sign-in code expired before it was entered\n" +
			ui.Info.Sprint("→") + " Run the command again to get a fresh code"

	case errors.Is(err, kerrors.ErrBadCredentials):
		return ui.Error.Sprint("✗") + " GitHub rejected the provided token\n" +
			ui.Info.Sprint("→") + " Check " + ui.Code.Sprint("--token") + " / " + ui.Code.Sprint("GITHUB_TOKEN") + ", or drop both to sign in via the browser"

	case errors.Is(err, kerrors.ErrTransport):
		return ui.Error.Sprint("✗") + " Could not reach GitHub\n" +
			ui.Info.Sprint("→") + " Check your network connection and try again"

	case errors.As(err, &providerErr):
		return ui.Error.Sprint("✗") + " GitHub refused the sign-in: " + ui.Highlight.Sprint(providerErr.Code) + "\n" +
			ui.Info.Sprint("→") + " Check the OAuth app client ID (" + ui.Code.Sprint("--client-id") + ")"

	default:
		return ui.Error.Sprint("✗") + " Authentication failed\n" +
			ui.Error.Sprint("Error: ") + err.Error()
	}
}

// formatAPIError maps GitHub API failures onto the message the user
// should see.
func formatAPIError(err error) string {
	switch {
	case errors.Is(err, kerrors.ErrBadCredentials):
		return ui.Error.Sprint("✗") + " GitHub rejected the credentials mid-operation\n" +
			ui.Info.Sprint("→") + " The token may have been revoked; run the command again to re-authenticate"

	default:
		return ui.Error.Sprint("✗") + " GitHub API request failed\n" +
			ui.Error.Sprint("Error: ") + err.Error()
	}
}

// missingTargetMessage explains how to specify the repository when
// neither flags nor configured defaults name one.
func missingTargetMessage() string {
	return ui.Error.Sprint("✗") + " No target repository specified\n" +
		ui.Info.Sprint("→") + " Pass " + ui.Code.Sprint("--owner") + " and " + ui.Code.Sprint("--repo") + "\n" +
		ui.Info.Sprint("→") + " Or save a default: " + ui.Code.Sprint("kowhai secrets sync --owner OWNER --repo REPO --save-defaults") + "\n" +
		ui.Info.Sprint("→") + " Not sure of the name? Run " + ui.Code.Sprint("kowhai secrets repos")
}
