package cmd

import (
	logger "github.com/PolarWolf314/kowhai/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose  bool
	debug    bool
	token    string
	owner    string
	repo     string
	clientID string
	Logger   logger.Logger

	SecretsCmd = &cobra.Command{
		Use:   "secrets",
		Short: "Manage GitHub Actions repository secrets",
		Long:  `Uploads, lists, and removes GitHub Actions repository secrets. Values are sealed against the repository public key before upload; plaintext never leaves this machine.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing secrets command with verbose=%t, debug=%t", verbose, debug)
		},
	}
)

func init() {
	SecretsCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	SecretsCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	SecretsCmd.PersistentFlags().StringVar(&token, "token", "", "GitHub access token (default: GITHUB_TOKEN env, else sign in via browser)")
	SecretsCmd.PersistentFlags().StringVarP(&owner, "owner", "o", "", "repository owner (default: configured owner)")
	SecretsCmd.PersistentFlags().StringVarP(&repo, "repo", "r", "", "repository name (default: configured repository)")
	SecretsCmd.PersistentFlags().StringVar(&clientID, "client-id", "", "OAuth app client ID for browser sign-in")

	SecretsCmd.AddCommand(setCmd)
	SecretsCmd.AddCommand(syncCmd)
	SecretsCmd.AddCommand(listCmd)
	SecretsCmd.AddCommand(removeCmd)
	SecretsCmd.AddCommand(statusCmd)
	SecretsCmd.AddCommand(reposCmd)
}

// Helper functions for testing

// GetSecretsCmd returns the SecretsCmd for testing.
func GetSecretsCmd() *cobra.Command {
	return SecretsCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	token = ""
	owner = ""
	repo = ""
	clientID = ""
	resetSetCommandState()
	resetSyncCommandState()
	resetReposCommandState()
	resetLogCommandState()
	resetCobraFlagState()
}

// resetCobraFlagState clears the changed markers on every secrets flag
// so repeated executions in tests parse like fresh invocations.
func resetCobraFlagState() {
	SecretsCmd.PersistentFlags().VisitAll(func(flag *pflag.Flag) {
		flag.Changed = false
	})
	for _, sub := range SecretsCmd.Commands() {
		sub.Flags().VisitAll(func(flag *pflag.Flag) {
			flag.Changed = false
		})
	}
}

// SetVerbose sets the verbose flag for testing.
func SetVerbose(v bool) {
	verbose = v
}

// SetDebug sets the debug flag for testing.
func SetDebug(d bool) {
	debug = d
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}
