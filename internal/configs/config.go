package configs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultClientID identifies the published Kōwhai OAuth app on GitHub.
// It is a public identifier, not a credential. Users running their own
// OAuth app override it via --client-id, KOWHAI_CLIENT_ID, or the config
// file; resolution happens in ResolveClientID and the result is passed
// explicitly into the auth layer.
const DefaultClientID = "Ov23liWmd4kKqlA2nUxe"

// DefaultScopes is the OAuth scope set requested when none is configured.
// The Actions secrets API requires repo scope for private repositories.
var DefaultScopes = []string{"repo"}

// clientIDEnvVar overrides the configured client ID when set.
const clientIDEnvVar = "KOWHAI_CLIENT_ID"

type UserConfig struct {
	GitHub   GitHubConfig   `toml:"github"`
	Defaults DefaultsConfig `toml:"defaults"`
}

// GitHubConfig holds OAuth app settings. Access tokens are deliberately
// not part of the config: Kōwhai never writes credentials to disk.
type GitHubConfig struct {
	ClientID string   `toml:"client_id,omitempty"`
	Scopes   []string `toml:"scopes,omitempty"`
}

// DefaultsConfig holds the fallback upload target used when --owner and
// --repo are not given on the command line.
type DefaultsConfig struct {
	Owner string `toml:"owner,omitempty"`
	Repo  string `toml:"repo,omitempty"`
}

// LoadUserConfig loads the user configuration from the config file.
// A missing file is not an error; defaults apply.
func LoadUserConfig() (*UserConfig, error) {
	configPath := filepath.Join(UserKowhaiSettings.UserConfigsPath, "config.toml")

	config := &UserConfig{}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	if _, err := toml.DecodeFile(configPath, config); err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}

	return config, nil
}

// SaveUserConfig saves the user configuration to the config file.
func SaveUserConfig(config *UserConfig) error {
	configPath := filepath.Join(UserKowhaiSettings.UserConfigsPath, "config.toml")

	if err := os.MkdirAll(filepath.Dir(configPath), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("failed to save user config: %w", err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(config); err != nil {
		return fmt.Errorf("failed to save user config: %w", err)
	}

	return nil
}

// ResolveClientID picks the OAuth client ID to use, in precedence order:
// command-line flag, KOWHAI_CLIENT_ID environment variable, config file,
// built-in default.
func (c *UserConfig) ResolveClientID(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv(clientIDEnvVar); env != "" {
		return env
	}
	if c.GitHub.ClientID != "" {
		return c.GitHub.ClientID
	}
	return DefaultClientID
}

// ResolveScopes returns the configured OAuth scopes, or the defaults.
func (c *UserConfig) ResolveScopes() []string {
	if len(c.GitHub.Scopes) > 0 {
		return c.GitHub.Scopes
	}
	return DefaultScopes
}

// ResolveTarget picks the owner/repo pair to operate on, preferring
// command-line flags over configured defaults. Either value may come
// back empty; callers decide whether that is an error.
func (c *UserConfig) ResolveTarget(flagOwner, flagRepo string) (owner, repo string) {
	owner = flagOwner
	if owner == "" {
		owner = c.Defaults.Owner
	}
	repo = flagRepo
	if repo == "" {
		repo = c.Defaults.Repo
	}
	return owner, repo
}
