// Package configs manages user configuration for Kōwhai.
//
// Configuration is stored in TOML format at the platform config directory
// (e.g. ~/.config/kowhai/config.toml on Linux).
//
// # User Configuration
//
// The user config stores:
//   - OAuth app settings (client ID, requested scopes)
//   - Default upload target (owner, repo) used when no flags are given
//
// Access tokens are never written to the config file, or anywhere else on
// disk. Every run authenticates fresh from the environment or the device
// flow.
//
// # Resolution Order
//
// Values given on the command line always win. The client ID resolves as:
// --client-id flag, then KOWHAI_CLIENT_ID, then the config file, then the
// built-in default app. The upload target resolves as --owner/--repo flags,
// then the [defaults] section.
//
// # Settings
//
// Global settings are initialized at startup:
//   - UserKowhaiSettings: paths to the user config and data directories
package configs
