package configs

import (
	"log"
	"os"
	"path/filepath"
)

type UserSettings struct {
	UserConfigsPath string
	UserDataPath    string
}

// UserKowhaiSettings holds the per-user paths Kōwhai reads and writes.
// Tests override this to point at temporary directories.
var UserKowhaiSettings *UserSettings

func init() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("error getting home directory: %s", err)
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Fatalf("error getting config directory: %s", err)
	}

	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	// Nothing here depends on the working directory, so it is ok to init here.
	// No credentials ever live under either path.
	UserKowhaiSettings = &UserSettings{
		UserConfigsPath: filepath.Join(configDir, "kowhai"),
		UserDataPath:    filepath.Join(dataDir, "kowhai"),
	}
}
