// Package logger provides leveled logging for Kōwhai CLI commands.
//
// The logger supports multiple verbosity levels controlled by command-line
// flags. Output is formatted with semantic color prefixes.
//
// # Verbosity Levels
//
// Logging behavior is controlled by two flags:
//
//   - --verbose: Shows info and warning messages
//   - --debug: Shows all messages including debug details
//
// Without flags, only critical warnings and errors are shown.
//
// # Log Methods
//
//	Logger.Infof()           // Shown with --verbose or --debug
//	Logger.Debugf()          // Shown only with --debug
//	Logger.Warnf()           // Shown with --verbose or --debug
//	Logger.WarnfAlways()     // Always shown (critical warnings)
//	Logger.Errorf()          // Always shown
//	Logger.ErrorfAndReturn() // Logs and returns the error
//
// # Usage
//
// Commands create a logger in their PersistentPreRun from the flag values
// and pass it down:
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Uploading %d secrets", count)
//
// Access tokens and secret values must never be passed to any log method.
package logger
