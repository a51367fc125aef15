// Package secrets provides the local half of secret handling for Kōwhai:
// parsing environment files, validating secret names, and sealing values
// for the GitHub Actions secrets API.
//
// # Encryption Architecture
//
// GitHub accepts Actions secrets only as NaCl sealed boxes encrypted
// against a per-repository Curve25519 public key. This package fetches
// nothing itself; callers obtain the repository key from the API, then:
//
//  1. DecodePublicKey checks the base64 key and its 32-byte length
//  2. SealSecret seals the value with an ephemeral keypair and returns
//     base64 ciphertext ready for upload
//
// Sealing is non-deterministic: the same value sealed twice yields
// different ciphertexts. Plaintext values never leave the process; only
// the sealed ciphertext and the key ID are sent to GitHub.
//
// EnsureReady runs a one-time seal/open self-test before the first real
// value is sealed. It is idempotent and safe to call concurrently.
//
// # Environment Files
//
// ParseEnvFile reads dotenv-style files (KEY=VALUE lines, # comments,
// export prefixes, quoted values) and preserves file order, which keeps
// reports about rejected names stable. ResolveEnvFiles expands the
// paths, directories, and globs given on the command line, skipping
// .git directories.
//
// # Name Validation
//
// GitHub rejects secret names that do not match [A-Za-z_][A-Za-z0-9_]*
// or that use the reserved GITHUB_ prefix. IsValidName and ValidateName
// apply those rules locally; Partition splits parsed entries into
// uploadable entries and rejected names without reordering either side.
package secrets
