package secrets

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"sync"

	"golang.org/x/crypto/nacl/box"
)

var (
	readyOnce sync.Once
	readyErr  error
)

// EnsureReady runs a one-time self-test of the sealed box primitive. It
// is safe to call from any number of goroutines: all callers wait for the
// first run to finish and share its result. Subsequent calls are cheap.
func EnsureReady() error {
	readyOnce.Do(func() {
		readyErr = selfTest()
	})
	return readyErr
}

// selfTest seals and opens a probe message against a throwaway keypair,
// proving the primitive and the system RNG both work before any real
// secret is sealed.
func selfTest() error {
	publicKey, privateKey, err := box.GenerateKey(rand.Reader)
	if err != nil {
		return fmt.Errorf("failed to generate self-test keypair: %w", err)
	}

	probe := []byte("kowhai self-test")
	sealed, err := box.SealAnonymous(nil, probe, publicKey, rand.Reader)
	if err != nil {
		return fmt.Errorf("failed to seal self-test message: %w", err)
	}

	opened, ok := box.OpenAnonymous(nil, sealed, publicKey, privateKey)
	if !ok || string(opened) != string(probe) {
		return fmt.Errorf("sealed box self-test produced an unopenable box")
	}

	return nil
}

// DecodePublicKey decodes a base64 repository public key as returned by
// the GitHub API and checks it is a 32-byte Curve25519 key.
func DecodePublicKey(encoded string) (*[32]byte, error) {
	keyBytes, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("public key is not valid base64: %w", err)
	}
	if len(keyBytes) != 32 {
		return nil, fmt.Errorf("expected a 32-byte public key, got %d bytes", len(keyBytes))
	}

	var key [32]byte
	copy(key[:], keyBytes)
	return &key, nil
}

// SealSecret encrypts a secret value against a repository public key and
// returns the ciphertext as base64, ready for the GitHub API. Each call
// uses a fresh ephemeral keypair, so sealing the same value twice yields
// different ciphertexts.
func SealSecret(publicKey *[32]byte, value string) (string, error) {
	if err := EnsureReady(); err != nil {
		return "", err
	}

	sealed, err := box.SealAnonymous(nil, []byte(value), publicKey, rand.Reader)
	if err != nil {
		return "", fmt.Errorf("failed to seal secret: %w", err)
	}

	return base64.StdEncoding.EncodeToString(sealed), nil
}
