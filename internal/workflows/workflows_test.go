package workflows

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"golang.org/x/crypto/nacl/box"

	"github.com/PolarWolf314/kowhai/internal/audit"
	"github.com/PolarWolf314/kowhai/internal/configs"
	kerrors "github.com/PolarWolf314/kowhai/internal/errors"
	"github.com/PolarWolf314/kowhai/internal/githubapi"
)

type putCall struct {
	owner, repo, name, ciphertext, keyID string
}

// fakeGateway records API calls instead of talking to GitHub.
type fakeGateway struct {
	publicKey *githubapi.PublicKey
	keyErr    error
	keyCalls  int

	putCalls []putCall
	putErr   map[string]error // per secret name

	secrets []githubapi.SecretInfo
	listErr error

	deleted   []string
	deleteErr error
}

func (f *fakeGateway) RepoPublicKey(ctx context.Context, owner, repo string) (*githubapi.PublicKey, error) {
	f.keyCalls++
	if f.keyErr != nil {
		return nil, f.keyErr
	}
	return f.publicKey, nil
}

func (f *fakeGateway) PutSecret(ctx context.Context, owner, repo, name, ciphertext, keyID string) error {
	if err := f.putErr[name]; err != nil {
		return err
	}
	f.putCalls = append(f.putCalls, putCall{owner, repo, name, ciphertext, keyID})
	return nil
}

func (f *fakeGateway) ListSecrets(ctx context.Context, owner, repo string) ([]githubapi.SecretInfo, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.secrets, nil
}

func (f *fakeGateway) DeleteSecret(ctx context.Context, owner, repo, name string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, name)
	return nil
}

// newKeypair generates a sealed-box keypair and returns the gateway
// public key plus the private half for opening uploads in assertions.
func newKeypair(t *testing.T) (*githubapi.PublicKey, *[32]byte, *[32]byte) {
	t.Helper()
	publicKey, privateKey, err := box.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("Failed to generate keypair: %v", err)
	}
	gwKey := &githubapi.PublicKey{
		KeyID: "568250167242549743",
		Key:   base64.StdEncoding.EncodeToString(publicKey[:]),
	}
	return gwKey, publicKey, privateKey
}

func withTempDataDir(t *testing.T) {
	t.Helper()
	tempDir := t.TempDir()
	oldDataPath := configs.UserKowhaiSettings.UserDataPath
	configs.UserKowhaiSettings.UserDataPath = tempDir
	t.Cleanup(func() {
		configs.UserKowhaiSettings.UserDataPath = oldDataPath
	})
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
}

// openUpload decrypts a recorded upload, proving the gateway only ever
// saw sealed ciphertext.
func openUpload(t *testing.T, call putCall, publicKey, privateKey *[32]byte) string {
	t.Helper()
	ciphertext, err := base64.StdEncoding.DecodeString(call.ciphertext)
	if err != nil {
		t.Fatalf("Uploaded ciphertext is not valid base64: %v", err)
	}
	opened, ok := box.OpenAnonymous(nil, ciphertext, publicKey, privateKey)
	if !ok {
		t.Fatal("Uploaded ciphertext cannot be opened with the repository key")
	}
	return string(opened)
}

func TestSet_UploadsSealedValue(t *testing.T) {
	withTempDataDir(t)
	gwKey, publicKey, privateKey := newKeypair(t)
	gateway := &fakeGateway{publicKey: gwKey}

	result, err := Set(context.Background(), SetOptions{
		Gateway: gateway,
		Login:   "octocat",
		Owner:   "octocat",
		Repo:    "widgets",
		Name:    "DATABASE_URL",
		Value:   "postgres://prod",
	})
	if err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if result.Repo != "octocat/widgets" || result.Name != "DATABASE_URL" {
		t.Errorf("Unexpected result: %+v", result)
	}

	if len(gateway.putCalls) != 1 {
		t.Fatalf("Expected 1 upload, got %d", len(gateway.putCalls))
	}
	call := gateway.putCalls[0]
	if call.keyID != "568250167242549743" {
		t.Errorf("Expected key ID to pass through, got %q", call.keyID)
	}
	if call.ciphertext == "postgres://prod" {
		t.Fatal("Plaintext value was uploaded")
	}
	if got := openUpload(t, call, publicKey, privateKey); got != "postgres://prod" {
		t.Errorf("Sealed value round-trip: want 'postgres://prod', got %q", got)
	}

	entries, err := audit.ReadEntries()
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Operation != "set" || entries[0].Login != "octocat" {
		t.Errorf("Expected one set audit entry, got %v", entries)
	}
}

func TestSet_InvalidName(t *testing.T) {
	gateway := &fakeGateway{}

	_, err := Set(context.Background(), SetOptions{
		Gateway: gateway,
		Owner:   "octocat",
		Repo:    "widgets",
		Name:    "GITHUB_TOKEN",
		Value:   "anything",
	})
	if !errors.Is(err, kerrors.ErrInvalidSecretName) {
		t.Fatalf("Expected ErrInvalidSecretName, got %v", err)
	}
	if len(gateway.putCalls) != 0 {
		t.Error("Expected no uploads for invalid name")
	}
}

func TestSet_RepoNotSpecified(t *testing.T) {
	_, err := Set(context.Background(), SetOptions{
		Gateway: &fakeGateway{},
		Name:    "API_KEY",
		Value:   "anything",
	})
	if !errors.Is(err, kerrors.ErrRepoNotSpecified) {
		t.Fatalf("Expected ErrRepoNotSpecified, got %v", err)
	}
}

func TestSet_NoValue(t *testing.T) {
	gateway := &fakeGateway{}

	_, err := Set(context.Background(), SetOptions{
		Gateway: gateway,
		Owner:   "octocat",
		Repo:    "widgets",
		Name:    "API_KEY",
	})
	if !errors.Is(err, kerrors.ErrNoSecretValue) {
		t.Fatalf("Expected ErrNoSecretValue, got %v", err)
	}
	if gateway.keyCalls != 0 {
		t.Error("Expected no key fetch without a value")
	}
}

func TestSet_DryRunEncryptsButNeverUploads(t *testing.T) {
	gwKey, _, _ := newKeypair(t)
	gateway := &fakeGateway{publicKey: gwKey}

	result, err := Set(context.Background(), SetOptions{
		Gateway: gateway,
		Owner:   "octocat",
		Repo:    "widgets",
		Name:    "API_KEY",
		Value:   "anything",
		DryRun:  true,
	})
	if err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if !result.DryRun {
		t.Error("Expected DryRun result")
	}
	// Dry-run rehearses the full pipeline: the key is fetched and the
	// value sealed, but nothing is uploaded.
	if gateway.keyCalls != 1 {
		t.Errorf("Expected 1 key fetch in dry-run, got %d", gateway.keyCalls)
	}
	if len(gateway.putCalls) != 0 {
		t.Error("Expected no uploads in dry-run")
	}
}

func TestSet_BadPublicKeyAbortsUpload(t *testing.T) {
	gateway := &fakeGateway{
		publicKey: &githubapi.PublicKey{KeyID: "1", Key: "not base64!!!"},
	}

	_, err := Set(context.Background(), SetOptions{
		Gateway: gateway,
		Owner:   "octocat",
		Repo:    "widgets",
		Name:    "API_KEY",
		Value:   "sensitive",
	})
	if !errors.Is(err, kerrors.ErrKeyDecode) {
		t.Fatalf("Expected ErrKeyDecode, got %v", err)
	}
	if len(gateway.putCalls) != 0 {
		t.Error("Expected no uploads after key decode failure")
	}
}

func TestSync_UploadsValidEntriesInOrder(t *testing.T) {
	withTempDataDir(t)
	tmpDir := t.TempDir()
	writeTestFile(t, filepath.Join(tmpDir, ".env"), `FIRST=1
GITHUB_SKIPPED=nope
SECOND=2
1ALSO_SKIPPED=nope
THIRD=3
`)

	gwKey, publicKey, privateKey := newKeypair(t)
	gateway := &fakeGateway{publicKey: gwKey}

	result, err := Sync(context.Background(), SyncOptions{
		Gateway: gateway,
		Login:   "octocat",
		Owner:   "octocat",
		Repo:    "widgets",
		Root:    tmpDir,
	})
	if err != nil {
		t.Fatalf("Sync failed: %v", err)
	}

	wantUploaded := []string{"FIRST", "SECOND", "THIRD"}
	if !reflect.DeepEqual(result.Uploaded, wantUploaded) {
		t.Errorf("Uploaded: want %v, got %v", wantUploaded, result.Uploaded)
	}
	wantInvalid := []string{"GITHUB_SKIPPED", "1ALSO_SKIPPED"}
	if !reflect.DeepEqual(result.Invalid, wantInvalid) {
		t.Errorf("Invalid: want %v, got %v", wantInvalid, result.Invalid)
	}

	if len(gateway.putCalls) != 3 {
		t.Fatalf("Expected 3 uploads, got %d", len(gateway.putCalls))
	}
	if got := openUpload(t, gateway.putCalls[1], publicKey, privateKey); got != "2" {
		t.Errorf("Second upload round-trip: want '2', got %q", got)
	}

	entries, err := audit.ReadEntries()
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}
	if len(entries) != 1 || entries[0].SkippedCount != 2 {
		t.Errorf("Expected sync audit entry with 2 skipped, got %v", entries)
	}
}

func TestSync_DryRunUploadsNothing(t *testing.T) {
	tmpDir := t.TempDir()
	writeTestFile(t, filepath.Join(tmpDir, ".env"), "API_KEY=abc\n")

	gateway := &fakeGateway{}

	result, err := Sync(context.Background(), SyncOptions{
		Gateway: gateway,
		Owner:   "octocat",
		Repo:    "widgets",
		Root:    tmpDir,
		DryRun:  true,
	})
	if err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	if !result.DryRun {
		t.Error("Expected DryRun result")
	}
	if !reflect.DeepEqual(result.Uploaded, []string{"API_KEY"}) {
		t.Errorf("Expected would-upload list [API_KEY], got %v", result.Uploaded)
	}
	// Sync dry-run is a local plan preview; it makes no API calls at all.
	if gateway.keyCalls != 0 || len(gateway.putCalls) != 0 {
		t.Error("Expected no API calls in sync dry-run")
	}
}

func TestSync_UploadFailureAborts(t *testing.T) {
	withTempDataDir(t)
	tmpDir := t.TempDir()
	writeTestFile(t, filepath.Join(tmpDir, ".env"), `FIRST=1
SECOND=2
THIRD=3
`)

	gwKey, _, _ := newKeypair(t)
	gateway := &fakeGateway{
		publicKey: gwKey,
		putErr: map[string]error{
			"SECOND": fmt.Errorf("%w: boom", kerrors.ErrAPIRequestFailed),
		},
	}

	_, err := Sync(context.Background(), SyncOptions{
		Gateway: gateway,
		Owner:   "octocat",
		Repo:    "widgets",
		Root:    tmpDir,
	})
	if !errors.Is(err, kerrors.ErrAPIRequestFailed) {
		t.Fatalf("Expected ErrAPIRequestFailed, got %v", err)
	}
	// FIRST uploaded, SECOND failed, THIRD never attempted.
	if len(gateway.putCalls) != 1 || gateway.putCalls[0].name != "FIRST" {
		t.Errorf("Expected sync to stop at the failed upload, got %v", gateway.putCalls)
	}
}

func TestSync_NoFiles(t *testing.T) {
	gateway := &fakeGateway{}

	_, err := Sync(context.Background(), SyncOptions{
		Gateway: gateway,
		Owner:   "octocat",
		Repo:    "widgets",
		Root:    t.TempDir(),
	})
	if !errors.Is(err, kerrors.ErrNoFilesFound) {
		t.Fatalf("Expected ErrNoFilesFound, got %v", err)
	}
}

func TestSync_NoSecrets(t *testing.T) {
	tmpDir := t.TempDir()
	writeTestFile(t, filepath.Join(tmpDir, ".env"), "# only comments\n")

	_, err := Sync(context.Background(), SyncOptions{
		Gateway: &fakeGateway{},
		Owner:   "octocat",
		Repo:    "widgets",
		Root:    tmpDir,
	})
	if !errors.Is(err, kerrors.ErrNoSecretsFound) {
		t.Fatalf("Expected ErrNoSecretsFound, got %v", err)
	}
}

func TestList_ReturnsSecrets(t *testing.T) {
	gateway := &fakeGateway{
		secrets: []githubapi.SecretInfo{
			{Name: "API_KEY"},
			{Name: "DATABASE_URL"},
		},
	}

	result, err := List(context.Background(), ListOptions{
		Gateway: gateway,
		Owner:   "octocat",
		Repo:    "widgets",
	})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(result.Secrets) != 2 {
		t.Errorf("Expected 2 secrets, got %d", len(result.Secrets))
	}
}

func TestRemove_DeletesSecret(t *testing.T) {
	withTempDataDir(t)
	gateway := &fakeGateway{}

	result, err := Remove(context.Background(), RemoveOptions{
		Gateway: gateway,
		Login:   "octocat",
		Owner:   "octocat",
		Repo:    "widgets",
		Name:    "OLD_KEY",
	})
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if result.Name != "OLD_KEY" {
		t.Errorf("Unexpected result: %+v", result)
	}
	if !reflect.DeepEqual(gateway.deleted, []string{"OLD_KEY"}) {
		t.Errorf("Expected OLD_KEY deleted, got %v", gateway.deleted)
	}
}

func TestRemove_Missing(t *testing.T) {
	gateway := &fakeGateway{
		deleteErr: fmt.Errorf("%w: NEVER_EXISTED", kerrors.ErrSecretNotFound),
	}

	_, err := Remove(context.Background(), RemoveOptions{
		Gateway: gateway,
		Owner:   "octocat",
		Repo:    "widgets",
		Name:    "NEVER_EXISTED",
	})
	if !errors.Is(err, kerrors.ErrSecretNotFound) {
		t.Fatalf("Expected ErrSecretNotFound, got %v", err)
	}
}

func TestLog_MissingFile(t *testing.T) {
	withTempDataDir(t)

	_, err := Log(context.Background(), LogOptions{})
	if !errors.Is(err, kerrors.ErrNoFilesFound) {
		t.Fatalf("Expected ErrNoFilesFound, got %v", err)
	}
}

func TestLog_FiltersAndLimits(t *testing.T) {
	withTempDataDir(t)
	for _, op := range []string{"set", "sync", "remove", "set"} {
		entry := audit.ForOperation(op, "octocat")
		entry.Repo = "octocat/widgets"
		audit.Log(entry)
	}
	other := audit.ForOperation("set", "hubot")
	other.Repo = "hubot/scripts"
	audit.Log(other)

	result, err := Log(context.Background(), LogOptions{})
	if err != nil {
		t.Fatalf("Log failed: %v", err)
	}
	if result.TotalEntriesBeforeFilter != 5 {
		t.Errorf("Expected 5 total entries, got %d", result.TotalEntriesBeforeFilter)
	}

	result, err = Log(context.Background(), LogOptions{Operations: "set, remove"})
	if err != nil {
		t.Fatalf("Log failed: %v", err)
	}
	if len(result.Entries) != 4 {
		t.Errorf("Expected 4 set/remove entries, got %d", len(result.Entries))
	}

	result, err = Log(context.Background(), LogOptions{Login: "hubot"})
	if err != nil {
		t.Fatalf("Log failed: %v", err)
	}
	if len(result.Entries) != 1 || result.Entries[0].Repo != "hubot/scripts" {
		t.Errorf("Expected one hubot entry, got %v", result.Entries)
	}

	result, err = Log(context.Background(), LogOptions{Repo: "Octocat/Widgets"})
	if err != nil {
		t.Fatalf("Log failed: %v", err)
	}
	if len(result.Entries) != 4 {
		t.Errorf("Expected 4 entries for octocat/widgets, got %d", len(result.Entries))
	}

	result, err = Log(context.Background(), LogOptions{Limit: 2, Reverse: true})
	if err != nil {
		t.Fatalf("Log failed: %v", err)
	}
	if len(result.Entries) != 2 {
		t.Fatalf("Expected 2 limited entries, got %d", len(result.Entries))
	}
	if result.Entries[0].Login != "hubot" {
		t.Errorf("Expected most recent entry first when reversed, got %v", result.Entries[0])
	}
}

func TestLog_InvalidDate(t *testing.T) {
	withTempDataDir(t)
	audit.Log(audit.ForOperation("set", "octocat"))

	_, err := Log(context.Background(), LogOptions{Since: "01/02/2026"})
	if !errors.Is(err, kerrors.ErrInvalidDateFormat) {
		t.Fatalf("Expected ErrInvalidDateFormat, got %v", err)
	}
}

func TestFormatDetails(t *testing.T) {
	tests := []struct {
		name  string
		entry audit.Entry
		want  string
	}{
		{
			name:  "set",
			entry: audit.Entry{Operation: "set", Secrets: []string{"API_KEY"}},
			want:  "API_KEY",
		},
		{
			name: "sync with skipped",
			entry: audit.Entry{
				Operation:    "sync",
				Secrets:      []string{"A", "B"},
				FilesCount:   1,
				SkippedCount: 2,
			},
			want: "2 secrets from 1 files (2 skipped)",
		},
		{
			name:  "dry run marker",
			entry: audit.Entry{Operation: "sync", FilesCount: 1, DryRun: true},
			want:  "0 secrets from 1 files [dry-run]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDetails(tt.entry); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestStatus_CategorizesNames(t *testing.T) {
	tmpDir := t.TempDir()
	writeTestFile(t, filepath.Join(tmpDir, ".env"), `SHARED=1
LOCAL_ONLY=2
1INVALID=3
`)

	gateway := &fakeGateway{
		secrets: []githubapi.SecretInfo{
			{Name: "SHARED"},
			{Name: "REMOTE_ONLY"},
		},
	}

	result, err := Status(context.Background(), StatusOptions{
		Gateway: gateway,
		Owner:   "octocat",
		Repo:    "widgets",
		Root:    tmpDir,
	})
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}

	if !reflect.DeepEqual(result.InSync, []string{"SHARED"}) {
		t.Errorf("InSync: want [SHARED], got %v", result.InSync)
	}
	if !reflect.DeepEqual(result.LocalOnly, []string{"LOCAL_ONLY"}) {
		t.Errorf("LocalOnly: want [LOCAL_ONLY], got %v", result.LocalOnly)
	}
	if !reflect.DeepEqual(result.RemoteOnly, []string{"REMOTE_ONLY"}) {
		t.Errorf("RemoteOnly: want [REMOTE_ONLY], got %v", result.RemoteOnly)
	}
	if !reflect.DeepEqual(result.Invalid, []string{"1INVALID"}) {
		t.Errorf("Invalid: want [1INVALID], got %v", result.Invalid)
	}
}
