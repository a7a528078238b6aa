package shared

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func resetDotEnv(t *testing.T) {
	t.Helper()
	dotenvLoadOnce = sync.Once{}
	dotenvLoadOnce.Do(func() {})
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestLoadSettingsDefaults(t *testing.T) {
	resetDotEnv(t)
	chdir(t, t.TempDir())

	settings, err := LoadSettings("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if settings.Transport != TransportPlain || settings.Secure() {
		t.Fatalf("unexpected transport: %q", settings.Transport)
	}
	if settings.Size != 80 {
		t.Fatalf("expected size 80, got %d", settings.Size)
	}
	if !settings.UseExtension {
		t.Fatal("expected use_extension to default to true")
	}
	if settings.ImageSet != "mm" || settings.MaxRating != "g" {
		t.Fatalf("unexpected image set/rating: %q/%q", settings.ImageSet, settings.MaxRating)
	}
	if settings.Timeout != DefaultTimeout {
		t.Fatalf("expected default timeout, got %s", settings.Timeout)
	}
	if settings.PlainBaseURL != DefaultPlainBaseURL || settings.SecureBaseURL != DefaultSecureBaseURL {
		t.Fatalf("unexpected base URLs: %q %q", settings.PlainBaseURL, settings.SecureBaseURL)
	}
	if settings.Params == nil {
		t.Fatal("expected params map to be initialized")
	}
}

func TestLoadSettingsFromFile(t *testing.T) {
	resetDotEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	content := []byte(`transport: secure
size: 128
use_extension: false
image_set: identicon
max_rating: pg
timeout: 3s
params:
  foo: bar
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("failed to write settings file: %v", err)
	}

	settings, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !settings.Secure() {
		t.Fatalf("expected secure transport, got %q", settings.Transport)
	}
	if settings.Size != 128 || settings.UseExtension {
		t.Fatalf("unexpected size/extension: %d/%v", settings.Size, settings.UseExtension)
	}
	if settings.ImageSet != "identicon" || settings.MaxRating != "pg" {
		t.Fatalf("unexpected image set/rating: %q/%q", settings.ImageSet, settings.MaxRating)
	}
	if settings.Timeout != 3*time.Second {
		t.Fatalf("expected 3s timeout, got %s", settings.Timeout)
	}
	if settings.Params["foo"] != "bar" {
		t.Fatalf("expected param foo=bar, got %v", settings.Params)
	}
}

func TestLoadSettingsEnvOverride(t *testing.T) {
	resetDotEnv(t)
	chdir(t, t.TempDir())
	t.Setenv("GRAVATAR_MAX_RATING", "r")
	t.Setenv("GRAVATAR_SIZE", "200")
	t.Setenv("GRAVATAR_TRANSPORT", "https")

	settings, err := LoadSettings("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if settings.MaxRating != "r" {
		t.Fatalf("expected rating r, got %q", settings.MaxRating)
	}
	if settings.Size != 200 {
		t.Fatalf("expected size 200, got %d", settings.Size)
	}
	if !settings.Secure() {
		t.Fatal("expected secure transport from env")
	}
}

func TestLoadSettingsInvalidTransport(t *testing.T) {
	resetDotEnv(t)
	chdir(t, t.TempDir())
	t.Setenv("GRAVATAR_TRANSPORT", "carrier-pigeon")

	if _, err := LoadSettings(""); err == nil {
		t.Fatal("expected error for invalid transport")
	}
}

func TestLoadSettingsMissingFile(t *testing.T) {
	resetDotEnv(t)
	if _, err := LoadSettings(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing explicit settings file")
	}
}

func TestLoadDotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := []byte(`# comment
export GRAVATAR_IMAGE_SET="retro"
GRAVATAR_SIZE='64'
OTHER_VALUE=ignored
GRAVATAR_EXISTING=fromfile
not a pair
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}
	t.Setenv("GRAVATAR_IMAGE_SET", "")
	os.Unsetenv("GRAVATAR_IMAGE_SET")
	t.Setenv("GRAVATAR_SIZE", "")
	os.Unsetenv("GRAVATAR_SIZE")
	t.Setenv("OTHER_VALUE", "")
	os.Unsetenv("OTHER_VALUE")
	t.Setenv("GRAVATAR_EXISTING", "fromenv")

	if !loadDotEnvFile(path) {
		t.Fatal("expected .env entries to be loaded")
	}
	if os.Getenv("GRAVATAR_IMAGE_SET") != "retro" {
		t.Fatalf("unexpected GRAVATAR_IMAGE_SET: %q", os.Getenv("GRAVATAR_IMAGE_SET"))
	}
	if os.Getenv("GRAVATAR_SIZE") != "64" {
		t.Fatalf("unexpected GRAVATAR_SIZE: %q", os.Getenv("GRAVATAR_SIZE"))
	}
	if _, set := os.LookupEnv("OTHER_VALUE"); set {
		t.Fatal("expected non GRAVATAR_ keys to be skipped")
	}
	if os.Getenv("GRAVATAR_EXISTING") != "fromenv" {
		t.Fatal("expected existing env values to win over .env")
	}
}

func TestIsValidEnvKey(t *testing.T) {
	if !isValidEnvKey("GRAVATAR_SIZE") {
		t.Fatal("expected GRAVATAR_SIZE to be valid")
	}
	if isValidEnvKey("1BAD") || isValidEnvKey("") || isValidEnvKey("BAD-KEY") {
		t.Fatal("expected invalid keys to be rejected")
	}
}
