package shared

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

const (
	EnvPrefix      = "GRAVATAR"
	DefaultTimeout = 10 * time.Second
)

// Settings is the file/env representation of a Gravatar client setup.
// Param keys are lower-cased by viper.
type Settings struct {
	Transport     string            `mapstructure:"transport"`
	Size          int               `mapstructure:"size"`
	UseExtension  bool              `mapstructure:"use_extension"`
	ImageSet      string            `mapstructure:"image_set"`
	MaxRating     string            `mapstructure:"max_rating"`
	Params        map[string]string `mapstructure:"params"`
	PlainBaseURL  string            `mapstructure:"plain_base_url"`
	SecureBaseURL string            `mapstructure:"secure_base_url"`
	Timeout       time.Duration     `mapstructure:"timeout"`
	UserAgent     string            `mapstructure:"user_agent"`
	RateLimit     float64           `mapstructure:"rate_limit"`
	RateBurst     int               `mapstructure:"rate_burst"`
	LogLevel      string            `mapstructure:"log_level"`
}

// Secure reports whether the settings select the TLS host.
func (s Settings) Secure() bool {
	return s.Transport == TransportSecure
}

var dotenvLoadOnce sync.Once

// LoadSettings reads settings from configPath (when non-empty), a
// gravatar.yaml in the working directory or ./config, GRAVATAR_* environment
// variables and the nearest .env file, in increasing order of precedence.
func LoadSettings(configPath string) (Settings, error) {
	loadDotEnvIfPresent()

	v := newViper()
	trimmedPath := strings.TrimSpace(configPath)
	if trimmedPath != "" {
		v.SetConfigFile(trimmedPath)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("failed to read settings file %s: %w", trimmedPath, err)
		}
	} else {
		v.SetConfigName("gravatar")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("config")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Settings{}, fmt.Errorf("failed to read settings file: %w", err)
			}
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return Settings{}, fmt.Errorf("failed to decode settings: %w", err)
	}

	transport, err := NormalizeTransport(settings.Transport)
	if err != nil {
		return Settings{}, err
	}
	settings.Transport = transport
	if settings.Timeout <= 0 {
		settings.Timeout = DefaultTimeout
	}
	if settings.Params == nil {
		settings.Params = map[string]string{}
	}

	return settings, nil
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("transport", TransportPlain)
	v.SetDefault("size", 80)
	v.SetDefault("use_extension", true)
	v.SetDefault("image_set", "mm")
	v.SetDefault("max_rating", "g")
	v.SetDefault("params", map[string]string{})
	v.SetDefault("plain_base_url", DefaultPlainBaseURL)
	v.SetDefault("secure_base_url", DefaultSecureBaseURL)
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("user_agent", "")
	v.SetDefault("rate_limit", 0)
	v.SetDefault("rate_burst", 1)
	v.SetDefault("log_level", "info")

	// GRAVATAR_MAX_RATING overrides max_rating.
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

func loadDotEnvIfPresent() {
	dotenvLoadOnce.Do(func() {
		startPaths := make([]string, 0, 2)

		if cwd, err := os.Getwd(); err == nil {
			startPaths = append(startPaths, cwd)
		}
		if _, currentFile, _, ok := runtime.Caller(0); ok {
			startPaths = append(startPaths, filepath.Dir(currentFile))
		}

		seenCandidates := make(map[string]struct{})
		for _, start := range startPaths {
			current := start
			for {
				candidate := filepath.Join(current, ".env")
				if _, exists := seenCandidates[candidate]; !exists {
					seenCandidates[candidate] = struct{}{}
					if _, statErr := os.Stat(candidate); statErr == nil {
						loadDotEnvFile(candidate)
						return
					}
				}

				parent := filepath.Dir(current)
				if parent == current {
					break
				}
				current = parent
			}
		}
	})
}

// loadDotEnvFile exports GRAVATAR_* entries that are not already set.
func loadDotEnvFile(path string) bool {
	file, err := os.Open(path)
	if err != nil {
		return false
	}
	defer file.Close()

	loadedAny := false
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))

		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		if !strings.HasPrefix(key, EnvPrefix+"_") || !isValidEnvKey(key) {
			continue
		}
		if _, alreadySet := os.LookupEnv(key); alreadySet {
			continue
		}

		if setErr := os.Setenv(key, unquote(strings.TrimSpace(value))); setErr == nil {
			loadedAny = true
		}
	}

	return loadedAny
}

func unquote(value string) string {
	if len(value) < 2 {
		return value
	}
	first := value[0]
	last := value[len(value)-1]
	if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
		return value[1 : len(value)-1]
	}
	return value
}

func isValidEnvKey(key string) bool {
	if key == "" {
		return false
	}
	for index, character := range key {
		if (character >= 'A' && character <= 'Z') ||
			(character >= 'a' && character <= 'z') ||
			(index > 0 && character >= '0' && character <= '9') ||
			character == '_' {
			continue
		}
		return false
	}
	return true
}
