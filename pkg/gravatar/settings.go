package gravatar

import (
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/hashgraph-online/gravatar-sdk-go/pkg/shared"
)

// OptionsFromSettings validates settings into Options. Any rejected value is
// an error rather than a silent fallback.
func OptionsFromSettings(settings shared.Settings) (Options, error) {
	builder := NewBuilder().
		SetSecure(settings.Secure()).
		SetSize(settings.Size).
		SetUseExtension(settings.UseExtension).
		SetImageSet(settings.ImageSet).
		SetMaxRating(settings.MaxRating)
	for key, value := range settings.Params {
		builder.SetParam(key, value)
	}

	options, err := builder.Build()
	if err != nil {
		return Options{}, fmt.Errorf("invalid gravatar settings: %w", err)
	}
	return options, nil
}

// NewClientFromSettings builds a client from loaded settings. The logger
// level is taken from settings.LogLevel when it parses.
func NewClientFromSettings(
	settings shared.Settings,
	logger *zerolog.Logger,
	registerer prometheus.Registerer,
) (*Client, error) {
	options, err := OptionsFromSettings(settings)
	if err != nil {
		return nil, err
	}

	if logger != nil && strings.TrimSpace(settings.LogLevel) != "" {
		level, levelErr := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(settings.LogLevel)))
		if levelErr != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", settings.LogLevel, levelErr)
		}
		leveled := logger.Level(level)
		logger = &leveled
	}

	return NewClient(Config{
		Options:       &options,
		PlainBaseURL:  settings.PlainBaseURL,
		SecureBaseURL: settings.SecureBaseURL,
		Timeout:       settings.Timeout,
		UserAgent:     settings.UserAgent,
		Logger:        logger,
		RateLimit:     settings.RateLimit,
		RateBurst:     settings.RateBurst,
		Registerer:    registerer,
	})
}
