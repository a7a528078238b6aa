package gravatar

import (
	"bytes"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashgraph-online/gravatar-sdk-go/pkg/shared"
)

func baseSettings() shared.Settings {
	return shared.Settings{
		Transport:    shared.TransportPlain,
		Size:         DefaultSize,
		UseExtension: true,
		ImageSet:     string(ImageSetMysteryMan),
		MaxRating:    string(RatingG),
		Params:       map[string]string{},
	}
}

func TestOptionsFromSettings(t *testing.T) {
	settings := baseSettings()
	settings.Transport = shared.TransportSecure
	settings.Size = 128
	settings.UseExtension = false
	settings.ImageSet = "identicon"
	settings.MaxRating = "pg"
	settings.Params = map[string]string{"forcedefault": "y"}

	options, err := OptionsFromSettings(settings)
	require.NoError(t, err)

	assert.True(t, options.Secure())
	assert.Equal(t, 128, options.Size())
	assert.False(t, options.UseExtension())
	assert.Equal(t, "identicon", options.ImageSet())
	assert.Equal(t, RatingPG, options.MaxRating())
	assert.Equal(t, map[string]string{"forcedefault": "y"}, options.Params())
}

func TestOptionsFromSettingsRejectsInvalidValues(t *testing.T) {
	settings := baseSettings()
	settings.Size = 2048
	settings.MaxRating = "nc17"

	_, err := OptionsFromSettings(settings)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid gravatar settings")
	assert.Contains(t, err.Error(), "size")
	assert.Contains(t, err.Error(), "rating")
}

func TestNewClientFromSettings(t *testing.T) {
	settings := baseSettings()
	settings.Transport = shared.TransportSecure
	settings.SecureBaseURL = "https://mirror.example.com/"
	settings.Timeout = 3 * time.Second
	settings.UserAgent = "settings-agent"
	settings.RateLimit = 5
	settings.RateBurst = 2

	client, err := NewClientFromSettings(settings, nil, prometheus.NewRegistry())
	require.NoError(t, err)

	assert.Equal(t, "https://mirror.example.com", client.BaseURL())
	assert.Equal(t, 3*time.Second, client.httpClient.Timeout)
	assert.Equal(t, "settings-agent", client.userAgent)
	require.NotNil(t, client.limiter)
	assert.Equal(t, 2, client.limiter.Burst())
	assert.NotNil(t, client.metrics)
}

func TestNewClientFromSettingsLogLevel(t *testing.T) {
	var buffer bytes.Buffer
	logger := zerolog.New(&buffer)

	settings := baseSettings()
	settings.LogLevel = "ERROR"
	client, err := NewClientFromSettings(settings, &logger, nil)
	require.NoError(t, err)

	client.logger.Warn().Msg("dropped")
	client.logger.Error().Msg("kept")
	assert.NotContains(t, buffer.String(), "dropped")
	assert.Contains(t, buffer.String(), "kept")

	settings.LogLevel = "chatty"
	_, err = NewClientFromSettings(settings, &logger, nil)
	require.Error(t, err)
}

func TestNewClientFromSettingsInvalidBaseURL(t *testing.T) {
	settings := baseSettings()
	settings.PlainBaseURL = "gopher://example.com"

	_, err := NewClientFromSettings(settings, nil, nil)
	require.Error(t, err)
}
