package gravatar

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/hashgraph-online/gravatar-sdk-go/pkg/shared"
)

const (
	DefaultTimeout = 10 * time.Second

	avatarMetricLabel = "avatar"
	requestIDHeader   = "X-Request-ID"
)

type Config struct {
	// Options defaults to DefaultOptions when nil.
	Options *Options

	// PlainBaseURL and SecureBaseURL replace the public hosts, mainly for
	// tests and mirrors.
	PlainBaseURL  string
	SecureBaseURL string

	HTTPClient *http.Client
	// Timeout bounds each request when HTTPClient is nil.
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string

	Logger *zerolog.Logger

	// RateLimit is requests per second; zero disables limiting.
	RateLimit float64
	RateBurst int

	Registerer prometheus.Registerer
	Decoders   *DecoderRegistry
}

// Client builds URLs from immutable Options and fetches documents from the
// service. It is safe for concurrent use.
type Client struct {
	options       Options
	plainBaseURL  string
	secureBaseURL string
	httpClient    *http.Client
	userAgent     string
	headers       map[string]string
	logger        zerolog.Logger
	limiter       *rate.Limiter
	metrics       *Metrics
	decoders      *DecoderRegistry
}

// NewClient creates a new Client.
func NewClient(config Config) (*Client, error) {
	options := DefaultOptions()
	if config.Options != nil {
		options = NewBuilderFrom(*config.Options).Options()
		if err := options.Validate(); err != nil {
			return nil, err
		}
	}

	plainBaseURL, err := shared.NormalizeBaseURL(config.PlainBaseURL, shared.DefaultPlainBaseURL)
	if err != nil {
		return nil, err
	}
	secureBaseURL, err := shared.NormalizeBaseURL(config.SecureBaseURL, shared.DefaultSecureBaseURL)
	if err != nil {
		return nil, err
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		timeout := config.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	userAgent := strings.TrimSpace(config.UserAgent)
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	headers := map[string]string{}
	for key, value := range config.Headers {
		normalizedKey := strings.TrimSpace(key)
		trimmedValue := strings.TrimSpace(value)
		if normalizedKey != "" && trimmedValue != "" {
			headers[normalizedKey] = trimmedValue
		}
	}

	logger := zerolog.Nop()
	if config.Logger != nil {
		logger = *config.Logger
	}

	var limiter *rate.Limiter
	if config.RateLimit > 0 {
		burst := config.RateBurst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(config.RateLimit), burst)
	}

	var metrics *Metrics
	if config.Registerer != nil {
		metrics, err = NewMetrics(config.Registerer)
		if err != nil {
			return nil, err
		}
	}

	decoders := DefaultDecoders()
	if config.Decoders != nil {
		decoders = config.Decoders.clone()
	}

	return &Client{
		options:       options,
		plainBaseURL:  plainBaseURL,
		secureBaseURL: secureBaseURL,
		httpClient:    httpClient,
		userAgent:     userAgent,
		headers:       headers,
		logger:        logger,
		limiter:       limiter,
		metrics:       metrics,
		decoders:      decoders,
	}, nil
}

func (c *Client) Options() Options {
	return c.options
}

// WithOptions returns a client sharing transport, logger and metrics but
// building URLs from options.
func (c *Client) WithOptions(options Options) (*Client, error) {
	if err := options.Validate(); err != nil {
		return nil, err
	}
	clone := *c
	clone.options = NewBuilderFrom(options).Options()
	return &clone, nil
}

// BaseURL returns the host selected by the secure option.
func (c *Client) BaseURL() string {
	if c.options.secure {
		return c.secureBaseURL
	}
	return c.plainBaseURL
}

func (c *Client) AvatarURL(email string) string {
	return buildAvatarURL(c.BaseURL(), c.options, email)
}

func (c *Client) InfoURL(email string, format Format, includeParams bool) string {
	return buildInfoURL(c.BaseURL(), c.options, email, format, includeParams)
}

func (c *Client) ImageTag(email string, attrs ...Attribute) string {
	return renderImageTag(c.AvatarURL(email), c.options.size, attrs)
}

// Fetch performs a GET of the info URL for format and returns the decoded
// (decompressed) body. A non-2xx status returns the response together with a
// *RequestError.
func (c *Client) Fetch(ctx context.Context, email string, format Format) (*Response, error) {
	format = normalizeFormat(format)
	return c.get(ctx, c.InfoURL(email, format, false), string(format), acceptHeaderFor(format))
}

// FetchAvatar performs a GET of the avatar URL.
func (c *Client) FetchAvatar(ctx context.Context, email string) (*Response, error) {
	return c.get(ctx, c.AvatarURL(email), avatarMetricLabel, "image/*")
}

// HasAvatar reports whether an account image exists for email by asking for
// the 404 image set: 200 means an image exists, 404 means none.
func (c *Client) HasAvatar(ctx context.Context, email string) (bool, error) {
	probeOptions, _ := c.options.WithImageSet(string(ImageSetNotFound))
	requestURL := buildAvatarURL(c.BaseURL(), probeOptions, email)

	response, err := c.get(ctx, requestURL, avatarMetricLabel, "image/*")
	if response != nil && response.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// FetchInfo is the best-effort profile lookup. It never returns an error
// value separately: failures land in InfoResult.Err. Only the php format is
// decoded; a decoded entry lands in Entry, anything else in Raw unchanged.
func (c *Client) FetchInfo(ctx context.Context, email string, format Format) InfoResult {
	format = normalizeFormat(format)
	result := InfoResult{
		Format: format,
		URL:    c.InfoURL(email, format, false),
	}

	response, err := c.Fetch(ctx, email, format)
	if response != nil {
		result.Raw = response.Body
	}
	if err != nil {
		result.Err = err
		return result
	}

	if format != FormatPHP {
		return result
	}
	entry, decodeErr := decodePHPEntry(response.Body)
	if decodeErr != nil {
		c.logger.Debug().
			Err(decodeErr).
			Str("format", string(format)).
			Msg("returning raw gravatar profile body")
		return result
	}
	result.Entry = entry
	result.Raw = nil
	return result
}

// FetchProfile fetches format and decodes it with the registered decoder.
func (c *Client) FetchProfile(ctx context.Context, email string, format Format) (Profile, error) {
	format = normalizeFormat(format)
	if _, ok := c.decoders.Lookup(format); !ok {
		return Profile{}, &DecodeError{
			Format:  format,
			Message: "no decoder registered for " + string(format),
			Cause:   ErrUnsupportedFormat,
		}
	}

	response, err := c.Fetch(ctx, email, format)
	if err != nil {
		return Profile{}, err
	}

	profile, err := c.decoders.Decode(format, response.Body)
	if err != nil {
		c.metrics.observeDecodeFailure(format)
		c.logger.Warn().
			Err(err).
			Str("format", string(format)).
			Str("url", response.URL).
			Msg("failed to decode gravatar profile")
		return Profile{}, err
	}
	return profile, nil
}

func (c *Client) get(ctx context.Context, requestURL string, label string, accept string) (*Response, error) {
	started := time.Now()
	requestID := uuid.NewString()
	logger := c.logger.With().
		Str("request_id", requestID).
		Str("format", label).
		Str("url", requestURL).
		Logger()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			c.metrics.observe(Format(label), outcomeTransportError, time.Since(started))
			return nil, &RequestError{Message: "gravatar request rate limited", URL: requestURL, Cause: err}
		}
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, &RequestError{Message: "failed to create gravatar request", URL: requestURL, Cause: err}
	}
	request.Header.Set("Accept", accept)
	request.Header.Set("Accept-Encoding", acceptEncoding)
	request.Header.Set("User-Agent", c.userAgent)
	request.Header.Set(requestIDHeader, requestID)
	for key, value := range c.headers {
		request.Header.Set(key, value)
	}

	logger.Debug().Msg("gravatar request")
	response, err := c.httpClient.Do(request)
	if err != nil {
		c.metrics.observe(Format(label), outcomeTransportError, time.Since(started))
		logger.Warn().Err(err).Msg("gravatar request failed")
		return nil, &RequestError{Message: "gravatar request failed", URL: requestURL, Cause: err}
	}
	defer response.Body.Close()

	rawBody, err := io.ReadAll(response.Body)
	if err != nil {
		c.metrics.observe(Format(label), outcomeTransportError, time.Since(started))
		logger.Warn().Err(err).Msg("failed to read gravatar response")
		return nil, &RequestError{Message: "failed to read gravatar response", URL: requestURL, Cause: err}
	}
	body, err := decodeContent(response.Header.Get("Content-Encoding"), rawBody)
	if err != nil {
		c.metrics.observe(Format(label), outcomeTransportError, time.Since(started))
		logger.Warn().Err(err).Msg("failed to decompress gravatar response")
		return nil, &RequestError{
			Message:    "failed to decompress gravatar response",
			URL:        requestURL,
			Status:     response.StatusCode,
			StatusText: response.Status,
			Cause:      err,
		}
	}

	result := &Response{
		URL:         requestURL,
		StatusCode:  response.StatusCode,
		ContentType: response.Header.Get("Content-Type"),
		Body:        body,
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		c.metrics.observe(Format(label), outcomeHTTPError, time.Since(started))
		logger.Warn().Int("status", response.StatusCode).Msg("gravatar request returned an error status")
		return result, &RequestError{
			Message:    "gravatar request failed",
			URL:        requestURL,
			Status:     response.StatusCode,
			StatusText: response.Status,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	c.metrics.observe(Format(label), outcomeSuccess, time.Since(started))
	logger.Debug().
		Int("status", response.StatusCode).
		Int("bytes", len(body)).
		Dur("elapsed", time.Since(started)).
		Msg("gravatar response")
	return result, nil
}

// IsNotFound reports whether err is a 404 from the service, which it returns
// for unknown accounts.
func IsNotFound(err error) bool {
	var requestErr *RequestError
	return errors.As(err, &requestErr) && requestErr.Status == http.StatusNotFound
}
