package shared

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	TransportPlain  = "http"
	TransportSecure = "https"

	DefaultPlainBaseURL  = "http://www.gravatar.com"
	DefaultSecureBaseURL = "https://secure.gravatar.com"
)

// NormalizeTransport maps a transport name onto TransportPlain or
// TransportSecure. An empty value selects the plain transport.
func NormalizeTransport(transport string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(transport))
	if normalized == "" {
		return TransportPlain, nil
	}

	switch normalized {
	case TransportPlain, "plain", "insecure":
		return TransportPlain, nil
	case TransportSecure, "secure", "tls", "ssl":
		return TransportSecure, nil
	default:
		return "", fmt.Errorf("unsupported transport %q", transport)
	}
}

// IsSecureTransport reports whether the transport resolves to TLS.
func IsSecureTransport(transport string) (bool, error) {
	normalized, err := NormalizeTransport(transport)
	if err != nil {
		return false, err
	}
	return normalized == TransportSecure, nil
}

// DefaultBaseURL returns the Gravatar host for the requested transport.
func DefaultBaseURL(secure bool) string {
	if secure {
		return DefaultSecureBaseURL
	}
	return DefaultPlainBaseURL
}

// NormalizeBaseURL validates a base URL and strips trailing slashes. An empty
// value resolves to fallback.
func NormalizeBaseURL(value string, fallback string) (string, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(value), "/")
	if baseURL == "" {
		baseURL = strings.TrimRight(fallback, "/")
	}

	parsedBaseURL, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}
	if parsedBaseURL.Scheme != TransportPlain && parsedBaseURL.Scheme != TransportSecure {
		return "", fmt.Errorf("invalid base URL: scheme must be http or https")
	}
	if strings.TrimSpace(parsedBaseURL.Host) == "" {
		return "", fmt.Errorf("invalid base URL: host is required")
	}
	if parsedBaseURL.RawQuery != "" || parsedBaseURL.Fragment != "" {
		return "", fmt.Errorf("invalid base URL: query and fragment are not allowed")
	}

	return strings.TrimRight(parsedBaseURL.String(), "/"), nil
}
