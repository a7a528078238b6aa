// Package shared provides helpers used across the Gravatar SDK for Go:
// transport normalization, base URL validation and settings loading.
//
// This package is typically used by pkg/gravatar and the example CLI but is
// also available for direct use when wiring the SDK into an application's
// own configuration.
//
// # Environment Variables
//
// Every settings key can be overridden with a GRAVATAR_ prefixed variable,
// for example GRAVATAR_TRANSPORT=https or GRAVATAR_MAX_RATING=pg. Variables
// are also read from the nearest .env file when they are not already set.
package shared
