// The Gravatar SDK for Go builds avatar and profile URLs for the Gravatar
// service and fetches profile documents from it. Identifiers are derived
// from email addresses (MD5 of the trimmed, lower-cased address), so no
// account credentials are needed for any operation.
//
// # Packages
//
//   - pkg/gravatar: options, URL composition, image tags, profile fetching
//     and the per-format decoder registry.
//   - pkg/shared: transport and base URL normalization plus settings loading
//     from files, environment variables and .env files.
//
// # Documentation
//
// Gravatar developer documentation: https://docs.gravatar.com
//
// # Installation
//
//	go get github.com/hashgraph-online/gravatar-sdk-go@latest
package gravatar_sdk_go
