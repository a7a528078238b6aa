// Package gravatar builds Gravatar avatar and profile URLs and fetches profile
// documents from the service.
//
// Identifiers are the lowercase hex MD5 of the trimmed, lower-cased email
// address. URLs are composed from an immutable Options value; a Builder
// offers fluent setters that keep the previous value when an input is
// rejected and report the rejection through Err and Build.
//
//	options, err := gravatar.NewBuilder().
//		SetSize(128).
//		SetImageSet("identicon").
//		SetMaxRating("pg").
//		Build()
//	url := gravatar.AvatarURL(options, "someone@example.com")
//
// # Fetching
//
// Client adds transport: Fetch returns raw bytes, FetchProfile decodes the
// json, xml, php and vcf formats through a DecoderRegistry, and FetchInfo is
// the best-effort lookup that returns either a php entry or the raw body.
// Every fetch takes a context and is bounded by Config.Timeout.
//
// # Gravatar
//
// Developer documentation: https://docs.gravatar.com
package gravatar
