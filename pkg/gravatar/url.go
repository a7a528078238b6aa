package gravatar

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/hashgraph-online/gravatar-sdk-go/pkg/shared"
)

// AvatarURL builds the avatar image URL against the public Gravatar hosts:
// {base}/avatar/{hash}[.jpg]?s=..&r=..&(d|f)=..[&extra...]
func AvatarURL(options Options, email string) string {
	return buildAvatarURL(shared.DefaultBaseURL(options.secure), options, email)
}

// InfoURL builds the profile document URL {base}/{hash}.{format}. The query
// string is only added when includeParams is set, as the qr format needs it.
func InfoURL(options Options, email string, format Format, includeParams bool) string {
	return buildInfoURL(shared.DefaultBaseURL(options.secure), options, email, format, includeParams)
}

func buildAvatarURL(baseURL string, options Options, email string) string {
	var builder strings.Builder
	builder.WriteString(baseURL)
	builder.WriteString("/")
	builder.WriteString(AvatarPath)
	builder.WriteString(Hash(email))
	if options.useExtension {
		builder.WriteString(AvatarExtension)
	}
	builder.WriteString("?")
	builder.WriteString(buildQuery(options))
	return builder.String()
}

func buildInfoURL(baseURL string, options Options, email string, format Format, includeParams bool) string {
	requestURL := baseURL + "/" + Hash(email) + "." + string(normalizeFormat(format))
	if includeParams {
		requestURL += "?" + buildQuery(options)
	}
	return requestURL
}

// buildQuery emits s, r and d (or f when forcing the default) followed by
// the extra params sorted by key. The image set is already escaped.
func buildQuery(options Options) string {
	defaultKey := "d"
	if options.ForcesDefault() {
		defaultKey = "f"
	}

	var builder strings.Builder
	builder.WriteString("s=")
	builder.WriteString(strconv.Itoa(options.size))
	builder.WriteString("&r=")
	builder.WriteString(string(options.maxRating))
	builder.WriteString("&")
	builder.WriteString(defaultKey)
	builder.WriteString("=")
	builder.WriteString(options.imageSet)

	for _, key := range options.sortedParamKeys() {
		builder.WriteString("&")
		builder.WriteString(url.QueryEscape(key))
		builder.WriteString("=")
		builder.WriteString(url.QueryEscape(options.params[key]))
	}
	return builder.String()
}
