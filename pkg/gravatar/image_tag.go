package gravatar

import (
	"html"
	"sort"
	"strconv"
	"strings"

	"github.com/hashgraph-online/gravatar-sdk-go/pkg/shared"
)

// ImageTag renders an img element for the avatar with width and height set
// to the configured size. Attributes follow in the order given; values and
// the src are HTML escaped.
func ImageTag(options Options, email string, attrs ...Attribute) string {
	return renderImageTag(buildAvatarURL(shared.DefaultBaseURL(options.secure), options, email), options.size, attrs)
}

func renderImageTag(avatarURL string, size int, attrs []Attribute) string {
	dimension := strconv.Itoa(size)

	var builder strings.Builder
	builder.WriteString(`<img width="`)
	builder.WriteString(dimension)
	builder.WriteString(`" height="`)
	builder.WriteString(dimension)
	builder.WriteString(`" src="`)
	builder.WriteString(html.EscapeString(avatarURL))
	builder.WriteString(`"`)
	for _, attr := range attrs {
		name := strings.TrimSpace(attr.Name)
		if name == "" {
			continue
		}
		builder.WriteString(" ")
		builder.WriteString(name)
		builder.WriteString(`="`)
		builder.WriteString(html.EscapeString(attr.Value))
		builder.WriteString(`"`)
	}
	builder.WriteString("/>")
	return builder.String()
}

// AttributesFromMap converts a map into attributes sorted by name.
func AttributesFromMap(values map[string]string) []Attribute {
	attrs := make([]Attribute, 0, len(values))
	for name, value := range values {
		attrs = append(attrs, Attribute{Name: name, Value: value})
	}
	sort.Slice(attrs, func(i, j int) bool {
		return attrs[i].Name < attrs[j].Name
	})
	return attrs
}
