package gravatar

const (
	MinSize     = 1
	MaxSize     = 512
	DefaultSize = 80

	AvatarExtension = ".jpg"
	AvatarPath      = "avatar/"

	DefaultUserAgent = "gravatar-sdk-go"
)

// ImageSet names the fallback image returned when no account image exists.
type ImageSet string

const (
	ImageSetNotFound   ImageSet = "404"
	ImageSetMysteryMan ImageSet = "mm"
	ImageSetIdenticon  ImageSet = "identicon"
	ImageSetMonsterID  ImageSet = "monsterid"
	ImageSetWavatar    ImageSet = "wavatar"
	ImageSetRetro      ImageSet = "retro"

	// ImageSetForce makes the service always return the fallback image.
	ImageSetForce ImageSet = "y"
)

var knownImageSets = map[ImageSet]struct{}{
	ImageSetNotFound:   {},
	ImageSetMysteryMan: {},
	ImageSetIdenticon:  {},
	ImageSetMonsterID:  {},
	ImageSetWavatar:    {},
	ImageSetRetro:      {},
	ImageSetForce:      {},
}

// IsKeyword reports whether the image set is a built-in keyword rather than a
// fallback image URL.
func (set ImageSet) IsKeyword() bool {
	_, ok := knownImageSets[set]
	return ok
}

// Rating is the maximum content rating (inclusive) the service may return.
type Rating string

const (
	RatingG  Rating = "g"
	RatingPG Rating = "pg"
	RatingR  Rating = "r"
	RatingX  Rating = "x"
)

// Valid reports whether the rating is one of g, pg, r or x.
func (rating Rating) Valid() bool {
	switch rating {
	case RatingG, RatingPG, RatingR, RatingX:
		return true
	default:
		return false
	}
}

// Format is the profile document format, used verbatim as the URL extension.
type Format string

const (
	FormatJSON  Format = "json"
	FormatXML   Format = "xml"
	FormatPHP   Format = "php"
	FormatVCard Format = "vcf"
	FormatQR    Format = "qr"

	DefaultFormat = FormatPHP
)

func normalizeFormat(format Format) Format {
	if format == "" {
		return DefaultFormat
	}
	return format
}

func acceptHeaderFor(format Format) string {
	switch format {
	case FormatJSON:
		return "application/json"
	case FormatXML:
		return "application/xml, text/xml"
	case FormatVCard:
		return "text/vcard, text/x-vcard"
	case FormatQR:
		return "image/png, image/*"
	default:
		return "*/*"
	}
}

// Attribute is an extra attribute rendered on an image tag.
type Attribute struct {
	Name  string
	Value string
}

// Profile is a decoded Gravatar profile entry.
type Profile struct {
	ID                string      `json:"id" xml:"id" mapstructure:"id"`
	Hash              string      `json:"hash" xml:"hash" mapstructure:"hash"`
	RequestHash       string      `json:"requestHash" xml:"requestHash" mapstructure:"requesthash"`
	ProfileURL        string      `json:"profileUrl" xml:"profileUrl" mapstructure:"profileurl"`
	PreferredUsername string      `json:"preferredUsername" xml:"preferredUsername" mapstructure:"preferredusername"`
	ThumbnailURL      string      `json:"thumbnailUrl" xml:"thumbnailUrl" mapstructure:"thumbnailurl"`
	DisplayName       string      `json:"displayName" xml:"displayName" mapstructure:"displayname"`
	AboutMe           string      `json:"aboutMe,omitempty" xml:"aboutMe" mapstructure:"aboutme"`
	CurrentLocation   string      `json:"currentLocation,omitempty" xml:"currentLocation" mapstructure:"currentlocation"`
	Name              ProfileName `json:"name" xml:"name" mapstructure:"name"`
	Photos            []Photo     `json:"photos,omitempty" xml:"photos" mapstructure:"photos"`
	URLs              []Link      `json:"urls,omitempty" xml:"urls" mapstructure:"urls"`
	Emails            []Email     `json:"emails,omitempty" xml:"emails" mapstructure:"emails"`
	Accounts          []Account   `json:"accounts,omitempty" xml:"accounts" mapstructure:"accounts"`

	// Fields holds the raw entry with top-level keys lower-cased. Only the
	// map based formats (json, php) fill it.
	Fields map[string]any `json:"-" xml:"-" mapstructure:"-"`
}

type ProfileName struct {
	Formatted  string `json:"formatted,omitempty" xml:"formatted" mapstructure:"formatted"`
	GivenName  string `json:"givenName,omitempty" xml:"givenName" mapstructure:"givenname"`
	FamilyName string `json:"familyName,omitempty" xml:"familyName" mapstructure:"familyname"`
}

type Photo struct {
	Value string `json:"value" xml:"value" mapstructure:"value"`
	Type  string `json:"type,omitempty" xml:"type" mapstructure:"type"`
}

type Link struct {
	Value string `json:"value" xml:"value" mapstructure:"value"`
	Title string `json:"title,omitempty" xml:"title" mapstructure:"title"`
}

type Email struct {
	Value   string `json:"value" xml:"value" mapstructure:"value"`
	Primary bool   `json:"primary,omitempty" xml:"primary" mapstructure:"primary"`
}

type Account struct {
	Domain    string `json:"domain" xml:"domain" mapstructure:"domain"`
	Display   string `json:"display,omitempty" xml:"display" mapstructure:"display"`
	URL       string `json:"url" xml:"url" mapstructure:"url"`
	Username  string `json:"username,omitempty" xml:"username" mapstructure:"username"`
	Shortname string `json:"shortname,omitempty" xml:"shortname" mapstructure:"shortname"`
	Verified  bool   `json:"verified,omitempty" xml:"verified" mapstructure:"verified"`
}

// Response is a raw HTTP response from the service.
type Response struct {
	URL         string
	StatusCode  int
	ContentType string
	Body        []byte
}

// InfoResult is the best-effort outcome of FetchInfo. Exactly one shape is
// meaningful: Entry when a php entry was decoded, otherwise Raw. Err is set
// on transport or HTTP failure.
type InfoResult struct {
	Format Format
	URL    string
	Entry  map[string]any
	Raw    []byte
	Err    error
}

// HasEntry reports whether the result carries a decoded profile entry.
func (result InfoResult) HasEntry() bool {
	return len(result.Entry) > 0
}

// Failed reports whether the request itself failed.
func (result InfoResult) Failed() bool {
	return result.Err != nil
}
