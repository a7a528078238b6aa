package gravatar

import (
	"errors"
	"net/url"
	"sort"
	"strings"
)

// Options is an immutable set of presentation options. The zero value is not
// useful; start from DefaultOptions or a Builder.
type Options struct {
	secure       bool
	size         int
	useExtension bool
	imageSet     string
	maxRating    Rating
	params       map[string]string
}

// DefaultOptions returns plain transport, 80px, .jpg extension, the "mm"
// image set, rating "g" and no extra params.
func DefaultOptions() Options {
	return Options{
		secure:       false,
		size:         DefaultSize,
		useExtension: true,
		imageSet:     string(ImageSetMysteryMan),
		maxRating:    RatingG,
		params:       map[string]string{},
	}
}

func (o Options) Secure() bool       { return o.secure }
func (o Options) Size() int          { return o.size }
func (o Options) UseExtension() bool { return o.useExtension }
func (o Options) ImageSet() string   { return o.imageSet }
func (o Options) MaxRating() Rating  { return o.maxRating }

// Params returns a copy of the extra query parameters.
func (o Options) Params() map[string]string {
	cloned := make(map[string]string, len(o.params))
	for key, value := range o.params {
		cloned[key] = value
	}
	return cloned
}

// Param returns a single extra query parameter.
func (o Options) Param(key string) (string, bool) {
	value, ok := o.params[key]
	return value, ok
}

// ForcesDefault reports whether the force sentinel "y" is configured.
func (o Options) ForcesDefault() bool {
	return o.imageSet == string(ImageSetForce)
}

// Validate checks every invariant. Options from DefaultOptions, a Builder or
// the With* methods always pass; the zero value does not.
func (o Options) Validate() error {
	var errs []error
	if o.size < MinSize || o.size > MaxSize {
		errs = append(errs, newOutOfRangeError("size", o.size, MinSize, MaxSize))
	}
	if !o.maxRating.Valid() {
		errs = append(errs, newUnrecognizedEnumError("rating", string(o.maxRating), "g, pg, r, x"))
	}
	if o.imageSet == "" {
		errs = append(errs, newUnrecognizedEnumError("image set", o.imageSet, "404, mm, identicon, monsterid, wavatar, retro, y or a URL"))
	}
	return errors.Join(errs...)
}

func (o Options) WithSecure(secure bool) Options {
	o.secure = secure
	return o
}

// WithSize returns a copy with the size applied when it lies in [1, 512].
// Otherwise the receiver is returned unchanged with a ValidationError.
func (o Options) WithSize(size int) (Options, error) {
	if size < MinSize || size > MaxSize {
		return o, newOutOfRangeError("size", size, MinSize, MaxSize)
	}
	o.size = size
	return o, nil
}

func (o Options) WithUseExtension(use bool) Options {
	o.useExtension = use
	return o
}

// WithImageSet stores keywords verbatim and escapes anything else as a
// fallback image URL.
func (o Options) WithImageSet(value string) (Options, error) {
	if value == "" {
		return o, newUnrecognizedEnumError("image set", value, "404, mm, identicon, monsterid, wavatar, retro, y or a URL")
	}
	if ImageSet(value).IsKeyword() {
		o.imageSet = value
		return o, nil
	}
	o.imageSet = url.QueryEscape(value)
	return o, nil
}

func (o Options) WithMaxRating(rating string) (Options, error) {
	if !Rating(rating).Valid() {
		return o, newUnrecognizedEnumError("rating", rating, "g, pg, r, x")
	}
	o.maxRating = Rating(rating)
	return o, nil
}

// WithParam upserts an extra query parameter. An empty value removes the key.
func (o Options) WithParam(key string, value string) (Options, error) {
	trimmedKey := strings.TrimSpace(key)
	if trimmedKey == "" {
		return o, &ValidationError{
			Field:   "param",
			Value:   key,
			Kind:    KindEmptyKey,
			Message: "key is required",
		}
	}

	params := o.Params()
	if strings.TrimSpace(value) == "" {
		delete(params, trimmedKey)
	} else {
		params[trimmedKey] = value
	}
	o.params = params
	return o, nil
}

func (o Options) WithoutParam(key string) Options {
	params := o.Params()
	delete(params, strings.TrimSpace(key))
	o.params = params
	return o
}

func (o Options) sortedParamKeys() []string {
	keys := make([]string, 0, len(o.params))
	for key := range o.params {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Builder is a fluent, mutable wrapper around Options. Rejected inputs keep
// the previous value and are reported by Err and Build. A Builder is not safe
// for concurrent use; the Options it builds are.
type Builder struct {
	options Options
	errs    []error
}

func NewBuilder() *Builder {
	return &Builder{options: DefaultOptions()}
}

// NewBuilderFrom starts a builder from existing options.
func NewBuilderFrom(options Options) *Builder {
	options.params = options.Params()
	return &Builder{options: options}
}

func (builder *Builder) SetSize(size int) *Builder {
	return builder.apply(builder.options.WithSize(size))
}

func (builder *Builder) SetUseExtension(use bool) *Builder {
	builder.options = builder.options.WithUseExtension(use)
	return builder
}

func (builder *Builder) SetImageSet(value string) *Builder {
	return builder.apply(builder.options.WithImageSet(value))
}

func (builder *Builder) SetMaxRating(rating string) *Builder {
	return builder.apply(builder.options.WithMaxRating(rating))
}

func (builder *Builder) SetSecure(secure bool) *Builder {
	builder.options = builder.options.WithSecure(secure)
	return builder
}

func (builder *Builder) SetParam(key string, value string) *Builder {
	return builder.apply(builder.options.WithParam(key, value))
}

func (builder *Builder) RemoveParam(key string) *Builder {
	builder.options = builder.options.WithoutParam(key)
	return builder
}

// Reset restores the defaults and forgets recorded errors.
func (builder *Builder) Reset() *Builder {
	builder.options = DefaultOptions()
	builder.errs = nil
	return builder
}

// Options returns the current options, which are always valid.
func (builder *Builder) Options() Options {
	return builder.options
}

// Err joins every rejected input since construction or the last Reset.
func (builder *Builder) Err() error {
	return errors.Join(builder.errs...)
}

func (builder *Builder) Build() (Options, error) {
	return builder.options, builder.Err()
}

func (builder *Builder) apply(options Options, err error) *Builder {
	if err != nil {
		builder.errs = append(builder.errs, err)
		return builder
	}
	builder.options = options
	return builder
}
