package gravatar

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/elliotchance/phpserialize"
	"github.com/emersion/go-vcard"
	"github.com/mitchellh/mapstructure"
)

const decodeErrorBodyLimit = 512

// Decoder turns a response body into a Profile.
type Decoder interface {
	Decode(body []byte) (Profile, error)
}

type DecoderFunc func(body []byte) (Profile, error)

func (fn DecoderFunc) Decode(body []byte) (Profile, error) {
	return fn(body)
}

// DecoderRegistry maps formats to decoders. It is safe for concurrent use.
type DecoderRegistry struct {
	decoders map[Format]Decoder
	mutex    sync.RWMutex
}

func NewDecoderRegistry() *DecoderRegistry {
	return &DecoderRegistry{decoders: map[Format]Decoder{}}
}

// DefaultDecoders returns a registry with json, xml, php and vcf decoders.
func DefaultDecoders() *DecoderRegistry {
	registry := NewDecoderRegistry()
	registry.decoders[FormatJSON] = DecoderFunc(decodeJSONProfile)
	registry.decoders[FormatXML] = DecoderFunc(decodeXMLProfile)
	registry.decoders[FormatPHP] = DecoderFunc(decodePHPProfile)
	registry.decoders[FormatVCard] = DecoderFunc(decodeVCardProfile)
	return registry
}

func (r *DecoderRegistry) Register(format Format, decoder Decoder) error {
	if strings.TrimSpace(string(format)) == "" {
		return fmt.Errorf("format is required")
	}
	if decoder == nil {
		return fmt.Errorf("decoder for %s is nil", format)
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.decoders[format] = decoder
	return nil
}

func (r *DecoderRegistry) Lookup(format Format) (Decoder, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	decoder, ok := r.decoders[format]
	return decoder, ok
}

func (r *DecoderRegistry) Formats() []Format {
	r.mutex.RLock()
	formats := make([]Format, 0, len(r.decoders))
	for format := range r.decoders {
		formats = append(formats, format)
	}
	r.mutex.RUnlock()
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}

// Decode runs the decoder registered for format. Every failure is a
// *DecodeError; an unknown format wraps ErrUnsupportedFormat.
func (r *DecoderRegistry) Decode(format Format, body []byte) (Profile, error) {
	format = normalizeFormat(format)
	decoder, ok := r.Lookup(format)
	if !ok {
		return Profile{}, &DecodeError{
			Format:  format,
			Message: fmt.Sprintf("no decoder registered for %q", format),
			Cause:   ErrUnsupportedFormat,
		}
	}

	profile, err := decoder.Decode(body)
	if err != nil {
		var decodeErr *DecodeError
		if errors.As(err, &decodeErr) {
			if decodeErr.Format == "" {
				decodeErr.Format = format
			}
			return Profile{}, decodeErr
		}
		return Profile{}, newDecodeError(format, "failed to decode profile", body, err)
	}
	return profile, nil
}

func (r *DecoderRegistry) clone() *DecoderRegistry {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	cloned := NewDecoderRegistry()
	for format, decoder := range r.decoders {
		cloned.decoders[format] = decoder
	}
	return cloned
}

func newDecodeError(format Format, message string, body []byte, cause error) *DecodeError {
	trimmed := strings.TrimSpace(string(body))
	if len(trimmed) > decodeErrorBodyLimit {
		trimmed = trimmed[:decodeErrorBodyLimit]
	}
	return &DecodeError{
		Format:  format,
		Message: message,
		Body:    trimmed,
		Cause:   cause,
	}
}

func decodeJSONProfile(body []byte) (Profile, error) {
	var document map[string]any
	if err := json.Unmarshal(body, &document); err != nil {
		return Profile{}, newDecodeError(FormatJSON, "failed to decode JSON profile", body, err)
	}
	entry, ok := firstEntry(document)
	if !ok {
		return Profile{}, newDecodeError(FormatJSON, "JSON profile has no entry", body, ErrEmptyEntry)
	}
	profile, err := profileFromEntry(entry)
	if err != nil {
		return Profile{}, newDecodeError(FormatJSON, "failed to map JSON profile", body, err)
	}
	return profile, nil
}

func decodePHPProfile(body []byte) (Profile, error) {
	entry, err := decodePHPEntry(body)
	if err != nil {
		return Profile{}, newDecodeError(FormatPHP, "failed to decode serialized PHP profile", body, err)
	}
	profile, err := profileFromEntry(entry)
	if err != nil {
		return Profile{}, newDecodeError(FormatPHP, "failed to map serialized PHP profile", body, err)
	}
	return profile, nil
}

// decodePHPEntry unserializes a PHP payload and returns entry[0] with
// top-level keys lower-cased.
func decodePHPEntry(body []byte) (map[string]any, error) {
	decoded, err := phpserialize.UnmarshalAssociativeArray(bytes.TrimSpace(body))
	if err != nil {
		return nil, err
	}
	document, ok := phpValueToGo(decoded).(map[string]any)
	if !ok {
		return nil, ErrEmptyEntry
	}
	entry, ok := firstEntry(document)
	if !ok {
		return nil, ErrEmptyEntry
	}
	return entry, nil
}

// phpValueToGo converts unserialized PHP arrays into Go maps and slices.
// Arrays keyed 0..n-1 become slices; other arrays become string keyed maps.
func phpValueToGo(value any) any {
	switch typed := value.(type) {
	case map[any]any:
		if list, ok := phpArrayToList(typed); ok {
			return list
		}
		converted := make(map[string]any, len(typed))
		for key, item := range typed {
			converted[fmt.Sprint(key)] = phpValueToGo(item)
		}
		return converted
	case []any:
		converted := make([]any, len(typed))
		for index, item := range typed {
			converted[index] = phpValueToGo(item)
		}
		return converted
	default:
		return typed
	}
}

func phpArrayToList(values map[any]any) ([]any, bool) {
	if len(values) == 0 {
		return nil, false
	}
	list := make([]any, len(values))
	for key, item := range values {
		index, err := strconv.Atoi(fmt.Sprint(key))
		if err != nil || index < 0 || index >= len(values) {
			return nil, false
		}
		list[index] = phpValueToGo(item)
	}
	return list, true
}

func firstEntry(document map[string]any) (map[string]any, bool) {
	entries, ok := document["entry"].([]any)
	if !ok || len(entries) == 0 {
		return nil, false
	}
	entry, ok := entries[0].(map[string]any)
	if !ok || len(entry) == 0 {
		return nil, false
	}
	return lowerKeys(entry), true
}

func lowerKeys(values map[string]any) map[string]any {
	lowered := make(map[string]any, len(values))
	for key, value := range values {
		lowered[strings.ToLower(key)] = value
	}
	return lowered
}

func profileFromEntry(entry map[string]any) (Profile, error) {
	var profile Profile
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       emptyValueHook,
		WeaklyTypedInput: true,
		Result:           &profile,
	})
	if err != nil {
		return Profile{}, err
	}
	if err := decoder.Decode(entry); err != nil {
		return Profile{}, err
	}
	profile.Fields = entry
	return profile, nil
}

// emptyValueHook lets empty strings stand in for absent objects and lists,
// which the service emits for unset profile sections.
func emptyValueHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || data != "" {
		return data, nil
	}
	switch to.Kind() {
	case reflect.Struct:
		return map[string]any{}, nil
	case reflect.Slice:
		return []any{}, nil
	default:
		return data, nil
	}
}

type xmlProfileResponse struct {
	XMLName xml.Name  `xml:"response"`
	Entries []Profile `xml:"entry"`
}

func decodeXMLProfile(body []byte) (Profile, error) {
	var document xmlProfileResponse
	if err := xml.Unmarshal(body, &document); err != nil {
		return Profile{}, newDecodeError(FormatXML, "failed to decode XML profile", body, err)
	}
	if len(document.Entries) == 0 {
		return Profile{}, newDecodeError(FormatXML, "XML profile has no entry", body, ErrEmptyEntry)
	}
	return document.Entries[0], nil
}

func decodeVCardProfile(body []byte) (Profile, error) {
	card, err := vcard.NewDecoder(bytes.NewReader(body)).Decode()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Profile{}, newDecodeError(FormatVCard, "vCard profile is empty", body, ErrEmptyEntry)
		}
		return Profile{}, newDecodeError(FormatVCard, "failed to decode vCard profile", body, err)
	}

	profile := Profile{
		ID:                card.Value(vcard.FieldUID),
		DisplayName:       card.PreferredValue(vcard.FieldFormattedName),
		PreferredUsername: card.PreferredValue(vcard.FieldNickname),
		AboutMe:           card.PreferredValue(vcard.FieldNote),
	}
	profile.Name.Formatted = profile.DisplayName
	if name := card.Name(); name != nil {
		profile.Name.GivenName = name.GivenName
		profile.Name.FamilyName = name.FamilyName
	}

	for index, value := range card.Values(vcard.FieldURL) {
		if index == 0 {
			profile.ProfileURL = value
			continue
		}
		profile.URLs = append(profile.URLs, Link{Value: value})
	}
	for _, field := range card[vcard.FieldEmail] {
		profile.Emails = append(profile.Emails, Email{
			Value:   field.Value,
			Primary: field.Params.Get(vcard.ParamPreferred) != "",
		})
	}
	for _, value := range card.Values(vcard.FieldPhoto) {
		profile.Photos = append(profile.Photos, Photo{Value: value})
	}
	if len(profile.Photos) > 0 {
		profile.ThumbnailURL = profile.Photos[0].Value
	}
	return profile, nil
}
