// Package locale resolves the configured locale against the message
// catalogues the application ships.
package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// TraditionalChinese is the default locale.
var TraditionalChinese = language.MustParse("zh-TW")

var supportedTags = []language.Tag{
	TraditionalChinese,
	language.English,
}

var tagMatcher = language.NewMatcher(supportedTags)

// Supported returns the locales with a built-in catalogue, default first.
func Supported() []language.Tag {
	tags := make([]language.Tag, len(supportedTags))
	copy(tags, supportedTags)
	return tags
}

// Default returns the default locale.
func Default() language.Tag {
	return TraditionalChinese
}

// Valid reports whether value parses as a BCP 47 tag. Blank is valid and
// means the default.
func Valid(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return true
	}
	_, err := language.Parse(value)
	return err == nil
}

// Resolve returns the supported locale closest to value, or the default when
// value is blank, malformed or unrelated to any catalogue.
func Resolve(value string) language.Tag {
	value = strings.TrimSpace(value)
	if value == "" {
		return Default()
	}
	tag, err := language.Parse(value)
	if err != nil {
		return Default()
	}
	_, index, confidence := tagMatcher.Match(tag)
	if confidence == language.No {
		return Default()
	}
	return supportedTags[index]
}

// IsEnglish reports whether value resolves to the English catalogue.
func IsEnglish(value string) bool {
	return Resolve(value) == language.English
}
