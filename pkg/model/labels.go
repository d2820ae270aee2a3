package model

import (
	"strings"
	"unicode"
)

// DefaultLabeler turns a property name such as "first_name" or "companyName"
// into "First Name". It is used when the schema carries no x-label.
func DefaultLabeler(name string) string {
	var words []string
	var current []rune
	flush := func() {
		if len(current) > 0 {
			words = append(words, titleWord(current))
			current = current[:0]
		}
	}

	runes := []rune(name)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || unicode.IsSpace(r):
			flush()
			continue
		case i > 0 && wordBreak(runes[i-1], r):
			flush()
		}
		current = append(current, r)
	}
	flush()
	return strings.Join(words, " ")
}

func wordBreak(prev, r rune) bool {
	switch {
	case unicode.IsLower(prev) && unicode.IsUpper(r):
		return true
	case unicode.IsLetter(prev) && unicode.IsDigit(r):
		return true
	case unicode.IsDigit(prev) && unicode.IsLetter(r):
		return true
	}
	return false
}

func titleWord(word []rune) string {
	out := []rune(strings.ToLower(string(word)))
	out[0] = unicode.ToUpper(out[0])
	return string(out)
}
