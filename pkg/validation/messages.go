package validation

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-contactdesk/pkg/locale"
)

// Messages is the catalogue of user-facing validation messages. Range and
// Length are templates: {min}, {max} and {minLength} are substituted when a
// message is produced.
type Messages struct {
	Required      string `json:"required" yaml:"required"`
	InvalidFormat string `json:"invalidFormat" yaml:"invalidFormat"`
	Range         string `json:"range" yaml:"range"`
	Length        string `json:"length" yaml:"length"`
	Invalid       string `json:"invalid" yaml:"invalid"`
}

// DefaultMessages is the zh-TW catalogue the contact page ships with.
func DefaultMessages() Messages {
	return Messages{
		Required:      "此欄位為必填",
		InvalidFormat: "格式不正確，請重新輸入",
		Range:         "數值需介於 {min} ~ {max}",
		Length:        "至少需輸入 {minLength} 個字",
		Invalid:       "輸入有誤",
	}
}

// EnglishMessages is an alternative catalogue selected with locale "en".
func EnglishMessages() Messages {
	return Messages{
		Required:      "This field is required",
		InvalidFormat: "Invalid format, please try again",
		Range:         "Value must be between {min} and {max}",
		Length:        "Enter at least {minLength} characters",
		Invalid:       "Invalid input",
	}
}

// MessagesForLocale picks a built-in catalogue. Unknown locales fall back to
// the default catalogue.
func MessagesForLocale(value string) Messages {
	if locale.IsEnglish(value) {
		return EnglishMessages()
	}
	return DefaultMessages()
}

// withDefaults fills blank entries from the default catalogue so a partial
// override never yields an empty message for an invalid field.
func (m Messages) withDefaults() Messages {
	def := DefaultMessages()
	if strings.TrimSpace(m.Required) == "" {
		m.Required = def.Required
	}
	if strings.TrimSpace(m.InvalidFormat) == "" {
		m.InvalidFormat = def.InvalidFormat
	}
	if strings.TrimSpace(m.Range) == "" {
		m.Range = def.Range
	}
	if strings.TrimSpace(m.Length) == "" {
		m.Length = def.Length
	}
	if strings.TrimSpace(m.Invalid) == "" {
		m.Invalid = def.Invalid
	}
	return m
}

func (m Messages) rangeMessage(min, max *float64) string {
	return strings.NewReplacer(
		"{min}", formatBound(min),
		"{max}", formatBound(max),
	).Replace(m.Range)
}

func (m Messages) lengthMessage(minLength int) string {
	return strings.ReplaceAll(m.Length, "{minLength}", strconv.Itoa(minLength))
}

// formatBound renders an undeclared bound as "?".
func formatBound(bound *float64) string {
	if bound == nil {
		return "?"
	}
	return strconv.FormatFloat(*bound, 'f', -1, 64)
}
