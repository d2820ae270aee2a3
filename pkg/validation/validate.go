package validation

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-contactdesk/pkg/model"
)

// emailPattern is the valid e-mail address production browsers apply to
// <input type="email">.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)

var numberPattern = regexp.MustCompile(`^-?(?:\d+(?:\.\d+)?|\.\d+)(?:[eE][+-]?\d+)?$`)

// Failure names the first constraint a value violated.
type Failure string

const (
	FailureNone           Failure = ""
	FailureValueMissing   Failure = "valueMissing"
	FailureTypeMismatch   Failure = "typeMismatch"
	FailureRangeUnderflow Failure = "rangeUnderflow"
	FailureRangeOverflow  Failure = "rangeOverflow"
	FailureTooShort       Failure = "tooShort"
	FailureTooLong        Failure = "tooLong"
	FailureBadInput       Failure = "badInput"
)

// Result is the validity of a single control. It is derived from the current
// value on every call and never stored.
type Result struct {
	Field   string  `json:"field"`
	Valid   bool    `json:"valid"`
	Message string  `json:"message"`
	Failure Failure `json:"failure,omitempty"`
}

// Validator applies the field constraint rules using a message catalogue.
type Validator struct {
	messages Messages
}

// New builds a Validator. A zero Messages value selects the defaults.
func New(messages Messages) *Validator {
	return &Validator{messages: messages.withDefaults()}
}

// Messages returns the catalogue in use.
func (v *Validator) Messages() Messages {
	if v == nil {
		return DefaultMessages()
	}
	return v.messages
}

// Validate checks value against the declared constraints of field. Rules are
// evaluated in priority order and the first failure decides the message:
// required, type, numeric range, minimum length, then any other constraint.
func (v *Validator) Validate(field model.Field, value string) Result {
	messages := v.Messages()
	result := Result{Field: field.Name, Valid: true}

	failure := check(field, value)
	if failure == FailureNone {
		return result
	}

	result.Valid = false
	result.Failure = failure
	switch failure {
	case FailureValueMissing:
		result.Message = messages.Required
	case FailureTypeMismatch:
		result.Message = messages.InvalidFormat
	case FailureRangeUnderflow, FailureRangeOverflow:
		result.Message = messages.rangeMessage(field.Min, field.Max)
	case FailureTooShort:
		result.Message = messages.lengthMessage(field.MinLength)
	default:
		result.Message = messages.Invalid
	}
	return result
}

// Validate runs the default validator.
func Validate(field model.Field, value string) Result {
	return New(Messages{}).Validate(field, value)
}

func check(field model.Field, value string) Failure {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		if field.Required {
			return FailureValueMissing
		}
		return FailureNone
	}

	var number float64
	length := utf8.RuneCountInString(value)
	for _, rule := range field.Rules() {
		switch rule {
		case model.ValidationRuleFormat:
			if field.Numeric() {
				var failure Failure
				if number, failure = parseNumber(trimmed); failure != FailureNone {
					return failure
				}
			} else if !emailPattern.MatchString(trimmed) {
				return FailureTypeMismatch
			}
		case model.ValidationRuleMin:
			if number < *field.Min {
				return FailureRangeUnderflow
			}
		case model.ValidationRuleMax:
			if number > *field.Max {
				return FailureRangeOverflow
			}
		case model.ValidationRuleMinLength:
			if length < field.MinLength {
				return FailureTooShort
			}
		case model.ValidationRuleMaxLength:
			if length > field.MaxLength {
				return FailureTooLong
			}
		case model.ValidationRuleInteger:
			if number != math.Trunc(number) {
				return FailureBadInput
			}
		}
	}
	return FailureNone
}

// parseNumber accepts the floating-point syntax number inputs allow. Go
// literal forms such as "1_000", "0x10" or "Inf" are type mismatches.
func parseNumber(value string) (float64, Failure) {
	if !numberPattern.MatchString(value) {
		return 0, FailureTypeMismatch
	}
	number, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsInf(number, 0) {
		return 0, FailureBadInput
	}
	return number, FailureNone
}
