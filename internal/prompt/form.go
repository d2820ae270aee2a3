package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-contactdesk/pkg/model"
	"github.com/goliatone/go-contactdesk/pkg/validation"
)

// ErrCancelled is returned when the user declines to send the form.
var ErrCancelled = errors.New("prompt: submission cancelled")

// ValidateFunc checks one control value by field name.
type ValidateFunc func(name, value string) (validation.Result, error)

// FillForm asks for every field in form order and returns the answers. Each
// answer is re-asked until validate accepts it. The user confirms before the
// values are returned.
func FillForm(ctx context.Context, driver Driver, form model.FormModel, validate ValidateFunc) (map[string]string, error) {
	values := make(map[string]string, len(form.Fields))
	for _, field := range form.Fields {
		name := field.Name
		check := func(value string) error {
			result, err := validate(name, value)
			if err != nil {
				return err
			}
			if !result.Valid {
				return errors.New(result.Message)
			}
			return nil
		}

		var (
			value string
			err   error
		)
		if field.Type == model.ControlTextarea {
			value, err = driver.TextArea(ctx, TextAreaConfig{
				Message:   field.Label,
				Help:      help(field),
				Validator: check,
			})
		} else {
			value, err = driver.Input(ctx, InputConfig{
				Message:   field.Label,
				Help:      help(field),
				Validator: check,
			})
		}
		if err != nil {
			return nil, fmt.Errorf("prompt: %s: %w", name, err)
		}
		values[name] = value
	}

	ok, err := driver.Confirm(ctx, ConfirmConfig{Message: "送出？", Default: true})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCancelled
	}
	return values, nil
}

// Summary renders the accepted values as plain text lines in form order.
func Summary(form model.FormModel, values map[string]string) string {
	var b strings.Builder
	for _, field := range form.Fields {
		value := values[field.Name]
		if value == "" {
			value = "—"
		}
		fmt.Fprintf(&b, "%s：%s\n", field.Label, value)
	}
	return b.String()
}

func help(field model.Field) string {
	var parts []string
	if field.Description != "" {
		parts = append(parts, field.Description)
	}
	ranged := false
	for _, rule := range field.Rules() {
		switch rule {
		case model.ValidationRuleRequired:
			parts = append(parts, "required")
		case model.ValidationRuleMin, model.ValidationRuleMax:
			if !ranged {
				parts = append(parts, "range "+bound(field.Min)+"-"+bound(field.Max))
				ranged = true
			}
		case model.ValidationRuleMinLength:
			parts = append(parts, fmt.Sprintf("min %d chars", field.MinLength))
		case model.ValidationRuleMaxLength:
			parts = append(parts, fmt.Sprintf("max %d chars", field.MaxLength))
		case model.ValidationRuleInteger:
			parts = append(parts, "whole number")
		}
	}
	return strings.Join(parts, ", ")
}

func bound(v *float64) string {
	if v == nil {
		return "?"
	}
	return fmt.Sprintf("%g", *v)
}
