package contact

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-contactdesk/internal/openapi/parser"
	"github.com/goliatone/go-contactdesk/pkg/model"
	"github.com/goliatone/go-contactdesk/pkg/render"
	"github.com/goliatone/go-contactdesk/pkg/renderers/vanilla"
	"github.com/goliatone/go-contactdesk/pkg/validation"
)

const (
	emptyValue     = "—"
	labelSeparator = "："
)

// ErrUnknownField is returned when a field name is not part of the form.
var ErrUnknownField = errors.New("contact: unknown field")

// Submission is the outcome of a form post. Preview is set only when every
// field is valid; Values holds what the form should show next, which is the
// submitted input on failure and empty values on success.
type Submission struct {
	Result  validation.FormResult
	Preview string
	Values  map[string]string
}

// Accepted reports whether the submission produced a preview.
func (s Submission) Accepted() bool {
	return s.Result.Valid
}

// Component is the contact form feature.
type Component struct {
	opts      Options
	form      model.FormModel
	validator *validation.Validator
}

// New builds the component. Unless a form model is supplied, the OpenAPI
// document is parsed once here.
func New(ctx context.Context, fns ...OptionFn) (*Component, error) {
	opts := NewOptions(fns...)

	form := opts.Form
	if len(form.Fields) == 0 {
		raw := opts.Schema
		if len(raw) == 0 {
			raw = defaultSchema
		}
		parsed, err := parser.New(parser.Options{}).Form(ctx, raw, opts.OperationID)
		if err != nil {
			return nil, fmt.Errorf("contact: load form: %w", err)
		}
		form = parsed
	}

	if opts.Renderer == nil {
		renderer, err := vanilla.New()
		if err != nil {
			return nil, fmt.Errorf("contact: %w", err)
		}
		opts.Renderer = renderer
	}
	opts.Logger = opts.Logger.With().Str("form", form.ID).Logger()

	return &Component{
		opts:      opts,
		form:      form,
		validator: validation.New(opts.Messages),
	}, nil
}

// Form returns the form model.
func (c *Component) Form() model.FormModel {
	form := c.form
	form.Fields = append([]model.Field{}, c.form.Fields...)
	return form
}

// Validate checks a single control value.
func (c *Component) Validate(name, value string) (validation.Result, error) {
	field, ok := c.form.Field(name)
	if !ok {
		return validation.Result{}, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return c.validator.Validate(field, value), nil
}

// Submit validates every field. When all pass, the values are escaped into
// a preview and the returned Values are empty, resetting the form.
func (c *Component) Submit(ctx context.Context, values map[string]string) (Submission, error) {
	result := c.validator.ValidateForm(c.form, values)
	if !result.Valid {
		c.opts.Logger.Debug().
			Str("first_invalid", result.FirstInvalid).
			Int("invalid", len(result.Messages())).
			Msg("contact submission rejected")
		return Submission{Result: result, Values: copyValues(values)}, nil
	}

	preview, err := c.Preview(ctx, values)
	if err != nil {
		return Submission{}, err
	}
	c.opts.Logger.Info().Msg("contact submission accepted")
	return Submission{Result: result, Preview: preview, Values: map[string]string{}}, nil
}

// Preview renders the escaped summary list of values in form order. Empty
// values are shown as an em dash and textarea line breaks become <br>.
func (c *Component) Preview(ctx context.Context, values map[string]string) (string, error) {
	items := make([]render.PreviewItem, 0, len(c.form.Fields))
	for _, field := range c.form.Fields {
		value := values[field.Name]
		item := render.PreviewItem{
			Label: field.Label + labelSeparator,
			Block: field.Type == model.ControlTextarea,
		}
		switch {
		case strings.TrimSpace(value) == "":
			item.HTML = render.EscapeHTML(emptyValue)
		case item.Block:
			item.HTML = render.EscapeMultiline(value)
		default:
			item.HTML = render.EscapeHTML(value)
		}
		items = append(items, item)
	}

	out, err := c.opts.Renderer.RenderPreview(ctx, render.PreviewView{Items: items})
	if err != nil {
		return "", fmt.Errorf("contact: render preview: %w", err)
	}
	return string(out), nil
}

// View builds the form state for rendering. A nil submission yields a blank
// form with no hints.
func (c *Component) View(submission *Submission) render.FormView {
	view := render.FormView{
		ID:          "contactForm",
		Action:      c.form.Endpoint,
		Method:      c.form.Method,
		ValidateURL: c.opts.ValidatePath,
		Fields:      make([]render.FieldView, 0, len(c.form.Fields)),
	}

	var values map[string]string
	var results map[string]validation.Result
	if submission != nil {
		values = submission.Values
		results = submission.Result.Fields
		view.PreviewHTML = submission.Preview
		if !submission.Result.Valid {
			view.FirstInvalid = submission.Result.FirstInvalid
			view.FormErrors = render.MergeFormErrors(nil, c.opts.SummaryMessage)
		}
	}

	for _, field := range c.form.Fields {
		fv := render.FieldView{
			Field:     field,
			ID:        field.Name,
			Value:     values[field.Name],
			Multiline: field.Type == model.ControlTextarea,
			InputType: inputType(field.Type),
			MinAttr:   formatBound(field.Min),
			MaxAttr:   formatBound(field.Max),
			StepAttr:  stepAttr(field),
		}
		if result, ok := results[field.Name]; ok && !result.Valid {
			fv.Invalid = true
			fv.Message = result.Message
		}
		fv.Autofocus = view.FirstInvalid != "" && view.FirstInvalid == field.Name
		view.Fields = append(view.Fields, fv)
	}
	return view
}

func inputType(control model.ControlType) string {
	switch control {
	case model.ControlEmail:
		return "email"
	case model.ControlNumber:
		return "number"
	default:
		return "text"
	}
}

// stepAttr lets fractional values through on number inputs that are not
// integer only. The browser default step of 1 already matches integers.
func stepAttr(field model.Field) string {
	if field.Numeric() && !field.Integer {
		return "any"
	}
	return ""
}

func formatBound(bound *float64) string {
	if bound == nil {
		return ""
	}
	return strconv.FormatFloat(*bound, 'f', -1, 64)
}

func copyValues(values map[string]string) map[string]string {
	out := make(map[string]string, len(values))
	for key, value := range values {
		out[key] = value
	}
	return out
}

// Values extracts the form fields from decoded form data, keeping the first
// value of each known field.
func (c *Component) Values(data map[string][]string) map[string]string {
	out := make(map[string]string, len(c.form.Fields))
	for _, field := range c.form.Fields {
		if vs := data[field.Name]; len(vs) > 0 {
			out[field.Name] = vs[0]
		}
	}
	return out
}
