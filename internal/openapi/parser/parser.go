package parser

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-contactdesk/pkg/model"
)

const (
	labelExtensionKey       = "x-label"
	placeholderExtensionKey = "x-placeholder"
	controlExtensionKey     = "x-control"
	orderExtensionKey       = "x-order"
)

var (
	ErrEmptyDocument     = errors.New("openapi parser: document payload is empty")
	ErrOperationNotFound = errors.New("openapi parser: operation not found")
	ErrNoRequestSchema   = errors.New("openapi parser: operation has no object request schema")
)

// Options configures parsing.
type Options struct {
	// Validate runs the kin-openapi document validator before extraction.
	Validate bool
	// Labeler derives a label when a property has no x-label.
	Labeler func(string) string
}

// Parser turns an OpenAPI operation's request body into a contact form model.
type Parser struct {
	options Options
}

// New constructs a Parser with the given options.
func New(options Options) *Parser {
	if options.Labeler == nil {
		options.Labeler = model.DefaultLabeler
	}
	return &Parser{options: options}
}

// Form loads raw (JSON or YAML) and builds the form declared by the operation
// with the given operationId. An empty operationID selects the first
// operation with an object request body, scanning paths in sorted order.
func (p *Parser) Form(ctx context.Context, raw []byte, operationID string) (model.FormModel, error) {
	if err := ctx.Err(); err != nil {
		return model.FormModel{}, err
	}
	if len(raw) == 0 {
		return model.FormModel{}, ErrEmptyDocument
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("openapi parser: load document: %w", err)
	}
	if p.options.Validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return model.FormModel{}, fmt.Errorf("openapi parser: validate: %w", err)
		}
	}

	method, path, operation := findOperation(spec, operationID)
	if operation == nil {
		if operationID == "" {
			return model.FormModel{}, ErrNoRequestSchema
		}
		return model.FormModel{}, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}

	schema := requestSchema(operation.RequestBody)
	if schema == nil || len(schema.Properties) == 0 {
		return model.FormModel{}, fmt.Errorf("%w: %s %s", ErrNoRequestSchema, method, path)
	}

	id := operation.OperationID
	if id == "" {
		id = strings.ToLower(method) + ":" + path
	}
	form := model.FormModel{
		ID:          id,
		Endpoint:    path,
		Method:      method,
		Summary:     operation.Summary,
		Description: operation.Description,
		Fields:      p.fields(schema),
	}
	return form, nil
}

func findOperation(spec *openapi3.T, operationID string) (string, string, *openapi3.Operation) {
	if spec == nil || spec.Paths == nil {
		return "", "", nil
	}
	items := spec.Paths.Map()
	paths := make([]string, 0, len(items))
	for path := range items {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		item := items[path]
		if item == nil {
			continue
		}
		for _, candidate := range []struct {
			method string
			op     *openapi3.Operation
		}{
			{"POST", item.Post},
			{"PUT", item.Put},
			{"PATCH", item.Patch},
		} {
			if candidate.op == nil {
				continue
			}
			if operationID != "" && candidate.op.OperationID != operationID {
				continue
			}
			if operationID == "" && requestSchema(candidate.op.RequestBody) == nil {
				continue
			}
			return candidate.method, path, candidate.op
		}
	}
	return "", "", nil
}

func requestSchema(requestBody *openapi3.RequestBodyRef) *openapi3.Schema {
	if requestBody == nil || requestBody.Value == nil {
		return nil
	}
	content := requestBody.Value.Content
	for _, mediaType := range []string{"application/x-www-form-urlencoded", "multipart/form-data", "application/json"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	for _, mt := range content {
		if mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

type orderedField struct {
	field model.Field
	order float64
}

func (p *Parser) fields(schema *openapi3.Schema) []model.Field {
	required := make(map[string]struct{}, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = struct{}{}
	}

	ordered := make([]orderedField, 0, len(schema.Properties))
	for name, ref := range schema.Properties {
		if ref == nil || ref.Value == nil {
			continue
		}
		_, isRequired := required[name]
		field := p.convertProperty(name, ref.Value, isRequired)
		order, ok := number(ref.Value.Extensions[orderExtensionKey])
		if !ok {
			order = math.MaxFloat64
		}
		ordered = append(ordered, orderedField{field: field, order: order})
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].order != ordered[j].order {
			return ordered[i].order < ordered[j].order
		}
		return ordered[i].field.Name < ordered[j].field.Name
	})

	out := make([]model.Field, 0, len(ordered))
	for _, entry := range ordered {
		out = append(out, entry.field)
	}
	return out
}

func (p *Parser) convertProperty(name string, src *openapi3.Schema, required bool) model.Field {
	field := model.Field{
		Name:        name,
		Label:       stringExtension(src.Extensions, labelExtensionKey),
		Placeholder: stringExtension(src.Extensions, placeholderExtensionKey),
		Description: src.Description,
		Required:    required,
		Type:        controlType(src),
	}
	if field.Label == "" {
		field.Label = p.options.Labeler(name)
	}
	if src.Min != nil {
		field.Min = model.Float(*src.Min)
	}
	if src.Max != nil {
		field.Max = model.Float(*src.Max)
	}
	if src.MinLength > 0 {
		field.MinLength = int(src.MinLength)
	}
	if src.MaxLength != nil {
		field.MaxLength = int(*src.MaxLength)
	}
	if field.Numeric() && src.Type != nil && src.Type.Is(openapi3.TypeInteger) {
		field.Integer = true
	}
	return field
}

func controlType(src *openapi3.Schema) model.ControlType {
	if control := stringExtension(src.Extensions, controlExtensionKey); control != "" {
		switch model.ControlType(strings.ToLower(control)) {
		case model.ControlTextarea:
			return model.ControlTextarea
		case model.ControlEmail:
			return model.ControlEmail
		case model.ControlNumber:
			return model.ControlNumber
		case model.ControlText:
			return model.ControlText
		}
	}
	if src.Type != nil && (src.Type.Is(openapi3.TypeInteger) || src.Type.Is(openapi3.TypeNumber)) {
		return model.ControlNumber
	}
	if strings.EqualFold(src.Format, "email") {
		return model.ControlEmail
	}
	return model.ControlText
}

func stringExtension(extensions map[string]any, key string) string {
	if len(extensions) == 0 {
		return ""
	}
	value, ok := extensions[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}

func number(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	default:
		return 0, false
	}
}
