package parser

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-contactdesk/pkg/model"
)

// Violation is one problem found by Lint.
type Violation struct {
	Location string
	Message  string
}

func (v Violation) String() string {
	return v.Location + " -> " + v.Message
}

// Lint checks every writable operation's request schema for form extensions
// the parser would ignore or misread: unknown x-control values, non-string
// labels, non-numeric x-order, and property types no control can carry.
func Lint(ctx context.Context, raw []byte) ([]Violation, error) {
	if len(raw) == 0 {
		return nil, ErrEmptyDocument
	}
	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: load document: %w", err)
	}
	if spec.Paths == nil {
		return nil, nil
	}

	items := spec.Paths.Map()
	paths := make([]string, 0, len(items))
	for path := range items {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var result []Violation
	for _, path := range paths {
		item := items[path]
		if item == nil {
			continue
		}
		for method, op := range map[string]*openapi3.Operation{"POST": item.Post, "PUT": item.Put, "PATCH": item.Patch} {
			if op == nil {
				continue
			}
			schema := requestSchema(op.RequestBody)
			if schema == nil {
				continue
			}
			base := []string{method + " " + path}
			if op.OperationID != "" {
				base = []string{"operation", op.OperationID}
			}
			result = append(result, lintProperties(base, schema)...)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Location == result[j].Location {
			return result[i].Message < result[j].Message
		}
		return result[i].Location < result[j].Location
	})
	return result, nil
}

func lintProperties(base []string, schema *openapi3.Schema) []Violation {
	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	var result []Violation
	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		prop := ref.Value
		location := strings.Join(append(append([]string(nil), base...), "properties."+name), " > ")

		if prop.Type != nil && (prop.Type.Is(openapi3.TypeArray) || prop.Type.Is(openapi3.TypeObject)) {
			result = append(result, Violation{Location: location, Message: "nested arrays and objects have no form control"})
		}
		for _, key := range []string{labelExtensionKey, placeholderExtensionKey} {
			if value, ok := prop.Extensions[key]; ok {
				if _, isString := value.(string); !isString {
					result = append(result, Violation{Location: location, Message: fmt.Sprintf("%s must be a string, found %T", key, value)})
				}
			}
		}
		if value, ok := prop.Extensions[controlExtensionKey]; ok {
			control, _ := value.(string)
			switch model.ControlType(strings.ToLower(strings.TrimSpace(control))) {
			case model.ControlText, model.ControlEmail, model.ControlNumber, model.ControlTextarea:
			default:
				result = append(result, Violation{Location: location, Message: fmt.Sprintf("unsupported %s %v (supported: text, email, number, textarea)", controlExtensionKey, value)})
			}
		}
		if value, ok := prop.Extensions[orderExtensionKey]; ok {
			if _, isNumber := number(value); !isNumber {
				result = append(result, Violation{Location: location, Message: fmt.Sprintf("%s must be a number, found %T", orderExtensionKey, value)})
			}
		}
	}
	return result
}
