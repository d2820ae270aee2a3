package template

import "io"

// TemplateRenderer executes named templates against a string-keyed data map.
// Output is returned and also copied to every writer in out.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	GlobalContext(data any) error
}
