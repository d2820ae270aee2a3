package gotemplate

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-contactdesk/pkg/render"
	"github.com/goliatone/go-contactdesk/pkg/render/template"
)

const defaultExtension = ".tmpl"

var (
	ErrNilEngine  = errors.New("gotemplate: engine is nil")
	ErrNoTemplate = errors.New("gotemplate: no template source")
)

// Option configures the engine before construction.
type Option func(*Engine)

// WithFS loads templates from files.
func WithFS(files fs.FS) Option {
	return func(e *Engine) {
		e.files = files
	}
}

// WithExtension sets the suffix appended to template names that lack it.
func WithExtension(ext string) Option {
	return func(e *Engine) {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			return
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		e.ext = ext
	}
}

// Engine implements template.TemplateRenderer on a pongo2 template set.
// Parsed files are cached by path.
type Engine struct {
	files fs.FS
	ext   string

	mu     sync.RWMutex
	set    *pongo2.TemplateSet
	parsed map[string]*pongo2.Template
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New builds an engine. A template source is required.
func New(options ...Option) (*Engine, error) {
	e := &Engine{ext: defaultExtension, parsed: map[string]*pongo2.Template{}}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	if e.files == nil {
		return nil, ErrNoTemplate
	}
	e.set = pongo2.NewSet("contactdesk", pongo2.NewFSLoader(e.files))
	e.set.Globals = pongo2.Context{}
	registerEntities()
	return e, nil
}

// RenderTemplate executes the file name, appending the extension if missing.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", ErrNilEngine
	}
	if !strings.HasSuffix(name, e.ext) {
		name += e.ext
	}
	tmpl, err := e.lookup(name)
	if err != nil {
		return "", err
	}
	return e.execute(tmpl, data, name, out)
}

// GlobalContext merges data, a string-keyed map, into the values every
// template sees.
func (e *Engine) GlobalContext(data any) error {
	if e == nil || e.set == nil {
		return ErrNilEngine
	}
	ctx, err := toContext(data)
	if err != nil {
		return err
	}
	e.mu.Lock()
	e.set.Globals.Update(ctx)
	e.mu.Unlock()
	return nil
}

func (e *Engine) execute(tmpl *pongo2.Template, data any, label string, out []io.Writer) (string, error) {
	ctx, err := toContext(data)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	e.mu.RLock()
	err = tmpl.ExecuteWriter(ctx, &buf)
	e.mu.RUnlock()
	if err != nil {
		return "", fmt.Errorf("gotemplate: execute %s: %w", label, err)
	}

	rendered := buf.String()
	for _, w := range out {
		if w == nil {
			continue
		}
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", err
		}
	}
	return rendered, nil
}

func (e *Engine) lookup(name string) (*pongo2.Template, error) {
	e.mu.RLock()
	tmpl, ok := e.parsed[name]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.parsed[name]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load %q: %w", name, err)
	}
	e.parsed[name] = tmpl
	return tmpl, nil
}

// toContext accepts nil or a string-keyed map. View structs travel inside the
// map so pongo2 resolves their fields and methods itself.
func toContext(data any) (pongo2.Context, error) {
	var in map[string]any
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		in = v
	case map[string]any:
		in = v
	default:
		return nil, fmt.Errorf("gotemplate: unsupported template data %T, wrap values in a map", data)
	}
	out := make(pongo2.Context, len(in))
	for key, value := range in {
		if key = strings.TrimSpace(key); key != "" {
			out[key] = value
		}
	}
	return out, nil
}

var entitiesOnce sync.Once

// registerEntities adds the "entities" filter: render.EscapeHTML marked safe
// so autoescape does not encode it twice.
func registerEntities() {
	entitiesOnce.Do(func() {
		if pongo2.FilterExists("entities") {
			return
		}
		_ = pongo2.RegisterFilter("entities", func(in, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
			if in.IsNil() {
				return pongo2.AsSafeValue(""), nil
			}
			return pongo2.AsSafeValue(render.EscapeHTML(in.String())), nil
		})
	})
}
