package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-contactdesk/pkg/render"
	rendertemplate "github.com/goliatone/go-contactdesk/pkg/render/template"
	gotemplate "github.com/goliatone/go-contactdesk/pkg/render/template/gotemplate"
)

const (
	pageTemplate    = "templates/page.tmpl"
	rowsTemplate    = "templates/rows.tmpl"
	previewTemplate = "templates/preview.tmpl"
)

type Option func(*config)

type config struct {
	templateFS  fs.FS
	submitLabel string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk laid out like the
// embedded bundle (templates/*.tmpl).
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithSubmitLabel sets the contact form button text.
func WithSubmitLabel(label string) Option {
	return func(cfg *config) {
		if label != "" {
			cfg.submitLabel = label
		}
	}
}

// Renderer produces plain HTML with no client framework. The page works
// without scripts; contactdesk.js upgrades filters, reloads and field hints.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), submitLabel: "送出"}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	engine, err := gotemplate.New(
		gotemplate.WithFS(cfg.templateFS),
		gotemplate.WithExtension(".tmpl"),
	)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
	}
	if err := engine.GlobalContext(map[string]any{"submit_label": cfg.submitLabel}); err != nil {
		return nil, fmt.Errorf("vanilla renderer: global context: %w", err)
	}

	return &Renderer{templates: engine}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) RenderPage(_ context.Context, page render.Page) ([]byte, error) {
	return r.render(pageTemplate, "page", page)
}

func (r *Renderer) RenderRows(_ context.Context, rows render.RowsView) ([]byte, error) {
	return r.render(rowsTemplate, "rows", rows)
}

func (r *Renderer) RenderPreview(_ context.Context, preview render.PreviewView) ([]byte, error) {
	out, err := r.render(previewTemplate, "preview", preview)
	if err != nil {
		return nil, err
	}
	return []byte(sanitizePreview(string(out))), nil
}

func (r *Renderer) render(name, key string, data any) ([]byte, error) {
	if r == nil || r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	result, err := r.templates.RenderTemplate(name, map[string]any{key: data})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render %s: %w", key, err)
	}
	return []byte(result), nil
}
