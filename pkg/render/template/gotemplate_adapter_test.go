package template_test

import (
	"embed"
	"errors"
	"io"
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-contactdesk/pkg/render/template/gotemplate"
	"github.com/goliatone/go-contactdesk/pkg/testsupport"
)

//go:embed testdata/templates/*.tmpl
var embeddedTemplates embed.FS

type rowView struct {
	Title string
}

func (r rowView) Label() string { return "row:" + r.Title }

func TestGoTemplateEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})

	if want := "Hello Ada!"; result != want {
		t.Fatalf("render template mismatch result\nwant: %q\n got: %q", want, result)
	}
	if written != result {
		t.Fatalf("writer mismatch\nwant: %q\n got: %q", result, written)
	}
}

func TestGoTemplateEngine_AutoescapesPlainValues(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.RenderTemplate("hello", map[string]any{"name": "<b>Ada</b>"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(result, "<b>") {
		t.Fatalf("expected markup to be escaped, got %q", result)
	}
}

func TestGoTemplateEngine_EntitiesFilter(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.RenderTemplate("cell", map[string]any{"cell": `Tom & "Jerry's" <b>`})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "<td>Tom &amp; &quot;Jerry&#039;s&quot; &lt;b&gt;</td>"
	if result != want {
		t.Fatalf("entities mismatch\nwant: %q\n got: %q", want, result)
	}
}

func TestGoTemplateEngine_StructFieldsAndMethods(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.RenderTemplate("struct", map[string]any{"row": rowView{Title: "first"}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := "first|row:first"; result != want {
		t.Fatalf("struct render mismatch\nwant: %q\n got: %q", want, result)
	}
}

func TestGoTemplateEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	result, err := engine.RenderTemplate("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "staging" {
		t.Fatalf("expected global value, got %q", result)
	}
}

func TestGoTemplateEngine_RejectsNonMapData(t *testing.T) {
	engine := newEngine(t)

	if _, err := engine.RenderTemplate("hello", rowView{Title: "x"}); err == nil {
		t.Fatalf("expected error for struct data")
	}
}

func TestNew_RequiresTemplateSource(t *testing.T) {
	if _, err := gotemplate.New(); !errors.Is(err, gotemplate.ErrNoTemplate) {
		t.Fatalf("expected ErrNoTemplate, got %v", err)
	}
}

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()

	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}

	engine, err := gotemplate.New(gotemplate.WithFS(templatesFS))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}
