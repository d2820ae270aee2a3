package server

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-contactdesk/internal/config"
	"github.com/goliatone/go-contactdesk/pkg/render"
	"github.com/goliatone/go-contactdesk/pkg/renderers/vanilla"
)

const customSchema = `openapi: 3.0.3
info: { title: Feedback, version: 1.0.0 }
paths:
  /feedback:
    post:
      operationId: sendFeedback
      requestBody:
        content:
          application/json:
            schema:
              type: object
              required: [comment]
              properties:
                comment: { type: string, minLength: 3, x-control: textarea, x-label: Comment }
      responses:
        "200": { description: ok }
`

func TestNewContact_CustomSchemaFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedback.yaml")
	if err := os.WriteFile(path, []byte(customSchema), 0o600); err != nil {
		t.Fatalf("write schema: %v", err)
	}
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	cfg := config.Default()
	cfg.FormSchema = path
	cfg.FormOperationID = "sendFeedback"

	component, err := NewContact(context.Background(), cfg, renderer, zerolog.Nop())
	if err != nil {
		t.Fatalf("new contact: %v", err)
	}
	form := component.Form()
	if len(form.Fields) != 1 || form.Fields[0].Name != "comment" {
		t.Fatalf("unexpected fields: %+v", form.Fields)
	}
	if result, _ := component.Validate("comment", "ok"); result.Valid {
		t.Fatalf("expected short comment to be invalid")
	}
}

func TestNewContact_MissingSchemaFile(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	cfg := config.Default()
	cfg.FormSchema = filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := NewContact(context.Background(), cfg, renderer, zerolog.Nop()); err == nil {
		t.Fatalf("expected error for missing schema file")
	}
}

func TestNewRenderer_EnglishLocale(t *testing.T) {
	cfg := config.Default()
	cfg.Locale = "en-GB"
	renderer, err := NewRenderer(cfg)
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	component, err := NewContact(context.Background(), cfg, renderer, zerolog.Nop())
	if err != nil {
		t.Fatalf("new contact: %v", err)
	}
	out, err := renderer.RenderPage(context.Background(), render.Page{Title: "Contact", Form: component.View(nil)})
	if err != nil {
		t.Fatalf("render page: %v", err)
	}
	if !strings.Contains(string(out), ">Submit</button>") {
		t.Fatalf("expected English submit label:\n%s", out)
	}
}
