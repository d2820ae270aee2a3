package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-contactdesk/components/lists"
	"github.com/goliatone/go-contactdesk/pkg/testsupport"
)

func TestListCommand_PrintsFilteredRows(t *testing.T) {
	upstream := testsupport.NewUpstream(t, testsupport.Response{Body: []lists.Post{
		{ID: 1, Title: "alpha", Body: "first body"},
		{ID: 2, Title: "beta", Body: "second body"},
	}})
	t.Setenv("CONTACTDESK_POSTS_ENDPOINT", upstream.URL("/posts"))

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"list", "posts", "--q", "BET", "--env-file", "", "--log-level", "error"})

	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("execute: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "beta") || strings.Contains(got, "alpha") {
		t.Fatalf("unexpected output:\n%s", got)
	}
	if !strings.Contains(got, "#") || !strings.Contains(got, "標題") {
		t.Fatalf("expected header row:\n%s", got)
	}
	if q := upstream.Queries(); len(q) != 1 || q[0] != "_limit=10" {
		t.Fatalf("unexpected upstream queries: %v", q)
	}
}

func TestListCommand_UnknownList(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"list", "comments", "--env-file", ""})

	err := root.ExecuteContext(context.Background())
	if err == nil || !strings.Contains(err.Error(), "comments") {
		t.Fatalf("expected unknown list error, got %v", err)
	}
}

func TestLintSchemaCommand_EmbeddedSchema(t *testing.T) {
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"lint-schema"})

	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if strings.TrimSpace(out.String()) != "ok" {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestLintSchemaCommand_ReportsViolations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	doc := `openapi: 3.0.3
info: { title: Bad, version: 1.0.0 }
paths:
  /contact:
    post:
      operationId: submitContact
      requestBody:
        content:
          application/json:
            schema:
              type: object
              properties:
                name: { type: string, x-control: slider }
      responses:
        "200": { description: ok }
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"lint-schema", path})

	err := root.ExecuteContext(context.Background())
	if !errors.Is(err, errLintViolations) {
		t.Fatalf("expected lint violations error, got %v", err)
	}
	if !strings.Contains(out.String(), "unsupported x-control slider") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}
