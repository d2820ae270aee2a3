package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contactdesk/pkg/model"
)

// ContactForm returns the contact form declared by the embedded schema, built
// in code so tests do not depend on the parser.
func ContactForm() model.FormModel {
	return model.FormModel{
		ID:       "submitContact",
		Endpoint: "/contact",
		Method:   http.MethodPost,
		Fields: []model.Field{
			{Name: "name", Label: "姓名", Type: model.ControlText, Required: true, MinLength: 2},
			{Name: "email", Label: "Email", Type: model.ControlEmail, Required: true},
			{Name: "age", Label: "年齡", Type: model.ControlNumber, Min: model.Float(1), Max: model.Float(120), Integer: true},
			{Name: "message", Label: "留言內容", Type: model.ControlTextarea, Required: true, MinLength: 10},
		},
	}
}

// WriteGolden writes arbitrary data to a golden file when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}

// Upstream is a scripted JSON endpoint standing in for the remote list API.
// Responses are served in order; the last one repeats once the script is
// exhausted.
type Upstream struct {
	Server *httptest.Server

	mu        sync.Mutex
	responses []Response
	hits      atomic.Int64
	queries   []string
}

// Response is one scripted reply. A nil Body with status 200 writes "[]".
type Response struct {
	Status int
	Body   any
	Raw    string
	// Gate, when set, blocks the reply until it is closed.
	Gate chan struct{}
}

// NewUpstream starts a test server that replays responses.
func NewUpstream(t *testing.T, responses ...Response) *Upstream {
	t.Helper()

	u := &Upstream{responses: responses}
	u.Server = httptest.NewServer(http.HandlerFunc(u.serve))
	t.Cleanup(u.Server.Close)
	return u
}

// URL returns the server URL joined with path.
func (u *Upstream) URL(path string) string {
	return u.Server.URL + path
}

// Hits reports how many requests were served.
func (u *Upstream) Hits() int {
	return int(u.hits.Load())
}

// Queries returns the raw query strings received, in order.
func (u *Upstream) Queries() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.queries...)
}

func (u *Upstream) serve(w http.ResponseWriter, r *http.Request) {
	index := int(u.hits.Add(1)) - 1

	u.mu.Lock()
	u.queries = append(u.queries, r.URL.RawQuery)
	var resp Response
	if len(u.responses) > 0 {
		if index >= len(u.responses) {
			index = len(u.responses) - 1
		}
		resp = u.responses[index]
	}
	u.mu.Unlock()

	if resp.Gate != nil {
		select {
		case <-resp.Gate:
		case <-r.Context().Done():
			return
		}
	}

	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	switch {
	case resp.Raw != "":
		_, _ = io.WriteString(w, resp.Raw)
	case resp.Body != nil:
		_ = json.NewEncoder(w).Encode(resp.Body)
	case status == http.StatusOK:
		_, _ = io.WriteString(w, "[]")
	}
}
