package vanilla

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-contactdesk/pkg/model"
	"github.com/goliatone/go-contactdesk/pkg/render"
	"github.com/goliatone/go-contactdesk/pkg/testsupport"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func TestRenderRows_EscapesCells(t *testing.T) {
	r := newRenderer(t)

	out, err := r.RenderRows(testsupport.Context(), render.RowsView{
		Columns: 3,
		Rows: [][]string{
			{"1", "<b>bold</b>", "a & b"},
			{"2", "second", "it's"},
		},
		Empty: "無符合資料",
	})
	if err != nil {
		t.Fatalf("render rows: %v", err)
	}
	want := "<tr><td>1</td><td>&lt;b&gt;bold&lt;/b&gt;</td><td>a &amp; b</td></tr>" +
		"<tr><td>2</td><td>second</td><td>it&#039;s</td></tr>"
	if string(out) != want {
		t.Fatalf("rows mismatch\nwant: %q\n got: %q", want, string(out))
	}
}

func TestRenderRows_EmptyPlaceholder(t *testing.T) {
	r := newRenderer(t)

	out, err := r.RenderRows(testsupport.Context(), render.RowsView{Columns: 5, Empty: "無符合資料"})
	if err != nil {
		t.Fatalf("render rows: %v", err)
	}
	want := `<tr><td colspan="5" class="muted">無符合資料</td></tr>`
	if string(out) != want {
		t.Fatalf("placeholder mismatch\nwant: %q\n got: %q", want, string(out))
	}
}

func TestRenderPreview_SanitizedAndEscaped(t *testing.T) {
	r := newRenderer(t)

	out, err := r.RenderPreview(testsupport.Context(), render.PreviewView{Items: []render.PreviewItem{
		{Label: "姓名：", HTML: render.EscapeHTML("<b>Ada</b>")},
		{Label: "留言內容：", HTML: render.EscapeMultiline("hi\nthere"), Block: true},
	}})
	if err != nil {
		t.Fatalf("render preview: %v", err)
	}
	html := string(out)
	for _, want := range []string{
		`<ul class="preview">`,
		"<li><strong>姓名：</strong>&lt;b&gt;Ada&lt;/b&gt;</li>",
		"<li><strong>留言內容：</strong><br>hi<br>there</li>",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in preview:\n%s", want, html)
		}
	}
	if strings.Contains(html, "<b>") {
		t.Fatalf("raw markup leaked into preview:\n%s", html)
	}
}

func TestRenderPreview_KeepsQuoteEntities(t *testing.T) {
	r := newRenderer(t)

	out, err := r.RenderPreview(testsupport.Context(), render.PreviewView{Items: []render.PreviewItem{
		{Label: "姓名：", HTML: render.EscapeHTML(`O'Neil "Al" & co`)},
	}})
	if err != nil {
		t.Fatalf("render preview: %v", err)
	}
	want := "<li><strong>姓名：</strong>O&#039;Neil &quot;Al&quot; &amp; co</li>"
	if !strings.Contains(string(out), want) {
		t.Fatalf("expected %q in preview:\n%s", want, out)
	}
}

func TestRenderPreview_DropsInjectedMarkup(t *testing.T) {
	r := newRenderer(t)

	out, err := r.RenderPreview(testsupport.Context(), render.PreviewView{Items: []render.PreviewItem{
		{Label: "x", HTML: `<script>alert(1)</script><img src=x onerror=alert(1)>`},
	}})
	if err != nil {
		t.Fatalf("render preview: %v", err)
	}
	if strings.Contains(string(out), "<script") || strings.Contains(string(out), "<img") {
		t.Fatalf("sanitizer kept unsafe markup: %s", out)
	}
}

func TestRenderPage_FormAndLists(t *testing.T) {
	r := newRenderer(t)

	form := testsupport.ContactForm()
	name := form.Fields[0]
	page := render.Page{
		Title:  "Contact",
		Lang:   "zh-Hant",
		Assets: "/assets",
		Script: true,
		Form: render.FormView{
			ID:          "contactForm",
			Action:      "/contact",
			ValidateURL: "/api/contact/validate",
			Fields: []render.FieldView{
				{Field: name, ID: "name", Value: `"><script>`, Message: "至少需輸入 2 個字", Invalid: true, Autofocus: true, InputType: "text"},
				{Field: model.Field{Name: "message", Label: "留言內容", Type: model.ControlTextarea}, ID: "message", Multiline: true},
				{Field: model.Field{Name: "score", Label: "Score", Type: model.ControlNumber}, ID: "score", InputType: "number", StepAttr: "any"},
			},
		},
		Lists: []render.ListView{{
			Name:       "posts",
			Title:      "Posts",
			TableID:    "postsTable",
			FilterID:   "filterPosts",
			ReloadID:   "reloadPosts",
			StateID:    "statePosts",
			Query:      "be ta",
			QueryParam: "posts_q",
			RowsParam:  "q",
			Columns:    []string{"#", "標題", "內容"},
			RowsHTML:   "<tr><td>1</td></tr>",
			State:      render.NewStateLabel(""),
			RowsURL:    "/lists/posts/rows",
			ReloadURL:  "/lists/posts/reload",
		}},
	}

	out, err := r.RenderPage(testsupport.Context(), page)
	if err != nil {
		t.Fatalf("render page: %v", err)
	}
	html := string(out)
	for _, want := range []string{
		`<form id="contactForm" action="/contact"`,
		`value="&quot;&gt;&lt;script&gt;"`,
		`aria-invalid="true" autofocus`,
		`<small class="error" data-for="name">至少需輸入 2 個字</small>`,
		`<textarea id="message" name="message" aria-invalid="false">`,
		`<small class="error" data-for="message"></small>`,
		`<table id="postsTable">`,
		`<tbody><tr><td>1</td></tr></tbody>`,
		`id="statePosts" class="state" role="status" style="display:none"`,
		`name="posts_q" value="be ta"`,
		`<input type="hidden" name="q" value="be ta">`,
		`data-param="q"`,
		`type="number" value="" step="any"`,
		`/assets/contactdesk.js`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in page:\n%s", want, html)
		}
	}
}

func TestAssetsFS_ServesBundle(t *testing.T) {
	for _, name := range []string{StylesheetName, RuntimeScriptName} {
		if _, err := fs.Stat(AssetsFS(), name); err != nil {
			t.Fatalf("expected asset %s: %v", name, err)
		}
	}
}

func TestNew_SubmitLabelAndTemplateOverride(t *testing.T) {
	files := fstest.MapFS{
		"templates/page.tmpl":    {Data: []byte(`<p>{{ page.Title }}|{{ submit_label }}</p>`)},
		"templates/rows.tmpl":    {Data: []byte(`rows`)},
		"templates/preview.tmpl": {Data: []byte(`<ul class="preview"></ul>`)},
	}
	r, err := New(WithTemplatesFS(files), WithSubmitLabel("Submit"))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := r.RenderPage(testsupport.Context(), render.Page{Title: "Contact"})
	if err != nil {
		t.Fatalf("render page: %v", err)
	}
	if got := string(out); got != "<p>Contact|Submit</p>" {
		t.Fatalf("unexpected page %q", got)
	}
}

func TestNew_TemplatesDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "templates"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "templates", "rows.tmpl"), []byte(`{{ rows.Columns }} columns`), 0o600); err != nil {
		t.Fatalf("write template: %v", err)
	}
	r, err := New(WithTemplatesDir(dir))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := r.RenderRows(testsupport.Context(), render.RowsView{Columns: 4})
	if err != nil {
		t.Fatalf("render rows: %v", err)
	}
	if string(out) != "4 columns" {
		t.Fatalf("unexpected rows %q", out)
	}
}
