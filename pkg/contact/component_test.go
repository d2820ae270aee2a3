package contact_test

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contactdesk/pkg/contact"
	"github.com/goliatone/go-contactdesk/pkg/model"
	"github.com/goliatone/go-contactdesk/pkg/testsupport"
	"github.com/goliatone/go-contactdesk/pkg/validation"
)

func newComponent(t *testing.T, fns ...contact.OptionFn) *contact.Component {
	t.Helper()
	c, err := contact.New(context.Background(), fns...)
	if err != nil {
		t.Fatalf("new contact component: %v", err)
	}
	return c
}

func validValues() map[string]string {
	return map[string]string{
		"name":    "Ada",
		"email":   "ada@example.com",
		"age":     "36",
		"message": "Hello there, analytical engine.",
	}
}

func TestNew_ParsesEmbeddedSchema(t *testing.T) {
	c := newComponent(t)
	want := testsupport.ContactForm()
	got := c.Form()

	if diff := cmp.Diff(want.Fields, got.Fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	if got.ID != want.ID || got.Endpoint != want.Endpoint || got.Method != want.Method {
		t.Fatalf("unexpected form identity: %s %s %s", got.ID, got.Method, got.Endpoint)
	}
}

func TestNew_EmbeddedSchemaGolden(t *testing.T) {
	got := newComponent(t).Form()
	path := filepath.Join("testdata", "contact_form.golden.json")
	testsupport.WriteGolden(t, path, got)

	var want model.FormModel
	if err := json.Unmarshal(testsupport.MustReadGolden(t, path), &want); err != nil {
		t.Fatalf("decode golden: %v", err)
	}
	got.Summary, got.Description = want.Summary, want.Description
	if diff := testsupport.CompareGolden(want, got); diff != "" {
		t.Fatalf("form mismatch (-want +got):\n%s", diff)
	}
}

func TestNew_UsesSuppliedForm(t *testing.T) {
	form := testsupport.ContactForm()
	form.Fields = form.Fields[:1]
	c := newComponent(t, contact.WithForm(form))
	if names := c.Form().Names(); len(names) != 1 || names[0] != "name" {
		t.Fatalf("unexpected fields: %v", names)
	}
}

func TestNew_RejectsBrokenSchema(t *testing.T) {
	_, err := contact.New(context.Background(), contact.WithSchema([]byte("openapi: [nope"), "submitContact"))
	if err == nil {
		t.Fatalf("expected error for invalid schema")
	}
}

func TestValidate_FieldRules(t *testing.T) {
	c := newComponent(t)
	cases := []struct {
		field   string
		value   string
		valid   bool
		message string
	}{
		{field: "name", value: "  ", message: "此欄位為必填"},
		{field: "name", value: "A", message: "至少需輸入 2 個字"},
		{field: "name", value: "Ada", valid: true},
		{field: "email", value: "not-an-email", message: "格式不正確，請重新輸入"},
		{field: "email", value: "ada@example.com", valid: true},
		{field: "age", value: "", valid: true},
		{field: "age", value: "0", message: "數值需介於 1 ~ 120"},
		{field: "age", value: "121", message: "數值需介於 1 ~ 120"},
		{field: "age", value: "abc", message: "格式不正確，請重新輸入"},
		{field: "age", value: "25.5", message: "輸入有誤"},
		{field: "age", value: "1_0", message: "格式不正確，請重新輸入"},
		{field: "message", value: "short", message: "至少需輸入 10 個字"},
	}
	for _, tc := range cases {
		got, err := c.Validate(tc.field, tc.value)
		if err != nil {
			t.Fatalf("validate %s: %v", tc.field, err)
		}
		if got.Valid != tc.valid || got.Message != tc.message {
			t.Fatalf("validate(%s, %q) = %+v, want valid=%v message=%q", tc.field, tc.value, got, tc.valid, tc.message)
		}
	}
}

func TestValidate_UnknownField(t *testing.T) {
	c := newComponent(t)
	if _, err := c.Validate("phone", "123"); !errors.Is(err, contact.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestSubmit_InvalidKeepsValuesAndSkipsPreview(t *testing.T) {
	c := newComponent(t)
	values := validValues()
	values["email"] = "broken"
	values["message"] = ""

	sub, err := c.Submit(context.Background(), values)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if sub.Accepted() || sub.Preview != "" {
		t.Fatalf("invalid submission must not render a preview: %+v", sub)
	}
	if diff := cmp.Diff(values, sub.Values); diff != "" {
		t.Fatalf("values should be echoed back (-want +got):\n%s", diff)
	}
	if sub.Result.FirstInvalid != "email" {
		t.Fatalf("expected email to receive focus, got %q", sub.Result.FirstInvalid)
	}
	want := map[string]string{"email": "格式不正確，請重新輸入", "message": "此欄位為必填"}
	if diff := cmp.Diff(want, sub.Result.Messages()); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmit_ValidResetsAndEscapesPreview(t *testing.T) {
	c := newComponent(t)
	values := validValues()
	values["name"] = "<b>Ada</b> & co"
	values["age"] = ""
	values["message"] = "line one\nline <two>"

	sub, err := c.Submit(context.Background(), values)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !sub.Accepted() {
		t.Fatalf("expected accepted submission: %+v", sub.Result)
	}
	if len(sub.Values) != 0 {
		t.Fatalf("expected form reset, got %v", sub.Values)
	}

	for _, want := range []string{
		`<ul class="preview">`,
		"<li><strong>姓名：</strong>&lt;b&gt;Ada&lt;/b&gt; &amp; co</li>",
		"<li><strong>Email：</strong>ada@example.com</li>",
		"<li><strong>年齡：</strong>—</li>",
		"<li><strong>留言內容：</strong><br>line one<br>line &lt;two&gt;</li>",
	} {
		if !strings.Contains(sub.Preview, want) {
			t.Fatalf("expected %q in preview:\n%s", want, sub.Preview)
		}
	}
	if strings.Contains(sub.Preview, "<b>") {
		t.Fatalf("raw markup leaked into preview:\n%s", sub.Preview)
	}
}

func TestSubmit_PreviewFollowsFormOrder(t *testing.T) {
	c := newComponent(t)
	sub, err := c.Submit(context.Background(), validValues())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	last := -1
	for _, label := range []string{"姓名：", "Email：", "年齡：", "留言內容："} {
		idx := strings.Index(sub.Preview, label)
		if idx <= last {
			t.Fatalf("label %q out of order in preview:\n%s", label, sub.Preview)
		}
		last = idx
	}
}

func TestView_MarksInvalidFields(t *testing.T) {
	c := newComponent(t)
	values := validValues()
	values["age"] = "500"
	sub, err := c.Submit(context.Background(), values)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	view := c.View(&sub)
	if view.ID != "contactForm" || view.Action != "/contact" || view.ValidateURL != "/api/contact/validate" {
		t.Fatalf("unexpected form view: %+v", view)
	}
	if len(view.FormErrors) != 1 {
		t.Fatalf("expected a summary error, got %v", view.FormErrors)
	}
	for _, field := range view.Fields {
		switch field.Name {
		case "age":
			if !field.Invalid || !field.Autofocus || field.Message != "數值需介於 1 ~ 120" || field.Value != "500" {
				t.Fatalf("unexpected age view: %+v", field)
			}
			if field.InputType != "number" || field.MinAttr != "1" || field.MaxAttr != "120" || field.StepAttr != "" {
				t.Fatalf("unexpected age attributes: %+v", field)
			}
		case "message":
			if !field.Multiline || field.Invalid {
				t.Fatalf("unexpected message view: %+v", field)
			}
		default:
			if field.Invalid || field.Autofocus || field.Message != "" {
				t.Fatalf("unexpected %s view: %+v", field.Name, field)
			}
		}
	}
}

func TestView_BlankForm(t *testing.T) {
	c := newComponent(t)
	view := c.View(nil)
	if view.PreviewHTML != "" || len(view.FormErrors) != 0 || view.FirstInvalid != "" {
		t.Fatalf("unexpected blank view: %+v", view)
	}
	if len(view.Fields) != 4 {
		t.Fatalf("expected 4 fields, got %d", len(view.Fields))
	}
}

func TestMessages_EnglishCatalogue(t *testing.T) {
	c := newComponent(t, contact.WithMessages(validation.EnglishMessages()))
	got, err := c.Validate("age", "0")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got.Message != "Value must be between 1 and 120" {
		t.Fatalf("unexpected message %q", got.Message)
	}
}
