package render

import (
	"context"

	"github.com/goliatone/go-contactdesk/pkg/model"
)

// Renderer converts view models into HTML. Text in the views is raw and is
// escaped by the renderer; fields named HTML carry markup that was already
// escaped by the caller and are emitted verbatim.
type Renderer interface {
	Name() string
	ContentType() string
	RenderPage(ctx context.Context, page Page) ([]byte, error)
	RenderRows(ctx context.Context, rows RowsView) ([]byte, error)
	RenderPreview(ctx context.Context, preview PreviewView) ([]byte, error)
}

// Page is the full document: the contact form followed by the list tables.
type Page struct {
	Title  string
	Lang   string
	Form   FormView
	Lists  []ListView
	Assets string
	Script bool
}

// FormView carries the contact form state for one render.
type FormView struct {
	ID           string
	Action       string
	Method       string
	ValidateURL  string
	Fields       []FieldView
	FormErrors   []string
	PreviewHTML  string
	FirstInvalid string
}

// FieldView is a single control with its current value and hint.
type FieldView struct {
	model.Field
	ID        string
	Value     string
	Message   string
	Invalid   bool
	Autofocus bool
	Multiline bool
	InputType string
	MinAttr   string
	MaxAttr   string
	StepAttr  string
}

// ListView describes one table widget.
type ListView struct {
	Name     string
	Title    string
	TableID  string
	FilterID string
	ReloadID string
	StateID  string
	Query    string
	// QueryParam is the page parameter of the filter form; RowsParam is the
	// parameter the rows and reload routes read.
	QueryParam        string
	RowsParam         string
	Columns           []string
	RowsHTML          string
	State             StateLabel
	RowsURL           string
	ReloadURL         string
	FilterPlaceholder string
	ReloadLabel       string
}

// RowsView is the input for a <tbody> fragment.
type RowsView struct {
	Columns int
	Rows    [][]string
	Empty   string
}

// PreviewItem is one line of the submission preview.
type PreviewItem struct {
	Label string
	HTML  string
	Block bool
}

// PreviewView is the input for the submission preview list.
type PreviewView struct {
	Items []PreviewItem
}
