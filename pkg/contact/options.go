package contact

import (
	"github.com/rs/zerolog"

	"github.com/goliatone/go-contactdesk/pkg/model"
	"github.com/goliatone/go-contactdesk/pkg/render"
	"github.com/goliatone/go-contactdesk/pkg/validation"
)

type Options struct {
	// Form, when it has fields, is used as is and Schema is ignored.
	Form        model.FormModel
	Schema      []byte
	OperationID string

	ValidatePath   string
	Messages       validation.Messages
	SummaryMessage string
	Renderer       render.Renderer
	Logger         zerolog.Logger
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		OperationID:    DefaultOperationID,
		ValidatePath:   "/api/contact/validate",
		Messages:       validation.DefaultMessages(),
		SummaryMessage: "請修正標示的欄位後再送出。",
		Logger:         zerolog.Nop(),
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.OperationID == "" && len(opts.Schema) == 0 {
		opts.OperationID = DefaultOperationID
	}
	if opts.ValidatePath == "" {
		opts.ValidatePath = "/api/contact/validate"
	}
	return opts
}

// WithForm supplies a ready form model instead of parsing a schema.
func WithForm(form model.FormModel) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Form = form
	}
}

// WithSchema replaces the embedded OpenAPI document.
func WithSchema(raw []byte, operationID string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Schema = append([]byte(nil), raw...)
		o.OperationID = operationID
	}
}

func WithValidatePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.ValidatePath = path
	}
}

func WithMessages(messages validation.Messages) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Messages = messages
	}
}

func WithSummaryMessage(message string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SummaryMessage = message
	}
}

func WithRenderer(renderer render.Renderer) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Renderer = renderer
	}
}

func WithLogger(logger zerolog.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}
