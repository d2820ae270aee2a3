package lists

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-contactdesk/internal/upstream"
	"github.com/goliatone/go-contactdesk/pkg/render"
)

// ProjectFunc maps an item to its display-ready cell texts.
type ProjectFunc[T any] func(T) []string

// MatchFunc reports whether item matches an already trimmed and lowercased
// query.
type MatchFunc[T any] func(item T, query string) bool

type Options[T any] struct {
	Name       string
	Title      string
	Endpoint   string
	RoutePath  string
	QueryParam string
	// ReturnPath is where non-script reload submissions are redirected.
	ReturnPath string

	Columns []string
	Project ProjectFunc[T]
	Match   MatchFunc[T]

	Fetcher  upstream.Fetcher
	Renderer render.Renderer
	Logger   zerolog.Logger
	Messages Messages
}

type OptionFn[T any] func(*Options[T])

func DefaultOptions[T any]() Options[T] {
	return Options[T]{
		QueryParam: "q",
		ReturnPath: "/",
		Logger:     zerolog.Nop(),
		Messages:   DefaultMessages(),
	}
}

func NewOptions[T any](fns ...OptionFn[T]) Options[T] {
	opts := DefaultOptions[T]()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	opts.Name = strings.TrimSpace(opts.Name)
	if opts.RoutePath == "" && opts.Name != "" {
		opts.RoutePath = "/lists/" + opts.Name
	}
	if opts.QueryParam == "" {
		opts.QueryParam = "q"
	}
	if opts.ReturnPath == "" {
		opts.ReturnPath = "/"
	}
	if opts.Title == "" {
		opts.Title = opts.Name
	}
	if opts.Columns != nil {
		opts.Columns = append([]string{}, opts.Columns...)
	}
	opts.Messages = opts.Messages.withDefaults()
	return opts
}

func WithName[T any](name string) OptionFn[T] {
	return func(o *Options[T]) {
		if o == nil {
			return
		}
		o.Name = name
	}
}

func WithTitle[T any](title string) OptionFn[T] {
	return func(o *Options[T]) {
		if o == nil {
			return
		}
		o.Title = title
	}
}

// WithEndpoint sets the full upstream URL, query string included.
func WithEndpoint[T any](endpoint string) OptionFn[T] {
	return func(o *Options[T]) {
		if o == nil {
			return
		}
		o.Endpoint = endpoint
	}
}

func WithRoutePath[T any](path string) OptionFn[T] {
	return func(o *Options[T]) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithQueryParam[T any](name string) OptionFn[T] {
	return func(o *Options[T]) {
		if o == nil {
			return
		}
		o.QueryParam = name
	}
}

func WithReturnPath[T any](path string) OptionFn[T] {
	return func(o *Options[T]) {
		if o == nil {
			return
		}
		o.ReturnPath = path
	}
}

// WithColumns sets the header labels. The column count of every row is
// len(columns).
func WithColumns[T any](columns ...string) OptionFn[T] {
	return func(o *Options[T]) {
		if o == nil {
			return
		}
		o.Columns = append([]string{}, columns...)
	}
}

func WithProjection[T any](project ProjectFunc[T]) OptionFn[T] {
	return func(o *Options[T]) {
		if o == nil {
			return
		}
		o.Project = project
	}
}

func WithMatch[T any](match MatchFunc[T]) OptionFn[T] {
	return func(o *Options[T]) {
		if o == nil {
			return
		}
		o.Match = match
	}
}

func WithFetcher[T any](fetcher upstream.Fetcher) OptionFn[T] {
	return func(o *Options[T]) {
		if o == nil {
			return
		}
		o.Fetcher = fetcher
	}
}

func WithRenderer[T any](renderer render.Renderer) OptionFn[T] {
	return func(o *Options[T]) {
		if o == nil {
			return
		}
		o.Renderer = renderer
	}
}

func WithLogger[T any](logger zerolog.Logger) OptionFn[T] {
	return func(o *Options[T]) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}

func WithMessages[T any](messages Messages) OptionFn[T] {
	return func(o *Options[T]) {
		if o == nil {
			return
		}
		o.Messages = messages
	}
}
