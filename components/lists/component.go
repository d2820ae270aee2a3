package lists

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/goliatone/go-contactdesk/internal/upstream"
	"github.com/goliatone/go-contactdesk/pkg/render"
	"github.com/goliatone/go-contactdesk/pkg/renderers/vanilla"
)

var (
	// ErrStale is returned by Load when a newer load finished first and the
	// response was discarded.
	ErrStale = errors.New("lists: stale load discarded")

	ErrMissingName       = errors.New("lists: missing name")
	ErrMissingEndpoint   = errors.New("lists: missing endpoint")
	ErrMissingColumns    = errors.New("lists: missing columns")
	ErrMissingProjection = errors.New("lists: missing projection")
	ErrMissingMatch      = errors.New("lists: missing match func")
)

// State is the load status of a list.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateError   State = "error"
)

// Controller is the type-erased surface the server and CLI drive.
type Controller interface {
	Name() string
	Title() string
	Columns() []string
	QueryParam() string
	MountPath() string
	State() State
	Load(ctx context.Context) error
	Rows(query string) [][]string
	View(ctx context.Context, query string) (render.ListView, error)
	Handler() http.Handler
	RegisterRoutes(mux Mux, basePath string) (string, error)
}

// Snapshot is a consistent copy of the component state. Query is the query
// of the last Filter call; HTTP requests filter without recording theirs.
type Snapshot[T any] struct {
	Name       string `json:"name"`
	State      State  `json:"state"`
	Label      string `json:"label"`
	Query      string `json:"query"`
	Generation uint64 `json:"generation"`
	Loaded     bool   `json:"loaded"`
	Data       []T    `json:"data"`
}

// Component owns one remote list. All exported methods are safe for
// concurrent use.
type Component[T any] struct {
	opts Options[T]

	mu     sync.RWMutex
	mount  string
	items  []T
	loaded bool
	query  string
	state  State
	label  string
	// issued counts started loads; applied is the generation of the newest
	// completed one.
	issued  uint64
	applied uint64
}

var _ Controller = (*Component[struct{}])(nil)

// New builds a component from defaults plus overrides. A missing fetcher or
// renderer falls back to the upstream client and vanilla renderer.
func New[T any](fns ...OptionFn[T]) (*Component[T], error) {
	opts := NewOptions(fns...)
	switch {
	case opts.Name == "":
		return nil, ErrMissingName
	case strings.TrimSpace(opts.Endpoint) == "":
		return nil, fmt.Errorf("%w: %s", ErrMissingEndpoint, opts.Name)
	case len(opts.Columns) == 0:
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, opts.Name)
	case opts.Project == nil:
		return nil, fmt.Errorf("%w: %s", ErrMissingProjection, opts.Name)
	case opts.Match == nil:
		return nil, fmt.Errorf("%w: %s", ErrMissingMatch, opts.Name)
	}

	if opts.Fetcher == nil {
		opts.Fetcher = upstream.New(upstream.WithLogger(opts.Logger))
	}
	if opts.Renderer == nil {
		renderer, err := vanilla.New()
		if err != nil {
			return nil, fmt.Errorf("lists: %s: %w", opts.Name, err)
		}
		opts.Renderer = renderer
	}
	opts.Logger = opts.Logger.With().Str("list", opts.Name).Logger()

	return &Component[T]{
		opts:  opts,
		mount: mountPath("", opts.RoutePath),
		state: StateIdle,
	}, nil
}

// Options returns a copy of the component configuration.
func (c *Component[T]) Options() Options[T] {
	return NewOptions(func(o *Options[T]) { *o = c.opts })
}

func (c *Component[T]) Name() string { return c.opts.Name }

func (c *Component[T]) Title() string { return c.opts.Title }

func (c *Component[T]) Columns() []string { return append([]string{}, c.opts.Columns...) }

func (c *Component[T]) QueryParam() string { return c.opts.QueryParam }

// MountPath is the route prefix the component was registered under.
func (c *Component[T]) MountPath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.mount
}

// State returns the current load state.
func (c *Component[T]) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Load fetches the upstream list. On success the owned items are replaced
// wholesale and the label is cleared; on failure the error is logged, the
// label switches to the failure message and the previous items are kept.
// Completions older than the newest applied load are dropped with ErrStale.
func (c *Component[T]) Load(ctx context.Context) error {
	c.mu.Lock()
	c.issued++
	generation := c.issued
	c.state = StateLoading
	c.label = c.opts.Messages.Loading
	c.mu.Unlock()

	var items []T
	err := c.opts.Fetcher.FetchJSON(ctx, c.opts.Endpoint, &items)

	c.mu.Lock()
	defer c.mu.Unlock()

	if generation < c.applied {
		c.opts.Logger.Debug().
			Uint64("generation", generation).
			Uint64("applied", c.applied).
			Msg("discarding stale list response")
		return ErrStale
	}
	c.applied = generation
	latest := generation == c.issued

	if err != nil {
		c.opts.Logger.Error().
			Err(err).
			Str("url", c.opts.Endpoint).
			Int("status", upstream.StatusOf(err)).
			Msg("list load failed")
		if latest {
			c.state = StateError
			c.label = c.opts.Messages.Failed
		}
		return err
	}

	if items == nil {
		items = []T{}
	}
	c.items = items
	c.loaded = true
	if latest {
		c.state = StateIdle
		c.label = ""
	}
	c.opts.Logger.Debug().Int("items", len(items)).Uint64("generation", generation).Msg("list loaded")
	return nil
}

// Filter returns the items of the last successful load whose text matches
// query case-insensitively, in their original order. An empty query returns
// every item. The trimmed query becomes the current query.
func (c *Component[T]) Filter(query string) []T {
	query = strings.TrimSpace(query)

	c.mu.Lock()
	c.query = query
	items := c.items
	c.mu.Unlock()

	return c.filter(items, query)
}

// Matching is Filter without recording query as the current query. Request
// handlers use it so one client's filter never leaks into another's view.
func (c *Component[T]) Matching(query string) []T {
	c.mu.RLock()
	items := c.items
	c.mu.RUnlock()
	return c.filter(items, strings.TrimSpace(query))
}

func (c *Component[T]) filter(items []T, query string) []T {
	needle := strings.ToLower(query)
	if needle == "" {
		return append([]T{}, items...)
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if c.opts.Match(item, needle) {
			out = append(out, item)
		}
	}
	return out
}

// Project maps items to cell texts, padding or truncating each row to the
// column count.
func (c *Component[T]) Project(items []T) [][]string {
	columns := len(c.opts.Columns)
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		cells := c.opts.Project(item)
		row := make([]string, columns)
		copy(row, cells)
		rows = append(rows, row)
	}
	return rows
}

// Rows filters by query and projects the result.
func (c *Component[T]) Rows(query string) [][]string {
	return c.Project(c.Filter(query))
}

// Render builds the <tbody> inner HTML for items. An empty slice renders the
// single placeholder row.
func (c *Component[T]) Render(ctx context.Context, items []T) (string, error) {
	out, err := c.opts.Renderer.RenderRows(ctx, render.RowsView{
		Columns: len(c.opts.Columns),
		Rows:    c.Project(items),
		Empty:   c.opts.Messages.Empty,
	})
	if err != nil {
		return "", fmt.Errorf("lists: %s: render rows: %w", c.opts.Name, err)
	}
	return string(out), nil
}

// View renders the whole table widget filtered by query.
func (c *Component[T]) View(ctx context.Context, query string) (render.ListView, error) {
	query = strings.TrimSpace(query)
	rows, err := c.Render(ctx, c.Matching(query))
	if err != nil {
		return render.ListView{}, err
	}

	snap := c.Snapshot()
	mount := c.MountPath()
	suffix := capitalize(c.opts.Name)
	return render.ListView{
		Name:              c.opts.Name,
		Title:             c.opts.Title,
		TableID:           c.opts.Name + "Table",
		FilterID:          "filter" + suffix,
		ReloadID:          "reload" + suffix,
		StateID:           "state" + suffix,
		Query:             query,
		QueryParam:        c.pageParam(),
		RowsParam:         c.opts.QueryParam,
		Columns:           c.Columns(),
		RowsHTML:          rows,
		State:             render.NewStateLabel(snap.Label),
		RowsURL:           mount + "/rows",
		ReloadURL:         mount + "/reload",
		FilterPlaceholder: c.opts.Messages.FilterPlaceholder,
		ReloadLabel:       c.opts.Messages.Reload,
	}, nil
}

// Snapshot returns a copy of the current state.
func (c *Component[T]) Snapshot() Snapshot[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Snapshot[T]{
		Name:       c.opts.Name,
		State:      c.state,
		Label:      c.label,
		Query:      c.query,
		Generation: c.applied,
		Loaded:     c.loaded,
		Data:       append([]T{}, c.items...),
	}
}

func capitalize(name string) string {
	if name == "" {
		return ""
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
