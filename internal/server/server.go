// Package server wires the contact form and list components behind a
// gorilla/mux router and runs the HTTP listener.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-contactdesk/components/lists"
	"github.com/goliatone/go-contactdesk/internal/logging"
	"github.com/goliatone/go-contactdesk/pkg/contact"
	"github.com/goliatone/go-contactdesk/pkg/render"
	"github.com/goliatone/go-contactdesk/pkg/renderers/vanilla"
)

// PagePath serves the page; list reloads posted without script redirect here.
const PagePath = "/"

const (
	assetsPath      = "/assets"
	defaultTitle    = "聯絡我們"
	defaultLang     = "zh-TW"
	defaultShutdown = 5 * time.Second
)

type Options struct {
	Addr          string
	Title         string
	Lang          string
	Script        bool
	ShutdownGrace time.Duration

	Contact  *contact.Component
	Lists    []lists.Controller
	Renderer render.Renderer
	Logger   zerolog.Logger
}

// Server serves the page, the form endpoints and every list component.
type Server struct {
	opts   Options
	router *mux.Router
}

func New(opts Options) (*Server, error) {
	if opts.Contact == nil {
		return nil, errors.New("server: missing contact component")
	}
	if opts.Renderer == nil {
		return nil, errors.New("server: missing renderer")
	}
	if opts.Title == "" {
		opts.Title = opts.Contact.Form().Summary
	}
	if opts.Title == "" {
		opts.Title = defaultTitle
	}
	if opts.Lang == "" {
		opts.Lang = defaultLang
	}
	if opts.ShutdownGrace <= 0 {
		opts.ShutdownGrace = defaultShutdown
	}

	s := &Server{opts: opts}
	router, err := s.routes()
	if err != nil {
		return nil, err
	}
	s.router = router
	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() (*mux.Router, error) {
	router := mux.NewRouter()
	router.Use(logging.Middleware(s.opts.Logger))

	router.Handle(PagePath, http.HandlerFunc(s.handlePage)).Methods(http.MethodGet, http.MethodHead)
	router.Handle("/healthz", http.HandlerFunc(s.handleHealth)).Methods(http.MethodGet)
	router.Handle(s.opts.Contact.ValidatePath(), s.opts.Contact.ValidateHandler()).Methods(http.MethodPost)
	router.Handle(s.opts.Contact.Endpoint(), s.opts.Contact.SubmitHandler(s.renderPage)).Methods(http.MethodPost)

	for _, list := range s.opts.Lists {
		if _, err := list.RegisterRoutes(prefixMux{router: router}, ""); err != nil {
			return nil, fmt.Errorf("server: list %s: %w", list.Name(), err)
		}
	}

	assets := http.StripPrefix(assetsPath+"/", http.FileServer(http.FS(vanilla.AssetsFS())))
	router.PathPrefix(assetsPath+"/").Handler(assets).Methods(http.MethodGet, http.MethodHead)
	return router, nil
}

// prefixMux adapts the router to lists.Mux. Patterns ending in "/" match
// their subtree, as with http.ServeMux.
type prefixMux struct {
	router *mux.Router
}

func (m prefixMux) Handle(pattern string, handler http.Handler) {
	if strings.HasSuffix(pattern, "/") {
		m.router.PathPrefix(pattern).Handler(handler)
		return
	}
	m.router.Handle(pattern, handler)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	queries := make(map[string]string, len(s.opts.Lists))
	for _, list := range s.opts.Lists {
		queries[list.Name()] = r.URL.Query().Get(list.Name() + "_" + list.QueryParam())
	}

	body, err := s.page(r.Context(), s.opts.Contact.View(nil), queries)
	if err != nil {
		s.opts.Logger.Error().Err(err).Msg("render page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", s.opts.Renderer.ContentType())
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(body)
}

// renderPage is the contact.PageFunc used after a form post. Lists render
// unfiltered.
func (s *Server) renderPage(ctx context.Context, form render.FormView) ([]byte, error) {
	return s.page(ctx, form, nil)
}

func (s *Server) page(ctx context.Context, form render.FormView, queries map[string]string) ([]byte, error) {
	page := render.Page{
		Title:  s.opts.Title,
		Lang:   s.opts.Lang,
		Form:   form,
		Assets: assetsPath,
		Script: s.opts.Script,
		Lists:  make([]render.ListView, 0, len(s.opts.Lists)),
	}
	for _, list := range s.opts.Lists {
		view, err := list.View(ctx, queries[list.Name()])
		if err != nil {
			return nil, fmt.Errorf("server: list %s: %w", list.Name(), err)
		}
		page.Lists = append(page.Lists, view)
	}
	return s.opts.Renderer.RenderPage(ctx, page)
}

type healthResponse struct {
	Status string                 `json:"status"`
	Lists  map[string]lists.State `json:"lists"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	resp := healthResponse{Status: "ok", Lists: make(map[string]lists.State, len(s.opts.Lists))}
	for _, list := range s.opts.Lists {
		resp.Lists[list.Name()] = list.State()
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(resp)
}

// LoadAll loads every list concurrently. Failures are already logged and
// reflected in each list's label; the joined error is returned for callers
// that want it.
func (s *Server) LoadAll(ctx context.Context) error {
	return LoadAll(ctx, s.opts.Lists)
}

// LoadAll loads controllers concurrently and joins their errors.
func LoadAll(ctx context.Context, controllers []lists.Controller) error {
	var g errgroup.Group
	errs := make([]error, len(controllers))
	for i, list := range controllers {
		i, list := i, list
		g.Go(func() error {
			if err := list.Load(ctx); err != nil && !errors.Is(err, lists.ErrStale) {
				errs[i] = fmt.Errorf("%s: %w", list.Name(), err)
			}
			return nil
		})
	}
	_ = g.Wait()
	return errors.Join(errs...)
}

// Run starts the initial list loads and the HTTP listener, and shuts the
// listener down gracefully when ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.LoadAll(gctx); err != nil {
			s.opts.Logger.Warn().Err(err).Msg("initial list load incomplete")
		}
		return nil
	})
	g.Go(func() error {
		s.opts.Logger.Info().Str("addr", s.opts.Addr).Msg("http server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.ShutdownGrace)
		defer cancel()
		s.opts.Logger.Info().Msg("http server shutting down")
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
