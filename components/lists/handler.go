package lists

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/goliatone/go-contactdesk/pkg/render"
)

const (
	// HeaderState carries the state label on fragment responses, percent
	// encoded so decodeURIComponent restores it.
	HeaderState = "X-State-Label"
	// HeaderListState carries the State value on fragment responses.
	HeaderListState = "X-List-State"
	// HeaderRequestedWith marks script-issued requests that expect a fragment
	// instead of a redirect.
	HeaderRequestedWith = "X-Requested-With"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// Handler serves the snapshot, rows and reload routes relative to the
// component mount path.
func (c *Component[T]) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		sub := strings.TrimPrefix(r.URL.Path, c.MountPath())
		sub = strings.TrimSuffix(sub, "/")

		var err error
		switch sub {
		case "":
			err = c.serveSnapshot(w, r)
		case "/rows":
			err = c.serveRows(w, r)
		case "/reload":
			err = c.serveReload(w, r)
		default:
			err = StatusError{Code: http.StatusNotFound}
		}
		if err != nil {
			writeError(w, err)
		}
	})
}

func (c *Component[T]) serveSnapshot(w http.ResponseWriter, r *http.Request) error {
	if err := allow(w, r, http.MethodGet, http.MethodHead); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return nil
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(c.Snapshot())
	return nil
}

func (c *Component[T]) serveRows(w http.ResponseWriter, r *http.Request) error {
	if err := allow(w, r, http.MethodGet, http.MethodHead); err != nil {
		return err
	}

	html, err := c.Render(r.Context(), c.Matching(r.URL.Query().Get(c.opts.QueryParam)))
	if err != nil {
		return err
	}
	c.writeFragment(w, r, http.StatusOK, html)
	return nil
}

func (c *Component[T]) serveReload(w http.ResponseWriter, r *http.Request) error {
	if err := allow(w, r, http.MethodPost); err != nil {
		return err
	}

	// The load is shared state; a client disconnect must not cancel it.
	loadErr := c.Load(context.WithoutCancel(r.Context()))
	if loadErr != nil && errors.Is(loadErr, ErrStale) {
		loadErr = nil
	}

	query := strings.TrimSpace(r.FormValue(c.opts.QueryParam))
	if !fromScript(r) {
		http.Redirect(w, r, c.returnURL(query), http.StatusSeeOther)
		return nil
	}

	if loadErr != nil {
		c.writeFragment(w, r, http.StatusBadGateway, render.EscapeHTML(c.opts.Messages.Failed))
		return nil
	}

	html, err := c.Render(r.Context(), c.Matching(query))
	if err != nil {
		return err
	}
	c.writeFragment(w, r, http.StatusOK, html)
	return nil
}

func (c *Component[T]) writeFragment(w http.ResponseWriter, r *http.Request, status int, body string) {
	snap := c.Snapshot()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set(HeaderState, url.PathEscape(snap.Label))
	w.Header().Set(HeaderListState, string(snap.State))
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write([]byte(body))
}

// returnURL is the page URL with this list's filter kept, using the same
// parameter name the page reads.
func (c *Component[T]) returnURL(query string) string {
	if query == "" {
		return c.opts.ReturnPath
	}
	sep := "?"
	if strings.Contains(c.opts.ReturnPath, "?") {
		sep = "&"
	}
	return c.opts.ReturnPath + sep + url.Values{c.pageParam(): {query}}.Encode()
}

// pageParam names the query parameter the full page reads for this list.
func (c *Component[T]) pageParam() string {
	return c.opts.Name + "_" + c.opts.QueryParam
}

func allow(w http.ResponseWriter, r *http.Request, methods ...string) error {
	for _, method := range methods {
		if r.Method == method {
			return nil
		}
	}
	w.Header().Set("Allow", strings.Join(methods, ", "))
	return StatusError{Code: http.StatusMethodNotAllowed}
}

func fromScript(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get(HeaderRequestedWith), "fetch")
}

func writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
	}
	http.Error(w, http.StatusText(code), code)
}
