package contact

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/goliatone/go-contactdesk/pkg/render"
)

const maxValidateBody = 64 << 10

// PageFunc renders the full document around a form state.
type PageFunc func(ctx context.Context, form render.FormView) ([]byte, error)

type validateRequest struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ValidatePath is the route of the live validation endpoint.
func (c *Component) ValidatePath() string { return c.opts.ValidatePath }

// Endpoint is the route the form posts to.
func (c *Component) Endpoint() string { return c.form.Endpoint }

// ValidateHandler answers {name, value} with the control's validity. Both
// JSON and form-encoded bodies are accepted.
func (c *Component) ValidateHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		req, err := decodeValidateRequest(r)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		result, err := c.Validate(req.Name, req.Value)
		if errors.Is(err, ErrUnknownField) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusOK)
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(true)
		_ = enc.Encode(result)
	})
}

func decodeValidateRequest(r *http.Request) (validateRequest, error) {
	var req validateRequest
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		err := json.NewDecoder(io.LimitReader(r.Body, maxValidateBody)).Decode(&req)
		return req, err
	}
	r.Body = http.MaxBytesReader(nil, r.Body, maxValidateBody)
	if err := r.ParseForm(); err != nil {
		return req, err
	}
	req.Name = r.PostFormValue("name")
	req.Value = r.PostFormValue("value")
	return req, nil
}

// SubmitHandler validates a posted form and renders the page with either the
// preview and a blank form (200) or the echoed values with hints (422).
func (c *Component) SubmitHandler(page PageFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		submission, err := c.Submit(r.Context(), c.Values(r.PostForm))
		if err != nil {
			c.opts.Logger.Error().Err(err).Msg("contact submission failed")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		body, err := page(r.Context(), c.View(&submission))
		if err != nil {
			c.opts.Logger.Error().Err(err).Msg("render contact page")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		status := http.StatusOK
		if !submission.Accepted() {
			status = http.StatusUnprocessableEntity
		}
		w.Header().Set("Content-Type", c.opts.Renderer.ContentType())
		w.WriteHeader(status)
		_, _ = w.Write(body)
	})
}
