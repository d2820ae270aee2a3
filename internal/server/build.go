package server

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-contactdesk/components/lists"
	"github.com/goliatone/go-contactdesk/internal/config"
	"github.com/goliatone/go-contactdesk/internal/openapi/loader"
	"github.com/goliatone/go-contactdesk/internal/upstream"
	"github.com/goliatone/go-contactdesk/pkg/contact"
	"github.com/goliatone/go-contactdesk/pkg/locale"
	"github.com/goliatone/go-contactdesk/pkg/render"
	"github.com/goliatone/go-contactdesk/pkg/renderers/vanilla"
	"github.com/goliatone/go-contactdesk/pkg/validation"
)

// NewRenderer builds the HTML renderer for the configured locale and
// template directory.
func NewRenderer(cfg config.Config) (*vanilla.Renderer, error) {
	var opts []vanilla.Option
	if cfg.TemplatesDir != "" {
		opts = append(opts, vanilla.WithTemplatesDir(cfg.TemplatesDir))
	}
	if locale.IsEnglish(cfg.Locale) {
		opts = append(opts, vanilla.WithSubmitLabel("Submit"))
	}
	return vanilla.New(opts...)
}

// NewFetcher builds the upstream client from configuration.
func NewFetcher(cfg config.Config, logger zerolog.Logger) upstream.Fetcher {
	return upstream.New(
		upstream.WithTimeout(cfg.FetchTimeout),
		upstream.WithRetryMax(cfg.RetryMax),
		upstream.WithLogger(logger.With().Str("component", "upstream").Logger()),
	)
}

// NewLists builds the posts and users tables.
func NewLists(cfg config.Config, fetcher upstream.Fetcher, renderer render.Renderer, logger zerolog.Logger) ([]lists.Controller, error) {
	messages := lists.MessagesForLocale(cfg.Locale)

	posts, err := lists.NewPosts(cfg.PostsEndpoint, cfg.PostsLimit,
		lists.WithFetcher[lists.Post](fetcher),
		lists.WithRenderer[lists.Post](renderer),
		lists.WithLogger[lists.Post](logger),
		lists.WithMessages[lists.Post](messages),
		lists.WithReturnPath[lists.Post](PagePath),
	)
	if err != nil {
		return nil, err
	}
	users, err := lists.NewUsers(cfg.UsersEndpoint,
		lists.WithFetcher[lists.User](fetcher),
		lists.WithRenderer[lists.User](renderer),
		lists.WithLogger[lists.User](logger),
		lists.WithMessages[lists.User](messages),
		lists.WithReturnPath[lists.User](PagePath),
	)
	if err != nil {
		return nil, err
	}
	return []lists.Controller{posts, users}, nil
}

// NewContact builds the contact form. A configured schema (file path or
// http(s) URL) replaces the embedded one.
func NewContact(ctx context.Context, cfg config.Config, renderer render.Renderer, logger zerolog.Logger) (*contact.Component, error) {
	fns := []contact.OptionFn{
		contact.WithRenderer(renderer),
		contact.WithLogger(logger),
		contact.WithMessages(validation.MessagesForLocale(cfg.Locale)),
	}
	if locale.IsEnglish(cfg.Locale) {
		fns = append(fns, contact.WithSummaryMessage("Please correct the highlighted fields and submit again."))
	}
	if cfg.FormSchema != "" {
		src, err := loader.ParseSource(cfg.FormSchema)
		if err != nil {
			return nil, fmt.Errorf("server: form schema: %w", err)
		}
		raw, err := loader.New(loader.Options{
			AllowHTTP: true,
			Timeout:   cfg.FetchTimeout,
			RetryMax:  cfg.RetryMax,
		}).Load(ctx, src)
		if err != nil {
			return nil, fmt.Errorf("server: read form schema: %w", err)
		}
		fns = append(fns, contact.WithSchema(raw, cfg.FormOperationID))
	}
	return contact.New(ctx, fns...)
}
