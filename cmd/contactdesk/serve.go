package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-contactdesk/internal/server"
	"github.com/goliatone/go-contactdesk/pkg/locale"
)

func newServeCmd(flags *globalFlags) *cobra.Command {
	var (
		addr     string
		noScript bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := flags.load(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.HTTPAddr = addr
			}
			if noScript {
				cfg.Script = false
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			renderer, err := server.NewRenderer(cfg)
			if err != nil {
				return err
			}
			controllers, err := server.NewLists(cfg, server.NewFetcher(cfg, logger), renderer, logger)
			if err != nil {
				return err
			}
			form, err := server.NewContact(cmd.Context(), cfg, renderer, logger)
			if err != nil {
				return err
			}

			srv, err := server.New(server.Options{
				Addr:          cfg.HTTPAddr,
				Lang:          locale.Resolve(cfg.Locale).String(),
				Script:        cfg.Script,
				ShutdownGrace: cfg.ShutdownGrace,
				Contact:       form,
				Lists:         controllers,
				Renderer:      renderer,
				Logger:        logger,
			})
			if err != nil {
				return err
			}
			return srv.Run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().BoolVar(&noScript, "no-script", false, "serve the page without the enhancement script")
	return cmd
}
