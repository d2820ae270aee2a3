package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-contactdesk/internal/prompt"
	"github.com/goliatone/go-contactdesk/internal/server"
)

func newSubmitCmd(flags *globalFlags) *cobra.Command {
	var html bool
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Fill in the contact form in the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := flags.load(cmd)
			if err != nil {
				return err
			}
			renderer, err := server.NewRenderer(cfg)
			if err != nil {
				return err
			}
			form, err := server.NewContact(cmd.Context(), cfg, renderer, logger)
			if err != nil {
				return err
			}

			driver := prompt.NewSurveyDriver(cmd.OutOrStdout())
			values, err := prompt.FillForm(cmd.Context(), driver, form.Form(), form.Validate)
			if err != nil {
				return err
			}

			submission, err := form.Submit(cmd.Context(), values)
			if err != nil {
				return err
			}
			if !submission.Accepted() {
				return fmt.Errorf("submission rejected: %v", submission.Result.Messages())
			}
			if html {
				return driver.Info(cmd.Context(), submission.Preview)
			}
			return driver.Info(cmd.Context(), prompt.Summary(form.Form(), values))
		},
	}
	cmd.Flags().BoolVar(&html, "html", false, "print the escaped HTML preview instead of plain text")
	return cmd
}
