package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-contactdesk/components/lists"
	"github.com/goliatone/go-contactdesk/internal/server"
)

func newListCmd(flags *globalFlags) *cobra.Command {
	var query string
	cmd := &cobra.Command{
		Use:       "list posts|users",
		Short:     "Load a list once and print the filtered rows",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"posts", "users"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := flags.load(cmd)
			if err != nil {
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

			var target lists.Controller
			for _, controller := range controllers {
				if controller.Name() == args[0] {
					target = controller
				}
			}
			if target == nil {
				return fmt.Errorf("unknown list %q", args[0])
			}
			if err := target.Load(cmd.Context()); err != nil {
				return err
			}

			rows := target.Rows(query)
			out := table.New().
				Border(lipgloss.NormalBorder()).
				Headers(target.Columns()...).
				Rows(rows...)
			fmt.Fprintln(cmd.OutOrStdout(), out.Render())
			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), lists.MessagesForLocale(cfg.Locale).Empty)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&query, "q", "q", "", "case-insensitive filter")
	return cmd
}
