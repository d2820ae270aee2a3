package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-contactdesk/internal/openapi/loader"
	"github.com/goliatone/go-contactdesk/internal/openapi/parser"
	"github.com/goliatone/go-contactdesk/pkg/contact"
)

var errLintViolations = errors.New("schema lint found violations")

func newLintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lint-schema [path|url...]",
		Short: "Check form extensions in OpenAPI documents (defaults to the embedded contact schema)",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			ctx := cmd.Context()

			type document struct {
				name string
				raw  []byte
			}
			var docs []document
			if len(args) == 0 {
				docs = append(docs, document{name: "embedded:contact.yaml", raw: contact.DefaultSchema()})
			}
			load := loader.New(loader.Options{AllowHTTP: true})
			for _, arg := range args {
				src, err := loader.ParseSource(arg)
				if err != nil {
					return err
				}
				raw, err := load.Load(ctx, src)
				if err != nil {
					return err
				}
				docs = append(docs, document{name: arg, raw: raw})
			}

			found := 0
			for _, doc := range docs {
				violations, err := parser.Lint(ctx, doc.raw)
				if err != nil {
					return fmt.Errorf("%s: %w", doc.name, err)
				}
				for _, v := range violations {
					fmt.Fprintf(out, "%s: %s\n", doc.name, v)
				}
				found += len(violations)
			}
			if found > 0 {
				return fmt.Errorf("%w: %d", errLintViolations, found)
			}
			fmt.Fprintln(out, "ok")
			return nil
		},
	}
}
