package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-contactdesk/internal/config"
	"github.com/goliatone/go-contactdesk/internal/logging"
	"github.com/goliatone/go-contactdesk/internal/prompt"
)

type globalFlags struct {
	configFile string
	envFile    string
	logLevel   string
	logFormat  string
	locale     string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, prompt.ErrAborted) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	root := &cobra.Command{
		Use:           "contactdesk",
		Short:         "Contact form and list tables served over HTTP",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.configFile, "config", "", "YAML config file")
	root.PersistentFlags().StringVar(&flags.envFile, "env-file", ".env", "dotenv file read before the environment")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "log format (console, json)")
	root.PersistentFlags().StringVar(&flags.locale, "locale", "", "message locale (zh-TW, en)")

	root.AddCommand(newServeCmd(flags), newSubmitCmd(flags), newListCmd(flags), newLintCmd())
	return root
}

// load resolves configuration and applies the persistent flags on top.
func (f *globalFlags) load(cmd *cobra.Command) (config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(config.Sources{File: f.configFile, EnvFile: f.envFile})
	if err != nil {
		return config.Config{}, zerolog.Nop(), err
	}
	persistent := cmd.Root().PersistentFlags()
	if persistent.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if persistent.Changed("log-format") {
		cfg.LogFormat = f.logFormat
	}
	if persistent.Changed("locale") {
		cfg.Locale = f.locale
	}

	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Out: cmd.ErrOrStderr()})
	if err != nil {
		return config.Config{}, zerolog.Nop(), err
	}
	return cfg, logger, nil
}
