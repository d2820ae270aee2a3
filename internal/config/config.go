// Package config resolves runtime settings from defaults, an optional YAML
// file, an optional .env file and CONTACTDESK_ environment variables, in that
// order of precedence (later sources win). CLI flags are applied on top by
// the caller.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-contactdesk/pkg/locale"
)

// EnvPrefix prefixes every environment variable the service reads.
const EnvPrefix = "CONTACTDESK_"

var (
	ErrInvalidEndpoint = errors.New("config: invalid endpoint")
	ErrInvalidValue    = errors.New("config: invalid value")
)

type Config struct {
	HTTPAddr  string `yaml:"http_addr" env:"HTTP_ADDR"`
	LogLevel  string `yaml:"log_level" env:"LOG_LEVEL"`
	LogFormat string `yaml:"log_format" env:"LOG_FORMAT"`
	Locale    string `yaml:"locale" env:"LOCALE"`

	PostsEndpoint string `yaml:"posts_endpoint" env:"POSTS_ENDPOINT"`
	UsersEndpoint string `yaml:"users_endpoint" env:"USERS_ENDPOINT"`
	PostsLimit    int    `yaml:"posts_limit" env:"POSTS_LIMIT"`

	FetchTimeout  time.Duration `yaml:"fetch_timeout" env:"FETCH_TIMEOUT"`
	RetryMax      int           `yaml:"retry_max" env:"RETRY_MAX"`
	ShutdownGrace time.Duration `yaml:"shutdown_grace" env:"SHUTDOWN_GRACE"`

	// FormSchema is an optional path to an OpenAPI document replacing the
	// embedded contact form.
	FormSchema      string `yaml:"form_schema" env:"FORM_SCHEMA"`
	FormOperationID string `yaml:"form_operation_id" env:"FORM_OPERATION_ID"`

	// TemplatesDir overrides the embedded page templates. It must contain a
	// templates/ directory with page, form, list, rows and preview .tmpl files.
	TemplatesDir string `yaml:"templates_dir" env:"TEMPLATES_DIR"`

	// Script toggles the progressive enhancement script on the page.
	Script bool `yaml:"script" env:"SCRIPT"`
}

func Default() Config {
	return Config{
		HTTPAddr:      ":8080",
		LogLevel:      "info",
		LogFormat:     "console",
		Locale:        "zh-TW",
		PostsEndpoint: "https://jsonplaceholder.typicode.com/posts",
		UsersEndpoint: "https://jsonplaceholder.typicode.com/users",
		PostsLimit:    10,
		FetchTimeout:  10 * time.Second,
		RetryMax:      0,
		ShutdownGrace: 5 * time.Second,
		Script:        true,
	}
}

// Sources names the optional inputs Load reads. Environ defaults to
// os.Environ().
type Sources struct {
	File    string
	EnvFile string
	Environ []string
}

// Load layers every source over the defaults and validates the result. A
// missing EnvFile is ignored; a missing File is an error because it was asked
// for explicitly.
func Load(src Sources) (Config, error) {
	cfg := Default()

	if src.File != "" {
		raw, err := os.ReadFile(src.File)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", src.File, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", src.File, err)
		}
	}

	environment, err := environ(src)
	if err != nil {
		return Config{}, err
	}
	if err := env.ParseWithOptions(&cfg, env.Options{
		Prefix:      EnvPrefix,
		Environment: environment,
	}); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func environ(src Sources) (map[string]string, error) {
	out := map[string]string{}
	if src.EnvFile != "" {
		values, err := godotenv.Read(src.EnvFile)
		switch {
		case err == nil:
			for key, value := range values {
				out[key] = value
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("config: read %s: %w", src.EnvFile, err)
		}
	}

	vars := src.Environ
	if vars == nil {
		vars = os.Environ()
	}
	for _, kv := range vars {
		key, value, ok := strings.Cut(kv, "=")
		if ok {
			out[key] = value
		}
	}
	return out, nil
}

// Validate rejects unusable settings.
func (c Config) Validate() error {
	for name, endpoint := range map[string]string{
		"posts_endpoint": c.PostsEndpoint,
		"users_endpoint": c.UsersEndpoint,
	} {
		parsed, err := url.Parse(strings.TrimSpace(endpoint))
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("%w: %s %q", ErrInvalidEndpoint, name, endpoint)
		}
	}
	switch {
	case strings.TrimSpace(c.HTTPAddr) == "":
		return fmt.Errorf("%w: http_addr is empty", ErrInvalidValue)
	case c.PostsLimit < 0:
		return fmt.Errorf("%w: posts_limit %d", ErrInvalidValue, c.PostsLimit)
	case c.RetryMax < 0:
		return fmt.Errorf("%w: retry_max %d", ErrInvalidValue, c.RetryMax)
	case c.FetchTimeout < 0:
		return fmt.Errorf("%w: fetch_timeout %s", ErrInvalidValue, c.FetchTimeout)
	case c.ShutdownGrace < 0:
		return fmt.Errorf("%w: shutdown_grace %s", ErrInvalidValue, c.ShutdownGrace)
	}
	if !locale.Valid(c.Locale) {
		return fmt.Errorf("%w: locale %q", ErrInvalidValue, c.Locale)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "console", "json":
	default:
		return fmt.Errorf("%w: log_format %q", ErrInvalidValue, c.LogFormat)
	}
	return nil
}
