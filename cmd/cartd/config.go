package main

import (
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
	"golang.org/x/text/currency"
)

// Config holds the server configuration, loadable from environment variables
// (CART_ prefix), flags, or YAML config files.
type Config struct {
	Addr     string `default:"0.0.0.0:8080" usage:"HTTP listen address"`
	Currency string `default:"USD" usage:"ISO 4217 currency cart totals are priced in"`
	LogLevel string `default:"info" usage:"Log level: debug, info, warn, error" flag:"log-level"`
	Graceful GracefulConfig
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ShutdownTimeout time.Duration `default:"15s" usage:"Maximum shutdown duration" flag:"shutdown-timeout"`
}

// LoadConfig loads configuration from defaults, YAML files, environment and
// flags, in that order of precedence from lowest to highest.
func LoadConfig(args []string) (*Config, currency.Unit, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "CART",
		Files:     []string{"config.yaml", "/etc/cart/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
		SkipFlags: len(args) == 0,
		Args:      args,
	})
	if err := loader.Load(); err != nil {
		return nil, currency.Unit{}, errors.Wrap(err, "load config")
	}

	cur, err := currency.ParseISO(cfg.Currency)
	if err != nil {
		return nil, currency.Unit{}, errors.Wrapf(err, "currency %q", cfg.Currency)
	}

	return &cfg, cur, nil
}
