// Package cmd implements the CLI application to manage a crypto portfolio.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/coinfolio"
	"github.com/etnz/coinfolio/config"
	"github.com/etnz/coinfolio/date"
	"github.com/etnz/coinfolio/logger"
	"github.com/etnz/coinfolio/slot"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&addCmd{}, "holdings")
	c.Register(&removeCmd{}, "holdings")
	c.Register(subcommands.Alias("delete", &removeCmd{}), "holdings")
	c.Register(&importCmd{}, "holdings")

	c.Register(&listCmd{}, "reports")
	c.Register(&totalCmd{}, "reports")
	c.Register(&pricesCmd{}, "reports")
	c.Register(&exportCmd{}, "reports")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	backendFlag = flag.String("backend", "", "Storage backend (file, sqlite, redis, memory), overrides "+config.EnvBackend)
	pathFlag    = flag.String("path", "", "Directory of the file backend or sqlite database, overrides "+config.EnvPath)
	keyFlag     = flag.String("key", "", "Key the portfolio is stored under, overrides "+config.EnvKey)
	pricesFlag  = flag.String("prices", "", "JSON document with the price catalog, overrides "+config.EnvPrices)
	verboseFlag = flag.String("v", "", "Log level (debug, info, warn, error, off), overrides "+config.EnvLogLevel)
	rawFlag     = flag.Bool("raw", false, "print raw markdown instead of styled output")
)

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr

	today date.Clock = date.Today
)

// LoadConfig reads the configuration and applies the global flags on top of it.
func LoadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if *backendFlag != "" {
		cfg.Backend = *backendFlag
		if *pathFlag == "" {
			cfg.Path = config.DefaultPath(cfg.Backend)
		}
	}
	if *pathFlag != "" {
		cfg.Path = *pathFlag
	}
	if *keyFlag != "" {
		cfg.Key = *keyFlag
	}
	if *pricesFlag != "" {
		cfg.PricesFile = *pricesFlag
	}
	if *verboseFlag != "" {
		cfg.LogLevel = *verboseFlag
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewLogger returns the logger configured by cfg, writing to stderr.
func NewLogger(cfg *config.Config) zerolog.Logger {
	return logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty, Out: stderr})
}

// LoadCatalog returns the built-in catalog, or the one decoded from cfg.PricesFile.
func LoadCatalog(cfg *config.Config) (*coinfolio.Catalog, error) {
	if cfg.PricesFile == "" {
		return coinfolio.DefaultCatalog(), nil
	}
	f, err := os.Open(cfg.PricesFile)
	if err != nil {
		return nil, fmt.Errorf("cannot open price catalog: %w", err)
	}
	defer f.Close()
	c, err := coinfolio.DecodeCatalog(f, cfg.Currency, cfg.PricesPath)
	if err != nil {
		return nil, fmt.Errorf("cannot decode price catalog %q: %w", cfg.PricesFile, err)
	}
	return c, nil
}

// OpenStore is the central function to open the portfolio.
// The returned function releases the storage backend.
func OpenStore(ctx context.Context) (*coinfolio.Store, func(), error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	log := NewLogger(cfg)

	catalog, err := LoadCatalog(cfg)
	if err != nil {
		return nil, nil, err
	}

	backend, err := slot.Open(ctx, cfg.Slot())
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open %s storage: %w", cfg.Backend, err)
	}
	closer := func() {
		if err := backend.Close(); err != nil {
			log.Warn().Err(err).Str("backend", cfg.Backend).Msg("cannot close storage")
		}
	}

	s, err := coinfolio.Open(ctx, backend, catalog,
		coinfolio.WithKey(cfg.Key),
		coinfolio.WithClock(today),
		coinfolio.WithLogger(log),
	)
	if err != nil {
		closer()
		return nil, nil, err
	}
	log.Debug().Str("backend", cfg.Backend).Str("key", cfg.Key).Int("holdings", s.Len()).Msg("portfolio opened")
	return s, closer, nil
}

// printMarkdown prints md to stdout, styled unless -raw is set.
func printMarkdown(md string) {
	if *rawFlag {
		fmt.Fprint(stdout, md)
		return
	}
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	fmt.Fprint(stdout, out)
}

// fail reports err and returns the matching exit status: invalid user input
// is a usage error, anything else a failure.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(stderr, "Error: %v\n", err)
	if errors.Is(err, coinfolio.ErrInvalidInput) {
		return subcommands.ExitUsageError
	}
	return subcommands.ExitFailure
}
