// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

// Package config collects the server settings. Values come from flags
// whose defaults are read from the environment, optionally primed by a
// .env file.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
)

type Config struct {
	ServiceName string
	Addr        string
	PortalAddr  string
	DB          string
	Seed        string
	OTLPAddr    string
	LogLevel    slog.Level

	AdminUser     string
	AdminPassword string
}

// LoadDotEnv loads the given files into the process environment. Missing
// files are ignored and existing variables are not overwritten.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Load parses args. getenv supplies the flag defaults, usually os.Getenv.
func Load(name string, args []string, getenv func(string) string) (*Config, error) {
	env := func(key, fallback string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return fallback
	}

	var (
		cfg      Config
		logLevel string
	)
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	flags.StringVar(&cfg.ServiceName, "service-name", env("GLOSSA_SERVICE_NAME", "glossa"), "otel service name")
	flags.StringVar(&cfg.Addr, "addr", env("GLOSSA_ADDR", "0.0.0.0:8080"), "admin server address")
	flags.StringVar(&cfg.PortalAddr, "portal-addr", env("GLOSSA_PORTAL_ADDR", "0.0.0.0:8081"), "public portal address")
	flags.StringVar(&cfg.DB, "db", env("GLOSSA_DB", "kvdb://glossa.db"), "database connection string, kvdb://file or jsondb://dir")
	flags.StringVar(&cfg.Seed, "seed", env("GLOSSA_SEED", ""), "optional YAML seed file applied at startup")
	flags.StringVar(&cfg.OTLPAddr, "otlp-grpc", env("GLOSSA_OTLP_GRPC", ""), "default otlp/gRPC address, by default disabled. Example value: localhost:4317")
	flags.StringVar(&logLevel, "log-level", env("GLOSSA_LOG_LEVEL", "INFO"), "log level")
	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", logLevel, err)
	}
	if cfg.DB == "" {
		return nil, errors.New("db connection string is required")
	}

	cfg.AdminUser = env("GLOSSA_ADMIN", "admin")
	cfg.AdminPassword = env("GLOSSA_PASSWORD", "admin")
	return &cfg, nil
}
