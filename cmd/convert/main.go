// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

// Command convert copies all records from one storage backend into another,
// e.g. from a jsondb directory into a kvdb file.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/quixsi/glossa/internal/db/backend"
)

func main() {
	var (
		from        = flag.String("from", "jsondb://testdata", "source database connection string")
		to          = flag.String("to", "kvdb://output.db", "destination database connection string")
		logLevelArg = flag.String("log-level", "INFO", "log level")
	)
	flag.Parse()

	var logLevel slog.Level
	err := logLevel.UnmarshalText([]byte(*logLevelArg))
	jsonHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger := slog.New(jsonHandler)
	if err != nil {
		logger.Error("unable to parse log level", "level-input", *logLevelArg, "error", err)
		os.Exit(1)
	}

	src, err := backend.Open(*from)
	if err != nil {
		logger.Error("could not open source", "dsn", *from, "error", err)
		os.Exit(1)
	}
	defer src.Close()

	dst, err := backend.Open(*to)
	if err != nil {
		logger.Error("could not open destination", "dsn", *to, "error", err)
		src.Close()
		os.Exit(1)
	}
	defer dst.Close()

	logger.Info("start converting", "from", *from, "to", *to)
	stats, err := backend.Copy(context.Background(), logger, dst, src)
	if err != nil {
		logger.Error("convert failed", "error", err)
		dst.Close()
		src.Close()
		os.Exit(1)
	}
	logger.Info("finished converting",
		"posts", stats.Posts,
		"terms", stats.Terms,
		"subscribers", stats.Subscribers,
		"skipped", stats.Skipped,
	)
}
