// Command bookimport converts the raw Book-Crossing dumps
// (semicolon-separated, Latin-1) into the cleaned comma/UTF-8 dataset
// files the server reads, and creates any missing dataset file with
// just its header row.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"bookrate/internal/config"
	"bookrate/internal/logging"
	"bookrate/internal/store"
)

func main() {
	rawBooks := flag.String("books", "", "raw Books.csv dump to convert")
	rawRatings := flag.String("ratings", "", "raw Ratings.csv dump to convert")
	flag.Parse()

	if err := godotenv.Overload(); err == nil {
		slog.Info("loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	st := store.New(cfg.Data.UsersPath, cfg.Data.RatingsPath, cfg.Data.BooksPath)

	if *rawBooks != "" {
		n, err := st.ImportBooks(*rawBooks)
		if err != nil {
			slog.Error("books import failed", "path", *rawBooks, "error", err)
			os.Exit(1)
		}
		slog.Info("books imported", "path", *rawBooks, "rows", n)
	}

	if *rawRatings != "" {
		n, err := st.ImportRatings(*rawRatings)
		if err != nil {
			slog.Error("ratings import failed", "path", *rawRatings, "error", err)
			os.Exit(1)
		}
		slog.Info("ratings imported", "path", *rawRatings, "rows", n)
	}

	// Any dataset not produced above starts empty with its header, so
	// a fresh deployment can register users before any import.
	if err := st.EnsureFiles(); err != nil {
		slog.Error("failed to create dataset files", "error", err)
		os.Exit(1)
	}
	slog.Info("dataset files ready",
		"users", cfg.Data.UsersPath,
		"ratings", cfg.Data.RatingsPath,
		"books", cfg.Data.BooksPath,
	)
}
