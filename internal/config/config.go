// Package config collects the environment-driven settings shared by the
// server and the batch CLI.
package config

import (
	"os"
	"strconv"
)

// Config is resolved once at startup and passed explicitly; nothing reads
// the environment after Load returns.
type Config struct {
	// CardsDir holds one JSON file per scraped card.
	CardsDir string
	// SetsDir holds one JSON file per scraped set.
	SetsDir string
	// TitlesFile is the JSON array of wiki titles.
	TitlesFile string
	// InfoFile is the optional pre-extracted per-title info table.
	InfoFile string
	// PagesFile is the optional filtered articles-with-text dump.
	PagesFile string
	// OutputDir receives the joined JSON artifacts.
	OutputDir string
	// DBPath is the sqlite file persisting join runs.
	DBPath string
	// Port is the HTTP listen port.
	Port string
	// Workers bounds the match worker pool.
	Workers int
}

// Load reads the configuration from the environment, applying defaults for
// anything unset.
func Load() Config {
	cfg := Config{
		CardsDir:   envOr("CARDS_DIR", "./data/cards"),
		SetsDir:    envOr("SETS_DIR", "./data/sets"),
		TitlesFile: envOr("WIKI_TITLES_FILE", "./data/wiki/wiki_pages.json"),
		InfoFile:   envOr("WIKI_INFO_FILE", "./data/wiki/wiki_info_lookup.json"),
		PagesFile:  envOr("WIKI_PAGES_FILE", "./data/wiki/wiki_pages_with_text.json"),
		OutputDir:  envOr("OUTPUT_DIR", "./data/joined"),
		DBPath:     envOr("DB_PATH", "./cardwiki.db"),
		Port:       envOr("PORT", "8080"),
		Workers:    4,
	}
	if s := os.Getenv("JOIN_WORKERS"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			cfg.Workers = n
		}
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
