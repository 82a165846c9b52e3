// join runs the card/wiki join pipeline once and writes the JSON artifacts:
// the full joined records, the matched subset, the reverse (wiki-side) join
// and the run statistics. It is the batch counterpart of the server, meant
// for pipeline use where no API is needed.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/pokedata/cardwiki/internal/config"
	"github.com/pokedata/cardwiki/internal/corpus"
	"github.com/pokedata/cardwiki/internal/database"
	"github.com/pokedata/cardwiki/internal/join"
	"github.com/pokedata/cardwiki/internal/models"
)

func main() {
	cfg := config.Load()

	cardsDir := flag.String("cards", cfg.CardsDir, "Directory of scraped card JSON files")
	setsDir := flag.String("sets", cfg.SetsDir, "Directory of scraped set JSON files")
	titlesFile := flag.String("titles", cfg.TitlesFile, "JSON array of wiki titles")
	infoFile := flag.String("info", cfg.InfoFile, "Pre-extracted wiki info lookup (optional)")
	pagesFile := flag.String("pages", cfg.PagesFile, "Wiki articles with text (optional)")
	outputDir := flag.String("out", cfg.OutputDir, "Directory for joined JSON output")
	dbPath := flag.String("db", "", "SQLite path to persist the run (optional)")
	workers := flag.Int("workers", cfg.Workers, "Match worker pool size")
	flag.Parse()

	started := time.Now()

	cards := corpus.NewFileCardSource(*cardsDir, *setsDir)
	if _, err := cards.LoadSets(); err != nil {
		log.Fatalf("Failed to load sets: %v", err)
	}
	groups, err := cards.LoadAll()
	if err != nil {
		log.Fatalf("Failed to load cards: %v", err)
	}

	wiki := corpus.NewFileWikiSource(*titlesFile, *infoFile, *pagesFile)
	titles, err := wiki.LoadTitles()
	if err != nil {
		log.Fatalf("Failed to load wiki titles: %v", err)
	}
	info, err := wiki.LoadInfo()
	if err != nil {
		log.Fatalf("Failed to load wiki info: %v", err)
	}
	pageText, err := wiki.LoadText()
	if err != nil {
		log.Fatalf("Failed to load wiki page text: %v", err)
	}

	orchestrator, err := join.New(groups, titles, info, pageText, *workers)
	if err != nil {
		log.Fatalf("Failed to build join: %v", err)
	}
	results, stats, err := orchestrator.Run(context.Background())
	if err != nil {
		log.Fatalf("Join failed: %v", err)
	}

	writer := corpus.NewWriter(*outputDir)
	if err := writer.WriteJoined(results, stats); err != nil {
		log.Fatalf("Failed to write joined output: %v", err)
	}
	if err := writer.WriteWikiJoined(orchestrator.ReverseJoin(results)); err != nil {
		log.Fatalf("Failed to write wiki output: %v", err)
	}

	if *dbPath != "" {
		if err := database.Initialize(*dbPath); err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		run := models.JoinRun{
			ID:                 uuid.New().String(),
			StartedAt:          started,
			FinishedAt:         time.Now(),
			TotalPokemon:       stats.TotalPokemon,
			TotalCards:         stats.TotalCards,
			TotalWikiPages:     stats.TotalWikiPages,
			PokemonWithWiki:    stats.PokemonWithWiki,
			PokemonWithoutWiki: stats.PokemonWithoutWiki,
			MatchRate:          stats.MatchRate,
		}
		if err := database.SaveRun(database.GetDB(), run, results); err != nil {
			log.Fatalf("Failed to persist run: %v", err)
		}
	}

	fmt.Printf("Joined %d Pokemon (%d cards) against %d wiki titles\n",
		stats.TotalPokemon, stats.TotalCards, stats.TotalWikiPages)
	fmt.Printf("Matched: %d  Unmatched: %d  Rate: %s\n",
		stats.PokemonWithWiki, stats.PokemonWithoutWiki, stats.MatchRateDisplay)
	fmt.Printf("Output written to %s in %s\n", *outputDir, time.Since(started).Round(time.Millisecond))
}
