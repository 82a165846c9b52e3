package corpus

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/pokedata/cardwiki/internal/models"
)

// Output file names under the writer's directory.
const (
	JoinedFile      = "pokemon_with_wiki.json"
	MatchedFile     = "pokemon_matched_wiki.json"
	StatsFile       = "join_stats.json"
	WikiJoinedFile  = "wiki_with_pokemon.json"
	WikiMatchedFile = "wiki_matched_pokemon.json"
)

// Writer persists join outputs as indented JSON under one directory.
type Writer struct {
	dir string
}

func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

func (w *Writer) writeJSON(name string, v interface{}) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

// WriteJoined writes the full join output, the matched subset and the run
// statistics.
func (w *Writer) WriteJoined(results []models.JoinedEntity, stats models.JoinStats) error {
	if err := w.writeJSON(JoinedFile, results); err != nil {
		return err
	}

	matched := make([]models.JoinedEntity, 0, len(results))
	for _, r := range results {
		if len(r.WikiPages) > 0 {
			matched = append(matched, r)
		}
	}
	if err := w.writeJSON(MatchedFile, matched); err != nil {
		return err
	}

	if err := w.writeJSON(StatsFile, stats); err != nil {
		return err
	}

	log.Printf("Saved %d Pokemon, %d matched to %s", len(results), len(matched), w.dir)
	return nil
}

// WriteWikiJoined writes the wiki-side view of the join: every title with
// the entities that matched it, plus the matched-only subset.
func (w *Writer) WriteWikiJoined(pages []models.WikiMatches) error {
	if err := w.writeJSON(WikiJoinedFile, pages); err != nil {
		return err
	}

	matched := make([]models.WikiMatches, 0, len(pages))
	for _, p := range pages {
		if len(p.PokemonMatches) > 0 {
			matched = append(matched, p)
		}
	}
	if err := w.writeJSON(WikiMatchedFile, matched); err != nil {
		return err
	}

	log.Printf("Wiki pages with Pokemon: %d/%d", len(matched), len(pages))
	return nil
}
