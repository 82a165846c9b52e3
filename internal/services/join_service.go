package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/pokedata/cardwiki/internal/config"
	"github.com/pokedata/cardwiki/internal/corpus"
	"github.com/pokedata/cardwiki/internal/database"
	"github.com/pokedata/cardwiki/internal/join"
	"github.com/pokedata/cardwiki/internal/metrics"
	"github.com/pokedata/cardwiki/internal/models"
	"github.com/pokedata/cardwiki/internal/names"
)

// ErrRejoinThrottled is returned when a re-join is requested before the
// rate limiter permits another run.
var ErrRejoinThrottled = fmt.Errorf("rejoin throttled, try again later")

// JoinService owns the in-memory join state served by the API. A run
// replaces the whole snapshot under the write lock; reads share the lock.
type JoinService struct {
	cfg   config.Config
	cards corpus.CardSource
	wiki  corpus.WikiSource
	db    *gorm.DB

	mu              sync.RWMutex
	results         []models.JoinedEntity
	byName          map[string]models.JoinedEntity
	stats           models.JoinStats
	cardStats       models.CardStats
	extractionStats models.ExtractionStats
	wikiPages       []models.WikiMatches
	infoByTitle     map[string]*models.WikiInfo
	lastRun         models.JoinRun

	searchCache *lru.Cache[string, []models.JoinedEntity]
	rejoinLimit *rate.Limiter
}

// NewJoinService wires the service against the file-based corpus layout
// from cfg. db may be nil to skip persistence.
func NewJoinService(cfg config.Config, db *gorm.DB) (*JoinService, error) {
	cards := corpus.NewFileCardSource(cfg.CardsDir, cfg.SetsDir)
	wiki := corpus.NewFileWikiSource(cfg.TitlesFile, cfg.InfoFile, cfg.PagesFile)
	return NewJoinServiceWithSources(cfg, cards, wiki, db)
}

// NewJoinServiceWithSources wires the service against explicit corpus
// sources, letting callers substitute in-memory fixtures.
func NewJoinServiceWithSources(cfg config.Config, cards corpus.CardSource, wiki corpus.WikiSource, db *gorm.DB) (*JoinService, error) {
	searchCache, err := lru.New[string, []models.JoinedEntity](50)
	if err != nil {
		return nil, err
	}
	return &JoinService{
		cfg:         cfg,
		cards:       cards,
		wiki:        wiki,
		db:          db,
		byName:      make(map[string]models.JoinedEntity),
		searchCache: searchCache,
		rejoinLimit: rate.NewLimiter(rate.Every(time.Minute), 1),
	}, nil
}

// Run loads both corpora, executes the join and swaps in the new snapshot.
// Output artifacts are written and, when a database is attached, the run is
// persisted.
func (s *JoinService) Run(ctx context.Context) error {
	started := time.Now()

	if _, err := s.cards.LoadSets(); err != nil {
		return fmt.Errorf("loading sets: %w", err)
	}
	groups, err := s.cards.LoadAll()
	if err != nil {
		return fmt.Errorf("loading cards: %w", err)
	}
	titles, err := s.wiki.LoadTitles()
	if err != nil {
		return fmt.Errorf("loading titles: %w", err)
	}
	info, err := s.wiki.LoadInfo()
	if err != nil {
		return fmt.Errorf("loading wiki info: %w", err)
	}
	pageText, err := s.wiki.LoadText()
	if err != nil {
		return fmt.Errorf("loading page text: %w", err)
	}

	orchestrator, err := join.New(groups, titles, info, pageText, s.cfg.Workers)
	if err != nil {
		return err
	}
	results, stats, err := orchestrator.Run(ctx)
	if err != nil {
		return err
	}

	cardStats := join.CardStatistics(groups)
	extractionStats := join.ExtractionStatistics(orchestrator.Info())
	wikiPages := orchestrator.ReverseJoin(results)

	writer := corpus.NewWriter(s.cfg.OutputDir)
	if err := writer.WriteJoined(results, stats); err != nil {
		return err
	}
	if err := writer.WriteWikiJoined(wikiPages); err != nil {
		return err
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
	if s.db != nil {
		if err := database.SaveRun(s.db, run, results); err != nil {
			return err
		}
	}

	byName := make(map[string]models.JoinedEntity, len(results))
	for _, r := range results {
		byName[strings.ToLower(r.Pokemon)] = r
	}

	s.mu.Lock()
	s.results = results
	s.byName = byName
	s.stats = stats
	s.cardStats = cardStats
	s.extractionStats = extractionStats
	s.wikiPages = wikiPages
	s.infoByTitle = orchestrator.Info()
	s.lastRun = run
	s.mu.Unlock()
	s.searchCache.Purge()

	metrics.JoinRunsTotal.Inc()
	metrics.JoinRunDuration.Observe(time.Since(started).Seconds())
	metrics.CardsLoaded.Set(float64(stats.TotalCards))
	metrics.WikiTitlesLoaded.Set(float64(stats.TotalWikiPages))
	metrics.RecordJoinStats(stats.PokemonWithWiki, stats.PokemonWithoutWiki, stats.MatchRate)

	log.Printf("Run %s finished in %s", run.ID, time.Since(started).Round(time.Millisecond))
	return nil
}

// Rejoin re-runs the pipeline if the rate limiter allows it.
func (s *JoinService) Rejoin(ctx context.Context) error {
	if !s.rejoinLimit.Allow() {
		return ErrRejoinThrottled
	}
	return s.Run(ctx)
}

// Results returns the joined rows, optionally only those with candidates.
func (s *JoinService) Results(matchedOnly bool) []models.JoinedEntity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !matchedOnly {
		return s.results
	}
	matched := make([]models.JoinedEntity, 0, len(s.results))
	for _, r := range s.results {
		if len(r.WikiPages) > 0 {
			matched = append(matched, r)
		}
	}
	return matched
}

// Get returns one joined entity by name, case-insensitive.
func (s *JoinService) Get(name string) (models.JoinedEntity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entity, ok := s.byName[strings.ToLower(name)]
	return entity, ok
}

// Search finds entities whose display name or stripped base name contains
// the query, case-insensitive. Results are cached per query.
func (s *JoinService) Search(query string) []models.JoinedEntity {
	key := strings.ToLower(strings.TrimSpace(query))
	if key == "" {
		return nil
	}
	if cached, ok := s.searchCache.Get(key); ok {
		metrics.SearchCacheHits.Inc()
		return cached
	}
	metrics.SearchCacheMisses.Inc()

	s.mu.RLock()
	var found []models.JoinedEntity
	for _, r := range s.results {
		if strings.Contains(strings.ToLower(r.Pokemon), key) ||
			strings.Contains(strings.ToLower(names.ExtractBasePokemon(r.Pokemon)), key) {
			found = append(found, r)
		}
	}
	s.mu.RUnlock()

	s.searchCache.Add(key, found)
	return found
}

// Stats returns the last run's join statistics.
func (s *JoinService) Stats() models.JoinStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

// CardStats returns the card corpus breakdown from the last run.
func (s *JoinService) CardStats() models.CardStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cardStats
}

// ExtractionStats returns attribute coverage from the last run.
func (s *JoinService) ExtractionStats() models.ExtractionStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.extractionStats
}

// WikiPages returns the reverse join, optionally only titles with matches.
func (s *JoinService) WikiPages(matchedOnly bool) []models.WikiMatches {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !matchedOnly {
		return s.wikiPages
	}
	matched := make([]models.WikiMatches, 0, len(s.wikiPages))
	for _, p := range s.wikiPages {
		if len(p.PokemonMatches) > 0 {
			matched = append(matched, p)
		}
	}
	return matched
}

// WikiInfoFor returns the extracted attributes for one title.
func (s *JoinService) WikiInfoFor(title string) (*models.WikiInfo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	info, ok := s.infoByTitle[title]
	return info, ok
}

// LastRun returns the summary of the most recent completed run.
func (s *JoinService) LastRun() (models.JoinRun, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastRun, s.lastRun.ID != ""
}
