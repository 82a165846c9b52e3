// Package join runs the card/wiki join: it builds the match indexes,
// resolves every entity group against the wiki corpus in parallel and
// assembles the joined records and run statistics.
package join

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/pokedata/cardwiki/internal/corpus"
	"github.com/pokedata/cardwiki/internal/match"
	"github.com/pokedata/cardwiki/internal/models"
	"github.com/pokedata/cardwiki/internal/wikitext"
)

const defaultWorkers = 4

// Orchestrator owns the read-only state one join run needs. All fields are
// immutable after New, so resolution fans out across workers without locks.
type Orchestrator struct {
	groups   []models.EntityGroup
	titles   []string
	resolver *match.Resolver
	info     map[string]*models.WikiInfo
	workers  int
}

// New builds the indexes for one run. The info lookup may be nil or partial:
// any title that has page text but no pre-extracted entry is extracted here,
// so matching never silently loses a candidate that has text on disk.
func New(groups []models.EntityGroup, titles []string, info map[string]*models.WikiInfo, pageText map[string]string, workers int) (*Orchestrator, error) {
	if len(groups) == 0 {
		return nil, corpus.ErrNoCards
	}

	idx, err := match.BuildIndexes(titles)
	if err != nil {
		return nil, fmt.Errorf("building title indexes: %w", err)
	}

	if info == nil {
		info = make(map[string]*models.WikiInfo)
	}
	extracted := 0
	for title, text := range pageText {
		if _, ok := info[title]; ok || text == "" {
			continue
		}
		info[title] = wikitext.Extract(title, text)
		extracted++
	}
	if extracted > 0 {
		log.Printf("Extracted info for %d pages missing from lookup", extracted)
	}

	var mentions match.TextIndex
	if len(pageText) > 0 {
		entityNames := make([]string, len(groups))
		for i, g := range groups {
			entityNames[i] = g.Pokemon
		}
		mentions = match.BuildTextIndex(pageText, entityNames)
	}

	if workers <= 0 {
		workers = defaultWorkers
	}

	return &Orchestrator{
		groups:   groups,
		titles:   titles,
		resolver: match.NewResolver(idx, info, mentions),
		info:     info,
		workers:  workers,
	}, nil
}

// Run resolves every entity group and returns the joined rows sorted by
// entity name, plus the run statistics. Resolution is fanned out across the
// worker pool; output ordering does not depend on scheduling.
func (o *Orchestrator) Run(ctx context.Context) ([]models.JoinedEntity, models.JoinStats, error) {
	results := make([]models.JoinedEntity, len(o.groups))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < o.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				group := o.groups[i]
				m := o.resolver.Resolve(group.Pokemon)
				results[i] = models.JoinedEntity{
					Pokemon:      group.Pokemon,
					CardCount:    group.CardCount(),
					Cards:        group.Cards,
					WikiPages:    m.WikiPages,
					BestWikiPage: m.BestWikiPage,
					WikiInfo:     m.WikiInfo,
				}
			}
		}()
	}

	var err error
	for i := range o.groups {
		if err = ctx.Err(); err != nil {
			break
		}
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	if err != nil {
		return nil, models.JoinStats{}, err
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Pokemon < results[j].Pokemon
	})

	stats := o.buildStats(results)
	log.Printf("Join complete: %d Pokemon, %d matched (%s)", stats.TotalPokemon, stats.PokemonWithWiki, stats.MatchRateDisplay)
	return results, stats, nil
}

func (o *Orchestrator) buildStats(results []models.JoinedEntity) models.JoinStats {
	stats := models.JoinStats{
		TotalPokemon:   len(results),
		TotalWikiPages: len(o.titles),
	}
	for _, r := range results {
		stats.TotalCards += r.CardCount
		if len(r.WikiPages) > 0 {
			stats.PokemonWithWiki++
			stats.CardsWithWiki += r.CardCount
		} else {
			stats.CardsWithoutWiki += r.CardCount
		}
	}
	stats.PokemonWithoutWiki = stats.TotalPokemon - stats.PokemonWithWiki
	if stats.TotalPokemon > 0 {
		stats.MatchRate = float64(stats.PokemonWithWiki) / float64(stats.TotalPokemon) * 100
	}
	stats.MatchRateDisplay = fmt.Sprintf("%.1f%%", stats.MatchRate)
	return stats
}

// ReverseJoin inverts the joined rows: one row per wiki title in corpus
// order, listing every entity whose candidate set contained that title.
func (o *Orchestrator) ReverseJoin(results []models.JoinedEntity) []models.WikiMatches {
	byTitle := make(map[string][]string)
	for _, r := range results {
		for _, title := range r.WikiPages {
			byTitle[title] = append(byTitle[title], r.Pokemon)
		}
	}

	pages := make([]models.WikiMatches, 0, len(o.titles))
	for _, title := range o.titles {
		pages = append(pages, models.WikiMatches{
			WikiTitle:      title,
			PokemonMatches: byTitle[title],
		})
	}
	return pages
}

// Info exposes the per-title extracted attributes the run used, including
// any self-extracted entries.
func (o *Orchestrator) Info() map[string]*models.WikiInfo {
	return o.info
}
