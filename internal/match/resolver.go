package match

import (
	"log"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/pokedata/cardwiki/internal/models"
	"github.com/pokedata/cardwiki/internal/names"
)

// Word-index candidates are discarded when the title is a list article or
// implausibly long for a species page.
const maxCandidateTitleLen = 50

// Resolver matches entity names against a built title corpus. Safe for
// concurrent use: all state is read-only after construction.
type Resolver struct {
	idx      *Indexes
	info     map[string]*models.WikiInfo
	mentions TextIndex
}

// NewResolver wires the title indexes with the per-page extracted info used
// to confirm candidates. info and mentions may be nil.
func NewResolver(idx *Indexes, info map[string]*models.WikiInfo, mentions TextIndex) *Resolver {
	return &Resolver{idx: idx, info: info, mentions: mentions}
}

// Resolve matches one entity name against the corpus. The returned WikiPages
// are every candidate in rank order; BestWikiPage and WikiInfo are set only
// when a candidate's extracted info confirms it is a species article.
func (r *Resolver) Resolve(entityName string) models.MatchResult {
	entityLower := strings.ToLower(entityName)
	entityNorm := names.Normalize(entityName)
	base := names.ExtractBasePokemon(entityName)
	baseLower := strings.ToLower(base)
	baseNorm := names.Normalize(base)

	candidates := map[string]bool{}

	if baseLower != entityLower {
		if title, ok := r.idx.exact[baseLower]; ok {
			candidates[title] = true
		}
	}
	if title, ok := r.idx.exact[entityLower]; ok {
		candidates[title] = true
	}
	if baseNorm != entityNorm {
		if title, ok := r.idx.normalized[baseNorm]; ok {
			candidates[title] = true
		}
	}
	if title, ok := r.idx.normalized[entityNorm]; ok {
		candidates[title] = true
	}

	for _, norm := range []string{baseNorm, entityNorm} {
		for _, title := range r.idx.titleWords[norm] {
			if strings.HasPrefix(title, "List of") {
				continue
			}
			if utf8.RuneCountInString(title) >= maxCandidateTitleLen {
				continue
			}
			candidates[title] = true
		}
	}

	for title := range r.mentions[entityName] {
		candidates[title] = true
	}

	ranked := make([]string, 0, len(candidates))
	for title := range candidates {
		ranked = append(ranked, title)
	}
	sort.Slice(ranked, func(i, j int) bool {
		ti := candidateTier(ranked[i], entityLower, baseLower)
		tj := candidateTier(ranked[j], entityLower, baseLower)
		if ti != tj {
			return ti < tj
		}
		return ranked[i] < ranked[j]
	})

	if len(ranked) >= 2 {
		first := candidateTier(ranked[0], entityLower, baseLower)
		second := candidateTier(ranked[1], entityLower, baseLower)
		if first == second {
			log.Printf("Ambiguous match for %q: %q and %q rank equally", entityName, ranked[0], ranked[1])
		}
	}

	result := models.MatchResult{Pokemon: entityName, WikiPages: ranked}
	for _, title := range ranked {
		if info, ok := r.info[title]; ok && info.HasPokemonInfo {
			result.BestWikiPage = title
			result.WikiInfo = info
			break
		}
	}
	return result
}

// candidateTier ranks a candidate title for one entity. Lower is better:
// exact base-name matches beat disambiguated ones, which beat full-name
// matches, which beat prefix matches. Base tiers apply only when the entity
// name carries decorations to strip.
func candidateTier(title, entityLower, baseLower string) int {
	tl := strings.ToLower(title)
	if baseLower != entityLower {
		if tl == baseLower {
			return 0
		}
		if tl == baseLower+" (pokémon)" || tl == baseLower+" (pokemon)" {
			return 1
		}
	}
	if tl == entityLower {
		return 2
	}
	if tl == entityLower+" (pokémon)" || tl == entityLower+" (pokemon)" {
		return 3
	}
	if baseLower != entityLower && strings.HasPrefix(tl, baseLower) {
		return 4
	}
	if strings.HasPrefix(tl, entityLower) {
		return 5
	}
	return 6
}
