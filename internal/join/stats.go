package join

import (
	"sort"

	"github.com/pokedata/cardwiki/internal/models"
)

const topPokemonLimit = 10

// CardStatistics summarises the card corpus before matching: counts, price
// spread and the most-printed entities.
func CardStatistics(groups []models.EntityGroup) models.CardStats {
	stats := models.CardStats{
		UniquePokemon:      len(groups),
		RarityDistribution: make(map[string]int),
		PriceRanges:        make(map[string]int),
	}

	sets := make(map[string]bool)
	var priceSum float64
	var priced int

	for _, g := range groups {
		for _, c := range g.Cards {
			stats.TotalCards++
			if c.Set != "" {
				sets[c.Set] = true
			}
			if c.Rarity != "" {
				stats.RarityDistribution[c.Rarity]++
			}
			if c.Price > 0 {
				priced++
				priceSum += c.Price
				if c.Price > stats.PriceMax {
					stats.PriceMax = c.Price
				}
				stats.PriceRanges[priceRange(c.Price)]++
			}
		}
	}

	stats.UniqueSets = len(sets)
	if priced > 0 {
		stats.PriceAvg = priceSum / float64(priced)
	}

	top := make([]models.PokemonCount, 0, len(groups))
	for _, g := range groups {
		top = append(top, models.PokemonCount{Pokemon: g.Pokemon, Cards: g.CardCount()})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Cards != top[j].Cards {
			return top[i].Cards > top[j].Cards
		}
		return top[i].Pokemon < top[j].Pokemon
	})
	if len(top) > topPokemonLimit {
		top = top[:topPokemonLimit]
	}
	stats.TopPokemonByCards = top

	return stats
}

func priceRange(price float64) string {
	switch {
	case price < 1:
		return "under_1"
	case price < 10:
		return "1_to_10"
	case price < 100:
		return "10_to_100"
	default:
		return "over_100"
	}
}

// ExtractionStatistics counts attribute coverage over the per-title info
// table.
func ExtractionStatistics(info map[string]*models.WikiInfo) models.ExtractionStats {
	stats := models.ExtractionStats{TotalPages: len(info)}
	for _, i := range info {
		if i == nil {
			continue
		}
		if i.HasPokemonInfo {
			stats.PagesWithInfo++
		}
		if len(i.Types) > 0 {
			stats.PagesWithTypes++
		}
		if len(i.Abilities) > 0 {
			stats.PagesWithAbilities++
		}
		if i.EvolvesFrom != "" || i.EvolvesTo != "" {
			stats.PagesWithEvolution++
		}
		if i.FirstGame != "" {
			stats.PagesWithFirstGame++
		}
		if i.CreatedBy != "" {
			stats.PagesWithCreatedBy++
		}
		if i.DesignDescription != "" {
			stats.PagesWithDesign++
		}
		if i.Description != "" {
			stats.PagesWithDescription++
		}
	}
	return stats
}
