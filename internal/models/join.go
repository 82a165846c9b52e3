package models

// MatchResult is the outcome of resolving one EntityGroup against the wiki
// corpus. WikiPages holds every candidate title in rank order; BestWikiPage is
// empty when no candidate carried confirmed Pokemon info, even if candidates
// exist. Produced once per group and never mutated.
type MatchResult struct {
	Pokemon      string    `json:"pokemon"`
	WikiPages    []string  `json:"wiki_pages"`
	BestWikiPage string    `json:"best_wiki_page,omitempty"`
	WikiInfo     *WikiInfo `json:"wiki_info,omitempty"`
}

// JoinedEntity is one row of the joined output: an entity group plus its
// resolved wiki match.
type JoinedEntity struct {
	Pokemon      string       `json:"pokemon"`
	CardCount    int          `json:"card_count"`
	Cards        []CardRecord `json:"cards"`
	WikiPages    []string     `json:"wiki_pages"`
	BestWikiPage string       `json:"best_wiki_page,omitempty"`
	WikiInfo     *WikiInfo    `json:"wiki_info,omitempty"`
}

// WikiMatches is one row of the reverse join: a wiki title and every entity
// whose candidate set contained it.
type WikiMatches struct {
	WikiTitle      string   `json:"wiki_title"`
	PokemonMatches []string `json:"pokemon_matches"`
}

// JoinStats summarises one join run.
type JoinStats struct {
	TotalPokemon       int     `json:"total_pokemon"`
	TotalCards         int     `json:"total_cards"`
	TotalWikiPages     int     `json:"total_wiki_pages"`
	PokemonWithWiki    int     `json:"pokemon_with_wiki"`
	PokemonWithoutWiki int     `json:"pokemon_without_wiki"`
	CardsWithWiki      int     `json:"cards_with_wiki"`
	CardsWithoutWiki   int     `json:"cards_without_wiki"`
	MatchRate          float64 `json:"-"`
	MatchRateDisplay   string  `json:"match_rate"`
}

// ExtractionStats counts how many pages yielded each attribute.
type ExtractionStats struct {
	TotalPages           int `json:"total_pages"`
	PagesWithInfo        int `json:"pages_with_pokemon_info"`
	PagesWithTypes       int `json:"pages_with_types"`
	PagesWithAbilities   int `json:"pages_with_abilities"`
	PagesWithEvolution   int `json:"pages_with_evolution"`
	PagesWithFirstGame   int `json:"pages_with_first_game"`
	PagesWithCreatedBy   int `json:"pages_with_created_by"`
	PagesWithDesign      int `json:"pages_with_design_description"`
	PagesWithDescription int `json:"pages_with_description"`
}

// CardStats breaks down the card corpus for reporting.
type CardStats struct {
	TotalCards         int            `json:"total_cards"`
	UniquePokemon      int            `json:"unique_pokemon"`
	UniqueSets         int            `json:"unique_sets"`
	PriceAvg           float64        `json:"price_avg"`
	PriceMax           float64        `json:"price_max"`
	RarityDistribution map[string]int `json:"rarities_distribution"`
	PriceRanges        map[string]int `json:"price_ranges"`
	TopPokemonByCards  []PokemonCount `json:"top_pokemon_by_cards"`
}

// PokemonCount pairs an entity name with its card count.
type PokemonCount struct {
	Pokemon string `json:"pokemon"`
	Cards   int    `json:"cards"`
}
