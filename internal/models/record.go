package models

import (
	"time"
)

// JoinRun records one completed pipeline run.
type JoinRun struct {
	ID                 string    `json:"id" gorm:"primaryKey"`
	StartedAt          time.Time `json:"started_at"`
	FinishedAt         time.Time `json:"finished_at"`
	TotalPokemon       int       `json:"total_pokemon"`
	TotalCards         int       `json:"total_cards"`
	TotalWikiPages     int       `json:"total_wiki_pages"`
	PokemonWithWiki    int       `json:"pokemon_with_wiki"`
	PokemonWithoutWiki int       `json:"pokemon_without_wiki"`
	MatchRate          float64   `json:"match_rate"`
}

// JoinedEntityRow is the persisted form of a JoinedEntity. Cards, candidate
// titles and wiki info are stored as JSON blobs; the columns that handlers
// filter on are first-class.
type JoinedEntityRow struct {
	Pokemon       string    `json:"pokemon" gorm:"primaryKey"`
	CardCount     int       `json:"card_count"`
	Matched       bool      `json:"matched" gorm:"index"`
	BestWikiPage  string    `json:"best_wiki_page"`
	CardsJSON     string    `json:"-"`
	WikiPagesJSON string    `json:"-"`
	WikiInfoJSON  string    `json:"-"`
	RunID         string    `json:"run_id" gorm:"index"`
	UpdatedAt     time.Time `json:"updated_at"`
}
