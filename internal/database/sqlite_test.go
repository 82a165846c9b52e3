package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/pokedata/cardwiki/internal/models"
)

func TestSaveRunRoundTrip(t *testing.T) {
	if err := Initialize(filepath.Join(t.TempDir(), "test.db")); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	db := GetDB()

	run := models.JoinRun{
		ID:              "run-1",
		StartedAt:       time.Now().Add(-time.Minute),
		FinishedAt:      time.Now(),
		TotalPokemon:    2,
		TotalCards:      3,
		TotalWikiPages:  10,
		PokemonWithWiki: 1,
		MatchRate:       50,
	}
	results := []models.JoinedEntity{
		{
			Pokemon:      "Pikachu",
			CardCount:    2,
			Cards:        []models.CardRecord{{Name: "Pikachu", Set: "Base Set", Price: 5}},
			WikiPages:    []string{"Pikachu"},
			BestWikiPage: "Pikachu",
			WikiInfo:     &models.WikiInfo{Title: "Pikachu", HasPokemonInfo: true, Types: []string{"Electric"}},
		},
		{
			Pokemon:   "Missingno",
			CardCount: 1,
			Cards:     []models.CardRecord{{Name: "Missingno", Set: "Fan Set", Price: 1}},
		},
	}

	if err := SaveRun(db, run, results); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	var rows []models.JoinedEntityRow
	if err := db.Order("pokemon").Find(&rows).Error; err != nil {
		t.Fatalf("querying rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	if rows[0].Pokemon != "Missingno" || rows[0].Matched {
		t.Errorf("row 0 = %+v, want unmatched Missingno", rows[0])
	}
	if !rows[1].Matched || rows[1].RunID != "run-1" {
		t.Errorf("row 1 = %+v, want matched Pikachu from run-1", rows[1])
	}

	entity, err := EntityFromRow(rows[1])
	if err != nil {
		t.Fatalf("EntityFromRow: %v", err)
	}
	if entity.Pokemon != "Pikachu" || entity.BestWikiPage != "Pikachu" {
		t.Errorf("entity = %+v", entity)
	}
	if len(entity.Cards) != 1 || entity.Cards[0].Price != 5 {
		t.Errorf("cards = %+v", entity.Cards)
	}
	if entity.WikiInfo == nil || !entity.WikiInfo.HasPokemonInfo {
		t.Errorf("wiki info = %+v", entity.WikiInfo)
	}

	var savedRun models.JoinRun
	if err := db.First(&savedRun, "id = ?", "run-1").Error; err != nil {
		t.Fatalf("querying run: %v", err)
	}
	if savedRun.TotalPokemon != 2 || savedRun.MatchRate != 50 {
		t.Errorf("run = %+v", savedRun)
	}
}

func TestSaveRunReplacesEntities(t *testing.T) {
	if err := Initialize(filepath.Join(t.TempDir(), "test.db")); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	db := GetDB()

	first := []models.JoinedEntity{{Pokemon: "Pikachu", CardCount: 1}}
	if err := SaveRun(db, models.JoinRun{ID: "run-1"}, first); err != nil {
		t.Fatalf("first SaveRun: %v", err)
	}

	second := []models.JoinedEntity{{Pokemon: "Pikachu", CardCount: 3, WikiPages: []string{"Pikachu"}}}
	if err := SaveRun(db, models.JoinRun{ID: "run-2"}, second); err != nil {
		t.Fatalf("second SaveRun: %v", err)
	}

	var row models.JoinedEntityRow
	if err := db.First(&row, "pokemon = ?", "Pikachu").Error; err != nil {
		t.Fatalf("querying row: %v", err)
	}
	if row.CardCount != 3 || row.RunID != "run-2" || !row.Matched {
		t.Errorf("row = %+v, want replaced by run-2", row)
	}
}
