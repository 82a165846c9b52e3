package join

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/pokedata/cardwiki/internal/corpus"
	"github.com/pokedata/cardwiki/internal/match"
	"github.com/pokedata/cardwiki/internal/models"
)

func testGroups() []models.EntityGroup {
	return []models.EntityGroup{
		{Pokemon: "Charizard", Cards: []models.CardRecord{
			{Name: "Charizard", Set: "Base Set", Price: 300},
			{Name: "Charizard VMAX", Set: "Darkness Ablaze", Price: 80, Rarity: "Ultra Rare"},
		}},
		{Pokemon: "Pikachu", Cards: []models.CardRecord{
			{Name: "Pikachu", Set: "Base Set", Price: 5, Rarity: "Common"},
		}},
		{Pokemon: "Missingno", Cards: []models.CardRecord{
			{Name: "Missingno", Set: "Fan Set", Price: 1},
		}},
	}
}

func testInfo() map[string]*models.WikiInfo {
	return map[string]*models.WikiInfo{
		"Pikachu":   {Title: "Pikachu", HasPokemonInfo: true, Types: []string{"Electric"}},
		"Charizard": {Title: "Charizard", HasPokemonInfo: true, Types: []string{"Fire"}},
	}
}

func TestRunJoinsAndSorts(t *testing.T) {
	titles := []string{"Pikachu", "Charizard", "List of Pokémon"}
	o, err := New(testGroups(), titles, testInfo(), nil, 2)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	results, stats, err := o.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	wantOrder := []string{"Charizard", "Missingno", "Pikachu"}
	for i, want := range wantOrder {
		if results[i].Pokemon != want {
			t.Errorf("results[%d].Pokemon = %q, want %q", i, results[i].Pokemon, want)
		}
	}

	charizard := results[0]
	if charizard.BestWikiPage != "Charizard" || charizard.WikiInfo == nil {
		t.Errorf("Charizard best = %q info = %v, want confirmed match", charizard.BestWikiPage, charizard.WikiInfo)
	}
	if charizard.CardCount != 2 {
		t.Errorf("Charizard CardCount = %d, want 2", charizard.CardCount)
	}

	missingno := results[1]
	if len(missingno.WikiPages) != 0 || missingno.BestWikiPage != "" {
		t.Errorf("Missingno pages = %v best = %q, want unmatched", missingno.WikiPages, missingno.BestWikiPage)
	}

	if stats.TotalPokemon != 3 || stats.TotalCards != 4 || stats.TotalWikiPages != 3 {
		t.Errorf("stats totals = %+v", stats)
	}
	if stats.PokemonWithWiki != 2 || stats.PokemonWithoutWiki != 1 {
		t.Errorf("stats match counts = %+v", stats)
	}
	if stats.CardsWithWiki != 3 || stats.CardsWithoutWiki != 1 {
		t.Errorf("stats card counts = %+v", stats)
	}
	if stats.MatchRateDisplay != "66.7%" {
		t.Errorf("MatchRateDisplay = %q, want 66.7%%", stats.MatchRateDisplay)
	}
}

func TestNewEmptyInputs(t *testing.T) {
	if _, err := New(nil, []string{"Pikachu"}, nil, nil, 1); !errors.Is(err, corpus.ErrNoCards) {
		t.Errorf("New with no groups error = %v, want ErrNoCards", err)
	}
	if _, err := New(testGroups(), nil, nil, nil, 1); !errors.Is(err, match.ErrNoTitles) {
		t.Errorf("New with no titles error = %v, want ErrNoTitles", err)
	}
}

func TestRunSelfExtraction(t *testing.T) {
	titles := []string{"Pikachu"}
	pageText := map[string]string{
		"Pikachu": "{{Infobox Pokémon\n| type1 = Electric\n| species = Mouse Pokémon\n}}\nPikachu is popular.",
	}
	o, err := New(testGroups()[1:2], titles, nil, pageText, 1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	results, _, err := o.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if results[0].BestWikiPage != "Pikachu" {
		t.Errorf("BestWikiPage = %q, want Pikachu via self-extraction", results[0].BestWikiPage)
	}
	if results[0].WikiInfo == nil || results[0].WikiInfo.Species != "Mouse Pokémon" {
		t.Errorf("WikiInfo = %+v, want extracted species", results[0].WikiInfo)
	}
}

func TestRunDeterministicAcrossWorkerCounts(t *testing.T) {
	titles := []string{"Pikachu", "Charizard", "Pikachu (Pokémon)"}

	var baseline []models.JoinedEntity
	for _, workers := range []int{1, 2, 8} {
		o, err := New(testGroups(), titles, testInfo(), nil, workers)
		if err != nil {
			t.Fatalf("New(workers=%d): %v", workers, err)
		}
		results, _, err := o.Run(context.Background())
		if err != nil {
			t.Fatalf("Run(workers=%d): %v", workers, err)
		}
		if baseline == nil {
			baseline = results
			continue
		}
		if !reflect.DeepEqual(results, baseline) {
			t.Errorf("workers=%d produced different output", workers)
		}
	}
}

func TestRunCancelledContext(t *testing.T) {
	o, err := New(testGroups(), []string{"Pikachu"}, nil, nil, 1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, _, err := o.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run error = %v, want context.Canceled", err)
	}
}

func TestReverseJoin(t *testing.T) {
	titles := []string{"Pikachu", "Charizard", "List of Pokémon"}
	o, err := New(testGroups(), titles, testInfo(), nil, 1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	results, _, err := o.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	pages := o.ReverseJoin(results)
	if len(pages) != 3 {
		t.Fatalf("got %d pages, want one per title", len(pages))
	}
	byTitle := make(map[string][]string)
	for _, p := range pages {
		byTitle[p.WikiTitle] = p.PokemonMatches
	}
	if !reflect.DeepEqual(byTitle["Pikachu"], []string{"Pikachu"}) {
		t.Errorf("Pikachu matches = %v", byTitle["Pikachu"])
	}
	if !reflect.DeepEqual(byTitle["Charizard"], []string{"Charizard"}) {
		t.Errorf("Charizard matches = %v", byTitle["Charizard"])
	}
	if len(byTitle["List of Pokémon"]) != 0 {
		t.Errorf("list article matches = %v, want none", byTitle["List of Pokémon"])
	}
}
