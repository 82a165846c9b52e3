// Package corpus loads the scraped card files and filtered wiki dump the
// join pipeline runs over, and writes its JSON outputs. Malformed individual
// records are logged and skipped; structurally empty corpora are fatal.
package corpus

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pokedata/cardwiki/internal/models"
)

// ErrNoCards is returned when the card directory yields zero usable records.
var ErrNoCards = fmt.Errorf("no cards loaded")

// Very long articles are truncated before indexing; mentions past this point
// do not influence matching. The limit counts characters, not bytes.
const maxPageText = 50000

// rawCard mirrors the scraper's per-card JSON file.
type rawCard struct {
	Name    string          `json:"Name"`
	Pokemon string          `json:"Pokemon"`
	Set     string          `json:"Set"`
	ID      string          `json:"Id"`
	Rarity  string          `json:"Rarity"`
	Price   json.RawMessage `json:"Price"`
	Image   string          `json:"Image"`
	Source  string          `json:"Source"`
}

// rawSet mirrors the scraper's per-set JSON file.
type rawSet struct {
	Name       string `json:"Name"`
	Release    string `json:"Release"`
	Series     string `json:"Series"`
	Symbol     string `json:"Symbol"`
	TotalCards int    `json:"Total cards"`
	Source     string `json:"Source"`
}

// parsePrice converts the scraper's price field to a number. Values arrive
// as "1.23", "$1.23" or a bare JSON number; anything unparseable is 0.
func parsePrice(raw json.RawMessage) float64 {
	s := strings.TrimSpace(string(raw))
	s = strings.Trim(s, `"`)
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0
	}
	price, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return price
}

// LoadSets reads every set JSON file in dir. A missing directory is not an
// error; set data only enriches cards.
func LoadSets(dir string) (map[string]models.SetRecord, error) {
	sets := make(map[string]models.SetRecord)
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("globbing sets: %w", err)
	}

	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			log.Printf("Warning: reading set %s: %v", file, err)
			continue
		}
		var raw rawSet
		if err := json.Unmarshal(data, &raw); err != nil {
			log.Printf("Warning: parsing set %s: %v", file, err)
			continue
		}
		if raw.Name == "" {
			continue
		}
		sets[raw.Name] = models.SetRecord{
			Name:       raw.Name,
			Release:    raw.Release,
			Series:     raw.Series,
			Symbol:     raw.Symbol,
			TotalCards: raw.TotalCards,
			Source:     raw.Source,
		}
	}

	log.Printf("Loaded %d sets from %s", len(sets), dir)
	return sets, nil
}

// LoadCards reads every card JSON file in dir and groups the records by
// their canonical entity name (the Pokemon field, falling back to the card
// display name). Cards without either name are skipped. Returns ErrNoCards
// when nothing usable was found.
func LoadCards(dir string, sets map[string]models.SetRecord) ([]models.EntityGroup, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("globbing cards: %w", err)
	}

	grouped := make(map[string][]models.CardRecord)
	var order []string

	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			log.Printf("Warning: reading card %s: %v", file, err)
			continue
		}
		var raw rawCard
		if err := json.Unmarshal(data, &raw); err != nil {
			log.Printf("Warning: parsing card %s: %v", file, err)
			continue
		}

		entity := raw.Pokemon
		if entity == "" {
			entity = raw.Name
		}
		entity = strings.TrimSpace(entity)
		if entity == "" {
			continue
		}

		card := models.CardRecord{
			Name:   raw.Name,
			Set:    raw.Set,
			ID:     raw.ID,
			Rarity: raw.Rarity,
			Price:  parsePrice(raw.Price),
			Image:  raw.Image,
			Source: raw.Source,
		}
		if set, ok := sets[raw.Set]; ok {
			card.SetInfo = &models.SetInfo{
				Release:    set.Release,
				Series:     set.Series,
				TotalCards: set.TotalCards,
				Source:     set.Source,
			}
		}

		if _, ok := grouped[entity]; !ok {
			order = append(order, entity)
		}
		grouped[entity] = append(grouped[entity], card)
	}

	if len(grouped) == 0 {
		return nil, ErrNoCards
	}

	sort.Strings(order)
	groups := make([]models.EntityGroup, 0, len(order))
	total := 0
	for _, entity := range order {
		groups = append(groups, models.EntityGroup{Pokemon: entity, Cards: grouped[entity]})
		total += len(grouped[entity])
	}

	log.Printf("Loaded %d cards for %d unique Pokemon", total, len(groups))
	return groups, nil
}

// LoadTitles reads the wiki title list, a single JSON array of strings.
func LoadTitles(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading wiki titles: %w", err)
	}
	var titles []string
	if err := json.Unmarshal(data, &titles); err != nil {
		return nil, fmt.Errorf("parsing wiki titles: %w", err)
	}
	log.Printf("Loaded %d wiki titles", len(titles))
	return titles, nil
}

// LoadInfoLookup reads the pre-extracted per-title info table. A missing
// file is not fatal; matching then relies on self-extraction from page text.
func LoadInfoLookup(path string) (map[string]*models.WikiInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("Wiki info lookup not found at %s, skipping enrichment", path)
			return nil, nil
		}
		return nil, fmt.Errorf("reading wiki info: %w", err)
	}
	var info map[string]*models.WikiInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("parsing wiki info: %w", err)
	}
	log.Printf("Loaded wiki info for %d pages", len(info))
	return info, nil
}

// LoadPageText reads the filtered articles (title plus raw markup) and
// truncates each body to the indexing bound.
func LoadPageText(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("Wiki page text not found at %s, skipping text index", path)
			return nil, nil
		}
		return nil, fmt.Errorf("reading wiki page text: %w", err)
	}
	var pages []models.WikiPage
	if err := json.Unmarshal(data, &pages); err != nil {
		return nil, fmt.Errorf("parsing wiki page text: %w", err)
	}

	text := make(map[string]string, len(pages))
	for _, page := range pages {
		body := page.Text
		if utf8.RuneCountInString(body) > maxPageText {
			body = string([]rune(body)[:maxPageText])
		}
		text[page.Title] = body
	}
	log.Printf("Loaded text for %d wiki pages", len(text))
	return text, nil
}
