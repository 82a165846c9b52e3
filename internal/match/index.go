// Package match resolves scraped card entity names against Wikipedia article
// titles. Candidate generation runs over several indexes built once per
// corpus (exact titles, punctuation-normalized titles, a per-word inverted
// index and an article-text mention index); ranking is a deterministic tier
// sort so the same corpus always yields the same match.
package match

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pokedata/cardwiki/internal/names"
)

// ErrNoTitles is returned when index construction is attempted over an empty
// title corpus. The join pipeline treats it as fatal.
var ErrNoTitles = fmt.Errorf("no wiki titles loaded")

var wordPattern = regexp.MustCompile(`[a-z]+`)

// Indexes holds the lookup structures for one wiki title corpus.
type Indexes struct {
	// exact maps lowercased title (and the lowercased base of
	// disambiguated "(Pokémon)" titles) to the canonical title.
	exact map[string]string
	// normalized is the same mapping keyed by names.Normalize output.
	normalized map[string]string
	// titleWords maps each lowercase word of a title to the titles
	// containing it.
	titleWords map[string][]string

	titles []string
}

// BuildIndexes constructs the title lookup structures. Titles ending in a
// "(Pokémon)" disambiguator are additionally indexed under their bare name,
// so "Pikachu (Pokémon)" is found by the entity "Pikachu".
func BuildIndexes(titles []string) (*Indexes, error) {
	if len(titles) == 0 {
		return nil, ErrNoTitles
	}

	idx := &Indexes{
		exact:      make(map[string]string, len(titles)*2),
		normalized: make(map[string]string, len(titles)*2),
		titleWords: make(map[string][]string),
		titles:     titles,
	}

	for _, title := range titles {
		idx.exact[strings.ToLower(title)] = title
		idx.normalized[names.Normalize(title)] = title

		if strings.HasSuffix(title, "(Pokémon)") || strings.HasSuffix(title, "(Pokemon)") {
			if i := strings.LastIndex(title, "("); i >= 0 {
				base := strings.TrimSpace(title[:i])
				idx.exact[strings.ToLower(base)] = title
				idx.normalized[names.Normalize(base)] = title
			}
		}

		seen := map[string]bool{}
		for _, word := range wordPattern.FindAllString(strings.ToLower(title), -1) {
			if !seen[word] {
				seen[word] = true
				idx.titleWords[word] = append(idx.titleWords[word], title)
			}
		}
	}

	return idx, nil
}

// Titles returns the corpus the indexes were built from.
func (idx *Indexes) Titles() []string {
	return idx.titles
}

// TextIndex maps each entity name to the set of article titles whose body
// text mentions the entity's base name as a standalone word.
type TextIndex map[string]map[string]bool

// BuildTextIndex scans article bodies for mentions of entity base names.
// Entities sharing a base name (Pikachu, Pikachu VMAX, Alolan Pikachu) all
// pick up the same mentions.
func BuildTextIndex(pageText map[string]string, entityNames []string) TextIndex {
	baseToEntities := make(map[string][]string)
	for _, name := range entityNames {
		base := strings.ToLower(names.ExtractBasePokemon(name))
		baseToEntities[base] = append(baseToEntities[base], name)
	}

	mentions := make(TextIndex, len(entityNames))
	for _, name := range entityNames {
		mentions[name] = make(map[string]bool)
	}

	for title, text := range pageText {
		seen := map[string]bool{}
		for _, word := range wordPattern.FindAllString(strings.ToLower(text), -1) {
			if seen[word] {
				continue
			}
			seen[word] = true
			for _, name := range baseToEntities[word] {
				mentions[name][title] = true
			}
		}
	}

	return mentions
}
