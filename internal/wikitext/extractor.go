package wikitext

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/pokedata/cardwiki/internal/models"
)

// pokemonTypes is the closed set of elemental types accepted during type
// extraction. Captured tokens outside this set are discarded.
var pokemonTypes = map[string]bool{
	"normal": true, "fire": true, "water": true, "electric": true,
	"grass": true, "ice": true, "fighting": true, "poison": true,
	"ground": true, "flying": true, "psychic": true, "bug": true,
	"rock": true, "ghost": true, "dragon": true, "dark": true,
	"steel": true, "fairy": true,
}

// fieldSpec describes how one scalar attribute is extracted: infobox keys are
// tried in order first, then free-text fallback patterns. The table ordering
// is the extraction policy; a generic routine consumes it.
type fieldSpec struct {
	infoboxKeys []string
	fallbacks   []*regexp.Regexp
	maxLen      int                 // reject fallback captures at or above this length (0 = no limit)
	transform   func(string) string // applied to fallback captures instead of CleanMarkup
}

var (
	speciesSpec = fieldSpec{
		infoboxKeys: []string{"species"},
		fallbacks:   []*regexp.Regexp{regexp.MustCompile(`(?i)the\s+(\w+(?:\s+\w+)?)\s+Pok[eé]mon`)},
		transform:   func(s string) string { return s + " Pokémon" },
	}
	generationSpec = fieldSpec{
		infoboxKeys: []string{"generation"},
		fallbacks:   []*regexp.Regexp{regexp.MustCompile(`(?i)(?:introduced\s+in\s+)?Generation\s+([IVX]+|\d+)`)},
	}
	evolvesFromSpec = fieldSpec{
		infoboxKeys: []string{"evolvesfrom"},
		fallbacks:   []*regexp.Regexp{regexp.MustCompile(`(?i)evolves?\s+from\s+\[\[([^\]]+)\]\]`)},
		transform:   linkDisplayText,
	}
	evolvesToSpec = fieldSpec{
		infoboxKeys: []string{"evolvesto"},
		fallbacks:   []*regexp.Regexp{regexp.MustCompile(`(?i)evolves?\s+into\s+\[\[([^\]]+)\]\]`)},
		transform:   linkDisplayText,
	}
	heightSpec = fieldSpec{infoboxKeys: []string{"height", "metricheight"}}
	weightSpec = fieldSpec{infoboxKeys: []string{"weight", "metricweight"}}

	japaneseNameSpec = fieldSpec{
		infoboxKeys: []string{"jname"},
		fallbacks:   []*regexp.Regexp{regexp.MustCompile(`\(Japanese:\s*([^)]+)\)`)},
		transform:   strings.TrimSpace,
	}
	pokedexNumberSpec = fieldSpec{
		infoboxKeys: []string{"ndex", "number"},
		fallbacks:   []*regexp.Regexp{regexp.MustCompile(`#(\d{3,4})`)},
		transform:   func(s string) string { return s },
	}
	firstGameSpec = fieldSpec{
		infoboxKeys: []string{"first_game", "firstgame", "first game", "debut"},
		fallbacks: []*regexp.Regexp{
			regexp.MustCompile(`(?i)first\s+appear(?:ed|s)?\s+in\s+(?:the\s+)?(?:video\s+games?\s+)?["']?([^"',.]+(?:Red|Blue|Green|Yellow|Gold|Silver|Crystal|Ruby|Sapphire|Diamond|Pearl|Black|White|Sun|Moon|Sword|Shield|Scarlet|Violet)[^"',.]*)`),
			regexp.MustCompile(`(?i)introduced\s+in\s+(?:the\s+)?(?:video\s+games?\s+)?["']?Pok[eé]mon\s+([^"',.]+)`),
			regexp.MustCompile(`(?i)debut(?:ed)?\s+in\s+["']?Pok[eé]mon\s+([^"',.]+)`),
			regexp.MustCompile(`(?i)Pok[eé]mon\s+(Red\s+and\s+Blue|Gold\s+and\s+Silver|Ruby\s+and\s+Sapphire|Diamond\s+and\s+Pearl|Black\s+and\s+White|Sun\s+and\s+Moon|Sword\s+and\s+Shield|Scarlet\s+and\s+Violet)`),
		},
		maxLen: 100,
	}
	createdBySpec = fieldSpec{
		infoboxKeys: []string{"creator", "created_by", "designer", "designed_by", "artist"},
		fallbacks: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:created|designed|developed)\s+by\s+\[\[([^\]|]+)`),
			regexp.MustCompile(`(?i)(?:created|designed|developed)\s+by\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)+)`),
			regexp.MustCompile(`(?i)creator[s]?\s+(?:is|are|was|were)\s+\[\[([^\]|]+)`),
			regexp.MustCompile(`(?i)designed\s+by\s+([^,.\n]+)`),
		},
		maxLen: 100,
	}
)

// extractScalar runs one fieldSpec against raw markup: infobox keys in table
// order, then fallback patterns in table order. First non-empty result wins.
func extractScalar(text string, spec fieldSpec) string {
	for _, key := range spec.infoboxKeys {
		if value := infoboxField(text, key); value != "" {
			return value
		}
	}
	for _, pattern := range spec.fallbacks {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		value := m[1]
		if spec.transform != nil {
			value = spec.transform(value)
		} else {
			value = CleanMarkup(value)
		}
		if value == "" {
			continue
		}
		if spec.maxLen > 0 && utf8.RuneCountInString(value) >= spec.maxLen {
			continue
		}
		return value
	}
	return ""
}

// linkDisplayText resolves "target|display" link captures to the display part.
func linkDisplayText(s string) string {
	parts := strings.Split(s, "|")
	return parts[len(parts)-1]
}

var typePhrasePattern = regexp.MustCompile(`(?i)(\w+)-type\s+Pok[eé]mon`)

// extractTypes collects the elemental types from the infobox, falling back to
// "X-type Pokémon" phrasing in prose. Only tokens in the known type set are
// kept, deduplicated in first-seen order.
func extractTypes(text string) []string {
	var types []string
	seen := map[string]bool{}

	add := func(token string) {
		lower := strings.ToLower(token)
		if pokemonTypes[lower] && !seen[lower] {
			seen[lower] = true
			types = append(types, capitalize(lower))
		}
	}

	for _, key := range []string{"type", "type1", "type2"} {
		if value := infoboxField(text, key); value != "" {
			add(value)
		}
	}
	if len(types) == 0 {
		for _, m := range typePhrasePattern.FindAllStringSubmatch(text, -1) {
			add(m[1])
		}
	}
	return types
}

func extractAbilities(text string) []string {
	var abilities []string
	seen := map[string]bool{}
	for _, key := range []string{"ability", "ability1", "ability2", "abilityd", "hidden_ability"} {
		value := infoboxField(text, key)
		if value == "" {
			continue
		}
		lower := strings.ToLower(value)
		if lower == "none" || lower == "n/a" {
			continue
		}
		if !seen[lower] {
			seen[lower] = true
			abilities = append(abilities, value)
		}
	}
	return abilities
}

// designPatterns are tried in order against the raw markup; the first capture
// that cleans to a 20-500 character sentence wins.
var designPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(Standing\s+[\d.]+\s+(?:metres?|meters?|m)\s*\([^)]+\)[^.]*(?:tall)?[^.]*\.[^.]*\.)`),
	regexp.MustCompile(`(?i)((?:It\s+)?(?:is\s+)?(?:a\s+)?(?:bipedal|quadrupedal)?\s*(?:yellow|red|blue|green|orange|purple|pink|brown|black|white|gray|grey)?\s*(?:rodent|mouse|cat|dog|bird|dragon|lizard|turtle|snake|fish|frog)[^.]*(?:with|has|having)[^.]*\.)`),
	regexp.MustCompile(`(?i)(\d+(?:\.\d+)?\s*(?:m|cm|ft|in|metres?|meters?|feet|inches?)[^.]*(?:tall|height)[^.]*(?:with|has|having)[^.]*\.)`),
	regexp.MustCompile(`(?i)((?:It\s+)?has\s+(?:yellow|red|blue|green|orange|purple|pink|brown|black|white|gray|grey)\s+(?:fur|skin|scales|feathers|body)[^.]*\.)`),
	regexp.MustCompile(`(?i)((?:Its\s+)?design\s+(?:is\s+)?(?:based\s+on|inspired\s+by|resembles)[^.]*\.)`),
}

// appearanceKeywords gate the sentence-scan fallback for design descriptions.
var appearanceKeywords = []string{
	"tall", "bipedal", "quadrupedal", "yellow fur", "red cheek",
	"pointed ears", "lightning bolt", "tail shaped", "long ears",
	"short arms", "rodent", "mouse-like",
}

func extractDesignDescription(text string) string {
	for _, pattern := range designPatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			result := CleanMarkup(m[1])
			if n := utf8.RuneCountInString(result); n > 20 && n < 500 {
				return result
			}
		}
	}

	for _, sentence := range splitSentences(text) {
		lower := strings.ToLower(sentence)
		for _, keyword := range appearanceKeywords {
			if strings.Contains(lower, keyword) {
				result := CleanMarkup(sentence)
				if n := utf8.RuneCountInString(result); n > 20 && n < 500 {
					return result
				}
				break
			}
		}
	}
	return ""
}

var (
	infoboxBlockPattern      = regexp.MustCompile(`(?s)\{\{[Ii]nfobox[^}]+\}\}`)
	shortDescTemplatePattern = regexp.MustCompile(`\{\{[Ss]hort description[^}]+\}\}`)
)

// extractDescription returns the first substantial cleaned paragraph,
// truncated to 500 characters.
func extractDescription(text string) string {
	text = infoboxBlockPattern.ReplaceAllString(text, "")
	text = shortDescTemplatePattern.ReplaceAllString(text, "")

	for _, para := range strings.Split(text, "\n\n") {
		cleaned := CleanMarkup(para)
		if utf8.RuneCountInString(cleaned) > 50 && !strings.HasPrefix(cleaned, "{{") && !strings.HasPrefix(cleaned, "|") {
			// Lengths count runes so multibyte prose is not cut short or
			// sliced mid-character.
			if runes := []rune(cleaned); len(runes) > 500 {
				return string(runes[:500]) + "..."
			}
			return cleaned
		}
	}
	return ""
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Extract pulls every attribute we know how to find out of one page's raw
// markup. HasPokemonInfo is set iff at least one of the seven signal fields
// (types, species, generation, abilities, pokedex number, first game, design
// description) is populated; it is the sole gate the match resolver uses to
// tell a species article from an incidental mention.
func Extract(title, text string) *models.WikiInfo {
	info := &models.WikiInfo{Title: title}
	if text == "" {
		return info
	}

	info.Types = extractTypes(text)
	info.Species = extractScalar(text, speciesSpec)
	info.Generation = extractScalar(text, generationSpec)
	info.Abilities = extractAbilities(text)
	info.EvolvesFrom = extractScalar(text, evolvesFromSpec)
	info.EvolvesTo = extractScalar(text, evolvesToSpec)
	info.Height = extractScalar(text, heightSpec)
	info.Weight = extractScalar(text, weightSpec)
	info.JapaneseName = extractScalar(text, japaneseNameSpec)
	info.PokedexNumber = extractScalar(text, pokedexNumberSpec)
	info.FirstGame = extractScalar(text, firstGameSpec)
	info.CreatedBy = extractScalar(text, createdBySpec)
	info.DesignDescription = extractDesignDescription(text)
	info.Description = extractDescription(text)

	info.HasPokemonInfo = len(info.Types) > 0 || info.Species != "" ||
		info.Generation != "" || len(info.Abilities) > 0 ||
		info.PokedexNumber != "" || info.FirstGame != "" ||
		info.DesignDescription != ""

	return info
}
