// Package names canonicalizes and decomposes Pokemon card names and wiki
// titles into comparable keys. Two rule sets live here: a fine-grained card
// name decomposition (prefix/rarity/set-suffix tables) used when parsing
// scraped listings, and a coarser base-name extraction used only for
// cross-source matching.
package names

import (
	"regexp"
	"strings"
)

var normalizePattern = regexp.MustCompile(`[^a-z0-9]`)

// Normalize lowercases a name and strips every character outside [a-z0-9].
// It is total and idempotent: Normalize("") == "" and
// Normalize(Normalize(x)) == Normalize(x).
func Normalize(name string) string {
	return normalizePattern.ReplaceAllString(strings.ToLower(name), "")
}

// basePrefixes are game-mechanic prefixes stripped when deriving the base
// Pokemon name. Order matters: the first match wins.
var basePrefixes = []string{
	"detective", "dark", "light", "shiny", "shadow", "team",
	"alolan", "galarian", "hisuian", "paldean",
	"primal", "mega", "gigantamax", "origin forme", "radiant",
}

// baseSuffixes are game-mechanic suffixes stripped when deriving the base
// Pokemon name. Order matters: the first match wins.
var baseSuffixes = []string{
	"v", "vmax", "vstar", "ex", "gx", "lv.x", "lvx", "lv x",
	"prime", "legend", "break", "tag team", "star",
	"g", "gl", "fb", "e4", "c", "4", "sp", "delta species", "crystal type",
}

// ExtractBasePokemon strips at most one leading mechanic prefix and one
// trailing mechanic suffix from a card's Pokemon name, matched as whole words
// case-insensitively, and title-cases the result. If nothing strips, the
// input is returned unchanged apart from the case normalization.
func ExtractBasePokemon(name string) string {
	if name == "" {
		return ""
	}
	lower := strings.TrimSpace(strings.ToLower(name))
	for _, prefix := range basePrefixes {
		if strings.HasPrefix(lower, prefix+" ") {
			lower = strings.TrimSpace(lower[len(prefix):])
			break
		}
	}
	for _, suffix := range baseSuffixes {
		if strings.HasSuffix(lower, " "+suffix) {
			lower = strings.TrimSpace(lower[:len(lower)-len(suffix)])
			break
		}
	}
	if lower == "" {
		return name
	}
	return titleCase(lower)
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
