package names

import (
	"html"
	"regexp"
	"strings"
)

// suffixRarities are rarity markers that trail a card's display name,
// e.g. "Wooper Reverse Holo". Checked in order; longer markers come first so
// "Gold Star" wins over "Star".
var suffixRarities = []string{
	"Holiday Calendar",
	"Reverse Holo",
	"Delta Species",
	"Secret Rare",
	"Rainbow Rare",
	"Gold Secret",
	"Ultra Rare",
	"Hyper Rare",
	"Holo",
	"VMAX",
	"VSTAR",
	"MEGA",
	"BREAK",
	"Prime",
	"LEGEND",
	"Shining",
	"Radiant",
	"Lv.X",
	"Gold Star",
	"Prism Star",
	"Star",
	"GX",
	"EX",
	"ex",
	"V",
	"Secret",
	"V-Union",
	"Prerelease",
}

// prefixRarities are rarity markers that lead the display name,
// e.g. "Full Art Pikachu". A prefix hit ends the rarity search.
var prefixRarities = []string{
	"Full Art",
	"Secret",
	"Rainbow",
	"Future",
}

// setSuffixes are printing variants appended by the listing site. They are
// stripped regardless of whether a rarity was found.
var setSuffixes = []string{
	"1st Edition",
	"Cracked Ice",
	"Shadowless",
	"Prerelease",
	"Unlimited",
	"Holofoil",
	"Cosmos",
	"Stamped",
	"Staff",
}

// formPrefixes are regional/owner/form qualifiers that lead the base name,
// e.g. "Paldean Wooper".
var formPrefixes = []string{
	"Team Magma's",
	"Team Aqua's",
	"Origin Forme",
	"Altered Forme",
	"Therian Forme",
	"Incarnate Forme",
	"Single Strike",
	"Rapid Strike",
	"Sky Forme",
	"Land Forme",
	"Rocket's",
	"Gigantamax",
	"Galarian",
	"Hisuian",
	"Paldean",
	"Alolan",
	"Shadow",
	"Primal",
	"Light",
	"Dark",
	"Mega",
	"Basic",
}

type nameRule struct {
	label   string
	pattern *regexp.Regexp
}

func compilePrefixRules(labels []string) []nameRule {
	rules := make([]nameRule, 0, len(labels))
	for _, label := range labels {
		rules = append(rules, nameRule{
			label:   label,
			pattern: regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(label) + `\s+`),
		})
	}
	return rules
}

func compileSuffixRules(labels []string) []nameRule {
	rules := make([]nameRule, 0, len(labels))
	for _, label := range labels {
		rules = append(rules, nameRule{
			label:   label,
			pattern: regexp.MustCompile(`(?i)\s+` + regexp.QuoteMeta(label) + `$`),
		})
	}
	return rules
}

var (
	prefixRarityRules = compilePrefixRules(prefixRarities)
	suffixRarityRules = compileSuffixRules(suffixRarities)
	setSuffixRules    = compileSuffixRules(setSuffixes)
	formPrefixRules   = compilePrefixRules(formPrefixes)
)

// Decomposition is a card display name split into its parts. Empty fields
// mean the part was absent.
type Decomposition struct {
	Prefix   string `json:"prefix,omitempty"`
	BaseName string `json:"base_name"`
	Rarity   string `json:"rarity,omitempty"`
}

// DecomposeCardName splits a full card display name into an optional form
// prefix, the base Pokemon name, and an optional rarity marker. It never
// fails: unparseable input comes back with the whole string as BaseName.
func DecomposeCardName(fullName string) Decomposition {
	if fullName == "" {
		return Decomposition{}
	}
	name := strings.TrimSpace(html.UnescapeString(fullName))

	name, rarity := stripRarity(name)
	name = stripSetSuffixes(name)
	prefix, name := stripFormPrefix(name)

	return Decomposition{Prefix: prefix, BaseName: name, Rarity: rarity}
}

func stripRarity(name string) (string, string) {
	for _, rule := range prefixRarityRules {
		if rule.pattern.MatchString(name) {
			return strings.TrimSpace(rule.pattern.ReplaceAllString(name, "")), rule.label
		}
	}
	for _, rule := range suffixRarityRules {
		if rule.pattern.MatchString(name) {
			return strings.TrimSpace(rule.pattern.ReplaceAllString(name, "")), rule.label
		}
	}
	return name, ""
}

func stripSetSuffixes(name string) string {
	for _, rule := range setSuffixRules {
		name = strings.TrimSpace(rule.pattern.ReplaceAllString(name, ""))
	}
	return name
}

func stripFormPrefix(name string) (string, string) {
	for _, rule := range formPrefixRules {
		if rule.pattern.MatchString(name) {
			return rule.label, strings.TrimSpace(rule.pattern.ReplaceAllString(name, ""))
		}
	}
	return "", name
}
