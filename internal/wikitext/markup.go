// Package wikitext extracts structured Pokemon attributes from raw Wikipedia
// markup. It is deliberately not a full wikitext parser: cleaning is a fixed
// sequence of regex passes that is good enough for infobox values and prose
// sentences, and extraction is a layered set of heuristics that try infobox
// keys first and fall back to characteristic free-text phrasing.
package wikitext

import (
	"regexp"
	"strings"
)

// templatePasses bounds the nested {{template}} stripping loop. Five passes
// cover the nesting depths seen in practice; deeper markup leaves residue.
const templatePasses = 5

// htmlEntities is decoded before any regex pass so entity-encoded markup
// (&lt;ref&gt;) is treated like literal markup. Order matters: named entities
// first, then the bare ampersand.
var htmlEntities = []struct {
	entity string
	char   string
}{
	{"&lt;", "<"}, {"&gt;", ">"}, {"&amp;", "&"}, {"&quot;", `"`},
	{"&apos;", "'"}, {"&nbsp;", " "}, {"&#39;", "'"}, {"&#34;", `"`},
	{"&ndash;", "-"}, {"&mdash;", "-"}, {"&hellip;", "..."},
	{"&eacute;", "é"}, {"&Eacute;", "É"},
}

var (
	refPairPattern  = regexp.MustCompile(`(?is)<ref[^>]*>.*?</ref>`)
	refSelfPattern  = regexp.MustCompile(`(?i)<ref[^>]*/>`)
	htmlTagPattern  = regexp.MustCompile(`<[^>]+>`)
	wikiLinkPattern = regexp.MustCompile(`\[\[(?:[^\]|]*\|)?([^\]]+)\]\]`)
	templatePattern = regexp.MustCompile(`\{\{[^{}]*\}\}`)
	boldItalic      = regexp.MustCompile(`'{2,5}`)
	bracePairs      = regexp.MustCompile(`\[\[|\]\]|\{\{|\}\}`)
	strayBrackets   = regexp.MustCompile(`\[|\]`)
)

// CleanMarkup strips Wikipedia markup from a fragment, returning plain prose
// with collapsed whitespace.
func CleanMarkup(text string) string {
	if text == "" {
		return ""
	}

	for _, e := range htmlEntities {
		text = strings.ReplaceAll(text, e.entity, e.char)
	}

	text = refPairPattern.ReplaceAllString(text, "")
	text = refSelfPattern.ReplaceAllString(text, "")
	text = htmlTagPattern.ReplaceAllString(text, "")

	// Collapse [[target|display]] links to their display text.
	text = wikiLinkPattern.ReplaceAllString(text, "$1")

	// Bounded fixed-point pass over nested templates, innermost first.
	for i := 0; i < templatePasses; i++ {
		if !strings.Contains(text, "{{") {
			break
		}
		text = templatePattern.ReplaceAllString(text, "")
	}

	text = boldItalic.ReplaceAllString(text, "")
	text = bracePairs.ReplaceAllString(text, "")
	text = strayBrackets.ReplaceAllString(text, "")

	return strings.Join(strings.Fields(text), " ")
}

// infoboxPatterns caches the two value regexes per infobox key so repeated
// extraction over a large corpus compiles each pattern once.
var infoboxPatterns = map[string][2]*regexp.Regexp{}

func init() {
	keys := []string{
		"type", "type1", "type2", "species", "generation",
		"ability", "ability1", "ability2", "abilityd", "hidden_ability",
		"evolvesfrom", "evolvesto",
		"height", "metricheight", "weight", "metricweight",
		"jname", "ndex", "number",
		"first_game", "firstgame", "first game", "debut",
		"creator", "created_by", "designer", "designed_by", "artist",
	}
	for _, key := range keys {
		quoted := regexp.QuoteMeta(key)
		infoboxPatterns[key] = [2]*regexp.Regexp{
			regexp.MustCompile(`(?i)\|\s*` + quoted + `\s*=\s*([^|\n}]+)`),
			regexp.MustCompile(`(?i)\|\s*` + quoted + `\s*=\s*\[\[([^\]]+)\]\]`),
		}
	}
}

// infoboxField extracts and cleans the value of one "| key = value" infobox
// entry. Returns "" when the key is absent or cleans down to nothing.
func infoboxField(text, key string) string {
	patterns, ok := infoboxPatterns[key]
	if !ok {
		return ""
	}
	for _, pattern := range patterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			if value := CleanMarkup(strings.TrimSpace(m[1])); value != "" {
				return value
			}
		}
	}
	return ""
}

var sentenceBoundary = regexp.MustCompile(`([.!?])\s+`)

// splitSentences splits prose on sentence-ending punctuation, keeping the
// punctuation with the preceding sentence.
func splitSentences(text string) []string {
	var sentences []string
	last := 0
	for _, loc := range sentenceBoundary.FindAllStringSubmatchIndex(text, -1) {
		sentences = append(sentences, text[last:loc[3]])
		last = loc[1]
	}
	if last < len(text) {
		sentences = append(sentences, text[last:])
	}
	return sentences
}
