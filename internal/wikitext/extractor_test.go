package wikitext

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

const pikachuMarkup = `{{Short description|Pokémon species}}
{{Infobox Pokémon
| name = Pikachu
| jname = ピカチュウ
| ndex = 025
| type1 = Electric
| species = Mouse Pokémon
| ability1 = Static
| hidden_ability = Lightning Rod
| evolvesfrom = [[Pichu]]
| evolvesto = [[Raichu]]
| metricheight = 0.4 m
| metricweight = 6.0 kg
| generation = I
}}

'''Pikachu''' is an Electric-type Pokémon introduced in Generation I. Pikachu first appeared in the video games Pokémon Red and Blue. It is a yellow rodent with red cheeks and has yellow fur covering its body. Pikachu was designed by [[Atsuko Nishida]].

Pikachu is regarded as the franchise mascot and one of the most recognizable characters in gaming, appearing across games, an animated series, films and merchandise worldwide.`

func TestExtractPopulatedPage(t *testing.T) {
	info := Extract("Pikachu", pikachuMarkup)

	if !info.HasPokemonInfo {
		t.Fatal("expected HasPokemonInfo for a species article")
	}
	if info.Title != "Pikachu" {
		t.Errorf("Title = %q, want Pikachu", info.Title)
	}
	if want := []string{"Electric"}; !reflect.DeepEqual(info.Types, want) {
		t.Errorf("Types = %v, want %v", info.Types, want)
	}
	if info.Species != "Mouse Pokémon" {
		t.Errorf("Species = %q, want Mouse Pokémon", info.Species)
	}
	if info.Generation != "I" {
		t.Errorf("Generation = %q, want I", info.Generation)
	}
	if want := []string{"Static", "Lightning Rod"}; !reflect.DeepEqual(info.Abilities, want) {
		t.Errorf("Abilities = %v, want %v", info.Abilities, want)
	}
	if info.EvolvesFrom != "Pichu" {
		t.Errorf("EvolvesFrom = %q, want Pichu", info.EvolvesFrom)
	}
	if info.EvolvesTo != "Raichu" {
		t.Errorf("EvolvesTo = %q, want Raichu", info.EvolvesTo)
	}
	if info.Height != "0.4 m" {
		t.Errorf("Height = %q, want 0.4 m", info.Height)
	}
	if info.Weight != "6.0 kg" {
		t.Errorf("Weight = %q, want 6.0 kg", info.Weight)
	}
	if info.JapaneseName != "ピカチュウ" {
		t.Errorf("JapaneseName = %q, want ピカチュウ", info.JapaneseName)
	}
	if info.PokedexNumber != "025" {
		t.Errorf("PokedexNumber = %q, want 025", info.PokedexNumber)
	}
	if info.FirstGame == "" {
		t.Error("expected FirstGame from free-text fallback")
	}
	if info.CreatedBy != "Atsuko Nishida" {
		t.Errorf("CreatedBy = %q, want Atsuko Nishida", info.CreatedBy)
	}
	if info.DesignDescription == "" {
		t.Error("expected DesignDescription from appearance sentence")
	}
	if info.Description == "" || strings.HasPrefix(info.Description, "{{") {
		t.Errorf("Description = %q, want cleaned first paragraph", info.Description)
	}
}

func TestExtractFallbacks(t *testing.T) {
	t.Run("type from prose", func(t *testing.T) {
		info := Extract("Charizard", "Charizard is a Fire-type Pokémon and also a Flying-type Pokémon.")
		want := []string{"Fire", "Flying"}
		if !reflect.DeepEqual(info.Types, want) {
			t.Errorf("Types = %v, want %v", info.Types, want)
		}
		if !info.HasPokemonInfo {
			t.Error("expected HasPokemonInfo from type extraction alone")
		}
	})

	t.Run("invalid type tokens rejected", func(t *testing.T) {
		info := Extract("X", "It is a strong-type Pokémon.")
		if len(info.Types) != 0 {
			t.Errorf("Types = %v, want none", info.Types)
		}
	})

	t.Run("species from prose appends suffix", func(t *testing.T) {
		info := Extract("Pikachu", "Pikachu, the Mouse Pokémon, debuted in 1996.")
		if info.Species != "Mouse Pokémon" {
			t.Errorf("Species = %q, want Mouse Pokémon", info.Species)
		}
	})

	t.Run("generation from roman numeral prose", func(t *testing.T) {
		info := Extract("Lucario", "Lucario was introduced in Generation IV.")
		if info.Generation != "IV" {
			t.Errorf("Generation = %q, want IV", info.Generation)
		}
	})

	t.Run("evolves from link with pipe", func(t *testing.T) {
		info := Extract("Poliwhirl", "Poliwhirl evolves from [[Poliwag (Pokémon)|Poliwag]] at level 25.")
		if info.EvolvesFrom != "Poliwag" {
			t.Errorf("EvolvesFrom = %q, want Poliwag", info.EvolvesFrom)
		}
	})

	t.Run("japanese name from parenthetical", func(t *testing.T) {
		info := Extract("Eevee", "Eevee (Japanese: イーブイ Ībui) is a Pokémon.")
		if info.JapaneseName != "イーブイ Ībui" {
			t.Errorf("JapaneseName = %q, want イーブイ Ībui", info.JapaneseName)
		}
	})

	t.Run("abilities skip none", func(t *testing.T) {
		info := Extract("X", "| ability1 = none\n| ability2 = Levitate\n")
		want := []string{"Levitate"}
		if !reflect.DeepEqual(info.Abilities, want) {
			t.Errorf("Abilities = %v, want %v", info.Abilities, want)
		}
	})
}

func TestExtractNoPokemonInfo(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "empty text", text: ""},
		{
			name: "unrelated article",
			text: "The city hosts an annual festival attended by thousands of visitors every summer season for decades.",
		},
		{
			name: "mention without attributes",
			text: "The park features a statue resembling a popular cartoon character from a well known video game series.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := Extract("Springfield", tt.text)
			if info.HasPokemonInfo {
				t.Errorf("HasPokemonInfo = true for %q", tt.text)
			}
		})
	}
}

func TestExtractDescriptionTruncation(t *testing.T) {
	para := strings.Repeat("Pikachu is a famous character. ", 40)
	info := Extract("Pikachu", para)
	if len(info.Description) != 503 {
		t.Errorf("len(Description) = %d, want 503 (500 + ellipsis)", len(info.Description))
	}
	if !strings.HasSuffix(info.Description, "...") {
		t.Errorf("Description should end with ellipsis, got %q", info.Description[len(info.Description)-10:])
	}

	t.Run("multibyte under limit kept whole", func(t *testing.T) {
		para := strings.Repeat("é", 400)
		info := Extract("X", para)
		if got := utf8.RuneCountInString(info.Description); got != 400 {
			t.Errorf("Description rune count = %d, want 400", got)
		}
		if strings.HasSuffix(info.Description, "...") {
			t.Error("400-character paragraph should not be truncated")
		}
	})

	t.Run("multibyte over limit cut on character boundary", func(t *testing.T) {
		para := "a" + strings.Repeat("é", 600)
		info := Extract("X", para)
		if got := utf8.RuneCountInString(info.Description); got != 503 {
			t.Errorf("Description rune count = %d, want 503 (500 + ellipsis)", got)
		}
		if !utf8.ValidString(info.Description) {
			t.Errorf("Description is not valid UTF-8: %q", info.Description[:20])
		}
	})
}
