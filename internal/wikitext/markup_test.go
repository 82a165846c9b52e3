package wikitext

import "testing"

func TestCleanMarkup(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain text unchanged",
			input: "Pikachu is an Electric-type",
			want:  "Pikachu is an Electric-type",
		},
		{
			name:  "link keeps display text",
			input: "evolves into [[Raichu]]",
			want:  "evolves into Raichu",
		},
		{
			name:  "piped link keeps display text",
			input: "[[Pikachu (Pokémon)|Pikachu]] is popular",
			want:  "Pikachu is popular",
		},
		{
			name:  "templates removed",
			input: "before {{nihongo|Pikachu|ピカチュウ}} after",
			want:  "before after",
		},
		{
			name:  "nested templates removed within pass limit",
			input: "x {{outer|{{inner|a}}|b}} y",
			want:  "x y",
		},
		{
			name:  "ref pairs removed",
			input: `Pikachu<ref name="ign">IGN review</ref> remains`,
			want:  "Pikachu remains",
		},
		{
			name:  "self closing refs removed",
			input: `Pikachu<ref name="ign"/> remains`,
			want:  "Pikachu remains",
		},
		{
			name:  "html entities decoded",
			input: "Pok&eacute;mon &amp; friends",
			want:  "Pokémon & friends",
		},
		{
			name:  "bold italic markup stripped",
			input: "'''Pikachu''' is ''famous''",
			want:  "Pikachu is famous",
		},
		{
			name:  "whitespace collapsed",
			input: "a   b\n\tc",
			want:  "a b c",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanMarkup(tt.input)
			if got != tt.want {
				t.Errorf("CleanMarkup(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestInfoboxField(t *testing.T) {
	markup := `{{Infobox Pokémon
| name = Pikachu
| type1 = Electric
| species = Mouse Pokémon
| evolvesfrom = [[Pichu]]
| ndex = 025
}}`

	tests := []struct {
		name string
		key  string
		want string
	}{
		{name: "plain value", key: "type1", want: "Electric"},
		{name: "linked value", key: "evolvesfrom", want: "Pichu"},
		{name: "multi word value", key: "species", want: "Mouse Pokémon"},
		{name: "numeric value", key: "ndex", want: "025"},
		{name: "missing key", key: "weight", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := infoboxField(markup, tt.key)
			if got != tt.want {
				t.Errorf("infoboxField(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}

	t.Run("uppercase key in markup", func(t *testing.T) {
		if got := infoboxField("| NDEX = 025\n", "ndex"); got != "025" {
			t.Errorf("infoboxField(ndex) = %q, want 025", got)
		}
	})
}
