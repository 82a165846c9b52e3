package names

import "testing"

func TestDecomposeCardName(t *testing.T) {
	tests := []struct {
		name string
		input string
		want Decomposition
	}{
		{
			name:  "prefix and suffix rarity",
			input: "Paldean Wooper Reverse Holo",
			want:  Decomposition{Prefix: "Paldean", BaseName: "Wooper", Rarity: "Reverse Holo"},
		},
		{
			name:  "plain name",
			input: "Wooper",
			want:  Decomposition{BaseName: "Wooper"},
		},
		{
			name:  "prefix rarity wins before suffix search",
			input: "Full Art Pikachu",
			want:  Decomposition{BaseName: "Pikachu", Rarity: "Full Art"},
		},
		{
			name:  "suffix rarity only",
			input: "Charizard VMAX",
			want:  Decomposition{BaseName: "Charizard", Rarity: "VMAX"},
		},
		{
			name:  "set suffix stripped after rarity",
			input: "Machamp Holo 1st Edition",
			want:  Decomposition{BaseName: "Machamp Holo"},
		},
		{
			name:  "set suffix with rarity",
			input: "Blastoise Holo Shadowless",
			want:  Decomposition{BaseName: "Blastoise Holo"},
		},
		{
			name:  "owner form prefix",
			input: "Team Magma's Groudon",
			want:  Decomposition{Prefix: "Team Magma's", BaseName: "Groudon"},
		},
		{
			name:  "case-insensitive suffix",
			input: "Mewtwo gx",
			want:  Decomposition{BaseName: "Mewtwo", Rarity: "GX"},
		},
		{
			name:  "html entity in name",
			input: "Farfetch&#39;d",
			want:  Decomposition{BaseName: "Farfetch'd"},
		},
		{
			name:  "empty input",
			input: "",
			want:  Decomposition{},
		},
		{
			name:  "whitespace only",
			input: "   ",
			want:  Decomposition{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecomposeCardName(tt.input)
			if got != tt.want {
				t.Errorf("DecomposeCardName(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}
