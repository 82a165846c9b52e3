package models

// WikiPage is one Wikipedia article: a corpus-unique title plus raw markup.
// The upstream collector truncates very long articles before we see them.
type WikiPage struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// WikiInfo holds the structured attributes extracted from one WikiPage.
// Every field is optional; the struct is produced once per page and never
// mutated afterwards.
type WikiInfo struct {
	Title             string   `json:"title"`
	HasPokemonInfo    bool     `json:"has_pokemon_info"`
	Types             []string `json:"types,omitempty"`
	Species           string   `json:"species,omitempty"`
	Generation        string   `json:"generation,omitempty"`
	Abilities         []string `json:"abilities,omitempty"`
	EvolvesFrom       string   `json:"evolves_from,omitempty"`
	EvolvesTo         string   `json:"evolves_to,omitempty"`
	Height            string   `json:"height,omitempty"`
	Weight            string   `json:"weight,omitempty"`
	JapaneseName      string   `json:"japanese_name,omitempty"`
	PokedexNumber     string   `json:"pokedex_number,omitempty"`
	FirstGame         string   `json:"first_game,omitempty"`
	CreatedBy         string   `json:"created_by,omitempty"`
	DesignDescription string   `json:"design_description,omitempty"`
	Description       string   `json:"description,omitempty"`
}
