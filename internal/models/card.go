package models

// CardRecord is one scraped card listing. Records are immutable once loaded.
type CardRecord struct {
	Name    string   `json:"name"`
	Set     string   `json:"set"`
	ID      string   `json:"id"`
	Rarity  string   `json:"rarity,omitempty"`
	Price   float64  `json:"price"`
	Image   string   `json:"image"`
	Source  string   `json:"source"`
	SetInfo *SetInfo `json:"set_info,omitempty"`
}

// SetInfo is the enrichment attached to a card when its set is known.
type SetInfo struct {
	Release    string `json:"release"`
	Series     string `json:"series"`
	TotalCards int    `json:"total_cards"`
	Source     string `json:"source"`
}

// SetRecord is one scraped set description.
type SetRecord struct {
	Name       string `json:"name"`
	Release    string `json:"release"`
	Series     string `json:"series"`
	Symbol     string `json:"symbol"`
	TotalCards int    `json:"total_cards"`
	Source     string `json:"source"`
}

// EntityGroup is all cards sharing one canonical Pokemon display name.
// Groups are read-only after construction.
type EntityGroup struct {
	Pokemon string
	Cards   []CardRecord
}

// CardCount returns the number of member cards.
func (g *EntityGroup) CardCount() int {
	return len(g.Cards)
}
