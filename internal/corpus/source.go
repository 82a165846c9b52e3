package corpus

import "github.com/pokedata/cardwiki/internal/models"

// CardSource supplies the scraped card corpus. Implementations load
// everything up front; the join never streams.
type CardSource interface {
	LoadSets() (map[string]models.SetRecord, error)
	LoadAll() ([]models.EntityGroup, error)
}

// WikiSource supplies the filtered wiki corpus. Info and Text are optional:
// a nil map means the artifact is absent and matching degrades gracefully.
type WikiSource interface {
	LoadTitles() ([]string, error)
	LoadInfo() (map[string]*models.WikiInfo, error)
	LoadText() (map[string]string, error)
}

// FileCardSource reads per-record JSON files from the scraper's layout.
type FileCardSource struct {
	CardsDir string
	SetsDir  string

	sets map[string]models.SetRecord
}

func NewFileCardSource(cardsDir, setsDir string) *FileCardSource {
	return &FileCardSource{CardsDir: cardsDir, SetsDir: setsDir}
}

func (s *FileCardSource) LoadSets() (map[string]models.SetRecord, error) {
	sets, err := LoadSets(s.SetsDir)
	if err != nil {
		return nil, err
	}
	s.sets = sets
	return sets, nil
}

// LoadAll groups the card files by entity, enriched with whatever sets a
// prior LoadSets call found.
func (s *FileCardSource) LoadAll() ([]models.EntityGroup, error) {
	return LoadCards(s.CardsDir, s.sets)
}

// FileWikiSource reads the dump-filter pipeline's JSON artifacts.
type FileWikiSource struct {
	TitlesFile string
	InfoFile   string
	PagesFile  string
}

func NewFileWikiSource(titlesFile, infoFile, pagesFile string) *FileWikiSource {
	return &FileWikiSource{TitlesFile: titlesFile, InfoFile: infoFile, PagesFile: pagesFile}
}

func (s *FileWikiSource) LoadTitles() ([]string, error) {
	return LoadTitles(s.TitlesFile)
}

func (s *FileWikiSource) LoadInfo() (map[string]*models.WikiInfo, error) {
	return LoadInfoLookup(s.InfoFile)
}

func (s *FileWikiSource) LoadText() (map[string]string, error) {
	return LoadPageText(s.PagesFile)
}
