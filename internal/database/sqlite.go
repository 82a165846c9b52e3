package database

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pokedata/cardwiki/internal/models"
)

var DB *gorm.DB

func Initialize(dbPath string) error {
	var err error
	DB, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return err
	}

	log.Println("Database connected successfully")

	err = DB.AutoMigrate(&models.JoinRun{}, &models.JoinedEntityRow{})
	if err != nil {
		return err
	}

	log.Println("Database migration completed")
	return nil
}

func GetDB() *gorm.DB {
	return DB
}

// SaveRun persists a completed join: the run summary plus one row per joined
// entity. Existing entity rows are replaced so the table always reflects the
// latest run.
func SaveRun(db *gorm.DB, run models.JoinRun, results []models.JoinedEntity) error {
	if err := db.Create(&run).Error; err != nil {
		return fmt.Errorf("saving join run: %w", err)
	}

	for _, r := range results {
		row, err := entityRow(r, run.ID)
		if err != nil {
			return err
		}
		if err := db.Save(&row).Error; err != nil {
			return fmt.Errorf("saving entity %s: %w", r.Pokemon, err)
		}
	}

	log.Printf("Persisted run %s with %d entities", run.ID, len(results))
	return nil
}

func entityRow(r models.JoinedEntity, runID string) (models.JoinedEntityRow, error) {
	cards, err := json.Marshal(r.Cards)
	if err != nil {
		return models.JoinedEntityRow{}, fmt.Errorf("encoding cards for %s: %w", r.Pokemon, err)
	}
	pages, err := json.Marshal(r.WikiPages)
	if err != nil {
		return models.JoinedEntityRow{}, fmt.Errorf("encoding pages for %s: %w", r.Pokemon, err)
	}
	var info []byte
	if r.WikiInfo != nil {
		if info, err = json.Marshal(r.WikiInfo); err != nil {
			return models.JoinedEntityRow{}, fmt.Errorf("encoding info for %s: %w", r.Pokemon, err)
		}
	}

	return models.JoinedEntityRow{
		Pokemon:       r.Pokemon,
		CardCount:     r.CardCount,
		Matched:       len(r.WikiPages) > 0,
		BestWikiPage:  r.BestWikiPage,
		CardsJSON:     string(cards),
		WikiPagesJSON: string(pages),
		WikiInfoJSON:  string(info),
		RunID:         runID,
		UpdatedAt:     time.Now(),
	}, nil
}

// EntityFromRow decodes a persisted row back into the API shape.
func EntityFromRow(row models.JoinedEntityRow) (models.JoinedEntity, error) {
	entity := models.JoinedEntity{
		Pokemon:      row.Pokemon,
		CardCount:    row.CardCount,
		BestWikiPage: row.BestWikiPage,
	}
	if row.CardsJSON != "" {
		if err := json.Unmarshal([]byte(row.CardsJSON), &entity.Cards); err != nil {
			return entity, fmt.Errorf("decoding cards for %s: %w", row.Pokemon, err)
		}
	}
	if row.WikiPagesJSON != "" {
		if err := json.Unmarshal([]byte(row.WikiPagesJSON), &entity.WikiPages); err != nil {
			return entity, fmt.Errorf("decoding pages for %s: %w", row.Pokemon, err)
		}
	}
	if row.WikiInfoJSON != "" {
		entity.WikiInfo = &models.WikiInfo{}
		if err := json.Unmarshal([]byte(row.WikiInfoJSON), entity.WikiInfo); err != nil {
			return entity, fmt.Errorf("decoding info for %s: %w", row.Pokemon, err)
		}
	}
	return entity, nil
}
