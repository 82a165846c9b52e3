package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pokedata/cardwiki/internal/names"
	"github.com/pokedata/cardwiki/internal/services"
)

type EntityHandler struct {
	joinService *services.JoinService
}

func NewEntityHandler(joinService *services.JoinService) *EntityHandler {
	return &EntityHandler{joinService: joinService}
}

// ListEntities returns every joined entity; ?matched=true restricts the
// result to entities with at least one wiki candidate.
func (h *EntityHandler) ListEntities(c *gin.Context) {
	matchedOnly := c.Query("matched") == "true"
	results := h.joinService.Results(matchedOnly)
	c.JSON(http.StatusOK, gin.H{
		"count":   len(results),
		"pokemon": results,
	})
}

func (h *EntityHandler) GetEntity(c *gin.Context) {
	name := c.Param("name")
	entity, ok := h.joinService.Get(name)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "pokemon not found"})
		return
	}
	c.JSON(http.StatusOK, entity)
}

func (h *EntityHandler) SearchEntities(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'q' is required"})
		return
	}
	results := h.joinService.Search(query)
	c.JSON(http.StatusOK, gin.H{
		"count":   len(results),
		"pokemon": results,
	})
}

// GetStats returns the join, card and extraction statistics of the last run.
func (h *EntityHandler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"join":       h.joinService.Stats(),
		"cards":      h.joinService.CardStats(),
		"extraction": h.joinService.ExtractionStats(),
	})
}

// DecomposeName splits a raw card display name into form prefix, base name
// and rarity, and reports the coarser base used for wiki matching.
func (h *EntityHandler) DecomposeName(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'name' is required"})
		return
	}
	d := names.DecomposeCardName(name)
	c.JSON(http.StatusOK, gin.H{
		"prefix":       d.Prefix,
		"base_name":    d.BaseName,
		"rarity":       d.Rarity,
		"base_pokemon": names.ExtractBasePokemon(name),
		"normalized":   names.Normalize(name),
	})
}
