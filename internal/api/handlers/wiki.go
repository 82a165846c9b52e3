package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pokedata/cardwiki/internal/services"
)

type WikiHandler struct {
	joinService *services.JoinService
}

func NewWikiHandler(joinService *services.JoinService) *WikiHandler {
	return &WikiHandler{joinService: joinService}
}

// ListWikiPages returns the reverse join: every wiki title with the entities
// that matched it. ?matched=true restricts to titles with at least one.
func (h *WikiHandler) ListWikiPages(c *gin.Context) {
	matchedOnly := c.Query("matched") == "true"
	pages := h.joinService.WikiPages(matchedOnly)
	c.JSON(http.StatusOK, gin.H{
		"count": len(pages),
		"pages": pages,
	})
}

// GetWikiInfo returns the extracted attributes for one article title.
func (h *WikiHandler) GetWikiInfo(c *gin.Context) {
	title := c.Param("title")
	info, ok := h.joinService.WikiInfoFor(title)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "wiki page not found"})
		return
	}
	c.JSON(http.StatusOK, info)
}
