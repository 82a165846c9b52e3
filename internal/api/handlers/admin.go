package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pokedata/cardwiki/internal/services"
)

type AdminHandler struct {
	joinService *services.JoinService
}

func NewAdminHandler(joinService *services.JoinService) *AdminHandler {
	return &AdminHandler{joinService: joinService}
}

// Rejoin re-runs the full pipeline. The service rate-limits runs, so rapid
// repeats get 429.
func (h *AdminHandler) Rejoin(c *gin.Context) {
	if err := h.joinService.Rejoin(c.Request.Context()); err != nil {
		if errors.Is(err, services.ErrRejoinThrottled) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	run, _ := h.joinService.LastRun()
	c.JSON(http.StatusOK, run)
}

// LatestRun returns the summary of the most recent completed run.
func (h *AdminHandler) LatestRun(c *gin.Context) {
	run, ok := h.joinService.LastRun()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no completed runs"})
		return
	}
	c.JSON(http.StatusOK, run)
}
