package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dasha/promptfolio/internal/service"
)

// StatsHandler exposes gallery-wide counters.
type StatsHandler struct {
	arts       *service.ArtService
	categories *service.CategoryService
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(arts *service.ArtService, categories *service.CategoryService) *StatsHandler {
	return &StatsHandler{
		arts:       arts,
		categories: categories,
	}
}

// Stats handles GET /stats.
func (h *StatsHandler) Stats(c *gin.Context) {
	total, err := h.arts.Count(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to get stats: " + err.Error(),
		})
		return
	}

	cats, err := h.categories.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to get stats: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"arts":       total,
		"categories": len(cats),
	})
}
