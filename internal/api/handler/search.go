package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dasha/promptfolio/internal/service"
)

// SearchHandler handles semantic prompt search endpoints.
type SearchHandler struct {
	searchService *service.SearchService
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(searchService *service.SearchService) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
	}
}

// Search handles GET /search/. An unmatched query is not an error: the
// response is always 200 with a JSON array, empty when nothing is close
// enough to the query.
func (h *SearchHandler) Search(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "query is required",
		})
		return
	}

	var userID *uint
	if v, ok := parseOptionalID(c.Query("user_id")); ok {
		userID = &v
	}

	arts, err := h.searchService.Search(c.Request.Context(), query, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Search failed: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, arts)
}
