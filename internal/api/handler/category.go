package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dasha/promptfolio/internal/service"
)

// CategoryHandler handles category endpoints.
type CategoryHandler struct {
	categories *service.CategoryService
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(categories *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categories: categories,
	}
}

// Top handles GET /categories/top/.
func (h *CategoryHandler) Top(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	counts, err := h.categories.TopCategories(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to get top categories: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, counts)
}

// List handles GET /categories/.
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categories.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list categories: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, categories)
}
