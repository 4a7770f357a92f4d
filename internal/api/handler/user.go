package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dasha/promptfolio/internal/service"
)

// UserHandler handles user account and follow endpoints.
type UserHandler struct {
	users *service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{
		users: users,
	}
}

// Create handles POST /users/.
func (h *UserHandler) Create(c *gin.Context) {
	var input service.CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid user payload: " + err.Error(),
		})
		return
	}

	user, err := h.users.Create(c.Request.Context(), &input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create user: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Get handles GET /users/:id.
func (h *UserHandler) Get(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid user ID",
		})
		return
	}

	user, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "User not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to get user: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, user)
}

// Follow handles POST /users/:id/follow.
func (h *UserHandler) Follow(c *gin.Context) {
	followeeID, followerID, ok := h.followParams(c)
	if !ok {
		return
	}

	if err := h.users.Follow(c.Request.Context(), followerID, followeeID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Failed to follow user: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"following": true})
}

// Unfollow handles DELETE /users/:id/follow.
func (h *UserHandler) Unfollow(c *gin.Context) {
	followeeID, followerID, ok := h.followParams(c)
	if !ok {
		return
	}

	if err := h.users.Unfollow(c.Request.Context(), followerID, followeeID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to unfollow user: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"following": false})
}

// Searches handles GET /users/:id/searches.
func (h *UserHandler) Searches(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid user ID",
		})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	searches, err := h.users.RecentSearches(c.Request.Context(), id, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list searches: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, searches)
}

func (h *UserHandler) followParams(c *gin.Context) (followeeID, followerID uint, ok bool) {
	followeeID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid user ID",
		})
		return 0, 0, false
	}

	followerID, ok = parseOptionalID(c.Query("follower_id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "follower_id is required",
		})
		return 0, 0, false
	}

	return followeeID, followerID, true
}
