package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dasha/promptfolio/internal/service"
)

// ArtHandler handles artwork endpoints.
type ArtHandler struct {
	arts  *service.ArtService
	users *service.UserService
}

// NewArtHandler creates a new art handler.
func NewArtHandler(arts *service.ArtService, users *service.UserService) *ArtHandler {
	return &ArtHandler{
		arts:  arts,
		users: users,
	}
}

// Create handles POST /arts/. Expects a multipart form with a "prompt" field
// and an "image" file part.
func (h *ArtHandler) Create(c *gin.Context) {
	prompt := c.PostForm("prompt")
	if prompt == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "prompt is required",
		})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "image file is required",
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "failed to open uploaded file",
		})
		return
	}
	defer file.Close()

	input := &service.CreateArtInput{
		Prompt:      prompt,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Reader:      file,
		Premium:     c.PostForm("premium") == "true",
	}
	if ownerID, ok := parseOptionalID(c.PostForm("owner_id")); ok {
		input.OwnerID = &ownerID
	}

	art, err := h.arts.Create(c.Request.Context(), input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create art: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, art)
}

// List handles GET /arts/.
func (h *ArtHandler) List(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	arts, err := h.arts.List(c.Request.Context(), skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list arts: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, arts)
}

// Get handles GET /arts/:id.
func (h *ArtHandler) Get(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid art ID",
		})
		return
	}

	var viewerID *uint
	if v, ok := parseOptionalID(c.Query("viewer_id")); ok {
		viewerID = &v
	}

	art, err := h.arts.Get(c.Request.Context(), id, viewerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Art not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to get art: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, art)
}

// Like handles POST /arts/:id/like.
func (h *ArtHandler) Like(c *gin.Context) {
	artID, userID, ok := h.likeParams(c)
	if !ok {
		return
	}

	if err := h.users.Like(c.Request.Context(), userID, artID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to like art: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"liked": true})
}

// Unlike handles DELETE /arts/:id/like.
func (h *ArtHandler) Unlike(c *gin.Context) {
	artID, userID, ok := h.likeParams(c)
	if !ok {
		return
	}

	if err := h.users.Unlike(c.Request.Context(), userID, artID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to unlike art: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"liked": false})
}

// Likes handles GET /arts/:id/likes.
func (h *ArtHandler) Likes(c *gin.Context) {
	artID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid art ID",
		})
		return
	}

	count, err := h.arts.CountLikes(c.Request.Context(), artID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to count likes: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// ListByOwner handles GET /users/:id/arts.
func (h *ArtHandler) ListByOwner(c *gin.Context) {
	ownerID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid user ID",
		})
		return
	}

	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	arts, err := h.arts.ListByOwner(c.Request.Context(), ownerID, skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list arts: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, arts)
}

func (h *ArtHandler) likeParams(c *gin.Context) (artID, userID uint, ok bool) {
	artID, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid art ID",
		})
		return 0, 0, false
	}

	userID, ok = parseOptionalID(c.Query("user_id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "user_id is required",
		})
		return 0, 0, false
	}

	return artID, userID, true
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	return uint(id), err
}

func parseOptionalID(raw string) (uint, bool) {
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
