package handler

import (
	"errors"
	"net/http"
	"strconv"

	"manhwahub/internal/microservices/http-api/dto"
	"manhwahub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// RegisterPublicRoutes registers comment routes that need no authentication
func (h *CommentHandler) RegisterPublicRoutes(router *gin.RouterGroup) {
	router.GET("/manhwa/:manhwa_id/comments", h.ListThreads)
}

// RegisterRoutes registers comment routes behind the auth middleware
func (h *CommentHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/manhwa/:manhwa_id/chapters/:chapter_id/comments", h.Create)

	comments := router.Group("/comments")
	{
		comments.GET("/me", h.ListByCurrentUser)
		comments.PUT("/:id", h.Update)
		comments.DELETE("/:id", h.Delete)
		comments.POST("/:id/reactions", h.React)
		comments.GET("/:id/reactions/me", h.GetUserReaction)
	}
}

// RegisterModerationRoutes registers routes restricted to moderators
func (h *CommentHandler) RegisterModerationRoutes(router *gin.RouterGroup) {
	router.DELETE("/comments/:id", h.ModerateDelete)
}

// ListThreads retrieves the comment trees for a manhwa
// GET /api/manhwa/:manhwa_id/comments?chapter_id=3
func (h *CommentHandler) ListThreads(c *gin.Context) {
	manhwaID, err := strconv.ParseInt(c.Param("manhwa_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid manhwa ID"})
		return
	}

	var chapterID *int64
	if raw := c.Query("chapter_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid chapter ID"})
			return
		}
		chapterID = &parsed
	}

	threads, err := h.commentService.ListComments(manhwaID, chapterID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"threads": threads})
}

// Create creates a new comment or reply
// POST /api/manhwa/:manhwa_id/chapters/:chapter_id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	manhwaID, err := strconv.ParseInt(c.Param("manhwa_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid manhwa ID"})
		return
	}
	chapterID, err := strconv.ParseInt(c.Param("chapter_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid chapter ID"})
		return
	}

	userID, username, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.CreateCommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.commentService.CreateComment(manhwaID, chapterID, userID, username, req.Content, req.ParentID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyContent):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrParentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// Update updates an existing comment
// PUT /api/comments/:id
func (h *CommentHandler) Update(c *gin.Context) {
	commentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID"})
		return
	}

	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.UpdateCommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.commentService.UpdateComment(commentID, userID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyContent):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrCommentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrNotCommentAuthor):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, comment)
}

// Delete deletes a comment authored by the current user
// DELETE /api/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	commentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID"})
		return
	}

	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.commentService.DeleteComment(commentID, userID); err != nil {
		switch {
		case errors.Is(err, service.ErrCommentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrNotCommentAuthor):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}

// ModerateDelete deletes any comment, moderator only
// DELETE /api/moderation/comments/:id
func (h *CommentHandler) ModerateDelete(c *gin.Context) {
	commentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID"})
		return
	}

	if err := h.commentService.ModerateDeleteComment(commentID); err != nil {
		if errors.Is(err, service.ErrCommentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}

// React toggles or switches the current user's reaction on a comment
// POST /api/comments/:id/reactions
func (h *CommentHandler) React(c *gin.Context) {
	commentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID"})
		return
	}

	userID, username, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.ReactDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.commentService.React(commentID, userID, username, req.Type); err != nil {
		switch {
		case errors.Is(err, service.ErrCommentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrInvalidReaction):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reaction updated"})
}

// GetUserReaction returns the current user's reaction on a comment, if any
// GET /api/comments/:id/reactions/me
func (h *CommentHandler) GetUserReaction(c *gin.Context) {
	commentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID"})
		return
	}

	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	reaction, err := h.commentService.GetUserReaction(commentID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if reaction == "" {
		c.JSON(http.StatusOK, gin.H{"reaction": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reaction": reaction})
}

// ListByCurrentUser retrieves the current user's comments with pagination
// GET /api/comments/me?page=1&page_size=20
func (h *CommentHandler) ListByCurrentUser(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	comments, err := h.commentService.GetUserComments(userID, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, comments)
}

// currentUser pulls the authenticated identity set by the auth middleware.
// Writes a 401 and returns ok=false when it is missing.
func currentUser(c *gin.Context) (userID, username string, ok bool) {
	id, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return "", "", false
	}
	name, _ := c.Get("username")
	username, _ = name.(string)
	return id.(string), username, true
}
