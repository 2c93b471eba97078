package handler

import (
	"net/http"
	"strconv"

	"manhwahub/internal/microservices/http-api/dto"
	"manhwahub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	statsService service.UserStatsService
}

func NewStatsHandler(statsService service.UserStatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// RegisterRoutes registers stats routes behind the auth middleware
func (h *StatsHandler) RegisterRoutes(router *gin.RouterGroup) {
	stats := router.Group("/stats")
	{
		stats.GET("/me", h.GetMyStats)
		stats.POST("/chapters/read", h.MarkChapterRead)
		stats.POST("/reading-time", h.AddReadingTime)
		stats.GET("/progress/:manhwa_id", h.GetProgress)
	}
}

// RegisterPublicRoutes registers routes that need no authentication
func (h *StatsHandler) RegisterPublicRoutes(router *gin.RouterGroup) {
	router.GET("/leaderboard", h.Leaderboard)
}

// GetMyStats returns the activity counters for the current user
// GET /api/stats/me
func (h *StatsHandler) GetMyStats(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	stats, err := h.statsService.GetStats(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// MarkChapterRead records that the current user finished a chapter
// POST /api/stats/chapters/read
func (h *StatsHandler) MarkChapterRead(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.MarkChapterReadDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.statsService.MarkChapterRead(userID, req.ManhwaID, req.ChapterID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Chapter marked as read"})
}

// AddReadingTime adds minutes to the current user's reading total
// POST /api/stats/reading-time
func (h *StatsHandler) AddReadingTime(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.ReadingTimeDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.statsService.AddReadingTime(userID, req.Minutes); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reading time recorded"})
}

// GetProgress returns the current user's reading progress for one manhwa
// GET /api/stats/progress/:manhwa_id
func (h *StatsHandler) GetProgress(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	manhwaID, err := strconv.ParseInt(c.Param("manhwa_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid manhwa ID"})
		return
	}

	progress, err := h.statsService.GetReadingProgress(userID, manhwaID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"progress": progress})
}

// Leaderboard returns the community ranking for a metric
// GET /api/leaderboard?metric=chapters&limit=100
func (h *StatsHandler) Leaderboard(c *gin.Context) {
	metric := c.DefaultQuery("metric", "chapters")

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if limit < 1 || limit > 500 {
		limit = 100
	}

	entries, err := h.statsService.Leaderboard(c.Request.Context(), metric, limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}
