package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"talentradar/internal/db"
	"talentradar/internal/models"
	"talentradar/internal/services"
	"talentradar/internal/utils"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct{}

func NewAnalyticsHandler() *AnalyticsHandler {
	return &AnalyticsHandler{}
}

func daysParam(c *gin.Context, fallback int) int {
	if d := c.Query("days"); d != "" {
		if days, err := strconv.Atoi(d); err == nil && days > 0 && days <= 90 {
			return days
		}
	}
	return fallback
}

// TopViewed returns the most viewed players over the window, cached briefly.
func (h *AnalyticsHandler) TopViewed(c *gin.Context) {
	days := daysParam(c, 7)

	cacheKey := fmt.Sprintf("analytics:topviewed:%d", days)
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		c.JSON(http.StatusOK, cached)
		return
	}

	results, err := services.TopViewedPlayers(days, 20)
	if err != nil {
		ServiceError(c, err)
		return
	}

	payload := gin.H{"days": days, "players": results}
	utils.GetCache().Set(cacheKey, payload, 5*time.Minute)
	c.JSON(http.StatusOK, payload)
}

// ViewSeries returns a player's per-day view counts.
func (h *AnalyticsHandler) ViewSeries(c *gin.Context) {
	var player models.Player
	if err := db.DB.Where("slug = ?", c.Param("slug")).First(&player).Error; err != nil {
		JSONError(c, http.StatusNotFound, "player not found")
		return
	}

	days := daysParam(c, 30)
	series, err := services.PlayerViewSeries(player.ID, days)
	if err != nil {
		ServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"player": player.Slug,
		"days":   days,
		"series": series,
	})
}

// TopRated returns the rating leaderboard, minimum 3 ratings to qualify.
func (h *AnalyticsHandler) TopRated(c *gin.Context) {
	cacheKey := "analytics:toprated"
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		c.JSON(http.StatusOK, cached)
		return
	}

	var players []models.Player
	db.DB.Where("rating_count >= ?", 3).
		Order("avg_rating DESC, rating_count DESC").
		Limit(20).
		Find(&players)

	payload := gin.H{"players": players}
	utils.GetCache().Set(cacheKey, payload, 5*time.Minute)
	c.JSON(http.StatusOK, payload)
}
