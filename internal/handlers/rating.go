package handlers

import (
	"net/http"

	"talentradar/internal/db"
	"talentradar/internal/models"
	"talentradar/internal/services"

	"github.com/gin-gonic/gin"
)

type RatingHandler struct{}

func NewRatingHandler() *RatingHandler {
	return &RatingHandler{}
}

type ratingInput struct {
	Score int `json:"score" binding:"required,min=1,max=10"`
}

// Rate records or updates the caller's 1-10 rating of a player.
func (h *RatingHandler) Rate(c *gin.Context) {
	user := MustCurrentUser(c)

	var player models.Player
	if err := db.DB.Where("slug = ?", c.Param("slug")).First(&player).Error; err != nil {
		JSONError(c, http.StatusNotFound, "player not found")
		return
	}

	var input ratingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		JSONError(c, http.StatusBadRequest, "invalid input: "+err.Error())
		return
	}

	// Only a first rating earns reputation; re-rates update the row in place.
	existing, _ := services.GetUserRating(player.ID, user.ID)

	rating, err := services.RatePlayer(player.ID, user.ID, input.Score)
	if err != nil {
		ServiceError(c, err)
		return
	}
	if existing == nil {
		services.AddReputation(user.ID, services.RepRatingCast, services.ActionRatingCast)
	}

	// Re-read the refreshed aggregates
	db.DB.First(&player, player.ID)

	c.JSON(http.StatusOK, gin.H{
		"rating":       rating,
		"avg_rating":   player.AvgRating,
		"rating_count": player.RatingCount,
	})
}

// Remove withdraws the caller's rating.
func (h *RatingHandler) Remove(c *gin.Context) {
	user := MustCurrentUser(c)

	var player models.Player
	if err := db.DB.Where("slug = ?", c.Param("slug")).First(&player).Error; err != nil {
		JSONError(c, http.StatusNotFound, "player not found")
		return
	}

	if err := services.RemoveRating(player.ID, user.ID); err != nil {
		ServiceError(c, err)
		return
	}

	db.DB.First(&player, player.ID)

	c.JSON(http.StatusOK, gin.H{
		"avg_rating":   player.AvgRating,
		"rating_count": player.RatingCount,
	})
}
