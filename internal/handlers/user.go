package handlers

import (
	"net/http"

	"talentradar/internal/db"
	"talentradar/internal/models"
	"talentradar/internal/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// Profile returns a user's public page: level, recent threads and comments.
func (h *UserHandler) Profile(c *gin.Context) {
	var user models.User
	if err := db.DB.First(&user, utils.StringToUint(c.Param("id"))).Error; err != nil {
		JSONError(c, http.StatusNotFound, "user not found")
		return
	}

	level, icon := utils.GetUserLevel(user.Reputation)

	var threads []models.Thread
	db.DB.Preload("Player").Where("user_id = ?", user.ID).Order("created_at DESC").Limit(10).Find(&threads)
	fillReplyCounts(threads)

	var comments []models.Comment
	db.DB.Preload("Player").Where("user_id = ?", user.ID).Order("created_at DESC").Limit(10).Find(&comments)

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":          user.ID,
			"username":    user.Username,
			"avatar":      user.Avatar,
			"bio":         user.Bio,
			"reputation":  user.Reputation,
			"created_at":  user.CreatedAt,
			"level":       level,
			"level_icon":  icon,
			"member_days": utils.GetDaysSinceJoined(user.CreatedAt),
		},
		"threads":  threads,
		"comments": comments,
	})
}

type settingsInput struct {
	Username string `json:"username" binding:"required,min=2,max=30"`
	Avatar   string `json:"avatar" binding:"max=200"`
	Bio      string `json:"bio" binding:"max=200"`
}

// UpdateSettings edits the caller's profile fields.
func (h *UserHandler) UpdateSettings(c *gin.Context) {
	user := MustCurrentUser(c)

	var input settingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		JSONError(c, http.StatusBadRequest, "invalid input: "+err.Error())
		return
	}

	if err := db.DB.Model(user).Updates(map[string]interface{}{
		"username": input.Username,
		"avatar":   input.Avatar,
		"bio":      input.Bio,
	}).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to update settings")
		return
	}

	c.JSON(http.StatusOK, user)
}

// ReputationLogs returns the caller's reputation ledger.
func (h *UserHandler) ReputationLogs(c *gin.Context) {
	user := MustCurrentUser(c)

	var logs []models.ReputationLog
	db.DB.Where("user_id = ?", user.ID).Order("created_at DESC").Limit(100).Find(&logs)

	c.JSON(http.StatusOK, gin.H{
		"reputation": user.Reputation,
		"logs":       logs,
	})
}

// Following returns the players the caller follows.
func (h *UserHandler) Following(c *gin.Context) {
	user := MustCurrentUser(c)

	var follows []models.PlayerFollow
	db.DB.Preload("Player").Where("user_id = ?", user.ID).Order("created_at DESC").Find(&follows)

	players := make([]models.Player, len(follows))
	for i, f := range follows {
		players[i] = f.Player
	}

	c.JSON(http.StatusOK, gin.H{"players": players})
}
