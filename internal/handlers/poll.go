package handlers

import (
	"fmt"
	"net/http"
	"time"

	"talentradar/internal/db"
	"talentradar/internal/models"
	"talentradar/internal/services"
	"talentradar/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PollHandler struct{}

func NewPollHandler() *PollHandler {
	return &PollHandler{}
}

type pollInput struct {
	Question   string     `json:"question" binding:"required,max=300"`
	Options    []string   `json:"options" binding:"required,min=2,max=10,dive,required,max=100"`
	PlayerSlug string     `json:"player_slug"`
	Anonymous  bool       `json:"anonymous"`
	ExpiresAt  *time.Time `json:"expires_at"`
}

func (h *PollHandler) Create(c *gin.Context) {
	user := MustCurrentUser(c)
	if !checkPostingStatus(c, user) {
		return
	}

	var input pollInput
	if err := c.ShouldBindJSON(&input); err != nil {
		JSONError(c, http.StatusBadRequest, "invalid input: "+err.Error())
		return
	}
	if input.ExpiresAt != nil && input.ExpiresAt.Before(time.Now()) {
		JSONError(c, http.StatusBadRequest, "expiry must be in the future")
		return
	}

	poll := models.Poll{
		Pid:       utils.RandStringBytesMaskImpr(8),
		UserID:    user.ID,
		Question:  input.Question,
		Anonymous: input.Anonymous,
		Active:    true,
		ExpiresAt: input.ExpiresAt,
	}

	var player *models.Player
	if input.PlayerSlug != "" {
		player = &models.Player{}
		if err := db.DB.Where("slug = ?", input.PlayerSlug).First(player).Error; err != nil {
			JSONError(c, http.StatusNotFound, "player not found")
			return
		}
		poll.PlayerID = &player.ID
	}

	for i, label := range input.Options {
		poll.Options = append(poll.Options, models.PollOption{Label: label, Position: i})
	}

	if err := db.DB.Create(&poll).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to create poll")
		return
	}

	if player != nil {
		go services.NotifyFollowers(player.ID, user.ID, models.NotificationTypePlayerPoll,
			fmt.Sprintf("New poll about %s: %s", player.Name, poll.Question),
			"/polls/"+poll.Pid)
	}

	c.JSON(http.StatusCreated, poll)
}

// List returns polls, newest first. ?active=true filters to open polls.
func (h *PollHandler) List(c *gin.Context) {
	query := db.DB.Preload("Options").Preload("User").Preload("Player")
	if c.Query("active") == "true" {
		query = query.Where("active = ?", true)
	}
	if slug := c.Query("player"); slug != "" {
		var player models.Player
		if err := db.DB.Where("slug = ?", slug).First(&player).Error; err != nil {
			JSONError(c, http.StatusNotFound, "player not found")
			return
		}
		query = query.Where("player_id = ?", player.ID)
	}

	var polls []models.Poll
	query.Order("created_at DESC").Limit(50).Find(&polls)

	c.JSON(http.StatusOK, gin.H{"polls": polls})
}

// Detail returns a poll with its options and, for identified polls, the
// caller's current choice.
func (h *PollHandler) Detail(c *gin.Context) {
	var poll models.Poll
	if err := db.DB.Preload("Options", func(g *gorm.DB) *gorm.DB {
		return g.Order("position ASC")
	}).Preload("User").Preload("Player").Where("pid = ?", c.Param("pid")).First(&poll).Error; err != nil {
		JSONError(c, http.StatusNotFound, "poll not found")
		return
	}

	var myOptionID *uint
	if user := CurrentUser(c); user != nil && !poll.Anonymous {
		var vote models.PollVote
		if err := db.DB.Where("poll_id = ? AND user_id = ?", poll.ID, user.ID).First(&vote).Error; err == nil {
			myOptionID = &vote.OptionID
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"poll":         poll,
		"my_option_id": myOptionID,
	})
}

type pollVoteInput struct {
	OptionID uint `json:"option_id" binding:"required"`
}

// Vote casts a vote. Anonymous polls accept unauthenticated votes keyed by
// client IP; identified polls require a session.
func (h *PollHandler) Vote(c *gin.Context) {
	var poll models.Poll
	if err := db.DB.Where("pid = ?", c.Param("pid")).First(&poll).Error; err != nil {
		JSONError(c, http.StatusNotFound, "poll not found")
		return
	}

	var input pollVoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		JSONError(c, http.StatusBadRequest, "invalid input: "+err.Error())
		return
	}

	voter := services.PollVoter{IP: c.ClientIP()}
	if !poll.Anonymous {
		user := CurrentUser(c)
		if user == nil {
			JSONError(c, http.StatusUnauthorized, "authentication required")
			return
		}
		voter.UserID = user.ID
	}

	vote, err := services.CastPollVote(poll.ID, input.OptionID, voter)
	if err != nil {
		ServiceError(c, err)
		return
	}

	// Return the refreshed tallies
	var options []models.PollOption
	db.DB.Where("poll_id = ?", poll.ID).Order("position ASC").Find(&options)
	db.DB.First(&poll, poll.ID)

	var myOptionID *uint
	if vote != nil {
		myOptionID = &vote.OptionID
	}
	c.JSON(http.StatusOK, gin.H{
		"options":      options,
		"total_votes":  poll.TotalVotes,
		"my_option_id": myOptionID,
	})
}
