package handlers

import (
	"fmt"
	"net/http"

	"talentradar/internal/db"
	"talentradar/internal/models"
	"talentradar/internal/services"
	"talentradar/internal/utils"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct{}

func NewCommentHandler() *CommentHandler {
	return &CommentHandler{}
}

type commentView struct {
	models.Comment
	ContentHTML string `json:"content_html"`
	MyVote      int    `json:"my_vote"`
}

// List returns a player's comments, oldest first, with the caller's votes.
func (h *CommentHandler) List(c *gin.Context) {
	var player models.Player
	if err := db.DB.Where("slug = ?", c.Param("slug")).First(&player).Error; err != nil {
		JSONError(c, http.StatusNotFound, "player not found")
		return
	}

	var comments []models.Comment
	db.DB.Preload("User").Where("player_id = ?", player.ID).Order("created_at ASC").Find(&comments)

	myVotes := make(map[uint]int)
	if user := CurrentUser(c); user != nil && len(comments) > 0 {
		commentIDs := make([]uint, len(comments))
		for i, com := range comments {
			commentIDs[i] = com.ID
		}
		var votes []models.CommentVote
		db.DB.Where("user_id = ? AND comment_id IN ?", user.ID, commentIDs).Find(&votes)
		for _, v := range votes {
			myVotes[v.CommentID] = v.Value
		}
	}

	views := make([]commentView, len(comments))
	for i, com := range comments {
		views[i] = commentView{
			Comment:     com,
			ContentHTML: utils.RenderMarkdown(com.Content),
			MyVote:      myVotes[com.ID],
		}
	}

	c.JSON(http.StatusOK, gin.H{"comments": views})
}

type commentInput struct {
	Content  string `json:"content" binding:"required,max=10000"`
	ParentID *uint  `json:"parent_id"`
}

// Create posts a comment on a player page.
func (h *CommentHandler) Create(c *gin.Context) {
	user := MustCurrentUser(c)
	if !checkPostingStatus(c, user) {
		return
	}

	var player models.Player
	if err := db.DB.Where("slug = ?", c.Param("slug")).First(&player).Error; err != nil {
		JSONError(c, http.StatusNotFound, "player not found")
		return
	}

	var input commentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		JSONError(c, http.StatusBadRequest, "invalid input: "+err.Error())
		return
	}

	comment := models.Comment{
		Cid:      utils.RandStringBytesMaskImpr(8),
		PlayerID: player.ID,
		UserID:   user.ID,
		Content:  input.Content,
	}

	var parent *models.Comment
	if input.ParentID != nil {
		parent = &models.Comment{}
		if err := db.DB.First(parent, *input.ParentID).Error; err != nil || parent.PlayerID != player.ID {
			JSONError(c, http.StatusNotFound, "parent comment not found")
			return
		}
		comment.ParentID = input.ParentID
	}

	if err := db.DB.Create(&comment).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to create comment")
		return
	}

	services.GetTrendingService().SchedulePlayerUpdate(player.ID)

	go func() {
		if services.CanEarnCommentRep(user.ID) {
			services.AddReputation(user.ID, services.RepCommentCreate, services.ActionCommentCreate)
		}

		link := "/players/" + player.Slug
		if parent != nil && parent.UserID != user.ID {
			services.Notify(parent.UserID, &user.ID, models.NotificationTypeCommentReply,
				fmt.Sprintf("%s replied to your comment on %s", user.Username, player.Name), link)
		}
		services.NotifyFollowers(player.ID, user.ID, models.NotificationTypePlayerComment,
			fmt.Sprintf("%s commented on %s", user.Username, player.Name), link)
	}()

	c.JSON(http.StatusCreated, gin.H{
		"comment":      comment,
		"content_html": utils.RenderMarkdown(comment.Content),
	})
}

// Delete removes the caller's comment (or any comment for admins).
func (h *CommentHandler) Delete(c *gin.Context) {
	user := MustCurrentUser(c)

	var comment models.Comment
	if err := db.DB.Where("cid = ?", c.Param("cid")).First(&comment).Error; err != nil {
		JSONError(c, http.StatusNotFound, "comment not found")
		return
	}
	if comment.UserID != user.ID && user.Role != "admin" {
		JSONError(c, http.StatusForbidden, "not your comment")
		return
	}

	if err := db.DB.Delete(&comment).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to delete comment")
		return
	}
	services.GetTrendingService().SchedulePlayerUpdate(comment.PlayerID)

	c.Status(http.StatusNoContent)
}
