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

type ReplyHandler struct{}

func NewReplyHandler() *ReplyHandler {
	return &ReplyHandler{}
}

type replyInput struct {
	Content  string `json:"content" binding:"required,max=10000"`
	ParentID *uint  `json:"parent_id"`
}

// Create posts a reply on a thread. Locked threads reject replies.
func (h *ReplyHandler) Create(c *gin.Context) {
	user := MustCurrentUser(c)
	if !checkPostingStatus(c, user) {
		return
	}

	var thread models.Thread
	if err := db.DB.Where("tid = ?", c.Param("tid")).First(&thread).Error; err != nil {
		JSONError(c, http.StatusNotFound, "thread not found")
		return
	}
	if thread.Locked {
		JSONError(c, http.StatusConflict, "thread is locked")
		return
	}

	var input replyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		JSONError(c, http.StatusBadRequest, "invalid input: "+err.Error())
		return
	}

	reply := models.Reply{
		ThreadID: thread.ID,
		UserID:   user.ID,
		Content:  input.Content,
	}

	var parent *models.Reply
	if input.ParentID != nil {
		parent = &models.Reply{}
		if err := db.DB.First(parent, *input.ParentID).Error; err != nil || parent.ThreadID != thread.ID {
			JSONError(c, http.StatusNotFound, "parent reply not found")
			return
		}
		reply.ParentID = input.ParentID
	}

	if err := db.DB.Create(&reply).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to create reply")
		return
	}

	services.GetTrendingService().ScheduleThreadUpdate(thread.ID)

	go func() {
		if services.CanEarnCommentRep(user.ID) {
			services.AddReputation(user.ID, services.RepReplyCreate, services.ActionReplyCreate)
		}

		link := "/threads/" + thread.Tid
		if parent != nil && parent.UserID != user.ID {
			services.Notify(parent.UserID, &user.ID, models.NotificationTypeReplyReply,
				fmt.Sprintf("%s replied to you in \"%s\"", user.Username, thread.Title), link)
		}
		if thread.UserID != user.ID && (parent == nil || parent.UserID != thread.UserID) {
			services.Notify(thread.UserID, &user.ID, models.NotificationTypeThreadReply,
				fmt.Sprintf("%s replied to your thread \"%s\"", user.Username, thread.Title), link)
		}
	}()

	c.JSON(http.StatusCreated, gin.H{
		"reply":        reply,
		"content_html": utils.RenderMarkdown(reply.Content),
	})
}

// Delete removes the caller's reply (or any reply for admins).
func (h *ReplyHandler) Delete(c *gin.Context) {
	user := MustCurrentUser(c)

	var reply models.Reply
	if err := db.DB.First(&reply, utils.StringToUint(c.Param("id"))).Error; err != nil {
		JSONError(c, http.StatusNotFound, "reply not found")
		return
	}
	if reply.UserID != user.ID && user.Role != "admin" {
		JSONError(c, http.StatusForbidden, "not your reply")
		return
	}

	if err := db.DB.Delete(&reply).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to delete reply")
		return
	}
	services.GetTrendingService().ScheduleThreadUpdate(reply.ThreadID)

	c.Status(http.StatusNoContent)
}
