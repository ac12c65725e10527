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
)

type ModerationHandler struct{}

func NewModerationHandler() *ModerationHandler {
	return &ModerationHandler{}
}

type reportInput struct {
	ItemType string `json:"item_type" binding:"required,oneof=thread reply comment"`
	ItemID   uint   `json:"item_id" binding:"required"`
	Reason   string `json:"reason" binding:"required,max=200"`
}

// Report files a content report and notifies the admins.
func (h *ModerationHandler) Report(c *gin.Context) {
	user := MustCurrentUser(c)

	var input reportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		JSONError(c, http.StatusBadRequest, "invalid input: "+err.Error())
		return
	}

	// The reported item must exist
	var link string
	switch input.ItemType {
	case "thread":
		var thread models.Thread
		if err := db.DB.First(&thread, input.ItemID).Error; err != nil {
			JSONError(c, http.StatusNotFound, "thread not found")
			return
		}
		link = "/threads/" + thread.Tid
	case "reply":
		var reply models.Reply
		if err := db.DB.Preload("Thread").First(&reply, input.ItemID).Error; err != nil {
			JSONError(c, http.StatusNotFound, "reply not found")
			return
		}
		link = "/threads/" + reply.Thread.Tid
	case "comment":
		var comment models.Comment
		if err := db.DB.Preload("Player").First(&comment, input.ItemID).Error; err != nil {
			JSONError(c, http.StatusNotFound, "comment not found")
			return
		}
		link = "/players/" + comment.Player.Slug
	}

	report := models.Report{
		UserID:   user.ID,
		ItemType: input.ItemType,
		ItemID:   input.ItemID,
		Reason:   input.Reason,
	}
	if err := db.DB.Create(&report).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to create report")
		return
	}

	go services.NotifyAdmins(user.ID,
		fmt.Sprintf("%s reported a %s: %s", user.Username, input.ItemType, input.Reason), link)

	c.JSON(http.StatusCreated, report)
}

// ListReports returns unresolved reports (admin).
func (h *ModerationHandler) ListReports(c *gin.Context) {
	var reports []models.Report
	db.DB.Preload("User").Where("resolved = ?", false).Order("created_at ASC").Find(&reports)
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

// ResolveReport closes a report (admin).
func (h *ModerationHandler) ResolveReport(c *gin.Context) {
	admin := MustCurrentUser(c)

	var report models.Report
	if err := db.DB.First(&report, utils.StringToUint(c.Param("id"))).Error; err != nil {
		JSONError(c, http.StatusNotFound, "report not found")
		return
	}

	now := time.Now()
	if err := db.DB.Model(&report).Updates(map[string]interface{}{
		"resolved":    true,
		"resolved_by": admin.ID,
		"resolved_at": now,
	}).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to resolve report")
		return
	}

	c.JSON(http.StatusOK, report)
}

// LockThread stops new replies and reply votes on a thread (admin).
func (h *ModerationHandler) LockThread(c *gin.Context) {
	h.setThreadLock(c, true)
}

// UnlockThread reopens a thread (admin).
func (h *ModerationHandler) UnlockThread(c *gin.Context) {
	h.setThreadLock(c, false)
}

func (h *ModerationHandler) setThreadLock(c *gin.Context, locked bool) {
	var thread models.Thread
	if err := db.DB.Where("tid = ?", c.Param("tid")).First(&thread).Error; err != nil {
		JSONError(c, http.StatusNotFound, "thread not found")
		return
	}

	if err := db.DB.Model(&thread).Update("locked", locked).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to update thread")
		return
	}

	c.JSON(http.StatusOK, gin.H{"tid": thread.Tid, "locked": locked})
}

// ClosePoll deactivates a poll ahead of its expiry (admin or poll owner).
func (h *ModerationHandler) ClosePoll(c *gin.Context) {
	user := MustCurrentUser(c)

	var poll models.Poll
	if err := db.DB.Where("pid = ?", c.Param("pid")).First(&poll).Error; err != nil {
		JSONError(c, http.StatusNotFound, "poll not found")
		return
	}
	if poll.UserID != user.ID && user.Role != "admin" {
		JSONError(c, http.StatusForbidden, "not your poll")
		return
	}

	if err := db.DB.Model(&poll).Update("active", false).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to close poll")
		return
	}

	c.JSON(http.StatusOK, gin.H{"pid": poll.Pid, "active": false})
}
