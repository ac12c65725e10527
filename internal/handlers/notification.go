package handlers

import (
	"math"
	"net/http"

	"talentradar/internal/db"
	"talentradar/internal/models"
	"talentradar/internal/utils"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct{}

func NewNotificationHandler() *NotificationHandler {
	return &NotificationHandler{}
}

// List returns the caller's notifications, unread first.
func (h *NotificationHandler) List(c *gin.Context) {
	user := MustCurrentUser(c)

	page := pageParam(c)
	perPage := 20
	offset := (page - 1) * perPage

	var total int64
	db.DB.Model(&models.Notification{}).Where("user_id = ?", user.ID).Count(&total)
	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	if totalPages == 0 {
		totalPages = 1
	}

	var notifications []models.Notification
	db.DB.Preload("Actor").
		Where("user_id = ?", user.ID).
		Order("is_read ASC, created_at DESC").
		Limit(perPage).
		Offset(offset).
		Find(&notifications)

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"page":          page,
		"total_pages":   totalPages,
	})
}

// Read marks one notification as read.
func (h *NotificationHandler) Read(c *gin.Context) {
	user := MustCurrentUser(c)

	res := db.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", utils.StringToUint(c.Param("id")), user.ID).
		Update("is_read", true)
	if res.RowsAffected == 0 {
		JSONError(c, http.StatusNotFound, "notification not found")
		return
	}
	c.Status(http.StatusNoContent)
}

// ReadAll marks everything as read.
func (h *NotificationHandler) ReadAll(c *gin.Context) {
	user := MustCurrentUser(c)
	db.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", user.ID, false).
		Update("is_read", true)
	c.Status(http.StatusNoContent)
}

// Delete removes one notification.
func (h *NotificationHandler) Delete(c *gin.Context) {
	user := MustCurrentUser(c)

	res := db.DB.Where("id = ? AND user_id = ?", utils.StringToUint(c.Param("id")), user.ID).
		Delete(&models.Notification{})
	if res.RowsAffected == 0 {
		JSONError(c, http.StatusNotFound, "notification not found")
		return
	}
	c.Status(http.StatusNoContent)
}
