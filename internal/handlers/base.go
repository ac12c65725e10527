package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"talentradar/internal/db"
	"talentradar/internal/middleware"
	"talentradar/internal/models"
	"talentradar/internal/services"

	"github.com/gin-gonic/gin"
)

// CurrentUser returns the session user, or nil.
func CurrentUser(c *gin.Context) *models.User {
	if user, exists := c.Get(middleware.CheckUserKey); exists {
		return user.(*models.User)
	}
	return nil
}

// MustCurrentUser returns the session user behind AuthRequired routes.
func MustCurrentUser(c *gin.Context) *models.User {
	return c.MustGet(middleware.CheckUserKey).(*models.User)
}

// JSONError writes the standard error envelope.
func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

// ServiceError maps service-layer errors onto HTTP responses. Storage
// failures get logged and collapse into a 500 without leaking details.
func ServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		JSONError(c, http.StatusNotFound, "not found")
	case errors.Is(err, services.ErrInvalidVote),
		errors.Is(err, services.ErrInvalidRating),
		errors.Is(err, services.ErrAnonymousVoter):
		JSONError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrThreadLocked),
		errors.Is(err, services.ErrPollClosed),
		errors.Is(err, services.ErrPollExpired),
		errors.Is(err, services.ErrOptionMismatch),
		errors.Is(err, services.ErrAlreadyVoted):
		JSONError(c, http.StatusConflict, err.Error())
	default:
		log.Printf("internal error: %v", err)
		JSONError(c, http.StatusInternalServerError, "internal error")
	}
}

// checkPostingStatus rejects banned users and expired-or-active mutes.
// Returns false after writing the response when posting is not allowed.
func checkPostingStatus(c *gin.Context, user *models.User) bool {
	if user.Status == 2 {
		JSONError(c, http.StatusForbidden, "account is banned")
		return false
	}
	if user.Status == 1 {
		if user.MuteExpires != nil && time.Now().After(*user.MuteExpires) {
			// Mute expired, restore the account
			db.DB.Model(user).Update("status", 0)
			return true
		}
		JSONError(c, http.StatusForbidden, "account is muted")
		return false
	}
	return true
}
