package handlers

import (
	"net/http"
	"strings"
	"talentradar/internal/db"
	"talentradar/internal/middleware"
	"talentradar/internal/models"
	"talentradar/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

type signupInput struct {
	Username string `json:"username" binding:"required,min=2,max=30"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var input signupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		JSONError(c, http.StatusBadRequest, "invalid input: "+err.Error())
		return
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "internal error")
		return
	}

	user := models.User{
		Username: strings.TrimSpace(input.Username),
		Email:    strings.ToLower(strings.TrimSpace(input.Email)),
		Password: hash,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		JSONError(c, http.StatusConflict, "email already registered")
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Save()

	c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		JSONError(c, http.StatusBadRequest, "invalid input: "+err.Error())
		return
	}

	var user models.User
	if err := db.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(input.Email))).First(&user).Error; err != nil {
		JSONError(c, http.StatusUnauthorized, "wrong email or password")
		return
	}
	if !utils.CheckPasswordHash(input.Password, user.Password) {
		JSONError(c, http.StatusUnauthorized, "wrong email or password")
		return
	}
	if user.Status == 2 {
		JSONError(c, http.StatusForbidden, "account is banned")
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Save()

	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.Status(http.StatusNoContent)
}

// Me returns the session user plus unread notification count.
func (h *AuthHandler) Me(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		JSONError(c, http.StatusUnauthorized, "not logged in")
		return
	}

	level, icon := utils.GetUserLevel(user.Reputation)
	var unread int64
	if count, ok := c.Get(middleware.UnreadCountKey); ok {
		unread = count.(int64)
	}
	c.JSON(http.StatusOK, gin.H{
		"user":         user,
		"level":        level,
		"level_icon":   icon,
		"unread_count": unread,
	})
}
