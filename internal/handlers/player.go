package handlers

import (
	"log"
	"math"
	"net/http"
	"strconv"
	"time"

	"talentradar/internal/db"
	"talentradar/internal/models"
	"talentradar/internal/services"
	"talentradar/internal/utils"

	"github.com/gin-gonic/gin"
)

type PlayerHandler struct{}

func NewPlayerHandler() *PlayerHandler {
	return &PlayerHandler{}
}

// fillCommentCounts batch-fills per-player comment counts for list pages.
func fillCommentCounts(players []models.Player) {
	if len(players) == 0 {
		return
	}

	playerIDs := make([]uint, len(players))
	for i, p := range players {
		playerIDs[i] = p.ID
	}

	type countResult struct {
		PlayerID uint
		Count    int
	}
	var results []countResult
	db.DB.Model(&models.Comment{}).
		Select("player_id, COUNT(*) as count").
		Where("player_id IN ?", playerIDs).
		Group("player_id").
		Scan(&results)

	countMap := make(map[uint]int)
	for _, r := range results {
		countMap[r.PlayerID] = r.Count
	}

	for i := range players {
		players[i].CommentCount = countMap[players[i].ID]
	}
}

func pageParam(c *gin.Context) int {
	page := 1
	if p := c.Query("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil && pageNum > 0 {
			page = pageNum
		}
	}
	return page
}

// List returns players, filterable by position/club and searchable by name.
func (h *PlayerHandler) List(c *gin.Context) {
	page := pageParam(c)
	perPage := 30
	offset := (page - 1) * perPage

	query := db.DB.Model(&models.Player{})
	if position := c.Query("position"); position != "" {
		query = query.Where("position = ?", position)
	}
	if club := c.Query("club"); club != "" {
		query = query.Where("club = ?", club)
	}
	if q := c.Query("q"); q != "" {
		query = query.Where("name LIKE ?", "%"+q+"%")
	}

	var total int64
	query.Count(&total)
	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	if totalPages == 0 {
		totalPages = 1
	}

	var players []models.Player
	query.Order("name ASC").Limit(perPage).Offset(offset).Find(&players)
	fillCommentCounts(players)

	c.JSON(http.StatusOK, gin.H{
		"players":     players,
		"page":        page,
		"total_pages": totalPages,
		"total":       total,
	})
}

// Trending returns the hottest players, cached for a minute.
func (h *PlayerHandler) Trending(c *gin.Context) {
	cacheKey := "players:trending"
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		c.JSON(http.StatusOK, cached)
		return
	}

	var players []models.Player
	db.DB.Order("trending_score DESC, views DESC").Limit(20).Find(&players)
	fillCommentCounts(players)

	payload := gin.H{"players": players}
	utils.GetCache().Set(cacheKey, payload, 1*time.Minute)
	c.JSON(http.StatusOK, payload)
}

// Detail returns one player by slug and records the view.
func (h *PlayerHandler) Detail(c *gin.Context) {
	slug := c.Param("slug")

	var player models.Player
	if err := db.DB.Where("slug = ?", slug).First(&player).Error; err != nil {
		JSONError(c, http.StatusNotFound, "player not found")
		return
	}

	var userID *uint
	if user := CurrentUser(c); user != nil {
		userID = &user.ID
	}
	if err := services.RecordPlayerView(player.ID, userID, c.ClientIP()); err != nil {
		// A failed view write must not break the page
		log.Printf("record view for player %d: %v", player.ID, err)
	}
	player.Views++

	following := false
	var myRating *models.Rating
	if userID != nil {
		var follow models.PlayerFollow
		if err := db.DB.Where("user_id = ? AND player_id = ?", *userID, player.ID).First(&follow).Error; err == nil {
			following = true
		}
		myRating, _ = services.GetUserRating(player.ID, *userID)
	}

	var commentCount int64
	db.DB.Model(&models.Comment{}).Where("player_id = ?", player.ID).Count(&commentCount)
	player.CommentCount = int(commentCount)

	var followerCount int64
	db.DB.Model(&models.PlayerFollow{}).Where("player_id = ?", player.ID).Count(&followerCount)

	c.JSON(http.StatusOK, gin.H{
		"player":         player,
		"following":      following,
		"my_rating":      myRating,
		"follower_count": followerCount,
	})
}

type playerInput struct {
	Name        string     `json:"name" binding:"required,max=100"`
	Position    string     `json:"position" binding:"required,oneof=GK DF MF FW"`
	Club        string     `json:"club" binding:"max=100"`
	Nationality string     `json:"nationality" binding:"max=100"`
	BirthDate   *time.Time `json:"birth_date"`
	PhotoURL    string     `json:"photo_url"`
}

// Create adds a player profile (admin only, enforced in the router).
func (h *PlayerHandler) Create(c *gin.Context) {
	var input playerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		JSONError(c, http.StatusBadRequest, "invalid input: "+err.Error())
		return
	}

	player := models.Player{
		Slug:        utils.RandStringBytesMaskImpr(8),
		Name:        input.Name,
		Position:    input.Position,
		Club:        input.Club,
		Nationality: input.Nationality,
		BirthDate:   input.BirthDate,
		PhotoURL:    input.PhotoURL,
	}
	if err := db.DB.Create(&player).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to create player")
		return
	}

	c.JSON(http.StatusCreated, player)
}

// Update edits a player profile (admin only).
func (h *PlayerHandler) Update(c *gin.Context) {
	var player models.Player
	if err := db.DB.Where("slug = ?", c.Param("slug")).First(&player).Error; err != nil {
		JSONError(c, http.StatusNotFound, "player not found")
		return
	}

	var input playerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		JSONError(c, http.StatusBadRequest, "invalid input: "+err.Error())
		return
	}

	updates := map[string]interface{}{
		"name":        input.Name,
		"position":    input.Position,
		"club":        input.Club,
		"nationality": input.Nationality,
		"photo_url":   input.PhotoURL,
	}
	if input.BirthDate != nil {
		updates["birth_date"] = input.BirthDate
	}
	if err := db.DB.Model(&player).Updates(updates).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to update player")
		return
	}

	c.JSON(http.StatusOK, player)
}

// Follow subscribes the caller to a player's activity.
func (h *PlayerHandler) Follow(c *gin.Context) {
	user := MustCurrentUser(c)

	var player models.Player
	if err := db.DB.Where("slug = ?", c.Param("slug")).First(&player).Error; err != nil {
		JSONError(c, http.StatusNotFound, "player not found")
		return
	}

	var existing models.PlayerFollow
	if err := db.DB.Where("user_id = ? AND player_id = ?", user.ID, player.ID).First(&existing).Error; err == nil {
		c.JSON(http.StatusOK, gin.H{"following": true})
		return
	}

	follow := models.PlayerFollow{UserID: user.ID, PlayerID: player.ID}
	if err := db.DB.Create(&follow).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to follow")
		return
	}
	services.GetTrendingService().SchedulePlayerUpdate(player.ID)

	c.JSON(http.StatusCreated, gin.H{"following": true})
}

// Unfollow removes the caller's follow, if any.
func (h *PlayerHandler) Unfollow(c *gin.Context) {
	user := MustCurrentUser(c)

	var player models.Player
	if err := db.DB.Where("slug = ?", c.Param("slug")).First(&player).Error; err != nil {
		JSONError(c, http.StatusNotFound, "player not found")
		return
	}

	db.DB.Where("user_id = ? AND player_id = ?", user.ID, player.ID).Delete(&models.PlayerFollow{})
	services.GetTrendingService().SchedulePlayerUpdate(player.ID)

	c.JSON(http.StatusOK, gin.H{"following": false})
}
