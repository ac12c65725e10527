package handlers

import (
	"fmt"
	"math"
	"net/http"
	"time"

	"talentradar/internal/db"
	"talentradar/internal/models"
	"talentradar/internal/services"
	"talentradar/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ThreadHandler struct{}

func NewThreadHandler() *ThreadHandler {
	return &ThreadHandler{}
}

// fillReplyCounts batch-fills per-thread reply counts for list pages.
func fillReplyCounts(threads []models.Thread) {
	if len(threads) == 0 {
		return
	}

	threadIDs := make([]uint, len(threads))
	for i, t := range threads {
		threadIDs[i] = t.ID
	}

	type countResult struct {
		ThreadID uint
		Count    int
	}
	var results []countResult
	db.DB.Model(&models.Reply{}).
		Select("thread_id, COUNT(*) as count").
		Where("thread_id IN ?", threadIDs).
		Group("thread_id").
		Scan(&results)

	countMap := make(map[uint]int)
	for _, r := range results {
		countMap[r.ThreadID] = r.Count
	}

	for i := range threads {
		threads[i].ReplyCount = countMap[threads[i].ID]
	}
}

func (h *ThreadHandler) list(c *gin.Context, order string, playerID *uint) {
	page := pageParam(c)
	perPage := 30
	offset := (page - 1) * perPage

	query := db.DB.Model(&models.Thread{})
	if playerID != nil {
		query = query.Where("player_id = ?", *playerID)
	}

	var total int64
	query.Count(&total)
	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	if totalPages == 0 {
		totalPages = 1
	}

	var threads []models.Thread
	query.Preload("User").Preload("Player").
		Order(order).
		Limit(perPage).
		Offset(offset).
		Find(&threads)
	fillReplyCounts(threads)

	c.JSON(http.StatusOK, gin.H{
		"threads":     threads,
		"page":        page,
		"total_pages": totalPages,
		"total":       total,
	})
}

// ListTop returns threads by trending score, cached for a minute.
func (h *ThreadHandler) ListTop(c *gin.Context) {
	cacheKey := fmt.Sprintf("threads:top:page:%d", pageParam(c))
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		c.JSON(http.StatusOK, cached)
		return
	}

	// list writes the response itself; cache the heavy part instead
	page := pageParam(c)
	perPage := 30
	offset := (page - 1) * perPage

	var total int64
	db.DB.Model(&models.Thread{}).Count(&total)
	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	if totalPages == 0 {
		totalPages = 1
	}

	var threads []models.Thread
	db.DB.Preload("User").Preload("Player").
		Order("score DESC, created_at DESC").
		Limit(perPage).
		Offset(offset).
		Find(&threads)
	fillReplyCounts(threads)

	payload := gin.H{
		"threads":     threads,
		"page":        page,
		"total_pages": totalPages,
		"total":       total,
	}
	utils.GetCache().Set(cacheKey, payload, 1*time.Minute)
	c.JSON(http.StatusOK, payload)
}

// ListNew returns threads newest first.
func (h *ThreadHandler) ListNew(c *gin.Context) {
	h.list(c, "created_at DESC", nil)
}

// ListByPlayer returns threads attached to one player.
func (h *ThreadHandler) ListByPlayer(c *gin.Context) {
	var player models.Player
	if err := db.DB.Where("slug = ?", c.Param("slug")).First(&player).Error; err != nil {
		JSONError(c, http.StatusNotFound, "player not found")
		return
	}
	h.list(c, "created_at DESC", &player.ID)
}

type replyView struct {
	models.Reply
	ContentHTML string `json:"content_html"`
	MyVote      int    `json:"my_vote"`
}

// Detail returns a thread with rendered body and its replies.
func (h *ThreadHandler) Detail(c *gin.Context) {
	tid := c.Param("tid")

	var thread models.Thread
	if err := db.DB.Preload("User").Preload("Player").Where("tid = ?", tid).First(&thread).Error; err != nil {
		JSONError(c, http.StatusNotFound, "thread not found")
		return
	}

	db.DB.Model(&thread).UpdateColumn("views", gorm.Expr("views + 1"))
	thread.Views++
	services.GetTrendingService().ScheduleThreadUpdate(thread.ID)

	var replies []models.Reply
	db.DB.Preload("User").Where("thread_id = ?", thread.ID).Order("created_at ASC").Find(&replies)

	// The caller's existing votes, to light up the buttons
	myVotes := make(map[uint]int)
	if user := CurrentUser(c); user != nil && len(replies) > 0 {
		replyIDs := make([]uint, len(replies))
		for i, r := range replies {
			replyIDs[i] = r.ID
		}
		var votes []models.ReplyVote
		db.DB.Where("user_id = ? AND reply_id IN ?", user.ID, replyIDs).Find(&votes)
		for _, v := range votes {
			myVotes[v.ReplyID] = v.Value
		}
	}

	replyViews := make([]replyView, len(replies))
	for i, reply := range replies {
		replyViews[i] = replyView{
			Reply:       reply,
			ContentHTML: utils.RenderMarkdown(reply.Content),
			MyVote:      myVotes[reply.ID],
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"thread":       thread,
		"content_html": utils.RenderMarkdown(thread.Content),
		"replies":      replyViews,
	})
}

type threadInput struct {
	Title      string `json:"title" binding:"required,max=200"`
	Content    string `json:"content" binding:"max=20000"`
	PlayerSlug string `json:"player_slug"`
}

func (h *ThreadHandler) Create(c *gin.Context) {
	user := MustCurrentUser(c)
	if !checkPostingStatus(c, user) {
		return
	}

	var input threadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		JSONError(c, http.StatusBadRequest, "invalid input: "+err.Error())
		return
	}

	thread := models.Thread{
		Tid:     utils.RandStringBytesMaskImpr(8),
		UserID:  user.ID,
		Title:   input.Title,
		Content: input.Content,
	}

	var player *models.Player
	if input.PlayerSlug != "" {
		player = &models.Player{}
		if err := db.DB.Where("slug = ?", input.PlayerSlug).First(player).Error; err != nil {
			JSONError(c, http.StatusNotFound, "player not found")
			return
		}
		thread.PlayerID = &player.ID
	}

	if err := db.DB.Create(&thread).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to create thread")
		return
	}

	go func() {
		if services.CanEarnThreadRep(user.ID) {
			services.AddReputation(user.ID, services.RepThreadCreate, services.ActionThreadCreate)
		}
		if player != nil {
			services.NotifyFollowers(player.ID, user.ID, models.NotificationTypePlayerThread,
				fmt.Sprintf("New thread about %s: %s", player.Name, thread.Title),
				"/threads/"+thread.Tid)
			services.GetTrendingService().SchedulePlayerUpdate(player.ID)
		}
	}()

	c.JSON(http.StatusCreated, thread)
}

func (h *ThreadHandler) Update(c *gin.Context) {
	user := MustCurrentUser(c)

	var thread models.Thread
	if err := db.DB.Where("tid = ?", c.Param("tid")).First(&thread).Error; err != nil {
		JSONError(c, http.StatusNotFound, "thread not found")
		return
	}
	if thread.UserID != user.ID && user.Role != "admin" {
		JSONError(c, http.StatusForbidden, "not your thread")
		return
	}
	if thread.Locked && user.Role != "admin" {
		JSONError(c, http.StatusConflict, "thread is locked")
		return
	}

	var input threadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		JSONError(c, http.StatusBadRequest, "invalid input: "+err.Error())
		return
	}

	if err := db.DB.Model(&thread).Updates(map[string]interface{}{
		"title":   input.Title,
		"content": input.Content,
	}).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to update thread")
		return
	}

	c.JSON(http.StatusOK, thread)
}

func (h *ThreadHandler) Delete(c *gin.Context) {
	user := MustCurrentUser(c)

	var thread models.Thread
	if err := db.DB.Where("tid = ?", c.Param("tid")).First(&thread).Error; err != nil {
		JSONError(c, http.StatusNotFound, "thread not found")
		return
	}
	if thread.UserID != user.ID && user.Role != "admin" {
		JSONError(c, http.StatusForbidden, "not your thread")
		return
	}

	if err := db.DB.Delete(&thread).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to delete thread")
		return
	}

	if thread.UserID == user.ID {
		services.AddReputationAsync(user.ID, services.RepThreadDeleted, services.ActionThreadDeleted)
	}

	c.Status(http.StatusNoContent)
}
