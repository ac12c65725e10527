package services

import (
	"errors"
	"fmt"
	"time"

	"talentradar/internal/db"
	"talentradar/internal/models"

	"gorm.io/gorm"
)

// viewDedupWindow is how long a repeat view from the same viewer is excluded
// from the denormalized counter. Raw events are recorded regardless.
const viewDedupWindow = time.Hour

// RecordPlayerView stores a raw view event and bumps the player's view
// counter unless the same viewer (user id, or IP for anonymous visitors) was
// already counted within the dedup window.
func RecordPlayerView(playerID uint, userID *uint, ip string) error {
	var player models.Player
	if err := db.DB.First(&player, playerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("load player: %w", err)
	}

	since := time.Now().Add(-viewDedupWindow)
	var recent int64
	query := db.DB.Model(&models.PlayerView{}).Where("player_id = ? AND created_at >= ?", playerID, since)
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	} else {
		query = query.Where("user_id IS NULL AND ip = ?", ip)
	}
	if err := query.Count(&recent).Error; err != nil {
		return fmt.Errorf("count recent views: %w", err)
	}

	view := models.PlayerView{PlayerID: playerID, UserID: userID, IP: ip}
	if err := db.DB.Create(&view).Error; err != nil {
		return fmt.Errorf("record view: %w", err)
	}

	if recent == 0 {
		if err := db.DB.Model(&models.Player{}).Where("id = ?", playerID).
			UpdateColumn("views", gorm.Expr("views + 1")).Error; err != nil {
			return fmt.Errorf("bump view counter: %w", err)
		}
		GetTrendingService().SchedulePlayerUpdate(playerID)
	}
	return nil
}

// PlayerViewCount pairs a player with a view count over some window.
type PlayerViewCount struct {
	PlayerID uint   `json:"player_id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Views    int64  `json:"views"`
}

// TopViewedPlayers ranks players by raw view events over the last `days` days.
func TopViewedPlayers(days, limit int) ([]PlayerViewCount, error) {
	since := time.Now().AddDate(0, 0, -days)
	var results []PlayerViewCount
	err := db.DB.Model(&models.PlayerView{}).
		Select("player_views.player_id, players.name, players.slug, COUNT(*) as views").
		Joins("JOIN players ON players.id = player_views.player_id").
		Where("player_views.created_at >= ?", since).
		Group("player_views.player_id, players.name, players.slug").
		Order("views DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("top viewed players: %w", err)
	}
	return results, nil
}

// DailyViews is one day of view events for a player.
type DailyViews struct {
	Day   string `json:"day"`
	Views int64  `json:"views"`
}

// PlayerViewSeries returns per-day view counts for a player over the last
// `days` days. DATE() works on both Postgres and SQLite.
func PlayerViewSeries(playerID uint, days int) ([]DailyViews, error) {
	var player models.Player
	if err := db.DB.First(&player, playerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load player: %w", err)
	}

	since := time.Now().AddDate(0, 0, -days)
	var results []DailyViews
	err := db.DB.Model(&models.PlayerView{}).
		Select("DATE(created_at) as day, COUNT(*) as views").
		Where("player_id = ? AND created_at >= ?", playerID, since).
		Group("DATE(created_at)").
		Order("day ASC").
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("player view series: %w", err)
	}
	return results, nil
}
