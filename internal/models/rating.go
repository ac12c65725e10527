package models

import (
	"time"
)

// Rating is a 1-10 score one user gave one player. One row per (player, user);
// re-rating updates the row in place.
type Rating struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PlayerID  uint      `gorm:"not null;uniqueIndex:idx_player_rater" json:"player_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_player_rater" json:"user_id"`
	Score     int       `gorm:"not null" json:"score"` // 1..10
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
