package models

import (
	"time"
)

// PlayerFollow - a user watching a player. Followers are notified of new
// threads, comments and polls about the player (never of votes).
type PlayerFollow struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_user_player" json:"user_id"`
	PlayerID  uint      `gorm:"not null;index;uniqueIndex:idx_user_player" json:"player_id"`
	Player    Player    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"player"`
	CreatedAt time.Time `json:"created_at"`
}
