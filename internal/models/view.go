package models

import (
	"time"
)

// PlayerView is one raw view event on a player page. Events are always
// recorded for analytics; the denormalized Player.Views counter is bumped
// separately with an hourly per-viewer dedup window.
type PlayerView struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	PlayerID uint   `gorm:"not null;index" json:"player_id"`
	UserID   *uint  `gorm:"index" json:"user_id"` // Nullable for anonymous visitors
	IP       string `gorm:"size:45" json:"-"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
