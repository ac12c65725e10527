package models

import (
	"time"
)

// Comment is a user comment on a player page (distinct from thread replies).
type Comment struct {
	ID       uint     `gorm:"primaryKey" json:"id"`
	Cid      string   `gorm:"uniqueIndex;size:8;not null" json:"cid"`
	PlayerID uint     `gorm:"not null;index" json:"player_id"`
	Player   Player   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	UserID   uint     `gorm:"not null;index" json:"user_id"`
	User     User     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	ParentID *uint    `gorm:"index" json:"parent_id"` // Nullable for top-level comments
	Parent   *Comment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Content  string   `gorm:"type:text;not null" json:"content"`

	// Recomputed from the comment_votes table after every vote mutation.
	Upvotes   int `gorm:"default:0" json:"upvotes"`
	Downvotes int `gorm:"default:0" json:"downvotes"`

	CreatedAt time.Time `json:"created_at"`
}
