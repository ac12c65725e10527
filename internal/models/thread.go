package models

import (
	"time"
)

type Thread struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Tid      string  `gorm:"uniqueIndex;size:8;not null" json:"tid"`
	UserID   uint    `gorm:"not null;index" json:"user_id"`
	User     User    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	PlayerID *uint   `gorm:"index" json:"player_id"` // Nullable: general discussion threads
	Player   *Player `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"player,omitempty"`
	Title    string  `gorm:"not null" json:"title"`
	Content  string  `gorm:"type:text" json:"content"`
	Locked   bool    `gorm:"default:false" json:"locked"`
	Score    int     `gorm:"default:0" json:"score"` // Trending score, maintained by the trending worker
	Views    int     `gorm:"default:0" json:"views"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Filled at query time, not stored
	ReplyCount int `gorm:"-" json:"reply_count"`
}
