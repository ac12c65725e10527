package models

import (
	"time"
)

type Reply struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	ThreadID uint   `gorm:"not null;index" json:"thread_id"`
	Thread   Thread `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	UserID   uint   `gorm:"not null;index" json:"user_id"`
	User     User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	ParentID *uint  `gorm:"index" json:"parent_id"` // Nullable for top-level replies
	Parent   *Reply `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Content  string `gorm:"type:text;not null" json:"content"`

	// Adjusted incrementally alongside each ReplyVote mutation, never written
	// directly by handlers.
	Upvotes   int `gorm:"default:0" json:"upvotes"`
	Downvotes int `gorm:"default:0" json:"downvotes"`

	CreatedAt time.Time `json:"created_at"`
}
