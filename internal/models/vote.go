package models

import (
	"time"
)

// Vote values. The closed set for comments and replies.
const (
	VoteUp   = 1
	VoteDown = -1
)

// CommentVote is one user's current stance on a player comment.
// At most one row per (comment, user); the composite unique index turns a
// concurrent duplicate insert into a constraint error instead of a second row.
type CommentVote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CommentID uint      `gorm:"not null;uniqueIndex:idx_comment_voter" json:"comment_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_comment_voter" json:"user_id"`
	Value     int       `gorm:"not null" json:"value"` // 1 or -1
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ReplyVote is one user's current stance on a thread reply.
type ReplyVote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ReplyID   uint      `gorm:"not null;uniqueIndex:idx_reply_voter" json:"reply_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_reply_voter" json:"user_id"`
	Value     int       `gorm:"not null" json:"value"` // 1 or -1
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
