package models

import (
	"time"
)

type Poll struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Pid      string  `gorm:"uniqueIndex;size:8;not null" json:"pid"`
	UserID   uint    `gorm:"not null;index" json:"user_id"`
	User     User    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	PlayerID *uint   `gorm:"index" json:"player_id"` // Nullable: polls may be about a player
	Player   *Player `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"player,omitempty"`
	Question string  `gorm:"not null" json:"question"`

	// Anonymous polls key votes by client IP instead of user id. An anonymous
	// vote can be cast once and never changed.
	Anonymous bool `gorm:"default:false" json:"anonymous"`

	Active     bool       `gorm:"default:true" json:"active"`
	ExpiresAt  *time.Time `gorm:"index" json:"expires_at"`
	TotalVotes int        `gorm:"default:0" json:"total_votes"`

	Options []PollOption `gorm:"foreignKey:PollID" json:"options"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PollOption struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	PollID   uint   `gorm:"not null;index" json:"poll_id"`
	Label    string `gorm:"not null" json:"label"`
	Position int    `gorm:"default:0" json:"position"`

	// Adjusted incrementally alongside each PollVote mutation.
	VoteCount int `gorm:"default:0" json:"vote_count"`
}

// PollVote records one voter's selected option. Exactly one of UserID and
// VoterIP is set. Both unique indexes rely on NULLs not colliding, so the
// unset column must stay NULL rather than zero/empty.
type PollVote struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	PollID   uint    `gorm:"not null;uniqueIndex:idx_poll_user;uniqueIndex:idx_poll_ip" json:"poll_id"`
	OptionID uint    `gorm:"not null;index" json:"option_id"`
	UserID   *uint   `gorm:"uniqueIndex:idx_poll_user" json:"user_id"`
	VoterIP  *string `gorm:"size:45;uniqueIndex:idx_poll_ip" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PollVote) TableName() string { return "poll_votes" }
