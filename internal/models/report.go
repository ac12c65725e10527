package models

import (
	"time"
)

type Report struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     uint       `gorm:"not null;index" json:"user_id"` // Reporter
	User       User       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	ItemType   string     `gorm:"size:20;not null" json:"item_type"` // "thread", "reply", "comment"
	ItemID     uint       `gorm:"not null;index" json:"item_id"`
	Reason     string     `gorm:"size:200;not null" json:"reason"`
	Resolved   bool       `gorm:"default:false;index" json:"resolved"`
	ResolvedBy *uint      `json:"resolved_by"`
	ResolvedAt *time.Time `json:"resolved_at"`
	CreatedAt  time.Time  `json:"created_at"`
}
