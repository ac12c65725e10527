package models

import (
	"time"
)

type Player struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Slug        string     `gorm:"uniqueIndex;size:8;not null" json:"slug"`
	Name        string     `gorm:"not null;index" json:"name"`
	Position    string     `gorm:"size:4;not null" json:"position"` // GK, DF, MF, FW
	Club        string     `gorm:"size:100" json:"club"`
	Nationality string     `gorm:"size:100" json:"nationality"`
	BirthDate   *time.Time `json:"birth_date"`
	PhotoURL    string     `json:"photo_url"`

	// Denormalized aggregates. AvgRating/RatingCount are recomputed from the
	// ratings table, Views is bumped by the view tracker, TrendingScore is
	// maintained by the trending worker.
	AvgRating     float64 `gorm:"default:0" json:"avg_rating"`
	RatingCount   int     `gorm:"default:0" json:"rating_count"`
	Views         int     `gorm:"default:0" json:"views"`
	TrendingScore int     `gorm:"default:0" json:"trending_score"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Filled at query time, not stored
	CommentCount int `gorm:"-" json:"comment_count"`
}
