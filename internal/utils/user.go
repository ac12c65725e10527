package utils

import (
	"time"
)

// GetUserLevel maps reputation to a scouting-themed level name.
func GetUserLevel(reputation int) (name string, icon string) {
	switch {
	case reputation >= 1000:
		return "Director of Football", "🏆"
	case reputation >= 201:
		return "Head Scout", "🔭"
	case reputation >= 51:
		return "Regional Scout", "📋"
	case reputation >= 11:
		return "Talent Spotter", "👀"
	default:
		return "Matchday Fan", "⚽"
	}
}

// GetDaysSinceJoined returns whole days since the account was created.
func GetDaysSinceJoined(createdAt time.Time) int {
	return int(time.Since(createdAt).Hours() / 24)
}
