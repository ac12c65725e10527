package services

import (
	"fmt"
	"log"

	"talentradar/internal/db"
	"talentradar/internal/models"
)

// Notify creates a single notification row. Failures are logged, never
// propagated: notifications are a side effect, not part of the contract.
func Notify(userID uint, actorID *uint, ntype models.NotificationType, reason, link string) {
	notification := models.Notification{
		UserID:  userID,
		ActorID: actorID,
		Type:    ntype,
		Reason:  reason,
		Link:    link,
	}
	if err := db.DB.Create(&notification).Error; err != nil {
		log.Printf("notify user %d failed: %v", userID, err)
	}
}

// NotifyFollowers fans a notification out to everyone following a player,
// skipping the actor. Called for new threads, comments and polls about the
// player - never for votes.
func NotifyFollowers(playerID, actorID uint, ntype models.NotificationType, reason, link string) {
	var follows []models.PlayerFollow
	if err := db.DB.Where("player_id = ?", playerID).Find(&follows).Error; err != nil {
		log.Printf("load followers of player %d failed: %v", playerID, err)
		return
	}

	for _, follow := range follows {
		if follow.UserID == actorID {
			continue
		}
		Notify(follow.UserID, &actorID, ntype, reason, link)
	}
}

// NotifyAdmins sends a report notification to every admin.
func NotifyAdmins(actorID uint, reason, link string) {
	var admins []models.User
	if err := db.DB.Where("role = ?", "admin").Find(&admins).Error; err != nil {
		log.Printf("load admins failed: %v", err)
		return
	}

	for _, admin := range admins {
		Notify(admin.ID, &actorID, models.NotificationTypeReport, reason, link)
	}
}

// UnreadCount returns the user's unread notification count.
func UnreadCount(userID uint) (int64, error) {
	var count int64
	if err := db.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count unread: %w", err)
	}
	return count, nil
}
