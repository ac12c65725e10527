package services

import (
	"time"

	"talentradar/internal/db"
	"talentradar/internal/models"

	"gorm.io/gorm"
)

// Reputation actions
const (
	ActionThreadCreate     = "thread_create"
	ActionThreadUpvoted    = "thread_upvoted"
	ActionThreadDeleted    = "thread_deleted"
	ActionReplyCreate      = "reply_create"
	ActionReplyUpvoted     = "reply_upvoted"
	ActionReplyDownvoted   = "reply_downvoted"
	ActionCommentCreate    = "comment_create"
	ActionCommentUpvoted   = "comment_upvoted"
	ActionCommentDownvoted = "comment_downvoted"
	ActionDownvoteOther    = "downvote_other"
	ActionRatingCast       = "rating_cast"
)

// Reputation amounts
const (
	RepThreadCreate     = 2
	RepThreadDeleted    = -5
	RepReplyCreate      = 1
	RepReplyUpvoted     = 1
	RepReplyDownvoted   = -2
	RepCommentCreate    = 1
	RepCommentUpvoted   = 1
	RepCommentDownvoted = -2
	RepDownvoteOther    = -1
	RepRatingCast       = 1
)

// Daily earn caps: only the first few posts a day earn reputation.
const (
	DailyThreadLimit  = 3
	DailyCommentLimit = 5
)

// AddReputation writes a ledger entry and adjusts the user's balance in one
// transaction.
func AddReputation(userID uint, amount int, action string) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		entry := models.ReputationLog{
			UserID: userID,
			Amount: amount,
			Action: action,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.User{}).
			Where("id = ?", userID).
			UpdateColumn("reputation", gorm.Expr("reputation + ?", amount)).
			Error; err != nil {
			return err
		}

		return nil
	})
}

// AddReputationAsync fires AddReputation off the request path.
func AddReputationAsync(userID uint, amount int, action string) {
	go func() {
		_ = AddReputation(userID, amount, action)
	}()
}

func getTodayRange() (time.Time, time.Time) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return startOfDay, startOfDay.Add(24 * time.Hour)
}

func countTodayReputationLogs(userID uint, action string) int64 {
	startOfDay, endOfDay := getTodayRange()
	var count int64
	db.DB.Model(&models.ReputationLog{}).
		Where("user_id = ? AND action = ? AND created_at >= ? AND created_at < ?", userID, action, startOfDay, endOfDay).
		Count(&count)
	return count
}

// CanEarnThreadRep reports whether the user can still earn for posting threads today.
func CanEarnThreadRep(userID uint) bool {
	return countTodayReputationLogs(userID, ActionThreadCreate) < DailyThreadLimit
}

// CanEarnCommentRep reports whether the user can still earn for comments/replies today.
func CanEarnCommentRep(userID uint) bool {
	return countTodayReputationLogs(userID, ActionCommentCreate)+
		countTodayReputationLogs(userID, ActionReplyCreate) < DailyCommentLimit
}
