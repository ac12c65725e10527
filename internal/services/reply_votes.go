package services

import (
	"errors"
	"fmt"
	"talentradar/internal/db"
	"talentradar/internal/models"

	"gorm.io/gorm"
)

// ApplyReplyVote reconciles a user's vote on a thread reply with the same
// create/flip/toggle-off semantics as ApplyCommentVote, but maintains the
// reply's counters incrementally instead of recounting the vote rows.
// Votes on replies of a locked thread are rejected.
func ApplyReplyVote(replyID, userID uint, value int) (*models.ReplyVote, error) {
	if value != models.VoteUp && value != models.VoteDown {
		return nil, ErrInvalidVote
	}

	var result *models.ReplyVote
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var reply models.Reply
		if err := tx.Preload("Thread").First(&reply, replyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("load reply: %w", err)
		}
		if reply.Thread.Locked {
			return ErrThreadLocked
		}

		var existing models.ReplyVote
		err := tx.Where("reply_id = ? AND user_id = ?", replyID, userID).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			vote := models.ReplyVote{ReplyID: replyID, UserID: userID, Value: value}
			if err := tx.Create(&vote).Error; err != nil {
				return fmt.Errorf("create reply vote: %w", err)
			}
			if err := adjustReplyCounter(tx, replyID, value, +1); err != nil {
				return err
			}
			result = &vote
		case err != nil:
			return fmt.Errorf("lookup reply vote: %w", err)
		case existing.Value == value:
			if err := tx.Delete(&existing).Error; err != nil {
				return fmt.Errorf("delete reply vote: %w", err)
			}
			if err := adjustReplyCounter(tx, replyID, value, -1); err != nil {
				return err
			}
			result = nil
		default:
			// Update writes the new value back into the struct, so grab the
			// old one first for the counter decrement.
			oldValue := existing.Value
			if err := tx.Model(&existing).Update("value", value).Error; err != nil {
				return fmt.Errorf("update reply vote: %w", err)
			}
			if err := adjustReplyCounter(tx, replyID, oldValue, -1); err != nil {
				return err
			}
			if err := adjustReplyCounter(tx, replyID, value, +1); err != nil {
				return err
			}
			existing.Value = value
			result = &existing
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// adjustReplyCounter bumps the counter column matching the vote value by delta.
func adjustReplyCounter(tx *gorm.DB, replyID uint, value, delta int) error {
	column := "upvotes"
	if value == models.VoteDown {
		column = "downvotes"
	}
	if err := tx.Model(&models.Reply{}).Where("id = ?", replyID).
		UpdateColumn(column, gorm.Expr(column+" + ?", delta)).Error; err != nil {
		return fmt.Errorf("adjust reply %s: %w", column, err)
	}
	return nil
}
