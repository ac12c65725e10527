package services

import (
	"errors"
	"fmt"
	"talentradar/internal/db"
	"talentradar/internal/models"

	"gorm.io/gorm"
)

// ApplyCommentVote reconciles a user's vote on a player comment:
//   - no existing vote: insert one
//   - existing vote with the same value: delete it (toggle-off)
//   - existing vote with the other value: flip it in place
//
// Returns the resulting vote, or nil when the call toggled the vote off.
// The comment's upvote/downvote counters are recomputed from the vote rows
// inside the same transaction, so any counter drift heals on the next vote.
func ApplyCommentVote(commentID, userID uint, value int) (*models.CommentVote, error) {
	if value != models.VoteUp && value != models.VoteDown {
		return nil, ErrInvalidVote
	}

	var result *models.CommentVote
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.First(&comment, commentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("load comment: %w", err)
		}

		var existing models.CommentVote
		err := tx.Where("comment_id = ? AND user_id = ?", commentID, userID).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			vote := models.CommentVote{CommentID: commentID, UserID: userID, Value: value}
			if err := tx.Create(&vote).Error; err != nil {
				return fmt.Errorf("create comment vote: %w", err)
			}
			result = &vote
		case err != nil:
			return fmt.Errorf("lookup comment vote: %w", err)
		case existing.Value == value:
			if err := tx.Delete(&existing).Error; err != nil {
				return fmt.Errorf("delete comment vote: %w", err)
			}
			result = nil
		default:
			if err := tx.Model(&existing).Update("value", value).Error; err != nil {
				return fmt.Errorf("update comment vote: %w", err)
			}
			existing.Value = value
			result = &existing
		}

		return refreshCommentCounters(tx, commentID)
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// refreshCommentCounters recomputes the denormalized counters from the
// comment_votes table.
func refreshCommentCounters(tx *gorm.DB, commentID uint) error {
	var upvotes, downvotes int64
	if err := tx.Model(&models.CommentVote{}).
		Where("comment_id = ? AND value = ?", commentID, models.VoteUp).
		Count(&upvotes).Error; err != nil {
		return fmt.Errorf("count upvotes: %w", err)
	}
	if err := tx.Model(&models.CommentVote{}).
		Where("comment_id = ? AND value = ?", commentID, models.VoteDown).
		Count(&downvotes).Error; err != nil {
		return fmt.Errorf("count downvotes: %w", err)
	}

	if err := tx.Model(&models.Comment{}).Where("id = ?", commentID).Updates(map[string]interface{}{
		"upvotes":   upvotes,
		"downvotes": downvotes,
	}).Error; err != nil {
		return fmt.Errorf("update comment counters: %w", err)
	}
	return nil
}
