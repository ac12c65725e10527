package services

import (
	"errors"
	"fmt"
	"time"

	"talentradar/internal/db"
	"talentradar/internal/models"

	"gorm.io/gorm"
)

// PollVoter identifies who is casting a poll vote: a logged-in user, or for
// anonymous polls, the client IP.
type PollVoter struct {
	UserID uint
	IP     string
}

// CastPollVote records a voter's choice on a poll option.
//
// Gates checked before any mutation: the poll exists and is active and
// unexpired, and the option belongs to the poll.
//
// Identified polls get the full reconciliation semantics: first vote creates a
// row, re-picking the same option toggles it off, picking another option moves
// the vote. Anonymous polls are single-shot: the IP is only stable enough for
// duplicate rejection, so a second vote from the same IP fails with
// ErrAlreadyVoted no matter which option it names.
//
// Option vote_count and poll total_votes are adjusted in the same transaction
// as the vote row.
func CastPollVote(pollID, optionID uint, voter PollVoter) (*models.PollVote, error) {
	var result *models.PollVote
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var poll models.Poll
		if err := tx.First(&poll, pollID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("load poll: %w", err)
		}
		if !poll.Active {
			return ErrPollClosed
		}
		if poll.ExpiresAt != nil && time.Now().After(*poll.ExpiresAt) {
			return ErrPollExpired
		}

		var option models.PollOption
		if err := tx.First(&option, optionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("load option: %w", err)
		}
		if option.PollID != poll.ID {
			return ErrOptionMismatch
		}

		if poll.Anonymous {
			var err error
			result, err = castAnonymousVote(tx, &poll, &option, voter.IP)
			return err
		}
		var err error
		result, err = castIdentifiedVote(tx, &poll, &option, voter.UserID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func castAnonymousVote(tx *gorm.DB, poll *models.Poll, option *models.PollOption, ip string) (*models.PollVote, error) {
	if ip == "" {
		return nil, ErrAnonymousVoter
	}

	var existing models.PollVote
	err := tx.Where("poll_id = ? AND voter_ip = ?", poll.ID, ip).First(&existing).Error
	if err == nil {
		// One shot per IP: no flip, no toggle.
		return nil, ErrAlreadyVoted
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup poll vote: %w", err)
	}

	vote := models.PollVote{PollID: poll.ID, OptionID: option.ID, VoterIP: &ip}
	if err := tx.Create(&vote).Error; err != nil {
		return nil, fmt.Errorf("create poll vote: %w", err)
	}
	if err := adjustPollCounters(tx, poll.ID, option.ID, +1, +1); err != nil {
		return nil, err
	}
	return &vote, nil
}

func castIdentifiedVote(tx *gorm.DB, poll *models.Poll, option *models.PollOption, userID uint) (*models.PollVote, error) {
	var existing models.PollVote
	err := tx.Where("poll_id = ? AND user_id = ?", poll.ID, userID).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		vote := models.PollVote{PollID: poll.ID, OptionID: option.ID, UserID: &userID}
		if err := tx.Create(&vote).Error; err != nil {
			return nil, fmt.Errorf("create poll vote: %w", err)
		}
		if err := adjustPollCounters(tx, poll.ID, option.ID, +1, +1); err != nil {
			return nil, err
		}
		return &vote, nil
	case err != nil:
		return nil, fmt.Errorf("lookup poll vote: %w", err)
	case existing.OptionID == option.ID:
		// Toggle-off: same option picked again
		if err := tx.Delete(&existing).Error; err != nil {
			return nil, fmt.Errorf("delete poll vote: %w", err)
		}
		if err := adjustPollCounters(tx, poll.ID, option.ID, -1, -1); err != nil {
			return nil, err
		}
		return nil, nil
	default:
		// Move the vote to the newly picked option; total stays put.
		oldOptionID := existing.OptionID
		if err := tx.Model(&existing).Update("option_id", option.ID).Error; err != nil {
			return nil, fmt.Errorf("update poll vote: %w", err)
		}
		if err := adjustPollCounters(tx, poll.ID, oldOptionID, -1, 0); err != nil {
			return nil, err
		}
		if err := adjustPollCounters(tx, poll.ID, option.ID, +1, 0); err != nil {
			return nil, err
		}
		existing.OptionID = option.ID
		return &existing, nil
	}
}

// adjustPollCounters moves the option's vote_count by optionDelta and the
// poll's total_votes by totalDelta.
func adjustPollCounters(tx *gorm.DB, pollID, optionID uint, optionDelta, totalDelta int) error {
	if err := tx.Model(&models.PollOption{}).Where("id = ?", optionID).
		UpdateColumn("vote_count", gorm.Expr("vote_count + ?", optionDelta)).Error; err != nil {
		return fmt.Errorf("adjust option count: %w", err)
	}
	if totalDelta != 0 {
		if err := tx.Model(&models.Poll{}).Where("id = ?", pollID).
			UpdateColumn("total_votes", gorm.Expr("total_votes + ?", totalDelta)).Error; err != nil {
			return fmt.Errorf("adjust poll total: %w", err)
		}
	}
	return nil
}
