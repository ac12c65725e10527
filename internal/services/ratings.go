package services

import (
	"errors"
	"fmt"
	"talentradar/internal/db"
	"talentradar/internal/models"

	"gorm.io/gorm"
)

// RatePlayer records or updates the caller's 1-10 rating of a player and
// recomputes the player's aggregate average and count in the same transaction.
func RatePlayer(playerID, userID uint, score int) (*models.Rating, error) {
	if score < 1 || score > 10 {
		return nil, ErrInvalidRating
	}

	var result *models.Rating
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var player models.Player
		if err := tx.First(&player, playerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("load player: %w", err)
		}

		var existing models.Rating
		err := tx.Where("player_id = ? AND user_id = ?", playerID, userID).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			rating := models.Rating{PlayerID: playerID, UserID: userID, Score: score}
			if err := tx.Create(&rating).Error; err != nil {
				return fmt.Errorf("create rating: %w", err)
			}
			result = &rating
		case err != nil:
			return fmt.Errorf("lookup rating: %w", err)
		default:
			if err := tx.Model(&existing).Update("score", score).Error; err != nil {
				return fmt.Errorf("update rating: %w", err)
			}
			existing.Score = score
			result = &existing
		}

		return refreshPlayerRating(tx, playerID)
	})
	if err != nil {
		return nil, err
	}

	GetTrendingService().SchedulePlayerUpdate(playerID)
	return result, nil
}

// RemoveRating withdraws the caller's rating, if any.
func RemoveRating(playerID, userID uint) error {
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var player models.Player
		if err := tx.First(&player, playerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("load player: %w", err)
		}

		res := tx.Where("player_id = ? AND user_id = ?", playerID, userID).Delete(&models.Rating{})
		if res.Error != nil {
			return fmt.Errorf("delete rating: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		return refreshPlayerRating(tx, playerID)
	})
	if err != nil {
		return err
	}

	GetTrendingService().SchedulePlayerUpdate(playerID)
	return nil
}

// GetUserRating returns the caller's rating of a player, or nil.
func GetUserRating(playerID, userID uint) (*models.Rating, error) {
	var rating models.Rating
	err := db.DB.Where("player_id = ? AND user_id = ?", playerID, userID).First(&rating).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup rating: %w", err)
	}
	return &rating, nil
}

// refreshPlayerRating recomputes avg_rating and rating_count from the ratings
// table. AVG over zero rows is NULL, hence the COALESCE.
func refreshPlayerRating(tx *gorm.DB, playerID uint) error {
	type aggregate struct {
		Avg   float64
		Count int64
	}
	var agg aggregate
	if err := tx.Model(&models.Rating{}).
		Select("COALESCE(AVG(score), 0) as avg, COUNT(*) as count").
		Where("player_id = ?", playerID).
		Scan(&agg).Error; err != nil {
		return fmt.Errorf("aggregate ratings: %w", err)
	}

	if err := tx.Model(&models.Player{}).Where("id = ?", playerID).Updates(map[string]interface{}{
		"avg_rating":   agg.Avg,
		"rating_count": agg.Count,
	}).Error; err != nil {
		return fmt.Errorf("update player rating aggregates: %w", err)
	}
	return nil
}
