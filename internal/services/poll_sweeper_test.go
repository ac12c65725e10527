package services

import (
	"testing"
	"time"

	"talentradar/internal/db"
	"talentradar/internal/models"
)

func TestSweepExpiredPolls(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner")

	expiredPoll, _, _ := createTestPoll(t, owner.ID, false)
	past := time.Now().Add(-time.Minute)
	db.DB.Model(&models.Poll{}).Where("id = ?", expiredPoll.ID).Update("expires_at", past)

	livePoll, _, _ := createTestPoll(t, owner.ID, false)
	future := time.Now().Add(time.Hour)
	db.DB.Model(&models.Poll{}).Where("id = ?", livePoll.ID).Update("expires_at", future)

	openEndedPoll, _, _ := createTestPoll(t, owner.ID, false)

	SweepExpiredPolls()

	if got := reloadPoll(t, expiredPoll.ID); got.Active {
		t.Error("expired poll still active after sweep")
	}
	if got := reloadPoll(t, livePoll.ID); !got.Active {
		t.Error("unexpired poll deactivated by sweep")
	}
	if got := reloadPoll(t, openEndedPoll.ID); !got.Active {
		t.Error("open-ended poll deactivated by sweep")
	}
}
