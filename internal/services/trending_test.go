package services

import (
	"testing"

	"talentradar/internal/db"
	"talentradar/internal/models"
)

func TestUpdatePlayerScoreSync(t *testing.T) {
	setupTestDB(t)
	player := createTestPlayer(t, "Test Striker")
	fanA := createTestUser(t, "fan_a")
	fanB := createTestUser(t, "fan_b")

	db.DB.Create(&models.PlayerFollow{UserID: fanA.ID, PlayerID: player.ID})
	db.DB.Create(&models.PlayerFollow{UserID: fanB.ID, PlayerID: player.ID})
	createTestComment(t, player.ID, fanA.ID)
	if _, err := RatePlayer(player.ID, fanA.ID, 8); err != nil {
		t.Fatalf("rate: %v", err)
	}

	UpdatePlayerScoreSync(player.ID)

	if got := reloadPlayer(t, player.ID); got.TrendingScore <= 0 {
		t.Errorf("trending score = %d, want > 0 for an engaged player", got.TrendingScore)
	}
}

func TestUpdateThreadScoreSync(t *testing.T) {
	setupTestDB(t)
	author := createTestUser(t, "author")
	voter := createTestUser(t, "voter")
	thread := createTestThread(t, author.ID, false)
	reply := createTestReply(t, thread.ID, author.ID)
	createTestReply(t, thread.ID, voter.ID)

	if _, err := ApplyReplyVote(reply.ID, voter.ID, models.VoteUp); err != nil {
		t.Fatalf("vote: %v", err)
	}

	UpdateThreadScoreSync(thread.ID)

	var got models.Thread
	if err := db.DB.First(&got, thread.ID).Error; err != nil {
		t.Fatalf("reload thread: %v", err)
	}
	if got.Score <= 0 {
		t.Errorf("score = %d, want > 0 for an active thread", got.Score)
	}
}

func TestTrendingScheduleDedup(t *testing.T) {
	svc := GetTrendingService()

	subject := trendSubject{kind: "player", id: 424242}
	svc.mu.Lock()
	svc.pending[subject] = true
	svc.mu.Unlock()

	before := len(svc.queue)
	svc.SchedulePlayerUpdate(424242)
	if len(svc.queue) > before {
		t.Error("pending subject queued twice")
	}

	svc.mu.Lock()
	delete(svc.pending, subject)
	svc.mu.Unlock()
}
