package services

import (
	"fmt"
	"testing"

	"talentradar/internal/db"
	"talentradar/internal/models"
)

func TestRecordPlayerViewDedupsByUser(t *testing.T) {
	setupTestDB(t)
	player := createTestPlayer(t, "Test Striker")
	user := createTestUser(t, "viewer")

	for i := 0; i < 3; i++ {
		if err := RecordPlayerView(player.ID, &user.ID, "198.51.100.1"); err != nil {
			t.Fatalf("record view: %v", err)
		}
	}

	// Every event is stored, the counter only moves once per window.
	var events int64
	db.DB.Model(&models.PlayerView{}).Where("player_id = ?", player.ID).Count(&events)
	if events != 3 {
		t.Errorf("raw events = %d, want 3", events)
	}
	if got := reloadPlayer(t, player.ID); got.Views != 1 {
		t.Errorf("view counter = %d, want 1", got.Views)
	}
}

func TestRecordPlayerViewDedupsAnonymousByIP(t *testing.T) {
	setupTestDB(t)
	player := createTestPlayer(t, "Test Striker")

	if err := RecordPlayerView(player.ID, nil, "198.51.100.1"); err != nil {
		t.Fatalf("record view: %v", err)
	}
	if err := RecordPlayerView(player.ID, nil, "198.51.100.1"); err != nil {
		t.Fatalf("record view: %v", err)
	}
	if err := RecordPlayerView(player.ID, nil, "198.51.100.2"); err != nil {
		t.Fatalf("record view: %v", err)
	}

	if got := reloadPlayer(t, player.ID); got.Views != 2 {
		t.Errorf("view counter = %d, want 2 (one per distinct IP)", got.Views)
	}
}

func TestRecordPlayerViewMissingPlayer(t *testing.T) {
	setupTestDB(t)

	if err := RecordPlayerView(9999, nil, "198.51.100.1"); err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestTopViewedPlayers(t *testing.T) {
	setupTestDB(t)
	busy := createTestPlayer(t, "Busy Player")
	quiet := createTestPlayer(t, "Quiet Player")

	for i := 0; i < 3; i++ {
		ip := fmt.Sprintf("198.51.100.%d", i+1)
		if err := RecordPlayerView(busy.ID, nil, ip); err != nil {
			t.Fatalf("record view: %v", err)
		}
	}
	if err := RecordPlayerView(quiet.ID, nil, "198.51.100.9"); err != nil {
		t.Fatalf("record view: %v", err)
	}

	results, err := TopViewedPlayers(7, 10)
	if err != nil {
		t.Fatalf("top viewed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	if results[0].PlayerID != busy.ID || results[0].Views != 3 {
		t.Errorf("first = %+v, want busy player with 3 views", results[0])
	}
	if results[1].PlayerID != quiet.ID || results[1].Views != 1 {
		t.Errorf("second = %+v, want quiet player with 1 view", results[1])
	}
}

func TestPlayerViewSeries(t *testing.T) {
	setupTestDB(t)
	player := createTestPlayer(t, "Test Striker")

	for i := 0; i < 4; i++ {
		if err := RecordPlayerView(player.ID, nil, "198.51.100.1"); err != nil {
			t.Fatalf("record view: %v", err)
		}
	}

	series, err := PlayerViewSeries(player.ID, 7)
	if err != nil {
		t.Fatalf("series: %v", err)
	}
	if len(series) != 1 {
		t.Fatalf("series days = %d, want 1", len(series))
	}
	if series[0].Views != 4 {
		t.Errorf("today's views = %d, want 4", series[0].Views)
	}

	if _, err := PlayerViewSeries(9999, 7); err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
