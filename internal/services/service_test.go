package services

import (
	"path/filepath"
	"testing"

	"talentradar/internal/db"
	"talentradar/internal/models"
	"talentradar/internal/utils"
)

// setupTestDB points the global connection at a fresh on-disk sqlite database
// under the test's temp dir and migrates the schema.
func setupTestDB(t *testing.T) {
	t.Helper()

	g, err := db.Open("sqlite://" + filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.Migrate(g); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	db.DB = g
}

func createTestUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
	}
	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return &user
}

func createTestPlayer(t *testing.T, name string) *models.Player {
	t.Helper()
	player := models.Player{
		Slug:     utils.RandStringBytesMaskImpr(8),
		Name:     name,
		Position: "FW",
		Club:     "Test FC",
	}
	if err := db.DB.Create(&player).Error; err != nil {
		t.Fatalf("create player: %v", err)
	}
	return &player
}

func createTestComment(t *testing.T, playerID, userID uint) *models.Comment {
	t.Helper()
	comment := models.Comment{
		Cid:      utils.RandStringBytesMaskImpr(8),
		PlayerID: playerID,
		UserID:   userID,
		Content:  "great first touch",
	}
	if err := db.DB.Create(&comment).Error; err != nil {
		t.Fatalf("create comment: %v", err)
	}
	return &comment
}

func createTestThread(t *testing.T, userID uint, locked bool) *models.Thread {
	t.Helper()
	thread := models.Thread{
		Tid:    utils.RandStringBytesMaskImpr(8),
		UserID: userID,
		Title:  "who starts on saturday",
		Locked: locked,
	}
	if err := db.DB.Create(&thread).Error; err != nil {
		t.Fatalf("create thread: %v", err)
	}
	return &thread
}

func createTestReply(t *testing.T, threadID, userID uint) *models.Reply {
	t.Helper()
	reply := models.Reply{
		ThreadID: threadID,
		UserID:   userID,
		Content:  "has to be the new signing",
	}
	if err := db.DB.Create(&reply).Error; err != nil {
		t.Fatalf("create reply: %v", err)
	}
	return &reply
}

// createTestPoll makes a poll with two options and returns all three.
func createTestPoll(t *testing.T, userID uint, anonymous bool) (*models.Poll, *models.PollOption, *models.PollOption) {
	t.Helper()
	poll := models.Poll{
		Pid:       utils.RandStringBytesMaskImpr(8),
		UserID:    userID,
		Question:  "signing of the season?",
		Anonymous: anonymous,
		Active:    true,
	}
	if err := db.DB.Create(&poll).Error; err != nil {
		t.Fatalf("create poll: %v", err)
	}
	optA := models.PollOption{PollID: poll.ID, Label: "the striker", Position: 0}
	optB := models.PollOption{PollID: poll.ID, Label: "the keeper", Position: 1}
	if err := db.DB.Create(&optA).Error; err != nil {
		t.Fatalf("create option: %v", err)
	}
	if err := db.DB.Create(&optB).Error; err != nil {
		t.Fatalf("create option: %v", err)
	}
	return &poll, &optA, &optB
}

func reloadComment(t *testing.T, id uint) *models.Comment {
	t.Helper()
	var comment models.Comment
	if err := db.DB.First(&comment, id).Error; err != nil {
		t.Fatalf("reload comment: %v", err)
	}
	return &comment
}

func reloadReply(t *testing.T, id uint) *models.Reply {
	t.Helper()
	var reply models.Reply
	if err := db.DB.First(&reply, id).Error; err != nil {
		t.Fatalf("reload reply: %v", err)
	}
	return &reply
}

func reloadPoll(t *testing.T, id uint) *models.Poll {
	t.Helper()
	var poll models.Poll
	if err := db.DB.First(&poll, id).Error; err != nil {
		t.Fatalf("reload poll: %v", err)
	}
	return &poll
}

func reloadOption(t *testing.T, id uint) *models.PollOption {
	t.Helper()
	var option models.PollOption
	if err := db.DB.First(&option, id).Error; err != nil {
		t.Fatalf("reload option: %v", err)
	}
	return &option
}

func reloadPlayer(t *testing.T, id uint) *models.Player {
	t.Helper()
	var player models.Player
	if err := db.DB.First(&player, id).Error; err != nil {
		t.Fatalf("reload player: %v", err)
	}
	return &player
}
