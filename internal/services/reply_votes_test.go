package services

import (
	"errors"
	"testing"

	"talentradar/internal/db"
	"talentradar/internal/models"
)

func TestApplyReplyVoteLifecycle(t *testing.T) {
	setupTestDB(t)
	author := createTestUser(t, "author")
	voter := createTestUser(t, "voter")
	thread := createTestThread(t, author.ID, false)
	reply := createTestReply(t, thread.ID, author.ID)

	// Create
	vote, err := ApplyReplyVote(reply.ID, voter.ID, models.VoteUp)
	if err != nil {
		t.Fatalf("create vote: %v", err)
	}
	if vote == nil || vote.Value != models.VoteUp {
		t.Fatalf("expected upvote row, got %+v", vote)
	}
	got := reloadReply(t, reply.ID)
	if got.Upvotes != 1 || got.Downvotes != 0 {
		t.Errorf("after create: counters = %d/%d, want 1/0", got.Upvotes, got.Downvotes)
	}

	// Flip
	vote, err = ApplyReplyVote(reply.ID, voter.ID, models.VoteDown)
	if err != nil {
		t.Fatalf("flip vote: %v", err)
	}
	if vote == nil || vote.Value != models.VoteDown {
		t.Fatalf("expected flipped row, got %+v", vote)
	}
	got = reloadReply(t, reply.ID)
	if got.Upvotes != 0 || got.Downvotes != 1 {
		t.Errorf("after flip: counters = %d/%d, want 0/1", got.Upvotes, got.Downvotes)
	}

	// Toggle off
	vote, err = ApplyReplyVote(reply.ID, voter.ID, models.VoteDown)
	if err != nil {
		t.Fatalf("toggle vote: %v", err)
	}
	if vote != nil {
		t.Fatalf("expected nil after toggle-off, got %+v", vote)
	}
	got = reloadReply(t, reply.ID)
	if got.Upvotes != 0 || got.Downvotes != 0 {
		t.Errorf("after toggle: counters = %d/%d, want 0/0", got.Upvotes, got.Downvotes)
	}
	var rows int64
	db.DB.Model(&models.ReplyVote{}).Where("reply_id = ?", reply.ID).Count(&rows)
	if rows != 0 {
		t.Errorf("vote rows = %d, want 0", rows)
	}
}

func TestApplyReplyVoteTwoVoters(t *testing.T) {
	setupTestDB(t)
	author := createTestUser(t, "author")
	voterA := createTestUser(t, "voter_a")
	voterB := createTestUser(t, "voter_b")
	thread := createTestThread(t, author.ID, false)
	reply := createTestReply(t, thread.ID, author.ID)

	if _, err := ApplyReplyVote(reply.ID, voterA.ID, models.VoteUp); err != nil {
		t.Fatalf("voter a: %v", err)
	}
	if _, err := ApplyReplyVote(reply.ID, voterB.ID, models.VoteDown); err != nil {
		t.Fatalf("voter b: %v", err)
	}

	got := reloadReply(t, reply.ID)
	if got.Upvotes != 1 || got.Downvotes != 1 {
		t.Errorf("counters = %d/%d, want 1/1", got.Upvotes, got.Downvotes)
	}
}

func TestApplyReplyVoteLockedThread(t *testing.T) {
	setupTestDB(t)
	author := createTestUser(t, "author")
	voter := createTestUser(t, "voter")
	thread := createTestThread(t, author.ID, true)
	reply := createTestReply(t, thread.ID, author.ID)

	if _, err := ApplyReplyVote(reply.ID, voter.ID, models.VoteUp); !errors.Is(err, ErrThreadLocked) {
		t.Fatalf("err = %v, want ErrThreadLocked", err)
	}

	got := reloadReply(t, reply.ID)
	if got.Upvotes != 0 || got.Downvotes != 0 {
		t.Errorf("counters = %d/%d, want 0/0", got.Upvotes, got.Downvotes)
	}
	var rows int64
	db.DB.Model(&models.ReplyVote{}).Where("reply_id = ?", reply.ID).Count(&rows)
	if rows != 0 {
		t.Errorf("vote rows = %d, want 0", rows)
	}
}

func TestApplyReplyVoteMissingReply(t *testing.T) {
	setupTestDB(t)
	voter := createTestUser(t, "voter")

	if _, err := ApplyReplyVote(9999, voter.ID, models.VoteUp); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
