package services

import (
	"log"
	"sync"
	"time"

	"talentradar/internal/db"
	"talentradar/internal/models"
	"talentradar/internal/utils"
)

type trendSubject struct {
	kind string // "player" or "thread"
	id   uint
}

// TrendingService recomputes player and thread trending scores off the request
// path. Updates are queued with per-subject dedup and processed in batches.
type TrendingService struct {
	queue   chan trendSubject
	pending map[trendSubject]bool
	mu      sync.Mutex
}

var (
	trendingService *TrendingService
	trendingOnce    sync.Once
)

// GetTrendingService returns the singleton worker, starting it on first use.
func GetTrendingService() *TrendingService {
	trendingOnce.Do(func() {
		trendingService = &TrendingService{
			queue:   make(chan trendSubject, 1000),
			pending: make(map[trendSubject]bool),
		}
		go trendingService.worker()
	})
	return trendingService
}

// SchedulePlayerUpdate queues a player score recompute (async).
func (s *TrendingService) SchedulePlayerUpdate(playerID uint) {
	s.schedule(trendSubject{kind: "player", id: playerID})
}

// ScheduleThreadUpdate queues a thread score recompute (async).
func (s *TrendingService) ScheduleThreadUpdate(threadID uint) {
	s.schedule(trendSubject{kind: "thread", id: threadID})
}

func (s *TrendingService) schedule(subject trendSubject) {
	s.mu.Lock()
	if s.pending[subject] {
		s.mu.Unlock()
		return
	}
	s.pending[subject] = true
	s.mu.Unlock()

	select {
	case s.queue <- subject:
	default:
		// Queue full: drop the request, clear the pending mark
		s.mu.Lock()
		delete(s.pending, subject)
		s.mu.Unlock()
		log.Printf("trending queue full, skipping %s %d", subject.kind, subject.id)
	}
}

func (s *TrendingService) worker() {
	batch := make([]trendSubject, 0, 50)
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case subject := <-s.queue:
			batch = append(batch, subject)
			if len(batch) >= 50 {
				s.processBatch(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				s.processBatch(batch)
				batch = batch[:0]
			}
		}
	}
}

func (s *TrendingService) processBatch(subjects []trendSubject) {
	for _, subject := range subjects {
		if subject.kind == "player" {
			s.updatePlayerScore(subject.id)
		} else {
			s.updateThreadScore(subject.id)
		}

		s.mu.Lock()
		delete(s.pending, subject)
		s.mu.Unlock()
	}
}

// UpdatePlayerScoreSync recomputes a player score immediately. Used by tests
// and anywhere the new score must be visible right away.
func UpdatePlayerScoreSync(playerID uint) {
	GetTrendingService().updatePlayerScore(playerID)
}

// UpdateThreadScoreSync recomputes a thread score immediately.
func UpdateThreadScoreSync(threadID uint) {
	GetTrendingService().updateThreadScore(threadID)
}

func (s *TrendingService) updatePlayerScore(playerID uint) {
	var player models.Player
	if err := db.DB.First(&player, playerID).Error; err != nil {
		log.Printf("trending: player %d not found", playerID)
		return
	}

	var follows, ratings, comments int64
	db.DB.Model(&models.PlayerFollow{}).Where("player_id = ?", playerID).Count(&follows)
	db.DB.Model(&models.Rating{}).Where("player_id = ?", playerID).Count(&ratings)
	db.DB.Model(&models.Comment{}).Where("player_id = ?", playerID).Count(&comments)

	score := utils.CalculateTrendingScore(
		player.CreatedAt,
		0, 0,
		int(follows),
		int(ratings),
		int(comments),
	)

	if err := db.DB.Model(&player).UpdateColumn("trending_score", int(score)).Error; err != nil {
		log.Printf("trending: update player %d failed: %v", playerID, err)
	}
}

func (s *TrendingService) updateThreadScore(threadID uint) {
	var thread models.Thread
	if err := db.DB.First(&thread, threadID).Error; err != nil {
		log.Printf("trending: thread %d not found", threadID)
		return
	}

	type voteSums struct {
		Up   int
		Down int
	}
	var sums voteSums
	db.DB.Model(&models.Reply{}).
		Select("COALESCE(SUM(upvotes), 0) as up, COALESCE(SUM(downvotes), 0) as down").
		Where("thread_id = ?", threadID).
		Scan(&sums)

	var replies int64
	db.DB.Model(&models.Reply{}).Where("thread_id = ?", threadID).Count(&replies)

	score := utils.CalculateTrendingScore(
		thread.CreatedAt,
		sums.Up,
		sums.Down,
		0, 0,
		int(replies),
	)

	if err := db.DB.Model(&thread).UpdateColumn("score", int(score)).Error; err != nil {
		log.Printf("trending: update thread %d failed: %v", threadID, err)
	}
}

// RefreshHotSubjects recomputes scores for everything created in the last
// 7 days plus the current top 30, deduplicated. Wired to the cron scheduler.
func (s *TrendingService) RefreshHotSubjects() {
	sevenDaysAgo := time.Now().AddDate(0, 0, -7)
	count := 0

	processedThreads := make(map[uint]bool)
	var recentThreads []models.Thread
	db.DB.Where("created_at >= ?", sevenDaysAgo).Select("id").Find(&recentThreads)
	for _, t := range recentThreads {
		s.updateThreadScore(t.ID)
		processedThreads[t.ID] = true
		count++
	}
	var topThreads []models.Thread
	db.DB.Order("score DESC").Limit(30).Select("id").Find(&topThreads)
	for _, t := range topThreads {
		if !processedThreads[t.ID] {
			s.updateThreadScore(t.ID)
			count++
		}
	}

	processedPlayers := make(map[uint]bool)
	var recentPlayers []models.Player
	db.DB.Where("created_at >= ?", sevenDaysAgo).Select("id").Find(&recentPlayers)
	for _, p := range recentPlayers {
		s.updatePlayerScore(p.ID)
		processedPlayers[p.ID] = true
		count++
	}
	var topPlayers []models.Player
	db.DB.Order("trending_score DESC").Limit(30).Select("id").Find(&topPlayers)
	for _, p := range topPlayers {
		if !processedPlayers[p.ID] {
			s.updatePlayerScore(p.ID)
			count++
		}
	}

	log.Printf("trending: refreshed %d subjects", count)
}
