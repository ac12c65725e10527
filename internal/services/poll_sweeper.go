package services

import (
	"log"
	"time"

	"talentradar/internal/db"
	"talentradar/internal/models"

	"github.com/robfig/cron/v3"
)

// StartScheduler wires the background jobs: the minutely poll-expiry sweep and
// the nightly trending refresh. The returned cron can be stopped on shutdown.
func StartScheduler() *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc("@every 1m", SweepExpiredPolls); err != nil {
		log.Fatalf("schedule poll sweep: %v", err)
	}
	if _, err := c.AddFunc("0 3 * * *", func() {
		log.Println("trending: nightly refresh starting")
		GetTrendingService().RefreshHotSubjects()
	}); err != nil {
		log.Fatalf("schedule trending refresh: %v", err)
	}

	c.Start()
	return c
}

// SweepExpiredPolls deactivates polls whose expiry has passed. Votes on an
// expired-but-not-yet-swept poll are already rejected by CastPollVote, so the
// sweep only keeps the stored Active flag honest for listings.
func SweepExpiredPolls() {
	res := db.DB.Model(&models.Poll{}).
		Where("active = ? AND expires_at IS NOT NULL AND expires_at <= ?", true, time.Now()).
		Update("active", false)
	if res.Error != nil {
		log.Printf("poll sweep failed: %v", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("poll sweep closed %d polls", res.RowsAffected)
	}
}
