package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/anhngq/blogary/internal/repositories"
	"github.com/robfig/cron/v3"
)

// Scheduler runs the periodic jobs: flipping scheduled posts and series to
// published when their time arrives, and purging expired refresh tokens.
type Scheduler struct {
	cron       *cron.Cron
	posts      repositories.PostRepository
	series     repositories.SeriesRepository
	tokens     repositories.RefreshTokenRepository
	jobTimeout time.Duration
}

// NewScheduler creates a Scheduler with its jobs not yet registered
func NewScheduler(posts repositories.PostRepository, series repositories.SeriesRepository, tokens repositories.RefreshTokenRepository) *Scheduler {
	c := cron.New(cron.WithChain(
		cron.Recover(cron.DefaultLogger),
		cron.DelayIfStillRunning(cron.DefaultLogger),
	))
	return &Scheduler{
		cron:       c,
		posts:      posts,
		series:     series,
		tokens:     tokens,
		jobTimeout: 30 * time.Second,
	}
}

// RegisterJobs registers all periodic jobs with the cron instance
func (s *Scheduler) RegisterJobs() error {
	if _, err := s.cron.AddFunc("* * * * *", s.publishDue); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("0 3 * * *", s.purgeExpiredTokens); err != nil {
		return err
	}
	log.Println("Periodic jobs registered: publishDue every minute, purgeExpiredTokens daily at 3:00 AM.")
	return nil
}

// Start starts the cron scheduler
func (s *Scheduler) Start() {
	s.cron.Start()
	log.Println("Cron scheduler started.")
}

// Stop stops the scheduler and waits for running jobs to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("Cron scheduler stopped.")
}

func (s *Scheduler) publishDue() {
	ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
	defer cancel()

	now := time.Now()
	posts, err := s.posts.PublishDue(ctx, now)
	if err != nil {
		log.Printf("publishDue: posts: %v", err)
	}
	series, err := s.series.PublishDue(ctx, now)
	if err != nil {
		log.Printf("publishDue: series: %v", err)
	}
	if posts > 0 || series > 0 {
		log.Printf("publishDue: published %d posts, %d series", posts, series)
	}
}

func (s *Scheduler) purgeExpiredTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
	defer cancel()

	removed, err := s.tokens.DeleteExpired(ctx, time.Now())
	if err != nil {
		log.Printf("purgeExpiredTokens: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("purgeExpiredTokens: removed %d tokens", removed)
	}
}
