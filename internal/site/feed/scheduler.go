package feed

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

const refreshTimeout = 30 * time.Second

// Scheduler refreshes the feed cache on a cron schedule (with seconds).
type Scheduler struct {
	cron *cron.Cron
	feed *Feed
}

func NewScheduler(feed *Feed, spec string) (*Scheduler, error) {
	s := &Scheduler{cron: cron.New(cron.WithSeconds()), feed: feed}
	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return nil, err
	}
	return s, nil
}

// Start warms the cache once, then runs on schedule.
func (s *Scheduler) Start() {
	go s.run()
	s.cron.Start()
	log.Println("Feed refresh scheduler started")
}

// Stop waits for a running refresh to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	if err := s.feed.Refresh(ctx); err != nil {
		log.Printf("Feed refresh failed: %v", err)
		return
	}
	log.Println("Feed refreshed")
}
