package worker

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// Sweeper is implemented by service.ProgressJobService.
type Sweeper interface {
	Sweep(ctx context.Context) (int, error)
}

// StartSweepSchedule runs sweeper on the cron spec until ctx is done.
// The returned cron is already started.
func StartSweepSchedule(ctx context.Context, spec string, sweeper Sweeper) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		n, err := sweeper.Sweep(ctx)
		if err != nil {
			log.Printf("ERROR: Progress sweep failed: %v", err)
			return
		}
		log.Printf("INFO: Progress sweep queued %d recompute jobs.", n)
	})
	if err != nil {
		return nil, fmt.Errorf("invalid sweep schedule %q: %w", spec, err)
	}
	c.Start()

	go func() {
		<-ctx.Done()
		<-c.Stop().Done()
	}()
	return c, nil
}
