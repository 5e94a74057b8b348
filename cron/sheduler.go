package cron

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// StartCron schedules every registered job and starts the scheduler.
// Runs receive ctx; cancel it to abort in-flight jobs on shutdown.
func StartCron(ctx context.Context, log *zap.Logger) (*cron.Cron, error) {
	if log == nil {
		log = zap.NewNop()
	}
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	for _, j := range Jobs() {
		j := j
		_, err := c.AddFunc(j.Schedule, func() {
			log.Info("cron job started", zap.String("job", j.Name))
			j.Run(ctx)
		})
		if err != nil {
			return nil, fmt.Errorf("register job %s: %w", j.Name, err)
		}
		log.Info("cron job scheduled", zap.String("job", j.Name), zap.String("schedule", j.Schedule))
	}
	c.Start()
	return c, nil
}
