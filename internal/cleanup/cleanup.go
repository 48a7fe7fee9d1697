// Package cleanup runs the background purge of expired sessions.
package cleanup

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
	"github.com/ttttttwt/final-test/internal/metrics"
	"github.com/ttttttwt/final-test/internal/session"
)

// DefaultSchedule purges expired sessions at the top of every hour.
const DefaultSchedule = "0 * * * *"

// Run starts a background cron that deletes expired sessions on the given
// schedule and refreshes the active-sessions gauge. Returns the cron so the
// caller can Stop it on shutdown.
func Run(store *session.Store, schedule string) (*cron.Cron, error) {
	if schedule == "" {
		schedule = DefaultSchedule
	}

	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		ctx := context.Background()

		n, err := store.PurgeExpired(ctx)
		if err != nil {
			slog.Error("session purge failed", "error", err)
			return
		}
		if n > 0 {
			slog.Info("purged expired sessions", "count", n)
		}

		active, err := store.CountActive(ctx)
		if err != nil {
			slog.Error("session count failed", "error", err)
			return
		}
		metrics.SetSessionsActive(active)
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	return c, nil
}
