package store

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// RetentionSweeper periodically deletes artifacts older than the configured
// TTL so the store stays bounded between restarts.
type RetentionSweeper struct {
	store ArtifactStore
	ttl   time.Duration
	cron  *cron.Cron
	log   zerolog.Logger
}

// NewRetentionSweeper creates a sweeper over the given store. A ttl of zero
// disables sweeping.
func NewRetentionSweeper(s ArtifactStore, ttl time.Duration, log zerolog.Logger) *RetentionSweeper {
	return &RetentionSweeper{
		store: s,
		ttl:   ttl,
		cron:  cron.New(),
		log:   log.With().Str("component", "retention_sweeper").Logger(),
	}
}

// Start schedules an hourly sweep. No-op when the TTL is zero.
func (r *RetentionSweeper) Start() error {
	if r.ttl <= 0 {
		r.log.Info().Msg("artifact retention disabled")
		return nil
	}
	if _, err := r.cron.AddFunc("@hourly", r.sweep); err != nil {
		return err
	}
	r.cron.Start()
	r.log.Info().Dur("ttl", r.ttl).Msg("artifact retention sweeper started")
	return nil
}

// Stop halts the schedule and waits for a running sweep to finish.
func (r *RetentionSweeper) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
}

func (r *RetentionSweeper) sweep() {
	cutoff := time.Now().Add(-r.ttl)
	removed, err := r.store.DeleteOlderThan(cutoff)
	if err != nil {
		r.log.Error().Err(err).Msg("retention sweep failed")
		return
	}
	if removed > 0 {
		r.log.Info().Int("removed", removed).Msg("expired artifacts deleted")
	}
}
