package chat

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/brenokamura/projeto13-batepapo-uol-api/internal/metrics"
)

// Sweeper periodically evicts stale participants through the Registry.
// It holds no state of its own; participants are the stateful entities.
type Sweeper struct {
	registry  *Registry
	interval  time.Duration
	threshold time.Duration
	logger    zerolog.Logger
}

// NewSweeper creates a sweeper that runs every interval and expires
// participants silent for longer than threshold.
func NewSweeper(registry *Registry, interval, threshold time.Duration, logger zerolog.Logger) *Sweeper {
	return &Sweeper{
		registry:  registry,
		interval:  interval,
		threshold: threshold,
		logger:    logger,
	}
}

// Run blocks until ctx is cancelled, sweeping once per interval. Failures
// are logged, never swallowed into an HTTP response; a partial sweep (batch
// append failed after deletion) is logged with the affected names.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info().
		Dur("interval", s.interval).
		Dur("threshold", s.threshold).
		Msg("expiry sweeper started")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("expiry sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	sweepID := uuid.NewString()
	removed, err := s.registry.SweepExpired(ctx, time.Now(), s.threshold)

	metrics.SweepsTotal.Inc()
	metrics.ParticipantsExpired.Add(float64(len(removed)))

	if err != nil {
		names := make([]string, len(removed))
		for i, p := range removed {
			names[i] = p.Name
		}
		s.logger.Error().
			Str("sweep_id", sweepID).
			Strs("removed", names).
			Err(err).
			Msg("sweep failed")
		return
	}

	if len(removed) > 0 {
		names := make([]string, len(removed))
		for i, p := range removed {
			names[i] = p.Name
		}
		s.logger.Info().
			Str("sweep_id", sweepID).
			Strs("removed", names).
			Msg("expired stale participants")
	}
}
