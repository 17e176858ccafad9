package service

import (
	"context"
	"time"
)

// RunSweeper expires soft bookings every interval until ctx is done.
func (s *BookingService) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = s.cfg.SweepInterval
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if _, err := s.ExpireSoftBookings(ctx); err != nil && ctx.Err() == nil {
				s.log.WithError(err).Warn("sweep finished with errors")
			}
		}
	}
}
