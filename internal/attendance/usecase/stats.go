package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/vocatrack/internal/attendance/entity"
	"github.com/shandysiswandi/vocatrack/internal/pkg/goerror"
)

// Stats counts records created in the trailing 24 hours. A fresh cached
// copy is served when present.
func (s *Usecase) Stats(ctx context.Context) (*entity.OTPStats, error) {
	ctx, span := s.startSpan(ctx, "Stats")
	defer span.End()

	cached, err := s.repoCache.GetStats(ctx)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "failed to cache get otp stats", "error", err)
	}

	stats, err := s.repoDB.GetStatsSince(ctx, s.clock.Now().Add(-statsWindow))
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get otp stats", "error", err)
		return nil, goerror.NewServer(err)
	}

	ttl := durationOr(s.cfg.GetSecond, "modules.attendance.stats_cache_seconds", defaultStatsCacheTTL)
	if err := s.repoCache.SetStats(ctx, *stats, ttl); err != nil {
		slog.WarnContext(ctx, "failed to cache set otp stats", "error", err)
	}

	return stats, nil
}
