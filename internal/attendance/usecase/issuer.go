package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/shandysiswandi/vocatrack/internal/attendance/entity"
	"github.com/shandysiswandi/vocatrack/internal/pkg/goerror"
)

type CurrentOutput struct {
	Code      string
	Timestamp time.Time
}

// Generate replaces the current code. The new code becomes current before it
// is persisted; a store failure is logged and the in-memory value is kept.
func (s *Usecase) Generate(ctx context.Context) (*entity.CurrentOTP, error) {
	ctx, span := s.startSpan(ctx, "Generate")
	defer span.End()

	code, err := s.otp.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate otp code", "error", err)
		return nil, goerror.NewServer(err)
	}

	now := s.clock.Now()
	cur := &entity.CurrentOTP{Code: code, GeneratedAt: now}
	s.current.Store(cur)

	if s.generatedCounter != nil {
		s.generatedCounter.Add(ctx, 1)
	}

	rec := entity.NewOTP{
		ID:        s.uid.Generate(),
		Code:      code,
		IssuerID:  s.issuerID(),
		CreatedAt: now,
		ExpiresAt: now.Add(s.otpInterval()),
	}
	if err := s.repoDB.RotatePending(ctx, rec); err != nil {
		slog.ErrorContext(ctx, "failed to repo rotate pending otp", "otp_id", rec.ID, "error", err)
	}

	return cur, nil
}

// RunIssuer generates a code right away and then on every interval until ctx
// is done.
func (s *Usecase) RunIssuer(ctx context.Context) error {
	interval := s.otpInterval()

	slog.InfoContext(ctx, "attendance otp issuer started", "interval", interval.String())

	if _, err := s.Generate(ctx); err != nil {
		slog.ErrorContext(ctx, "failed to issue otp", "error", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "attendance otp issuer stopped")
			return nil
		case <-ticker.C:
			if _, err := s.Generate(ctx); err != nil {
				slog.ErrorContext(ctx, "failed to issue otp", "error", err)
			}
		}
	}
}

// Current returns the code on display.
func (s *Usecase) Current(ctx context.Context) (*CurrentOutput, error) {
	_, span := s.startSpan(ctx, "Current")
	defer span.End()

	cur := s.current.Load()
	if cur == nil {
		return nil, goerror.NewBusiness("OTP not generated yet", goerror.CodeUnavailable)
	}

	return &CurrentOutput{Code: cur.Code, Timestamp: s.clock.Now()}, nil
}

func (s *Usecase) otpInterval() time.Duration {
	return durationOr(s.cfg.GetSecond, "modules.attendance.otp_interval_seconds", defaultOTPInterval)
}
