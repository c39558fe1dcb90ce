package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/shandysiswandi/vocatrack/internal/attendance/entity"
	"github.com/shandysiswandi/vocatrack/internal/pkg/goerror"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	ErrInvalidOTP = goerror.NewBusiness("Invalid OTP", goerror.CodeInvalidOTP)
	ErrOTPExpired = goerror.NewBusiness("OTP expired", goerror.CodeOTPExpired)
)

type VerifyInput struct {
	Code         string `validate:"required,notblank"`
	ClaimantID   string `validate:"required,notblank,max=64"`
	ClaimantName string `validate:"max=100"`
}

type VerifyOutput struct {
	Message   string
	Timestamp time.Time
}

// Verify redeems a code for a claimant. Only the caller whose conditional
// update changes the row succeeds; everyone else gets ErrInvalidOTP.
func (s *Usecase) Verify(ctx context.Context, in VerifyInput) (*VerifyOutput, error) {
	ctx, span := s.startSpan(ctx, "Verify")
	defer span.End()

	in.Code = strings.TrimSpace(in.Code)
	in.ClaimantID = strings.TrimSpace(in.ClaimantID)
	in.ClaimantName = strings.TrimSpace(in.ClaimantName)

	if err := s.validator.Validate(in); err != nil {
		s.countVerify(ctx, "invalid_input")
		return nil, goerror.NewInvalidInput(err)
	}

	rec, err := s.repoDB.GetLatestPendingByCode(ctx, in.Code)
	if errors.Is(err, goerror.ErrNotFound) {
		s.countVerify(ctx, "invalid_code")
		return nil, ErrInvalidOTP
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get pending otp by code", "error", err)
		return nil, goerror.NewServer(err)
	}

	now := s.clock.Now()
	window := durationOr(s.cfg.GetMinute, "modules.attendance.redeem_window_minutes", defaultRedeemWindow)

	if now.Sub(rec.CreatedAt) > window {
		if _, err := s.repoDB.ExpireIfPending(ctx, rec.ID); err != nil {
			slog.ErrorContext(ctx, "failed to repo expire otp", "otp_id", rec.ID, "error", err)
			return nil, goerror.NewServer(err)
		}
		s.countVerify(ctx, "expired")
		return nil, ErrOTPExpired
	}

	ok, err := s.repoDB.MarkVerified(ctx, rec.ID, entity.Claim{
		ClaimantID:   in.ClaimantID,
		ClaimantName: in.ClaimantName,
		VerifiedAt:   now,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo mark otp verified", "otp_id", rec.ID, "error", err)
		return nil, goerror.NewServer(err)
	}
	if !ok {
		slog.WarnContext(ctx, "otp was redeemed by a concurrent request", "otp_id", rec.ID, "claimant_id", in.ClaimantID)
		s.countVerify(ctx, "invalid_code")
		return nil, ErrInvalidOTP
	}

	s.countVerify(ctx, "verified")
	s.publishAttendanceMarked(ctx, AttendanceMarkedEvent{
		RecordID:     rec.ID,
		Code:         rec.Code,
		ClaimantID:   in.ClaimantID,
		ClaimantName: in.ClaimantName,
		VerifiedAt:   now,
	})

	name := in.ClaimantName
	if name == "" {
		name = "trainee"
	}

	return &VerifyOutput{Message: "Attendance marked for " + name, Timestamp: now}, nil
}

func (s *Usecase) publishAttendanceMarked(ctx context.Context, evt AttendanceMarkedEvent) {
	s.goroutine.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
		if err := s.repoMessaging.PublishAttendanceMarked(ctx, evt); err != nil {
			slog.ErrorContext(ctx, "failed to publish attendance marked", "otp_id", evt.RecordID, "error", err)
		}
		return nil
	})
}

func (s *Usecase) countVerify(ctx context.Context, result string) {
	if s.verifyCounter == nil {
		return
	}
	s.verifyCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}
