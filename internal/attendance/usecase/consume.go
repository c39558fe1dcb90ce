package usecase

import (
	"context"
	"log/slog"
	"time"
)

const ivrPrompt = "Please enter the 4-digit OTP shown on your trainer's screen to mark attendance"

type ConsumeIVRCallInput struct {
	PhoneNumber string `validate:"required,e164"`
	TraineeName string
}

// ConsumeIVRCall dials the trainee. The dialer is simulated by logging the
// prompt that would be played.
func (s *Usecase) ConsumeIVRCall(ctx context.Context, in ConsumeIVRCallInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeIVRCall")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "Validation failed", "error", err)
		return nil
	}

	slog.InfoContext(ctx, "ivr call placed", "phone_number", in.PhoneNumber, "trainee_name", in.TraineeName)
	slog.InfoContext(ctx, "ivr prompt played", "phone_number", in.PhoneNumber, "prompt", ivrPrompt)

	return nil
}

type ConsumeAttendanceMarkedInput struct {
	RecordID     int64  `validate:"required,gt=0"`
	ClaimantID   string `validate:"required"`
	ClaimantName string
	VerifiedAt   time.Time
}

// ConsumeAttendanceMarked writes the audit line of a redeemed code.
func (s *Usecase) ConsumeAttendanceMarked(ctx context.Context, in ConsumeAttendanceMarkedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeAttendanceMarked")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "Validation failed", "error", err)
		return nil
	}

	slog.InfoContext(ctx, "attendance marked",
		"otp_id", in.RecordID,
		"claimant_id", in.ClaimantID,
		"claimant_name", in.ClaimantName,
		"verified_at", in.VerifiedAt,
	)

	return nil
}
