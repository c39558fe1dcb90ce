package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/shandysiswandi/vocatrack/internal/pkg/goerror"
	"github.com/shandysiswandi/vocatrack/internal/pkg/idempotency"
)

const ivrLockDuration = 30 * time.Second

type IVRCallInput struct {
	PhoneNumber string `validate:"required,e164"`
	TraineeName string `validate:"max=100"`
}

type IVRCallOutput struct {
	Message     string
	Instruction string
	CurrentOTP  string
}

// IVRCall queues a call that prompts the trainee for the code on screen. One
// call per phone number is accepted per cooldown.
func (s *Usecase) IVRCall(ctx context.Context, in IVRCallInput) (*IVRCallOutput, error) {
	ctx, span := s.startSpan(ctx, "IVRCall")
	defer span.End()

	in.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	in.TraineeName = strings.TrimSpace(in.TraineeName)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	cur := s.current.Load()
	if cur == nil {
		return nil, goerror.NewBusiness("OTP not generated yet", goerror.CodeUnavailable)
	}

	cooldown := durationOr(s.cfg.GetSecond, "modules.attendance.ivr_cooldown_seconds", defaultIVRCooldown)
	err := s.idemp.Exec(ctx, "attendance:ivr:"+in.PhoneNumber, func(ctx context.Context) error {
		return s.repoMessaging.PublishIVRCall(ctx, IVRCallEvent{
			PhoneNumber: in.PhoneNumber,
			TraineeName: in.TraineeName,
			CurrentOTP:  cur.Code,
			RequestedAt: s.clock.Now(),
		})
	}, idempotency.WithLockDuration(ivrLockDuration), idempotency.WithStateTTL(cooldown))

	switch {
	case errors.Is(err, idempotency.ErrAlreadyInProgress), errors.Is(err, idempotency.ErrAlreadyCompleted):
		slog.WarnContext(ctx, "ivr call already requested", "phone_number", in.PhoneNumber)
		return nil, goerror.NewBusiness("IVR call already requested, try again later", goerror.CodeTooManyRequest)
	case err != nil:
		slog.ErrorContext(ctx, "failed to request ivr call", "phone_number", in.PhoneNumber, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &IVRCallOutput{
		Message:     "IVR call initiated to " + in.PhoneNumber,
		Instruction: "Trainee will receive call asking for OTP",
		CurrentOTP:  cur.Code,
	}, nil
}
