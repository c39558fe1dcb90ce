package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/vocatrack/internal/attendance/entity"
	"github.com/shandysiswandi/vocatrack/internal/pkg/goerror"
)

const (
	defaultListLimit int32 = 50
	maxListLimit     int32 = 500
)

type ListAllInput struct {
	Limit  int32
	Offset int32
}

type ListAllOutput struct {
	Limit   int32
	Offset  int32
	Records []entity.OTPRecord
}

// ListAll returns the log newest first.
func (s *Usecase) ListAll(ctx context.Context, in ListAllInput) (*ListAllOutput, error) {
	ctx, span := s.startSpan(ctx, "ListAll")
	defer span.End()

	if in.Limit <= 0 {
		in.Limit = defaultListLimit
	}
	in.Limit = min(in.Limit, maxListLimit)
	in.Offset = max(in.Offset, 0)

	records, err := s.repoDB.ListOTPs(ctx, entity.OTPListFilter{Limit: in.Limit, Offset: in.Offset})
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list otps", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ListAllOutput{Limit: in.Limit, Offset: in.Offset, Records: records}, nil
}

type ListByClaimantInput struct {
	ClaimantID string `validate:"required,max=64"`
}

// ListByClaimant returns the verified records of one trainee, newest first.
func (s *Usecase) ListByClaimant(ctx context.Context, in ListByClaimantInput) ([]entity.OTPRecord, error) {
	ctx, span := s.startSpan(ctx, "ListByClaimant")
	defer span.End()

	in.ClaimantID = strings.TrimSpace(in.ClaimantID)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	records, err := s.repoDB.ListVerifiedByClaimant(ctx, in.ClaimantID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list otps by claimant", "claimant_id", in.ClaimantID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return records, nil
}
