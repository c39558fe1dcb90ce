package db

import (
	"context"

	"github.com/shandysiswandi/vocatrack/internal/attendance/entity"
)

const (
	expirePendingByID = `UPDATE attendance_otps SET status = $2 WHERE id = $1 AND status = $3`

	verifyPendingByID = `UPDATE attendance_otps
SET status = $2, claimant_id = $4, claimant_name = $5, verified_at = $6
WHERE id = $1 AND status = $3`
)

func (s *DB) ExpireIfPending(ctx context.Context, id int64) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "ExpireIfPending")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, expirePendingByID, id, entity.OTPStatusExpired, entity.OTPStatusPending)
	if err != nil {
		return false, s.mapError(err)
	}

	return tag.RowsAffected() == 1, nil
}

// MarkVerified is the compare-and-set that decides which claimant redeems a
// code.
func (s *DB) MarkVerified(ctx context.Context, id int64, claim entity.Claim) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "MarkVerified")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, verifyPendingByID,
		id,
		entity.OTPStatusVerified,
		entity.OTPStatusPending,
		claim.ClaimantID,
		nullText(claim.ClaimantName),
		timestamptz(claim.VerifiedAt),
	)
	if err != nil {
		return false, s.mapError(err)
	}

	return tag.RowsAffected() == 1, nil
}
