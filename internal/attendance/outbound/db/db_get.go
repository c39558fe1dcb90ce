package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shandysiswandi/vocatrack/internal/attendance/entity"
)

const (
	selectLatestPendingByCode = `SELECT ` + otpColumns + ` FROM attendance_otps
WHERE code = $1 AND status = $2
ORDER BY created_at DESC, id DESC
LIMIT 1`

	selectStatsSince = `SELECT
	COUNT(*),
	COUNT(*) FILTER (WHERE status = $2),
	COUNT(*) FILTER (WHERE status = $3),
	COUNT(*) FILTER (WHERE status = $4)
FROM attendance_otps
WHERE created_at >= $1`

	selectOTPs = `SELECT ` + otpColumns + ` FROM attendance_otps
ORDER BY created_at DESC, id DESC
LIMIT $1 OFFSET $2`

	selectVerifiedByClaimant = `SELECT ` + otpColumns + ` FROM attendance_otps
WHERE claimant_id = $1 AND status = $2
ORDER BY created_at DESC, id DESC`

	selectVerifiedInRange = `SELECT ` + otpColumns + ` FROM attendance_otps
WHERE status = $1 AND verified_at >= $2 AND verified_at < $3
ORDER BY verified_at ASC, id ASC`
)

func (s *DB) GetLatestPendingByCode(ctx context.Context, code string) (_ *entity.OTPRecord, err error) {
	ctx, span := s.startSpan(ctx, "GetLatestPendingByCode")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, selectLatestPendingByCode, code, entity.OTPStatusPending)
	if err != nil {
		return nil, s.mapError(err)
	}

	rec, err := pgx.CollectExactlyOneRow(rows, scanOTP)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &rec, nil
}

func (s *DB) GetStatsSince(ctx context.Context, since time.Time) (_ *entity.OTPStats, err error) {
	ctx, span := s.startSpan(ctx, "GetStatsSince")
	defer func() { s.endSpan(span, err) }()

	var st entity.OTPStats
	if err = s.conn.QueryRow(ctx, selectStatsSince,
		timestamptz(since),
		entity.OTPStatusPending,
		entity.OTPStatusVerified,
		entity.OTPStatusExpired,
	).Scan(&st.Total, &st.Pending, &st.Verified, &st.Expired); err != nil {
		return nil, s.mapError(err)
	}

	return &st, nil
}

func (s *DB) ListOTPs(ctx context.Context, filter entity.OTPListFilter) (_ []entity.OTPRecord, err error) {
	ctx, span := s.startSpan(ctx, "ListOTPs")
	defer func() { s.endSpan(span, err) }()

	return s.collect(ctx, selectOTPs, filter.Limit, filter.Offset)
}

func (s *DB) ListVerifiedByClaimant(ctx context.Context, claimantID string) (_ []entity.OTPRecord, err error) {
	ctx, span := s.startSpan(ctx, "ListVerifiedByClaimant")
	defer func() { s.endSpan(span, err) }()

	return s.collect(ctx, selectVerifiedByClaimant, claimantID, entity.OTPStatusVerified)
}

func (s *DB) ListVerifiedInRange(ctx context.Context, filter entity.VerifiedRangeFilter) (_ []entity.OTPRecord, err error) {
	ctx, span := s.startSpan(ctx, "ListVerifiedInRange")
	defer func() { s.endSpan(span, err) }()

	return s.collect(ctx, selectVerifiedInRange,
		entity.OTPStatusVerified, timestamptz(filter.From), timestamptz(filter.To))
}

func (s *DB) collect(ctx context.Context, query string, args ...any) ([]entity.OTPRecord, error) {
	rows, err := s.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, s.mapError(err)
	}

	records, err := pgx.CollectRows(rows, scanOTP)
	if err != nil {
		return nil, s.mapError(err)
	}

	return records, nil
}
