package db

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/shandysiswandi/vocatrack/internal/attendance/entity"
)

const (
	expireIssuerPending = `UPDATE attendance_otps SET status = $2 WHERE issuer_id = $1 AND status = $3`

	insertPendingOTP = `INSERT INTO attendance_otps (id, code, issuer_id, status, created_at, expires_at)
VALUES ($1, $2, $3, $4, $5, $6)`
)

func (s *DB) RotatePending(ctx context.Context, in entity.NewOTP) (err error) {
	ctx, span := s.startSpan(ctx, "RotatePending")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rolback", "error", rErr)
		}
	}()

	if _, err = tx.Exec(ctx, expireIssuerPending,
		in.IssuerID, entity.OTPStatusExpired, entity.OTPStatusPending); err != nil {
		return s.mapError(err)
	}

	if _, err = tx.Exec(ctx, insertPendingOTP,
		in.ID,
		in.Code,
		in.IssuerID,
		entity.OTPStatusPending,
		timestamptz(in.CreatedAt),
		timestamptz(in.ExpiresAt),
	); err != nil {
		return s.mapError(err)
	}

	if err = tx.Commit(ctx); err != nil {
		return s.mapError(err)
	}

	return nil
}
