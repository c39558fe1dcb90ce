package db

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/vocatrack/internal/attendance/entity"
	"github.com/shandysiswandi/vocatrack/internal/pkg/goerror"
	"github.com/shandysiswandi/vocatrack/internal/pkg/instrument"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const otpColumns = `id, code, issuer_id, claimant_id, claimant_name, status, created_at, expires_at, verified_at`

type DB struct {
	conn *pgxpool.Pool
	ins  instrument.Instrumentation
}

func NewDB(conn *pgxpool.Pool, ins instrument.Instrumentation) *DB {
	return &DB{conn: conn, ins: ins}
}

// - 23505 unique violation → goerror.ErrConflict, raised by the single
// pending index when two issuers race
// - no rows → goerror.ErrNotFound
func (s *DB) mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return goerror.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return goerror.ErrConflict
	}

	return err
}

func (s *DB) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("attendance.outbound.db").Start(ctx, name)
}

func (s *DB) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) && !errors.Is(err, goerror.ErrConflict) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func scanOTP(row pgx.CollectableRow) (entity.OTPRecord, error) {
	var (
		rec          entity.OTPRecord
		claimantID   pgtype.Text
		claimantName pgtype.Text
		verifiedAt   pgtype.Timestamptz
	)

	if err := row.Scan(
		&rec.ID,
		&rec.Code,
		&rec.IssuerID,
		&claimantID,
		&claimantName,
		&rec.Status,
		&rec.CreatedAt,
		&rec.ExpiresAt,
		&verifiedAt,
	); err != nil {
		return entity.OTPRecord{}, err
	}

	rec.ClaimantID = claimantID.String
	rec.ClaimantName = claimantName.String
	if verifiedAt.Valid {
		at := verifiedAt.Time
		rec.VerifiedAt = &at
	}

	return rec, nil
}

func nullText(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}

func timestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: !t.IsZero()}
}
