package archive

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"log/slog"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/shandysiswandi/vocatrack/internal/attendance/entity"
	"github.com/shandysiswandi/vocatrack/internal/pkg/instrument"
	"github.com/shandysiswandi/vocatrack/internal/pkg/storage"
	"go.opentelemetry.io/otel/codes"
)

const contentTypeCSV = "text/csv; charset=utf-8"

var header = []string{"id", "code", "claimant_id", "claimant_name", "status", "created_at", "verified_at"}

type Archive struct {
	store  storage.Storage
	bucket string
	ins    instrument.Instrumentation
}

func NewArchive(store storage.Storage, bucket string, ins instrument.Instrumentation) *Archive {
	return &Archive{store: store, bucket: bucket, ins: ins}
}

func (a *Archive) SaveCSV(ctx context.Context, key string, records []entity.OTPRecord, urlTTL time.Duration) (_ string, err error) {
	ctx, span := a.ins.Tracer("attendance.outbound.archive").Start(ctx, "SaveCSV")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	body, err := renderCSV(records)
	if err != nil {
		return "", err
	}

	if _, err = a.store.PutObject(ctx, a.bucket, key, bytes.NewReader(body), storage.PutOptions{
		Size:               int64(len(body)),
		ContentType:        contentTypeCSV,
		ContentDisposition: `attachment; filename="` + path.Base(key) + `"`,
		Metadata:           map[string]string{"records": strconv.Itoa(len(records))},
	}); err != nil {
		return "", err
	}

	url, err := a.store.PresignGet(ctx, a.bucket, key, urlTTL)
	if err != nil {
		// nobody can reach an object without a link
		if delErr := a.store.DeleteObject(ctx, a.bucket, key); delErr != nil {
			slog.WarnContext(ctx, "failed to remove unreachable export", "key", key, "error", delErr)
			err = errors.Join(err, delErr)
		}
		return "", err
	}

	return url, nil
}

func renderCSV(records []entity.OTPRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, rec := range records {
		verifiedAt := ""
		if rec.VerifiedAt != nil {
			verifiedAt = rec.VerifiedAt.UTC().Format(time.RFC3339)
		}
		if err := w.Write([]string{
			strconv.FormatInt(rec.ID, 10),
			rec.Code,
			safeCell(rec.ClaimantID),
			safeCell(rec.ClaimantName),
			rec.Status.String(),
			rec.CreatedAt.UTC().Format(time.RFC3339),
			verifiedAt,
		}); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// safeCell prefixes user supplied text that a spreadsheet would evaluate as
// a formula.
func safeCell(v string) string {
	if v != "" && strings.ContainsRune("=+-@\t\r", rune(v[0])) {
		return "'" + v
	}
	return v
}
