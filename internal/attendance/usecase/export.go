package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shandysiswandi/vocatrack/internal/attendance/entity"
	"github.com/shandysiswandi/vocatrack/internal/pkg/goerror"
)

const maxExportDays = 31

type ExportInput struct {
	From time.Time // day precision
	To   time.Time // day precision, inclusive
}

type ExportOutput struct {
	URL   string
	Key   string
	Total int
}

// Export writes the attendance verified between From and To as CSV to
// object storage and returns a download link.
func (s *Usecase) Export(ctx context.Context, in ExportInput) (*ExportOutput, error) {
	ctx, span := s.startSpan(ctx, "Export")
	defer span.End()

	switch {
	case in.From.IsZero() && in.To.IsZero():
		return nil, goerror.NewInvalidInput(nil, "from", "from is a required field", "to", "to is a required field")
	case in.From.IsZero():
		return nil, goerror.NewInvalidInput(nil, "from", "from is a required field")
	case in.To.IsZero():
		return nil, goerror.NewInvalidInput(nil, "to", "to is a required field")
	case in.To.Before(in.From):
		return nil, goerror.NewInvalidInput(nil, "to", "to must not be before from")
	case in.To.Sub(in.From) >= maxExportDays*24*time.Hour:
		return nil, goerror.NewInvalidInput(nil, "to", fmt.Sprintf("range must not exceed %d days", maxExportDays))
	}

	records, err := s.repoDB.ListVerifiedInRange(ctx, entity.VerifiedRangeFilter{
		From: in.From,
		To:   in.To.AddDate(0, 0, 1),
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list verified otps", "error", err)
		return nil, goerror.NewServer(err)
	}

	key := fmt.Sprintf("attendance/exports/%s_%s_%s.csv",
		in.From.Format(time.DateOnly), in.To.Format(time.DateOnly), s.uuid.Generate())
	ttl := durationOr(s.cfg.GetMinute, "modules.attendance.export_url_ttl_minutes", defaultExportURLTTL)

	url, err := s.repoArchive.SaveCSV(ctx, key, records, ttl)
	if err != nil {
		slog.ErrorContext(ctx, "failed to archive attendance export", "key", key, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ExportOutput{URL: url, Key: key, Total: len(records)}, nil
}
