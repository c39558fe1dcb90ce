package inbound

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/vocatrack/internal/pkg/config"
	"github.com/shandysiswandi/vocatrack/internal/pkg/goroutine"
)

// RegisterJob starts the code issuer on the goroutine manager. Only one
// replica per issuer id should run it.
func RegisterJob(ctx context.Context, cfg config.Config, routine *goroutine.Manager, uc ucJob) {
	if !cfg.GetBool("modules.attendance.issuer_enabled") {
		slog.InfoContext(ctx, "attendance issuer disabled")
		return
	}

	routine.Go(ctx, func(pCtx context.Context) error {
		slog.InfoContext(ctx, "Running job for issuing attendance codes")
		return uc.RunIssuer(pCtx)
	})
}
