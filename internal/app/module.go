package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/vocatrack/internal/attendance"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.attendance.enabled") {
		if err := attendance.New(attendance.Dependency{
			Ctx:         a.ctx,
			DBConn:      a.dbConn,
			CacheConn:   a.cacheConn,
			Goroutine:   a.goroutine,
			Router:      a.router,
			SSERouter:   a.sseRouter,
			Idempotency: a.idemp,
			Messaging:   a.messaging,
			Storage:     a.storage,
			Config:      a.config,
			Instrument:  a.ins,
			UID:         a.uid,
			UUID:        a.uuid,
			Clock:       a.clock,
			Validator:   a.validator,
		}); err != nil {
			slog.Error("failed to init module attendance", "error", err)
			os.Exit(1)
		}
	}
}
