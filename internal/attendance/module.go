package attendance

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/vocatrack/internal/attendance/inbound"
	"github.com/shandysiswandi/vocatrack/internal/attendance/outbound/archive"
	"github.com/shandysiswandi/vocatrack/internal/attendance/outbound/cache"
	"github.com/shandysiswandi/vocatrack/internal/attendance/outbound/db"
	"github.com/shandysiswandi/vocatrack/internal/attendance/outbound/mq"
	"github.com/shandysiswandi/vocatrack/internal/attendance/usecase"
	"github.com/shandysiswandi/vocatrack/internal/pkg/clock"
	"github.com/shandysiswandi/vocatrack/internal/pkg/config"
	"github.com/shandysiswandi/vocatrack/internal/pkg/goroutine"
	"github.com/shandysiswandi/vocatrack/internal/pkg/idempotency"
	"github.com/shandysiswandi/vocatrack/internal/pkg/instrument"
	"github.com/shandysiswandi/vocatrack/internal/pkg/messaging"
	"github.com/shandysiswandi/vocatrack/internal/pkg/otp"
	"github.com/shandysiswandi/vocatrack/internal/pkg/router"
	"github.com/shandysiswandi/vocatrack/internal/pkg/storage"
	"github.com/shandysiswandi/vocatrack/internal/pkg/uid"
	"github.com/shandysiswandi/vocatrack/internal/pkg/validator"
)

type Dependency struct {
	Ctx         context.Context            `validate:"required"`
	DBConn      *pgxpool.Pool              `validate:"required"`
	CacheConn   *redis.Client              `validate:"required"`
	Goroutine   *goroutine.Manager         `validate:"required"`
	Router      *router.Router             `validate:"required"`
	SSERouter   *router.Router             `validate:"required"`
	Idempotency idempotency.Idempotency    `validate:"required"`
	Messaging   messaging.Messaging        `validate:"required"`
	Storage     storage.Storage            `validate:"required"`
	Config      config.Config              `validate:"required"`
	Instrument  instrument.Instrumentation `validate:"required"`
	UID         uid.NumberID               `validate:"required"`
	UUID        uid.StringID               `validate:"required"`
	Clock       clock.Clocker              `validate:"required"`
	Validator   validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	codes, err := otp.NewNumeric(4)
	if err != nil {
		return err
	}

	uc := usecase.New(usecase.Dependency{
		RepoDB:        db.NewDB(dep.DBConn, dep.Instrument),
		RepoCache:     cache.NewCache(dep.CacheConn, dep.Instrument),
		RepoMessaging: mq.NewMessaging(dep.Messaging, dep.Instrument),
		RepoArchive:   archive.NewArchive(dep.Storage, dep.Config.GetString("modules.attendance.export_bucket"), dep.Instrument),
		Idempotency:   dep.Idempotency,
		Validator:     dep.Validator,
		Config:        dep.Config,
		OTP:           codes,
		UID:           dep.UID,
		UUID:          dep.UUID,
		Clock:         dep.Clock,
		Instrument:    dep.Instrument,
		Goroutine:     dep.Goroutine,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, dep.SSERouter, uc)
	inbound.RegisterJob(dep.Ctx, dep.Config, dep.Goroutine, uc)
	inbound.RegisterMQConsumer(dep.Ctx, dep.Config, dep.Goroutine, dep.Messaging, dep.UUID, uc, dep.Instrument)

	return nil
}
