package app

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/vocatrack/internal/pkg/clock"
	"github.com/shandysiswandi/vocatrack/internal/pkg/config"
	"github.com/shandysiswandi/vocatrack/internal/pkg/goroutine"
	"github.com/shandysiswandi/vocatrack/internal/pkg/idempotency"
	"github.com/shandysiswandi/vocatrack/internal/pkg/instrument"
	"github.com/shandysiswandi/vocatrack/internal/pkg/messaging"
	"github.com/shandysiswandi/vocatrack/internal/pkg/router"
	"github.com/shandysiswandi/vocatrack/internal/pkg/storage"
	"github.com/shandysiswandi/vocatrack/internal/pkg/uid"
	"github.com/shandysiswandi/vocatrack/internal/pkg/validator"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	uid       uid.NumberID
	uuid      uid.StringID

	// resources
	dbConn    *pgxpool.Pool
	cacheConn *redis.Client
	idemp     idempotency.Idempotency
	messaging messaging.Messaging
	storage   storage.Storage

	// server
	router     *router.Router
	sseRouter  *router.Router
	httpServer *http.Server
	sseServer  *http.Server

	closers []closer
}

type closer struct {
	name string
	fn   func(context.Context) error
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initDatabase()
	app.initMigration()
	app.initCache()
	app.initStorage()
	app.initMessaging()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
