package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"github.com/samber/lo"
	"github.com/shandysiswandi/vocatrack/internal/pkg/clock"
	"github.com/shandysiswandi/vocatrack/internal/pkg/config"
	"github.com/shandysiswandi/vocatrack/internal/pkg/goroutine"
	"github.com/shandysiswandi/vocatrack/internal/pkg/idempotency"
	"github.com/shandysiswandi/vocatrack/internal/pkg/instrument"
	"github.com/shandysiswandi/vocatrack/internal/pkg/messaging"
	"github.com/shandysiswandi/vocatrack/internal/pkg/migration"
	"github.com/shandysiswandi/vocatrack/internal/pkg/router"
	"github.com/shandysiswandi/vocatrack/internal/pkg/storage"
	"github.com/shandysiswandi/vocatrack/internal/pkg/uid"
	"github.com/shandysiswandi/vocatrack/internal/pkg/validator"
	"github.com/shandysiswandi/vocatrack/migrations"
)

const pingTimeout = 5 * time.Second

// exitOnError logs msg and exits when err is set. Start-up only.
func exitOnError(err error, msg string, args ...any) {
	if err == nil {
		return
	}
	slog.Error(msg, append(args, "error", err)...)
	os.Exit(1)
}

func (a *App) initConfig() {
	// .env never overrides variables already set in the environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err)
	}

	path := os.Getenv("CONFIG_PATH")
	switch {
	case path != "":
	case os.Getenv("LOCAL") == "true":
		path = "./config/config.yaml"
	default:
		path = "/config/config.yaml"
	}

	cfg, err := config.NewViper(path)
	exitOnError(err, "failed to init config", "path", path)

	if tz := cfg.GetString("app.tz"); tz != "" {
		//nolint:errcheck,gosec // TZ is advisory
		os.Setenv("TZ", tz)
	}

	a.config = cfg
}

func (a *App) initInstrument() {
	ins, err := instrument.New(a.ctx, &instrument.Config{
		Enabled:          a.config.GetBool("instrument.enabled"),
		ServiceName:      lo.CoalesceOrEmpty(a.config.GetString("instrument.service_name"), a.config.GetString("app.name")),
		ServiceVersion:   a.config.GetString("instrument.service_version"),
		Environment:      a.config.GetString("instrument.env"),
		OTLPEndpoint:     a.config.GetString("instrument.otlp_endpoint"),
		OTLPSecure:       a.config.GetBool("instrument.otlp_secure"),
		TraceSampleRatio: a.config.GetFloat64("instrument.trace_sample_ratio"),
		MetricsInterval:  a.config.GetSecond("instrument.metric_interval_seconds"),
		LogLevel:         a.config.GetString("instrument.log_level"),
		MaskFields:       a.config.GetArray("instrument.log_mask_fields"),
	})
	exitOnError(err, "failed to init instrumentation")

	a.ins = ins
}

func (a *App) initLibraries() {
	a.clock = clock.New()
	a.uuid = uid.NewUUID()
	a.goroutine = goroutine.NewManager(a.config.GetInt("app.server.max_goroutine"))

	v, err := validator.NewV10Validator()
	exitOnError(err, "failed to init validator")
	a.validator = v

	snow, err := uid.NewSnowflakeNode(a.config.GetInt64("app.snowflake_node"))
	exitOnError(err, "failed to init snowflake generator", "node", a.config.GetInt64("app.snowflake_node"))
	a.uid = snow
}

func (a *App) initDatabase() {
	pc, err := poolConfig(a.config)
	exitOnError(err, "failed to parse database url")

	pool, err := pgxpool.NewWithConfig(a.ctx, pc)
	exitOnError(err, "failed to create database pool")

	ctx, cancel := context.WithTimeout(a.ctx, pingTimeout)
	defer cancel()
	exitOnError(pool.Ping(ctx), "failed to ping database")

	a.dbConn = pool
}

func (a *App) initMigration() {
	if !a.config.GetBool("database.migrate") {
		slog.Info("database migration skipped")
		return
	}
	exitOnError(migration.Up(migrations.FS, a.config.GetString("database.url")), "failed to migrate database")
}

func (a *App) initCache() {
	opt, err := redis.ParseURL(a.config.GetString("redis.url"))
	exitOnError(err, "failed to parse redis url")

	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(a.ctx, pingTimeout)
	defer cancel()
	exitOnError(rdb.Ping(ctx).Err(), "failed to ping redis")

	a.cacheConn = rdb
	a.idemp = idempotency.New(rdb)
}

func (a *App) initStorage() {
	driver := trimmed(a.config, "storage.driver")

	opts, err := storageOptions(a.config)
	exitOnError(err, "failed to read storage options", "driver", driver)

	stg, err := storage.NewFromDriver(a.ctx, driver, opts)
	exitOnError(err, "failed to init storage", "driver", driver)

	a.storage = stg
}

func (a *App) initMessaging() {
	driver := trimmed(a.config, "messaging.driver")

	client, err := messaging.NewFromDriver(a.ctx, driver, messagingOptions(a.config))
	exitOnError(err, "failed to init messaging", "driver", driver)

	a.messaging = client
}

func (a *App) initHTTPServer() {
	routerCfg := router.Config{
		Config:     a.config,
		UUID:       a.uuid,
		Instrument: a.ins,
	}
	// streams live on their own router so they are only reachable on the
	// sse address, which has no write timeout
	a.router = router.NewRouter(routerCfg)
	a.sseRouter = router.NewRouter(routerCfg)
	a.registerSystemRoutes()

	corsOpts := cors.Options{
		AllowedOrigins:   a.config.GetArray("app.server.cors"),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{router.HeaderCorrelationID},
		AllowCredentials: true,
	}

	a.httpServer = &http.Server{
		Addr:              a.config.GetString("app.server.http.address"),
		Handler:           cors.New(corsOpts).Handler(a.router),
		ReadTimeout:       a.config.GetSecond("app.server.http.read_timeout_seconds"),
		ReadHeaderTimeout: a.config.GetSecond("app.server.http.read_header_timeout_seconds"),
		WriteTimeout:      a.config.GetSecond("app.server.http.write_timeout_seconds"),
		IdleTimeout:       a.config.GetSecond("app.server.http.idle_timeout_seconds"),
	}

	// no write timeout: a dashboard keeps its stream open for the whole session
	a.sseServer = &http.Server{
		Addr:              a.config.GetString("app.server.sse.address"),
		Handler:           cors.New(corsOpts).Handler(a.sseRouter),
		ReadHeaderTimeout: a.config.GetSecond("app.server.sse.read_header_timeout_seconds"),
	}
}

// initClosers lists resources in the order Stop releases them.
func (a *App) initClosers() {
	a.closers = []closer{
		{name: "Messaging", fn: func(context.Context) error { return a.messaging.Close() }},
		{name: "Redis", fn: func(context.Context) error { return a.cacheConn.Close() }},
		{name: "Database", fn: func(context.Context) error { a.dbConn.Close(); return nil }},
		{name: "Storage", fn: func(context.Context) error { return a.storage.Close() }},
		{name: "Config", fn: func(context.Context) error { return a.config.Close() }},
		{name: "Instrument", fn: a.ins.Shutdown},
	}
}
