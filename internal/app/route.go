package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/shandysiswandi/vocatrack/docs"
	"github.com/shandysiswandi/vocatrack/internal/pkg/goerror"
	"github.com/shandysiswandi/vocatrack/internal/pkg/router"
)

type dependencyCheck struct {
	name string
	ping func(ctx context.Context) error
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies"`
}

func (a *App) registerSystemRoutes() {
	a.router.GET("/health", healthHandler([]dependencyCheck{
		{name: "database", ping: func(ctx context.Context) error { return a.dbConn.Ping(ctx) }},
		{name: "redis", ping: func(ctx context.Context) error { return a.cacheConn.Ping(ctx).Err() }},
		{name: "storage", ping: func(ctx context.Context) error {
			bucket := a.config.GetString("modules.attendance.export_bucket")
			ok, err := a.storage.BucketExists(ctx, bucket)
			if err == nil && !ok {
				err = fmt.Errorf("bucket %q does not exist", bucket)
			}
			return err
		}},
	}))
	a.router.GETRaw("/swagger/doc.json", http.HandlerFunc(swaggerHandler))
}

// healthHandler pings every dependency and answers 503 when one is down.
// @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} router.successResponse{data=HealthResponse} "All dependencies reachable"
// @Failure 503 {object} router.errorResponse "A dependency is unreachable"
// @Router /health [get]
func healthHandler(checks []dependencyCheck) router.Handler {
	return func(r *router.Request) (any, error) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := HealthResponse{Status: "ok", Dependencies: make(map[string]string, len(checks))}
		healthy := true
		for _, c := range checks {
			if err := c.ping(ctx); err != nil {
				slog.ErrorContext(ctx, "health check failed", "dependency", c.name, "error", err)
				resp.Dependencies[c.name] = "down"
				healthy = false
				continue
			}
			resp.Dependencies[c.name] = "up"
		}

		if !healthy {
			return nil, goerror.NewBusiness("Service unavailable", goerror.CodeUnavailable)
		}

		return resp, nil
	}
}

func swaggerHandler(w http.ResponseWriter, _ *http.Request) {
	doc := docs.SwaggerInfo.ReadDoc()

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_, _ = w.Write([]byte(doc))
}
