package inbound

import (
	"net/http"

	"github.com/shandysiswandi/vocatrack/internal/pkg/router"
)

// RegisterHTTPEndpoint mounts the JSON endpoints on r and the event stream on
// sse.
func RegisterHTTPEndpoint(r, sse *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/api/v1/otp", end.Current)
	r.POST("/api/v1/otp/verify", end.Verify)
	r.GET("/api/v1/otp/stats", end.Stats)
	r.GET("/api/v1/otp/all", end.ListAll)
	r.GET("/api/v1/otp/trainee/:id", end.ListByTrainee)
	r.POST("/api/v1/otp/ivr-call", end.IVRCall)
	r.GET("/api/v1/otp/export", end.Export)

	sse.GETRaw("/api/v1/otp/stream", http.HandlerFunc(end.Stream))
}
