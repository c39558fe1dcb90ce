package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shandysiswandi/vocatrack/internal/pkg/instrument"
	"github.com/stretchr/testify/assert"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{name: "true client ip", headers: map[string]string{"True-Client-IP": "10.0.0.9"}, remote: "1.1.1.1:80", want: "10.0.0.9"},
		{name: "forwarded first hop", headers: map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, remote: "1.1.1.1:80", want: "203.0.113.7"},
		{name: "garbage header falls back", headers: map[string]string{"X-Real-IP": "nope"}, remote: "192.0.2.4:5050", want: "192.0.2.4"},
		{name: "nothing usable", remote: "pipe", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, clientIP(r))
		})
	}
}

func TestMiddlewareCorrelationID(t *testing.T) {
	var got string
	h := middlewareCorrelationID(fixedID("generated"))(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = instrument.GetCorrelationID(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(HeaderRequestID, "  from-proxy ")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	assert.Equal(t, "from-proxy", got)
	assert.Equal(t, "from-proxy", rec.Header().Get(HeaderCorrelationID))

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(HeaderCorrelationID, "bad\r\nid")
	h.ServeHTTP(httptest.NewRecorder(), r)
	assert.Equal(t, "generated", got)

	assert.Len(t, cleanCorrelationID(strings.Repeat("x", 300)), maxCorrelationIDLen)
}
