package router

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shandysiswandi/vocatrack/internal/pkg/config"
	"github.com/shandysiswandi/vocatrack/internal/pkg/goerror"
	"github.com/shandysiswandi/vocatrack/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedID string

func (f fixedID) Generate() string { return string(f) }

type messageResp struct {
	Value string `json:"value"`
}

func (messageResp) Message() string { return "custom message" }

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Error   map[string]string `json:"error"`
}

func newTestRouter(t *testing.T, yaml string) *Router {
	t.Helper()
	cfg, err := config.NewViperFromBytes("yaml", []byte(yaml))
	require.NoError(t, err)
	return NewRouter(Config{Config: cfg, UUID: fixedID("cid-1")})
}

func do(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func TestRouter_Envelopes(t *testing.T) {
	r := newTestRouter(t, "app:\n  name: test\n")

	r.GET("/ok", func(*Request) (any, error) { return messageResp{Value: "x"}, nil })
	r.GET("/empty", func(*Request) (any, error) { return nil, nil })
	r.GET("/business", func(*Request) (any, error) {
		return nil, goerror.NewBusiness("Invalid OTP", goerror.CodeInvalidOTP)
	})
	r.GET("/validation", func(*Request) (any, error) {
		return nil, goerror.NewInvalidInput(validator.V10ValidationError{"otp": "otp is a required field"})
	})
	r.GET("/plain", func(*Request) (any, error) { return nil, errors.New("boom") })
	r.GET("/panic", func(*Request) (any, error) { panic("kaboom") })

	rec, env := do(t, r, http.MethodGet, "/ok", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "custom message", env.Message)
	assert.JSONEq(t, `{"value":"x"}`, string(env.Data))
	assert.Equal(t, "cid-1", rec.Header().Get(HeaderCorrelationID))

	rec, _ = do(t, r, http.MethodGet, "/empty", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, env = do(t, r, http.MethodGet, "/business", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Invalid OTP", env.Message)

	rec, env = do(t, r, http.MethodGet, "/validation", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "otp is a required field", env.Error["otp"])

	rec, env = do(t, r, http.MethodGet, "/plain", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", env.Message)

	rec, env = do(t, r, http.MethodGet, "/panic", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", env.Message)

	rec, env = do(t, r, http.MethodGet, "/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "endpoint not found", env.Message)

	rec, _ = do(t, r, http.MethodPost, "/ok", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRouter_Maintenance(t *testing.T) {
	r := newTestRouter(t, "app:\n  maintenance:\n    endpoints: /blocked\n")
	r.GET("/blocked", func(*Request) (any, error) { return messageResp{}, nil })

	rec, env := do(t, r, http.MethodGet, "/blocked", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "service is under maintenance", env.Message)
}

func TestRequest_DecodeBody(t *testing.T) {
	type body struct {
		OTP string `json:"otp"`
	}

	r := newTestRouter(t, "app:\n  name: test\n")
	r.POST("/decode", func(req *Request) (any, error) {
		var b body
		if err := req.DecodeBody(&b); err != nil {
			return nil, err
		}
		return messageResp{Value: b.OTP}, nil
	})

	rec, env := do(t, r, http.MethodPost, "/decode", `{"otp":"4821"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"value":"4821"}`, string(env.Data))

	rec, env = do(t, r, http.MethodPost, "/decode", `{"otp":"4821","extra":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request body", env.Message)

	rec, _ = do(t, r, http.MethodPost, "/decode", `{"otp":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChain_Order(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}), mw("a"), nil, mw("b"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"a", "b", "handler"}, order)
}
