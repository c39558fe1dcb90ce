package inbound

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shandysiswandi/vocatrack/internal/attendance/entity"
	"github.com/shandysiswandi/vocatrack/internal/attendance/usecase"
	"github.com/shandysiswandi/vocatrack/internal/pkg/config"
	"github.com/shandysiswandi/vocatrack/internal/pkg/goerror"
	"github.com/shandysiswandi/vocatrack/internal/pkg/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

type mockUC struct {
	mock.Mock
	stream chan usecase.StreamEvent
}

func (m *mockUC) Stream(context.Context) <-chan usecase.StreamEvent { return m.stream }

func (m *mockUC) Current(ctx context.Context) (*usecase.CurrentOutput, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).(*usecase.CurrentOutput)
	return out, args.Error(1)
}

func (m *mockUC) Verify(ctx context.Context, in usecase.VerifyInput) (*usecase.VerifyOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*usecase.VerifyOutput)
	return out, args.Error(1)
}

func (m *mockUC) Stats(ctx context.Context) (*entity.OTPStats, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).(*entity.OTPStats)
	return out, args.Error(1)
}

func (m *mockUC) ListAll(ctx context.Context, in usecase.ListAllInput) (*usecase.ListAllOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*usecase.ListAllOutput)
	return out, args.Error(1)
}

func (m *mockUC) ListByClaimant(ctx context.Context, in usecase.ListByClaimantInput) ([]entity.OTPRecord, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).([]entity.OTPRecord)
	return out, args.Error(1)
}

func (m *mockUC) IVRCall(ctx context.Context, in usecase.IVRCallInput) (*usecase.IVRCallOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*usecase.IVRCallOutput)
	return out, args.Error(1)
}

func (m *mockUC) Export(ctx context.Context, in usecase.ExportInput) (*usecase.ExportOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*usecase.ExportOutput)
	return out, args.Error(1)
}

type fixedID string

func (f fixedID) Generate() string { return string(f) }

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Meta    map[string]any    `json:"meta"`
	Error   map[string]string `json:"error"`
}

func newServer(t *testing.T) (*router.Router, *mockUC) {
	t.Helper()
	api, _, m := newServers(t)
	return api, m
}

func newServers(t *testing.T) (api, sse *router.Router, m *mockUC) {
	t.Helper()
	cfg, err := config.NewViperFromBytes("yaml", []byte("app:\n  name: test\n"))
	require.NoError(t, err)

	api = router.NewRouter(router.Config{Config: cfg, UUID: fixedID("cid-1")})
	sse = router.NewRouter(router.Config{Config: cfg, UUID: fixedID("cid-1")})
	m = &mockUC{stream: make(chan usecase.StreamEvent, 1)}
	RegisterHTTPEndpoint(api, sse, m)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return api, sse, m
}

func call(t *testing.T, h http.Handler, method, target, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec.Code, env
}

func TestHTTPEndpoint_Current(t *testing.T) {
	r, m := newServer(t)
	m.On("Current", mock.Anything).Return(&usecase.CurrentOutput{Code: "4821", Timestamp: t0}, nil).Once()

	code, env := call(t, r, http.MethodGet, "/api/v1/otp", "")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"code":"4821","timestamp":"2026-03-02T08:00:00Z"}`, string(env.Data))

	m.On("Current", mock.Anything).Return(nil, goerror.NewBusiness("OTP not generated yet", goerror.CodeUnavailable)).Once()
	code, env = call(t, r, http.MethodGet, "/api/v1/otp", "")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "OTP not generated yet", env.Message)
}

func TestHTTPEndpoint_Verify(t *testing.T) {
	r, m := newServer(t)

	m.On("Verify", mock.Anything, usecase.VerifyInput{Code: "4821", ClaimantID: "trainee-1", ClaimantName: "Siti"}).
		Return(&usecase.VerifyOutput{Message: "Attendance marked for Siti", Timestamp: t0}, nil).Once()
	code, env := call(t, r, http.MethodPost, "/api/v1/otp/verify",
		`{"code":"4821","claimant_id":"trainee-1","claimant_name":"Siti"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
	assert.Equal(t, "Attendance marked for Siti", env.Message)

	m.On("Verify", mock.Anything, usecase.VerifyInput{Code: "0000", ClaimantID: "trainee-1"}).
		Return(nil, usecase.ErrInvalidOTP).Once()
	code, env = call(t, r, http.MethodPost, "/api/v1/otp/verify", `{"code":"0000","claimant_id":"trainee-1"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.False(t, env.Success)
	assert.Equal(t, "Invalid OTP", env.Message)

	code, env = call(t, r, http.MethodPost, "/api/v1/otp/verify", `{"code":`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid request body", env.Message)
}

func TestHTTPEndpoint_ListAll(t *testing.T) {
	r, m := newServer(t)
	verifiedAt := t0.Add(3 * time.Second)

	m.On("ListAll", mock.Anything, usecase.ListAllInput{Limit: 2, Offset: 4}).Return(&usecase.ListAllOutput{
		Limit:  2,
		Offset: 4,
		Records: []entity.OTPRecord{
			{ID: 9, Code: "4821", ClaimantID: "trainee-1", Status: entity.OTPStatusVerified, CreatedAt: t0, ExpiresAt: t0.Add(10 * time.Second), VerifiedAt: &verifiedAt},
			{ID: 8, Code: "1190", Status: entity.OTPStatusExpired, CreatedAt: t0, ExpiresAt: t0.Add(10 * time.Second)},
		},
	}, nil).Once()

	code, env := call(t, r, http.MethodGet, "/api/v1/otp/all?limit=2&offset=4", "")
	require.Equal(t, http.StatusOK, code)

	var data ListAllResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data.Records, 2)
	assert.Equal(t, "verified", data.Records[0].Status)
	assert.Equal(t, "expired", data.Records[1].Status)
	assert.Nil(t, data.Records[1].VerifiedAt)
	assert.EqualValues(t, 2, env.Meta["limit"])
	assert.EqualValues(t, 4, env.Meta["offset"])

	code, env = call(t, r, http.MethodGet, "/api/v1/otp/all?limit=abc", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid query limit", env.Message)
}

func TestHTTPEndpoint_ListByTrainee(t *testing.T) {
	r, m := newServer(t)
	m.On("ListByClaimant", mock.Anything, usecase.ListByClaimantInput{ClaimantID: "trainee-1"}).
		Return([]entity.OTPRecord{}, nil).Once()

	code, env := call(t, r, http.MethodGet, "/api/v1/otp/trainee/trainee-1", "")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"claimant_id":"trainee-1","records":[]}`, string(env.Data))
}

func TestHTTPEndpoint_StatsAndIVR(t *testing.T) {
	r, m := newServer(t)

	m.On("Stats", mock.Anything).Return(&entity.OTPStats{Total: 3, Pending: 1, Verified: 1, Expired: 1}, nil).Once()
	code, env := call(t, r, http.MethodGet, "/api/v1/otp/stats", "")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"total":3,"pending":1,"verified":1,"expired":1}`, string(env.Data))

	m.On("IVRCall", mock.Anything, usecase.IVRCallInput{PhoneNumber: "+6281234567890", TraineeName: "Budi"}).
		Return(&usecase.IVRCallOutput{Message: "IVR call initiated to +6281234567890", Instruction: "Listen for the code", CurrentOTP: "4821"}, nil).Once()
	code, env = call(t, r, http.MethodPost, "/api/v1/otp/ivr-call", `{"phone_number":"+6281234567890","trainee_name":"Budi"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "IVR call initiated to +6281234567890", env.Message)
	assert.JSONEq(t, `{"instruction":"Listen for the code","current_otp":"4821"}`, string(env.Data))
}

func TestHTTPEndpoint_Export(t *testing.T) {
	r, m := newServer(t)
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	m.On("Export", mock.Anything, usecase.ExportInput{From: from, To: to}).
		Return(&usecase.ExportOutput{URL: "https://signed.example/x", Key: "attendance/exports/x.csv", Total: 4}, nil).Once()
	code, env := call(t, r, http.MethodGet, "/api/v1/otp/export?from=2026-03-01&to=2026-03-02", "")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"url":"https://signed.example/x","key":"attendance/exports/x.csv","total":4}`, string(env.Data))

	code, env = call(t, r, http.MethodGet, "/api/v1/otp/export?from=01-03-2026", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid query from", env.Message)
}

func TestHTTPEndpoint_Stream(t *testing.T) {
	m := &mockUC{stream: make(chan usecase.StreamEvent, 1)}
	end := &HTTPEndpoint{uc: m}

	m.stream <- usecase.StreamEvent{Code: "4821", Timestamp: t0}
	close(m.stream)

	rec := httptest.NewRecorder()
	end.Stream(rec, httptest.NewRequest(http.MethodGet, "/api/v1/otp/stream", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t,
		": connected\n\nevent: otp\ndata: {\"code\":\"4821\",\"timestamp\":\"2026-03-02T08:00:00Z\"}\n\n",
		rec.Body.String())
}

func TestRegisterHTTPEndpoint_StreamOnlyOnSSERouter(t *testing.T) {
	api, sse, m := newServers(t)

	code, env := call(t, api, http.MethodGet, "/api/v1/otp/stream", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "endpoint not found", env.Message)

	m.stream <- usecase.StreamEvent{Code: "4821", Timestamp: t0}
	close(m.stream)

	rec := httptest.NewRecorder()
	sse.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/otp/stream", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "event: otp\ndata: {\"code\":\"4821\"")

	code, _ = call(t, sse, http.MethodGet, "/api/v1/otp", "")
	assert.Equal(t, http.StatusNotFound, code)
}
