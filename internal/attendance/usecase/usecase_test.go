package usecase

import (
	"context"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/shandysiswandi/vocatrack/internal/attendance/entity"
	"github.com/shandysiswandi/vocatrack/internal/pkg/clock"
	"github.com/shandysiswandi/vocatrack/internal/pkg/config"
	"github.com/shandysiswandi/vocatrack/internal/pkg/goerror"
	"github.com/shandysiswandi/vocatrack/internal/pkg/goroutine"
	"github.com/shandysiswandi/vocatrack/internal/pkg/idempotency"
	"github.com/shandysiswandi/vocatrack/internal/pkg/instrument"
	"github.com/shandysiswandi/vocatrack/internal/pkg/validator"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testConfig = `
modules:
  attendance:
    issuer_id: issuer-test
    otp_interval_seconds: 10
    stream_interval_seconds: 1
    redeem_window_minutes: 10
    stats_cache_seconds: 5
    ivr_cooldown_seconds: 60
    export_url_ttl_minutes: 15
`

var t0 = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

type fixture struct {
	uc        *Usecase
	db        *memRepo
	cache     *mockCache
	msg       *mockMessaging
	archive   *mockArchive
	clock     *clock.Manual
	codes     *seqCodes
	goroutine *goroutine.Manager
}

func newFixture(t *testing.T, codes ...string) *fixture {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(testConfig))
	require.NoError(t, err)

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	f := &fixture{
		db:        &memRepo{},
		cache:     &mockCache{},
		msg:       &mockMessaging{},
		archive:   &mockArchive{},
		clock:     clock.NewManual(t0),
		codes:     &seqCodes{codes: codes},
		goroutine: goroutine.NewManager(10),
	}

	f.uc = New(Dependency{
		RepoDB:        f.db,
		RepoCache:     f.cache,
		RepoMessaging: f.msg,
		RepoArchive:   f.archive,
		Idempotency:   &memIdempotency{done: map[string]bool{}},
		Validator:     v,
		Config:        cfg,
		OTP:           f.codes,
		UID:           &seqID{},
		UUID:          fixedUUID("0199a0b2-7c1e-7000-8000-000000000001"),
		Clock:         f.clock,
		Instrument:    instrument.NewNoop(),
		Goroutine:     f.goroutine,
	})

	return f
}

// wait joins background publishing so mock expectations can be asserted.
func (f *fixture) wait(t *testing.T) {
	t.Helper()
	require.NoError(t, f.goroutine.Wait())
}

type seqCodes struct {
	mu    sync.Mutex
	codes []string
	next  int
	err   error
}

func (g *seqCodes) Generate() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return "", g.err
	}
	code := g.codes[g.next%len(g.codes)]
	g.next++
	return code, nil
}

type seqID struct {
	mu   sync.Mutex
	last int64
}

func (s *seqID) Generate() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last++
	return s.last
}

type fixedUUID string

func (u fixedUUID) Generate() string { return string(u) }

type memIdempotency struct {
	mu   sync.Mutex
	done map[string]bool
}

func (m *memIdempotency) Exec(ctx context.Context, key string, fn func(context.Context) error, _ ...idempotency.Option) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.done[key] {
		return idempotency.ErrAlreadyCompleted
	}
	if err := fn(ctx); err != nil {
		return err
	}
	m.done[key] = true
	return nil
}

// memRepo keeps the log in memory with the same conditional semantics as
// the Postgres store.
type memRepo struct {
	mu        sync.Mutex
	records   []entity.OTPRecord
	rotateErr error
	getErr    error
}

func (r *memRepo) RotatePending(_ context.Context, in entity.NewOTP) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rotateErr != nil {
		return r.rotateErr
	}
	for i := range r.records {
		if r.records[i].IssuerID == in.IssuerID && r.records[i].Status == entity.OTPStatusPending {
			r.records[i].Status = entity.OTPStatusExpired
		}
	}
	r.records = append(r.records, entity.OTPRecord{
		ID:        in.ID,
		Code:      in.Code,
		IssuerID:  in.IssuerID,
		Status:    entity.OTPStatusPending,
		CreatedAt: in.CreatedAt,
		ExpiresAt: in.ExpiresAt,
	})
	return nil
}

func (r *memRepo) GetLatestPendingByCode(_ context.Context, code string) (*entity.OTPRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	for i := len(r.records) - 1; i >= 0; i-- {
		if r.records[i].Code == code && r.records[i].Status == entity.OTPStatusPending {
			rec := r.records[i]
			return &rec, nil
		}
	}
	return nil, goerror.ErrNotFound
}

func (r *memRepo) ExpireIfPending(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.records {
		if r.records[i].ID == id && r.records[i].Status == entity.OTPStatusPending {
			r.records[i].Status = entity.OTPStatusExpired
			return true, nil
		}
	}
	return false, nil
}

func (r *memRepo) MarkVerified(_ context.Context, id int64, claim entity.Claim) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.records {
		if r.records[i].ID == id && r.records[i].Status == entity.OTPStatusPending {
			at := claim.VerifiedAt
			r.records[i].Status = entity.OTPStatusVerified
			r.records[i].ClaimantID = claim.ClaimantID
			r.records[i].ClaimantName = claim.ClaimantName
			r.records[i].VerifiedAt = &at
			return true, nil
		}
	}
	return false, nil
}

func (r *memRepo) GetStatsSince(_ context.Context, since time.Time) (*entity.OTPStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var st entity.OTPStats
	for _, rec := range r.records {
		if rec.CreatedAt.Before(since) {
			continue
		}
		st.Total++
		switch rec.Status {
		case entity.OTPStatusPending:
			st.Pending++
		case entity.OTPStatusVerified:
			st.Verified++
		case entity.OTPStatusExpired:
			st.Expired++
		}
	}
	return &st, nil
}

func (r *memRepo) ListOTPs(_ context.Context, filter entity.OTPListFilter) ([]entity.OTPRecord, error) {
	r.mu.Lock()
	out := slices.Clone(r.records)
	r.mu.Unlock()
	slices.Reverse(out)
	start := min(int(filter.Offset), len(out))
	end := min(start+int(filter.Limit), len(out))
	return out[start:end], nil
}

func (r *memRepo) ListVerifiedByClaimant(_ context.Context, claimantID string) ([]entity.OTPRecord, error) {
	return r.filter(func(rec entity.OTPRecord) bool {
		return rec.Status == entity.OTPStatusVerified && rec.ClaimantID == claimantID
	}), nil
}

func (r *memRepo) ListVerifiedInRange(_ context.Context, f entity.VerifiedRangeFilter) ([]entity.OTPRecord, error) {
	return r.filter(func(rec entity.OTPRecord) bool {
		return rec.Status == entity.OTPStatusVerified &&
			!rec.VerifiedAt.Before(f.From) && rec.VerifiedAt.Before(f.To)
	}), nil
}

func (r *memRepo) filter(keep func(entity.OTPRecord) bool) []entity.OTPRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.OTPRecord
	for i := len(r.records) - 1; i >= 0; i-- {
		if keep(r.records[i]) {
			out = append(out, r.records[i])
		}
	}
	return out
}

func (r *memRepo) byCode(code string) []entity.OTPRecord {
	return r.filter(func(rec entity.OTPRecord) bool { return rec.Code == code })
}

func (r *memRepo) countStatus(st entity.OTPStatus) int {
	return len(r.filter(func(rec entity.OTPRecord) bool { return rec.Status == st }))
}

type mockCache struct{ mock.Mock }

func (m *mockCache) GetStats(ctx context.Context) (*entity.OTPStats, error) {
	args := m.Called(ctx)
	st, _ := args.Get(0).(*entity.OTPStats)
	return st, args.Error(1)
}

func (m *mockCache) SetStats(ctx context.Context, stats entity.OTPStats, ttl time.Duration) error {
	return m.Called(ctx, stats, ttl).Error(0)
}

type mockMessaging struct{ mock.Mock }

func (m *mockMessaging) PublishAttendanceMarked(ctx context.Context, msg AttendanceMarkedEvent) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *mockMessaging) PublishIVRCall(ctx context.Context, msg IVRCallEvent) error {
	return m.Called(ctx, msg).Error(0)
}

type mockArchive struct{ mock.Mock }

func (m *mockArchive) SaveCSV(ctx context.Context, key string, records []entity.OTPRecord, urlTTL time.Duration) (string, error) {
	args := m.Called(ctx, key, records, urlTTL)
	return args.String(0), args.Error(1)
}
