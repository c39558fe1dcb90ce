package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/shandysiswandi/vocatrack/internal/attendance/entity"
	"github.com/shandysiswandi/vocatrack/internal/pkg/clock"
	"github.com/shandysiswandi/vocatrack/internal/pkg/config"
	"github.com/shandysiswandi/vocatrack/internal/pkg/goroutine"
	"github.com/shandysiswandi/vocatrack/internal/pkg/idempotency"
	"github.com/shandysiswandi/vocatrack/internal/pkg/instrument"
	"github.com/shandysiswandi/vocatrack/internal/pkg/otp"
	"github.com/shandysiswandi/vocatrack/internal/pkg/uid"
	"github.com/shandysiswandi/vocatrack/internal/pkg/validator"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/atomic"
)

const (
	defaultIssuerID       = "11111111-aaaa-4aaa-bbbb-aaaaaaaaaaaa"
	defaultOTPInterval    = 10 * time.Second
	defaultStreamInterval = 10 * time.Second
	defaultRedeemWindow   = 10 * time.Minute
	defaultStatsCacheTTL  = 5 * time.Second
	defaultIVRCooldown    = time.Minute
	defaultExportURLTTL   = 15 * time.Minute
	statsWindow           = 24 * time.Hour
)

type AttendanceMarkedEvent struct {
	RecordID     int64
	Code         string
	ClaimantID   string
	ClaimantName string
	VerifiedAt   time.Time
}

type IVRCallEvent struct {
	PhoneNumber string
	TraineeName string
	CurrentOTP  string
	RequestedAt time.Time
}

type repoMessaging interface {
	PublishAttendanceMarked(ctx context.Context, msg AttendanceMarkedEvent) error
	PublishIVRCall(ctx context.Context, msg IVRCallEvent) error
}

type repoCache interface {
	// GetStats returns goerror.ErrNotFound on a miss.
	GetStats(ctx context.Context) (*entity.OTPStats, error)
	SetStats(ctx context.Context, stats entity.OTPStats, ttl time.Duration) error
}

type repoArchive interface {
	// SaveCSV stores the records under key and returns a download link valid
	// for urlTTL.
	SaveCSV(ctx context.Context, key string, records []entity.OTPRecord, urlTTL time.Duration) (string, error)
}

type repoDB interface {
	// RotatePending expires every pending record of the issuer, then inserts
	// the new pending one, in a single transaction.
	RotatePending(ctx context.Context, in entity.NewOTP) error
	GetLatestPendingByCode(ctx context.Context, code string) (*entity.OTPRecord, error)
	GetStatsSince(ctx context.Context, since time.Time) (*entity.OTPStats, error)
	ListOTPs(ctx context.Context, filter entity.OTPListFilter) ([]entity.OTPRecord, error)
	ListVerifiedByClaimant(ctx context.Context, claimantID string) ([]entity.OTPRecord, error)
	ListVerifiedInRange(ctx context.Context, filter entity.VerifiedRangeFilter) ([]entity.OTPRecord, error)

	// ExpireIfPending and MarkVerified only touch a record whose status is
	// still pending and report whether a row changed.
	ExpireIfPending(ctx context.Context, id int64) (bool, error)
	MarkVerified(ctx context.Context, id int64, claim entity.Claim) (bool, error)
}

type Usecase struct {
	repoDB        repoDB
	repoCache     repoCache
	repoMessaging repoMessaging
	repoArchive   repoArchive
	idemp         idempotency.Idempotency
	validator     validator.Validator
	cfg           config.Config
	otp           otp.Generator
	uid           uid.NumberID
	uuid          uid.StringID
	clock         clock.Clocker
	ins           instrument.Instrumentation
	goroutine     *goroutine.Manager

	current *atomic.Pointer[entity.CurrentOTP]

	generatedCounter metric.Int64Counter
	verifyCounter    metric.Int64Counter
}

type Dependency struct {
	RepoDB        repoDB
	RepoCache     repoCache
	RepoMessaging repoMessaging
	RepoArchive   repoArchive
	Idempotency   idempotency.Idempotency
	Validator     validator.Validator
	Config        config.Config
	OTP           otp.Generator
	UID           uid.NumberID
	UUID          uid.StringID
	Clock         clock.Clocker
	Instrument    instrument.Instrumentation
	Goroutine     *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	uc := &Usecase{
		repoDB:        dep.RepoDB,
		repoCache:     dep.RepoCache,
		repoMessaging: dep.RepoMessaging,
		repoArchive:   dep.RepoArchive,
		idemp:         dep.Idempotency,
		validator:     dep.Validator,
		cfg:           dep.Config,
		otp:           dep.OTP,
		uid:           dep.UID,
		uuid:          dep.UUID,
		clock:         dep.Clock,
		ins:           dep.Instrument,
		goroutine:     dep.Goroutine,
		current:       atomic.NewPointer[entity.CurrentOTP](nil),
	}

	meter := uc.ins.Meter("attendance.usecase")

	var err error
	uc.generatedCounter, err = meter.Int64Counter("attendance.otp.generated",
		metric.WithDescription("Number of attendance codes generated"))
	if err != nil {
		slog.Warn("failed to create counter", "name", "attendance.otp.generated", "error", err)
	}
	uc.verifyCounter, err = meter.Int64Counter("attendance.otp.verify",
		metric.WithDescription("Number of verification attempts by result"))
	if err != nil {
		slog.Warn("failed to create counter", "name", "attendance.otp.verify", "error", err)
	}

	return uc
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("attendance.usecase").Start(ctx, name)
}

func (s *Usecase) issuerID() string {
	if v := s.cfg.GetString("modules.attendance.issuer_id"); v != "" {
		return v
	}
	return defaultIssuerID
}

// durationOr reads key with get and returns def when it is not positive.
func durationOr(get func(string) time.Duration, key string, def time.Duration) time.Duration {
	if d := get(key); d > 0 {
		return d
	}
	return def
}
