package inbound

import (
	"context"

	"github.com/shandysiswandi/vocatrack/internal/attendance/entity"
	"github.com/shandysiswandi/vocatrack/internal/attendance/usecase"
)

type ucConsumer interface {
	ConsumeIVRCall(ctx context.Context, in usecase.ConsumeIVRCallInput) error
	ConsumeAttendanceMarked(ctx context.Context, in usecase.ConsumeAttendanceMarkedInput) error
}

type ucStream interface {
	Stream(ctx context.Context) <-chan usecase.StreamEvent
}

type ucJob interface {
	RunIssuer(ctx context.Context) error
}

type uc interface {
	ucStream

	Current(ctx context.Context) (*usecase.CurrentOutput, error)
	Verify(ctx context.Context, in usecase.VerifyInput) (*usecase.VerifyOutput, error)
	Stats(ctx context.Context) (*entity.OTPStats, error)
	ListAll(ctx context.Context, in usecase.ListAllInput) (*usecase.ListAllOutput, error)
	ListByClaimant(ctx context.Context, in usecase.ListByClaimantInput) ([]entity.OTPRecord, error)
	IVRCall(ctx context.Context, in usecase.IVRCallInput) (*usecase.IVRCallOutput, error)
	Export(ctx context.Context, in usecase.ExportInput) (*usecase.ExportOutput, error)
}
