package inbound

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/shandysiswandi/vocatrack/internal/attendance/usecase"
	"github.com/shandysiswandi/vocatrack/internal/pkg/instrument"
	"github.com/shandysiswandi/vocatrack/internal/pkg/messaging"
	"github.com/shandysiswandi/vocatrack/internal/pkg/uid"
	"github.com/shandysiswandi/vocatrack/internal/shared/event"
)

const keyOfCorrelationID string = "cID"

type MQHandler struct {
	uc   ucConsumer
	uuid uid.StringID
	ins  instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, headers []messaging.Header) context.Context {
	if cID := messaging.HeaderValue(headers, keyOfCorrelationID); cID != "" {
		return instrument.SetCorrelationID(ctx, cID)
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

func (h *MQHandler) IVRCallDialer(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("attendance.inbound.mq").Start(ctx, "IVRCallDialer")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: attendance ivr call", "msg_id", msg.ID())

	var payload event.IVRCallMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of ivr call", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.ConsumeIVRCall(ctx, usecase.ConsumeIVRCallInput{
		PhoneNumber: payload.PhoneNumber,
		TraineeName: payload.TraineeName,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume ivr call", "msg_id", msg.ID(), "error", err)
		return err
	}

	return nil
}

func (h *MQHandler) AttendanceMarkedAudit(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("attendance.inbound.mq").Start(ctx, "AttendanceMarkedAudit")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: attendance marked", "msg_body", string(body))

	var payload event.AttendanceMarkedMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of attendance marked", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.ConsumeAttendanceMarked(ctx, usecase.ConsumeAttendanceMarkedInput{
		RecordID:     payload.RecordID,
		ClaimantID:   payload.ClaimantID,
		ClaimantName: payload.ClaimantName,
		VerifiedAt:   payload.VerifiedAt,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume attendance marked", "msg_body", string(body), "error", err)
		return err
	}

	return nil
}
