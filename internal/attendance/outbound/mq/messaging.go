package mq

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/shandysiswandi/vocatrack/internal/attendance/usecase"
	"github.com/shandysiswandi/vocatrack/internal/pkg/instrument"
	"github.com/shandysiswandi/vocatrack/internal/pkg/messaging"
	"github.com/shandysiswandi/vocatrack/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
)

const keyOfCorrelationID string = "cID"

type Messaging struct {
	client  messaging.Messaging
	ins     instrument.Instrumentation
	backoff func() retry.Backoff
}

func NewMessaging(client messaging.Messaging, ins instrument.Instrumentation) *Messaging {
	return &Messaging{
		client: client,
		ins:    ins,
		backoff: func() retry.Backoff {
			return retry.WithMaxRetries(2, retry.NewExponential(100*time.Millisecond))
		},
	}
}

func (m *Messaging) PublishAttendanceMarked(ctx context.Context, msg usecase.AttendanceMarkedEvent) error {
	ctx, span := m.ins.Tracer("attendance.outbound.mq").Start(ctx, "PublishAttendanceMarked")
	defer span.End()

	body, err := json.Marshal(event.AttendanceMarkedMessage{
		RecordID:     msg.RecordID,
		Code:         msg.Code,
		ClaimantID:   msg.ClaimantID,
		ClaimantName: msg.ClaimantName,
		VerifiedAt:   msg.VerifiedAt,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if err := m.publish(ctx, event.AttendanceMarkedDestination, body); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

func (m *Messaging) PublishIVRCall(ctx context.Context, msg usecase.IVRCallEvent) error {
	ctx, span := m.ins.Tracer("attendance.outbound.mq").Start(ctx, "PublishIVRCall")
	defer span.End()

	body, err := json.Marshal(event.IVRCallMessage{
		PhoneNumber: msg.PhoneNumber,
		TraineeName: msg.TraineeName,
		CurrentOTP:  msg.CurrentOTP,
		RequestedAt: msg.RequestedAt,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if err := m.publish(ctx, event.IVRCallDestination, body); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

// publish retries transient broker failures; a cancelled context ends the
// attempts early.
func (m *Messaging) publish(ctx context.Context, destination string, body []byte) error {
	out := messaging.OutgoingMessage{
		Body:    body,
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(instrument.GetCorrelationID(ctx))}},
	}

	return retry.Do(ctx, m.backoff(), func(ctx context.Context) error {
		if err := m.client.Publish(ctx, destination, out); err != nil {
			if ctx.Err() != nil {
				return err
			}
			return retry.RetryableError(err)
		}
		return nil
	})
}
