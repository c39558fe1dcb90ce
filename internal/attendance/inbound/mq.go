package inbound

import (
	"context"
	"log/slog"
	"slices"

	"github.com/shandysiswandi/vocatrack/internal/pkg/config"
	"github.com/shandysiswandi/vocatrack/internal/pkg/goroutine"
	"github.com/shandysiswandi/vocatrack/internal/pkg/instrument"
	"github.com/shandysiswandi/vocatrack/internal/pkg/messaging"
	"github.com/shandysiswandi/vocatrack/internal/pkg/uid"
	"github.com/shandysiswandi/vocatrack/internal/shared/event"
)

func RegisterMQConsumer(
	ctx context.Context,
	cfg config.Config,
	routine *goroutine.Manager,
	messenger messaging.Messaging,
	uuid uid.StringID,
	uc ucConsumer,
	ins instrument.Instrumentation,
) {
	handler := &MQHandler{uc: uc, uuid: uuid, ins: ins}

	enableConsumerNames := cfg.GetArray("modules.attendance.consumer_names")

	consumers := []struct {
		name    string
		topic   string
		handler messaging.Handler
	}{
		{
			name:    event.IVRCallDestinationConsumerDialer,
			topic:   event.IVRCallDestination,
			handler: handler.IVRCallDialer,
		},
		{
			name:    event.AttendanceMarkedDestinationConsumerAudit,
			topic:   event.AttendanceMarkedDestination,
			handler: handler.AttendanceMarkedAudit,
		},
	}

	for _, consumer := range consumers {
		if !slices.Contains(enableConsumerNames, consumer.name) {
			continue
		}

		// the consumer name doubles as nsq channel, nats queue group, kafka
		// group and pubsub subscription
		routine.Go(ctx, func(pCtx context.Context) error {
			slog.InfoContext(ctx, "Running job for handling consumer", "consumer", consumer.name)
			return messenger.Consume(pCtx,
				consumer.topic,
				consumer.handler,
				messaging.WithChannel(consumer.name),
				messaging.WithQueueGroup(consumer.name),
				messaging.WithGroup(consumer.name),
				messaging.WithSubscription(consumer.name),
				messaging.WithAutoAck(true),
				messaging.WithConcurrency(10),
				messaging.WithMaxInFlight(10),
			)
		})
	}
}
