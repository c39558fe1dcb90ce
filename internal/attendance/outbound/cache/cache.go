package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/vocatrack/internal/attendance/entity"
	"github.com/shandysiswandi/vocatrack/internal/pkg/goerror"
	"github.com/shandysiswandi/vocatrack/internal/pkg/instrument"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const keyOfStats = "attendance:otp:stats"

type Cache struct {
	client redis.Cmdable
	ins    instrument.Instrumentation
}

func NewCache(client redis.Cmdable, ins instrument.Instrumentation) *Cache {
	return &Cache{client: client, ins: ins}
}

func (c *Cache) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return c.ins.Tracer("attendance.outbound.cache").Start(ctx, name)
}

func (c *Cache) GetStats(ctx context.Context) (_ *entity.OTPStats, err error) {
	ctx, span := c.startSpan(ctx, "GetStats")
	defer func() {
		if err != nil && !errors.Is(err, goerror.ErrNotFound) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	raw, err := c.client.Get(ctx, keyOfStats).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, goerror.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var st entity.OTPStats
	if err = json.Unmarshal(raw, &st); err != nil {
		return nil, err
	}

	return &st, nil
}

func (c *Cache) SetStats(ctx context.Context, stats entity.OTPStats, ttl time.Duration) (err error) {
	ctx, span := c.startSpan(ctx, "SetStats")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	raw, err := json.Marshal(stats)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, keyOfStats, raw, ttl).Err()
}
