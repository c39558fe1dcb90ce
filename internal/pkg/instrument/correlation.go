package instrument

import "context"

type correlationKey struct{}

// SetCorrelationID stores id on ctx so log records and outgoing messages can
// carry it.
func SetCorrelationID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, correlationKey{}, id)
}

// GetCorrelationID returns the id set by SetCorrelationID or an empty string.
func GetCorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}
