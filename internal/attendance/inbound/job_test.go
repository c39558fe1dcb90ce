package inbound

import (
	"context"
	"testing"
	"time"

	"github.com/shandysiswandi/vocatrack/internal/pkg/config"
	"github.com/shandysiswandi/vocatrack/internal/pkg/goroutine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type issuerFunc func(ctx context.Context) error

func (f issuerFunc) RunIssuer(ctx context.Context) error { return f(ctx) }

func TestRegisterJob(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		started bool
	}{
		{name: "enabled", yaml: "modules:\n  attendance:\n    issuer_enabled: true\n", started: true},
		{name: "disabled", yaml: "modules:\n  attendance:\n    issuer_enabled: false\n", started: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.NewViperFromBytes("yaml", []byte(tt.yaml))
			require.NoError(t, err)

			routine := goroutine.NewManager(2)
			ctx, cancel := context.WithCancel(context.Background())

			started := make(chan struct{}, 1)
			RegisterJob(ctx, cfg, routine, issuerFunc(func(ctx context.Context) error {
				started <- struct{}{}
				<-ctx.Done()
				return nil
			}))

			select {
			case <-started:
				assert.True(t, tt.started)
			case <-time.After(100 * time.Millisecond):
				assert.False(t, tt.started)
			}

			cancel()
			require.NoError(t, routine.Wait())
		})
	}
}
