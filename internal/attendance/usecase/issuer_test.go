package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shandysiswandi/vocatrack/internal/attendance/entity"
	"github.com/shandysiswandi/vocatrack/internal/pkg/goerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsecase_Generate(t *testing.T) {
	t.Run("new code supersedes the pending one", func(t *testing.T) {
		f := newFixture(t, "4821", "7733", "1190")

		for i := range 3 {
			f.clock.Set(t0.Add(time.Duration(i) * 10 * time.Second))
			_, err := f.uc.Generate(context.Background())
			require.NoError(t, err)
			assert.Equal(t, 1, f.db.countStatus(entity.OTPStatusPending))
		}

		assert.Equal(t, entity.OTPStatusExpired, f.db.byCode("4821")[0].Status)
		assert.Equal(t, entity.OTPStatusExpired, f.db.byCode("7733")[0].Status)
		assert.Equal(t, entity.OTPStatusPending, f.db.byCode("1190")[0].Status)
	})

	t.Run("record carries issuer and expiry", func(t *testing.T) {
		f := newFixture(t, "4821")

		cur, err := f.uc.Generate(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "4821", cur.Code)
		assert.Equal(t, t0, cur.GeneratedAt)

		rec := f.db.byCode("4821")[0]
		assert.Equal(t, "issuer-test", rec.IssuerID)
		assert.Equal(t, t0, rec.CreatedAt)
		assert.Equal(t, t0.Add(10*time.Second), rec.ExpiresAt)
	})

	t.Run("store failure keeps the in-memory code", func(t *testing.T) {
		f := newFixture(t, "5555")
		f.db.rotateErr = errors.New("connection refused")

		_, err := f.uc.Generate(context.Background())
		require.NoError(t, err)

		out, err := f.uc.Current(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "5555", out.Code)
		assert.Empty(t, f.db.byCode("5555"))
	})

	t.Run("generator failure", func(t *testing.T) {
		f := newFixture(t, "5555")
		f.codes.err = errors.New("entropy exhausted")

		_, err := f.uc.Generate(context.Background())
		var gerr *goerror.Error
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, goerror.CodeInternal, gerr.Code())
	})
}

func TestUsecase_Current(t *testing.T) {
	f := newFixture(t, "4821")

	_, err := f.uc.Current(context.Background())
	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, goerror.CodeUnavailable, gerr.Code())
	assert.Equal(t, "OTP not generated yet", gerr.Msg())

	_, err = f.uc.Generate(context.Background())
	require.NoError(t, err)

	f.clock.Set(t0.Add(3 * time.Second))
	out, err := f.uc.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "4821", out.Code)
	assert.Equal(t, t0.Add(3*time.Second), out.Timestamp)
}

func TestUsecase_RunIssuer(t *testing.T) {
	f := newFixture(t, "4821", "7733")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.uc.RunIssuer(ctx) }()

	require.Eventually(t, func() bool {
		return len(f.db.byCode("4821")) == 1
	}, time.Second, 10*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("issuer did not stop after cancel")
	}

	out, err := f.uc.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "4821", out.Code)
}
