package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
app:
  name: vocatrack
  port: 8080
modules:
  attendance:
    enabled: true
    otp_interval_seconds: 10
    redeem_window_minutes: 10
    consumer_names: "attendance_marked_audit, attendance_ivr_call_dialer,"
    labels: "env:dev, team:training"
secret: aGVsbG8=
`

func TestNewViperFromBytes(t *testing.T) {
	cfg, err := NewViperFromBytes("yaml", []byte(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "vocatrack", cfg.GetString("app.name"))
	assert.Equal(t, 8080, cfg.GetInt("app.port"))
	assert.True(t, cfg.GetBool("modules.attendance.enabled"))
	assert.Equal(t, 10*time.Second, cfg.GetSecond("modules.attendance.otp_interval_seconds"))
	assert.Equal(t, 10*time.Minute, cfg.GetMinute("modules.attendance.redeem_window_minutes"))
	assert.Equal(t, []string{"attendance_marked_audit", "attendance_ivr_call_dialer"}, cfg.GetArray("modules.attendance.consumer_names"))
	assert.Equal(t, map[string]string{"env": "dev", "team": "training"}, cfg.GetMap("modules.attendance.labels"))
	assert.Equal(t, []byte("hello"), cfg.GetBinary("secret"))
	assert.Empty(t, cfg.GetArray("missing.key"))
	assert.NoError(t, cfg.Close())
}

func TestNewViperFromBytes_EnvOverride(t *testing.T) {
	t.Setenv("APP_NAME", "from-env")

	cfg, err := NewViperFromBytes("yaml", []byte(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.GetString("app.name"))
}

func TestNewViperFromBytes_Errors(t *testing.T) {
	_, err := NewViperFromBytes(" ", []byte(sampleYAML))
	assert.ErrorIs(t, err, ErrConfigTypeRequired)

	_, err = NewViperFromBytes("yaml", []byte("app: [unterminated"))
	assert.Error(t, err)
}

func TestNewViper(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(sampleYAML), 0o600))

	cfg, err := NewViper(file)
	require.NoError(t, err)
	assert.Equal(t, "vocatrack", cfg.GetString("app.name"))

	_, err = NewViper(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
