package instrument

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMasker(t *testing.T) {
	m := NewMasker([]string{" Phone_Number ", "", "current_otp"})

	assert.False(t, m.Empty())
	assert.True(t, m.Match("PHONE_NUMBER"))
	assert.False(t, m.Match("trainee_name"))

	got := m.Data(map[string]any{
		"trainee_name": "Budi",
		"phone_number": "+6281234567890",
		"calls": []any{
			map[string]any{"current_otp": 4821, "status": "queued"},
		},
	})
	assert.Equal(t, map[string]any{
		"trainee_name": "Budi",
		"phone_number": Redacted,
		"calls": []any{
			map[string]any{"current_otp": Redacted, "status": "queued"},
		},
	}, got)

	out, ok := m.JSON([]byte(`{"phone_number":"+62811","requested_at":"2024-05-01T08:00:00Z"}`))
	assert.True(t, ok)
	assert.JSONEq(t, `{"phone_number":"***","requested_at":"2024-05-01T08:00:00Z"}`, string(out))

	_, ok = m.JSON([]byte("plain text"))
	assert.False(t, ok)

	assert.True(t, NewMasker(nil).Empty())
}
