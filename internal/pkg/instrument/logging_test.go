package instrument

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLevel(" WARN "))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
	assert.Equal(t, slog.LevelInfo, parseLevel("loud"))
}

func TestMaskHandlerAndContext(t *testing.T) {
	var buf bytes.Buffer
	sink := slog.NewJSONHandler(&buf, nil)
	logger := slog.New(&contextHandler{
		Handler: &maskHandler{next: sink, masker: NewMasker([]string{"phone_number"})},
		service: "vocatrack",
	})

	ctx := SetCorrelationID(context.Background(), "cid-1")
	logger.With("phone_number", "+62811").InfoContext(ctx, "ivr call queued",
		"body", `{"phone_number":"+62811","trainee_name":"Sari"}`,
		"trainee", map[string]any{"phone_number": "+62812"},
	)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))

	assert.Equal(t, "vocatrack", rec["service"])
	assert.Equal(t, "cid-1", rec["_cID"])
	assert.Equal(t, Redacted, rec["phone_number"])
	assert.JSONEq(t, `{"phone_number":"***","trainee_name":"Sari"}`, rec["body"].(string))
	assert.Equal(t, map[string]any{"phone_number": Redacted}, rec["trainee"])
	assert.NotContains(t, rec, "trace_id")
}
