package strcase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToLowerSnake(t *testing.T) {
	tests := map[string]string{
		"":             "",
		"Code":         "code",
		"ClaimantID":   "claimant_id",
		"ClaimantName": "claimant_name",
		"PhoneNumber":  "phone_number",
		"HTTPServer":   "http_server",
		"E164":         "e164",
		"otp2Code":     "otp2_code",
	}

	for in, want := range tests {
		assert.Equal(t, want, ToLowerSnake(in), in)
	}
}
