package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOTPStatus(t *testing.T) {
	assert.Equal(t, "pending", OTPStatusPending.String())
	assert.Equal(t, "verified", OTPStatusVerified.String())
	assert.Equal(t, "expired", OTPStatusExpired.String())
	assert.Equal(t, "unknown", OTPStatus(9).String())

	assert.Equal(t, OTPStatusExpired, OTPStatusExpired.Ensure())
	assert.Equal(t, OTPStatusUnknown, OTPStatus(-1).Ensure())
}
