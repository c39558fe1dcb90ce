// Package uid generates identifiers: snowflake ints for OTP records and v7
// UUID strings for correlation ids and export object keys.
package uid

import "github.com/google/uuid"

type NumberID interface {
	Generate() int64
}

type StringID interface {
	Generate() string
}

// UUID produces time-ordered v7 UUIDs.
type UUID struct{}

func NewUUID() *UUID { return &UUID{} }

func (*UUID) Generate() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}
