// Package config reads typed values from the service configuration.
package config

import (
	"io"
	"time"
)

// Config is the read-only view of the configuration used across the
// application. Missing keys return the zero value of the requested type.
type Config interface {
	io.Closer

	GetInt(key string) int
	GetInt32(key string) int32
	GetInt64(key string) int64
	GetUint(key string) uint
	GetUint32(key string) uint32
	GetFloat64(key string) float64
	GetBool(key string) bool
	GetString(key string) string

	// GetSecond, GetMinute and GetHour read an integer and scale it to a
	// duration in the named unit.
	GetSecond(key string) time.Duration
	GetMinute(key string) time.Duration
	GetHour(key string) time.Duration

	// GetBinary decodes a base64 value. It returns nil on malformed input.
	GetBinary(key string) []byte

	// GetArray splits a comma separated value, trimming blanks and dropping
	// empty items.
	GetArray(key string) []string

	// GetMap parses "k:v,k:v" pairs.
	GetMap(key string) map[string]string
}
