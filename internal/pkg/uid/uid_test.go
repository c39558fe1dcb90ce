package uid

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnowflake_Generate(t *testing.T) {
	gen, err := NewSnowflakeNode(7)
	require.NoError(t, err)

	prev := gen.Generate()
	for range 100 {
		next := gen.Generate()
		assert.Greater(t, next, prev)
		prev = next
	}
}

func TestNewSnowflakeNode_OutOfRange(t *testing.T) {
	_, err := NewSnowflakeNode(4096)
	assert.Error(t, err)
}

func TestUUID_Generate(t *testing.T) {
	id := NewUUID().Generate()

	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}
