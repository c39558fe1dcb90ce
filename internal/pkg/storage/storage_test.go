package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromDriver_Unknown(t *testing.T) {
	_, err := NewFromDriver(context.Background(), "ftp", FactoryOptions{})
	assert.ErrorIs(t, err, ErrUnknownDriver)
}

func TestS3_PresignGet(t *testing.T) {
	stg, err := NewFromDriver(context.Background(), " S3 ", FactoryOptions{S3: S3Options{
		Endpoint:     "http://localhost:9000",
		AccessKey:    "minio",
		SecretKey:    "minio123",
		UsePathStyle: true,
	}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = stg.Close() })

	url, err := stg.PresignGet(context.Background(), "attendance", "exports/a.csv", 15*time.Minute)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://localhost:9000/attendance/exports/a.csv?"))
	assert.Contains(t, url, "X-Amz-Expires=900")
}

func TestMinIO_PresignGet(t *testing.T) {
	stg, err := NewMinIO(MinIOOptions{
		Endpoint:  "localhost:9000",
		AccessKey: "minio",
		SecretKey: "minio123",
		Region:    "us-east-1",
	})
	require.NoError(t, err)

	url, err := stg.PresignGet(context.Background(), "attendance", "exports/a.csv", time.Hour)
	require.NoError(t, err)
	assert.Contains(t, url, "/attendance/exports/a.csv")
	assert.Contains(t, url, "X-Amz-Expires=3600")
}

func TestGCS_PresignGetWithoutSigner(t *testing.T) {
	stg, err := NewGCS(context.Background(), GCSOptions{WithoutAuth: true, Endpoint: "http://localhost:4443/storage/v1/"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = stg.Close() })

	_, err = stg.PresignGet(context.Background(), "attendance", "exports/a.csv", time.Minute)
	assert.ErrorIs(t, err, ErrMissingSigner)
}
