package storage

import (
	"context"
	"fmt"
	"strings"
)

const (
	DriverS3    = "s3"
	DriverGCS   = "gcs"
	DriverMinIO = "minio"
)

// FactoryOptions carries the settings of every driver; only the selected
// driver's block is read.
type FactoryOptions struct {
	S3    S3Options
	GCS   GCSOptions
	MinIO MinIOOptions
}

// NewFromDriver builds the Storage named by driver (case insensitive).
func NewFromDriver(ctx context.Context, driver string, opts FactoryOptions) (Storage, error) {
	var (
		s   Storage
		err error
	)

	switch d := strings.ToLower(strings.TrimSpace(driver)); d {
	case DriverS3:
		s, err = NewS3(ctx, opts.S3)
	case DriverGCS:
		s, err = NewGCS(ctx, opts.GCS)
	case DriverMinIO:
		s, err = NewMinIO(opts.MinIO)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: init %s: %w", driver, err)
	}
	return s, nil
}
