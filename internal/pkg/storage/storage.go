// Package storage puts attendance exports in a bucket and hands out
// time-limited download links. S3, Google Cloud Storage and MinIO are
// supported.
package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	// ErrMissingSigner is returned by PresignGet on GCS without signer keys.
	ErrMissingSigner = errors.New("storage: signed url signer not configured")
	ErrUnknownDriver = errors.New("storage: unknown driver")
)

type Storage interface {
	io.Closer

	PutObject(ctx context.Context, bucket, key string, r io.Reader, opts PutOptions) (ObjectInfo, error)
	DeleteObject(ctx context.Context, bucket, key string) error
	// PresignGet returns a URL that downloads the object until expiry.
	PresignGet(ctx context.Context, bucket, key string, expiry time.Duration) (string, error)
	BucketExists(ctx context.Context, bucket string) (bool, error)
}

// PutOptions describes an upload. A Size of 0 means unknown.
type PutOptions struct {
	Size               int64
	ContentType        string
	ContentDisposition string
	Metadata           map[string]string
}

type ObjectInfo struct {
	Bucket string
	Key    string
	Size   int64
	ETag   string
}
