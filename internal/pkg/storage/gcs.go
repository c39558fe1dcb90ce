package storage

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	gcs "cloud.google.com/go/storage"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
)

// GCS stores objects in Google Cloud Storage.
type GCS struct {
	client         *gcs.Client
	googleAccessID string
	privateKey     []byte
}

// GCSOptions configures the client. CredentialsJSON takes precedence over
// application default credentials; the signer fields enable PresignGet.
type GCSOptions struct {
	CredentialsJSON []byte
	Endpoint        string
	WithoutAuth     bool

	SignerAccessID   string
	SignerPrivateKey []byte
}

func NewGCS(ctx context.Context, opts GCSOptions) (*GCS, error) {
	var clientOpts []option.ClientOption
	if opts.WithoutAuth {
		clientOpts = append(clientOpts, option.WithoutAuthentication())
	}
	if len(opts.CredentialsJSON) > 0 {
		creds, err := google.CredentialsFromJSON(ctx, opts.CredentialsJSON, gcs.ScopeReadWrite)
		if err != nil {
			return nil, err
		}
		clientOpts = append(clientOpts, option.WithCredentials(creds))
	}
	if opts.Endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(opts.Endpoint))
	}

	client, err := gcs.NewClient(ctx, clientOpts...)
	if err != nil {
		return nil, err
	}

	return &GCS{
		client:         client,
		googleAccessID: opts.SignerAccessID,
		privateKey:     opts.SignerPrivateKey,
	}, nil
}

func (g *GCS) PutObject(ctx context.Context, bucket, key string, r io.Reader, opts PutOptions) (ObjectInfo, error) {
	writer := g.client.Bucket(bucket).Object(key).NewWriter(ctx)
	writer.ContentType = opts.ContentType
	writer.ContentDisposition = opts.ContentDisposition
	writer.Metadata = opts.Metadata

	if _, err := io.Copy(writer, r); err != nil {
		_ = writer.Close()
		return ObjectInfo{}, err
	}
	if err := writer.Close(); err != nil {
		return ObjectInfo{}, err
	}

	info := ObjectInfo{Bucket: bucket, Key: key, Size: opts.Size}
	if attrs := writer.Attrs(); attrs != nil {
		info.Size = attrs.Size
		info.ETag = attrs.Etag
	}
	return info, nil
}

func (g *GCS) DeleteObject(ctx context.Context, bucket, key string) error {
	return g.client.Bucket(bucket).Object(key).Delete(ctx)
}

func (g *GCS) PresignGet(_ context.Context, bucket, key string, expiry time.Duration) (string, error) {
	if g.googleAccessID == "" || len(g.privateKey) == 0 {
		return "", ErrMissingSigner
	}
	return gcs.SignedURL(bucket, key, &gcs.SignedURLOptions{
		Method:         http.MethodGet,
		Expires:        time.Now().Add(expiry),
		GoogleAccessID: g.googleAccessID,
		PrivateKey:     g.privateKey,
		Scheme:         gcs.SigningSchemeV4,
	})
}

func (g *GCS) BucketExists(ctx context.Context, bucket string) (bool, error) {
	_, err := g.client.Bucket(bucket).Attrs(ctx)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, gcs.ErrBucketNotExist):
		return false, nil
	default:
		return false, err
	}
}

func (g *GCS) Close() error {
	return g.client.Close()
}
