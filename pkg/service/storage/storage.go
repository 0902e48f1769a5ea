package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/aegis/pkg/domain/interfaces"
	"github.com/secmon-lab/aegis/pkg/domain/model"
	"github.com/secmon-lab/aegis/pkg/domain/types"
)

// DefaultPublicBaseURL serves objects of public buckets
const DefaultPublicBaseURL = "https://storage.googleapis.com"

// Buckets maps logical buckets to Cloud Storage bucket names
type Buckets map[types.Bucket]string

// GCS stores files in Cloud Storage and returns their public URL
type GCS struct {
	client  *storage.Client
	buckets Buckets
	baseURL string
}

var _ interfaces.ObjectStorage = &GCS{}

type Option func(*GCS)

// WithPublicBaseURL changes the host used to build returned URLs
func WithPublicBaseURL(base string) Option {
	return func(g *GCS) {
		g.baseURL = strings.TrimRight(base, "/")
	}
}

func NewGCS(ctx context.Context, buckets Buckets, opts ...Option) (*GCS, error) {
	for _, b := range types.AllBuckets() {
		if buckets[b] == "" {
			return nil, goerr.New("bucket name is not configured", goerr.V(model.BucketKey, b))
		}
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client")
	}

	g := &GCS{
		client:  client,
		buckets: buckets,
		baseURL: DefaultPublicBaseURL,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

func (g *GCS) bucketName(bucket types.Bucket) (string, error) {
	name, ok := g.buckets[bucket]
	if !ok {
		return "", goerr.Wrap(model.ErrInvalidInput, "unknown bucket", goerr.V(model.BucketKey, bucket))
	}
	return name, nil
}

func (g *GCS) Upload(ctx context.Context, bucket types.Bucket, path string, data []byte, contentType string) (string, error) {
	name, err := g.bucketName(bucket)
	if err != nil {
		return "", err
	}

	w := g.client.Bucket(name).Object(path).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", goerr.Wrap(model.ErrRemoteUnavailable, "failed to write object",
			goerr.V(model.BucketKey, name), goerr.V(model.PathKey, path), goerr.V("cause", err.Error()))
	}
	if err := w.Close(); err != nil {
		return "", goerr.Wrap(model.ErrRemoteUnavailable, "failed to finish object upload",
			goerr.V(model.BucketKey, name), goerr.V(model.PathKey, path), goerr.V("cause", err.Error()))
	}

	return PublicURL(g.baseURL, name, path), nil
}

func (g *GCS) Delete(ctx context.Context, bucket types.Bucket, path string) error {
	name, err := g.bucketName(bucket)
	if err != nil {
		return err
	}
	if err := g.client.Bucket(name).Object(path).Delete(ctx); err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return goerr.Wrap(model.ErrNotFound, "object not found",
				goerr.V(model.BucketKey, name), goerr.V(model.PathKey, path))
		}
		return goerr.Wrap(err, "failed to delete object",
			goerr.V(model.BucketKey, name), goerr.V(model.PathKey, path))
	}
	return nil
}

func (g *GCS) Close() error {
	return g.client.Close()
}

// PublicURL builds the URL of an object. Path segments are escaped.
func PublicURL(base, bucket, path string) string {
	segments := strings.Split(path, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return fmt.Sprintf("%s/%s/%s", base, bucket, strings.Join(segments, "/"))
}
