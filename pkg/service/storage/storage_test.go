package storage_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/aegis/pkg/domain/model"
	"github.com/secmon-lab/aegis/pkg/domain/types"
	"github.com/secmon-lab/aegis/pkg/service/storage"
)

func TestPublicURL(t *testing.T) {
	got := storage.PublicURL(storage.DefaultPublicBaseURL, "sst-evidence", "risks/1/foto 1.jpg")
	gt.Value(t, got).Equal("https://storage.googleapis.com/sst-evidence/risks/1/foto%201.jpg")
}

func TestMemory(t *testing.T) {
	ctx := context.Background()
	m := storage.NewMemory("http://localhost:8080/files")

	u, err := m.Upload(ctx, types.BucketEvidence, "risks/1/a.jpg", []byte("img"), "image/jpeg")
	gt.NoError(t, err).Required()
	gt.Value(t, u).Equal("http://localhost:8080/files/evidence/risks/1/a.jpg")

	obj, ok := m.Get(types.BucketEvidence, "risks/1/a.jpg")
	gt.True(t, ok)
	gt.Value(t, obj.ContentType).Equal("image/jpeg")
	gt.Value(t, string(obj.Data)).Equal("img")

	_, err = m.Upload(ctx, types.Bucket("secrets"), "x", nil, "text/plain")
	gt.Error(t, err).Is(model.ErrInvalidInput)

	gt.NoError(t, m.Delete(ctx, types.BucketEvidence, "risks/1/a.jpg"))
	gt.Error(t, m.Delete(ctx, types.BucketEvidence, "risks/1/a.jpg")).Is(model.ErrNotFound)
}

func TestNewGCSRequiresAllBuckets(t *testing.T) {
	_, err := storage.NewGCS(context.Background(), storage.Buckets{types.BucketEvidence: "x"})
	gt.Error(t, err)
}

func TestGCS(t *testing.T) {
	bucket := os.Getenv("TEST_STORAGE_BUCKET")
	if bucket == "" {
		t.Skip("TEST_STORAGE_BUCKET not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	buckets := storage.Buckets{}
	for _, b := range types.AllBuckets() {
		buckets[b] = bucket
	}
	g, err := storage.NewGCS(ctx, buckets)
	gt.NoError(t, err).Required()
	t.Cleanup(func() { _ = g.Close() })

	path := "test/" + uuid.NewString() + ".txt"
	u, err := g.Upload(ctx, types.BucketDocuments, path, []byte("hello"), "text/plain")
	gt.NoError(t, err).Required()
	gt.Value(t, u).Equal(storage.PublicURL(storage.DefaultPublicBaseURL, bucket, path))
	gt.NoError(t, g.Delete(ctx, types.BucketDocuments, path))
}
