package usecase

import (
	"context"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/aegis/pkg/domain/model"
	"github.com/secmon-lab/aegis/pkg/domain/types"
	"github.com/secmon-lab/aegis/pkg/utils/errutil"
	"github.com/secmon-lab/aegis/pkg/utils/metrics"
)

// Attachment is a file sent along with a record
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// objectName builds a collision free object path under prefix
func objectName(prefix, filename string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, path.Base(filename))
	if name == "" || name == "." || name == "_" {
		name = "file"
	}
	return prefix + "/" + uuid.NewString() + "-" + name
}

// upload stores a file and returns its URL. A failure is logged and
// returned so the caller can record a warning.
func (b *base) upload(ctx context.Context, bucket types.Bucket, prefix string, a Attachment) (string, error) {
	if b.storage == nil {
		return "", goerr.Wrap(model.ErrRemoteUnavailable, "object storage is not configured", goerr.V(model.BucketKey, bucket))
	}
	if len(a.Data) == 0 {
		return "", goerr.Wrap(model.ErrInvalidInput, "attachment is empty", goerr.V("filename", a.Filename))
	}

	contentType := a.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := b.storage.Upload(ctx, bucket, objectName(prefix, a.Filename), a.Data, contentType)
	metrics.UploadsTotal.WithLabelValues(string(bucket), metrics.Result(err)).Inc()
	if err != nil {
		errutil.Warn(ctx, err, "upload failed")
		return "", err
	}
	return url, nil
}

// uploadAll uploads every attachment, keeping the URLs that succeeded
func (b *base) uploadAll(ctx context.Context, bucket types.Bucket, prefix string, files []Attachment, warn func(string)) []string {
	var urls []string
	for _, f := range files {
		url, err := b.upload(ctx, bucket, prefix, f)
		if err != nil {
			warn("upload of " + f.Filename + " failed")
			continue
		}
		urls = append(urls, url)
	}
	return urls
}
