package interfaces

import (
	"context"

	"github.com/secmon-lab/aegis/pkg/domain/model"
	"github.com/secmon-lab/aegis/pkg/domain/types"
)

// ObjectStorage stores uploaded files and returns their public URL
type ObjectStorage interface {
	Upload(ctx context.Context, bucket types.Bucket, path string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, bucket types.Bucket, path string) error
}

// Notifier delivers an event to an external system. Callers treat failures
// as warnings.
type Notifier interface {
	Send(ctx context.Context, event types.EventType, payload any) error
}

// Pinger is implemented by notifiers that can check their endpoints
type Pinger interface {
	Ping(ctx context.Context) error
}

// ReportRenderer turns a report into a file of the given format
type ReportRenderer interface {
	Render(ctx context.Context, report *model.Report, format types.ReportFormat) ([]byte, error)
}
