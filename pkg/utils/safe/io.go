package safe

import (
	"context"
	"io"
	"log/slog"

	"github.com/secmon-lab/aegis/pkg/utils/logging"
)

// Close closes c and logs the error, if any. nil is accepted.
func Close(ctx context.Context, c io.Closer) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		logging.From(ctx).Warn("close failed", slog.Any("error", err))
	}
}

// Write writes data to w and logs a failed or short write.
func Write(ctx context.Context, w io.Writer, data []byte) {
	if w == nil {
		return
	}
	n, err := w.Write(data)
	if err != nil {
		logging.From(ctx).Warn("write failed", slog.Any("error", err), slog.Int("written", n))
	}
}

// Drain discards the rest of r so the underlying connection can be reused.
func Drain(ctx context.Context, r io.Reader) {
	if r == nil {
		return
	}
	if _, err := io.Copy(io.Discard, r); err != nil {
		logging.From(ctx).Debug("drain failed", slog.Any("error", err))
	}
}
