package worker

import (
	"context"
	"time"

	"github.com/secmon-lab/aegis/pkg/usecase"
	"github.com/secmon-lab/aegis/pkg/utils/errutil"
	"github.com/secmon-lab/aegis/pkg/utils/logging"
)

// DefaultAlertInterval is the scan period when none is configured
const DefaultAlertInterval = time.Hour

// AlertScanner runs one alert scan
type AlertScanner interface {
	Scan(ctx context.Context) (*usecase.AlertSummary, error)
}

// AlertWorker runs the alert scan in the background on a fixed interval.
//
// It assumes a single server instance. Several replicas would each send
// their own alerts.
type AlertWorker struct {
	scanner  AlertScanner
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

func NewAlertWorker(scanner AlertScanner, interval time.Duration) *AlertWorker {
	if interval <= 0 {
		interval = DefaultAlertInterval
	}
	return &AlertWorker{
		scanner:  scanner,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start launches the loop. The first scan runs right away without
// blocking the caller.
func (w *AlertWorker) Start(ctx context.Context) {
	logging.From(ctx).Info("alert worker starting", "interval", w.interval.String())
	go w.run(ctx)
}

// Stop signals the loop and waits for the current scan to finish
func (w *AlertWorker) Stop() {
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("alert worker stopped")
}

func (w *AlertWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	w.scan(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.scan(ctx)

		case <-w.stopCh:
			return

		case <-ctx.Done():
			logging.From(ctx).Info("alert worker context cancelled")
			return
		}
	}
}

// scan failures are logged and retried on the next tick
func (w *AlertWorker) scan(ctx context.Context) {
	start := time.Now()
	summary, err := w.scanner.Scan(ctx)
	if err != nil {
		_ = errutil.Handle(ctx, err, "alert scan failed")
		return
	}
	logging.From(ctx).Debug("alert scan completed",
		"alerts", summary.Total(),
		"failed", summary.Failed,
		"duration", time.Since(start).String())
}
