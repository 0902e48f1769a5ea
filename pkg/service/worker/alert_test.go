package worker_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/aegis/pkg/service/worker"
	"github.com/secmon-lab/aegis/pkg/usecase"
)

type mockScanner struct {
	calls atomic.Int32
	fail  atomic.Bool
}

func (m *mockScanner) Scan(ctx context.Context) (*usecase.AlertSummary, error) {
	m.calls.Add(1)
	if m.fail.Load() {
		return nil, goerr.New("store unavailable")
	}
	return &usecase.AlertSummary{EPPExpiry: 1}, nil
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestAlertWorker_InitialScan(t *testing.T) {
	scanner := &mockScanner{}
	w := worker.NewAlertWorker(scanner, time.Hour)

	w.Start(context.Background())
	waitFor(t, func() bool { return scanner.calls.Load() >= 1 })
	w.Stop()

	gt.Value(t, scanner.calls.Load()).Equal(int32(1))
}

func TestAlertWorker_Ticks(t *testing.T) {
	scanner := &mockScanner{}
	w := worker.NewAlertWorker(scanner, 10*time.Millisecond)

	w.Start(context.Background())
	waitFor(t, func() bool { return scanner.calls.Load() >= 3 })
	w.Stop()
}

func TestAlertWorker_KeepsRunningAfterFailure(t *testing.T) {
	scanner := &mockScanner{}
	scanner.fail.Store(true)
	w := worker.NewAlertWorker(scanner, 10*time.Millisecond)

	w.Start(context.Background())
	waitFor(t, func() bool { return scanner.calls.Load() >= 2 })
	scanner.fail.Store(false)
	waitFor(t, func() bool { return scanner.calls.Load() >= 4 })
	w.Stop()
}

func TestAlertWorker_ContextCancel(t *testing.T) {
	scanner := &mockScanner{}
	ctx, cancel := context.WithCancel(context.Background())
	w := worker.NewAlertWorker(scanner, time.Hour)

	w.Start(ctx)
	waitFor(t, func() bool { return scanner.calls.Load() >= 1 })
	cancel()

	done := make(chan struct{})
	go func() {
		w.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}

func TestNewAlertWorker_DefaultInterval(t *testing.T) {
	scanner := &mockScanner{}
	w := worker.NewAlertWorker(scanner, 0)
	w.Start(context.Background())
	waitFor(t, func() bool { return scanner.calls.Load() >= 1 })
	w.Stop()
	gt.Value(t, scanner.calls.Load()).Equal(int32(1))
}
