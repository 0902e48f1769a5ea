package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/aegis/pkg/domain/model"
	"github.com/secmon-lab/aegis/pkg/domain/types"
	"github.com/secmon-lab/aegis/pkg/repository/memory"
	"github.com/secmon-lab/aegis/pkg/service/report"
	"github.com/secmon-lab/aegis/pkg/service/storage"
	"github.com/secmon-lab/aegis/pkg/usecase"
	"github.com/secmon-lab/aegis/pkg/utils/async"
)

var testNow = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

type sentEvent struct {
	Event   types.EventType
	Payload model.Payload
}

type mockNotifier struct {
	mu     sync.Mutex
	events []sentEvent
	err    error
}

func (m *mockNotifier) Send(_ context.Context, event types.EventType, payload any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	p, _ := payload.(model.Payload)
	m.events = append(m.events, sentEvent{Event: event, Payload: p})
	return nil
}

func (m *mockNotifier) Events(event types.EventType) []sentEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []sentEvent
	for _, e := range m.events {
		if e.Event == event {
			out = append(out, e)
		}
	}
	return out
}

type failingStorage struct{}

func (failingStorage) Upload(context.Context, types.Bucket, string, []byte, string) (string, error) {
	return "", goerr.Wrap(model.ErrRemoteUnavailable, "bucket is down")
}

func (failingStorage) Delete(context.Context, types.Bucket, string) error {
	return goerr.Wrap(model.ErrRemoteUnavailable, "bucket is down")
}

type testEnv struct {
	uc       *usecase.UseCases
	repo     *memory.Memory
	notifier *mockNotifier
	storage  *storage.Memory
}

func newTestEnv(t *testing.T, opts ...usecase.Option) *testEnv {
	t.Helper()
	env := &testEnv{
		repo:     memory.New(),
		notifier: &mockNotifier{},
		storage:  storage.NewMemory("https://storage.example.test"),
	}
	base := []usecase.Option{
		usecase.WithNotifier(env.notifier),
		usecase.WithStorage(env.storage),
		usecase.WithRenderer(report.New()),
		usecase.WithDispatcher(async.Inline),
		usecase.WithClock(func() time.Time { return testNow }),
	}
	env.uc = usecase.New(env.repo, append(base, opts...)...)
	return env
}

// asUser returns a context signed in with the given role
func asUser(id string, role types.Role) context.Context {
	return model.WithAuthContext(context.Background(), &model.AuthContext{
		UserID: id,
		Email:  id + "@example.com",
		Role:   role,
	})
}

func pdf(name string) usecase.Attachment {
	return usecase.Attachment{Filename: name, ContentType: "application/pdf", Data: []byte("%PDF-1.4 test")}
}
