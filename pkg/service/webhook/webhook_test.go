package webhook_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/aegis/pkg/domain/model"
	"github.com/secmon-lab/aegis/pkg/domain/types"
	"github.com/secmon-lab/aegis/pkg/service/webhook"
)

type received struct {
	path string
	body map[string]any
}

func newServer(t *testing.T, status int) (*httptest.Server, func() []received) {
	var (
		mu  sync.Mutex
		got []received
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		mu.Lock()
		got = append(got, received{path: r.URL.Path, body: body})
		mu.Unlock()
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)

	return srv, func() []received {
		mu.Lock()
		defer mu.Unlock()
		return append([]received(nil), got...)
	}
}

var fixedNow = time.Date(2026, 5, 4, 10, 30, 0, 0, time.UTC)

func TestSendAddsTimestamp(t *testing.T) {
	srv, got := newServer(t, http.StatusCreated)
	c, err := webhook.New(srv.URL+"/", webhook.WithClock(func() time.Time { return fixedNow }))
	gt.NoError(t, err).Required()

	err = c.Send(context.Background(), types.EventIncidentRegistered, model.Payload{
		"code": "INC-20260504103000",
		"area": "plant",
	})
	gt.NoError(t, err).Required()

	reqs := got()
	gt.A(t, reqs).Length(1).Required()
	gt.Value(t, reqs[0].path).Equal("/incidente-registrado")
	gt.Value(t, reqs[0].body["code"]).Equal(any("INC-20260504103000"))
	gt.Value(t, reqs[0].body["timestamp"]).Equal(any("2026-05-04T10:30:00Z"))
}

func TestSendPaths(t *testing.T) {
	srv, got := newServer(t, http.StatusOK)
	c, err := webhook.New(srv.URL)
	gt.NoError(t, err).Required()

	type alert struct {
		Code string `json:"code"`
	}
	gt.NoError(t, c.Send(context.Background(), types.EventCriticalRiskIdentified, alert{Code: "RISK-1"}))
	gt.NoError(t, c.Send(context.Background(), types.EventCorrectiveActionOverdue, alert{Code: "INC-1"}))

	reqs := got()
	gt.A(t, reqs).Length(2).Required()
	gt.Value(t, reqs[0].path).Equal("/riesgo-critico")
	gt.Value(t, reqs[0].body["code"]).Equal(any("RISK-1"))
	gt.Value(t, reqs[1].path).Equal("/incidente-registrado")
}

func TestSendFailures(t *testing.T) {
	t.Run("non success status", func(t *testing.T) {
		srv, _ := newServer(t, http.StatusAccepted)
		c, err := webhook.New(srv.URL)
		gt.NoError(t, err).Required()

		err = c.Send(context.Background(), types.EventTrainingReminder, model.Payload{})
		gt.Error(t, err).Is(model.ErrRemoteUnavailable)
	})

	t.Run("unreachable host", func(t *testing.T) {
		srv, _ := newServer(t, http.StatusOK)
		url := srv.URL
		srv.Close()

		c, err := webhook.New(url, webhook.WithHTTPClient(&http.Client{Timeout: time.Second}))
		gt.NoError(t, err).Required()
		err = c.Send(context.Background(), types.EventDocumentReviewDue, model.Payload{})
		gt.Error(t, err).Is(model.ErrRemoteUnavailable)
	})

	t.Run("unknown event", func(t *testing.T) {
		srv, _ := newServer(t, http.StatusOK)
		c, err := webhook.New(srv.URL)
		gt.NoError(t, err).Required()
		err = c.Send(context.Background(), types.EventType("unknown"), model.Payload{})
		gt.Error(t, err).Is(model.ErrInvalidInput)
	})
}

func TestPing(t *testing.T) {
	srv, got := newServer(t, http.StatusOK)
	c, err := webhook.New(srv.URL)
	gt.NoError(t, err).Required()

	gt.NoError(t, c.Ping(context.Background())).Required()

	reqs := got()
	// corrective action alerts share the incident path
	gt.A(t, reqs).Length(len(types.AllEventTypes()) - 1)
	for _, r := range reqs {
		gt.Value(t, r.body["test"]).Equal(any(true))
	}
}

func TestNewRejectsBadURL(t *testing.T) {
	_, err := webhook.New("")
	gt.Error(t, err)
	_, err = webhook.New("ftp://example.com")
	gt.Error(t, err)
}
