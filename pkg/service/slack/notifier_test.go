package slack_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/aegis/pkg/domain/model"
	"github.com/secmon-lab/aegis/pkg/domain/types"
	"github.com/secmon-lab/aegis/pkg/service/slack"
)

func TestNew(t *testing.T) {
	t.Run("returns error when token is empty", func(t *testing.T) {
		_, err := slack.New("", "C123")
		gt.Value(t, err).NotNil()
	})

	t.Run("returns error when channel is empty", func(t *testing.T) {
		_, err := slack.New("xoxb-test", "")
		gt.Value(t, err).NotNil()
	})

	t.Run("default events", func(t *testing.T) {
		n, err := slack.New("xoxb-test", "C123")
		gt.NoError(t, err).Required()
		gt.True(t, n.Accepts(types.EventCriticalRiskIdentified))
		gt.False(t, n.Accepts(types.EventTrainingReminder))
	})
}

func newSlackAPI(t *testing.T, ok bool) (*httptest.Server, func() []string) {
	var (
		mu    sync.Mutex
		calls []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		mu.Lock()
		calls = append(calls, r.URL.Path+"?channel="+r.Form.Get("channel"))
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if ok {
			_, _ = w.Write([]byte(`{"ok":true,"channel":"C123","ts":"1700000000.000100"}`))
		} else {
			_, _ = w.Write([]byte(`{"ok":false,"error":"channel_not_found"}`))
		}
	}))
	t.Cleanup(srv.Close)

	return srv, func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), calls...)
	}
}

func TestSend(t *testing.T) {
	t.Run("posts accepted events", func(t *testing.T) {
		srv, calls := newSlackAPI(t, true)
		n, err := slack.New("xoxb-test", "C123", slack.WithAPIURL(srv.URL+"/"))
		gt.NoError(t, err).Required()

		err = n.Send(context.Background(), types.EventCriticalRiskIdentified, model.Payload{"code": "RISK-1", "score": 20})
		gt.NoError(t, err).Required()
		gt.A(t, calls()).Length(1)
		gt.Value(t, calls()[0]).Equal("/chat.postMessage?channel=C123")
	})

	t.Run("skips other events", func(t *testing.T) {
		srv, calls := newSlackAPI(t, true)
		n, err := slack.New("xoxb-test", "C123", slack.WithAPIURL(srv.URL+"/"))
		gt.NoError(t, err).Required()

		gt.NoError(t, n.Send(context.Background(), types.EventTrainingReminder, model.Payload{}))
		gt.A(t, calls()).Length(0)
	})

	t.Run("API error becomes remote unavailable", func(t *testing.T) {
		srv, _ := newSlackAPI(t, false)
		n, err := slack.New("xoxb-test", "C123",
			slack.WithAPIURL(srv.URL+"/"),
			slack.WithEvents(types.EventEPPExpiryAlert))
		gt.NoError(t, err).Required()

		err = n.Send(context.Background(), types.EventEPPExpiryAlert, model.Payload{"code": "EPP-1"})
		gt.Error(t, err).Is(model.ErrRemoteUnavailable)
	})
}

func TestBuildMessage(t *testing.T) {
	blocks, text := slack.BuildMessage(types.EventIncidentRegistered, model.Payload{
		"code": "INC-1",
		"area": "plant",
	})
	gt.A(t, blocks).Length(3)
	gt.True(t, strings.Contains(text, "Incident registered"))
}

func TestTruncateToMaxBytes(t *testing.T) {
	gt.Value(t, slack.TruncateToMaxBytes("short", 10)).Equal("short")

	s := strings.Repeat("ñ", 10)
	got := slack.TruncateToMaxBytes(s, 9)
	gt.True(t, len(got) <= 9)
	gt.True(t, utf8.ValidString(got))
	gt.True(t, strings.HasSuffix(got, "…"))
}
