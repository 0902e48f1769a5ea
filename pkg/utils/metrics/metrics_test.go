package metrics_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/secmon-lab/aegis/pkg/utils/metrics"
)

func TestResult(t *testing.T) {
	gt.Value(t, metrics.Result(nil)).Equal(metrics.ResultSuccess)
	gt.Value(t, metrics.Result(errors.New("x"))).Equal(metrics.ResultFailure)
}

func TestHandlerExposesCounters(t *testing.T) {
	c := metrics.NotificationsTotal.WithLabelValues("test", "incident_registered", metrics.ResultSuccess)
	before := testutil.ToFloat64(c)
	c.Inc()
	gt.Value(t, testutil.ToFloat64(c)).Equal(before + 1)

	srv := httptest.NewServer(metrics.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	gt.NoError(t, err).Required()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	gt.NoError(t, err).Required()
	gt.True(t, strings.Contains(string(body), "aegis_notifications_total"))
}
