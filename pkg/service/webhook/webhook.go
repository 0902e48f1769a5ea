package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/aegis/pkg/domain/interfaces"
	"github.com/secmon-lab/aegis/pkg/domain/model"
	"github.com/secmon-lab/aegis/pkg/domain/types"
	"github.com/secmon-lab/aegis/pkg/utils/logging"
	"github.com/secmon-lab/aegis/pkg/utils/metrics"
	"github.com/secmon-lab/aegis/pkg/utils/safe"
	"golang.org/x/time/rate"
)

const (
	DefaultTimeout = 10 * time.Second
	DefaultRate    = rate.Limit(5)
	DefaultBurst   = 10
)

// Paths maps each event to the path of the automation flow receiving it
var Paths = map[types.EventType]string{
	types.EventIncidentRegistered:      "/incidente-registrado",
	types.EventEPPExpiryAlert:          "/alerta-epp-vencimiento",
	types.EventTrainingReminder:        "/recordatorio-capacitacion",
	types.EventDocumentReviewDue:       "/documento-revision",
	types.EventCriticalRiskIdentified:  "/riesgo-critico",
	types.EventCorrectiveActionOverdue: "/incidente-registrado",
}

// Client posts JSON events to an automation webhook base URL
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	now     func() time.Time
}

var (
	_ interfaces.Notifier = &Client{}
	_ interfaces.Pinger   = &Client{}
)

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(x *Client) {
		x.http = c
	}
}

// WithRateLimit bounds outgoing requests per second
func WithRateLimit(r rate.Limit, burst int) Option {
	return func(x *Client) {
		x.limiter = rate.NewLimiter(r, burst)
	}
}

func WithClock(now func() time.Time) Option {
	return func(x *Client) {
		x.now = now
	}
}

func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, goerr.New("webhook base URL is required")
	}
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		return nil, goerr.New("webhook base URL must be http or https", goerr.V("url", baseURL))
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		limiter: rate.NewLimiter(DefaultRate, DefaultBurst),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Send posts payload plus a timestamp to the path of event
func (c *Client) Send(ctx context.Context, event types.EventType, payload any) error {
	path, ok := Paths[event]
	if !ok {
		return goerr.Wrap(model.ErrInvalidInput, "unknown notification event", goerr.V(model.EventKey, event))
	}

	body, err := model.ToPayload(payload)
	if err != nil {
		return goerr.Wrap(err, "failed to build webhook payload", goerr.V(model.EventKey, event))
	}
	body["timestamp"] = c.now().UTC().Format(time.RFC3339)

	err = c.post(ctx, path, body)
	metrics.NotificationsTotal.WithLabelValues("webhook", string(event), metrics.Result(err)).Inc()
	if err != nil {
		return goerr.Wrap(err, "failed to deliver webhook", goerr.V(model.EventKey, event))
	}
	return nil
}

// Ping posts a test message to every event path and reports each failure
func (c *Client) Ping(ctx context.Context) error {
	seen := map[string]bool{}
	var errs []error
	for _, event := range types.AllEventTypes() {
		path := Paths[event]
		if seen[path] {
			continue
		}
		seen[path] = true

		body := model.Payload{
			"test":      true,
			"timestamp": c.now().UTC().Format(time.RFC3339),
		}
		if err := c.post(ctx, path, body); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (c *Client) post(ctx context.Context, path string, body model.Payload) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal webhook body", goerr.V(model.PathKey, path))
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return goerr.Wrap(err, "webhook rate limiter wait cancelled", goerr.V(model.PathKey, path))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return goerr.Wrap(err, "failed to build webhook request", goerr.V(model.PathKey, path))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return goerr.Wrap(model.ErrRemoteUnavailable, "webhook request failed",
			goerr.V(model.PathKey, path), goerr.V("cause", err.Error()))
	}
	defer safe.Close(ctx, resp.Body)
	safe.Drain(ctx, resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return goerr.Wrap(model.ErrRemoteUnavailable, "webhook returned unexpected status",
			goerr.V(model.PathKey, path), goerr.V("status", resp.StatusCode))
	}

	logging.From(ctx).Debug("webhook delivered", "path", path, "status", resp.StatusCode)
	return nil
}
