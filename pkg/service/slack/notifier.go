package slack

import (
	"context"
	"slices"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/aegis/pkg/domain/interfaces"
	"github.com/secmon-lab/aegis/pkg/domain/model"
	"github.com/secmon-lab/aegis/pkg/domain/types"
	"github.com/secmon-lab/aegis/pkg/utils/metrics"
	"github.com/slack-go/slack"
)

// DefaultEvents are the events posted to Slack unless WithEvents is given
var DefaultEvents = []types.EventType{
	types.EventCriticalRiskIdentified,
	types.EventIncidentRegistered,
	types.EventCorrectiveActionOverdue,
}

// Notifier posts notifications as Block Kit messages to one channel
type Notifier struct {
	api     *slack.Client
	channel string
	events  []types.EventType
}

var (
	_ interfaces.Notifier = &Notifier{}
	_ interfaces.Pinger   = &Notifier{}
)

type Option func(*notifierConfig)

type notifierConfig struct {
	apiURL string
	events []types.EventType
}

// WithAPIURL points the client at another Slack API endpoint
func WithAPIURL(url string) Option {
	return func(c *notifierConfig) {
		c.apiURL = url
	}
}

// WithEvents selects the events posted to the channel
func WithEvents(events ...types.EventType) Option {
	return func(c *notifierConfig) {
		c.events = events
	}
}

// New creates a notifier with the provided bot token and channel ID
func New(token, channel string, opts ...Option) (*Notifier, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}
	if channel == "" {
		return nil, goerr.New("Slack channel is required")
	}

	cfg := notifierConfig{events: DefaultEvents}
	for _, opt := range opts {
		opt(&cfg)
	}

	var clientOpts []slack.Option
	if cfg.apiURL != "" {
		clientOpts = append(clientOpts, slack.OptionAPIURL(cfg.apiURL))
	}

	return &Notifier{
		api:     slack.New(token, clientOpts...),
		channel: channel,
		events:  cfg.events,
	}, nil
}

// Accepts reports whether event is posted by this notifier
func (n *Notifier) Accepts(event types.EventType) bool {
	return slices.Contains(n.events, event)
}

// Send posts the event. Events outside the configured set are dropped.
func (n *Notifier) Send(ctx context.Context, event types.EventType, payload any) error {
	if !n.Accepts(event) {
		return nil
	}

	p, err := model.ToPayload(payload)
	if err != nil {
		return goerr.Wrap(err, "failed to build Slack message", goerr.V(model.EventKey, event))
	}

	blocks, text := buildMessage(event, p)
	_, _, err = n.api.PostMessageContext(ctx, n.channel,
		slack.MsgOptionBlocks(blocks...),
		slack.MsgOptionText(text, false),
	)
	metrics.NotificationsTotal.WithLabelValues("slack", string(event), metrics.Result(err)).Inc()
	if err != nil {
		return goerr.Wrap(model.ErrRemoteUnavailable, "failed to post message to Slack",
			goerr.V(model.EventKey, event), goerr.V("cause", err.Error()))
	}
	return nil
}

// Ping checks the bot token
func (n *Notifier) Ping(ctx context.Context) error {
	if _, err := n.api.AuthTestContext(ctx); err != nil {
		return goerr.Wrap(model.ErrRemoteUnavailable, "Slack auth test failed", goerr.V("cause", err.Error()))
	}
	return nil
}
