package config

import (
	"log/slog"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/aegis/pkg/domain/interfaces"
	"github.com/secmon-lab/aegis/pkg/domain/types"
	"github.com/secmon-lab/aegis/pkg/service/slack"
	"github.com/secmon-lab/aegis/pkg/service/webhook"
	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"
)

// Notify configures the outbound notification channels. Both are optional.
type Notify struct {
	webhookURL   string
	webhookRate  float64
	slackToken   string
	slackChannel string
	slackEvents  []string
	slackAPIURL  string
}

func (x *Notify) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "webhook-url",
			Usage:       "Base URL of the automation webhook receiving events",
			Category:    "Notification",
			Sources:     cli.EnvVars("AEGIS_WEBHOOK_URL"),
			Destination: &x.webhookURL,
		},
		&cli.FloatFlag{
			Name:        "webhook-rate",
			Usage:       "Maximum webhook requests per second",
			Category:    "Notification",
			Value:       float64(webhook.DefaultRate),
			Sources:     cli.EnvVars("AEGIS_WEBHOOK_RATE"),
			Destination: &x.webhookRate,
		},
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack bot token for posting notifications",
			Category:    "Notification",
			Sources:     cli.EnvVars("AEGIS_SLACK_BOT_TOKEN"),
			Destination: &x.slackToken,
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Slack channel ID receiving notifications",
			Category:    "Notification",
			Sources:     cli.EnvVars("AEGIS_SLACK_CHANNEL"),
			Destination: &x.slackChannel,
		},
		&cli.StringSliceFlag{
			Name:        "slack-events",
			Usage:       "Events posted to Slack (default: critical risks, incidents and overdue actions)",
			Category:    "Notification",
			Sources:     cli.EnvVars("AEGIS_SLACK_EVENTS"),
			Destination: &x.slackEvents,
		},
		&cli.StringFlag{
			Name:        "slack-api-url",
			Usage:       "Override of the Slack API endpoint",
			Category:    "Notification",
			Hidden:      true,
			Sources:     cli.EnvVars("AEGIS_SLACK_API_URL"),
			Destination: &x.slackAPIURL,
		},
	}
}

func (x Notify) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("webhook_url", x.webhookURL),
		slog.Int("slack_token.len", len(x.slackToken)),
		slog.String("slack_channel", x.slackChannel),
		slog.Any("slack_events", x.slackEvents),
	)
}

// Configure builds every configured notifier. An empty result means
// notifications are turned off.
func (x *Notify) Configure() ([]interfaces.Notifier, error) {
	var notifiers []interfaces.Notifier

	if x.webhookURL != "" {
		var opts []webhook.Option
		if x.webhookRate > 0 {
			opts = append(opts, webhook.WithRateLimit(rate.Limit(x.webhookRate), webhook.DefaultBurst))
		}
		client, err := webhook.New(x.webhookURL, opts...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to configure webhook notifier")
		}
		notifiers = append(notifiers, client)
	}

	if x.slackToken != "" || x.slackChannel != "" {
		if x.slackToken == "" || x.slackChannel == "" {
			return nil, goerr.Wrap(ErrMissingSetting, "slack-bot-token and slack-channel must be set together",
				goerr.V(SettingKey, "slack"))
		}

		var opts []slack.Option
		if len(x.slackEvents) > 0 {
			events, err := parseEvents(x.slackEvents)
			if err != nil {
				return nil, err
			}
			opts = append(opts, slack.WithEvents(events...))
		}
		if x.slackAPIURL != "" {
			opts = append(opts, slack.WithAPIURL(x.slackAPIURL))
		}

		client, err := slack.New(x.slackToken, x.slackChannel, opts...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to configure Slack notifier")
		}
		notifiers = append(notifiers, client)
	}

	return notifiers, nil
}

func parseEvents(values []string) ([]types.EventType, error) {
	var events []types.EventType
	for _, v := range values {
		for _, s := range strings.Split(v, ",") {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			e := types.EventType(s)
			if !e.IsValid() {
				return nil, goerr.Wrap(ErrInvalidConfig, "unknown event type", goerr.V(ValueKey, s))
			}
			events = append(events, e)
		}
	}
	return events, nil
}
