package slack

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/secmon-lab/aegis/pkg/domain/model"
	"github.com/secmon-lab/aegis/pkg/domain/types"
	"github.com/slack-go/slack"
)

// maxSectionTextBytes is the Slack limit for a section text
const maxSectionTextBytes = 3000

var eventTitles = map[types.EventType]string{
	types.EventIncidentRegistered:      ":rotating_light: Incident registered",
	types.EventEPPExpiryAlert:          ":hourglass: EPP expiring",
	types.EventTrainingReminder:        ":mortar_board: Training reminder",
	types.EventDocumentReviewDue:       ":page_facing_up: Document review due",
	types.EventCriticalRiskIdentified:  ":warning: Critical risk identified",
	types.EventCorrectiveActionOverdue: ":alarm_clock: Corrective action overdue",
}

func eventTitle(event types.EventType) string {
	if title, ok := eventTitles[event]; ok {
		return title
	}
	return string(event)
}

// buildMessage renders a payload as a header plus one line per field
func buildMessage(event types.EventType, p model.Payload) ([]slack.Block, string) {
	title := eventTitle(event)

	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var lines []string
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("*%s*: %v", k, p[k]))
	}
	body := truncateToMaxBytes(strings.Join(lines, "\n"), maxSectionTextBytes)

	blocks := []slack.Block{
		slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, "*"+title+"*", false, false),
			nil, nil,
		),
	}
	if body != "" {
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, body, false, false),
			nil, nil,
		))
	}
	blocks = append(blocks, slack.NewContextBlock("",
		slack.NewTextBlockObject(slack.MarkdownType, "event: `"+string(event)+"`", false, false),
	))

	return blocks, title
}

// truncateToMaxBytes cuts s to at most limit bytes without splitting a rune
func truncateToMaxBytes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	const ellipsis = "…"
	cut := limit - len(ellipsis)
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + ellipsis
}
