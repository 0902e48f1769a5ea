package usecase

import (
	"context"

	"github.com/secmon-lab/aegis/pkg/domain/interfaces"
	"github.com/secmon-lab/aegis/pkg/domain/model"
	"github.com/secmon-lab/aegis/pkg/domain/types"
	"github.com/secmon-lab/aegis/pkg/utils/async"
	"github.com/secmon-lab/aegis/pkg/utils/errutil"
)

type notifier struct {
	senders  []interfaces.Notifier
	dispatch async.Dispatcher
}

// fire sends the event in the background. Failures are only logged.
func (n *notifier) fire(ctx context.Context, event types.EventType, payload model.Payload) {
	if len(n.senders) == 0 {
		return
	}
	n.dispatch(ctx, func(ctx context.Context) error {
		n.deliver(ctx, event, payload)
		return nil
	})
}

// deliver sends the event to every channel and reports whether at least one
// accepted it
func (n *notifier) deliver(ctx context.Context, event types.EventType, payload model.Payload) bool {
	delivered := false
	for _, s := range n.senders {
		p := make(model.Payload, len(payload)+1)
		for k, v := range payload {
			p[k] = v
		}
		p["event"] = string(event)

		if err := s.Send(ctx, event, p); err != nil {
			errutil.Warn(ctx, err, "notification not delivered")
			continue
		}
		delivered = true
	}
	return delivered
}
