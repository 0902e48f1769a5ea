package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/aegis/pkg/domain/model"
	"github.com/secmon-lab/aegis/pkg/domain/types"
	"github.com/secmon-lab/aegis/pkg/utils/logging"
	"github.com/secmon-lab/aegis/pkg/utils/metrics"
)

// alertCooldown keeps a periodic scan from repeating the same alert
const alertCooldown = 24 * time.Hour

type AlertUseCase struct {
	*base

	mu   sync.Mutex
	sent map[string]time.Time
}

// AlertSummary counts the alerts raised by one scan
type AlertSummary struct {
	EPPExpiry         int
	DocumentReview    int
	TrainingReminders int
	OverdueActions    int
	Failed            int
}

func (s *AlertSummary) Total() int {
	return s.EPPExpiry + s.DocumentReview + s.TrainingReminders + s.OverdueActions
}

// Scan looks for expiring equipment, documents due for review, upcoming
// trainings and overdue corrective actions, and notifies each once per
// cooldown period. Counts include only delivered alerts.
func (uc *AlertUseCase) Scan(ctx context.Context) (*AlertSummary, error) {
	now := uc.now()
	summary := &AlertSummary{}

	steps := []struct {
		name  string
		count *int
		run   func(context.Context, time.Time) ([]alert, error)
	}{
		{"epp_expiry", &summary.EPPExpiry, uc.eppExpiryAlerts},
		{"document_review", &summary.DocumentReview, uc.documentReviewAlerts},
		{"training_reminder", &summary.TrainingReminders, uc.trainingAlerts},
		{"overdue_action", &summary.OverdueActions, uc.overdueActionAlerts},
	}

	for _, step := range steps {
		alerts, err := step.run(ctx, now)
		if err != nil {
			return summary, goerr.Wrap(err, "alert scan failed", goerr.V("step", step.name))
		}
		for _, a := range alerts {
			release, ok := uc.reserve(a.key, now)
			if !ok {
				continue
			}
			if !uc.notify.deliver(ctx, a.event, a.payload) {
				release()
				summary.Failed++
				continue
			}
			metrics.AlertsRaisedTotal.WithLabelValues(string(a.event)).Inc()
			*step.count++
		}
	}

	logging.From(ctx).Info("alert scan finished",
		"epp_expiry", summary.EPPExpiry,
		"document_review", summary.DocumentReview,
		"training_reminder", summary.TrainingReminders,
		"overdue_action", summary.OverdueActions,
		"failed", summary.Failed)
	return summary, nil
}

type alert struct {
	key     string
	event   types.EventType
	payload model.Payload
}

func alertKey(event types.EventType, id int64) string {
	return fmt.Sprintf("%s/%d", event, id)
}

// reserve marks key as sent at now unless it is still cooling down. The
// returned release undoes the mark when delivery fails.
func (uc *AlertUseCase) reserve(key string, now time.Time) (func(), bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	last, had := uc.sent[key]
	if had && now.Sub(last) < alertCooldown {
		return nil, false
	}
	if uc.sent == nil {
		uc.sent = map[string]time.Time{}
	}
	uc.sent[key] = now

	release := func() {
		uc.mu.Lock()
		defer uc.mu.Unlock()
		if !uc.sent[key].Equal(now) {
			return
		}
		if had {
			uc.sent[key] = last
		} else {
			delete(uc.sent, key)
		}
	}
	return release, true
}

func (uc *AlertUseCase) eppExpiryAlerts(ctx context.Context, _ time.Time) ([]alert, error) {
	epp := &EPPUseCase{base: uc.base}
	expiring, err := epp.ExpiringAssignments(ctx, uc.thresholds.EPPExpiryWindowDays)
	if err != nil {
		return nil, err
	}

	alerts := make([]alert, 0, len(expiring))
	for _, x := range expiring {
		alerts = append(alerts, alert{
			key:     alertKey(types.EventEPPExpiryAlert, x.Assignment.ID),
			event:   types.EventEPPExpiryAlert,
			payload: expiryPayload(x),
		})
	}
	return alerts, nil
}

func (uc *AlertUseCase) documentReviewAlerts(ctx context.Context, _ time.Time) ([]alert, error) {
	docs := &DocumentUseCase{base: uc.base}
	due, err := docs.DueForReview(ctx)
	if err != nil {
		return nil, err
	}

	alerts := make([]alert, 0, len(due))
	for _, d := range due {
		alerts = append(alerts, alert{
			key:     alertKey(types.EventDocumentReviewDue, d.ID),
			event:   types.EventDocumentReviewDue,
			payload: documentPayload(d),
		})
	}
	return alerts, nil
}

func (uc *AlertUseCase) trainingAlerts(ctx context.Context, now time.Time) ([]alert, error) {
	trainings, err := uc.repo.Training().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list trainings")
	}

	window := time.Duration(uc.thresholds.TrainingReminderDays) * 24 * time.Hour
	var alerts []alert
	for _, t := range trainings {
		if !t.StartsWithin(now, window) {
			continue
		}
		attendees, err := (&TrainingUseCase{base: uc.base}).ListAttendees(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, alert{
			key:     alertKey(types.EventTrainingReminder, t.ID),
			event:   types.EventTrainingReminder,
			payload: trainingPayload(t, attendees),
		})
	}
	return alerts, nil
}

func (uc *AlertUseCase) overdueActionAlerts(ctx context.Context, now time.Time) ([]alert, error) {
	actions, err := uc.repo.CorrectiveAction().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list corrective actions")
	}

	var alerts []alert
	for _, a := range actions {
		if !a.IsOverdue(now) {
			continue
		}
		alerts = append(alerts, alert{
			key:   alertKey(types.EventCorrectiveActionOverdue, a.ID),
			event: types.EventCorrectiveActionOverdue,
			payload: model.Payload{
				"action_id":     a.ID,
				"incident_id":   a.IncidentID,
				"description":   a.Description,
				"owner_user_id": a.OwnerUserID,
				"due_date":      a.DueDate,
				"status":        string(a.Status),
				"days_overdue":  int(now.Sub(a.DueDate).Hours() / 24),
			},
		})
	}
	return alerts, nil
}
