package types

// EventType names an outbound notification
type EventType string

const (
	EventIncidentRegistered      EventType = "incident_registered"
	EventEPPExpiryAlert          EventType = "epp_expiry_alert"
	EventTrainingReminder        EventType = "training_reminder"
	EventDocumentReviewDue       EventType = "document_review_due"
	EventCriticalRiskIdentified  EventType = "critical_risk_identified"
	EventCorrectiveActionOverdue EventType = "corrective_action_overdue"
)

// AllEventTypes returns every notification event
func AllEventTypes() []EventType {
	return []EventType{
		EventIncidentRegistered,
		EventEPPExpiryAlert,
		EventTrainingReminder,
		EventDocumentReviewDue,
		EventCriticalRiskIdentified,
		EventCorrectiveActionOverdue,
	}
}

func (e EventType) IsValid() bool {
	for _, v := range AllEventTypes() {
		if v == e {
			return true
		}
	}
	return false
}

func (e EventType) String() string {
	return string(e)
}
