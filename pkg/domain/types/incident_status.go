package types

import "fmt"

// IncidentStatus is the investigation lifecycle of an incident
type IncidentStatus string

const (
	IncidentStatusReported           IncidentStatus = "reported"
	IncidentStatusUnderInvestigation IncidentStatus = "under_investigation"
	IncidentStatusInvestigated       IncidentStatus = "investigated"
	IncidentStatusClosed             IncidentStatus = "closed"
)

var incidentStatusTransitions = transitions[IncidentStatus]{
	IncidentStatusReported:           {IncidentStatusUnderInvestigation, IncidentStatusClosed},
	IncidentStatusUnderInvestigation: {IncidentStatusInvestigated},
	IncidentStatusInvestigated:       {IncidentStatusClosed, IncidentStatusUnderInvestigation},
}

// AllIncidentStatuses returns all valid incident statuses
func AllIncidentStatuses() []IncidentStatus {
	return []IncidentStatus{
		IncidentStatusReported,
		IncidentStatusUnderInvestigation,
		IncidentStatusInvestigated,
		IncidentStatusClosed,
	}
}

// IsValid checks if the incident status is valid
func (s IncidentStatus) IsValid() bool {
	switch s {
	case IncidentStatusReported,
		IncidentStatusUnderInvestigation,
		IncidentStatusInvestigated,
		IncidentStatusClosed:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether next is reachable from s in one step
func (s IncidentStatus) CanTransitionTo(next IncidentStatus) bool {
	return incidentStatusTransitions.allows(s, next)
}

func (s IncidentStatus) String() string {
	return string(s)
}

// ParseIncidentStatus parses a string into an IncidentStatus
func ParseIncidentStatus(s string) (IncidentStatus, error) {
	status := IncidentStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid incident status: %s", s)
	}
	return status, nil
}
