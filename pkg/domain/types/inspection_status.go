package types

import "fmt"

type InspectionStatus string

const (
	InspectionStatusScheduled  InspectionStatus = "scheduled"
	InspectionStatusInProgress InspectionStatus = "in_progress"
	InspectionStatusCompleted  InspectionStatus = "completed"
	InspectionStatusCancelled  InspectionStatus = "cancelled"
)

var inspectionStatusTransitions = transitions[InspectionStatus]{
	InspectionStatusScheduled:  {InspectionStatusInProgress, InspectionStatusCancelled},
	InspectionStatusInProgress: {InspectionStatusCompleted, InspectionStatusCancelled},
}

func (s InspectionStatus) IsValid() bool {
	switch s {
	case InspectionStatusScheduled,
		InspectionStatusInProgress,
		InspectionStatusCompleted,
		InspectionStatusCancelled:
		return true
	default:
		return false
	}
}

func (s InspectionStatus) CanTransitionTo(next InspectionStatus) bool {
	return inspectionStatusTransitions.allows(s, next)
}

func (s InspectionStatus) String() string {
	return string(s)
}

func ParseInspectionStatus(s string) (InspectionStatus, error) {
	status := InspectionStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid inspection status: %s", s)
	}
	return status, nil
}
