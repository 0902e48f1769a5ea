package types

import "fmt"

type TrainingStatus string

const (
	TrainingStatusScheduled   TrainingStatus = "scheduled"
	TrainingStatusCompleted   TrainingStatus = "completed"
	TrainingStatusCancelled   TrainingStatus = "cancelled"
	TrainingStatusRescheduled TrainingStatus = "rescheduled"
)

var trainingStatusTransitions = transitions[TrainingStatus]{
	TrainingStatusScheduled:   {TrainingStatusCompleted, TrainingStatusCancelled, TrainingStatusRescheduled},
	TrainingStatusRescheduled: {TrainingStatusCompleted, TrainingStatusCancelled, TrainingStatusRescheduled},
}

func (s TrainingStatus) IsValid() bool {
	switch s {
	case TrainingStatusScheduled,
		TrainingStatusCompleted,
		TrainingStatusCancelled,
		TrainingStatusRescheduled:
		return true
	default:
		return false
	}
}

// IsUpcoming is true for trainings that have not happened yet
func (s TrainingStatus) IsUpcoming() bool {
	return s == TrainingStatusScheduled || s == TrainingStatusRescheduled
}

// CanTransitionTo reports whether next is reachable from s in one step.
// Rescheduling may repeat.
func (s TrainingStatus) CanTransitionTo(next TrainingStatus) bool {
	return trainingStatusTransitions.allows(s, next)
}

func (s TrainingStatus) String() string {
	return string(s)
}

func ParseTrainingStatus(s string) (TrainingStatus, error) {
	status := TrainingStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid training status: %s", s)
	}
	return status, nil
}
