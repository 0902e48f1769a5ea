package types

import "fmt"

// ActionStatus is the lifecycle of a corrective action
type ActionStatus string

const (
	ActionStatusPending    ActionStatus = "pending"
	ActionStatusInProgress ActionStatus = "in_progress"
	ActionStatusCompleted  ActionStatus = "completed"
	ActionStatusVerified   ActionStatus = "verified"
)

var actionStatusTransitions = transitions[ActionStatus]{
	ActionStatusPending:    {ActionStatusInProgress},
	ActionStatusInProgress: {ActionStatusCompleted, ActionStatusPending},
	ActionStatusCompleted:  {ActionStatusVerified, ActionStatusInProgress},
}

// IsValid checks if the action status is valid
func (s ActionStatus) IsValid() bool {
	switch s {
	case ActionStatusPending,
		ActionStatusInProgress,
		ActionStatusCompleted,
		ActionStatusVerified:
		return true
	default:
		return false
	}
}

// IsOpen is true while work on the action is still outstanding
func (s ActionStatus) IsOpen() bool {
	return s == ActionStatusPending || s == ActionStatusInProgress
}

// CanTransitionTo reports whether next is reachable from s in one step
func (s ActionStatus) CanTransitionTo(next ActionStatus) bool {
	return actionStatusTransitions.allows(s, next)
}

func (s ActionStatus) String() string {
	return string(s)
}

// ParseActionStatus parses a string into an ActionStatus
func ParseActionStatus(s string) (ActionStatus, error) {
	status := ActionStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid action status: %s", s)
	}
	return status, nil
}
