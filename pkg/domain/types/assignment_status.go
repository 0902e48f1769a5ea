package types

import "fmt"

// AssignmentStatus tracks protective equipment handed to a worker
type AssignmentStatus string

const (
	AssignmentStatusActive   AssignmentStatus = "active"
	AssignmentStatusReturned AssignmentStatus = "returned"
	AssignmentStatusExpired  AssignmentStatus = "expired"
)

var assignmentStatusTransitions = transitions[AssignmentStatus]{
	AssignmentStatusActive: {AssignmentStatusReturned, AssignmentStatusExpired},
}

func (s AssignmentStatus) IsValid() bool {
	switch s {
	case AssignmentStatusActive, AssignmentStatusReturned, AssignmentStatusExpired:
		return true
	default:
		return false
	}
}

func (s AssignmentStatus) CanTransitionTo(next AssignmentStatus) bool {
	return assignmentStatusTransitions.allows(s, next)
}

func (s AssignmentStatus) String() string {
	return string(s)
}

func ParseAssignmentStatus(s string) (AssignmentStatus, error) {
	status := AssignmentStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid assignment status: %s", s)
	}
	return status, nil
}
