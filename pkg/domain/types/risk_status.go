package types

import "fmt"

// RiskStatus is the control lifecycle of a risk
type RiskStatus string

const (
	RiskStatusIdentified RiskStatus = "identified"
	RiskStatusInControl  RiskStatus = "in_control"
	RiskStatusControlled RiskStatus = "controlled"
	RiskStatusClosed     RiskStatus = "closed"
)

var riskStatusTransitions = transitions[RiskStatus]{
	RiskStatusIdentified: {RiskStatusInControl, RiskStatusClosed},
	RiskStatusInControl:  {RiskStatusControlled, RiskStatusIdentified},
	RiskStatusControlled: {RiskStatusClosed, RiskStatusInControl},
}

// AllRiskStatuses returns all valid risk statuses
func AllRiskStatuses() []RiskStatus {
	return []RiskStatus{
		RiskStatusIdentified,
		RiskStatusInControl,
		RiskStatusControlled,
		RiskStatusClosed,
	}
}

// IsValid checks if the risk status is valid
func (s RiskStatus) IsValid() bool {
	switch s {
	case RiskStatusIdentified,
		RiskStatusInControl,
		RiskStatusControlled,
		RiskStatusClosed:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether next is reachable from s in one step
func (s RiskStatus) CanTransitionTo(next RiskStatus) bool {
	return riskStatusTransitions.allows(s, next)
}

// Next returns the statuses reachable from s
func (s RiskStatus) Next() []RiskStatus {
	return riskStatusTransitions.next(s)
}

func (s RiskStatus) String() string {
	return string(s)
}

// ParseRiskStatus parses a string into a RiskStatus
func ParseRiskStatus(s string) (RiskStatus, error) {
	status := RiskStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid risk status: %s", s)
	}
	return status, nil
}
